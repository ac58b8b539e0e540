package dto

import (
	"laundrydesk/internal/core/entity"
	"laundrydesk/internal/core/types"
	"laundrydesk/internal/domain/catalogs/hotel"
	"laundrydesk/internal/domain/zone"
)

// --- Request DTOs ---

// CreateHotelRequest is the request body for creating a hotel.
// Code is generated when empty; Zone is classified from Address when empty.
type CreateHotelRequest struct {
	Code        string            `json:"code"`
	Name        string            `json:"name" binding:"required"`
	Address     string            `json:"address"`
	Zone        zone.Code         `json:"zone"`
	PricePerKg  *types.Money      `json:"pricePerKg"`
	ContactName string            `json:"contactName"`
	Phone       string            `json:"phone"`
	IsActive    *bool             `json:"isActive"`
	Attributes  entity.Attributes `json:"attributes"`
}

// ToEntity converts DTO to domain entity.
func (r CreateHotelRequest) ToEntity() *hotel.Hotel {
	h := hotel.NewHotel(r.Code, r.Name, r.Address)
	h.Zone = r.Zone
	h.PricePerKg = r.PricePerKg
	h.ContactName = r.ContactName
	h.Phone = r.Phone
	if r.IsActive != nil {
		h.IsActive = *r.IsActive
	}
	h.Attributes = r.Attributes
	return h
}

// UpdateHotelRequest is the request body for updating a hotel.
type UpdateHotelRequest struct {
	Code        string            `json:"code" binding:"required"`
	Name        string            `json:"name" binding:"required"`
	Address     string            `json:"address"`
	Zone        zone.Code         `json:"zone"`
	PricePerKg  *types.Money      `json:"pricePerKg"`
	ContactName string            `json:"contactName"`
	Phone       string            `json:"phone"`
	IsActive    bool              `json:"isActive"`
	Attributes  entity.Attributes `json:"attributes"`
	Version     int               `json:"version" binding:"required,min=1"`
}

// ApplyTo applies update DTO to existing entity.
func (r UpdateHotelRequest) ApplyTo(h *hotel.Hotel) *hotel.Hotel {
	h.Code = r.Code
	h.Name = r.Name
	h.Address = r.Address
	h.Zone = r.Zone
	h.PricePerKg = r.PricePerKg
	h.ContactName = r.ContactName
	h.Phone = r.Phone
	h.IsActive = r.IsActive
	h.Attributes = r.Attributes
	h.Version = r.Version
	return h
}

// --- Response DTOs ---

// HotelResponse is the response body for a hotel.
type HotelResponse struct {
	BaseResponse
	Code        string       `json:"code"`
	Name        string       `json:"name"`
	Address     string       `json:"address"`
	Zone        zone.Code    `json:"zone"`
	PricePerKg  *types.Money `json:"pricePerKg,omitempty"`
	ContactName string       `json:"contactName,omitempty"`
	Phone       string       `json:"phone,omitempty"`
	IsActive    bool         `json:"isActive"`
}

// FromHotel creates response DTO from domain entity.
func FromHotel(h *hotel.Hotel) any {
	return &HotelResponse{
		BaseResponse: FromBaseEntity(h.BaseEntity),
		Code:         h.Code,
		Name:         h.Name,
		Address:      h.Address,
		Zone:         h.Zone,
		PricePerKg:   h.PricePerKg,
		ContactName:  h.ContactName,
		Phone:        h.Phone,
		IsActive:     h.IsActive,
	}
}
