package dto

import (
	"time"

	"laundrydesk/internal/core/apperror"
	"laundrydesk/internal/core/types"
	"laundrydesk/internal/domain/finance"
	"laundrydesk/internal/domain/laundry"
	"laundrydesk/internal/domain/pricing"
)

// RegisterServiceRequest is the body of POST /services.
type RegisterServiceRequest struct {
	GuestName     string                `json:"guestName" binding:"required"`
	RoomNumber    string                `json:"roomNumber"`
	HotelID       *string               `json:"hotelId"`
	HotelName     string                `json:"hotelName"`
	Weight        *types.Money          `json:"weight"`
	BagCount      *int                  `json:"bagCount"`
	Price         *types.Money          `json:"price"`
	PaymentMethod finance.PaymentMethod `json:"paymentMethod"`
	Status        string                `json:"status"`
	PickupDate    *time.Time            `json:"pickupDate"`
}

// ToRegistration converts to the domain input.
func (r RegisterServiceRequest) ToRegistration() (laundry.Registration, error) {
	hotelID, err := parseOptionalID(r.HotelID)
	if err != nil {
		return laundry.Registration{}, apperror.NewValidation("invalid hotelId").WithDetail("field", "hotelId")
	}
	return laundry.Registration{
		GuestName:     r.GuestName,
		RoomNumber:    r.RoomNumber,
		HotelID:       hotelID,
		HotelName:     r.HotelName,
		Weight:        r.Weight,
		BagCount:      r.BagCount,
		Price:         r.Price,
		PaymentMethod: r.PaymentMethod,
		Status:        r.Status,
		PickupDate:    r.PickupDate,
	}, nil
}

// UpdateStatusRequest is the body of PATCH /services/:id/status.
type UpdateStatusRequest struct {
	Status  string `json:"status" binding:"required"`
	Version int    `json:"version"`
}

// ServiceResponse is the response body for a service record.
type ServiceResponse struct {
	ID                     string         `json:"id"`
	GuestName              string         `json:"guestName"`
	RoomNumber             string         `json:"roomNumber"`
	HotelID                *string        `json:"hotelId,omitempty"`
	HotelName              string         `json:"hotelName,omitempty"`
	Weight                 *types.Money   `json:"weight,omitempty"`
	BagCount               *int           `json:"bagCount,omitempty"`
	Price                  *types.Money   `json:"price,omitempty"`
	PriceCalculationMethod pricing.Method `json:"priceCalculationMethod,omitempty"`
	PriceCalculatedAt      *time.Time     `json:"priceCalculatedAt,omitempty"`
	Status                 string         `json:"status"`
	RawStatus              string         `json:"rawStatus"`
	PickupDate             *time.Time     `json:"pickupDate,omitempty"`
	CreatedAt              time.Time      `json:"createdAt"`
	UpdatedAt              time.Time      `json:"updatedAt"`
	Version                int            `json:"version"`
}

// FromServiceRecord creates response DTO from domain record.
// Status is the canonical value, RawStatus what is stored.
func FromServiceRecord(r *laundry.ServiceRecord) *ServiceResponse {
	return &ServiceResponse{
		ID:                     r.ID.String(),
		GuestName:              r.GuestName,
		RoomNumber:             r.RoomNumber,
		HotelID:                idString(r.HotelID),
		HotelName:              r.HotelName,
		Weight:                 r.Weight,
		BagCount:               r.BagCount,
		Price:                  r.Price,
		PriceCalculationMethod: r.PriceCalculationMethod,
		PriceCalculatedAt:      r.PriceCalculatedAt,
		Status:                 r.CanonicalStatus().String(),
		RawStatus:              r.Status,
		PickupDate:             r.PickupDate,
		CreatedAt:              r.CreatedAt,
		UpdatedAt:              r.UpdatedAt,
		Version:                r.Version,
	}
}
