// Package hotel provides the Hotel catalog: client hotels served by the
// laundry, with their negotiated price per kilogram and delivery zone.
package hotel

import (
	"context"
	"strings"

	"laundrydesk/internal/core/apperror"
	"laundrydesk/internal/core/entity"
	"laundrydesk/internal/core/types"
	"laundrydesk/internal/domain/zone"
)

// Hotel is a client hotel.
type Hotel struct {
	entity.Catalog

	// Address is the street address used for zone classification
	Address string `db:"address" json:"address"`

	// Zone is the delivery zone; derived from Address when empty
	Zone zone.Code `db:"zone" json:"zone"`

	// PricePerKg is the negotiated laundry rate, nil when not agreed
	PricePerKg *types.Money `db:"price_per_kg" json:"pricePerKg,omitempty"`

	ContactName string `db:"contact_name" json:"contactName,omitempty"`
	Phone       string `db:"phone" json:"phone,omitempty"`

	// IsActive indicates the hotel is currently served
	IsActive bool `db:"is_active" json:"isActive"`
}

// NewHotel creates a new active Hotel.
func NewHotel(code, name, address string) *Hotel {
	return &Hotel{
		Catalog:  entity.NewCatalog(code, name),
		Address:  address,
		IsActive: true,
	}
}

// Validate implements entity.Validatable interface.
func (h *Hotel) Validate(ctx context.Context) error {
	if err := h.Catalog.Validate(ctx); err != nil {
		return err
	}

	if h.Zone != "" && !h.Zone.IsValid() {
		return apperror.NewValidation("invalid zone").
			WithDetail("field", "zone").
			WithDetail("value", string(h.Zone))
	}

	if h.PricePerKg != nil && h.PricePerKg.IsNegative() {
		return apperror.NewValidation("price per kg must not be negative").
			WithDetail("field", "pricePerKg")
	}

	return nil
}

// ClassifyZone fills Zone from Address when it is not set explicitly.
func (h *Hotel) ClassifyZone() {
	if h.Zone != "" || strings.TrimSpace(h.Address) == "" {
		return
	}
	h.Zone = zone.Classify(h.Address, zone.DefaultCode)
}

// HasRate reports whether the hotel has a positive negotiated rate.
func (h *Hotel) HasRate() bool {
	return types.IsPositive(h.PricePerKg)
}
