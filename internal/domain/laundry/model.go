// Package laundry provides laundry service records: one pickup cycle of a
// guest's laundry from a hotel room through delivery.
package laundry

import (
	"context"
	"strings"
	"time"

	"laundrydesk/internal/core/apperror"
	"laundrydesk/internal/core/id"
	"laundrydesk/internal/core/types"
	"laundrydesk/internal/domain/pricing"
)

// ServiceRecord is a single laundry service.
type ServiceRecord struct {
	ID         id.ID  `db:"id" json:"id"`
	GuestName  string `db:"guest_name" json:"guestName"`
	RoomNumber string `db:"room_number" json:"roomNumber"`

	// HotelID and HotelName are both kept; older records carry only the name.
	HotelID   *id.ID `db:"hotel_id" json:"hotelId,omitempty"`
	HotelName string `db:"hotel_name" json:"hotelName,omitempty"`

	// Weight in kilograms
	Weight   *types.Money `db:"weight" json:"weight,omitempty"`
	BagCount *int         `db:"bag_count" json:"bagCount,omitempty"`

	Price                  *types.Money   `db:"price" json:"price,omitempty"`
	PriceCalculationMethod pricing.Method `db:"price_calculation_method" json:"priceCalculationMethod,omitempty"`
	PriceCalculatedAt      *time.Time     `db:"price_calculated_at" json:"priceCalculatedAt,omitempty"`

	// Status is stored as written; use CanonicalStatus for comparisons.
	Status string `db:"status" json:"status"`

	PickupDate *time.Time `db:"pickup_date" json:"pickupDate,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updatedAt"`
	Version    int        `db:"version" json:"version"`
}

// CanonicalStatus parses the stored status.
func (r *ServiceRecord) CanonicalStatus() Status {
	return ParseStatus(r.Status)
}

// HasPrice reports whether a positive price is recorded.
func (r *ServiceRecord) HasPrice() bool {
	return types.IsPositive(r.Price)
}

// IncomeDate is the date booked for the service's income:
// pickup date, else creation time, else now.
func (r *ServiceRecord) IncomeDate(now time.Time) time.Time {
	if r.PickupDate != nil && !r.PickupDate.IsZero() {
		return *r.PickupDate
	}
	if !r.CreatedAt.IsZero() {
		return r.CreatedAt
	}
	return now
}

// Validate implements entity.Validatable interface.
func (r *ServiceRecord) Validate(_ context.Context) error {
	if strings.TrimSpace(r.GuestName) == "" {
		return apperror.NewValidation("guest name is required").WithDetail("field", "guestName")
	}
	if r.HotelID == nil && strings.TrimSpace(r.HotelName) == "" {
		return apperror.NewValidation("hotel is required").WithDetail("field", "hotelId")
	}
	if r.Weight != nil && r.Weight.IsNegative() {
		return apperror.NewValidation("weight must not be negative").WithDetail("field", "weight")
	}
	if r.BagCount != nil && *r.BagCount < 0 {
		return apperror.NewValidation("bag count must not be negative").WithDetail("field", "bagCount")
	}
	if r.Price != nil && r.Price.IsNegative() {
		return apperror.NewValidation("price must not be negative").WithDetail("field", "price")
	}
	if !ParseStatus(r.Status).IsValid() {
		return apperror.NewInvalidStatus(r.Status)
	}
	return nil
}

// PricePatch is the set of fields written when a price is assigned.
type PricePatch struct {
	Price        types.Money
	Method       pricing.Method
	CalculatedAt time.Time
}
