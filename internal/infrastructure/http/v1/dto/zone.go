package dto

import (
	"laundrydesk/internal/core/apperror"
	"laundrydesk/internal/core/id"
	"laundrydesk/internal/core/types"
	"laundrydesk/internal/domain/pricing"
	"laundrydesk/internal/domain/zone"
)

// ZoneResponse describes one delivery zone.
type ZoneResponse struct {
	Code      zone.Code `json:"code"`
	Districts []string  `json:"districts"`
}

// ClassifyRequest is the body of POST /zones/classify.
type ClassifyRequest struct {
	Address string    `json:"address"`
	Default zone.Code `json:"default"`
}

// Validate rejects an unknown default zone.
func (r ClassifyRequest) Validate() error {
	if r.Default != "" && !r.Default.IsValid() {
		return apperror.NewValidation("unknown zone").WithDetail("field", "default")
	}
	return nil
}

// QuoteRequest is the body of POST /pricing/quote.
type QuoteRequest struct {
	Weight   *types.Money `json:"weight"`
	BagCount *int         `json:"bagCount"`
	HotelID  *string      `json:"hotelId"`
}

// QuoteResponse is the priced quote.
type QuoteResponse struct {
	Price      types.Money    `json:"price"`
	Method     pricing.Method `json:"method"`
	Rule       string         `json:"rule"`
	HotelRate  *types.Money   `json:"hotelRate,omitempty"`
	Calculated bool           `json:"calculated"`
}

// FromQuote converts a pricing result to response.
func FromQuote(r pricing.Result, hotelRate *types.Money) QuoteResponse {
	return QuoteResponse{
		Price:      r.Price,
		Method:     r.Method,
		Rule:       r.Rule.String(),
		HotelRate:  hotelRate,
		Calculated: r.Calculated(),
	}
}

// HotelIDValue parses the optional hotel id.
func (r QuoteRequest) HotelIDValue() (*id.ID, error) {
	return parseOptionalID(r.HotelID)
}
