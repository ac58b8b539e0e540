package dto

import (
	"time"

	"laundrydesk/internal/core/apperror"
	"laundrydesk/internal/core/types"
	"laundrydesk/internal/domain/finance"
)

// EntryRequest is the body of POST /transactions/income and /expense.
type EntryRequest struct {
	Amount        types.Money           `json:"amount"`
	Description   string                `json:"description"`
	Date          *time.Time            `json:"date"`
	PaymentMethod finance.PaymentMethod `json:"paymentMethod"`
	Category      string                `json:"category"`
	ServiceID     *string               `json:"serviceId"`
	HotelID       *string               `json:"hotelId"`
	HotelName     string                `json:"hotelName"`
	Notes         string                `json:"notes"`
}

// ToEntry converts to the domain input.
func (r EntryRequest) ToEntry() (finance.Entry, error) {
	serviceID, err := parseOptionalID(r.ServiceID)
	if err != nil {
		return finance.Entry{}, apperror.NewValidation("invalid serviceId").WithDetail("field", "serviceId")
	}
	hotelID, err := parseOptionalID(r.HotelID)
	if err != nil {
		return finance.Entry{}, apperror.NewValidation("invalid hotelId").WithDetail("field", "hotelId")
	}

	e := finance.Entry{
		Amount:        r.Amount,
		Description:   r.Description,
		PaymentMethod: r.PaymentMethod,
		Category:      r.Category,
		ServiceID:     serviceID,
		HotelID:       hotelID,
		HotelName:     r.HotelName,
		Notes:         r.Notes,
	}
	if r.Date != nil {
		e.Date = *r.Date
	}
	return e, nil
}

// TransactionResponse is the response body for a transaction.
type TransactionResponse struct {
	ID            string                `json:"id"`
	Type          finance.Type          `json:"type"`
	Amount        types.Money           `json:"amount"`
	Description   string                `json:"description"`
	Date          time.Time             `json:"date"`
	PaymentMethod finance.PaymentMethod `json:"paymentMethod"`
	Category      string                `json:"category"`
	ServiceID     *string               `json:"serviceId,omitempty"`
	HotelID       *string               `json:"hotelId,omitempty"`
	HotelName     string                `json:"hotelName,omitempty"`
	Source        finance.Source        `json:"source"`
	Notes         string                `json:"notes,omitempty"`
	CreatedAt     time.Time             `json:"createdAt"`
	CreatedBy     string                `json:"createdBy,omitempty"`
}

// FromTransaction creates response DTO from domain transaction.
func FromTransaction(t *finance.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:            t.ID.String(),
		Type:          t.Type,
		Amount:        t.Amount,
		Description:   t.Description,
		Date:          t.Date,
		PaymentMethod: t.PaymentMethod,
		Category:      t.Category,
		ServiceID:     idString(t.ServiceID),
		HotelID:       idString(t.HotelID),
		HotelName:     t.HotelName,
		Source:        t.Source,
		Notes:         t.Notes,
		CreatedAt:     t.CreatedAt,
		CreatedBy:     t.CreatedBy,
	}
}
