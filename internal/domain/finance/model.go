// Package finance provides the income/expense ledger.
package finance

import (
	"context"
	"time"

	"laundrydesk/internal/core/apperror"
	"laundrydesk/internal/core/id"
	"laundrydesk/internal/core/types"
)

// Type is the direction of a transaction.
type Type string

const (
	TypeIncome  Type = "INCOME"
	TypeExpense Type = "EXPENSE"
)

// PaymentMethod records how the money moved.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "CASH"
	PaymentCard     PaymentMethod = "CARD"
	PaymentTransfer PaymentMethod = "TRANSFER"
	PaymentYape     PaymentMethod = "YAPE"
	// PaymentPending marks income whose collection has not been recorded yet.
	PaymentPending PaymentMethod = "PENDING"
)

// Source identifies which workflow created a transaction.
type Source string

const (
	SourceMigration Source = "MIGRATION"
	SourcePOS       Source = "POS"
	SourceManual    Source = "MANUAL"
)

// Categories.
const (
	CategoryLaundryService = "LAUNDRY_SERVICE"
	CategoryOtherIncome    = "OTHER_INCOME"

	CategorySupplies  = "SUPPLIES"
	CategoryPayroll   = "PAYROLL"
	CategoryTransport = "TRANSPORT"
	CategoryUtilities = "UTILITIES"
	CategoryOther     = "OTHER"
)

var incomeCategories = map[string]bool{
	CategoryLaundryService: true,
	CategoryOtherIncome:    true,
}

var expenseCategories = map[string]bool{
	CategorySupplies:  true,
	CategoryPayroll:   true,
	CategoryTransport: true,
	CategoryUtilities: true,
	CategoryOther:     true,
}

// Transaction is one ledger entry.
type Transaction struct {
	ID            id.ID         `db:"id" json:"id"`
	Type          Type          `db:"type" json:"type"`
	Amount        types.Money   `db:"amount" json:"amount"`
	Description   string        `db:"description" json:"description"`
	Date          time.Time     `db:"date" json:"date"`
	PaymentMethod PaymentMethod `db:"payment_method" json:"paymentMethod"`
	Category      string        `db:"category" json:"category"`

	// ServiceID links an income entry to the laundry service it pays for.
	// At most one INCOME transaction may reference a given service.
	ServiceID *id.ID `db:"service_id" json:"serviceId,omitempty"`
	HotelID   *id.ID `db:"hotel_id" json:"hotelId,omitempty"`
	HotelName string `db:"hotel_name" json:"hotelName,omitempty"`

	Source    Source    `db:"source" json:"source"`
	Notes     string    `db:"notes" json:"notes,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	CreatedBy string    `db:"created_by" json:"createdBy,omitempty"`
}

// Validate implements entity.Validatable interface.
func (t *Transaction) Validate(_ context.Context) error {
	switch t.Type {
	case TypeIncome:
		if !incomeCategories[t.Category] {
			return invalidField("category", t.Category)
		}
	case TypeExpense:
		if !expenseCategories[t.Category] {
			return invalidField("category", t.Category)
		}
	default:
		return invalidField("type", string(t.Type))
	}

	if !t.Amount.IsPositive() {
		return apperror.NewValidation("amount must be greater than zero").
			WithDetail("field", "amount")
	}

	if !t.PaymentMethod.IsValid() {
		return invalidField("paymentMethod", string(t.PaymentMethod))
	}

	switch t.Source {
	case SourceMigration, SourcePOS, SourceManual:
	default:
		return invalidField("source", string(t.Source))
	}

	if t.Date.IsZero() {
		return apperror.NewValidation("date is required").WithDetail("field", "date")
	}
	return nil
}

// IsValid reports whether m is a known payment method.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentTransfer, PaymentYape, PaymentPending:
		return true
	}
	return false
}

func invalidField(field, value string) error {
	return apperror.NewValidation("invalid "+field).
		WithDetail("field", field).
		WithDetail("value", value)
}

// Summary aggregates the ledger over a period.
type Summary struct {
	From         *time.Time  `json:"from,omitempty"`
	To           *time.Time  `json:"to,omitempty"`
	Income       types.Money `json:"income"`
	Expense      types.Money `json:"expense"`
	Balance      types.Money `json:"balance"`
	IncomeCount  int64       `json:"incomeCount"`
	ExpenseCount int64       `json:"expenseCount"`
}
