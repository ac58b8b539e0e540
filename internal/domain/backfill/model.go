// Package backfill reconciles historical laundry services with the ledger:
// it assigns missing prices and books the matching income transactions.
package backfill

import (
	"time"

	"laundrydesk/internal/core/id"
	"laundrydesk/internal/core/types"
	"laundrydesk/internal/domain/pricing"
)

// Action is what the engine did to a service.
type Action string

const (
	ActionPriceCalculated    Action = "PRICE_CALCULATED"
	ActionTransactionCreated Action = "TRANSACTION_CREATED"
)

// MigrationNotes is written on every transaction the engine creates.
const MigrationNotes = "Generated by financial migration"

// Detail records one change made during a run.
type Detail struct {
	ServiceID id.ID          `json:"serviceId"`
	GuestName string         `json:"guestName"`
	Action    Action         `json:"action"`
	Amount    types.Money    `json:"amount"`
	Method    pricing.Method `json:"method,omitempty"`
}

// ServiceError records a service that could not be processed.
type ServiceError struct {
	ServiceID id.ID  `json:"serviceId"`
	GuestName string `json:"guestName"`
	Message   string `json:"message"`
}

// Result is the outcome of one Migrate run.
type Result struct {
	TotalProcessed      int            `json:"totalProcessed"`
	PricesCalculated    int            `json:"pricesCalculated"`
	TransactionsCreated int            `json:"transactionsCreated"`
	Errors              []ServiceError `json:"errors"`
	Details             []Detail       `json:"details"`
}

// MigrationSummary is the append-only audit record of a run.
type MigrationSummary struct {
	ID    id.ID     `json:"id"`
	RunAt time.Time `json:"runAt"`
	// RunBy is the console user or "system" for CLI runs.
	RunBy    string        `json:"runBy"`
	Duration time.Duration `json:"duration"`
	Result
}

// PreviewItem describes one service a run would touch.
type PreviewItem struct {
	ServiceID      id.ID          `json:"serviceId"`
	GuestName      string         `json:"guestName"`
	RoomNumber     string         `json:"roomNumber"`
	HotelName      string         `json:"hotelName"`
	Status         string         `json:"status"`
	EstimatedPrice types.Money    `json:"estimatedPrice"`
	Method         pricing.Method `json:"method,omitempty"`
	HasTransaction bool           `json:"hasTransaction"`
}

// Preview is the dry-run report.
type Preview struct {
	// MissingPrice lists eligible services without a positive price.
	MissingPrice []PreviewItem `json:"missingPrice"`
	// MissingTransaction lists priced eligible services without income.
	MissingTransaction []PreviewItem `json:"missingTransaction"`
	// TotalPotentialIncome is the income a Migrate run would book now.
	TotalPotentialIncome types.Money `json:"totalPotentialIncome"`
}
