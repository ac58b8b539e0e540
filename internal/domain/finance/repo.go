package finance

import (
	"context"
	"time"

	"laundrydesk/internal/core/id"
	"laundrydesk/internal/domain"
)

// ListFilter narrows ledger listings. Zero values mean "any".
type ListFilter struct {
	Type      Type
	Source    Source
	ServiceID *id.ID
	HotelID   *id.ID
	// From and To bound Date inclusively.
	From *time.Time
	To   *time.Time

	Limit  int
	Offset int
}

// Repository defines the interface for Transaction persistence.
type Repository interface {
	// Create inserts a transaction. A second INCOME for the same service
	// fails with an apperror.CodeDuplicate error.
	Create(ctx context.Context, t *Transaction) error

	GetByID(ctx context.Context, id id.ID) (*Transaction, error)

	// List returns transactions ordered by date descending.
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Transaction], error)

	// HasIncomeForService reports whether an INCOME transaction references
	// serviceID. Always reads the current store state.
	HasIncomeForService(ctx context.Context, serviceID id.ID) (bool, error)

	// Totals sums income and expense with Date in [from, to].
	Totals(ctx context.Context, from, to *time.Time) (Summary, error)
}
