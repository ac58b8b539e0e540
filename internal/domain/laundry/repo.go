package laundry

import (
	"context"

	"laundrydesk/internal/core/apperror"
	"laundrydesk/internal/core/id"
	"laundrydesk/internal/domain"
)

// ListFilter narrows service listings. Zero values mean "any".
type ListFilter struct {
	// Statuses matches canonical states; legacy spellings in storage are
	// resolved before comparison.
	Statuses []Status
	HotelID  *id.ID
	Search   string

	Limit  int
	Offset int
}

// Repository defines the interface for ServiceRecord persistence.
type Repository interface {
	Create(ctx context.Context, r *ServiceRecord) error
	GetByID(ctx context.Context, id id.ID) (*ServiceRecord, error)

	// List returns records newest first. Limit <= 0 returns all rows.
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*ServiceRecord], error)

	// UpdatePrice writes only the price, its method and timestamp, and only
	// while the stored price is missing or zero. A record that already has a
	// positive price yields NewPriceAlreadySet.
	UpdatePrice(ctx context.Context, id id.ID, patch PricePatch) error

	// UpdateStatus sets the status with optimistic locking on version.
	UpdateStatus(ctx context.Context, id id.ID, status Status, version int) error
}

// CodePriceAlreadySet marks an UpdatePrice rejected because a price exists.
const CodePriceAlreadySet = "PRICE_ALREADY_SET"

// NewPriceAlreadySet is returned by UpdatePrice when the stored price is positive.
func NewPriceAlreadySet(serviceID id.ID) *apperror.AppError {
	return apperror.NewBusinessRule(CodePriceAlreadySet, "Service already has a price").
		WithDetail("service_id", serviceID.String())
}
