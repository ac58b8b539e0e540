package hotel

import (
	"context"

	"laundrydesk/internal/domain"
)

// Repository defines the interface for Hotel persistence.
type Repository interface {
	domain.CatalogRepository[*Hotel]

	// ListAll returns every hotel not marked for deletion. Used to build
	// lookup indexes for batch operations.
	ListAll(ctx context.Context) ([]*Hotel, error)
}
