package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"laundrydesk/internal/domain/catalogs/hotel"
	"laundrydesk/internal/infrastructure/storage/postgres"
)

const hotelTable = "cat_hotels"

// HotelRepo implements hotel.Repository.
type HotelRepo struct {
	*BaseCatalogRepo[*hotel.Hotel]
}

// Compile-time check.
var _ hotel.Repository = (*HotelRepo)(nil)

// NewHotelRepo creates a new hotel repository.
func NewHotelRepo(txm *postgres.TxManager) *HotelRepo {
	return &HotelRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*hotel.Hotel](
			txm,
			hotelTable,
			"hotel",
			postgres.ExtractDBColumns[hotel.Hotel](),
			func() *hotel.Hotel { return &hotel.Hotel{} },
		),
	}
}

// ListAll returns every hotel not marked for deletion, ordered by name.
func (r *HotelRepo) ListAll(ctx context.Context) ([]*hotel.Hotel, error) {
	sql, args, err := r.baseSelect().
		Where(squirrel.Eq{"deletion_mark": false}).
		OrderBy("name ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	items := []*hotel.Hotel{}
	if err := pgxscan.Select(ctx, r.querier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list all hotels: %w", err)
	}
	return items, nil
}
