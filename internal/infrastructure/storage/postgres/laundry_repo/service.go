// Package laundry_repo provides the PostgreSQL repository for laundry services.
package laundry_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"laundrydesk/internal/core/apperror"
	"laundrydesk/internal/core/id"
	"laundrydesk/internal/domain"
	"laundrydesk/internal/domain/laundry"
	"laundrydesk/internal/infrastructure/storage/postgres"
)

const serviceTable = "doc_laundry_services"

// normalizedStatus mirrors laundry.ParseStatus normalization in SQL so
// legacy spellings stored before the enum existed still match filters.
const normalizedStatus = "regexp_replace(upper(trim(status)), '[ _-]+', '_', 'g')"

// ServiceRepo implements laundry.Repository.
type ServiceRepo struct {
	txm  *postgres.TxManager
	cols []string
}

var _ laundry.Repository = (*ServiceRepo)(nil)

// NewServiceRepo creates a new service repository.
func NewServiceRepo(txm *postgres.TxManager) *ServiceRepo {
	return &ServiceRepo{
		txm:  txm,
		cols: postgres.ExtractDBColumns[laundry.ServiceRecord](),
	}
}

func (r *ServiceRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Create implements laundry.Repository.
func (r *ServiceRepo) Create(ctx context.Context, rec *laundry.ServiceRecord) error {
	sql, args, err := r.builder().
		Insert(serviceTable).
		SetMap(postgres.Pick(postgres.StructToMap(rec), r.cols)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return postgres.MapWriteError(fmt.Errorf("insert service: %w", err), "service", "id", rec.ID.String())
	}
	return nil
}

// GetByID implements laundry.Repository.
func (r *ServiceRepo) GetByID(ctx context.Context, serviceID id.ID) (*laundry.ServiceRecord, error) {
	sql, args, err := r.builder().
		Select(r.cols...).
		From(serviceTable).
		Where(squirrel.Eq{"id": serviceID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rec := &laundry.ServiceRecord{}
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), rec, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("service", serviceID.String())
		}
		return nil, fmt.Errorf("get service: %w", err)
	}
	return rec, nil
}

func (r *ServiceRepo) listQuery(filter laundry.ListFilter) squirrel.SelectBuilder {
	q := r.builder().Select(r.cols...).From(serviceTable)

	if len(filter.Statuses) > 0 {
		var aliases []string
		for _, s := range filter.Statuses {
			aliases = append(aliases, laundry.Aliases(s)...)
		}
		q = q.Where(squirrel.Eq{normalizedStatus: aliases})
	}
	if filter.HotelID != nil {
		q = q.Where(squirrel.Eq{"hotel_id": *filter.HotelID})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"guest_name": pattern},
			squirrel.ILike{"room_number": pattern},
			squirrel.ILike{"hotel_name": pattern},
		})
	}
	return q
}

// List implements laundry.Repository.
func (r *ServiceRepo) List(ctx context.Context, filter laundry.ListFilter) (domain.ListResult[*laundry.ServiceRecord], error) {
	result := domain.ListResult[*laundry.ServiceRecord]{
		Items:  []*laundry.ServiceRecord{},
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}
	q := r.listQuery(filter)
	querier := r.txm.GetQuerier(ctx)

	countSQL, countArgs, err := r.builder().Select("COUNT(*)").FromSelect(q, "sub").ToSql()
	if err != nil {
		return result, fmt.Errorf("build count query: %w", err)
	}
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count services: %w", err)
	}

	q = q.OrderBy("created_at DESC", "id DESC")
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}
	if err := pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("list services: %w", err)
	}
	return result, nil
}

// UpdatePrice implements laundry.Repository.
func (r *ServiceRepo) UpdatePrice(ctx context.Context, serviceID id.ID, patch laundry.PricePatch) error {
	sql, args, err := r.updatePriceQuery(serviceID, patch).ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update price: %w", err)
	}
	if result.RowsAffected() == 0 {
		// Either missing or priced by a concurrent run.
		if _, err := r.GetByID(ctx, serviceID); err != nil {
			return err
		}
		return laundry.NewPriceAlreadySet(serviceID)
	}
	return nil
}

func (r *ServiceRepo) updatePriceQuery(serviceID id.ID, patch laundry.PricePatch) squirrel.UpdateBuilder {
	return r.builder().
		Update(serviceTable).
		Set("price", patch.Price).
		Set("price_calculation_method", patch.Method).
		Set("price_calculated_at", patch.CalculatedAt).
		Set("updated_at", patch.CalculatedAt).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": serviceID}).
		Where(squirrel.Or{
			squirrel.Eq{"price": nil},
			squirrel.LtOrEq{"price": 0},
		})
}

// UpdateStatus implements laundry.Repository.
func (r *ServiceRepo) UpdateStatus(ctx context.Context, serviceID id.ID, status laundry.Status, version int) error {
	sql, args, err := r.builder().
		Update(serviceTable).
		Set("status", string(status)).
		Set("updated_at", squirrel.Expr("now()")).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": serviceID, "version": version}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification("service", serviceID.String())
	}
	return nil
}
