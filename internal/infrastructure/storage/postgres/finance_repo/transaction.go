// Package finance_repo provides the PostgreSQL ledger repository.
package finance_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"laundrydesk/internal/core/apperror"
	"laundrydesk/internal/core/id"
	"laundrydesk/internal/core/types"
	"laundrydesk/internal/domain"
	"laundrydesk/internal/domain/finance"
	"laundrydesk/internal/infrastructure/storage/postgres"
)

const (
	transactionTable = "fin_transactions"

	// incomePerServiceConstraint is the partial unique index on
	// (service_id) WHERE type = 'INCOME'.
	incomePerServiceConstraint = "uq_fin_income_per_service"
)

// TransactionRepo implements finance.Repository.
type TransactionRepo struct {
	txm  *postgres.TxManager
	cols []string
}

var _ finance.Repository = (*TransactionRepo)(nil)

// NewTransactionRepo creates a new transaction repository.
func NewTransactionRepo(txm *postgres.TxManager) *TransactionRepo {
	return &TransactionRepo{
		txm:  txm,
		cols: postgres.ExtractDBColumns[finance.Transaction](),
	}
}

func (r *TransactionRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Create implements finance.Repository.
func (r *TransactionRepo) Create(ctx context.Context, t *finance.Transaction) error {
	sql, args, err := r.builder().
		Insert(transactionTable).
		SetMap(postgres.Pick(postgres.StructToMap(t), r.cols)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		if postgres.IsUniqueViolation(err, incomePerServiceConstraint) && t.ServiceID != nil {
			return apperror.NewDuplicate("transaction", "serviceId", t.ServiceID.String()).WithCause(err)
		}
		return postgres.MapWriteError(fmt.Errorf("insert transaction: %w", err), "transaction", "id", t.ID.String())
	}
	return nil
}

// GetByID implements finance.Repository.
func (r *TransactionRepo) GetByID(ctx context.Context, txID id.ID) (*finance.Transaction, error) {
	sql, args, err := r.builder().
		Select(r.cols...).
		From(transactionTable).
		Where(squirrel.Eq{"id": txID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	t := &finance.Transaction{}
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), t, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("transaction", txID.String())
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

func dateRange(q squirrel.SelectBuilder, from, to *time.Time) squirrel.SelectBuilder {
	if from != nil {
		q = q.Where(squirrel.GtOrEq{"date": *from})
	}
	if to != nil {
		q = q.Where(squirrel.LtOrEq{"date": *to})
	}
	return q
}

func (r *TransactionRepo) listQuery(filter finance.ListFilter) squirrel.SelectBuilder {
	q := r.builder().Select(r.cols...).From(transactionTable)
	if filter.Type != "" {
		q = q.Where(squirrel.Eq{"type": string(filter.Type)})
	}
	if filter.Source != "" {
		q = q.Where(squirrel.Eq{"source": string(filter.Source)})
	}
	if filter.ServiceID != nil {
		q = q.Where(squirrel.Eq{"service_id": *filter.ServiceID})
	}
	if filter.HotelID != nil {
		q = q.Where(squirrel.Eq{"hotel_id": *filter.HotelID})
	}
	return dateRange(q, filter.From, filter.To)
}

// List implements finance.Repository.
func (r *TransactionRepo) List(ctx context.Context, filter finance.ListFilter) (domain.ListResult[*finance.Transaction], error) {
	result := domain.ListResult[*finance.Transaction]{
		Items:  []*finance.Transaction{},
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
		return result, fmt.Errorf("count transactions: %w", err)
	}

	q = q.OrderBy("date DESC", "id DESC")
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
		return result, fmt.Errorf("list transactions: %w", err)
	}
	return result, nil
}

// HasIncomeForService implements finance.Repository.
func (r *TransactionRepo) HasIncomeForService(ctx context.Context, serviceID id.ID) (bool, error) {
	var exists bool
	err := r.txm.GetQuerier(ctx).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM `+transactionTable+` WHERE service_id = $1 AND type = $2)`,
		serviceID, string(finance.TypeIncome),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check income for service: %w", err)
	}
	return exists, nil
}

// Totals implements finance.Repository.
func (r *TransactionRepo) Totals(ctx context.Context, from, to *time.Time) (finance.Summary, error) {
	q := r.builder().
		Select(
			"COALESCE(SUM(amount) FILTER (WHERE type = 'INCOME'), 0) AS income",
			"COALESCE(SUM(amount) FILTER (WHERE type = 'EXPENSE'), 0) AS expense",
			"COUNT(*) FILTER (WHERE type = 'INCOME') AS income_count",
			"COUNT(*) FILTER (WHERE type = 'EXPENSE') AS expense_count",
		).
		From(transactionTable)
	q = dateRange(q, from, to)

	sql, args, err := q.ToSql()
	if err != nil {
		return finance.Summary{}, fmt.Errorf("build query: %w", err)
	}

	var row struct {
		Income       types.Money `db:"income"`
		Expense      types.Money `db:"expense"`
		IncomeCount  int64       `db:"income_count"`
		ExpenseCount int64       `db:"expense_count"`
	}
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &row, sql, args...); err != nil {
		return finance.Summary{}, fmt.Errorf("totals: %w", err)
	}
	return finance.Summary{
		Income:       row.Income,
		Expense:      row.Expense,
		IncomeCount:  row.IncomeCount,
		ExpenseCount: row.ExpenseCount,
	}, nil
}
