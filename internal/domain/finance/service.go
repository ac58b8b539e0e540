package finance

import (
	"context"
	"fmt"
	"strings"
	"time"

	"laundrydesk/internal/core/apperror"
	appctx "laundrydesk/internal/core/context"
	"laundrydesk/internal/core/id"
	"laundrydesk/internal/core/tx"
	"laundrydesk/internal/core/types"
	"laundrydesk/internal/domain"
	"laundrydesk/pkg/logger"
)

// Entry is the input for recording a transaction.
type Entry struct {
	Amount        types.Money
	Description   string
	Date          time.Time
	PaymentMethod PaymentMethod
	Category      string
	ServiceID     *id.ID
	HotelID       *id.ID
	HotelName     string
	Source        Source
	Notes         string
}

// Service provides ledger business logic.
type Service struct {
	repo      Repository
	txManager tx.Manager
	now       func() time.Time
}

// NewService creates a new finance service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	if txManager == nil {
		txManager = tx.Nop{}
	}
	return &Service{
		repo:      repo,
		txManager: txManager,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// RecordIncome books an INCOME transaction. When the entry references a
// service that already has income, a CodeDuplicate error is returned.
func (s *Service) RecordIncome(ctx context.Context, e Entry) (*Transaction, error) {
	if e.Category == "" {
		e.Category = CategoryLaundryService
	}
	return s.record(ctx, TypeIncome, e)
}

// RecordExpense books an EXPENSE transaction.
func (s *Service) RecordExpense(ctx context.Context, e Entry) (*Transaction, error) {
	if e.Category == "" {
		e.Category = CategoryOther
	}
	// Expenses never settle a laundry service.
	e.ServiceID = nil
	return s.record(ctx, TypeExpense, e)
}

func (s *Service) record(ctx context.Context, typ Type, e Entry) (*Transaction, error) {
	t := s.build(ctx, typ, e)
	if err := t.Validate(ctx); err != nil {
		return nil, err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if t.Type == TypeIncome && t.ServiceID != nil {
			exists, err := s.repo.HasIncomeForService(ctx, *t.ServiceID)
			if err != nil {
				return fmt.Errorf("check income for service: %w", err)
			}
			if exists {
				return apperror.NewDuplicate("transaction", "serviceId", t.ServiceID.String())
			}
		}
		if err := s.repo.Create(ctx, t); err != nil {
			return fmt.Errorf("create transaction: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "transaction recorded",
		"id", t.ID,
		"type", t.Type,
		"amount", t.Amount.StringFixed(types.MoneyScale),
		"source", t.Source,
	)
	return t, nil
}

func (s *Service) build(ctx context.Context, typ Type, e Entry) *Transaction {
	now := s.now()
	date := e.Date
	if date.IsZero() {
		date = now
	}
	source := e.Source
	if source == "" {
		source = SourceManual
	}
	method := e.PaymentMethod
	if method == "" {
		method = PaymentCash
	}
	createdBy := appctx.GetUserID(ctx)
	if createdBy == "" {
		createdBy = "system"
	}

	return &Transaction{
		ID:            id.New(),
		Type:          typ,
		Amount:        types.RoundMoney(e.Amount),
		Description:   strings.TrimSpace(e.Description),
		Date:          date.UTC(),
		PaymentMethod: method,
		Category:      e.Category,
		ServiceID:     e.ServiceID,
		HotelID:       e.HotelID,
		HotelName:     e.HotelName,
		Source:        source,
		Notes:         e.Notes,
		CreatedAt:     now,
		CreatedBy:     createdBy,
	}
}

// Get retrieves a transaction by ID.
func (s *Service) Get(ctx context.Context, txID id.ID) (*Transaction, error) {
	t, err := s.repo.GetByID(ctx, txID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("transaction", txID.String())
		}
		return nil, err
	}
	return t, nil
}

// List returns ledger entries matching filter.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Transaction], error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	return s.repo.List(ctx, filter)
}

// Summary returns income, expense and balance for [from, to].
func (s *Service) Summary(ctx context.Context, from, to *time.Time) (Summary, error) {
	if from != nil && to != nil && to.Before(*from) {
		return Summary{}, apperror.NewValidation("'to' must not be before 'from'")
	}
	sum, err := s.repo.Totals(ctx, from, to)
	if err != nil {
		return Summary{}, fmt.Errorf("totals: %w", err)
	}
	sum.From, sum.To = from, to
	sum.Balance = sum.Income.Sub(sum.Expense)
	return sum, nil
}

// HasIncomeForService reports whether serviceID already has income booked.
func (s *Service) HasIncomeForService(ctx context.Context, serviceID id.ID) (bool, error) {
	return s.repo.HasIncomeForService(ctx, serviceID)
}
