package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"laundrydesk/internal/core/apperror"
	"laundrydesk/internal/core/id"
	"laundrydesk/internal/core/types"
	"laundrydesk/internal/domain"
	"laundrydesk/internal/domain/finance"
)

var nowUTC = func() time.Time { return time.Now().UTC() }

// TransactionRepo is an in-memory finance.Repository. It enforces the
// one-income-per-service rule on insert like the database index does.
type TransactionRepo struct {
	mu    sync.RWMutex
	items map[id.ID]*finance.Transaction
	// incomeByService maps service ID to its income transaction ID.
	incomeByService map[id.ID]id.ID
}

// NewTransactionRepo creates an empty ledger.
func NewTransactionRepo() *TransactionRepo {
	return &TransactionRepo{
		items:           make(map[id.ID]*finance.Transaction),
		incomeByService: make(map[id.ID]id.ID),
	}
}

// Create implements finance.Repository.
func (r *TransactionRepo) Create(_ context.Context, t *finance.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[t.ID]; exists {
		return apperror.NewDuplicate("transaction", "id", t.ID.String())
	}
	if t.Type == finance.TypeIncome && t.ServiceID != nil {
		if _, taken := r.incomeByService[*t.ServiceID]; taken {
			return apperror.NewDuplicate("transaction", "serviceId", t.ServiceID.String())
		}
		r.incomeByService[*t.ServiceID] = t.ID
	}
	c := *t
	r.items[t.ID] = &c
	return nil
}

// GetByID implements finance.Repository.
func (r *TransactionRepo) GetByID(_ context.Context, txID id.ID) (*finance.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.items[txID]
	if !ok {
		return nil, apperror.NewNotFound("transaction", txID.String())
	}
	c := *t
	return &c, nil
}

// List implements finance.Repository.
func (r *TransactionRepo) List(_ context.Context, filter finance.ListFilter) (domain.ListResult[*finance.Transaction], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var items []*finance.Transaction
	for _, t := range r.items {
		if !matches(t, filter) {
			continue
		}
		c := *t
		items = append(items, &c)
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Date.Equal(items[j].Date) {
			return items[i].ID.String() > items[j].ID.String()
		}
		return items[i].Date.After(items[j].Date)
	})
	return paginate(items, filter.Limit, filter.Offset), nil
}

func matches(t *finance.Transaction, f finance.ListFilter) bool {
	if f.Type != "" && t.Type != f.Type {
		return false
	}
	if f.Source != "" && t.Source != f.Source {
		return false
	}
	if f.ServiceID != nil && !id.Equal(t.ServiceID, *f.ServiceID) {
		return false
	}
	if f.HotelID != nil && !id.Equal(t.HotelID, *f.HotelID) {
		return false
	}
	return inRange(t.Date, f.From, f.To)
}

func inRange(d time.Time, from, to *time.Time) bool {
	if from != nil && d.Before(*from) {
		return false
	}
	if to != nil && d.After(*to) {
		return false
	}
	return true
}

// HasIncomeForService implements finance.Repository.
func (r *TransactionRepo) HasIncomeForService(_ context.Context, serviceID id.ID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.incomeByService[serviceID]
	return ok, nil
}

// Totals implements finance.Repository.
func (r *TransactionRepo) Totals(_ context.Context, from, to *time.Time) (finance.Summary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sum := finance.Summary{Income: types.Zero(), Expense: types.Zero()}
	for _, t := range r.items {
		if !inRange(t.Date, from, to) {
			continue
		}
		switch t.Type {
		case finance.TypeIncome:
			sum.Income = sum.Income.Add(t.Amount)
			sum.IncomeCount++
		case finance.TypeExpense:
			sum.Expense = sum.Expense.Add(t.Amount)
			sum.ExpenseCount++
		}
	}
	return sum, nil
}
