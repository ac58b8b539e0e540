package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"laundrydesk/internal/core/apperror"
	"laundrydesk/internal/core/id"
	"laundrydesk/internal/domain"
	"laundrydesk/internal/domain/laundry"
)

// ServiceRepo is an in-memory laundry.Repository.
type ServiceRepo struct {
	mu       sync.RWMutex
	services map[id.ID]*laundry.ServiceRecord
}

// NewServiceRepo creates an empty service repository.
func NewServiceRepo() *ServiceRepo {
	return &ServiceRepo{services: make(map[id.ID]*laundry.ServiceRecord)}
}

func copyService(r *laundry.ServiceRecord) *laundry.ServiceRecord {
	c := *r
	return &c
}

// Create implements laundry.Repository.
func (r *ServiceRepo) Create(_ context.Context, rec *laundry.ServiceRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.services[rec.ID]; exists {
		return apperror.NewDuplicate("service", "id", rec.ID.String())
	}
	r.services[rec.ID] = copyService(rec)
	return nil
}

// GetByID implements laundry.Repository.
func (r *ServiceRepo) GetByID(_ context.Context, serviceID id.ID) (*laundry.ServiceRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.services[serviceID]
	if !ok {
		return nil, apperror.NewNotFound("service", serviceID.String())
	}
	return copyService(rec), nil
}

// List implements laundry.Repository.
func (r *ServiceRepo) List(_ context.Context, filter laundry.ListFilter) (domain.ListResult[*laundry.ServiceRecord], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	statuses := make(map[laundry.Status]bool, len(filter.Statuses))
	for _, s := range filter.Statuses {
		statuses[s] = true
	}
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	var items []*laundry.ServiceRecord
	for _, rec := range r.services {
		if len(statuses) > 0 && !statuses[rec.CanonicalStatus()] {
			continue
		}
		if filter.HotelID != nil && !id.Equal(rec.HotelID, *filter.HotelID) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(rec.GuestName), search) &&
			!strings.Contains(strings.ToLower(rec.RoomNumber), search) &&
			!strings.Contains(strings.ToLower(rec.HotelName), search) {
			continue
		}
		items = append(items, copyService(rec))
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID.String() > items[j].ID.String()
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return paginate(items, filter.Limit, filter.Offset), nil
}

// UpdatePrice implements laundry.Repository.
func (r *ServiceRepo) UpdatePrice(_ context.Context, serviceID id.ID, patch laundry.PricePatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.services[serviceID]
	if !ok {
		return apperror.NewNotFound("service", serviceID.String())
	}
	if rec.Price != nil && rec.Price.IsPositive() {
		return laundry.NewPriceAlreadySet(serviceID)
	}
	price := patch.Price
	at := patch.CalculatedAt
	rec.Price = &price
	rec.PriceCalculationMethod = patch.Method
	rec.PriceCalculatedAt = &at
	rec.UpdatedAt = at
	rec.Version++
	return nil
}

// UpdateStatus implements laundry.Repository.
func (r *ServiceRepo) UpdateStatus(_ context.Context, serviceID id.ID, status laundry.Status, version int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.services[serviceID]
	if !ok {
		return apperror.NewNotFound("service", serviceID.String())
	}
	if rec.Version != version {
		return apperror.NewConcurrentModification("service", serviceID.String())
	}
	rec.Status = string(status)
	rec.UpdatedAt = nowUTC()
	rec.Version++
	return nil
}
