// Package memory provides in-process implementations of the domain
// repositories. They are safe for concurrent use and lose data on restart;
// the server uses them when no database is configured, tests use them always.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"laundrydesk/internal/core/apperror"
	"laundrydesk/internal/core/id"
	"laundrydesk/internal/domain"
	"laundrydesk/internal/domain/catalogs/hotel"
)

// HotelRepo is an in-memory hotel.Repository.
type HotelRepo struct {
	mu     sync.RWMutex
	hotels map[id.ID]*hotel.Hotel
}

// NewHotelRepo creates an empty hotel repository.
func NewHotelRepo() *HotelRepo {
	return &HotelRepo{hotels: make(map[id.ID]*hotel.Hotel)}
}

func copyHotel(h *hotel.Hotel) *hotel.Hotel {
	c := *h
	c.Attributes = h.Attributes.Clone()
	return &c
}

// Create implements hotel.Repository.
func (r *HotelRepo) Create(_ context.Context, h *hotel.Hotel) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.hotels[h.ID]; exists {
		return apperror.NewDuplicate("hotel", "id", h.ID.String())
	}
	for _, existing := range r.hotels {
		if h.Code != "" && existing.Code == h.Code {
			return apperror.NewDuplicate("hotel", "code", h.Code)
		}
	}
	r.hotels[h.ID] = copyHotel(h)
	return nil
}

// GetByID implements hotel.Repository.
func (r *HotelRepo) GetByID(_ context.Context, hotelID id.ID) (*hotel.Hotel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.hotels[hotelID]
	if !ok {
		return nil, apperror.NewNotFound("hotel", hotelID.String())
	}
	return copyHotel(h), nil
}

// GetByCode implements hotel.Repository.
func (r *HotelRepo) GetByCode(_ context.Context, code string) (*hotel.Hotel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, h := range r.hotels {
		if h.Code == code {
			return copyHotel(h), nil
		}
	}
	return nil, apperror.NewNotFound("hotel", code)
}

// Update implements hotel.Repository with optimistic locking on Version.
func (r *HotelRepo) Update(_ context.Context, h *hotel.Hotel) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.hotels[h.ID]
	if !ok {
		return apperror.NewNotFound("hotel", h.ID.String())
	}
	if existing.Version != h.Version {
		return apperror.NewConcurrentModification("hotel", h.ID.String())
	}
	h.Touch()
	r.hotels[h.ID] = copyHotel(h)
	return nil
}

// SetDeletionMark implements hotel.Repository.
func (r *HotelRepo) SetDeletionMark(_ context.Context, hotelID id.ID, marked bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.hotels[hotelID]
	if !ok {
		return apperror.NewNotFound("hotel", hotelID.String())
	}
	h.DeletionMark = marked
	h.Touch()
	return nil
}

// List implements hotel.Repository.
func (r *HotelRepo) List(_ context.Context, filter domain.ListFilter) (domain.ListResult[*hotel.Hotel], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make(map[id.ID]bool, len(filter.IDs))
	for _, v := range filter.IDs {
		ids[v] = true
	}
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	var items []*hotel.Hotel
	for _, h := range r.hotels {
		if h.DeletionMark && !filter.IncludeDeleted {
			continue
		}
		if len(ids) > 0 && !ids[h.ID] {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(h.Name), search) &&
			!strings.Contains(strings.ToLower(h.Code), search) {
			continue
		}
		items = append(items, copyHotel(h))
	}

	sortHotels(items, filter.OrderBy)
	return paginate(items, filter.Limit, filter.Offset), nil
}

// ExistsByCode implements hotel.Repository.
func (r *HotelRepo) ExistsByCode(ctx context.Context, code string) (bool, error) {
	_, err := r.GetByCode(ctx, code)
	if apperror.IsNotFound(err) {
		return false, nil
	}
	return err == nil, err
}

// ListAll implements hotel.Repository.
func (r *HotelRepo) ListAll(_ context.Context) ([]*hotel.Hotel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]*hotel.Hotel, 0, len(r.hotels))
	for _, h := range r.hotels {
		if !h.DeletionMark {
			items = append(items, copyHotel(h))
		}
	}
	sortHotels(items, "name")
	return items, nil
}

func sortHotels(items []*hotel.Hotel, orderBy string) {
	desc := strings.HasPrefix(orderBy, "-")
	field := strings.TrimPrefix(orderBy, "-")
	key := func(h *hotel.Hotel) string {
		switch field {
		case "code":
			return h.Code
		case "zone":
			return string(h.Zone)
		}
		return h.Name
	}
	sort.SliceStable(items, func(i, j int) bool {
		a, b := key(items[i]), key(items[j])
		if a == b {
			return items[i].ID.String() < items[j].ID.String()
		}
		if desc {
			return a > b
		}
		return a < b
	})
}

func paginate[T any](items []T, limit, offset int) domain.ListResult[T] {
	total := int64(len(items))
	if offset > len(items) {
		offset = len(items)
	}
	if offset < 0 {
		offset = 0
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	page := items[offset:end]
	if page == nil {
		page = []T{}
	}
	return domain.ListResult[T]{
		Items:      page,
		TotalCount: total,
		Limit:      limit,
		Offset:     offset,
	}
}
