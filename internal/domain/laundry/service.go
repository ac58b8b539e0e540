package laundry

import (
	"context"
	"fmt"
	"strings"
	"time"

	"laundrydesk/internal/core/apperror"
	"laundrydesk/internal/core/id"
	"laundrydesk/internal/core/tx"
	"laundrydesk/internal/core/types"
	"laundrydesk/internal/domain"
	"laundrydesk/internal/domain/catalogs/hotel"
	"laundrydesk/internal/domain/finance"
	"laundrydesk/internal/domain/pricing"
	"laundrydesk/pkg/logger"
)

// HotelLookup resolves a hotel reference during registration.
type HotelLookup interface {
	GetByID(ctx context.Context, id id.ID) (*hotel.Hotel, error)
}

// IncomeRecorder books income for a service paid at pickup.
type IncomeRecorder interface {
	RecordIncome(ctx context.Context, e finance.Entry) (*finance.Transaction, error)
}

// Registration is the input of a pickup registration.
type Registration struct {
	GuestName  string
	RoomNumber string
	HotelID    *id.ID
	HotelName  string
	Weight     *types.Money
	BagCount   *int
	// Price, when set, is charged immediately and booked as POS income.
	Price         *types.Money
	PaymentMethod finance.PaymentMethod
	Status        string
	PickupDate    *time.Time
}

// Service provides business logic for laundry service records.
type Service struct {
	repo      Repository
	hotels    HotelLookup
	income    IncomeRecorder
	txManager tx.Manager
	now       func() time.Time
}

// NewService creates a new laundry service.
func NewService(repo Repository, hotels HotelLookup, income IncomeRecorder, txManager tx.Manager) *Service {
	if txManager == nil {
		txManager = tx.Nop{}
	}
	return &Service{
		repo:      repo,
		hotels:    hotels,
		income:    income,
		txManager: txManager,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Register records a pickup. A supplied price is booked as POS income in
// the same transaction.
func (s *Service) Register(ctx context.Context, in Registration) (*ServiceRecord, error) {
	now := s.now()

	status := StatusPickedUp
	if strings.TrimSpace(in.Status) != "" {
		status = ParseStatus(in.Status)
		if status == StatusUnknown {
			return nil, apperror.NewInvalidStatus(in.Status)
		}
	}

	rec := &ServiceRecord{
		ID:         id.New(),
		GuestName:  strings.TrimSpace(in.GuestName),
		RoomNumber: strings.TrimSpace(in.RoomNumber),
		HotelID:    in.HotelID,
		HotelName:  strings.TrimSpace(in.HotelName),
		Weight:     in.Weight,
		BagCount:   in.BagCount,
		Status:     string(status),
		PickupDate: in.PickupDate,
		CreatedAt:  now,
		UpdatedAt:  now,
		Version:    1,
	}
	if rec.PickupDate == nil {
		rec.PickupDate = &now
	}

	if rec.HotelID != nil && s.hotels != nil {
		h, err := s.hotels.GetByID(ctx, *rec.HotelID)
		if err != nil {
			return nil, err
		}
		rec.HotelName = h.Name
	}

	if in.Price != nil {
		price := types.RoundMoney(*in.Price)
		rec.Price = &price
		if rec.Weight != nil && rec.Weight.IsPositive() {
			rec.PriceCalculationMethod = pricing.MethodWeight
		} else {
			rec.PriceCalculationMethod = pricing.MethodBagCount
		}
		rec.PriceCalculatedAt = &now
	}

	if err := rec.Validate(ctx); err != nil {
		return nil, err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, rec); err != nil {
			return fmt.Errorf("create service: %w", err)
		}
		if !rec.HasPrice() || s.income == nil {
			return nil
		}
		serviceID := rec.ID
		_, err := s.income.RecordIncome(ctx, finance.Entry{
			Amount:        *rec.Price,
			Description:   fmt.Sprintf("Laundry service - %s (room %s)", rec.GuestName, rec.RoomNumber),
			Date:          rec.IncomeDate(now),
			PaymentMethod: in.PaymentMethod,
			Category:      finance.CategoryLaundryService,
			ServiceID:     &serviceID,
			HotelID:       rec.HotelID,
			HotelName:     rec.HotelName,
			Source:        finance.SourcePOS,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "service registered", "service_id", rec.ID, "hotel", rec.HotelName, "status", rec.Status)
	return rec, nil
}

// Get retrieves a service record by ID.
func (s *Service) Get(ctx context.Context, serviceID id.ID) (*ServiceRecord, error) {
	rec, err := s.repo.GetByID(ctx, serviceID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("service", serviceID.String())
		}
		return nil, err
	}
	return rec, nil
}

// List returns service records matching filter.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*ServiceRecord], error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	return s.repo.List(ctx, filter)
}

// UpdateStatus moves a service to a new lifecycle state. The new status
// is stored in canonical form. version 0 skips the optimistic check.
func (s *Service) UpdateStatus(ctx context.Context, serviceID id.ID, raw string, version int) (*ServiceRecord, error) {
	status := ParseStatus(raw)
	if status == StatusUnknown {
		return nil, apperror.NewInvalidStatus(raw)
	}

	var updated *ServiceRecord
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		rec, err := s.Get(ctx, serviceID)
		if err != nil {
			return err
		}
		if version == 0 {
			version = rec.Version
		}
		if err := s.repo.UpdateStatus(ctx, serviceID, status, version); err != nil {
			return fmt.Errorf("update status: %w", err)
		}
		updated, err = s.repo.GetByID(ctx, serviceID)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "service status changed", "service_id", serviceID, "status", status)
	return updated, nil
}
