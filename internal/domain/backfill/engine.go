package backfill

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"laundrydesk/internal/core/apperror"
	appctx "laundrydesk/internal/core/context"
	"laundrydesk/internal/core/id"
	"laundrydesk/internal/core/types"
	"laundrydesk/internal/domain"
	"laundrydesk/internal/domain/catalogs/hotel"
	"laundrydesk/internal/domain/finance"
	"laundrydesk/internal/domain/laundry"
	"laundrydesk/internal/domain/pricing"
	"laundrydesk/pkg/logger"
)

var tracer = otel.Tracer("laundrydesk/backfill")

// ServiceStore is the part of the service repository the engine needs.
type ServiceStore interface {
	List(ctx context.Context, filter laundry.ListFilter) (domain.ListResult[*laundry.ServiceRecord], error)
	UpdatePrice(ctx context.Context, id id.ID, patch laundry.PricePatch) error
}

// HotelSource provides the hotel snapshot for a run.
type HotelSource interface {
	ListAll(ctx context.Context) ([]*hotel.Hotel, error)
}

// Ledger checks and books income.
type Ledger interface {
	HasIncomeForService(ctx context.Context, serviceID id.ID) (bool, error)
	RecordIncome(ctx context.Context, e finance.Entry) (*finance.Transaction, error)
}

// AuditLog stores run summaries.
type AuditLog interface {
	Append(ctx context.Context, s *MigrationSummary) error
	List(ctx context.Context, limit int) ([]*MigrationSummary, error)
}

// Engine runs the financial backfill.
type Engine struct {
	services ServiceStore
	hotels   HotelSource
	ledger   Ledger
	audit    AuditLog
	now      func() time.Time

	// mu serializes Migrate runs on this engine.
	mu sync.Mutex
}

// NewEngine creates a backfill engine. audit may be nil.
func NewEngine(services ServiceStore, hotels HotelSource, ledger Ledger, audit AuditLog) *Engine {
	return &Engine{
		services: services,
		hotels:   hotels,
		ledger:   ledger,
		audit:    audit,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// snapshot is the input of a run: eligible services plus the hotel index.
type snapshot struct {
	services []*laundry.ServiceRecord
	hotels   *HotelIndex
	skipped  int
}

func (e *Engine) load(ctx context.Context) (*snapshot, error) {
	all, err := e.services.List(ctx, laundry.ListFilter{})
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("load services: %w", err))
	}
	hotels, err := e.hotels.ListAll(ctx)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("load hotels: %w", err))
	}

	snap := &snapshot{hotels: NewHotelIndex(hotels)}
	for _, rec := range all.Items {
		if rec.CanonicalStatus().IsBackfillEligible() {
			snap.services = append(snap.services, rec)
		} else {
			snap.skipped++
		}
	}
	return snap, nil
}

// Migrate assigns missing prices to eligible services and books one
// MIGRATION income per service that has none. Failures on a single service
// are collected in the result; only a failure to load input aborts the run.
// Running it again changes nothing.
func (e *Engine) Migrate(ctx context.Context) (*Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ctx, span := tracer.Start(ctx, "backfill.migrate")
	defer span.End()

	log := logger.FromContext(ctx).WithComponent("backfill")
	started := e.now()

	snap, err := e.load(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "load failed")
		log.Errorw("backfill aborted", "error", err)
		return nil, err
	}
	log.Infow("backfill started",
		"eligible", len(snap.services),
		"skipped", snap.skipped,
		"hotels", snap.hotels.Len(),
	)

	res := &Result{Errors: []ServiceError{}, Details: []Detail{}}
	for _, rec := range snap.services {
		if err := ctx.Err(); err != nil {
			span.RecordError(err)
			return nil, err
		}
		res.TotalProcessed++
		e.migrateOne(ctx, rec, snap.hotels, res)
	}

	span.SetAttributes(
		attribute.Int("backfill.processed", res.TotalProcessed),
		attribute.Int("backfill.prices", res.PricesCalculated),
		attribute.Int("backfill.transactions", res.TransactionsCreated),
		attribute.Int("backfill.errors", len(res.Errors)),
	)

	e.appendSummary(ctx, started, res)

	log.Infow("backfill finished",
		"processed", res.TotalProcessed,
		"prices_calculated", res.PricesCalculated,
		"transactions_created", res.TransactionsCreated,
		"errors", len(res.Errors),
		"duration", e.now().Sub(started),
	)
	return res, nil
}

func (e *Engine) migrateOne(ctx context.Context, rec *laundry.ServiceRecord, hotels *HotelIndex, res *Result) {
	fail := func(err error) {
		logger.Warn(ctx, "backfill service failed", "service_id", rec.ID, "error", err)
		res.Errors = append(res.Errors, ServiceError{
			ServiceID: rec.ID,
			GuestName: rec.GuestName,
			Message:   err.Error(),
		})
	}

	h := hotels.Resolve(rec.HotelID, rec.HotelName)
	priced := pricing.Compute(pricingInput(rec, h))

	if priced.Calculated() {
		patch := laundry.PricePatch{
			Price:        priced.Price,
			Method:       priced.Method,
			CalculatedAt: e.now(),
		}
		if err := e.services.UpdatePrice(ctx, rec.ID, patch); err != nil {
			fail(fmt.Errorf("update price: %w", err))
			return
		}
		res.PricesCalculated++
		res.Details = append(res.Details, Detail{
			ServiceID: rec.ID,
			GuestName: rec.GuestName,
			Action:    ActionPriceCalculated,
			Amount:    priced.Price,
			Method:    priced.Method,
		})
	}

	exists, err := e.ledger.HasIncomeForService(ctx, rec.ID)
	if err != nil {
		fail(fmt.Errorf("check income: %w", err))
		return
	}
	if exists {
		return
	}

	serviceID := rec.ID
	entry := finance.Entry{
		Amount:        priced.Price,
		Description:   fmt.Sprintf("Laundry service - %s (room %s)", rec.GuestName, rec.RoomNumber),
		Date:          rec.IncomeDate(e.now()),
		PaymentMethod: finance.PaymentPending,
		Category:      finance.CategoryLaundryService,
		ServiceID:     &serviceID,
		HotelID:       rec.HotelID,
		HotelName:     rec.HotelName,
		Source:        finance.SourceMigration,
		Notes:         MigrationNotes,
	}
	if h != nil {
		hotelID := h.ID
		entry.HotelID = &hotelID
		entry.HotelName = h.Name
	}

	if _, err := e.ledger.RecordIncome(ctx, entry); err != nil {
		if apperror.IsDuplicate(err) {
			// Booked concurrently by another process.
			return
		}
		fail(fmt.Errorf("create transaction: %w", err))
		return
	}
	res.TransactionsCreated++
	res.Details = append(res.Details, Detail{
		ServiceID: rec.ID,
		GuestName: rec.GuestName,
		Action:    ActionTransactionCreated,
		Amount:    priced.Price,
		Method:    priced.Method,
	})
}

func (e *Engine) appendSummary(ctx context.Context, started time.Time, res *Result) {
	if e.audit == nil {
		return
	}
	runBy := appctx.GetUserID(ctx)
	if runBy == "" {
		runBy = "system"
	}
	summary := &MigrationSummary{
		ID:       id.New(),
		RunAt:    started,
		RunBy:    runBy,
		Duration: e.now().Sub(started),
		Result:   *res,
	}
	if err := e.audit.Append(ctx, summary); err != nil {
		logger.Warn(ctx, "failed to store migration summary", "error", err)
	}
}

// History returns the most recent run summaries, newest first.
func (e *Engine) History(ctx context.Context, limit int) ([]*MigrationSummary, error) {
	if e.audit == nil {
		return []*MigrationSummary{}, nil
	}
	if limit <= 0 {
		limit = 20
	}
	return e.audit.List(ctx, limit)
}

// Preview reports what Migrate would do without writing anything.
func (e *Engine) Preview(ctx context.Context) (*Preview, error) {
	ctx, span := tracer.Start(ctx, "backfill.preview")
	defer span.End()

	snap, err := e.load(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "load failed")
		return nil, err
	}

	p := &Preview{
		MissingPrice:         []PreviewItem{},
		MissingTransaction:   []PreviewItem{},
		TotalPotentialIncome: types.Zero(),
	}
	for _, rec := range snap.services {
		h := snap.hotels.Resolve(rec.HotelID, rec.HotelName)
		priced := pricing.Compute(pricingInput(rec, h))

		exists, err := e.ledger.HasIncomeForService(ctx, rec.ID)
		if err != nil {
			return nil, apperror.NewInternal(fmt.Errorf("check income for %s: %w", rec.ID, err))
		}

		item := PreviewItem{
			ServiceID:      rec.ID,
			GuestName:      rec.GuestName,
			RoomNumber:     rec.RoomNumber,
			HotelName:      rec.HotelName,
			Status:         rec.Status,
			EstimatedPrice: priced.Price,
			Method:         priced.Method,
			HasTransaction: exists,
		}
		if h != nil {
			item.HotelName = h.Name
		}

		switch {
		case priced.Calculated():
			p.MissingPrice = append(p.MissingPrice, item)
		case !exists:
			item.Method = rec.PriceCalculationMethod
			p.MissingTransaction = append(p.MissingTransaction, item)
		default:
			continue
		}
		if !exists {
			p.TotalPotentialIncome = p.TotalPotentialIncome.Add(priced.Price)
		}
	}
	return p, nil
}

func pricingInput(rec *laundry.ServiceRecord, h *hotel.Hotel) pricing.Input {
	in := pricing.Input{
		ExistingPrice: rec.Price,
		Weight:        rec.Weight,
		BagCount:      rec.BagCount,
	}
	if h != nil {
		in.HotelPricePerKg = h.PricePerKg
	}
	return in
}
