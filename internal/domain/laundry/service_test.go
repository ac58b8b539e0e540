package laundry_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"laundrydesk/internal/core/apperror"
	"laundrydesk/internal/core/id"
	"laundrydesk/internal/core/tx"
	"laundrydesk/internal/core/types"
	"laundrydesk/internal/domain/catalogs/hotel"
	"laundrydesk/internal/domain/finance"
	"laundrydesk/internal/domain/laundry"
	"laundrydesk/internal/domain/pricing"
	"laundrydesk/internal/infrastructure/storage/memory"
)

type fixture struct {
	svc     *laundry.Service
	ledger  *finance.Service
	txRepo  *memory.TransactionRepo
	hotelID id.ID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	hotels := memory.NewHotelRepo()
	h := hotel.NewHotel("HTL-00001", "Hotel Miraflores Park", "Av. Malecón de la Reserva 1035, Miraflores")
	require.NoError(t, hotels.Create(ctx, h))

	txRepo := memory.NewTransactionRepo()
	ledger := finance.NewService(txRepo, tx.Nop{})
	svc := laundry.NewService(memory.NewServiceRepo(), hotels, ledger, tx.Nop{})

	return &fixture{svc: svc, ledger: ledger, txRepo: txRepo, hotelID: h.ID}
}

func TestService_RegisterWithoutPrice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	weight := types.MustMoney("4.5")

	rec, err := f.svc.Register(ctx, laundry.Registration{
		GuestName:  "Ana Torres",
		RoomNumber: "304",
		HotelID:    &f.hotelID,
		Weight:     &weight,
	})
	require.NoError(t, err)

	assert.Equal(t, "Hotel Miraflores Park", rec.HotelName)
	assert.Equal(t, string(laundry.StatusPickedUp), rec.Status)
	assert.Nil(t, rec.Price)
	assert.NotNil(t, rec.PickupDate)

	has, err := f.txRepo.HasIncomeForService(ctx, rec.ID)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestService_RegisterWithPriceBooksPOSIncome(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	price := types.MustMoney("45")
	weight := types.MustMoney("4.5")

	rec, err := f.svc.Register(ctx, laundry.Registration{
		GuestName:     "Luis Paz",
		RoomNumber:    "101",
		HotelID:       &f.hotelID,
		Weight:        &weight,
		Price:         &price,
		PaymentMethod: finance.PaymentYape,
	})
	require.NoError(t, err)
	assert.Equal(t, pricing.MethodWeight, rec.PriceCalculationMethod)

	list, err := f.ledger.List(ctx, finance.ListFilter{ServiceID: &rec.ID})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)

	income := list.Items[0]
	assert.Equal(t, finance.TypeIncome, income.Type)
	assert.Equal(t, finance.SourcePOS, income.Source)
	assert.Equal(t, finance.PaymentYape, income.PaymentMethod)
	assert.True(t, price.Equal(income.Amount))
	assert.Equal(t, "Hotel Miraflores Park", income.HotelName)
}

func TestService_RegisterValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, laundry.Registration{RoomNumber: "1", HotelName: "X"})
	assert.Equal(t, apperror.CodeValidation, mustAppErr(t, err).Code)

	_, err = f.svc.Register(ctx, laundry.Registration{GuestName: "Guest"})
	assert.Equal(t, apperror.CodeValidation, mustAppErr(t, err).Code)

	_, err = f.svc.Register(ctx, laundry.Registration{GuestName: "Guest", HotelName: "X", Status: "LOST"})
	assert.Equal(t, apperror.CodeInvalidStatus, mustAppErr(t, err).Code)

	missing := id.New()
	_, err = f.svc.Register(ctx, laundry.Registration{GuestName: "Guest", HotelID: &missing})
	assert.True(t, apperror.IsNotFound(err))
}

func TestService_UpdateStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pickup := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	rec, err := f.svc.Register(ctx, laundry.Registration{
		GuestName:  "Rosa",
		HotelName:  "Hotel Sin Registro",
		PickupDate: &pickup,
	})
	require.NoError(t, err)

	updated, err := f.svc.UpdateStatus(ctx, rec.ID, "en proceso", 0)
	require.NoError(t, err)
	assert.Equal(t, string(laundry.StatusInProcess), updated.Status)
	assert.Equal(t, rec.Version+1, updated.Version)

	_, err = f.svc.UpdateStatus(ctx, rec.ID, "completed", rec.Version)
	assert.True(t, apperror.IsConcurrentModification(err))

	_, err = f.svc.UpdateStatus(ctx, rec.ID, "teleported", 0)
	assert.Equal(t, apperror.CodeInvalidStatus, mustAppErr(t, err).Code)

	_, err = f.svc.UpdateStatus(ctx, id.New(), "completed", 0)
	assert.True(t, apperror.IsNotFound(err))
}

func TestService_ListByStatusResolvesLegacySpellings(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewServiceRepo()
	for _, status := range []string{"completed", "COMPLETADO", "in process"} {
		require.NoError(t, repo.Create(ctx, &laundry.ServiceRecord{
			ID:        id.New(),
			GuestName: "G",
			HotelName: "H",
			Status:    status,
			CreatedAt: time.Now(),
		}))
	}
	svc := laundry.NewService(repo, nil, nil, nil)

	res, err := svc.List(ctx, laundry.ListFilter{Statuses: []laundry.Status{laundry.StatusCompleted}})
	require.NoError(t, err)
	assert.EqualValues(t, 2, res.TotalCount)
}

func TestServiceRecord_IncomeDate(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	pickup := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
	created := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, pickup, (&laundry.ServiceRecord{PickupDate: &pickup, CreatedAt: created}).IncomeDate(now))
	assert.Equal(t, created, (&laundry.ServiceRecord{CreatedAt: created}).IncomeDate(now))
	assert.Equal(t, now, (&laundry.ServiceRecord{}).IncomeDate(now))
}

func mustAppErr(t *testing.T, err error) *apperror.AppError {
	t.Helper()
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok, "expected AppError, got %v", err)
	return appErr
}
