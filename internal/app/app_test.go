package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"laundrydesk/internal/core/types"
	"laundrydesk/internal/domain/catalogs/hotel"
	"laundrydesk/internal/domain/laundry"
)

func TestInMemory_BackfillRoundTrip(t *testing.T) {
	ctx := context.Background()
	a := NewInMemory()
	defer a.Close()

	rate := types.MustMoney("5.00")
	h := hotel.NewHotel("", "Hotel Costa", "Av. Saenz Pena 120, Callao")
	h.PricePerKg = &rate
	require.NoError(t, a.Hotels.Create(ctx, h))
	assert.Equal(t, "HTL-00001", h.Code)

	weight := types.MustMoney("10")
	rec, err := a.Services.Register(ctx, laundry.Registration{
		GuestName:  "Ana",
		RoomNumber: "204",
		HotelID:    &h.ID,
		Weight:     &weight,
		Status:     "completed",
	})
	require.NoError(t, err)
	assert.Equal(t, "Hotel Costa", rec.HotelName)

	preview, err := a.Backfill.Preview(ctx)
	require.NoError(t, err)
	require.Len(t, preview.MissingPrice, 1)
	assert.True(t, preview.TotalPotentialIncome.Equal(types.MustMoney("50")))

	res, err := a.Backfill.Migrate(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.PricesCalculated)
	assert.Equal(t, 1, res.TransactionsCreated)

	sum, err := a.Finance.Summary(ctx, nil, nil)
	require.NoError(t, err)
	assert.True(t, sum.Income.Equal(types.MustMoney("50")))

	history, err := a.Backfill.History(ctx, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "system", history[0].RunBy)
}

func TestNew_EmptyURLUsesMemory(t *testing.T) {
	a, err := New(context.Background(), Config{})
	require.NoError(t, err)
	assert.Nil(t, a.Pool)
	assert.NotNil(t, a.Backfill)
}
