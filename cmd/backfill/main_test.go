package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"laundrydesk/internal/app"
	"laundrydesk/internal/core/types"
	"laundrydesk/internal/domain/laundry"
)

func seeded(t *testing.T) *app.App {
	t.Helper()
	a := app.NewInMemory()
	bags := 2
	_, err := a.Services.Register(context.Background(), laundry.Registration{
		GuestName:  "Rosa",
		RoomNumber: "204",
		HotelName:  "Hotel Larco",
		BagCount:   &bags,
		Status:     "LABELED",
	})
	require.NoError(t, err)
	return a
}

func TestExecute_DryRunDoesNotWrite(t *testing.T) {
	a := seeded(t)
	var out bytes.Buffer

	require.NoError(t, execute(context.Background(), a, true, &out))

	var preview struct {
		MissingPrice         []map[string]any `json:"missingPrice"`
		TotalPotentialIncome types.Money      `json:"totalPotentialIncome"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &preview))
	assert.Len(t, preview.MissingPrice, 1)
	assert.True(t, preview.TotalPotentialIncome.Equal(types.MustMoney("50")))

	sum, err := a.Finance.Summary(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.True(t, sum.Income.IsZero())
}

func TestExecute_Migrate(t *testing.T) {
	a := seeded(t)
	var out bytes.Buffer

	require.NoError(t, execute(context.Background(), a, false, &out))

	var res struct {
		TransactionsCreated int `json:"transactionsCreated"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	assert.Equal(t, 1, res.TransactionsCreated)

	sum, err := a.Finance.Summary(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.True(t, sum.Income.Equal(types.MustMoney("50")), "income: got %s", sum.Income)
}

func TestRun_RequiresDSN(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	err := run([]string{"-dry-run"}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "DATABASE_URL")
}
