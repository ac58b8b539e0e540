package postgres

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"laundrydesk/internal/core/id"
	"laundrydesk/internal/core/types"
	"laundrydesk/internal/domain/backfill"
	"laundrydesk/internal/domain/pricing"
)

func summaryWithDetails(n int) *backfill.MigrationSummary {
	s := &backfill.MigrationSummary{
		ID:       id.New(),
		RunAt:    time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC),
		RunBy:    "admin",
		Duration: 1500 * time.Millisecond,
	}
	for i := 0; i < n; i++ {
		s.Details = append(s.Details, backfill.Detail{
			ServiceID: id.New(),
			GuestName: strings.Repeat("g", 20),
			Action:    backfill.ActionPriceCalculated,
			Amount:    types.MustMoney("42.50"),
			Method:    pricing.MethodWeight,
		})
	}
	s.Errors = []backfill.ServiceError{{ServiceID: id.New(), GuestName: "x", Message: "boom"}}
	s.TotalProcessed = n
	s.PricesCalculated = n
	return s
}

func TestMigrationLog_SmallPayloadStaysPlain(t *testing.T) {
	log, err := NewMigrationLog(nil)
	require.NoError(t, err)

	in := summaryWithDetails(2)
	row, err := log.encodeSummary(in)
	require.NoError(t, err)

	assert.Equal(t, CompressionNone, row.CompressionAlgo)
	assert.Nil(t, row.PayloadCompressed)
	assert.EqualValues(t, 1500, row.DurationMs)
	assert.Equal(t, 1, row.ErrorCount)

	out, err := log.decodeRow(row)
	require.NoError(t, err)
	assert.Equal(t, in.ID, out.ID)
	assert.Equal(t, in.Duration, out.Duration)
	require.Len(t, out.Details, 2)
	assert.Equal(t, "boom", out.Errors[0].Message)
}

func TestMigrationLog_LargePayloadIsCompressed(t *testing.T) {
	log, err := NewMigrationLog(nil)
	require.NoError(t, err)

	in := summaryWithDetails(500)
	row, err := log.encodeSummary(in)
	require.NoError(t, err)

	assert.Equal(t, CompressionZstd, row.CompressionAlgo)
	assert.Nil(t, row.Payload)
	assert.NotEmpty(t, row.PayloadCompressed)

	out, err := log.decodeRow(row)
	require.NoError(t, err)
	require.Len(t, out.Details, 500)
	assert.True(t, in.Details[499].Amount.Equal(out.Details[499].Amount))
	assert.Equal(t, in.Details[499].ServiceID, out.Details[499].ServiceID)
}
