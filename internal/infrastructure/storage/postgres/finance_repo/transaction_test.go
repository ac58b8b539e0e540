package finance_repo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"laundrydesk/internal/domain/finance"
)

func TestListQuery(t *testing.T) {
	repo := NewTransactionRepo(nil)
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	sql, args, err := repo.listQuery(finance.ListFilter{
		Type:   finance.TypeIncome,
		Source: finance.SourceMigration,
		From:   &from,
		To:     &to,
	}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "FROM fin_transactions WHERE type = $1 AND source = $2 AND date >= $3 AND date <= $4")
	assert.Equal(t, []any{"INCOME", "MIGRATION", from, to}, args)
}

func TestColumnsIncludeServiceLink(t *testing.T) {
	repo := NewTransactionRepo(nil)
	assert.Contains(t, repo.cols, "service_id")
	assert.Contains(t, repo.cols, "payment_method")
	assert.Contains(t, repo.cols, "source")
}
