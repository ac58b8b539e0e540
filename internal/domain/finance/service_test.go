package finance_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"laundrydesk/internal/core/apperror"
	appctx "laundrydesk/internal/core/context"
	"laundrydesk/internal/core/id"
	"laundrydesk/internal/core/tx"
	"laundrydesk/internal/core/types"
	"laundrydesk/internal/domain/finance"
	"laundrydesk/internal/infrastructure/storage/memory"
)

func newService() *finance.Service {
	return finance.NewService(memory.NewTransactionRepo(), tx.Nop{})
}

func TestRecordIncome_Defaults(t *testing.T) {
	svc := newService()
	ctx := appctx.WithUser(context.Background(), &appctx.UserContext{UserID: "admin"})

	got, err := svc.RecordIncome(ctx, finance.Entry{Amount: types.MustMoney("45.555")})
	require.NoError(t, err)

	assert.Equal(t, finance.TypeIncome, got.Type)
	assert.Equal(t, finance.CategoryLaundryService, got.Category)
	assert.Equal(t, finance.SourceManual, got.Source)
	assert.Equal(t, finance.PaymentCash, got.PaymentMethod)
	assert.Equal(t, "admin", got.CreatedBy)
	assert.Equal(t, "45.56", got.Amount.StringFixed(2))
	assert.False(t, got.Date.IsZero())
}

func TestRecordIncome_OnePerService(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	serviceID := id.New()

	_, err := svc.RecordIncome(ctx, finance.Entry{Amount: types.MustMoney("20"), ServiceID: &serviceID})
	require.NoError(t, err)

	_, err = svc.RecordIncome(ctx, finance.Entry{Amount: types.MustMoney("20"), ServiceID: &serviceID})
	assert.True(t, apperror.IsDuplicate(err))
	assert.Equal(t, 409, apperror.GetHTTPStatus(err))

	has, err := svc.HasIncomeForService(ctx, serviceID)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestRecordExpense_DoesNotCountAsServiceIncome(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	serviceID := id.New()

	got, err := svc.RecordExpense(ctx, finance.Entry{
		Amount:    types.MustMoney("12.50"),
		Category:  finance.CategorySupplies,
		ServiceID: &serviceID,
	})
	require.NoError(t, err)
	assert.Nil(t, got.ServiceID)

	has, err := svc.HasIncomeForService(ctx, serviceID)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestRecord_Validation(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	tests := []struct {
		name  string
		entry finance.Entry
		field string
	}{
		{"zero amount", finance.Entry{Amount: types.Zero()}, "amount"},
		{"negative amount", finance.Entry{Amount: types.MustMoney("-5")}, "amount"},
		{"bad method", finance.Entry{Amount: types.MustMoney("5"), PaymentMethod: "BITCOIN"}, "paymentMethod"},
		{"bad category", finance.Entry{Amount: types.MustMoney("5"), Category: finance.CategoryPayroll}, "category"},
		{"bad source", finance.Entry{Amount: types.MustMoney("5"), Source: "IMPORT"}, "source"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.RecordIncome(ctx, tt.entry)
			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperror.CodeValidation, appErr.Code)
			assert.Equal(t, tt.field, appErr.Details["field"])
		})
	}
}

func TestSummary(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	jan := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)

	_, err := svc.RecordIncome(ctx, finance.Entry{Amount: types.MustMoney("100"), Date: jan})
	require.NoError(t, err)
	_, err = svc.RecordIncome(ctx, finance.Entry{Amount: types.MustMoney("50"), Date: feb})
	require.NoError(t, err)
	_, err = svc.RecordExpense(ctx, finance.Entry{Amount: types.MustMoney("30.25"), Date: jan})
	require.NoError(t, err)

	all, err := svc.Summary(ctx, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "150.00", all.Income.StringFixed(2))
	assert.Equal(t, "30.25", all.Expense.StringFixed(2))
	assert.Equal(t, "119.75", all.Balance.StringFixed(2))
	assert.EqualValues(t, 2, all.IncomeCount)
	assert.EqualValues(t, 1, all.ExpenseCount)

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	january, err := svc.Summary(ctx, &from, &to)
	require.NoError(t, err)
	assert.Equal(t, "69.75", january.Balance.StringFixed(2))

	_, err = svc.Summary(ctx, &to, &from)
	assert.Error(t, err)
}

func TestList_Filters(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	hotelID := id.New()

	_, err := svc.RecordIncome(ctx, finance.Entry{Amount: types.MustMoney("10"), HotelID: &hotelID, Source: finance.SourcePOS})
	require.NoError(t, err)
	_, err = svc.RecordIncome(ctx, finance.Entry{Amount: types.MustMoney("10"), Source: finance.SourceMigration})
	require.NoError(t, err)
	_, err = svc.RecordExpense(ctx, finance.Entry{Amount: types.MustMoney("10")})
	require.NoError(t, err)

	res, err := svc.List(ctx, finance.ListFilter{Type: finance.TypeIncome})
	require.NoError(t, err)
	assert.EqualValues(t, 2, res.TotalCount)

	res, err = svc.List(ctx, finance.ListFilter{HotelID: &hotelID})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, finance.SourcePOS, res.Items[0].Source)

	_, err = svc.Get(ctx, id.New())
	assert.True(t, apperror.IsNotFound(err))
}
