package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/dpa-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSavingsService_Create(t *testing.T) {
	env := newTestEnv(day(2024, time.December, 5))
	svc := env.savingsService()
	ctx := context.Background()

	record, err := svc.Create(ctx, SavingsInput{UserID: 7, Amount: decimal.RequireFromString("5000.456")}, testActor)
	require.NoError(t, err)
	assert.Equal(t, "5000.46", record.Amount.StringFixed(2))
	assert.Equal(t, models.SavingsTypeMonthly, record.Type)
	assert.True(t, day(2024, time.December, 5).Equal(record.PaymentDate))
	assert.Equal(t, "December", record.PaymentMonth)
	assert.Equal(t, []string{"CREATE Savings"}, env.audits.actions())
}

func TestSavingsService_CreateValidation(t *testing.T) {
	env := newTestEnv(day(2024, time.December, 5))
	svc := env.savingsService()

	tests := []struct {
		name  string
		input SavingsInput
	}{
		{"zero amount", SavingsInput{UserID: 7}},
		{"negative amount", SavingsInput{UserID: 7, Amount: decimal.NewFromInt(-10)}},
		{"unknown type", SavingsInput{UserID: 7, Amount: decimal.NewFromInt(10), Type: "Bonus"}},
		{"unknown member", SavingsInput{UserID: 42, Amount: decimal.NewFromInt(10)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.input, testActor)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
	assert.Empty(t, env.savings.records)
	assert.Empty(t, env.audits.actions())
}

func TestSavingsService_List(t *testing.T) {
	env := newTestEnv(day(2024, time.December, 5))
	env.savings.records = []models.SavingsRecord{
		{ID: 1, UserID: 7, Amount: decimal.NewFromInt(5000), PaymentDate: day(2024, time.November, 5)},
		{ID: 2, UserID: 8, Amount: decimal.NewFromInt(3000), PaymentDate: day(2024, time.December, 1)},
		{ID: 3, UserID: 7, Amount: decimal.NewFromInt(2000), PaymentDate: day(2024, time.November, 20)},
		{ID: 4, UserID: 8, Amount: decimal.NewFromInt(9000), PaymentDate: day(2023, time.June, 1)},
	}
	svc := env.savingsService()
	ctx := context.Background()

	t.Run("transactions in current year", func(t *testing.T) {
		listing, err := svc.List(ctx, LedgerListQuery{})
		require.NoError(t, err)
		assert.Equal(t, "2024-2025", listing.Period)
		assert.Equal(t, ViewTransactions, listing.View)
		assert.Equal(t, 3, listing.Count)
		assert.Equal(t, "10000.00", listing.Total.StringFixed(2))
		require.Len(t, listing.Monthly, 2)
		assert.Equal(t, "Nov", listing.Monthly[0].PeriodLabel)
		assert.Equal(t, "7000.00", listing.Monthly[0].Total.StringFixed(2))
		assert.Nil(t, listing.Members)
	})

	t.Run("members view", func(t *testing.T) {
		listing, err := svc.List(ctx, LedgerListQuery{View: ViewMembers, Period: "all"})
		require.NoError(t, err)
		assert.Nil(t, listing.Records)
		require.Len(t, listing.Members, 2)
		assert.Equal(t, "Bola Ade", listing.Members[0].FullName)
		assert.Equal(t, "12000.00", listing.Members[0].TotalAmount.StringFixed(2))
		assert.Equal(t, "DPA-007", listing.Members[1].MemberID)
		assert.Equal(t, 2, listing.Members[1].TransactionCount)
	})

	t.Run("older year", func(t *testing.T) {
		listing, err := svc.List(ctx, LedgerListQuery{Period: "2022-2023"})
		require.NoError(t, err)
		assert.Equal(t, 1, listing.Count)
	})

	t.Run("member summary", func(t *testing.T) {
		summary, err := svc.Summary(ctx, 7, "")
		require.NoError(t, err)
		assert.Equal(t, "7000.00", summary.Total.StringFixed(2))
		assert.Nil(t, summary.Records)
	})
}
