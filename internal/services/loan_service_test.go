package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/dpa-api/internal/finance"
	"github.com/sjperalta/dpa-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoanService_Apply(t *testing.T) {
	env := newTestEnv(day(2024, time.December, 1))
	svc := env.loanService()
	ctx := context.Background()

	loan, err := svc.Apply(ctx, LoanInput{
		UserID:         7,
		LoanAmount:     decimal.NewFromInt(120000),
		InterestRate:   decimal.NewFromInt(12),
		DurationMonths: 12,
	}, testActor)
	require.NoError(t, err)

	assert.Equal(t, models.LoanStatusPending, loan.Status)
	assert.Equal(t, "10661.85", loan.MonthlyRepayment.StringFixed(2))
	assert.Equal(t, "127942.26", loan.TotalRepayable.StringFixed(2))
	assert.Equal(t, "127942.26", loan.Balance.StringFixed(2))
	assert.True(t, loan.AmountPaid.IsZero())
	assert.True(t, day(2024, time.December, 1).Equal(loan.ApplicationDate))
	assert.Equal(t, []string{"CREATE Loan"}, env.audits.actions())
}

func TestLoanService_ApplyValidation(t *testing.T) {
	env := newTestEnv(day(2024, time.December, 1))
	svc := env.loanService()
	ctx := context.Background()

	tests := []struct {
		name  string
		input LoanInput
		want  error
	}{
		{"zero amount", LoanInput{UserID: 7, InterestRate: decimal.NewFromInt(5), DurationMonths: 12}, ErrValidation},
		{"zero months", LoanInput{UserID: 7, LoanAmount: decimal.NewFromInt(1000), DurationMonths: 0}, ErrValidation},
		{"negative rate", LoanInput{UserID: 7, LoanAmount: decimal.NewFromInt(1000), InterestRate: decimal.NewFromInt(-1), DurationMonths: 6}, ErrValidation},
		{"unknown member", LoanInput{UserID: 99, LoanAmount: decimal.NewFromInt(1000), DurationMonths: 6}, ErrValidation},
		{"suspended member", LoanInput{UserID: 8, LoanAmount: decimal.NewFromInt(1000), DurationMonths: 6}, ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Apply(ctx, tt.input, testActor)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoanService_Lifecycle(t *testing.T) {
	env := newTestEnv(day(2024, time.December, 1))
	env.loans = newMockLoanRepository(models.Loan{
		ID:             1,
		UserID:         7,
		LoanAmount:     decimal.NewFromInt(100000),
		TotalRepayable: decimal.NewFromInt(100000),
		AmountPaid:     decimal.Zero,
		Balance:        decimal.NewFromInt(100000),
		Status:         models.LoanStatusPending,
	})
	svc := env.loanService()
	ctx := context.Background()

	_, err := svc.RecordPayment(ctx, 1, decimal.NewFromInt(100), testActor)
	assert.ErrorIs(t, err, ErrInvalidState, "pending loans take no payments")

	loan, err := svc.Approve(ctx, 1, testActor)
	require.NoError(t, err)
	assert.Equal(t, models.LoanStatusApproved, loan.Status)
	assert.NotNil(t, loan.ApprovedAt)

	_, err = svc.Approve(ctx, 1, testActor)
	assert.ErrorIs(t, err, ErrInvalidState)

	loan, err = svc.RecordPayment(ctx, 1, decimal.NewFromInt(70000), testActor)
	require.NoError(t, err)
	assert.Equal(t, models.LoanStatusActive, loan.Status)
	assert.Equal(t, "30000.00", loan.Balance.StringFixed(2))

	_, err = svc.RecordPayment(ctx, 1, decimal.NewFromInt(30001), testActor)
	assert.ErrorIs(t, err, finance.ErrInvalidPayment)

	stored, err := svc.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "70000.00", stored.AmountPaid.StringFixed(2), "rejected payment leaves the loan untouched")

	loan, err = svc.RecordPayment(ctx, 1, decimal.NewFromInt(30000), testActor)
	require.NoError(t, err)
	assert.True(t, loan.Balance.IsZero())
	assert.Equal(t, models.LoanStatusActive, loan.Status, "a settled loan stays open until closed")

	_, err = svc.RecordPayment(ctx, 1, decimal.NewFromInt(1), testActor)
	assert.ErrorIs(t, err, finance.ErrInvalidPayment)

	loan, err = svc.Close(ctx, 1, testActor)
	require.NoError(t, err)
	assert.Equal(t, models.LoanStatusClosed, loan.Status)
	assert.NotNil(t, loan.ClosedAt)

	_, err = svc.Close(ctx, 1, testActor)
	assert.ErrorIs(t, err, ErrInvalidState)

	assert.Equal(t, []string{"APPROVE Loan", "PAYMENT Loan", "PAYMENT Loan", "CLOSE Loan"}, env.audits.actions())
}

func TestLoanService_PaymentAuditUsesAppliedAmount(t *testing.T) {
	env := newTestEnv(day(2024, time.December, 1))
	env.loans = newMockLoanRepository(models.Loan{
		ID:             4,
		UserID:         7,
		LoanAmount:     decimal.NewFromInt(1000),
		TotalRepayable: decimal.NewFromInt(1000),
		AmountPaid:     decimal.Zero,
		Balance:        decimal.NewFromInt(1000),
		Status:         models.LoanStatusActive,
	})
	svc := env.loanService()

	loan, err := svc.RecordPayment(context.Background(), 4, decimal.RequireFromString("100.456"), testActor)
	require.NoError(t, err)
	assert.Equal(t, "100.46", loan.AmountPaid.StringFixed(2))
	assert.Equal(t, []string{"Payment of 100.46 recorded, balance 899.54"}, env.audits.details())
}

func TestLoanService_RejectAndDelete(t *testing.T) {
	env := newTestEnv(day(2024, time.December, 1))
	env.loans = newMockLoanRepository(models.Loan{ID: 3, UserID: 7, Status: models.LoanStatusPending})
	svc := env.loanService()
	ctx := context.Background()

	loan, err := svc.Reject(ctx, 3, testActor)
	require.NoError(t, err)
	assert.Equal(t, models.LoanStatusRejected, loan.Status)

	_, err = svc.Close(ctx, 3, testActor)
	assert.ErrorIs(t, err, ErrInvalidState)

	require.NoError(t, svc.Delete(ctx, 3, testActor))
	assert.ErrorIs(t, svc.Delete(ctx, 3, testActor), ErrNotFound)
	_, err = svc.Approve(ctx, 3, testActor)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoanService_ListByPeriod(t *testing.T) {
	env := newTestEnv(day(2024, time.December, 1))
	env.loans = newMockLoanRepository(
		models.Loan{ID: 1, UserID: 7, LoanAmount: decimal.NewFromInt(1000), TotalRepayable: decimal.NewFromInt(1100), Status: models.LoanStatusPending, ApplicationDate: day(2024, time.November, 20)},
		models.Loan{ID: 2, UserID: 7, LoanAmount: decimal.NewFromInt(5000), TotalRepayable: decimal.NewFromInt(5500), Status: models.LoanStatusActive, ApplicationDate: day(2023, time.May, 1)},
	)
	svc := env.loanService()

	listing, err := svc.List(context.Background(), LedgerListQuery{})
	require.NoError(t, err)
	assert.Equal(t, "2024-2025", listing.Period)
	require.Len(t, listing.Loans, 1)
	assert.Equal(t, 1, listing.Portfolio.Pending)
	assert.Equal(t, "100.00", listing.Portfolio.TotalInterest.StringFixed(2))

	listing, err = svc.List(context.Background(), LedgerListQuery{Period: "all"})
	require.NoError(t, err)
	assert.Len(t, listing.Loans, 2)
}

func TestLoanService_Quote(t *testing.T) {
	env := newTestEnv(day(2024, time.December, 1))
	q := env.loanService().Quote(decimal.NewFromInt(120000), decimal.Zero, 12)
	assert.Equal(t, "10000.00", q.MonthlyPayment.StringFixed(2))
	assert.True(t, q.TotalInterest.IsZero())

	q = env.loanService().Quote(decimal.NewFromInt(120000), decimal.NewFromInt(12), MaxLoanMonths)
	assert.True(t, q.MonthlyPayment.IsPositive())

	q = env.loanService().Quote(decimal.NewFromInt(120000), decimal.NewFromInt(12), 1_000_000)
	assert.True(t, q.MonthlyPayment.IsZero(), "terms beyond the maximum are not quoted")
	assert.True(t, q.TotalRepayable.IsZero())
}
