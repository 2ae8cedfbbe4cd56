package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/dpa-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerService_Fetch(t *testing.T) {
	env := newTestEnv(day(2024, time.December, 1))
	env.savings.records = []models.SavingsRecord{
		{ID: 1, UserID: 7, Amount: decimal.NewFromInt(100)},
		{ID: 2, UserID: 8, Amount: decimal.NewFromInt(200)},
	}
	env.shares.records = []models.ShareRecord{{ID: 1, UserID: 7, SharesCount: 1}}
	env.loans = newMockLoanRepository(models.Loan{ID: 1, UserID: 8})
	env.ledgerSvc = NewLedgerService(env.savings, env.shares, env.loans)

	l, err := env.ledgerSvc.ForMember(context.Background(), 7)
	require.NoError(t, err)
	assert.Len(t, l.Savings, 1)
	assert.Len(t, l.Shares, 1)
	assert.Empty(t, l.Loans)
}

func TestLedgerService_FetchFailsAsAWhole(t *testing.T) {
	env := newTestEnv(day(2024, time.December, 1))
	env.savings.records = []models.SavingsRecord{{ID: 1, UserID: 7}}
	env.shares.err = errors.New("shares table missing")

	l, err := env.ledgerSvc.ForMember(context.Background(), 7)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch shares")
	assert.Nil(t, l.Savings)
}
