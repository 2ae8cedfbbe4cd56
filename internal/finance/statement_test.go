package finance

import (
	"testing"
	"time"

	"github.com/sjperalta/dpa-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleLedgers() Ledgers {
	return Ledgers{
		Savings: []models.SavingsRecord{
			{ID: 1, UserID: 1, Amount: dec("5000"), PaymentMonth: "November", PaymentDate: date(2024, time.November, 5)},
			{ID: 2, UserID: 1, Amount: dec("2500"), Type: models.SavingsTypeMonthly, PaymentDate: date(2024, time.December, 5)},
		},
		Shares: []models.ShareRecord{
			{ID: 1, UserID: 1, SharesCount: 10, ShareValue: dec("100"), TotalValue: dec("1000"), PurchaseDate: date(2024, time.November, 5)},
		},
		Loans: []models.Loan{
			{ID: 9, UserID: 1, LoanAmount: dec("50000"), ApplicationDate: date(2023, time.June, 1)},
		},
	}
}

func TestProjectTransactions(t *testing.T) {
	txs := ProjectTransactions(sampleLedgers())
	require.Len(t, txs, 4)

	assert.Equal(t, "Savings Contribution - Monthly Savings", txs[0].Description)
	assert.Equal(t, "Savings Contribution - November", txs[1].Description)
	assert.Equal(t, TransactionShare, txs[2].Type)
	assert.Equal(t, "Share Purchase - 10 Units", txs[2].Description)
	assert.Equal(t, "Loan Disbursement - #9", txs[3].Description)
	assert.False(t, txs[3].IsCredit)

	for i := 1; i < len(txs); i++ {
		assert.False(t, txs[i].Date.After(txs[i-1].Date), "transactions must be newest first")
	}
}

func TestBuildStatement(t *testing.T) {
	tests := []struct {
		name     string
		category Category
		period   string
		count    int
		credit   string
		debit    string
	}{
		{"everything", CategoryAll, AllYears, 4, "8500.00", "50000.00"},
		{"savings only", CategorySavings, AllYears, 2, "7500.00", "0.00"},
		{"loans only", CategoryLoans, AllYears, 1, "0.00", "50000.00"},
		{"shares in year", CategoryShares, "2024-2025", 1, "1000.00", "0.00"},
		{"year without loans", CategoryAll, "2024-2025", 3, "8500.00", "0.00"},
		{"empty year", CategoryAll, "2020-2021", 0, "0.00", "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt := BuildStatement(sampleLedgers(), tt.category, NewPeriod(tt.period, nil))
			assert.Len(t, stmt.Transactions, tt.count)
			assertAmount(t, tt.credit, stmt.TotalCredit)
			assertAmount(t, tt.debit, stmt.TotalDebit)
			assert.Equal(t, tt.category, stmt.Category)
		})
	}
}

func TestBuildStatementIsIdempotent(t *testing.T) {
	l := sampleLedgers()
	p := NewPeriod("2024-2025", nil)
	assert.Equal(t, BuildStatement(l, CategoryAll, p), BuildStatement(l, CategoryAll, p))
}

func TestStatementNegativeAmountsCountAsMagnitude(t *testing.T) {
	l := Ledgers{Savings: []models.SavingsRecord{{Amount: dec("-300"), PaymentDate: date(2024, time.January, 1)}}}
	stmt := BuildStatement(l, CategoryAll, NewPeriod(AllYears, nil))
	assertAmount(t, "300.00", stmt.TotalCredit)
}

func TestTotalByType(t *testing.T) {
	stmt := BuildStatement(sampleLedgers(), CategoryAll, NewPeriod(AllYears, nil))
	assertAmount(t, "7500.00", stmt.TotalByType(TransactionSavings))
	assertAmount(t, "1000.00", stmt.TotalByType(TransactionShare))
	assertAmount(t, "50000.00", stmt.TotalByType(TransactionLoan))
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input   string
		want    Category
		wantErr bool
	}{
		{"", CategoryAll, false},
		{"All Transactions", CategoryAll, false},
		{"savings", CategorySavings, false},
		{"Loans", CategoryLoans, false},
		{"share", CategoryShares, false},
		{"dividends", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCategory(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownCategory)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
