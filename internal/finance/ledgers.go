package finance

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/dpa-api/internal/models"
)

// Ledgers is an immutable snapshot of the three member ledgers for one computation pass.
type Ledgers struct {
	Savings []models.SavingsRecord `json:"savings"`
	Shares  []models.ShareRecord   `json:"shares"`
	Loans   []models.Loan          `json:"loans"`
}

// Filter returns the records whose effective date lies in p. The receiver is not modified.
func (l Ledgers) Filter(p Period) Ledgers {
	return Ledgers{
		Savings: FilterByPeriod(l.Savings, SavingsDate, p),
		Shares:  FilterByPeriod(l.Shares, ShareDate, p),
		Loans:   FilterByPeriod(l.Loans, LoanDate, p),
	}
}

// FilterByPeriod keeps the records dated inside p, preserving input order.
func FilterByPeriod[T any](records []T, date func(T) time.Time, p Period) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if p.Contains(date(r)) {
			out = append(out, r)
		}
	}
	return out
}

// Sum adds amount(r) over records.
func Sum[T any](records []T, amount func(T) decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(amount(r))
	}
	return total
}

// Field accessors used by the aggregation helpers.

func SavingsDate(s models.SavingsRecord) time.Time { return s.EffectiveDate() }

func SavingsAmount(s models.SavingsRecord) decimal.Decimal { return s.Amount }

func SavingsUser(s models.SavingsRecord) uint { return s.UserID }

func ShareDate(s models.ShareRecord) time.Time { return s.EffectiveDate() }

func ShareValue(s models.ShareRecord) decimal.Decimal { return s.TotalValue }

func ShareUser(s models.ShareRecord) uint { return s.UserID }

func LoanDate(l models.Loan) time.Time { return l.EffectiveDate() }

func LoanPrincipal(l models.Loan) decimal.Decimal { return l.LoanAmount }

func LoanUser(l models.Loan) uint { return l.UserID }
