package finance

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/dpa-api/internal/models"
)

// compoundPrecision bounds the digits kept while raising (1+r) to the term.
const compoundPrecision = 24

var monthsPerYear = decimal.NewFromInt(12)

// Amortization holds the repayment figures of a fixed-rate loan, rounded to cents.
type Amortization struct {
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	TotalRepayable decimal.Decimal `json:"total_repayable"`
	TotalInterest  decimal.Decimal `json:"total_interest"`
}

// Amortize computes the equal-installment schedule for principal at an annual
// percentage rate over months. A zero rate splits the principal evenly. Inputs that
// cannot produce a finite schedule (non-positive principal or term, negative rate)
// yield all-zero figures, since forms call this while fields are still being filled.
func Amortize(principal, annualRatePercent decimal.Decimal, months int) Amortization {
	if months <= 0 || !principal.IsPositive() || annualRatePercent.IsNegative() {
		return Amortization{MonthlyPayment: decimal.Zero, TotalRepayable: decimal.Zero, TotalInterest: decimal.Zero}
	}

	n := decimal.NewFromInt(int64(months))

	var monthly decimal.Decimal
	if annualRatePercent.IsZero() {
		monthly = principal.Div(n)
	} else {
		rate := annualRatePercent.Div(hundred).Div(monthsPerYear)
		factor := compound(decimal.NewFromInt(1).Add(rate), months)
		monthly = principal.Mul(rate).Mul(factor).Div(factor.Sub(decimal.NewFromInt(1)))
	}

	total := monthly.Mul(n)
	return Amortization{
		MonthlyPayment: RoundCents(monthly),
		TotalRepayable: RoundCents(total),
		TotalInterest:  RoundCents(total.Sub(principal)),
	}
}

// compound raises base to months by repeated squaring.
func compound(base decimal.Decimal, months int) decimal.Decimal {
	result := decimal.NewFromInt(1)
	for months > 0 {
		if months&1 == 1 {
			result = result.Mul(base).Round(compoundPrecision)
		}
		months >>= 1
		if months > 0 {
			base = base.Mul(base).Round(compoundPrecision)
		}
	}
	return result
}

// WithAmortization fills a loan's derived figures from its principal, rate and term
// and recomputes the balance against what has been paid so far.
func WithAmortization(loan models.Loan) models.Loan {
	a := Amortize(loan.LoanAmount, loan.InterestRate, loan.DurationMonths)
	loan.MonthlyRepayment = a.MonthlyPayment
	loan.TotalRepayable = a.TotalRepayable
	loan.Balance = outstanding(loan.TotalRepayable, loan.AmountPaid)
	return loan
}

// ApplyPartialPayment records amount against the loan and returns the updated copy.
// The amount must be positive and no larger than the outstanding balance.
func ApplyPartialPayment(loan models.Loan, amount decimal.Decimal) (models.Loan, error) {
	if !amount.IsPositive() {
		return loan, fmt.Errorf("%w: amount must be greater than zero", ErrInvalidPayment)
	}
	if amount.GreaterThan(loan.Balance) {
		return loan, fmt.Errorf("%w: amount %s exceeds outstanding balance %s",
			ErrInvalidPayment, FormatAmount(amount), FormatAmount(loan.Balance))
	}

	loan.AmountPaid = loan.AmountPaid.Add(amount)
	loan.Balance = outstanding(loan.TotalRepayable, loan.AmountPaid)
	return loan, nil
}

// PaidPercentage is AmountPaid over TotalRepayable as a percentage clamped to [0, 100].
func PaidPercentage(loan models.Loan) decimal.Decimal {
	return percentage(loan.AmountPaid, loan.TotalRepayable)
}

// AggregatePaidPercentage is the repaid share across several loans.
func AggregatePaidPercentage(loans []models.Loan) decimal.Decimal {
	paid := Sum(loans, func(l models.Loan) decimal.Decimal { return l.AmountPaid })
	total := Sum(loans, func(l models.Loan) decimal.Decimal { return l.TotalRepayable })
	return percentage(paid, total)
}

func percentage(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	pct := part.Div(whole).Mul(hundred)
	if pct.IsNegative() {
		return decimal.Zero
	}
	if pct.GreaterThan(hundred) {
		return hundred
	}
	return pct.Round(2)
}

func outstanding(total, paid decimal.Decimal) decimal.Decimal {
	return decimal.Max(decimal.Zero, total.Sub(paid))
}
