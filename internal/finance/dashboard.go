package finance

import (
	"github.com/shopspring/decimal"
	"github.com/sjperalta/dpa-api/internal/models"
)

// AdminDashboard holds the association-wide figures for one period.
type AdminDashboard struct {
	TotalMembers        int             `json:"total_members"`
	TotalSavings        decimal.Decimal `json:"total_savings"`
	TotalShares         decimal.Decimal `json:"total_shares"`
	TotalSharesCount    int             `json:"total_shares_count"`
	TotalLoans          decimal.Decimal `json:"total_loans"`
	OutstandingBalances decimal.Decimal `json:"outstanding_balances"`
	MonthlySavings      []MonthlyTotal  `json:"monthly_savings"`
	ShareGrowth         []MonthlyTotal  `json:"share_growth"`
	LoanDistribution    []StatusCount   `json:"loan_distribution"`
	Loans               LoanPortfolio   `json:"loans"`
}

// LoanPortfolio summarizes a set of loans for the loans management view.
type LoanPortfolio struct {
	Pending        int             `json:"pending"`
	TotalDisbursed decimal.Decimal `json:"total_disbursed"`
	TotalInterest  decimal.Decimal `json:"total_interest"`
	TotalRepaid    decimal.Decimal `json:"total_repaid"`
	TotalBalance   decimal.Decimal `json:"total_balance"`
}

// MemberDashboard holds one member's figures for one period.
type MemberDashboard struct {
	SavingsTotal   decimal.Decimal `json:"savings_total"`
	SharesTotal    decimal.Decimal `json:"shares_total"`
	SharesCount    int             `json:"shares_count"`
	AccountBalance decimal.Decimal `json:"account_balance"`
	LoanBalance    decimal.Decimal `json:"loan_balance"`
	LoanPaid       decimal.Decimal `json:"loan_paid"`
	LoanRepayable  decimal.Decimal `json:"loan_repayable"`
	PaidPercentage decimal.Decimal `json:"paid_percentage"`
	SavingsByMonth []MonthlyTotal  `json:"savings_by_month"`
	ActiveLoan     *LoanProgress   `json:"active_loan"`
}

// LoanProgress pairs a loan with its repayment progress.
type LoanProgress struct {
	Loan           models.Loan     `json:"loan"`
	PaidPercentage decimal.Decimal `json:"paid_percentage"`
}

// BuildAdminDashboard aggregates already period-filtered ledgers. Outstanding
// balances are savings plus shares minus loans disbursed.
func BuildAdminDashboard(memberCount int, l Ledgers) AdminDashboard {
	savings := Sum(l.Savings, SavingsAmount)
	shares := Sum(l.Shares, ShareValue)
	loans := Sum(l.Loans, LoanPrincipal)

	sharesCount := 0
	for _, s := range l.Shares {
		sharesCount += s.SharesCount
	}

	return AdminDashboard{
		TotalMembers:        memberCount,
		TotalSavings:        savings,
		TotalShares:         shares,
		TotalSharesCount:    sharesCount,
		TotalLoans:          loans,
		OutstandingBalances: savings.Add(shares).Sub(loans),
		MonthlySavings:      MonthlySeries(l.Savings, SavingsDate, SavingsAmount),
		ShareGrowth:         MonthlySeries(l.Shares, ShareDate, ShareValue),
		LoanDistribution:    DistributionByStatus(l.Loans),
		Loans:               SummarizeLoans(l.Loans),
	}
}

// SummarizeLoans computes the portfolio totals. Interest is total repayable less principal.
func SummarizeLoans(loans []models.Loan) LoanPortfolio {
	p := LoanPortfolio{
		TotalDisbursed: decimal.Zero,
		TotalInterest:  decimal.Zero,
		TotalRepaid:    decimal.Zero,
		TotalBalance:   decimal.Zero,
	}
	for _, l := range loans {
		if l.Status == models.LoanStatusPending || l.Status == "" {
			p.Pending++
		}
		p.TotalDisbursed = p.TotalDisbursed.Add(l.LoanAmount)
		p.TotalInterest = p.TotalInterest.Add(l.TotalRepayable.Sub(l.LoanAmount))
		p.TotalRepaid = p.TotalRepaid.Add(l.AmountPaid)
		p.TotalBalance = p.TotalBalance.Add(l.Balance)
	}
	return p
}

// BuildMemberDashboard aggregates one member's already period-filtered ledgers.
func BuildMemberDashboard(l Ledgers) MemberDashboard {
	savings := Sum(l.Savings, SavingsAmount)
	shares := Sum(l.Shares, ShareValue)

	sharesCount := 0
	for _, s := range l.Shares {
		sharesCount += s.SharesCount
	}

	d := MemberDashboard{
		SavingsTotal:   savings,
		SharesTotal:    shares,
		SharesCount:    sharesCount,
		AccountBalance: savings.Add(shares),
		LoanBalance:    Sum(l.Loans, func(ln models.Loan) decimal.Decimal { return ln.Balance }),
		LoanPaid:       Sum(l.Loans, func(ln models.Loan) decimal.Decimal { return ln.AmountPaid }),
		LoanRepayable:  Sum(l.Loans, func(ln models.Loan) decimal.Decimal { return ln.TotalRepayable }),
		PaidPercentage: AggregatePaidPercentage(l.Loans),
		SavingsByMonth: GroupSeries(l.Savings, PaymentMonthLabel, SavingsAmount),
	}

	if loan, ok := CurrentLoan(l.Loans); ok {
		d.ActiveLoan = &LoanProgress{Loan: loan, PaidPercentage: PaidPercentage(loan)}
	}
	return d
}

// CurrentLoan picks the loan a member is repaying: the first active or approved
// one, otherwise the first loan listed.
func CurrentLoan(loans []models.Loan) (models.Loan, bool) {
	for _, l := range loans {
		if l.Status == models.LoanStatusActive || l.Status == models.LoanStatusApproved {
			return l, true
		}
	}
	if len(loans) > 0 {
		return loans[0], true
	}
	return models.Loan{}, false
}
