package repository

import (
	"gorm.io/gorm"
)

// Repositories holds all repository instances
type Repositories struct {
	Member        MemberRepository
	Savings       SavingsRepository
	Share         ShareRepository
	Loan          LoanRepository
	FinancialYear FinancialYearRepository
	Audit         AuditRepository
}

// NewRepositories creates all repository instances
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Member:        NewMemberRepository(db),
		Savings:       NewSavingsRepository(db),
		Share:         NewShareRepository(db),
		Loan:          NewLoanRepository(db),
		FinancialYear: NewFinancialYearRepository(db),
		Audit:         NewAuditRepository(db),
	}
}
