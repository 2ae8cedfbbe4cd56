package services

import (
	"github.com/sjperalta/dpa-api/internal/config"
	"github.com/sjperalta/dpa-api/internal/jobs"
	"github.com/sjperalta/dpa-api/internal/repository"
)

// Services holds all service instances
type Services struct {
	Audit         *AuditService
	FinancialYear *FinancialYearService
	Ledger        *LedgerService
	Member        *MemberService
	Savings       *SavingsService
	Share         *ShareService
	Loan          *LoanService
	Dashboard     *DashboardService
	Statement     *StatementService
	Export        *ExportService
	Job           *JobService
}

// NewServices creates all service instances
func NewServices(repos *repository.Repositories, worker *jobs.Worker, cfg *config.Config) *Services {
	auditSvc := NewAuditService(repos.Audit, worker)
	yearSvc := NewFinancialYearService(repos.FinancialYear, auditSvc, cfg.FinancialYearWindow)
	ledgerSvc := NewLedgerService(repos.Savings, repos.Share, repos.Loan)
	memberSvc := NewMemberService(repos.Member, auditSvc)

	return &Services{
		Audit:         auditSvc,
		FinancialYear: yearSvc,
		Ledger:        ledgerSvc,
		Member:        memberSvc,
		Savings:       NewSavingsService(repos.Savings, memberSvc, yearSvc, auditSvc),
		Share:         NewShareService(repos.Share, memberSvc, yearSvc, auditSvc),
		Loan:          NewLoanService(repos.Loan, memberSvc, yearSvc, auditSvc),
		Dashboard:     NewDashboardService(ledgerSvc, repos.Member, yearSvc),
		Statement:     NewStatementService(ledgerSvc, memberSvc, yearSvc),
		Export:        NewExportService(cfg.CurrencySymbol),
		Job:           NewJobService(worker),
	}
}
