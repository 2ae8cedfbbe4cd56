package handlers

import (
	"github.com/sjperalta/dpa-api/internal/services"
)

// Handlers holds all handler instances
type Handlers struct {
	Health        *HealthHandler
	FinancialYear *FinancialYearHandler
	Member        *MemberHandler
	Savings       *SavingsHandler
	Share         *ShareHandler
	Loan          *LoanHandler
	Dashboard     *DashboardHandler
	Statement     *StatementHandler
	Audit         *AuditHandler
	Job           *JobHandler
}

// NewHandlers creates all handler instances
func NewHandlers(svcs *services.Services) *Handlers {
	return &Handlers{
		Health:        NewHealthHandler(),
		FinancialYear: NewFinancialYearHandler(svcs.FinancialYear),
		Member:        NewMemberHandler(svcs.Member),
		Savings:       NewSavingsHandler(svcs.Savings),
		Share:         NewShareHandler(svcs.Share),
		Loan:          NewLoanHandler(svcs.Loan),
		Dashboard:     NewDashboardHandler(svcs.Dashboard),
		Statement:     NewStatementHandler(svcs.Statement, svcs.Export),
		Audit:         NewAuditHandler(svcs.Audit),
		Job:           NewJobHandler(svcs.Job),
	}
}
