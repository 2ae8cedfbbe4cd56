package services

import (
	"context"

	"github.com/sjperalta/dpa-api/internal/finance"
	"github.com/sjperalta/dpa-api/internal/repository"
)

// AdminDashboardView is the admin dashboard for one period
type AdminDashboardView struct {
	Period string `json:"period"`
	finance.AdminDashboard
}

// MemberDashboardView is a member's dashboard for one period
type MemberDashboardView struct {
	Period string `json:"period"`
	finance.MemberDashboard
}

// DashboardService assembles the dashboards from the ledgers
type DashboardService struct {
	ledgers *LedgerService
	members repository.MemberRepository
	years   *FinancialYearService
}

func NewDashboardService(ledgers *LedgerService, members repository.MemberRepository, years *FinancialYearService) *DashboardService {
	return &DashboardService{ledgers: ledgers, members: members, years: years}
}

// Admin aggregates every member's records in the selected period. The member
// count is the whole directory; it is not period-scoped.
func (s *DashboardService) Admin(ctx context.Context, selection string) (*AdminDashboardView, error) {
	period, err := s.years.Period(ctx, selection)
	if err != nil {
		return nil, err
	}

	ledgers, err := s.ledgers.Fetch(ctx, repository.LedgerQuery{})
	if err != nil {
		return nil, err
	}

	count, err := s.members.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &AdminDashboardView{
		Period:         period.Selection,
		AdminDashboard: finance.BuildAdminDashboard(int(count), ledgers.Filter(period)),
	}, nil
}

// Member aggregates one member's records in the selected period.
func (s *DashboardService) Member(ctx context.Context, userID uint, selection string) (*MemberDashboardView, error) {
	period, err := s.years.Period(ctx, selection)
	if err != nil {
		return nil, err
	}

	ledgers, err := s.ledgers.ForMember(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &MemberDashboardView{
		Period:          period.Selection,
		MemberDashboard: finance.BuildMemberDashboard(ledgers.Filter(period)),
	}, nil
}
