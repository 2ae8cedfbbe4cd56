package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sjperalta/dpa-api/internal/finance"
	"github.com/sjperalta/dpa-api/internal/models"
)

// MemberStatement is a statement together with what is printed in its header
type MemberStatement struct {
	Reference   string        `json:"reference"`
	GeneratedAt time.Time     `json:"generated_at"`
	Member      models.Member `json:"member"`
	PeriodStart *time.Time    `json:"period_start,omitempty"`
	PeriodEnd   *time.Time    `json:"period_end,omitempty"`
	finance.Statement
}

// StatementService builds account statements
type StatementService struct {
	ledgers *LedgerService
	members *MemberService
	years   *FinancialYearService
	now     func() time.Time
}

func NewStatementService(ledgers *LedgerService, members *MemberService, years *FinancialYearService) *StatementService {
	return &StatementService{ledgers: ledgers, members: members, years: years, now: time.Now}
}

// Build produces the statement of one member for a category and period selection.
func (s *StatementService) Build(ctx context.Context, userID uint, category, selection string) (*MemberStatement, error) {
	cat, err := finance.ParseCategory(category)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	member, err := s.members.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	period, err := s.years.Period(ctx, selection)
	if err != nil {
		return nil, err
	}

	ledgers, err := s.ledgers.ForMember(ctx, userID)
	if err != nil {
		return nil, err
	}

	stmt := &MemberStatement{
		Reference:   "STM-" + uuid.NewString(),
		GeneratedAt: s.now(),
		Member:      *member,
		Statement:   finance.BuildStatement(ledgers, cat, period),
	}
	if fy, ok := period.Bounds(); ok {
		stmt.PeriodStart = &fy.StartDate
		stmt.PeriodEnd = &fy.EndDate
	}
	return stmt, nil
}
