package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/dpa-api/internal/finance"
	"github.com/sjperalta/dpa-api/internal/models"
	"github.com/sjperalta/dpa-api/internal/repository"
	"github.com/sjperalta/dpa-api/internal/statemachine"
	"github.com/sjperalta/dpa-api/pkg/logger"
)

// Loan term bounds accepted on application
const (
	MaxLoanMonths       = 120
	MaxLoanInterestRate = 100
)

// LoanInput is a loan application
type LoanInput struct {
	UserID          uint
	LoanAmount      decimal.Decimal
	InterestRate    decimal.Decimal
	DurationMonths  int
	Purpose         *string
	ApplicationDate time.Time
}

// LoanListing is a period-filtered view of the loans ledger
type LoanListing struct {
	Period       string                `json:"period"`
	Loans        []models.Loan         `json:"loans"`
	Portfolio    finance.LoanPortfolio `json:"portfolio"`
	Distribution []finance.StatusCount `json:"distribution"`
}

// LoanService handles loan applications, decisions and repayments
type LoanService struct {
	repo    repository.LoanRepository
	members *MemberService
	years   *FinancialYearService
	audit   *AuditService
	now     func() time.Time
}

func NewLoanService(repo repository.LoanRepository, members *MemberService, years *FinancialYearService, audit *AuditService) *LoanService {
	return &LoanService{repo: repo, members: members, years: years, audit: audit, now: time.Now}
}

// Quote returns the repayment figures for a prospective loan without storing anything.
func (s *LoanService) Quote(principal, annualRatePercent decimal.Decimal, months int) finance.Amortization {
	if months > MaxLoanMonths {
		months = 0
	}
	return finance.Amortize(principal, annualRatePercent, months)
}

func (s *LoanService) FindByID(ctx context.Context, id uint) (*models.Loan, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *LoanService) List(ctx context.Context, q LedgerListQuery) (*LoanListing, error) {
	period, err := s.years.Period(ctx, q.Period)
	if err != nil {
		return nil, err
	}

	loans, err := s.repo.List(ctx, repository.LedgerQuery{UserID: q.UserID, Search: q.Search})
	if err != nil {
		return nil, err
	}
	loans = finance.FilterByPeriod(loans, finance.LoanDate, period)

	return &LoanListing{
		Period:       period.Selection,
		Loans:        loans,
		Portfolio:    finance.SummarizeLoans(loans),
		Distribution: finance.DistributionByStatus(loans),
	}, nil
}

// Apply files a pending loan with its repayment figures derived from principal,
// rate and term. Suspended members cannot apply.
func (s *LoanService) Apply(ctx context.Context, input LoanInput, actor Actor) (*models.Loan, error) {
	if err := validateLoanInput(input); err != nil {
		return nil, err
	}

	member, err := s.members.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, memberLookupError(input.UserID, err)
	}
	if !member.IsActive() {
		return nil, fmt.Errorf("%w: member %s is %s", ErrForbidden, member.MemberID, member.Status)
	}

	applied := input.ApplicationDate
	if applied.IsZero() {
		applied = s.now()
	}

	loan := finance.WithAmortization(models.Loan{
		UserID:          input.UserID,
		LoanAmount:      finance.RoundCents(input.LoanAmount),
		InterestRate:    input.InterestRate.Round(2),
		DurationMonths:  input.DurationMonths,
		AmountPaid:      decimal.Zero,
		Status:          models.LoanStatusPending,
		Purpose:         input.Purpose,
		ApplicationDate: applied,
	})

	if err := s.repo.Create(ctx, &loan); err != nil {
		return nil, err
	}

	logger.Info("Loan application filed", "loan_id", loan.ID, "user_id", loan.UserID, "amount", loan.LoanAmount.StringFixed(2))
	s.audit.Log(actor, AuditCreate, "Loan", loan.ID,
		fmt.Sprintf("Loan of %s over %d months at %s%% for member #%d",
			finance.FormatAmount(loan.LoanAmount), loan.DurationMonths, loan.InterestRate.String(), loan.UserID))
	return &loan, nil
}

func (s *LoanService) Approve(ctx context.Context, id uint, actor Actor) (*models.Loan, error) {
	loan, err := s.transition(ctx, id, func(ctx context.Context, l *models.Loan) error {
		if err := statemachine.NewLoanFSM(l).Approve(ctx); err != nil {
			return err
		}
		now := s.now()
		l.ApprovedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.audit.Log(actor, AuditApprove, "Loan", id, fmt.Sprintf("Loan approved: %s", finance.FormatAmount(loan.LoanAmount)))
	return loan, nil
}

func (s *LoanService) Reject(ctx context.Context, id uint, actor Actor) (*models.Loan, error) {
	loan, err := s.transition(ctx, id, func(ctx context.Context, l *models.Loan) error {
		return statemachine.NewLoanFSM(l).Reject(ctx)
	})
	if err != nil {
		return nil, err
	}
	s.audit.Log(actor, AuditReject, "Loan", id, "Loan rejected")
	return loan, nil
}

// Close ends a loan whatever its outstanding balance; reaching a zero balance
// does not close a loan by itself.
func (s *LoanService) Close(ctx context.Context, id uint, actor Actor) (*models.Loan, error) {
	loan, err := s.transition(ctx, id, func(ctx context.Context, l *models.Loan) error {
		if err := statemachine.NewLoanFSM(l).Close(ctx); err != nil {
			return err
		}
		now := s.now()
		l.ClosedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.audit.Log(actor, AuditClose, "Loan", id,
		fmt.Sprintf("Loan closed with balance %s", finance.FormatAmount(loan.Balance)))
	return loan, nil
}

// RecordPayment applies a partial repayment. The first payment on an approved
// loan activates it.
func (s *LoanService) RecordPayment(ctx context.Context, id uint, amount decimal.Decimal, actor Actor) (*models.Loan, error) {
	applied := finance.RoundCents(amount)
	loan, err := s.transition(ctx, id, func(ctx context.Context, l *models.Loan) error {
		paid, err := finance.ApplyPartialPayment(*l, applied)
		if err != nil {
			return err
		}
		if err := statemachine.NewLoanFSM(&paid).Pay(ctx); err != nil {
			return err
		}
		*l = paid
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.audit.Log(actor, AuditPayment, "Loan", id,
		fmt.Sprintf("Payment of %s recorded, balance %s", finance.FormatAmount(applied), finance.FormatAmount(loan.Balance)))
	return loan, nil
}

func (s *LoanService) Delete(ctx context.Context, id uint, actor Actor) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Log(actor, AuditDelete, "Loan", id, "Loan deleted")
	return nil
}

// transition runs fn against the stored loan inside a single write.
func (s *LoanService) transition(ctx context.Context, id uint, fn func(ctx context.Context, l *models.Loan) error) (*models.Loan, error) {
	loan, err := s.repo.Mutate(ctx, id, func(l *models.Loan) error {
		return fn(ctx, l)
	})
	if errors.Is(err, statemachine.ErrInvalidTransition) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	return loan, err
}

func validateLoanInput(in LoanInput) error {
	var problems []string
	if !in.LoanAmount.IsPositive() {
		problems = append(problems, "loan amount must be greater than zero")
	}
	if in.InterestRate.IsNegative() || in.InterestRate.GreaterThan(decimal.NewFromInt(MaxLoanInterestRate)) {
		problems = append(problems, fmt.Sprintf("interest rate must be between 0 and %d", MaxLoanInterestRate))
	}
	if in.DurationMonths < 1 || in.DurationMonths > MaxLoanMonths {
		problems = append(problems, fmt.Sprintf("duration must be between 1 and %d months", MaxLoanMonths))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(problems, "; "))
	}
	return nil
}
