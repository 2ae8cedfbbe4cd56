package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/dpa-api/internal/finance"
	"github.com/sjperalta/dpa-api/internal/models"
	"github.com/sjperalta/dpa-api/internal/repository"
	"github.com/sjperalta/dpa-api/pkg/logger"
)

// Listing views
const (
	ViewTransactions = "transactions"
	ViewMembers      = "members"
)

// SavingsInput is a savings contribution as submitted by an admin
type SavingsInput struct {
	UserID       uint
	Amount       decimal.Decimal
	Type         string
	PaymentDate  time.Time
	PaymentMonth string
	Description  *string
}

// LedgerListQuery selects records for a ledger listing
type LedgerListQuery struct {
	UserID *uint
	Search string
	Period string
	View   string
}

// MemberTotal is a per-member aggregate with the member's display details
type MemberTotal struct {
	finance.MemberSummary
	MemberID string `json:"member_id"`
	FullName string `json:"full_name"`
}

// SavingsListing is a period-filtered view of the savings ledger
type SavingsListing struct {
	Period  string                 `json:"period"`
	View    string                 `json:"view"`
	Total   decimal.Decimal        `json:"total"`
	Count   int                    `json:"count"`
	Records []models.SavingsRecord `json:"records,omitempty"`
	Members []MemberTotal          `json:"members,omitempty"`
	Monthly []finance.MonthlyTotal `json:"monthly"`
}

// SavingsService manages the savings ledger
type SavingsService struct {
	repo    repository.SavingsRepository
	members *MemberService
	years   *FinancialYearService
	audit   *AuditService
	now     func() time.Time
}

func NewSavingsService(repo repository.SavingsRepository, members *MemberService, years *FinancialYearService, audit *AuditService) *SavingsService {
	return &SavingsService{repo: repo, members: members, years: years, audit: audit, now: time.Now}
}

// List returns the savings in the selected period, either as transactions or
// aggregated per member.
func (s *SavingsService) List(ctx context.Context, q LedgerListQuery) (*SavingsListing, error) {
	period, err := s.years.Period(ctx, q.Period)
	if err != nil {
		return nil, err
	}

	records, err := s.repo.List(ctx, repository.LedgerQuery{UserID: q.UserID, Search: q.Search})
	if err != nil {
		return nil, err
	}
	records = finance.FilterByPeriod(records, finance.SavingsDate, period)

	listing := &SavingsListing{
		Period:  period.Selection,
		View:    ViewTransactions,
		Total:   finance.Sum(records, finance.SavingsAmount),
		Count:   len(records),
		Monthly: finance.MonthlySeries(records, finance.SavingsDate, finance.SavingsAmount),
	}

	if q.View != ViewMembers {
		listing.Records = records
		return listing, nil
	}

	listing.View = ViewMembers
	summaries := finance.MemberSummaries(records, finance.SavingsUser, finance.SavingsDate, finance.SavingsAmount)
	listing.Members, err = s.members.withDetails(ctx, summaries)
	if err != nil {
		return nil, err
	}
	return listing, nil
}

// Summary is the member-facing total for the selected period.
func (s *SavingsService) Summary(ctx context.Context, userID uint, selection string) (*SavingsListing, error) {
	listing, err := s.List(ctx, LedgerListQuery{UserID: &userID, Period: selection})
	if err != nil {
		return nil, err
	}
	listing.Records = nil
	return listing, nil
}

func (s *SavingsService) Create(ctx context.Context, input SavingsInput, actor Actor) (*models.SavingsRecord, error) {
	record := &models.SavingsRecord{}
	if err := s.apply(ctx, record, input); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, err
	}
	s.audit.Log(actor, AuditCreate, "Savings", record.ID,
		fmt.Sprintf("Savings of %s recorded for member #%d", finance.FormatAmount(record.Amount), record.UserID))
	return record, nil
}

func (s *SavingsService) Update(ctx context.Context, id uint, input SavingsInput, actor Actor) (*models.SavingsRecord, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, record, input); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, record); err != nil {
		return nil, err
	}
	s.audit.Log(actor, AuditUpdate, "Savings", record.ID,
		fmt.Sprintf("Savings updated to %s", finance.FormatAmount(record.Amount)))
	return record, nil
}

func (s *SavingsService) Delete(ctx context.Context, id uint, actor Actor) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Log(actor, AuditDelete, "Savings", id, "Savings record deleted")
	return nil
}

func (s *SavingsService) apply(ctx context.Context, record *models.SavingsRecord, in SavingsInput) error {
	if !in.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be greater than zero", ErrValidation)
	}
	if in.Type == "" {
		in.Type = models.SavingsTypeMonthly
	}
	if !models.IsValidSavingsType(in.Type) {
		return fmt.Errorf("%w: unknown savings type %q", ErrValidation, in.Type)
	}
	if _, err := s.members.FindByID(ctx, in.UserID); err != nil {
		return memberLookupError(in.UserID, err)
	}
	if in.PaymentDate.IsZero() {
		in.PaymentDate = s.now()
		logger.Debug("Savings record without payment date, using today", "user_id", in.UserID)
	}
	if strings.TrimSpace(in.PaymentMonth) == "" {
		in.PaymentMonth = in.PaymentDate.Format("January")
	}

	record.UserID = in.UserID
	record.Amount = finance.RoundCents(in.Amount)
	record.Type = in.Type
	record.PaymentDate = in.PaymentDate
	record.PaymentMonth = strings.TrimSpace(in.PaymentMonth)
	record.Description = in.Description
	return nil
}
