package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/dpa-api/internal/finance"
	"github.com/sjperalta/dpa-api/internal/models"
	"github.com/sjperalta/dpa-api/internal/repository"
)

// ShareInput is a share purchase as submitted by an admin
type ShareInput struct {
	UserID       uint
	SharesCount  int
	ShareValue   decimal.Decimal
	PurchaseDate time.Time
	Description  *string
}

// ShareListing is a period-filtered view of the shares ledger
type ShareListing struct {
	Period      string                 `json:"period"`
	View        string                 `json:"view"`
	TotalValue  decimal.Decimal        `json:"total_value"`
	TotalShares int                    `json:"total_shares"`
	Count       int                    `json:"count"`
	Records     []models.ShareRecord   `json:"records,omitempty"`
	Members     []MemberTotal          `json:"members,omitempty"`
	Growth      []finance.MonthlyTotal `json:"growth"`
}

// ShareService manages the shares ledger
type ShareService struct {
	repo    repository.ShareRepository
	members *MemberService
	years   *FinancialYearService
	audit   *AuditService
	now     func() time.Time
}

func NewShareService(repo repository.ShareRepository, members *MemberService, years *FinancialYearService, audit *AuditService) *ShareService {
	return &ShareService{repo: repo, members: members, years: years, audit: audit, now: time.Now}
}

func (s *ShareService) List(ctx context.Context, q LedgerListQuery) (*ShareListing, error) {
	period, err := s.years.Period(ctx, q.Period)
	if err != nil {
		return nil, err
	}

	records, err := s.repo.List(ctx, repository.LedgerQuery{UserID: q.UserID, Search: q.Search})
	if err != nil {
		return nil, err
	}
	records = finance.FilterByPeriod(records, finance.ShareDate, period)

	listing := &ShareListing{
		Period:     period.Selection,
		View:       ViewTransactions,
		TotalValue: finance.Sum(records, finance.ShareValue),
		Count:      len(records),
		Growth:     finance.MonthlySeries(records, finance.ShareDate, finance.ShareValue),
	}
	for _, r := range records {
		listing.TotalShares += r.SharesCount
	}

	if q.View != ViewMembers {
		listing.Records = records
		return listing, nil
	}

	listing.View = ViewMembers
	summaries := finance.MemberSummaries(records, finance.ShareUser, finance.ShareDate, finance.ShareValue)
	listing.Members, err = s.members.withDetails(ctx, summaries)
	if err != nil {
		return nil, err
	}
	return listing, nil
}

// Summary is the member-facing share holding for the selected period.
func (s *ShareService) Summary(ctx context.Context, userID uint, selection string) (*ShareListing, error) {
	listing, err := s.List(ctx, LedgerListQuery{UserID: &userID, Period: selection})
	if err != nil {
		return nil, err
	}
	listing.Records = nil
	return listing, nil
}

func (s *ShareService) Create(ctx context.Context, input ShareInput, actor Actor) (*models.ShareRecord, error) {
	record := &models.ShareRecord{}
	if err := s.apply(ctx, record, input); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, err
	}
	s.audit.Log(actor, AuditCreate, "Share", record.ID,
		fmt.Sprintf("%d shares at %s for member #%d", record.SharesCount, finance.FormatAmount(record.ShareValue), record.UserID))
	return record, nil
}

func (s *ShareService) Update(ctx context.Context, id uint, input ShareInput, actor Actor) (*models.ShareRecord, error) {
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
	s.audit.Log(actor, AuditUpdate, "Share", record.ID,
		fmt.Sprintf("Share purchase updated: %d units, total %s", record.SharesCount, finance.FormatAmount(record.TotalValue)))
	return record, nil
}

func (s *ShareService) Delete(ctx context.Context, id uint, actor Actor) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Log(actor, AuditDelete, "Share", id, "Share record deleted")
	return nil
}

func (s *ShareService) apply(ctx context.Context, record *models.ShareRecord, in ShareInput) error {
	if in.SharesCount <= 0 {
		return fmt.Errorf("%w: shares count must be greater than zero", ErrValidation)
	}
	if !in.ShareValue.IsPositive() {
		return fmt.Errorf("%w: share value must be greater than zero", ErrValidation)
	}
	if _, err := s.members.FindByID(ctx, in.UserID); err != nil {
		return memberLookupError(in.UserID, err)
	}
	if in.PurchaseDate.IsZero() {
		in.PurchaseDate = s.now()
	}

	record.UserID = in.UserID
	record.SharesCount = in.SharesCount
	record.ShareValue = finance.RoundCents(in.ShareValue)
	record.PurchaseDate = in.PurchaseDate
	record.Description = in.Description
	record.RecomputeTotal()
	return nil
}
