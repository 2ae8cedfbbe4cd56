package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sjperalta/dpa-api/internal/finance"
	"github.com/sjperalta/dpa-api/internal/models"
	"github.com/sjperalta/dpa-api/internal/repository"
	"github.com/sjperalta/dpa-api/pkg/logger"
)

// FinancialYearService owns the current financial year: the admin-configured one
// when set, otherwise the default Nov-Oct cycle containing today.
type FinancialYearService struct {
	repo   repository.FinancialYearRepository
	audit  *AuditService
	window int
	now    func() time.Time

	mu         sync.RWMutex
	configured *finance.FinancialYear
	loaded     bool
}

func NewFinancialYearService(repo repository.FinancialYearRepository, audit *AuditService, window int) *FinancialYearService {
	if window <= 0 {
		window = finance.DefaultYearWindow
	}
	return &FinancialYearService{
		repo:   repo,
		audit:  audit,
		window: window,
		now:    time.Now,
	}
}

// Current returns the financial year in force. The stored setting is read once
// and then served from memory.
func (s *FinancialYearService) Current(ctx context.Context) (finance.FinancialYear, error) {
	configured, err := s.load(ctx)
	if err != nil {
		return finance.FinancialYear{}, err
	}
	if configured != nil {
		return *configured, nil
	}
	return finance.ResolveCurrentYear(s.now()), nil
}

// IsConfigured reports whether an admin has set the current year explicitly.
func (s *FinancialYearService) IsConfigured(ctx context.Context) (bool, error) {
	configured, err := s.load(ctx)
	return configured != nil, err
}

func (s *FinancialYearService) load(ctx context.Context) (*finance.FinancialYear, error) {
	s.mu.RLock()
	if s.loaded {
		fy := s.configured
		s.mu.RUnlock()
		return fy, nil
	}
	s.mu.RUnlock()

	setting, err := s.repo.Current(ctx)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("load financial year: %w", err)
	}

	var fy *finance.FinancialYear
	if setting != nil {
		stored, err := finance.NewFinancialYear(setting.StartDate, setting.EndDate)
		if err != nil {
			logger.Warn("Ignoring invalid stored financial year", "label", setting.Label, "error", err)
		} else {
			stored.Label = setting.Label
			fy = &stored
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		s.configured = fy
		s.loaded = true
	}
	return s.configured, nil
}

// SetCurrent validates and persists new boundaries. If validation or the write
// fails the previous configuration stays in force.
func (s *FinancialYearService) SetCurrent(ctx context.Context, start, end time.Time, actor Actor) (finance.FinancialYear, error) {
	fy, err := finance.NewFinancialYear(start, end)
	if err != nil {
		return finance.FinancialYear{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	setting := &models.FinancialYearSetting{
		Label:           fy.Label,
		StartDate:       fy.StartDate,
		EndDate:         fy.EndDate,
		UpdatedByUserID: actor.UserID,
	}
	if err := s.repo.Save(ctx, setting); err != nil {
		return finance.FinancialYear{}, fmt.Errorf("save financial year: %w", err)
	}

	s.mu.Lock()
	s.configured = &fy
	s.loaded = true
	s.mu.Unlock()

	logger.Info("Financial year updated", "label", fy.Label, "start", fy.StartDateString(), "end", fy.EndDateString(), "by", actor.UserID)
	s.audit.Log(actor, AuditUpdate, "FinancialYear", setting.ID,
		fmt.Sprintf("Financial year set to %s (%s to %s)", fy.Label, fy.StartDateString(), fy.EndDateString()))
	return fy, nil
}

// Available lists the selectable periods: "all", then the most recent years.
// A configured label outside that list (e.g. a calendar-year "2025") is listed
// right after "all".
func (s *FinancialYearService) Available(ctx context.Context) ([]string, error) {
	years := finance.AvailableYears(s.now(), s.window)

	configured, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if configured == nil {
		return years, nil
	}
	for _, y := range years {
		if y == configured.Label {
			return years, nil
		}
	}
	out := make([]string, 0, len(years)+1)
	out = append(out, years[0], configured.Label)
	return append(out, years[1:]...), nil
}

// Period resolves a selection against the current year. An empty selection means
// the current year.
func (s *FinancialYearService) Period(ctx context.Context, selection string) (finance.Period, error) {
	current, err := s.Current(ctx)
	if err != nil {
		return finance.Period{}, err
	}
	if selection == "" {
		selection = current.Label
	}
	return finance.NewPeriod(selection, &current), nil
}

// CheckStale warns when the configured year has already ended, so an admin
// knows reports are still scoped to last year.
func (s *FinancialYearService) CheckStale(ctx context.Context) error {
	configured, err := s.load(ctx)
	if err != nil {
		return err
	}
	if configured == nil {
		return nil
	}
	if s.now().After(configured.EndDate.AddDate(0, 0, 1)) {
		logger.Warn("Configured financial year has ended", "label", configured.Label, "end", configured.EndDateString())
	}
	return nil
}
