package services

import (
	"context"
	"fmt"

	"github.com/sjperalta/dpa-api/internal/finance"
	"github.com/sjperalta/dpa-api/internal/repository"
	"golang.org/x/sync/errgroup"
)

// LedgerService loads the three ledgers the finance engine works on.
type LedgerService struct {
	savings repository.SavingsRepository
	shares  repository.ShareRepository
	loans   repository.LoanRepository
}

func NewLedgerService(savings repository.SavingsRepository, shares repository.ShareRepository, loans repository.LoanRepository) *LedgerService {
	return &LedgerService{savings: savings, shares: shares, loans: loans}
}

// Fetch loads savings, shares and loans concurrently. If any ledger fails the
// whole fetch fails; partial ledgers are never returned.
func (s *LedgerService) Fetch(ctx context.Context, query repository.LedgerQuery) (finance.Ledgers, error) {
	var l finance.Ledgers

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		records, err := s.savings.List(gctx, query)
		if err != nil {
			return fmt.Errorf("fetch savings: %w", err)
		}
		l.Savings = records
		return nil
	})
	g.Go(func() error {
		records, err := s.shares.List(gctx, query)
		if err != nil {
			return fmt.Errorf("fetch shares: %w", err)
		}
		l.Shares = records
		return nil
	})
	g.Go(func() error {
		records, err := s.loans.List(gctx, query)
		if err != nil {
			return fmt.Errorf("fetch loans: %w", err)
		}
		l.Loans = records
		return nil
	})

	if err := g.Wait(); err != nil {
		return finance.Ledgers{}, err
	}
	return l, nil
}

// ForMember is Fetch restricted to one member's records.
func (s *LedgerService) ForMember(ctx context.Context, userID uint) (finance.Ledgers, error) {
	return s.Fetch(ctx, repository.LedgerQuery{UserID: &userID})
}
