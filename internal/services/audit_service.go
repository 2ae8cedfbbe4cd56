package services

import (
	"context"
	"fmt"

	"github.com/sjperalta/dpa-api/internal/jobs"
	"github.com/sjperalta/dpa-api/internal/models"
	"github.com/sjperalta/dpa-api/internal/repository"
	"github.com/sjperalta/dpa-api/pkg/logger"
)

// Actor identifies who performed an administrative action and from where.
type Actor struct {
	UserID    uint
	IP        string
	UserAgent string
}

// Audit actions
const (
	AuditCreate   = "CREATE"
	AuditUpdate   = "UPDATE"
	AuditDelete   = "DELETE"
	AuditApprove  = "APPROVE"
	AuditReject   = "REJECT"
	AuditClose    = "CLOSE"
	AuditPayment  = "PAYMENT"
	AuditSuspend  = "SUSPEND"
	AuditActivate = "ACTIVATE"
)

type AuditService struct {
	repo   repository.AuditRepository
	worker *jobs.Worker
}

func NewAuditService(repo repository.AuditRepository, worker *jobs.Worker) *AuditService {
	return &AuditService{repo: repo, worker: worker}
}

// Log records an audit entry on the worker queue. When the queue is full the
// write happens inline. Audit failures never fail the action being audited;
// they are logged by the worker.
func (s *AuditService) Log(actor Actor, action, entity string, entityID uint, details string) {
	entry := &models.AuditLog{
		UserID:    actor.UserID,
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		Details:   details,
		IPAddress: actor.IP,
		UserAgent: actor.UserAgent,
	}

	write := func(ctx context.Context) error {
		if err := s.repo.Create(ctx, entry); err != nil {
			return fmt.Errorf("audit %s %s #%d: %w", action, entity, entityID, err)
		}
		return nil
	}

	if s.worker == nil {
		if err := write(context.Background()); err != nil {
			logger.Error("Audit write failed", "error", err)
		}
		return
	}
	s.worker.Enqueue("audit", write)
}

// List retrieves audit logs, newest first
func (s *AuditService) List(ctx context.Context, query *repository.ListQuery) ([]models.AuditLog, int64, error) {
	return s.repo.List(ctx, query)
}
