package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/sjperalta/dpa-api/internal/finance"
	"github.com/sjperalta/dpa-api/internal/models"
	"github.com/sjperalta/dpa-api/internal/repository"
)

// MemberInput is the editable part of a member profile
type MemberInput struct {
	MemberID string
	FullName string
	Email    string
	Phone    string
	Role     string
}

// MemberService handles the member directory
type MemberService struct {
	repo  repository.MemberRepository
	audit *AuditService
}

func NewMemberService(repo repository.MemberRepository, audit *AuditService) *MemberService {
	return &MemberService{repo: repo, audit: audit}
}

func (s *MemberService) FindByID(ctx context.Context, id uint) (*models.Member, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *MemberService) List(ctx context.Context, query *repository.ListQuery) ([]models.Member, int64, error) {
	return s.repo.List(ctx, query)
}

// Names looks up the given members, keyed by id.
func (s *MemberService) Names(ctx context.Context, ids []uint) (map[uint]models.Member, error) {
	members, err := s.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[uint]models.Member, len(members))
	for _, m := range members {
		out[m.ID] = m
	}
	return out, nil
}

func (s *MemberService) Create(ctx context.Context, input MemberInput, actor Actor) (*models.Member, error) {
	member := &models.Member{}
	if err := applyMemberInput(member, input); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, member); err != nil {
		return nil, err
	}
	s.audit.Log(actor, AuditCreate, "Member", member.ID, fmt.Sprintf("Member created: %s (%s)", member.FullName, member.MemberID))
	return member, nil
}

func (s *MemberService) Update(ctx context.Context, id uint, input MemberInput, actor Actor) (*models.Member, error) {
	member, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyMemberInput(member, input); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, member); err != nil {
		return nil, err
	}
	s.audit.Log(actor, AuditUpdate, "Member", member.ID, fmt.Sprintf("Member updated: %s", member.Email))
	return member, nil
}

func (s *MemberService) Suspend(ctx context.Context, id uint, actor Actor) (*models.Member, error) {
	return s.setStatus(ctx, id, models.StatusSuspended, AuditSuspend, actor)
}

func (s *MemberService) Activate(ctx context.Context, id uint, actor Actor) (*models.Member, error) {
	return s.setStatus(ctx, id, models.StatusActive, AuditActivate, actor)
}

func (s *MemberService) setStatus(ctx context.Context, id uint, status, action string, actor Actor) (*models.Member, error) {
	member, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if member.Status == status {
		return member, nil
	}
	member.Status = status
	if err := s.repo.Update(ctx, member); err != nil {
		return nil, err
	}
	s.audit.Log(actor, action, "Member", id, fmt.Sprintf("Status changed to %s", status))
	return member, nil
}

func applyMemberInput(m *models.Member, in MemberInput) error {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.MemberID = strings.TrimSpace(in.MemberID)

	if in.FullName == "" {
		return fmt.Errorf("%w: full name is required", ErrValidation)
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return fmt.Errorf("%w: invalid email %q", ErrValidation, in.Email)
	}
	if in.MemberID == "" && m.MemberID == "" {
		return fmt.Errorf("%w: member id is required", ErrValidation)
	}
	switch in.Role {
	case "", models.RoleMember, models.RoleAdmin:
	default:
		return fmt.Errorf("%w: unknown role %q", ErrValidation, in.Role)
	}

	m.FullName = in.FullName
	m.Email = in.Email
	m.Phone = strings.TrimSpace(in.Phone)
	if in.MemberID != "" {
		m.MemberID = in.MemberID
	}
	if in.Role != "" {
		m.Role = in.Role
	}
	return nil
}

// withDetails attaches member numbers and names to per-member aggregates,
// keeping their order.
func (s *MemberService) withDetails(ctx context.Context, summaries []finance.MemberSummary) ([]MemberTotal, error) {
	ids := make([]uint, 0, len(summaries))
	for _, sm := range summaries {
		ids = append(ids, sm.UserID)
	}
	byID, err := s.Names(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]MemberTotal, 0, len(summaries))
	for _, sm := range summaries {
		m := byID[sm.UserID]
		out = append(out, MemberTotal{MemberSummary: sm, MemberID: m.MemberID, FullName: m.FullName})
	}
	return out, nil
}

func memberLookupError(userID uint, err error) error {
	if errors.Is(err, ErrNotFound) {
		return fmt.Errorf("%w: member #%d does not exist", ErrValidation, userID)
	}
	return err
}
