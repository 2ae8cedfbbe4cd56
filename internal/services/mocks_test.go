package services

import (
	"context"
	"sync"
	"time"

	"github.com/sjperalta/dpa-api/internal/models"
	"github.com/sjperalta/dpa-api/internal/repository"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

var testActor = Actor{UserID: 1, IP: "127.0.0.1", UserAgent: "test"}

// Mock MemberRepository
type mockMemberRepository struct {
	repository.MemberRepository
	members map[uint]*models.Member
	nextID  uint
}

func newMockMemberRepository(members ...models.Member) *mockMemberRepository {
	m := &mockMemberRepository{members: make(map[uint]*models.Member)}
	for i := range members {
		mem := members[i]
		m.members[mem.ID] = &mem
		if mem.ID > m.nextID {
			m.nextID = mem.ID
		}
	}
	return m
}

func (m *mockMemberRepository) FindByID(ctx context.Context, id uint) (*models.Member, error) {
	mem, ok := m.members[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *mem
	return &copied, nil
}

func (m *mockMemberRepository) FindByIDs(ctx context.Context, ids []uint) ([]models.Member, error) {
	out := make([]models.Member, 0, len(ids))
	for _, id := range ids {
		if mem, ok := m.members[id]; ok {
			out = append(out, *mem)
		}
	}
	return out, nil
}

func (m *mockMemberRepository) Create(ctx context.Context, member *models.Member) error {
	for _, existing := range m.members {
		if existing.Email == member.Email {
			return repository.ErrDuplicate
		}
	}
	m.nextID++
	member.ID = m.nextID
	if member.Role == "" {
		member.Role = models.RoleMember
	}
	if member.Status == "" {
		member.Status = models.StatusActive
	}
	copied := *member
	m.members[member.ID] = &copied
	return nil
}

func (m *mockMemberRepository) Update(ctx context.Context, member *models.Member) error {
	copied := *member
	m.members[member.ID] = &copied
	return nil
}

func (m *mockMemberRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	for _, mem := range m.members {
		if mem.Role != models.RoleAdmin {
			n++
		}
	}
	return n, nil
}

// Mock SavingsRepository
type mockSavingsRepository struct {
	repository.SavingsRepository
	records []models.SavingsRecord
	err     error
}

func (m *mockSavingsRepository) List(ctx context.Context, query repository.LedgerQuery) ([]models.SavingsRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]models.SavingsRecord, 0, len(m.records))
	for _, r := range m.records {
		if query.UserID == nil || *query.UserID == r.UserID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockSavingsRepository) FindByID(ctx context.Context, id uint) (*models.SavingsRecord, error) {
	for _, r := range m.records {
		if r.ID == id {
			copied := r
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockSavingsRepository) Create(ctx context.Context, record *models.SavingsRecord) error {
	record.ID = uint(len(m.records) + 1)
	m.records = append(m.records, *record)
	return nil
}

// Mock ShareRepository
type mockShareRepository struct {
	repository.ShareRepository
	records []models.ShareRecord
	err     error
}

func (m *mockShareRepository) List(ctx context.Context, query repository.LedgerQuery) ([]models.ShareRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]models.ShareRecord, 0, len(m.records))
	for _, r := range m.records {
		if query.UserID == nil || *query.UserID == r.UserID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockShareRepository) Create(ctx context.Context, record *models.ShareRecord) error {
	record.ID = uint(len(m.records) + 1)
	m.records = append(m.records, *record)
	return nil
}

// Mock LoanRepository
type mockLoanRepository struct {
	repository.LoanRepository
	loans map[uint]*models.Loan
	order []uint
	err   error
}

func newMockLoanRepository(loans ...models.Loan) *mockLoanRepository {
	m := &mockLoanRepository{loans: make(map[uint]*models.Loan)}
	for i := range loans {
		l := loans[i]
		m.loans[l.ID] = &l
		m.order = append(m.order, l.ID)
	}
	return m
}

func (m *mockLoanRepository) List(ctx context.Context, query repository.LedgerQuery) ([]models.Loan, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]models.Loan, 0, len(m.order))
	for _, id := range m.order {
		l := m.loans[id]
		if query.UserID == nil || *query.UserID == l.UserID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (m *mockLoanRepository) FindByID(ctx context.Context, id uint) (*models.Loan, error) {
	l, ok := m.loans[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *l
	return &copied, nil
}

func (m *mockLoanRepository) Create(ctx context.Context, loan *models.Loan) error {
	loan.ID = uint(len(m.order) + 1)
	copied := *loan
	m.loans[loan.ID] = &copied
	m.order = append(m.order, loan.ID)
	return nil
}

func (m *mockLoanRepository) Mutate(ctx context.Context, id uint, fn func(loan *models.Loan) error) (*models.Loan, error) {
	stored, ok := m.loans[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	working := *stored
	if err := fn(&working); err != nil {
		return nil, err
	}
	*stored = working
	return &working, nil
}

func (m *mockLoanRepository) Delete(ctx context.Context, id uint) error {
	if _, ok := m.loans[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.loans, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// Mock FinancialYearRepository
type mockFinancialYearRepository struct {
	setting *models.FinancialYearSetting
	err     error
	saveErr error
	reads   int
}

func (m *mockFinancialYearRepository) Current(ctx context.Context) (*models.FinancialYearSetting, error) {
	m.reads++
	if m.err != nil {
		return nil, m.err
	}
	if m.setting == nil {
		return nil, repository.ErrNotFound
	}
	copied := *m.setting
	return &copied, nil
}

func (m *mockFinancialYearRepository) Save(ctx context.Context, setting *models.FinancialYearSetting) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	setting.ID = 1
	copied := *setting
	m.setting = &copied
	return nil
}

// Mock AuditRepository
type mockAuditRepository struct {
	repository.AuditRepository
	mu      sync.Mutex
	entries []models.AuditLog
}

func (m *mockAuditRepository) Create(ctx context.Context, entry *models.AuditLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *mockAuditRepository) actions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e.Action+" "+e.Entity)
	}
	return out
}

func (m *mockAuditRepository) details() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e.Details)
	}
	return out
}

// testEnv wires the services over in-memory repositories, with audits written
// synchronously and the clock fixed at today.
type testEnv struct {
	members *mockMemberRepository
	savings *mockSavingsRepository
	shares  *mockShareRepository
	loans   *mockLoanRepository
	years   *mockFinancialYearRepository
	audits  *mockAuditRepository

	yearSvc   *FinancialYearService
	memberSvc *MemberService
	ledgerSvc *LedgerService
	auditSvc  *AuditService
}

func newTestEnv(today time.Time) *testEnv {
	env := &testEnv{
		members: newMockMemberRepository(
			models.Member{ID: 1, MemberID: "ADM-1", FullName: "Admin", Email: "admin@example.com", Role: models.RoleAdmin, Status: models.StatusActive},
			models.Member{ID: 7, MemberID: "DPA-007", FullName: "Ada Obi", Email: "ada@example.com", Role: models.RoleMember, Status: models.StatusActive},
			models.Member{ID: 8, MemberID: "DPA-008", FullName: "Bola Ade", Email: "bola@example.com", Role: models.RoleMember, Status: models.StatusSuspended},
		),
		savings: &mockSavingsRepository{},
		shares:  &mockShareRepository{},
		loans:   newMockLoanRepository(),
		years:   &mockFinancialYearRepository{},
		audits:  &mockAuditRepository{},
	}

	env.auditSvc = NewAuditService(env.audits, nil)
	env.yearSvc = NewFinancialYearService(env.years, env.auditSvc, 5)
	env.yearSvc.now = fixedClock(today)
	env.memberSvc = NewMemberService(env.members, env.auditSvc)
	env.ledgerSvc = NewLedgerService(env.savings, env.shares, env.loans)
	return env
}

func (e *testEnv) loanService() *LoanService {
	svc := NewLoanService(e.loans, e.memberSvc, e.yearSvc, e.auditSvc)
	svc.now = e.yearSvc.now
	return svc
}

func (e *testEnv) savingsService() *SavingsService {
	svc := NewSavingsService(e.savings, e.memberSvc, e.yearSvc, e.auditSvc)
	svc.now = e.yearSvc.now
	return svc
}

func (e *testEnv) shareService() *ShareService {
	svc := NewShareService(e.shares, e.memberSvc, e.yearSvc, e.auditSvc)
	svc.now = e.yearSvc.now
	return svc
}

func (e *testEnv) statementService() *StatementService {
	svc := NewStatementService(e.ledgerSvc, e.memberSvc, e.yearSvc)
	svc.now = e.yearSvc.now
	return svc
}
