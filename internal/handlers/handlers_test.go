package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sjperalta/dpa-api/internal/config"
	"github.com/sjperalta/dpa-api/internal/database"
	"github.com/sjperalta/dpa-api/internal/jobs"
	"github.com/sjperalta/dpa-api/internal/middleware"
	"github.com/sjperalta/dpa-api/internal/models"
	"github.com/sjperalta/dpa-api/internal/repository"
	"github.com/sjperalta/dpa-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "test-secret"

type apiEnv struct {
	router   *gin.Engine
	repos    *repository.Repositories
	admin    string
	member   string
	memberID uint
}

func newAPIEnv(t *testing.T) *apiEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	repos := repository.NewRepositories(db)
	worker := jobs.NewWorker(1)
	t.Cleanup(worker.Shutdown)

	cfg := &config.Config{FinancialYearWindow: 5, CurrencySymbol: "NGN "}
	h := NewHandlers(services.NewServices(repos, worker, cfg))

	router := gin.New()
	h.Register(router.Group("/api/v1"), testSecret)

	member := &models.Member{MemberID: "DPA-001", FullName: "Ada Obi", Email: "ada@example.com"}
	require.NoError(t, repos.Member.Create(context.Background(), member))

	adminToken, err := middleware.IssueToken(testSecret, 99, "admin@example.com", models.RoleAdmin, time.Hour)
	require.NoError(t, err)
	memberToken, err := middleware.IssueToken(testSecret, member.ID, member.Email, models.RoleMember, time.Hour)
	require.NoError(t, err)

	return &apiEnv{router: router, repos: repos, admin: adminToken, member: memberToken, memberID: member.ID}
}

func (e *apiEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func amountOf(t *testing.T, v any) string {
	t.Helper()
	var d decimal.Decimal
	switch val := v.(type) {
	case string:
		d = decimal.RequireFromString(val)
	case float64:
		d = decimal.NewFromFloat(val)
	default:
		t.Fatalf("unexpected amount %T %v", v, v)
	}
	return d.StringFixed(2)
}

func TestAccessControl(t *testing.T) {
	env := newAPIEnv(t)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"health is public", http.MethodGet, "/api/v1/health", "", http.StatusOK},
		{"member data needs a token", http.MethodGet, "/api/v1/savings/me", "", http.StatusUnauthorized},
		{"garbage token", http.MethodGet, "/api/v1/savings/me", "not-a-jwt", http.StatusUnauthorized},
		{"member reads own savings", http.MethodGet, "/api/v1/savings/me", env.member, http.StatusOK},
		{"member cannot open admin dashboard", http.MethodGet, "/api/v1/admin/dashboard", env.member, http.StatusForbidden},
		{"admin dashboard", http.MethodGet, "/api/v1/admin/dashboard?year=all", env.admin, http.StatusOK},
		{"job status", http.MethodGet, "/api/v1/admin/jobs/status", env.admin, http.StatusOK},
		{"audit log", http.MethodGet, "/api/v1/admin/audits?entity=Loan", env.admin, http.StatusOK},
		{"member cannot read audit log", http.MethodGet, "/api/v1/admin/audits", env.member, http.StatusForbidden},
		{"bad path id", http.MethodPost, "/api/v1/admin/loans/abc/approve", env.admin, http.StatusBadRequest},
		{"unknown loan", http.MethodPost, "/api/v1/admin/loans/404/approve", env.admin, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, tt.method, tt.path, tt.token, nil)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
}

func TestExpiredToken(t *testing.T) {
	env := newAPIEnv(t)
	token, err := middleware.IssueToken(testSecret, env.memberID, "ada@example.com", models.RoleMember, -time.Minute)
	require.NoError(t, err)

	w := env.do(t, http.MethodGet, "/api/v1/dashboard/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "expired")
}

func TestSavingsEndpoints(t *testing.T) {
	env := newAPIEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/admin/savings", env.admin, map[string]any{
		"savings": map[string]any{"user_id": env.memberID, "amount": "₦5,000.00"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	record := decode(t, w)["savings"].(map[string]any)
	assert.Equal(t, "5000.00", amountOf(t, record["amount"]))
	assert.Equal(t, models.SavingsTypeMonthly, record["type"])

	w = env.do(t, http.MethodPost, "/api/v1/admin/savings", env.admin, map[string]any{"user_id": env.memberID, "amount": 2500})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = env.do(t, http.MethodPost, "/api/v1/admin/savings", env.admin, map[string]any{"user_id": env.memberID, "amount": "abc"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/api/v1/admin/savings", env.admin, map[string]any{"user_id": env.memberID, "amount": 10, "payment_date": "31/12/2024"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/savings/me/sum", env.member, nil)
	require.Equal(t, http.StatusOK, w.Code)
	sum := decode(t, w)
	assert.Equal(t, "7500.00", amountOf(t, sum["total"]))
	assert.EqualValues(t, 2, sum["count"])
	assert.Nil(t, sum["records"])

	w = env.do(t, http.MethodGet, "/api/v1/admin/savings?view=members&year=all", env.admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	members := decode(t, w)["members"].([]any)
	require.Len(t, members, 1)
	assert.Equal(t, "Ada Obi", members[0].(map[string]any)["full_name"])
}

func TestLoanEndpoints(t *testing.T) {
	env := newAPIEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/loans/quote", env.member, map[string]any{
		"loan_amount": "120,000", "interest_rate": 12, "duration_months": 12,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "10661.85", amountOf(t, decode(t, w)["monthly_payment"]))

	w = env.do(t, http.MethodPost, "/api/v1/loans/apply", env.member, map[string]any{
		"loan_amount": "120,000", "interest_rate": "12", "duration_months": 12,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	loan := decode(t, w)["loan"].(map[string]any)
	assert.Equal(t, models.LoanStatusPending, loan["status"])
	assert.Equal(t, "127942.26", amountOf(t, loan["balance"]))
	id := int(loan["id"].(float64))
	base := "/api/v1/admin/loans/" + jsonID(id)

	w = env.do(t, http.MethodPost, base+"/payment", env.admin, map[string]any{"amount": 100})
	assert.Equal(t, http.StatusConflict, w.Code, "pending loans take no payments")

	w = env.do(t, http.MethodPost, base+"/approve", env.admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.do(t, http.MethodPost, base+"/approve", env.admin, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = env.do(t, http.MethodPost, base+"/payment", env.admin, map[string]any{"amount": "200,000"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = env.do(t, http.MethodPost, base+"/payment", env.admin, map[string]any{"payment": map[string]any{"amount": "10,000"}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	loan = decode(t, w)["loan"].(map[string]any)
	assert.Equal(t, models.LoanStatusActive, loan["status"])
	assert.Equal(t, "117942.26", amountOf(t, loan["balance"]))

	w = env.do(t, http.MethodGet, "/api/v1/loans/me", env.member, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["loans"].([]any), 1)

	w = env.do(t, http.MethodPost, base+"/close", env.admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.LoanStatusClosed, decode(t, w)["loan"].(map[string]any)["status"])
}

func TestSuspendedMemberCannotApply(t *testing.T) {
	env := newAPIEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/admin/members/"+jsonID(int(env.memberID))+"/suspend", env.admin, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodPost, "/api/v1/loans/apply", env.member, map[string]any{
		"loan_amount": 1000, "interest_rate": 5, "duration_months": 6,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestStatementEndpoints(t *testing.T) {
	env := newAPIEnv(t)
	w := env.do(t, http.MethodPost, "/api/v1/admin/shares", env.admin, map[string]any{
		"user_id": env.memberID, "shares_count": 4, "share_value": "500",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "2000.00", amountOf(t, decode(t, w)["share"].(map[string]any)["total_value"]))

	w = env.do(t, http.MethodGet, "/api/v1/statements/me", env.member, nil)
	require.Equal(t, http.StatusOK, w.Code)
	stmt := decode(t, w)
	assert.Len(t, stmt["transactions"].([]any), 1)
	assert.Equal(t, "2000.00", amountOf(t, stmt["total_credit"]))

	w = env.do(t, http.MethodGet, "/api/v1/statements/me?format=csv&category=shares", env.member, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "statement_DPA-001_")
	assert.Contains(t, w.Body.String(), "Share Purchase - 4 Units")

	w = env.do(t, http.MethodGet, "/api/v1/admin/members/"+jsonID(int(env.memberID))+"/statement?format=pdf", env.admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))

	w = env.do(t, http.MethodGet, "/api/v1/statements/me?format=docx", env.member, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/statements/me?category=dividends", env.member, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFinancialYearEndpoints(t *testing.T) {
	env := newAPIEnv(t)

	w := env.do(t, http.MethodGet, "/api/v1/financial-years", env.member, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	available := body["available"].([]any)
	assert.Equal(t, "all", available[0])
	assert.Equal(t, body["current"].(map[string]any)["label"], body["selected"])

	w = env.do(t, http.MethodPut, "/api/v1/admin/settings/financial-year", env.admin, map[string]any{
		"start_date": "2025-12-31", "end_date": "2025-01-01",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPut, "/api/v1/admin/settings/financial-year", env.admin, map[string]any{"start_date": "2025-01-01"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPut, "/api/v1/admin/settings/financial-year", env.admin, map[string]any{
		"start_date": "2025-01-01", "end_date": "2025-12-31",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "2025", decode(t, w)["financial_year"].(map[string]any)["label"])

	w = env.do(t, http.MethodGet, "/api/v1/admin/settings/financial-year", env.admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["configured"])
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{services.ErrValidation, http.StatusBadRequest},
		{services.ErrForbidden, http.StatusForbidden},
		{services.ErrNotFound, http.StatusNotFound},
		{services.ErrInvalidState, http.StatusConflict},
		{services.ErrDuplicate, http.StatusConflict},
		{context.DeadlineExceeded, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}

func jsonID(id int) string {
	b, _ := json.Marshal(id)
	return string(b)
}
