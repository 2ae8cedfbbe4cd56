package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/dpa-api/internal/finance"
	"github.com/sjperalta/dpa-api/internal/middleware"
	"github.com/sjperalta/dpa-api/internal/models"
	"github.com/sjperalta/dpa-api/internal/services"
)

type LoanHandler struct {
	loanService *services.LoanService
}

func NewLoanHandler(loanService *services.LoanService) *LoanHandler {
	return &LoanHandler{loanService: loanService}
}

// LoanRequest is a loan application. UserID is only read on admin-filed loans.
type LoanRequest struct {
	UserID          uint    `json:"user_id"`
	LoanAmount      any     `json:"loan_amount" swaggertype:"string"`
	InterestRate    any     `json:"interest_rate" swaggertype:"string"`
	DurationMonths  int     `json:"duration_months"`
	Purpose         *string `json:"purpose"`
	ApplicationDate string  `json:"application_date"`
}

func (r LoanRequest) input(userID uint) (services.LoanInput, error) {
	date, err := optionalDate(r.ApplicationDate)
	if err != nil {
		return services.LoanInput{}, err
	}
	return services.LoanInput{
		UserID:          userID,
		LoanAmount:      finance.ParseAmount(r.LoanAmount),
		InterestRate:    finance.ParseAmount(r.InterestRate),
		DurationMonths:  r.DurationMonths,
		Purpose:         r.Purpose,
		ApplicationDate: date,
	}, nil
}

// PaymentRequest records a partial repayment
type PaymentRequest struct {
	Amount any `json:"amount" swaggertype:"string"`
}

// @Summary Quote Loan
// @Description Repayment figures for a prospective loan. Incomplete input yields zeros.
// @Tags Loans
// @Accept json
// @Produce json
// @Param request body LoanRequest true "Principal, rate and term"
// @Success 200 {object} finance.Amortization
// @Security BearerAuth
// @Router /loans/quote [post]
func (h *LoanHandler) Quote(c *gin.Context) {
	var req LoanRequest
	if err := BindNestedOrFlat(c, "loan", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	quote := h.loanService.Quote(finance.ParseAmount(req.LoanAmount), finance.ParseAmount(req.InterestRate), req.DurationMonths)
	c.JSON(http.StatusOK, quote)
}

// @Summary Apply for Loan
// @Tags Loans
// @Accept json
// @Produce json
// @Param request body LoanRequest true "Application"
// @Success 201 {object} models.Loan
// @Failure 403 {object} map[string]string
// @Security BearerAuth
// @Router /loans/apply [post]
func (h *LoanHandler) Apply(c *gin.Context) {
	h.file(c, middleware.GetUserID(c))
}

// @Summary File Loan for Member
// @Tags Loans
// @Accept json
// @Produce json
// @Param request body LoanRequest true "Application with user_id"
// @Success 201 {object} models.Loan
// @Security BearerAuth
// @Router /admin/loans [post]
func (h *LoanHandler) Create(c *gin.Context) {
	h.file(c, 0)
}

// file stores a pending loan for userID, or for the body's user_id when userID is 0.
func (h *LoanHandler) file(c *gin.Context, userID uint) {
	var req LoanRequest
	if err := BindNestedOrFlat(c, "loan", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if userID == 0 {
		userID = req.UserID
	}
	input, err := req.input(userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	loan, err := h.loanService.Apply(c.Request.Context(), input, actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"loan": loan})
}

// @Summary My Loans
// @Tags Loans
// @Produce json
// @Param year query string false "Period selection"
// @Success 200 {object} services.LoanListing
// @Security BearerAuth
// @Router /loans/me [get]
func (h *LoanHandler) Mine(c *gin.Context) {
	userID := middleware.GetUserID(c)
	listing, err := h.loanService.List(c.Request.Context(), services.LedgerListQuery{
		UserID: &userID,
		Period: yearParam(c),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

// @Summary List Loans
// @Tags Loans
// @Produce json
// @Param year query string false "Period selection"
// @Param search_term query string false "Member name"
// @Param user_id query int false "Restrict to one member"
// @Success 200 {object} services.LoanListing
// @Security BearerAuth
// @Router /admin/loans [get]
func (h *LoanHandler) Index(c *gin.Context) {
	userID, ok := optionalUserID(c)
	if !ok {
		return
	}
	listing, err := h.loanService.List(c.Request.Context(), services.LedgerListQuery{
		UserID: userID,
		Search: c.Query("search_term"),
		Period: yearParam(c),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

// @Summary Approve Loan
// @Tags Loans
// @Produce json
// @Param id path int true "Loan ID"
// @Success 200 {object} models.Loan
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /admin/loans/{id}/approve [post]
func (h *LoanHandler) Approve(c *gin.Context) {
	h.act(c, h.loanService.Approve)
}

// @Summary Reject Loan
// @Tags Loans
// @Produce json
// @Param id path int true "Loan ID"
// @Success 200 {object} models.Loan
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /admin/loans/{id}/reject [post]
func (h *LoanHandler) Reject(c *gin.Context) {
	h.act(c, h.loanService.Reject)
}

// @Summary Close Loan
// @Tags Loans
// @Produce json
// @Param id path int true "Loan ID"
// @Success 200 {object} models.Loan
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /admin/loans/{id}/close [post]
func (h *LoanHandler) Close(c *gin.Context) {
	h.act(c, h.loanService.Close)
}

type loanAction func(ctx context.Context, id uint, actor services.Actor) (*models.Loan, error)

func (h *LoanHandler) act(c *gin.Context, action loanAction) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	loan, err := action(c.Request.Context(), id, actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"loan": loan})
}

// @Summary Record Loan Payment
// @Description Applies a partial repayment; the first payment on an approved loan activates it.
// @Tags Loans
// @Accept json
// @Produce json
// @Param id path int true "Loan ID"
// @Param request body PaymentRequest true "Amount"
// @Success 200 {object} models.Loan
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /admin/loans/{id}/payment [post]
func (h *LoanHandler) Payment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req PaymentRequest
	if err := BindNestedOrFlat(c, "payment", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	loan, err := h.loanService.RecordPayment(c.Request.Context(), id, finance.ParseAmount(req.Amount), actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"loan": loan})
}

// @Summary Delete Loan
// @Tags Loans
// @Produce json
// @Param id path int true "Loan ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /admin/loans/{id} [delete]
func (h *LoanHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.loanService.Delete(c.Request.Context(), id, actor(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Loan deleted"})
}
