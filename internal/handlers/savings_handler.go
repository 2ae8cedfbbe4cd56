package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/dpa-api/internal/finance"
	"github.com/sjperalta/dpa-api/internal/middleware"
	"github.com/sjperalta/dpa-api/internal/services"
)

type SavingsHandler struct {
	savingsService *services.SavingsService
}

func NewSavingsHandler(savingsService *services.SavingsService) *SavingsHandler {
	return &SavingsHandler{savingsService: savingsService}
}

// SavingsRequest records a contribution. Amount accepts numbers and formatted
// strings such as "₦5,000.00".
type SavingsRequest struct {
	UserID       uint    `json:"user_id"`
	Amount       any     `json:"amount" swaggertype:"string"`
	Type         string  `json:"type"`
	PaymentDate  string  `json:"payment_date"`
	PaymentMonth string  `json:"payment_month"`
	Description  *string `json:"description"`
}

func (r SavingsRequest) input() (services.SavingsInput, error) {
	date, err := optionalDate(r.PaymentDate)
	if err != nil {
		return services.SavingsInput{}, err
	}
	return services.SavingsInput{
		UserID:       r.UserID,
		Amount:       finance.ParseAmount(r.Amount),
		Type:         r.Type,
		PaymentDate:  date,
		PaymentMonth: r.PaymentMonth,
		Description:  r.Description,
	}, nil
}

// @Summary List Savings
// @Description Savings in a period, as transactions or totals per member
// @Tags Savings
// @Produce json
// @Param year query string false "Period selection"
// @Param view query string false "transactions or members"
// @Param search_term query string false "Member name or savings type"
// @Param user_id query int false "Restrict to one member"
// @Success 200 {object} services.SavingsListing
// @Security BearerAuth
// @Router /admin/savings [get]
func (h *SavingsHandler) Index(c *gin.Context) {
	userID, ok := optionalUserID(c)
	if !ok {
		return
	}
	listing, err := h.savingsService.List(c.Request.Context(), services.LedgerListQuery{
		UserID: userID,
		Search: c.Query("search_term"),
		Period: yearParam(c),
		View:   c.DefaultQuery("view", services.ViewTransactions),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

// @Summary My Savings
// @Tags Savings
// @Produce json
// @Param year query string false "Period selection"
// @Success 200 {object} services.SavingsListing
// @Security BearerAuth
// @Router /savings/me [get]
func (h *SavingsHandler) Mine(c *gin.Context) {
	userID := middleware.GetUserID(c)
	listing, err := h.savingsService.List(c.Request.Context(), services.LedgerListQuery{
		UserID: &userID,
		Period: yearParam(c),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

// @Summary My Savings Total
// @Tags Savings
// @Produce json
// @Param year query string false "Period selection"
// @Success 200 {object} services.SavingsListing
// @Security BearerAuth
// @Router /savings/me/sum [get]
func (h *SavingsHandler) MySum(c *gin.Context) {
	summary, err := h.savingsService.Summary(c.Request.Context(), middleware.GetUserID(c), yearParam(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// @Summary Record Savings
// @Tags Savings
// @Accept json
// @Produce json
// @Param request body SavingsRequest true "Contribution"
// @Success 201 {object} models.SavingsRecord
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /admin/savings [post]
func (h *SavingsHandler) Create(c *gin.Context) {
	var req SavingsRequest
	if err := BindNestedOrFlat(c, "savings", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input, err := req.input()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := h.savingsService.Create(c.Request.Context(), input, actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"savings": record})
}

// @Summary Update Savings
// @Tags Savings
// @Accept json
// @Produce json
// @Param id path int true "Savings record ID"
// @Param request body SavingsRequest true "Contribution"
// @Success 200 {object} models.SavingsRecord
// @Security BearerAuth
// @Router /admin/savings/{id} [put]
func (h *SavingsHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req SavingsRequest
	if err := BindNestedOrFlat(c, "savings", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input, err := req.input()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := h.savingsService.Update(c.Request.Context(), id, input, actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"savings": record})
}

// @Summary Delete Savings
// @Tags Savings
// @Produce json
// @Param id path int true "Savings record ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /admin/savings/{id} [delete]
func (h *SavingsHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.savingsService.Delete(c.Request.Context(), id, actor(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Savings record deleted"})
}
