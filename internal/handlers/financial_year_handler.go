package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/dpa-api/internal/finance"
	"github.com/sjperalta/dpa-api/internal/services"
)

type FinancialYearHandler struct {
	yearService *services.FinancialYearService
}

func NewFinancialYearHandler(yearService *services.FinancialYearService) *FinancialYearHandler {
	return &FinancialYearHandler{yearService: yearService}
}

// FinancialYearRequest sets the current financial year boundaries
type FinancialYearRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
}

// @Summary List Financial Years
// @Description Current financial year, the selectable periods and the resolved selection
// @Tags Financial Years
// @Produce json
// @Param year query string false "Period selection (all or a financial year label)"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /financial-years [get]
func (h *FinancialYearHandler) Index(c *gin.Context) {
	ctx := c.Request.Context()

	current, err := h.yearService.Current(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	available, err := h.yearService.Available(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	selected := yearParam(c)
	if selected == "" {
		selected = current.Label
	}

	c.JSON(http.StatusOK, gin.H{
		"current":   current,
		"available": available,
		"selected":  selected,
	})
}

// @Summary Get Financial Year Setting
// @Description The financial year in force and whether an admin configured it
// @Tags Settings
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /admin/settings/financial-year [get]
func (h *FinancialYearHandler) Show(c *gin.Context) {
	ctx := c.Request.Context()

	current, err := h.yearService.Current(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	configured, err := h.yearService.IsConfigured(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"financial_year": current, "configured": configured})
}

// @Summary Update Financial Year Setting
// @Description Set the current financial year. The label is derived from the dates.
// @Tags Settings
// @Accept json
// @Produce json
// @Param request body FinancialYearRequest true "Boundaries"
// @Success 200 {object} finance.FinancialYear
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /admin/settings/financial-year [put]
func (h *FinancialYearHandler) Update(c *gin.Context) {
	var req FinancialYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date and end_date are required"})
		return
	}

	start, err := finance.ParseDate(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	end, err := finance.ParseDate(req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fy, err := h.yearService.SetCurrent(c.Request.Context(), start, end, actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"financial_year": fy})
}
