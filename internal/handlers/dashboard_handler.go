package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/dpa-api/internal/middleware"
	"github.com/sjperalta/dpa-api/internal/services"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
}

func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// @Summary Admin Dashboard
// @Description Association totals, monthly series and loan distribution for a period
// @Tags Dashboard
// @Produce json
// @Param year query string false "Period selection"
// @Success 200 {object} services.AdminDashboardView
// @Security BearerAuth
// @Router /admin/dashboard [get]
func (h *DashboardHandler) Admin(c *gin.Context) {
	view, err := h.dashboardService.Admin(c.Request.Context(), yearParam(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Member Dashboard
// @Tags Dashboard
// @Produce json
// @Param year query string false "Period selection"
// @Success 200 {object} services.MemberDashboardView
// @Security BearerAuth
// @Router /dashboard/me [get]
func (h *DashboardHandler) Mine(c *gin.Context) {
	view, err := h.dashboardService.Member(c.Request.Context(), middleware.GetUserID(c), yearParam(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
