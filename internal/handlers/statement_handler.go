package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/dpa-api/internal/middleware"
	"github.com/sjperalta/dpa-api/internal/services"
)

type StatementHandler struct {
	statementService *services.StatementService
	exportService    *services.ExportService
}

func NewStatementHandler(statementService *services.StatementService, exportService *services.ExportService) *StatementHandler {
	return &StatementHandler{statementService: statementService, exportService: exportService}
}

// @Summary My Statement
// @Description Account statement filtered by category and period, as JSON or a downloadable file
// @Tags Statements
// @Produce json,text/csv,application/pdf
// @Param category query string false "All, Savings, Loans or Shares"
// @Param year query string false "Period selection"
// @Param format query string false "json, csv, xlsx or pdf"
// @Success 200 {object} services.MemberStatement
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /statements/me [get]
func (h *StatementHandler) Mine(c *gin.Context) {
	h.render(c, middleware.GetUserID(c))
}

// @Summary Member Statement
// @Tags Statements
// @Produce json,text/csv,application/pdf
// @Param id path int true "Member ID"
// @Param category query string false "All, Savings, Loans or Shares"
// @Param year query string false "Period selection"
// @Param format query string false "json, csv, xlsx or pdf"
// @Success 200 {object} services.MemberStatement
// @Security BearerAuth
// @Router /admin/members/{id}/statement [get]
func (h *StatementHandler) ForMember(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	h.render(c, id)
}

func (h *StatementHandler) render(c *gin.Context, userID uint) {
	format := strings.ToLower(c.DefaultQuery("format", services.FormatJSON))

	stmt, err := h.statementService.Build(c.Request.Context(), userID, c.Query("category"), yearParam(c))
	if err != nil {
		respondError(c, err)
		return
	}

	if format == services.FormatJSON {
		c.JSON(http.StatusOK, stmt)
		return
	}

	body, filename, err := h.exportService.Statement(stmt, format)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, services.ExportContentTypes[format], body)
}
