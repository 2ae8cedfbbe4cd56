package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/dpa-api/internal/finance"
	"github.com/sjperalta/dpa-api/internal/middleware"
	"github.com/sjperalta/dpa-api/internal/services"
)

type ShareHandler struct {
	shareService *services.ShareService
}

func NewShareHandler(shareService *services.ShareService) *ShareHandler {
	return &ShareHandler{shareService: shareService}
}

// ShareRequest records a share purchase; the total is always derived.
type ShareRequest struct {
	UserID       uint    `json:"user_id"`
	SharesCount  int     `json:"shares_count"`
	ShareValue   any     `json:"share_value" swaggertype:"string"`
	PurchaseDate string  `json:"purchase_date"`
	Description  *string `json:"description"`
}

func (r ShareRequest) input() (services.ShareInput, error) {
	date, err := optionalDate(r.PurchaseDate)
	if err != nil {
		return services.ShareInput{}, err
	}
	return services.ShareInput{
		UserID:       r.UserID,
		SharesCount:  r.SharesCount,
		ShareValue:   finance.ParseAmount(r.ShareValue),
		PurchaseDate: date,
		Description:  r.Description,
	}, nil
}

// @Summary List Shares
// @Tags Shares
// @Produce json
// @Param year query string false "Period selection"
// @Param view query string false "transactions or members"
// @Param search_term query string false "Member name"
// @Param user_id query int false "Restrict to one member"
// @Success 200 {object} services.ShareListing
// @Security BearerAuth
// @Router /admin/shares [get]
func (h *ShareHandler) Index(c *gin.Context) {
	userID, ok := optionalUserID(c)
	if !ok {
		return
	}
	listing, err := h.shareService.List(c.Request.Context(), services.LedgerListQuery{
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

// @Summary My Shares
// @Tags Shares
// @Produce json
// @Param year query string false "Period selection"
// @Success 200 {object} services.ShareListing
// @Security BearerAuth
// @Router /shares/me [get]
func (h *ShareHandler) Mine(c *gin.Context) {
	userID := middleware.GetUserID(c)
	listing, err := h.shareService.List(c.Request.Context(), services.LedgerListQuery{
		UserID: &userID,
		Period: yearParam(c),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

// @Summary My Share Holding
// @Tags Shares
// @Produce json
// @Param year query string false "Period selection"
// @Success 200 {object} services.ShareListing
// @Security BearerAuth
// @Router /shares/me/summary [get]
func (h *ShareHandler) MySummary(c *gin.Context) {
	summary, err := h.shareService.Summary(c.Request.Context(), middleware.GetUserID(c), yearParam(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// @Summary Record Share Purchase
// @Tags Shares
// @Accept json
// @Produce json
// @Param request body ShareRequest true "Purchase"
// @Success 201 {object} models.ShareRecord
// @Security BearerAuth
// @Router /admin/shares [post]
func (h *ShareHandler) Create(c *gin.Context) {
	var req ShareRequest
	if err := BindNestedOrFlat(c, "share", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input, err := req.input()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := h.shareService.Create(c.Request.Context(), input, actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"share": record})
}

// @Summary Update Share Purchase
// @Tags Shares
// @Accept json
// @Produce json
// @Param id path int true "Share record ID"
// @Param request body ShareRequest true "Purchase"
// @Success 200 {object} models.ShareRecord
// @Security BearerAuth
// @Router /admin/shares/{id} [put]
func (h *ShareHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req ShareRequest
	if err := BindNestedOrFlat(c, "share", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input, err := req.input()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := h.shareService.Update(c.Request.Context(), id, input, actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"share": record})
}

// @Summary Delete Share Purchase
// @Tags Shares
// @Produce json
// @Param id path int true "Share record ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /admin/shares/{id} [delete]
func (h *ShareHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.shareService.Delete(c.Request.Context(), id, actor(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Share record deleted"})
}
