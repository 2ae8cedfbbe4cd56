package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/dpa-api/internal/repository"
	"github.com/sjperalta/dpa-api/internal/services"
)

type MemberHandler struct {
	memberService *services.MemberService
}

func NewMemberHandler(memberService *services.MemberService) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

// MemberRequest creates or updates a member profile
type MemberRequest struct {
	MemberID string `json:"member_id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

func (r MemberRequest) input() services.MemberInput {
	return services.MemberInput{
		MemberID: r.MemberID,
		FullName: r.FullName,
		Email:    r.Email,
		Phone:    r.Phone,
		Role:     r.Role,
	}
}

// @Summary List Members
// @Description Paginated member directory
// @Tags Members
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param search_term query string false "Name, email or member number"
// @Param role query string false "Role filter"
// @Param status query string false "Status filter"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /admin/members [get]
func (h *MemberHandler) Index(c *gin.Context) {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.Search = c.Query("search_term")
	query.SortBy = c.Query("sort_by")
	query.SortDir = c.Query("sort_dir")
	if role := c.Query("role"); role != "" {
		query.Filters["role"] = role
	}
	if status := c.Query("status"); status != "" {
		query.Filters["status"] = status
	}

	members, total, err := h.memberService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"members": members,
		"pagination": gin.H{
			"page":     query.Page,
			"per_page": query.PerPage,
			"total":    total,
		},
	})
}

// @Summary Create Member
// @Tags Members
// @Accept json
// @Produce json
// @Param request body MemberRequest true "Member"
// @Success 201 {object} models.Member
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /admin/members [post]
func (h *MemberHandler) Create(c *gin.Context) {
	var req MemberRequest
	if err := BindNestedOrFlat(c, "member", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	member, err := h.memberService.Create(c.Request.Context(), req.input(), actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"member": member})
}

// @Summary Update Member
// @Tags Members
// @Accept json
// @Produce json
// @Param id path int true "Member ID"
// @Param request body MemberRequest true "Member"
// @Success 200 {object} models.Member
// @Security BearerAuth
// @Router /admin/members/{id} [put]
func (h *MemberHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req MemberRequest
	if err := BindNestedOrFlat(c, "member", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	member, err := h.memberService.Update(c.Request.Context(), id, req.input(), actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"member": member})
}

// @Summary Suspend Member
// @Tags Members
// @Produce json
// @Param id path int true "Member ID"
// @Success 200 {object} models.Member
// @Security BearerAuth
// @Router /admin/members/{id}/suspend [post]
func (h *MemberHandler) Suspend(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	member, err := h.memberService.Suspend(c.Request.Context(), id, actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"member": member})
}

// @Summary Activate Member
// @Tags Members
// @Produce json
// @Param id path int true "Member ID"
// @Success 200 {object} models.Member
// @Security BearerAuth
// @Router /admin/members/{id}/activate [post]
func (h *MemberHandler) Activate(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	member, err := h.memberService.Activate(c.Request.Context(), id, actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"member": member})
}
