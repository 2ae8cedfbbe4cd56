package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sjperalta/dpa-api/internal/middleware"
)

// Register mounts the API routes on v1. Everything except the health check
// requires a valid token; /admin requires the admin role.
func (h *Handlers) Register(v1 *gin.RouterGroup, jwtSecret string) {
	v1.GET("/health", h.Health.Index)

	protected := v1.Group("")
	protected.Use(middleware.Auth(jwtSecret))
	{
		protected.GET("/financial-years", h.FinancialYear.Index)

		protected.POST("/loans/quote", h.Loan.Quote)
		protected.POST("/loans/apply", h.Loan.Apply)
		protected.GET("/loans/me", h.Loan.Mine)

		protected.GET("/savings/me", h.Savings.Mine)
		protected.GET("/savings/me/sum", h.Savings.MySum)
		protected.GET("/shares/me", h.Share.Mine)
		protected.GET("/shares/me/summary", h.Share.MySummary)

		protected.GET("/dashboard/me", h.Dashboard.Mine)
		protected.GET("/statements/me", h.Statement.Mine)
	}

	admin := protected.Group("/admin")
	admin.Use(middleware.RequireAdmin())
	{
		admin.GET("/dashboard", h.Dashboard.Admin)

		admin.GET("/members", h.Member.Index)
		admin.POST("/members", h.Member.Create)
		admin.PUT("/members/:id", h.Member.Update)
		admin.POST("/members/:id/suspend", h.Member.Suspend)
		admin.POST("/members/:id/activate", h.Member.Activate)
		admin.GET("/members/:id/statement", h.Statement.ForMember)

		admin.GET("/savings", h.Savings.Index)
		admin.POST("/savings", h.Savings.Create)
		admin.PUT("/savings/:id", h.Savings.Update)
		admin.DELETE("/savings/:id", h.Savings.Delete)

		admin.GET("/shares", h.Share.Index)
		admin.POST("/shares", h.Share.Create)
		admin.PUT("/shares/:id", h.Share.Update)
		admin.DELETE("/shares/:id", h.Share.Delete)

		admin.GET("/loans", h.Loan.Index)
		admin.POST("/loans", h.Loan.Create)
		admin.POST("/loans/:id/approve", h.Loan.Approve)
		admin.POST("/loans/:id/reject", h.Loan.Reject)
		admin.POST("/loans/:id/close", h.Loan.Close)
		admin.POST("/loans/:id/payment", h.Loan.Payment)
		admin.DELETE("/loans/:id", h.Loan.Delete)

		admin.GET("/settings/financial-year", h.FinancialYear.Show)
		admin.PUT("/settings/financial-year", h.FinancialYear.Update)

		admin.GET("/audits", h.Audit.Index)
		admin.GET("/jobs/status", h.Job.Status)
	}
}
