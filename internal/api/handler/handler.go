package handler

import (
	"context"

	"laporrt/backend/internal/auth"
	"laporrt/backend/internal/document"
	"laporrt/backend/internal/finance"
	"laporrt/backend/internal/localization"
	"laporrt/backend/internal/report"

	"github.com/gin-gonic/gin"
)

// Handler holds the services behind the HTTP API.
type Handler struct {
	Auth      *auth.Service
	Reports   *report.Service
	Documents *document.Service
	Finances  *finance.Service
	Labels    *localization.Localizer
	Unit      document.Unit
	// Ping checks the storage backend for /health. Nil means always healthy.
	Ping func(ctx context.Context) error
	// Mode is reported by /health.
	Mode string
}

// RegisterRoutes mounts the API under /api.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	api.Use(h.Authenticate())

	api.GET("/health", h.Health)

	authGroup := api.Group("/auth")
	authGroup.POST("/register", h.Register)
	authGroup.POST("/login", h.Login)
	authGroup.POST("/logout", h.Logout)

	p := api.Group("")
	p.Use(RequireAccount())
	p.GET("/auth/me", h.Me)

	p.GET("/reports", h.ListReports)
	p.POST("/reports", h.CreateReport)
	p.GET("/reports/:id", h.GetReport)
	p.DELETE("/reports/:id", h.DeleteReport)
	p.POST("/reports/:id/responses", h.RespondReport)
	p.PUT("/reports/:id/status", h.SetReportStatus)

	p.GET("/finances", h.ListFinances)
	p.POST("/finances", h.CreateFinance)
	p.GET("/finances/summary", h.FinanceSummary)
	p.GET("/finances/export", h.ExportFinances)
	p.PUT("/finances/:id", h.UpdateFinance)
	p.DELETE("/finances/:id", h.DeleteFinance)

	p.GET("/documents", h.ListDocuments)
	p.POST("/documents", h.CreateDocument)
	p.GET("/documents/:id", h.GetDocument)
	p.POST("/documents/:id/process", h.ProcessDocument)
	p.POST("/documents/:id/decision", h.DecideDocument)
	p.GET("/documents/:id/letter", h.DocumentLetter)

	p.GET("/users", h.ListUsers)
	p.PUT("/users/:id/role", h.ChangeUserRole)
	p.DELETE("/users/:id", h.DeleteUser)

	p.GET("/dashboard", h.Dashboard)
}
