package handler

import (
	"log"
	"time"

	"laporrt/backend/internal/analysis"
	"laporrt/backend/internal/api/response"
	"laporrt/backend/internal/config"
	"laporrt/backend/internal/document"
	"laporrt/backend/internal/idfmt"
	"laporrt/backend/internal/models"
	"laporrt/backend/internal/report"

	"github.com/gin-gonic/gin"
)

type dashboard struct {
	Reports         report.Stats     `json:"reports"`
	Documents       document.Stats   `json:"documents"`
	Finance         analysis.Summary `json:"finance"`
	RecentReports   []recentReport   `json:"recentReports"`
	RecentDocuments []recentDocument `json:"recentDocuments"`
}

// recentReport and recentDocument add the "3 jam yang lalu" age shown in
// the activity lists.
type recentReport struct {
	models.IncidentReport
	Age string `json:"age"`
}

type recentDocument struct {
	models.DocumentRequest
	Age string `json:"age"`
}

func firstN[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func recentReports(reports []models.IncidentReport, now time.Time) []recentReport {
	reports = firstN(reports, config.RecentItemsLimit)
	out := make([]recentReport, len(reports))
	for i, r := range reports {
		out[i] = recentReport{IncidentReport: r, Age: idfmt.RelativeTime(r.CreatedAt, now)}
	}
	return out
}

func recentDocuments(docs []models.DocumentRequest, now time.Time) []recentDocument {
	docs = firstN(docs, config.RecentItemsLimit)
	out := make([]recentDocument, len(docs))
	for i, d := range docs {
		out[i] = recentDocument{DocumentRequest: d, Age: idfmt.RelativeTime(d.CreatedAt, now)}
	}
	return out
}

// Dashboard aggregates the counters of the home page. Document figures are
// limited to what the caller may see.
func (h *Handler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	actor := currentAccount(c)
	now := time.Now()

	reportStats, err := h.Reports.Stats(ctx)
	if err != nil {
		response.Error(c, err)
		return
	}
	reports, err := h.Reports.List(ctx, report.Filter{})
	if err != nil {
		response.Error(c, err)
		return
	}
	docs, err := h.Documents.List(ctx, actor)
	if err != nil {
		response.Error(c, err)
		return
	}
	docStats, err := h.Documents.Stats(ctx, actor)
	if err != nil {
		response.Error(c, err)
		return
	}
	summary, err := h.Finances.Summary(ctx)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dashboard{
		Reports:         reportStats,
		Documents:       docStats,
		Finance:         summary.Summary,
		RecentReports:   recentReports(reports, now),
		RecentDocuments: recentDocuments(docs, now),
	})
}

func (h *Handler) Health(c *gin.Context) {
	if h.Ping != nil {
		if err := h.Ping(c.Request.Context()); err != nil {
			log.Printf("ERROR: health check (%s): %v", h.Mode, err)
			response.Fail(c, response.CodeUnavailable)
			return
		}
	}
	response.Success(c, gin.H{"status": "ok", "storage": h.Mode})
}
