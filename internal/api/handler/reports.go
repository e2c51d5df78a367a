package handler

import (
	"laporrt/backend/internal/api/response"
	"laporrt/backend/internal/models"
	"laporrt/backend/internal/report"

	"github.com/gin-gonic/gin"
)

// ListReports supports ?category=, ?status=, ?q= and ?mine=true.
func (h *Handler) ListReports(c *gin.Context) {
	ctx := c.Request.Context()
	var (
		reports []models.IncidentReport
		err     error
	)
	if c.Query("mine") == "true" {
		reports, err = h.Reports.Mine(ctx, currentAccount(c))
	} else {
		reports, err = h.Reports.List(ctx, report.Filter{
			Category: models.ReportCategory(c.Query("category")),
			Status:   models.ReportStatus(c.Query("status")),
			Query:    c.Query("q"),
		})
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, reports)
}

func (h *Handler) CreateReport(c *gin.Context) {
	var req report.Draft
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.CodeBind)
		return
	}
	r, err := h.Reports.Create(c.Request.Context(), currentAccount(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, r)
}

func (h *Handler) GetReport(c *gin.Context) {
	r, err := h.Reports.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, r)
}

func (h *Handler) DeleteReport(c *gin.Context) {
	if err := h.Reports.Delete(c.Request.Context(), currentAccount(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

type respondRequest struct {
	Message string `json:"message"`
}

func (h *Handler) RespondReport(c *gin.Context) {
	var req respondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.CodeBind)
		return
	}
	r, err := h.Reports.Respond(c.Request.Context(), currentAccount(c), c.Param("id"), req.Message)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, r)
}

type reportStatusRequest struct {
	Status models.ReportStatus `json:"status" binding:"required"`
}

func (h *Handler) SetReportStatus(c *gin.Context) {
	var req reportStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.CodeBind)
		return
	}
	r, err := h.Reports.SetStatus(c.Request.Context(), currentAccount(c), c.Param("id"), req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, r)
}
