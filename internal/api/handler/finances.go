package handler

import (
	"net/http"
	"time"

	"laporrt/backend/internal/api/response"
	"laporrt/backend/internal/apperr"
	"laporrt/backend/internal/finance"
	"laporrt/backend/internal/models"

	"github.com/gin-gonic/gin"
)

type financeRequest struct {
	Type        models.EntryType       `json:"type"`
	Category    models.FinanceCategory `json:"category"`
	Amount      int64                  `json:"amount"`
	Description string                 `json:"description"`
	// Date is "2006-01-02" or RFC 3339.
	Date string `json:"date"`
}

func (r financeRequest) draft() (finance.Draft, error) {
	d := finance.Draft{Type: r.Type, Category: r.Category, Amount: r.Amount, Description: r.Description}
	if r.Date == "" {
		return d, apperr.Validation("date is required")
	}
	date, err := time.Parse(time.DateOnly, r.Date)
	if err != nil {
		if date, err = time.Parse(time.RFC3339, r.Date); err != nil {
			return d, apperr.Validation("date %q is not a valid date", r.Date)
		}
	}
	d.Date = date
	return d, nil
}

// ListFinances supports ?type=income|expense.
func (h *Handler) ListFinances(c *gin.Context) {
	entries, err := h.Finances.List(c.Request.Context(), models.EntryType(c.Query("type")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, entries)
}

func (h *Handler) CreateFinance(c *gin.Context) {
	var req financeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.CodeBind)
		return
	}
	d, err := req.draft()
	if err != nil {
		response.Error(c, err)
		return
	}
	e, err := h.Finances.Create(c.Request.Context(), currentAccount(c), d)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, e)
}

func (h *Handler) UpdateFinance(c *gin.Context) {
	var req financeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.CodeBind)
		return
	}
	d, err := req.draft()
	if err != nil {
		response.Error(c, err)
		return
	}
	e, err := h.Finances.Update(c.Request.Context(), currentAccount(c), c.Param("id"), d)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, e)
}

func (h *Handler) DeleteFinance(c *gin.Context) {
	if err := h.Finances.Delete(c.Request.Context(), currentAccount(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (h *Handler) FinanceSummary(c *gin.Context) {
	summary, err := h.Finances.Summary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, summary)
}

// ExportFinances downloads the ledger spreadsheet.
func (h *Handler) ExportFinances(c *gin.Context) {
	name, data, err := h.Finances.ExportCSV(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	setAttachment(c, name)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}
