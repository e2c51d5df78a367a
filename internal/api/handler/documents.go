package handler

import (
	"net/http"

	"laporrt/backend/internal/api/response"
	"laporrt/backend/internal/document"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListDocuments(c *gin.Context) {
	docs, err := h.Documents.List(c.Request.Context(), currentAccount(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, docs)
}

func (h *Handler) CreateDocument(c *gin.Context) {
	var req document.Draft
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.CodeBind)
		return
	}
	doc, err := h.Documents.Create(c.Request.Context(), currentAccount(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, doc)
}

func (h *Handler) GetDocument(c *gin.Context) {
	doc, err := h.Documents.Get(c.Request.Context(), currentAccount(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, doc)
}

func (h *Handler) ProcessDocument(c *gin.Context) {
	doc, err := h.Documents.MarkProcessing(c.Request.Context(), currentAccount(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, doc)
}

type decisionRequest struct {
	Decision          document.Decision `json:"decision" binding:"required"`
	Notes             string            `json:"notes"`
	ApproverSignature string            `json:"approverSignature"`
}

func (h *Handler) DecideDocument(c *gin.Context) {
	var req decisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.CodeBind)
		return
	}
	doc, err := h.Documents.Decide(c.Request.Context(), currentAccount(c), c.Param("id"), req.Decision, req.Notes, req.ApproverSignature)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, doc)
}

// DocumentLetter downloads the letter of an approved request.
func (h *Handler) DocumentLetter(c *gin.Context) {
	doc, err := h.Documents.Get(c.Request.Context(), currentAccount(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	name, body, err := document.RenderLetter(doc, h.Unit, h.Labels)
	if err != nil {
		response.Error(c, err)
		return
	}
	setAttachment(c, name)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(body))
}
