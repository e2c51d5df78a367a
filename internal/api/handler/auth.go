package handler

import (
	"time"

	"laporrt/backend/internal/api/response"
	"laporrt/backend/internal/auth"
	"laporrt/backend/internal/models"
	"laporrt/backend/internal/session"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type sessionResponse struct {
	Token     string         `json:"token"`
	ExpiresAt string         `json:"expiresAt"`
	Account   models.Account `json:"account"`
}

func newSessionResponse(s *session.Session) sessionResponse {
	return sessionResponse{
		Token:     s.Token,
		ExpiresAt: s.ExpiresAt.UTC().Format(time.RFC3339),
		Account:   s.Account,
	}
}

// Register creates a resident account and logs it in.
func (h *Handler) Register(c *gin.Context) {
	var req auth.Registration
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.CodeBind)
		return
	}
	ctx := c.Request.Context()
	if _, err := h.Auth.Register(ctx, req); err != nil {
		response.Error(c, err)
		return
	}
	s, err := h.Auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, newSessionResponse(s))
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.CodeBind)
		return
	}
	s, err := h.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, newSessionResponse(s))
}

// Logout ends the session of the bearer token. It succeeds without one.
func (h *Handler) Logout(c *gin.Context) {
	if err := h.Auth.Logout(c.Request.Context(), c.GetString(tokenKey)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (h *Handler) Me(c *gin.Context) {
	response.Success(c, currentAccount(c))
}

func (h *Handler) ListUsers(c *gin.Context) {
	accounts, err := h.Auth.ListAccounts(c.Request.Context(), currentAccount(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, accounts)
}

type roleRequest struct {
	Role models.Role `json:"role" binding:"required"`
}

func (h *Handler) ChangeUserRole(c *gin.Context) {
	var req roleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.CodeBind)
		return
	}
	account, err := h.Auth.ChangeRole(c.Request.Context(), currentAccount(c), c.Param("id"), req.Role)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, account)
}

func (h *Handler) DeleteUser(c *gin.Context) {
	if err := h.Auth.DeleteAccount(c.Request.Context(), currentAccount(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
