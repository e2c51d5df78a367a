package handler

import (
	"mime"
	"strings"

	"laporrt/backend/internal/api/response"
	"laporrt/backend/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	accountKey = "account"
	tokenKey   = "token"
)

// extractToken strips the "Bearer " prefix of an Authorization header.
func extractToken(header string) string {
	if len(header) > 7 && strings.HasPrefix(header, "Bearer ") {
		return header[7:]
	}
	return ""
}

// Authenticate hydrates the session of a bearer token, if any, and stores
// the account in the request context. Requests without a live session pass
// through anonymously.
func (h *Handler) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c.GetHeader("Authorization"))
		if token == "" {
			c.Next()
			return
		}
		account, err := h.Auth.Current(c.Request.Context(), token)
		if err != nil {
			response.Error(c, err)
			return
		}
		c.Set(tokenKey, token)
		if account != nil {
			c.Set(accountKey, account)
		}
		c.Next()
	}
}

// RequireAccount rejects requests without an authenticated account.
func RequireAccount() gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentAccount(c) == nil {
			response.Fail(c, response.CodeUnauthorized)
			return
		}
		c.Next()
	}
}

func currentAccount(c *gin.Context) *models.Account {
	v, ok := c.Get(accountKey)
	if !ok {
		return nil
	}
	account, _ := v.(*models.Account)
	return account
}

// setAttachment marks the response as a download named name. Quotes and
// non-ASCII characters are escaped by mime.FormatMediaType.
func setAttachment(c *gin.Context, name string) {
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
}
