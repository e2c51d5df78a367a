package response_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"laporrt/backend/internal/api/response"
	"laporrt/backend/internal/apperr"
	"laporrt/backend/internal/auth"
	"laporrt/backend/internal/document"
	"laporrt/backend/internal/localization"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeOf(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{auth.ErrEmailTaken, response.CodeEmailTaken},
		{fmt.Errorf("wrapped: %w", auth.ErrWrongPassword), response.CodeWrongPassword},
		{document.ErrSignatureRequired, response.CodeSignatureRequired},
		{apperr.Validation("title is required"), response.CodeValidation},
		{apperr.NotFound("report", "RPT-1"), response.CodeNotFound},
		{fmt.Errorf("%w: DOC-1 is selesai", apperr.ErrInvalidTransition), response.CodeInvalidTransition},
		{errors.New("dial tcp: refused"), response.CodeInternal},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.code, response.CodeOf(tc.err), tc.err.Error())
	}
}

func TestEveryCodeHasMessageAndStatus(t *testing.T) {
	codes := []int{
		response.CodeSuccess, response.CodeInternal, response.CodeBind, response.CodeValidation,
		response.CodeUnauthorized, response.CodeForbidden, response.CodeNotFound, response.CodeUnavailable,
		response.CodeEmailTaken, response.CodeUnknownEmail, response.CodeWrongPassword, response.CodeSelfDelete,
		response.CodeInvalidStatus, response.CodeInvalidCategory, response.CodeInvalidTransition,
		response.CodeSignatureRequired, response.CodeRejectionReasonRequired, response.CodeNotApproved,
	}
	labels := localization.Default()
	for _, code := range codes {
		key := response.MessageKey(code)
		if code != response.CodeInternal {
			assert.NotEqual(t, response.MessageKey(response.CodeInternal), key, code)
		}
		assert.NotEqual(t, key, labels.GetString("id", key), code)
		assert.NotEqual(t, key, labels.GetString("en", key), code)
		assert.NotZero(t, response.Status(code), code)
	}
}

func TestError_WritesEnvelope(t *testing.T) {
	// Arrange
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)

	// Act
	response.Error(c, auth.ErrUnknownEmail)

	// Assert
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var body response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, response.CodeUnknownEmail, body.Code)
	assert.Equal(t, "Email tidak terdaftar", body.Message)
}

func TestError_ValidationDetailAndLanguage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/reports", nil)
	c.Request.Header.Set("Accept-Language", "en-US,en;q=0.9")

	response.Error(c, apperr.Validation("title is required"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Missing or invalid data: title is required", body.Message)
}

func TestLang(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := map[string]string{
		"":               "id",
		"en-US,en;q=0.9": "en",
		"EN":             "en",
		"id-ID":          "id",
		"fr-FR,fr;q=0.8": "id",
		"de;q=0.9, en":   "id",
	}
	for header, want := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/api/health", nil)
		c.Request.Header.Set("Accept-Language", header)

		assert.Equal(t, want, response.Lang(c), header)
	}
}
