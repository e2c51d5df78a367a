// Package response writes the JSON envelope {code, message, data} shared by
// every API endpoint and maps service errors to codes.
package response

import (
	"errors"
	"log"
	"strings"

	"laporrt/backend/internal/apperr"
	"laporrt/backend/internal/auth"
	"laporrt/backend/internal/document"
	"laporrt/backend/internal/localization"

	"github.com/gin-gonic/gin"
)

// Response is the envelope of every JSON reply.
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Lang picks the message language from the first tag of Accept-Language,
// falling back to the default when no translation is loaded for it.
func Lang(c *gin.Context) string {
	tag := strings.ToLower(strings.TrimSpace(c.GetHeader("Accept-Language")))
	if i := strings.IndexAny(tag, ",;-"); i >= 0 {
		tag = tag[:i]
	}
	for _, lang := range localization.Default().Languages() {
		if lang == tag {
			return lang
		}
	}
	return localization.DefaultLang
}

func message(c *gin.Context, code int) string {
	return localization.Default().GetString(Lang(c), MessageKey(code))
}

func Success(c *gin.Context, data any) {
	c.JSON(Status(CodeSuccess), Response{
		Code:    CodeSuccess,
		Message: message(c, CodeSuccess),
		Data:    data,
	})
}

func Fail(c *gin.Context, code int) {
	FailWithMessage(c, code, message(c, code))
}

func FailWithMessage(c *gin.Context, code int, msg string) {
	c.AbortWithStatusJSON(Status(code), Response{
		Code:    code,
		Message: msg,
	})
}

var errorCodes = []struct {
	err  error
	code int
}{
	{auth.ErrEmailTaken, CodeEmailTaken},
	{auth.ErrUnknownEmail, CodeUnknownEmail},
	{auth.ErrWrongPassword, CodeWrongPassword},
	{auth.ErrSelfDelete, CodeSelfDelete},
	{document.ErrSignatureRequired, CodeSignatureRequired},
	{document.ErrRejectionReasonRequired, CodeRejectionReasonRequired},
	{document.ErrNotApproved, CodeNotApproved},
	{apperr.ErrInvalidStatus, CodeInvalidStatus},
	{apperr.ErrInvalidCategory, CodeInvalidCategory},
	{apperr.ErrInvalidTransition, CodeInvalidTransition},
	{apperr.ErrValidation, CodeValidation},
	{apperr.ErrForbidden, CodeForbidden},
	{apperr.ErrNotFound, CodeNotFound},
}

// CodeOf returns the code for a service error, CodeInternal when unknown.
func CodeOf(err error) int {
	for _, ec := range errorCodes {
		if errors.Is(err, ec.err) {
			return ec.code
		}
	}
	return CodeInternal
}

// Error writes err as a failure. Validation errors carry their detail;
// internal errors are logged and reported without it.
func Error(c *gin.Context, err error) {
	code := CodeOf(err)
	switch code {
	case CodeInternal:
		log.Printf("ERROR: %s %s: %v", c.Request.Method, c.FullPath(), err)
		Fail(c, code)
	case CodeValidation:
		detail := strings.TrimPrefix(err.Error(), apperr.ErrValidation.Error()+": ")
		FailWithMessage(c, code, message(c, code)+": "+detail)
	default:
		Fail(c, code)
	}
}
