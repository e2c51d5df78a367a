package response

import "net/http"

// General codes (100xxx).
const (
	CodeSuccess int = iota + 100000
	CodeInternal
	CodeBind
	CodeValidation
	CodeUnauthorized
	CodeForbidden
	CodeNotFound
	CodeUnavailable
)

// Account codes (101xxx).
const (
	CodeEmailTaken int = iota + 101000
	CodeUnknownEmail
	CodeWrongPassword
	CodeSelfDelete
)

// Workflow codes (102xxx).
const (
	CodeInvalidStatus int = iota + 102000
	CodeInvalidCategory
	CodeInvalidTransition
	CodeSignatureRequired
	CodeRejectionReasonRequired
	CodeNotApproved
)

// codeMessageKeys maps a code to its localization key.
var codeMessageKeys = map[int]string{
	CodeSuccess:      "error.success",
	CodeInternal:     "error.internal",
	CodeBind:         "error.bad_request",
	CodeValidation:   "error.validation",
	CodeUnauthorized: "error.unauthorized",
	CodeForbidden:    "error.forbidden",
	CodeNotFound:     "error.not_found",
	CodeUnavailable:  "error.unavailable",

	CodeEmailTaken:    "error.email_taken",
	CodeUnknownEmail:  "error.unknown_email",
	CodeWrongPassword: "error.wrong_password",
	CodeSelfDelete:    "error.self_delete",

	CodeInvalidStatus:           "error.invalid_status",
	CodeInvalidCategory:         "error.invalid_category",
	CodeInvalidTransition:       "error.invalid_transition",
	CodeSignatureRequired:       "error.signature_required",
	CodeRejectionReasonRequired: "error.rejection_reason_required",
	CodeNotApproved:             "error.not_approved",
}

var codeStatus = map[int]int{
	CodeSuccess:      http.StatusOK,
	CodeInternal:     http.StatusInternalServerError,
	CodeBind:         http.StatusBadRequest,
	CodeValidation:   http.StatusBadRequest,
	CodeUnauthorized: http.StatusUnauthorized,
	CodeForbidden:    http.StatusForbidden,
	CodeNotFound:     http.StatusNotFound,
	CodeUnavailable:  http.StatusServiceUnavailable,

	CodeEmailTaken:    http.StatusConflict,
	CodeUnknownEmail:  http.StatusUnauthorized,
	CodeWrongPassword: http.StatusUnauthorized,
	CodeSelfDelete:    http.StatusBadRequest,

	CodeInvalidStatus:           http.StatusBadRequest,
	CodeInvalidCategory:         http.StatusBadRequest,
	CodeInvalidTransition:       http.StatusConflict,
	CodeSignatureRequired:       http.StatusBadRequest,
	CodeRejectionReasonRequired: http.StatusBadRequest,
	CodeNotApproved:             http.StatusConflict,
}

// MessageKey returns the localization key of code.
func MessageKey(code int) string {
	if key, ok := codeMessageKeys[code]; ok {
		return key
	}
	return codeMessageKeys[CodeInternal]
}

// Status returns the HTTP status of code.
func Status(code int) int {
	if status, ok := codeStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
