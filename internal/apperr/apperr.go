// Package apperr holds the error kinds shared by the workflow services.
// Services wrap these with detail; callers match them with errors.Is.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrForbidden means the acting account lacks the required role.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound means the targeted record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrValidation means the input is caller-correctable.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidTransition means the record's status does not allow the operation.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrInvalidStatus means a status value outside the record's state set.
	ErrInvalidStatus = errors.New("invalid status")
	// ErrInvalidCategory means a category outside the closed set for the record.
	ErrInvalidCategory = errors.New("invalid category")
)

// Validation returns an ErrValidation carrying a description of the problem.
func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NotFound returns an ErrNotFound naming the missing record.
func NotFound(kind, id string) error {
	return fmt.Errorf("%w: %s %s", ErrNotFound, kind, id)
}
