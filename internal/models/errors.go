package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for the store and service layers. Handlers translate
// these into stable error codes; everything else is a 500.
var (
	ErrValidation         = errors.New("validation error")
	ErrNotFound           = errors.New("not found")
	ErrDuplicateFolder    = errors.New("duplicate folder")
	ErrRevisionsExhausted = errors.New("revisions exhausted")
	ErrForbidden          = errors.New("forbidden")
)

// ValidationErrorf wraps ErrValidation with a caller-facing message.
func ValidationErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NotFoundErrorf wraps ErrNotFound with the missing resource description.
func NotFoundErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// ErrorCode maps an error to its stable wire code.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return "validation_error"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrDuplicateFolder):
		return "duplicate_folder"
	case errors.Is(err, ErrRevisionsExhausted):
		return "revisions_exhausted"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	default:
		return "internal_error"
	}
}
