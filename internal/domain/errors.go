package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrCatalog marks failures talking to the product catalog. It never reaches a client.
	ErrCatalog = errors.New("catalog lookup failed")

	// ErrUpstream marks failures of the completion or speech APIs.
	ErrUpstream = errors.New("upstream call failed")
)

// ValidationError reports a missing or malformed request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// NewValidationError creates a ValidationError for field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
