package domain

import (
	"errors"
	"fmt"
)

// Error kinds returned by tax and payroll computations. A *ValidationError
// matches its kind through errors.Is.
var (
	ErrInvalidInput = errors.New("invalid_input")
	ErrFormat       = errors.New("format_error")
	ErrJurisdiction = errors.New("jurisdiction_error")
	ErrMissingInput = errors.New("missing_input")
)

// ValidationError reports a correctable input problem back to the caller.
type ValidationError struct {
	Kind    error
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Kind, e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

func NewValidationError(kind error, field, message string) *ValidationError {
	return &ValidationError{Kind: kind, Field: field, Message: message}
}
