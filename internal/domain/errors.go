package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrConflict      = errors.New("conflict")

	// ErrPriceUnavailable means no fresh or cached market price exists for the
	// requested metal/currency pair, so a Nisab threshold cannot be computed.
	ErrPriceUnavailable = errors.New("price unavailable")

	// ErrInvalidTransition means an operation requested an illegal record
	// status change (e.g. unlocking a draft, finalizing a finalized record).
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrDuplicateOpenWindow means a draft record already exists for the user;
	// at most one open observation window is allowed per user.
	ErrDuplicateOpenWindow = errors.New("open hawl window already exists")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// NewInsufficientJustification reports an unlock reason below the minimum
// length. Unwraps to ErrValidation like any other field error.
func NewInsufficientJustification(minLen int) *ValidationError {
	return NewValidationError("reason", fmt.Sprintf("unlock reason must be at least %d characters", minLen))
}
