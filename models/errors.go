package models

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidKind  = errors.New("invalid notification kind")
	ErrValidation   = errors.New("validation error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrStore        = errors.New("store unavailable")
	// ErrAlreadyClaimed is returned when a reminder marker for the same
	// (kind, date) already exists.
	ErrAlreadyClaimed = errors.New("reminder already claimed for this date")
)

// ValidationError describes a rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func NewValidationError(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}
