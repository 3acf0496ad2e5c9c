package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInternal = errors.New("internal error")

	// * Data errors.
	ErrDataNotFound    = errors.New("data not found")
	ErrConflictingData = errors.New("data was modified concurrently or conflicts with existing data")

	// * Communication errors.
	ErrBadRequest = errors.New("error parsing request")
	ErrValidation = errors.New("validation error")

	// * Messaging errors.
	ErrPublish = errors.New("payment request publish failed")
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries one entry per invalid request field.
type ValidationError struct {
	Fields []FieldError
}

func NewValidationError(fields ...FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// PublishError reports a failed handoff to the payment message sink.
type PublishError struct {
	OrderID OrderID
	Cause   error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("%s for order %d: %v", ErrPublish, e.OrderID, e.Cause)
}

func (e *PublishError) Unwrap() []error {
	return []error{ErrPublish, e.Cause}
}
