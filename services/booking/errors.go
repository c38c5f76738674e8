package booking

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrUnknownTest     = errors.New("unknown test")
	ErrTerminalStatus  = errors.New("booking already has its report ready")
	ErrUnknownStatus   = errors.New("unknown booking status")
	ErrBookingNotFound = errors.New("booking not found")
)

// ValidationError reports a booking form field that blocks submission.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, msg string) error {
	return &ValidationError{
		Field:   field,
		Message: msg,
	}
}
