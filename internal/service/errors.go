package service

import (
	"errors"

	"github.com/RaymondMik/GetRideApp/internal/validation"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrInvalidID          = errors.New("invalid id")
	ErrDuplicateEmail     = errors.New("email is already registered")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid email or password") // Same for unknown email and wrong password
)

// ValidationError reports which fields of an input failed which rule.
// errors.Is(err, ErrValidation) holds for every ValidationError.
type ValidationError struct {
	Message string
	Fields  validation.FieldErrors
}

func newValidationError(message string, fields validation.FieldErrors) *ValidationError {
	return &ValidationError{Message: message, Fields: fields}
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
