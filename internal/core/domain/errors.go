package domain

import (
	"errors"
	"fmt"
)

var ErrUnauthorized = errors.New("unauthorized")
var ErrForbidden = errors.New("forbidden")
var ErrArticleNotFound = errors.New("article not found")
var ErrProfileNotFound = errors.New("profile not found")
var ErrInvalidRole = errors.New("invalid role")
var ErrSelfSubscription = errors.New("cannot subscribe to yourself")

// ValidationError reports a payload that failed validation, naming the
// offending field so clients can highlight it.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError builds a ValidationError for the given field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
