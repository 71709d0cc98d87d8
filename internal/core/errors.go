package core

import (
	"errors"
	"fmt"
)

// Error classes. Handlers map these to HTTP statuses with errors.Is.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrUpstream     = errors.New("upstream request failed")
)

var (
	ErrBusinessNotFound = fmt.Errorf("business %w", ErrNotFound)
	ErrCategoryNotFound = fmt.Errorf("category %w", ErrNotFound)
	ErrUserNotFound     = fmt.Errorf("user %w", ErrNotFound)

	ErrEmailTaken      = fmt.Errorf("%w: email already in use", ErrConflict)
	ErrAlreadyReviewed = fmt.Errorf("%w: review already exists for this business and user", ErrConflict)

	// ErrAccountNotFound is returned by login when no identity has the email.
	ErrAccountNotFound = fmt.Errorf("%w: no account for email", ErrUnauthorized)
)

// ValidationError carries a client-facing message and matches ErrInvalidInput.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

func invalid(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
