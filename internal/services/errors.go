package services

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrUnauthenticated is returned when a credential is missing or fails verification.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrForbidden is returned when a verified identity lacks the required role.
	ErrForbidden = errors.New("insufficient permissions")

	// ErrValidation is matched by every *ValidationError.
	ErrValidation = errors.New("validation failed")

	// ErrCarNotFound is returned when the requested car does not exist.
	ErrCarNotFound = errors.New("car not found")

	// ErrRentalNotFound is returned when a rental does not exist or is not visible to the caller.
	ErrRentalNotFound = errors.New("rental not found")

	// ErrCarUnavailable is returned when a car is already rented for the requested period.
	ErrCarUnavailable = errors.New("car is not available for the requested period")

	// ErrInvalidCredentials is returned by login on an unknown email or wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailTaken is returned when registering an email that already exists.
	ErrEmailTaken = errors.New("email already registered")
)

// ValidationError carries per-field validation messages keyed by JSON field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

// Is makes errors.Is(err, ErrValidation) hold.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func newValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}
