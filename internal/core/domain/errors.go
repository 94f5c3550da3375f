package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks malformed user input. Use errors.Is to test for it;
	// the concrete value is usually a *ValidationError.
	ErrValidation = errors.New("validation failed")
	// ErrAuth is returned when a submitted one-time code does not match.
	ErrAuth = errors.New("incorrect code")
	// ErrPersistenceParse marks stored data that could not be decoded.
	ErrPersistenceParse = errors.New("stored data could not be parsed")

	ErrNoChallenge        = errors.New("no code has been requested")
	ErrChallengeNotFound  = errors.New("challenge not found")
	ErrNoSession          = errors.New("no active session")
	ErrGrievanceNotFound  = errors.New("grievance not found")
	ErrForbidden          = errors.New("access forbidden")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrInvalidStatus      = errors.New("unknown grievance status")
	ErrWizardIncomplete   = errors.New("wizard has not reached the review step")
	ErrOfficerLoginDenied = errors.New("officer demo login is disabled")
)

// ValidationError describes a single rejected input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError is a convenience constructor.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
