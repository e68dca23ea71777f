package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrQuizNotFound indicates the quiz content could not be loaded.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrPlayNotFound is returned when a stored play result does not exist.
	ErrPlayNotFound = errors.New("play result not found")
	// ErrSessionNotFound is returned when a play session has not been started or was discarded.
	ErrSessionNotFound = errors.New("play session not found")
	// ErrSessionEnded is returned when ending a session that already produced its result.
	ErrSessionEnded = errors.New("play session already ended")
	// ErrInvalidEndReason is returned when a caller asks for an end reason it may not trigger.
	ErrInvalidEndReason = errors.New("invalid end reason")
	// ErrInvalidInput is the base of every validation failure.
	ErrInvalidInput = errors.New("invalid input")
)

// ValidationError names the field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (field: %s)", ErrInvalidInput.Error(), e.Message, e.Field)
}

// Unwrap lets errors.Is match ErrInvalidInput.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// IsNotFound reports whether err means a quiz, play or session is missing.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrQuizNotFound) || errors.Is(err, ErrPlayNotFound) || errors.Is(err, ErrSessionNotFound)
}
