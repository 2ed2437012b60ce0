package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// ErrInvalidParameter is the single failure kind of the evaluation engine
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrUnknownKind is returned when a distribution name cannot be resolved
	ErrUnknownKind = fmt.Errorf("%w: unknown distribution", ErrInvalidParameter)
	// ErrUnknownMode is returned when a normal probability mode cannot be resolved
	ErrUnknownMode = fmt.Errorf("%w: unknown normal mode", ErrInvalidParameter)

	ErrNotFound = errors.New("resource not found")
)

// ParameterError names the parameter and the constraint it violated
type ParameterError struct {
	Field  string
	Reason string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidParameter, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidParameter
func (e *ParameterError) Unwrap() error {
	return ErrInvalidParameter
}

// NewParameterError builds a ParameterError for field with a formatted reason
func NewParameterError(field string, format string, args ...interface{}) error {
	return &ParameterError{
		Field:  field,
		Reason: fmt.Sprintf(format, args...),
	}
}

// IsInvalidParameter reports whether err stems from parameter validation
func IsInvalidParameter(err error) bool {
	return errors.Is(err, ErrInvalidParameter)
}

// ParameterField extracts the offending field name, or "" when err carries none
func ParameterField(err error) string {
	var pe *ParameterError
	if errors.As(err, &pe) {
		return pe.Field
	}
	return ""
}
