// Package domain contains domain errors used throughout the application.
package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions.
var (
	ErrNilRegistry   = errors.New("registry is nil")
	ErrNilHandler    = errors.New("handler is nil")
	ErrEmptyScenario = errors.New("scenario has no steps")
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// ScenarioError represents a scenario file loading error.
type ScenarioError struct {
	Path string
	Err  error
}

func (e *ScenarioError) Error() string {
	return fmt.Sprintf("scenario %s: %v", e.Path, e.Err)
}

func (e *ScenarioError) Unwrap() error {
	return e.Err
}

// NewScenarioError creates a new ScenarioError.
func NewScenarioError(path string, err error) *ScenarioError {
	return &ScenarioError{
		Path: path,
		Err:  err,
	}
}
