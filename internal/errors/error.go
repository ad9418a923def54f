package errors

import (
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryConfig     Category = "config"
	CategoryValidation Category = "validation"
	CategoryRuntime    Category = "runtime"
	CategoryCLI        Category = "cli"
)

// StradaError is a structured error with a stable code and fix suggestion.
type StradaError struct {
	// Code is a unique error identifier (e.g., "E101").
	Code string

	// Category is the error type (config, validation, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *StradaError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *StradaError) Unwrap() error {
	return e.Wrapped
}

// WithDetail adds detail text to the error, replacing the template's.
func (e *StradaError) WithDetail(detail string) *StradaError {
	e.Detail = detail
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *StradaError) WithSuggestion(s string) *StradaError {
	e.Suggestion = s
	return e
}

// Wrap attaches an underlying error.
func (e *StradaError) Wrap(err error) *StradaError {
	e.Wrapped = err
	return e
}

// New creates an error from a registered code. Unregistered codes produce a
// generic error carrying the code itself, never a panic.
func New(code string) *StradaError {
	if tmpl, ok := registry[code]; ok {
		return &StradaError{
			Code:     code,
			Category: tmpl.Category,
			Message:  tmpl.Message,
			Detail:   tmpl.Detail,
		}
	}
	return &StradaError{
		Code:     code,
		Category: CategoryRuntime,
		Message:  "unknown error",
	}
}

// Newf creates an ad-hoc error without a registered code.
func Newf(format string, args ...any) *StradaError {
	return &StradaError{
		Category: CategoryRuntime,
		Message:  fmt.Sprintf(format, args...),
	}
}
