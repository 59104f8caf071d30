package errors

import "fmt"

// Category represents the type of error.
type Category string

const (
	CategoryRuntime  Category = "runtime"
	CategoryProtocol Category = "protocol"
	CategoryConfig   Category = "config"
	CategoryCLI      Category = "cli"
)

// AxonError is a structured error with a code, explanation and fix hint.
type AxonError struct {
	// Code is a unique error identifier (e.g., "E101").
	Code string

	// Category is the error type.
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *AxonError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *AxonError) Unwrap() error {
	return e.Wrapped
}

// WithSuggestion adds a fix suggestion to the error.
func (e *AxonError) WithSuggestion(s string) *AxonError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *AxonError) WithDetail(d string) *AxonError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *AxonError) Wrap(err error) *AxonError {
	e.Wrapped = err
	return e
}

// New creates an AxonError from a registered error code.
func New(code string) *AxonError {
	template, ok := registry[code]
	if !ok {
		return &AxonError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &AxonError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		DocURL:   template.DocURL,
	}
}

// Newf creates a new AxonError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *AxonError {
	return &AxonError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in an AxonError.
// An error that already is an *AxonError is returned unchanged.
func FromError(err error, code string) *AxonError {
	if err == nil {
		return nil
	}
	if ae, ok := err.(*AxonError); ok {
		return ae
	}
	return New(code).Wrap(err)
}
