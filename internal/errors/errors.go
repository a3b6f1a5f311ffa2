// Package errors provides a lightweight structured error type (GitSemverError)
// for category-based classification in the CLI and HTTP adapters.
package errors

import (
	"fmt"
)

// ErrorCategory represents the category of a gitsemver error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"

	// External system integration errors
	CategoryGit      ErrorCategory = "git"
	CategoryNetwork  ErrorCategory = "network"
	CategoryNotFound ErrorCategory = "notfound"

	// Persistence and infrastructure errors
	CategoryStore    ErrorCategory = "store"
	CategoryDaemon   ErrorCategory = "daemon"
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
	SeverityInfo    ErrorSeverity = "info"    // Informational, no impact
)

// GitSemverError is a structured error with category, retryability, and context
type GitSemverError struct {
	Category  ErrorCategory `json:"category"`
	Severity  ErrorSeverity `json:"severity"`
	Message   string        `json:"message"`
	Cause     error         `json:"cause,omitempty"`
	Retryable bool          `json:"retryable"`
	Context   ContextFields `json:"context,omitempty"`
}

// Build returns the error itself, keeping call sites that chain WithContext readable.
func (e *GitSemverError) Build() *GitSemverError {
	return e
}

// ContextFields carries structured context for GitSemverError
type ContextFields map[string]any

// Error implements the error interface
func (e *GitSemverError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *GitSemverError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *GitSemverError) WithContext(key string, value any) *GitSemverError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new GitSemverError
func New(category ErrorCategory, severity ErrorSeverity, message string) *GitSemverError {
	return &GitSemverError{
		Category:  category,
		Severity:  severity,
		Message:   message,
		Retryable: false,
	}
}

// Wrap creates a new GitSemverError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *GitSemverError {
	return &GitSemverError{
		Category:  category,
		Severity:  severity,
		Message:   message,
		Cause:     err,
		Retryable: false,
	}
}

// Retryable creates a new retryable GitSemverError
func Retryable(category ErrorCategory, severity ErrorSeverity, message string) *GitSemverError {
	return &GitSemverError{
		Category:  category,
		Severity:  severity,
		Message:   message,
		Retryable: true,
	}
}

// WrapRetryable creates a new retryable GitSemverError that wraps an existing error
func WrapRetryable(err error, category ErrorCategory, severity ErrorSeverity, message string) *GitSemverError {
	return &GitSemverError{
		Category:  category,
		Severity:  severity,
		Message:   message,
		Cause:     err,
		Retryable: true,
	}
}

// IsCategory checks if an error belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if gse, ok := err.(*GitSemverError); ok {
		return gse.Category == category
	}
	return false
}

// IsRetryable checks if an error is retryable
func IsRetryable(err error) bool {
	if gse, ok := err.(*GitSemverError); ok {
		return gse.Retryable
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal if not a GitSemverError
func GetCategory(err error) ErrorCategory {
	if gse, ok := err.(*GitSemverError); ok {
		return gse.Category
	}
	return CategoryInternal
}

// ValidationError creates a new validation error (400 Bad Request)
func ValidationError(message string) *GitSemverError {
	return &GitSemverError{
		Category:  CategoryValidation,
		Severity:  SeverityWarning,
		Message:   message,
		Retryable: false,
	}
}

// DaemonError creates a new daemon error (service unavailable)
func DaemonError(message string) *GitSemverError {
	return &GitSemverError{
		Category:  CategoryDaemon,
		Severity:  SeverityError,
		Message:   message,
		Retryable: false,
	}
}

// WrapError wraps an existing error with a new GitSemverError
func WrapError(err error, category ErrorCategory, message string) *GitSemverError {
	return &GitSemverError{
		Category:  category,
		Severity:  SeverityError,
		Message:   message,
		Cause:     err,
		Retryable: false,
	}
}
