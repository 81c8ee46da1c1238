package util

import (
	"errors"
	"fmt"
	"strings"
)

// Common error types for the devinit CLI
var (
	// ErrInvalidConfig indicates a configuration error
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrTimeout indicates an operation timed out
	ErrTimeout = errors.New("operation timed out")

	// ErrCancelled indicates an operation was cancelled
	ErrCancelled = errors.New("operation cancelled")

	// ErrCommandNotFound indicates a required system command is missing from PATH
	ErrCommandNotFound = errors.New("command not found")

	// ErrRepoNotFound indicates a repository was not found locally or remotely
	ErrRepoNotFound = errors.New("repository not found")

	// ErrNotInitialized indicates the environment file has not been set up
	ErrNotInitialized = errors.New("environment not initialized")

	// ErrAlreadyExists indicates a file or directory already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrShutdown indicates the system is shutting down
	ErrShutdown = errors.New("system shutting down")
)

// CommandError wraps a failed system command with its context
type CommandError struct {
	Command string
	Stderr  string
	Err     error
}

// Error implements the error interface
func (e *CommandError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("command %q failed: %v: %s", e.Command, e.Err, e.Stderr)
	}
	return fmt.Sprintf("command %q failed: %v", e.Command, e.Err)
}

// Unwrap returns the wrapped error for errors.Is/As compatibility
func (e *CommandError) Unwrap() error {
	return e.Err
}

// WrapCommandError wraps an error with command context
func WrapCommandError(command, stderr string, err error) error {
	if err == nil {
		return nil
	}
	return &CommandError{
		Command: command,
		Stderr:  strings.TrimSpace(stderr),
		Err:     err,
	}
}

// RepoError wraps an error with repository context
type RepoError struct {
	Repo string
	Err  error
}

// Error implements the error interface
func (e *RepoError) Error() string {
	return fmt.Sprintf("repository %q: %v", e.Repo, e.Err)
}

// Unwrap returns the wrapped error for errors.Is/As compatibility
func (e *RepoError) Unwrap() error {
	return e.Err
}

// WrapRepoError wraps an error with repository context
func WrapRepoError(repo string, err error) error {
	if err == nil {
		return nil
	}
	return &RepoError{
		Repo: repo,
		Err:  err,
	}
}

// MultiError aggregates multiple errors
type MultiError struct {
	Errors []error
}

// Error implements the error interface
func (m *MultiError) Error() string {
	if len(m.Errors) == 0 {
		return "no errors"
	}
	if len(m.Errors) == 1 {
		return m.Errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d errors occurred:", len(m.Errors)))
	for i, err := range m.Errors {
		if i < 10 { // Limit to first 10 errors in the message
			sb.WriteString(fmt.Sprintf("\n  %d. %v", i+1, err))
		} else if i == 10 {
			sb.WriteString(fmt.Sprintf("\n  ... and %d more errors", len(m.Errors)-10))
			break
		}
	}
	return sb.String()
}

// Unwrap returns the errors for errors.Is/As compatibility
func (m *MultiError) Unwrap() []error {
	return m.Errors
}

// Add adds an error to the multi-error
func (m *MultiError) Add(err error) {
	if err != nil {
		m.Errors = append(m.Errors, err)
	}
}

// ErrorOrNil returns nil if no errors were added, otherwise returns the MultiError
func (m *MultiError) ErrorOrNil() error {
	if len(m.Errors) == 0 {
		return nil
	}
	return m
}

// NewMultiError creates a new MultiError from a slice of errors
// It filters out nil errors
func NewMultiError(errors []error) *MultiError {
	m := &MultiError{
		Errors: make([]error, 0, len(errors)),
	}
	for _, err := range errors {
		if err != nil {
			m.Errors = append(m.Errors, err)
		}
	}
	return m
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (v *ValidationError) Error() string {
	if v.Value != nil {
		return fmt.Sprintf("validation failed for field %q (value: %v): %s", v.Field, v.Value, v.Message)
	}
	return fmt.Sprintf("validation failed for field %q: %s", v.Field, v.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// IsTimeout checks if an error is a timeout error
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// IsCancelled checks if an error is a cancellation error
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}

// IsCommandNotFound checks if an error indicates a missing system command
func IsCommandNotFound(err error) bool {
	return errors.Is(err, ErrCommandNotFound)
}

// IsRepoNotFound checks if an error is a missing-repository error
func IsRepoNotFound(err error) bool {
	return errors.Is(err, ErrRepoNotFound)
}

// FriendlyError converts technical errors to user-friendly messages
func FriendlyError(err error) string {
	if err == nil {
		return ""
	}

	// Check for known error types
	switch {
	case IsTimeout(err):
		return "Operation timed out. Please try again or increase the timeout value with --timeout flag."
	case IsCancelled(err):
		return "Operation was cancelled."
	case IsCommandNotFound(err):
		return "A required system command is not installed. Please install it and re-run."
	case IsRepoNotFound(err):
		return "Repository not found. Please check the repository name and your GitHub credentials."
	case errors.Is(err, ErrNotInitialized):
		return "Environment not initialized. Run 'devinit env setup' first."
	case errors.Is(err, ErrInvalidConfig):
		return "Invalid configuration. Please check your config file and command-line flags."
	case errors.Is(err, ErrAlreadyExists):
		return "Target already exists. Use --force to overwrite it."
	default:
		// Return the original error message for unknown errors
		return err.Error()
	}
}

// CombineErrors combines multiple errors into a single error
// Returns nil if all errors are nil
func CombineErrors(errors ...error) error {
	m := NewMultiError(errors)
	return m.ErrorOrNil()
}

// WrapErrorf wraps an error with a formatted message
func WrapErrorf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}
