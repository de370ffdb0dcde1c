package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorTimeout  = 2   // Indicates the operation timed out.
	ExitErrorPartial  = 3   // Indicates some fingerprints could not be generated.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// FingerprintError records the failure of one fingerprint computation while
// preserving the original cause.
type FingerprintError struct {
	// Strategy is the display name of the strategy being fingerprinted.
	Strategy string
	// Kind is the fingerprint kind (e.g., "Ashlock").
	Kind string
	// Cause is the underlying error.
	Cause error
}

// Error returns a message naming the strategy, the kind and the cause.
func (e FingerprintError) Error() string {
	return fmt.Sprintf("%s fingerprint of %q: %v", e.Kind, e.Strategy, e.Cause)
}

// Unwrap returns the original wrapped error.
func (e FingerprintError) Unwrap() error { return e.Cause }

// CacheError reports a problem reading or writing the cache file. Line is
// the 1-based row of the offending record, or 0 when not applicable.
type CacheError struct {
	Path  string
	Line  int
	Cause error
}

// Error returns a message naming the file and, when known, the line.
func (e CacheError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("cache %s:%d: %v", e.Path, e.Line, e.Cause)
	}
	return fmt.Sprintf("cache %s: %v", e.Path, e.Cause)
}

// Unwrap returns the original wrapped error.
func (e CacheError) Unwrap() error { return e.Cause }

// TimeoutError reports an update pass stopped by its -timeout limit. It
// unwraps to context.DeadlineExceeded.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was considered timed out.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// Unwrap returns context.DeadlineExceeded.
func (e TimeoutError) Unwrap() error { return context.DeadlineExceeded }

// ValidationError represents an input validation failure. It identifies which
// field failed validation and provides a human-readable explanation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Returns nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCodeFor maps an error to the process exit code.
func ExitCodeFor(err error) int {
	var (
		configErr     ConfigError
		validationErr ValidationError
		timeoutErr    TimeoutError
		fpErr         FingerprintError
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &timeoutErr):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.As(err, &configErr), errors.As(err, &validationErr):
		return ExitErrorConfig
	case errors.As(err, &fpErr):
		return ExitErrorPartial
	default:
		return ExitErrorGeneric
	}
}
