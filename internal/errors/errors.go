package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// Application exit codes.
const (
	ExitSuccess       = 0   // Successful execution.
	ExitErrorGeneric  = 1   // Generic error.
	ExitErrorTimeout  = 2   // The run exceeded its timeout.
	ExitErrorMismatch = 3   // A parallel result disagreed with its baseline.
	ExitErrorConfig   = 4   // Invalid configuration.
	ExitErrorCanceled = 130 // Canceled, e.g. by SIGINT.
)

// ConfigError represents a user configuration error, such as an unreadable
// config file or a malformed flag value.
type ConfigError struct {
	Message string
}

func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a ConfigError with a formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// ValidationError reports a configuration field whose value violates a
// precondition, for instance a worker count below 1.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// MismatchError reports that a parallel operation produced a result that
// disagrees with its sequential baseline.
type MismatchError struct {
	Size      int
	Operation string
	Detail    string
}

func (e MismatchError) Error() string {
	return fmt.Sprintf("result mismatch for %s at size %d: %s", e.Operation, e.Size, e.Detail)
}

// TimeoutError reports that a run exceeded its configured time limit.
type TimeoutError struct {
	Operation string
	Limit     time.Duration
}

func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// WrapError wraps err with a formatted context message. It returns nil when
// err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// IsContextError reports whether err is a context cancellation or deadline.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCodeFor maps an error to the process exit code.
func ExitCodeFor(err error) int {
	var (
		cfgErr      ConfigError
		validErr    ValidationError
		mismatchErr MismatchError
		timeoutErr  TimeoutError
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &timeoutErr), errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.As(err, &mismatchErr):
		return ExitErrorMismatch
	case errors.As(err, &cfgErr), errors.As(err, &validErr):
		return ExitErrorConfig
	default:
		return ExitErrorGeneric
	}
}

// HandleError prints a one-line description of err to out and returns the
// matching exit code. A nil error prints nothing.
func HandleError(err error, out io.Writer) int {
	code := ExitCodeFor(err)
	switch code {
	case ExitSuccess:
	case ExitErrorTimeout:
		fmt.Fprintf(out, "Status: Failure (Timeout). %v\n", err)
	case ExitErrorCanceled:
		fmt.Fprintf(out, "Status: Canceled by user.\n")
	case ExitErrorMismatch:
		fmt.Fprintf(out, "Status: CRITICAL ERROR! %v\n", err)
	case ExitErrorConfig:
		fmt.Fprintf(out, "Configuration error: %v\n", err)
	default:
		fmt.Fprintf(out, "Status: Failure. %v\n", err)
	}
	return code
}
