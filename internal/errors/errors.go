package errors

import (
	"errors"
	"fmt"

	crdb "github.com/cockroachdb/errors"
)

// Exit codes for CLI applications.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitUser indicates a user or environment error (unsupported host,
	// declined prompt, invalid configuration).
	ExitUser = 1

	// ExitSystem indicates a system error (failed external command, I/O).
	ExitSystem = 2
)

// Sentinel errors shared across packages.
var (
	// ErrNotFound indicates the requested resource was not found.
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidConfig indicates configuration validation failed.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrAborted indicates the operator declined a confirmation prompt.
	ErrAborted = errors.New("aborted by user")
)

// Re-exports of github.com/cockroachdb/errors so callers only import one
// errors package.
var (
	New     = crdb.New
	Newf    = crdb.Newf
	Wrap    = crdb.Wrap
	Wrapf   = crdb.Wrapf
	Is      = crdb.Is
	As      = crdb.As
	Mark    = crdb.Mark
	GetHint = crdb.FlattenHints
)

// Join combines errs into one error that matches each of them with Is.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// WithHint decorates err with an actionable hint shown to the operator.
func WithHint(err error, hint string) error {
	return crdb.WithHint(err, hint)
}

// ExitError wraps an error with an exit code and optional suggestion for CLI applications.
// It implements the error interface and supports unwrapping via errors.Unwrap.
type ExitError struct {
	// Err is the underlying error that caused the exit.
	Err error

	// Code is the exit code to return to the operating system.
	Code int

	// Suggestion is an optional actionable suggestion for the user.
	Suggestion string
}

// NewExitError creates an ExitError with the given underlying error and exit code.
// If err is nil, the returned ExitError will have a nil Err field.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{
		Err:  err,
		Code: code,
	}
}

// NewUserError creates an ExitError with ExitUser code and a suggestion.
func NewUserError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: suggestion,
	}
}

// NewSystemError creates an ExitError with ExitSystem code and a suggestion.
func NewSystemError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitSystem,
		Suggestion: suggestion,
	}
}

// NewConfigError creates an ExitError with ExitUser code and a standard suggestion.
func NewConfigError(err error) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: "Run: nvsetup doctor",
	}
}

// Error returns the error message from the underlying error.
// If the underlying error is nil, it returns a generic message with the exit code.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error, enabling errors.Is and errors.As
// to examine the error chain.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// Resolve converts any error into an ExitError. Errors already carrying an
// ExitError keep their code; hints attached with WithHint become the
// suggestion when none is set. Everything else is a system error.
func Resolve(err error) *ExitError {
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Suggestion == "" {
			exitErr.Suggestion = GetHint(err)
		}
		return exitErr
	}
	return &ExitError{
		Err:        err,
		Code:       ExitSystem,
		Suggestion: GetHint(err),
	}
}
