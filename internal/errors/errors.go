package errors

import (
	"fmt"

	crdb "github.com/cockroachdb/errors"
)

// Exit codes for CLI applications.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitUser indicates a user-related error (invalid input, bad config file, etc.).
	ExitUser = 1

	// ExitSystem indicates a system-related error (I/O, permissions, etc.).
	ExitSystem = 2
)

// Sentinel errors for common failure conditions.
var (
	// ErrNotFound indicates the requested config file or key does not exist.
	ErrNotFound = crdb.New("not found")

	// ErrInvalidKey indicates a malformed dotted key path.
	ErrInvalidKey = crdb.New("invalid key")

	// ErrInvalidConfig indicates the confit settings file failed validation.
	ErrInvalidConfig = crdb.New("invalid configuration")
)

// Thin re-exports of github.com/cockroachdb/errors so callers only import
// this package.
var (
	New    = crdb.New
	Newf   = crdb.Newf
	Errorf = crdb.Errorf
	Wrap   = crdb.Wrap
	Wrapf  = crdb.Wrapf
	Is     = crdb.Is
	As     = crdb.As
	Mark   = crdb.Mark
	Unwrap = crdb.UnwrapOnce

	// WithHint attaches advice for the user that is not part of Error().
	WithHint = crdb.WithHint
	// FlattenHints joins every hint attached anywhere in the chain.
	FlattenHints = crdb.FlattenHints
)

// ExitError carries the process exit code for a failed command, plus an
// optional next step to print beneath the message.
type ExitError struct {
	Err        error
	Code       int
	Suggestion string
}

// NewExitError returns an ExitError without a suggestion. A nil err is
// allowed for commands that already reported their own output.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{Err: err, Code: code}
}

// NewUserError marks err as the caller's fault: bad input or a malformed file.
func NewUserError(err error, suggestion string) *ExitError {
	return &ExitError{Err: err, Code: ExitUser, Suggestion: suggestion}
}

// NewSystemError marks err as an environment failure such as I/O.
func NewSystemError(err error, suggestion string) *ExitError {
	return &ExitError{Err: err, Code: ExitSystem, Suggestion: suggestion}
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode maps err to a process exit code. nil is ExitSuccess and any error
// without an ExitError in its chain is ExitSystem.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitSystem
}
