// Package errors provides error handling conventions for confit.
//
// It re-exports the wrapping helpers from github.com/cockroachdb/errors,
// defines sentinel errors shared by the CLI, and the [ExitError] type used
// to map failures to process exit codes.
//
// # Exit Codes
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): User-related error (invalid input, malformed config file)
//   - ExitSystem (2): System-related error (I/O, permissions)
//
// # ExitError
//
//	err := errors.NewUserError(errors.ErrNotFound, "Run: confit init demo app")
//	os.Exit(errors.ExitCode(err))
//
// Hints attached with [WithHint] travel through wrapping and are printed by
// the CLI under the error line; [FlattenHints] collects them.
package errors
