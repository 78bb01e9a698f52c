// Package errors provides error handling conventions for the nvsetup CLI.
//
// The package re-exports the wrapping helpers of github.com/cockroachdb/errors,
// defines sentinel errors shared between packages, and an ExitError type that
// carries the process exit code and an optional suggestion.
//
// # Exit Codes
//
//   - ExitSuccess (0): the run completed
//   - ExitUser (1): unsupported host, declined prompt, invalid configuration
//   - ExitSystem (2): a package manager, git, or the filesystem failed
//
// # ExitError
//
// Commands return plain wrapped errors; the entry point calls [Resolve] to
// pick an exit code and suggestion:
//
//	exitErr := nverrors.Resolve(err)
//	if exitErr.Suggestion != "" {
//	    fmt.Fprintln(os.Stderr, "Suggestion:", exitErr.Suggestion)
//	}
//	os.Exit(exitErr.Code)
package errors
