// Package errors provides error handling conventions for the appman CLI.
//
// It re-exports the cockroachdb/errors constructors so the rest of the
// codebase imports a single errors package, defines sentinel errors for
// common failure conditions, and provides an ExitError type that carries
// a process exit code and an optional suggestion for the user.
//
// # Sentinel Errors
//
// Sentinel errors allow callers to check for specific error conditions
// using [Is]:
//
//	if errors.Is(err, errors.ErrUnknownTarget) {
//	    // handle unknown target
//	}
//
// # Exit Codes
//
//   - ExitSuccess (0): Command completed successfully (includes skipped installs)
//   - ExitUser (1): User-related error (invalid input, configuration, etc.)
//   - ExitSystem (2): System-related error (I/O, spawned process, permissions, etc.)
//
// # ExitError
//
// Only the top-level command layer converts an ExitError into os.Exit;
// library packages return plain errors or typed results.
package errors
