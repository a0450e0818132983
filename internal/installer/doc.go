// Package installer implements the idempotent install protocol and the
// target registry.
//
// Every install invocation walks the same four-step state machine:
//
//	CHECK_INSTALLED --(present)--> Skipped
//	CHECK_INSTALLED --(absent)---> CHECK_PREREQUISITE
//	CHECK_PREREQUISITE --(missing)--> Failed: missing-prerequisite
//	CHECK_PREREQUISITE --(present)--> EXECUTE
//	EXECUTE --(non-zero exit)--> Failed: execution-failure
//	EXECUTE --(success)--------> VERIFY
//	VERIFY --(probe true)--> Installed
//	VERIFY --(probe false)-> Failed: verification-failure
//
// Presence-check-before-execute makes every handler safe to re-run;
// verify-after-execute distinguishes "the installer exited zero" from
// "the artifact is actually there", because package-manager exit codes
// are not always a reliable signal.
//
// A handler may declare several channels for one category. They are
// attempted in declared order, each running the full prerequisite ->
// execute -> verify sequence; the first to verify wins and the last
// failure is what the caller sees. Host delegation for nested
// environments (WSL, Git Bash) is expressed as an ordinary channel whose
// package-manager client crosses the interop boundary, so the protocol
// stays single-sourced.
//
// Failures are always returned as a typed Result; Install never panics
// and the registry's Dispatch treats unsupported categories as Skipped,
// not errors.
package installer
