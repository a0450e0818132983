// Package logging provides structured logging for the appman CLI built on
// log/slog.
//
// The default text handler is optimized for terminals: it colorizes levels
// and attribute keys when the output supports it (and respects NO_COLOR),
// and renders a compact single-line format. JSON output is available for
// machine consumption, and MultiHandler splits records between the terminal
// and a log file.
//
// Verbosity maps onto levels via LevelFromVerbosity: -v enables Debug and
// -vv enables Trace, which includes the captured output of spawned
// package-manager processes.
package logging
