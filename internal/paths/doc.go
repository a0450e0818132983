// Package paths centralizes filesystem path resolution for appman.
//
// All locations derive from the XDG base directories (via adrg/xdg) so the
// tool behaves consistently across Linux, macOS, and Windows. Nothing in
// this package touches the filesystem except EnsureDir.
package paths
