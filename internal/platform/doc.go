// Package platform classifies the running environment for install decisions.
//
// The classifier inspects read-only process-level signals (GOOS/GOARCH,
// /etc/os-release, /proc/version, device-tree model, and a handful of
// environment variables) and produces an immutable [Descriptor] holding the
// environment [Category], CPU [Arch], and whether a graphical desktop is
// available.
//
// # One classification per process
//
// [Detect] memoizes its result: the category is computed exactly once and
// every downstream decision is a pure function of the returned Descriptor.
// Tests drive [Classify] directly with synthetic [Signals].
//
// # Nested environments
//
// Git Bash and WSL are classified as their own categories rather than as
// Windows or Linux, because installs there are delegated to the Windows
// host through the bridge package.
package platform
