package pkgmgr

import (
	"context"
	"fmt"
	"strings"

	"github.com/danareia/appman/internal/execx"
)

// Options configures a single install invocation.
type Options struct {
	// Silent suppresses interactive prompts from the package manager.
	Silent bool

	// Version pins the install to an exact version. Empty means latest.
	Version string

	// Source disambiguates when a package id exists in more than one
	// catalog (e.g. brew cask vs formula, a winget source name).
	Source string
}

// Client is the uniform contract over one package-manager ecosystem.
//
// Implementations spawn exactly one external process per call and hold no
// state between calls; the underlying package manager is the source of
// truth. All methods are safe to call regardless of whether the manager
// is present; IsAvailable reports that.
type Client interface {
	// Name returns the ecosystem identifier (brew, apt, winget, ...).
	Name() string

	// IsAvailable reports whether the manager binary is on the search path.
	IsAvailable(ctx context.Context) bool

	// IsPackageInstalled queries the manager for the package's presence.
	IsPackageInstalled(ctx context.Context, id string) (bool, error)

	// Install installs the package. A non-zero manager exit status is
	// returned as an *InstallError carrying the captured output.
	Install(ctx context.Context, id string, opts Options) error

	// PackageVersion returns the installed version of the package, or an
	// error if it is not installed or the manager cannot tell.
	PackageVersion(ctx context.Context, id string) (string, error)

	// InstallHint returns a shell command the user can run to install the
	// manager itself. Surfaced as remediation when the manager is missing.
	InstallHint() string
}

// InstallError reports a package-manager install command that ran and
// exited non-zero. The captured output is surfaced verbatim to the user.
type InstallError struct {
	Manager string
	Package string
	Result  execx.Result
}

// Error implements the error interface.
func (e *InstallError) Error() string {
	msg := fmt.Sprintf("%s failed to install %s (exit %d)", e.Manager, e.Package, e.Result.ExitCode)
	if out := e.Result.CombinedOutput(); out != "" {
		msg += ": " + out
	}
	return msg
}

// lookPathAvailable is the shared IsAvailable implementation: the manager
// is available when its binary resolves on the search path.
func lookPathAvailable(r execx.Runner, binary string) bool {
	_, err := r.LookPath(binary)
	return err == nil
}

// runInstall executes an install command and converts a non-zero exit into
// an *InstallError.
func runInstall(ctx context.Context, r execx.Runner, manager, pkg, name string, args ...string) error {
	res, err := r.Run(ctx, name, args...)
	if err != nil {
		return err
	}
	if !res.Success() {
		return &InstallError{Manager: manager, Package: pkg, Result: res}
	}
	return nil
}

// firstLine returns the first non-empty line of s, trimmed.
func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			return line
		}
	}
	return ""
}
