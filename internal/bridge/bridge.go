// Package bridge delegates install operations from a nested environment
// (WSL, Git Bash) to the Windows host it runs inside.
//
// The interop boundary is process spawning: WSL can execute Windows
// binaries directly when interop is enabled, and a Git Bash process is
// already a Windows process, so in both cases "run winget on the host"
// is just spawning the right binary name. The bridge therefore exposes
// the host's package manager as an ordinary pkgmgr.Client, which makes
// delegation just another install channel: presence check, execute, and
// verify all cross the boundary through the same four-step protocol.
package bridge

import (
	"context"

	"github.com/danareia/appman/internal/errors"
	"github.com/danareia/appman/internal/execx"
	"github.com/danareia/appman/internal/pkgmgr"
	"github.com/danareia/appman/internal/platform"
)

// ErrNotNested is returned when asked to bridge from an environment that
// is not nested inside a Windows host.
var ErrNotNested = errors.New("not a nested environment")

// hostBinary returns the binary name that reaches the host's winget from
// the given nested category.
func hostBinary(cat platform.Category) (string, error) {
	switch cat {
	case platform.CategoryWSL:
		// WSL interop resolves .exe binaries through the Windows PATH.
		return "winget.exe", nil
	case platform.CategoryGitBash:
		// Git Bash processes are Windows processes; winget is directly callable.
		return "winget", nil
	default:
		return "", errors.Wrapf(ErrNotNested, "%s", cat)
	}
}

// Host returns a package-manager client for the Windows host that the
// nested environment runs inside. Every call spawns one host process
// across the interop boundary.
func Host(r execx.Runner, cat platform.Category) (pkgmgr.Client, error) {
	binary, err := hostBinary(cat)
	if err != nil {
		return nil, err
	}
	return &hostClient{Client: pkgmgr.NewWingetBinary(r, binary)}, nil
}

// Reachable reports whether the host's package manager can be invoked
// from the nested environment at all. Used by diagnostics.
func Reachable(ctx context.Context, r execx.Runner, cat platform.Category) bool {
	client, err := Host(r, cat)
	if err != nil {
		return false
	}
	return client.IsAvailable(ctx)
}

// hostClient decorates the winget client with a host-qualified name and
// an interop-specific remediation hint.
type hostClient struct {
	pkgmgr.Client
}

// Name implements pkgmgr.Client.
func (h *hostClient) Name() string {
	return "host-" + h.Client.Name()
}

// InstallHint implements pkgmgr.Client.
func (h *hostClient) InstallHint() string {
	return "enable Windows interop (wsl.conf [interop] enabled=true) and install 'App Installer' from the Microsoft Store on the host"
}
