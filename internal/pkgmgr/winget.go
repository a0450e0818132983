package pkgmgr

import (
	"context"
	"strings"

	"github.com/danareia/appman/internal/errors"
	"github.com/danareia/appman/internal/execx"
)

// Winget is the Windows package manager client. Package ids are winget
// package identifiers (e.g. Microsoft.VisualStudioCode).
//
// The binary name is configurable because the host-delegation bridge runs
// the same commands as "winget.exe" across the WSL / Git Bash interop
// boundary.
type Winget struct {
	runner execx.Runner
	binary string
}

// NewWinget creates a winget client for native Windows.
func NewWinget(r execx.Runner) *Winget {
	return &Winget{runner: r, binary: "winget"}
}

// NewWingetBinary creates a winget client that spawns the given binary
// name. Used by the bridge for interop invocations.
func NewWingetBinary(r execx.Runner, binary string) *Winget {
	return &Winget{runner: r, binary: binary}
}

// Name implements Client.
func (w *Winget) Name() string { return "winget" }

// IsAvailable implements Client.
func (w *Winget) IsAvailable(ctx context.Context) bool {
	return lookPathAvailable(w.runner, w.binary)
}

// IsPackageInstalled implements Client.
func (w *Winget) IsPackageInstalled(ctx context.Context, id string) (bool, error) {
	res, err := w.runner.Run(ctx, w.binary, "list", "--id", id, "--exact")
	if err != nil {
		return false, err
	}
	// winget exits non-zero when no installed package matches; the id
	// check guards against localized "no package found" banners.
	return res.Success() && strings.Contains(res.Stdout, id), nil
}

// Install implements Client.
func (w *Winget) Install(ctx context.Context, id string, opts Options) error {
	args := []string{"install", "--id", id, "--exact"}
	if opts.Silent {
		args = append(args, "--silent", "--accept-package-agreements", "--accept-source-agreements")
	}
	if opts.Version != "" {
		args = append(args, "--version", opts.Version)
	}
	if opts.Source != "" {
		args = append(args, "--source", opts.Source)
	}

	return runInstall(ctx, w.runner, w.Name(), id, w.binary, args...)
}

// PackageVersion implements Client.
func (w *Winget) PackageVersion(ctx context.Context, id string) (string, error) {
	res, err := w.runner.Run(ctx, w.binary, "list", "--id", id, "--exact")
	if err != nil {
		return "", err
	}
	if !res.Success() {
		return "", errors.Newf("%s is not installed via winget", id)
	}

	// Table output: the data row holds "<Name> <Id> <Version> ...";
	// find the row containing the id and take the field after it.
	for _, line := range strings.Split(res.Stdout, "\n") {
		fields := strings.Fields(line)
		for i, f := range fields {
			if f == id && i+1 < len(fields) {
				return fields[i+1], nil
			}
		}
	}
	return "", errors.Newf("could not parse winget output for %s", id)
}

// InstallHint implements Client.
func (w *Winget) InstallHint() string {
	return "winget ships with Windows 10 21H1 and later; install 'App Installer' from the Microsoft Store"
}
