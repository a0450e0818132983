package pkgmgr

import (
	"context"
	"strings"

	"github.com/danareia/appman/internal/errors"
	"github.com/danareia/appman/internal/execx"
)

// Snap is the universal sandboxed-package client for Linux.
type Snap struct {
	runner execx.Runner
}

// NewSnap creates a snap client.
func NewSnap(r execx.Runner) *Snap {
	return &Snap{runner: r}
}

// Name implements Client.
func (s *Snap) Name() string { return "snap" }

// IsAvailable implements Client.
func (s *Snap) IsAvailable(ctx context.Context) bool {
	return lookPathAvailable(s.runner, "snap")
}

// IsPackageInstalled implements Client.
func (s *Snap) IsPackageInstalled(ctx context.Context, id string) (bool, error) {
	res, err := s.runner.Run(ctx, "snap", "list", id)
	if err != nil {
		return false, err
	}
	return res.Success(), nil
}

// Install implements Client.
// Options.Version selects a channel (snap's versioning model); Options.Source
// set to "classic" requests classic confinement, which some desktop apps need.
func (s *Snap) Install(ctx context.Context, id string, opts Options) error {
	args := []string{"snap", "install", id}
	if opts.Version != "" {
		args = append(args, "--channel="+opts.Version)
	}
	if opts.Source == "classic" {
		args = append(args, "--classic")
	}

	return runInstall(ctx, s.runner, s.Name(), id, "sudo", args...)
}

// PackageVersion implements Client.
func (s *Snap) PackageVersion(ctx context.Context, id string) (string, error) {
	res, err := s.runner.Run(ctx, "snap", "list", id)
	if err != nil {
		return "", err
	}
	if !res.Success() {
		return "", errors.Newf("%s is not installed via snap", id)
	}

	// Header row then "<name> <version> <rev> ..."
	lines := strings.Split(strings.TrimSpace(res.Stdout), "\n")
	if len(lines) < 2 {
		return "", errors.Newf("unexpected snap output for %s", id)
	}
	fields := strings.Fields(lines[1])
	if len(fields) < 2 {
		return "", errors.Newf("unexpected snap output for %s: %q", id, lines[1])
	}
	return fields[1], nil
}

// InstallHint implements Client.
func (s *Snap) InstallHint() string {
	return "sudo apt-get install -y snapd  # or: sudo dnf install -y snapd"
}
