package pkgmgr

import (
	"context"
	"strings"

	"github.com/danareia/appman/internal/errors"
	"github.com/danareia/appman/internal/execx"
)

// Apt is the Debian-family client. Queries go through dpkg-query; installs
// go through apt-get under sudo.
type Apt struct {
	runner execx.Runner
}

// NewApt creates a Debian-family package manager client.
func NewApt(r execx.Runner) *Apt {
	return &Apt{runner: r}
}

// Name implements Client.
func (a *Apt) Name() string { return "apt" }

// IsAvailable implements Client.
func (a *Apt) IsAvailable(ctx context.Context) bool {
	return lookPathAvailable(a.runner, "apt-get")
}

// IsPackageInstalled implements Client.
func (a *Apt) IsPackageInstalled(ctx context.Context, id string) (bool, error) {
	res, err := a.runner.Run(ctx, "dpkg-query", "-W", "-f", "${Status}", id)
	if err != nil {
		return false, err
	}
	// dpkg-query exits non-zero for unknown packages, and reports
	// "deinstall ok config-files" for removed-but-not-purged ones.
	return res.Success() && strings.Contains(res.Stdout, "install ok installed"), nil
}

// Install implements Client.
func (a *Apt) Install(ctx context.Context, id string, opts Options) error {
	args := []string{"apt-get", "install", "-y"}
	if opts.Silent {
		args = append(args, "-qq")
	}
	if opts.Source != "" {
		// Source names a target release (e.g. bookworm-backports).
		args = append(args, "-t", opts.Source)
	}
	pkg := id
	if opts.Version != "" {
		pkg = id + "=" + opts.Version
	}
	args = append(args, pkg)

	return runInstall(ctx, a.runner, a.Name(), id, "sudo", args...)
}

// PackageVersion implements Client.
func (a *Apt) PackageVersion(ctx context.Context, id string) (string, error) {
	res, err := a.runner.Run(ctx, "dpkg-query", "-W", "-f", "${Version}", id)
	if err != nil {
		return "", err
	}
	if !res.Success() {
		return "", errors.Newf("%s is not installed via apt", id)
	}
	return strings.TrimSpace(res.Stdout), nil
}

// InstallHint implements Client.
// apt ships with the distribution; if it is missing something is deeply
// wrong, so the hint points at the platform classifier instead.
func (a *Apt) InstallHint() string {
	return "apt-get is part of the base system; run 'appman platform' to check the detected environment"
}
