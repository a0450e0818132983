package pkgmgr

import (
	"context"
	"strings"

	"github.com/danareia/appman/internal/errors"
	"github.com/danareia/appman/internal/execx"
)

// Dnf is the RPM-family client. Queries go through rpm; installs go
// through dnf under sudo.
type Dnf struct {
	runner execx.Runner
}

// NewDnf creates an RPM-family package manager client.
func NewDnf(r execx.Runner) *Dnf {
	return &Dnf{runner: r}
}

// Name implements Client.
func (d *Dnf) Name() string { return "dnf" }

// IsAvailable implements Client.
func (d *Dnf) IsAvailable(ctx context.Context) bool {
	return lookPathAvailable(d.runner, "dnf")
}

// IsPackageInstalled implements Client.
func (d *Dnf) IsPackageInstalled(ctx context.Context, id string) (bool, error) {
	res, err := d.runner.Run(ctx, "rpm", "-q", id)
	if err != nil {
		return false, err
	}
	return res.Success(), nil
}

// Install implements Client.
func (d *Dnf) Install(ctx context.Context, id string, opts Options) error {
	args := []string{"dnf", "install", "-y"}
	if opts.Silent {
		args = append(args, "-q")
	}
	if opts.Source != "" {
		args = append(args, "--repo", opts.Source)
	}
	pkg := id
	if opts.Version != "" {
		pkg = id + "-" + opts.Version
	}
	args = append(args, pkg)

	return runInstall(ctx, d.runner, d.Name(), id, "sudo", args...)
}

// PackageVersion implements Client.
func (d *Dnf) PackageVersion(ctx context.Context, id string) (string, error) {
	res, err := d.runner.Run(ctx, "rpm", "-q", "--qf", "%{VERSION}", id)
	if err != nil {
		return "", err
	}
	if !res.Success() {
		return "", errors.Newf("%s is not installed via dnf", id)
	}
	return strings.TrimSpace(res.Stdout), nil
}

// InstallHint implements Client.
func (d *Dnf) InstallHint() string {
	return "dnf is part of the base system; run 'appman platform' to check the detected environment"
}
