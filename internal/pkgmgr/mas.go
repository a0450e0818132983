package pkgmgr

import (
	"context"
	"strings"

	"github.com/danareia/appman/internal/errors"
	"github.com/danareia/appman/internal/execx"
)

// Mas is the Mac App Store client (https://github.com/mas-cli/mas).
// Package ids are numeric App Store identifiers.
type Mas struct {
	runner execx.Runner
}

// NewMas creates a Mac App Store client.
func NewMas(r execx.Runner) *Mas {
	return &Mas{runner: r}
}

// Name implements Client.
func (m *Mas) Name() string { return "mas" }

// IsAvailable implements Client.
func (m *Mas) IsAvailable(ctx context.Context) bool {
	return lookPathAvailable(m.runner, "mas")
}

// IsPackageInstalled implements Client.
func (m *Mas) IsPackageInstalled(ctx context.Context, id string) (bool, error) {
	_, err := m.listEntry(ctx, id)
	if err != nil {
		if errors.Is(err, errNotListed) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Install implements Client.
// mas has no prompts to suppress and no version pinning; Options.Silent
// and Options.Version are accepted and ignored.
func (m *Mas) Install(ctx context.Context, id string, _ Options) error {
	return runInstall(ctx, m.runner, m.Name(), id, "mas", "install", id)
}

// PackageVersion implements Client.
func (m *Mas) PackageVersion(ctx context.Context, id string) (string, error) {
	entry, err := m.listEntry(ctx, id)
	if err != nil {
		return "", err
	}

	// Entry format: "<id>  <name>  (<version>)"
	start := strings.LastIndex(entry, "(")
	end := strings.LastIndex(entry, ")")
	if start == -1 || end == -1 || end < start {
		return "", errors.Newf("unexpected mas output: %q", entry)
	}
	return entry[start+1 : end], nil
}

// InstallHint implements Client.
func (m *Mas) InstallHint() string {
	return "brew install mas"
}

var errNotListed = errors.New("app not listed")

// listEntry returns the `mas list` line for the given app id.
func (m *Mas) listEntry(ctx context.Context, id string) (string, error) {
	res, err := m.runner.Run(ctx, "mas", "list")
	if err != nil {
		return "", err
	}
	if !res.Success() {
		return "", errors.Newf("mas list failed (exit %d): %s", res.ExitCode, res.CombinedOutput())
	}

	for _, line := range strings.Split(res.Stdout, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, id+" ") || strings.HasPrefix(line, id+"\t") {
			return line, nil
		}
	}
	return "", errors.Wrapf(errNotListed, "%s", id)
}
