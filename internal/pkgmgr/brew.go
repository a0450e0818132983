package pkgmgr

import (
	"context"
	"strings"

	"github.com/danareia/appman/internal/errors"
	"github.com/danareia/appman/internal/execx"
)

// SourceCask and SourceFormula are the recognized Options.Source values
// for the Homebrew client.
const (
	SourceCask    = "cask"
	SourceFormula = "formula"
)

// Brew is the Homebrew client. It installs casks (GUI applications) and
// formulae (CLI tools); Options.Source selects which catalog.
type Brew struct {
	runner execx.Runner
}

// NewBrew creates a Homebrew client.
func NewBrew(r execx.Runner) *Brew {
	return &Brew{runner: r}
}

// Name implements Client.
func (b *Brew) Name() string { return "brew" }

// IsAvailable implements Client.
func (b *Brew) IsAvailable(ctx context.Context) bool {
	return lookPathAvailable(b.runner, "brew")
}

// IsPackageInstalled implements Client.
// `brew list <id>` exits zero for installed casks and formulae alike,
// which keeps this to a single spawned process.
func (b *Brew) IsPackageInstalled(ctx context.Context, id string) (bool, error) {
	res, err := b.runner.Run(ctx, "brew", "list", id)
	if err != nil {
		return false, err
	}
	return res.Success(), nil
}

// Install implements Client.
func (b *Brew) Install(ctx context.Context, id string, opts Options) error {
	args := []string{"install"}
	if opts.Source == SourceCask {
		args = append(args, "--cask")
	}
	if opts.Silent {
		args = append(args, "--quiet")
	}
	pkg := id
	if opts.Version != "" {
		// Homebrew pins versions through versioned formula names.
		pkg = id + "@" + opts.Version
	}
	args = append(args, pkg)

	return runInstall(ctx, b.runner, b.Name(), id, "brew", args...)
}

// PackageVersion implements Client.
func (b *Brew) PackageVersion(ctx context.Context, id string) (string, error) {
	res, err := b.runner.Run(ctx, "brew", "list", "--versions", id)
	if err != nil {
		return "", err
	}
	if !res.Success() {
		return "", errors.Newf("%s is not installed via brew", id)
	}

	// Output: "<name> <version> [<version>...]"
	fields := strings.Fields(firstLine(res.Stdout))
	if len(fields) < 2 {
		return "", errors.Newf("unexpected brew output for %s: %q", id, firstLine(res.Stdout))
	}
	return fields[1], nil
}

// InstallHint implements Client.
func (b *Brew) InstallHint() string {
	return `/bin/bash -c "$(curl -fsSL https://raw.githubusercontent.com/Homebrew/install/HEAD/install.sh)"`
}
