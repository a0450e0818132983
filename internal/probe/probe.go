// Package probe provides small, composable presence checks used to decide
// whether a target application is already installed.
//
// A Probe is a read-only predicate: it never mutates system state and is
// safe to evaluate arbitrarily often. Composition is by ordered logical OR
// via Any; declare cheap checks (path existence) before expensive ones
// (package-manager queries). Ordering affects cost, not correctness.
package probe

import (
	"context"
	"os"

	"github.com/danareia/appman/internal/execx"
	"github.com/danareia/appman/internal/logging"
	"github.com/danareia/appman/internal/pkgmgr"
)

// Probe is a read-only presence check.
type Probe struct {
	desc string
	fn   func(ctx context.Context) (bool, error)
}

// New creates a probe from a description and a predicate.
func New(desc string, fn func(ctx context.Context) (bool, error)) Probe {
	return Probe{desc: desc, fn: fn}
}

// Describe returns a human-readable description of what the probe checks.
func (p Probe) Describe() string {
	return p.desc
}

// Check evaluates the probe. A primitive that errors counts as "not
// present": this favors a false negative (harmless, installs are
// idempotent) over a false positive (silently skipping a broken install).
func (p Probe) Check(ctx context.Context) bool {
	if p.fn == nil {
		return false
	}

	ok, err := p.fn(ctx)
	if err != nil {
		logging.FromContext(ctx).Debug("probe errored, treating as absent",
			"probe", p.desc, "error", err)
		return false
	}
	return ok
}

// Zero reports whether the probe is the zero value (no check declared).
func (p Probe) Zero() bool {
	return p.fn == nil
}

// PathExists checks that the given filesystem path exists.
func PathExists(path string) Probe {
	return New("path exists: "+path, func(context.Context) (bool, error) {
		_, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				return false, nil
			}
			return false, err
		}
		return true, nil
	})
}

// CommandOnPath checks that a command resolves on the search path.
func CommandOnPath(r execx.Runner, name string) Probe {
	return New("command on PATH: "+name, func(context.Context) (bool, error) {
		_, err := r.LookPath(name)
		return err == nil, nil
	})
}

// ManagerQuery checks that a package manager reports the package installed.
func ManagerQuery(c pkgmgr.Client, id string) Probe {
	return New(c.Name()+" reports installed: "+id, func(ctx context.Context) (bool, error) {
		if !c.IsAvailable(ctx) {
			return false, nil
		}
		return c.IsPackageInstalled(ctx, id)
	})
}

// Any composes probes with ordered logical OR: it evaluates each in the
// declared order and short-circuits on the first success.
func Any(probes ...Probe) Probe {
	descs := ""
	for i, p := range probes {
		if i > 0 {
			descs += " OR "
		}
		descs += p.Describe()
	}

	return New(descs, func(ctx context.Context) (bool, error) {
		for _, p := range probes {
			if p.Check(ctx) {
				return true, nil
			}
		}
		return false, nil
	})
}
