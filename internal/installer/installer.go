package installer

import (
	"context"
	"fmt"

	"github.com/danareia/appman/internal/logging"
	"github.com/danareia/appman/internal/platform"
	"github.com/danareia/appman/internal/probe"
)

// Handler is the per-category install procedure of a target: an ordered
// list of channels to try plus the probe that decides presence, used both
// before installing and for post-install verification.
type Handler struct {
	// Probe detects the target's presence on this category. Composed
	// with probe.Any when several checks apply.
	Probe probe.Probe

	// Channels are tried in declared order. The first channel to execute
	// and verify wins; a channel whose prerequisite is missing or whose
	// execution or verification fails hands over to the next.
	Channels []Channel
}

// Target describes one installable application as a record of
// capabilities: where it can install and how, per platform category.
// Targets are constructed once at registry build time and hold no
// mutable state.
type Target struct {
	// Name is the target identifier used on the command line.
	Name string

	// Summary is a one-line description for listings.
	Summary string

	// RequiresDesktop marks GUI applications that need a graphical session.
	RequiresDesktop bool

	// Handlers maps each supported category to its install procedure.
	// The key set doubles as the eligible-platform set.
	Handlers map[platform.Category]Handler
}

// IsEligible reports whether the target can be installed on the described
// environment. Pure function of the descriptor; never fails.
func (t Target) IsEligible(desc platform.Descriptor) bool {
	if _, ok := t.Handlers[desc.Category]; !ok {
		return false
	}
	return !t.RequiresDesktop || desc.DesktopAvailable
}

// IsInstalled evaluates the target's presence probe for the described
// environment. It never mutates system state and is safe to call
// arbitrarily often. Categories without a handler report false.
func (t Target) IsInstalled(ctx context.Context, desc platform.Descriptor) bool {
	h, ok := t.Handlers[desc.Category]
	if !ok {
		return false
	}
	return h.Probe.Check(ctx)
}

// Install runs the idempotent install protocol for the described
// environment:
//
//	CHECK_INSTALLED -> CHECK_PREREQUISITE -> EXECUTE -> VERIFY
//
// Already-present targets and unsupported platforms return Skipped; all
// failures are returned as a typed Result, never as a panic or error.
func (t Target) Install(ctx context.Context, desc platform.Descriptor) Result {
	logger := logging.FromContext(ctx).With("target", t.Name, "category", desc.Category.String())

	h, ok := t.Handlers[desc.Category]
	if !ok {
		return skipped(fmt.Sprintf("%s is not available for %s.", t.Name, desc.Category))
	}

	if t.RequiresDesktop && !desc.DesktopAvailable {
		return skipped(fmt.Sprintf("%s needs a graphical desktop, which this environment does not have.", t.Name))
	}

	// CHECK_INSTALLED
	if h.Probe.Check(ctx) {
		logger.Debug("already installed, skipping")
		return skipped(fmt.Sprintf("%s is already installed.", t.Name))
	}

	if len(h.Channels) == 0 {
		return failed(KindMissingPrerequisite,
			fmt.Sprintf("%s has no install channel for %s.", t.Name, desc.Category))
	}

	// Try each declared channel in order; remember the last failure so
	// the caller sees why the final channel gave up.
	var last Result
	for _, ch := range h.Channels {
		logger.Debug("attempting channel", "channel", ch.Describe())

		// CHECK_PREREQUISITE
		if err := ch.Prerequisite(ctx); err != nil {
			logger.Debug("prerequisite missing", "channel", ch.Describe(), "error", err)
			last = failed(KindMissingPrerequisite,
				fmt.Sprintf("cannot install %s via %s: %v", t.Name, ch.Describe(), err),
				ch.Remediation()...)
			continue
		}

		// EXECUTE
		delta, err := ch.Execute(ctx)
		if err != nil {
			logger.Debug("execution failed", "channel", ch.Describe(), "error", err)
			last = failed(KindExecutionFailure,
				fmt.Sprintf("installing %s via %s failed: %v", t.Name, ch.Describe(), err),
				ch.Remediation()...)
			continue
		}

		// VERIFY: the installer reporting success is not the same as the
		// artifact being present.
		if h.Probe.Check(ctx) {
			logger.Info("installed", "channel", ch.Describe())
			return installed(fmt.Sprintf("%s installed via %s.", t.Name, ch.Describe()), delta)
		}

		logger.Debug("verification failed", "channel", ch.Describe())
		last = failed(KindVerificationFailure,
			fmt.Sprintf("%s reported success via %s but the post-install check found nothing", t.Name, ch.Describe()),
			ch.Remediation()...)
	}

	return last
}
