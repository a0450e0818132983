package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/danareia/appman/internal/errors"
	"github.com/danareia/appman/internal/execx"
	"github.com/danareia/appman/internal/installer"
	"github.com/danareia/appman/internal/logging"
	"github.com/danareia/appman/internal/platform"
)

var (
	installChannel string
	installSilent  bool
	installVersion string
	installSource  string
	installDryRun  bool
)

func init() {
	installCmd.Flags().StringVar(&installChannel, "channel", "",
		"pin the install to channels matching this prefix (e.g. snap, brew, download)")
	installCmd.Flags().BoolVar(&installSilent, "silent", false,
		"pass the package manager's non-interactive flags")
	installCmd.Flags().StringVar(&installVersion, "version", "",
		"request a specific package version where the manager supports it")
	installCmd.Flags().StringVar(&installSource, "source", "",
		"manager-specific source (e.g. cask, formula, classic)")
	installCmd.Flags().BoolVar(&installDryRun, "dry-run", false,
		"print the install plan without spawning anything")
	rootCmd.AddCommand(installCmd)
}

var installCmd = &cobra.Command{
	Use:   "install [target]",
	Short: "Install an application",
	Long: `Install one application target for the detected environment.

The install is idempotent: if the target is already present it is
skipped. Each of the target's declared channels is tried in order; a
channel whose prerequisite (usually the package manager binary) is
missing hands over to the next one, and every install is verified by
re-running the target's presence probe.

Run without an argument on a terminal to pick a target interactively.

Examples:
  # Install firefox however this platform prefers
  appman install firefox

  # Force the snap channel
  appman install docker --channel snap

  # Show the plan without touching the system
  appman install node --dry-run`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInstall,
}

func runInstall(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	desc := platform.Detect()
	runner := execx.System()

	reg, err := buildRegistry(runner, desc)
	if err != nil {
		return err
	}

	var name string
	if len(args) == 1 {
		name = args[0]
	} else {
		name, err = pickTarget(reg, desc)
		if err != nil || name == "" {
			return err
		}
	}

	t, ok := reg.Get(name)
	if !ok {
		return errors.NewUserError(
			errors.Wrapf(errors.ErrUnknownTarget, "%s", name),
			"Run: appman list")
	}

	h, declared := t.Handlers[desc.Category]
	if declared {
		ov := installOverrides{
			channelPin: installChannel,
			silentSet:  cmd.Flags().Changed("silent") || activeConfig().Silent,
			silent:     installSilent || (!cmd.Flags().Changed("silent") && activeConfig().Silent),
			version:    installVersion,
			source:     installSource,
		}
		if ov.channelPin == "" {
			ov.channelPin = activeConfig().Channels[name]
		}

		h, err = customizeHandler(h, name, ov)
		if err != nil {
			return err
		}
		t = withHandler(t, desc.Category, h)
	}

	if installDryRun {
		printPlan(cmd.OutOrStdout(), t, desc)
		return nil
	}

	res := t.Install(ctx, desc)
	renderResult(cmd.OutOrStdout(), res)

	if res.Outcome == installer.OutcomeFailed {
		code := errors.ExitSystem
		if res.Kind == installer.KindMissingPrerequisite {
			code = errors.ExitUser
		}
		return errors.NewExitError(errors.New(res.Message), code)
	}
	return nil
}

// pickTarget runs the interactive fuzzy picker over the registry. Returns
// an empty name when the user aborts.
func pickTarget(reg *installer.Registry, desc platform.Descriptor) (string, error) {
	if !logging.IsTTY(os.Stdout) {
		return "", errors.NewUserError(
			errors.New("a target name is required when not running on a terminal"),
			"Run: appman list")
	}

	targets := reg.All()
	idx, err := fuzzyfinder.Find(
		targets,
		func(i int) string {
			return targets[i].Name
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			t := targets[i]
			eligible := "yes"
			if !t.IsEligible(desc) {
				eligible = "no"
			}
			return fmt.Sprintf("%s\n\n%s\n\nEligible here (%s): %s",
				t.Name, t.Summary, desc.Category, eligible)
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return "", nil
		}
		return "", errors.Wrap(err, "interactive selection failed")
	}
	return targets[idx].Name, nil
}

// installOverrides carries the per-invocation adjustments from flags and
// configuration applied on top of a target's declared channels.
type installOverrides struct {
	channelPin string
	silentSet  bool
	silent     bool
	version    string
	source     string
}

// customizeHandler applies the channel pin and option overrides to a copy
// of the handler.
func customizeHandler(h installer.Handler, name string, ov installOverrides) (installer.Handler, error) {
	channels := make([]installer.Channel, len(h.Channels))
	copy(channels, h.Channels)
	h.Channels = channels

	if ov.channelPin != "" {
		kept := h.Channels[:0]
		for _, ch := range h.Channels {
			if strings.HasPrefix(ch.Describe(), ov.channelPin) {
				kept = append(kept, ch)
			}
		}
		if len(kept) == 0 {
			return h, errors.NewUserError(
				errors.Wrapf(errors.ErrUnknownChannel, "%s has no channel matching %q", name, ov.channelPin),
				"Run: appman install "+name+" --dry-run")
		}
		h.Channels = kept
	}

	for i, ch := range h.Channels {
		mc, ok := ch.(installer.ManagerChannel)
		if !ok {
			continue
		}
		if ov.silentSet {
			mc.Opts.Silent = ov.silent
		}
		if ov.version != "" {
			mc.Opts.Version = ov.version
		}
		if ov.source != "" {
			mc.Opts.Source = ov.source
		}
		h.Channels[i] = mc
	}

	return h, nil
}

// withHandler returns a copy of the target carrying a fresh handler map
// with h swapped in for cat. The registry's stored target is never
// mutated; targets are immutable after registry build.
func withHandler(t installer.Target, cat platform.Category, h installer.Handler) installer.Target {
	handlers := make(map[platform.Category]installer.Handler, len(t.Handlers))
	for c, ch := range t.Handlers {
		handlers[c] = ch
	}
	handlers[cat] = h
	t.Handlers = handlers
	return t
}

// printPlan describes what an install would do without evaluating probes
// or spawning processes.
func printPlan(w io.Writer, t installer.Target, desc platform.Descriptor) {
	fmt.Fprintf(w, "%sTarget: %s%s\n", colorCyan+colorBold, t.Name, colorReset)
	fmt.Fprintf(w, "Environment: %s (%s)\n", desc.Category, desc.Arch)

	h, ok := t.Handlers[desc.Category]
	if !ok {
		fmt.Fprintf(w, "%s%s is not available for %s.%s\n", colorGray, t.Name, desc.Category, colorReset)
		return
	}
	if t.RequiresDesktop && !desc.DesktopAvailable {
		fmt.Fprintf(w, "%s%s needs a graphical desktop, which this environment does not have.%s\n",
			colorGray, t.Name, colorReset)
		return
	}

	fmt.Fprintf(w, "Presence check: %s\n", h.Probe.Describe())
	fmt.Fprintln(w, "Channels, in order:")
	for i, ch := range h.Channels {
		fmt.Fprintf(w, "  %d. %s\n", i+1, ch.Describe())
	}
}

// renderResult prints an install result for humans.
func renderResult(w io.Writer, res installer.Result) {
	switch res.Outcome {
	case installer.OutcomeSkipped:
		fmt.Fprintf(w, "%s%s%s\n", colorGray, res.Message, colorReset)
	case installer.OutcomeInstalled:
		fmt.Fprintf(w, "%s%s%s\n", colorGreen, res.Message, colorReset)
		if !res.EnvDelta.Empty() {
			fmt.Fprintf(w, "\nAdd to your PATH to use the installed binaries:\n")
			for _, dir := range res.EnvDelta.PathPrepend {
				fmt.Fprintf(w, "  export PATH=%q:$PATH\n", dir)
			}
		}
	case installer.OutcomeFailed:
		fmt.Fprintf(w, "%s%s%s\n", colorRed, res.Message, colorReset)
		if len(res.Remediation) > 0 {
			fmt.Fprintln(w, "\nTo install manually:")
			for _, cmd := range res.Remediation {
				fmt.Fprintf(w, "  %s\n", cmd)
			}
		}
	}
}
