package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/danareia/appman/internal/errors"
	"github.com/danareia/appman/internal/execx"
	"github.com/danareia/appman/internal/installer"
	"github.com/danareia/appman/internal/platform"
)

var statusOutput string

func init() {
	statusCmd.Flags().StringVarP(&statusOutput, "output", "o", outputTable,
		"output format: table, json, yaml")
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status [target]",
	Short: "Show which targets are installed",
	Long: `Show the install state of one target, or of every target eligible for
the detected environment.

Each target's presence probe is evaluated; probes are read-only and
never change system state.

Examples:
  # Status of everything
  appman status

  # Status of one target
  appman status firefox

  # Machine-readable output
  appman status --output json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStatus,
}

// targetStatus is one row of status output.
type targetStatus struct {
	Name      string `json:"name" yaml:"name"`
	Summary   string `json:"summary" yaml:"summary"`
	Eligible  bool   `json:"eligible" yaml:"eligible"`
	Installed bool   `json:"installed" yaml:"installed"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	desc := platform.Detect()
	runner := execx.System()

	reg, err := buildRegistry(runner, desc)
	if err != nil {
		return err
	}

	var targets []installer.Target
	if len(args) == 1 {
		t, ok := reg.Get(args[0])
		if !ok {
			return errors.NewUserError(
				errors.Wrapf(errors.ErrUnknownTarget, "%s", args[0]),
				"Run: appman list")
		}
		targets = []installer.Target{t}
	} else {
		targets = reg.All()
	}

	rows := collectStatus(ctx, targets, desc)

	if statusOutput != outputTable {
		return writeOutput(cmd.OutOrStdout(), statusOutput, rows)
	}
	renderStatusTable(cmd.OutOrStdout(), rows)
	return nil
}

func collectStatus(ctx context.Context, targets []installer.Target, desc platform.Descriptor) []targetStatus {
	rows := make([]targetStatus, 0, len(targets))
	for _, t := range targets {
		row := targetStatus{
			Name:     t.Name,
			Summary:  t.Summary,
			Eligible: t.IsEligible(desc),
		}
		// Probing an ineligible target would query managers that do not
		// exist here; report it as simply not installed.
		if row.Eligible {
			row.Installed = t.IsInstalled(ctx, desc)
		}
		rows = append(rows, row)
	}
	return rows
}

func renderStatusTable(w io.Writer, rows []targetStatus) {
	for _, row := range rows {
		var state, color string
		switch {
		case row.Installed:
			state, color = "installed", colorGreen
		case row.Eligible:
			state, color = "not installed", colorGray
		default:
			state, color = "not available here", colorGray
		}
		fmt.Fprintf(w, "%-12s %s%-18s%s %s\n", row.Name, color, state, colorReset, truncate(row.Summary, 48))
	}
}
