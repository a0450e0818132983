package commands

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/danareia/appman/internal/execx"
	"github.com/danareia/appman/internal/installer"
	"github.com/danareia/appman/internal/platform"
)

var listOutput string

func init() {
	listCmd.Flags().StringVarP(&listOutput, "output", "o", outputTable,
		"output format: table, json, yaml")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the target catalog",
	Long: `List every known target, built-in and user-defined, with the
platform categories it supports and whether it is eligible for the
detected environment.

Examples:
  # Human-readable catalog
  appman list

  # For scripting
  appman list --output json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

// targetListing is one row of list output.
type targetListing struct {
	Name       string   `json:"name" yaml:"name"`
	Summary    string   `json:"summary" yaml:"summary"`
	Desktop    bool     `json:"requires_desktop" yaml:"requires_desktop"`
	Categories []string `json:"categories" yaml:"categories"`
	Eligible   bool     `json:"eligible" yaml:"eligible"`
}

func runList(cmd *cobra.Command, _ []string) error {
	desc := platform.Detect()

	reg, err := buildRegistry(execx.System(), desc)
	if err != nil {
		return err
	}

	rows := make([]targetListing, 0)
	for _, t := range reg.All() {
		rows = append(rows, targetListing{
			Name:       t.Name,
			Summary:    t.Summary,
			Desktop:    t.RequiresDesktop,
			Categories: handlerCategories(t),
			Eligible:   t.IsEligible(desc),
		})
	}

	if listOutput != outputTable {
		return writeOutput(cmd.OutOrStdout(), listOutput, rows)
	}
	renderListTable(cmd.OutOrStdout(), rows, desc)
	return nil
}

// handlerCategories returns the target's supported categories in
// declaration order of the Category enum.
func handlerCategories(t installer.Target) []string {
	names := make([]string, 0, len(t.Handlers))
	for cat := range t.Handlers {
		names = append(names, cat.String())
	}
	sort.Strings(names)
	return names
}

func renderListTable(w io.Writer, rows []targetListing, desc platform.Descriptor) {
	fmt.Fprintf(w, "%sTargets for %s (%s)%s\n\n", colorCyan+colorBold, desc.Category, desc.Arch, colorReset)
	for _, row := range rows {
		marker, color := " ", colorReset
		if !row.Eligible {
			color = colorGray
		}
		fmt.Fprintf(w, "%s%s %-12s %s%s\n", color, marker, row.Name, truncate(row.Summary, 52), colorReset)
	}
}
