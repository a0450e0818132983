package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danareia/appman/internal/platform"
)

var platformOutput string

func init() {
	platformCmd.Flags().StringVarP(&platformOutput, "output", "o", outputTable,
		"output format: table, json, yaml")
	rootCmd.AddCommand(platformCmd)
}

var platformCmd = &cobra.Command{
	Use:   "platform",
	Short: "Show the detected environment",
	Long: `Print the environment classification every install decision is based
on: the platform category, CPU architecture, and whether a graphical
desktop is available.

Classification happens once per process from /etc/os-release,
/proc/version, the device tree, and environment variables.`,
	Args: cobra.NoArgs,
	RunE: runPlatform,
}

// descriptorOutput is the machine-readable form of the classification.
type descriptorOutput struct {
	Category string `json:"category" yaml:"category"`
	Arch     string `json:"arch" yaml:"arch"`
	Desktop  bool   `json:"desktop" yaml:"desktop"`
	Nested   bool   `json:"nested" yaml:"nested"`
}

func runPlatform(cmd *cobra.Command, _ []string) error {
	desc := platform.Detect()

	if platformOutput != outputTable {
		return writeOutput(cmd.OutOrStdout(), platformOutput, descriptorOutput{
			Category: desc.Category.String(),
			Arch:     desc.Arch.String(),
			Desktop:  desc.DesktopAvailable,
			Nested:   desc.Category.Nested(),
		})
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Category:  %s\n", desc.Category)
	fmt.Fprintf(w, "Arch:      %s\n", desc.Arch)
	fmt.Fprintf(w, "Desktop:   %v\n", desc.DesktopAvailable)
	if desc.Category.Nested() {
		fmt.Fprintln(w, "Nested:    yes (installs delegate to the Windows host)")
	}
	return nil
}
