package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danareia/appman/internal/config"
	"github.com/danareia/appman/internal/errors"
	"github.com/danareia/appman/internal/paths"
)

func init() {
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Print the effective configuration as YAML: defaults merged with the
config file and APPMAN_* environment variables.

The config file lives at ` + "`~/.config/appman/config.yaml`" + ` (or the
platform's XDG equivalent). Use "appman config init" to create one.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter configuration file",
	Long: `Write a configuration file with default values to the standard
location. Refuses to overwrite an existing file.`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

func runConfig(cmd *cobra.Command, _ []string) error {
	effective := activeConfig()
	if errs := config.Validate(effective); len(errs) > 0 {
		for _, err := range errs {
			fmt.Fprintf(cmd.ErrOrStderr(), "%swarning: %v%s\n", colorYellow, err, colorReset)
		}
	}
	return writeOutput(cmd.OutOrStdout(), outputYAML, effective)
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	path := paths.ConfigFile()
	if err := config.WriteDefault(path); err != nil {
		if errors.Is(err, errors.ErrInvalidConfig) {
			return errors.NewUserError(err, "edit the existing file instead")
		}
		return errors.NewSystemError(err, "check permissions on "+paths.ConfigDir())
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
