package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/danareia/appman/internal/doctor"
	"github.com/danareia/appman/internal/errors"
	"github.com/danareia/appman/internal/execx"
	"github.com/danareia/appman/internal/platform"
)

var (
	doctorJSON    bool
	doctorQuiet   bool
	doctorVerbose bool
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false,
		"output results as JSON")
	doctorCmd.Flags().BoolVar(&doctorQuiet, "quiet", false,
		"suppress output, exit code only")
	doctorCmd.Flags().BoolVar(&doctorVerbose, "verbose", false,
		"show detailed check-by-check output")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose environment issues",
	Long: `Run diagnostic checks on the appman environment.

Checks that the platform was classified, that the package managers the
platform's targets rely on are available, that the Windows host is
reachable from nested environments (WSL, Git Bash), and that the
configuration and custom targets files are valid.

Output modes (mutually exclusive):
  (default)   Show errors and warnings
  --verbose   Show all checks including passed ones
  --quiet     No output, exit code only
  --json      Machine-readable JSON output

Exit codes:
  0 - All checks passed (no errors or warnings)
  1 - Warnings present, no errors
  2 - Errors present`,
	PreRunE: validateDoctorFlags,
	RunE:    runDoctor,
}

// validateDoctorFlags ensures output flags are mutually exclusive.
func validateDoctorFlags(_ *cobra.Command, _ []string) error {
	count := 0
	if doctorJSON {
		count++
	}
	if doctorQuiet {
		count++
	}
	if doctorVerbose {
		count++
	}

	if count > 1 {
		return errors.New("flags --json, --quiet, and --verbose are mutually exclusive")
	}

	return nil
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	desc := platform.Detect()
	runner := doctor.NewRunner()
	for _, check := range doctor.ChecksFor(execx.System(), desc, activeConfig()) {
		runner.AddCheck(check)
	}

	report := runner.Run(cmd.Context())

	if err := outputDoctorReport(cmd.OutOrStdout(), report); err != nil {
		return err
	}

	if report.HasErrors() {
		return errors.NewExitError(errors.New("diagnostic checks found errors"), errors.ExitSystem)
	}
	if report.HasWarnings() {
		return errors.NewExitError(errors.New("diagnostic checks found warnings"), errors.ExitUser)
	}
	return nil
}

func outputDoctorReport(w io.Writer, report *doctor.Report) error {
	if doctorQuiet {
		return nil
	}

	if doctorJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(report), "encoding JSON")
	}

	return outputDoctorText(w, report)
}

func outputDoctorText(w io.Writer, report *doctor.Report) error {
	shown := 0
	for _, result := range report.Results {
		if !doctorVerbose && result.Status != doctor.SeverityWarning && result.Status != doctor.SeverityError {
			continue
		}
		shown++

		var color string
		switch result.Status {
		case doctor.SeverityPass:
			color = colorGreen
		case doctor.SeverityWarning:
			color = colorYellow
		case doctor.SeverityError:
			color = colorRed
		default:
			color = colorReset
		}

		fmt.Fprintf(w, "%s[%s]%s %s: %s\n", color, result.Status, colorReset, result.Name, result.Message)
		if result.FixHint != "" {
			fmt.Fprintf(w, "        %s%s%s\n", colorGray, result.FixHint, colorReset)
		}
	}

	if shown > 0 {
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "%d passed, %d warnings, %d errors\n",
		report.Summary.Passed, report.Summary.Warnings, report.Summary.Errors)
	return nil
}
