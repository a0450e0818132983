package commands

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/danareia/appman/internal/errors"
	"github.com/danareia/appman/internal/execx"
	"github.com/danareia/appman/internal/installer"
	"github.com/danareia/appman/internal/platform"
	"github.com/danareia/appman/internal/target"
)

// ANSI color codes for terminal output.
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorCyan   = "\033[36m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorGray   = "\033[90m"
)

// Recognized --output values.
const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

// writeOutput renders v in the requested machine-readable format.
func writeOutput(w io.Writer, format string, v any) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(v), "encoding JSON")
	case outputYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return errors.Wrap(enc.Encode(v), "encoding YAML")
	default:
		return errors.NewUserError(
			errors.Newf("unrecognized output format %q", format),
			"valid formats: table, json, yaml")
	}
}

// buildRegistry assembles the full target registry: built-in catalog plus
// any user-defined targets from targets.toml. Custom targets may not
// shadow built-in names.
func buildRegistry(r execx.Runner, desc platform.Descriptor) (*installer.Registry, error) {
	targets := target.Builtin(r, desc.Arch, activeConfig().ArchivePrefix)

	custom, err := target.LoadCustom(activeConfig().TargetsFile, r)
	if err != nil {
		return nil, errors.NewConfigError(err)
	}
	targets = append(targets, custom...)

	reg, err := installer.NewRegistry(targets...)
	if err != nil {
		return nil, errors.NewConfigError(err)
	}
	return reg, nil
}

// truncate shortens a string to maxLen characters, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
