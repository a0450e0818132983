// Package config provides configuration management for the appman CLI.
//
// This package handles loading, writing, and validating the tool's own
// configuration file. It is distinct from the user-defined target
// definitions, which live in targets.toml and are parsed by the target
// package.
//
// # Configuration File
//
// The default configuration file location is ~/.config/appman/config.yaml.
// The configuration file uses YAML format with the following structure:
//
//	version: 1
//	silent: false
//	archive_prefix: ~/.local/share/appman/opt  # optional
//	targets_file: ~/.config/appman/targets.toml # optional
//	channels:          # optional, pins a target to one channel
//	  docker: snap
//
// # Loading Configuration
//
// Call [Init] once at startup, then [Load]:
//
//	config.Init()
//	cfg, err := config.Load("")
//	if err != nil {
//	    return fmt.Errorf("loading config: %w", err)
//	}
//
// An empty path searches the default locations and falls back to defaults
// when no file exists; an explicit path must exist.
//
// # Validation
//
// Validate a configuration with [Validate]:
//
//	errs := config.Validate(cfg)
//	if len(errs) > 0 {
//	    for _, e := range errs {
//	        fmt.Println(e)
//	    }
//	}
package config
