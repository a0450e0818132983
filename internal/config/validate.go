package config

import (
	"path/filepath"
	"strings"

	"github.com/danareia/appman/internal/errors"
)

// Validation errors for configuration fields.
var (
	// ErrVersionTooLow indicates the version field is below the minimum.
	ErrVersionTooLow = errors.New("version must be >= 1")

	// ErrInvalidPath indicates a path value is malformed.
	ErrInvalidPath = errors.New("invalid path")

	// ErrEmptyChannel indicates a channel override with no value.
	ErrEmptyChannel = errors.New("channel override is empty")
)

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Version < 1 {
		errs = append(errs, ErrVersionTooLow)
	}

	if cfg.ArchivePrefix != "" {
		if err := validatePath(cfg.ArchivePrefix); err != nil {
			errs = append(errs, &PathError{Field: "archive_prefix", Path: cfg.ArchivePrefix, Err: err})
		}
	}

	if cfg.TargetsFile != "" {
		if err := validatePath(cfg.TargetsFile); err != nil {
			errs = append(errs, &PathError{Field: "targets_file", Path: cfg.TargetsFile, Err: err})
		}
	}

	for target, channel := range cfg.Channels {
		if strings.TrimSpace(channel) == "" {
			errs = append(errs, &ChannelError{Target: target, Err: ErrEmptyChannel})
		}
	}

	return errs
}

// validatePath checks if a path string is well-formed.
// It does not check if the path exists, only that it's syntactically valid.
func validatePath(path string) error {
	if path == "" {
		return nil
	}

	// Null bytes are never valid in paths.
	if strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}

	cleaned := filepath.Clean(path)
	if cleaned == "" || cleaned == "." {
		return ErrInvalidPath
	}

	return nil
}

// PathError represents an error for a specific path field.
type PathError struct {
	Field string
	Path  string
	Err   error
}

func (e *PathError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + e.Path
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// ChannelError represents an error for a specific channel override.
type ChannelError struct {
	Target string
	Err    error
}

func (e *ChannelError) Error() string {
	return "channels." + e.Target + ": " + e.Err.Error()
}

func (e *ChannelError) Unwrap() error {
	return e.Err
}
