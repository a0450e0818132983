package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/danareia/appman/internal/errors"
	"github.com/danareia/appman/internal/paths"
	"github.com/danareia/appman/pkg/fileutil"
)

// AppName is the application name used for config file naming.
const AppName = "appman"

// Config represents the top-level configuration structure.
type Config struct {
	Version int `mapstructure:"version" yaml:"version"`

	// Silent makes package-manager channels pass their non-interactive
	// flags by default. The install command's --silent flag overrides it.
	Silent bool `mapstructure:"silent" yaml:"silent"`

	// ArchivePrefix is where the archive channel extracts tarballs.
	// Empty means the default under the XDG data directory.
	ArchivePrefix string `mapstructure:"archive_prefix" yaml:"archive_prefix"`

	// TargetsFile is the path of the user-defined target definitions.
	TargetsFile string `mapstructure:"targets_file" yaml:"targets_file"`

	// Channels pins a target to one channel by prefix of the channel's
	// description, e.g. "docker": "snap". Empty means declared order.
	Channels map[string]string `mapstructure:"channels" yaml:"channels,omitempty"`
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
func Init() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".")
	viper.AddConfigPath(paths.ConfigDir())

	viper.SetEnvPrefix("APPMAN")
	viper.AutomaticEnv()

	viper.SetDefault("version", 1)
	viper.SetDefault("silent", false)
	viper.SetDefault("archive_prefix", paths.ArchivePrefix())
	viper.SetDefault("targets_file", paths.TargetsFile())
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations.
// Returns the loaded configuration or default values if no file is found (when path is empty).
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// An explicit path that does not exist is an error; an
			// implicit search that finds nothing falls back to defaults.
			if path != "" {
				return nil, errors.Wrapf(err, "config file not found at %s", path)
			}
		} else {
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	return &cfg, nil
}

// Default returns the configuration written by `appman config init`.
func Default() *Config {
	return &Config{
		Version:       1,
		Silent:        false,
		ArchivePrefix: paths.ArchivePrefix(),
		TargetsFile:   paths.TargetsFile(),
	}
}

// WriteDefault writes a starter configuration file at path, creating the
// parent directory if needed. Refuses to overwrite an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return errors.Wrapf(errors.ErrInvalidConfig, "%s already exists", path)
	}
	if err := paths.EnsureDir(filepath.Dir(path), 0); err != nil {
		return errors.Wrap(err, "creating config directory")
	}
	return fileutil.AtomicWriteYAML(path, Default())
}
