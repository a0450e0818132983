package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"

	"github.com/danareia/appman/internal/errors"
)

func TestInit(t *testing.T) {
	// Reset viper state
	viper.Reset()

	Init()

	if viper.GetInt("version") != 1 {
		t.Errorf("expected version default 1, got %d", viper.GetInt("version"))
	}
	if viper.GetString("targets_file") == "" {
		t.Error("expected targets_file default to be set")
	}
	if viper.GetString("archive_prefix") == "" {
		t.Error("expected archive_prefix default to be set")
	}
}

func TestLoad_NoConfigFile(t *testing.T) {
	viper.Reset()
	Init()

	cfg, err := Load("")
	if err != nil {
		t.Errorf("Load() with no config file should not error: %v", err)
	}
	if cfg == nil {
		t.Fatal("expected config to be returned")
	}
	if cfg.Silent {
		t.Error("silent should default to false")
	}
}

func TestLoad_WithConfigFile(t *testing.T) {
	viper.Reset()

	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	content := []byte("silent: true\nchannels:\n  docker: snap\n")
	if err := os.WriteFile(configPath, content, 0600); err != nil {
		t.Fatal(err)
	}

	Init()

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if !cfg.Silent {
		t.Error("expected silent true")
	}
	if cfg.Channels["docker"] != "snap" {
		t.Errorf("channels.docker = %q, want snap", cfg.Channels["docker"])
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	viper.Reset()
	Init()

	_, err := Load("/non/existent/path/config.yaml")
	if err == nil {
		t.Error("Load() with non-existent explicit path should error")
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) == 0 {
		t.Error("empty config written")
	}

	// A second write must refuse to clobber.
	if err := WriteDefault(path); !errors.Is(err, errors.ErrInvalidConfig) {
		t.Errorf("overwrite err = %v, want ErrInvalidConfig", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		cfg      *Config
		wantErrs int
	}{
		{
			name:     "nil config",
			cfg:      nil,
			wantErrs: 1,
		},
		{
			name:     "valid defaults",
			cfg:      Default(),
			wantErrs: 0,
		},
		{
			name:     "version too low",
			cfg:      &Config{Version: 0},
			wantErrs: 1,
		},
		{
			name:     "null byte in path",
			cfg:      &Config{Version: 1, ArchivePrefix: "/opt\x00/x"},
			wantErrs: 1,
		},
		{
			name:     "empty channel override",
			cfg:      &Config{Version: 1, Channels: map[string]string{"docker": "  "}},
			wantErrs: 1,
		},
		{
			name: "multiple errors",
			cfg: &Config{
				Version:     0,
				TargetsFile: ".",
				Channels:    map[string]string{"docker": ""},
			},
			wantErrs: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Validate(tt.cfg)
			if len(errs) != tt.wantErrs {
				t.Errorf("Validate() = %d errors (%v), want %d", len(errs), errs, tt.wantErrs)
			}
		})
	}
}
