package paths

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigFile(t *testing.T) {
	got := ConfigFile()
	if !strings.HasSuffix(got, filepath.Join(AppName, "config.yaml")) {
		t.Errorf("ConfigFile() = %q, want suffix %q", got, filepath.Join(AppName, "config.yaml"))
	}
	if !filepath.IsAbs(got) {
		t.Errorf("ConfigFile() = %q, want absolute path", got)
	}
}

func TestTargetsFile(t *testing.T) {
	got := TargetsFile()
	if !strings.HasSuffix(got, filepath.Join(AppName, "targets.toml")) {
		t.Errorf("TargetsFile() = %q, want suffix %q", got, filepath.Join(AppName, "targets.toml"))
	}
}

func TestDownloadCacheDir(t *testing.T) {
	got := DownloadCacheDir()
	if !strings.Contains(got, AppName) {
		t.Errorf("DownloadCacheDir() = %q, want it to contain %q", got, AppName)
	}
	if filepath.Base(got) != "downloads" {
		t.Errorf("DownloadCacheDir() base = %q, want %q", filepath.Base(got), "downloads")
	}
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "c")

	if err := EnsureDir(dir, 0); err != nil {
		t.Fatalf("EnsureDir() error = %v", err)
	}

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if !info.IsDir() {
		t.Error("EnsureDir() did not create a directory")
	}

	// Idempotent
	if err := EnsureDir(dir, 0); err != nil {
		t.Errorf("EnsureDir() second call error = %v", err)
	}
}

func TestResolveHome(t *testing.T) {
	home, err := ResolveHome()
	if err != nil {
		t.Skipf("no home directory in test environment: %v", err)
	}
	if home == "" {
		t.Error("ResolveHome() returned empty path without error")
	}
}
