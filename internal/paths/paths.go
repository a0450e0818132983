package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/danareia/appman/internal/errors"
)

// AppName is the directory name used under the XDG base directories.
const AppName = "appman"

// Sentinel errors for path resolution.
var (
	// ErrHomeDirNotFound indicates the user's home directory could not be determined.
	ErrHomeDirNotFound = errors.New("home directory not found")
)

// DefaultDirPerm is the default permission for newly created directories (private).
const DefaultDirPerm = 0o700

// EnsureDir creates the directory and any necessary parents with the given
// permissions. If perm is 0, DefaultDirPerm (0700) is used.
// The function is idempotent; it returns nil if the directory already exists.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// Home returns the user's home directory, or an empty string if it cannot
// be determined. Use ResolveHome when the error matters.
func Home() string {
	h, _ := ResolveHome()
	return h
}

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrHomeDirNotFound, err.Error())
	}
	return home, nil
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// ConfigDir returns the appman configuration directory.
// Returns: <ConfigHome>/appman/
func ConfigDir() string {
	return filepath.Join(ConfigHome(), AppName)
}

// ConfigFile returns the path to the appman configuration file.
// Returns: <ConfigHome>/appman/config.yaml
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// TargetsFile returns the path to the user-defined target definitions file.
// Returns: <ConfigHome>/appman/targets.toml
func TargetsFile() string {
	return filepath.Join(ConfigDir(), "targets.toml")
}

// CacheHome returns the XDG cache home directory.
// On Linux: ~/.cache
// On macOS: ~/Library/Caches
// On Windows: %LOCALAPPDATA%\cache
func CacheHome() string {
	return xdg.CacheHome
}

// DownloadCacheDir returns the scratch directory used by the download and
// archive channels for fetched package files.
// Returns: <CacheHome>/appman/downloads/
func DownloadCacheDir() string {
	return filepath.Join(CacheHome(), AppName, "downloads")
}

// DataHome returns the XDG data home directory.
func DataHome() string {
	return xdg.DataHome
}

// ArchivePrefix returns the default prefix the archive channel extracts into.
// Returns: <DataHome>/appman/opt/
func ArchivePrefix() string {
	return filepath.Join(DataHome(), AppName, "opt")
}
