package installer

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/danareia/appman/internal/errors"
	"github.com/danareia/appman/internal/execx"
	"github.com/danareia/appman/internal/paths"
	"github.com/danareia/appman/internal/pkgmgr"
)

// Channel is one mechanism for getting a target's bits onto disk: a
// package manager, a direct package download, an archive extraction, or
// delegation to the host environment (which is just a Channel whose
// client crosses the interop boundary).
//
// Only Execute may mutate system state.
type Channel interface {
	// Describe identifies the channel for logs and messages.
	Describe() string

	// Prerequisite reports whether the channel can run here. A non-nil
	// error means the prerequisite is missing and the next declared
	// channel should be tried.
	Prerequisite(ctx context.Context) error

	// Execute performs the install. It may return an EnvDelta the caller
	// can apply to pick up newly installed binaries.
	Execute(ctx context.Context) (EnvDelta, error)

	// Remediation returns manual fallback commands for when the channel fails.
	Remediation() []string
}

// ManagerChannel installs through a package-manager client. With a bridge
// client it doubles as the host-delegation channel.
type ManagerChannel struct {
	// Client is the package-manager adapter to install through.
	Client pkgmgr.Client

	// ID is the package identifier in the client's ecosystem.
	ID string

	// Opts configures the install invocation.
	Opts pkgmgr.Options
}

// Describe implements Channel.
func (c ManagerChannel) Describe() string {
	return c.Client.Name() + ":" + c.ID
}

// Prerequisite implements Channel.
func (c ManagerChannel) Prerequisite(ctx context.Context) error {
	if !c.Client.IsAvailable(ctx) {
		return errors.Newf("%s is not installed on this system", c.Client.Name())
	}
	return nil
}

// Execute implements Channel.
func (c ManagerChannel) Execute(ctx context.Context) (EnvDelta, error) {
	return EnvDelta{}, c.Client.Install(ctx, c.ID, c.Opts)
}

// Remediation implements Channel.
func (c ManagerChannel) Remediation() []string {
	return []string{
		fmt.Sprintf("%s install %s", c.Client.Name(), c.ID),
		c.Client.InstallHint(),
	}
}

// Local package tool names recognized by DownloadChannel.
const (
	ToolDpkg      = "dpkg"      // .deb, installed via `sudo dpkg -i`
	ToolRpm       = "rpm"       // .rpm, installed via `sudo rpm -U`
	ToolInstaller = "installer" // macOS .pkg, installed via `sudo installer`
)

// DownloadChannel fetches one package file and hands it to the local
// package tool. The fetch itself is delegated to curl: this core never
// performs downloads in-process.
type DownloadChannel struct {
	// Runner spawns curl and the package tool.
	Runner execx.Runner

	// URL is the package file to fetch.
	URL string

	// Tool is the local package tool (ToolDpkg, ToolRpm, ToolInstaller).
	Tool string
}

// Describe implements Channel.
func (c DownloadChannel) Describe() string {
	return "download:" + c.URL
}

// Prerequisite implements Channel.
func (c DownloadChannel) Prerequisite(_ context.Context) error {
	for _, bin := range []string{"curl", c.Tool} {
		if _, err := c.Runner.LookPath(bin); err != nil {
			return errors.Newf("%s is not on the search path", bin)
		}
	}
	return nil
}

// Execute implements Channel.
func (c DownloadChannel) Execute(ctx context.Context) (EnvDelta, error) {
	dest, err := c.fetch(ctx)
	if err != nil {
		return EnvDelta{}, err
	}

	var args []string
	switch c.Tool {
	case ToolDpkg:
		args = []string{"dpkg", "-i", dest}
	case ToolRpm:
		args = []string{"rpm", "-U", dest}
	case ToolInstaller:
		args = []string{"installer", "-pkg", dest, "-target", "/"}
	default:
		return EnvDelta{}, errors.Newf("unrecognized package tool %q", c.Tool)
	}

	res, err := c.Runner.Run(ctx, "sudo", args...)
	if err != nil {
		return EnvDelta{}, err
	}
	if !res.Success() {
		return EnvDelta{}, errors.Newf("%s exited %d: %s", c.Tool, res.ExitCode, res.CombinedOutput())
	}
	return EnvDelta{}, nil
}

// Remediation implements Channel.
func (c DownloadChannel) Remediation() []string {
	file := filepath.Join(paths.DownloadCacheDir(), filepath.Base(c.URL))
	cmds := []string{fmt.Sprintf("curl -fL -o %s %s", file, c.URL)}
	switch c.Tool {
	case ToolDpkg:
		cmds = append(cmds, "sudo dpkg -i "+file)
	case ToolRpm:
		cmds = append(cmds, "sudo rpm -U "+file)
	case ToolInstaller:
		cmds = append(cmds, "sudo installer -pkg "+file+" -target /")
	}
	return cmds
}

// fetch downloads the URL into the cache directory and returns the path.
func (c DownloadChannel) fetch(ctx context.Context) (string, error) {
	dir := paths.DownloadCacheDir()
	if err := paths.EnsureDir(dir, 0); err != nil {
		return "", errors.Wrap(err, "creating download cache")
	}

	dest := filepath.Join(dir, filepath.Base(c.URL))
	res, err := c.Runner.Run(ctx, "curl", "-fsSL", "-o", dest, c.URL)
	if err != nil {
		return "", err
	}
	if !res.Success() {
		return "", errors.Newf("curl exited %d: %s", res.ExitCode, res.CombinedOutput())
	}
	return dest, nil
}

// ArchiveChannel fetches a tarball and extracts it under a prefix. The
// extracted bin directory is returned as an EnvDelta rather than written
// into the ambient PATH.
type ArchiveChannel struct {
	// Runner spawns curl and tar.
	Runner execx.Runner

	// URL is the archive to fetch. Must be a gzip or xz tarball.
	URL string

	// Prefix is the directory to extract into. Empty means the default
	// archive prefix under the XDG data directory.
	Prefix string

	// StripComponents drops leading path elements during extraction,
	// for archives with a single versioned top-level directory.
	StripComponents int

	// BinSubdir is the directory (relative to Prefix) holding executables,
	// reported via EnvDelta. Empty means Prefix itself.
	BinSubdir string
}

// Describe implements Channel.
func (c ArchiveChannel) Describe() string {
	return "archive:" + c.URL
}

// Prerequisite implements Channel.
func (c ArchiveChannel) Prerequisite(_ context.Context) error {
	for _, bin := range []string{"curl", "tar"} {
		if _, err := c.Runner.LookPath(bin); err != nil {
			return errors.Newf("%s is not on the search path", bin)
		}
	}
	return nil
}

// Execute implements Channel.
func (c ArchiveChannel) Execute(ctx context.Context) (EnvDelta, error) {
	dir := paths.DownloadCacheDir()
	if err := paths.EnsureDir(dir, 0); err != nil {
		return EnvDelta{}, errors.Wrap(err, "creating download cache")
	}

	archive := filepath.Join(dir, filepath.Base(c.URL))
	res, err := c.Runner.Run(ctx, "curl", "-fsSL", "-o", archive, c.URL)
	if err != nil {
		return EnvDelta{}, err
	}
	if !res.Success() {
		return EnvDelta{}, errors.Newf("curl exited %d: %s", res.ExitCode, res.CombinedOutput())
	}

	prefix := c.prefix()
	if err := paths.EnsureDir(prefix, 0o755); err != nil {
		return EnvDelta{}, errors.Wrap(err, "creating extraction prefix")
	}

	args := []string{c.tarFlags(), "-f", archive, "-C", prefix}
	if c.StripComponents > 0 {
		args = append(args, fmt.Sprintf("--strip-components=%d", c.StripComponents))
	}
	res, err = c.Runner.Run(ctx, "tar", args...)
	if err != nil {
		return EnvDelta{}, err
	}
	if !res.Success() {
		return EnvDelta{}, errors.Newf("tar exited %d: %s", res.ExitCode, res.CombinedOutput())
	}

	return EnvDelta{PathPrepend: []string{c.binDir()}}, nil
}

// Remediation implements Channel.
func (c ArchiveChannel) Remediation() []string {
	return []string{
		fmt.Sprintf("curl -fL %s | tar %s -C %s", c.URL, c.tarFlags(), c.prefix()),
	}
}

func (c ArchiveChannel) prefix() string {
	if c.Prefix != "" {
		return c.Prefix
	}
	return paths.ArchivePrefix()
}

func (c ArchiveChannel) binDir() string {
	if c.BinSubdir == "" {
		return c.prefix()
	}
	return filepath.Join(c.prefix(), c.BinSubdir)
}

func (c ArchiveChannel) tarFlags() string {
	if strings.HasSuffix(c.URL, ".tar.xz") || strings.HasSuffix(c.URL, ".txz") {
		return "-xJ"
	}
	return "-xz"
}
