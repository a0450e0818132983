// Package target holds the built-in application catalog and the loader
// for user-defined targets. The catalog is data: each entry declares
// where an application can install and through which channels, and the
// installer package runs the protocol against those declarations.
package target

import (
	"fmt"

	"github.com/danareia/appman/internal/bridge"
	"github.com/danareia/appman/internal/execx"
	"github.com/danareia/appman/internal/installer"
	"github.com/danareia/appman/internal/pkgmgr"
	"github.com/danareia/appman/internal/platform"
	"github.com/danareia/appman/internal/probe"
)

// kit bundles the package-manager clients the catalog entries share.
type kit struct {
	runner  execx.Runner
	arch    platform.Arch
	prefix  string // archive extraction prefix; empty means the XDG default
	brew    pkgmgr.Client
	mas     pkgmgr.Client
	apt     pkgmgr.Client
	dnf     pkgmgr.Client
	winget  pkgmgr.Client
	snap    pkgmgr.Client
	wsl     pkgmgr.Client // winget on the host, reached from WSL
	gitbash pkgmgr.Client // winget on the host, reached from Git Bash
}

func newKit(r execx.Runner, arch platform.Arch, archivePrefix string) kit {
	wsl, _ := bridge.Host(r, platform.CategoryWSL)
	gitbash, _ := bridge.Host(r, platform.CategoryGitBash)
	return kit{
		runner:  r,
		arch:    arch,
		prefix:  archivePrefix,
		brew:    pkgmgr.NewBrew(r),
		mas:     pkgmgr.NewMas(r),
		apt:     pkgmgr.NewApt(r),
		dnf:     pkgmgr.NewDnf(r),
		winget:  pkgmgr.NewWinget(r),
		snap:    pkgmgr.NewSnap(r),
		wsl:     wsl,
		gitbash: gitbash,
	}
}

// managed builds the common single-channel handler: presence decided by
// the manager's own query (optionally preceded by cheaper probes), install
// through the same manager.
func managed(c pkgmgr.Client, id string, opts pkgmgr.Options, extra ...probe.Probe) installer.Handler {
	probes := append(extra, probe.ManagerQuery(c, id))
	return installer.Handler{
		Probe:    probe.Any(probes...),
		Channels: []installer.Channel{installer.ManagerChannel{Client: c, ID: id, Opts: opts}},
	}
}

// windowsFamily wires a winget package id for native Windows and, through
// the bridge, for the nested categories. The same id reaches the same
// host either way.
func (k kit) windowsFamily(handlers map[platform.Category]installer.Handler, id string, extra ...probe.Probe) {
	handlers[platform.CategoryWindows] = managed(k.winget, id, pkgmgr.Options{Silent: true}, extra...)
	handlers[platform.CategoryWSL] = managed(k.wsl, id, pkgmgr.Options{Silent: true})
	handlers[platform.CategoryGitBash] = managed(k.gitbash, id, pkgmgr.Options{Silent: true})
}

// Builtin returns the built-in catalog. The architecture selects archive
// URLs for targets that ship per-arch tarballs; archivePrefix is where
// archive channels extract, empty meaning the XDG default.
func Builtin(r execx.Runner, arch platform.Arch, archivePrefix string) []installer.Target {
	k := newKit(r, arch, archivePrefix)
	return []installer.Target{
		k.vscode(),
		k.git(),
		k.docker(),
		k.slack(),
		k.chrome(),
		k.firefox(),
		k.spotify(),
		k.jq(),
		k.node(),
		k.bitwarden(),
	}
}

func (k kit) vscode() installer.Target {
	h := map[platform.Category]installer.Handler{
		platform.CategoryMacOS: managed(k.brew, "visual-studio-code",
			pkgmgr.Options{Source: pkgmgr.SourceCask},
			probe.PathExists("/Applications/Visual Studio Code.app")),
		platform.CategoryDebian: {
			Probe: probe.Any(
				probe.CommandOnPath(k.runner, "code"),
				probe.ManagerQuery(k.apt, "code")),
			Channels: []installer.Channel{
				installer.DownloadChannel{
					Runner: k.runner,
					URL:    "https://update.code.visualstudio.com/latest/linux-deb-x64/stable",
					Tool:   installer.ToolDpkg,
				},
			},
		},
		platform.CategoryRPM: {
			Probe: probe.Any(
				probe.CommandOnPath(k.runner, "code"),
				probe.ManagerQuery(k.dnf, "code")),
			Channels: []installer.Channel{
				installer.DownloadChannel{
					Runner: k.runner,
					URL:    "https://update.code.visualstudio.com/latest/linux-rpm-x64/stable",
					Tool:   installer.ToolRpm,
				},
			},
		},
	}
	k.windowsFamily(h, "Microsoft.VisualStudioCode", probe.CommandOnPath(k.runner, "code"))
	return installer.Target{
		Name:            "vscode",
		Summary:         "Visual Studio Code editor",
		RequiresDesktop: true,
		Handlers:        h,
	}
}

func (k kit) git() installer.Target {
	onPath := probe.CommandOnPath(k.runner, "git")
	h := map[platform.Category]installer.Handler{
		platform.CategoryMacOS: managed(k.brew, "git",
			pkgmgr.Options{Source: pkgmgr.SourceFormula}, onPath),
		platform.CategoryDebian:      managed(k.apt, "git", pkgmgr.Options{Silent: true}, onPath),
		platform.CategoryRaspberryPi: managed(k.apt, "git", pkgmgr.Options{Silent: true}, onPath),
		platform.CategoryRPM:         managed(k.dnf, "git", pkgmgr.Options{Silent: true}, onPath),
		// WSL is a Linux userland; git installs inside the distribution,
		// not on the host.
		platform.CategoryWSL:     managed(k.apt, "git", pkgmgr.Options{Silent: true}, onPath),
		platform.CategoryWindows: managed(k.winget, "Git.Git", pkgmgr.Options{Silent: true}, onPath),
		platform.CategoryGitBash: managed(k.gitbash, "Git.Git", pkgmgr.Options{Silent: true}),
	}
	return installer.Target{
		Name:     "git",
		Summary:  "Git version control",
		Handlers: h,
	}
}

func (k kit) docker() installer.Target {
	onPath := probe.CommandOnPath(k.runner, "docker")
	h := map[platform.Category]installer.Handler{
		platform.CategoryMacOS: managed(k.brew, "docker",
			pkgmgr.Options{Source: pkgmgr.SourceCask},
			probe.PathExists("/Applications/Docker.app")),
		platform.CategoryDebian: {
			Probe: probe.Any(onPath, probe.ManagerQuery(k.apt, "docker.io")),
			Channels: []installer.Channel{
				installer.ManagerChannel{Client: k.apt, ID: "docker.io", Opts: pkgmgr.Options{Silent: true}},
				installer.ManagerChannel{Client: k.snap, ID: "docker"},
			},
		},
		platform.CategoryRPM: managed(k.dnf, "moby-engine", pkgmgr.Options{Silent: true}, onPath),
		// Docker inside WSL comes from Docker Desktop on the host.
		platform.CategoryWSL:     managed(k.wsl, "Docker.DockerDesktop", pkgmgr.Options{Silent: true}, onPath),
		platform.CategoryWindows: managed(k.winget, "Docker.DockerDesktop", pkgmgr.Options{Silent: true}),
		platform.CategoryGitBash: managed(k.gitbash, "Docker.DockerDesktop", pkgmgr.Options{Silent: true}),
	}
	return installer.Target{
		Name:     "docker",
		Summary:  "Docker container engine",
		Handlers: h,
	}
}

func (k kit) slack() installer.Target {
	h := map[platform.Category]installer.Handler{
		platform.CategoryMacOS: {
			Probe: probe.Any(
				probe.PathExists("/Applications/Slack.app"),
				probe.ManagerQuery(k.brew, "slack")),
			Channels: []installer.Channel{
				installer.ManagerChannel{Client: k.brew, ID: "slack", Opts: pkgmgr.Options{Source: pkgmgr.SourceCask}},
				installer.ManagerChannel{Client: k.mas, ID: "803453959"},
			},
		},
		platform.CategoryDebian: managed(k.snap, "slack", pkgmgr.Options{}),
		platform.CategoryRPM:    managed(k.snap, "slack", pkgmgr.Options{}),
	}
	k.windowsFamily(h, "SlackTechnologies.Slack")
	return installer.Target{
		Name:            "slack",
		Summary:         "Slack desktop client",
		RequiresDesktop: true,
		Handlers:        h,
	}
}

func (k kit) chrome() installer.Target {
	h := map[platform.Category]installer.Handler{
		platform.CategoryMacOS: managed(k.brew, "google-chrome",
			pkgmgr.Options{Source: pkgmgr.SourceCask},
			probe.PathExists("/Applications/Google Chrome.app")),
		// Google publishes no repo package; the stable .deb/.rpm is the
		// supported route.
		platform.CategoryDebian: {
			Probe: probe.Any(
				probe.CommandOnPath(k.runner, "google-chrome"),
				probe.ManagerQuery(k.apt, "google-chrome-stable")),
			Channels: []installer.Channel{
				installer.DownloadChannel{
					Runner: k.runner,
					URL:    "https://dl.google.com/linux/direct/google-chrome-stable_current_amd64.deb",
					Tool:   installer.ToolDpkg,
				},
			},
		},
		platform.CategoryRPM: {
			Probe: probe.Any(
				probe.CommandOnPath(k.runner, "google-chrome"),
				probe.ManagerQuery(k.dnf, "google-chrome-stable")),
			Channels: []installer.Channel{
				installer.DownloadChannel{
					Runner: k.runner,
					URL:    "https://dl.google.com/linux/direct/google-chrome-stable_current_x86_64.rpm",
					Tool:   installer.ToolRpm,
				},
			},
		},
		// No Chrome build for ARM Linux; Chromium from the Pi repos instead.
		platform.CategoryRaspberryPi: managed(k.apt, "chromium-browser", pkgmgr.Options{Silent: true},
			probe.CommandOnPath(k.runner, "chromium-browser")),
	}
	k.windowsFamily(h, "Google.Chrome")
	return installer.Target{
		Name:            "chrome",
		Summary:         "Google Chrome browser",
		RequiresDesktop: true,
		Handlers:        h,
	}
}

func (k kit) firefox() installer.Target {
	h := map[platform.Category]installer.Handler{
		platform.CategoryMacOS: managed(k.brew, "firefox",
			pkgmgr.Options{Source: pkgmgr.SourceCask},
			probe.PathExists("/Applications/Firefox.app")),
		platform.CategoryDebian: {
			Probe: probe.Any(
				probe.CommandOnPath(k.runner, "firefox"),
				probe.ManagerQuery(k.apt, "firefox-esr")),
			Channels: []installer.Channel{
				installer.ManagerChannel{Client: k.apt, ID: "firefox-esr", Opts: pkgmgr.Options{Silent: true}},
				installer.ManagerChannel{Client: k.snap, ID: "firefox"},
			},
		},
		platform.CategoryRPM: managed(k.dnf, "firefox", pkgmgr.Options{Silent: true},
			probe.CommandOnPath(k.runner, "firefox")),
		platform.CategoryRaspberryPi: managed(k.apt, "firefox-esr", pkgmgr.Options{Silent: true},
			probe.CommandOnPath(k.runner, "firefox")),
	}
	k.windowsFamily(h, "Mozilla.Firefox")
	return installer.Target{
		Name:            "firefox",
		Summary:         "Mozilla Firefox browser",
		RequiresDesktop: true,
		Handlers:        h,
	}
}

func (k kit) spotify() installer.Target {
	h := map[platform.Category]installer.Handler{
		platform.CategoryMacOS: managed(k.brew, "spotify",
			pkgmgr.Options{Source: pkgmgr.SourceCask},
			probe.PathExists("/Applications/Spotify.app")),
		platform.CategoryDebian: managed(k.snap, "spotify", pkgmgr.Options{}),
		platform.CategoryRPM:    managed(k.snap, "spotify", pkgmgr.Options{}),
	}
	k.windowsFamily(h, "Spotify.Spotify")
	return installer.Target{
		Name:            "spotify",
		Summary:         "Spotify music client",
		RequiresDesktop: true,
		Handlers:        h,
	}
}

func (k kit) jq() installer.Target {
	onPath := probe.CommandOnPath(k.runner, "jq")
	h := map[platform.Category]installer.Handler{
		platform.CategoryMacOS: managed(k.brew, "jq",
			pkgmgr.Options{Source: pkgmgr.SourceFormula}, onPath),
		platform.CategoryDebian:      managed(k.apt, "jq", pkgmgr.Options{Silent: true}, onPath),
		platform.CategoryRaspberryPi: managed(k.apt, "jq", pkgmgr.Options{Silent: true}, onPath),
		platform.CategoryRPM:         managed(k.dnf, "jq", pkgmgr.Options{Silent: true}, onPath),
		platform.CategoryWSL:         managed(k.apt, "jq", pkgmgr.Options{Silent: true}, onPath),
		platform.CategoryWindows:     managed(k.winget, "jqlang.jq", pkgmgr.Options{Silent: true}, onPath),
		platform.CategoryGitBash:     managed(k.gitbash, "jqlang.jq", pkgmgr.Options{Silent: true}),
	}
	return installer.Target{
		Name:     "jq",
		Summary:  "Command-line JSON processor",
		Handlers: h,
	}
}

// nodeArchiveURL is the official dist tarball for the given architecture.
func nodeArchiveURL(arch platform.Arch) string {
	goarch := "x64"
	if arch == platform.ArchARM64 {
		goarch = "arm64"
	}
	return fmt.Sprintf("https://nodejs.org/dist/v22.11.0/node-v22.11.0-linux-%s.tar.xz", goarch)
}

func (k kit) node() installer.Target {
	onPath := probe.CommandOnPath(k.runner, "node")
	archive := installer.ArchiveChannel{
		Runner:          k.runner,
		URL:             nodeArchiveURL(k.arch),
		Prefix:          k.prefix,
		StripComponents: 1,
		BinSubdir:       "bin",
	}
	h := map[platform.Category]installer.Handler{
		platform.CategoryMacOS: managed(k.brew, "node",
			pkgmgr.Options{Source: pkgmgr.SourceFormula}, onPath),
		platform.CategoryDebian: {
			Probe: probe.Any(onPath, probe.ManagerQuery(k.apt, "nodejs")),
			Channels: []installer.Channel{
				installer.ManagerChannel{Client: k.apt, ID: "nodejs", Opts: pkgmgr.Options{Silent: true}},
				archive,
			},
		},
		platform.CategoryRPM: {
			Probe: probe.Any(onPath, probe.ManagerQuery(k.dnf, "nodejs")),
			Channels: []installer.Channel{
				installer.ManagerChannel{Client: k.dnf, ID: "nodejs", Opts: pkgmgr.Options{Silent: true}},
				archive,
			},
		},
		platform.CategoryRaspberryPi: {
			Probe: probe.Any(onPath, probe.ManagerQuery(k.apt, "nodejs")),
			Channels: []installer.Channel{
				installer.ManagerChannel{Client: k.apt, ID: "nodejs", Opts: pkgmgr.Options{Silent: true}},
				archive,
			},
		},
		platform.CategoryWSL: {
			Probe: probe.Any(onPath, probe.ManagerQuery(k.apt, "nodejs")),
			Channels: []installer.Channel{
				installer.ManagerChannel{Client: k.apt, ID: "nodejs", Opts: pkgmgr.Options{Silent: true}},
				archive,
			},
		},
		platform.CategoryWindows: managed(k.winget, "OpenJS.NodeJS.LTS", pkgmgr.Options{Silent: true}, onPath),
		platform.CategoryGitBash: managed(k.gitbash, "OpenJS.NodeJS.LTS", pkgmgr.Options{Silent: true}),
	}
	return installer.Target{
		Name:     "node",
		Summary:  "Node.js runtime",
		Handlers: h,
	}
}

func (k kit) bitwarden() installer.Target {
	h := map[platform.Category]installer.Handler{
		platform.CategoryMacOS: {
			Probe: probe.Any(
				probe.PathExists("/Applications/Bitwarden.app"),
				probe.ManagerQuery(k.mas, "1352778147")),
			Channels: []installer.Channel{
				installer.ManagerChannel{Client: k.mas, ID: "1352778147"},
				installer.ManagerChannel{Client: k.brew, ID: "bitwarden", Opts: pkgmgr.Options{Source: pkgmgr.SourceCask}},
			},
		},
		platform.CategoryDebian: managed(k.snap, "bitwarden", pkgmgr.Options{}),
		platform.CategoryRPM:    managed(k.snap, "bitwarden", pkgmgr.Options{}),
	}
	k.windowsFamily(h, "Bitwarden.Bitwarden")
	return installer.Target{
		Name:            "bitwarden",
		Summary:         "Bitwarden password manager",
		RequiresDesktop: true,
		Handlers:        h,
	}
}
