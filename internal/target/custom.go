package target

import (
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/danareia/appman/internal/bridge"
	"github.com/danareia/appman/internal/errors"
	"github.com/danareia/appman/internal/execx"
	"github.com/danareia/appman/internal/installer"
	"github.com/danareia/appman/internal/pkgmgr"
	"github.com/danareia/appman/internal/platform"
	"github.com/danareia/appman/internal/probe"
)

// Channel kinds recognized in targets.toml.
const (
	kindManager  = "manager"
	kindDownload = "download"
	kindArchive  = "archive"
)

// hostManager is the manager name that routes a channel through the
// host-delegation bridge. Only valid on nested categories.
const hostManager = "host"

// customFile is the top-level targets.toml document.
type customFile struct {
	Targets []definition `toml:"target"`
}

// definition is one user-defined target.
type definition struct {
	Name            string       `toml:"name"`
	Summary         string       `toml:"summary"`
	RequiresDesktop bool         `toml:"requires_desktop"`
	Handlers        []handlerDef `toml:"handler"`
}

// handlerDef declares how the target installs on one category. Command
// and Paths become presence probes, evaluated before the managers' own
// queries.
type handlerDef struct {
	Category string       `toml:"category"`
	Command  string       `toml:"command"`
	Paths    []string     `toml:"paths"`
	Channels []channelDef `toml:"channel"`
}

// channelDef declares one install channel. Kind selects which of the
// remaining fields apply.
type channelDef struct {
	Kind string `toml:"kind"`

	// kind = "manager"
	Manager string `toml:"manager"`
	ID      string `toml:"id"`
	Silent  bool   `toml:"silent"`
	Version string `toml:"version"`
	Source  string `toml:"source"`

	// kind = "download" / "archive"
	URL string `toml:"url"`

	// kind = "download"
	Tool string `toml:"tool"`

	// kind = "archive"
	Prefix          string `toml:"prefix"`
	StripComponents int    `toml:"strip_components"`
	BinSubdir       string `toml:"bin_subdir"`
}

// LoadCustom reads user-defined targets from a targets.toml file. A
// missing file is not an error; there are simply no custom targets.
func LoadCustom(path string, r execx.Runner) ([]installer.Target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "reading custom targets")
	}

	var f customFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "parsing %s: %v", path, err)
	}

	targets := make([]installer.Target, 0, len(f.Targets))
	for _, def := range f.Targets {
		t, err := def.build(r)
		if err != nil {
			return nil, err
		}
		targets = append(targets, t)
	}
	return targets, nil
}

func (d definition) build(r execx.Runner) (installer.Target, error) {
	if d.Name == "" {
		return installer.Target{}, errors.Wrap(errors.ErrInvalidConfig, "target without a name")
	}
	if len(d.Handlers) == 0 {
		return installer.Target{}, errors.Wrapf(errors.ErrInvalidConfig, "target %s declares no handlers", d.Name)
	}

	handlers := make(map[platform.Category]installer.Handler, len(d.Handlers))
	for _, hd := range d.Handlers {
		cat, ok := platform.ParseCategory(hd.Category)
		if !ok {
			return installer.Target{}, errors.Wrapf(errors.ErrInvalidConfig,
				"target %s: unrecognized category %q", d.Name, hd.Category)
		}
		if _, dup := handlers[cat]; dup {
			return installer.Target{}, errors.Wrapf(errors.ErrInvalidConfig,
				"target %s: duplicate handler for %s", d.Name, cat)
		}

		h, err := hd.build(r, d.Name, cat)
		if err != nil {
			return installer.Target{}, err
		}
		handlers[cat] = h
	}

	return installer.Target{
		Name:            d.Name,
		Summary:         d.Summary,
		RequiresDesktop: d.RequiresDesktop,
		Handlers:        handlers,
	}, nil
}

func (hd handlerDef) build(r execx.Runner, name string, cat platform.Category) (installer.Handler, error) {
	if len(hd.Channels) == 0 {
		return installer.Handler{}, errors.Wrapf(errors.ErrInvalidConfig,
			"target %s: handler for %s declares no channels", name, cat)
	}

	var probes []probe.Probe
	if hd.Command != "" {
		probes = append(probes, probe.CommandOnPath(r, hd.Command))
	}
	for _, p := range hd.Paths {
		probes = append(probes, probe.PathExists(p))
	}

	channels := make([]installer.Channel, 0, len(hd.Channels))
	for _, cd := range hd.Channels {
		switch cd.Kind {
		case kindManager:
			client, err := resolveManager(r, cd.Manager, cat)
			if err != nil {
				return installer.Handler{}, errors.Wrapf(errors.ErrInvalidConfig,
					"target %s: handler for %s: %v", name, cat, err)
			}
			if cd.ID == "" {
				return installer.Handler{}, errors.Wrapf(errors.ErrInvalidConfig,
					"target %s: manager channel without a package id", name)
			}
			channels = append(channels, installer.ManagerChannel{
				Client: client,
				ID:     cd.ID,
				Opts:   pkgmgr.Options{Silent: cd.Silent, Version: cd.Version, Source: cd.Source},
			})
			probes = append(probes, probe.ManagerQuery(client, cd.ID))
		case kindDownload:
			if cd.URL == "" {
				return installer.Handler{}, errors.Wrapf(errors.ErrInvalidConfig,
					"target %s: download channel without a url", name)
			}
			switch cd.Tool {
			case installer.ToolDpkg, installer.ToolRpm, installer.ToolInstaller:
			default:
				return installer.Handler{}, errors.Wrapf(errors.ErrInvalidConfig,
					"target %s: download channel with unrecognized tool %q", name, cd.Tool)
			}
			channels = append(channels, installer.DownloadChannel{Runner: r, URL: cd.URL, Tool: cd.Tool})
		case kindArchive:
			if cd.URL == "" {
				return installer.Handler{}, errors.Wrapf(errors.ErrInvalidConfig,
					"target %s: archive channel without a url", name)
			}
			channels = append(channels, installer.ArchiveChannel{
				Runner:          r,
				URL:             cd.URL,
				Prefix:          cd.Prefix,
				StripComponents: cd.StripComponents,
				BinSubdir:       cd.BinSubdir,
			})
		default:
			return installer.Handler{}, errors.Wrapf(errors.ErrInvalidConfig,
				"target %s: unrecognized channel kind %q", name, cd.Kind)
		}
	}

	return installer.Handler{Probe: probe.Any(probes...), Channels: channels}, nil
}

// resolveManager maps a manager name from targets.toml to a client. The
// name "host" delegates through the bridge and requires a nested category.
func resolveManager(r execx.Runner, name string, cat platform.Category) (pkgmgr.Client, error) {
	if name == hostManager {
		return bridge.Host(r, cat)
	}
	return pkgmgr.ByName(r, name)
}
