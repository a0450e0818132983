package target

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/danareia/appman/internal/errors"
	"github.com/danareia/appman/internal/execx"
	"github.com/danareia/appman/internal/installer"
	"github.com/danareia/appman/internal/platform"
)

func writeTargets(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "targets.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadCustomMissingFile(t *testing.T) {
	targets, err := LoadCustom(filepath.Join(t.TempDir(), "absent.toml"), execx.NewFake())
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if targets != nil {
		t.Errorf("expected no targets, got %d", len(targets))
	}
}

func TestLoadCustomFullDefinition(t *testing.T) {
	path := writeTargets(t, `
[[target]]
name = "ripgrep"
summary = "Recursive grep"

[[target.handler]]
category = "debian"
command = "rg"
paths = ["/usr/bin/rg"]

[[target.handler.channel]]
kind = "manager"
manager = "apt"
id = "ripgrep"
silent = true

[[target.handler.channel]]
kind = "archive"
url = "https://example.com/ripgrep-14.1.0-x86_64-unknown-linux-musl.tar.gz"
strip_components = 1

[[target.handler]]
category = "macos"

[[target.handler.channel]]
kind = "manager"
manager = "brew"
id = "ripgrep"
source = "formula"
`)

	targets, err := LoadCustom(path, execx.NewFake())
	if err != nil {
		t.Fatal(err)
	}
	if len(targets) != 1 {
		t.Fatalf("got %d targets", len(targets))
	}

	rg := targets[0]
	if rg.Name != "ripgrep" || rg.RequiresDesktop {
		t.Errorf("unexpected target: %+v", rg)
	}

	deb, ok := rg.Handlers[platform.CategoryDebian]
	if !ok {
		t.Fatal("no debian handler")
	}
	if len(deb.Channels) != 2 {
		t.Fatalf("debian channels = %d", len(deb.Channels))
	}
	if _, ok := deb.Channels[0].(installer.ManagerChannel); !ok {
		t.Errorf("first debian channel is %T, want ManagerChannel", deb.Channels[0])
	}
	if _, ok := deb.Channels[1].(installer.ArchiveChannel); !ok {
		t.Errorf("second debian channel is %T, want ArchiveChannel", deb.Channels[1])
	}
	if deb.Probe.Zero() {
		t.Error("debian handler has no probe")
	}

	if _, ok := rg.Handlers[platform.CategoryMacOS]; !ok {
		t.Error("no macos handler")
	}
}

func TestLoadCustomHostManager(t *testing.T) {
	path := writeTargets(t, `
[[target]]
name = "powertoys"
summary = "Windows PowerToys"

[[target.handler]]
category = "wsl"

[[target.handler.channel]]
kind = "manager"
manager = "host"
id = "Microsoft.PowerToys"
`)

	targets, err := LoadCustom(path, execx.NewFake())
	if err != nil {
		t.Fatal(err)
	}
	h := targets[0].Handlers[platform.CategoryWSL]
	if got := h.Channels[0].Describe(); got != "host-winget:Microsoft.PowerToys" {
		t.Errorf("channel = %q, want host-delegated winget", got)
	}
}

func TestLoadCustomValidation(t *testing.T) {
	tests := []struct {
		name string
		toml string
	}{
		{
			name: "missing target name",
			toml: `
[[target]]
summary = "anonymous"
[[target.handler]]
category = "debian"
[[target.handler.channel]]
kind = "manager"
manager = "apt"
id = "x"
`,
		},
		{
			name: "unknown category",
			toml: `
[[target]]
name = "x"
[[target.handler]]
category = "beos"
[[target.handler.channel]]
kind = "manager"
manager = "apt"
id = "x"
`,
		},
		{
			name: "unknown channel kind",
			toml: `
[[target]]
name = "x"
[[target.handler]]
category = "debian"
[[target.handler.channel]]
kind = "teleport"
`,
		},
		{
			name: "unknown manager",
			toml: `
[[target]]
name = "x"
[[target.handler]]
category = "debian"
[[target.handler.channel]]
kind = "manager"
manager = "portage"
id = "x"
`,
		},
		{
			name: "host manager outside nested category",
			toml: `
[[target]]
name = "x"
[[target.handler]]
category = "debian"
[[target.handler.channel]]
kind = "manager"
manager = "host"
id = "x"
`,
		},
		{
			name: "download without url",
			toml: `
[[target]]
name = "x"
[[target.handler]]
category = "debian"
[[target.handler.channel]]
kind = "download"
tool = "dpkg"
`,
		},
		{
			name: "download with unrecognized tool",
			toml: `
[[target]]
name = "x"
[[target.handler]]
category = "debian"
[[target.handler.channel]]
kind = "download"
url = "https://example.com/x.deb"
tool = "msiexec"
`,
		},
		{
			name: "download without tool",
			toml: `
[[target]]
name = "x"
[[target.handler]]
category = "debian"
[[target.handler.channel]]
kind = "download"
url = "https://example.com/x.deb"
`,
		},
		{
			name: "handler without channels",
			toml: `
[[target]]
name = "x"
[[target.handler]]
category = "debian"
`,
		},
		{
			name: "no handlers",
			toml: `
[[target]]
name = "x"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTargets(t, tt.toml)
			if _, err := LoadCustom(path, execx.NewFake()); !errors.Is(err, errors.ErrInvalidConfig) {
				t.Errorf("err = %v, want ErrInvalidConfig", err)
			}
		})
	}
}
