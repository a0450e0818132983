package doctor

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/danareia/appman/internal/config"
	"github.com/danareia/appman/internal/execx"
	"github.com/danareia/appman/internal/platform"
)

func TestPlatformCheck(t *testing.T) {
	tests := []struct {
		name string
		desc platform.Descriptor
		want Severity
	}{
		{
			name: "classified environment passes",
			desc: platform.Descriptor{Category: platform.CategoryDebian, Arch: platform.ArchAMD64},
			want: SeverityPass,
		},
		{
			name: "unknown environment warns",
			desc: platform.Descriptor{Category: platform.CategoryUnknown},
			want: SeverityWarning,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewPlatformCheck(tt.desc).Run(context.Background())
			if result.Status != tt.want {
				t.Errorf("status = %s, want %s", result.Status, tt.want)
			}
			if result.Details["category"] != tt.desc.Category.String() {
				t.Errorf("details.category = %v", result.Details["category"])
			}
		})
	}
}

func TestManagerCheck(t *testing.T) {
	ctx := context.Background()

	available := execx.NewFake().AddPath("apt-get", "dpkg-query")
	checks := ChecksFor(available, platform.Descriptor{Category: platform.CategoryDebian}, config.Default())

	var aptResult *CheckResult
	for _, c := range checks {
		if c.Name() == "manager-apt" {
			aptResult = c.Run(ctx)
		}
	}
	if aptResult == nil {
		t.Fatal("no apt check for debian")
	}
	if aptResult.Status != SeverityPass {
		t.Errorf("apt status = %s, want pass", aptResult.Status)
	}

	missing := NewManagerCheck(relevantManagers(execx.NewFake(), platform.CategoryDebian)[0]).Run(ctx)
	if missing.Status != SeverityWarning {
		t.Errorf("missing manager status = %s, want warning", missing.Status)
	}
	if missing.FixHint == "" {
		t.Error("missing manager should carry an install hint")
	}
}

func TestBridgeCheck(t *testing.T) {
	ctx := context.Background()
	desc := platform.Descriptor{Category: platform.CategoryWSL}

	reachable := NewBridgeCheck(execx.NewFake().AddPath("winget.exe"), desc).Run(ctx)
	if reachable.Status != SeverityPass {
		t.Errorf("reachable status = %s, want pass", reachable.Status)
	}

	unreachable := NewBridgeCheck(execx.NewFake(), desc).Run(ctx)
	if unreachable.Status != SeverityError {
		t.Errorf("unreachable status = %s, want error", unreachable.Status)
	}
	if unreachable.FixHint == "" {
		t.Error("unreachable bridge should carry a fix hint")
	}
}

func TestConfigCheck(t *testing.T) {
	ctx := context.Background()

	valid := NewConfigCheck(config.Default()).Run(ctx)
	if valid.Status != SeverityPass {
		t.Errorf("valid config status = %s, want pass", valid.Status)
	}

	invalid := NewConfigCheck(&config.Config{Version: 0}).Run(ctx)
	if invalid.Status != SeverityError {
		t.Errorf("invalid config status = %s, want error", invalid.Status)
	}
}

func TestTargetsCheck(t *testing.T) {
	ctx := context.Background()
	fake := execx.NewFake()

	t.Run("missing file passes", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "targets.toml")
		result := NewTargetsCheck(fake, path).Run(ctx)
		if result.Status != SeverityPass {
			t.Errorf("status = %s, want pass", result.Status)
		}
	})

	t.Run("invalid file errors", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "targets.toml")
		if err := os.WriteFile(path, []byte("[[target]]\nname = \"x\"\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		result := NewTargetsCheck(fake, path).Run(ctx)
		if result.Status != SeverityError {
			t.Errorf("status = %s, want error", result.Status)
		}
	})
}

func TestChecksForNestedCategoriesIncludeBridge(t *testing.T) {
	fake := execx.NewFake()
	cfg := config.Default()

	hasBridge := func(checks []Check) bool {
		for _, c := range checks {
			if c.Name() == "host-interop" {
				return true
			}
		}
		return false
	}

	for _, cat := range platform.Categories() {
		checks := ChecksFor(fake, platform.Descriptor{Category: cat}, cfg)
		if got, want := hasBridge(checks), cat.Nested(); got != want {
			t.Errorf("%s: bridge check present = %v, want %v", cat, got, want)
		}
	}
}
