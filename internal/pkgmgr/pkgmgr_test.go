package pkgmgr

import (
	"context"
	"errors"
	"testing"

	"github.com/danareia/appman/internal/execx"
)

func TestBrew_IsPackageInstalled(t *testing.T) {
	tests := []struct {
		name string
		res  execx.Result
		want bool
	}{
		{name: "installed", res: execx.Result{ExitCode: 0, Stdout: "/opt/homebrew/Caskroom/visual-studio-code"}, want: true},
		{name: "not installed", res: execx.Result{ExitCode: 1, Stderr: "Error: Cask 'visual-studio-code' is not installed."}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := execx.NewFake().Stub("brew list visual-studio-code", tt.res)
			b := NewBrew(fake)

			got, err := b.IsPackageInstalled(context.Background(), "visual-studio-code")
			if err != nil {
				t.Fatalf("IsPackageInstalled() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("IsPackageInstalled() = %v, want %v", got, tt.want)
			}
			if calls := fake.Calls(); len(calls) != 1 {
				t.Errorf("spawned %d processes, want exactly 1", len(calls))
			}
		})
	}
}

func TestBrew_Install_CaskArgs(t *testing.T) {
	fake := execx.NewFake().Stub("brew install", execx.Result{ExitCode: 0})
	b := NewBrew(fake)

	err := b.Install(context.Background(), "slack", Options{Source: SourceCask, Silent: true})
	if err != nil {
		t.Fatalf("Install() error = %v", err)
	}

	want := "brew install --cask --quiet slack"
	if lines := fake.CallLines(); len(lines) != 1 || lines[0] != want {
		t.Errorf("spawned %v, want [%q]", lines, want)
	}
}

func TestBrew_Install_Failure(t *testing.T) {
	fake := execx.NewFake().Stub("brew install", execx.Result{ExitCode: 1, Stderr: "Error: no formula"})
	b := NewBrew(fake)

	err := b.Install(context.Background(), "nonesuch", Options{})
	if err == nil {
		t.Fatal("Install() expected error on non-zero exit")
	}

	var installErr *InstallError
	if !errors.As(err, &installErr) {
		t.Fatalf("error %T, want *InstallError", err)
	}
	if installErr.Result.ExitCode != 1 {
		t.Errorf("ExitCode = %d, want 1", installErr.Result.ExitCode)
	}
}

func TestBrew_PackageVersion(t *testing.T) {
	fake := execx.NewFake().Stub("brew list --versions jq", execx.Result{ExitCode: 0, Stdout: "jq 1.7.1\n"})
	b := NewBrew(fake)

	got, err := b.PackageVersion(context.Background(), "jq")
	if err != nil {
		t.Fatalf("PackageVersion() error = %v", err)
	}
	if got != "1.7.1" {
		t.Errorf("PackageVersion() = %q, want %q", got, "1.7.1")
	}
}

func TestMas_IsPackageInstalled(t *testing.T) {
	listing := "1352778147  Bitwarden  (2024.6.2)\n497799835  Xcode  (15.4)\n"

	fake := execx.NewFake().Stub("mas list", execx.Result{ExitCode: 0, Stdout: listing})
	m := NewMas(fake)

	got, err := m.IsPackageInstalled(context.Background(), "1352778147")
	if err != nil {
		t.Fatalf("IsPackageInstalled() error = %v", err)
	}
	if !got {
		t.Error("IsPackageInstalled() = false, want true")
	}

	got, err = m.IsPackageInstalled(context.Background(), "409203825")
	if err != nil {
		t.Fatalf("IsPackageInstalled() error = %v", err)
	}
	if got {
		t.Error("IsPackageInstalled() = true for unlisted app")
	}
}

func TestMas_PackageVersion(t *testing.T) {
	listing := "1352778147  Bitwarden  (2024.6.2)\n"
	fake := execx.NewFake().Stub("mas list", execx.Result{ExitCode: 0, Stdout: listing})
	m := NewMas(fake)

	got, err := m.PackageVersion(context.Background(), "1352778147")
	if err != nil {
		t.Fatalf("PackageVersion() error = %v", err)
	}
	if got != "2024.6.2" {
		t.Errorf("PackageVersion() = %q, want %q", got, "2024.6.2")
	}
}

func TestApt_IsPackageInstalled(t *testing.T) {
	tests := []struct {
		name string
		res  execx.Result
		want bool
	}{
		{name: "installed", res: execx.Result{ExitCode: 0, Stdout: "install ok installed"}, want: true},
		{name: "removed but not purged", res: execx.Result{ExitCode: 0, Stdout: "deinstall ok config-files"}, want: false},
		{name: "unknown package", res: execx.Result{ExitCode: 1, Stderr: "dpkg-query: no packages found matching jq"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := execx.NewFake().Stub("dpkg-query", tt.res)
			a := NewApt(fake)

			got, err := a.IsPackageInstalled(context.Background(), "jq")
			if err != nil {
				t.Fatalf("IsPackageInstalled() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("IsPackageInstalled() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApt_Install_VersionPin(t *testing.T) {
	fake := execx.NewFake().Stub("sudo apt-get install", execx.Result{ExitCode: 0})
	a := NewApt(fake)

	err := a.Install(context.Background(), "jq", Options{Version: "1.6-2.1"})
	if err != nil {
		t.Fatalf("Install() error = %v", err)
	}

	want := "sudo apt-get install -y jq=1.6-2.1"
	if lines := fake.CallLines(); lines[0] != want {
		t.Errorf("spawned %q, want %q", lines[0], want)
	}
}

func TestDnf_Install_SourceRepo(t *testing.T) {
	fake := execx.NewFake().Stub("sudo dnf install", execx.Result{ExitCode: 0})
	d := NewDnf(fake)

	err := d.Install(context.Background(), "code", Options{Source: "vscode"})
	if err != nil {
		t.Fatalf("Install() error = %v", err)
	}

	want := "sudo dnf install -y --repo vscode code"
	if lines := fake.CallLines(); lines[0] != want {
		t.Errorf("spawned %q, want %q", lines[0], want)
	}
}

func TestWinget_Install_SilentArgs(t *testing.T) {
	fake := execx.NewFake().Stub("winget install", execx.Result{ExitCode: 0})
	w := NewWinget(fake)

	err := w.Install(context.Background(), "Microsoft.VisualStudioCode", Options{Silent: true})
	if err != nil {
		t.Fatalf("Install() error = %v", err)
	}

	want := "winget install --id Microsoft.VisualStudioCode --exact --silent --accept-package-agreements --accept-source-agreements"
	if lines := fake.CallLines(); lines[0] != want {
		t.Errorf("spawned %q, want %q", lines[0], want)
	}
}

func TestWinget_IsPackageInstalled(t *testing.T) {
	out := "Name                Id                          Version\n" +
		"-------------------------------------------------------\n" +
		"Visual Studio Code  Microsoft.VisualStudioCode  1.92.0\n"

	fake := execx.NewFake().Stub("winget list", execx.Result{ExitCode: 0, Stdout: out})
	w := NewWinget(fake)

	got, err := w.IsPackageInstalled(context.Background(), "Microsoft.VisualStudioCode")
	if err != nil {
		t.Fatalf("IsPackageInstalled() error = %v", err)
	}
	if !got {
		t.Error("IsPackageInstalled() = false, want true")
	}

	version, err := w.PackageVersion(context.Background(), "Microsoft.VisualStudioCode")
	if err != nil {
		t.Fatalf("PackageVersion() error = %v", err)
	}
	if version != "1.92.0" {
		t.Errorf("PackageVersion() = %q, want %q", version, "1.92.0")
	}
}

func TestSnap_Install_ClassicChannel(t *testing.T) {
	fake := execx.NewFake().Stub("sudo snap install", execx.Result{ExitCode: 0})
	s := NewSnap(fake)

	err := s.Install(context.Background(), "code", Options{Version: "stable", Source: "classic"})
	if err != nil {
		t.Fatalf("Install() error = %v", err)
	}

	want := "sudo snap install code --channel=stable --classic"
	if lines := fake.CallLines(); lines[0] != want {
		t.Errorf("spawned %q, want %q", lines[0], want)
	}
}

func TestSnap_PackageVersion(t *testing.T) {
	out := "Name  Version   Rev    Tracking       Publisher  Notes\n" +
		"code  1.92.0    165    latest/stable  vscode     classic\n"

	fake := execx.NewFake().Stub("snap list code", execx.Result{ExitCode: 0, Stdout: out})
	s := NewSnap(fake)

	got, err := s.PackageVersion(context.Background(), "code")
	if err != nil {
		t.Fatalf("PackageVersion() error = %v", err)
	}
	if got != "1.92.0" {
		t.Errorf("PackageVersion() = %q, want %q", got, "1.92.0")
	}
}

func TestByName(t *testing.T) {
	fake := execx.NewFake()

	for _, name := range []string{"brew", "mas", "apt", "dnf", "winget", "snap"} {
		c, err := ByName(fake, name)
		if err != nil {
			t.Errorf("ByName(%q) error = %v", name, err)
			continue
		}
		if c.Name() != name {
			t.Errorf("ByName(%q).Name() = %q", name, c.Name())
		}
	}

	if _, err := ByName(fake, "pacman"); err == nil {
		t.Error("ByName(pacman) expected error")
	}
}

func TestIsAvailable(t *testing.T) {
	fake := execx.NewFake().AddPath("brew", "snap")

	if !NewBrew(fake).IsAvailable(context.Background()) {
		t.Error("brew should be available")
	}
	if NewWinget(fake).IsAvailable(context.Background()) {
		t.Error("winget should not be available")
	}
}
