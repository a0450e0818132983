package installer

import (
	"context"
	"strings"
	"testing"

	"github.com/danareia/appman/internal/errors"
	"github.com/danareia/appman/internal/platform"
	"github.com/danareia/appman/internal/probe"
)

// boolProbe reports the value behind the pointer, so tests can flip
// presence between protocol steps.
func boolProbe(v *bool) probe.Probe {
	return probe.New("test presence", func(context.Context) (bool, error) {
		return *v, nil
	})
}

// fakeChannel is a scripted Channel that records how far the protocol got.
type fakeChannel struct {
	desc     string
	preErr   error
	execErr  error
	delta    EnvDelta
	onExec   func()
	executed int
}

func (c *fakeChannel) Describe() string { return c.desc }

func (c *fakeChannel) Prerequisite(context.Context) error { return c.preErr }

func (c *fakeChannel) Execute(context.Context) (EnvDelta, error) {
	c.executed++
	if c.execErr != nil {
		return EnvDelta{}, c.execErr
	}
	if c.onExec != nil {
		c.onExec()
	}
	return c.delta, nil
}

func (c *fakeChannel) Remediation() []string {
	return []string{"manually run " + c.desc}
}

func linuxDesc() platform.Descriptor {
	return platform.Descriptor{Category: platform.CategoryDebian, Arch: platform.ArchAMD64}
}

func newTestTarget(present *bool, channels ...Channel) Target {
	return Target{
		Name:    "widget",
		Summary: "test widget",
		Handlers: map[platform.Category]Handler{
			platform.CategoryDebian: {
				Probe:    boolProbe(present),
				Channels: channels,
			},
		},
	}
}

func TestInstall_AlreadyInstalled(t *testing.T) {
	present := true
	ch := &fakeChannel{desc: "apt:widget"}
	target := newTestTarget(&present, ch)

	// Idempotence: repeated installs always skip and never execute.
	for i := 0; i < 3; i++ {
		res := target.Install(context.Background(), linuxDesc())
		if res.Outcome != OutcomeSkipped {
			t.Fatalf("run %d: Outcome = %v, want skipped", i, res.Outcome)
		}
		if res.Message != "widget is already installed." {
			t.Errorf("Message = %q", res.Message)
		}
	}
	if ch.executed != 0 {
		t.Errorf("channel executed %d times, want 0", ch.executed)
	}
}

func TestInstall_UnsupportedCategory(t *testing.T) {
	present := false
	target := newTestTarget(&present, &fakeChannel{desc: "apt:widget"})

	res := target.Install(context.Background(), platform.Descriptor{Category: platform.CategoryRPM})
	if res.Outcome != OutcomeSkipped {
		t.Fatalf("Outcome = %v, want skipped", res.Outcome)
	}
	if res.Message != "widget is not available for rpm." {
		t.Errorf("Message = %q", res.Message)
	}
}

func TestInstall_RequiresDesktop(t *testing.T) {
	present := false
	target := newTestTarget(&present, &fakeChannel{desc: "apt:widget"})
	target.RequiresDesktop = true

	res := target.Install(context.Background(), linuxDesc()) // headless
	if res.Outcome != OutcomeSkipped {
		t.Fatalf("Outcome = %v, want skipped", res.Outcome)
	}
	if !strings.Contains(res.Message, "graphical desktop") {
		t.Errorf("Message = %q", res.Message)
	}
}

func TestInstall_MissingPrerequisite(t *testing.T) {
	present := false
	ch := &fakeChannel{desc: "apt:widget", preErr: errors.New("apt-get is not installed on this system")}
	target := newTestTarget(&present, ch)

	res := target.Install(context.Background(), linuxDesc())
	if res.Outcome != OutcomeFailed {
		t.Fatalf("Outcome = %v, want failed", res.Outcome)
	}
	if res.Kind != KindMissingPrerequisite {
		t.Errorf("Kind = %v, want missing-prerequisite", res.Kind)
	}
	if ch.executed != 0 {
		t.Errorf("EXECUTE ran despite missing prerequisite")
	}
	if len(res.Remediation) == 0 {
		t.Error("expected remediation commands")
	}
}

func TestInstall_ExecutionFailure(t *testing.T) {
	present := false
	ch := &fakeChannel{desc: "apt:widget", execErr: errors.New("exit status 100")}
	target := newTestTarget(&present, ch)

	res := target.Install(context.Background(), linuxDesc())
	if res.Kind != KindExecutionFailure {
		t.Errorf("Kind = %v, want execution-failure", res.Kind)
	}
}

func TestInstall_VerificationFailure(t *testing.T) {
	present := false
	// Executes cleanly but never flips the probe.
	ch := &fakeChannel{desc: "apt:widget"}
	target := newTestTarget(&present, ch)

	res := target.Install(context.Background(), linuxDesc())
	if res.Outcome != OutcomeFailed {
		t.Fatalf("Outcome = %v, want failed", res.Outcome)
	}
	if res.Kind != KindVerificationFailure {
		t.Errorf("Kind = %v, want verification-failure", res.Kind)
	}
	if ch.executed != 1 {
		t.Errorf("channel executed %d times, want 1", ch.executed)
	}
}

func TestInstall_Success(t *testing.T) {
	present := false
	ch := &fakeChannel{
		desc:  "apt:widget",
		delta: EnvDelta{PathPrepend: []string{"/opt/widget/bin"}},
	}
	ch.onExec = func() { present = true }
	target := newTestTarget(&present, ch)

	res := target.Install(context.Background(), linuxDesc())
	if res.Outcome != OutcomeInstalled {
		t.Fatalf("Outcome = %v, want installed: %s", res.Outcome, res.Message)
	}
	if len(res.EnvDelta.PathPrepend) != 1 || res.EnvDelta.PathPrepend[0] != "/opt/widget/bin" {
		t.Errorf("EnvDelta = %+v", res.EnvDelta)
	}
}

func TestInstall_FallbackOrdering(t *testing.T) {
	present := false
	primary := &fakeChannel{desc: "apt:widget", preErr: errors.New("apt missing")}
	secondary := &fakeChannel{desc: "download:widget.deb"}
	secondary.onExec = func() { present = true }
	target := newTestTarget(&present, primary, secondary)

	res := target.Install(context.Background(), linuxDesc())
	if res.Outcome != OutcomeInstalled {
		t.Fatalf("Outcome = %v, want installed: %s", res.Outcome, res.Message)
	}
	if primary.executed != 0 {
		t.Error("primary channel executed despite failed prerequisite")
	}
	if secondary.executed != 1 {
		t.Errorf("secondary executed %d times, want 1", secondary.executed)
	}
}

func TestInstall_FallbackAfterExecutionFailure(t *testing.T) {
	present := false
	primary := &fakeChannel{desc: "snap:widget", execErr: errors.New("store down")}
	secondary := &fakeChannel{desc: "apt:widget"}
	secondary.onExec = func() { present = true }
	target := newTestTarget(&present, primary, secondary)

	res := target.Install(context.Background(), linuxDesc())
	if res.Outcome != OutcomeInstalled {
		t.Fatalf("Outcome = %v, want installed", res.Outcome)
	}
	if primary.executed != 1 {
		t.Errorf("primary executed %d times, want exactly 1 (no silent retry)", primary.executed)
	}
}

func TestInstall_LastFailureReported(t *testing.T) {
	present := false
	a := &fakeChannel{desc: "a", preErr: errors.New("a missing")}
	b := &fakeChannel{desc: "b", execErr: errors.New("b broke")}
	target := newTestTarget(&present, a, b)

	res := target.Install(context.Background(), linuxDesc())
	if res.Kind != KindExecutionFailure {
		t.Errorf("Kind = %v, want the final channel's execution-failure", res.Kind)
	}
	if !strings.Contains(res.Message, "b") {
		t.Errorf("Message = %q, want mention of channel b", res.Message)
	}
}

func TestIsEligible(t *testing.T) {
	present := false
	target := newTestTarget(&present)

	tests := []struct {
		name string
		desc platform.Descriptor
		gui  bool
		want bool
	}{
		{
			name: "supported category",
			desc: linuxDesc(),
			want: true,
		},
		{
			name: "unsupported category",
			desc: platform.Descriptor{Category: platform.CategoryMacOS},
			want: false,
		},
		{
			name: "gui target on headless host",
			desc: linuxDesc(),
			gui:  true,
			want: false,
		},
		{
			name: "gui target with desktop",
			desc: platform.Descriptor{Category: platform.CategoryDebian, DesktopAvailable: true},
			gui:  true,
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target.RequiresDesktop = tt.gui
			if got := target.IsEligible(tt.desc); got != tt.want {
				t.Errorf("IsEligible() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsInstalled_NoHandler(t *testing.T) {
	present := true
	target := newTestTarget(&present)

	if target.IsInstalled(context.Background(), platform.Descriptor{Category: platform.CategoryWindows}) {
		t.Error("IsInstalled() = true for category without handler")
	}
}
