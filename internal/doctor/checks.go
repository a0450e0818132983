package doctor

import (
	"context"
	"fmt"

	"github.com/danareia/appman/internal/bridge"
	"github.com/danareia/appman/internal/config"
	"github.com/danareia/appman/internal/execx"
	"github.com/danareia/appman/internal/pkgmgr"
	"github.com/danareia/appman/internal/platform"
	"github.com/danareia/appman/internal/target"
)

// PlatformCheck validates that the environment was classified.
type PlatformCheck struct {
	desc platform.Descriptor
}

var _ Check = (*PlatformCheck)(nil)

// NewPlatformCheck creates a platform classification check.
func NewPlatformCheck(desc platform.Descriptor) *PlatformCheck {
	return &PlatformCheck{desc: desc}
}

// Name returns the unique identifier for this check.
func (c *PlatformCheck) Name() string {
	return "platform-classification"
}

// Category returns the grouping for this check.
func (c *PlatformCheck) Category() string {
	return "platform"
}

// Run executes the platform classification check.
func (c *PlatformCheck) Run(_ context.Context) *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Details: map[string]any{
			"category": c.desc.Category.String(),
			"arch":     c.desc.Arch.String(),
			"desktop":  c.desc.DesktopAvailable,
		},
	}

	if c.desc.Category == platform.CategoryUnknown {
		result.Status = SeverityWarning
		result.Message = "could not classify this environment; installs will be limited to custom targets"
		result.FixHint = "run `appman platform` and file an issue with the output"
		return result
	}

	result.Status = SeverityPass
	result.Message = fmt.Sprintf("classified as %s (%s)", c.desc.Category, c.desc.Arch)
	return result
}

// ManagerCheck validates that a package manager is available.
type ManagerCheck struct {
	client pkgmgr.Client
}

var _ Check = (*ManagerCheck)(nil)

// NewManagerCheck creates an availability check for one package manager.
func NewManagerCheck(client pkgmgr.Client) *ManagerCheck {
	return &ManagerCheck{client: client}
}

// Name returns the unique identifier for this check.
func (c *ManagerCheck) Name() string {
	return "manager-" + c.client.Name()
}

// Category returns the grouping for this check.
func (c *ManagerCheck) Category() string {
	return "manager"
}

// Run executes the manager availability check.
func (c *ManagerCheck) Run(ctx context.Context) *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
	}

	if c.client.IsAvailable(ctx) {
		result.Status = SeverityPass
		result.Message = c.client.Name() + " is available"
		return result
	}

	// A missing manager narrows the usable channels but the download and
	// archive channels still work.
	result.Status = SeverityWarning
	result.Message = c.client.Name() + " is not available on this system"
	result.FixHint = c.client.InstallHint()
	return result
}

// BridgeCheck validates that the Windows host can be reached from a
// nested environment.
type BridgeCheck struct {
	runner execx.Runner
	desc   platform.Descriptor
}

var _ Check = (*BridgeCheck)(nil)

// NewBridgeCheck creates a host interop reachability check.
func NewBridgeCheck(r execx.Runner, desc platform.Descriptor) *BridgeCheck {
	return &BridgeCheck{runner: r, desc: desc}
}

// Name returns the unique identifier for this check.
func (c *BridgeCheck) Name() string {
	return "host-interop"
}

// Category returns the grouping for this check.
func (c *BridgeCheck) Category() string {
	return "bridge"
}

// Run executes the interop reachability check.
func (c *BridgeCheck) Run(ctx context.Context) *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Details:  map[string]any{"category": c.desc.Category.String()},
	}

	if bridge.Reachable(ctx, c.runner, c.desc.Category) {
		result.Status = SeverityPass
		result.Message = "the host's winget is reachable across the interop boundary"
		return result
	}

	result.Status = SeverityError
	result.Message = "cannot reach winget on the Windows host"
	result.FixHint = "enable Windows interop (wsl.conf [interop] enabled=true) and install 'App Installer' from the Microsoft Store on the host"
	return result
}

// ConfigCheck validates the loaded configuration.
type ConfigCheck struct {
	cfg *config.Config
}

var _ Check = (*ConfigCheck)(nil)

// NewConfigCheck creates a configuration validity check.
func NewConfigCheck(cfg *config.Config) *ConfigCheck {
	return &ConfigCheck{cfg: cfg}
}

// Name returns the unique identifier for this check.
func (c *ConfigCheck) Name() string {
	return "config-valid"
}

// Category returns the grouping for this check.
func (c *ConfigCheck) Category() string {
	return "config"
}

// Run executes the configuration validity check.
func (c *ConfigCheck) Run(_ context.Context) *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
	}

	errs := config.Validate(c.cfg)
	if len(errs) == 0 {
		result.Status = SeverityPass
		result.Message = "configuration is valid"
		return result
	}

	details := make([]string, len(errs))
	for i, err := range errs {
		details[i] = err.Error()
	}

	result.Status = SeverityError
	result.Message = fmt.Sprintf("configuration has %d problem(s)", len(errs))
	result.Details = map[string]any{"problems": details}
	result.FixHint = "edit the config file or regenerate it with `appman config init`"
	return result
}

// TargetsCheck validates the user-defined targets file.
type TargetsCheck struct {
	runner execx.Runner
	path   string
}

var _ Check = (*TargetsCheck)(nil)

// NewTargetsCheck creates a custom-targets file check.
func NewTargetsCheck(r execx.Runner, path string) *TargetsCheck {
	return &TargetsCheck{runner: r, path: path}
}

// Name returns the unique identifier for this check.
func (c *TargetsCheck) Name() string {
	return "custom-targets"
}

// Category returns the grouping for this check.
func (c *TargetsCheck) Category() string {
	return "config"
}

// Run executes the custom-targets file check.
func (c *TargetsCheck) Run(_ context.Context) *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Details:  map[string]any{"path": c.path},
	}

	targets, err := target.LoadCustom(c.path, c.runner)
	if err != nil {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("custom targets file is invalid: %v", err)
		result.FixHint = "fix or remove " + c.path
		return result
	}

	result.Status = SeverityPass
	if len(targets) == 0 {
		result.Message = "no custom targets defined"
	} else {
		result.Message = fmt.Sprintf("%d custom target(s) defined", len(targets))
	}
	return result
}

// ChecksFor assembles the checks relevant to the described environment:
// classification sanity, availability of each package manager the category
// uses, host interop on nested categories, and configuration validity.
func ChecksFor(r execx.Runner, desc platform.Descriptor, cfg *config.Config) []Check {
	checks := []Check{
		NewPlatformCheck(desc),
		NewConfigCheck(cfg),
		NewTargetsCheck(r, cfg.TargetsFile),
	}

	for _, client := range relevantManagers(r, desc.Category) {
		checks = append(checks, NewManagerCheck(client))
	}

	if desc.Category.Nested() {
		checks = append(checks, NewBridgeCheck(r, desc))
	}

	return checks
}

// relevantManagers returns the package managers a category's targets use.
func relevantManagers(r execx.Runner, cat platform.Category) []pkgmgr.Client {
	switch cat {
	case platform.CategoryMacOS:
		return []pkgmgr.Client{pkgmgr.NewBrew(r), pkgmgr.NewMas(r)}
	case platform.CategoryDebian, platform.CategoryRaspberryPi, platform.CategoryWSL:
		return []pkgmgr.Client{pkgmgr.NewApt(r), pkgmgr.NewSnap(r)}
	case platform.CategoryRPM:
		return []pkgmgr.Client{pkgmgr.NewDnf(r), pkgmgr.NewSnap(r)}
	case platform.CategoryWindows:
		return []pkgmgr.Client{pkgmgr.NewWinget(r)}
	case platform.CategoryGitBash, platform.CategoryUnknown:
		return nil
	}
	return nil
}
