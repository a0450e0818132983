package platform

import (
	"os"
	"runtime"
	"strings"
	"sync"
)

// Signals captures the raw, read-only environment inputs the classifier
// consumes. Collecting them separately from classification keeps Classify
// a pure function that tests can drive directly.
type Signals struct {
	// GOOS and GOARCH mirror the runtime values.
	GOOS   string
	GOARCH string

	// OSRelease is the contents of /etc/os-release, or empty.
	OSRelease string

	// ProcVersion is the contents of /proc/version, or empty.
	ProcVersion string

	// DeviceTreeModel is the contents of /proc/device-tree/model, or empty.
	DeviceTreeModel string

	// Getenv reads an environment variable. Defaults to os.Getenv.
	Getenv func(string) string
}

// CollectSignals reads the classification inputs from the running system.
func CollectSignals() Signals {
	return Signals{
		GOOS:            runtime.GOOS,
		GOARCH:          runtime.GOARCH,
		OSRelease:       readSmallFile("/etc/os-release"),
		ProcVersion:     readSmallFile("/proc/version"),
		DeviceTreeModel: readSmallFile("/proc/device-tree/model"),
		Getenv:          os.Getenv,
	}
}

// Classify derives a Descriptor from the given signals. It is pure: the
// same signals always yield the same descriptor.
func Classify(s Signals) Descriptor {
	if s.Getenv == nil {
		s.Getenv = func(string) string { return "" }
	}

	return Descriptor{
		Category:         classifyCategory(s),
		Arch:             classifyArch(s.GOARCH),
		DesktopAvailable: desktopAvailable(s),
	}
}

var (
	detectOnce sync.Once
	detected   Descriptor
)

// Detect classifies the running environment. The classification happens
// exactly once per process; subsequent calls return the same Descriptor.
func Detect() Descriptor {
	detectOnce.Do(func() {
		detected = Classify(CollectSignals())
	})
	return detected
}

func classifyCategory(s Signals) Category {
	switch s.GOOS {
	case "darwin":
		return CategoryMacOS

	case "windows":
		// MSYSTEM is exported by MSYS2/Git Bash shells.
		if s.Getenv("MSYSTEM") != "" {
			return CategoryGitBash
		}
		return CategoryWindows

	case "linux":
		// WSL kernels identify themselves in /proc/version.
		if strings.Contains(strings.ToLower(s.ProcVersion), "microsoft") ||
			s.Getenv("WSL_DISTRO_NAME") != "" {
			return CategoryWSL
		}

		if strings.Contains(s.DeviceTreeModel, "Raspberry Pi") {
			return CategoryRaspberryPi
		}

		id, idLike := osReleaseIDs(s.OSRelease)
		switch {
		case isDebianID(id) || isDebianID(idLike):
			return CategoryDebian
		case isRPMID(id) || isRPMID(idLike):
			return CategoryRPM
		}
		return CategoryUnknown
	}

	return CategoryUnknown
}

func classifyArch(goarch string) Arch {
	switch goarch {
	case "amd64":
		return ArchAMD64
	case "arm64":
		return ArchARM64
	}
	return ArchOther
}

func desktopAvailable(s Signals) bool {
	switch s.GOOS {
	case "darwin", "windows":
		return true
	case "linux":
		// Covers X11, Wayland, and WSLg sessions.
		return s.Getenv("DISPLAY") != "" ||
			s.Getenv("WAYLAND_DISPLAY") != "" ||
			s.Getenv("XDG_CURRENT_DESKTOP") != ""
	}
	return false
}

// osReleaseIDs extracts the ID and ID_LIKE fields from os-release content.
func osReleaseIDs(content string) (id, idLike string) {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		value = strings.Trim(value, `"'`)
		switch key {
		case "ID":
			id = value
		case "ID_LIKE":
			idLike = value
		}
	}
	return id, idLike
}

func isDebianID(s string) bool {
	return containsAnyField(s, "debian", "ubuntu", "raspbian", "linuxmint", "pop")
}

func isRPMID(s string) bool {
	return containsAnyField(s, "fedora", "rhel", "centos", "rocky", "almalinux")
}

// containsAnyField checks whitespace-separated fields (ID_LIKE can hold
// several values, e.g. "rhel fedora").
func containsAnyField(s string, wanted ...string) bool {
	for _, field := range strings.Fields(s) {
		for _, w := range wanted {
			if field == w {
				return true
			}
		}
	}
	return false
}

// readSmallFile returns the file contents or an empty string.
// Missing files are an expected signal, not an error.
func readSmallFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return string(data)
}
