package platform

// Category identifies the kind of environment appman is running in.
// It is a closed enumeration; every switch over it must be exhaustive so
// that adding a category is a compile-visible change.
type Category int

const (
	// CategoryUnknown is any environment the classifier cannot identify.
	CategoryUnknown Category = iota

	// CategoryMacOS is a macOS desktop.
	CategoryMacOS

	// CategoryDebian is a Debian-family Linux distribution (Debian, Ubuntu, Mint).
	CategoryDebian

	// CategoryRPM is an RPM-family Linux distribution (Fedora, RHEL, CentOS).
	CategoryRPM

	// CategoryRaspberryPi is Raspberry Pi OS: Debian-family on an ARM single-board computer.
	CategoryRaspberryPi

	// CategoryWindows is native Windows.
	CategoryWindows

	// CategoryGitBash is a POSIX-like shell (MSYS/Git Bash) running on a Windows host.
	CategoryGitBash

	// CategoryWSL is the Windows Subsystem for Linux.
	CategoryWSL
)

// String returns the human-readable category name.
func (c Category) String() string {
	switch c {
	case CategoryMacOS:
		return "macos"
	case CategoryDebian:
		return "debian"
	case CategoryRPM:
		return "rpm"
	case CategoryRaspberryPi:
		return "raspberry-pi"
	case CategoryWindows:
		return "windows"
	case CategoryGitBash:
		return "git-bash"
	case CategoryWSL:
		return "wsl"
	case CategoryUnknown:
		return "unknown"
	}
	return "unknown"
}

// ParseCategory maps a category name back to its Category. The names are
// the ones String produces. Unrecognized names report false.
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories() {
		if c.String() == s {
			return c, true
		}
	}
	return CategoryUnknown, false
}

// Nested reports whether the category is a shell running inside a Windows
// host. Install operations for these categories are delegated to the host.
func (c Category) Nested() bool {
	return c == CategoryGitBash || c == CategoryWSL
}

// DebianFamily reports whether the category uses Debian packaging.
func (c Category) DebianFamily() bool {
	return c == CategoryDebian || c == CategoryRaspberryPi
}

// Categories returns all categories in declaration order, excluding unknown.
func Categories() []Category {
	return []Category{
		CategoryMacOS,
		CategoryDebian,
		CategoryRPM,
		CategoryRaspberryPi,
		CategoryWindows,
		CategoryGitBash,
		CategoryWSL,
	}
}

// Arch is the CPU architecture of the running environment.
type Arch int

const (
	// ArchOther is any architecture appman has no special handling for.
	ArchOther Arch = iota

	// ArchAMD64 is x86_64.
	ArchAMD64

	// ArchARM64 is aarch64 / Apple Silicon.
	ArchARM64
)

// String returns the conventional architecture name.
func (a Arch) String() string {
	switch a {
	case ArchAMD64:
		return "x86_64"
	case ArchARM64:
		return "arm64"
	case ArchOther:
		return "other"
	}
	return "other"
}

// Descriptor is the immutable classification of the current environment.
// It is computed once per process (see Detect) and every downstream install
// decision is a pure function of it.
type Descriptor struct {
	// Category is the environment kind.
	Category Category

	// Arch is the CPU architecture.
	Arch Arch

	// DesktopAvailable is true when a graphical session exists. Targets
	// that are GUI applications require it.
	DesktopAvailable bool
}
