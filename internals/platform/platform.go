// Package platform describes the machine the launcher is running on
// in the vocabulary used by version descriptor rules.
package platform

import (
	"runtime"

	"github.com/shirou/gopsutil/v3/host"
)

// OSFamily is one of the operating system families rules can target
type OSFamily uint8

const (
	Linux OSFamily = iota
	Windows
	Macos
)

// RuleName returns the name descriptors use for this family in `os.name`
func (f OSFamily) RuleName() string {
	switch f {
	case Windows:
		return "windows"
	case Macos:
		return "osx"
	default:
		return "linux"
	}
}

func (f OSFamily) String() string {
	switch f {
	case Windows:
		return "windows"
	case Macos:
		return "macos"
	default:
		return "linux"
	}
}

// Matches reports if a rule `os.name` targets this family.
// Newer descriptors use "macos" instead of "osx", both are accepted.
func (f OSFamily) Matches(name string) bool {
	if f == Macos && name == "macos" {
		return true
	}
	return name == f.RuleName()
}

// PathListSeparator is the separator used for the java classpath
func (f OSFamily) PathListSeparator() string {
	if f == Windows {
		return ";"
	}
	return ":"
}

// Info is the platform used to evaluate rules. It is computed once and never changed.
type Info struct {
	OSFamily OSFamily
	// OSVersion is matched against the `os.version` regex of rules
	OSVersion string
	// Arch is normalised to the names used in descriptors (x86, x86_64, arm64, arm32)
	Arch string
}

// Detect returns the Info for the running process
func Detect() Info {
	version, err := host.PlatformVersion()
	if err != nil || version == "" {
		version, _ = host.KernelVersion()
	}
	return Info{
		OSFamily:  familyFor(runtime.GOOS),
		OSVersion: version,
		Arch:      NormalizeArch(runtime.GOARCH),
	}
}

// New returns an Info for the given GOOS/GOARCH pair. Useful for tests & cross platform launch scripts.
func New(goos string, goarch string, osVersion string) Info {
	return Info{
		OSFamily:  familyFor(goos),
		OSVersion: osVersion,
		Arch:      NormalizeArch(goarch),
	}
}

func familyFor(goos string) OSFamily {
	switch goos {
	case "windows":
		return Windows
	case "darwin":
		return Macos
	default:
		return Linux
	}
}

// NormalizeArch maps go and common uname names to descriptor names
func NormalizeArch(arch string) string {
	switch arch {
	case "amd64", "x86_64", "x64":
		return "x86_64"
	case "386", "i386", "i686", "x86":
		return "x86"
	case "arm64", "aarch64":
		return "arm64"
	case "arm":
		return "arm32"
	}
	return arch
}

// Bits returns "32" or "64". It replaces `${arch}` in native classifiers.
func (i Info) Bits() string {
	switch i.Arch {
	case "x86", "arm32":
		return "32"
	}
	return "64"
}
