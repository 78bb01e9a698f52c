// Package platform identifies the host operating system and, on Linux, the
// distribution.
//
// Only Linux and macOS are supported. Distribution details come from
// gopsutil and are informational: package-manager selection looks up
// executables instead of trusting the distro ID.
package platform

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v4/host"

	"github.com/thoreinstein/nvsetup/internal/errors"
)

// Operating systems nvsetup supports, as reported by runtime.GOOS.
const (
	Linux  = "linux"
	Darwin = "darwin"
)

// Linux distribution family constants.
const (
	FamilyDebian  = "debian"
	FamilyRHEL    = "rhel"
	FamilyFedora  = "fedora"
	FamilyArch    = "arch"
	FamilyUnknown = "unknown"
)

// ErrUnsupportedOS is returned for any OS other than Linux and macOS.
var ErrUnsupportedOS = errors.New("unsupported operating system")

// familyMap normalizes gopsutil family and platform strings.
var familyMap = map[string]string{
	"debian":    FamilyDebian,
	"ubuntu":    FamilyDebian,
	"linuxmint": FamilyDebian,
	"pop":       FamilyDebian,
	"rhel":      FamilyRHEL,
	"centos":    FamilyRHEL,
	"rocky":     FamilyRHEL,
	"almalinux": FamilyRHEL,
	"fedora":    FamilyFedora,
	"arch":      FamilyArch,
	"manjaro":   FamilyArch,
	"endeavour": FamilyArch,
}

// Info describes the host.
type Info struct {
	OS      string `json:"os" yaml:"os" toml:"os"`
	Arch    string `json:"arch" yaml:"arch" toml:"arch"`
	Distro  string `json:"distro,omitempty" yaml:"distro,omitempty" toml:"distro,omitempty"`
	Family  string `json:"family,omitempty" yaml:"family,omitempty" toml:"family,omitempty"`
	Version string `json:"version,omitempty" yaml:"version,omitempty" toml:"version,omitempty"`
}

// IsLinux returns true if the host runs Linux.
func (i *Info) IsLinux() bool {
	return i.OS == Linux
}

// IsMacOS returns true if the host runs macOS.
func (i *Info) IsMacOS() bool {
	return i.OS == Darwin
}

// String renders e.g. "linux/amd64 (ubuntu 24.04)".
func (i *Info) String() string {
	s := i.OS + "/" + i.Arch
	if i.Distro != "" {
		s += fmt.Sprintf(" (%s %s)", i.Distro, i.Version)
		s = strings.Replace(s, " )", ")", 1)
	}
	return s
}

// CheckSupported returns ErrUnsupportedOS unless the host is Linux or macOS.
func CheckSupported(info *Info) error {
	if info == nil {
		return errors.Wrap(ErrUnsupportedOS, "no platform information")
	}
	switch info.OS {
	case Linux, Darwin:
		return nil
	default:
		return errors.WithHint(
			errors.Wrapf(ErrUnsupportedOS, "%s", info.OS),
			"nvsetup supports Linux (apt, dnf, pacman) and macOS (Homebrew)")
	}
}

// Detector reports host information.
type Detector interface {
	Detect(ctx context.Context) (*Info, error)
}

// distroFunc matches host.PlatformInformationWithContext.
type distroFunc func(ctx context.Context) (platform, family, version string, err error)

// HostDetector detects the running host.
type HostDetector struct {
	goos   string
	goarch string
	distro distroFunc
}

// NewDetector returns a Detector for the running host.
func NewDetector() *HostDetector {
	return &HostDetector{
		goos:   runtime.GOOS,
		goarch: runtime.GOARCH,
		distro: host.PlatformInformationWithContext,
	}
}

// Detect reports the OS and architecture. On Linux it adds distribution
// details; when gopsutil cannot read them the fields stay empty and
// detection still succeeds, unless ctx was cancelled.
func (d *HostDetector) Detect(ctx context.Context) (*Info, error) {
	info := &Info{
		OS:   d.goos,
		Arch: d.goarch,
	}

	if info.OS != Linux || d.distro == nil {
		return info, nil
	}

	distro, family, version, err := d.distro(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.Wrap(ctx.Err(), "platform detection cancelled")
		}
		return info, nil
	}

	info.Distro = normalize(distro)
	info.Version = normalize(version)
	info.Family = mapFamily(family, info.Distro)
	return info, nil
}

// StaticDetector always returns the same Info. It backs the --os override
// used by `nvsetup plan` and tests.
type StaticDetector struct {
	Info Info
}

// Detect returns a copy of the configured Info.
func (s StaticDetector) Detect(context.Context) (*Info, error) {
	info := s.Info
	return &info, nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// mapFamily prefers gopsutil's family and falls back to the distro ID.
func mapFamily(family, distro string) string {
	if canonical, ok := familyMap[normalize(family)]; ok {
		return canonical
	}
	if canonical, ok := familyMap[distro]; ok {
		return canonical
	}
	return FamilyUnknown
}
