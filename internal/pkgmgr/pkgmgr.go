// Package pkgmgr knows the package managers nvsetup drives: how to find
// them, which packages each one needs, and the commands that install them.
package pkgmgr

import (
	"slices"

	"github.com/thoreinstein/nvsetup/internal/errors"
	"github.com/thoreinstein/nvsetup/internal/platform"
	"github.com/thoreinstein/nvsetup/internal/runner"
)

// Manager identifies a package manager.
type Manager string

// Supported package managers.
const (
	Apt    Manager = "apt"
	Dnf    Manager = "dnf"
	Pacman Manager = "pacman"
	Brew   Manager = "brew"
)

// HomebrewInstallURL is shown when brew is missing on macOS.
const HomebrewInstallURL = "https://brew.sh"

// Sentinel errors.
var (
	// ErrNoPackageManager means none of apt-get, dnf or pacman is on PATH.
	ErrNoPackageManager = errors.New("no supported package manager found")

	// ErrHomebrewMissing means macOS without brew on PATH.
	ErrHomebrewMissing = errors.New("homebrew is required on macOS")

)

// EditorPackage is the Neovim package name under every supported manager.
const EditorPackage = "neovim"

// NeovimPPA is the Ubuntu archive that carries current Neovim builds; the
// distribution package lags far behind.
const NeovimPPA = "ppa:neovim-ppa/unstable"

// BasePackages are needed on every platform, in this order.
var BasePackages = []string{"git", "make", "gcc", "ripgrep", "unzip"}

type profile struct {
	// bin is the executable whose presence selects the manager.
	bin string
	// extras are the finder and clipboard packages under this manager's names.
	extras []string
	// install is the non-interactive install prefix; packages follow.
	install []string
	// privileged managers run through sudo when not root.
	privileged bool
}

var profiles = map[Manager]profile{
	Apt: {
		bin:        "apt-get",
		extras:     []string{"fd-find", "xclip"},
		install:    []string{"apt-get", "install", "-y"},
		privileged: true,
	},
	Dnf: {
		bin:        "dnf",
		extras:     []string{"fd-find", "xclip"},
		install:    []string{"dnf", "install", "-y"},
		privileged: true,
	},
	Pacman: {
		bin:        "pacman",
		extras:     []string{"fd", "xclip"},
		install:    []string{"pacman", "-S", "--noconfirm", "--needed"},
		privileged: true,
	},
	Brew: {
		bin:     "brew",
		extras:  []string{"fd"},
		install: []string{"brew", "install"},
	},
}

// linuxDetectOrder is the detection priority on Linux.
var linuxDetectOrder = []Manager{Apt, Dnf, Pacman}

// Executable is the binary looked up to detect m.
func (m Manager) Executable() string {
	return profiles[m].bin
}

// Privileged reports whether m's commands need root.
func (m Manager) Privileged() bool {
	return profiles[m].privileged
}

// Extras returns the manager-specific packages appended to BasePackages.
func (m Manager) Extras() []string {
	return slices.Clone(profiles[m].extras)
}

// InstallCommand returns the non-interactive batch install for pkgs.
// The command is unprivileged; callers add sudo.
func (m Manager) InstallCommand(pkgs ...string) runner.Command {
	s := profiles[m]
	args := make([]string, 0, len(s.install)-1+len(pkgs))
	args = append(args, s.install[1:]...)
	args = append(args, pkgs...)
	return runner.Command{Name: s.install[0], Args: args}
}

// EditorCommands returns the commands that install Neovim, in order. On apt
// the unstable PPA is registered and the index refreshed first. Commands are
// unprivileged; callers add sudo when m is Privileged.
func (m Manager) EditorCommands() []runner.Command {
	if m == Apt {
		return []runner.Command{
			runner.Cmd("add-apt-repository", "-y", NeovimPPA),
			runner.Cmd("apt-get", "update"),
			m.InstallCommand(EditorPackage),
		}
	}
	if _, ok := profiles[m]; !ok {
		return nil
	}
	return []runner.Command{m.InstallCommand(EditorPackage)}
}

// Detect picks the package manager for the host. On Linux it looks up apt-get,
// dnf and pacman in that order; on macOS it requires brew.
func Detect(r runner.Runner, info *platform.Info) (Manager, error) {
	switch {
	case info == nil:
		return "", errors.Wrap(platform.ErrUnsupportedOS, "no platform information")
	case info.IsMacOS():
		if runner.Has(r, profiles[Brew].bin) {
			return Brew, nil
		}
		return "", errors.WithHint(ErrHomebrewMissing, "Install Homebrew from "+HomebrewInstallURL+" and re-run nvsetup")
	case info.IsLinux():
		for _, m := range linuxDetectOrder {
			if runner.Has(r, profiles[m].bin) {
				return m, nil
			}
		}
		return "", errors.WithHint(ErrNoPackageManager, "nvsetup supports apt-get, dnf and pacman")
	default:
		return "", errors.Wrapf(platform.ErrUnsupportedOS, "%s", info.OS)
	}
}

// Dependencies returns BasePackages, then m's extras, then extra, without
// duplicates. The first occurrence of a name keeps its position.
func Dependencies(m Manager, extra ...string) []string {
	candidates := make([]string, 0, len(BasePackages)+len(profiles[m].extras)+len(extra))
	candidates = append(candidates, BasePackages...)
	candidates = append(candidates, profiles[m].extras...)
	candidates = append(candidates, extra...)

	seen := make(map[string]struct{}, len(candidates))
	deps := make([]string, 0, len(candidates))
	for _, p := range candidates {
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		deps = append(deps, p)
	}
	return deps
}
