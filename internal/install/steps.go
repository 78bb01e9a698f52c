package install

import (
	"context"
	"fmt"

	"github.com/thoreinstein/nvsetup/internal/backup"
	"github.com/thoreinstein/nvsetup/internal/config"
	"github.com/thoreinstein/nvsetup/internal/errors"
	"github.com/thoreinstein/nvsetup/internal/git"
	"github.com/thoreinstein/nvsetup/internal/paths"
	"github.com/thoreinstein/nvsetup/internal/pkgmgr"
	"github.com/thoreinstein/nvsetup/internal/platform"
	"github.com/thoreinstein/nvsetup/internal/runner"
)

// DetectOS identifies the host and rejects anything but Linux and macOS.
func (i *Installer) DetectOS(ctx context.Context) (*platform.Info, error) {
	info, err := i.detector.Detect(ctx)
	if err != nil {
		return nil, err
	}
	if err := platform.CheckSupported(info); err != nil {
		return nil, err
	}
	i.log(ctx).Info("platform detected",
		"os", info.OS,
		"arch", info.Arch,
		"distro", info.Distro,
		"version", info.Version)
	i.out.Step("Detected %s", info)
	return info, nil
}

// InstallPackages installs pkgs in a single non-interactive batch.
func (i *Installer) InstallPackages(ctx context.Context, mgr pkgmgr.Manager, pkgs []string) error {
	if len(pkgs) == 0 {
		return nil
	}
	cmd := i.elevate(ctx, mgr, mgr.InstallCommand(pkgs...))
	i.out.Step("Installing dependencies with %s", mgr)
	i.out.Detail("%s", cmd)

	if _, err := i.runner.Run(ctx, cmd); err != nil {
		return err
	}
	i.out.Success("Installed %d packages", len(pkgs))
	return nil
}

// EnsureEditor installs Neovim unless nvim is already on PATH.
func (i *Installer) EnsureEditor(ctx context.Context, mgr pkgmgr.Manager) error {
	if path, err := i.runner.LookPath(editorExecutable); err == nil {
		i.log(ctx).Debug("neovim already installed", "path", path)
		i.out.Success("Neovim already installed at %s", path)
		return nil
	}

	i.out.Step("Installing Neovim with %s", mgr)
	for _, cmd := range mgr.EditorCommands() {
		cmd = i.elevate(ctx, mgr, cmd)
		i.out.Detail("%s", cmd)
		if _, err := i.runner.Run(ctx, cmd); err != nil {
			return err
		}
	}
	i.out.Success("Neovim installed")
	return nil
}

// DeployConfiguration clones the configuration repository into dir. An
// existing dir is renamed to a timestamped backup first, but only with the
// operator's consent; otherwise ErrBackupDeclined is returned and nothing
// on disk changes.
func (i *Installer) DeployConfiguration(ctx context.Context, dir string) error {
	if dir == "" {
		return errors.Wrap(paths.ErrInvalidPath, "configuration directory not set")
	}
	if err := git.ValidateURL(i.opts.RepoURL); err != nil {
		return err
	}

	exists, err := paths.Exists(dir)
	if err != nil {
		return errors.Wrapf(err, "checking %s", dir)
	}

	if exists {
		now := i.now()
		target := backup.PathFor(dir, now)

		ok, err := i.confirm.Confirm(fmt.Sprintf("%s already exists. Move it to %s?", dir, target))
		if err != nil {
			return errors.Wrap(err, "asking for backup confirmation")
		}
		if !ok {
			i.log(ctx).Info("backup declined", "dir", dir)
			return errors.WithHint(errors.Wrapf(ErrBackupDeclined, "%s", dir), backupDeclinedHint)
		}

		moved, err := backup.Rename(dir, now)
		if err != nil {
			return err
		}
		i.log(ctx).Info("configuration backed up", "from", dir, "to", moved)
		i.out.Success("Backed up %s to %s", dir, moved)
	}

	i.out.Step("Cloning %s", i.opts.RepoURL)
	i.out.Detail("into %s", dir)
	if err := git.Clone(ctx, i.runner, i.opts.RepoURL, dir, i.opts.CloneDepth); err != nil {
		return err
	}
	i.out.Success("Configuration deployed to %s", dir)
	return nil
}

// elevate prefixes privileged package-manager commands with sudo according
// to the configured mode.
func (i *Installer) elevate(ctx context.Context, mgr pkgmgr.Manager, cmd runner.Command) runner.Command {
	if !i.needsSudo(mgr) {
		return cmd
	}
	i.log(ctx).Debug("elevating command", "mode", i.opts.Sudo, "cmd", cmd.Name)
	return cmd.WithPrefix(sudoExecutable)
}

func (i *Installer) needsSudo(mgr pkgmgr.Manager) bool {
	if !mgr.Privileged() {
		return false
	}
	switch i.opts.Sudo {
	case config.SudoAlways:
		return true
	case config.SudoNever:
		return false
	default:
		return i.euid() != 0
	}
}
