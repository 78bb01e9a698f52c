package install

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/thoreinstein/nvsetup/internal/cli/prompt"
	"github.com/thoreinstein/nvsetup/internal/config"
	"github.com/thoreinstein/nvsetup/internal/console"
	"github.com/thoreinstein/nvsetup/internal/errors"
	"github.com/thoreinstein/nvsetup/internal/git"
	"github.com/thoreinstein/nvsetup/internal/logging"
	"github.com/thoreinstein/nvsetup/internal/paths"
	"github.com/thoreinstein/nvsetup/internal/pkgmgr"
	"github.com/thoreinstein/nvsetup/internal/platform"
	"github.com/thoreinstein/nvsetup/internal/runner"
)

// ErrBackupDeclined is returned when the configuration directory exists and
// the operator did not agree to move it aside.
var ErrBackupDeclined = errors.Mark(errors.New("existing configuration not backed up"), errors.ErrAborted)

// Phase names wrap errors returned by Run.
const (
	PhaseDetectOS      = "detecting operating system"
	PhaseDetectManager = "detecting package manager"
	PhaseInstallDeps   = "installing dependencies"
	PhaseEnsureEditor  = "installing neovim"
	PhaseDeployConfig  = "deploying configuration"
)

const (
	editorExecutable   = "nvim"
	sudoExecutable     = "sudo"
	backupDeclinedHint = "Move the directory aside yourself or re-run with --yes"
)

// Options carry the resolved configuration for one run.
type Options struct {
	// RepoURL is the configuration repository to clone.
	RepoURL string
	// CloneDepth limits history; 0 clones everything.
	CloneDepth int
	// ConfigDir is the editor configuration directory to deploy into.
	ConfigDir string
	// Sudo controls elevation of Linux package installs.
	Sudo config.SudoMode
	// ExtraPackages are appended to the dependency list.
	ExtraPackages []string
}

// OptionsFromConfig maps a loaded Config onto Options. configDir is the
// already-resolved target directory.
func OptionsFromConfig(cfg *config.Config, configDir string) Options {
	return Options{
		RepoURL:       cfg.RepoURL,
		CloneDepth:    cfg.CloneDepth,
		ConfigDir:     configDir,
		Sudo:          cfg.Sudo,
		ExtraPackages: cfg.ExtraPackages,
	}
}

// Installer runs the setup pipeline against injected collaborators.
type Installer struct {
	runner   runner.Runner
	detector platform.Detector
	confirm  prompt.Confirmer
	out      *console.Printer
	now      func() time.Time
	euid     func() int
	logger   *slog.Logger
	opts     Options
}

// Option configures an Installer.
type Option func(*Installer)

// WithOutput sets where console messages go (default stdout).
func WithOutput(w io.Writer) Option {
	return func(i *Installer) {
		i.out = console.New(w)
	}
}

// WithClock sets the time source used to name backups.
func WithClock(now func() time.Time) Option {
	return func(i *Installer) {
		i.now = now
	}
}

// WithEUID sets the effective uid lookup used by sudo auto mode.
func WithEUID(euid func() int) Option {
	return func(i *Installer) {
		i.euid = euid
	}
}

// WithLogger sets the logger. Without it the logger is taken from the
// context passed to each operation.
func WithLogger(l *slog.Logger) Option {
	return func(i *Installer) {
		i.logger = l
	}
}

// New creates an Installer.
func New(r runner.Runner, d platform.Detector, c prompt.Confirmer, opts Options, options ...Option) *Installer {
	i := &Installer{
		runner:   r,
		detector: d,
		confirm:  c,
		out:      console.New(os.Stdout),
		now:      time.Now,
		euid:     os.Geteuid,
		opts:     opts,
	}
	if i.opts.Sudo == "" {
		i.opts.Sudo = config.SudoAuto
	}
	for _, o := range options {
		o(i)
	}
	return i
}

func (i *Installer) log(ctx context.Context) *slog.Logger {
	if i.logger != nil {
		return i.logger
	}
	return logging.FromContext(ctx)
}

// Run executes every phase in order and stops at the first failure. Nothing
// is retried or rolled back.
func (i *Installer) Run(ctx context.Context) error {
	info, err := i.DetectOS(ctx)
	if err != nil {
		return phaseError(PhaseDetectOS, err)
	}

	mgr, err := pkgmgr.Detect(i.runner, info)
	if err != nil {
		return phaseError(PhaseDetectManager, err)
	}
	i.log(ctx).Info("package manager selected", "manager", mgr)

	deps := pkgmgr.Dependencies(mgr, i.opts.ExtraPackages...)
	if err := i.InstallPackages(ctx, mgr, deps); err != nil {
		return phaseError(PhaseInstallDeps, err)
	}

	if err := i.EnsureEditor(ctx, mgr); err != nil {
		return phaseError(PhaseEnsureEditor, err)
	}

	if err := i.DeployConfiguration(ctx, i.opts.ConfigDir); err != nil {
		return phaseError(PhaseDeployConfig, err)
	}

	i.out.Success("Neovim is ready. Start it with: nvim")
	PrintFontInstructions(i.out.Writer(), info)
	return nil
}

// userErrors are caused by the host or the operator rather than a failing
// command.
var userErrors = []error{
	platform.ErrUnsupportedOS,
	pkgmgr.ErrNoPackageManager,
	pkgmgr.ErrHomebrewMissing,
	errors.ErrAborted,
	errors.ErrInvalidConfig,
	git.ErrInvalidURL,
	paths.ErrHomeDirNotFound,
}

// phaseError wraps err with the phase name and attaches the exit code the
// error class calls for.
func phaseError(phase string, err error) error {
	wrapped := errors.Wrap(err, phase)
	for _, target := range userErrors {
		if errors.Is(err, target) {
			return errors.NewUserError(wrapped, errors.GetHint(err))
		}
	}
	return errors.NewSystemError(wrapped, errors.GetHint(err))
}
