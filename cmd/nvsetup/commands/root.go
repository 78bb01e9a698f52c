// Package commands implements the CLI commands for nvsetup.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/nvsetup/internal/cli/prompt"
	"github.com/thoreinstein/nvsetup/internal/config"
	"github.com/thoreinstein/nvsetup/internal/errors"
	"github.com/thoreinstein/nvsetup/internal/logging"
	"github.com/thoreinstein/nvsetup/internal/paths"
	"github.com/thoreinstein/nvsetup/internal/platform"
	"github.com/thoreinstein/nvsetup/internal/runner"
)

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// configFile holds the value of the --config flag.
var configFile string

// assumeYes holds the value of the -y/--yes flag.
var assumeYes bool

// cfg is the configuration loaded in PersistentPreRunE.
var cfg *config.Config

// closeLog releases the --log-file handle.
var closeLog = func() error { return nil }

// Collaborators, replaced in tests.
var (
	newRunner   = func() runner.Runner { return runner.NewExecRunner() }
	newDetector = func() platform.Detector { return platform.NewDetector() }
	lookupEnv   = os.LookupEnv
	stdin       io.Reader = os.Stdin
)

// skipConfigAnnotation marks commands that must work with a broken or
// missing config file.
const skipConfigAnnotation = "nvsetup/skip-config"

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv, -vvv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default: "+paths.AppConfigFile()+")")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false,
		"back up an existing configuration without asking")

	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("nvsetup version {{.Version}}\n")

	// Errors are printed by main with their suggestion and exit code.
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

var rootCmd = &cobra.Command{
	Use:   "nvsetup",
	Short: "Install Neovim and a starter configuration",
	Long: `nvsetup prepares a Linux or macOS machine for Neovim in one run.

It detects the native package manager (apt, dnf, pacman or Homebrew),
installs the build tools and search utilities plugins expect, installs
Neovim itself, and clones a configuration repository into the editor's
config directory.

An existing configuration is never deleted. nvsetup asks before moving it
to <dir>.bak.<unix-seconds>; declining stops the run with nothing changed.`,
	Example: `  # Install everything with the default starter configuration
  nvsetup

  # Preview the commands without running them
  nvsetup plan

  # Use your own configuration repository
  NVSETUP_REPO_URL=git@github.com:me/nvim.git nvsetup

  See Also: nvsetup plan, nvsetup doctor, nvsetup backups`,
	Args: cobra.NoArgs,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		if cmd.Annotations[skipConfigAnnotation] == "true" {
			return nil
		}
		return loadConfig(cmd)
	},
	RunE: runInstall,
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	v := verbosity
	// CLI flags take precedence, but if not set, check env var
	if v == 0 && !quiet {
		if val, ok := lookupEnv("NVSETUP_DEBUG"); ok {
			switch val {
			case "1", "true":
				v = 2 // Debug
			case "2":
				v = 3 // Trace
			}
		}
	}

	logger, closer, err := logging.Setup(logging.Options{
		Verbosity: v,
		Quiet:     quiet,
		Format:    logging.Format(logFormat),
		File:      logFile,
		Output:    cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	closeLog = closer
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))
	return nil
}

// loadConfig reads the config file and environment into cfg.
func loadConfig(cmd *cobra.Command) error {
	config.Init()
	loaded, err := config.Load(configFile)
	if err != nil {
		return errors.NewConfigError(err)
	}
	cfg = loaded
	logging.FromContext(cmd.Context()).Debug("configuration loaded",
		"file", config.Used(),
		"repo_url", cfg.RepoURL,
		"sudo", cfg.Sudo)
	return nil
}

// editorConfigDir returns the configured directory or the XDG/HOME default.
func editorConfigDir() (string, error) {
	if cfg != nil && cfg.ConfigDir != "" {
		dir := cfg.ConfigDir
		if rest, ok := cutHome(dir); ok {
			home, found := lookupEnv("HOME")
			if !found || home == "" {
				return "", errors.WithHint(paths.ErrHomeDirNotFound, "Set HOME or use an absolute config_dir")
			}
			dir = filepath.Join(home, rest)
		}
		return filepath.Abs(dir)
	}
	return paths.EditorConfigDir(lookupEnv)
}

func cutHome(p string) (string, bool) {
	if p == "~" {
		return "", true
	}
	if len(p) > 1 && p[0] == '~' && p[1] == '/' {
		return p[2:], true
	}
	return "", false
}

// confirmer returns the backup prompt honoring --yes.
func confirmer(w io.Writer) prompt.Confirmer {
	if assumeYes {
		return prompt.Fixed(true)
	}
	return prompt.NewKeystrokeWithIO(stdin, w)
}

// PrintError writes the red "Error:" line and any suggestion.
func PrintError(w io.Writer, exitErr *errors.ExitError) {
	if exitErr == nil || exitErr.Err == nil {
		return
	}
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	fmt.Fprintf(w, "%s %v\n", red("Error:"), exitErr.Err)
	if exitErr.Suggestion != "" {
		fmt.Fprintf(w, "  %s\n", exitErr.Suggestion)
	}
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	defer func() { _ = closeLog() }()
	return rootCmd.ExecuteContext(ctx)
}
