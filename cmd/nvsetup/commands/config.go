package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/nvsetup/internal/config"
	"github.com/thoreinstein/nvsetup/internal/console"
	"github.com/thoreinstein/nvsetup/internal/editor"
	"github.com/thoreinstein/nvsetup/internal/errors"
	"github.com/thoreinstein/nvsetup/internal/paths"
	"github.com/thoreinstein/nvsetup/pkg/fileutil"
)

var configInitForce bool

const configHeader = `nvsetup configuration.

Every key can be overridden with an NVSETUP_ environment variable,
e.g. NVSETUP_REPO_URL. clone_depth 0 clones full history; sudo is
auto, always or never; an empty config_dir means $XDG_CONFIG_HOME/nvim
or ~/.config/nvim.`

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false,
		"overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configEditCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage nvsetup configuration",
	Long: `Manage nvsetup configuration stored in ` + paths.AppConfigFile() + `.

Without a subcommand, shows the effective configuration.`,
	Example: `  # Write the default config file
  nvsetup config init

  # Show effective configuration
  nvsetup config show

See Also: nvsetup doctor`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	Long: `Write a configuration file with every key at its default value.

The file is written atomically. An existing file is kept unless --force is
given.`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipConfigAnnotation: "true"},
	RunE:        runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	Long: `Print the configuration nvsetup would use as YAML, after applying the
config file and NVSETUP_ environment overrides to the defaults.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the configuration file in an editor",
	Long: `Open the nvsetup configuration file in $EDITOR, $VISUAL or the first of
nvim, nano and vi found on PATH. The default file is written first when it
does not exist yet.`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipConfigAnnotation: "true"},
	RunE:        runConfigEdit,
}

// openEditor runs the editor on path, replaced in tests.
var openEditor = func(cmd *cobra.Command, path string) error {
	l := editor.New(lookupEnv, newRunner())
	l.Stdin = stdin
	l.Stdout = cmd.OutOrStdout()
	l.Stderr = cmd.ErrOrStderr()
	return l.Open(cmd.Context(), path)
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	path := configFile
	if path == "" {
		path = paths.AppConfigFile()
	}

	exists, err := paths.Exists(path)
	if err != nil {
		return errors.Wrapf(err, "checking %s", path)
	}
	if exists && !configInitForce {
		return errors.NewUserError(
			errors.Newf("config file already exists: %s", path),
			"Use --force to overwrite it")
	}

	if err := paths.EnsureDir(filepath.Dir(path), 0); err != nil {
		return errors.Wrap(err, "creating config directory")
	}
	if err := fileutil.AtomicWriteYAML(path, config.Default(), fileutil.WithHeader(configHeader)); err != nil {
		return errors.Wrap(err, "writing config file")
	}

	console.New(cmd.OutOrStdout()).Success("Wrote %s", path)
	return nil
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}

	w := cmd.OutOrStdout()
	if used := config.Used(); used != "" {
		fmt.Fprintf(w, "# source: %s\n", used)
	} else {
		fmt.Fprintln(w, "# source: defaults")
	}
	_, err = w.Write(data)
	return err
}

func runConfigEdit(cmd *cobra.Command, _ []string) error {
	path := configFile
	if path == "" {
		path = paths.AppConfigFile()
	}

	exists, err := paths.Exists(path)
	if err != nil {
		return errors.Wrapf(err, "checking %s", path)
	}
	if !exists {
		if err := runConfigInit(cmd, nil); err != nil {
			return err
		}
	}
	if err := openEditor(cmd, path); err != nil {
		return errors.NewUserError(err, errors.GetHint(err))
	}

	// Report a broken edit right away rather than on the next install.
	config.Init()
	if _, err := config.Load(path); err != nil {
		return errors.NewConfigError(err)
	}
	return nil
}
