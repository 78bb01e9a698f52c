// Package config provides configuration management for nvsetup using Viper.
package config

import (
	"os"

	"github.com/spf13/viper"

	"github.com/thoreinstein/nvsetup/internal/errors"
	"github.com/thoreinstein/nvsetup/internal/paths"
)

// EnvPrefix prefixes environment overrides, e.g. NVSETUP_REPO_URL.
const EnvPrefix = "NVSETUP"

// DefaultRepoURL is the starter configuration cloned when none is configured.
const DefaultRepoURL = "https://github.com/nvim-lua/kickstart.nvim.git"

// SudoMode controls privilege elevation for Linux package installs.
type SudoMode string

const (
	// SudoAuto elevates only when the effective uid is not root.
	SudoAuto SudoMode = "auto"
	// SudoAlways always prefixes install commands with sudo.
	SudoAlways SudoMode = "always"
	// SudoNever runs install commands as the current user.
	SudoNever SudoMode = "never"
)

// Valid reports whether m is a recognized mode.
func (m SudoMode) Valid() bool {
	switch m {
	case SudoAuto, SudoAlways, SudoNever:
		return true
	}
	return false
}

// Config represents the top-level configuration structure.
type Config struct {
	RepoURL       string   `mapstructure:"repo_url" yaml:"repo_url" json:"repo_url" toml:"repo_url"`
	CloneDepth    int      `mapstructure:"clone_depth" yaml:"clone_depth" json:"clone_depth" toml:"clone_depth"`
	ConfigDir     string   `mapstructure:"config_dir" yaml:"config_dir" json:"config_dir" toml:"config_dir"`
	Sudo          SudoMode `mapstructure:"sudo" yaml:"sudo" json:"sudo" toml:"sudo"`
	ExtraPackages []string `mapstructure:"extra_packages" yaml:"extra_packages" json:"extra_packages" toml:"extra_packages"`
}

// Default returns the configuration used when no file or override is present.
func Default() *Config {
	return &Config{
		RepoURL:       DefaultRepoURL,
		CloneDepth:    0,
		ConfigDir:     "",
		Sudo:          SudoAuto,
		ExtraPackages: []string{},
	}
}

// Init initializes Viper with default configuration, discarding any state
// from a previous Init. Call this once at application startup before
// accessing config values.
func Init() {
	initIn(paths.AppConfigDir())
}

func initIn(searchDir string) {
	viper.Reset()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(searchDir)

	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()

	d := Default()
	viper.SetDefault("repo_url", d.RepoURL)
	viper.SetDefault("clone_depth", d.CloneDepth)
	viper.SetDefault("config_dir", d.ConfigDir)
	viper.SetDefault("sudo", string(d.Sudo))
	viper.SetDefault("extra_packages", d.ExtraPackages)
}

// Load reads the configuration file and validates the result.
// If path is provided, it reads from that specific file and a missing file is
// an error. If path is empty, the default location is searched and a missing
// file falls back to defaults.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && path == "":
			// Implicit load: defaults are fine.
		case os.IsNotExist(err) || errors.As(err, &notFound):
			return nil, errors.WithHint(
				errors.Wrapf(errors.ErrNotFound, "config file %s", path),
				"Run: nvsetup config init",
			)
		default:
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, errors.Wrap(errors.Mark(errors.Join(errs...), errors.ErrInvalidConfig), "validating config")
	}

	return &cfg, nil
}

// Used returns the config file viper read, or "" when defaults are in effect.
func Used() string {
	return viper.ConfigFileUsed()
}
