// Package config provides configuration management for the nvsetup CLI.
//
// This package handles loading and validating nvsetup's own configuration
// file. It is distinct from the Neovim configuration that nvsetup clones.
//
// # Configuration File
//
// The default configuration file location is ~/.config/nvsetup/config.yaml
// (resolved with adrg/xdg). The configuration file uses YAML format:
//
//	repo_url: https://github.com/nvim-lua/kickstart.nvim.git
//	clone_depth: 0          # 0 clones full history
//	config_dir: ""          # empty derives from XDG_CONFIG_HOME or HOME
//	sudo: auto              # auto, always or never
//	extra_packages:
//	  - tmux
//
// Every key can be overridden with an NVSETUP_ environment variable, for
// example NVSETUP_REPO_URL.
//
// # Loading Configuration
//
// Call [Init] once, then [Load]:
//
//	config.Init()
//	cfg, err := config.Load("")
//
// An empty path searches the default location and falls back to [Default]
// when no file exists. An explicit path must exist.
//
// # Validation
//
// [Load] runs [Validate] and marks failures with errors.ErrInvalidConfig.
// [Validate] can also be called directly and returns one error per bad field.
package config
