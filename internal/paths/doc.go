// Package paths resolves the directories nvsetup reads and writes.
//
// Two different roots are involved:
//
//   - The editor configuration directory, which follows Neovim's own lookup:
//     $XDG_CONFIG_HOME/nvim, falling back to $HOME/.config/nvim on every OS.
//   - nvsetup's own configuration, which uses github.com/adrg/xdg and so
//     lands in ~/Library/Application Support/nvsetup on macOS.
//
// Functions that read the environment take a [LookupEnv] so tests can pass
// a fixed map instead of mutating the process environment.
package paths
