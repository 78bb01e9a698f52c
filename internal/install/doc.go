// Package install runs the nvsetup pipeline: detect the host, install build
// dependencies and Neovim through the native package manager, then clone a
// configuration repository into the editor's config directory.
//
// All side effects go through injected collaborators (a runner.Runner for
// commands, a platform.Detector, a prompt.Confirmer) so the pipeline can be
// tested without touching the host. Phases run in order and the first
// failure stops the run:
//
//	detect OS -> detect package manager -> install dependencies
//	  -> install neovim (skipped when nvim is on PATH)
//	  -> back up existing config (with consent) -> git clone
//
// Errors returned by [Installer.Run] are *errors.ExitError values: host and
// operator problems exit 1, failed commands exit 2.
package install
