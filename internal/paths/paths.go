package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/thoreinstein/nvsetup/internal/errors"
)

// AppName names nvsetup's own directories and config file.
const AppName = "nvsetup"

// EditorDirName is the directory Neovim reads under the config home.
const EditorDirName = "nvim"

// Sentinel errors for path resolution.
var (
	// ErrHomeDirNotFound indicates HOME is unset and XDG_CONFIG_HOME does not
	// provide an alternative.
	ErrHomeDirNotFound = errors.New("home directory not found")

	// ErrInvalidPath indicates the provided path is malformed or invalid.
	ErrInvalidPath = errors.New("invalid path")
)

// DefaultDirPerm is the default permission for newly created directories (private).
const DefaultDirPerm = 0o700

// LookupEnv matches os.LookupEnv so tests can supply a fixed environment.
type LookupEnv func(key string) (string, bool)

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm (0700) is used.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// EditorConfigDir returns where Neovim looks for user configuration:
// $XDG_CONFIG_HOME/nvim when XDG_CONFIG_HOME is set and non-empty, otherwise
// $HOME/.config/nvim.
//
// adrg/xdg is not used here because on macOS it resolves to
// ~/Library/Application Support, which Neovim does not read.
func EditorConfigDir(lookup LookupEnv) (string, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if base, ok := lookup("XDG_CONFIG_HOME"); ok && base != "" {
		return filepath.Join(base, EditorDirName), nil
	}
	home, ok := lookup("HOME")
	if !ok || home == "" {
		return "", errors.WithHint(ErrHomeDirNotFound, "Set HOME or XDG_CONFIG_HOME")
	}
	return filepath.Join(home, ".config", EditorDirName), nil
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
func ConfigHome() string {
	return xdg.ConfigHome
}

// AppConfigDir returns nvsetup's own configuration directory.
// Returns: <ConfigHome>/nvsetup/
func AppConfigDir() string {
	return filepath.Join(ConfigHome(), AppName)
}

// AppConfigFile returns the default nvsetup configuration file path.
func AppConfigFile() string {
	return filepath.Join(AppConfigDir(), "config.yaml")
}

// Exists reports whether path exists. Errors other than "not exist" are
// returned so callers don't mistake a permission problem for absence.
func Exists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, errors.Wrapf(err, "checking %s", path)
}
