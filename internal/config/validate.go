package config

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/thoreinstein/nvsetup/internal/errors"
	"github.com/thoreinstein/nvsetup/internal/git"
)

// Validation errors for configuration fields.
var (
	// ErrNegativeDepth indicates clone_depth is below zero.
	ErrNegativeDepth = errors.New("clone_depth must be >= 0")

	// ErrInvalidSudoMode indicates an unrecognized sudo setting.
	ErrInvalidSudoMode = errors.New("sudo must be one of auto, always, never")

	// ErrInvalidPackage indicates a package name a package manager would
	// misread, such as one starting with "-".
	ErrInvalidPackage = errors.New("invalid package name")

	// ErrInvalidPath indicates a path value is malformed.
	ErrInvalidPath = errors.New("invalid path")
)

// packageName accepts the characters apt, dnf, pacman and brew allow in
// package names, including tap-qualified brew names.
var packageName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9+._@/-]*$`)

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if err := git.ValidateURL(cfg.RepoURL); err != nil {
		errs = append(errs, &FieldError{Field: "repo_url", Value: cfg.RepoURL, Err: err})
	}

	if cfg.CloneDepth < 0 {
		errs = append(errs, ErrNegativeDepth)
	}

	if !cfg.Sudo.Valid() {
		errs = append(errs, &FieldError{Field: "sudo", Value: string(cfg.Sudo), Err: ErrInvalidSudoMode})
	}

	if cfg.ConfigDir != "" {
		if err := validatePath(cfg.ConfigDir); err != nil {
			errs = append(errs, &FieldError{Field: "config_dir", Value: cfg.ConfigDir, Err: err})
		}
	}

	for _, pkg := range cfg.ExtraPackages {
		if !packageName.MatchString(pkg) {
			errs = append(errs, &FieldError{Field: "extra_packages", Value: pkg, Err: ErrInvalidPackage})
		}
	}

	return errs
}

// validatePath checks if a path string is well-formed.
// It does not check if the path exists, only that it's syntactically valid.
func validatePath(path string) error {
	// Empty paths are valid (they mean "use default")
	if path == "" {
		return nil
	}

	// Check for null bytes which are never valid in paths
	if strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}

	cleaned := filepath.Clean(path)
	if cleaned == "" || cleaned == "." {
		return ErrInvalidPath
	}

	return nil
}

// FieldError represents an error for a specific configuration field.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + e.Value
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
