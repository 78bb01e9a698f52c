package doctor

import (
	"context"
	"os"

	"github.com/thoreinstein/nvsetup/internal/backup"
	"github.com/thoreinstein/nvsetup/internal/errors"
	"github.com/thoreinstein/nvsetup/internal/git"
	"github.com/thoreinstein/nvsetup/internal/pkgmgr"
	"github.com/thoreinstein/nvsetup/internal/platform"
	"github.com/thoreinstein/nvsetup/internal/runner"
)

// Env is what the checks inspect.
type Env struct {
	Runner   runner.Runner
	Detector platform.Detector

	// ConfigDir is the resolved editor configuration directory. When it
	// could not be resolved, ConfigDirErr explains why.
	ConfigDir    string
	ConfigDirErr error

	RepoURL string
}

// DefaultChecks returns the standard checks in display order.
func DefaultChecks(env Env) []Check {
	return []Check{
		NewOSCheck(env.Detector),
		NewPackageManagerCheck(env.Detector, env.Runner),
		NewToolCheck(env.Runner, "git", "git", SeverityWarning,
			"git is installed with the dependencies; cloning needs it"),
		NewToolCheck(env.Runner, "editor", "nvim", SeverityInfo,
			"Neovim will be installed by nvsetup"),
		NewConfigDirCheck(env.ConfigDir, env.ConfigDirErr),
		NewRepoURLCheck(env.RepoURL),
	}
}

// OSCheck verifies the host OS is Linux or macOS.
type OSCheck struct {
	detector platform.Detector
}

var _ Check = (*OSCheck)(nil)

// NewOSCheck creates a new OS check.
func NewOSCheck(d platform.Detector) *OSCheck {
	return &OSCheck{detector: d}
}

// Name returns the unique identifier for this check.
func (c *OSCheck) Name() string { return "os" }

// Category returns the grouping for this check.
func (c *OSCheck) Category() string { return "system" }

// Run executes the OS check.
func (c *OSCheck) Run(ctx context.Context) *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	info, err := c.detector.Detect(ctx)
	if err != nil {
		result.Status = SeverityError
		result.Message = "cannot detect platform: " + err.Error()
		return result
	}

	result.Details = map[string]any{"os": info.OS, "arch": info.Arch}
	if info.Distro != "" {
		result.Details["distro"] = info.Distro
		result.Details["version"] = info.Version
	}

	if err := platform.CheckSupported(info); err != nil {
		result.Status = SeverityError
		result.Message = err.Error()
		result.FixHint = errors.GetHint(err)
		return result
	}

	result.Status = SeverityPass
	result.Message = info.String()
	return result
}

// PackageManagerCheck verifies a supported package manager is on PATH.
type PackageManagerCheck struct {
	detector platform.Detector
	runner   runner.Runner
}

var _ Check = (*PackageManagerCheck)(nil)

// NewPackageManagerCheck creates a new package manager check.
func NewPackageManagerCheck(d platform.Detector, r runner.Runner) *PackageManagerCheck {
	return &PackageManagerCheck{detector: d, runner: r}
}

// Name returns the unique identifier for this check.
func (c *PackageManagerCheck) Name() string { return "package-manager" }

// Category returns the grouping for this check.
func (c *PackageManagerCheck) Category() string { return "system" }

// Run executes the package manager check.
func (c *PackageManagerCheck) Run(ctx context.Context) *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	info, err := c.detector.Detect(ctx)
	if err != nil || platform.CheckSupported(info) != nil {
		result.Status = SeverityInfo
		result.Message = "skipped: unsupported or unknown platform"
		return result
	}

	mgr, err := pkgmgr.Detect(c.runner, info)
	if err != nil {
		result.Status = SeverityError
		result.Message = err.Error()
		result.FixHint = errors.GetHint(err)
		return result
	}

	result.Status = SeverityPass
	result.Message = string(mgr)
	result.Details = map[string]any{
		"executable": mgr.Executable(),
		"packages":   pkgmgr.Dependencies(mgr),
	}
	return result
}

// ToolCheck reports whether an executable is on PATH. A missing tool is
// reported with the configured severity.
type ToolCheck struct {
	runner     runner.Runner
	name       string
	executable string
	missing    Severity
	hint       string
}

var _ Check = (*ToolCheck)(nil)

// NewToolCheck creates a check named name for executable.
func NewToolCheck(r runner.Runner, name, executable string, missing Severity, hint string) *ToolCheck {
	return &ToolCheck{runner: r, name: name, executable: executable, missing: missing, hint: hint}
}

// Name returns the unique identifier for this check.
func (c *ToolCheck) Name() string { return c.name }

// Category returns the grouping for this check.
func (c *ToolCheck) Category() string { return "tools" }

// Run executes the tool check.
func (c *ToolCheck) Run(context.Context) *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	path, err := c.runner.LookPath(c.executable)
	if err != nil {
		result.Status = c.missing
		result.Message = c.executable + " not found on PATH"
		result.FixHint = c.hint
		return result
	}

	result.Status = SeverityPass
	result.Message = path
	return result
}

// ConfigDirCheck inspects the editor configuration directory.
type ConfigDirCheck struct {
	dir        string
	resolveErr error
}

var _ Check = (*ConfigDirCheck)(nil)

// NewConfigDirCheck creates a new configuration directory check.
func NewConfigDirCheck(dir string, resolveErr error) *ConfigDirCheck {
	return &ConfigDirCheck{dir: dir, resolveErr: resolveErr}
}

// Name returns the unique identifier for this check.
func (c *ConfigDirCheck) Name() string { return "config-dir" }

// Category returns the grouping for this check.
func (c *ConfigDirCheck) Category() string { return "config" }

// Run executes the configuration directory check.
func (c *ConfigDirCheck) Run(context.Context) *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	if c.resolveErr != nil {
		result.Status = SeverityError
		result.Message = c.resolveErr.Error()
		result.FixHint = errors.GetHint(c.resolveErr)
		return result
	}

	result.Details = map[string]any{"path": c.dir}
	if entries, err := backup.List(c.dir); err == nil {
		result.Details["backups"] = len(entries)
	}

	info, err := os.Stat(c.dir)
	switch {
	case os.IsNotExist(err):
		result.Status = SeverityPass
		result.Message = c.dir + " does not exist yet"
	case err != nil:
		result.Status = SeverityError
		result.Message = "cannot stat " + c.dir + ": " + err.Error()
	case !info.IsDir():
		result.Status = SeverityWarning
		result.Message = c.dir + " exists but is not a directory"
		result.FixHint = "Move it aside before running nvsetup"
	default:
		result.Status = SeverityInfo
		result.Message = c.dir + " exists; nvsetup will ask to back it up"
		if repo, err := git.IsRepository(c.dir); err == nil {
			result.Details["git_checkout"] = repo
		}
	}
	return result
}

// RepoURLCheck validates the configured repository URL.
type RepoURLCheck struct {
	url string
}

var _ Check = (*RepoURLCheck)(nil)

// NewRepoURLCheck creates a new repository URL check.
func NewRepoURLCheck(url string) *RepoURLCheck {
	return &RepoURLCheck{url: url}
}

// Name returns the unique identifier for this check.
func (c *RepoURLCheck) Name() string { return "repo-url" }

// Category returns the grouping for this check.
func (c *RepoURLCheck) Category() string { return "config" }

// Run executes the repository URL check.
func (c *RepoURLCheck) Run(context.Context) *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	if err := git.ValidateURL(c.url); err != nil {
		result.Status = SeverityError
		result.Message = err.Error()
		result.FixHint = "Set repo_url in the config file or NVSETUP_REPO_URL"
		return result
	}

	result.Status = SeverityPass
	result.Message = c.url
	return result
}
