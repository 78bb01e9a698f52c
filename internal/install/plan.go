package install

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/nvsetup/internal/backup"
	"github.com/thoreinstein/nvsetup/internal/errors"
	"github.com/thoreinstein/nvsetup/internal/git"
	"github.com/thoreinstein/nvsetup/internal/paths"
	"github.com/thoreinstein/nvsetup/internal/pkgmgr"
	"github.com/thoreinstein/nvsetup/internal/platform"
)

// Output formats accepted by Plan.Render.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// ErrUnknownFormat is returned by Render for an unsupported format.
var ErrUnknownFormat = errors.New("unknown output format")

// Step is one action the installer would take.
type Step struct {
	Phase   string `json:"phase" yaml:"phase" toml:"phase"`
	Command string `json:"command,omitempty" yaml:"command,omitempty" toml:"command,omitempty"`
	Note    string `json:"note,omitempty" yaml:"note,omitempty" toml:"note,omitempty"`
}

// Plan describes what Run would do on this host without doing it.
type Plan struct {
	Platform        platform.Info  `json:"platform" yaml:"platform" toml:"platform"`
	Manager         pkgmgr.Manager `json:"manager" yaml:"manager" toml:"manager"`
	Packages        []string       `json:"packages" yaml:"packages" toml:"packages"`
	EditorInstalled bool           `json:"editor_installed" yaml:"editor_installed" toml:"editor_installed"`
	RepoURL         string         `json:"repo_url" yaml:"repo_url" toml:"repo_url"`
	ConfigDir       string         `json:"config_dir" yaml:"config_dir" toml:"config_dir"`
	ConfigDirExists bool           `json:"config_dir_exists" yaml:"config_dir_exists" toml:"config_dir_exists"`
	BackupPath      string         `json:"backup_path,omitempty" yaml:"backup_path,omitempty" toml:"backup_path,omitempty"`
	Steps           []Step         `json:"steps" yaml:"steps" toml:"steps"`
}

// Plan runs detection only and lists the commands Run would execute. It
// never runs a command and never prompts.
func (i *Installer) Plan(ctx context.Context) (*Plan, error) {
	info, err := i.detector.Detect(ctx)
	if err != nil {
		return nil, phaseError(PhaseDetectOS, err)
	}
	if err := platform.CheckSupported(info); err != nil {
		return nil, phaseError(PhaseDetectOS, err)
	}

	mgr, err := pkgmgr.Detect(i.runner, info)
	if err != nil {
		return nil, phaseError(PhaseDetectManager, err)
	}

	p := &Plan{
		Platform:  *info,
		Manager:   mgr,
		Packages:  pkgmgr.Dependencies(mgr, i.opts.ExtraPackages...),
		RepoURL:   i.opts.RepoURL,
		ConfigDir: i.opts.ConfigDir,
	}

	p.Steps = append(p.Steps, Step{
		Phase:   PhaseInstallDeps,
		Command: i.elevate(ctx, mgr, mgr.InstallCommand(p.Packages...)).String(),
	})

	p.EditorInstalled = i.hasEditor()
	if p.EditorInstalled {
		p.Steps = append(p.Steps, Step{Phase: PhaseEnsureEditor, Note: "nvim already on PATH"})
	} else {
		for _, cmd := range mgr.EditorCommands() {
			p.Steps = append(p.Steps, Step{Phase: PhaseEnsureEditor, Command: i.elevate(ctx, mgr, cmd).String()})
		}
	}

	exists, err := paths.Exists(p.ConfigDir)
	if err != nil {
		return nil, phaseError(PhaseDeployConfig, err)
	}
	p.ConfigDirExists = exists
	if exists {
		p.BackupPath = backup.PathFor(p.ConfigDir, i.now())
		p.Steps = append(p.Steps, Step{
			Phase: PhaseDeployConfig,
			Note:  fmt.Sprintf("ask to move %s to %s", p.ConfigDir, p.BackupPath),
		})
	}
	p.Steps = append(p.Steps, Step{
		Phase:   PhaseDeployConfig,
		Command: git.CloneCommand(p.RepoURL, p.ConfigDir, i.opts.CloneDepth).String(),
	})

	return p, nil
}

func (i *Installer) hasEditor() bool {
	_, err := i.runner.LookPath(editorExecutable)
	return err == nil
}

// Render writes the plan to w in format.
func (p *Plan) Render(w io.Writer, format string) error {
	switch format {
	case FormatText, "":
		return p.renderText(w)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(p); err != nil {
			return errors.Wrap(err, "encoding plan as YAML")
		}
		return enc.Close()
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(p); err != nil {
			return errors.Wrap(err, "encoding plan as TOML")
		}
		return nil
	default:
		return errors.Wrapf(ErrUnknownFormat, "%q (want text, json, yaml or toml)", format)
	}
}

func (p *Plan) renderText(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Platform:        %s\n", &p.Platform)
	fmt.Fprintf(&b, "Package manager: %s\n", p.Manager)
	fmt.Fprintf(&b, "Packages:        %s\n", strings.Join(p.Packages, " "))
	fmt.Fprintf(&b, "Repository:      %s\n", p.RepoURL)
	fmt.Fprintf(&b, "Config dir:      %s", p.ConfigDir)
	if p.ConfigDirExists {
		b.WriteString(" (exists)")
	}
	b.WriteString("\n\nSteps:\n")
	for n, s := range p.Steps {
		line := s.Command
		if line == "" {
			line = "# " + s.Note
		}
		fmt.Fprintf(&b, "  %d. [%s] %s\n", n+1, s.Phase, line)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
