package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/nvsetup/internal/doctor"
	"github.com/thoreinstein/nvsetup/internal/errors"
)

var doctorJSON bool

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false,
		"output results as JSON")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose the environment before installing",
	Long: `Run read-only checks against this machine and the nvsetup configuration.

Checks the operating system, package manager, git, Neovim, the target
configuration directory and the repository URL.

Output modes (mutually exclusive):
  (default)   Show errors and warnings
  --verbose   Show all checks including passed ones
  --quiet     No output, exit code only
  --json      Machine-readable JSON output

Exit codes:
  0 - All checks passed (no errors or warnings)
  1 - Warnings present, no errors
  2 - Errors present`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipConfigAnnotation: "true"},
	PreRunE:     validateDoctorFlags,
	RunE:        runDoctor,
}

// validateDoctorFlags ensures output flags are mutually exclusive.
func validateDoctorFlags(_ *cobra.Command, _ []string) error {
	count := 0
	if doctorJSON {
		count++
	}
	if quiet {
		count++
	}
	if verbosity > 0 {
		count++
	}

	if count > 1 {
		return errors.NewUserError(
			errors.New("flags --json, --quiet, and --verbose are mutually exclusive"), "")
	}
	return nil
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	env := doctor.Env{
		Runner:   newRunner(),
		Detector: newDetector(),
	}

	// A broken config file is a finding, not a reason to stop.
	var configErr error
	if configErr = loadConfig(cmd); configErr == nil {
		env.RepoURL = cfg.RepoURL
		env.ConfigDir, env.ConfigDirErr = editorConfigDir()
	}

	runner := doctor.NewRunner()
	for _, c := range doctor.DefaultChecks(env) {
		if configErr != nil && c.Category() == "config" {
			continue
		}
		runner.AddCheck(c)
	}
	if configErr != nil {
		runner.AddCheck(configFileCheck{err: configErr})
	}

	report := runner.Run(cmd.Context())

	if err := outputDoctorReport(cmd.OutOrStdout(), report); err != nil {
		return err
	}

	// The report is the output; this carries only the exit code, and
	// PrintError skips an ExitError without an Err.
	if code := report.ExitCode(); code != errors.ExitSuccess {
		return errors.NewExitError(nil, code)
	}
	return nil
}

func outputDoctorReport(w io.Writer, report *doctor.Report) error {
	if quiet {
		return nil
	}
	if doctorJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(report), "encoding JSON")
	}
	return outputDoctorText(w, report)
}

func outputDoctorText(w io.Writer, report *doctor.Report) error {
	visible := report.Visible(verbosity > 0)
	for _, result := range visible {
		fmt.Fprintf(w, "%s [%s] %s: %s\n", statusIcon(result.Status), result.Category, result.Name, result.Message)
		if result.FixHint != "" && result.Status != doctor.SeverityPass {
			fmt.Fprintf(w, "  hint: %s\n", result.FixHint)
		}
	}
	if len(visible) > 0 {
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Summary: %d passed, %d info, %d warnings, %d errors\n",
		report.Summary.Passed, report.Summary.Info, report.Summary.Warnings, report.Summary.Errors)
	return nil
}

func statusIcon(s doctor.Severity) string {
	switch s {
	case doctor.SeverityPass:
		return color.GreenString("✓")
	case doctor.SeverityInfo:
		return color.CyanString("ℹ")
	case doctor.SeverityWarning:
		return color.YellowString("⚠")
	case doctor.SeverityError:
		return color.RedString("✗")
	default:
		return "?"
	}
}

// configFileCheck reports a config file that failed to load.
type configFileCheck struct {
	err error
}

func (c configFileCheck) Name() string     { return "config-file" }
func (c configFileCheck) Category() string { return "config" }

func (c configFileCheck) Run(_ context.Context) *doctor.CheckResult {
	return &doctor.CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   doctor.SeverityError,
		Message:  c.err.Error(),
		FixHint:  "Fix the file or regenerate it with: nvsetup config init --force",
	}
}
