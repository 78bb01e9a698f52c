package doctor

import (
	"context"
	"time"

	"github.com/thoreinstein/nvsetup/internal/errors"
)

// Check inspects one aspect of the host or the nvsetup configuration.
// Checks only observe; they never install, move or clone anything.
type Check interface {
	Name() string
	// Category groups results: "system", "tools" or "config".
	Category() string
	Run(ctx context.Context) *CheckResult
}

// Runner runs checks in registration order.
type Runner struct {
	checks []Check
	now    func() time.Time
}

// NewRunner returns a Runner with checks registered in order.
func NewRunner(checks ...Check) *Runner {
	return &Runner{checks: checks, now: time.Now}
}

// AddCheck registers c after the existing checks.
func (r *Runner) AddCheck(c Check) {
	r.checks = append(r.checks, c)
}

// Run executes every check and returns the report. When ctx is cancelled
// part way, the remaining checks are reported as skipped rather than run.
func (r *Runner) Run(ctx context.Context) *Report {
	report := &Report{
		Timestamp: r.now().UTC(),
		Results:   make([]*CheckResult, 0, len(r.checks)),
	}

	for _, check := range r.checks {
		var result *CheckResult
		if ctx.Err() != nil {
			result = &CheckResult{Status: SeverityInfo, Message: "skipped: interrupted"}
		} else if result = check.Run(ctx); result == nil {
			result = &CheckResult{Status: SeverityError, Message: "check produced no result"}
		}
		if result.Name == "" {
			result.Name = check.Name()
		}
		if result.Category == "" {
			result.Category = check.Category()
		}

		report.Results = append(report.Results, result)
		report.Summary.add(result.Status)
	}
	return report
}

// Report is the outcome of one doctor run.
type Report struct {
	Timestamp time.Time      `json:"timestamp"`
	Results   []*CheckResult `json:"results"`
	Summary   Summary        `json:"summary"`
}

// HasErrors returns true if any check failed.
func (r *Report) HasErrors() bool {
	return r.Summary.Errors > 0
}

// HasWarnings returns true if any check warned.
func (r *Report) HasWarnings() bool {
	return r.Summary.Warnings > 0
}

// ExitCode maps the report to the process exit status: 0 clean,
// ExitUser with warnings only, ExitSystem with errors.
func (r *Report) ExitCode() int {
	switch {
	case r.HasErrors():
		return errors.ExitSystem
	case r.HasWarnings():
		return errors.ExitUser
	default:
		return errors.ExitSuccess
	}
}

// Visible returns the results worth printing. Without verbose only
// warnings and errors are shown.
func (r *Report) Visible(verbose bool) []*CheckResult {
	if verbose {
		return r.Results
	}
	var out []*CheckResult
	for _, res := range r.Results {
		if res.Status >= SeverityWarning {
			out = append(out, res)
		}
	}
	return out
}
