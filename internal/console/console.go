// Package console prints operator-facing progress messages.
//
// Messages are short colored lines on stdout: steps, successes, warnings and
// errors. Diagnostics belong in the slog logger instead.
package console

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Printer writes colored status lines.
type Printer struct {
	out io.Writer

	step    func(a ...any) string
	success func(a ...any) string
	warn    func(a ...any) string
	fail    func(a ...any) string
	faint   func(a ...any) string
}

// New returns a Printer writing to out. Colors follow fatih/color's global
// detection (disabled for non-terminals and when NO_COLOR is set).
func New(out io.Writer) *Printer {
	if out == nil {
		out = os.Stdout
	}
	return &Printer{
		out:     out,
		step:    color.New(color.FgBlue, color.Bold).SprintFunc(),
		success: color.New(color.FgGreen).SprintFunc(),
		warn:    color.New(color.FgYellow).SprintFunc(),
		fail:    color.New(color.FgRed, color.Bold).SprintFunc(),
		faint:   color.New(color.FgHiBlack).SprintFunc(),
	}
}

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer {
	return p.out
}

// Step announces the start of a phase.
func (p *Printer) Step(format string, args ...any) {
	fmt.Fprintf(p.out, "%s %s\n", p.step("==>"), fmt.Sprintf(format, args...))
}

// Success reports a completed action.
func (p *Printer) Success(format string, args ...any) {
	fmt.Fprintf(p.out, "%s %s\n", p.success("✓"), fmt.Sprintf(format, args...))
}

// Warn reports something the operator should look at.
func (p *Printer) Warn(format string, args ...any) {
	fmt.Fprintf(p.out, "%s %s\n", p.warn("!"), fmt.Sprintf(format, args...))
}

// Error reports a fatal condition.
func (p *Printer) Error(format string, args ...any) {
	fmt.Fprintf(p.out, "%s %s\n", p.fail("Error:"), fmt.Sprintf(format, args...))
}

// Detail prints an indented, dimmed line under the previous message.
func (p *Printer) Detail(format string, args ...any) {
	fmt.Fprintf(p.out, "    %s\n", p.faint(fmt.Sprintf(format, args...)))
}

// Println prints a plain line.
func (p *Printer) Println(a ...any) {
	fmt.Fprintln(p.out, a...)
}
