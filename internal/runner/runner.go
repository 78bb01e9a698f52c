// Package runner executes external programs for the installer.
//
// Package managers and git are reached only through the [Runner] interface,
// so the installer can be exercised with a mock that records commands
// instead of touching the host.
package runner

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/thoreinstein/nvsetup/internal/errors"
	"github.com/thoreinstein/nvsetup/internal/logging"
)

// Sentinel errors.
var (
	// ErrCommandFailed is matched by every non-zero exit or failed start.
	ErrCommandFailed = errors.New("command failed")

	// ErrNotOnPath is returned by LookPath when the executable is missing.
	ErrNotOnPath = errors.New("executable not found in PATH")
)

// ErrExitStatus describes a non-zero exit without an *exec.ExitError.
func ErrExitStatus(code int) error {
	return errors.Newf("exit status %d", code)
}

// outputTail is how much combined output is kept in error messages.
const outputTail = 2048

// Command is a program invocation.
type Command struct {
	Name string
	Args []string
}

// Cmd is shorthand for Command{Name: name, Args: args}.
func Cmd(name string, args ...string) Command {
	return Command{Name: name, Args: args}
}

// String renders the command line as an operator would type it.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, c.Name)
	for _, a := range c.Args {
		if a == "" || strings.ContainsAny(a, " \t'\"") {
			a = "'" + strings.ReplaceAll(a, "'", `'\''`) + "'"
		}
		parts = append(parts, a)
	}
	return strings.Join(parts, " ")
}

// WithPrefix returns the command run through prefix, e.g. sudo.
func (c Command) WithPrefix(prefix string, prefixArgs ...string) Command {
	args := make([]string, 0, len(prefixArgs)+1+len(c.Args))
	args = append(args, prefixArgs...)
	args = append(args, c.Name)
	args = append(args, c.Args...)
	return Command{Name: prefix, Args: args}
}

// Result holds what a finished command produced.
type Result struct {
	ExitCode int
	Output   []byte
}

// Runner checks for executables and runs commands.
type Runner interface {
	// LookPath returns the full path of an executable on PATH.
	LookPath(name string) (string, error)

	// Run executes cmd, blocking until it exits. A non-zero exit returns a
	// Result together with an error wrapping ErrCommandFailed.
	Run(ctx context.Context, cmd Command) (*Result, error)
}

// Has reports whether name is on PATH according to r.
func Has(r Runner, name string) bool {
	_, err := r.LookPath(name)
	return err == nil
}

// ExecRunner runs real processes. Output is streamed to Stdout/Stderr while
// also being captured for error reporting.
type ExecRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Env    []string
}

// NewExecRunner returns an ExecRunner attached to the process's stdio so
// sudo and git credential prompts reach the operator.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// LookPath wraps exec.LookPath.
func (r *ExecRunner) LookPath(name string) (string, error) {
	p, err := exec.LookPath(name)
	if err != nil {
		return "", errors.Wrapf(ErrNotOnPath, "%s", name)
	}
	return p, nil
}

// Run executes cmd and waits for it. Cancelling ctx kills the process.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) (*Result, error) {
	logger := logging.FromContext(ctx)
	logger.Debug("running command", "cmd", cmd.String())

	var combined bytes.Buffer
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Stdin = r.Stdin
	c.Stdout = tee(r.Stdout, &combined)
	c.Stderr = tee(r.Stderr, &combined)
	if len(r.Env) > 0 {
		c.Env = append(os.Environ(), r.Env...)
	}

	err := c.Run()
	res := &Result{Output: combined.Bytes()}
	if c.ProcessState != nil {
		res.ExitCode = c.ProcessState.ExitCode()
	}
	logger.Log(ctx, logging.LevelTrace, "command finished",
		"cmd", cmd.Name, "exit", res.ExitCode, "output", string(tail(res.Output)))

	if err != nil {
		return res, Failure(cmd, res, err)
	}
	return res, nil
}

// CommandError reports a command that could not start or exited non-zero.
type CommandError struct {
	Cmd      Command
	ExitCode int
	// Output is the tail of the combined stdout and stderr.
	Output []byte
	Err    error
}

// Failure builds the error returned for a failed command.
func Failure(cmd Command, res *Result, cause error) *CommandError {
	e := &CommandError{Cmd: cmd, Err: cause, ExitCode: -1}
	if res != nil {
		e.ExitCode = res.ExitCode
		e.Output = tail(res.Output)
	}
	return e
}

// Error renders the command line, the cause and the output tail.
func (e *CommandError) Error() string {
	msg := e.Cmd.String() + ": " + e.Err.Error()
	if out := strings.TrimSpace(string(e.Output)); out != "" {
		msg += "\n" + out
	}
	return msg
}

// Unwrap returns the underlying exec error.
func (e *CommandError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrCommandFailed) true for every CommandError.
func (e *CommandError) Is(target error) bool {
	return target == ErrCommandFailed
}

func tee(w io.Writer, buf *bytes.Buffer) io.Writer {
	if w == nil {
		return buf
	}
	return io.MultiWriter(w, buf)
}

func tail(b []byte) []byte {
	if len(b) <= outputTail {
		return b
	}
	return b[len(b)-outputTail:]
}

// Ensure ExecRunner implements Runner.
var _ Runner = (*ExecRunner)(nil)
