// Package editor launches the user's text editor on nvsetup's own files.
package editor

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/thoreinstein/nvsetup/internal/errors"
	"github.com/thoreinstein/nvsetup/internal/paths"
	"github.com/thoreinstein/nvsetup/internal/runner"
)

// fallbacks are tried in order when neither $EDITOR nor $VISUAL is set.
// nvim comes first since installing it is the point of nvsetup.
var fallbacks = []string{"nvim", "nano", "vi"}

// Launcher opens files in an interactive editor attached to the terminal.
type Launcher struct {
	lookup paths.LookupEnv
	runner runner.Runner

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// New returns a Launcher that reads $EDITOR and $VISUAL through lookup and
// looks up fallbacks through r.
func New(lookup paths.LookupEnv, r runner.Runner) *Launcher {
	return &Launcher{lookup: lookup, runner: r}
}

// Detect returns the editor command line: $EDITOR, then $VISUAL, then the
// first of nvim, nano and vi found on PATH. Values such as "code --wait"
// are split into fields.
func (l *Launcher) Detect() []string {
	for _, key := range []string{"EDITOR", "VISUAL"} {
		if v, ok := l.lookup(key); ok {
			if fields := strings.Fields(v); len(fields) > 0 {
				return fields
			}
		}
	}
	for _, name := range fallbacks {
		if runner.Has(l.runner, name) {
			return []string{name}
		}
	}
	// vi is required by POSIX
	return []string{"vi"}
}

// Command builds the editor invocation for path without starting it.
func (l *Launcher) Command(ctx context.Context, path string) *exec.Cmd {
	argv := append(l.Detect(), path)
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...) //nolint:gosec // the user's own $EDITOR
	cmd.Stdin = l.Stdin
	cmd.Stdout = l.Stdout
	cmd.Stderr = l.Stderr
	return cmd
}

// Open runs the editor on path and waits for it to exit.
func (l *Launcher) Open(ctx context.Context, path string) error {
	cmd := l.Command(ctx, path)
	if l.Stdout != nil {
		fmt.Fprintf(l.Stdout, "Location: %s\n", path)
	}
	if err := cmd.Run(); err != nil {
		return errors.WithHint(
			errors.Wrapf(err, "running editor %s", cmd.Args[0]),
			"Set EDITOR to the editor you want to use")
	}
	return nil
}
