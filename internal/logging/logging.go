package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/thoreinstein/nvsetup/internal/errors"
)

// Format specifies the output format for log messages.
type Format string

const (
	// FormatText produces human-readable text output.
	FormatText Format = "text"

	// FormatJSON produces machine-readable JSON output.
	FormatJSON Format = "json"
)

// LevelTrace is below Debug and logs every external command with its output.
const LevelTrace = slog.LevelDebug - 4

// Config holds the configuration for creating a new logger.
type Config struct {
	// Level sets the minimum log level. Messages below this level are discarded.
	Level slog.Level

	// Format specifies the output format (text or JSON).
	Format Format

	// Output is where log messages are written. Defaults to os.Stderr if nil.
	Output io.Writer
}

// New creates a logger with the given configuration.
// If cfg.Output is nil, it defaults to os.Stderr.
// If cfg.Format is not recognized, it defaults to FormatText.
func New(cfg Config) *slog.Logger {
	return slog.New(newHandler(cfg))
}

func newHandler(cfg Config) slog.Handler {
	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level: cfg.Level,
	}

	switch cfg.Format {
	case FormatJSON:
		return slog.NewJSONHandler(output, opts)
	default:
		return NewHandler(output, opts)
	}
}

// Default returns a sensible default logger configured for CLI use.
// It logs at Warn level in text format to stderr so the console messages
// stay the primary output.
func Default() *slog.Logger {
	return New(Config{
		Level:  slog.LevelWarn,
		Format: FormatText,
		Output: os.Stderr,
	})
}

// NewDiscard creates a logger that discards all output.
func NewDiscard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// LevelFromVerbosity maps the -v count to a level:
// 0 warn, 1 info, 2 debug, 3 and above trace.
func LevelFromVerbosity(v int) slog.Level {
	switch {
	case v <= 0:
		return slog.LevelWarn
	case v == 1:
		return slog.LevelInfo
	case v == 2:
		return slog.LevelDebug
	default:
		return LevelTrace
	}
}

// Options describes the logger requested on the command line.
type Options struct {
	Verbosity int
	Quiet     bool
	Format    Format
	// File, when set, receives a JSON copy of every record.
	File string
	// Output is the primary destination (stderr in the CLI).
	Output io.Writer
}

// Setup builds the process logger from command-line options. The returned
// close function releases the log file, if any.
func Setup(opts Options) (*slog.Logger, func() error, error) {
	if opts.Quiet && opts.Verbosity > 0 {
		return nil, nil, errors.NewUserError(
			errors.New("cannot use --quiet and --verbose together"), "Pass only one of -q or -v")
	}

	level := LevelFromVerbosity(opts.Verbosity)
	if opts.Quiet {
		level = slog.LevelError
	}

	handlers := []slog.Handler{newHandler(Config{
		Level:  level,
		Format: opts.Format,
		Output: opts.Output,
	})}

	closer := func() error { return nil }
	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, errors.NewUserError(errors.Wrap(err, "opening log file"), "Check the --log-file path")
		}
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level}))
		closer = f.Close
	}

	if len(handlers) == 1 {
		return slog.New(handlers[0]), closer, nil
	}
	return slog.New(NewMultiHandler(handlers...)), closer, nil
}

type contextKey struct{}

// NewContext returns a copy of ctx carrying logger.
func NewContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext returns the logger stored in ctx, or slog.Default().
func FromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(contextKey{}).(*slog.Logger); ok {
			return logger
		}
	}
	return slog.Default()
}

// testWriter adapts testing.T to io.Writer for use with slog handlers.
type testWriter struct {
	t *testing.T
}

// Write implements io.Writer by logging to the test.
func (w *testWriter) Write(p []byte) (n int, err error) {
	w.t.Helper()
	msg := string(p)
	if len(msg) > 0 && msg[len(msg)-1] == '\n' {
		msg = msg[:len(msg)-1]
	}
	w.t.Log(msg)
	return len(p), nil
}

// ForTest creates a logger that writes to the test's log output.
// Log messages appear only when the test fails or when running with -v.
// The logger is configured at Trace level to capture every command.
func ForTest(t *testing.T) *slog.Logger {
	t.Helper()
	return New(Config{
		Level:  LevelTrace,
		Format: FormatText,
		Output: &testWriter{t: t},
	})
}
