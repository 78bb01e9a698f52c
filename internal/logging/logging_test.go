package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/nvsetup/internal/errors"
)

func TestNew_Format(t *testing.T) {
	tests := []struct {
		name     string
		format   Format
		wantJSON bool
	}{
		{"json", FormatJSON, true},
		{"text", FormatText, false},
		{"unknown falls back to text", Format("yaml"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(Config{Level: slog.LevelInfo, Format: tt.format, Output: &buf})

			logger.Info("package installed", "manager", "pacman", "package", "ripgrep")

			var parsed map[string]any
			err := json.Unmarshal(buf.Bytes(), &parsed)
			if !tt.wantJSON {
				require.Error(t, err, "text output parsed as JSON: %s", buf.String())
				assert.Contains(t, buf.String(), "package installed")
				assert.Contains(t, buf.String(), "manager=pacman")
				return
			}
			require.NoError(t, err, buf.String())
			assert.Equal(t, "package installed", parsed["msg"])
			assert.Equal(t, "ripgrep", parsed["package"])
		})
	}
}

func TestDefault(t *testing.T) {
	logger := Default()
	assert.False(t, logger.Enabled(t.Context(), slog.LevelInfo))
	assert.True(t, logger.Enabled(t.Context(), slog.LevelWarn))
}

func TestLevelFromVerbosity(t *testing.T) {
	tests := []struct {
		verbosity int
		want      slog.Level
	}{
		{-1, slog.LevelWarn},
		{0, slog.LevelWarn},
		{1, slog.LevelInfo},
		{2, slog.LevelDebug},
		{3, LevelTrace},
		{5, LevelTrace},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, LevelFromVerbosity(tt.verbosity), "verbosity %d", tt.verbosity)
	}
	assert.Less(t, LevelTrace, slog.LevelDebug)
}

// The runner logs "running command" at debug and "command finished" with
// the output tail at trace; -v flags decide which of those reach stderr.
func TestSetup_Verbosity(t *testing.T) {
	tests := []struct {
		name       string
		opts       Options
		want       []string
		wantAbsent []string
	}{
		{
			name:       "default shows warnings only",
			opts:       Options{},
			want:       []string{"font not installed"},
			wantAbsent: []string{"cloning configuration", "running command", "command finished"},
		},
		{
			name:       "-v shows progress",
			opts:       Options{Verbosity: 1},
			want:       []string{"cloning configuration"},
			wantAbsent: []string{"running command"},
		},
		{
			name:       "-vv shows commands",
			opts:       Options{Verbosity: 2},
			want:       []string{"running command"},
			wantAbsent: []string{"command finished"},
		},
		{
			name: "-vvv shows command output",
			opts: Options{Verbosity: 3},
			want: []string{"TRACE", "command finished", "exit=0"},
		},
		{
			name:       "-q keeps errors only",
			opts:       Options{Quiet: true},
			want:       []string{"installation failed"},
			wantAbsent: []string{"font not installed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.opts.Output = &buf
			logger, closeFn, err := Setup(tt.opts)
			require.NoError(t, err)
			t.Cleanup(func() { _ = closeFn() })

			ctx := t.Context()
			logger.Info("cloning configuration", "url", "https://github.com/example/nvim.git")
			logger.Debug("running command", "cmd", "git clone --depth 1")
			logger.Log(ctx, LevelTrace, "command finished", "cmd", "git", "exit", 0)
			logger.Warn("font not installed", "font", "JetBrainsMono Nerd Font")
			logger.Error("installation failed", "step", "neovim")

			out := buf.String()
			for _, s := range tt.want {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.wantAbsent {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestSetup_Errors(t *testing.T) {
	t.Run("quiet with verbose", func(t *testing.T) {
		_, _, err := Setup(Options{Quiet: true, Verbosity: 2})
		require.Error(t, err)
		exitErr := errors.Resolve(err)
		assert.Equal(t, errors.ExitUser, exitErr.Code)
		assert.Contains(t, exitErr.Suggestion, "-q or -v")
	})

	t.Run("unwritable log file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "nvsetup.log")
		_, _, err := Setup(Options{File: path, Output: &bytes.Buffer{}})
		require.Error(t, err)
		assert.Equal(t, errors.ExitUser, errors.Resolve(err).Code)
		assert.Contains(t, err.Error(), "opening log file")
	})
}

func TestSetup_LogFile(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "nvsetup.log")

	logger, closeFn, err := Setup(Options{Verbosity: 1, File: path, Output: &buf})
	require.NoError(t, err)
	logger.Info("installing", "manager", "apt", "package", "neovim")
	logger.Debug("below the file level")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1, "debug record should not reach the file at -v")

	var parsed map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &parsed))
	assert.Equal(t, "apt", parsed["manager"])
	assert.Equal(t, "neovim", parsed["package"])
	assert.Contains(t, buf.String(), "installing")

	// A second run appends rather than truncating.
	logger, closeFn, err = Setup(Options{Verbosity: 1, File: path, Output: &buf})
	require.NoError(t, err)
	logger.Info("doctor finished")
	require.NoError(t, closeFn())

	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "\n"))
}

func TestContext(t *testing.T) {
	logger := NewDiscard()
	ctx := NewContext(t.Context(), logger)
	assert.Same(t, logger, FromContext(ctx))
	assert.Same(t, slog.Default(), FromContext(t.Context()))
}

func TestForTest(t *testing.T) {
	logger := ForTest(t)
	assert.True(t, logger.Enabled(t.Context(), LevelTrace))
	logger.Log(t.Context(), LevelTrace, "command finished", "cmd", "nvim --headless")

	tw := &testWriter{t: t}
	n, err := tw.Write([]byte("trimmed\n"))
	require.NoError(t, err)
	assert.Equal(t, len("trimmed\n"), n)
	n, err = tw.Write(nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}
