package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupportsColor_Env(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		isTTY bool
		want  bool
	}{
		{"terminal", nil, true, true},
		{"NO_COLOR set", map[string]string{"NO_COLOR": "1"}, true, false},
		{"NO_COLOR empty still counts", map[string]string{"NO_COLOR": ""}, true, false},
		{"dumb terminal", map[string]string{"TERM": "dumb"}, true, false},
		{"piped to a file", nil, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TERM", "xterm-256color")
			t.Setenv("NO_COLOR", "")
			require.NoError(t, os.Unsetenv("NO_COLOR"))
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			assert.Equal(t, tt.want, supportsColor(nil, tt.isTTY))
		})
	}
}

// Redirected output and answers piped from a file must not be treated as
// a terminal, otherwise prompts would block and logs would carry escapes.
func TestTerminalDetection_Redirected(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "answers"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	assert.False(t, IsTTY(f))
	assert.False(t, IsInteractive(f))
	assert.False(t, SupportsColor(f))

	assert.False(t, IsTTY(&bytes.Buffer{}))
	assert.False(t, IsInteractive(strings.NewReader("y\n")))
}
