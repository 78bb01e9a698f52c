package git

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/nvsetup/internal/errors"
	"github.com/thoreinstein/nvsetup/internal/runner"
	"github.com/thoreinstein/nvsetup/internal/runner/mocks"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		// Valid URLs
		{"https", "https://github.com/user/repo.git", false},
		{"https without suffix", "https://github.com/nvim-lua/kickstart.nvim", false},
		{"http", "http://github.com/user/repo.git", false},
		{"ssh", "ssh://git@github.com/user/repo.git", false},
		{"git", "git://github.com/user/repo.git", false},
		{"file", "file:///path/to/repo.git", false},
		{"scp-like", "git@github.com:user/repo.git", false},
		{"scp-like subdomain", "git@sub.domain.com:user/repo.git", false},

		// Invalid URLs
		{"empty", "", true},
		{"argument injection", "-oProxyCommand=touch /tmp/pwned", true},
		{"ext protocol", "ext::sh -c touch% /tmp/pwned", true},
		{"unknown scheme", "ftp://github.com/user/repo.git", true},
		{"scheme only", "https://", true},
		{"missing scheme", "github.com/user/repo.git", true},
		{"scp-like missing git suffix", "git@github.com:user/repo", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidURL) {
				t.Errorf("error should wrap ErrInvalidURL: %v", err)
			}
		})
	}
}

func TestCloneCommand(t *testing.T) {
	assert.Equal(t, "git clone -- https://x/y.git /home/u/.config/nvim",
		CloneCommand("https://x/y.git", "/home/u/.config/nvim", 0).String())
	assert.Equal(t, "git clone --depth=1 -- https://x/y.git /dest",
		CloneCommand("https://x/y.git", "/dest", 1).String())
}

func TestClone_Mock(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "config", "nvim")
	url := "https://github.com/nvim-lua/kickstart.nvim.git"

	t.Run("success creates parent", func(t *testing.T) {
		r := mocks.NewRunner(t)
		r.Succeeds(CloneCommand(url, dest, 0))

		require.NoError(t, Clone(t.Context(), r, url, dest, 0))
		info, err := os.Stat(filepath.Dir(dest))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("failure propagates", func(t *testing.T) {
		r := mocks.NewRunner(t)
		r.Fails(CloneCommand(url, dest, 0), 128, "fatal: could not resolve host")

		err := Clone(t.Context(), r, url, dest, 0)
		require.Error(t, err)
		assert.True(t, errors.Is(err, runner.ErrCommandFailed))
	})

	t.Run("invalid url never runs git", func(t *testing.T) {
		r := mocks.NewRunner(t)
		err := Clone(t.Context(), r, "-oProxyCommand=x", dest, 0)
		assert.True(t, errors.Is(err, ErrInvalidURL))
	})
}

func TestIsRepository(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, dir string)
		want  bool
	}{
		{"missing dir", func(*testing.T, string) {}, false},
		{"plain dir", func(t *testing.T, dir string) {
			require.NoError(t, os.MkdirAll(dir, 0o755))
		}, false},
		{"checkout", func(t *testing.T, dir string) {
			require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git"), 0o755))
		}, true},
		{"worktree file", func(t *testing.T, dir string) {
			require.NoError(t, os.MkdirAll(dir, 0o755))
			require.NoError(t, os.WriteFile(filepath.Join(dir, ".git"), []byte("gitdir: /elsewhere\n"), 0o600))
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "nvim")
			tt.setup(t, dir)

			got, err := IsRepository(dir)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClone_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	tmpDir := t.TempDir()
	sourceRepo := filepath.Join(tmpDir, "source")
	destRepo := filepath.Join(tmpDir, "xdg", "nvim")
	createLocalGitRepo(t, sourceRepo)

	r := &runner.ExecRunner{}
	if err := Clone(t.Context(), r, "file://"+sourceRepo, destRepo, 1); err != nil {
		t.Fatalf("Clone() error = %v", err)
	}
	if ok, err := IsRepository(destRepo); err != nil || !ok {
		t.Errorf("cloned directory is not a git repo: ok=%v err=%v", ok, err)
	}
	if _, err := os.Stat(filepath.Join(destRepo, "init.lua")); err != nil {
		t.Errorf("cloned file missing: %v", err)
	}
}

func createLocalGitRepo(t *testing.T, dir string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}

	runGit(t, dir, "init")
	runGit(t, dir, "config", "user.email", "test@example.com")
	runGit(t, dir, "config", "user.name", "Test User")

	if err := os.WriteFile(filepath.Join(dir, "init.lua"), []byte("vim.g.mapleader = ' '\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	runGit(t, dir, "add", "init.lua")
	runGit(t, dir, "commit", "-m", "initial commit")
}

func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %s failed: %v\nOutput: %s", strings.Join(args, " "), err, out)
	}
}
