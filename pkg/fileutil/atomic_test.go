package fileutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/nvsetup/internal/config"
)

// tempFiles lists leftovers from AtomicWriteFile in dir.
func tempFiles(t *testing.T, dir string) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, ".nvsetup-atomic-*.tmp"))
	require.NoError(t, err)
	return matches
}

func TestAtomicWriteYAML_Config(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	err := AtomicWriteYAML(path, config.Default(), WithHeader("nvsetup configuration.\n\nSee: nvsetup config show\n"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# nvsetup configuration.\n#\n# See: nvsetup config show\nrepo_url: "),
		"unexpected header:\n%s", data)
	assert.Contains(t, string(data), "extra_packages: []\n")

	var got config.Config
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, config.Default(), &got)
	assert.Empty(t, config.Validate(&got))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultPerm, info.Mode().Perm())
	assert.Empty(t, tempFiles(t, dir))
}

func TestAtomicWriteYAML_Options(t *testing.T) {
	cfg := &config.Config{
		RepoURL:       "git@github.com:example/nvim.git",
		CloneDepth:    1,
		Sudo:          config.SudoNever,
		ExtraPackages: []string{"fd", "lazygit"},
	}

	tests := []struct {
		name     string
		opts     []YAMLOption
		wantPerm os.FileMode
		wantHead string
	}{
		{"defaults", nil, DefaultPerm, "repo_url: "},
		{"shared perm", []YAMLOption{WithPerm(0o644)}, 0o644, "repo_url: "},
		{"trailing spaces trimmed", []YAMLOption{WithHeader("managed by nvsetup\n \n")}, DefaultPerm, "# managed by nvsetup\n#\nrepo_url: "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, AtomicWriteYAML(path, cfg, tt.opts...))

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(string(data), tt.wantHead), "got:\n%s", data)
			assert.Contains(t, string(data), "extra_packages:\n  - fd\n  - lazygit\n")

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPerm, info.Mode().Perm())
		})
	}
}

// config init --force rewrites an existing file in place.
func TestAtomicWriteYAML_ReplacesExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("repo_url: https://example.com/old.git\nsudo: always\n"), 0o644))

	require.NoError(t, AtomicWriteYAML(path, config.Default()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "old.git")
	assert.Contains(t, string(data), "sudo: auto\n")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultPerm, info.Mode().Perm())
	assert.Empty(t, tempFiles(t, dir))
}

func TestAtomicWriteYAML_Errors(t *testing.T) {
	t.Run("missing parent directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nvsetup", "config.yaml")
		err := AtomicWriteYAML(path, config.Default())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "creating temp file")
		assert.NoFileExists(t, path)
	})

	t.Run("unencodable value keeps the old file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.yaml")
		original := []byte("sudo: never\n")
		require.NoError(t, os.WriteFile(path, original, 0o600))

		err := AtomicWriteYAML(path, map[string]any{"hook": func() {}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "marshaling YAML")

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, original, data)
		assert.Empty(t, tempFiles(t, dir))
	})
}

func TestAtomicWriteFile_Perm(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "init.lua")

	require.NoError(t, AtomicWriteFile(path, []byte("vim.g.mapleader = ' '\n"), 0o644))
	require.NoError(t, AtomicWriteFile(path, nil, 0o600))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, data)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	assert.Empty(t, tempFiles(t, dir))
}
