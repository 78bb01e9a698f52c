package config

import (
	"testing"

	"github.com/thoreinstein/nvsetup/internal/errors"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantLen int
		wantErr error
	}{
		{name: "defaults", mutate: func(*Config) {}, wantLen: 0},
		{name: "scp url", mutate: func(c *Config) { c.RepoURL = "git@github.com:me/nvim.git" }, wantLen: 0},
		{name: "custom dir", mutate: func(c *Config) { c.ConfigDir = "/tmp/nvim" }, wantLen: 0},
		{name: "brew tap package", mutate: func(c *Config) { c.ExtraPackages = []string{"homebrew/cask/foo"} }, wantLen: 0},
		{name: "empty url", mutate: func(c *Config) { c.RepoURL = "" }, wantLen: 1},
		{name: "negative depth", mutate: func(c *Config) { c.CloneDepth = -3 }, wantLen: 1, wantErr: ErrNegativeDepth},
		{name: "bad sudo", mutate: func(c *Config) { c.Sudo = "yes" }, wantLen: 1, wantErr: ErrInvalidSudoMode},
		{name: "null byte dir", mutate: func(c *Config) { c.ConfigDir = "a\x00b" }, wantLen: 1, wantErr: ErrInvalidPath},
		{name: "dot dir", mutate: func(c *Config) { c.ConfigDir = "." }, wantLen: 1, wantErr: ErrInvalidPath},
		{
			name: "multiple",
			mutate: func(c *Config) {
				c.CloneDepth = -1
				c.ExtraPackages = []string{"ok", "-bad", "also bad"}
			},
			wantLen: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			errs := Validate(cfg)
			if len(errs) != tt.wantLen {
				t.Fatalf("Validate() returned %d errors, want %d: %v", len(errs), tt.wantLen, errs)
			}
			if tt.wantErr != nil && !errors.Is(errs[0], tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, errs[0])
			}
		})
	}
}

func TestValidate_Nil(t *testing.T) {
	if errs := Validate(nil); len(errs) != 1 {
		t.Errorf("expected one error for nil config, got %v", errs)
	}
}

func TestFieldError(t *testing.T) {
	err := &FieldError{Field: "sudo", Value: "yes", Err: ErrInvalidSudoMode}
	if got, want := err.Error(), "sudo: sudo must be one of auto, always, never: yes"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrInvalidSudoMode) {
		t.Error("FieldError should unwrap to its cause")
	}
}

func TestSudoMode_Valid(t *testing.T) {
	for _, m := range []SudoMode{SudoAuto, SudoAlways, SudoNever} {
		if !m.Valid() {
			t.Errorf("%q should be valid", m)
		}
	}
	for _, m := range []SudoMode{"", "Auto", "root"} {
		if m.Valid() {
			t.Errorf("%q should be invalid", m)
		}
	}
}
