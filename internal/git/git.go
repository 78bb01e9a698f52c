// Package git clones the configuration repository.
package git

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/thoreinstein/nvsetup/internal/errors"
	"github.com/thoreinstein/nvsetup/internal/runner"
)

// ErrInvalidURL is returned for URLs git should not be handed.
var ErrInvalidURL = errors.New("invalid repository URL")

// allowedSchemes are the transports accepted for the configuration repository.
var allowedSchemes = []string{"https://", "http://", "ssh://", "git://", "file://"}

// scpLike matches user@host:path/repo.git.
var scpLike = regexp.MustCompile(`^[A-Za-z0-9._-]+@[A-Za-z0-9.-]+:[A-Za-z0-9._/~-]+\.git$`)

// ValidateURL rejects URLs that could be interpreted as git options or use
// transports other than https, http, ssh, git, file and scp-like SSH.
func ValidateURL(url string) error {
	if url == "" {
		return errors.Wrap(ErrInvalidURL, "empty")
	}
	if strings.HasPrefix(url, "-") {
		return errors.Wrapf(ErrInvalidURL, "%q looks like an option", url)
	}
	for _, scheme := range allowedSchemes {
		if strings.HasPrefix(url, scheme) && len(url) > len(scheme) {
			return nil
		}
	}
	if scpLike.MatchString(url) {
		return nil
	}
	return errors.Wrapf(ErrInvalidURL, "%q", url)
}

// CloneCommand builds the git clone invocation. depth <= 0 clones full history.
func CloneCommand(url, dest string, depth int) runner.Command {
	args := []string{"clone"}
	if depth > 0 {
		args = append(args, "--depth="+strconv.Itoa(depth))
	}
	args = append(args, "--", url, dest)
	return runner.Command{Name: "git", Args: args}
}

// Clone clones url into dest through r. The parent of dest is created
// first; dest itself must not exist. A failed clone is returned as is and
// whatever git left behind stays in place.
func Clone(ctx context.Context, r runner.Runner, url, dest string, depth int) error {
	if err := ValidateURL(url); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return errors.Wrap(err, "creating parent directory")
	}
	if _, err := r.Run(ctx, CloneCommand(url, dest, depth)); err != nil {
		return errors.Wrap(err, "git clone failed")
	}
	return nil
}

// IsRepository reports whether dir is a git working tree, i.e. has a .git
// directory or, for worktrees and submodules, a .git file.
func IsRepository(dir string) (bool, error) {
	_, err := os.Lstat(filepath.Join(dir, ".git"))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, "inspecting %s", dir)
	}
	return true, nil
}
