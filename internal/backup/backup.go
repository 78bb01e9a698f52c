package backup

import (
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/thoreinstein/nvsetup/internal/errors"
)

// Rename moves dir aside to PathFor(dir, now) and returns the new path.
// Nothing is copied or deleted; the backup is the original directory.
func Rename(dir string, now time.Time) (string, error) {
	target := PathFor(dir, now)

	if _, err := os.Lstat(target); err == nil {
		return "", errors.Wrapf(ErrBackupExists, "%s", target)
	} else if !os.IsNotExist(err) {
		return "", errors.Wrapf(err, "checking %s", target)
	}

	if err := os.Rename(dir, target); err != nil {
		return "", errors.Wrapf(err, "renaming %s to %s", dir, target)
	}
	return target, nil
}

// List returns the backups of dir, newest first. It returns
// ErrNoBackupsFound when there are none.
func List(dir string) ([]Entry, error) {
	dir = filepath.Clean(dir)
	parent := filepath.Dir(dir)

	dirEntries, err := os.ReadDir(parent)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoBackupsFound
		}
		return nil, errors.Wrap(err, "reading backup directory")
	}

	var entries []Entry
	for _, de := range dirEntries {
		if !de.IsDir() {
			continue
		}
		if e, ok := Parse(dir, filepath.Join(parent, de.Name())); ok {
			entries = append(entries, e)
		}
	}

	if len(entries) == 0 {
		return nil, ErrNoBackupsFound
	}

	slices.SortFunc(entries, func(a, b Entry) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return entries, nil
}

// Check reports whether backupPath is an existing backup directory of dir.
// It returns ErrNotBackup otherwise and touches nothing.
func Check(backupPath, dir string) error {
	if _, ok := Parse(dir, backupPath); !ok {
		return errors.Wrapf(ErrNotBackup, "%s", backupPath)
	}

	info, err := os.Stat(backupPath)
	if os.IsNotExist(err) {
		return errors.Wrapf(ErrNotBackup, "%s does not exist", backupPath)
	}
	if err != nil {
		return errors.Wrapf(err, "reading backup %s", backupPath)
	}
	if !info.IsDir() {
		return errors.Wrapf(ErrNotBackup, "%s is not a directory", backupPath)
	}
	return nil
}

// Restore renames backupPath back to dir. dir must not exist; callers that
// want to replace a live directory back it up with Rename first.
func Restore(backupPath, dir string) error {
	if err := Check(backupPath, dir); err != nil {
		return err
	}

	if _, err := os.Lstat(dir); err == nil {
		return errors.Wrapf(ErrRestoreConflict, "%s exists", dir)
	} else if !os.IsNotExist(err) {
		return errors.Wrapf(err, "checking %s", dir)
	}

	if err := os.Rename(backupPath, dir); err != nil {
		return errors.Wrapf(err, "restoring %s", backupPath)
	}
	return nil
}
