package backup

import (
	"time"

	"github.com/thoreinstein/nvsetup/internal/errors"
)

// Suffix separates the original directory name from the timestamp.
const Suffix = ".bak."

// Sentinel errors for backup operations.
var (
	// ErrNoBackupsFound indicates no backups exist next to the directory.
	ErrNoBackupsFound = errors.New("no backups found")

	// ErrBackupExists indicates the computed backup name is already taken,
	// e.g. two runs within the same second.
	ErrBackupExists = errors.New("backup path already exists")

	// ErrNotBackup indicates a path that does not follow the
	// <dir>.bak.<unix-seconds> naming.
	ErrNotBackup = errors.New("not a backup of this directory")

	// ErrRestoreConflict indicates the target directory exists, so a restore
	// would overwrite it.
	ErrRestoreConflict = errors.New("restore conflict")
)

// Entry describes one backup directory.
type Entry struct {
	// Path is the absolute path of the backup directory.
	Path string `json:"path" yaml:"path" toml:"path"`

	// CreatedAt is decoded from the unix-seconds suffix.
	CreatedAt time.Time `json:"created_at" yaml:"created_at" toml:"created_at"`
}
