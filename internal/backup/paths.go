package backup

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// PathFor returns the backup name for dir at t: <dir>.bak.<unix-seconds>.
func PathFor(dir string, t time.Time) string {
	return filepath.Clean(dir) + Suffix + strconv.FormatInt(t.Unix(), 10)
}

// Parse reports whether path is a backup of dir and decodes its timestamp.
func Parse(dir, path string) (Entry, bool) {
	prefix := filepath.Clean(dir) + Suffix
	path = filepath.Clean(path)
	if !strings.HasPrefix(path, prefix) {
		return Entry{}, false
	}
	digits := path[len(prefix):]
	if digits == "" || strings.TrimLeft(digits, "0123456789") != "" {
		return Entry{}, false
	}
	secs, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return Entry{}, false
	}
	return Entry{Path: path, CreatedAt: time.Unix(secs, 0)}, true
}
