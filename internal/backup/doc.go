// Package backup moves an existing editor configuration aside before a new
// one is cloned into its place.
//
// A backup is the original directory renamed in place:
//
//	~/.config/nvim            (live configuration)
//	~/.config/nvim.bak.1760000000
//	~/.config/nvim.bak.1759000000
//
// The suffix is the unix time in seconds when the backup was taken. Backups
// are never deleted by nvsetup. [Restore] renames one back, refusing to
// overwrite a live directory.
package backup
