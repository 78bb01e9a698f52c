package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/nvsetup/internal/backup"
	"github.com/thoreinstein/nvsetup/internal/cli/prompt"
	"github.com/thoreinstein/nvsetup/internal/console"
	"github.com/thoreinstein/nvsetup/internal/errors"
	"github.com/thoreinstein/nvsetup/internal/logging"
	"github.com/thoreinstein/nvsetup/internal/paths"
)

var backupsJSON bool

// now is the clock used to name backups taken during restore.
var now = time.Now

// selectBackup picks a backup when restore is run without an argument.
var selectBackup = func(entries []backup.Entry, w io.Writer) (*backup.Entry, error) {
	if logging.IsInteractive(stdin) {
		return prompt.FuzzySelectBackup(entries)
	}
	return prompt.NewSelectorWithIO(stdin, w).SelectBackup(entries)
}

func init() {
	backupsCmd.PersistentFlags().BoolVar(&backupsJSON, "json", false, "Output in JSON format")
	backupsCmd.AddCommand(backupsRestoreCmd)
	rootCmd.AddCommand(backupsCmd)
}

var backupsCmd = &cobra.Command{
	Use:     "backups",
	Aliases: []string{"backup"},
	Short:   "List configuration backups",
	Long: `List the backups nvsetup made of the editor configuration directory.

A backup is the previous directory renamed to <dir>.bak.<unix-seconds>.
Backups are listed newest first and are never deleted by nvsetup.`,
	Example: `  # List backups
  nvsetup backups

  # Output as JSON
  nvsetup backups --json

  See Also:
    nvsetup backups restore - Put a backup back in place`,
	Args: cobra.NoArgs,
	RunE: runBackupsList,
}

var backupsRestoreCmd = &cobra.Command{
	Use:   "restore [backup-path]",
	Short: "Restore a configuration backup",
	Long: `Rename a backup back to the editor configuration directory.

Without an argument you pick a backup interactively. If the configuration
directory currently exists it is backed up first, after confirmation, so
restoring never destroys anything.`,
	Example: `  # Choose a backup interactively
  nvsetup backups restore

  # Restore a specific backup
  nvsetup backups restore ~/.config/nvim.bak.1760000000`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBackupsRestore,
}

// entryOutput represents a single backup in JSON output.
type entryOutput struct {
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"created_at"`
}

func runBackupsList(cmd *cobra.Command, _ []string) error {
	dir, err := editorConfigDir()
	if err != nil {
		return errors.NewUserError(err, errors.GetHint(err))
	}

	entries, err := backup.List(dir)
	if err != nil && !errors.Is(err, backup.ErrNoBackupsFound) {
		return errors.Wrap(err, "listing backups")
	}

	w := cmd.OutOrStdout()
	if backupsJSON {
		out := make([]entryOutput, len(entries))
		for i, e := range entries {
			out[i] = entryOutput{Path: e.Path, CreatedAt: e.CreatedAt.UTC()}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(out), "encoding output")
	}

	if len(entries) == 0 {
		fmt.Fprintf(w, "No backups of %s\n", dir)
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CREATED\tPATH")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\n", e.CreatedAt.Format("2006-01-02 15:04:05"), e.Path)
	}
	return tw.Flush()
}

func runBackupsRestore(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := console.New(cmd.OutOrStdout())

	dir, err := editorConfigDir()
	if err != nil {
		return errors.NewUserError(err, errors.GetHint(err))
	}

	var source string
	if len(args) == 1 {
		source, err = resolveBackupArg(dir, args[0])
		if err != nil {
			return err
		}
	} else {
		entries, err := backup.List(dir)
		if err != nil {
			if errors.Is(err, backup.ErrNoBackupsFound) {
				return errors.NewUserError(errors.Wrapf(err, "%s", dir), "")
			}
			return errors.Wrap(err, "listing backups")
		}
		selected, err := selectBackup(entries, cmd.OutOrStdout())
		if err != nil {
			if errors.Is(err, prompt.ErrSelectionCancelled) {
				return errors.NewUserError(err, "")
			}
			return err
		}
		source = selected.Path
	}

	// Reject a bad source before the live directory is moved aside.
	if err := backup.Check(source, dir); err != nil {
		if errors.Is(err, backup.ErrNotBackup) {
			return errors.NewUserError(err, "Run: nvsetup backups")
		}
		return errors.Wrap(err, "checking backup")
	}

	exists, err := paths.Exists(dir)
	if err != nil {
		return errors.Wrapf(err, "checking %s", dir)
	}
	if exists {
		t := now()
		ok, err := confirmer(cmd.OutOrStdout()).Confirm(
			fmt.Sprintf("%s already exists. Move it to %s?", dir, backup.PathFor(dir, t)))
		if err != nil {
			return errors.Wrap(err, "asking for backup confirmation")
		}
		if !ok {
			return errors.NewUserError(
				errors.Mark(errors.Newf("restore cancelled: %s left in place", dir), errors.ErrAborted),
				"Re-run with --yes to back it up automatically")
		}
		moved, err := backup.Rename(dir, t)
		if err != nil {
			return err
		}
		logging.FromContext(ctx).Info("configuration backed up", "from", dir, "to", moved)
		out.Success("Backed up %s to %s", dir, moved)
	}

	if err := backup.Restore(source, dir); err != nil {
		if errors.Is(err, backup.ErrNotBackup) {
			return errors.NewUserError(err, "Run: nvsetup backups")
		}
		return errors.Wrap(err, "restoring backup")
	}
	out.Success("Restored %s to %s", source, dir)
	return nil
}

// resolveBackupArg accepts a full path or a bare name next to dir.
func resolveBackupArg(dir, arg string) (string, error) {
	if !strings.ContainsRune(arg, filepath.Separator) {
		arg = filepath.Join(filepath.Dir(dir), arg)
	}
	abs, err := filepath.Abs(arg)
	if err != nil {
		return "", errors.Wrapf(err, "resolving %s", arg)
	}
	return abs, nil
}
