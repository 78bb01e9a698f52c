package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/thoreinstein/nvsetup/internal/backup"
	"github.com/thoreinstein/nvsetup/internal/errors"
)

// Sentinel errors for backup selection.
var (
	ErrNoBackups          = errors.New("no backups to select from")
	ErrInvalidSelection   = errors.New("invalid selection")
	ErrSelectionCancelled = errors.New("selection cancelled")
)

const timeLayout = "2006-01-02 15:04:05"

// findBackup is swapped in tests; the fuzzy finder needs a real terminal.
var findBackup = func(entries []backup.Entry) (int, error) {
	return fuzzyfinder.Find(
		entries,
		func(i int) string {
			return fmt.Sprintf("%s  %s", entries[i].CreatedAt.Format(timeLayout), entries[i].Path)
		},
		fuzzyfinder.WithPromptString("backup> "),
	)
}

// Selector handles interactive backup selection prompts.
type Selector struct {
	reader io.Reader
	writer io.Writer
}

// NewSelectorWithIO creates a Selector reading answers from r and writing the list to w.
func NewSelectorWithIO(r io.Reader, w io.Writer) *Selector {
	return &Selector{
		reader: r,
		writer: w,
	}
}

// SelectBackup prompts the user to choose from a numbered list of backups.
//
// Returns:
//   - ErrNoBackups if the list is empty
//   - The backup if only one exists (auto-selects without prompting)
//   - The selected backup based on user input, defaulting to the newest
//   - ErrInvalidSelection if the selection is out of range
//   - ErrSelectionCancelled if input is EOF (e.g., Ctrl+D)
func (s *Selector) SelectBackup(entries []backup.Entry) (*backup.Entry, error) {
	if len(entries) == 0 {
		return nil, ErrNoBackups
	}

	if len(entries) == 1 {
		return &entries[0], nil
	}

	fmt.Fprintln(s.writer, "Available backups:")
	for i, e := range entries {
		fmt.Fprintf(s.writer, "  [%d] %s (%s)\n", i+1, e.Path, e.CreatedAt.Format(timeLayout))
	}
	fmt.Fprintf(s.writer, "Select [1]: ")

	reader := bufio.NewReader(s.reader)
	input, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrSelectionCancelled
		}
		return nil, errors.Wrap(err, "reading selection")
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return &entries[0], nil
	}

	selection, err := strconv.Atoi(input)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidSelection, "%q is not a number", input)
	}

	// 1-indexed
	if selection < 1 || selection > len(entries) {
		return nil, errors.Wrapf(ErrInvalidSelection, "%d is out of range [1-%d]", selection, len(entries))
	}

	return &entries[selection-1], nil
}

// FuzzySelectBackup opens a fuzzy finder over entries. Escape or Ctrl+C
// returns ErrSelectionCancelled.
func FuzzySelectBackup(entries []backup.Entry) (*backup.Entry, error) {
	if len(entries) == 0 {
		return nil, ErrNoBackups
	}

	idx, err := findBackup(entries)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil, ErrSelectionCancelled
		}
		return nil, errors.Wrap(err, "interactive selection failed")
	}
	return &entries[idx], nil
}
