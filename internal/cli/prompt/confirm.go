// Package prompt provides interactive CLI prompts for user input.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/thoreinstein/nvsetup/internal/errors"
	"github.com/thoreinstein/nvsetup/internal/logging"
)

// Confirmer asks the operator a yes/no question.
type Confirmer interface {
	Confirm(question string) (bool, error)
}

// Keystroke answers a question with a single key press. Only y or Y mean
// yes; any other key, or end of input, means no.
//
// When the reader is a terminal it is switched to raw mode for the one
// keystroke so no Enter is needed. Otherwise the first character of the
// next line is used.
type Keystroke struct {
	reader io.Reader
	writer io.Writer
}

// NewKeystroke creates a Keystroke confirmer reading stdin and writing stdout.
func NewKeystroke() *Keystroke {
	return &Keystroke{reader: os.Stdin, writer: os.Stdout}
}

// NewKeystrokeWithIO creates a Keystroke confirmer with custom IO for testing.
func NewKeystrokeWithIO(r io.Reader, w io.Writer) *Keystroke {
	return &Keystroke{reader: r, writer: w}
}

// Confirm prints question followed by " [y/N] " and reads the answer.
func (k *Keystroke) Confirm(question string) (bool, error) {
	fmt.Fprintf(k.writer, "%s [y/N] ", question)

	var (
		key byte
		err error
	)
	if f, ok := k.reader.(*os.File); ok && logging.IsInteractive(f) {
		key, err = readRawKey(f)
		// Raw mode swallowed the echo; end the prompt line ourselves.
		fmt.Fprintln(k.writer)
	} else {
		key, err = readLineKey(k.reader)
	}

	if err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, errors.Wrap(err, "reading answer")
	}
	return key == 'y' || key == 'Y', nil
}

func readRawKey(f *os.File) (byte, error) {
	fd := int(f.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return 0, errors.Wrap(err, "enabling raw terminal mode")
	}
	defer func() { _ = term.Restore(fd, state) }()

	buf := make([]byte, 1)
	if _, err := f.Read(buf); err != nil {
		return 0, err
	}
	return buf[0], nil
}

func readLineKey(r io.Reader) (byte, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if line == "" {
		if err == nil {
			err = io.EOF
		}
		return 0, err
	}
	return line[0], nil
}

// Fixed answers every question with the same value without reading input.
// It backs the --yes flag and non-interactive tests.
type Fixed bool

// Confirm returns the fixed answer.
func (f Fixed) Confirm(string) (bool, error) {
	return bool(f), nil
}
