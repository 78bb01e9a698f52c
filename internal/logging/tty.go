package logging

import (
	"io"
	"os"

	"golang.org/x/term"
)

// fder is implemented by *os.File and wrappers that expose a descriptor.
type fder interface {
	Fd() uintptr
}

// IsTTY returns true if the given writer is a terminal.
func IsTTY(w io.Writer) bool {
	if f, ok := w.(fder); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// IsInteractive returns true if r is a terminal the operator can type into.
func IsInteractive(r io.Reader) bool {
	if f, ok := r.(fder); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// SupportsColor returns true if the given writer supports ANSI color codes.
// It returns false if:
//   - The writer is not a TTY
//   - The NO_COLOR environment variable is set
//   - The TERM environment variable is set to "dumb"
func SupportsColor(w io.Writer) bool {
	return supportsColor(w, IsTTY(w))
}

func supportsColor(_ io.Writer, isTTY bool) bool {
	// https://no-color.org
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isTTY
}
