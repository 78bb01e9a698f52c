package prompt

import (
	"bytes"
	"strings"
	"testing"
)

func TestKeystroke_Confirm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "lower y", input: "y\n", want: true},
		{name: "upper Y", input: "Y\n", want: true},
		{name: "yes word uses first key", input: "yes\n", want: true},
		{name: "no", input: "n\n", want: false},
		{name: "enter only", input: "\n", want: false},
		{name: "other key", input: "q\n", want: false},
		{name: "leading space", input: " y\n", want: false},
		{name: "no trailing newline", input: "y", want: true},
		{name: "eof", input: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			k := NewKeystrokeWithIO(strings.NewReader(tt.input), &buf)

			got, err := k.Confirm("Back up existing configuration?")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Confirm() = %v, want %v", got, tt.want)
			}
			if !strings.Contains(buf.String(), "Back up existing configuration? [y/N] ") {
				t.Errorf("missing prompt in output: %q", buf.String())
			}
		})
	}
}

func TestFixed_Confirm(t *testing.T) {
	t.Parallel()

	for _, want := range []bool{true, false} {
		got, err := Fixed(want).Confirm("anything")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != want {
			t.Errorf("Fixed(%v).Confirm() = %v", want, got)
		}
	}
}
