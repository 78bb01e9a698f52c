// Package fileutil writes nvsetup's own files without leaving partial
// content behind.
package fileutil

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/nvsetup/internal/errors"
)

// DefaultPerm is used for files written by nvsetup (owner read/write).
const DefaultPerm os.FileMode = 0o600

// AtomicWriteFile writes data to a file atomically using a temp file + rename pattern.
// An interrupted write leaves the original file intact.
//
// The caller is responsible for ensuring the parent directory exists.
func AtomicWriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)

	// Same directory: rename is only atomic within one filesystem.
	tmp, err := os.CreateTemp(dir, ".nvsetup-atomic-*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}

	tmpName := tmp.Name()
	renamed := false
	defer func() {
		if !renamed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "writing temp file")
	}

	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return errors.Wrap(err, "setting file permissions")
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return errors.Wrap(err, "syncing temp file")
	}

	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "closing temp file")
	}

	if err := os.Rename(tmpName, path); err != nil {
		return errors.Wrap(err, "renaming temp file")
	}
	renamed = true

	return nil
}

// YAMLOption customizes AtomicWriteYAML.
type YAMLOption func(*yamlOptions)

type yamlOptions struct {
	header string
	perm   os.FileMode
}

// WithHeader prefixes the document with header, one "# " comment per line.
func WithHeader(header string) YAMLOption {
	return func(o *yamlOptions) {
		o.header = header
	}
}

// WithPerm overrides DefaultPerm.
func WithPerm(perm os.FileMode) YAMLOption {
	return func(o *yamlOptions) {
		o.perm = perm
	}
}

// AtomicWriteYAML encodes v as YAML with 2-space indentation and writes it to
// path atomically.
//
// The caller is responsible for ensuring the parent directory exists.
func AtomicWriteYAML(path string, v any, opts ...YAMLOption) (err error) {
	o := yamlOptions{perm: DefaultPerm}
	for _, opt := range opts {
		opt(&o)
	}

	// yaml.v3 panics on unmarshalable types such as channels and funcs.
	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf("marshaling YAML: %v", r)
		}
	}()

	var buf bytes.Buffer
	if o.header != "" {
		for line := range strings.SplitSeq(strings.TrimRight(o.header, "\n"), "\n") {
			buf.WriteString(strings.TrimRight("# "+line, " "))
			buf.WriteByte('\n')
		}
	}

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(err, "marshaling YAML")
	}
	if err := enc.Close(); err != nil {
		return errors.Wrap(err, "marshaling YAML")
	}

	return AtomicWriteFile(path, buf.Bytes(), o.perm)
}
