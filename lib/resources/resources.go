// Package resources reads text resources, such as shader sources, from
// paths relative to the executable.
package resources

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"unicode/utf8"
)

type Reason int

const (
	NotFound Reason = iota
	Unreadable
	InvalidEncoding
)

func (r Reason) String() string {
	switch r {
	case NotFound:
		return "does not exist"
	case Unreadable:
		return "could not be read"
	case InvalidEncoding:
		return "is not valid UTF-8 text"
	default:
		return fmt.Sprintf("reason(%d)", int(r))
	}
}

type ResourceError struct {
	Path   string
	Reason Reason
	Err    error
}

func (e *ResourceError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("resource %s %s", e.Path, e.Reason)
	}
	return fmt.Sprintf("resource %s %s: %s", e.Path, e.Reason, e.Err)
}

func (e *ResourceError) Unwrap() error {
	return e.Err
}

type Loader struct {
	// Base is joined to every relative path.
	Base string
}

// FromExecutable returns a loader rooted at the directory holding the
// running binary.
func FromExecutable() (*Loader, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("could not locate executable: %w", err)
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return nil, fmt.Errorf("could not resolve executable path: %w", err)
	}
	return &Loader{Base: filepath.Dir(exe)}, nil
}

// Path returns the file name Load would read for name.
func (l *Loader) Path(name string) string {
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}
	return filepath.Join(l.Base, name)
}

func (l *Loader) Load(name string) (string, error) {
	path := l.Path(name)

	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", &ResourceError{Path: path, Reason: NotFound, Err: err}
	}
	if err != nil {
		return "", &ResourceError{Path: path, Reason: Unreadable, Err: err}
	}

	// GL takes NUL-terminated strings, so an embedded NUL would silently
	// truncate the source.
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return "", &ResourceError{Path: path, Reason: InvalidEncoding, Err: fmt.Errorf("NUL byte at offset %d", i)}
	}
	if !utf8.Valid(b) {
		return "", &ResourceError{Path: path, Reason: InvalidEncoding}
	}
	return string(b), nil
}
