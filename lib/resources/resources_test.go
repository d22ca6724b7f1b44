package resources_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/fosdem/glstage/lib/resources"
	"github.com/fosdem/glstage/lib/test"
)

func write(t *testing.T, dir, name string, content []byte) {
	t.Helper()
	test.DemandSuccess(t, os.WriteFile(filepath.Join(dir, name), content, 0o644))
}

func reasonOf(t *testing.T, err error) resources.Reason {
	t.Helper()
	var resErr *resources.ResourceError
	if !errors.As(err, &resErr) {
		t.Fatalf("expected ResourceError, got %v", err)
	}
	return resErr.Reason
}

func TestLoadRelative(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "a.vert", []byte("#version 410 core\nvoid main() {}\n"))

	l := &resources.Loader{Base: dir}
	text, err := l.Load("a.vert")
	test.DemandSuccess(t, err)
	test.ExpectSubstring(t, text, "void main")
}

func TestLoadAbsoluteIgnoresBase(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "a.frag", []byte("x"))

	l := &resources.Loader{Base: "/nonexistent"}
	text, err := l.Load(filepath.Join(dir, "a.frag"))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, text, "x")
}

func TestLoadMissing(t *testing.T) {
	l := &resources.Loader{Base: t.TempDir()}
	_, err := l.Load("missing.frag")
	test.ExpectEquality(t, reasonOf(t, err), resources.NotFound)
	test.ExpectSuccess(t, errors.Is(err, fs.ErrNotExist))
}

func TestLoadDirectoryIsUnreadable(t *testing.T) {
	dir := t.TempDir()
	test.DemandSuccess(t, os.Mkdir(filepath.Join(dir, "sub.vert"), 0o755))

	l := &resources.Loader{Base: dir}
	_, err := l.Load("sub.vert")
	test.ExpectEquality(t, reasonOf(t, err), resources.Unreadable)
}

func TestLoadInvalidEncoding(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "latin1.frag", []byte{'#', 0xe9, 0xff})
	write(t, dir, "nul.frag", []byte("void\x00main"))

	l := &resources.Loader{Base: dir}
	_, err := l.Load("latin1.frag")
	test.ExpectEquality(t, reasonOf(t, err), resources.InvalidEncoding)
	_, err = l.Load("nul.frag")
	test.ExpectEquality(t, reasonOf(t, err), resources.InvalidEncoding)
	test.ExpectSubstring(t, err.Error(), "NUL byte at offset 4")
}

func TestFromExecutable(t *testing.T) {
	l, err := resources.FromExecutable()
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, filepath.IsAbs(l.Base))
	test.ExpectEquality(t, l.Path("x.vert"), filepath.Join(l.Base, "x.vert"))
}
