// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// fs provides helpers to manipulate the file system to create
// test-fixtures, i.e. test directories with test files.

package fx

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// NoTempDirErr is an error string indicating that a provided directory
// is not an expected temporary directory.
var NoTempDirErr = "is not temp-dir"

// MkPath creates in root given variadic series of directories in form of
// a descending path: filepath.Join(root, dd[0], ..., dd[len(dd)-1])
// MkPath fatales given testing instance if given root is not a temporary
// directory or the directories can not be created.
func MkPath(t *testing.T, root string, dd ...string) (path string) {
	t.Helper()
	if !strings.HasPrefix(root, os.TempDir()) {
		t.Fatalf("fx: dirs: root: %s", NoTempDirErr)
	}

	path = filepath.Join(append([]string{root}, dd...)...)
	if err := os.MkdirAll(path, 0711); err != nil {
		t.Fatalf("fx: dirs: create: %v", err)
	}
	return path
}

// CWD changes the current working directory to given directory and
// returns a function which resets this change.  CWD fatales given
// testing instance if given directory is not a temporary directory or
// if the working directory change fails.  It panics if the reset fails.
func CWD(t *testing.T, dir string) (reset func()) {
	t.Helper()
	if !strings.HasPrefix(dir, os.TempDir()) {
		t.Fatalf("fx: cwd: dir: %s", NoTempDirErr)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("fx: cwd: get: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("fx: cwd: %v", err)
	}

	return func() {
		if err := os.Chdir(wd); err != nil {
			panic(fmt.Sprintf("fx: cwd: reset: %v", err))
		}
	}
}

// AddFile adds to given directory a new file with given slash separated
// relative name and given content creating missing parent directories.
// AddFile fatales if given dir is not a temporary directory, if the
// file already exists or os.WriteFile fails.  The path of the new file
// is returned.
func AddFile(t *testing.T, dir, name, content string) (path string) {
	t.Helper()
	if !strings.HasPrefix(dir, os.TempDir()) {
		t.Fatalf("fx: add file: dir: %s", NoTempDirErr)
	}

	fl := filepath.Join(dir, filepath.FromSlash(name))
	if _, err := os.Stat(fl); err == nil {
		t.Fatalf("fx: add file: already exists: %s", name)
	}
	if err := os.MkdirAll(filepath.Dir(fl), 0711); err != nil {
		t.Fatalf("fx: add file: dirs: %v", err)
	}
	if err := os.WriteFile(fl, []byte(content), 0644); err != nil {
		t.Fatalf("fx: add file: write: %v", err)
	}
	return fl
}

// Dir spares in case of several file systems operation the repeating
// providing of testing.T and dir arguments.  It also accumulates reset
// functions and allows to reset them all at once.
type Dir struct {
	T     *testing.T
	Name  string
	reset []func()
}

// NewDir creates a new temp-dir leveraging t.TempDir.
func NewDir(t *testing.T) *Dir {
	return &Dir{T: t, Name: t.TempDir()}
}

// Path joins this directory's name with given slash separated
// relative path.
func (d *Dir) Path(rel string) string {
	return filepath.Join(d.Name, filepath.FromSlash(rel))
}

// MkPath calls [fx.MkPath] using its T and Name property for the
// respective first two arguments.
func (d *Dir) MkPath(dd ...string) (_ *Dir, path string) {
	d.T.Helper()
	return d, MkPath(d.T, d.Name, dd...)
}

// CWD changes the working directory to this directory's name by
// invoking [fx.CWD].
func (d *Dir) CWD() *Dir {
	d.T.Helper()
	d.reset = append(d.reset, CWD(d.T, d.Name))
	return d
}

// MkFile adds a file with given name and content to this directory by
// invoking [fx.AddFile].
func (d *Dir) MkFile(name, content string) *Dir {
	d.T.Helper()
	AddFile(d.T, d.Name, name, content)
	return d
}

// MkFiles adds empty files with given names to this directory.
func (d *Dir) MkFiles(names ...string) *Dir {
	d.T.Helper()
	for _, n := range names {
		AddFile(d.T, d.Name, n, "")
	}
	return d
}

// MkCase adds a go source file with given name to this directory which
// declares in given package a test case type with given name embedding
// firetest.Case and having given methods in given order.
func (d *Dir) MkCase(name, pkg, tcase string, methods ...string) string {
	d.T.Helper()
	return AddFile(d.T, d.Name, name, CaseSource(pkg, tcase, methods...))
}

// CaseSource returns the source of a go file declaring in given
// package a test case type with given name embedding firetest.Case and
// having given methods in given order.
func CaseSource(pkg, tcase string, methods ...string) string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "package %s\n\n", pkg)
	fmt.Fprintf(b, "import \"github.com/slukits/firetest\"\n\n")
	fmt.Fprintf(b, "type %s struct{ firetest.Case }\n", tcase)
	for _, m := range methods {
		fmt.Fprintf(b, "\nfunc (c *%s) %s() {}\n", tcase, m)
	}
	return b.String()
}

// Reset calls all collected reset functions in inverse order.
func (d *Dir) Reset() {
	for i := len(d.reset) - 1; i >= 0; i-- {
		d.reset[i]()
	}
	d.reset = []func(){}
}
