// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package discover finds the test files below a test directory, loads
// each of them exactly once and instantiates the test cases the load
// made available:
//
//	d := discover.Discoverer{Dir: "tests", Suffix: ".test.go"}
//	cc, err := d.Discover()
//	if err != nil { // test directory missing or broken test case
//	    panic(err)
//	}
//	for _, c := range cc {
//	    fmt.Println(c.Name, c.File)
//	}
//
// A test file is a file whose path ends in the configured suffix; the
// suffix is matched literally.  The test cases of a test file are the
// registered types which become loaded while the file is loaded and
// which implement [firetest.TestCase].
package discover

import (
	"path/filepath"
	"sort"

	"github.com/slukits/firetest"
	"github.com/slukits/firetest/pkg/report"
	"go.uber.org/zap"
	"golang.org/x/exp/maps"
)

// DefaultSuffix is the suffix of test files whose test cases are
// compiled into the running program.
const DefaultSuffix = ".test.go"

// PluginSuffix is the suffix of test files which are go plugins.
const PluginSuffix = ".test.so"

// Case is a discovered test case instance along with its qualified
// type name and the test file it was loaded from.
type Case struct {
	Name string
	File string
	Case firetest.TestCase
}

// Discoverer finds, loads and instantiates test cases.  Zero values of
// its optional fields are replaced by defaults at the first call of
// Discover.
type Discoverer struct {

	// Dir is the test directory which is searched recursively for
	// test files.  It must exist.
	Dir string

	// Suffix identifies test files; defaults to DefaultSuffix.
	Suffix string

	// Ignore lists directory names which are not searched; defaults to
	// DefaultIgnore.
	Ignore []string

	// Exclude lists doublestar patterns of slash-separated paths
	// relative to Dir which are not searched, e.g. "vendor/**".
	Exclude []string

	// Loader loads test files; defaults to SourceLoader.
	Loader Loader

	// Registry receives the registrations of loaded test files;
	// defaults to firetest.Default.
	Registry *firetest.Registry

	// Reporter reports loaded files and cases; defaults to a quiet
	// reporter.
	Reporter *report.Reporter

	// Logger logs diagnostics; defaults to a no-op logger.
	Logger *zap.Logger

	loaded map[string]bool
}

func (d *Discoverer) defaults() {
	if d.Suffix == "" {
		d.Suffix = DefaultSuffix
	}
	if d.Ignore == nil {
		d.Ignore = DefaultIgnore
	}
	if d.Loader == nil {
		d.Loader = SourceLoader{}
	}
	if d.Registry == nil {
		d.Registry = firetest.Default
	}
	if d.Reporter == nil {
		d.Reporter = report.Discard
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.loaded == nil {
		d.loaded = map[string]bool{}
	}
}

// Discover returns the test cases of the test files below the test
// directory in the order of their discovery, i.e. files in lexical
// order and the cases of a file in order of their registration.  An
// ErrConfiguration-error is returned if the test directory doesn't
// exist, an ErrDiscovery-error if a test file can't be loaded or a
// test case can't be instantiated.  Files which were loaded by a
// previous call are not loaded again.
func (d *Discoverer) Discover() ([]*Case, error) {
	d.defaults()
	root, err := CheckDir(d.Dir)
	if err != nil {
		return nil, err
	}
	ff, err := files(root, SuffixMatcher(d.Suffix), d.Ignore, d.Exclude)
	if err != nil {
		return nil, firetest.DiscoveryErr(err,
			"searching %q for test files failed", root)
	}
	d.Logger.Debug("found test files",
		zap.String("dir", root), zap.Int("count", len(ff)))

	cc := []*Case{}
	for _, f := range ff {
		if d.loaded[f] {
			continue
		}
		d.loaded[f] = true
		fc, err := d.load(f)
		if err != nil {
			return nil, err
		}
		cc = append(cc, fc...)
	}
	return cc, nil
}

// load loads given file and instantiates the test cases among the
// types which became available by loading it.
func (d *Discoverer) load(file string) ([]*Case, error) {
	d.Reporter.Logf(`%s Test file "%s"`, report.Loading, file)
	d.Logger.Debug("loading test file", zap.String("file", file))

	before := d.Registry.Loaded()
	if err := d.Loader.Load(file, d.Registry); err != nil {
		return nil, err
	}
	after := d.Registry.Loaded()
	for i := range before {
		delete(after, i)
	}
	idx := maps.Keys(after)
	sort.Ints(idx)

	cc := []*Case{}
	for _, i := range idx {
		e := d.Registry.Entry(i)
		if e.Type != nil && !e.IsCase() {
			d.Logger.Debug("skipping non test case type",
				zap.String("type", e.Name), zap.String("file", file))
			continue
		}
		tc, err := e.New()
		if err != nil {
			return nil, err
		}
		d.Reporter.Logf(`%s Test case "%s"`, report.Loading, e.Name)
		d.Logger.Debug("discovered test case",
			zap.String("case", e.Name), zap.String("file", file))
		cc = append(cc, &Case{
			Name: e.Name,
			File: filepath.Clean(file),
			Case: tc,
		})
	}
	if len(cc) == 0 {
		d.Logger.Debug("test file defines no test cases",
			zap.String("file", file))
	}
	return cc, nil
}
