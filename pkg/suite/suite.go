// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package suite runs the test cases discovered in a test directory and
// reports their results:
//
//	s, err := suite.New("tests")
//	if err != nil { // missing directory or broken test case
//	    panic(err)
//	}
//	s.RunAndExit() // exits with status 1 if a test failed
//
// A Suite runs its test cases sequentially in the order of their
// discovery.  Each test case is set up once, then each of its test
// methods is framed by BeforeEach and AfterEach, finally the case is
// torn down.  A failed assertion never stops a run.
//
// A panic is recorded as one failure.  A panicking test method is
// followed by AfterEach as usual while a panicking hook skips the
// case's remaining test methods; TearDown still runs unless SetUp
// panicked.
package suite

import (
	"fmt"
	"os"
	"reflect"

	"github.com/rs/xid"
	"github.com/slukits/firetest"
	"github.com/slukits/firetest/pkg/discover"
	"github.com/slukits/firetest/pkg/report"
	"go.uber.org/zap"
)

// Suite holds the discovered test cases of a test directory and the
// running totals of their run.  A Suite is not safe for concurrent
// use.
type Suite struct {
	dir      string
	suffix   string
	cases    []*discover.Case
	reporter *report.Reporter
	logger   *zap.Logger
	exit     func(int)
	totals   Totals
}

// Totals are the aggregated outcomes of a suite run.  Failures holds
// every failure description in the order it was recorded.
type Totals struct {
	Passed   int
	Failed   int
	Failures []string
}

// ExitCode returns 1 if failures were recorded; 0 otherwise.
func (t *Totals) ExitCode() int {
	if t.Failed > 0 {
		return 1
	}
	return 0
}

// New validates given test directory and discovers its test cases.  An
// ErrConfiguration-error is returned before anything is loaded if the
// directory doesn't exist; an ErrDiscovery-error if a test file can't
// be loaded or a test case can't be instantiated.
func New(dir string, oo ...Option) (*Suite, error) {
	cfg := defaultOptions()
	for _, o := range oo {
		o(cfg)
	}
	if cfg.discoverer.Suffix == "" {
		cfg.discoverer.Suffix = discover.DefaultSuffix
	}
	if cfg.discoverer.Reporter == nil {
		cfg.discoverer.Reporter = report.Discard
	}
	if cfg.discoverer.Logger == nil {
		cfg.discoverer.Logger = zap.NewNop()
	}
	abs, err := discover.CheckDir(dir)
	if err != nil {
		return nil, err
	}
	s := &Suite{
		dir:      abs,
		suffix:   cfg.discoverer.Suffix,
		reporter: cfg.discoverer.Reporter,
		logger:   cfg.discoverer.Logger.With(zap.String("run", xid.New().String())),
		exit:     cfg.exit,
	}
	cfg.discoverer.Dir, cfg.discoverer.Logger = abs, s.logger

	s.reporter.Logf(`%s Test suite is located at "%s"`, report.Starting, abs)
	s.reporter.Logf(`%s Finding all files with the extension "%s"`,
		report.Starting, s.suffix)
	s.cases, err = cfg.discoverer.Discover()
	if err != nil {
		return nil, err
	}
	s.logger.Debug("suite created",
		zap.String("dir", abs), zap.Int("cases", len(s.cases)))
	return s, nil
}

// Dir returns the absolute test directory of s.
func (s *Suite) Dir() string { return s.dir }

// Suffix returns the suffix identifying test files of s.
func (s *Suite) Suffix() string { return s.suffix }

// Cases returns the discovered test cases in their run order.
func (s *Suite) Cases() []*discover.Case { return s.cases }

// Run runs all test cases of s, reports their results and returns the
// totals of the run.  A suite is meant to be run once; the totals of
// further runs accumulate.
func (s *Suite) Run() *Totals {
	for _, c := range s.cases {
		s.runCase(c)
	}

	if s.totals.Failed > 0 {
		s.reporter.Failures(s.totals.Failures)
	} else {
		s.reporter.Success()
	}
	s.reporter.Totals(s.totals.Passed, s.totals.Failed)
	s.logger.Debug("suite run",
		zap.Int("passed", s.totals.Passed),
		zap.Int("failed", s.totals.Failed))

	tt := s.totals
	tt.Failures = append([]string(nil), s.totals.Failures...)
	return &tt
}

// RunAndExit runs s and terminates the process with exit status 1 if a
// failure was recorded; otherwise it returns the totals.
func (s *Suite) RunAndExit() *Totals {
	tt := s.Run()
	if code := tt.ExitCode(); code != 0 {
		s.exit(code)
	}
	return tt
}

func (s *Suite) runCase(c *discover.Case) {
	tc := c.Case
	if !s.hook(tc, "SetUp", tc.SetUp) {
		return
	}
	defer s.hook(tc, "TearDown", tc.TearDown)

	for _, m := range tc.TestMethods() {
		if !s.hook(tc, "BeforeEach", tc.BeforeEach) {
			return
		}
		s.reporter.Tag(report.Running, fmt.Sprintf("%s::%s()", c.Name, m))
		rr := s.runMethod(tc, m)

		for _, f := range rr.Failed {
			s.fail(f)
		}
		s.totals.Passed += len(rr.Passed)
		for _, p := range rr.Passed {
			s.reporter.Tag(report.Passed, p)
		}
		s.reporter.Counts(len(rr.Passed), len(rr.Failed))
		if !s.hook(tc, "AfterEach", tc.AfterEach) {
			return
		}
	}
}

// hook calls given hook of given test case.  A panicking hook is
// recorded as a failure and false is returned.
func (s *Suite) hook(tc firetest.TestCase, name string, f func()) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Debug("hook panicked",
				zap.String("hook", name), zap.Any("panic", r))
			s.fail(fmt.Sprintf("%T::%s() panicked: %v", tc, name, r))
			ok = false
		}
	}()
	f()
	return true
}

func (s *Suite) fail(description string) {
	s.totals.Failed++
	s.totals.Failures = append(s.totals.Failures, description)
	s.reporter.Tag(report.Failed, description)
}

// runMethod invokes given test method of given test case and returns
// the case's results.  A method which can't be invoked or which panics
// adds a failure to these results.
func (s *Suite) runMethod(tc firetest.TestCase, name string) (
	rr firetest.Results) {

	method := reflect.ValueOf(tc).MethodByName(name)
	if !method.IsValid() || method.Type().NumIn() != 0 {
		rr = tc.Results()
		rr.Failed = append(rr.Failed, fmt.Sprintf(
			"%T::%s() is not a test method", tc, name))
		return rr
	}

	defer func() {
		r := recover()
		rr = tc.Results()
		if r != nil {
			s.logger.Debug("test method panicked",
				zap.String("method", name), zap.Any("panic", r))
			rr.Failed = append(rr.Failed, fmt.Sprintf(
				"%T::%s() panicked: %v", tc, name, r))
		}
	}()
	method.Call(nil)
	return rr
}

// Option configures a Suite created by New.
type Option func(*options)

type options struct {
	discoverer *discover.Discoverer
	exit       func(int)
}

func defaultOptions() *options {
	return &options{
		discoverer: &discover.Discoverer{
			Suffix:   discover.DefaultSuffix,
			Reporter: report.New(),
			Logger:   zap.NewNop(),
		},
		exit: os.Exit,
	}
}

// Suffix sets the suffix identifying test files.
func Suffix(suffix string) Option {
	return func(o *options) { o.discoverer.Suffix = suffix }
}

// Registry sets the registry test files register their cases with.
func Registry(reg *firetest.Registry) Option {
	return func(o *options) { o.discoverer.Registry = reg }
}

// Loader sets the loader of test files.
func Loader(l discover.Loader) Option {
	return func(o *options) { o.discoverer.Loader = l }
}

// Reporter sets the reporter of a suite run.
func Reporter(r *report.Reporter) Option {
	return func(o *options) { o.discoverer.Reporter = r }
}

// Logger sets the diagnostics logger.
func Logger(l *zap.Logger) Option {
	return func(o *options) { o.discoverer.Logger = l }
}

// Exclude sets doublestar patterns of paths relative to the test
// directory which are not searched for test files.
func Exclude(patterns ...string) Option {
	return func(o *options) { o.discoverer.Exclude = patterns }
}

// Ignore sets the directory names which are not searched for test
// files.
func Ignore(names ...string) Option {
	return func(o *options) { o.discoverer.Ignore = names }
}

// Exit sets the function RunAndExit terminates the process with.
func Exit(exit func(int)) Option {
	return func(o *options) { o.exit = exit }
}
