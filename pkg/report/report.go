// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package report writes the line oriented console report of a test
// run.  Each line is prefixed with [Prefix]:
//
//	FireTest: [RUNNING] calc.AddsTwoNumbers::TestAddsPositive()
//	FireTest: [PASSED] add 1 and 2 to 3
//	FireTest: [RESULT] (Passed: 1, Failed: 0)
//
// A quiet Reporter writes nothing which allows to embed a test run into
// a process whose output must not be cluttered.
package report

import (
	"fmt"
	"io"
	"os"

	"github.com/logrusorgru/aurora"
	"github.com/mattn/go-isatty"
)

// Prefix is the tag every reported line starts with.
const Prefix = "FireTest: "

// Tags of reported lines.
const (
	Starting = "[STARTING]"
	Loading  = "[LOADING]"
	Running  = "[RUNNING]"
	Passed   = "[PASSED]"
	Failed   = "[FAILED]"
	Result   = "[RESULT]"
	Final    = "[FINAL]"
)

// Reporter writes prefixed report lines to its writer.  The zero value
// is not usable, use [New].
type Reporter struct {
	w     io.Writer
	quiet bool
	au    aurora.Aurora
}

// Option configures a Reporter created by New.
type Option func(*Reporter)

// Writer sets the writer lines are reported to; it defaults to stdout.
// Colors are switched off for a writer which isn't a terminal unless
// Colors is given after Writer.
func Writer(w io.Writer) Option {
	return func(r *Reporter) {
		r.w = w
		r.au = aurora.NewAurora(isTerminal(w))
	}
}

// Quiet suppresses all reporting iff given flag is true.
func Quiet(quiet bool) Option {
	return func(r *Reporter) { r.quiet = quiet }
}

// Colors switches colored banners and tags on or off.
func Colors(on bool) Option {
	return func(r *Reporter) { r.au = aurora.NewAurora(on) }
}

// New creates a Reporter writing to stdout with colors iff stdout is a
// terminal; given options are applied in given order.
func New(oo ...Option) *Reporter {
	r := &Reporter{w: os.Stdout, au: aurora.NewAurora(isTerminal(os.Stdout))}
	for _, o := range oo {
		o(r)
	}
	return r
}

// Discard is a quiet reporter.
var Discard = New(Quiet(true))

func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// IsQuiet returns true if r doesn't report anything.
func (r *Reporter) IsQuiet() bool { return r.quiet }

// Log writes given text prefixed with [Prefix] as a line unless r is
// quiet.
func (r *Reporter) Log(text string) {
	if r.quiet {
		return
	}
	fmt.Fprintf(r.w, "%s%s\n", Prefix, text)
}

// Logf formats given arguments leveraging fmt.Sprintf and logs the
// result.
func (r *Reporter) Logf(format string, args ...interface{}) {
	if r.quiet {
		return
	}
	r.Log(fmt.Sprintf(format, args...))
}

// Tag logs given text preceded by given tag.
func (r *Reporter) Tag(tag, text string) {
	if r.quiet {
		return
	}
	r.Log(r.colored(tag) + " " + text)
}

func (r *Reporter) colored(tag string) string {
	switch tag {
	case Passed:
		return r.au.Green(tag).String()
	case Failed:
		return r.au.Red(tag).String()
	case Running, Final:
		return r.au.Bold(tag).String()
	}
	return tag
}
