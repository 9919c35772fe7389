// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package firetest

import (
	"fmt"
	"reflect"
	"strings"

	"golang.org/x/exp/slices"
)

// TestCase is the contract a test case fulfills to be run by a
// firetest suite.  SetUp and TearDown are called once before
// respectively after all test methods of a case, BeforeEach and
// AfterEach before respectively after each test method.  TestMethods
// reports the names of the exported, argument-less methods which are
// run as tests while Results reports the assertion outcomes of the most
// recently run test method.
type TestCase interface {
	SetUp()
	TearDown()
	BeforeEach()
	AfterEach()
	TestMethods() []string
	Results() Results
}

// Results holds the descriptions of passed and failed assertions of a
// test method's run.
type Results struct {
	Passed []string
	Failed []string
}

// special lists the methods of a Case embedder which are never
// considered tests even though they start with "Test".
var special = map[string]bool{
	"SetUp": true, "TearDown": true, "BeforeEach": true,
	"AfterEach": true, "TestMethods": true, "Results": true,
}

// TestPrefix is the prefix a method name must have to be reported as
// test method by a Case.
const TestPrefix = "Test"

// Case implements the TestCase interface and provides assertions
// recording their outcome.  A test case embeds it:
//
//	type AddsTwoNumbers struct{ firetest.Case }
//
//	func (c *AddsTwoNumbers) TestAddsPositive() {
//	    c.Should("add 1 and 2 to 3").Eq(3, add(1, 2))
//	}
//
//	func init() { firetest.Register(&AddsTwoNumbers{}) }
//
// and overwrites the hooks it needs.  A Case must not be copied after
// it was bound to its embedder.
type Case struct {
	self      interface{}
	file      string
	statement string
	passed    []string
	failed    []string
}

// embedder is implemented by any type embedding Case.
type embedder interface {
	bind(self TestCase, file string) *Case
}

func (c *Case) bind(self TestCase, file string) *Case {
	c.self, c.file = self, file
	return c
}

// Bind makes a Case-embedding test case aware of itself and of the
// source file it was registered from.  Bind is a no-op for test cases
// which don't embed Case.
func Bind(tc TestCase, file string) {
	if e, ok := tc.(embedder); ok {
		e.bind(tc, file)
	}
}

// File returns the source file a bound case was registered from.
func (c *Case) File() string { return c.file }

// SetUp is a no-op.
func (c *Case) SetUp() {}

// TearDown is a no-op.
func (c *Case) TearDown() {}

// BeforeEach is a no-op.
func (c *Case) BeforeEach() {}

// AfterEach is a no-op.
func (c *Case) AfterEach() {}

// TestMethods returns the names of the bound embedder's exported
// methods which start with "Test", take no argument and return
// nothing.  The names are ordered by their declaration in the case's
// source file; methods not found there, e.g. because the source is
// unavailable, follow in alphabetical order.  An unbound Case has no
// test methods.
func (c *Case) TestMethods() []string {
	if c.self == nil {
		return nil
	}
	rt := reflect.TypeOf(c.self)
	mm := []string{}
	for i := 0; i < rt.NumMethod(); i++ {
		m := rt.Method(i)
		if !strings.HasPrefix(m.Name, TestPrefix) {
			continue
		}
		if special[m.Name] {
			continue
		}
		if m.Type.NumIn() != 1 || m.Type.NumOut() != 0 {
			continue
		}
		mm = append(mm, m.Name)
	}

	idx := indexer.get(c.file, typeName(rt))
	slices.SortStableFunc(mm, func(a, b string) bool {
		ia, okA := idx[a]
		ib, okB := idx[b]
		switch {
		case okA && okB:
			return ia < ib
		case okA != okB:
			return okA
		}
		return a < b
	})
	return mm
}

// Results returns the descriptions of passed and failed assertions
// recorded since the last call of Results.
func (c *Case) Results() Results {
	rr := Results{Passed: c.passed, Failed: c.failed}
	c.passed, c.failed, c.statement = nil, nil, ""
	return rr
}

// Pass records a passed assertion with given description.
func (c *Case) Pass(description string) {
	c.passed = append(c.passed, description)
}

// Fail records a failed assertion with given description.
func (c *Case) Fail(description string) {
	c.failed = append(c.failed, description)
}

// Should sets the statement describing the next assertion which is
// recorded instead of the assertion's default message.
func (c *Case) Should(statement string) *Case {
	c.statement = statement
	return c
}

// record records an assertion's outcome by the current statement.  If
// no statement is set a passed assertion is described by given name
// and a failed one by name and detail.
func (c *Case) record(passed bool, name, detail string) bool {
	description := c.statement
	c.statement = ""
	if passed {
		if description == "" {
			description = fmt.Sprintf(assertPass, name)
		}
		c.Pass(description)
		return true
	}
	if description == "" {
		description = fmt.Sprintf(assertErr, name, detail)
	}
	c.Fail(description)
	return false
}

func typeName(rt reflect.Type) string {
	for rt.Kind() == reflect.Ptr {
		rt = rt.Elem()
	}
	return rt.Name()
}
