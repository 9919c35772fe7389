// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package firetest

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/google/go-cmp/cmp"
)

// assertPass is the format-string describing passed assertions.
const assertPass = "assert %s"

// assertErr is the format-string describing failed assertions.
const assertErr = "assert %s: %v"

// Assert records a passed assertion iff given condition is true and a
// failed one otherwise.  The assertion is described by a preceding
// Should-statement:
//
//	c.Should("return 3 for 1+2").Assert(add(1, 2) == 3)
func (c *Case) Assert(condition bool) bool {
	return c.record(condition, "condition", "unfulfilled")
}

// trueErr default message for failed 'true'-assertion.
const trueErr = "expected given value to be true"

// True records a failed assertion and returns false iff given value is
// not true; otherwise a passed assertion is recorded and true returned.
func (c *Case) True(value bool) bool {
	return c.record(value, "true", trueErr)
}

// falseErr default message for failed 'false'-assertion.
const falseErr = "expected given value to be false"

// False records a failed assertion and returns false iff given value is
// not false; otherwise a passed assertion is recorded and true
// returned.
func (c *Case) False(value bool) bool {
	return c.record(!value, "false", falseErr)
}

const eqTypeErr = "types mismatch %v != %v"

// Eq records a failed assertion described by a diff and returns false
// if given values are not considered equal; otherwise true is
// returned.  a and b are considered equal if they are of the same type
// or one of them is string while the other one is a Stringer
// implementation and
//   - a == b in case of two pointers
//   - a == b in case of two strings
//   - a.String() == b.String() in case of Stringer implementations
//   - a == b.Stringer() or a.Stringer() == b in case of string and
//     Stringer implementation.
//   - fmt.Sprintf("%v", a) == fmt.Sprintf("%v", b) in other cases
func (c *Case) Eq(a, b interface{}) bool {
	ok, detail := eq(a, b)
	return c.record(ok, "equal", detail)
}

func eq(a, b interface{}) (bool, string) {
	differentTypes := fmt.Sprintf("%T", a) != fmt.Sprintf("%T", b)
	if differentTypes && !isStringers(a, b) {
		return false, fmt.Sprintf(eqTypeErr,
			fmt.Sprintf("%T", a), fmt.Sprintf("%T", b))
	}
	if reflect.ValueOf(a).Kind() == reflect.Ptr {
		if a != b {
			return false, fmt.Sprintf("%p != %p", a, b)
		}
		return true, ""
	}
	if diff := diff(a, b, differentTypes); diff != "" {
		return false, diff
	}
	return true, ""
}

func isStringers(a, b interface{}) bool {
	_, okA := a.(fmt.Stringer)
	_, okB := b.(fmt.Stringer)
	if !okA && !okB {
		return false
	}
	if okA && okB {
		return true
	}
	if okA {
		_, ok := b.(string)
		return ok
	}
	_, ok := a.(string)
	return ok
}

func diff(a, b interface{}, differentTypes bool) string {
	if differentTypes {
		if _a, ok := a.(fmt.Stringer); ok {
			a = _a.String()
		}
		if _b, ok := b.(fmt.Stringer); ok {
			b = _b.String()
		}
	}
	diff := ""
	switch a := a.(type) {
	case string:
		if a != b.(string) {
			diff = cmp.Diff(a, b.(string))
		}
	case fmt.Stringer:
		if a.String() != b.(fmt.Stringer).String() {
			diff = cmp.Diff(a.String(), b.(fmt.Stringer).String())
		}
	default:
		if fmt.Sprintf("%v", a) != fmt.Sprintf("%v", b) {
			diff = cmp.Diff(fmt.Sprintf("%v", a), fmt.Sprintf("%v", b))
		}
	}
	return diff
}

// containsErr default message for failed 'Contains'-assertion.
const containsErr = "%q doesn't contain %q"

// StringRepresentation documents what a string representation of any
// type is:
//   - the string if it is of type string,
//   - the return value of String if the Stringer interface is
//     implemented,
//   - fmt.Sprintf("%v", value) in all other cases.
type StringRepresentation interface{}

// Contains records a failed assertion and returns false iff given
// value's string representation doesn't contain given sub-string;
// otherwise true is returned.
func (c *Case) Contains(value StringRepresentation, sub string) bool {
	str := toString(value)
	return c.record(strings.Contains(str, sub), "contains",
		fmt.Sprintf(containsErr, str, sub))
}

func toString(value interface{}) string {
	switch value := value.(type) {
	case string:
		return value
	case fmt.Stringer:
		return value.String()
	default:
		return fmt.Sprintf("%v", value)
	}
}

// matchedErr default message for failed 'Matched'-assertion.
const matchedErr = "regexp '%s' doesn't match '%s'"

// Matched records a failed assertion and returns false iff given
// value's string representation isn't matched by given regex;
// otherwise true is returned.  An invalid regex fails the assertion.
func (c *Case) Matched(value StringRepresentation, regex string) bool {
	ok, detail := matched(value, regex)
	return c.record(ok, "matched", detail)
}

func matched(value StringRepresentation, regex string) (bool, string) {
	re, err := regexp.Compile(regex)
	if err != nil {
		return false, err.Error()
	}
	str := toString(value)
	return re.MatchString(str), fmt.Sprintf(matchedErr, regex, str)
}

// errErr default message for failed "Err"-assertion
const errErr = "given value doesn't implement 'error'"

// Err records a failed assertion and returns false iff given value
// doesn't implement the error-interface; otherwise true is returned.
func (c *Case) Err(err interface{}) bool {
	_, ok := err.(error)
	return c.record(ok, "error", errErr)
}

// errIsErr default message for failed "ErrIs"-assertion
const errIsErr = "given error doesn't wrap target-error"

// ErrIs records a failed assertion and returns false iff given err
// doesn't implement the error-interface or doesn't wrap given target;
// otherwise true is returned.
func (c *Case) ErrIs(err interface{}, target error) bool {
	e, ok := err.(error)
	if !ok {
		return c.record(false, "error is", errIsErr)
	}
	return c.record(errors.Is(e, target), "error is",
		fmt.Sprintf("%s: %v: %v", errIsErr, e, target))
}

// panicsErr default message for failed "Panics"-assertion
const panicsErr = "given function doesn't panic"

// Panics records a failed assertion and returns false iff given
// function doesn't panic; otherwise true is returned.
func (c *Case) Panics(f func()) bool {
	return c.record(panics(f), "panics", panicsErr)
}

func panics(f func()) (hasPanicked bool) {
	defer func() {
		if r := recover(); r != nil {
			hasPanicked = true
		}
	}()
	f()
	return false
}

// Not implements negations of [Case]-assertions, e.g. [Not.True].
type Not struct{ c *Case }

// Not provides the negations of c's assertions.
func (c *Case) Not() Not { return Not{c: c} }

// notTrueErr default message for failed negated 'true'-assertion.
const notTrueErr = "expected given value not to be true"

// True passes iff [Case.True] with given argument would fail.
func (n Not) True(value bool) bool {
	return n.c.record(!value, "not-true", notTrueErr)
}

// Eq passes iff [Case.Eq] with given arguments would fail.
func (n Not) Eq(a, b interface{}) bool {
	ok, _ := eq(a, b)
	return n.c.record(!ok, "not-equal",
		fmt.Sprintf("%v == %v", a, b))
}

// notContainsErr default message for failed negated
// 'Contains'-assertion.
const notContainsErr = "%q does contain %q"

// Contains passes iff [Case.Contains] with given arguments would fail.
func (n Not) Contains(value StringRepresentation, sub string) bool {
	str := toString(value)
	return n.c.record(!strings.Contains(str, sub), "not-contains",
		fmt.Sprintf(notContainsErr, str, sub))
}

// notMatchedErr default message for failed negated 'Matched'-assertion.
const notMatchedErr = "regexp '%s' matches '%s'"

// Matched passes iff [Case.Matched] with given arguments would fail
// because the regex doesn't match; an invalid regex fails.
func (n Not) Matched(value StringRepresentation, regex string) bool {
	if _, err := regexp.Compile(regex); err != nil {
		return n.c.record(false, "not-matched", err.Error())
	}
	ok, _ := matched(value, regex)
	return n.c.record(!ok, "not-matched",
		fmt.Sprintf(notMatchedErr, regex, toString(value)))
}

// notPanicsErr default message for failed negated 'Panics'-assertion.
const notPanicsErr = "given function panics"

// Panics passes iff given function doesn't panic.
func (n Not) Panics(f func()) bool {
	return n.c.record(!panics(f), "not-panics", notPanicsErr)
}
