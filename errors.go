// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package firetest

import (
	"errors"
	"fmt"
)

// ErrConfiguration is the kind of errors reporting an unusable run
// configuration, e.g. a test directory which doesn't exist.
var ErrConfiguration = errors.New("firetest: configuration")

// ErrDiscovery is the kind of errors reporting that a test file or a
// test case found in it couldn't be loaded respectively instantiated.
var ErrDiscovery = errors.New("firetest: discovery")

// Error is the only error type of the firetest packages.  Its Kind is
// either ErrConfiguration or ErrDiscovery, i.e.
//
//	errors.Is(err, firetest.ErrDiscovery)
//
// tells if a run was aborted because of a broken test case.
type Error struct {
	Kind error
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// Is reports a match if target is e's kind.
func (e *Error) Is(target error) bool { return target == e.Kind }

func (e *Error) Unwrap() error { return e.Err }

// ConfigurationErr returns an ErrConfiguration-kind error with a
// message formatted from given format and arguments.
func ConfigurationErr(format string, args ...interface{}) error {
	return &Error{Kind: ErrConfiguration, Msg: fmt.Sprintf(format, args...)}
}

// DiscoveryErr returns an ErrDiscovery-kind error with given message
// wrapping given err which may be nil.
func DiscoveryErr(err error, format string, args ...interface{}) error {
	return &Error{
		Kind: ErrDiscovery,
		Msg:  fmt.Sprintf(format, args...),
		Err:  err,
	}
}
