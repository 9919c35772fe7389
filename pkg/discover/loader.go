// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package discover

import (
	"plugin"

	"github.com/slukits/firetest"
)

// A Loader loads a test file, i.e. it makes the types the file
// registers available as loaded entries of given registry.
type Loader interface {
	Load(file string, reg *firetest.Registry) error
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(file string, reg *firetest.Registry) error

// Load calls f.
func (f LoaderFunc) Load(file string, reg *firetest.Registry) error {
	return f(file, reg)
}

// SourceLoader loads test files whose test cases were compiled into
// the running program: the types registered from a test file's init
// functions are claimed for it.  A test file which wasn't compiled in
// loads nothing.
type SourceLoader struct{}

// Load claims registry entries whose origin is given file.
func (SourceLoader) Load(file string, reg *firetest.Registry) error {
	reg.Claim(file)
	return nil
}

// PluginLoader loads test files which were built as go plugins, e.g.
//
//	go build -buildmode=plugin -o adds.test.so ./adds
//
// Opening a plugin runs its init functions which register its test
// cases at [firetest.Default]; these registrations are claimed for the
// plugin file.  Hence the plugin must register with the registry passed
// to Load which is firetest.Default for the firetest command.
type PluginLoader struct{}

// Load opens given plugin file and claims the entries which were
// registered while opening it.
func (PluginLoader) Load(file string, reg *firetest.Registry) error {
	mark := reg.Len()
	if _, err := plugin.Open(file); err != nil {
		return firetest.DiscoveryErr(err,
			"test file %q cannot be loaded", file)
	}
	reg.ClaimSince(mark)
	return nil
}
