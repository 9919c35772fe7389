// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package firetest

import (
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"sync"
)

var testCaseType = reflect.TypeOf((*TestCase)(nil)).Elem()

// Entry is a registered type.  Name is the qualified type name, e.g.
// "calc.AddsTwoNumbers", Origin the source file which registered the
// type.  An entry is loaded once a loader claimed it for a test file.
type Entry struct {
	Name   string
	Type   reflect.Type
	Origin string
	Loaded bool
}

// IsCase returns true iff e's type or a pointer to it implements the
// TestCase interface.
func (e Entry) IsCase() bool {
	if e.Type == nil {
		return false
	}
	if e.Type.Implements(testCaseType) {
		return true
	}
	return e.Type.Kind() != reflect.Interface &&
		reflect.PointerTo(e.Type).Implements(testCaseType)
}

// New returns a new instance of e's type bound to its origin (see
// [Bind]).  An ErrDiscovery-error is returned if e has no type or a
// type which can't be instantiated like an interface type.
func (e Entry) New() (TestCase, error) {
	if e.Type == nil {
		return nil, DiscoveryErr(nil,
			"test case %q from %s cannot be found", e.Name, e.Origin)
	}
	if e.Type.Kind() == reflect.Interface {
		return nil, DiscoveryErr(nil,
			"test case %q is abstract and cannot be instantiated", e.Name)
	}
	tc, ok := reflect.New(e.Type).Interface().(TestCase)
	if !ok {
		tc, ok = reflect.New(e.Type).Elem().Interface().(TestCase)
	}
	if !ok {
		return nil, DiscoveryErr(nil,
			"test case %q must implement firetest.TestCase", e.Name)
	}
	Bind(tc, e.Origin)
	return tc, nil
}

// Registry keeps track of registered types and which of them have been
// loaded.  The zero value is ready to use and a Registry is safe for
// concurrent use.  A Registry must not be copied after its first use.
type Registry struct {
	mutex sync.Mutex
	ee    []*Entry
}

// Default is the registry test cases register with through the
// package-level [Register] function.
var Default = &Registry{}

// Register records given prototype's type at the Default registry; see
// [Registry.Register].
func Register(prototype interface{}) {
	Default.register(prototype, 2)
}

// Register records given prototype's type with the caller's source file
// as its origin.  Prototype may be a value, a pointer to a value or a
// typed nil pointer like
//
//	(*AddsTwoNumbers)(nil)
//
// while an interface type is registered by a nil pointer to it.  The
// type of a registered (non-nil) pointer is the pointer's element type.
func (r *Registry) Register(prototype interface{}) {
	r.register(prototype, 2)
}

func (r *Registry) register(prototype interface{}, skip int) {
	_, origin, _, _ := runtime.Caller(skip)
	r.RegisterFrom(origin, prototype)
}

// RegisterFrom records given prototype's type with given origin.
func (r *Registry) RegisterFrom(origin string, prototype interface{}) {
	e := &Entry{Origin: origin}
	if rt := reflect.TypeOf(prototype); rt != nil {
		if rt.Kind() == reflect.Ptr {
			rt = rt.Elem()
		}
		e.Type, e.Name = rt, rt.String()
	} else {
		e.Name = "<nil>"
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.ee = append(r.ee, e)
}

// Len returns the number of registered entries.
func (r *Registry) Len() int {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return len(r.ee)
}

// Entries returns a copy of the registered entries in order of their
// registration.
func (r *Registry) Entries() []Entry {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	ee := make([]Entry, len(r.ee))
	for i, e := range r.ee {
		ee[i] = *e
	}
	return ee
}

// Loaded returns the set of registration indices of all loaded
// entries.  Entries are told apart by their index since different
// packages may register types of the same qualified name, e.g. two
// plugins both defining main.Tests.
func (r *Registry) Loaded() map[int]bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	loaded := map[int]bool{}
	for i, e := range r.ee {
		if e.Loaded {
			loaded[i] = true
		}
	}
	return loaded
}

// Entry returns the entry registered at given index.
func (r *Registry) Entry(idx int) Entry {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return *r.ee[idx]
}

// Claim marks all not yet loaded entries registered from given source
// file as loaded and returns their number.
func (r *Registry) Claim(file string) int {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	n := 0
	for _, e := range r.ee {
		if e.Loaded || !SameSource(e.Origin, file) {
			continue
		}
		e.Loaded = true
		n++
	}
	return n
}

// ClaimSince marks all not yet loaded entries registered at or after
// given index (see [Registry.Len]) as loaded and returns their number.
func (r *Registry) ClaimSince(mark int) int {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	n := 0
	for i := mark; i < len(r.ee); i++ {
		if r.ee[i].Loaded {
			continue
		}
		r.ee[i].Loaded = true
		n++
	}
	return n
}

// SameSource reports if given registration origin denotes given file.
// Origins are absolute paths unless a binary was built with -trimpath
// in which case they are module-qualified, e.g.
// "example.com/calc/adds.test.go".  A relative origin matches if its
// file name and at least its parent directory are the trailing
// elements of given file's absolute path.
func SameSource(origin, file string) bool {
	if origin == "" || file == "" {
		return false
	}
	abs, err := filepath.Abs(file)
	if err != nil {
		abs = file
	}
	abs = filepath.ToSlash(filepath.Clean(abs))
	origin = filepath.ToSlash(filepath.Clean(origin))
	if origin == abs {
		return true
	}
	if filepath.IsAbs(filepath.FromSlash(origin)) {
		return false
	}
	oo, ff := strings.Split(origin, "/"), strings.Split(abs, "/")
	if len(oo) < 2 {
		return false
	}
	n := 0
	for n < len(oo) && n < len(ff) &&
		oo[len(oo)-1-n] == ff[len(ff)-1-n] {
		n++
	}
	return n >= 2
}
