// Copyright (c) 2022 Stephan Lukits. All rights reserved.
//  Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// indexer provides the caseMethodsIndexer-type whose only task it is to
// index the test methods of a test case's source file by their
// appearance.

package firetest

import (
	"go/ast"
	"go/parser"
	"go/token"
	"path/filepath"
	"strings"
	"sync"
)

var indexer = caseMethodsIndexer{}

// caseMethodsIndexer provides get(file, caseName) which parses on its
// first call for a file the file's test cases and their test methods to
// index the latter in order of their appearance.  A file which can't
// be read or parsed is indexed as having no test cases.  The indexer is
// concurrency save.
type caseMethodsIndexer struct {
	mutex sync.Mutex
	//       file-name  case-name  method-name index
	_Indexer map[string]map[string]map[string]int
}

// get returns the method indices of given test case which is defined in
// given file.  The returned map must not be modified.
func (i *caseMethodsIndexer) get(file, tcase string) map[string]int {
	if file == "" {
		return nil
	}
	i.mutex.Lock()
	defer i.mutex.Unlock()

	if _, ok := i._Indexer[file]; !ok {
		i._Index(file)
	}
	return i._Indexer[file][tcase]
}

func (i *caseMethodsIndexer) _Index(file string) {
	if i._Indexer == nil {
		i._Indexer = map[string]map[string]map[string]int{}
	}
	i._Indexer[file] = map[string]map[string]int{}
	f, err := parser.ParseFile(token.NewFileSet(), file, nil, 0)
	if err != nil {
		return
	}
	i._ParseCases(f, file)
	if len(i._Indexer[file]) == 0 {
		return
	}
	i._ParseCaseMethods(f, file)
}

// _IsIdent helps investigating if a function's receiver field type
// refers to a known test case by returning given field-type's
// identifier-name if there is any.
func (i *caseMethodsIndexer) _IsIdent(fldType ast.Expr) (string, bool) {
	if ident, ok := fldType.(*ast.Ident); ok {
		return ident.Name, true
	}

	starExpr, ok := fldType.(*ast.StarExpr)
	if !ok {
		return "", false
	}
	ident, ok := starExpr.X.(*ast.Ident)
	if !ok {
		return "", false
	}

	return ident.Name, true
}

// _IsCaseMethod returns a case's name, the test method's name and true
// in case given function declaration represents a test method;
// zero-strings and false otherwise.
func (i *caseMethodsIndexer) _IsCaseMethod(fd *ast.FuncDecl, fl string) (
	tcase, method string, _ bool) {

	if fd.Recv == nil {
		return "", "", false
	}
	if special[fd.Name.Name] ||
		len(fd.Type.Params.List) != 0 ||
		!strings.HasPrefix(fd.Name.Name, TestPrefix) {
		return "", "", false
	}
	for _, field := range fd.Recv.List {
		name, ok := i._IsIdent(field.Type)
		if !ok {
			continue
		}
		if _, ok := i._Indexer[fl][name]; !ok {
			continue
		}
		return name, fd.Name.Name, true
	}
	return "", "", false
}

func (i *caseMethodsIndexer) _ParseCaseMethods(f *ast.File, fname string) {
	ast.Inspect(f, func(n ast.Node) bool {
		if fd, ok := n.(*ast.FuncDecl); ok {
			if tcase, name, ok := i._IsCaseMethod(fd, fname); ok {
				idx := len(i._Indexer[fname][tcase])
				i._Indexer[fname][tcase][name] = idx
			}
			return false
		}
		return true
	})
}

const firetestPath = `"github.com/slukits/firetest"`

// _ParseImports determines the selector under which the Case type is
// imported into a test file.  The empty selector with true is returned
// for a dot-import.
func (i *caseMethodsIndexer) _ParseImports(f *ast.File) (string, bool) {
	for _, imp := range f.Imports {
		if imp.Path.Value != firetestPath {
			continue
		}
		if imp.Name != nil {
			if imp.Name.Name != "." {
				return imp.Name.Name, true
			}
			return "", true
		}
		return filepath.Base(strings.Trim(imp.Path.Value, `"`)), true
	}
	return "", false
}

// _IsCase returns true if given struct-type embeds the Case-struct.
func (i *caseMethodsIndexer) _IsCase(
	st *ast.StructType, caseSlc string) bool {

	for _, field := range st.Fields.List {
		if len(field.Names) != 0 {
			continue
		}
		typ := field.Type
		if star, ok := typ.(*ast.StarExpr); ok {
			typ = star.X
		}
		if caseSlc == "" {
			if ident, ok := typ.(*ast.Ident); ok && ident.Name == "Case" {
				return true
			}
			continue
		}
		slc, ok := typ.(*ast.SelectorExpr)
		if !ok || slc.Sel.Name != "Case" {
			continue
		}
		if selIdent, ok := slc.X.(*ast.Ident); ok &&
			selIdent.Name == caseSlc {
			return true
		}
	}
	return false
}

// _IsStruct returns a struct's name its ast-representation and true in
// case given node is a struct-definition; zeros and false otherwise.
func (i *caseMethodsIndexer) _IsStruct(n ast.Node) (
	string, *ast.StructType, bool) {

	typeSpec, ok := n.(*ast.TypeSpec)
	if !ok {
		return "", nil, false
	}
	structType, ok := typeSpec.Type.(*ast.StructType)
	if !ok {
		return "", nil, false
	}
	return typeSpec.Name.Name, structType, true
}

// _ParseCases extracts all the struct types from a test file embedding
// the Case-type.  NOTE since test methods may be defined 'before' the
// case type is defined the cases are parsed in an extra first pass.
// A file of the firetest package itself references Case without
// selector.
func (i *caseMethodsIndexer) _ParseCases(f *ast.File, fname string) {
	slc, ok := i._ParseImports(f)
	if !ok && f.Name.Name != "firetest" {
		return
	}

	ast.Inspect(f, func(n ast.Node) bool {
		name, structType, ok := i._IsStruct(n)
		if !ok {
			return true
		}
		if !i._IsCase(structType, slc) {
			return true
		}
		i._Indexer[fname][name] = map[string]int{}
		return true
	})
}
