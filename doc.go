// Package firetest provides the contract and the building blocks of a
// minimal test-suite runner: test cases are registered types whose
// source files are found by a file-suffix convention below a test
// directory.  A suite discovers these files, instantiates the test
// cases registered from them and runs their test methods framed by the
// fixture lifecycle
//
//	SetUp → { BeforeEach → TestXxx → AfterEach }* → TearDown
//
// while it reports each assertion's outcome line by line.  A run with
// at least one failed assertion exits the process with status 1.
//
// A test case embeds [Case] and registers itself from its test file,
// e.g. adds_two_numbers.test.go:
//
//	package calc
//
//	import "github.com/slukits/firetest"
//
//	type AddsTwoNumbers struct{ firetest.Case }
//
//	func (c *AddsTwoNumbers) TestAddsPositive() {
//	    c.Should("add 1 and 2 to 3").Eq(3, Add(1, 2))
//	}
//
//	func init() { firetest.Register(&AddsTwoNumbers{}) }
//
// A program which compiles its test cases in runs them by the cli
// package:
//
//	func main() { cli.Main(cli.SourceLoading) }
//
// The firetest command instead loads test files which were built as go
// plugins (suffix ".test.so") at runtime.
//
// Test methods are the exported methods of a case starting with "Test"
// which neither take arguments nor return values.  They are run in the
// order of their declaration in the test file.  Assertions of a Case
// record a passed or failed description which the suite collects after
// each test method.  A failing test method never stops a run; only a
// test directory which doesn't exist or a test case which can't be
// instantiated aborts a run before any test is executed.
package firetest
