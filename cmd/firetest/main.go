/*
Firetest runs the test cases of go plugins found below a directory.

Usage:

	firetest [flags] [dir]

A test file is a go plugin whose file name ends in ".test.so" (see
--suffix), e.g. built by

	go build -buildmode=plugin -o tests/adds.test.so ./calc/adds

Its init functions register its test cases:

	type AddsTwoNumbers struct{ firetest.Case }

	func (c *AddsTwoNumbers) TestAddsPositive() {
	    c.Should("add 1 and 2 to 3").Eq(3, Add(1, 2))
	}

	func init() { firetest.Register(&AddsTwoNumbers{}) }

Firetest loads each test file once, runs each discovered test case's
test methods in the order of their declaration framed by the case's
SetUp, BeforeEach, AfterEach and TearDown methods and reports the
outcome of each assertion:

	FireTest: [STARTING] Test suite is located at "/home/me/project/tests"
	FireTest: [STARTING] Finding all files with the extension ".test.so"
	FireTest: [LOADING] Test file "/home/me/project/tests/adds.test.so"
	FireTest: [LOADING] Test case "adds.AddsTwoNumbers"
	FireTest: [RUNNING] adds.AddsTwoNumbers::TestAddsPositive()
	FireTest: [PASSED] add 1 and 2 to 3
	FireTest: [RESULT] (Passed: 1, Failed: 0)
	...
	FireTest: [FINAL] (Passed: 1, Failed: 0)

The exit status is 0 if no assertion failed, 1 if an assertion failed
and 2 if the test directory doesn't exist or a test file or test case
couldn't be loaded.  Flags and environment variables override the
values of a .firetest.toml or .firetest.yaml configuration file in the
working directory:

	dir = "tests"
	suffix = ".test.so"
	exclude = ["fixtures/**"]
	color = "auto"
*/
package main

import (
	"github.com/slukits/firetest/pkg/cli"
)

func main() {
	cli.Main(cli.PluginLoading)
}
