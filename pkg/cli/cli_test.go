// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cli_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/slukits/firetest"
	"github.com/slukits/firetest/pkg/cli"
	"github.com/slukits/firetest/pkg/config"
	"github.com/slukits/firetest/pkg/discover"
	"github.com/slukits/firetest/pkg/fx"
	"github.com/slukits/firetest/pkg/report"
	"github.com/stretchr/testify/suite"
	ucli "github.com/urfave/cli/v2"
)

type passing struct{ firetest.Case }

func (c *passing) TestPasses() { c.Should("pass").True(true) }

type failing struct{ firetest.Case }

func (c *failing) TestFails() { c.Should("expected 3 got -1").Eq(3, -1) }

type app struct {
	suite.Suite
	dir *fx.Dir
	reg *firetest.Registry
	out *bytes.Buffer
}

func (s *app) SetupTest() {
	s.dir = fx.NewDir(s.T())
	s.reg = &firetest.Registry{}
	s.out = &bytes.Buffer{}
}

// mkFile adds a test file to the test directory whose test cases are
// given prototypes compiled into the test binary.
func (s *app) mkFile(name string, protos ...interface{}) {
	s.dir.MkFile(name, "package cli_test\n")
	for _, p := range protos {
		s.reg.RegisterFrom(s.dir.Path(name), p)
	}
}

func (s *app) run(args ...string) error {
	a := cli.App(cli.SourceLoading, s.reg)
	a.Writer = s.out
	a.ExitErrHandler = func(*ucli.Context, error) {}
	return a.Run(append([]string{"firetest"}, args...))
}

func (s *app) exitCode(err error) int {
	var ec ucli.ExitCoder
	s.Require().True(errors.As(err, &ec))
	return ec.ExitCode()
}

func (s *app) TestSucceeds_if_all_assertions_pass() {
	s.mkFile("passing.test.go", &passing{})
	s.NoError(s.run("--no-color", s.dir.Name))
	s.Contains(s.out.String(),
		report.Prefix+"[RUNNING] cli_test.passing::TestPasses()")
	s.Contains(s.out.String(),
		report.Prefix+"[FINAL] (Passed: 1, Failed: 0)\n")
}

func (s *app) TestExits_with_1_if_an_assertion_fails() {
	s.mkFile("passing.test.go", &passing{})
	s.mkFile("failing.test.go", &failing{})
	err := s.run("--no-color", s.dir.Name)
	s.Equal(1, s.exitCode(err))
	s.Contains(s.out.String(), report.Prefix+"[#0] expected 3 got -1")
	s.Contains(s.out.String(),
		report.Prefix+"[FINAL] (Passed: 1, Failed: 1)\n")
}

func (s *app) TestExits_fatally_for_a_missing_directory() {
	err := s.run(s.dir.Path("missing"))
	s.Equal(cli.ExitFatal, s.exitCode(err))
	s.Contains(err.Error(), "could not be found")
	s.Empty(s.out.String())
}

func (s *app) TestExits_fatally_for_an_abstract_case() {
	s.mkFile("abstract.test.go", (*firetest.TestCase)(nil))
	err := s.run(s.dir.Name)
	s.Equal(cli.ExitFatal, s.exitCode(err))
	s.Contains(err.Error(), "abstract")
}

func (s *app) TestReports_nothing_if_quiet() {
	s.mkFile("failing.test.go", &failing{})
	err := s.run("--quiet", s.dir.Name)
	s.Equal(1, s.exitCode(err))
	s.Empty(s.out.String())
}

func (s *app) TestRuns_only_files_with_given_suffix() {
	s.mkFile("failing.test.go", &failing{})
	s.mkFile("passing.spec.go", &passing{})
	s.NoError(s.run("--suffix", ".spec.go", s.dir.Name))
	s.Contains(s.out.String(), `extension ".spec.go"`)
}

func (s *app) TestSkips_excluded_paths() {
	s.mkFile("fixtures/failing.test.go", &failing{})
	s.mkFile("passing.test.go", &passing{})
	s.NoError(s.run("--exclude", "fixtures/**", s.dir.Name))
}

func (s *app) TestFlags_override_the_configuration() {
	var cfg *config.Config
	a := ucli.NewApp()
	a.Flags = cli.Flags
	a.Action = func(c *ucli.Context) (err error) {
		cfg, err = cli.Configuration(c, cli.PluginLoading)
		return err
	}
	s.Require().NoError(a.Run([]string{"firetest",
		"--suffix", ".spec.so", "--exclude", "a/**", "--exclude", "b/**",
		"--no-color", "--quiet", "tests"}))

	s.Equal("tests", cfg.Dir)
	s.Equal(".spec.so", cfg.Suffix)
	s.Equal([]string{"a/**", "b/**"}, cfg.Exclude)
	s.Equal(config.ColorNever, cfg.Color)
	s.True(cfg.Quiet)
}

func (s *app) TestRejects_an_invalid_color_mode() {
	err := s.run("--color", "sometimes", s.dir.Name)
	s.Equal(cli.ExitFatal, s.exitCode(err))
	s.Contains(err.Error(), "sometimes")
}

func (s *app) TestLoading_selects_suffix_and_loader() {
	s.Equal(discover.PluginSuffix, cli.PluginLoading.Suffix())
	s.Equal(discover.DefaultSuffix, cli.SourceLoading.Suffix())
	s.IsType(discover.PluginLoader{}, cli.PluginLoading.Loader())
	s.IsType(discover.SourceLoader{}, cli.SourceLoading.Loader())
}

func TestApp(t *testing.T) {
	suite.Run(t, new(app))
}
