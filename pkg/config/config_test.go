// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package config_test

import (
	"errors"
	"testing"

	"github.com/slukits/firetest"
	"github.com/slukits/firetest/pkg/config"
	"github.com/slukits/firetest/pkg/discover"
	"github.com/slukits/firetest/pkg/fx"
	"github.com/stretchr/testify/suite"
)

const tomlConfig = `dir = "tests"
suffix = ".spec.go"
exclude = ["fixtures/**"]
quiet = true
color = "never"
`

const yamlConfig = `dir: specs
suffix: .test.so
ignore: [vendor]
`

type configuration struct {
	suite.Suite
	dir *fx.Dir
}

func (s *configuration) SetupTest() {
	for _, env := range []string{
		config.EnvDir, config.EnvSuffix, config.EnvQuiet} {
		s.T().Setenv(env, "")
	}
	s.dir = fx.NewDir(s.T()).CWD()
}

func (s *configuration) TearDownTest() { s.dir.Reset() }

func (s *configuration) load(file string) *config.Config {
	s.T().Helper()
	cfg, err := config.Load(file, config.Default(discover.DefaultSuffix))
	s.Require().NoError(err)
	return cfg
}

func (s *configuration) TestDefaults_without_configuration_file() {
	s.Equal(config.Default(discover.DefaultSuffix), s.load(""))
}

func (s *configuration) TestReads_toml_file_of_working_directory() {
	s.dir.MkFile(".firetest.toml", tomlConfig)
	cfg := s.load("")
	s.Equal(&config.Config{
		Dir:     "tests",
		Suffix:  ".spec.go",
		Exclude: []string{"fixtures/**"},
		Ignore:  discover.DefaultIgnore,
		Quiet:   true,
		Color:   config.ColorNever,
		File:    ".firetest.toml",
	}, cfg)
	s.NoError(cfg.Validate())
}

func (s *configuration) TestReads_given_yaml_file() {
	s.dir.MkFile("ci/firetest.yaml", yamlConfig)
	cfg := s.load(s.dir.Path("ci/firetest.yaml"))
	s.Equal("specs", cfg.Dir)
	s.Equal(".test.so", cfg.Suffix)
	s.Equal([]string{"vendor"}, cfg.Ignore)
	s.Equal(config.ColorAuto, cfg.Color)
	s.Equal(s.dir.Path("ci/firetest.yaml"), cfg.File)
}

func (s *configuration) TestPrefers_toml_over_yaml() {
	s.dir.MkFile(".firetest.yaml", yamlConfig)
	s.dir.MkFile(".firetest.toml", tomlConfig)
	s.Equal("tests", s.load("").Dir)
}

func (s *configuration) TestFails_for_unparsable_file() {
	s.dir.MkFile(".firetest.toml", "dir = ")
	_, err := config.Load("", config.Default(discover.DefaultSuffix))
	s.True(errors.Is(err, firetest.ErrConfiguration))
	s.Contains(err.Error(), ".firetest.toml")
}

func (s *configuration) TestFails_for_missing_given_file() {
	_, err := config.Load(s.dir.Path("missing.toml"),
		config.Default(discover.DefaultSuffix))
	s.True(errors.Is(err, firetest.ErrConfiguration))
}

func (s *configuration) TestEnvironment_overrides_file() {
	s.dir.MkFile(".firetest.toml", tomlConfig)
	s.T().Setenv(config.EnvDir, "env-tests")
	s.T().Setenv(config.EnvSuffix, ".env.go")
	cfg := s.load("")
	s.Equal("env-tests", cfg.Dir)
	s.Equal(".env.go", cfg.Suffix)
	s.Equal([]string{"fixtures/**"}, cfg.Exclude)
}

func (s *configuration) TestEnvironment_enables_quiet_mode() {
	s.T().Setenv(config.EnvQuiet, "1")
	s.True(s.load("").Quiet)
}

func (s *configuration) TestFails_for_invalid_quiet_environment() {
	s.T().Setenv(config.EnvQuiet, "loud")
	_, err := config.Load("", config.Default(discover.DefaultSuffix))
	s.True(errors.Is(err, firetest.ErrConfiguration))
	s.Contains(err.Error(), config.EnvQuiet)
}

func (s *configuration) TestOverrides_non_zero_values() {
	cfg := config.Default(discover.DefaultSuffix)
	s.Require().NoError(cfg.Override(&config.Config{
		Dir: "flags", Color: config.ColorAlways}))
	s.Equal("flags", cfg.Dir)
	s.Equal(discover.DefaultSuffix, cfg.Suffix)
	s.Equal(config.ColorAlways, cfg.Color)
}

func (s *configuration) TestReports_invalid_values() {
	cfg := config.Default("")
	cfg.Color = "sometimes"
	cfg.Exclude = []string{"[unclosed"}
	err := cfg.Validate()
	s.True(errors.Is(err, firetest.ErrConfiguration))
	s.Contains(err.Error(), "suffix")
	s.Contains(err.Error(), `"sometimes"`)
	s.Contains(err.Error(), "[unclosed")
}

func (s *configuration) TestDecides_colors_by_mode_and_terminal() {
	cfg := config.Default(discover.DefaultSuffix)
	s.True(cfg.Colors(true))
	s.False(cfg.Colors(false))
	cfg.Color = config.ColorAlways
	s.True(cfg.Colors(false))
	cfg.Color = config.ColorNever
	s.False(cfg.Colors(true))
}

func TestConfiguration(t *testing.T) {
	suite.Run(t, new(configuration))
}
