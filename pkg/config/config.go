// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package config provides the configuration of a firetest run.  It is
// populated by coalescing values from these sources, in descending
// order of precedence:
//
//  1. command line flags (applied by the caller through Override),
//  2. environment variables FIRETEST_DIR, FIRETEST_SUFFIX and
//     FIRETEST_QUIET,
//  3. a configuration file, i.e. given file or .firetest.toml,
//     .firetest.yaml or .firetest.yml in the working directory,
//  4. default fallbacks.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-playground/validator/v10"
	"github.com/imdario/mergo"
	"github.com/slukits/firetest"
	"github.com/slukits/firetest/pkg/discover"
	"github.com/slukits/firetest/pkg/logging"
	"gopkg.in/yaml.v3"
)

// Environment variables overriding configuration file values.
const (
	EnvDir    = "FIRETEST_DIR"
	EnvSuffix = "FIRETEST_SUFFIX"
	EnvQuiet  = "FIRETEST_QUIET"
)

// Files lists the configuration file names looked up in the working
// directory in this order if no file is given.
var Files = []string{".firetest.toml", ".firetest.yaml", ".firetest.yml"}

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config configures a firetest run.
type Config struct {

	// Dir is the test directory.
	Dir string `toml:"dir" yaml:"dir" validate:"required"`

	// Suffix identifies test files.
	Suffix string `toml:"suffix" yaml:"suffix" validate:"required"`

	// Exclude lists doublestar patterns of paths relative to Dir which
	// are not searched for test files.
	Exclude []string `toml:"exclude" yaml:"exclude" validate:"dive,glob"`

	// Ignore lists directory names which are not searched for test
	// files.
	Ignore []string `toml:"ignore" yaml:"ignore" validate:"dive,required"`

	// Quiet suppresses the report.
	Quiet bool `toml:"quiet" yaml:"quiet"`

	// Color is one of auto, always or never.
	Color string `toml:"color" yaml:"color" validate:"oneof=auto always never"`

	// File is the configuration file the values were read from if any.
	File string `toml:"-" yaml:"-"`
}

// Default returns the default configuration for test files with given
// suffix.
func Default(suffix string) *Config {
	return &Config{
		Dir:    ".",
		Suffix: suffix,
		Ignore: append([]string(nil), discover.DefaultIgnore...),
		Color:  ColorAuto,
	}
}

// Load returns given defaults overridden by the values of given
// configuration file and the environment.  If file is empty the first
// existing of [Files] in the working directory is used; it is no error
// if none exists.  The returned configuration is not validated yet.
func Load(file string, defaults *Config) (*Config, error) {
	cfg := &Config{}
	if file == "" {
		file = lookup()
	}
	if file != "" {
		if err := decode(file, cfg); err != nil {
			return nil, &firetest.Error{
				Kind: firetest.ErrConfiguration,
				Msg:  fmt.Sprintf("failed to parse %s", file),
				Err:  err,
			}
		}
		cfg.File = file
		logging.S().Debugf("configuration loaded from: %s", file)
	} else {
		logging.S().Debugf("no configuration file found; running with defaults")
	}

	if err := mergo.Merge(cfg, defaults); err != nil {
		return nil, err
	}
	env, err := fromEnv()
	if err != nil {
		return nil, err
	}
	if err := cfg.Override(env); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Override replaces the values of cfg by the non-zero values of given
// configuration.
func (cfg *Config) Override(with *Config) error {
	return mergo.Merge(cfg, with, mergo.WithOverride)
}

// Validate returns an ErrConfiguration-error reporting all invalid
// values of cfg; nil if cfg is valid.
func (cfg *Config) Validate() error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	ss := []string{}
	for _, fe := range ve {
		ss = append(ss, fmt.Sprintf("%s: invalid value %q (%s)",
			strings.ToLower(fe.Field()), fmt.Sprint(fe.Value()), fe.Tag()))
	}
	return firetest.ConfigurationErr("%s", strings.Join(ss, "; "))
}

// Colors reports if cfg's color mode asks for colors given the output
// is or is not a terminal.
func (cfg *Config) Colors(terminal bool) bool {
	switch cfg.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	return terminal
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("glob", func(
		fl validator.FieldLevel,
	) bool {
		return doublestar.ValidatePattern(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

func lookup() string {
	for _, f := range Files {
		if fi, err := os.Stat(f); err == nil && !fi.IsDir() {
			return f
		}
	}
	return ""
}

func decode(file string, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".yaml", ".yml":
		bb, err := os.ReadFile(file)
		if err != nil {
			return err
		}
		return yaml.Unmarshal(bb, cfg)
	default:
		_, err := toml.DecodeFile(file, cfg)
		return err
	}
}

func fromEnv() (*Config, error) {
	cfg := &Config{
		Dir:    os.Getenv(EnvDir),
		Suffix: os.Getenv(EnvSuffix),
	}
	if v, ok := os.LookupEnv(EnvQuiet); ok && v != "" {
		quiet, err := strconv.ParseBool(v)
		if err != nil {
			return nil, firetest.ConfigurationErr(
				"%s: invalid boolean %q", EnvQuiet, v)
		}
		cfg.Quiet = quiet
	}
	return cfg, nil
}
