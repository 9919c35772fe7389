// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package cli provides the firetest command line application.  The
// firetest command uses it to run test files which are go plugins while
// a program which compiles its test cases in runs them by
//
//	package main
//
//	import (
//	    "github.com/slukits/firetest/pkg/cli"
//	    _ "example.com/project/tests" // registers the test cases
//	)
//
//	func main() { cli.Main(cli.SourceLoading) }
package cli

import (
	"fmt"
	"os"

	"github.com/slukits/firetest"
	"github.com/slukits/firetest/pkg/config"
	"github.com/slukits/firetest/pkg/discover"
	"github.com/slukits/firetest/pkg/logging"
	"github.com/slukits/firetest/pkg/report"
	"github.com/slukits/firetest/pkg/suite"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap/zapcore"
)

// Loading selects how test files are loaded.
type Loading int

const (
	// PluginLoading loads test files which are go plugins.
	PluginLoading Loading = iota

	// SourceLoading claims for a test file the test cases which were
	// compiled into the running program from it.
	SourceLoading
)

// Suffix returns the default test file suffix of l.
func (l Loading) Suffix() string {
	if l == SourceLoading {
		return discover.DefaultSuffix
	}
	return discover.PluginSuffix
}

// Loader returns the test file loader of l.
func (l Loading) Loader() discover.Loader {
	if l == SourceLoading {
		return discover.SourceLoader{}
	}
	return discover.PluginLoader{}
}

// ExitFatal is the exit status of a run which was aborted by a
// configuration or discovery error.
const ExitFatal = 2

// Flags of the firetest application.
var Flags = []cli.Flag{
	&cli.BoolFlag{
		Name:  "v",
		Usage: "verbose output (equivalent to DEBUG log level)",
	},
	&cli.BoolFlag{
		Name:  "vv",
		Usage: "super verbose output (DEBUG log level with callers and stack traces)",
	},
	&cli.StringFlag{
		Name:  "config",
		Usage: "read the configuration from `FILE` instead of .firetest.{toml,yaml}",
	},
	&cli.StringFlag{
		Name:  "suffix",
		Usage: "identify test files by `SUFFIX` (overrides configuration)",
	},
	&cli.StringSliceFlag{
		Name:  "exclude",
		Usage: "skip paths relative to the test directory matching `GLOB`",
	},
	&cli.BoolFlag{
		Name:  "quiet",
		Usage: "suppress the report; only the exit status tells the outcome",
	},
	&cli.StringFlag{
		Name:  "color",
		Usage: "colorize banners: auto, always or never",
	},
	&cli.BoolFlag{
		Name:  "no-color",
		Usage: "equivalent to --color=never",
	},
}

// App returns the firetest application loading test files as given
// whose test cases register with given registry.
func App(loading Loading, reg *firetest.Registry) *cli.App {
	app := cli.NewApp()
	app.Name = "firetest"
	app.Usage = "run the test cases of the test files below a directory"
	app.ArgsUsage = "[dir]"
	app.Description = "firetest searches the given directory (default: " +
		"the configured one or the working directory) for files ending in " +
		"the test file suffix, loads them, runs their test cases and exits " +
		"with status 1 if an assertion failed."
	app.Flags = Flags
	app.HideVersion = true
	app.Before = func(c *cli.Context) error {
		return configureLogging(c)
	}
	app.Action = func(c *cli.Context) error {
		return run(c, loading, reg)
	}
	return app
}

// Main runs the firetest application with the process arguments and
// exits with status 1 if an assertion failed or with ExitFatal if the
// run couldn't be started.
func Main(loading Loading) {
	if err := App(loading, firetest.Default).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitFatal)
	}
}

func run(c *cli.Context, loading Loading, reg *firetest.Registry) error {
	cfg, err := Configuration(c, loading)
	if err != nil {
		return cli.Exit(err.Error(), ExitFatal)
	}
	logging.S().Debugw("configuration", "dir", cfg.Dir,
		"suffix", cfg.Suffix, "file", cfg.File)

	oo := []report.Option{
		report.Writer(c.App.Writer), report.Quiet(cfg.Quiet)}
	if cfg.Color != config.ColorAuto {
		// the writer decides in auto mode
		oo = append(oo, report.Colors(cfg.Colors(false)))
	}
	rpt := report.New(oo...)
	s, err := suite.New(cfg.Dir,
		suite.Suffix(cfg.Suffix),
		suite.Registry(reg),
		suite.Loader(loading.Loader()),
		suite.Reporter(rpt),
		suite.Logger(logging.L()),
		suite.Exclude(cfg.Exclude...),
		suite.Ignore(cfg.Ignore...),
	)
	if err != nil {
		return cli.Exit(err.Error(), ExitFatal)
	}
	if tt := s.Run(); tt.ExitCode() != 0 {
		return cli.Exit("", tt.ExitCode())
	}
	return nil
}

// Configuration coalesces the run configuration from defaults, the
// configuration file, the environment and the command line; the
// result is validated.
func Configuration(c *cli.Context, loading Loading) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"), config.Default(loading.Suffix()))
	if err != nil {
		return nil, err
	}
	flags := &config.Config{
		Dir:     c.Args().First(),
		Suffix:  c.String("suffix"),
		Exclude: c.StringSlice("exclude"),
		Quiet:   c.Bool("quiet"),
		Color:   c.String("color"),
	}
	if c.Bool("no-color") {
		flags.Color = config.ColorNever
	}
	if err := cfg.Override(flags); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func configureLogging(c *cli.Context) error {
	// The LOG_LEVEL environment variable takes precedence.
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		var l zapcore.Level
		if err := l.UnmarshalText([]byte(level)); err != nil {
			return fmt.Errorf("LOG_LEVEL: %w", err)
		}
		logging.SetLevel(l)
		return nil
	}

	switch {
	case c.Bool("vv"):
		logging.SetVerbosity(logging.Trace)
	case c.Bool("v"):
		logging.SetVerbosity(logging.Verbose)
	}
	return nil
}
