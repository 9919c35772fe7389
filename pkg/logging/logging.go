// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package logging provides the diagnostics loggers of firetest.  They
// are silent below warnings unless the verbosity is raised, e.g. by the
// command's -v and -vv flags.  The reporting of a test run is not
// diagnostics and goes through the report package instead.
package logging

import (
	"os"
	"strconv"
	"time"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Verbosity levels of the diagnostics loggers.
const (
	// Silent logs warnings and errors only.
	Silent = iota

	// Verbose adds debug messages (-v).
	Verbose

	// Trace adds the caller to each message and stack traces to
	// errors (-vv).
	Trace
)

var (
	logger  *zap.Logger
	sugared *zap.SugaredLogger
	level   = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	start   = time.Now()
)

func init() { SetVerbosity(Silent) }

// IsTerminal returns true iff stderr, which the loggers write to, is a
// terminal.
func IsTerminal() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// SetVerbosity rebuilds the loggers for given verbosity.
func SetVerbosity(v int) {
	lvl := zapcore.WarnLevel
	if v >= Verbose {
		lvl = zapcore.DebugLevel
	}
	level.SetLevel(lvl)

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = level
	cfg.DisableCaller = v < Trace
	cfg.DisableStacktrace = v < Trace
	if IsTerminal() {
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.EncoderConfig.EncodeTime = elapsed
	} else {
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	l, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	logger, sugared = l, l.Sugar()
}

// elapsed encodes a time as seconds since the process started.
func elapsed(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(
		strconv.FormatFloat(t.Sub(start).Seconds(), 'f', 5, 64) + "s")
}

// SetLevel overrides the level set by SetVerbosity.
func SetLevel(l zapcore.Level) {
	level.SetLevel(l)
}

// Level returns the current level of the loggers.
func Level() zapcore.Level { return level.Level() }

// L returns the global raw logger.
func L() *zap.Logger {
	return logger
}

// S returns the global sugared logger.
func S() *zap.SugaredLogger {
	return sugared
}
