// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestLoggers_are_silent_below_warnings(t *testing.T) {
	assert.Equal(t, zapcore.WarnLevel, Level())
	assert.False(t, L().Core().Enabled(zapcore.InfoLevel))
	assert.True(t, L().Core().Enabled(zapcore.WarnLevel))
}

func TestSetVerbosity_enables_debug_messages(t *testing.T) {
	defer SetVerbosity(Silent)
	SetVerbosity(Verbose)
	assert.Equal(t, zapcore.DebugLevel, Level())
	assert.True(t, L().Core().Enabled(zapcore.DebugLevel))

	SetVerbosity(Trace)
	assert.True(t, S().Desugar().Core().Enabled(zapcore.DebugLevel))
}

func TestSetLevel_overrides_verbosity(t *testing.T) {
	defer SetVerbosity(Silent)
	SetVerbosity(Verbose)
	SetLevel(zapcore.ErrorLevel)
	assert.False(t, L().Core().Enabled(zapcore.WarnLevel))
}
