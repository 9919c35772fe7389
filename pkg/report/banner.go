// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package report

import (
	"fmt"
	"strings"
)

var failedRule = strings.Repeat("*", 44)

var failedArt = []string{
	"███████╗ █████╗ ██╗██╗     ███████╗██████╗",
	"██╔════╝██╔══██╗██║██║     ██╔════╝██╔══██╗",
	"█████╗  ███████║██║██║     █████╗  ██║  ██║",
	"██╔══╝  ██╔══██║██║██║     ██╔══╝  ██║  ██║",
	"██║     ██║  ██║██║███████╗███████╗██████╔╝",
	"╚═╝     ╚═╝  ╚═╝╚═╝╚══════╝╚══════╝╚═════╝",
}

var successRule = strings.Repeat("*", 59)

var successArt = []string{
	"███████╗██╗   ██╗ ██████╗ ██████╗███████╗███████╗███████╗",
	"██╔════╝██║   ██║██╔════╝██╔════╝██╔════╝██╔════╝██╔════╝",
	"███████╗██║   ██║██║     ██║     █████╗  ███████╗███████╗",
	"╚════██║██║   ██║██║     ██║     ██╔══╝  ╚════██║╚════██║",
	"███████║╚██████╔╝╚██████╗╚██████╗███████╗███████║███████║",
	"╚══════╝ ╚═════╝  ╚═════╝ ╚═════╝╚══════╝╚══════╝╚══════╝",
}

// Failures reports the failure banner followed by given failure
// descriptions enumerated from zero in given order, e.g. "[#0] expected
// 3 got -1", and a closing rule.
func (r *Reporter) Failures(ff []string) {
	if r.quiet {
		return
	}
	r.Log(failedRule)
	for _, l := range failedArt {
		r.Log(r.au.Red(l).String())
	}
	for i, f := range ff {
		r.Log(fmt.Sprintf("[#%d] %s", i, f))
	}
	r.Log(failedRule)
}

// Success reports the success banner.
func (r *Reporter) Success() {
	if r.quiet {
		return
	}
	r.Log(successRule)
	for _, l := range successArt {
		r.Log(r.au.Green(l).String())
	}
	r.Log(successRule)
}

// Totals reports the final line with given pass and fail counts.
func (r *Reporter) Totals(passed, failed int) {
	r.Tag(Final, counts(passed, failed))
}

// Counts reports the result line of a test method with given pass
// and fail counts.
func (r *Reporter) Counts(passed, failed int) {
	r.Tag(Result, counts(passed, failed))
}

func counts(passed, failed int) string {
	return fmt.Sprintf("(Passed: %d, Failed: %d)", passed, failed)
}
