// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package firetest

// TrueErr default message for failed 'true'-assertion.
const TrueErr = trueErr

// FalseErr default message for failed 'false'-assertion.
const FalseErr = falseErr

// ErrErr default message for failed "Err"-assertion
const ErrErr = errErr

// PanicsErr default message for failed "Panics"-assertion
const PanicsErr = panicsErr

// NotPanicsErr default message for failed negated "Panics"-assertion
const NotPanicsErr = notPanicsErr
