// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Plugin a registers a test case named main.Tests.
package main

import "github.com/slukits/firetest"

type Tests struct{ firetest.Case }

func (c *Tests) TestRegistered() {
	c.Should("be loaded from plugin a").True(true)
}

func init() { firetest.Register(&Tests{}) }

func main() {}
