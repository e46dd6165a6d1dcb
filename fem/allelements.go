// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/pmackenz/SiteResponseTool/ele/dashpot"
	"github.com/pmackenz/SiteResponseTool/ele/porous"
	"github.com/pmackenz/SiteResponseTool/ele/solid"
)

// enforce loading of all elements
func init() {
	_ = dashpot.Dashpot{}
	_ = porous.SolidLiquid{}
	_ = solid.Solid{}
}
