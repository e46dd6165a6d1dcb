// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fluid

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

func Test_fld01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("fld01")

	H := 10.0
	g := 9.81

	var water Model
	err := water.Init(water.GetPrms(), H, g)
	if err != nil {
		tst.Errorf("Init failed:\n%v", err)
		return
	}
	chk.Float64(tst, "C", 1e-20, water.C, 1.0/2.2e6)
	chk.Float64(tst, "γw", 1e-15, water.Gamma(), 9.81)

	// nearly hydrostatic
	for _, z := range utl.LinSpace(0, H, 6) {
		p, R := water.Calc(z)
		io.Pforan("z = %5.2f  p = %10.6f  R = %10.8f\n", z, p, R)
		chk.Float64(tst, io.Sf("p(%g)", z), 1e-2, p, g*(H-z))
		if R < 1.0 {
			tst.Errorf("density must not decrease with depth: R = %v", R)
			return
		}
	}

	// above the water table
	p, R := water.Calc(H + 1)
	chk.Float64(tst, "p above", 1e-17, p, 0)
	chk.Float64(tst, "R above", 1e-17, R, 1)

	var bad Model
	if err = bad.Init(nil, H, g); err != nil {
		tst.Errorf("defaults should be valid:\n%v", err)
	}
}
