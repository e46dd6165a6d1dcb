// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import "math"

// ColumnFluidPressure computes pressure (p) and intrinsic density (R) of the pore water
// along a column with gravity (g). The density depends on pressure:
//
//    R = R0 + C・(p - p0)   thus   dR/dp = C
//    dp/dz = -R・g
//
// With C = 0, the pressure is hydrostatic: p = p0 + R0・g・(H - z)
type ColumnFluidPressure struct {
	R0   float64 // intrinsic density corresponding to p0
	P0   float64 // pressure corresponding to R0
	C    float64 // compressibility coefficient; e.g. R0/Kbulk. may be zero
	Grav float64 // gravity acceleration (positive constant)
	H    float64 // elevation where (R0,p0) is known; e.g. the water table
}

// Init initialises this structure
func (o *ColumnFluidPressure) Init(R0, p0, C, g, H float64) {
	o.R0 = R0
	o.P0 = p0
	o.C = C
	o.Grav = g
	o.H = H
}

// Calc computes pressure and density. Above H the fluid is absent and p = p0, R = R0
func (o ColumnFluidPressure) Calc(z float64) (p, R float64) {
	if z >= o.H {
		return o.P0, o.R0
	}
	if o.C == 0 {
		return o.P0 + o.R0*o.Grav*(o.H-z), o.R0
	}
	p = o.P0 + (o.R0/o.C)*(math.Exp(o.C*o.Grav*(o.H-z))-1.0)
	R = o.R0 + o.C*(p-o.P0)
	return
}
