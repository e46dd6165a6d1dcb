// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fluid implements models for the pore fluid
package fluid

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/pmackenz/SiteResponseTool/mdl/solid"
)

// Model implements a model to compute pressure (p) and intrinsic density (R) of the pore fluid
// along a column with gravity (g). The model is:
//   R(p) = R0 + C・(p - p0)   with   C = R0 / Kf
type Model struct {

	// material data
	R0 float64 // intrinsic density corresponding to p0
	P0 float64 // pressure corresponding to R0
	Kf float64 // bulk modulus of fluid
	C  float64 // compressibility coefficient R0/Kf

	// additional data
	H    float64 // elevation where (R0,p0) is known; e.g. the water table
	Grav float64 // gravity acceleration (positive constant)
}

// Init initialises this structure
func (o *Model) Init(prms solid.Prms, H, grav float64) (err error) {
	o.R0, o.Kf = 1.0, 2.2e6
	for _, p := range prms {
		switch p.N {
		case "R0":
			o.R0 = p.V
		case "P0":
			o.P0 = p.V
		case "Kf":
			o.Kf = p.V
		default:
			return chk.Err("fluid: parameter named %q is invalid", p.N)
		}
	}
	if o.R0 <= 0 || o.Kf <= 0 {
		return chk.Err("fluid: invalid parameters: R0=%g, Kf=%g", o.R0, o.Kf)
	}
	o.C = o.R0 / o.Kf
	o.H = H
	o.Grav = grav
	return
}

// GetPrms gets (an example of) parameters
func (o Model) GetPrms() solid.Prms {
	return solid.Prms{
		&solid.Prm{N: "R0", V: 1.0},  // [Mg/m³]
		&solid.Prm{N: "P0", V: 0.0},  // [kPa]
		&solid.Prm{N: "Kf", V: 2.2e6}, // [kPa]
	}
}

// Gamma returns the unit weight of the fluid at reference pressure
func (o Model) Gamma() float64 {
	return o.R0 * o.Grav
}

// Calc computes pressure and density at elevation z; above H the pressure is P0
func (o Model) Calc(z float64) (p, R float64) {
	if z >= o.H {
		return o.P0, o.R0
	}
	p = o.P0 + (o.R0/o.C)*(math.Exp(o.C*o.Grav*(o.H-z))-1.0)
	R = o.R0 + o.C*(p-o.P0)
	return
}
