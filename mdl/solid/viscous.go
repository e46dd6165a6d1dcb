// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solid

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Viscous implements a uniaxial viscous damper: f = c・sign(v)・|v|^α
type Viscous struct {
	C     float64 // damping coefficient
	Alpha float64 // power factor; 1 means linear
}

// add model to factory
func init() {
	allocatorsOneD["viscous"] = func() OneD { return new(Viscous) }
}

// Init initialises model
func (o *Viscous) Init(prms Prms) (err error) {
	o.Alpha = 1
	for _, p := range prms {
		switch p.N {
		case "c":
			o.C = p.V
		case "alpha":
			o.Alpha = p.V
		default:
			return chk.Err("viscous: parameter named %q is invalid", p.N)
		}
	}
	if o.C < 0 || o.Alpha <= 0 {
		return chk.Err("viscous: invalid parameters: c=%g, alpha=%g", o.C, o.Alpha)
	}
	return
}

// GetPrms gets (an example) of parameters
func (o Viscous) GetPrms() Prms {
	return Prms{
		&Prm{N: "c", V: 456.0},
		&Prm{N: "alpha", V: 1},
	}
}

// Force computes the force for given rate
func (o *Viscous) Force(v float64) float64 {
	if o.Alpha == 1 {
		return o.C * v
	}
	f := o.C * math.Pow(math.Abs(v), o.Alpha)
	if v < 0 {
		return -f
	}
	return f
}

// CalcC computes dForce/dv
func (o *Viscous) CalcC(v float64) float64 {
	if o.Alpha == 1 {
		return o.C
	}
	av := math.Max(math.Abs(v), 1e-12)
	return o.C * o.Alpha * math.Pow(av, o.Alpha-1.0)
}

// SetParameter sets behaviour parameter
func (o *Viscous) SetParameter(name string, value float64) (err error) {
	switch name {
	case "c":
		o.C = value
	case "alpha":
		o.Alpha = value
	default:
		return chk.Err("viscous: cannot set parameter %q", name)
	}
	return
}

// GetParameter gets behaviour parameter
func (o *Viscous) GetParameter(name string) (float64, error) {
	switch name {
	case "c":
		return o.C, nil
	case "alpha":
		return o.Alpha, nil
	}
	return 0, chk.Err("viscous: parameter %q is not available", name)
}
