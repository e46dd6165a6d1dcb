// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana implements analytical solutions used to verify the soil column
package ana

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Slab holds the data of one linear elastic layer
type Slab struct {
	H   float64 // thickness
	E   float64 // Young's modulus
	Nu  float64 // Poisson's coefficient
	Rho float64 // density
}

// M returns the P-wave (constrained) modulus
func (o Slab) M() float64 {
	return o.E * (1.0 - o.Nu) / ((1.0 + o.Nu) * (1.0 - 2.0*o.Nu))
}

// ConfinedSelfWeight computes the solution to a laterally confined column of linear elastic
// slabs under gravity. The base is fixed and the surface is free
//
//     ▷ o-----------o ◁  y = H
//     ▷ |  slab n-1 | ◁
//     ▷ |-----------| ◁       negative stress means compression
//     ▷ |    ...    | ◁       g > 0  =>  body force b = -g・ρ
//     ▷ |-----------| ◁
//     ▷ |  slab 0   | ◁
//     ▷ o-----------o ◁  y = 0
//       △  △  △  △  △
//
type ConfinedSelfWeight struct {
	Slabs []Slab    // bottom-up
	Grav  float64   // gravity acceleration (positive value)
	H     float64   // height of column
	ybot  []float64 // elevation of the bottom of each slab
}

// Init initialises this structure
func (o *ConfinedSelfWeight) Init(grav float64, slabs ...Slab) {
	if len(slabs) < 1 {
		chk.Panic("ConfinedSelfWeight requires at least one slab")
	}
	o.Slabs = slabs
	o.Grav = grav
	o.ybot = make([]float64, len(slabs))
	o.H = 0
	for i, s := range slabs {
		o.ybot[i] = o.H
		o.H += s.H
	}
}

// Sv computes the vertical stress at elevation y
func (o ConfinedSelfWeight) Sv(y float64) (sv float64) {
	for i, s := range o.Slabs {
		top := o.ybot[i] + s.H
		if top <= y {
			continue
		}
		sv -= s.Rho * o.Grav * (top - math.Max(y, o.ybot[i]))
	}
	return
}

// Sh computes the horizontal stress at elevation y
func (o ConfinedSelfWeight) Sh(y float64) float64 {
	s := o.Slabs[o.slab(y)]
	return s.Nu / (1.0 - s.Nu) * o.Sv(y)
}

// Uy computes the vertical displacement at elevation y; i.e. the integral of Sv/M from the base
func (o ConfinedSelfWeight) Uy(y float64) (uy float64) {
	for i, s := range o.Slabs {
		a := o.ybot[i]
		if a >= y {
			break
		}
		b := math.Min(y, a+s.H)
		// Sv is linear within a slab
		uy += 0.5 * (o.Sv(a) + o.Sv(b)) * (b - a) / s.M()
	}
	return
}

// Stress returns the stress components at elevation y, ordered as in the soil elements:
//  2D: sx, sy, sz, sxy
//  3D: sx, sy, sz, sxy, syz, szx
func (o ConfinedSelfWeight) Stress(ndim int, y float64) (σ []float64) {
	sv, sh := o.Sv(y), o.Sh(y)
	σ = make([]float64, 2*ndim)
	σ[0], σ[1], σ[2] = sh, sv, sh
	return
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////////

// slab returns the index of the slab containing y. Interfaces belong to the slab below
func (o ConfinedSelfWeight) slab(y float64) int {
	for i := len(o.Slabs) - 1; i > 0; i-- {
		if y > o.ybot[i] {
			return i
		}
	}
	return 0
}
