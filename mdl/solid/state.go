// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solid

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// State holds all continuum mechanics data, including for updating the state
//  Note: stresses are positive in tension; shear strains are engineering strains
//   2D (plane-strain): σ = {σxx, σyy, σzz, σxy}
//   3D:                σ = {σxx, σyy, σzz, σxy, σyz, σzx}
type State struct {
	Sig     []float64 // σ: current stress
	Eps     []float64 // ε: current strain
	Alp     []float64 // α: internal variables; e.g. accumulated plastic shear strain
	Loading bool      // unloading flag
	Gtan    float64   // shear modulus used in the last update
}

// NewState allocates state structure
func NewState(nsig, nalp int) *State {
	var o State
	o.Sig = make([]float64, nsig)
	o.Eps = make([]float64, nsig)
	if nalp > 0 {
		o.Alp = make([]float64, nalp)
	}
	return &o
}

// Set copies states
//  Note: 'other' and 'o' must have been pre-allocated with the same sizes
func (o *State) Set(other *State) {
	copy(o.Sig, other.Sig)
	copy(o.Eps, other.Eps)
	copy(o.Alp, other.Alp)
	o.Loading = other.Loading
	o.Gtan = other.Gtan
}

// GetCopy returns a copy of this state
func (o *State) GetCopy() *State {
	other := NewState(len(o.Sig), len(o.Alp))
	other.Set(o)
	return other
}

// Nsig returns the number of stress components for a space dimension
func Nsig(ndim int) int {
	if ndim == 2 {
		return 4
	}
	if ndim == 3 {
		return 6
	}
	chk.Panic("space dimension must be 2 or 3. ndim = %d is invalid", ndim)
	return 0
}

// invariants ///////////////////////////////////////////////////////////////////////////////////////

// PQ computes the mean pressure p (positive in compression) and von Mises deviatoric stress q
func PQ(σ []float64) (p, q float64) {
	p = -(σ[0] + σ[1] + σ[2]) / 3.0
	sx, sy, sz := σ[0]+p, σ[1]+p, σ[2]+p
	J2 := (sx*sx + sy*sy + sz*sz) / 2.0
	for i := 3; i < len(σ); i++ {
		J2 += σ[i] * σ[i]
	}
	q = math.Sqrt(3.0 * J2)
	return
}

// ElasticD computes the isotropic elasticity matrix with engineering shear strains
func ElasticD(D [][]float64, K, G float64) {
	n := len(D)
	λ := K - 2.0*G/3.0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			D[i][j] = 0
		}
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			D[i][j] = λ
		}
		D[i][i] = λ + 2.0*G
	}
	for i := 3; i < n; i++ {
		D[i][i] = G
	}
}

// KfromGnu computes the bulk modulus from G and ν
func KfromGnu(G, ν float64) float64 {
	return 2.0 * G * (1.0 + ν) / (3.0 * (1.0 - 2.0*ν))
}
