// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solid

import (
	"github.com/cpmech/gosl/chk"
)

// SmallElasticity implements linear/non-linear elasticity for small strain analyses
type SmallElasticity struct {
	E     float64 // Young's modulus
	Nu    float64 // Poisson's coefficient
	Rho   float64 // density
	K, G  float64 // bulk and shear moduli
	Nsig  int     // number of stress components
	Stage float64 // behaviour stage; stored only
}

// add model to factory
func init() {
	allocators["lin-elast"] = func() Model { return new(SmallElasticity) }
}

// Init initialises model
func (o *SmallElasticity) Init(ndim int, prms Prms) (err error) {
	o.Nsig = Nsig(ndim)
	for _, p := range prms {
		switch p.N {
		case "E":
			o.E = p.V
		case "nu":
			o.Nu = p.V
		case "rho":
			o.Rho = p.V
		}
	}
	return o.calcKG()
}

// GetPrms gets (an example) of parameters
func (o SmallElasticity) GetPrms() Prms {
	return Prms{
		&Prm{N: "E", V: 1e5},
		&Prm{N: "nu", V: 0.3},
		&Prm{N: "rho", V: 2.0},
	}
}

// GetRho returns density
func (o *SmallElasticity) GetRho() float64 {
	return o.Rho
}

// InitIntVars initialises internal (secondary) variables
func (o *SmallElasticity) InitIntVars(σ []float64) (s *State, err error) {
	s = NewState(o.Nsig, 0)
	copy(s.Sig, σ)
	s.Gtan = o.G
	return
}

// Update updates stresses for given strains
func (o *SmallElasticity) Update(s *State, ε, Δε []float64) (err error) {
	applyElastic(s, Δε, o.K, o.G)
	copy(s.Eps, ε)
	s.Gtan = o.G
	return
}

// CalcD computes D = dσ_new/dε_new
func (o *SmallElasticity) CalcD(D [][]float64, s *State, firstIt bool) (err error) {
	ElasticD(D, o.K, o.G)
	return
}

// SetParameter sets behaviour parameter
func (o *SmallElasticity) SetParameter(name string, value float64) (err error) {
	switch name {
	case "materialState", "updateMaterialStage":
		o.Stage = value
	case "poissonRatio", "nu":
		o.Nu = value
		return o.calcKG()
	case "E":
		o.E = value
		return o.calcKG()
	default:
		return chk.Err("lin-elast: cannot set parameter %q", name)
	}
	return
}

// GetParameter gets behaviour parameter
func (o *SmallElasticity) GetParameter(name string) (float64, error) {
	switch name {
	case "materialState", "updateMaterialStage":
		return o.Stage, nil
	case "poissonRatio", "nu":
		return o.Nu, nil
	case "E":
		return o.E, nil
	}
	return 0, chk.Err("lin-elast: parameter %q is not available", name)
}

// calcKG computes the bulk and shear moduli
func (o *SmallElasticity) calcKG() (err error) {
	if o.E <= 0 || o.Nu <= -1 || o.Nu >= 0.5 {
		return chk.Err("lin-elast: invalid parameters: E=%g and nu=%g", o.E, o.Nu)
	}
	o.K = o.E / (3.0 * (1.0 - 2.0*o.Nu))
	o.G = o.E / (2.0 * (1.0 + o.Nu))
	return
}

// applyElastic computes σ += D(K,G)・Δε
func applyElastic(s *State, Δε []float64, K, G float64) {
	λ := K - 2.0*G/3.0
	tr := Δε[0] + Δε[1] + Δε[2]
	for i := 0; i < 3; i++ {
		s.Sig[i] += λ*tr + 2.0*G*Δε[i]
	}
	for i := 3; i < len(s.Sig); i++ {
		s.Sig[i] += G * Δε[i]
	}
}
