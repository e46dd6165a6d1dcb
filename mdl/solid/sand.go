// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solid

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Sand implements a stress-dependent bounding-surface model for sands with two behaviour stages
//  stage 0: pressure-dependent elastic response (used during gravity analyses)
//  stage 1: elastic/perfectly-plastic response with a state-dependent bounding ratio
//   G    = G0・patm・√(p/patm)
//   ξR   = R/(Q - ln(100・p/patm)) - Dr
//   Mb   = Mc・exp(-nb・ξR)
//   f    = q - Mb・p ≤ 0
//  Note: the names of the parameters follow the PM4Sand calibration bundle
type Sand struct {

	// parameters
	Dr   float64 // relative density
	G0   float64 // shear modulus coefficient
	Hpo  float64 // contraction rate parameter
	Rho  float64 // density
	Patm float64 // atmospheric pressure
	H0   float64 // plastic modulus ratio
	Emax float64 // maximum void ratio
	Emin float64 // minimum void ratio
	Nb   float64 // bounding surface parameter
	Nd   float64 // dilatancy surface parameter
	Ado  float64 // dilatancy parameter
	Zmax float64 // fabric-dilatancy tensor limit
	Cz   float64 // fabric growth parameter
	Ce   float64 // strain factor
	Phic float64 // critical state friction angle [deg]
	Nu   float64 // Poisson's coefficient

	// behaviour knobs
	Stage     float64 // 0: elastic; 1: elastoplastic
	FirstCall float64 // zero resets the internal variables at the next update
	gen       float64 // generation of internal variables

	// derived
	Mc   float64 // critical state stress ratio
	Pmin float64 // minimum mean pressure for moduli
	Nsig int     // number of stress components
}

// constants
const (
	SAND_Q = 10.0 // crushing parameter of the relative state index
	SAND_R = 1.0  // crushing parameter of the relative state index
)

// add model to factory
func init() {
	allocators["sand"] = func() Model { return new(Sand) }
}

// SandPrms returns the parameters of the named calibration sets
func SandPrms(set string) (prms Prms, err error) {
	var dr, g0, hpo, rho float64
	switch set {
	case "N10_T3a":
		dr, g0, hpo, rho = 0.4662524041201569, 584.1, 0.450, 2.00594878429427
	case "N10_T3b":
		dr, g0, hpo, rho = 0.4662524041201569, 468.3, 0.463, 1.6083133257878446
	default:
		return nil, chk.Err("sand: calibration set %q is not available", set)
	}
	prms = Prms{
		&Prm{N: "Dr", V: dr},
		&Prm{N: "G0", V: g0},
		&Prm{N: "hpo", V: hpo},
		&Prm{N: "rho", V: rho},
		&Prm{N: "patm", V: 101.3},
		&Prm{N: "h0", V: -1},
		&Prm{N: "emax", V: 0.8},
		&Prm{N: "emin", V: 0.5},
		&Prm{N: "nb", V: 0.5},
		&Prm{N: "nd", V: 0.1},
		&Prm{N: "Ado", V: -1},
		&Prm{N: "zmax", V: -1},
		&Prm{N: "cz", V: 250},
		&Prm{N: "ce", V: -1},
		&Prm{N: "phic", V: 33},
		&Prm{N: "nu", V: 1.0 / 3.0},
	}
	return
}

// Init initialises model
func (o *Sand) Init(ndim int, prms Prms) (err error) {
	o.Nsig = Nsig(ndim)
	o.Patm, o.Phic, o.Nu, o.Nb = 101.3, 33, 0.3, 0.5
	o.Emax, o.Emin = 0.8, 0.5
	for _, p := range prms {
		switch p.N {
		case "Dr":
			o.Dr = p.V
		case "G0":
			o.G0 = p.V
		case "hpo":
			o.Hpo = p.V
		case "rho":
			o.Rho = p.V
		case "patm":
			o.Patm = p.V
		case "h0":
			o.H0 = p.V
		case "emax":
			o.Emax = p.V
		case "emin":
			o.Emin = p.V
		case "nb":
			o.Nb = p.V
		case "nd":
			o.Nd = p.V
		case "Ado":
			o.Ado = p.V
		case "zmax":
			o.Zmax = p.V
		case "cz":
			o.Cz = p.V
		case "ce":
			o.Ce = p.V
		case "phic":
			o.Phic = p.V
		case "nu":
			o.Nu = p.V
		default:
			return chk.Err("sand: parameter named %q is invalid", p.N)
		}
	}
	if o.G0 <= 0 || o.Patm <= 0 || o.Dr < 0 || o.Dr > 1 {
		return chk.Err("sand: invalid parameters: G0=%g, patm=%g, Dr=%g", o.G0, o.Patm, o.Dr)
	}
	if o.Nu <= -1 || o.Nu >= 0.5 {
		return chk.Err("sand: invalid Poisson's coefficient: nu=%g", o.Nu)
	}
	sφ := math.Sin(o.Phic * math.Pi / 180.0)
	o.Mc = 6.0 * sφ / (3.0 - sφ)
	o.Pmin = o.Patm / 100.0
	o.FirstCall = 1
	return
}

// GetPrms gets (an example) of parameters
func (o Sand) GetPrms() Prms {
	prms, _ := SandPrms("N10_T3b")
	return prms
}

// GetRho returns density
func (o *Sand) GetRho() float64 {
	return o.Rho
}

// InitIntVars initialises internal (secondary) variables
//  Alp[0] -- accumulated plastic shear strain
//  Alp[1] -- generation of Alp[0]
func (o *Sand) InitIntVars(σ []float64) (s *State, err error) {
	s = NewState(o.Nsig, 2)
	copy(s.Sig, σ)
	s.Alp[1] = o.gen
	p, _ := PQ(σ)
	s.Gtan = o.Gmod(p)
	return
}

// Gmod returns the shear modulus at mean pressure p
func (o *Sand) Gmod(p float64) float64 {
	p = math.Max(p, o.Pmin)
	return o.G0 * o.Patm * math.Sqrt(p/o.Patm)
}

// Mb returns the bounding stress ratio at mean pressure p
func (o *Sand) Mb(p float64) float64 {
	p = math.Max(p, o.Pmin)
	ξR := SAND_R/(SAND_Q-math.Log(100.0*p/o.Patm)) - o.Dr
	return o.Mc * math.Exp(-o.Nb*ξR)
}

// Update updates stresses for given strains
func (o *Sand) Update(s *State, ε, Δε []float64) (err error) {

	// internal variables
	if s.Alp[1] != o.gen {
		s.Alp[0], s.Alp[1] = 0, o.gen
	}

	// moduli from the state at the beginning of the increment
	pn, _ := PQ(s.Sig)
	G := o.Gmod(pn)
	K := KfromGnu(G, o.Nu)
	s.Gtan = G
	copy(s.Eps, ε)

	// trial stress
	applyElastic(s, Δε, K, G)
	s.Loading = false
	if o.Stage < 1 {
		return
	}

	// tension cut-off: no shear resistance
	p, q := PQ(s.Sig)
	if p <= 0 {
		o.scaleDeviator(s.Sig, p, 0)
		return
	}

	// return to the bounding surface
	qy := o.Mb(p) * p
	if q > qy {
		o.scaleDeviator(s.Sig, p, qy/q)
		s.Alp[0] += (q - qy) / (3.0 * G)
		s.Loading = true
	}
	return
}

// CalcD computes D = dσ_new/dε_new
func (o *Sand) CalcD(D [][]float64, s *State, firstIt bool) (err error) {
	G := s.Gtan
	if G <= 0 {
		p, _ := PQ(s.Sig)
		G = o.Gmod(p)
	}
	ElasticD(D, KfromGnu(G, o.Nu), G)
	return
}

// SetParameter sets behaviour parameter
func (o *Sand) SetParameter(name string, value float64) (err error) {
	switch name {
	case "materialState", "updateMaterialStage":
		if value != 0 && value != 1 {
			return chk.Err("sand: stage must be 0 or 1. %g is invalid", value)
		}
		o.Stage = value
	case "FirstCall":
		o.FirstCall = value
		if value == 0 {
			o.gen++
		}
	case "poissonRatio":
		if value <= -1 || value >= 0.5 {
			return chk.Err("sand: invalid Poisson's coefficient: %g", value)
		}
		o.Nu = value
	case "Dr":
		o.Dr = value
	case "G0":
		o.G0 = value
	case "hpo":
		o.Hpo = value
	default:
		return chk.Err("sand: cannot set parameter %q", name)
	}
	return
}

// GetParameter gets behaviour parameter
func (o *Sand) GetParameter(name string) (float64, error) {
	switch name {
	case "materialState", "updateMaterialStage":
		return o.Stage, nil
	case "FirstCall":
		return o.FirstCall, nil
	case "poissonRatio":
		return o.Nu, nil
	case "Dr":
		return o.Dr, nil
	case "G0":
		return o.G0, nil
	case "hpo":
		return o.Hpo, nil
	}
	return 0, chk.Err("sand: parameter %q is not available", name)
}

// scaleDeviator sets σ = -p・I + c・s
func (o *Sand) scaleDeviator(σ []float64, p, c float64) {
	for i := 0; i < 3; i++ {
		σ[i] = -p + c*(σ[i]+p)
	}
	for i := 3; i < len(σ); i++ {
		σ[i] *= c
	}
}
