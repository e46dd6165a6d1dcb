// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package solid implements models for soils based on continuum mechanics
/*
 *            |    Rate
 *  ============================================
 *            |
 *            | σ_(n+1) = σ_(n) + Δσ(σ_(n), Δε)
 *    Small   | Update
 *            | D = dσ/dε_(n+1)
 *            | CalcD
 *            |
 *  --------------------------------------------
 *            |
 *    OneD    | f = c・sign(v)・|v|^α
 *            | Force / CalcC
 *            |
 */
package solid

import (
	"github.com/cpmech/gosl/chk"
)

// Prm holds a named material parameter
type Prm struct {
	N string  `json:"n"` // name
	V float64 `json:"v"` // value
}

// Prms is a set of parameters
type Prms []*Prm

// Find finds a parameter by name; returns nil if not found
func (o Prms) Find(name string) *Prm {
	for _, p := range o {
		if p.N == name {
			return p
		}
	}
	return nil
}

// Knobs defines models whose behaviour can be changed after initialisation through named
// parameters; e.g. "materialState", "poissonRatio"
type Knobs interface {
	SetParameter(name string, value float64) error  // sets behaviour parameter
	GetParameter(name string) (float64, error)       // gets behaviour parameter
}

// Model defines the interface for soil models
type Model interface {
	Knobs
	Init(ndim int, prms Prms) error                 // initialises model
	InitIntVars(σ []float64) (*State, error)         // initialises AND allocates internal (secondary) variables
	GetPrms() Prms                                   // gets (an example) of parameters
	GetRho() float64                                 // returns density
	Update(s *State, ε, Δε []float64) error         // updates stresses for given strains
	CalcD(D [][]float64, s *State, firstIt bool) error // computes D = dσ_new/dε_new
}

// OneD defines uniaxial models; e.g. for dashpots
type OneD interface {
	Knobs
	Init(prms Prms) error                  // initialises model
	GetPrms() Prms                         // gets (an example) of parameters
	Force(v float64) float64               // force for given rate
	CalcC(v float64) float64               // tangent dForce/dv
}

// New returns new soil model
func New(name string) (model Model, err error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, chk.Err("model %q is not available in 'solid' database", name)
	}
	return allocator(), nil
}

// NewOneD returns new uniaxial model
func NewOneD(name string) (model OneD, err error) {
	allocator, ok := allocatorsOneD[name]
	if !ok {
		return nil, chk.Err("uniaxial model %q is not available in 'solid' database", name)
	}
	return allocator(), nil
}

// allocators holds all available solid models; modelname => allocator
var allocators = map[string]func() Model{}

// allocatorsOneD holds all available uniaxial models; modelname => allocator
var allocatorsOneD = map[string]func() OneD{}
