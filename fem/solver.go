// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/chk"
	"github.com/pmackenz/SiteResponseTool/inp"
)

// Solver advances the domain by one time increment.
//  On success, the new state is committed and the domain time is advanced.
//  On failure, the domain is restored to the last committed state and errNoConvergence
//  (or another error) is returned
type Solver interface {
	Step(dt float64) (err error)
}

// SolverPrms holds the parameters of one solver configuration
type SolverPrms struct {
	Gamma   float64 // Newmark γ
	Beta    float64 // Newmark β
	Tol     float64 // tolerance on the norm of δy
	NmaxIt  int     // max number of iterations
	CteTg   bool    // constant tangent (modified Newton)
	ShowR   bool    // show residuals
	DvgCtrl bool    // stop iterations when the norm of increments keeps growing
	NdvgMax int     // max number of successive iterations with growing increments (with DvgCtrl)
}

// GravityPrms returns the solver parameters of the gravity stages
func GravityPrms(s *inp.SolverData) *SolverPrms {
	return &SolverPrms{s.GravTh1, s.GravTh2, s.Tol, s.NmaxIt, s.CteTg, s.ShowR, s.DvgCtrl, s.NdvgMax}
}

// DynamicPrms returns the solver parameters of the dynamic stage
func DynamicPrms(s *inp.SolverData) *SolverPrms {
	return &SolverPrms{s.Theta1, s.Theta2, s.Tol, s.NmaxIt, s.CteTg, s.ShowR, s.DvgCtrl, s.NdvgMax}
}

// NewSolver returns a new solver from factory
func NewSolver(name string, dom *Domain, prms *SolverPrms) (s Solver, err error) {
	alloc, ok := allocators[name]
	if !ok {
		return nil, chk.Err("cannot find solver type named %q", name)
	}
	return alloc(dom, prms)
}

// allocators holds all available solvers
var allocators = make(map[string]func(dom *Domain, prms *SolverPrms) (Solver, error))
