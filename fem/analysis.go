// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import "github.com/cpmech/gosl/chk"

// Analysis runs fixed time steps with one solver and records outputs after each converged step
type Analysis struct {
	Dom    *Domain               // domain
	Solver Solver                // solver
	OnStep func(t float64) error // [optional] called after each converged step; e.g. recorders
	Nsteps int                   // number of converged steps
}

// NewAnalysis returns a new analysis using solver kind (e.g. "newmark")
func NewAnalysis(dom *Domain, kind string, prms *SolverPrms) (o *Analysis, err error) {
	o = &Analysis{Dom: dom}
	o.Solver, err = NewSolver(kind, dom, prms)
	return
}

// Analyze runs nsteps steps of size dt. It stops at the first step that fails
func (o *Analysis) Analyze(nsteps int, dt float64) (err error) {
	if nsteps < 0 {
		return chk.Err("number of steps must be non-negative. %d is invalid", nsteps)
	}
	for i := 0; i < nsteps; i++ {
		err = o.Solver.Step(dt)
		if err != nil {
			return
		}
		o.Nsteps++
		if o.OnStep != nil {
			err = o.OnStep(o.Dom.Time)
			if err != nil {
				return
			}
		}
	}
	return
}

// Time returns the current (committed) time
func (o *Analysis) Time() float64 { return o.Dom.Time }
