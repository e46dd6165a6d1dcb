// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

// Solution holds the solution data @ equations.
//
//        / u \
//  y =   |   |
//        \ p / (neq x 1)
//
//  Note: prescribed degrees of freedom have no equation and are zero
type Solution struct {

	// current state
	T      float64   // current time
	Y      []float64 // DOFs (solution variables); e.g. y = {u, p}
	Dydt   []float64 // dy/dt
	D2ydt2 []float64 // d²y/dt²

	// auxiliary
	Dt float64   // current time increment
	ΔY []float64 // total increment (for nonlinear solver)
}

// NewSolution allocates a new structure
func NewSolution(neq int) *Solution {
	return &Solution{
		Y:      make([]float64, neq),
		Dydt:   make([]float64, neq),
		D2ydt2: make([]float64, neq),
		ΔY:     make([]float64, neq),
	}
}

// Reset clear values
func (o *Solution) Reset() {
	o.T = 0
	for i := 0; i < len(o.Y); i++ {
		o.Y[i] = 0
		o.ΔY[i] = 0
		o.Dydt[i] = 0
		o.D2ydt2[i] = 0
	}
}

// Get returns the value of y at equation eq; zero if eq is negative
func Get(y []float64, eq int) float64 {
	if eq < 0 {
		return 0
	}
	return y[eq]
}
