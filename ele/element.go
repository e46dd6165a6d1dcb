// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ele implements finite elements
package ele

import (
	"github.com/pmackenz/SiteResponseTool/mdl/solid"
	"gonum.org/v1/gonum/mat"
)

// Element defines what all elements must implement
type Element interface {

	// information and initialisation
	Id() int                          // returns the cell Id
	Verts() []int                     // returns the node tags of the cell
	Info() *Info                      // returns the solution variables per node
	SetEqs(eqs [][]int) (err error)   // set equations; negative numbers mean "prescribed as zero"

	// called for each iteration
	AddToRhs(fb []float64, sol *Solution) (err error)           // adds -R to global residual vector fb
	AddToKb(kb *Kb, sol *Solution, firstIt bool) (err error)    // adds element K, C and M to global matrices
}

// WithIntVars defines elements with internal variables, e.g. stresses at integration points
type WithIntVars interface {
	Update(sol *Solution) (err error) // perform (tangent) update using the last committed state
	BackupIvs() (err error)           // create copy of internal variables; i.e. commit
	RestoreIvs() (err error)          // restore internal variables from copies
}

// WithParameters defines elements whose behaviour can be changed after allocation
//  Note: unknown names are forwarded to the material model
type WithParameters interface {
	SetParameter(name string, value float64) (err error) // sets parameter
	GetParameter(name string) (float64, error)           // gets parameter
}

// CanOutputIps defines elements that can output integration points' values
type CanOutputIps interface {
	Id() int                            // returns the cell Id
	OutIpKeys() []string                // integration points' keys; e.g. "sx", "ex"
	OutIpVals(M *IpsMap, sol *Solution) // integration points' values corresponding to keys
}

// WithFixedKM defines elements with fixed matrices; to be recomputed if prms are changed
type WithFixedKM interface {
	Recompute() // recompute fixed matrices
}

// Kb holds the global matrices
//  M・d²y/dt² + (C + Cr)・dy/dt + Fint(y) = Fext
type Kb struct {
	K  *mat.Dense // tangent stiffness: dFint/dy
	C  *mat.Dense // element damping and coupling: e.g. dashpots and Qᵀ
	M  *mat.Dense // mass
	Kr *mat.Dense // stiffness used to build the Rayleigh damping matrix Cr = a0・M + a1・Kr
}

// NewKb allocates global matrices
func NewKb(neq int) *Kb {
	return &Kb{
		K:  mat.NewDense(neq, neq, nil),
		C:  mat.NewDense(neq, neq, nil),
		M:  mat.NewDense(neq, neq, nil),
		Kr: mat.NewDense(neq, neq, nil),
	}
}

// Zero clears all matrices
func (o *Kb) Zero() {
	o.K.Zero()
	o.C.Zero()
	o.M.Zero()
	o.Kr.Zero()
}

// Add adds v to m[i,j] if both equations are active
func Add(m *mat.Dense, i, j int, v float64) {
	if i < 0 || j < 0 {
		return
	}
	raw := m.RawMatrix()
	raw.Data[i*raw.Stride+j] += v
}

// WithMaterial defines elements that own a material model
type WithMaterial interface {
	Material() solid.Knobs // material model
}
