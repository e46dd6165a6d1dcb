// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package dashpot implements zero-length viscous elements
package dashpot

import (
	"github.com/cpmech/gosl/chk"
	"github.com/pmackenz/SiteResponseTool/ele"
	"github.com/pmackenz/SiteResponseTool/mdl/solid"
)

// Dashpot connects two coincident nodes with uniaxial viscous models; one per direction
//  f = model(v_b - v_a);  node a receives +f and node b receives -f
type Dashpot struct {
	Cell *ele.Cell   // cell
	Ndim int         // space dimension
	Dirs []int       // directions; e.g. [0] or [0, 2]
	Mdl  solid.OneD  // uniaxial model
	Emap [][]int     // [ndir][2] equations of nodes a and b along each direction
}

// register element
func init() {
	ele.SetAllocator("dashpot", func(cell *ele.Cell) (ele.Element, error) {
		return New(cell)
	})
}

// New allocates a new dashpot
func New(cell *ele.Cell) (o *Dashpot, err error) {
	if len(cell.Verts) != 2 {
		return nil, chk.Err("dashpot needs 2 vertices; %d given", len(cell.Verts))
	}
	if len(cell.Dirs) == 0 {
		return nil, chk.Err("dashpot needs at least one direction")
	}
	for _, d := range cell.Dirs {
		if d < 0 || d >= cell.Ndim {
			return nil, chk.Err("dashpot direction %d is invalid for ndim = %d", d, cell.Ndim)
		}
	}
	o = new(Dashpot)
	o.Cell = cell
	o.Ndim = cell.Ndim
	o.Dirs = cell.Dirs
	name := cell.Model
	if name == "" {
		name = "viscous"
	}
	o.Mdl, err = solid.NewOneD(name)
	if err != nil {
		return
	}
	err = o.Mdl.Init(cell.Prms)
	return
}

// Id returns the cell Id
func (o *Dashpot) Id() int { return o.Cell.Id }

// Verts returns the node tags
func (o *Dashpot) Verts() []int { return o.Cell.Verts }

// Info returns the solution variables
func (o *Dashpot) Info() *ele.Info {
	ukeys := ele.Ukeys(o.Ndim)
	return &ele.Info{
		Dofs:   [][]string{ukeys, ukeys},
		Y2F:    ele.Y2F(o.Ndim, false),
		T2vars: ukeys,
	}
}

// Material returns the uniaxial model
func (o *Dashpot) Material() solid.Knobs { return o.Mdl }

// SetEqs set equations
func (o *Dashpot) SetEqs(eqs [][]int) (err error) {
	if len(eqs) != 2 {
		return chk.Err("dashpot %d needs equations for 2 nodes", o.Id())
	}
	o.Emap = make([][]int, len(o.Dirs))
	for k, d := range o.Dirs {
		o.Emap[k] = []int{eqs[0][d], eqs[1][d]}
	}
	return
}

// AddToRhs adds -R to global residual vector fb
func (o *Dashpot) AddToRhs(fb []float64, sol *ele.Solution) (err error) {
	for _, eq := range o.Emap {
		f := o.Mdl.Force(o.relVel(eq, sol))
		if eq[0] >= 0 {
			fb[eq[0]] += f
		}
		if eq[1] >= 0 {
			fb[eq[1]] -= f
		}
	}
	return
}

// AddToKb adds element C to global damping matrix
func (o *Dashpot) AddToKb(kb *ele.Kb, sol *ele.Solution, firstIt bool) (err error) {
	for _, eq := range o.Emap {
		c := o.Mdl.CalcC(o.relVel(eq, sol))
		ele.Add(kb.C, eq[0], eq[0], c)
		ele.Add(kb.C, eq[1], eq[1], c)
		ele.Add(kb.C, eq[0], eq[1], -c)
		ele.Add(kb.C, eq[1], eq[0], -c)
	}
	return
}

// SetParameter sets a parameter of the uniaxial model
func (o *Dashpot) SetParameter(name string, value float64) (err error) {
	return o.Mdl.SetParameter(name, value)
}

// GetParameter gets a parameter of the uniaxial model
func (o *Dashpot) GetParameter(name string) (float64, error) {
	return o.Mdl.GetParameter(name)
}

// relVel returns v_b - v_a
func (o *Dashpot) relVel(eq []int, sol *ele.Solution) float64 {
	return ele.Get(sol.Dydt, eq[1]) - ele.Get(sol.Dydt, eq[0])
}
