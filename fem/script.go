// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"bytes"
	"sort"

	"github.com/cpmech/gosl/io"
)

// Script returns a plain-text (tcl) reproduction of the model and of the stage sequence. It is
// meant for independent verification of the column with other programs
func Script(c *Controller) string {
	d := c.Dom
	sim := d.Sim
	ndim := d.Plan.Ndim
	ndf := ndim
	if sim.Effective {
		ndf++
	}
	var b bytes.Buffer
	io.Ff(&b, "# %s\n", sim.Data.Desc)
	io.Ff(&b, "wipe\n")

	// nodes
	io.Ff(&b, "\n# nodes\n")
	io.Ff(&b, "model BasicBuilder -ndm %d -ndf %d\n", ndim, ndf)
	for _, nod := range d.Nodes {
		if nod.Ndof() != ndf {
			continue
		}
		io.Ff(&b, "node %d%s\n", nod.Tag, coords(nod.X))
	}

	// fixities and equal-dofs
	io.Ff(&b, "\n# boundary conditions\n")
	fixs := sortedFixities(d, c.Released)
	for _, f := range fixs {
		if f.Tag <= c.lastFix {
			io.Ff(&b, "fix %d%s\n", f.Node, mask(ndf, f.Dof))
		}
	}
	for _, t := range d.Cons.Ties {
		if t.Tag <= c.lastTie {
			io.Ff(&b, "equalDOF %d %d%s\n", t.Master, t.Slave, dofList(t.Dofs))
		}
	}

	// materials
	io.Ff(&b, "\n# materials\n")
	mtags := make([]int, 0, len(d.Materials))
	for tag := range d.Materials {
		mtags = append(mtags, tag)
	}
	sort.Ints(mtags)
	for _, tag := range mtags {
		mat := d.Materials[tag]
		io.Ff(&b, "# %s\n", mat.Layer)
		io.Ff(&b, "nDMaterial %s %d", mat.Model, tag)
		for _, p := range mat.Prms {
			io.Ff(&b, " -%s %g", p.N, p.V)
		}
		io.Ff(&b, "\n")
	}

	// elements
	io.Ff(&b, "\n# elements\n")
	for _, e := range d.Elems {
		if e.Id() == d.DashpotTag {
			continue
		}
		io.Ff(&b, "element %s %d", elemName(ndim, sim.Effective), e.Id())
		for _, v := range e.Verts() {
			io.Ff(&b, " %d", v)
		}
		if ndim == 2 {
			io.Ff(&b, " %g PlaneStrain", sim.Data.ColThick)
		}
		io.Ff(&b, " %d\n", d.MatOf[e.Id()])
	}

	// gravity stages
	io.Ff(&b, "\n# elastic gravity\n")
	io.Ff(&b, "updateMaterialStage -value 0\n")
	io.Ff(&b, "constraints Penalty %g %g\n", sim.Solver.Penalty, sim.Solver.Penalty)
	io.Ff(&b, "test NormDispIncr %g %d\n", sim.Solver.Tol, sim.Solver.NmaxIt)
	io.Ff(&b, "integrator Newmark %g %g\n", sim.Solver.GravTh1, sim.Solver.GravTh2)
	io.Ff(&b, "analyze %d %g\n", sim.Solver.GravSteps, sim.Solver.GravDt)
	io.Ff(&b, "\n# plastic gravity\n")
	io.Ff(&b, "updateMaterialStage -value 1\n")
	io.Ff(&b, "setParameter FirstCall 0\n")
	io.Ff(&b, "setParameter poissonRatio %g\n", elasticNu)
	io.Ff(&b, "analyze %d %g\n", sim.Solver.GravSteps, sim.Solver.GravDt)
	if sim.Effective {
		io.Ff(&b, "\n# permeability\n")
		io.Ff(&b, "setParameter hPerm %g\n", sim.Data.PermDyn)
		io.Ff(&b, "setParameter vPerm %g\n", sim.Data.PermDyn)
	}

	// compliant base
	io.Ff(&b, "\n# compliant base\n")
	for _, tag := range d.GravityFix {
		io.Ff(&b, "remove sp %d\n", tag)
	}
	for _, tag := range d.RadNodes {
		io.Ff(&b, "node %d%s\n", tag, coords(d.Tag2node[tag].X))
	}
	for _, f := range fixs {
		if f.Tag > c.lastFix {
			io.Ff(&b, "fix %d%s\n", f.Node, mask(ndim, f.Dof))
		}
	}
	for _, t := range d.Cons.Ties {
		if t.Tag > c.lastTie {
			io.Ff(&b, "equalDOF %d %d%s\n", t.Master, t.Slave, dofList(t.Dofs))
		}
	}
	io.Ff(&b, "uniaxialMaterial Viscous %d %g 1\n", d.MatOf[d.DashpotTag], c.DashCoef)
	if len(d.RadNodes) == 2 {
		io.Ff(&b, "element zeroLength %d %d %d -mat %d -dir%s\n", d.DashpotTag, d.RadNodes[0], d.RadNodes[1], d.MatOf[d.DashpotTag], dofList(c.Shaking))
	}

	// dynamic stage
	io.Ff(&b, "\n# dynamic analysis\n")
	io.Ff(&b, "setTime 0.0\n")
	io.Ff(&b, "rayleigh %g 0.0 %g 0.0\n", d.A0, d.A1)
	for _, lp := range d.Patterns {
		for _, l := range lp.Loads {
			io.Ff(&b, "pattern Plain %d {velocity series} {\n", lp.Tag)
			io.Ff(&b, "    load %d%s\n", l.Node, loadVec(ndim, l.Dof, l.Dir*lp.Factor))
			io.Ff(&b, "}\n")
		}
	}
	io.Ff(&b, "constraints %s %g %g\n", sim.Solver.Handler, sim.Solver.Penalty, sim.Solver.Penalty)
	io.Ff(&b, "integrator Newmark %g %g\n", sim.Solver.Theta1, sim.Solver.Theta2)
	io.Ff(&b, "analyze %d %g\n", c.NumSteps, sim.Solver.Dt)
	return b.String()
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////////

// elemName returns the name of continuum elements in the script
func elemName(ndim int, effective bool) string {
	switch {
	case ndim == 2 && effective:
		return "quadUP"
	case ndim == 2:
		return "quad"
	case effective:
		return "brickUP"
	}
	return "stdBrick"
}

func coords(x []float64) (l string) {
	for _, v := range x {
		l += io.Sf(" %g", v)
	}
	return
}

// mask returns a fixity mask with 1 at dof
func mask(ndf, dof int) (l string) {
	for i := 0; i < ndf; i++ {
		if i == dof {
			l += " 1"
		} else {
			l += " 0"
		}
	}
	return
}

// dofList returns one-based dofs
func dofList(dofs []int) (l string) {
	for _, d := range dofs {
		l += io.Sf(" %d", d+1)
	}
	return
}

func loadVec(ndim, dof int, val float64) (l string) {
	for i := 0; i < ndim; i++ {
		if i == dof {
			l += io.Sf(" %g", val)
		} else {
			l += " 0.0"
		}
	}
	return
}

// sortedFixities returns current and released fixities sorted by tag
func sortedFixities(d *Domain, released []*Fixity) (fixs []*Fixity) {
	fixs = append(fixs, d.Cons.Fixs...)
	fixs = append(fixs, released...)
	sort.Slice(fixs, func(i, j int) bool { return fixs[i].Tag < fixs[j].Tag })
	return
}
