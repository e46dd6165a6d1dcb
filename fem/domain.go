// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/pmackenz/SiteResponseTool/ele"
	"github.com/pmackenz/SiteResponseTool/inp"
	"github.com/pmackenz/SiteResponseTool/mdl/solid"
	"github.com/pmackenz/SiteResponseTool/mesh"
)

// Material holds the definition of a material; each element allocates its own model from it
type Material struct {
	Tag   int        // material tag
	Model string     // model name; e.g. "lin-elast", "sand", "viscous"
	Prms  solid.Prms // parameters
	Layer string     // name of layer; empty for the radiation boundary
}

// Domain holds the whole column: nodes, constraints, materials, elements, parameters and load
// patterns, in addition to the Solution at nodes. It is the only run context; stage functions
// receive it explicitly
type Domain struct {

	// init: auxiliary variables
	Sim     *inp.Simulation // input data
	Plan    *mesh.Plan      // discretisation
	ShowMsg bool            // show messages
	Tags    *Tags           // tag allocator

	// graph
	Nodes     []*Node               // all nodes, sorted by tag
	Tag2node  map[int]*Node         // node tag => node
	Elems     []ele.Element         // all elements
	Tag2elem  map[int]ele.Element   // element tag => element
	Materials map[int]*Material     // material tag => material
	MatOf     map[int]int           // element tag => material tag
	Cons      *Constraints          // fixities and equal-dofs
	Params    []*Parameter          // parameters
	Patterns  []*LoadPattern        // load patterns
	SoilElems []int                 // tags of soil elements
	LayerMats []int                 // material tag of each layer in Plan.Layers (bottom-up)

	// subsets of elements
	ElemIntvars []ele.WithIntVars // elements with internal vars

	// tags created during assembly and stages
	GravityFix []int // fixities removed at the beginning of the dynamic stage
	DashpotTag int   // tag reserved for the radiation-boundary element
	RadNodes   []int // radiation-boundary nodes: [fixed anchor, free node]
	DryNodes   []int // nodes above the water table with pl fixed to zero

	// analysis context
	Time   float64 // current (committed) time
	A0, A1 float64 // Rayleigh damping coefficients: Cr = A0・M + A1・K

	// solution
	Neq int           // number of equations
	Sol *ele.Solution // solution state
	Kb  *ele.Kb       // global matrices
	Fb  []float64     // residual == -R
	Wb  []float64     // workspace: δy

	// internal
	busy bool // a solution step is in progress
}

// NewDomain returns a new empty domain
func NewDomain(sim *inp.Simulation, plan *mesh.Plan, showMsg bool) (o *Domain) {
	o = new(Domain)
	o.Sim = sim
	o.Plan = plan
	o.ShowMsg = showMsg
	o.Tags = NewTags()
	o.Tag2node = make(map[int]*Node)
	o.Tag2elem = make(map[int]ele.Element)
	o.Materials = make(map[int]*Material)
	o.MatOf = make(map[int]int)
	o.Cons = NewConstraints()
	return
}

// AddNode adds a new node with tag from the allocator
func (o *Domain) AddNode(x []float64, keys ...string) (nod *Node) {
	nod = NewNode(o.Tags.Next(TagNode), x, keys...)
	o.Nodes = append(o.Nodes, nod)
	o.Tag2node[nod.Tag] = nod
	return
}

// AddMaterial adds a new material with tag from the allocator
func (o *Domain) AddMaterial(model string, prms solid.Prms, layer string) (mat *Material) {
	mat = &Material{o.Tags.Next(TagMat), model, prms, layer}
	o.Materials[mat.Tag] = mat
	return
}

// AddElement allocates an element. cell.Id must be given; cell.Model and cell.Prms are taken
// from the material
func (o *Domain) AddElement(cell *ele.Cell, matTag int) (e ele.Element, err error) {
	if _, ok := o.Tag2elem[cell.Id]; ok {
		return nil, chk.Err("element with tag %d exists already", cell.Id)
	}
	mat, ok := o.Materials[matTag]
	if !ok {
		return nil, chk.Err("element %d: cannot find material %d", cell.Id, matTag)
	}
	cell.Model, cell.Prms = mat.Model, mat.Prms
	cell.Ndim = o.Plan.Ndim
	cell.X = make([][]float64, cell.Ndim)
	for i := 0; i < cell.Ndim; i++ {
		cell.X[i] = make([]float64, len(cell.Verts))
	}
	for m, v := range cell.Verts {
		nod, ok := o.Tag2node[v]
		if !ok {
			return nil, chk.Err("element %d: cannot find node %d", cell.Id, v)
		}
		for i := 0; i < cell.Ndim; i++ {
			cell.X[i][m] = nod.X[i]
		}
	}
	e, err = ele.New(cell)
	if err != nil {
		return
	}
	info := e.Info()
	for m, v := range cell.Verts {
		nod := o.Tag2node[v]
		for _, key := range info.Dofs[m] {
			if nod.GetDof(key) == nil {
				return nil, chk.Err("element %d: node %d does not have dof %q", cell.Id, v, key)
			}
		}
	}
	o.Elems = append(o.Elems, e)
	o.Tag2elem[cell.Id] = e
	o.MatOf[cell.Id] = matTag
	if eiv, ok := e.(ele.WithIntVars); ok {
		o.ElemIntvars = append(o.ElemIntvars, eiv)
	}
	return
}

// SetHandler sets the constraints handler and renumbers all equations
func (o *Domain) SetHandler(handler string, alpha float64) (err error) {
	o.Cons.Handler = handler
	o.Cons.Alpha = alpha
	return o.Renumber()
}

// Renumber numbers all equations, allocates the global structures and copies the committed
// nodal state into the solution vectors
func (o *Domain) Renumber() (err error) {
	sort.Slice(o.Nodes, func(i, j int) bool { return o.Nodes[i].Tag < o.Nodes[j].Tag })
	o.Neq, err = o.Cons.Number(o.Nodes)
	if err != nil {
		return
	}
	if o.Neq == 0 {
		return chk.Err("there are no equations to be solved")
	}
	for _, e := range o.Elems {
		info := e.Info()
		eqs := make([][]int, len(e.Verts()))
		for m, v := range e.Verts() {
			nod := o.Tag2node[v]
			eqs[m] = make([]int, len(info.Dofs[m]))
			for k, key := range info.Dofs[m] {
				eqs[m][k] = nod.GetEq(key)
			}
		}
		err = e.SetEqs(eqs)
		if err != nil {
			return
		}
	}
	o.Sol = ele.NewSolution(o.Neq)
	o.Kb = ele.NewKb(o.Neq)
	o.Fb = make([]float64, o.Neq)
	o.Wb = make([]float64, o.Neq)
	o.gather()
	if o.ShowMsg {
		nfix, ntie := o.Cons.Count()
		io.Pf("> Equations numbered with %s handler: neq = %d (fixities = %d, equal-dofs = %d)\n", o.Cons.Handler, o.Neq, nfix, ntie)
	}
	return
}

// Commit saves the converged solution into nodes and makes internal variables permanent
func (o *Domain) Commit() (err error) {
	o.Time = o.Sol.T
	for _, nod := range o.Nodes {
		for d, dof := range nod.Dofs {
			nod.U[d] = ele.Get(o.Sol.Y, dof.Eq)
			nod.V[d] = ele.Get(o.Sol.Dydt, dof.Eq)
			nod.A[d] = ele.Get(o.Sol.D2ydt2, dof.Eq)
		}
	}
	for _, e := range o.ElemIntvars {
		err = e.BackupIvs()
		if err != nil {
			return
		}
	}
	return
}

// Restore reverts to the last committed state
func (o *Domain) Restore() (err error) {
	o.gather()
	for _, e := range o.ElemIntvars {
		err = e.RestoreIvs()
		if err != nil {
			return
		}
	}
	return
}

// SetTime sets the current time
func (o *Domain) SetTime(t float64) {
	o.Time = t
	if o.Sol != nil {
		o.Sol.T = t
	}
}

// NodeValue returns the committed value of dof at node; kind is "disp", "vel" or "accel"
func (o *Domain) NodeValue(tag, dof int, kind string) (v float64, err error) {
	nod, ok := o.Tag2node[tag]
	if !ok {
		return 0, chk.Err("cannot find node %d", tag)
	}
	if dof < 0 || dof >= nod.Ndof() {
		return 0, chk.Err("node %d does not have dof %d", tag, dof)
	}
	switch kind {
	case "disp":
		return nod.U[dof], nil
	case "vel":
		return nod.V[dof], nil
	case "accel":
		return nod.A[dof], nil
	}
	return 0, chk.Err("node response %q is invalid", kind)
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////////

// gather copies the committed nodal state into the solution vectors
func (o *Domain) gather() {
	o.Sol.Reset()
	o.Sol.T = o.Time
	for _, nod := range o.Nodes {
		for d, dof := range nod.Dofs {
			if dof.Eq < 0 {
				continue
			}
			o.Sol.Y[dof.Eq] = nod.U[d]
			o.Sol.Dydt[dof.Eq] = nod.V[d]
			o.Sol.D2ydt2[dof.Eq] = nod.A[d]
		}
	}
}
