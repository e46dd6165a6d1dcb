// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/pmackenz/SiteResponseTool/ele"
)

// constraint handlers
const (
	Transformation = "transformation" // tied dofs share one equation; fixed dofs have no equation
	Penalty        = "penalty"        // every dof has one equation; constraints are enforced by penalty terms
)

// Fixity pins one degree of freedom of one node to zero
type Fixity struct {
	Tag  int // constraint tag
	Node int // node tag
	Dof  int // dof index
}

// Tie is an equal-dof constraint: the slave follows the master along Dofs
type Tie struct {
	Tag    int   // constraint tag
	Master int   // master node tag
	Slave  int   // slave node tag
	Dofs   []int // tied dof indices
}

// Constraints holds all single-point (fixities) and multi-point (equal-dof) constraints.
//  Transformation handler:
//   all (node, dof) pairs connected by ties form one group with a single equation;
//   a group with at least one fixed member has no equation (zero value)
//  Penalty handler:
//   all (node, dof) pairs have their own equation and, with α the penalty number,
//     fixity:  α・u = 0
//     tie:     α・(u_s - u_m) = 0
type Constraints struct {
	Fixs    []*Fixity       // fixities sorted by tag
	Ties    []*Tie          // ties sorted by tag
	Handler string          // "transformation" or "penalty"
	Alpha   float64         // penalty number
	tag2fix map[int]*Fixity // tag => fixity
	tag2tie map[int]*Tie    // tag => tie
}

// NewConstraints returns a new structure
func NewConstraints() *Constraints {
	return &Constraints{
		Handler: Transformation,
		Alpha:   1e16,
		tag2fix: make(map[int]*Fixity),
		tag2tie: make(map[int]*Tie),
	}
}

// Fix adds a fixity
func (o *Constraints) Fix(tag, node, dof int) (err error) {
	if _, ok := o.tag2fix[tag]; ok {
		return chk.Err("fixity with tag %d exists already", tag)
	}
	for _, f := range o.Fixs {
		if f.Node == node && f.Dof == dof {
			return chk.Err("dof %d of node %d is already fixed by constraint %d", dof, node, f.Tag)
		}
	}
	fix := &Fixity{tag, node, dof}
	o.Fixs = append(o.Fixs, fix)
	o.tag2fix[tag] = fix
	return
}

// RemoveFixity removes fixity by tag
func (o *Constraints) RemoveFixity(tag int) (err error) {
	if _, ok := o.tag2fix[tag]; !ok {
		return chk.Err("cannot remove fixity %d because it does not exist", tag)
	}
	delete(o.tag2fix, tag)
	for i, f := range o.Fixs {
		if f.Tag == tag {
			o.Fixs = append(o.Fixs[:i], o.Fixs[i+1:]...)
			break
		}
	}
	return
}

// Tie adds an equal-dof constraint
func (o *Constraints) Tie(tag, master, slave int, dofs ...int) (err error) {
	if _, ok := o.tag2tie[tag]; ok {
		return chk.Err("equal-dof constraint with tag %d exists already", tag)
	}
	if master == slave {
		return chk.Err("equal-dof constraint %d: master and slave must be different. node = %d", tag, master)
	}
	if len(dofs) == 0 {
		return chk.Err("equal-dof constraint %d needs at least one dof", tag)
	}
	tie := &Tie{tag, master, slave, append([]int{}, dofs...)}
	o.Ties = append(o.Ties, tie)
	o.tag2tie[tag] = tie
	return
}

// GetFixity returns fixity by tag; nil if not found
func (o *Constraints) GetFixity(tag int) *Fixity { return o.tag2fix[tag] }

// GetTie returns tie by tag; nil if not found
func (o *Constraints) GetTie(tag int) *Tie { return o.tag2tie[tag] }

// Count returns the number of fixities and ties
func (o *Constraints) Count() (nfix, ntie int) {
	return len(o.Fixs), len(o.Ties)
}

// Number sets the equation numbers of all nodes and returns the number of equations
func (o *Constraints) Number(nodes []*Node) (neq int, err error) {
	tag2node := make(map[int]*Node)
	for _, nod := range nodes {
		tag2node[nod.Tag] = nod
	}
	check := func(what string, tag, node, dof int) error {
		nod, ok := tag2node[node]
		if !ok {
			return chk.Err("%s %d: cannot find node %d", what, tag, node)
		}
		if dof < 0 || dof >= nod.Ndof() {
			return chk.Err("%s %d: dof %d of node %d is invalid", what, tag, dof, node)
		}
		return nil
	}
	for _, f := range o.Fixs {
		if err = check("fixity", f.Tag, f.Node, f.Dof); err != nil {
			return
		}
	}
	for _, t := range o.Ties {
		for _, d := range t.Dofs {
			if err = check("equal-dof", t.Tag, t.Master, d); err != nil {
				return
			}
			if err = check("equal-dof", t.Tag, t.Slave, d); err != nil {
				return
			}
		}
	}

	// penalty: one equation per dof
	if o.Handler == Penalty {
		for _, nod := range nodes {
			for _, dof := range nod.Dofs {
				dof.Eq = neq
				neq++
			}
		}
		return
	}
	if o.Handler != Transformation {
		return 0, chk.Err("constraints handler %q is invalid", o.Handler)
	}

	// transformation: groups of tied dofs
	uf := newUnionFind()
	for _, t := range o.Ties {
		for _, d := range t.Dofs {
			uf.union(dofKey{t.Master, d}, dofKey{t.Slave, d})
		}
	}
	fixed := make(map[dofKey]bool)
	for _, f := range o.Fixs {
		fixed[uf.find(dofKey{f.Node, f.Dof})] = true
	}
	root2eq := make(map[dofKey]int)
	for _, nod := range nodes {
		for d, dof := range nod.Dofs {
			root := uf.find(dofKey{nod.Tag, d})
			if fixed[root] {
				dof.Eq = -1
				continue
			}
			eq, ok := root2eq[root]
			if !ok {
				eq = neq
				root2eq[root] = eq
				neq++
			}
			dof.Eq = eq
		}
	}
	return
}

// AddToRhs adds the penalty terms to fb; nothing is added with the transformation handler
func (o *Constraints) AddToRhs(fb []float64, y []float64, tag2node map[int]*Node) {
	if o.Handler != Penalty {
		return
	}
	for _, f := range o.Fixs {
		eq := tag2node[f.Node].Dofs[f.Dof].Eq
		fb[eq] -= o.Alpha * y[eq]
	}
	for _, t := range o.Ties {
		m, s := tag2node[t.Master], tag2node[t.Slave]
		for _, d := range t.Dofs {
			I, J := m.Dofs[d].Eq, s.Dofs[d].Eq
			g := y[J] - y[I]
			fb[I] += o.Alpha * g
			fb[J] -= o.Alpha * g
		}
	}
}

// AddToKb adds the penalty terms to the stiffness matrix; nothing is added with the
// transformation handler
func (o *Constraints) AddToKb(kb *ele.Kb, tag2node map[int]*Node) {
	if o.Handler != Penalty {
		return
	}
	for _, f := range o.Fixs {
		eq := tag2node[f.Node].Dofs[f.Dof].Eq
		ele.Add(kb.K, eq, eq, o.Alpha)
	}
	for _, t := range o.Ties {
		m, s := tag2node[t.Master], tag2node[t.Slave]
		for _, d := range t.Dofs {
			I, J := m.Dofs[d].Eq, s.Dofs[d].Eq
			ele.Add(kb.K, I, I, o.Alpha)
			ele.Add(kb.K, J, J, o.Alpha)
			ele.Add(kb.K, I, J, -o.Alpha)
			ele.Add(kb.K, J, I, -o.Alpha)
		}
	}
}

// List returns a simple list of constraints
func (o *Constraints) List() (l string) {
	l = "\n==================================================================\n"
	l += io.Sf("%8s%10s%10s%10s%20s\n", "tag", "kind", "node", "master", "dofs")
	l += "------------------------------------------------------------------\n"
	sort.Slice(o.Fixs, func(i, j int) bool { return o.Fixs[i].Tag < o.Fixs[j].Tag })
	sort.Slice(o.Ties, func(i, j int) bool { return o.Ties[i].Tag < o.Ties[j].Tag })
	for _, f := range o.Fixs {
		l += io.Sf("%8d%10s%10d%10s%20v\n", f.Tag, "fix", f.Node, "-", []int{f.Dof})
	}
	for _, t := range o.Ties {
		l += io.Sf("%8d%10s%10d%10d%20v\n", t.Tag, "equalDOF", t.Slave, t.Master, t.Dofs)
	}
	l += "==================================================================\n"
	return
}

// auxiliary /////////////////////////////////////////////////////////////////////////////////////////

// dofKey identifies one dof of one node
type dofKey struct {
	node int
	dof  int
}

// unionFind implements disjoint sets of dofs with path compression
type unionFind struct {
	parent map[dofKey]dofKey
}

func newUnionFind() *unionFind {
	return &unionFind{make(map[dofKey]dofKey)}
}

func (o *unionFind) find(k dofKey) dofKey {
	p, ok := o.parent[k]
	if !ok || p == k {
		return k
	}
	root := o.find(p)
	o.parent[k] = root
	return root
}

// union joins the sets of a and b; the root with the smallest node tag wins
func (o *unionFind) union(a, b dofKey) {
	ra, rb := o.find(a), o.find(b)
	if ra == rb {
		return
	}
	if rb.node < ra.node {
		ra, rb = rb, ra
	}
	o.parent[rb] = ra
}
