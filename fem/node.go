// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import "github.com/cpmech/gosl/io"

// Dof holds information about a degree-of-freedom == solution variable
type Dof struct {
	Key string // primary variable key. e.g. "ux"
	Eq  int    // equation number; -1 => prescribed (zero)
}

// Node holds node dofs information and the last committed nodal state
type Node struct {
	Tag  int       // node tag
	X    []float64 // coordinates
	Dofs []*Dof    // degrees-of-freedom == solution variables

	// committed state; one value per dof
	U []float64 // displacements (or pressure)
	V []float64 // velocities (or rates)
	A []float64 // accelerations
}

// NewNode allocates a new Node with the given dof keys
func NewNode(tag int, x []float64, keys ...string) (o *Node) {
	o = new(Node)
	o.Tag = tag
	o.X = make([]float64, len(x))
	copy(o.X, x)
	for _, key := range keys {
		o.Dofs = append(o.Dofs, &Dof{key, -1})
	}
	o.U = make([]float64, len(keys))
	o.V = make([]float64, len(keys))
	o.A = make([]float64, len(keys))
	return
}

// Ndof returns the number of degrees of freedom
func (o *Node) Ndof() int { return len(o.Dofs) }

// DofIndex returns the index of dof with key; -1 if not found
func (o *Node) DofIndex(key string) int {
	for i, dof := range o.Dofs {
		if dof.Key == key {
			return i
		}
	}
	return -1
}

// GetDof returns the Dof structure for given Dof name (key)
//  Note: returns nil if key is not found
func (o *Node) GetDof(key string) *Dof {
	if i := o.DofIndex(key); i >= 0 {
		return o.Dofs[i]
	}
	return nil
}

// GetEq returns the equation number for given key
//  Note: returns -1 if key is not found or the dof is prescribed
func (o *Node) GetEq(key string) (eq int) {
	if dof := o.GetDof(key); dof != nil {
		return dof.Eq
	}
	return -1
}

// String returns a string representation of this node
func (o *Node) String() (l string) {
	l = io.Sf("{\"tag\":%d, \"x\":%v, \"dofs\":[", o.Tag, o.X)
	for i, dof := range o.Dofs {
		if i > 0 {
			l += ", "
		}
		l += io.Sf("{\"%s\":%d}", dof.Key, dof.Eq)
	}
	return l + "]}"
}
