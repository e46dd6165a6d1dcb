// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import "github.com/cpmech/gosl/chk"

// TimeFcn defines a scalar function of time
type TimeFcn func(t float64) float64

// NodalLoad holds a concentrated force at one dof of one node
type NodalLoad struct {
	Node int     // node tag
	Dof  int     // dof index
	Dir  float64 // reference value of load; e.g. 1.0
}

// LoadPattern scales a set of nodal loads by factor・fcn(t)
type LoadPattern struct {
	Tag    int          // pattern tag
	Factor float64      // constant factor; e.g. the dashpot coefficient
	Fcn    TimeFcn      // time series
	Loads  []*NodalLoad // loads
}

// AddLoadPattern adds a new load pattern
func (o *Domain) AddLoadPattern(factor float64, fcn TimeFcn, loads ...*NodalLoad) (lp *LoadPattern, err error) {
	if fcn == nil {
		return nil, chk.Err("load pattern needs a time series")
	}
	for _, l := range loads {
		nod, ok := o.Tag2node[l.Node]
		if !ok {
			return nil, chk.Err("load pattern: cannot find node %d", l.Node)
		}
		if l.Dof < 0 || l.Dof >= nod.Ndof() {
			return nil, chk.Err("load pattern: dof %d of node %d is invalid", l.Dof, l.Node)
		}
	}
	lp = &LoadPattern{o.Tags.Next(TagPattern), factor, fcn, loads}
	o.Patterns = append(o.Patterns, lp)
	return
}

// AddToRhs adds the loads at time t to fb
func (o *LoadPattern) AddToRhs(fb []float64, t float64, tag2node map[int]*Node) {
	f := o.Factor * o.Fcn(t)
	for _, l := range o.Loads {
		eq := tag2node[l.Node].Dofs[l.Dof].Eq
		if eq >= 0 {
			fb[eq] += f * l.Dir
		}
	}
}
