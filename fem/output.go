// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/pmackenz/SiteResponseTool/ele"
	"github.com/pmackenz/SiteResponseTool/ele/solid"
	"github.com/pmackenz/SiteResponseTool/out"
)

// file extensions of nodal responses
var kind2ext = map[string]string{"disp": "disp", "vel": "vel", "accel": "acc"}

// binding connects one recorder to a function collecting values from the domain
type binding struct {
	name string                    // name of record; e.g. "surface.acc"
	keys []string                  // keys of values
	rec  out.Recorder              // recorder
	mem  *out.Memory               // in-memory copy
	get  func() ([]float64, error) // collects values
}

// Recorders holds all recorders bound to a domain
type Recorders struct {
	Dom    *Domain    // domain
	DirOut string     // output directory; empty => in-memory only
	Items  []*binding // bindings
}

// NewRecorders returns a new set of recorders; text files are written to dirout if not empty
func NewRecorders(dom *Domain, dirout string) *Recorders {
	return &Recorders{Dom: dom, DirOut: dirout}
}

// Get returns the in-memory copy of record name; nil if not found
func (o *Recorders) Get(name string) *out.Memory {
	for _, b := range o.Items {
		if b.name == name {
			return b.mem
		}
	}
	return nil
}

// Memories returns the in-memory copies of all records
func (o *Recorders) Memories() (mems []*out.Memory) {
	for _, b := range o.Items {
		mems = append(mems, b.mem)
	}
	return
}

// AddNode records kind ("disp", "vel" or "accel") of dofs of node. The record is named
// prefix.ext; e.g. "surface.acc"
func (o *Recorders) AddNode(prefix string, node int, dofs []int, kind string) (err error) {
	ext, ok := kind2ext[kind]
	if !ok {
		return chk.Err("node response %q is invalid", kind)
	}
	nod, ok := o.Dom.Tag2node[node]
	if !ok {
		return chk.Err("recorder %s.%s: cannot find node %d", prefix, ext, node)
	}
	keys := make([]string, len(dofs))
	for i, d := range dofs {
		if d < 0 || d >= nod.Ndof() {
			return chk.Err("recorder %s.%s: node %d does not have dof %d", prefix, ext, node, d)
		}
		keys[i] = nod.Dofs[d].Key
	}
	get := func() (vals []float64, err error) {
		vals = make([]float64, len(dofs))
		for i, d := range dofs {
			vals[i], err = o.Dom.NodeValue(node, d, kind)
			if err != nil {
				return
			}
		}
		return
	}
	return o.add(prefix+"."+ext, keys, get)
}

// AddElems records averaged stresses ("stress") or strains ("strain") of elements. Only
// continuum elements are considered: those with more than 2・ndim dofs that can output values at
// integration points. The record is named which + ".out"
func (o *Recorders) AddElems(which string, etags []int) (err error) {
	ndim := o.Dom.Plan.Ndim
	var cmps []string
	switch which {
	case "stress":
		cmps = solid.StressKeys(ndim)
	case "strain":
		cmps = solid.StrainKeys(ndim)
	default:
		return chk.Err("element response %q is invalid", which)
	}
	var elems []ele.CanOutputIps
	var keys []string
	for _, etag := range etags {
		e, ok := o.Dom.Tag2elem[etag]
		if !ok {
			return chk.Err("recorder %s: cannot find element %d", which, etag)
		}
		eo, ok := e.(ele.CanOutputIps)
		if !ok || numDofs(e) <= 2*ndim {
			continue
		}
		elems = append(elems, eo)
		for _, c := range cmps {
			keys = append(keys, io.Sf("e%d_%s", etag, c))
		}
	}
	get := func() (vals []float64, err error) {
		vals = make([]float64, 0, len(keys))
		for _, e := range elems {
			M := ele.NewIpsMap()
			e.OutIpVals(M, o.Dom.Sol)
			for _, c := range cmps {
				vals = append(vals, M.Avg(c))
			}
		}
		return
	}
	return o.add(which+".out", keys, get)
}

// Record records all values at time t
func (o *Recorders) Record(t float64) (err error) {
	for _, b := range o.Items {
		vals, e := b.get()
		if e != nil {
			return chk.Err("recorder %q failed:\n%v", b.name, e)
		}
		err = b.rec.Record(t, vals)
		if err != nil {
			return
		}
	}
	return
}

// Close closes all recorders
func (o *Recorders) Close() (err error) {
	for _, b := range o.Items {
		if e := b.rec.Close(); e != nil && err == nil {
			err = e
		}
	}
	return
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////////

// add opens a new binding
func (o *Recorders) add(name string, keys []string, get func() ([]float64, error)) (err error) {
	if o.Get(name) != nil {
		return chk.Err("recorder %q exists already", name)
	}
	b := &binding{name: name, keys: keys, mem: out.NewMemory(name), get: get}
	b.rec = b.mem
	if o.DirOut != "" {
		b.rec = out.Tee{out.NewText(o.DirOut, name), b.mem}
	}
	err = b.rec.Open(keys)
	if err != nil {
		return
	}
	o.Items = append(o.Items, b)
	return
}

// numDofs returns the total number of dofs of element
func numDofs(e ele.Element) (n int) {
	for _, dofs := range e.Info().Dofs {
		n += len(dofs)
	}
	return
}
