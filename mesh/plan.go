// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package mesh converts layers into a discretised soil column
package mesh

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/pmackenz/SiteResponseTool/inp"
)

// Options holds the discretisation options
type Options struct {
	Ndim     int     // space dimension: 2 or 3
	MaxFreq  float64 // maximum frequency of interest [Hz]
	Npw      int     // minimum number of nodes per wavelength
	Explicit bool    // use the number of elements given in each layer
}

// LayerPlan holds the discretisation of one soil layer
type LayerPlan struct {
	Layer     int     // index of layer in Layering.Layers
	Name      string  // name of layer
	NumEle    int     // number of elements
	ElemSize  float64 // element size
	Thick     float64 // discretised thickness; may be larger than the layer thickness in mode (a)
	NumNodes  int     // number of nodes owned by this layer
	FirstNode int     // tag of first node owned by this layer
	FirstElem int     // tag of first element of this layer
	Ybot      float64 // elevation of the bottom of the layer
}

// Plan holds the discretisation of the column. Layers are ordered bottom-up
type Plan struct {
	Ndim            int          // space dimension
	NodesPerHorizon int          // 2 in 2D; 4 in 3D
	Layers          []*LayerPlan // bottom-up
	NumNodes        int          // number of regular nodes == tag of the surface node(s)
	NumElems        int          // number of elements
	Height          float64      // height of column
}

// Horizon holds one level of nodes
type Horizon struct {
	Y     float64 // elevation
	Layer int     // index in Plan.Layers owning this horizon
}

// Discretize computes the discretisation plan of the soil layers. The bedrock is not meshed.
//  Mode (a): nele = floor(Npw・h/λmin) - 1 with λmin = Vs/MaxFreq and h = max(thick, λmin)
//  Mode (b): nele given by each layer
func Discretize(lay *inp.Layering, opt Options) (o *Plan, err error) {

	// check
	nsoil := lay.NumSoil()
	if nsoil < 1 {
		return nil, chk.Err("there are no soil layers to be discretised")
	}
	o = new(Plan)
	o.Ndim = opt.Ndim
	switch opt.Ndim {
	case 2:
		o.NodesPerHorizon = 2
	case 3:
		o.NodesPerHorizon = 4
	default:
		return nil, chk.Err("space dimension must be 2 or 3. ndim = %d is invalid", opt.Ndim)
	}
	if !opt.Explicit && (!(opt.MaxFreq > 0) || opt.Npw < 1) {
		return nil, chk.Err("max frequency and nodes per wavelength must be positive: fmax=%g npw=%d", opt.MaxFreq, opt.Npw)
	}

	// layers from the bottom up
	node, elem, y := 1, 1, 0.0
	for i := 0; i < nsoil; i++ {
		idx := nsoil - 1 - i
		l := lay.Layers[idx]
		thick := l.Thick
		var nele int
		if opt.Explicit {
			nele = l.NumEle
		} else {
			λmin := l.Vs / opt.MaxFreq
			thick = math.Max(thick, λmin)
			n := math.Floor(float64(opt.Npw)*thick/λmin) - 1
			if math.IsNaN(n) || math.IsInf(n, 0) {
				return nil, chk.Err("layer %q: cannot compute number of elements with h=%g Vs=%g", l.Name, l.Thick, l.Vs)
			}
			nele = int(math.Max(n, 1))
		}
		if nele < 1 {
			return nil, chk.Err("layer %q has %d elements. at least one element is required", l.Name, nele)
		}
		nhor := nele
		if i == 0 {
			nhor++ // base horizon
		}
		lp := &LayerPlan{
			Layer:     idx,
			Name:      l.Name,
			NumEle:    nele,
			ElemSize:  thick / float64(nele),
			Thick:     thick,
			NumNodes:  nhor * o.NodesPerHorizon,
			FirstNode: node,
			FirstElem: elem,
			Ybot:      y,
		}
		o.Layers = append(o.Layers, lp)
		node += lp.NumNodes
		elem += nele
		y += thick
	}
	o.NumNodes = node - 1
	o.NumElems = elem - 1
	o.Height = y
	return
}

// Horizons returns all horizons from the base up to the surface
func (o *Plan) Horizons() (res []Horizon) {
	for i, lp := range o.Layers {
		if i == 0 {
			res = append(res, Horizon{lp.Ybot, 0})
		}
		for k := 1; k <= lp.NumEle; k++ {
			res = append(res, Horizon{lp.Ybot + float64(k)*lp.ElemSize, i})
		}
	}
	return
}

// ElemLayer returns the index in Plan.Layers of the layer containing element etag
func (o *Plan) ElemLayer(etag int) int {
	for i, lp := range o.Layers {
		if etag >= lp.FirstElem && etag < lp.FirstElem+lp.NumEle {
			return i
		}
	}
	return -1
}

// ElemNodes returns the tags of the nodes of element etag. 2D: counter-clockwise quad; 3D: brick
// with the bottom face first
func (o *Plan) ElemNodes(etag int) []int {
	n1 := o.NodesPerHorizon * (etag - 1)
	if o.Ndim == 2 {
		return []int{n1 + 1, n1 + 2, n1 + 4, n1 + 3}
	}
	return []int{n1 + 1, n1 + 2, n1 + 3, n1 + 4, n1 + 5, n1 + 6, n1 + 7, n1 + 8}
}

// SurfaceNode returns the tag of the highest node at the ground surface
func (o *Plan) SurfaceNode() int {
	return o.NumNodes
}

// String returns a summary of the plan
func (o *Plan) String() (l string) {
	for _, lp := range o.Layers {
		l += io.Sf("Layer %s : Num Elements = %d (esize = %g), Num Nodes = %d\n", lp.Name, lp.NumEle, lp.ElemSize, lp.NumNodes)
	}
	l += io.Sf("Total : Num Elements = %d, Num Nodes = %d, Height = %g\n", o.NumElems, o.NumNodes, o.Height)
	return
}
