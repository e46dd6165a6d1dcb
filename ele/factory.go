// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"github.com/cpmech/gosl/chk"
	"github.com/pmackenz/SiteResponseTool/mdl/solid"
)

// Cell holds the data required to allocate an element
type Cell struct {
	Id    int         // element tag
	Type  string      // element type; e.g. "solid", "solid-liquid", "dashpot"
	Verts []int       // node tags
	X     [][]float64 // [ndim][nverts] coordinates
	Ndim  int         // space dimension

	// material
	Model string     // material model name
	Prms  solid.Prms // material parameters

	// element data
	Thick float64    // out-of-plane thickness (2D only)
	Grav  float64    // gravity acceleration; acting along -y
	Dirs  []int      // directions of uniaxial elements; e.g. 0 => x
	Extra solid.Prms // extra element parameters; e.g. "hPerm", "vPerm", "Kf", "rhof", "evoid"
}

// AllocatorType defines a function that allocates an element
type AllocatorType func(cell *Cell) (Element, error)

// New returns a new element from factory
func New(cell *Cell) (ele Element, err error) {
	fcn, ok := allocators[cell.Type]
	if !ok {
		err = chk.Err("cannot get allocator for element {type=%q, id=%d}", cell.Type, cell.Id)
		return
	}
	ele, err = fcn(cell)
	if err != nil {
		err = chk.Err("cannot allocate element {type=%q, id=%d}:\n%v", cell.Type, cell.Id, err)
	}
	return
}

// SetAllocator sets a new callback function to allocate an element
func SetAllocator(elementName string, fcn AllocatorType) {
	if _, ok := allocators[elementName]; ok {
		chk.Panic("cannot set allocator function for %q because element name exists already", elementName)
	}
	allocators[elementName] = fcn
}

// GetAllocator gets callback function to allocate an element
func GetAllocator(elementName string) AllocatorType {
	if fcn, ok := allocators[elementName]; ok {
		return fcn
	}
	chk.Panic("cannot get allocator function for element %q", elementName)
	return nil
}

// allocators holds all element allocators
var allocators = make(map[string]AllocatorType)
