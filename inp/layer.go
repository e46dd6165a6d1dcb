// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// material types of soil layers
const (
	ElasticIsotropic = "ElasticIsotropic" // linear elastic isotropic
	PM4Sand          = "PM4Sand"          // nonlinear sand
)

// Layer holds the data of one horizontal slab of soil
type Layer struct {
	Name    string             `json:"name"`    // name of layer; e.g. "clay", "rock"
	Thick   float64            `json:"thick"`   // thickness [m]
	Vs      float64            `json:"vs"`      // shear wave velocity [m/s]
	Rho     float64            `json:"rho"`     // density [Mg/m³]
	MatType string             `json:"mattype"` // "ElasticIsotropic" or "PM4Sand"
	NumEle  int                `json:"nele"`    // explicit number of elements (effective-stress mode)
	Sand    string             `json:"sand"`    // [optional] constant set for PM4Sand; e.g. "N10_T3a"
	Prms    map[string]float64 `json:"prms"`    // [optional] extra material parameters overriding defaults
}

// Layering holds all layers, ordered from the ground surface down to the bedrock.
// The last layer is the bedrock (half-space) and is not discretised.
type Layering struct {
	Layers []*Layer `json:"layers"`
}

// NumLayers returns the number of layers including the bedrock
func (o *Layering) NumLayers() int {
	return len(o.Layers)
}

// NumSoil returns the number of soil (meshed) layers
func (o *Layering) NumSoil() int {
	if len(o.Layers) < 1 {
		return 0
	}
	return len(o.Layers) - 1
}

// Soil returns the i-th soil layer counted from the bottom; i.e. i = 0 is the layer sitting on
// the bedrock and i = NumSoil()-1 is the layer at the surface
func (o *Layering) Soil(i int) *Layer {
	return o.Layers[o.NumSoil()-1-i]
}

// Bedrock returns the bedrock layer
func (o *Layering) Bedrock() *Layer {
	if len(o.Layers) == 0 {
		return nil
	}
	return o.Layers[len(o.Layers)-1]
}

// TotThick returns the total thickness of soil layers (bedrock excluded)
func (o *Layering) TotThick() (h float64) {
	for i := 0; i < o.NumSoil(); i++ {
		h += o.Layers[i].Thick
	}
	return
}

// NaturalPeriod returns the fundamental period of the column computed with the average
// travel time of shear waves: T = 4 Σ hᵢ/Vsᵢ
func (o *Layering) NaturalPeriod() (T float64) {
	for i := 0; i < o.NumSoil(); i++ {
		T += o.Layers[i].Thick / o.Layers[i].Vs
	}
	return 4.0 * T
}

// Validate checks layers data
func (o *Layering) Validate() (err error) {
	if len(o.Layers) < 2 {
		return chk.Err("layering must have at least one soil layer and the bedrock. %d layers given", len(o.Layers))
	}
	for i, lay := range o.Layers {
		if lay.Name == "" {
			lay.Name = io.Sf("layer%d", i)
		}
		if !(lay.Vs > 0) || math.IsInf(lay.Vs, 0) {
			return chk.Err("layer %q: shear velocity must be positive. Vs = %g is invalid", lay.Name, lay.Vs)
		}
		if !(lay.Rho > 0) || math.IsInf(lay.Rho, 0) {
			return chk.Err("layer %q: density must be positive. ρ = %g is invalid", lay.Name, lay.Rho)
		}
		if i == len(o.Layers)-1 {
			continue // bedrock has no thickness nor material
		}
		if !(lay.Thick > 0) || math.IsInf(lay.Thick, 0) {
			return chk.Err("layer %q: thickness must be positive. h = %g is invalid", lay.Name, lay.Thick)
		}
		switch lay.MatType {
		case ElasticIsotropic, PM4Sand:
		case "":
			lay.MatType = ElasticIsotropic
		default:
			return chk.Err("layer %q: material type %q is not available", lay.Name, lay.MatType)
		}
	}
	return
}

// String returns a table with layers data
func (o *Layering) String() (l string) {
	l = io.Sf("%12s%10s%10s%10s%18s\n", "name", "h", "Vs", "ρ", "material")
	for i, lay := range o.Layers {
		mat := lay.MatType
		if i == len(o.Layers)-1 {
			mat = "(bedrock)"
		}
		l += io.Sf("%12s%10g%10g%10g%18s\n", lay.Name, lay.Thick, lay.Vs, lay.Rho, mat)
	}
	return
}
