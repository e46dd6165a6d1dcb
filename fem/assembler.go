// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
	"github.com/pmackenz/SiteResponseTool/ele"
	"github.com/pmackenz/SiteResponseTool/inp"
	"github.com/pmackenz/SiteResponseTool/mdl/solid"
	"github.com/pmackenz/SiteResponseTool/mesh"
)

// Poisson's coefficient of elastic layers
const elasticNu = 0.3

// BuildColumn assembles the soil column. The order of operations sets all tags:
//  1. nodes, bottom-up, one horizon at a time; dry nodes are those above the water table
//  2. fixities of the base horizon; the horizontal ones are removed in the dynamic stage
//  3. equal-dofs tying each horizon above the base to its first node
//  4. fixities of the pore-pressure at dry nodes (effective stress only)
//  5. one material per layer; the bottom layer has the lowest tag
//  6. one element per mesh cell
//  7. one "materialState" parameter per element
func BuildColumn(sim *inp.Simulation, plan *mesh.Plan, showMsg bool) (d *Domain, err error) {

	// check
	if plan == nil || plan.NumElems < 1 {
		return nil, configErr("column has no elements")
	}
	if sim.Ndim != plan.Ndim {
		return nil, chk.Err("space dimension of simulation (%d) and mesh (%d) are different", sim.Ndim, plan.Ndim)
	}
	if !(sim.Data.ColWidth > 0) || !(sim.Data.ColThick > 0) {
		return nil, configErr("column width and thickness must be positive: w=%g t=%g", sim.Data.ColWidth, sim.Data.ColThick)
	}
	d = NewDomain(sim, plan, showMsg)
	ndim, nph := plan.Ndim, plan.NodesPerHorizon

	// 1. nodes
	keys := ele.Ukeys(ndim)
	if sim.Effective {
		keys = append(keys, "pl")
	}
	ywt := plan.Height - sim.Data.Gwt
	var dry []int
	for _, h := range plan.Horizons() {
		for _, x := range horizonCoords(ndim, sim.Data.ColWidth, h.Y) {
			nod := d.AddNode(x, keys...)
			if sim.Effective && h.Y >= ywt-1e-10 {
				dry = append(dry, nod.Tag)
			}
		}
	}
	if d.Tags.Last(TagNode) != plan.NumNodes {
		return nil, chk.Err("number of nodes (%d) is different from the number of nodes in mesh (%d)", d.Tags.Last(TagNode), plan.NumNodes)
	}

	// 2. base fixities
	for n := 1; n <= nph; n++ {
		for dof := 0; dof < ndim; dof++ {
			tag := d.Tags.Next(TagFix)
			err = d.Cons.Fix(tag, n, dof)
			if err != nil {
				return
			}
			if dof != 1 {
				d.GravityFix = append(d.GravityFix, tag)
			}
		}
	}

	// 3. periodic boundaries
	udofs := utl.IntRange(ndim)
	for first := nph + 1; first <= plan.NumNodes; first += nph {
		for k := 1; k < nph; k++ {
			err = d.Cons.Tie(d.Tags.Next(TagTie), first, first+k, udofs...)
			if err != nil {
				return
			}
		}
	}

	// 4. dry nodes
	d.DryNodes = dry
	for _, n := range dry {
		err = d.Cons.Fix(d.Tags.Next(TagFix), n, ndim)
		if err != nil {
			return
		}
	}

	// 5. materials
	for _, lp := range plan.Layers {
		lay := sim.Layering.Layers[lp.Layer]
		model, prms, e := LayerMaterial(lay)
		if e != nil {
			return nil, e
		}
		mat := d.AddMaterial(model, prms, lay.Name)
		d.LayerMats = append(d.LayerMats, mat.Tag)
	}

	// 6. elements
	etype := "solid"
	var extra solid.Prms
	if sim.Effective {
		etype = "solid-liquid"
		extra = solid.Prms{
			&solid.Prm{N: "Kf", V: sim.Data.Kf},
			&solid.Prm{N: "rhof", V: sim.Data.RhoF},
			&solid.Prm{N: "hPerm", V: sim.Data.PermGrav},
			&solid.Prm{N: "vPerm", V: sim.Data.PermGrav},
		}
	}
	for e := 1; e <= plan.NumElems; e++ {
		etag := d.Tags.Next(TagElem)
		il := plan.ElemLayer(etag)
		if il < 0 {
			return nil, chk.Err("cannot find layer of element %d", etag)
		}
		cell := &ele.Cell{
			Id:    etag,
			Type:  etype,
			Verts: plan.ElemNodes(etag),
			Thick: sim.Data.ColThick,
			Grav:  sim.Data.Grav,
			Extra: extra,
		}
		_, err = d.AddElement(cell, d.LayerMats[il])
		if err != nil {
			return
		}
		d.SoilElems = append(d.SoilElems, etag)
	}

	// tag of the radiation-boundary element; issued before any parameter
	d.DashpotTag = d.Tags.Next(TagElem)

	// 7. material state parameters
	for _, etag := range d.SoilElems {
		_, err = d.AddParameter("materialState", etag)
		if err != nil {
			return
		}
	}

	// message
	if showMsg {
		nfix, ntie := d.Cons.Count()
		io.Pf("> Column assembled: %d nodes, %d elements, %d materials, %d fixities, %d equal-dofs\n",
			len(d.Nodes), len(d.Elems), len(d.Materials), nfix, ntie)
	}
	return
}

// LayerMaterial returns the model name and parameters of a soil layer.
//  ElasticIsotropic: E = 2・ρ・Vs²・(1+ν) with ν = 0.3
//  PM4Sand: calibration set given by layer.Sand; "N10_T3b" if empty
// Extra parameters in layer.Prms replace (or are added to) the default ones
func LayerMaterial(lay *inp.Layer) (model string, prms solid.Prms, err error) {
	switch lay.MatType {
	case inp.ElasticIsotropic, "":
		model = "lin-elast"
		E := 2.0 * lay.Rho * lay.Vs * lay.Vs * (1.0 + elasticNu)
		prms = solid.Prms{
			&solid.Prm{N: "E", V: E},
			&solid.Prm{N: "nu", V: elasticNu},
			&solid.Prm{N: "rho", V: lay.Rho},
		}
	case inp.PM4Sand:
		model = "sand"
		set := lay.Sand
		if set == "" {
			set = "N10_T3b"
		}
		prms, err = solid.SandPrms(set)
		if err != nil {
			return "", nil, chk.Err("layer %q:\n%v", lay.Name, err)
		}
	default:
		return "", nil, configErr("layer %q: material type %q is not available", lay.Name, lay.MatType)
	}
	names := make([]string, 0, len(lay.Prms))
	for name := range lay.Prms {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if p := prms.Find(name); p != nil {
			p.V = lay.Prms[name]
			continue
		}
		prms = append(prms, &solid.Prm{N: name, V: lay.Prms[name]})
	}
	return
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////////

// horizonCoords returns the coordinates of the nodes of one horizon at elevation y
//  2D: (0,y) (w,y)
//  3D: (0,y,0) (0,y,w) (w,y,w) (w,y,0)
func horizonCoords(ndim int, w, y float64) [][]float64 {
	if ndim == 2 {
		return [][]float64{{0, y}, {w, y}}
	}
	return [][]float64{{0, y, 0}, {0, y, w}, {w, y, w}, {w, y, 0}}
}
