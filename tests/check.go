// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package tests implements structures and functions to verify soil columns and site-response runs
package tests

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/pmackenz/SiteResponseTool/ana"
	"github.com/pmackenz/SiteResponseTool/ele"
	"github.com/pmackenz/SiteResponseTool/ele/solid"
	"github.com/pmackenz/SiteResponseTool/fem"
	"github.com/pmackenz/SiteResponseTool/out"
)

// SelfWeight returns the analytical solution of the elastic column under gravity. All layers must
// have linear elastic materials
func SelfWeight(dom *fem.Domain) (sol *ana.ConfinedSelfWeight, err error) {
	slabs := make([]ana.Slab, len(dom.Plan.Layers))
	for i, lp := range dom.Plan.Layers {
		mat := dom.Materials[dom.LayerMats[i]]
		E, nu, rho := mat.Prms.Find("E"), mat.Prms.Find("nu"), mat.Prms.Find("rho")
		if E == nil || nu == nil || rho == nil {
			return nil, chk.Err("layer %q: material %q is not linear elastic", lp.Name, mat.Model)
		}
		slabs[i] = ana.Slab{H: lp.Thick, E: E.V, Nu: nu.V, Rho: rho.V}
	}
	sol = new(ana.ConfinedSelfWeight)
	sol.Init(dom.Sim.Data.Grav, slabs...)
	return
}

// CheckSelfWeight compares nodal vertical displacements and averaged element stresses with the
// analytical solution of the confined column. Tolerances are relative to the largest values
func CheckSelfWeight(tst *testing.T, dom *fem.Domain, tolu, tols float64, verbose bool) {

	// analytical solution
	sol, err := SelfWeight(dom)
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	umax := math.Abs(sol.Uy(sol.H))
	smax := math.Abs(sol.Sv(0))

	// displacements
	if verbose {
		io.Pfgreen(". . . checking displacements . . .\n")
	}
	for _, nod := range dom.Nodes {
		idx := nod.DofIndex("uy")
		if idx < 0 || !(nod.X[1] > 0) || nod.X[1] > sol.H+1e-10 {
			continue
		}
		if isRadiation(dom, nod.Tag) {
			continue
		}
		uy := sol.Uy(nod.X[1])
		chk.AnaNum(tst, io.Sf("uy(%d)/umax", nod.Tag), tolu, nod.U[idx]/umax, uy/umax, verbose)
	}

	// stresses
	if verbose {
		io.Pfgreen(". . . checking stresses . . .\n")
	}
	keys := solid.StressKeys(dom.Plan.Ndim)
	for _, etag := range dom.SoilElems {
		e, ok := dom.Tag2elem[etag].(ele.CanOutputIps)
		if !ok {
			continue
		}
		ymid := 0.0
		verts := dom.Tag2elem[etag].Verts()
		for _, v := range verts {
			ymid += dom.Tag2node[v].X[1] / float64(len(verts))
		}
		M := ele.NewIpsMap()
		e.OutIpVals(M, dom.Sol)
		σ := sol.Stress(dom.Plan.Ndim, ymid)
		for i, key := range keys {
			chk.AnaNum(tst, io.Sf("%s(e%d)/smax", key, etag), tols, M.Avg(key)/smax, σ[i]/smax, verbose)
		}
	}
}

// CheckRecord compares the history of key in a record with reference values
func CheckRecord(tst *testing.T, mem *out.Memory, key string, tol float64, ref []float64) {
	if mem == nil {
		tst.Errorf("record is missing\n")
		return
	}
	vals := mem.Get(key)
	if vals == nil {
		tst.Errorf("record %q does not have key %q\n", mem.Name, key)
		return
	}
	chk.Array(tst, io.Sf("%s:%s", mem.Name, key), tol, vals, ref)
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////////

func isRadiation(dom *fem.Domain, tag int) bool {
	for _, t := range dom.RadNodes {
		if t == tag {
			return true
		}
	}
	return false
}
