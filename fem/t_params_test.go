// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/pmackenz/SiteResponseTool/inp"
)

func Test_params01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("params01")

	sim := newSim(tst, "2D", inp.TotalStress)
	d := newColumn(tst, sim)

	// set and read back
	err := d.SetParams("poissonRatio", 0.25, []int{2, 5})
	if err != nil {
		tst.Errorf("SetParams failed:\n%v", err)
		return
	}
	vals, err := d.ParamValues("poissonRatio")
	if err != nil {
		tst.Errorf("ParamValues failed:\n%v", err)
		return
	}
	chk.Array(tst, "ν", 1e-17, vals, []float64{0.25, 0.25})
	p := d.FindParameter("poissonRatio", 5)
	if p == nil {
		tst.Errorf("cannot find parameter")
		return
	}
	chk.IntAssert(p.MatTag, 2)
	chk.IntAssert(p.Tag, d.Tags.Last(TagParam))

	// setting again does not create new parameters
	nprm := len(d.Params)
	d.SetParams("poissonRatio", 0.3, []int{2, 5})
	chk.IntAssert(len(d.Params), nprm)

	// elastic elements do not accept FirstCall
	if d.SetParams("FirstCall", 0, []int{1}) == nil {
		tst.Errorf("FirstCall should fail with elastic model")
		return
	}

	// no updates during a step
	d.busy = true
	if d.UpdateParameter(p, 0.2) == nil {
		tst.Errorf("UpdateParameter should fail during a solution step")
	}
	d.busy = false
	if _, err = d.AddParameter("materialState", 99); err == nil {
		tst.Errorf("parameter of missing element should fail")
	}
}

func Test_output01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("output01")

	sim := newSim(tst, "2D", inp.TotalStress)
	d := newColumn(tst, sim)
	err := d.SetHandler(Transformation, 0)
	if err != nil {
		tst.Errorf("SetHandler failed:\n%v", err)
		return
	}
	nod := d.Tag2node[16]
	nod.U[0], nod.V[0], nod.A[0] = 1, 2, 3

	dir := tst.TempDir()
	rec := NewRecorders(d, dir)
	for _, kind := range []string{"disp", "vel", "accel"} {
		err = rec.AddNode("surface", 16, []int{0, 1}, kind)
		if err != nil {
			tst.Errorf("AddNode failed:\n%v", err)
			return
		}
	}
	if rec.AddNode("surface", 16, []int{0}, "disp") == nil {
		tst.Errorf("duplicated recorder should fail")
		return
	}
	if rec.AddNode("x", 16, []int{2}, "disp") == nil {
		tst.Errorf("invalid dof should fail")
		return
	}
	err = rec.AddElems("strain", d.SoilElems)
	if err != nil {
		tst.Errorf("AddElems failed:\n%v", err)
		return
	}
	rec.Record(0.5)
	err = rec.Close()
	if err != nil {
		tst.Errorf("Close failed:\n%v", err)
		return
	}
	chk.Strings(tst, "keys", rec.Get("surface.acc").Keys, []string{"ux", "uy"})
	chk.Array(tst, "disp", 1e-17, rec.Get("surface.disp").Last(), []float64{1, 0})
	chk.Array(tst, "vel", 1e-17, rec.Get("surface.vel").Last(), []float64{2, 0})
	chk.Array(tst, "acc", 1e-17, rec.Get("surface.acc").Last(), []float64{3, 0})
	chk.IntAssert(len(rec.Get("strain.out").Keys), 7*4)
	chk.IntAssert(len(rec.Memories()), 4)
}
