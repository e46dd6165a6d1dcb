// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/pmackenz/SiteResponseTool/ana"
	"github.com/pmackenz/SiteResponseTool/fem"
	"github.com/pmackenz/SiteResponseTool/tests"
)

func Test_grav01(tst *testing.T) {

	//tests.Verbose()
	chk.PrintTitle("grav01. elastic gravity. 2D column with two layers")

	// fem
	main, err := fem.NewMain("data/grav2d.json", chk.Verbose)
	if err != nil {
		tst.Errorf("NewMain failed:\n%v", err)
		return
	}
	defer main.Ctrl.Close()

	// run stage
	err = main.Ctrl.ElasticGravity()
	if err != nil {
		tst.Errorf("ElasticGravity failed:\n%v", err)
		return
	}

	// check
	tests.CheckSelfWeight(tst, main.Dom, 1e-2, 1e-2, chk.Verbose)

	// surface record
	rec := main.Ctrl.GravRec.Get("surface_grav.disp")
	chk.Int(tst, "number of records", len(rec.T), main.Sim.Solver.GravSteps)
	sol, _ := tests.SelfWeight(main.Dom)
	_, uy := rec.Peak("uy")
	io.Pforan("uy(surface) = %g (ana = %g)\n", uy, sol.Uy(sol.H))
	chk.AnaNum(tst, "uy(surface)/ana", 1e-2, uy/sol.Uy(sol.H), 1, chk.Verbose)
}

func Test_grav02(tst *testing.T) {

	//tests.Verbose()
	chk.PrintTitle("grav02. elastic and plastic gravity. 3D column with two layers")

	// fem
	main, err := fem.NewMain("data/grav3d.json", chk.Verbose)
	if err != nil {
		tst.Errorf("NewMain failed:\n%v", err)
		return
	}
	defer main.Ctrl.Close()
	chk.Ints(tst, "shaking", main.Ctrl.Shaking, []int{0, 2})

	// run stages
	err = main.Ctrl.ElasticGravity()
	if err != nil {
		tst.Errorf("ElasticGravity failed:\n%v", err)
		return
	}
	tests.CheckSelfWeight(tst, main.Dom, 1e-2, 1e-2, chk.Verbose)

	// elastic layers do not change with the nonlinear stage
	err = main.Ctrl.PlasticGravity()
	if err != nil {
		tst.Errorf("PlasticGravity failed:\n%v", err)
		return
	}
	tests.CheckSelfWeight(tst, main.Dom, 1e-2, 1e-2, chk.Verbose)

	// lateral displacements vanish
	for _, nod := range main.Dom.Nodes {
		chk.Float64(tst, io.Sf("ux(%d)", nod.Tag), 1e-10, nod.U[0], 0)
		chk.Float64(tst, io.Sf("uz(%d)", nod.Tag), 1e-10, nod.U[2], 0)
	}
}

func Test_pwp01(tst *testing.T) {

	//tests.Verbose()
	chk.PrintTitle("pwp01. hydrostatic pore-water pressure after elastic gravity")

	// fem
	main, err := fem.NewMain("data/pwp2d.json", chk.Verbose)
	if err != nil {
		tst.Errorf("NewMain failed:\n%v", err)
		return
	}
	defer main.Ctrl.Close()

	// run stage
	err = main.Ctrl.ElasticGravity()
	if err != nil {
		tst.Errorf("ElasticGravity failed:\n%v", err)
		return
	}

	// analytical solution
	dat := main.Sim.Data
	ywt := main.Plan.Height - dat.Gwt
	var col ana.ColumnFluidPressure
	col.Init(dat.RhoF, 0, 0, dat.Grav, ywt)
	pmax, _ := col.Calc(0)

	// check
	for _, nod := range main.Dom.Nodes {
		idx := nod.DofIndex("pl")
		if idx < 0 {
			continue
		}
		p, _ := col.Calc(nod.X[1])
		chk.AnaNum(tst, io.Sf("pl(%d)/pmax", nod.Tag), 2e-2, nod.U[idx]/pmax, p/pmax, chk.Verbose)
	}
}

func Test_dyn01(tst *testing.T) {

	//tests.Verbose()
	chk.PrintTitle("dyn01. all stages. 2D column shaken by a pulse")

	// fem
	main, err := fem.NewMain("data/dyn2d.json", chk.Verbose)
	if err != nil {
		tst.Errorf("NewMain failed:\n%v", err)
		return
	}

	// run
	err = main.Run()
	if err != nil {
		tst.Errorf("Run failed:\n%v", err)
		return
	}
	chk.String(tst, main.Ctrl.Stage.String(), fem.Dynamic.String())
	chk.Int(tst, "number of steps", main.Ctrl.NumSteps, 60)

	// records
	surf := main.Ctrl.Rec.Get("surface.acc")
	base := main.Ctrl.Rec.Get("base.acc")
	if surf == nil || base == nil {
		tst.Errorf("acceleration records are missing\n")
		return
	}
	chk.Int(tst, "number of outputs", len(surf.T), 60)
	_, asurf := surf.Peak("ux")
	_, abase := base.Peak("ux")
	io.Pforan("peak accelerations: surface = %g, base = %g\n", asurf, abase)
	if math.Abs(asurf) < 1e-3 || math.IsNaN(asurf) {
		tst.Errorf("surface must respond to the pulse. peak = %g\n", asurf)
	}
	if math.Abs(asurf) > 10*9.81*0.1 {
		tst.Errorf("surface response is unbounded. peak = %g\n", asurf)
	}

	// files
	dirout := main.Sim.DirOut
	for _, fn := range []string{"surface.acc", "base.acc", "surface.disp", "stress.out", "strain.out", "model.tcl", "dyn2d.xlsx", "dyn2d.pdf"} {
		if _, err := os.Stat(filepath.Join(dirout, fn)); err != nil {
			tst.Errorf("file %q is missing:\n%v", fn, err)
		}
	}
	b, err := os.ReadFile(filepath.Join(dirout, "model.tcl"))
	if err != nil {
		tst.Errorf("%v\n", err)
		return
	}
	if !strings.Contains(string(b), "rayleigh") || !strings.Contains(string(b), "element zeroLength") {
		tst.Errorf("script is incomplete:\n%s", b)
	}
}
