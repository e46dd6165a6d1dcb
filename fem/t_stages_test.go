// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/pmackenz/SiteResponseTool/inp"
)

func checkParams(tst *testing.T, d *Domain, name string, n int, val float64) {
	vals, err := d.ParamValues(name)
	if err != nil {
		tst.Errorf("ParamValues failed:\n%v", err)
		return
	}
	chk.IntAssert(len(vals), n)
	for _, v := range vals {
		chk.Float64(tst, name, 1e-17, v, val)
	}
}

func Test_stages01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("stages01. transitions and motion")

	// no motion
	sim := newSim(tst, "2D", inp.TotalStress)
	sim.MotionX = nil
	d := newColumn(tst, sim)
	_, err := NewController(d, "", false)
	if !isConfig(err) {
		tst.Errorf("missing motion should be a configuration error:\n%v", err)
		return
	}
	sim.MotionX = &inp.Motion{AccFile: "none.acc"}
	_, err = NewController(d, "", false)
	if !isConfig(err) {
		tst.Errorf("uninitialised motion should be a configuration error:\n%v", err)
		return
	}

	// out of order
	sim = newSim(tst, "2D", inp.TotalStress)
	ctrl, err := NewController(newColumn(tst, sim), "", chk.Verbose)
	if err != nil {
		tst.Errorf("NewController failed:\n%v", err)
		return
	}
	if ctrl.PlasticGravity() == nil {
		tst.Errorf("PlasticGravity before ElasticGravity should have failed")
		return
	}
	if ctrl.Dynamic() == nil {
		tst.Errorf("Dynamic before ElasticGravity should have failed")
		return
	}
	if ctrl.Stage != Assembled {
		tst.Errorf("stage should not change after failed transitions")
		return
	}
	err = ctrl.ElasticGravity()
	if err != nil {
		tst.Errorf("ElasticGravity failed:\n%v", err)
		return
	}
	if ctrl.ElasticGravity() == nil {
		tst.Errorf("ElasticGravity cannot run twice")
	}
}

func Test_stages02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("stages02. 2D elastic column with zero motion")

	sim := newSim(tst, "2D", inp.TotalStress)
	sim.Data.Script = true
	sim.Solver.DynTime = 0.01
	d := newColumn(tst, sim)
	ctrl, err := NewController(d, "", chk.Verbose)
	if err != nil {
		tst.Errorf("NewController failed:\n%v", err)
		return
	}
	nele := len(d.SoilElems)

	// elastic gravity
	err = ctrl.ElasticGravity()
	if err != nil {
		tst.Errorf("ElasticGravity failed:\n%v", err)
		return
	}
	checkParams(tst, d, "materialState", nele, 0)
	chk.String(tst, d.Cons.Handler, Penalty)
	chk.Float64(tst, "time", 1e-15, d.Time, 10)
	grav := ctrl.GravRec.Get("surface_grav.disp")
	chk.IntAssert(len(grav.T), 10)
	uy1 := grav.Last()[1]
	if uy1 >= 0 {
		tst.Errorf("surface should settle under self-weight. uy = %g", uy1)
		return
	}

	// plastic gravity: same state
	err = ctrl.PlasticGravity()
	if err != nil {
		tst.Errorf("PlasticGravity failed:\n%v", err)
		return
	}
	checkParams(tst, d, "materialState", nele, 1)
	checkParams(tst, d, "FirstCall", 0, 0)
	chk.IntAssert(len(grav.T), 20)
	chk.Float64(tst, "uy", 1e-8, grav.Last()[1], uy1)

	// permeability: nothing in total stress
	err = ctrl.PermeabilityUpdate()
	if err != nil {
		tst.Errorf("PermeabilityUpdate failed:\n%v", err)
		return
	}
	checkParams(tst, d, "hPerm", 0, 0)

	// dynamic
	nfix, ntie := d.Cons.Count()
	err = ctrl.Dynamic()
	if err != nil {
		tst.Errorf("Dynamic failed:\n%v", err)
		return
	}
	io.Pforan("used = %v\n", ctrl.Driver.Used)

	// removed fixities
	chk.IntAssert(len(ctrl.Released), 2)
	for i, tag := range d.GravityFix {
		if d.Cons.GetFixity(tag) != nil {
			tst.Errorf("fixity %d should have been removed", tag)
			return
		}
		chk.IntAssert(ctrl.Released[i].Tag, tag)
	}
	nfix2, ntie2 := d.Cons.Count()
	chk.IntAssert(nfix2, nfix-2+3)
	chk.IntAssert(ntie2, ntie+2)
	checkTies(tst, d)

	// compliant base
	chk.Ints(tst, "rad nodes", d.RadNodes, []int{17, 18})
	c := 2.4 * 760 * sim.Data.ColWidth * sim.Data.ColThick
	chk.Float64(tst, "c", 1e-12, ctrl.DashCoef, c)
	chk.IntAssert(len(d.Patterns), 1)
	chk.Float64(tst, "factor", 1e-12, d.Patterns[0].Factor, c)
	Ω := 2 * math.Pi * 5.01
	chk.Float64(tst, "a0", 1e-15, d.A0, 0.025*Ω)
	chk.Float64(tst, "a1", 1e-15, d.A1, 0.025/Ω)
	chk.String(tst, d.Cons.Handler, Transformation)

	// steps
	chk.IntAssert(ctrl.NumSteps, 100)
	chk.Float64(tst, "dt", 1e-17, ctrl.Driver.Dt, 1e-4)
	chk.Float64(tst, "time", 1e-12, d.Time, 0.01)

	// static equilibrium at the surface
	vel := ctrl.Rec.Get("surface.vel").Last()
	acc := ctrl.Rec.Get("surface.acc").Last()
	io.Pforan("v = %v\na = %v\n", vel, acc)
	for i := range vel {
		if math.Abs(vel[i]) > 1e-4 {
			tst.Errorf("surface velocity should be near zero: %v", vel)
			return
		}
		if math.Abs(acc[i]) > 1e-2 {
			tst.Errorf("surface acceleration should be near zero: %v", acc)
			return
		}
	}

	// stress record: only soil elements
	stress := ctrl.Rec.Get("stress.out")
	chk.IntAssert(len(stress.Keys), nele*4)
	sy := stress.Get("e1_sy")
	if sy[len(sy)-1] >= 0 {
		tst.Errorf("vertical stress at the base should be compressive")
	}

	// script
	if !strings.Contains(ctrl.Script, "element zeroLength 8 17 18") {
		tst.Errorf("script should contain the dashpot element:\n%s", ctrl.Script)
	}
}

func Test_stages03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("stages03. damping")

	T := 0.4
	a0, a1, err := Rayleigh(&inp.DampData{Type: "natural", Xi: 0.02}, T)
	if err != nil {
		tst.Errorf("Rayleigh failed:\n%v", err)
		return
	}
	ω1, ω2 := 2*math.Pi/T, 10*math.Pi/T
	chk.Float64(tst, "a0", 1e-12, a0, 2*0.02*ω1*ω2/(ω1+ω2))
	chk.Float64(tst, "a1", 1e-15, a1, 2*0.02/(ω1+ω2))

	a0, a1, _ = Rayleigh(&inp.DampData{Type: "none"}, T)
	chk.Float64(tst, "a0", 1e-17, a0, 0)
	chk.Float64(tst, "a1", 1e-17, a1, 0)

	_, _, err = Rayleigh(&inp.DampData{Type: "modal"}, T)
	if !isConfig(err) {
		tst.Errorf("unknown damping should be a configuration error:\n%v", err)
	}
}

func Test_stages04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("stages04. script without analyses")

	sim := newSim(tst, "2D", inp.TotalStress)
	dom := newColumn(tst, sim)
	ctrl, err := NewController(dom, "", chk.Verbose)
	if err != nil {
		tst.Errorf("NewController failed:\n%v", err)
		return
	}
	script, err := ctrl.DryScript()
	if err != nil {
		tst.Errorf("DryScript failed:\n%v", err)
		return
	}
	io.Pforan("%s\n", script)
	for _, line := range []string{"remove sp", "element zeroLength 8 17 18", "equalDOF 1 18 1"} {
		if !strings.Contains(script, line) {
			tst.Errorf("script should contain %q\n", line)
		}
	}
	chk.Float64(tst, "time", 1e-17, dom.Time, 0)

	// no stages afterwards
	if _, err = ctrl.DryScript(); err == nil {
		tst.Errorf("second script should fail\n")
	}
	if err = ctrl.ElasticGravity(); err == nil {
		tst.Errorf("gravity after script should fail\n")
	}
}

func Test_stages05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("stages05. gravity without convergence")

	sim := newSim(tst, "2D", inp.TotalStress)
	sim.Solver.NmaxIt = 1
	sim.Solver.Tol = 1e-30
	dom := newColumn(tst, sim)
	ctrl, err := NewController(dom, "", chk.Verbose)
	if err != nil {
		tst.Errorf("NewController failed:\n%v", err)
		return
	}

	// gravity stages report and proceed
	err = ctrl.ElasticGravity()
	if err != nil {
		tst.Errorf("ElasticGravity should proceed:\n%v", err)
		return
	}
	chk.String(tst, ctrl.Stage.String(), ElasticGravity.String())
	err = ctrl.PlasticGravity()
	if err != nil {
		tst.Errorf("PlasticGravity should proceed:\n%v", err)
		return
	}
	chk.String(tst, ctrl.Stage.String(), PlasticGravity.String())
	chk.Float64(tst, "time", 1e-17, dom.Time, 0)
	err = ctrl.PermeabilityUpdate()
	if err != nil {
		tst.Errorf("PermeabilityUpdate failed:\n%v", err)
		return
	}

	// dynamic stage gives up after bisection
	err = ctrl.Dynamic()
	io.Pforan("%v\n", err)
	if !errors.Is(err, ErrExhausted) {
		tst.Errorf("Dynamic should report exhausted bisection:\n%v", err)
		return
	}
	if isConfig(err) {
		tst.Errorf("exhausted bisection must not be a configuration error")
	}
	chk.IntAssert(len(ctrl.Driver.Used), 1+sim.Solver.MaxDepth)
}

func Test_stages06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("stages06. pore-water pressure record")

	// water table 2 m below the surface => horizons at y = 8, 9 and 10 are dry
	sim := newSim(tst, "2D", inp.EffectiveStress)
	dom := newColumn(tst, sim)
	chk.Ints(tst, "dry nodes", dom.DryNodes, []int{11, 12, 13, 14, 15, 16})
	ctrl, err := NewController(dom, "", chk.Verbose)
	if err != nil {
		tst.Errorf("NewController failed:\n%v", err)
		return
	}

	// default node is out of range then dry
	chk.Int(tst, "default", ctrl.pwpNode(), 10)

	// dry node
	sim.Data.PwpNode = 13
	chk.Int(tst, "dry", ctrl.pwpNode(), 10)

	// wet node
	sim.Data.PwpNode = 3
	chk.Int(tst, "wet", ctrl.pwpNode(), 3)

	// recorder
	sim.Data.PwpNode = 15
	err = ctrl.bindRecorders()
	if err != nil {
		tst.Errorf("bindRecorders failed:\n%v", err)
		return
	}
	if ctrl.Rec.Get("pwpLiq.disp") == nil {
		tst.Errorf("pore-water pressure record is missing")
	}
}
