// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"errors"
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
	"github.com/pmackenz/SiteResponseTool/ele"
	"github.com/pmackenz/SiteResponseTool/inp"
	"github.com/pmackenz/SiteResponseTool/mdl/solid"
)

// Stage indicates the last stage entered by a Controller
type Stage int

// stages
const (
	Assembled          Stage = iota // column built; no stage run yet
	ElasticGravity                  // self-weight with elastic soil
	PlasticGravity                  // self-weight with nonlinear soil
	PermeabilityUpdate              // permeabilities for shaking
	Dynamic                         // base excitation
)

// String returns the name of stage
func (o Stage) String() string {
	switch o {
	case Assembled:
		return "assembled"
	case ElasticGravity:
		return "elastic gravity"
	case PlasticGravity:
		return "plastic gravity"
	case PermeabilityUpdate:
		return "permeability update"
	case Dynamic:
		return "dynamic"
	}
	return io.Sf("stage(%d)", int(o))
}

// Controller runs the stages of a site-response analysis on one domain. Stages must be called
// in order and each stage is run once
type Controller struct {

	// input
	Dom     *Domain // domain
	DirOut  string  // output directory; empty => records are kept in memory only
	ShowMsg bool    // show messages

	// state
	Stage   Stage      // last stage entered
	GravRec *Recorders // surface displacement during gravity stages
	Rec     *Recorders // records of the dynamic stage
	Driver  *Driver    // driver of the dynamic stage
	Script  string     // model script; written before the dynamic analysis

	// dynamic stage data
	DashCoef float64 // dashpot coefficient c = ρ・Vs・A of bedrock
	Shaking  []int   // shaking dofs; [0] in 2D and [0, 2] in 3D
	MotionDt float64 // output interval and time step of the longest motion
	NumSteps int     // number of steps of size Solver.Dt

	// constraints before the dynamic stage
	Released []*Fixity // fixities removed at the beginning of the dynamic stage
	lastFix  int       // last fixity tag of the gravity stages
	lastTie  int       // last equal-dof tag of the gravity stages
}

// NewController returns a new controller. At least one horizontal motion must be initialised
func NewController(dom *Domain, dirout string, showMsg bool) (o *Controller, err error) {
	sim := dom.Sim
	if !sim.GetMotion(0).IsInitialized() && !sim.GetMotion(1).IsInitialized() {
		return nil, configErr("outcrop motion is not initialised")
	}
	o = &Controller{Dom: dom, DirOut: dirout, ShowMsg: showMsg}
	o.Shaking = []int{0}
	if dom.Plan.Ndim == 3 {
		o.Shaking = []int{0, 2}
	}
	return
}

// RunAll runs all stages
func (o *Controller) RunAll() (err error) {
	stages := []func() error{o.ElasticGravity, o.PlasticGravity, o.PermeabilityUpdate, o.Dynamic}
	for _, stage := range stages {
		err = stage()
		if err != nil {
			return
		}
	}
	return
}

// ElasticGravity applies the self-weight with all soil models in their elastic state
func (o *Controller) ElasticGravity() (err error) {
	err = o.enter(ElasticGravity)
	if err != nil {
		return
	}
	d := o.Dom
	err = d.SetParams("materialState", 0, d.SoilElems)
	if err != nil {
		return
	}
	err = d.SetHandler(Penalty, d.Sim.Solver.Penalty)
	if err != nil {
		return
	}
	o.GravRec = NewRecorders(d, o.DirOut)
	err = o.GravRec.AddNode("surface_grav", d.Plan.SurfaceNode(), utl.IntRange(d.Plan.Ndim), "disp")
	if err != nil {
		return
	}
	return o.gravity()
}

// PlasticGravity switches soil models to their nonlinear state and applies the self-weight again,
// starting from the state left by ElasticGravity
func (o *Controller) PlasticGravity() (err error) {
	err = o.enter(PlasticGravity)
	if err != nil {
		return
	}
	d := o.Dom
	err = d.SetParams("materialState", 1, d.SoilElems)
	if err != nil {
		return
	}
	sands := o.elemsWith("FirstCall")
	err = d.SetParams("FirstCall", 0, sands)
	if err != nil {
		return
	}
	err = d.SetParams("poissonRatio", elasticNu, sands)
	if err != nil {
		return
	}
	return o.gravity()
}

// PermeabilityUpdate sets the permeabilities of the dynamic stage. There is no solution step
func (o *Controller) PermeabilityUpdate() (err error) {
	err = o.enter(PermeabilityUpdate)
	if err != nil {
		return
	}
	d := o.Dom
	porous := o.elemsWith("hPerm")
	if len(porous) == 0 {
		if o.ShowMsg {
			io.Pf("> No element with permeability; nothing to update\n")
		}
		return
	}
	for _, name := range []string{"hPerm", "vPerm"} {
		err = d.SetParams(name, d.Sim.Data.PermDyn, porous)
		if err != nil {
			return
		}
	}
	if o.ShowMsg {
		io.Pf("> Permeability of %d elements set to %g\n", len(porous), d.Sim.Data.PermDyn)
	}
	return
}

// Dynamic builds the compliant base and runs the dynamic analysis with the Driver
func (o *Controller) Dynamic() (err error) {
	err = o.enter(Dynamic)
	if err != nil {
		return
	}
	err = o.setupDynamic()
	if err != nil {
		return
	}

	// model script
	if o.Dom.Sim.Data.Script {
		o.Script = Script(o)
		if o.DirOut != "" {
			io.WriteStringToFileD(o.DirOut, "model.tcl", o.Script)
		}
	}

	// analysis
	d := o.Dom
	ana, err := NewAnalysis(d, d.Sim.Solver.Type, DynamicPrms(&d.Sim.Solver))
	if err != nil {
		return
	}
	tout := o.MotionDt
	ana.OnStep = func(t float64) (err error) {
		if t < tout-1e-3*d.Sim.Solver.Dt {
			return
		}
		for tout <= t+1e-3*d.Sim.Solver.Dt {
			tout += o.MotionDt
		}
		return o.Rec.Record(t)
	}
	o.Driver = &Driver{
		Stepper:  ana,
		Dt:       d.Sim.Solver.Dt,
		DtMin:    d.Sim.Solver.DtMin,
		NumSteps: o.NumSteps,
		MaxDepth: d.Sim.Solver.MaxDepth,
		ShowMsg:  o.ShowMsg,
	}
	if o.ShowMsg {
		io.Pf("> Running dynamic analysis: %d steps with dt = %g\n", o.NumSteps, o.Driver.Dt)
	}
	res, err := o.Driver.Run()
	if err != nil {
		return
	}
	if o.ShowMsg {
		io.Pf("> Dynamic analysis %s at t = %g\n", res, ana.Time())
	}
	return
}

// DryScript builds the compliant base of the dynamic stage without running any analysis and
// returns the model script. Stages cannot be run afterwards
func (o *Controller) DryScript() (script string, err error) {
	if o.Stage != Assembled {
		return "", chk.Err("cannot write script after stage %q", o.Stage)
	}
	o.Stage = Dynamic
	err = o.setupDynamic()
	if err != nil {
		return
	}
	o.Script = Script(o)
	return o.Script, nil
}

// Close closes all recorders
func (o *Controller) Close() (err error) {
	for _, r := range []*Recorders{o.GravRec, o.Rec} {
		if r == nil {
			continue
		}
		if e := r.Close(); e != nil && err == nil {
			err = e
		}
	}
	return
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////////

// enter checks the transition to stage next
func (o *Controller) enter(next Stage) (err error) {
	if next != o.Stage+1 {
		return chk.Err("cannot enter %s stage after %s stage", next, o.Stage)
	}
	o.Stage = next
	if o.ShowMsg {
		io.Pforan("> Setting stage: %s\n", next)
	}
	return
}

// gravity runs the pseudo-time steps of one gravity stage. Non-convergence is reported only
func (o *Controller) gravity() (err error) {
	d := o.Dom
	ana, err := NewAnalysis(d, d.Sim.Solver.Type, GravityPrms(&d.Sim.Solver))
	if err != nil {
		return
	}
	ana.OnStep = o.GravRec.Record
	err = ana.Analyze(d.Sim.Solver.GravSteps, d.Sim.Solver.GravDt)
	if errors.Is(err, errNoConvergence) {
		io.PfRed("> %s stage did not converge after %d steps; proceeding\n", o.Stage, ana.Nsteps)
		return nil
	}
	if err == nil && o.ShowMsg {
		io.Pf("> %s stage converged: %d steps\n", o.Stage, ana.Nsteps)
	}
	return
}

// setupDynamic builds the compliant base, damping and loads of the dynamic stage
func (o *Controller) setupDynamic() (err error) {
	d := o.Dom
	sim := d.Sim
	ndim, nph := d.Plan.Ndim, d.Plan.NodesPerHorizon

	// release horizontal fixities of the base
	o.lastFix, o.lastTie = d.Tags.Last(TagFix), d.Tags.Last(TagTie)
	for _, tag := range d.GravityFix {
		if f := d.Cons.GetFixity(tag); f != nil {
			o.Released = append(o.Released, f)
		}
		err = d.Cons.RemoveFixity(tag)
		if err != nil {
			return
		}
	}

	// radiation-boundary nodes at the base
	base := d.Tag2node[1]
	keys := ele.Ukeys(ndim)
	anchor := d.AddNode(base.X, keys...)
	free := d.AddNode(base.X, keys...)
	d.RadNodes = []int{anchor.Tag, free.Tag}
	for dof := 0; dof < ndim; dof++ {
		err = d.Cons.Fix(d.Tags.Next(TagFix), anchor.Tag, dof)
		if err != nil {
			return
		}
	}
	err = d.Cons.Fix(d.Tags.Next(TagFix), free.Tag, 1)
	if err != nil {
		return
	}

	// ties: radiation node and base horizon follow node 1 along the shaking directions
	err = d.Cons.Tie(d.Tags.Next(TagTie), 1, free.Tag, o.Shaking...)
	if err != nil {
		return
	}
	for n := 2; n <= nph; n++ {
		err = d.Cons.Tie(d.Tags.Next(TagTie), 1, n, o.Shaking...)
		if err != nil {
			return
		}
	}

	// dashpot
	rock := sim.Layering.Bedrock()
	area := sim.Data.ColWidth * sim.Data.ColThick
	if ndim == 3 {
		area = sim.Data.ColWidth * sim.Data.ColWidth
	}
	o.DashCoef = rock.Rho * rock.Vs * area
	mat := d.AddMaterial("viscous", solid.Prms{
		&solid.Prm{N: "c", V: o.DashCoef},
		&solid.Prm{N: "alpha", V: 1},
	}, "")
	cell := &ele.Cell{
		Id:    d.DashpotTag,
		Type:  "dashpot",
		Verts: []int{anchor.Tag, free.Tag},
		Dirs:  o.Shaking,
	}
	_, err = d.AddElement(cell, mat.Tag)
	if err != nil {
		return
	}

	// time and damping
	d.SetTime(0)
	d.A0, d.A1, err = Rayleigh(&sim.Damp, sim.Layering.NaturalPeriod())
	if err != nil {
		return
	}

	// loads and number of steps
	nsteps := 0
	for idx, dof := range o.Shaking {
		m := sim.GetMotion(idx)
		if !m.IsInitialized() {
			continue
		}
		_, err = d.AddLoadPattern(o.DashCoef, m.VelAt, &NodalLoad{Node: free.Tag, Dof: dof, Dir: 1})
		if err != nil {
			return
		}
		if m.NumSteps() > nsteps {
			nsteps = m.NumSteps()
			o.MotionDt = m.Dt
		}
	}
	if sim.Solver.DynTime > 0 {
		o.NumSteps = int(sim.Solver.DynTime/sim.Solver.Dt + 0.5)
	} else {
		o.NumSteps = int(float64(nsteps)*o.MotionDt/sim.Solver.Dt + 0.5)
	}

	// equations
	err = d.SetHandler(sim.Solver.Handler, sim.Solver.Penalty)
	if err != nil {
		return
	}

	// recorders
	return o.bindRecorders()
}

// bindRecorders creates the records of the dynamic stage
func (o *Controller) bindRecorders() (err error) {
	d := o.Dom
	o.Rec = NewRecorders(d, o.DirOut)
	surf := d.Plan.SurfaceNode()
	for _, kind := range []string{"disp", "vel", "accel"} {
		err = o.Rec.AddNode("surface", surf, utl.IntRange(d.Plan.Ndim), kind)
		if err != nil {
			return
		}
		err = o.Rec.AddNode("base", 1, []int{0}, kind)
		if err != nil {
			return
		}
	}
	if d.Sim.Effective {
		err = o.Rec.AddNode("pwpLiq", o.pwpNode(), []int{d.Plan.Ndim}, "disp")
		if err != nil {
			return
		}
	}
	for _, which := range []string{"stress", "strain"} {
		err = o.Rec.AddElems(which, d.SoilElems)
		if err != nil {
			return
		}
	}
	return
}

// pwpNode returns the node whose pore-water pressure is recorded. Nodes out of range are clamped
// to the surface and dry nodes are replaced by the highest node below the water table
func (o *Controller) pwpNode() (n int) {
	d := o.Dom
	n = d.Sim.Data.PwpNode
	if n < 1 || n > d.Plan.NumNodes {
		n = d.Plan.NumNodes
	}
	if len(d.DryNodes) == 0 || n < d.DryNodes[0] {
		return
	}
	wet := d.DryNodes[0] - 1
	if wet < 1 {
		return
	}
	io.PfYel("> node %d is above the water table; pore-water pressures are recorded at node %d\n", n, wet)
	return wet
}

// elemsWith returns the soil elements whose models accept the parameter name
func (o *Controller) elemsWith(name string) (etags []int) {
	for _, etag := range o.Dom.SoilElems {
		if e, ok := o.Dom.Tag2elem[etag].(ele.WithParameters); ok {
			if _, err := e.GetParameter(name); err == nil {
				etags = append(etags, etag)
			}
		}
	}
	return
}

// Rayleigh returns the coefficients of the Rayleigh damping Cr = a0・M + a1・K
//  "fmin":    a0 = ξ・Ω, a1 = ξ/Ω with Ω = 2π・fmin
//  "natural": ξ at f₁ = 1/T and 5f₁, where T is the natural period of the layering
//  "none":    a0 = a1 = 0
func Rayleigh(damp *inp.DampData, T float64) (a0, a1 float64, err error) {
	switch damp.Type {
	case "fmin", "":
		Ω := 2.0 * math.Pi * damp.Fmin
		return damp.Xi * Ω, damp.Xi / Ω, nil
	case "natural":
		if !(T > 0) {
			return 0, 0, configErr("natural period must be positive for natural damping. T = %g is invalid", T)
		}
		f1 := 1.0 / T
		return damp.Xi * 10.0 * math.Pi * f1 / 3.0, damp.Xi / (6.0 * math.Pi * f1), nil
	case "none":
		return 0, 0, nil
	}
	return 0, 0, configErr("damping type %q is invalid", damp.Type)
}
