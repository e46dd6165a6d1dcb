// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fem implements the finite element soil column and the stages of site-response analyses
package fem

import (
	"path/filepath"
	"time"

	"github.com/cpmech/gosl/io"
	"github.com/pmackenz/SiteResponseTool/inp"
	"github.com/pmackenz/SiteResponseTool/mesh"
	"github.com/pmackenz/SiteResponseTool/out"
)

// Main holds all data for a site-response simulation
type Main struct {
	Sim     *inp.Simulation // simulation data
	Plan    *mesh.Plan      // discretisation of layers
	Dom     *Domain         // soil column
	Ctrl    *Controller     // stages
	ShowMsg bool            // show messages
	CPUtime time.Duration   // duration of last Run
}

// NewMain returns a new Main structure
//  Input:
//   simfilepath -- simulation (.json) filename including full path
//   verbose     -- show messages
func NewMain(simfilepath string, verbose bool) (o *Main, err error) {
	sim, err := inp.ReadSim(simfilepath, true)
	if err != nil {
		return nil, configErr("%v", err)
	}
	if verbose {
		io.Pf("> Simulation file read\n")
	}
	return NewMainSim(sim, verbose)
}

// NewMainSim returns a new Main structure from simulation data already read
func NewMainSim(sim *inp.Simulation, verbose bool) (o *Main, err error) {

	// new Main object
	o = &Main{Sim: sim, ShowMsg: verbose}

	// mesh
	o.Plan, err = NewPlan(sim)
	if err != nil {
		return nil, err
	}
	if verbose {
		io.Pf("%v", o.Plan)
	}

	// column
	o.Dom, err = BuildColumn(sim, o.Plan, verbose)
	if err != nil {
		return nil, err
	}

	// stages
	o.Ctrl, err = NewController(o.Dom, sim.DirOut, verbose)
	if err != nil {
		return nil, err
	}
	return
}

// NewPlan discretises the layering of simulation
func NewPlan(sim *inp.Simulation) (plan *mesh.Plan, err error) {
	plan, err = mesh.Discretize(&sim.Layering, mesh.Options{
		Ndim:     sim.Ndim,
		MaxFreq:  sim.Mesh.MaxFreq,
		Npw:      sim.Mesh.Npw,
		Explicit: sim.Mesh.Explicit,
	})
	if err != nil {
		return nil, configErr("%v", err)
	}
	return
}

// Run runs all stages
func (o *Main) Run() (err error) {

	// exit commands
	cputime := time.Now()
	defer func() { err = o.onexit(cputime, err) }()

	// message
	if o.ShowMsg {
		io.Pf("> Solving stages\n")
	}

	// stages
	return o.Ctrl.RunAll()
}

// Report returns the summary of the last run
func (o *Main) Report() (rpt *out.Report) {
	rpt = &out.Report{Title: io.Sf("Site response: %s", o.Sim.Key), Desc: o.Sim.Data.Desc}
	rpt.Add("mode", "%s (%s)", o.Sim.Data.Mode, o.Sim.Data.Dim)
	rpt.Add("number of elements", "%d", o.Plan.NumElems)
	rpt.Add("number of nodes", "%d", len(o.Dom.Nodes))
	rpt.Add("number of equations", "%d", o.Dom.Neq)
	rpt.Add("natural period", "%g s", o.Sim.Layering.NaturalPeriod())
	rpt.Add("last stage", "%s", o.Ctrl.Stage)
	rpt.Add("final time", "%g s", o.Dom.Time)
	rpt.Add("Rayleigh coefficients", "a0 = %g, a1 = %g", o.Dom.A0, o.Dom.A1)
	if o.Ctrl.Driver != nil {
		rpt.Add("number of attempts", "%d", len(o.Ctrl.Driver.Used))
	}
	rpt.Add("CPU time", "%v", o.CPUtime)
	rpt.Notes = o.Sim.Layering.String() + "\n" + o.Plan.String()
	if o.Ctrl.Rec != nil {
		for _, name := range []string{"surface.acc", "base.acc"} {
			if m := o.Ctrl.Rec.Get(name); m != nil {
				rpt.Records = append(rpt.Records, m)
			}
		}
	}
	return
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////////

// onexit closes recorders, saves spreadsheet and report and prints final message with cpu time
func (o *Main) onexit(cputime time.Time, prevErr error) (err error) {

	// close recorders
	o.CPUtime = time.Now().Sub(cputime)
	err = o.Ctrl.Close()

	// spreadsheet and report
	var mems []*out.Memory
	for _, r := range []*Recorders{o.Ctrl.GravRec, o.Ctrl.Rec} {
		if r != nil {
			mems = append(mems, r.Memories()...)
		}
	}
	if o.Sim.Data.Xlsx != "" && len(mems) > 0 {
		if e := out.SaveXlsx(o.outPath(o.Sim.Data.Xlsx), mems...); e != nil && err == nil {
			err = e
		}
	}
	if o.Sim.Data.Pdf != "" {
		if e := o.Report().WritePdf(o.outPath(o.Sim.Data.Pdf)); e != nil && err == nil {
			err = e
		}
	}

	// show final message
	if o.ShowMsg {
		if prevErr == nil {
			io.PfGreen("> Success\n")
			io.Pf("> CPU time = %v\n", o.CPUtime)
		} else {
			io.PfRed("> Failed\n")
		}
	}

	// skip if previous error is not nil
	if prevErr != nil {
		err = prevErr
	}
	return
}

// outPath returns fn relative to the output directory
func (o *Main) outPath(fn string) string {
	if filepath.IsAbs(fn) {
		return fn
	}
	return filepath.Join(o.Sim.DirOut, fn)
}
