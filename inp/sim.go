// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a (.json) simulation file
package inp

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// run modes
const (
	TotalStress     = "total"     // single-phase soil; displacements only
	EffectiveStress = "effective" // u-p formulation with pore-pressure dofs
)

// Data holds global data for simulations
type Data struct {

	// global information
	Desc   string `json:"desc"`   // description of simulation
	DirOut string `json:"dirout"` // directory for output; e.g. /tmp/siteresp
	Mode   string `json:"mode"`   // "total" or "effective"
	Dim    string `json:"dim"`    // "2D" or "3D"

	// column geometry
	ColWidth float64 `json:"colwidth"` // horizontal size of elements [m]
	ColThick float64 `json:"colthick"` // out-of-plane thickness of 2D elements [m]
	Gwt      float64 `json:"gwt"`      // depth of ground water table [m]
	Grav     float64 `json:"grav"`     // gravity acceleration [m/s²]

	// pore fluid and permeability
	Kf       float64 `json:"kf"`       // bulk modulus of pore fluid [kPa]
	RhoF     float64 `json:"rhof"`     // density of pore fluid [Mg/m³]
	PermGrav float64 `json:"permgrav"` // permeability used during gravity stages
	PermDyn  float64 `json:"permdyn"`  // permeability used during the dynamic stage

	// output
	PwpNode int    `json:"pwpnode"` // node to record pore-water pressures
	Script  bool   `json:"script"`  // write model script before dynamic stage
	Xlsx    string `json:"xlsx"`    // [optional] xlsx file to save recorded results
	Pdf     string `json:"pdf"`     // [optional] pdf file with summary of run
}

// MeshData holds data for the discretisation of layers
type MeshData struct {
	MaxFreq  float64 `json:"maxfreq"`  // maximum frequency of interest [Hz]
	Npw      int     `json:"npw"`      // minimum number of nodes per wavelength
	Explicit bool    `json:"explicit"` // use explicit number of elements from layers data
}

// SolverData holds FEM solver data
type SolverData struct {

	// nonlinear solver
	Type     string  `json:"type"`     // solver type; e.g. "newmark"
	NmaxIt   int     `json:"nmaxit"`   // number of max iterations
	Tol      float64 `json:"tol"`      // tolerance on the norm of displacement increments
	Handler  string  `json:"handler"`  // constraints handler: "transformation" or "penalty"
	Penalty  float64 `json:"penalty"`  // penalty number
	CteTg    bool    `json:"ctetg"`    // use constant tangent (modified Newton) during iterations
	ShowR    bool    `json:"showr"`    // show residual
	DvgCtrl  bool    `json:"dvgctrl"`  // stop iterations when the norm of increments keeps growing
	NdvgMax  int     `json:"ndvgmax"`  // max number of successive iterations with growing increments (with dvgctrl)
	DtMin    float64 `json:"dtmin"`    // smallest time step tried by bisection
	MaxDepth int     `json:"maxdepth"` // max number of recursive bisections

	// gravity stages
	GravSteps int     `json:"gravsteps"` // number of pseudo-time steps per gravity stage
	GravDt    float64 `json:"gravdt"`    // pseudo-time step of gravity stages
	GravTh1   float64 `json:"gravth1"`   // Newmark γ for gravity stages
	GravTh2   float64 `json:"gravth2"`   // Newmark β for gravity stages

	// dynamic stage
	Dt      float64 `json:"dt"`      // time step of dynamic analysis
	Theta1  float64 `json:"theta1"`  // Newmark γ for dynamic stage
	Theta2  float64 `json:"theta2"`  // Newmark β for dynamic stage
	DynTime float64 `json:"dyntime"` // [optional] duration of dynamic stage; 0 => duration of motion
}

// DampData holds data for Rayleigh damping
type DampData struct {
	Type string  `json:"type"` // "fmin" (ξ at fmin), "natural" (ξ at f₁ and 5f₁) or "none"
	Fmin float64 `json:"fmin"` // target minimum frequency [Hz]
	Xi   float64 `json:"xi"`   // damping ratio
}

// Simulation holds all simulation data
type Simulation struct {

	// input
	Data    Data       `json:"data"`    // stores global simulation data
	Mesh    MeshData   `json:"mesh"`    // discretisation data
	Solver  SolverData `json:"solver"`  // solver data
	Damp    DampData   `json:"damp"`    // Rayleigh damping
	Layers  []*Layer   `json:"layers"`  // layers from surface to bedrock
	LayXlsx string     `json:"layxlsx"` // [optional] xlsx file with layers; replaces Layers
	MotionX *Motion    `json:"motionx"` // outcrop motion along x
	MotionZ *Motion    `json:"motionz"` // outcrop motion along z (3D only)

	// derived
	Key       string   // simulation key; e.g. mysim01.json => mysim01
	DirIn     string   // directory of input file
	DirOut    string   // directory to save results
	Ndim      int      // space dimension
	Effective bool     // effective-stress analysis
	Layering  Layering // layering model
}

// SetDefault sets default values
func (o *Data) SetDefault() {
	o.Mode = TotalStress
	o.Dim = "2D"
	o.ColWidth = 0.25
	o.ColThick = 1.0
	o.Gwt = 2.0
	o.Grav = 9.81
	o.Kf = 2.2e6
	o.RhoF = 1.0
	o.PermGrav = 1.0
	o.PermDyn = 1.0e-7 / 9.81
	o.PwpNode = 17
	o.Script = true
}

// SetDefault sets default values
func (o *MeshData) SetDefault() {
	o.MaxFreq = 100.0
	o.Npw = 10
}

// SetDefault sets default values
func (o *SolverData) SetDefault() {

	// nonlinear solver
	o.Type = "newmark"
	o.NmaxIt = 35
	o.Tol = 1e-4
	o.Handler = "transformation"
	o.Penalty = 1e16
	o.NdvgMax = 1
	o.DtMin = 1e-12
	o.MaxDepth = 10

	// gravity
	o.GravSteps = 10
	o.GravDt = 1.0
	o.GravTh1 = 5.0 / 6.0
	o.GravTh2 = 4.0 / 9.0

	// dynamics
	o.Dt = 1e-4
	o.Theta1 = 0.5
	o.Theta2 = 0.25
}

// PostProcess checks the just read solver data
func (o *SolverData) PostProcess() (err error) {
	if o.GravSteps < 1 || o.GravDt <= 0 || o.Dt <= 0 {
		return chk.Err("gravity steps/time steps must be positive: gravsteps=%d gravdt=%g dt=%g", o.GravSteps, o.GravDt, o.Dt)
	}
	if o.MaxDepth < 0 || o.NdvgMax < 1 {
		return chk.Err("bisection/divergence control is invalid: maxdepth=%d ndvgmax=%d", o.MaxDepth, o.NdvgMax)
	}
	if o.DtMin < 0 || o.DtMin >= o.Dt {
		return chk.Err("minimum time step must be in [0, dt): dtmin=%g dt=%g", o.DtMin, o.Dt)
	}
	return
}

// SetDefault sets default values
func (o *DampData) SetDefault() {
	o.Type = "fmin"
	o.Fmin = 5.01
	o.Xi = 0.025
}

// SetDefault sets default values of all data
func (o *Simulation) SetDefault() {
	o.Data.SetDefault()
	o.Mesh.SetDefault()
	o.Solver.SetDefault()
	o.Damp.SetDefault()
}

// PostProcess checks data and computes derived values
func (o *Simulation) PostProcess() (err error) {

	// mode
	switch o.Data.Mode {
	case TotalStress:
	case EffectiveStress:
		o.Effective = true
		o.Mesh.Explicit = true
	default:
		return chk.Err("mode %q is invalid. options are %q or %q", o.Data.Mode, TotalStress, EffectiveStress)
	}

	// dimension
	switch o.Data.Dim {
	case "2D", "2d":
		o.Ndim = 2
	case "3D", "3d":
		o.Ndim = 3
	default:
		return chk.Err("dimension %q is invalid. options are \"2D\" or \"3D\"", o.Data.Dim)
	}

	// layering
	o.Layering.Layers = o.Layers
	err = o.Layering.Validate()
	if err != nil {
		return
	}

	// solver
	err = o.Solver.PostProcess()
	if err != nil {
		return
	}

	// output directory
	o.DirOut = o.Data.DirOut
	if o.DirOut == "" {
		o.DirOut = filepath.Join(os.TempDir(), "siteresp", o.Key)
	}
	return
}

// GetMotion returns the motion along direction idx (0 => x, 1 => z)
func (o *Simulation) GetMotion(idx int) *Motion {
	if idx == 0 {
		return o.MotionX
	}
	if o.Ndim == 3 {
		return o.MotionZ
	}
	return nil
}

// ReadSim reads all simulation data from a .json file
func ReadSim(simfilepath string, createDirOut bool) (o *Simulation, err error) {

	// new sim
	o = new(Simulation)
	o.SetDefault()

	// read file
	b, err := os.ReadFile(simfilepath)
	if err != nil {
		return nil, chk.Err("cannot read simulation file %q:\n%v", simfilepath, err)
	}

	// decode
	err = json.Unmarshal(b, o)
	if err != nil {
		return nil, chk.Err("cannot unmarshal simulation file %q:\n%v", simfilepath, err)
	}

	// input directory and filename key
	o.DirIn = os.ExpandEnv(filepath.Dir(simfilepath))
	o.Key = io.FnKey(filepath.Base(simfilepath))

	// layers from spreadsheet
	if o.LayXlsx != "" {
		fn := o.LayXlsx
		if !filepath.IsAbs(fn) {
			fn = filepath.Join(o.DirIn, fn)
		}
		o.Layers, err = ReadLayersXlsx(fn, "")
		if err != nil {
			return nil, err
		}
	}

	// environment overrides
	ApplyEnv(o)

	// check and derived values
	err = o.PostProcess()
	if err != nil {
		return nil, chk.Err("invalid simulation file %q:\n%v", simfilepath, err)
	}

	// motions
	for _, m := range []*Motion{o.MotionX, o.MotionZ} {
		if m != nil {
			err = m.Read(o.DirIn)
			if err != nil {
				return nil, err
			}
		}
	}

	// create directory
	if createDirOut {
		err = o.CreateDirOut()
		if err != nil {
			return nil, err
		}
	}
	return
}

// CreateDirOut creates the directory for output results
func (o *Simulation) CreateDirOut() (err error) {
	err = os.MkdirAll(o.DirOut, 0777)
	if err != nil {
		return chk.Err("cannot create directory for output results (%s): %v", o.DirOut, err)
	}
	return
}
