// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package porous implements elements for porous media applications (u-p formulation)
package porous

import (
	"github.com/cpmech/gosl/chk"
	"github.com/pmackenz/SiteResponseTool/ele"
	"github.com/pmackenz/SiteResponseTool/ele/solid"
	"github.com/pmackenz/SiteResponseTool/mdl/fluid"
	mdlsolid "github.com/pmackenz/SiteResponseTool/mdl/solid"
)

// SolidLiquid represents an element for fully saturated porous media based on the u-p formulation
//  Equilibrium:  M・ü + ∫Bᵀσ' dV - Q・p = fu
//  Continuity:   Qᵀ・u̇ + S・ṗ + H・p = fp
//  with
//   Q  = ∫Bᵀ m Np dV
//   S  = ∫Npᵀ (n/Kf) Np dV
//   H  = ∫∇Npᵀ k̃ ∇Np dV
//   fp = ∫∇Npᵀ k̃ ρf b dV
//  Note: k̃ is the permeability divided by the unit weight of the fluid; p is positive in compression
type SolidLiquid struct {

	// auxiliary
	Cell *ele.Cell // cell
	Ndim int       // space dimension

	// underlying element
	U *solid.Solid // u-element

	// parameters
	Fluid fluid.Model // pore fluid
	Kf    float64     // bulk modulus of fluid
	RhoF  float64     // density of fluid at reference pressure
	Evoid float64 // void ratio
	Nf    float64 // porosity
	HPerm float64 // horizontal permeability (x and z)
	VPerm float64 // vertical permeability (y)

	// problem variables
	Np   int   // number of p equations
	Pmap []int // assembly map (location array/element equations)

	// fixed matrices
	Q  [][]float64 // [nu][np] coupling matrix
	S  [][]float64 // [np][np] compressibility matrix
	H  [][]float64 // [np][np] permeability matrix
	Fp []float64   // [np] gravity term of the flow

	// scratchpad
	pe  []float64 // [np] local pressures
	dpe []float64 // [np] local rates of pressure
	ve  []float64 // [nu] local velocities
}

// register element
func init() {
	ele.SetAllocator("solid-liquid", func(cell *ele.Cell) (ele.Element, error) {
		return New(cell)
	})
}

// New allocates a new u-p element
func New(cell *ele.Cell) (o *SolidLiquid, err error) {

	// basic data
	o = new(SolidLiquid)
	o.Cell = cell
	o.Ndim = cell.Ndim
	o.Evoid = 0.8 - 0.463*(0.8-0.5)
	o.HPerm, o.VPerm = 1e-7, 1e-7
	var fprms mdlsolid.Prms
	for _, p := range cell.Extra {
		switch p.N {
		case "Kf":
			fprms = append(fprms, &mdlsolid.Prm{N: "Kf", V: p.V})
		case "rhof":
			fprms = append(fprms, &mdlsolid.Prm{N: "R0", V: p.V})
		case "evoid":
			o.Evoid = p.V
		case "hPerm":
			o.HPerm = p.V
		case "vPerm":
			o.VPerm = p.V
		default:
			return nil, chk.Err("solid-liquid: element parameter %q is invalid", p.N)
		}
	}
	err = o.Fluid.Init(fprms, 0, cell.Grav)
	if err != nil {
		return nil, chk.Err("solid-liquid:\n%v", err)
	}
	o.Kf, o.RhoF = o.Fluid.Kf, o.Fluid.R0
	if o.Evoid <= 0 || o.HPerm < 0 || o.VPerm < 0 {
		return nil, chk.Err("solid-liquid: invalid parameters: Kf=%g, evoid=%g, hPerm=%g, vPerm=%g", o.Kf, o.Evoid, o.HPerm, o.VPerm)
	}
	o.Nf = o.Evoid / (1.0 + o.Evoid)

	// u-element
	o.U, err = solid.New(cell)
	if err != nil {
		return
	}

	// p-variables at all vertices
	o.Np = o.U.Shp.Nverts
	o.Q = alloc(o.U.Nu, o.Np)
	o.S = alloc(o.Np, o.Np)
	o.H = alloc(o.Np, o.Np)
	o.Fp = make([]float64, o.Np)
	o.pe = make([]float64, o.Np)
	o.dpe = make([]float64, o.Np)
	o.ve = make([]float64, o.U.Nu)
	o.Recompute()
	return
}

// implementation ///////////////////////////////////////////////////////////////////////////////////

// Id returns the cell Id
func (o *SolidLiquid) Id() int { return o.Cell.Id }

// Verts returns the node tags
func (o *SolidLiquid) Verts() []int { return o.Cell.Verts }

// Info returns the solution variables
func (o *SolidLiquid) Info() *ele.Info {
	info := o.U.Info()
	for m := range info.Dofs {
		info.Dofs[m] = append(append([]string{}, info.Dofs[m]...), "pl")
	}
	info.Y2F = ele.Y2F(o.Ndim, true)
	info.T1vars = []string{"pl"}
	return info
}

// SetEqs set equations
func (o *SolidLiquid) SetEqs(eqs [][]int) (err error) {
	if len(eqs) != o.Np {
		return chk.Err("solid-liquid element %d needs equations for %d nodes", o.Id(), o.Np)
	}
	ueqs := make([][]int, o.Np)
	o.Pmap = make([]int, o.Np)
	for m := 0; m < o.Np; m++ {
		if len(eqs[m]) != o.Ndim+1 {
			return chk.Err("solid-liquid element %d: node %d needs %d equations", o.Id(), m, o.Ndim+1)
		}
		ueqs[m] = eqs[m][:o.Ndim]
		o.Pmap[m] = eqs[m][o.Ndim]
	}
	return o.U.SetEqs(ueqs)
}

// AddToRhs adds -R to global residual vector fb
func (o *SolidLiquid) AddToRhs(fb []float64, sol *ele.Solution) (err error) {

	// u: effective stresses, body forces and inertia
	err = o.U.AddToRhs(fb, sol)
	if err != nil {
		return
	}

	// local variables
	for m, I := range o.Pmap {
		o.pe[m] = ele.Get(sol.Y, I)
		o.dpe[m] = ele.Get(sol.Dydt, I)
	}
	for r, I := range o.U.Umap {
		o.ve[r] = ele.Get(sol.Dydt, I)
	}

	// u: pore pressure
	for r, I := range o.U.Umap {
		if I < 0 {
			continue
		}
		for n := 0; n < o.Np; n++ {
			fb[I] += o.Q[r][n] * o.pe[n]
		}
	}

	// p: continuity
	for m, I := range o.Pmap {
		if I < 0 {
			continue
		}
		res := -o.Fp[m]
		for r := 0; r < o.U.Nu; r++ {
			res += o.Q[r][m] * o.ve[r]
		}
		for n := 0; n < o.Np; n++ {
			res += o.S[m][n]*o.dpe[n] + o.H[m][n]*o.pe[n]
		}
		fb[I] -= res
	}
	return
}

// AddToKb adds element K to global Jacobian matrix Kb
func (o *SolidLiquid) AddToKb(kb *ele.Kb, sol *ele.Solution, firstIt bool) (err error) {
	err = o.U.AddToKb(kb, sol, firstIt)
	if err != nil {
		return
	}
	for r, I := range o.U.Umap {
		for n, J := range o.Pmap {
			ele.Add(kb.K, I, J, -o.Q[r][n])
			ele.Add(kb.C, J, I, o.Q[r][n])
		}
	}
	for m, I := range o.Pmap {
		for n, J := range o.Pmap {
			ele.Add(kb.K, I, J, o.H[m][n])
			ele.Add(kb.C, I, J, o.S[m][n])
		}
	}
	return
}

// Update perform (tangent) update
func (o *SolidLiquid) Update(sol *ele.Solution) (err error) {
	return o.U.Update(sol)
}

// BackupIvs create copy of internal variables
func (o *SolidLiquid) BackupIvs() (err error) {
	return o.U.BackupIvs()
}

// RestoreIvs restore internal variables from copies
func (o *SolidLiquid) RestoreIvs() (err error) {
	return o.U.RestoreIvs()
}

// Material returns the material model of the solid skeleton
func (o *SolidLiquid) Material() mdlsolid.Knobs { return o.U.Mdl }

// SetParameter sets permeabilities or forwards the parameter to the material model
func (o *SolidLiquid) SetParameter(name string, value float64) (err error) {
	switch name {
	case "hPerm":
		o.HPerm = value
	case "vPerm":
		o.VPerm = value
	default:
		return o.U.SetParameter(name, value)
	}
	if value < 0 {
		return chk.Err("solid-liquid: permeability must be non-negative. %s = %g is invalid", name, value)
	}
	o.Recompute()
	return
}

// GetParameter gets permeabilities or material parameters
func (o *SolidLiquid) GetParameter(name string) (float64, error) {
	switch name {
	case "hPerm":
		return o.HPerm, nil
	case "vPerm":
		return o.VPerm, nil
	}
	return o.U.GetParameter(name)
}

// OutIpKeys returns the integration points' keys
func (o *SolidLiquid) OutIpKeys() []string {
	return append(o.U.OutIpKeys(), "pl")
}

// OutIpVals returns the integration points' values corresponding to keys
func (o *SolidLiquid) OutIpVals(M *ele.IpsMap, sol *ele.Solution) {
	o.U.OutIpVals(M, sol)
	nip := len(o.U.Ips)
	for idx := 0; idx < nip; idx++ {
		pl := 0.0
		for m, I := range o.Pmap {
			pl += o.U.S[idx][m] * ele.Get(sol.Y, I)
		}
		M.Set("pl", idx, nip, pl)
	}
}

// Recompute re-computes the fixed matrices after permeabilities are externally changed
func (o *SolidLiquid) Recompute() {
	for i := range o.Q {
		for j := range o.Q[i] {
			o.Q[i][j] = 0
		}
	}
	for m := 0; m < o.Np; m++ {
		o.Fp[m] = 0
		for n := 0; n < o.Np; n++ {
			o.S[m][n], o.H[m][n] = 0, 0
		}
	}
	k := make([]float64, o.Ndim)
	for i := range k {
		k[i] = o.HPerm
	}
	k[1] = o.VPerm
	ρb := -o.Fluid.Gamma() // ρf・b_y
	cs := o.Nf / o.Kf
	for idx, ip := range o.U.Ips {
		o.U.Shp.CalcAtIp(o.U.X, ip, true)
		G := o.U.Shp.G
		Np := o.U.S[idx]
		B := o.U.B[idx]
		coef := o.U.Coef[idx]
		for r := 0; r < o.U.Nu; r++ {
			divr := B[0][r] + B[1][r] + B[2][r] // mᵀB
			if divr == 0 {
				continue
			}
			for n := 0; n < o.Np; n++ {
				o.Q[r][n] += coef * divr * Np[n]
			}
		}
		for m := 0; m < o.Np; m++ {
			o.Fp[m] += coef * G[m][1] * k[1] * ρb
			for n := 0; n < o.Np; n++ {
				o.S[m][n] += coef * Np[m] * cs * Np[n]
				for i := 0; i < o.Ndim; i++ {
					o.H[m][n] += coef * G[m][i] * k[i] * G[n][i]
				}
			}
		}
	}
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////////

func alloc(m, n int) (a [][]float64) {
	a = make([][]float64, m)
	for i := range a {
		a[i] = make([]float64, n)
	}
	return
}
