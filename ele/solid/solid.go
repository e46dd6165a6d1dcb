// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package solid implements elements for solid mechanics
package solid

import (
	"github.com/cpmech/gosl/chk"
	"github.com/pmackenz/SiteResponseTool/ele"
	"github.com/pmackenz/SiteResponseTool/mdl/solid"
	"github.com/pmackenz/SiteResponseTool/shp"
)

// Solid represents a solid element with small strains; quadrilateral (plane-strain) or hexahedron
type Solid struct {

	// basic data
	Cell *ele.Cell    // cell
	X    [][]float64  // matrix of nodal coordinates [ndim][nnode]
	Ndim int          // space dimension
	Nu   int          // total number of unknowns
	Nsig int          // number of stress components

	// parameters
	Thick float64 // thickness (plane-strain)
	Grav  float64 // gravity acceleration

	// integration points
	Shp  *shp.Shape      // shape structure
	Ips  []shp.Ipoint    // integration points
	S    [][]float64     // [nip][nverts] shape functions @ ips
	B    [][][]float64   // [nip][nsig][nu] strain-displacement matrices @ ips
	Coef []float64       // [nip] J・w・thick @ ips

	// material model and internal variables
	Mdl       solid.Model    // material model
	States    []*solid.State // [nip] states
	StatesBkp []*solid.State // [nip] committed states

	// problem variables
	Umap []int // assembly map (location array/element equations)

	// scratchpad. computed @ each ip
	K  [][]float64 // [nu][nu] consistent tangent (stiffness) matrix
	M  [][]float64 // [nu][nu] mass matrix
	D  [][]float64 // [nsig][nsig] constitutive consistent tangent matrix
	ue []float64   // [nu] local displacements
	ε  []float64   // [nsig] strains
	Δε []float64   // [nsig] strain increments
}

// register element
func init() {
	ele.SetAllocator("solid", func(cell *ele.Cell) (ele.Element, error) {
		return New(cell)
	})
}

// New allocates a new solid element
func New(cell *ele.Cell) (o *Solid, err error) {

	// basic data
	o = new(Solid)
	o.Cell = cell
	o.X = cell.X
	o.Ndim = cell.Ndim
	o.Nsig = solid.Nsig(o.Ndim)
	o.Thick = 1.0
	if o.Ndim == 2 && cell.Thick > 0 {
		o.Thick = cell.Thick
	}
	o.Grav = cell.Grav

	// shape
	geo := "qua4"
	if o.Ndim == 3 {
		geo = "hex8"
	}
	o.Shp = shp.Get(geo)
	if len(cell.Verts) != o.Shp.Nverts {
		return nil, chk.Err("%s element needs %d vertices; %d given", geo, o.Shp.Nverts, len(cell.Verts))
	}
	o.Nu = o.Ndim * o.Shp.Nverts

	// model
	o.Mdl, err = solid.New(cell.Model)
	if err != nil {
		return
	}
	err = o.Mdl.Init(o.Ndim, cell.Prms)
	if err != nil {
		return
	}

	// integration points
	o.Ips = o.Shp.GaussIps()
	nip := len(o.Ips)
	o.S = make([][]float64, nip)
	o.B = make([][][]float64, nip)
	o.Coef = make([]float64, nip)
	for idx, ip := range o.Ips {
		err = o.Shp.CalcAtIp(o.X, ip, true)
		if err != nil {
			return nil, chk.Err("element %d: %v", cell.Id, err)
		}
		o.S[idx] = make([]float64, o.Shp.Nverts)
		copy(o.S[idx], o.Shp.S)
		o.B[idx] = alloc(o.Nsig, o.Nu)
		IpBmatrix(o.B[idx], o.Ndim, o.Shp.G)
		o.Coef[idx] = o.Shp.J * ip.W * o.Thick
	}

	// states
	o.States = make([]*solid.State, nip)
	o.StatesBkp = make([]*solid.State, nip)
	σ := make([]float64, o.Nsig)
	for idx := 0; idx < nip; idx++ {
		o.States[idx], err = o.Mdl.InitIntVars(σ)
		if err != nil {
			return
		}
		o.StatesBkp[idx] = o.States[idx].GetCopy()
	}

	// scratchpad
	o.K = alloc(o.Nu, o.Nu)
	o.M = alloc(o.Nu, o.Nu)
	o.D = alloc(o.Nsig, o.Nsig)
	o.ue = make([]float64, o.Nu)
	o.ε = make([]float64, o.Nsig)
	o.Δε = make([]float64, o.Nsig)
	o.Recompute()
	return
}

// implementation ///////////////////////////////////////////////////////////////////////////////////

// Id returns the cell Id
func (o *Solid) Id() int { return o.Cell.Id }

// Verts returns the node tags
func (o *Solid) Verts() []int { return o.Cell.Verts }

// Info returns the solution variables
func (o *Solid) Info() *ele.Info {
	var info ele.Info
	ukeys := ele.Ukeys(o.Ndim)
	info.Dofs = make([][]string, o.Shp.Nverts)
	for m := 0; m < o.Shp.Nverts; m++ {
		info.Dofs[m] = ukeys
	}
	info.Y2F = ele.Y2F(o.Ndim, false)
	info.T2vars = ukeys
	return &info
}

// Material returns the material model
func (o *Solid) Material() solid.Knobs { return o.Mdl }

// SetEqs set equations
func (o *Solid) SetEqs(eqs [][]int) (err error) {
	if len(eqs) != o.Shp.Nverts {
		return chk.Err("solid element %d needs equations for %d nodes", o.Id(), o.Shp.Nverts)
	}
	o.Umap = make([]int, o.Nu)
	for m := 0; m < o.Shp.Nverts; m++ {
		for i := 0; i < o.Ndim; i++ {
			o.Umap[i+m*o.Ndim] = eqs[m][i]
		}
	}
	return
}

// AddToRhs adds -R to global residual vector fb
func (o *Solid) AddToRhs(fb []float64, sol *ele.Solution) (err error) {
	for idx := range o.Ips {
		σ := o.States[idx].Sig
		B := o.B[idx]
		coef := o.Coef[idx]
		for r, I := range o.Umap {
			if I < 0 {
				continue
			}
			fi := 0.0
			for k := 0; k < o.Nsig; k++ {
				fi += B[k][r] * σ[k]
			}
			fb[I] -= coef * fi // -fi
		}

		// body force
		ρ := o.Mdl.GetRho()
		for m := 0; m < o.Shp.Nverts; m++ {
			I := o.Umap[1+m*o.Ndim]
			if I >= 0 {
				fb[I] -= coef * ρ * o.Grav * o.S[idx][m]
			}
		}
	}

	// inertia
	for i, I := range o.Umap {
		if I < 0 {
			continue
		}
		for j, J := range o.Umap {
			fb[I] -= o.M[i][j] * ele.Get(sol.D2ydt2, J)
		}
	}
	return
}

// AddToKb adds element K to global Jacobian matrix Kb
func (o *Solid) AddToKb(kb *ele.Kb, sol *ele.Solution, firstIt bool) (err error) {
	err = o.CalcK(firstIt)
	if err != nil {
		return
	}
	for i, I := range o.Umap {
		for j, J := range o.Umap {
			ele.Add(kb.K, I, J, o.K[i][j])
			ele.Add(kb.Kr, I, J, o.K[i][j])
			ele.Add(kb.M, I, J, o.M[i][j])
		}
	}
	return
}

// CalcK computes the consistent tangent matrix
func (o *Solid) CalcK(firstIt bool) (err error) {
	for i := 0; i < o.Nu; i++ {
		for j := 0; j < o.Nu; j++ {
			o.K[i][j] = 0
		}
	}
	for idx := range o.Ips {
		err = o.Mdl.CalcD(o.D, o.States[idx], firstIt)
		if err != nil {
			return
		}
		B := o.B[idx]
		coef := o.Coef[idx]
		for i := 0; i < o.Nu; i++ {
			for k := 0; k < o.Nsig; k++ {
				if B[k][i] == 0 {
					continue
				}
				for l := 0; l < o.Nsig; l++ {
					bd := coef * B[k][i] * o.D[k][l]
					if bd == 0 {
						continue
					}
					for j := 0; j < o.Nu; j++ {
						o.K[i][j] += bd * B[l][j]
					}
				}
			}
		}
	}
	return
}

// Update perform (tangent) update
func (o *Solid) Update(sol *ele.Solution) (err error) {
	for r, I := range o.Umap {
		o.ue[r] = ele.Get(sol.Y, I)
	}
	for idx := range o.Ips {
		o.CalcStrain(o.ε, idx)
		bkp := o.StatesBkp[idx]
		for k := 0; k < o.Nsig; k++ {
			o.Δε[k] = o.ε[k] - bkp.Eps[k]
		}
		o.States[idx].Set(bkp)
		err = o.Mdl.Update(o.States[idx], o.ε, o.Δε)
		if err != nil {
			return chk.Err("element %d: update failed at ip %d:\n%v", o.Id(), idx, err)
		}
	}
	return
}

// BackupIvs create copy of internal variables
func (o *Solid) BackupIvs() (err error) {
	for i, s := range o.States {
		o.StatesBkp[i].Set(s)
	}
	return
}

// RestoreIvs restore internal variables from copies
func (o *Solid) RestoreIvs() (err error) {
	for i, s := range o.States {
		s.Set(o.StatesBkp[i])
	}
	return
}

// SetParameter sets a behaviour parameter of the material model
func (o *Solid) SetParameter(name string, value float64) (err error) {
	return o.Mdl.SetParameter(name, value)
}

// GetParameter gets a behaviour parameter of the material model
func (o *Solid) GetParameter(name string) (float64, error) {
	return o.Mdl.GetParameter(name)
}

// writer ///////////////////////////////////////////////////////////////////////////////////////////

// OutIpKeys returns the integration points' keys
func (o *Solid) OutIpKeys() []string {
	return append(StressKeys(o.Ndim), StrainKeys(o.Ndim)...)
}

// OutIpVals returns the integration points' values corresponding to keys
func (o *Solid) OutIpVals(M *ele.IpsMap, sol *ele.Solution) {
	skeys, ekeys := StressKeys(o.Ndim), StrainKeys(o.Ndim)
	nip := len(o.Ips)
	for idx, s := range o.States {
		for k := 0; k < o.Nsig; k++ {
			M.Set(skeys[k], idx, nip, s.Sig[k])
			M.Set(ekeys[k], idx, nip, s.Eps[k])
		}
	}
}

// specific methods /////////////////////////////////////////////////////////////////////////////////

// CalcStrain computes the strains at integration point idx using the local displacements
func (o *Solid) CalcStrain(ε []float64, idx int) {
	B := o.B[idx]
	for k := 0; k < o.Nsig; k++ {
		ε[k] = 0
		for r := 0; r < o.Nu; r++ {
			ε[k] += B[k][r] * o.ue[r]
		}
	}
}

// Recompute re-compute the mass matrix after the density is externally changed
func (o *Solid) Recompute() {
	ρ := o.Mdl.GetRho()
	for i := 0; i < o.Nu; i++ {
		for j := 0; j < o.Nu; j++ {
			o.M[i][j] = 0
		}
	}
	for idx := range o.Ips {
		S := o.S[idx]
		coef := o.Coef[idx]
		for m := 0; m < o.Shp.Nverts; m++ {
			for n := 0; n < o.Shp.Nverts; n++ {
				v := coef * ρ * S[m] * S[n]
				for i := 0; i < o.Ndim; i++ {
					o.M[i+m*o.Ndim][i+n*o.Ndim] += v
				}
			}
		}
	}
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////////

// IpBmatrix computes the strain-displacement matrix with engineering shear strains
func IpBmatrix(B [][]float64, ndim int, G [][]float64) {
	for m, g := range G {
		c := m * ndim
		if ndim == 2 {
			B[0][c+0] = g[0]
			B[1][c+1] = g[1]
			B[3][c+0], B[3][c+1] = g[1], g[0]
			continue
		}
		B[0][c+0] = g[0]
		B[1][c+1] = g[1]
		B[2][c+2] = g[2]
		B[3][c+0], B[3][c+1] = g[1], g[0]
		B[4][c+1], B[4][c+2] = g[2], g[1]
		B[5][c+0], B[5][c+2] = g[2], g[0]
	}
}

func alloc(m, n int) (a [][]float64) {
	a = make([][]float64, m)
	for i := range a {
		a[i] = make([]float64, n)
	}
	return
}
