// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solid

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/pmackenz/SiteResponseTool/ele"
	"github.com/pmackenz/SiteResponseTool/mdl/solid"
)

// column element: 0.25 wide, 1.0 high
func newColumnElement(tst *testing.T, ndim int) (o *Solid, neq int) {
	w, h := 0.25, 1.0
	cell := &ele.Cell{Id: 1, Type: "solid", Ndim: ndim, Thick: 1, Grav: 9.81, Model: "lin-elast",
		Prms: solid.Prms{&solid.Prm{N: "E", V: 1300}, &solid.Prm{N: "nu", V: 0.3}, &solid.Prm{N: "rho", V: 2}},
	}
	if ndim == 2 {
		cell.Verts = []int{1, 2, 4, 3}
		cell.X = [][]float64{{0, w, w, 0}, {0, 0, h, h}}
	} else {
		cell.Verts = []int{1, 2, 3, 4, 5, 6, 7, 8}
		cell.X = [][]float64{
			{0, 0, w, w, 0, 0, w, w},
			{0, 0, 0, 0, h, h, h, h},
			{0, w, w, 0, 0, w, w, 0},
		}
	}
	e, err := ele.New(cell)
	if err != nil {
		tst.Errorf("cannot allocate element:\n%v", err)
		return
	}
	o = e.(*Solid)
	nv := len(cell.Verts)
	eqs := make([][]int, nv)
	for m := 0; m < nv; m++ {
		eqs[m] = make([]int, ndim)
		for i := 0; i < ndim; i++ {
			eqs[m][i] = i + m*ndim
		}
	}
	if err = o.SetEqs(eqs); err != nil {
		tst.Errorf("SetEqs failed:\n%v", err)
		return
	}
	return o, nv * ndim
}

func Test_solid01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solid01. mass and body forces")

	for _, ndim := range []int{2, 3} {
		o, neq := newColumnElement(tst, ndim)
		if o == nil {
			return
		}
		vol := 0.25 * 1.0
		if ndim == 3 {
			vol *= 0.25
		}

		// total mass in each direction
		for i := 0; i < ndim; i++ {
			mass := 0.0
			for m := 0; m < o.Shp.Nverts; m++ {
				for n := 0; n < o.Shp.Nverts; n++ {
					mass += o.M[i+m*ndim][i+n*ndim]
				}
			}
			chk.Float64(tst, io.Sf("mass%d", i), 1e-14, mass, 2*vol)
		}

		// weight
		sol := ele.NewSolution(neq)
		fb := make([]float64, neq)
		o.AddToRhs(fb, sol)
		fy := 0.0
		for m := 0; m < o.Shp.Nverts; m++ {
			fy += fb[1+m*ndim]
		}
		chk.Float64(tst, "weight", 1e-13, fy, -2*9.81*vol)
	}
}

func Test_solid02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solid02. uniaxial strain and consistency")

	for _, ndim := range []int{2, 3} {
		o, neq := newColumnElement(tst, ndim)
		if o == nil {
			return
		}
		o.Grav = 0

		// uy = -εv・y
		εv := 1e-3
		sol := ele.NewSolution(neq)
		for m := 0; m < o.Shp.Nverts; m++ {
			sol.Y[1+m*ndim] = -εv * o.X[1][m]
		}
		err := o.Update(sol)
		if err != nil {
			tst.Errorf("Update failed:\n%v", err)
			return
		}
		mdl := o.Mdl.(*solid.SmallElasticity)
		M := mdl.K + 4.0*mdl.G/3.0
		for idx, s := range o.States {
			chk.Float64(tst, io.Sf("σyy @ ip %d", idx), 1e-12, s.Sig[1], -M*εv)
			chk.Float64(tst, io.Sf("σxy @ ip %d", idx), 1e-12, s.Sig[3], 0)
		}

		// fint == K・u
		fb := make([]float64, neq)
		o.AddToRhs(fb, sol)
		kb := ele.NewKb(neq)
		o.AddToKb(kb, sol, true)
		for i := 0; i < neq; i++ {
			ku := 0.0
			for j := 0; j < neq; j++ {
				ku += kb.K.At(i, j) * sol.Y[j]
			}
			chk.Float64(tst, io.Sf("fint%d", i), 1e-11, -fb[i], ku)
		}

		// rigid body translation
		for i := range sol.Y {
			sol.Y[i] = 0
		}
		for m := 0; m < o.Shp.Nverts; m++ {
			sol.Y[m*ndim] = 0.1
		}
		for i := 0; i < neq; i++ {
			ku := 0.0
			for j := 0; j < neq; j++ {
				ku += kb.K.At(i, j) * sol.Y[j]
			}
			chk.Float64(tst, io.Sf("rigid%d", i), 1e-11, ku, 0)
		}

		// restore
		o.RestoreIvs()
		for _, s := range o.States {
			chk.Array(tst, "σ restored", 1e-17, s.Sig, make([]float64, o.Nsig))
		}
	}
}

func Test_solid03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solid03. parameters and output")

	o, neq := newColumnElement(tst, 2)
	if o == nil {
		return
	}
	var e ele.Element = o
	p, ok := e.(ele.WithParameters)
	if !ok {
		tst.Errorf("solid element must accept parameters")
		return
	}
	p.SetParameter("materialState", 1)
	v, err := p.GetParameter("materialState")
	if err != nil {
		tst.Errorf("GetParameter failed:\n%v", err)
		return
	}
	chk.Float64(tst, "materialState", 1e-17, v, 1)

	sol := ele.NewSolution(neq)
	for m := 0; m < o.Shp.Nverts; m++ {
		sol.Y[m*2] = 1e-3 * o.X[1][m]
	}
	o.Update(sol)
	M := ele.NewIpsMap()
	o.OutIpVals(M, sol)
	chk.Strings(tst, "keys", o.OutIpKeys(), []string{"sx", "sy", "sz", "sxy", "ex", "ey", "ez", "exy"})
	chk.Float64(tst, "γxy", 1e-15, M.Avg("exy"), 1e-3)
	chk.Float64(tst, "τxy", 1e-12, M.Avg("sxy"), 1300/2.6*1e-3)

	σ := make([]float64, 4)
	Ivs2sigmas(σ, 0, *M)
	chk.Float64(tst, "σxy", 1e-12, σ[3], 0.5)
}
