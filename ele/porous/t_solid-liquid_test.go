// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package porous

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/pmackenz/SiteResponseTool/ele"
	"github.com/pmackenz/SiteResponseTool/mdl/solid"
)

func newUpElement(tst *testing.T) (o *SolidLiquid, neq int) {
	w, h := 0.25, 1.0
	cell := &ele.Cell{Id: 7, Type: "solid-liquid", Ndim: 2, Thick: 1, Grav: 9.81, Model: "lin-elast",
		Verts: []int{1, 2, 4, 3},
		X:     [][]float64{{0, w, w, 0}, {0, 0, h, h}},
		Prms:  solid.Prms{&solid.Prm{N: "E", V: 1e4}, &solid.Prm{N: "nu", V: 0.3}, &solid.Prm{N: "rho", V: 2}},
		Extra: solid.Prms{&solid.Prm{N: "hPerm", V: 1e-4}, &solid.Prm{N: "vPerm", V: 1e-5}},
	}
	e, err := ele.New(cell)
	if err != nil {
		tst.Errorf("cannot allocate element:\n%v", err)
		return
	}
	o = e.(*SolidLiquid)
	eqs := make([][]int, 4)
	for m := 0; m < 4; m++ {
		eqs[m] = []int{3 * m, 3*m + 1, 3*m + 2}
	}
	if err = o.SetEqs(eqs); err != nil {
		tst.Errorf("SetEqs failed:\n%v", err)
		return
	}
	return o, 12
}

func Test_up01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("up01. info and hydrostatic state")

	o, neq := newUpElement(tst)
	if o == nil {
		return
	}

	// check info
	info := o.Info()
	chk.IntAssert(len(info.Dofs), 4)
	for _, dof := range info.Dofs {
		chk.Strings(tst, "up dofs", dof, []string{"ux", "uy", "pl"})
	}
	chk.Strings(tst, "t1vars", info.T1vars, []string{"pl"})
	chk.Strings(tst, "t2vars", info.T2vars, []string{"ux", "uy"})
	chk.Float64(tst, "porosity", 1e-15, o.Nf, o.Evoid/(1+o.Evoid))

	// hydrostatic pressure with water table at the top
	γw := o.RhoF * o.U.Grav
	sol := ele.NewSolution(neq)
	for m := 0; m < 4; m++ {
		sol.Y[3*m+2] = γw * (1.0 - o.U.X[1][m])
	}
	fb := make([]float64, neq)
	o.AddToRhs(fb, sol)
	for m := 0; m < 4; m++ {
		io.Pforan("continuity residual @ %d = %v\n", m, fb[3*m+2])
		chk.Float64(tst, io.Sf("R%d", m), 1e-15, fb[3*m+2], 0)
	}

	// uniform pressure is self-equilibrated
	for m := 0; m < 4; m++ {
		sol.Y[3*m+2] = 10
	}
	for i := range fb {
		fb[i] = 0
	}
	o.U.Grav = 0
	o.AddToRhs(fb, sol)
	fx, fy := 0.0, 0.0
	for m := 0; m < 4; m++ {
		fx += fb[3*m]
		fy += fb[3*m+1]
	}
	chk.Float64(tst, "Σfx", 1e-13, fx, 0)
	chk.Float64(tst, "Σfy", 1e-13, fy, 0)
}

func Test_up02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("up02. matrices and parameters")

	o, neq := newUpElement(tst)
	if o == nil {
		return
	}

	// compressibility: ΣS = n/Kf・V
	sum := 0.0
	for m := 0; m < o.Np; m++ {
		for n := 0; n < o.Np; n++ {
			sum += o.S[m][n]
		}
	}
	chk.Float64(tst, "ΣS", 1e-20, sum, o.Nf/o.Kf*0.25)

	// coupling blocks
	sol := ele.NewSolution(neq)
	kb := ele.NewKb(neq)
	o.AddToKb(kb, sol, true)
	for r := 0; r < 8; r++ {
		I := 3*(r/2) + r%2
		for n := 0; n < 4; n++ {
			chk.Float64(tst, "Kup", 1e-15, kb.K.At(I, 3*n+2), -o.Q[r][n])
			chk.Float64(tst, "Cpu", 1e-15, kb.C.At(3*n+2, I), o.Q[r][n])
			chk.Float64(tst, "Kr(p)", 1e-17, kb.Kr.At(I, 3*n+2), 0)
		}
	}

	// permeability update
	H00 := o.H[0][0]
	err := o.SetParameter("hPerm", 2e-4)
	if err != nil {
		tst.Errorf("SetParameter failed:\n%v", err)
		return
	}
	if o.H[0][0] <= H00 {
		tst.Errorf("H must increase with the horizontal permeability")
		return
	}
	k, _ := o.GetParameter("hPerm")
	chk.Float64(tst, "hPerm", 1e-17, k, 2e-4)
	if err = o.SetParameter("vPerm", -1); err == nil {
		tst.Errorf("negative permeability should fail")
		return
	}

	// forwarded to material
	o.SetParameter("materialState", 1)
	st, _ := o.Material().GetParameter("materialState")
	chk.Float64(tst, "materialState", 1e-17, st, 1)
	if _, err = ele.New(&ele.Cell{Type: "solid-liquid", Ndim: 2, Extra: solid.Prms{&solid.Prm{N: "bad", V: 1}}}); err == nil {
		tst.Errorf("unknown element parameter should fail")
	}
}
