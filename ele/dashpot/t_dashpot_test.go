// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dashpot

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/pmackenz/SiteResponseTool/ele"
	"github.com/pmackenz/SiteResponseTool/mdl/solid"
)

func Test_dashpot01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("dashpot01")

	c := 2.4 * 760 * 0.25
	cell := &ele.Cell{Id: 30, Type: "dashpot", Ndim: 2, Verts: []int{21, 22}, Dirs: []int{0},
		Prms: solid.Prms{&solid.Prm{N: "c", V: c}},
	}
	e, err := ele.New(cell)
	if err != nil {
		tst.Errorf("cannot allocate dashpot:\n%v", err)
		return
	}
	chk.Strings(tst, "dofs", e.Info().Dofs[1], []string{"ux", "uy"})

	// node a fixed; node b has equations {0, -1}
	err = e.SetEqs([][]int{{-1, -1}, {0, -1}})
	if err != nil {
		tst.Errorf("SetEqs failed:\n%v", err)
		return
	}
	sol := ele.NewSolution(1)
	sol.Dydt[0] = 0.2
	fb := []float64{0}
	e.AddToRhs(fb, sol)
	chk.Float64(tst, "-f", 1e-12, fb[0], -c*0.2)

	kb := ele.NewKb(1)
	e.AddToKb(kb, sol, true)
	chk.Float64(tst, "C", 1e-12, kb.C.At(0, 0), c)
	chk.Float64(tst, "K", 1e-17, kb.K.At(0, 0), 0)

	// parameters
	p := e.(ele.WithParameters)
	p.SetParameter("c", 1)
	v, _ := p.GetParameter("c")
	chk.Float64(tst, "c", 1e-17, v, 1)

	// invalid
	if _, err = ele.New(&ele.Cell{Type: "dashpot", Ndim: 2, Verts: []int{1, 2}, Dirs: []int{2}}); err == nil {
		tst.Errorf("direction 2 is invalid in 2D")
	}
}
