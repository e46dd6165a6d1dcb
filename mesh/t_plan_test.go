// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"math"
	"reflect"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/pmackenz/SiteResponseTool/inp"
)

func threeLayers() *inp.Layering {
	return &inp.Layering{Layers: []*inp.Layer{
		{Name: "top", Thick: 2, Vs: 150, Rho: 1.7, NumEle: 4},
		{Name: "mid", Thick: 3, Vs: 250, Rho: 1.9, NumEle: 3},
		{Name: "bot", Thick: 5, Vs: 400, Rho: 2.0, NumEle: 5},
		{Name: "rock", Vs: 800, Rho: 2.4},
	}}
}

func Test_plan01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("plan01")

	lay := threeLayers()
	opt := Options{Ndim: 2, MaxFreq: 50, Npw: 4}
	plan, err := Discretize(lay, opt)
	if err != nil {
		tst.Errorf("Discretize failed:\n%v", err)
		return
	}
	io.Pforan("%v", plan)

	// bottom-up ordering
	chk.String(tst, plan.Layers[0].Name, "bot")
	chk.String(tst, plan.Layers[2].Name, "top")

	// element counts: floor(npw・h/λ) - 1 with λ = Vs/fmax
	//   bot: λ = 8   => h = max(5,8) = 8 => 4・8/8 - 1 = 3
	//   mid: λ = 5   => h = max(3,5) = 5 => 4・5/5 - 1 = 3
	//   top: λ = 3   => h = max(2,3) = 3 => 4・3/3 - 1 = 3
	chk.Ints(tst, "nele", []int{plan.Layers[0].NumEle, plan.Layers[1].NumEle, plan.Layers[2].NumEle}, []int{3, 3, 3})
	chk.Float64(tst, "esize(bot)", 1e-15, plan.Layers[0].ElemSize, 8.0/3.0)
	chk.Float64(tst, "height", 1e-14, plan.Height, 16)

	// numbering
	chk.Int(tst, "nelems", plan.NumElems, 9)
	chk.Int(tst, "nnodes", plan.NumNodes, 2*(3+1)+2*3+2*3)
	chk.Int(tst, "first node (mid)", plan.Layers[1].FirstNode, 9)
	chk.Int(tst, "first elem (top)", plan.Layers[2].FirstElem, 7)
	chk.Ints(tst, "nodes of elem 1", plan.ElemNodes(1), []int{1, 2, 4, 3})
	chk.Ints(tst, "nodes of elem 9", plan.ElemNodes(9), []int{17, 18, 20, 19})
	chk.Int(tst, "surface", plan.SurfaceNode(), 20)
	chk.Int(tst, "layer of elem 4", plan.ElemLayer(4), 1)
	chk.Int(tst, "layer of elem 10", plan.ElemLayer(10), -1)

	// horizons
	hors := plan.Horizons()
	chk.Int(tst, "nhorizons", len(hors), plan.NumNodes/2)
	chk.Float64(tst, "y(base)", 1e-15, hors[0].Y, 0)
	chk.Float64(tst, "y(surface)", 1e-13, hors[len(hors)-1].Y, plan.Height)
	for i := 1; i < len(hors); i++ {
		if hors[i].Y <= hors[i-1].Y {
			tst.Errorf("horizons must be increasing: y[%d]=%g <= y[%d]=%g", i, hors[i].Y, i-1, hors[i-1].Y)
			return
		}
	}
}

func Test_plan02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("plan02. node count formula")

	lay := threeLayers()
	for _, ndim := range []int{2, 3} {
		for _, explicit := range []bool{false, true} {
			plan, err := Discretize(lay, Options{Ndim: ndim, MaxFreq: 80, Npw: 6, Explicit: explicit})
			if err != nil {
				tst.Errorf("Discretize failed:\n%v", err)
				return
			}
			nper := 2
			if ndim == 3 {
				nper = 4
			}
			sum := 0
			for i, lp := range plan.Layers {
				n := lp.NumEle
				if i == 0 {
					n++
				}
				sum += n * nper
			}
			chk.Int(tst, io.Sf("nnodes (ndim=%d explicit=%v)", ndim, explicit), plan.NumNodes, sum)
			last := plan.Layers[len(plan.Layers)-1]
			chk.Int(tst, "highest regular node", last.FirstNode+last.NumNodes-1, plan.NumNodes)
			nodes := plan.ElemNodes(plan.NumElems)
			max := 0
			for _, n := range nodes {
				if n > max {
					max = n
				}
			}
			chk.Int(tst, "highest node of last element", max, plan.NumNodes)
		}
	}
}

func Test_plan03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("plan03. idempotence")

	lay := threeLayers()
	opt := Options{Ndim: 3, MaxFreq: 33.3, Npw: 10}
	p1, err := Discretize(lay, opt)
	if err != nil {
		tst.Errorf("Discretize failed:\n%v", err)
		return
	}
	p2, err := Discretize(lay, opt)
	if err != nil {
		tst.Errorf("Discretize failed:\n%v", err)
		return
	}
	if !reflect.DeepEqual(p1, p2) {
		tst.Errorf("plans must be identical:\n%v\n%v", p1, p2)
		return
	}
	if !reflect.DeepEqual(p1.Horizons(), p2.Horizons()) {
		tst.Errorf("horizons must be identical")
	}
	chk.Float64(tst, "thickness of 'top' is unchanged", 1e-15, lay.Layers[0].Thick, 2)
}

func Test_plan04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("plan04. errors")

	lay := threeLayers()
	lay.Layers[1].NumEle = 0
	_, err := Discretize(lay, Options{Ndim: 2, Explicit: true})
	if err == nil {
		tst.Errorf("zero-element layer must be reported")
		return
	}
	io.Pforan("%v\n", err)

	_, err = Discretize(threeLayers(), Options{Ndim: 1, MaxFreq: 10, Npw: 4})
	if err == nil {
		tst.Errorf("ndim = 1 must fail")
		return
	}

	lay = threeLayers()
	lay.Layers[0].Vs = math.Inf(1)
	_, err = Discretize(lay, Options{Ndim: 2, MaxFreq: 10, Npw: 4})
	if err == nil {
		tst.Errorf("infinite velocity must fail")
		return
	}

	// tiny layers get at least one element
	lay = threeLayers()
	plan, err := Discretize(lay, Options{Ndim: 2, MaxFreq: 1, Npw: 1})
	if err != nil {
		tst.Errorf("Discretize failed:\n%v", err)
		return
	}
	for _, lp := range plan.Layers {
		chk.Int(tst, "nele "+lp.Name, lp.NumEle, 1)
	}
}
