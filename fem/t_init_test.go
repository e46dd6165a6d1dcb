// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"errors"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/pmackenz/SiteResponseTool/inp"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// newSim returns a two-layer column over bedrock with explicit number of elements and a zero motion
func newSim(tst *testing.T, dim, mode string) *inp.Simulation {
	sim := new(inp.Simulation)
	sim.SetDefault()
	sim.Data.Dim = dim
	sim.Data.Mode = mode
	sim.Data.Script = false
	sim.Mesh.Explicit = true
	sim.Layers = []*inp.Layer{
		{Name: "clay", Thick: 4, Vs: 200, Rho: 1.8, NumEle: 4},
		{Name: "sand", Thick: 6, Vs: 300, Rho: 2.0, NumEle: 3},
		{Name: "rock", Vs: 760, Rho: 2.4},
	}
	err := sim.PostProcess()
	if err != nil {
		tst.Fatalf("PostProcess failed:\n%v", err)
	}
	sim.MotionX = new(inp.Motion)
	sim.MotionX.SetAcc(0.005, make([]float64, 21))
	return sim
}

// newColumn builds the column of sim
func newColumn(tst *testing.T, sim *inp.Simulation) *Domain {
	plan, err := NewPlan(sim)
	if err != nil {
		tst.Fatalf("NewPlan failed:\n%v", err)
	}
	dom, err := BuildColumn(sim, plan, chk.Verbose)
	if err != nil {
		tst.Fatalf("BuildColumn failed:\n%v", err)
	}
	return dom
}

// isConfig tells whether err is a configuration error
func isConfig(err error) bool {
	return errors.Is(err, ErrConfig)
}
