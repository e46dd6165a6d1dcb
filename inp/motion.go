// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cpmech/gosl/chk"
)

// Motion holds an outcrop motion record acting along one horizontal direction
type Motion struct {

	// input
	AccFile string  `json:"accfile"` // file with acceleration history; one column (a) or two columns (t, a)
	VelFile string  `json:"velfile"` // [optional] file with velocity history; otherwise velocities are integrated
	Dt      float64 `json:"dt"`      // time step of record (required with one-column files)
	Scale   float64 `json:"scale"`   // multiplier applied to acceleration/velocity values; 0 => 1

	// derived
	Acc []float64 // accelerations at t = i・Dt
	Vel []float64 // velocities at t = i・Dt
}

// IsInitialized tells whether this motion has data
func (o *Motion) IsInitialized() bool {
	return o != nil && len(o.Vel) > 1 && o.Dt > 0
}

// NumSteps returns the number of time steps in the record
func (o *Motion) NumSteps() int {
	if len(o.Vel) == 0 {
		return 0
	}
	return len(o.Vel) - 1
}

// Duration returns the total duration of the record
func (o *Motion) Duration() float64 {
	return float64(o.NumSteps()) * o.Dt
}

// SetAcc sets acceleration values and computes velocities using the trapezoidal rule
func (o *Motion) SetAcc(dt float64, acc []float64) {
	o.Dt = dt
	o.Acc = make([]float64, len(acc))
	copy(o.Acc, acc)
	o.Vel = make([]float64, len(acc))
	for i := 1; i < len(acc); i++ {
		o.Vel[i] = o.Vel[i-1] + 0.5*dt*(acc[i-1]+acc[i])
	}
}

// VelAt returns the velocity at time t by linear interpolation. Zero is returned after the end
// of the record
func (o *Motion) VelAt(t float64) float64 {
	if !o.IsInitialized() || t < 0 {
		return 0
	}
	s := t / o.Dt
	i := int(math.Floor(s))
	if i >= len(o.Vel)-1 {
		if i == len(o.Vel)-1 && math.Abs(s-float64(i)) < 1e-10 {
			return o.Vel[i]
		}
		return 0
	}
	ξ := s - float64(i)
	return (1.0-ξ)*o.Vel[i] + ξ*o.Vel[i+1]
}

// Read reads acceleration (and velocity) files. Relative paths are taken from dir
func (o *Motion) Read(dir string) (err error) {
	if o.AccFile == "" {
		return
	}
	if o.Scale == 0 {
		o.Scale = 1
	}
	t, a, err := readSeries(dir, o.AccFile)
	if err != nil {
		return
	}
	dt := o.Dt
	if len(t) > 1 {
		dt = t[1] - t[0]
	}
	if !(dt > 0) {
		return chk.Err("time step of motion %q is invalid: dt = %g", o.AccFile, dt)
	}
	for i := range a {
		a[i] *= o.Scale
	}
	o.SetAcc(dt, a)
	if o.VelFile != "" {
		_, v, err := readSeries(dir, o.VelFile)
		if err != nil {
			return err
		}
		if len(v) != len(a) {
			return chk.Err("velocity record %q has %d values but acceleration record has %d", o.VelFile, len(v), len(a))
		}
		for i := range v {
			o.Vel[i] = v[i] * o.Scale
		}
	}
	return
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////////

// readSeries reads one- or two-column files. t is empty for one-column files
func readSeries(dir, fn string) (t, v []float64, err error) {
	if !filepath.IsAbs(fn) {
		fn = filepath.Join(dir, fn)
	}
	b, err := os.ReadFile(fn)
	if err != nil {
		return nil, nil, chk.Err("cannot read motion file %q:\n%v", fn, err)
	}
	for i, line := range strings.Split(string(b), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(strings.Replace(line, ",", " ", -1))
		vals := make([]float64, len(fields))
		for j, f := range fields {
			vals[j], err = strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, nil, chk.Err("%s:%d: cannot parse %q", fn, i+1, f)
			}
		}
		switch len(vals) {
		case 1:
			v = append(v, vals[0])
		case 2:
			t = append(t, vals[0])
			v = append(v, vals[1])
		default:
			return nil, nil, chk.Err("%s:%d: one or two columns are expected; %d found", fn, i+1, len(vals))
		}
	}
	if len(t) > 0 && len(t) != len(v) {
		return nil, nil, chk.Err("%s: mixed one- and two-column lines", fn)
	}
	return
}
