// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"errors"
	"fmt"
	"math"

	"github.com/cpmech/gosl/io"
)

// Stepper advances an analysis by a number of fixed time steps. On failure, the time and state
// of the last converged step are kept
type Stepper interface {
	Analyze(nsteps int, dt float64) (err error) // runs nsteps steps of size dt
	Time() float64                              // current time
}

// Result is the outcome of a Driver run or of a recovery attempt
type Result int

// results
const (
	Converged Result = iota // all steps converged
	Failed                  // some step did not converge; may be recovered by bisection
	Exhausted               // the maximum depth of bisection was reached
)

// String returns the name of result
func (o Result) String() string {
	switch o {
	case Converged:
		return "converged"
	case Failed:
		return "failed"
	case Exhausted:
		return "exhausted"
	}
	return io.Sf("result(%d)", int(o))
}

// Driver runs the dynamic stage to the end of the motion. When a step fails, the step is
// recursively divided in halves up to MaxDepth levels, or until the step would fall below DtMin,
// and the run resumes at the original Dt
type Driver struct {
	Stepper  Stepper   // analysis
	Dt       float64   // time step
	DtMin    float64   // smallest step tried by bisection; 0 => no limit
	NumSteps int       // total number of steps of size Dt
	MaxDepth int       // max depth of bisection
	ShowMsg  bool      // show messages
	Used     []float64 // step size of each call to Analyze
}

// Run runs all steps. err wraps ErrExhausted if the bisection was exhausted
func (o *Driver) Run() (res Result, err error) {
	remaining := o.NumSteps
	for remaining > 0 {

		// try all remaining steps
		res, err = o.attempt(remaining, o.Dt)
		if err != nil || res == Converged {
			return
		}

		// recover by substepping the failed step
		tfail := o.Stepper.Time()
		if o.ShowMsg {
			io.Pfyel("> Analysis failed at t = %g. Try substepping\n", tfail)
		}
		res, err = o.bisect(o.Dt/2.0, 1)
		if err != nil {
			return
		}
		if res == Exhausted {
			return Exhausted, fmt.Errorf("%w: no convergence at t = %g with %d levels of bisection and dtmin = %g", ErrExhausted, o.Stepper.Time(), o.MaxDepth, o.DtMin)
		}

		// resume at the original time step
		cur := int(math.Floor(tfail/o.Dt+0.5)) + 1
		remaining = o.NumSteps - cur
		if o.ShowMsg {
			io.Pf("> Current step: %d, Remaining steps: %d\n", cur, remaining)
		}
	}
	return Converged, nil
}

// bisect runs two steps of size dt; each failing step is bisected again
func (o *Driver) bisect(dt float64, depth int) (res Result, err error) {
	if depth > o.MaxDepth || dt < o.DtMin {
		return Exhausted, nil
	}
	for i := 0; i < 2; i++ {
		if o.ShowMsg {
			io.Pf("> Try dt = %g\n", dt)
		}
		res, err = o.attempt(1, dt)
		if err != nil {
			return
		}
		if res == Converged {
			continue
		}
		res, err = o.bisect(dt/2.0, depth+1)
		if err != nil || res == Exhausted {
			return
		}
	}
	return Converged, nil
}

// attempt calls the stepper and converts non-convergence into Failed
func (o *Driver) attempt(nsteps int, dt float64) (res Result, err error) {
	o.Used = append(o.Used, dt)
	err = o.Stepper.Analyze(nsteps, dt)
	if err == nil {
		return Converged, nil
	}
	if errors.Is(err, errNoConvergence) {
		return Failed, nil
	}
	return Failed, err
}
