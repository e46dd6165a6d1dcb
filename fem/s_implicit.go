// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// SolverImplicit solves the equations of motion with Newmark's method and Newton-Raphson
// iterations on the increments of y
//  M・ÿ + (C + Cr)・ẏ + Fint(y) = Fext(t)
//  J = K + c1・(C + Cr) + c2・M   with  c1 = γ/(β・Δt),  c2 = 1/(β・Δt²)
type SolverImplicit struct {
	Dom  *Domain     // domain
	Prms *SolverPrms // parameters
	J    *mat.Dense  // Jacobian matrix
	Ls   LinSol      // linear solver
}

// set factory
func init() {
	allocators["newmark"] = func(dom *Domain, prms *SolverPrms) (Solver, error) {
		if prms.Beta <= 0 || prms.Gamma <= 0 {
			return nil, chk.Err("Newmark coefficients must be positive: γ=%g β=%g", prms.Gamma, prms.Beta)
		}
		if prms.NmaxIt < 1 || prms.Tol <= 0 {
			return nil, chk.Err("iterations control is invalid: nmaxit=%d tol=%g", prms.NmaxIt, prms.Tol)
		}
		return &SolverImplicit{Dom: dom, Prms: prms}, nil
	}
}

// Step advances one time increment
func (o *SolverImplicit) Step(Δt float64) (err error) {

	// check
	d := o.Dom
	if Δt <= 0 {
		return chk.Err("time increment must be positive. Δt = %g is invalid", Δt)
	}
	if o.J == nil || o.J.RawMatrix().Rows != d.Neq {
		o.J = mat.NewDense(d.Neq, d.Neq, nil)
	}

	// busy
	d.busy = true
	defer func() { d.busy = false }()

	// dynamic coefficients
	γ, β := o.Prms.Gamma, o.Prms.Beta
	c1 := γ / (β * Δt)
	c2 := 1.0 / (β * Δt * Δt)

	// predictor: y unchanged
	sol := d.Sol
	t := d.Time + Δt
	sol.T, sol.Dt = t, Δt
	for i := 0; i < d.Neq; i++ {
		v, a := sol.Dydt[i], sol.D2ydt2[i]
		sol.D2ydt2[i] = -v/(β*Δt) - (0.5/β-1.0)*a
		sol.Dydt[i] = v + Δt*((1.0-γ)*a+γ*sol.D2ydt2[i])
		sol.ΔY[i] = 0
	}

	// iterations
	ok, err := o.iterate(c1, c2)
	if err != nil || !ok {
		if e := d.Restore(); e != nil {
			return e
		}
		if err != nil {
			return
		}
		return errNoConvergence
	}

	// commit
	return d.Commit()
}

// iterate runs the Newton-Raphson iterations
func (o *SolverImplicit) iterate(c1, c2 float64) (converged bool, err error) {

	// auxiliary variables
	d := o.Dom
	sol := d.Sol
	var it, ndvg int
	var largFb, Lδy, prevLδy float64

	// message
	if o.Prms.ShowR {
		io.Pf("\n%13s%4s%23s%23s\n", "t", "it", "largFb", "Lδy")
	}

	// iterations
	for it = 0; it < o.Prms.NmaxIt; it++ {

		// assemble element matrices and right-hand side vector (fb) with negative of residuals
		for i := range d.Fb {
			d.Fb[i] = 0
		}
		d.Kb.Zero()
		for _, e := range d.Elems {
			err = e.AddToKb(d.Kb, sol, it == 0)
			if err != nil {
				return
			}
			err = e.AddToRhs(d.Fb, sol)
			if err != nil {
				return
			}
		}

		// point loads
		for _, lp := range d.Patterns {
			lp.AddToRhs(d.Fb, sol.T, d.Tag2node)
		}

		// Rayleigh damping: fb -= (a0・M + a1・Kr)・v
		if d.A0 != 0 || d.A1 != 0 {
			v := mat.NewVecDense(d.Neq, sol.Dydt)
			var mv, kv mat.VecDense
			mv.MulVec(d.Kb.M, v)
			kv.MulVec(d.Kb.Kr, v)
			for i := 0; i < d.Neq; i++ {
				d.Fb[i] -= d.A0*mv.AtVec(i) + d.A1*kv.AtVec(i)
			}
		}

		// constraints
		d.Cons.AddToRhs(d.Fb, sol.Y, d.Tag2node)
		d.Cons.AddToKb(d.Kb, d.Tag2node)

		// find largest absolute component of fb
		largFb = floats.Norm(d.Fb, math.Inf(1))

		// assemble Jacobian matrix and factorise
		if it == 0 || !o.Prms.CteTg {
			o.J.Scale(c2, d.Kb.M)
			o.J.Add(o.J, d.Kb.K)
			var Cd mat.Dense
			Cd.Add(d.Kb.C, scaled(d.A0, d.Kb.M))
			Cd.Add(&Cd, scaled(d.A1, d.Kb.Kr))
			Cd.Scale(c1, &Cd)
			o.J.Add(o.J, &Cd)
			if e := o.Ls.Fact(o.J); e != nil {
				if o.Prms.ShowR {
					io.PfRed("%13.6e%4d: %v\n", sol.T, it, e)
				}
				return false, nil
			}
		}

		// solve for δy
		err = o.Ls.Solve(d.Wb, d.Fb)
		if err != nil {
			if o.Prms.ShowR {
				io.PfRed("%13.6e%4d: %v\n", sol.T, it, err)
			}
			return false, nil
		}

		// update primary variables and their time derivatives
		for i := 0; i < d.Neq; i++ {
			δ := d.Wb[i]
			sol.Y[i] += δ
			sol.ΔY[i] += δ
			sol.Dydt[i] += c1 * δ
			sol.D2ydt2[i] += c2 * δ
		}

		// update secondary variables
		for _, e := range d.ElemIntvars {
			err = e.Update(sol)
			if err != nil {
				if o.Prms.ShowR {
					io.PfRed("%13.6e%4d: %v\n", sol.T, it, err)
				}
				return false, nil
			}
		}

		// norm of δy
		Lδy = floats.Norm(d.Wb, 2)
		if o.Prms.ShowR {
			io.Pf("%13.6e%4d%23.15e%23.15e\n", sol.T, it, largFb, Lδy)
		}

		// converged
		if Lδy < o.Prms.Tol {
			return true, nil
		}

		// check divergence on Lδy
		if it > 1 && o.Prms.DvgCtrl {
			if Lδy > prevLδy {
				ndvg++
				if o.Prms.ShowR {
					io.PfRed(". . . iterations diverging (%2d) . . .\n", ndvg)
				}
				if ndvg >= o.Prms.NdvgMax {
					return false, nil
				}
			} else {
				ndvg = 0
			}
		}
		prevLδy = Lδy
	}

	// max number of iterations reached
	if o.Prms.ShowR {
		io.Pfpink("max number of iterations reached: it = %d\n", it)
	}
	return false, nil
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////////

// scaled returns α・A
func scaled(α float64, A *mat.Dense) *mat.Dense {
	var B mat.Dense
	B.Scale(α, A)
	return &B
}
