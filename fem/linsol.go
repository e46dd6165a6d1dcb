// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"errors"
	"math"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
)

// LinSol solves the dense linear systems of the Newton iterations by LU decomposition
type LinSol struct {
	lu  mat.LU        // factors
	x   *mat.VecDense // solution
	ok  bool          // factorisation is available
	neq int           // size
}

// Fact performs the factorisation of A
func (o *LinSol) Fact(A *mat.Dense) (err error) {
	n, m := A.Dims()
	if n != m || n == 0 {
		return chk.Err("linear solver: matrix must be square and non-empty. %d x %d is invalid", n, m)
	}
	o.lu.Factorize(A)
	if math.IsInf(o.lu.Cond(), 1) {
		o.ok = false
		return chk.Err("linear solver: matrix is singular")
	}
	if o.neq != n {
		o.x = mat.NewVecDense(n, nil)
		o.neq = n
	}
	o.ok = true
	return
}

// Solve solves A・x = b using the last factorisation; x and b may not be the same slice.
// An ill-conditioned matrix is accepted as long as the solution is finite
func (o *LinSol) Solve(x, b []float64) (err error) {
	if !o.ok {
		return chk.Err("linear solver: factorisation must be performed first")
	}
	err = o.lu.SolveVecTo(o.x, false, mat.NewVecDense(len(b), b))
	if err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return chk.Err("linear solver failed:\n%v", err)
		}
	}
	for i := 0; i < o.neq; i++ {
		x[i] = o.x.AtVec(i)
		if math.IsNaN(x[i]) || math.IsInf(x[i], 0) {
			return chk.Err("linear solver: solution is not finite at equation %d", i)
		}
	}
	return nil
}
