// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"errors"
	"fmt"
)

// failure codes. check with errors.Is
var (
	// ErrConfig flags malformed input: uninitialised motion, layers without elements, invalid layering
	ErrConfig = errors.New("configuration error")

	// ErrExhausted flags that the recursive bisection of time steps went beyond the maximum depth
	ErrExhausted = errors.New("time step bisection exhausted")
)

// errNoConvergence flags a single step that did not converge. it is recovered by the Driver
var errNoConvergence = errors.New("iterations did not converge")

// configErr returns a new error wrapping ErrConfig
func configErr(msg string, prm ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrConfig, fmt.Sprintf(msg, prm...))
}
