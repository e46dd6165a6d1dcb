// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

// Info holds all information required to number the equations of an element
type Info struct {
	Dofs [][]string        // solution variables PER NODE. ex for 2 nodes: [["ux", "uy"], ["ux", "uy"]]
	Y2F  map[string]string // maps "y" keys to "f" keys. ex: "ux" => "fx", "pl" => "ql"

	// t1 and t2 variables (time-derivatives of first and second order)
	T1vars []string // "pl"
	T2vars []string // "ux", "uy"
}

// Ukeys returns the displacement keys
func Ukeys(ndim int) []string {
	if ndim == 3 {
		return []string{"ux", "uy", "uz"}
	}
	return []string{"ux", "uy"}
}

// Y2F returns the map of solution keys to force keys
func Y2F(ndim int, withP bool) map[string]string {
	m := map[string]string{"ux": "fx", "uy": "fy"}
	if ndim == 3 {
		m["uz"] = "fz"
	}
	if withP {
		m["pl"] = "ql"
	}
	return m
}
