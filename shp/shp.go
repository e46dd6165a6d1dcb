// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package shp implements isoparametric shape functions for quadrilaterals and hexahedra
package shp

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// ShpFunc is the shape functions callback function
type ShpFunc func(S []float64, dSdR [][]float64, r []float64, derivs bool)

// Shape holds geometry data
type Shape struct {

	// geometry
	Type      string      // name; e.g. "qua4"
	Func      ShpFunc     // shape/derivs function callback function
	Gndim     int         // geometry of shape; space dimension
	Nverts    int         // number of vertices in cell
	NatCoords [][]float64 // [gndim][nverts] natural coordinates of vertices

	// scratchpad: volume
	S    []float64   // [nverts] shape functions
	G    [][]float64 // [nverts][gndim] G == dSdx. derivative of shape function
	J    float64     // Jacobian: determinant of dxdr
	DSdR [][]float64 // [nverts][gndim] derivatives of S w.r.t natural coordinates
	DxdR [][]float64 // [gndim][gndim] derivatives of real coordinates w.r.t natural coordinates
	DRdx [][]float64 // [gndim][gndim] derivatives of natural coordinates w.r.t real coordinates
}

// Ipoint holds integration point data: natural coordinates and weight
type Ipoint struct {
	R, S, T, W float64
}

// Get returns a new Shape structure
func Get(geoType string) *Shape {
	var o Shape
	switch geoType {
	case "qua4":
		o.Func, o.Gndim, o.Nverts = Qua4, 2, 4
		o.NatCoords = [][]float64{
			{-1, 1, 1, -1},
			{-1, -1, 1, 1},
		}
	case "hex8":
		o.Func, o.Gndim, o.Nverts = Hex8, 3, 8
		o.NatCoords = [][]float64{
			{-1, 1, 1, -1, -1, 1, 1, -1},
			{-1, -1, 1, 1, -1, -1, 1, 1},
			{-1, -1, -1, -1, 1, 1, 1, 1},
		}
	default:
		return nil
	}
	o.Type = geoType
	o.S = make([]float64, o.Nverts)
	o.DSdR = alloc(o.Nverts, o.Gndim)
	o.G = alloc(o.Nverts, o.Gndim)
	o.DxdR = alloc(o.Gndim, o.Gndim)
	o.DRdx = alloc(o.Gndim, o.Gndim)
	return &o
}

// GaussIps returns the 2×2 (qua4) or 2×2×2 (hex8) Gauss points
func (o *Shape) GaussIps() (ips []Ipoint) {
	a := 1.0 / math.Sqrt(3.0)
	if o.Gndim == 2 {
		for _, s := range []float64{-a, a} {
			for _, r := range []float64{-a, a} {
				ips = append(ips, Ipoint{r, s, 0, 1})
			}
		}
		return
	}
	for _, t := range []float64{-a, a} {
		for _, s := range []float64{-a, a} {
			for _, r := range []float64{-a, a} {
				ips = append(ips, Ipoint{r, s, t, 1})
			}
		}
	}
	return
}

// CalcAtIp calculates volume data such as S and G at natural coordinate r
//  Input:
//   x[ndim][nverts] -- coordinates matrix of solid element
//   ip              -- integration point
//  Output:
//   S, DSdR, DxdR, DRdx, G, and J
func (o *Shape) CalcAtIp(x [][]float64, ip Ipoint, derivs bool) (err error) {

	// S and dSdR
	r := []float64{ip.R, ip.S, ip.T}
	o.Func(o.S, o.DSdR, r, derivs)
	if !derivs {
		return
	}

	// dxdR := sum_n x * dSdR   =>  dx_i/dR_j = sum_n x^n_i * dS^n/dR_j
	for i := 0; i < len(x); i++ {
		for j := 0; j < o.Gndim; j++ {
			o.DxdR[i][j] = 0.0
			for n := 0; n < o.Nverts; n++ {
				o.DxdR[i][j] += x[i][n] * o.DSdR[n][j]
			}
		}
	}

	// dRdx := inv(dxdR)
	o.J, err = inverse(o.DRdx, o.DxdR)
	if err != nil {
		return
	}
	if o.J <= 0 {
		return chk.Err("%s: Jacobian determinant is not positive: J = %g", o.Type, o.J)
	}

	// G == dSdx := dSdR * dRdx  =>  dS^m/dR_i := sum_i dS^m/dR_i * dR_i/dx_j
	for m := 0; m < o.Nverts; m++ {
		for j := 0; j < o.Gndim; j++ {
			o.G[m][j] = 0
			for i := 0; i < o.Gndim; i++ {
				o.G[m][j] += o.DSdR[m][i] * o.DRdx[i][j]
			}
		}
	}
	return
}

// shape functions ////////////////////////////////////////////////////////////////////////////////

// Qua4 calculates the shape functions (S) and derivatives of shape functions (dSdR) of qua4
// elements at {r,s} natural coordinates
//   3-----------2
//   |     s     |
//   |     |     |
//   |     +--r  |
//   |           |
//   0-----------1
func Qua4(S []float64, dSdR [][]float64, R []float64, derivs bool) {
	r, s := R[0], R[1]
	S[0] = (1.0 - r - s + r*s) / 4.0
	S[1] = (1.0 + r - s - r*s) / 4.0
	S[2] = (1.0 + r + s + r*s) / 4.0
	S[3] = (1.0 - r + s - r*s) / 4.0
	if !derivs {
		return
	}
	dSdR[0][0], dSdR[0][1] = (-1.0+s)/4.0, (-1.0+r)/4.0
	dSdR[1][0], dSdR[1][1] = (+1.0-s)/4.0, (-1.0-r)/4.0
	dSdR[2][0], dSdR[2][1] = (+1.0+s)/4.0, (+1.0+r)/4.0
	dSdR[3][0], dSdR[3][1] = (-1.0-s)/4.0, (+1.0-r)/4.0
}

// Hex8 calculates the shape functions (S) and derivatives of shape functions (dSdR) of hex8
// elements at {r,s,t} natural coordinates
func Hex8(S []float64, dSdR [][]float64, R []float64, derivs bool) {
	r, s, t := R[0], R[1], R[2]
	rn := []float64{-1, 1, 1, -1, -1, 1, 1, -1}
	sn := []float64{-1, -1, 1, 1, -1, -1, 1, 1}
	tn := []float64{-1, -1, -1, -1, 1, 1, 1, 1}
	for n := 0; n < 8; n++ {
		a, b, c := 1.0+rn[n]*r, 1.0+sn[n]*s, 1.0+tn[n]*t
		S[n] = a * b * c / 8.0
		if derivs {
			dSdR[n][0] = rn[n] * b * c / 8.0
			dSdR[n][1] = a * sn[n] * c / 8.0
			dSdR[n][2] = a * b * tn[n] / 8.0
		}
	}
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////////

func alloc(m, n int) (a [][]float64) {
	a = make([][]float64, m)
	for i := range a {
		a[i] = make([]float64, n)
	}
	return
}

// inverse computes the inverse of 2×2 or 3×3 matrices and returns the determinant
func inverse(ai, a [][]float64) (det float64, err error) {
	switch len(a) {
	case 2:
		det = a[0][0]*a[1][1] - a[0][1]*a[1][0]
		if math.Abs(det) < 1e-14 {
			return det, chk.Err("cannot invert 2×2 matrix with zero determinant")
		}
		ai[0][0], ai[0][1] = a[1][1]/det, -a[0][1]/det
		ai[1][0], ai[1][1] = -a[1][0]/det, a[0][0]/det
	case 3:
		det = a[0][0]*(a[1][1]*a[2][2]-a[1][2]*a[2][1]) -
			a[0][1]*(a[1][0]*a[2][2]-a[1][2]*a[2][0]) +
			a[0][2]*(a[1][0]*a[2][1]-a[1][1]*a[2][0])
		if math.Abs(det) < 1e-14 {
			return det, chk.Err("cannot invert 3×3 matrix with zero determinant")
		}
		ai[0][0] = (a[1][1]*a[2][2] - a[1][2]*a[2][1]) / det
		ai[0][1] = (a[0][2]*a[2][1] - a[0][1]*a[2][2]) / det
		ai[0][2] = (a[0][1]*a[1][2] - a[0][2]*a[1][1]) / det
		ai[1][0] = (a[1][2]*a[2][0] - a[1][0]*a[2][2]) / det
		ai[1][1] = (a[0][0]*a[2][2] - a[0][2]*a[2][0]) / det
		ai[1][2] = (a[0][2]*a[1][0] - a[0][0]*a[1][2]) / det
		ai[2][0] = (a[1][0]*a[2][1] - a[1][1]*a[2][0]) / det
		ai[2][1] = (a[0][1]*a[2][0] - a[0][0]*a[2][1]) / det
		ai[2][2] = (a[0][0]*a[1][1] - a[0][1]*a[1][0]) / det
	default:
		return 0, chk.Err("inverse is only available for 2×2 and 3×3 matrices")
	}
	return
}
