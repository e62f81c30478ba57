// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package shp implements shape functions and integration points for the
// element families used by the structural solver: linear and quadratic
// triangles (plane problems) and tetrahedra (extruded problems)
package shp

import (
	"github.com/cpmech/gosl/la"
)

// MINDET is the minimum determinant allowed for the coordinate Jacobian
const MINDET = 1.0e-14

// Ipoint holds one integration point: natural coordinates and weight
type Ipoint struct {
	R, S, T, W float64
}

// ShpFunc evaluates shape functions and, if derivs is true, their
// derivatives with respect to natural coordinates
type ShpFunc func(S []float64, dSdR [][]float64, r []float64, derivs bool)

// Shape holds the geometry definition of one element family together with a
// scratchpad for evaluations at integration points
type Shape struct {

	// geometry
	Type      string      // name; e.g. "tri3"
	Func      ShpFunc     // shape/derivs callback
	Gndim     int         // natural-space dimension; 2 for triangles, 3 for tetrahedra
	Nverts    int         // number of vertices
	NatCoords [][]float64 // natural coordinates of vertices [gndim][nverts]
	Ips       []Ipoint    // default integration points

	// scratchpad
	S    []float64   // [nverts] shape function values
	DSdR [][]float64 // [nverts][gndim] derivatives w.r.t natural coordinates
	DxdR [][]float64 // [gndim][gndim] coordinate Jacobian matrix
	DRdx [][]float64 // [gndim][gndim] inverse of DxdR
	G    [][]float64 // [nverts][gndim] derivatives w.r.t real coordinates
	J    float64     // determinant of DxdR
	rvec []float64   // [3] natural coordinates buffer
}

// factory holds all shapes available
var factory = make(map[string]*Shape)

// Get returns a fresh Shape structure with its own scratchpad.
// Returns nil if geoType is unknown.
func Get(geoType string) *Shape {
	s, ok := factory[geoType]
	if !ok {
		return nil
	}
	p := new(Shape)
	p.Type = s.Type
	p.Func = s.Func
	p.Gndim = s.Gndim
	p.Nverts = s.Nverts
	p.NatCoords = la.MatClone(s.NatCoords)
	p.Ips = make([]Ipoint, len(s.Ips))
	copy(p.Ips, s.Ips)
	p.initScratchpad()
	return p
}

// CalcAtIp calculates S, G and J at one integration point
//
//	x[ndim][nverts] -- matrix of nodal coordinates
func (o *Shape) CalcAtIp(x [][]float64, ip Ipoint, derivs bool) (err error) {
	o.rvec[0], o.rvec[1], o.rvec[2] = ip.R, ip.S, ip.T
	return o.CalcAtR(x, o.rvec, derivs)
}

// CalcAtR calculates S, G and J at natural coordinates r
func (o *Shape) CalcAtR(x [][]float64, r []float64, derivs bool) (err error) {

	// S and dSdR
	o.Func(o.S, o.DSdR, r, derivs)
	if !derivs {
		return
	}

	// dxdR := sum_n x * dSdR  =>  dx_i/dR_j := sum_n x^n_i * dS^n/dR_j
	for i := 0; i < o.Gndim; i++ {
		for j := 0; j < o.Gndim; j++ {
			o.DxdR[i][j] = 0.0
			for n := 0; n < o.Nverts; n++ {
				o.DxdR[i][j] += x[i][n] * o.DSdR[n][j]
			}
		}
	}

	// dRdx := inv(dxdR) and J
	o.J, err = la.MatInv(o.DRdx, o.DxdR, MINDET)
	if err != nil {
		return
	}

	// G == dSdx := dSdR * dRdx
	la.MatMul(o.G, 1, o.DSdR, o.DRdx)
	return
}

// IpRealCoords returns the real coordinates of an integration point
func (o *Shape) IpRealCoords(x [][]float64, ip Ipoint) (y []float64) {
	ndim := len(x)
	y = make([]float64, ndim)
	o.rvec[0], o.rvec[1], o.rvec[2] = ip.R, ip.S, ip.T
	o.Func(o.S, o.DSdR, o.rvec, false)
	for i := 0; i < ndim; i++ {
		for m := 0; m < o.Nverts; m++ {
			y[i] += o.S[m] * x[i][m]
		}
	}
	return
}

// initScratchpad allocates the evaluation buffers
func (o *Shape) initScratchpad() {
	o.S = make([]float64, o.Nverts)
	o.DSdR = la.MatAlloc(o.Nverts, o.Gndim)
	o.DxdR = la.MatAlloc(o.Gndim, o.Gndim)
	o.DRdx = la.MatAlloc(o.Gndim, o.Gndim)
	o.G = la.MatAlloc(o.Nverts, o.Gndim)
	o.rvec = make([]float64, 3)
}
