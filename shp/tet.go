// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

// register tetrahedra
func init() {

	// 4-point rule, degree 2
	a := 0.58541019662496845446
	b := 0.13819660112501051518
	w := 1.0 / 24.0
	ips4 := []Ipoint{
		{b, b, b, w},
		{a, b, b, w},
		{b, a, b, w},
		{b, b, a, w},
	}

	// tet4 (linear tetrahedron)
	tet4 := &Shape{
		Type:   "tet4",
		Gndim:  3,
		Nverts: 4,
		NatCoords: [][]float64{
			{0, 1, 0, 0},
			{0, 0, 1, 0},
			{0, 0, 0, 1},
		},
		Ips: ips4,
	}
	tet4.Func = func(S []float64, dSdR [][]float64, rv []float64, derivs bool) {
		r, s, t := rv[0], rv[1], rv[2]
		S[0] = 1.0 - r - s - t
		S[1] = r
		S[2] = s
		S[3] = t
		if !derivs {
			return
		}
		dSdR[0][0], dSdR[0][1], dSdR[0][2] = -1.0, -1.0, -1.0
		dSdR[1][0], dSdR[1][1], dSdR[1][2] = 1.0, 0.0, 0.0
		dSdR[2][0], dSdR[2][1], dSdR[2][2] = 0.0, 1.0, 0.0
		dSdR[3][0], dSdR[3][1], dSdR[3][2] = 0.0, 0.0, 1.0
	}
	factory["tet4"] = tet4

	// tet10 (quadratic tetrahedron). Edge nodes:
	//   4 on 0-1, 5 on 1-2, 6 on 2-0, 7 on 0-3, 8 on 1-3, 9 on 2-3
	tet10 := &Shape{
		Type:   "tet10",
		Gndim:  3,
		Nverts: 10,
		NatCoords: [][]float64{
			{0, 1, 0, 0, 0.5, 0.5, 0.0, 0.0, 0.5, 0.0},
			{0, 0, 1, 0, 0.0, 0.5, 0.5, 0.0, 0.0, 0.5},
			{0, 0, 0, 1, 0.0, 0.0, 0.0, 0.5, 0.5, 0.5},
		},
		Ips: ips4,
	}
	tet10.Func = func(S []float64, dSdR [][]float64, rv []float64, derivs bool) {
		r, s, t := rv[0], rv[1], rv[2]
		u := 1.0 - r - s - t
		S[0] = u * (2.0*u - 1.0)
		S[1] = r * (2.0*r - 1.0)
		S[2] = s * (2.0*s - 1.0)
		S[3] = t * (2.0*t - 1.0)
		S[4] = 4.0 * u * r
		S[5] = 4.0 * r * s
		S[6] = 4.0 * s * u
		S[7] = 4.0 * u * t
		S[8] = 4.0 * r * t
		S[9] = 4.0 * s * t
		if !derivs {
			return
		}
		dSdR[0][0], dSdR[0][1], dSdR[0][2] = 1.0-4.0*u, 1.0-4.0*u, 1.0-4.0*u
		dSdR[1][0], dSdR[1][1], dSdR[1][2] = 4.0*r-1.0, 0.0, 0.0
		dSdR[2][0], dSdR[2][1], dSdR[2][2] = 0.0, 4.0*s-1.0, 0.0
		dSdR[3][0], dSdR[3][1], dSdR[3][2] = 0.0, 0.0, 4.0*t-1.0
		dSdR[4][0], dSdR[4][1], dSdR[4][2] = 4.0*(u-r), -4.0*r, -4.0*r
		dSdR[5][0], dSdR[5][1], dSdR[5][2] = 4.0*s, 4.0*r, 0.0
		dSdR[6][0], dSdR[6][1], dSdR[6][2] = -4.0*s, 4.0*(u-s), -4.0*s
		dSdR[7][0], dSdR[7][1], dSdR[7][2] = -4.0*t, -4.0*t, 4.0*(u-t)
		dSdR[8][0], dSdR[8][1], dSdR[8][2] = 4.0*t, 0.0, 4.0*r
		dSdR[9][0], dSdR[9][1], dSdR[9][2] = 0.0, 4.0*t, 4.0*s
	}
	factory["tet10"] = tet10
}
