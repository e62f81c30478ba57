// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

// register triangles
func init() {

	// tri3 (linear triangle)
	//        2
	//        | \
	//        |   \
	//        0 --- 1
	tri3 := &Shape{
		Type:   "tri3",
		Gndim:  2,
		Nverts: 3,
		NatCoords: [][]float64{
			{0, 1, 0},
			{0, 0, 1},
		},
		Ips: []Ipoint{
			{1.0 / 6.0, 1.0 / 6.0, 0, 1.0 / 6.0},
			{2.0 / 3.0, 1.0 / 6.0, 0, 1.0 / 6.0},
			{1.0 / 6.0, 2.0 / 3.0, 0, 1.0 / 6.0},
		},
	}
	tri3.Func = func(S []float64, dSdR [][]float64, rv []float64, derivs bool) {
		r, s := rv[0], rv[1]
		S[0] = 1.0 - r - s
		S[1] = r
		S[2] = s
		if !derivs {
			return
		}
		dSdR[0][0], dSdR[0][1] = -1.0, -1.0
		dSdR[1][0], dSdR[1][1] = 1.0, 0.0
		dSdR[2][0], dSdR[2][1] = 0.0, 1.0
	}
	factory["tri3"] = tri3

	// tri6 (quadratic triangle). Edge nodes: 3 on 0-1, 4 on 1-2, 5 on 2-0
	//        2
	//        | \
	//        5   4
	//        |     \
	//        0 - 3 - 1
	tri6 := &Shape{
		Type:   "tri6",
		Gndim:  2,
		Nverts: 6,
		NatCoords: [][]float64{
			{0, 1, 0, 0.5, 0.5, 0.0},
			{0, 0, 1, 0.0, 0.5, 0.5},
		},
		Ips: []Ipoint{
			{1.0 / 6.0, 1.0 / 6.0, 0, 1.0 / 6.0},
			{2.0 / 3.0, 1.0 / 6.0, 0, 1.0 / 6.0},
			{1.0 / 6.0, 2.0 / 3.0, 0, 1.0 / 6.0},
		},
	}
	tri6.Func = func(S []float64, dSdR [][]float64, rv []float64, derivs bool) {
		r, s := rv[0], rv[1]
		u := 1.0 - r - s
		S[0] = u * (2.0*u - 1.0)
		S[1] = r * (2.0*r - 1.0)
		S[2] = s * (2.0*s - 1.0)
		S[3] = 4.0 * u * r
		S[4] = 4.0 * r * s
		S[5] = 4.0 * s * u
		if !derivs {
			return
		}
		dSdR[0][0], dSdR[0][1] = 1.0-4.0*u, 1.0-4.0*u
		dSdR[1][0], dSdR[1][1] = 4.0*r-1.0, 0.0
		dSdR[2][0], dSdR[2][1] = 0.0, 4.0*s-1.0
		dSdR[3][0], dSdR[3][1] = 4.0*(u-r), -4.0*r
		dSdR[4][0], dSdR[4][1] = 4.0*s, 4.0*r
		dSdR[5][0], dSdR[5][1] = -4.0*s, 4.0*(u-s)
	}
	factory["tri6"] = tri6
}
