// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/num"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// checkShape checks that shape functions evaluate to 1.0 @ their node and
// 0.0 @ all other nodes
func checkShape(tst *testing.T, shape *Shape, tol float64) {
	errS := 0.0
	r := []float64{0, 0, 0}
	for n := 0; n < shape.Nverts; n++ {
		for i := 0; i < shape.Gndim; i++ {
			r[i] = shape.NatCoords[i][n]
		}
		shape.Func(shape.S, shape.DSdR, r, false)
		for m := 0; m < shape.Nverts; m++ {
			if n == m {
				errS += math.Abs(shape.S[m] - 1.0)
			} else {
				errS += math.Abs(shape.S[m])
			}
		}
	}
	if errS > tol {
		tst.Errorf("%s shape function failed with err = %g", shape.Type, errS)
	}
}

// checkDerivs compares analytical dSdR with central differences
func checkDerivs(tst *testing.T, shape *Shape, r []float64, tol float64) {
	rtmp := []float64{r[0], r[1], r[2]}
	for n := 0; n < shape.Nverts; n++ {
		for i := 0; i < shape.Gndim; i++ {
			shape.Func(shape.S, shape.DSdR, r, true)
			ana := shape.DSdR[n][i]
			dnum, _ := num.DerivCentral(func(x float64, args ...interface{}) float64 {
				copy(rtmp, r)
				rtmp[i] = x
				shape.Func(shape.S, shape.DSdR, rtmp, false)
				return shape.S[n]
			}, r[i], 1e-3)
			chk.AnaNum(tst, io.Sf("%s dS%d/dR%d", shape.Type, n, i), tol, ana, dnum, chk.Verbose)
		}
	}
}

// checkPartitionOfUnity verifies Σ S = 1 at an interior point
func checkPartitionOfUnity(tst *testing.T, shape *Shape, r []float64, tol float64) {
	shape.Func(shape.S, shape.DSdR, r, false)
	sum := 0.0
	for _, s := range shape.S {
		sum += s
	}
	chk.Float64(tst, shape.Type+" ΣS", tol, sum, 1.0)
}

func Test_shape01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("shape01. nodal values, unity and derivatives")

	rint := map[int][]float64{
		2: {0.22, 0.31, 0},
		3: {0.2, 0.27, 0.19},
	}
	for _, name := range []string{"tri3", "tri6", "tet4", "tet10"} {
		shape := Get(name)
		if shape == nil {
			tst.Errorf("cannot get shape %q", name)
			return
		}
		checkShape(tst, shape, 1e-14)
		checkPartitionOfUnity(tst, shape, rint[shape.Gndim], 1e-14)
		checkDerivs(tst, shape, rint[shape.Gndim], 1e-7)
	}
}

func Test_shape02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("shape02. integration point weights")

	// triangle rules integrate the unit-triangle area (1/2)
	for _, name := range []string{"tri3", "tri6"} {
		shape := Get(name)
		sum := 0.0
		for _, ip := range shape.Ips {
			sum += ip.W
		}
		chk.Float64(tst, name+" Σw", 1e-15, sum, 0.5)
	}

	// tetrahedron rules integrate the unit-tet volume (1/6)
	for _, name := range []string{"tet4", "tet10"} {
		shape := Get(name)
		sum := 0.0
		for _, ip := range shape.Ips {
			sum += ip.W
		}
		chk.Float64(tst, name+" Σw", 1e-15, sum, 1.0/6.0)
	}
}

func Test_shape03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("shape03. Jacobian of a stretched tri3")

	// right triangle with legs 2 and 3: J = det(dxdR) = 6, G rows match the
	// constant gradients of the linear interpolation
	x := [][]float64{
		{0, 2, 0},
		{0, 0, 3},
	}
	shape := Get("tri3")
	err := shape.CalcAtIp(x, shape.Ips[0], true)
	if err != nil {
		tst.Errorf("CalcAtIp failed:\n%v", err)
		return
	}
	chk.Float64(tst, "J", 1e-14, shape.J, 6.0)
	chk.Array(tst, "G0", 1e-14, shape.G[0], []float64{-0.5, -1.0 / 3.0})
	chk.Array(tst, "G1", 1e-14, shape.G[1], []float64{0.5, 0})
	chk.Array(tst, "G2", 1e-14, shape.G[2], []float64{0, 1.0 / 3.0})
}
