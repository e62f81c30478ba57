// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geo

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/neekonsu/mcw-mems-photonic-switch/inp"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func defaultBeam() *inp.BeamSpec {
	var sim inp.Simulation
	sim.SetDefault()
	return &sim.Beam
}

func Test_profile01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("profile01. half-beam endpoints and tangents")

	b := defaultBeam()
	p, err := NewHalf(b, 401)
	if err != nil {
		tst.Errorf("NewHalf failed:\n%v", err)
		return
	}

	// endpoints
	n := len(p.X)
	chk.Float64(tst, "y(0)", 1e-14, p.Y[0], 0)
	chk.Float64(tst, "y(L)", 1e-12, p.Y[n-1], b.InitialOffset)

	// horizontal tangents at both ends (first-order estimate over one sample)
	dx := p.X[1] - p.X[0]
	chk.Float64(tst, "dy/dx(0)", 1e-3, (p.Y[1]-p.Y[0])/dx, 0)
	chk.Float64(tst, "dy/dx(L)", 1e-3, (p.Y[n-1]-p.Y[n-2])/dx, 0)

	// monotonic rise
	for i := 1; i < n; i++ {
		if p.Y[i] < p.Y[i-1]-1e-14 {
			tst.Errorf("centerline must rise monotonically: y[%d]=%g < y[%d]=%g", i, p.Y[i], i-1, p.Y[i-1])
			return
		}
	}

	// slope continuity across section boundaries: max |Δslope| between
	// adjacent sample intervals must scale with dx (no kinks)
	maxJump := 0.0
	for i := 1; i < n-1; i++ {
		s0 := (p.Y[i] - p.Y[i-1]) / dx
		s1 := (p.Y[i+1] - p.Y[i]) / dx
		if j := math.Abs(s1 - s0); j > maxJump {
			maxJump = j
		}
	}
	if maxJump > 0.05*b.InitialOffset/b.Span*10 {
		tst.Errorf("centerline has a slope discontinuity: max inter-sample slope jump = %g", maxJump)
	}
}

func Test_profile02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("profile02. width profile and I(x)")

	b := defaultBeam()
	p, err := NewHalf(b, 401)
	if err != nil {
		tst.Errorf("NewHalf failed:\n%v", err)
		return
	}

	// flat segments
	chk.Float64(tst, "w(0)", 1e-15, p.W[0], b.FlexWidth)
	chk.Float64(tst, "w(L)", 1e-15, p.W[len(p.W)-1], b.RigidWidth)

	// I(x) consistency and bounds
	ct := b.Thickness * b.Thickness * b.Thickness / 12.0
	for i, w := range p.W {
		if w < b.FlexWidth-1e-14 || w > b.RigidWidth+1e-14 {
			tst.Errorf("width out of bounds at x=%g: w=%g", p.X[i], w)
			return
		}
		chk.Float64(tst, io.Sf("I(%g)", p.X[i]), 1e-15, p.I[i], w*ct)
	}
}

func Test_profile03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("profile03. full profile symmetry and closed polygon")

	b := defaultBeam()
	p, err := NewFull(b, 401)
	if err != nil {
		tst.Errorf("NewFull failed:\n%v", err)
		return
	}

	// symmetry about the center
	n := len(p.X)
	for i := 0; i < n/2; i++ {
		j := n - 1 - i
		chk.Float64(tst, "x sym", 1e-12, p.X[i], p.Span-p.X[j])
		chk.Float64(tst, "y sym", 1e-12, p.Y[i], p.Y[j])
		chk.Float64(tst, "w sym", 1e-12, p.W[i], p.W[j])
	}

	// apex at center
	chk.Float64(tst, "y(center)", 1e-12, p.Y[n/2], b.InitialOffset)

	// polygon closes and has 2n+1 points
	poly := p.Polygon()
	chk.IntAssert(len(poly), 2*n+1)
	chk.Array(tst, "closure", 1e-15, poly[0], poly[len(poly)-1])
}

func Test_profile04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("profile04. malformed spec fails before geometry")

	b := defaultBeam()
	b.Span = -1
	if _, err := NewHalf(b, 100); err == nil {
		tst.Errorf("negative span must be rejected")
	}
}
