// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package geo computes centerline, width and second-moment profiles of CCS
// (centrally-clamped stepped) bistable beams, plus the closed polygon outline
// consumed by the mesh builder.
package geo

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"

	"github.com/neekonsu/mcw-mems-photonic-switch/inp"
)

// Profile holds the sampled geometry of a beam centerline. All slices are
// co-indexed. A Profile is computed once per BeamSpec and never modified.
type Profile struct {
	Span      float64   // total x-extent of this profile [µm]
	Thickness float64   // structural thickness [µm]
	X         []float64 // [n] centerline x-samples
	Y         []float64 // [n] centerline y-samples
	W         []float64 // [n] width profile w(x)
	I         []float64 // [n] second moment of area I(x) = w·t³/12
}

// NewHalf computes the half-beam profile: anchor at (0,0), shuttle attachment
// at (Span, InitialOffset), horizontal tangent at both ends. The centerline
// is C1: a cosine rise over the flex segment, a straight rigid segment, and a
// cosine flattening into the shuttle. The cosine amplitude A follows from
// matching position and slope at the section boundaries:
//
//	A = h / (2 + π(L-2Lf)/(2Lf)),  slope = Aπ/(2Lf)
func NewHalf(b *inp.BeamSpec, npts int) (o *Profile, err error) {
	if err = b.Validate(); err != nil {
		return
	}
	if npts < 10 {
		return nil, chk.Err("geo: at least 10 sample points are required: npts=%d", npts)
	}

	// section lengths and C1 cosine amplitude
	L := b.Span
	h := b.InitialOffset
	Lf := b.FlexRatio * L
	A := h / (2.0 + math.Pi*(L-2.0*Lf)/(2.0*Lf))
	slope := A * math.Pi / (2.0 * Lf)

	o = new(Profile)
	o.Span = L
	o.Thickness = b.Thickness
	o.X = utl.LinSpace(0, L, npts)
	o.Y = make([]float64, npts)
	for i, x := range o.X {
		switch {
		case x <= Lf:
			o.Y[i] = A * (1.0 - math.Cos(math.Pi*x/(2.0*Lf)))
		case x < L-Lf:
			o.Y[i] = A + slope*(x-Lf)
		default:
			o.Y[i] = h - A*(1.0-math.Cos(math.Pi*(L-x)/(2.0*Lf)))
		}
	}
	o.setWidths(b)
	return
}

// NewFull computes the doubly-clamped profile: two mirrored half-beams joined
// at the shuttle attachment, spanning [0, 2·Span] with anchors at both ends.
// The centerline and width are symmetric about the center; the junction is C1
// because both halves arrive horizontally.
func NewFull(b *inp.BeamSpec, npts int) (o *Profile, err error) {
	half, err := NewHalf(b, (npts+1)/2)
	if err != nil {
		return
	}
	n := len(half.X)
	L2 := 2.0 * b.Span
	o = new(Profile)
	o.Span = L2
	o.Thickness = b.Thickness
	for i := 0; i < n; i++ {
		o.X = append(o.X, half.X[i])
		o.Y = append(o.Y, half.Y[i])
		o.W = append(o.W, half.W[i])
		o.I = append(o.I, half.I[i])
	}
	for i := n - 2; i >= 0; i-- { // mirror, skipping the shared center sample
		o.X = append(o.X, L2-half.X[i])
		o.Y = append(o.Y, half.Y[i])
		o.W = append(o.W, half.W[i])
		o.I = append(o.I, half.I[i])
	}
	return
}

// setWidths fills W and I with the stepped width profile: flex width near the
// anchor, rigid width towards the shuttle, blended by a cosine taper centred
// on the flex-rigid junction so w(x) is C1
func (o *Profile) setWidths(b *inp.BeamSpec) {
	Lf := b.FlexRatio * b.Span
	t0 := Lf - b.TaperLength/2.0
	t1 := Lf + b.TaperLength/2.0
	o.W = make([]float64, len(o.X))
	o.I = make([]float64, len(o.X))
	ct := b.Thickness * b.Thickness * b.Thickness / 12.0
	for i, x := range o.X {
		var w float64
		switch {
		case x <= t0:
			w = b.FlexWidth
		case x < t1:
			s := (x - t0) / b.TaperLength
			w = b.FlexWidth + (b.RigidWidth-b.FlexWidth)*0.5*(1.0-math.Cos(math.Pi*s))
		default:
			w = b.RigidWidth
		}
		o.W[i] = w
		o.I[i] = w * ct
	}
}

// Outline returns the upper and lower beam edges, offset by ±w/2 from the
// centerline, co-indexed with the profile samples
func (o *Profile) Outline() (upper, lower [][]float64) {
	n := len(o.X)
	upper = make([][]float64, n)
	lower = make([][]float64, n)
	for i := 0; i < n; i++ {
		upper[i] = []float64{o.X[i], o.Y[i] + o.W[i]/2.0}
		lower[i] = []float64{o.X[i], o.Y[i] - o.W[i]/2.0}
	}
	return
}

// Polygon returns the closed outline (upper edge left-to-right, lower edge
// right-to-left; first point repeated at the end), suitable for triangulation
func (o *Profile) Polygon() (poly [][]float64) {
	upper, lower := o.Outline()
	poly = append(poly, upper...)
	for i := len(lower) - 1; i >= 0; i-- {
		poly = append(poly, lower[i])
	}
	poly = append(poly, []float64{upper[0][0], upper[0][1]})
	return
}

// Interp returns centerline y, width and second moment at an arbitrary x by
// linear interpolation over the samples
func (o *Profile) Interp(x float64) (y, w, momI float64) {
	n := len(o.X)
	if x <= o.X[0] {
		return o.Y[0], o.W[0], o.I[0]
	}
	if x >= o.X[n-1] {
		return o.Y[n-1], o.W[n-1], o.I[n-1]
	}
	// samples are uniformly spaced
	dx := o.X[1] - o.X[0]
	i := int(x / dx)
	if i > n-2 {
		i = n - 2
	}
	s := (x - o.X[i]) / (o.X[i+1] - o.X[i])
	y = o.Y[i] + s*(o.Y[i+1]-o.Y[i])
	w = o.W[i] + s*(o.W[i+1]-o.W[i])
	momI = o.I[i] + s*(o.I[i+1]-o.I[i])
	return
}
