// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msh

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Sets holds the boundary vertex sets referenced by boundary conditions.
// Every set present must be non-empty; an empty set referenced downstream is
// a configuration error, never a silently-zero constraint.
type Sets struct {
	Anchor      []int // clamped vertices at the left end (x = xmin)
	AnchorRight []int // clamped vertices at the right end (full-beam only)
	Shuttle     []int // vertices receiving the prescribed displacement
}

// HalfBeamSets classifies vertices of a half-beam mesh by coordinate
// proximity: the anchor at the minimum-x face and the shuttle at the
// maximum-x face
func (o *Mesh) HalfBeamSets(tol float64) (s *Sets, err error) {
	xmin, xmax := o.xrange()
	s = new(Sets)
	for _, v := range o.Verts {
		switch {
		case v.C[0] < xmin+tol:
			s.Anchor = append(s.Anchor, v.Id)
		case v.C[0] > xmax-tol:
			s.Shuttle = append(s.Shuttle, v.Id)
		}
	}
	if err = s.check(tol, false); err != nil {
		return nil, err
	}
	return
}

// FullBeamSets classifies vertices of a doubly-clamped mesh: anchors at both
// x-extremes and the shuttle attachment at the axial station nearest to
// mid-span (the mesher is not required to place a station exactly there)
func (o *Mesh) FullBeamSets(tol float64) (s *Sets, err error) {
	xmin, xmax := o.xrange()
	xmid := (xmin + xmax) / 2.0
	xc, dmin := xmid, math.Inf(1)
	for _, v := range o.Verts {
		if d := math.Abs(v.C[0] - xmid); d < dmin {
			dmin = d
			xc = v.C[0]
		}
	}
	s = new(Sets)
	for _, v := range o.Verts {
		switch {
		case v.C[0] < xmin+tol:
			s.Anchor = append(s.Anchor, v.Id)
		case v.C[0] > xmax-tol:
			s.AnchorRight = append(s.AnchorRight, v.Id)
		case math.Abs(v.C[0]-xc) < tol:
			s.Shuttle = append(s.Shuttle, v.Id)
		}
	}
	if err = s.check(tol, true); err != nil {
		return nil, err
	}
	return
}

// check validates non-emptiness and pairwise disjointness
func (o *Sets) check(tol float64, full bool) (err error) {
	if len(o.Anchor) == 0 {
		return chk.Err("msh: anchor set is empty (tol=%g); boundary conditions cannot be applied", tol)
	}
	if len(o.Shuttle) == 0 {
		return chk.Err("msh: shuttle set is empty (tol=%g); boundary conditions cannot be applied", tol)
	}
	if full && len(o.AnchorRight) == 0 {
		return chk.Err("msh: right anchor set is empty (tol=%g); boundary conditions cannot be applied", tol)
	}
	seen := make(map[int]string)
	for name, set := range map[string][]int{"anchor": o.Anchor, "anchorRight": o.AnchorRight, "shuttle": o.Shuttle} {
		for _, id := range set {
			if prev, ok := seen[id]; ok {
				return chk.Err("msh: vertex %d belongs to both %q and %q sets", id, prev, name)
			}
			seen[id] = name
		}
	}
	return
}

// xrange returns the extreme x-coordinates of the mesh
func (o *Mesh) xrange() (xmin, xmax float64) {
	xmin, xmax = math.Inf(1), math.Inf(-1)
	for _, v := range o.Verts {
		xmin = math.Min(xmin, v.C[0])
		xmax = math.Max(xmax, v.C[0])
	}
	return
}
