// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package msh builds finite element meshes of beam outlines: structured
// triangulation of the closed polygon produced by the geometry profiles,
// quadratic upgrade, through-thickness extrusion into tetrahedra, and
// tolerance-based boundary vertex-set classification
package msh

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Vert holds one mesh vertex
type Vert struct {
	Id int       // vertex id
	C  []float64 // coordinates [ndim]
}

// Cell holds one mesh cell
type Cell struct {
	Id    int    // cell id
	Type  string // shape type; e.g. "tri3", "tet4"
	Verts []int  // connectivity [nverts]
}

// Mesh holds a finite element mesh
type Mesh struct {
	Ndim  int     // space dimension: 2 or 3
	Verts []*Vert // all vertices
	Cells []*Cell // all cells
}

// cellNverts maps shape types to their number of vertices
var cellNverts = map[string]int{"tri3": 3, "tri6": 6, "tet4": 4, "tet10": 10}

// NewBeamMesh triangulates the closed beam outline polygon. The polygon must
// be the one produced by geo.Profile.Polygon: n upper-edge points followed by
// the n lower-edge points reversed, with the first point repeated at the end.
//
//	lcFlex  -- target axial element size where the outline is narrow
//	lcRigid -- target axial element size where the outline is wide
//	nAcross -- number of element rows across the width (>= 1)
//
// The mesher depends only on the polygon itself; narrow and wide regions are
// detected from the local edge-to-edge distance.
func NewBeamMesh(poly [][]float64, lcFlex, lcRigid float64, nAcross int) (o *Mesh, err error) {

	// checks
	if !(lcFlex > 0) || !(lcRigid > 0) {
		return nil, chk.Err("msh: characteristic lengths must be positive: lcFlex=%g lcRigid=%g", lcFlex, lcRigid)
	}
	if nAcross < 1 {
		return nil, chk.Err("msh: at least one element row across the width is required: nAcross=%d", nAcross)
	}
	np := len(poly)
	if np < 7 || np%2 == 0 {
		return nil, chk.Err("msh: polygon must hold 2n+1 points with n >= 3: len=%d", np)
	}
	n := (np - 1) / 2

	// recover co-indexed upper and lower edges
	upper := poly[:n]
	lower := make([][]float64, n)
	for i := 0; i < n; i++ {
		lower[i] = poly[2*n-1-i]
	}
	wmin, wmax := math.Inf(1), math.Inf(-1)
	width := make([]float64, n)
	for i := 0; i < n; i++ {
		if math.Abs(upper[i][0]-lower[i][0]) > 1e-10 {
			return nil, chk.Err("msh: outline edges are not co-indexed at sample %d: xup=%g xlo=%g", i, upper[i][0], lower[i][0])
		}
		width[i] = upper[i][1] - lower[i][1]
		if width[i] <= 0 {
			return nil, chk.Err("msh: outline has non-positive width at x=%g", upper[i][0])
		}
		wmin = math.Min(wmin, width[i])
		wmax = math.Max(wmax, width[i])
	}

	// select axial stations: walk the outline accumulating the local target
	// spacing; narrow (flex) regions use lcFlex
	wmid := (wmin + wmax) / 2.0
	stations := []int{0}
	acc := 0.0
	for i := 1; i < n; i++ {
		acc += upper[i][0] - upper[i-1][0]
		lc := lcRigid
		if width[i] < wmid {
			lc = lcFlex
		}
		if acc >= lc || i == n-1 {
			stations = append(stations, i)
			acc = 0.0
		}
	}
	ns := len(stations)
	if ns < 2 {
		return nil, chk.Err("msh: characteristic lengths too coarse for outline with span=%g", upper[n-1][0]-upper[0][0])
	}

	// vertices: (nAcross+1) rows per station, bottom to top
	o = new(Mesh)
	o.Ndim = 2
	for _, i := range stations {
		for j := 0; j <= nAcross; j++ {
			s := float64(j) / float64(nAcross)
			o.Verts = append(o.Verts, &Vert{
				Id: len(o.Verts),
				C: []float64{
					lower[i][0],
					lower[i][1] + s*(upper[i][1]-lower[i][1]),
				},
			})
		}
	}

	// cells: split each quad into two triangles with alternating diagonals
	nrow := nAcross + 1
	for a := 0; a < ns-1; a++ {
		for j := 0; j < nAcross; j++ {
			v00 := a*nrow + j
			v01 := a*nrow + j + 1
			v10 := (a+1)*nrow + j
			v11 := (a+1)*nrow + j + 1
			if (a+j)%2 == 0 {
				o.addCell("tri3", v00, v10, v11)
				o.addCell("tri3", v00, v11, v01)
			} else {
				o.addCell("tri3", v00, v10, v01)
				o.addCell("tri3", v10, v11, v01)
			}
		}
	}
	err = o.Check()
	return
}

// addCell appends one cell
func (o *Mesh) addCell(ctype string, verts ...int) {
	o.Cells = append(o.Cells, &Cell{Id: len(o.Cells), Type: ctype, Verts: verts})
}

// Check verifies mesh integrity: finite coordinates, valid connectivity and
// non-degenerate (positive area/volume) cells
func (o *Mesh) Check() (err error) {
	for _, v := range o.Verts {
		if len(v.C) != o.Ndim {
			return chk.Err("msh: vertex %d has %d coordinates; mesh is %dD", v.Id, len(v.C), o.Ndim)
		}
		for _, c := range v.C {
			if math.IsNaN(c) || math.IsInf(c, 0) {
				return chk.Err("msh: vertex %d has non-finite coordinate", v.Id)
			}
		}
	}
	for _, c := range o.Cells {
		nv, ok := cellNverts[c.Type]
		if !ok {
			return chk.Err("msh: cell %d has unknown type %q", c.Id, c.Type)
		}
		if len(c.Verts) != nv {
			return chk.Err("msh: cell %d (%s) has %d vertices; must have %d", c.Id, c.Type, len(c.Verts), nv)
		}
		for _, iv := range c.Verts {
			if iv < 0 || iv >= len(o.Verts) {
				return chk.Err("msh: cell %d references invalid vertex %d", c.Id, iv)
			}
		}
		switch c.Type {
		case "tri3", "tri6":
			if a := o.triArea(c); a < 1e-14 {
				return chk.Err("msh: cell %d (%s) is degenerate: area=%g", c.Id, c.Type, a)
			}
		case "tet4", "tet10":
			if v := o.tetVolume(c); v < 1e-16 {
				return chk.Err("msh: cell %d (%s) is degenerate: volume=%g", c.Id, c.Type, v)
			}
		}
	}
	return
}

// triArea returns the signed area of the corner triangle of a cell
func (o *Mesh) triArea(c *Cell) float64 {
	p0 := o.Verts[c.Verts[0]].C
	p1 := o.Verts[c.Verts[1]].C
	p2 := o.Verts[c.Verts[2]].C
	return 0.5 * ((p1[0]-p0[0])*(p2[1]-p0[1]) - (p2[0]-p0[0])*(p1[1]-p0[1]))
}

// tetVolume returns the signed volume of the corner tetrahedron of a cell
func (o *Mesh) tetVolume(c *Cell) float64 {
	p0 := o.Verts[c.Verts[0]].C
	p1 := o.Verts[c.Verts[1]].C
	p2 := o.Verts[c.Verts[2]].C
	p3 := o.Verts[c.Verts[3]].C
	a := []float64{p1[0] - p0[0], p1[1] - p0[1], p1[2] - p0[2]}
	b := []float64{p2[0] - p0[0], p2[1] - p0[1], p2[2] - p0[2]}
	c3 := []float64{p3[0] - p0[0], p3[1] - p0[1], p3[2] - p0[2]}
	det := a[0]*(b[1]*c3[2]-b[2]*c3[1]) - a[1]*(b[0]*c3[2]-b[2]*c3[0]) + a[2]*(b[0]*c3[1]-b[1]*c3[0])
	return det / 6.0
}
