// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msh

import (
	"github.com/cpmech/gosl/chk"
)

// edge connectivity of quadratic upgrades: local corner pairs, in the order
// the new mid-side vertices are appended to the cell connectivity
var (
	tri6edges = [][]int{{0, 1}, {1, 2}, {2, 0}}
	tetEdges  = [][]int{{0, 1}, {1, 2}, {2, 0}, {0, 3}, {1, 3}, {2, 3}}
)

// Order2 returns a new mesh with every cell upgraded to its quadratic
// counterpart (tri3 → tri6, tet4 → tet10) by inserting mid-side vertices.
// Vertices shared by adjacent cells are inserted once.
func (o *Mesh) Order2() (p *Mesh, err error) {
	p = new(Mesh)
	p.Ndim = o.Ndim
	for _, v := range o.Verts {
		c := make([]float64, len(v.C))
		copy(c, v.C)
		p.Verts = append(p.Verts, &Vert{Id: v.Id, C: c})
	}
	mid := make(map[[2]int]int) // corner pair (sorted) => mid-side vertex id
	midside := func(a, b int) int {
		key := [2]int{a, b}
		if a > b {
			key = [2]int{b, a}
		}
		if id, ok := mid[key]; ok {
			return id
		}
		ca, cb := o.Verts[a].C, o.Verts[b].C
		c := make([]float64, o.Ndim)
		for i := 0; i < o.Ndim; i++ {
			c[i] = (ca[i] + cb[i]) / 2.0
		}
		id := len(p.Verts)
		p.Verts = append(p.Verts, &Vert{Id: id, C: c})
		mid[key] = id
		return id
	}
	for _, c := range o.Cells {
		var newType string
		var edges [][]int
		switch c.Type {
		case "tri3":
			newType, edges = "tri6", tri6edges
		case "tet4":
			newType, edges = "tet10", tetEdges
		default:
			return nil, chk.Err("msh: cannot upgrade cell type %q to quadratic", c.Type)
		}
		verts := make([]int, 0, cellNverts[newType])
		verts = append(verts, c.Verts...)
		for _, e := range edges {
			verts = append(verts, midside(c.Verts[e[0]], c.Verts[e[1]]))
		}
		p.Cells = append(p.Cells, &Cell{Id: c.Id, Type: newType, Verts: verts})
	}
	err = p.Check()
	return
}

// Extrude converts a tri3 mesh into a tet4 mesh by extruding along z over
// the given thickness with nlayers element layers. Each prism is split into
// three tetrahedra; diagonals on the shared quad faces are chosen from the
// global vertex ids so neighbouring prisms always agree.
func (o *Mesh) Extrude(thickness float64, nlayers int) (p *Mesh, err error) {
	if o.Ndim != 3-1 {
		return nil, chk.Err("msh: only 2D meshes can be extruded")
	}
	if !(thickness > 0) || nlayers < 1 {
		return nil, chk.Err("msh: invalid extrusion: thickness=%g nlayers=%d", thickness, nlayers)
	}
	for _, c := range o.Cells {
		if c.Type != "tri3" {
			return nil, chk.Err("msh: extrusion requires a tri3 mesh; found %q (upgrade to quadratic after extruding)", c.Type)
		}
	}

	// replicated vertex planes
	p = new(Mesh)
	p.Ndim = 3
	nv := len(o.Verts)
	for k := 0; k <= nlayers; k++ {
		z := thickness * float64(k) / float64(nlayers)
		for _, v := range o.Verts {
			p.Verts = append(p.Verts, &Vert{
				Id: len(p.Verts),
				C:  []float64{v.C[0], v.C[1], z},
			})
		}
	}

	// prisms => tetrahedra
	for k := 0; k < nlayers; k++ {
		for _, c := range o.Cells {
			// prism vertices: bottom 0,1,2 and top 3,4,5
			w := []int{
				k*nv + c.Verts[0], k*nv + c.Verts[1], k*nv + c.Verts[2],
				(k+1)*nv + c.Verts[0], (k+1)*nv + c.Verts[1], (k+1)*nv + c.Verts[2],
			}

			// rotate so the smallest global id sits at local 0 (or local 3);
			// rotation preserves orientation
			rot := 0
			if w[1] < w[rot] && w[1] < w[2] {
				rot = 1
			} else if w[2] < w[0] && w[2] < w[1] {
				rot = 2
			}
			for r := 0; r < rot; r++ {
				w = []int{w[1], w[2], w[0], w[4], w[5], w[3]}
			}

			// choose the decomposition whose diagonals emanate from the
			// smaller ids on the two remaining quad faces
			if min2(w[1], w[5]) < min2(w[2], w[4]) {
				p.addCell("tet4", w[0], w[1], w[2], w[5])
				p.addCell("tet4", w[0], w[1], w[5], w[4])
				p.addCell("tet4", w[0], w[4], w[5], w[3])
			} else {
				p.addCell("tet4", w[0], w[1], w[2], w[4])
				p.addCell("tet4", w[0], w[4], w[2], w[5])
				p.addCell("tet4", w[0], w[4], w[5], w[3])
			}
		}
	}
	err = p.Check()
	return
}

func min2(a, b int) int {
	if a < b {
		return a
	}
	return b
}
