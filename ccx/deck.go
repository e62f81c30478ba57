// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ccx adapts an external CalculiX-style structural solver: it owns
// the input deck and results-file text formats exclusively, exposing only a
// per-step solve returning the shuttle reaction force
package ccx

import (
	"bytes"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/neekonsu/mcw-mems-photonic-switch/inp"
	"github.com/neekonsu/mcw-mems-photonic-switch/msh"
)

// eltype maps mesh cell types to the external solver's element codes
var eltype = map[string]string{
	"tri3":  "CPE3",
	"tri6":  "CPE6",
	"tet4":  "C3D4",
	"tet10": "C3D10",
}

// Deck renders the complete input deck for one displacement step: nodes,
// elements, boundary node sets, one elastic material, a geometrically
// nonlinear static step prescribing the shuttle displacement and a request
// to print the shuttle reaction forces. Node and element numbers are 1-based
// as the external solver requires.
func Deck(m *msh.Mesh, sets *msh.Sets, mat *inp.MaterialSpec, thickness, dx float64) (deck string, err error) {
	if len(m.Cells) == 0 {
		return "", chk.Err("ccx: mesh has no cells")
	}
	ctype := m.Cells[0].Type
	code, ok := eltype[ctype]
	if !ok {
		return "", chk.Err("ccx: no element code for cell type %q", ctype)
	}
	var buf bytes.Buffer

	// nodes
	io.Ff(&buf, "*NODE, NSET=NALL\n")
	for _, v := range m.Verts {
		io.Ff(&buf, "%d", v.Id+1)
		for _, c := range v.C {
			io.Ff(&buf, ", %.10g", c)
		}
		io.Ff(&buf, "\n")
	}

	// elements
	io.Ff(&buf, "*ELEMENT, TYPE=%s, ELSET=EALL\n", code)
	for _, c := range m.Cells {
		if c.Type != ctype {
			return "", chk.Err("ccx: mixed cell types: %q and %q", ctype, c.Type)
		}
		io.Ff(&buf, "%d", c.Id+1)
		for _, iv := range c.Verts {
			io.Ff(&buf, ", %d", iv+1)
		}
		io.Ff(&buf, "\n")
	}

	// boundary node sets
	writeNset(&buf, "ANCHOR", sets.Anchor)
	if len(sets.AnchorRight) > 0 {
		writeNset(&buf, "ANCHOR2", sets.AnchorRight)
	}
	writeNset(&buf, "SHUTTLE", sets.Shuttle)

	// material and section
	io.Ff(&buf, "*MATERIAL, NAME=MAT\n*ELASTIC\n%g, %g\n", mat.E, mat.Nu)
	io.Ff(&buf, "*SOLID SECTION, ELSET=EALL, MATERIAL=MAT\n")
	if m.Ndim == 2 {
		io.Ff(&buf, "%g\n", thickness)
	}

	// nonlinear static step: anchors clamped, shuttle pushed down
	io.Ff(&buf, "*STEP, NLGEOM\n*STATIC\n*BOUNDARY\n")
	io.Ff(&buf, "ANCHOR, 1, %d, 0\n", m.Ndim)
	if len(sets.AnchorRight) > 0 {
		io.Ff(&buf, "ANCHOR2, 1, %d, 0\n", m.Ndim)
	}
	io.Ff(&buf, "SHUTTLE, 1, 1, 0\n")
	io.Ff(&buf, "SHUTTLE, 2, 2, %.10g\n", -dx)
	if m.Ndim == 3 {
		io.Ff(&buf, "SHUTTLE, 3, 3, 0\n")
	}
	io.Ff(&buf, "*NODE PRINT, NSET=SHUTTLE, TOTALS=ONLY\nRF\n*END STEP\n")
	return buf.String(), nil
}

// writeNset writes one named node set, 1-based, limited to the 16 entries
// per line the format allows
func writeNset(buf *bytes.Buffer, name string, verts []int) {
	io.Ff(buf, "*NSET, NSET=%s\n", name)
	for i, iv := range verts {
		io.Ff(buf, "%d", iv+1)
		if i == len(verts)-1 || (i+1)%16 == 0 {
			io.Ff(buf, "\n")
		} else {
			io.Ff(buf, ", ")
		}
	}
}
