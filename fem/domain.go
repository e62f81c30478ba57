// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"

	"github.com/neekonsu/mcw-mems-photonic-switch/inp"
	"github.com/neekonsu/mcw-mems-photonic-switch/msh"
)

// Bc is one essential (displacement) boundary condition on a single degree
// of freedom
type Bc struct {
	Eq  int     // constrained equation
	Val float64 // prescribed value
}

// Domain holds the discretised model: mesh, elements, the degree-of-freedom
// map and the active essential boundary conditions
type Domain struct {

	// model
	Msh  *msh.Mesh
	Ndim int
	Eles []*ElemSolid
	Ny   int // number of displacement equations == nverts * ndim

	// essential boundary conditions, applied with Lagrange multipliers
	Bcs []*Bc
}

// NewDomain builds a domain over a mesh. thickness is the out-of-plane
// thickness used by 2D (plane stress) models; it is ignored for 3D meshes.
func NewDomain(m *msh.Mesh, mat *inp.MaterialSpec, thickness float64) (o *Domain, err error) {
	if err = mat.Validate(); err != nil {
		return
	}
	if m.Ndim == 2 && !(thickness > 0) {
		return nil, chk.Err("fem: plane stress models need a positive thickness: %g", thickness)
	}
	o = new(Domain)
	o.Msh = m
	o.Ndim = m.Ndim
	o.Ny = len(m.Verts) * m.Ndim
	λ, μ := LameParams(mat.E, mat.Nu)
	thick := thickness
	if m.Ndim == 3 {
		thick = 1.0
	}
	for _, c := range m.Cells {
		e, err := NewElemSolid(m, c, λ, μ, thick)
		if err != nil {
			return nil, err
		}
		o.Eles = append(o.Eles, e)
	}
	return
}

// Eq returns the global equation number of one degree of freedom. Vertex ids
// are densely numbered so the map is simply
//
//	eq = vid*ndim + dim
func (o *Domain) Eq(vid, dim int) int {
	return vid*o.Ndim + dim
}

// SetBc prescribes one displacement component over a set of vertices,
// replacing any previous prescription of the same equations
func (o *Domain) SetBc(verts []int, dim int, val float64) {
	for _, iv := range verts {
		eq := o.Eq(iv, dim)
		found := false
		for _, bc := range o.Bcs {
			if bc.Eq == eq {
				bc.Val = val
				found = true
				break
			}
		}
		if !found {
			o.Bcs = append(o.Bcs, &Bc{Eq: eq, Val: val})
		}
	}
}

// ClearBcs removes all essential boundary conditions
func (o *Domain) ClearBcs() {
	o.Bcs = nil
}

// Nlam returns the number of Lagrange multipliers (one per constrained dof)
func (o *Domain) Nlam() int {
	return len(o.Bcs)
}

// AssembleRhs fills the augmented residual for the current state:
//
//	fb[:ny]  = -fint - Aᵀ·λ
//	fb[ny:]  = c - A·y
//
// where A is the (boolean) constraint matrix of the essential bcs
func (o *Domain) AssembleRhs(fb []float64, y, lam []float64) (err error) {
	la.VecFill(fb, 0)
	for _, e := range o.Eles {
		if err = e.AddToRhs(fb, o, y); err != nil {
			return
		}
	}
	for i, bc := range o.Bcs {
		fb[bc.Eq] -= lam[i]
		fb[o.Ny+i] = bc.Val - y[bc.Eq]
	}
	return
}

// AssembleKb fills the augmented Jacobian:
//
//	Kb = ⎡ K  Aᵀ ⎤
//	     ⎣ A  0  ⎦
func (o *Domain) AssembleKb(Kb *la.Triplet, y []float64) (err error) {
	Kb.Start()
	for _, e := range o.Eles {
		if err = e.AddToKb(Kb, o, y); err != nil {
			return
		}
	}
	for i, bc := range o.Bcs {
		Kb.Put(bc.Eq, o.Ny+i, 1.0)
		Kb.Put(o.Ny+i, bc.Eq, 1.0)
	}
	return
}

// IntForces assembles the bare internal force vector (no multipliers). The
// entries at constrained equations are the reactions.
func (o *Domain) IntForces(fint []float64, y []float64) (err error) {
	la.VecFill(fint, 0)
	for _, e := range o.Eles {
		if err = e.AddToRhs(fint, o, y); err != nil {
			return
		}
	}
	for i := range fint {
		fint[i] = -fint[i]
	}
	return
}
