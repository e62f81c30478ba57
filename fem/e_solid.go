// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"

	"github.com/neekonsu/mcw-mems-photonic-switch/msh"
	"github.com/neekonsu/mcw-mems-photonic-switch/shp"
)

// ElemSolid implements a total Lagrangian solid element. Strains are
// Green-Lagrange, the material is St.Venant-Kirchhoff and all integrals are
// taken over the reference configuration. In 2D the element works in plane
// stress with an out-of-plane thickness.
type ElemSolid struct {

	// essential
	Cell *msh.Cell
	Shp  *shp.Shape
	Ndim int
	Nu   int // total number of unknowns == nverts * ndim

	// material
	λ, μ, thick float64

	// reference coordinates [ndim][nverts]
	X [][]float64

	// scratchpad
	umat [][]float64 // [nverts][ndim] nodal displacements
	F    [][]float64 // deformation gradient
	E    [][]float64 // Green-Lagrange strain
	Sig  [][]float64 // second Piola-Kirchhoff stress
	B    [][]float64 // F·Fᵀ
	P    [][]float64 // first Piola-Kirchhoff stress F·S
	FG   [][]float64 // [nverts][ndim] G·Fᵀ
	K    [][]float64 // [nu][nu] stiffness
	fi   []float64   // [nu] internal forces
}

// NewElemSolid allocates one element attached to a mesh cell
func NewElemSolid(m *msh.Mesh, c *msh.Cell, λ, μ, thick float64) (o *ElemSolid, err error) {
	o = new(ElemSolid)
	o.Cell = c
	o.Shp = shp.Get(c.Type)
	if o.Shp == nil {
		return nil, chk.Err("fem: no shape functions available for cell type %q", c.Type)
	}
	o.Ndim = m.Ndim
	o.Nu = o.Shp.Nverts * o.Ndim
	o.λ, o.μ, o.thick = λ, μ, thick
	if o.Ndim == 2 {
		o.λ = LamePlaneStress(λ, μ)
	}
	o.X = la.MatAlloc(o.Ndim, o.Shp.Nverts)
	for n, iv := range c.Verts {
		for i := 0; i < o.Ndim; i++ {
			o.X[i][n] = m.Verts[iv].C[i]
		}
	}
	o.umat = la.MatAlloc(o.Shp.Nverts, o.Ndim)
	o.F = la.MatAlloc(o.Ndim, o.Ndim)
	o.E = la.MatAlloc(o.Ndim, o.Ndim)
	o.Sig = la.MatAlloc(o.Ndim, o.Ndim)
	o.B = la.MatAlloc(o.Ndim, o.Ndim)
	o.P = la.MatAlloc(o.Ndim, o.Ndim)
	o.FG = la.MatAlloc(o.Shp.Nverts, o.Ndim)
	o.K = la.MatAlloc(o.Nu, o.Nu)
	o.fi = make([]float64, o.Nu)
	return
}

// gather copies the element displacements out of the global vector
func (o *ElemSolid) gather(dom *Domain, y []float64) {
	for n, iv := range o.Cell.Verts {
		for i := 0; i < o.Ndim; i++ {
			o.umat[n][i] = y[dom.Eq(iv, i)]
		}
	}
}

// ipState evaluates F, E and S at one integration point. The shape
// scratchpad must have been computed first.
func (o *ElemSolid) ipState() {
	DefGrad(o.F, o.umat, o.Shp.G)
	GreenStrain(o.E, o.F)
	StVenantStress(o.Sig, o.E, o.λ, o.μ)
}

// AddToRhs subtracts the internal forces from the global residual:
//
//	fb[eq] -= ∫ P_iJ · G[a][J] dV    with P = F·S
func (o *ElemSolid) AddToRhs(fb []float64, dom *Domain, y []float64) (err error) {
	o.gather(dom, y)
	la.VecFill(o.fi, 0)
	for _, ip := range o.Shp.Ips {
		if err = o.Shp.CalcAtIp(o.X, ip, true); err != nil {
			return chk.Err("fem: cell %d: integration point evaluation failed:\n%v", o.Cell.Id, err)
		}
		o.ipState()
		TensMul(o.P, o.F, o.Sig)
		coef := ip.W * o.Shp.J * o.thick
		for a := 0; a < o.Shp.Nverts; a++ {
			for i := 0; i < o.Ndim; i++ {
				for J := 0; J < o.Ndim; J++ {
					o.fi[a*o.Ndim+i] += coef * o.P[i][J] * o.Shp.G[a][J]
				}
			}
		}
	}
	for n, iv := range o.Cell.Verts {
		for i := 0; i < o.Ndim; i++ {
			fb[dom.Eq(iv, i)] -= o.fi[n*o.Ndim+i]
		}
	}
	return
}

// AddToKb adds the consistent tangent (material plus geometric parts) to the
// global Jacobian triplet
func (o *ElemSolid) AddToKb(Kb *la.Triplet, dom *Domain, y []float64) (err error) {
	o.gather(dom, y)
	la.MatFill(o.K, 0)
	nv := o.Shp.Nverts
	for _, ip := range o.Shp.Ips {
		if err = o.Shp.CalcAtIp(o.X, ip, true); err != nil {
			return chk.Err("fem: cell %d: integration point evaluation failed:\n%v", o.Cell.Id, err)
		}
		o.ipState()
		TensMulTrB(o.B, o.F, o.F)
		coef := ip.W * o.Shp.J * o.thick
		G := o.Shp.G

		// FG[a][i] = Σ_J G[a][J] F[i][J]
		for a := 0; a < nv; a++ {
			for i := 0; i < o.Ndim; i++ {
				o.FG[a][i] = 0.0
				for J := 0; J < o.Ndim; J++ {
					o.FG[a][i] += G[a][J] * o.F[i][J]
				}
			}
		}

		// K[ai][bk] += coef * G[a][J] A_iJkL G[b][L] with
		// A_iJkL = δik S_JL + λ F_iJ F_kL + μ (B_ik δ_JL + F_iL F_kJ)
		for a := 0; a < nv; a++ {
			for b := 0; b < nv; b++ {
				gSg := 0.0 // G[a]·S·G[b] (geometric part)
				gg := 0.0  // G[a]·G[b]
				for J := 0; J < o.Ndim; J++ {
					gg += G[a][J] * G[b][J]
					for L := 0; L < o.Ndim; L++ {
						gSg += G[a][J] * o.Sig[J][L] * G[b][L]
					}
				}
				for i := 0; i < o.Ndim; i++ {
					for k := 0; k < o.Ndim; k++ {
						v := o.λ*o.FG[a][i]*o.FG[b][k] + o.μ*(o.B[i][k]*gg+o.FG[b][i]*o.FG[a][k])
						if i == k {
							v += gSg
						}
						o.K[a*o.Ndim+i][b*o.Ndim+k] += coef * v
					}
				}
			}
		}
	}
	for n, iv := range o.Cell.Verts {
		for i := 0; i < o.Ndim; i++ {
			r := dom.Eq(iv, i)
			for m, jv := range o.Cell.Verts {
				for k := 0; k < o.Ndim; k++ {
					Kb.Put(r, dom.Eq(jv, k), o.K[n*o.Ndim+i][m*o.Ndim+k])
				}
			}
		}
	}
	return
}
