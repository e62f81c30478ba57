// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"

	"github.com/neekonsu/mcw-mems-photonic-switch/inp"
	"github.com/neekonsu/mcw-mems-photonic-switch/msh"
)

// StepResult holds the outcome of one displacement step of a sweep
type StepResult struct {
	Dx   float64 // prescribed shuttle displacement
	F    float64 // reaction along the push direction
	Flin float64 // reaction predicted by the linear-elastic stiffness
	Ok   bool    // step converged
	It   int     // number of iterations spent
	Msg  string  // failure reason when !Ok
}

// Solver drives a displacement-controlled sweep: the shuttle vertices are
// pushed through increasing prescribed displacements and the reaction force
// is recorded at every converged step. The solution state is carried from
// step to step (continuation), which is what allows the solver to traverse
// the negative-stiffness branch of bistable beams.
type Solver struct {

	// input
	Dom   *Domain
	Sets  *msh.Sets
	Sweep *inp.SweepData

	// state
	Y   []float64 // displacements
	Lam []float64 // Lagrange multipliers

	// scratchpad
	fb, dy, fint []float64
	y0, l0       []float64 // undeformed state for the linear pass
	Kb           la.Triplet
	Ai, Kd       [][]float64
	Al           [][]float64 // inverse of the elastic system; built on demand
}

// NewSolver prepares a sweep over a domain. The boundary sets must have been
// classified from the same mesh the domain was built on.
func NewSolver(dom *Domain, sets *msh.Sets, sweep *inp.SweepData) (o *Solver, err error) {
	if err = sweep.Validate(); err != nil {
		return
	}
	o = new(Solver)
	o.Dom = dom
	o.Sets = sets
	o.Sweep = sweep

	// fixed boundary conditions: anchors are always fully clamped and the
	// shuttle moves along y only
	dom.ClearBcs()
	for dim := 0; dim < dom.Ndim; dim++ {
		dom.SetBc(sets.Anchor, dim, 0)
		if len(sets.AnchorRight) > 0 {
			dom.SetBc(sets.AnchorRight, dim, 0)
		}
		dom.SetBc(sets.Shuttle, dim, 0)
	}

	o.alloc()
	return
}

// ReleaseAxial turns the anchors into rollers: only the transverse (and, in
// 3D, out-of-plane) displacements stay constrained there, so no axial
// compression can build up during the sweep
func (o *Solver) ReleaseAxial() {
	dom := o.Dom
	dom.ClearBcs()
	for dim := 1; dim < dom.Ndim; dim++ {
		dom.SetBc(o.Sets.Anchor, dim, 0)
		if len(o.Sets.AnchorRight) > 0 {
			dom.SetBc(o.Sets.AnchorRight, dim, 0)
		}
	}
	for dim := 0; dim < dom.Ndim; dim++ {
		dom.SetBc(o.Sets.Shuttle, dim, 0)
	}
	o.alloc()
}

// alloc (re)allocates the state and scratchpad for the current set of
// boundary conditions
func (o *Solver) alloc() {
	dom := o.Dom
	n := dom.Ny + dom.Nlam()
	o.Y = make([]float64, dom.Ny)
	o.Lam = make([]float64, dom.Nlam())
	o.fb = make([]float64, n)
	o.dy = make([]float64, n)
	o.fint = make([]float64, dom.Ny)
	o.y0 = make([]float64, dom.Ny)
	o.l0 = make([]float64, dom.Nlam())
	nnz := 2 * dom.Nlam()
	for _, e := range dom.Eles {
		nnz += e.Nu * e.Nu
	}
	o.Kb.Init(n, n, nnz)
	o.Ai = la.MatAlloc(n, n)
	o.Al = nil
}

// SolveStatic runs Newton iterations for the boundary conditions currently
// applied to dom, starting from the undeformed state, and returns the
// converged displacements
func SolveStatic(dom *Domain, sweep *inp.SweepData) (y []float64, it int, err error) {
	o := &Solver{Dom: dom, Sweep: sweep}
	o.alloc()
	it, err = o.iterate()
	return o.Y, it, err
}

// Run performs the sweep. Each step first solves the small-strain elastic
// system once (Flin) and then iterates the full problem to equilibrium (F);
// the two track each other only while deflections stay small. Step failures
// (divergence, singular Jacobian, iteration budget exhausted) are reported
// in the results, not as an error; err is reserved for unrecoverable
// assembly problems.
func (o *Solver) Run() (res []StepResult, err error) {
	sw := o.Sweep
	dxs := utl.LinSpace(0, sw.Dmax, sw.Nsteps+1)[1:]
	res = make([]StepResult, len(dxs))
	ybak := la.VecClone(o.Y)
	lbak := la.VecClone(o.Lam)
	for k, dx := range dxs {
		o.Dom.SetBc(o.Sets.Shuttle, 1, -dx)
		r := &res[k]
		r.Dx = dx
		if r.Flin, err = o.linearStep(); err != nil {
			return
		}
		it, serr := o.iterate()
		r.It = it
		if serr != nil {
			r.Msg = serr.Error()
			if sw.Restart {
				la.VecFill(o.Y, 0)
				la.VecFill(o.Lam, 0)
			} else {
				copy(o.Y, ybak)
				copy(o.Lam, lbak)
			}
			io.Pf("step %3d: dx=%g failed: %v\n", k, dx, serr)
			continue
		}
		if err = o.Dom.IntForces(o.fint, o.Y); err != nil {
			return
		}
		for _, iv := range o.Sets.Shuttle {
			r.F -= o.fint[o.Dom.Eq(iv, 1)]
		}
		r.Ok = true
		copy(ybak, o.Y)
		copy(lbak, o.Lam)
	}
	return
}

// linearStep solves the linear-elastic system (the tangent at the undeformed
// state) for the current boundary values and returns the shuttle reaction it
// predicts. The bordered elastic matrix does not change within a sweep, so
// its inverse is built once and reused.
func (o *Solver) linearStep() (flin float64, err error) {
	dom := o.Dom
	la.VecFill(o.y0, 0)
	if o.Al == nil {
		if err = dom.AssembleKb(&o.Kb, o.y0); err != nil {
			return
		}
		n := len(o.fb)
		o.Al = la.MatAlloc(n, n)
		if err = la.MatInvG(o.Al, o.Kb.ToMatrix(nil).ToDense(), 1e-13); err != nil {
			return 0, chk.Err("fem: elastic stiffness is singular:\n%v", err)
		}
	}
	la.VecFill(o.l0, 0)
	if err = dom.AssembleRhs(o.fb, o.y0, o.l0); err != nil {
		return
	}
	la.MatVecMul(o.dy, 1, o.Al, o.fb)

	// the multipliers of the shuttle y-constraints are the reactions
	for _, iv := range o.Sets.Shuttle {
		eq := dom.Eq(iv, 1)
		for i, bc := range dom.Bcs {
			if bc.Eq == eq {
				flin += o.dy[dom.Ny+i]
			}
		}
	}
	return
}

// iterate runs Newton-Raphson iterations until the residual drops below the
// relative tolerance (FbTol times the first residual) or the absolute floor
// FbMin
func (o *Solver) iterate() (it int, err error) {
	var largFb, largFb0 float64
	for it = 0; it < o.Sweep.NmaxIt; it++ {

		// residual
		if err = o.Dom.AssembleRhs(o.fb, o.Y, o.Lam); err != nil {
			return
		}
		largFb = la.VecLargest(o.fb, 1)

		// convergence and divergence checks
		if largFb < o.Sweep.FbMin {
			return
		}
		if it == 0 {
			largFb0 = largFb
		} else {
			if largFb < o.Sweep.FbTol*largFb0 {
				return
			}
			if math.IsNaN(largFb) || largFb > 1e8*largFb0 {
				return it, chk.Err("fem: iterations diverged: |fb|=%g |fb0|=%g", largFb, largFb0)
			}
		}

		// solve linearised system
		if err = o.Dom.AssembleKb(&o.Kb, o.Y); err != nil {
			return
		}
		o.Kd = o.Kb.ToMatrix(nil).ToDense()
		if err = la.MatInvG(o.Ai, o.Kd, 1e-13); err != nil {
			return it, chk.Err("fem: cannot solve linearised system:\n%v", err)
		}
		la.MatVecMul(o.dy, 1, o.Ai, o.fb)

		// update state
		for i := 0; i < o.Dom.Ny; i++ {
			o.Y[i] += o.dy[i]
		}
		for i := 0; i < o.Dom.Nlam(); i++ {
			o.Lam[i] += o.dy[o.Dom.Ny+i]
		}
	}
	return it, chk.Err("fem: max number of iterations reached: nit=%d |fb|=%g", it, largFb)
}
