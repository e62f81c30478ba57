// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/num"

	"github.com/neekonsu/mcw-mems-photonic-switch/geo"
	"github.com/neekonsu/mcw-mems-photonic-switch/inp"
)

// Model holds the buckling-mode energy expansion of one doubly-clamped beam.
// The deflection is expanded over the symmetric modes only (the antisymmetric
// second mode is suppressed by the central clamp):
//
//	w(x) = Σ aₙ φₙ(x),  φₙ(x) = [1 - cos(2nπx/L)]/2,  n = 1, 3, 5, ...
//
// The total energy is bending plus axial compression,
//
//	U = (a-a⁰)ᵀ B (a-a⁰)/2 + Kax (S-S⁰)²/2
//
// with the axial shortening S = (π²/4L) Σ n²aₙ² produced by the transverse
// slope. Only the first mode is initially populated: a₁⁰ = h.
type Model struct {

	// definition
	L      float64 // full beam length (twice the half-span)
	H      float64 // initial apex height
	Ns     []int   // odd mode numbers 1, 3, 5, ...
	B      [][]float64
	Kax    float64 // axial stiffness; zero for the axially-released variant
	caxial float64 // π²/(4L)
	S0     float64 // initial axial shortening

	// control
	Restart bool // seed the sample after a failure with the zero guess instead of continuation

	// scratchpad
	a, a0, da []float64
}

// Point is one sample of an analytical sweep
type Point struct {
	Dx  float64   // prescribed apex displacement (positive = downwards)
	U   float64   // minimised energy
	F   float64   // force dU/dδ by finite differences over the sweep grid
	A   []float64 // converged mode amplitudes
	Ok  bool      // minimisation converged
	Msg string    // failure reason when !Ok
}

// NewModel builds the energy expansion of the doubly-clamped beam described
// by the half-beam spec. The stepped width enters through the bending and
// axial integrals, evaluated over the mirrored (full) profile with npts
// trapezoidal stations; the initial shape is taken as a pure first mode.
func NewModel(b *inp.BeamSpec, mat *inp.MaterialSpec, nmodes, npts int) (o *Model, err error) {
	if err = b.Validate(); err != nil {
		return
	}
	if err = mat.Validate(); err != nil {
		return
	}
	if nmodes < 1 {
		return nil, chk.Err("ana: at least one mode is required: nmodes=%d", nmodes)
	}
	p, err := geo.NewFull(b, npts)
	if err != nil {
		return
	}
	o = new(Model)
	o.L = p.X[len(p.X)-1] - p.X[0]
	o.H = b.InitialOffset
	o.Ns = make([]int, nmodes)
	for i := range o.Ns {
		o.Ns[i] = 2*i + 1
	}
	o.caxial = math.Pi * math.Pi / (4.0 * o.L)
	o.S0 = o.caxial * o.H * o.H

	// bending matrix: Bmn = E ∫ I(x) φm″ φn″ dx with φn″ = kn² cos(knx)/2
	n := len(p.X)
	dx := p.X[1] - p.X[0]
	o.B = la.MatAlloc(nmodes, nmodes)
	for i, m := range o.Ns {
		km := 2.0 * float64(m) * math.Pi / o.L
		for j, nn := range o.Ns {
			kn := 2.0 * float64(nn) * math.Pi / o.L
			sum := 0.0
			for k := 0; k < n; k++ {
				f := mat.E * p.I[k] * km * km * kn * kn * math.Cos(km*p.X[k]) * math.Cos(kn*p.X[k]) / 4.0
				if k == 0 || k == n-1 {
					f /= 2.0
				}
				sum += f
			}
			o.B[i][j] = sum * dx
		}
	}

	// axial stiffness: springs in series over the stepped cross-section
	inv := 0.0
	for k := 0; k < n; k++ {
		f := 1.0 / (mat.E * p.W[k] * b.Thickness)
		if k == 0 || k == n-1 {
			f /= 2.0
		}
		inv += f
	}
	o.Kax = 1.0 / (inv * dx)

	o.a = make([]float64, nmodes)
	o.a0 = make([]float64, nmodes)
	o.a0[0] = o.H
	o.da = make([]float64, nmodes)
	return
}

// Release removes the axial constraint energy, turning the model into the
// half-beam variant whose driven end is axially free
func (o *Model) Release() {
	o.Kax = 0
}

// shortening returns S(a) = (π²/4L) Σ n²aₙ²
func (o *Model) shortening(a []float64) (S float64) {
	for i, n := range o.Ns {
		S += float64(n*n) * a[i] * a[i]
	}
	return o.caxial * S
}

// Energy returns the total energy at the amplitude vector a
func (o *Model) Energy(a []float64) (U float64) {
	for i := range o.Ns {
		for j := range o.Ns {
			U += (a[i] - o.a0[i]) * o.B[i][j] * (a[j] - o.a0[j]) / 2.0
		}
	}
	dS := o.shortening(a) - o.S0
	U += o.Kax * dS * dS / 2.0
	return
}

// dUda returns ∂U/∂aᵢ at the amplitude vector a
func (o *Model) dUda(i int, a []float64) (g float64) {
	for j := range o.Ns {
		g += o.B[i][j] * (a[j] - o.a0[j])
	}
	ni := float64(o.Ns[i])
	g += o.Kax * (o.shortening(a) - o.S0) * 2.0 * o.caxial * ni * ni * a[i]
	return
}

// hessU returns ∂²U/∂aᵢ∂aⱼ at the amplitude vector a
func (o *Model) hessU(i, j int, a []float64) (h float64) {
	h = o.B[i][j]
	ni, nj := float64(o.Ns[i]), float64(o.Ns[j])
	dSi := 2.0 * o.caxial * ni * ni * a[i]
	dSj := 2.0 * o.caxial * nj * nj * a[j]
	h += o.Kax * dSi * dSj
	if i == j {
		h += o.Kax * (o.shortening(a) - o.S0) * 2.0 * o.caxial * ni * ni
	}
	return
}

// assemble fills the full amplitude vector from the free (higher mode)
// amplitudes and the apex constraint Σ aₙ = h - δ
func (o *Model) assemble(afree []float64, c0 float64) []float64 {
	a1 := c0
	for _, v := range afree {
		a1 -= v
	}
	o.a[0] = a1
	copy(o.a[1:], afree)
	return o.a
}

// MinEnergy minimises the energy at the prescribed apex displacement δ over
// the higher-mode amplitudes, the first mode being bound by the constraint.
// afree carries the initial guess in and the converged amplitudes out, so a
// sweep can seed each sample with the previous one (continuation).
func (o *Model) MinEnergy(δ float64, afree []float64) (u float64, a []float64, err error) {
	if math.IsNaN(δ) || math.IsInf(δ, 0) {
		return 0, nil, chk.Err("ana: non-finite apex displacement: %g", δ)
	}
	c0 := o.H - δ
	if len(afree) != len(o.Ns)-1 {
		return 0, nil, chk.Err("ana: wrong number of free amplitudes: %d must be %d", len(afree), len(o.Ns)-1)
	}
	if len(afree) > 0 {

		// solve on a copy so a failure leaves the caller's guess intact
		x := la.VecClone(afree)
		var nls num.NlSolver
		defer nls.Clean()
		ffcn := func(fx, x []float64) error {
			aa := o.assemble(x, c0)
			for j := range fx {
				fx[j] = o.dUda(j+1, aa) - o.dUda(0, aa)
			}
			return nil
		}
		Jfcn := func(dfdx [][]float64, x []float64) error {
			aa := o.assemble(x, c0)
			for j := range x {
				for k := range x {
					dfdx[j][k] = o.hessU(j+1, k+1, aa) - o.hessU(j+1, 0, aa) -
						o.hessU(0, k+1, aa) + o.hessU(0, 0, aa)
				}
			}
			return nil
		}
		nls.Init(len(afree), ffcn, nil, Jfcn, true, false, nil)
		if err = nls.Solve(x, true); err != nil {
			return 0, nil, chk.Err("ana: energy minimisation failed at δ=%g:\n%v", δ, err)
		}
		copy(afree, x)
	}
	a = o.assemble(afree, c0)
	u = o.Energy(a)
	return
}

// Sweep minimises the energy over a displacement grid, seeding each sample
// with the previous converged amplitudes, and differentiates the energy over
// the grid to produce the force (central differences; one-sided at the grid
// ends; failed samples are skipped, never interpolated over silently). After
// a failed sample the continuation guess is kept, unless Restart is set, in
// which case the next sample starts from the zero guess.
func (o *Model) Sweep(dxs []float64) (pts []Point) {
	nf := len(o.Ns) - 1
	afree := make([]float64, nf)
	pts = make([]Point, len(dxs))
	for i, dx := range dxs {
		p := &pts[i]
		p.Dx = dx
		u, a, err := o.MinEnergy(dx, afree)
		if err != nil {
			p.Msg = err.Error()
			if o.Restart {
				la.VecFill(afree, 0)
			}
			continue
		}
		p.U = u
		p.A = la.VecClone(a)
		p.Ok = true
	}
	o.differentiate(pts)
	return
}

// differentiate fills F = dU/dδ using the nearest converged neighbours of
// every converged sample
func (o *Model) differentiate(pts []Point) {
	prev := func(i int) int {
		for j := i - 1; j >= 0; j-- {
			if pts[j].Ok {
				return j
			}
		}
		return -1
	}
	next := func(i int) int {
		for j := i + 1; j < len(pts); j++ {
			if pts[j].Ok {
				return j
			}
		}
		return -1
	}
	for i := range pts {
		if !pts[i].Ok {
			pts[i].F = math.NaN()
			continue
		}
		ip, in := prev(i), next(i)
		switch {
		case ip >= 0 && in >= 0:
			pts[i].F = (pts[in].U - pts[ip].U) / (pts[in].Dx - pts[ip].Dx)
		case in >= 0:
			pts[i].F = (pts[in].U - pts[i].U) / (pts[in].Dx - pts[i].Dx)
		case ip >= 0:
			pts[i].F = (pts[i].U - pts[ip].U) / (pts[i].Dx - pts[ip].Dx)
		}
	}
}
