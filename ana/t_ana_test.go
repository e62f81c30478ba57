// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"

	"github.com/neekonsu/mcw-mems-photonic-switch/inp"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// uniformSim returns the default simulation with the width step removed
func uniformSim() (sim inp.Simulation) {
	sim.SetDefault()
	sim.Beam.RigidWidth = sim.Beam.FlexWidth
	return
}

func Test_ana01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ana01. uniform-beam bending coefficients vs closed form")

	sim := uniformSim()
	o, err := NewModel(&sim.Beam, &sim.Mat, 3, 2001)
	if err != nil {
		tst.Errorf("NewModel failed:\n%v", err)
		return
	}

	// Bnn = 2 n⁴ π⁴ E I / L³ and zero coupling for constant width
	momI := sim.Beam.FlexWidth * math.Pow(sim.Beam.Thickness, 3) / 12.0
	L := 2.0 * sim.Beam.Span
	for i, n := range o.Ns {
		ref := 2.0 * math.Pow(float64(n), 4) * math.Pow(math.Pi, 4) * sim.Mat.E * momI / (L * L * L)
		chk.Float64(tst, io.Sf("B%d%d", n, n), 1e-9*ref, o.B[i][i], ref)
		for j := range o.Ns {
			if i != j {
				chk.Float64(tst, io.Sf("B%d%d", n, o.Ns[j]), 1e-9*ref, o.B[i][j], 0)
			}
		}
	}
}

func Test_ana02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ana02. axially-released model: push/pop ratio is one")

	var sim inp.Simulation
	sim.SetDefault()
	o, err := NewModel(&sim.Beam, &sim.Mat, 3, 1601)
	if err != nil {
		tst.Errorf("NewModel failed:\n%v", err)
		return
	}
	o.Release()

	h := sim.Beam.InitialOffset
	dxs := utl.LinSpace(-2.0*h, 2.0*h, 49)
	pts := o.Sweep(dxs)
	np := len(pts)
	fpush, fpop := math.Inf(-1), math.Inf(1)
	for i, p := range pts {
		if !p.Ok {
			tst.Errorf("sample δ=%g did not converge: %s", p.Dx, p.Msg)
			return
		}
		// the energy is symmetric under δ → -δ, so F must be exactly odd
		q := pts[np-1-i]
		chk.Float64(tst, io.Sf("F(%g)", p.Dx), 1e-9, p.F, -q.F)
		fpush = math.Max(fpush, p.F)
		fpop = math.Min(fpop, p.F)
	}
	chk.Float64(tst, "push/pop ratio", 1e-9, fpush/(-fpop), 1.0)
}

func Test_ana03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ana03. snap-through needs the axial constraint")

	var sim inp.Simulation
	sim.SetDefault()
	h := sim.Beam.InitialOffset
	dxs := utl.LinSpace(0, 2.0*h, 81)

	// clamped: positive, then negative, then positive again
	o, err := NewModel(&sim.Beam, &sim.Mat, 3, 1601)
	if err != nil {
		tst.Errorf("NewModel failed:\n%v", err)
		return
	}
	pts := o.Sweep(dxs)
	fmin := math.Inf(1)
	for _, p := range pts[1:] {
		if !p.Ok {
			tst.Errorf("sample δ=%g did not converge: %s", p.Dx, p.Msg)
			return
		}
		fmin = math.Min(fmin, p.F)
	}
	io.Pforan("clamped: F1=%g Fmin=%g Fend=%g\n", pts[1].F, fmin, pts[len(pts)-1].F)
	if !(pts[1].F > 0 && fmin < 0 && pts[len(pts)-1].F > 0) {
		tst.Errorf("clamped curve must snap through: F1=%g Fmin=%g Fend=%g", pts[1].F, fmin, pts[len(pts)-1].F)
		return
	}

	// released: strictly monotonic
	o.Release()
	free := o.Sweep(dxs)
	for i := 2; i < len(free); i++ {
		if free[i].F <= free[i-1].F {
			tst.Errorf("released curve must be monotonic: F(%g)=%g F(%g)=%g",
				free[i-1].Dx, free[i-1].F, free[i].Dx, free[i].F)
			return
		}
	}
}

func Test_ana04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ana04. literature closed forms")

	// third-kind line: F₃(0) = 8π⁴ and zero crossing at Δ = 4/3
	pi4 := math.Pow(math.Pi, 4)
	chk.Float64(tst, "F3(0)", 1e-10, Force3(0), 8.0*pi4)
	chk.Float64(tst, "F3(4/3)", 1e-10, Force3(4.0/3.0), 0)

	// second antisymmetric eigenvalue: N₂ = 2x with tan(x) = x, x ≈ 4.4934
	N2, err := EvenEigen(2)
	if err != nil {
		tst.Errorf("EvenEigen failed:\n%v", err)
		return
	}
	chk.Float64(tst, "N2", 1e-3, N2, 2.0*4.4934)

	// cubic roots merge towards Δ = 1.5 - 0.5 = 1 and 2 as Q grows
	r1, r2, ok := Roots1(1e6)
	if !ok {
		tst.Errorf("large Q must be bistable")
		return
	}
	chk.Float64(tst, "r1(Q→∞)", 1e-6, r1, 1.0)
	chk.Float64(tst, "r2(Q→∞)", 1e-6, r2, 2.0)
	if _, _, ok := Roots1(2.0); ok {
		tst.Errorf("Q=2 must not admit first-kind roots")
	}
}

func Test_ana05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ana05. single-mode sweep matches the first-kind cubic")

	// uniform beam so the closed form applies exactly
	sim := uniformSim()
	b := &sim.Beam
	o, err := NewModel(b, &sim.Mat, 1, 2001)
	if err != nil {
		tst.Errorf("NewModel failed:\n%v", err)
		return
	}
	h := b.InitialOffset
	Q := b.Q()
	L := 2.0 * b.Span
	momI := b.FlexWidth * math.Pow(b.Thickness, 3) / 12.0
	scale := sim.Mat.E * momI * h / (L * L * L)

	dxs := utl.LinSpace(0, 2.0*h, 401)
	pts := o.Sweep(dxs)
	for _, p := range pts[1 : len(pts)-1] {
		if !p.Ok {
			tst.Errorf("sample δ=%g did not converge: %s", p.Dx, p.Msg)
			return
		}
		ref := Force1(p.Dx/h, Q) * scale
		if math.Abs(p.F-ref) > 0.02*3.0*pi4q(Q)*scale {
			tst.Errorf("F(δ=%g)=%g is too far from the cubic %g", p.Dx, p.F, ref)
			return
		}
	}
}

// pi4q returns the magnitude scale π⁴Q²/2 of the first-kind cubic
func pi4q(Q float64) float64 {
	return math.Pow(math.Pi, 4) * Q * Q / 2.0
}

func Test_ana06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ana06. failed sample: continuation kept unless Restart is set")

	var sim inp.Simulation
	sim.SetDefault()
	h := sim.Beam.InitialOffset
	ref := utl.LinSpace(0, 2.0*h, 21)

	// the same grid with one unsolvable sample in the middle
	kbad := 10
	bad := make([]float64, 0, len(ref)+1)
	bad = append(bad, ref[:kbad]...)
	bad = append(bad, math.NaN())
	bad = append(bad, ref[kbad:]...)

	o, err := NewModel(&sim.Beam, &sim.Mat, 3, 1601)
	if err != nil {
		tst.Errorf("NewModel failed:\n%v", err)
		return
	}
	rpts := o.Sweep(ref)

	// continuation: the sweep must behave as if the bad sample were absent,
	// so the converged amplitudes match the reference run bit for bit
	p, err := NewModel(&sim.Beam, &sim.Mat, 3, 1601)
	if err != nil {
		tst.Errorf("NewModel failed:\n%v", err)
		return
	}
	bpts := p.Sweep(bad)
	if bpts[kbad].Ok || bpts[kbad].Msg == "" || !math.IsNaN(bpts[kbad].F) {
		tst.Errorf("unsolvable sample must be marked failed: %+v", bpts[kbad])
		return
	}
	for i, q := range bpts {
		if i == kbad {
			continue
		}
		j := i
		if i > kbad {
			j = i - 1
		}
		if !q.Ok {
			tst.Errorf("sample δ=%g did not converge: %s", q.Dx, q.Msg)
			return
		}
		chk.Array(tst, io.Sf("a(δ=%g)", q.Dx), 1e-17, q.A, rpts[j].A)
	}

	// restart: the sweep recovers from the zero guess as well
	p.Restart = true
	cpts := p.Sweep(bad)
	for i, q := range cpts {
		if i == kbad {
			continue
		}
		if !q.Ok {
			tst.Errorf("restarted sample δ=%g did not converge: %s", q.Dx, q.Msg)
			return
		}
	}
}
