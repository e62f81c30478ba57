// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana implements the analytical force-displacement model of
// clamped-clamped bistable beams: buckling-mode energy expansion, constrained
// energy minimisation over a displacement sweep and the literature
// closed-form solutions [Qiu, Lang and Slocum, JMEMS 13(2), 2004]
package ana

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/num"
)

// mode eigenvalues of the clamped-clamped buckling problem. Odd (symmetric)
// modes have N = (j+1)π; even (antisymmetric) modes solve tan(N/2) = N/2
var (
	N1 = 2.0 * math.Pi // first symmetric mode
	N3 = 4.0 * math.Pi // second symmetric mode
)

// OddEigen returns the eigenvalue of symmetric mode j = 1, 3, 5, ...
func OddEigen(j int) float64 {
	return float64(j+1) * math.Pi
}

// EvenEigen returns the eigenvalue of antisymmetric mode j = 2, 4, 6, ...
// The first one is N₂ ≈ 2.86π.
func EvenEigen(j int) (N float64, err error) {
	k := (j - 2) / 2
	a := (2.0*float64(k) + 3.0) * math.Pi / 2.0 // asymptote of tan(x) just above the root
	x := []float64{a - 1.0/a}
	var nls num.NlSolver
	defer nls.Clean()
	ffcn := func(fx, y []float64) error {
		fx[0] = math.Tan(y[0]) - y[0]
		return nil
	}
	Jfcn := func(dfdx [][]float64, y []float64) error {
		t := math.Tan(y[0])
		dfdx[0][0] = t * t
		return nil
	}
	nls.Init(1, ffcn, nil, Jfcn, true, false, nil)
	if err = nls.Solve(x, true); err != nil {
		return 0, chk.Err("ana: cannot solve tan(x)=x for mode %d:\n%v", j, err)
	}
	return 2.0 * x[0], nil
}

// ModeOdd evaluates the symmetric mode shape W(X) = 1 - cos(N X) at the
// normalised coordinate X ∈ [0,1]
func ModeOdd(X, N float64) float64 {
	return 1.0 - math.Cos(N*X)
}

// ModeEven evaluates the antisymmetric mode shape
// W(X) = 1 - 2X - cos(N X) + 2 sin(N X)/N
func ModeEven(X, N float64) float64 {
	return 1.0 - 2.0*X - math.Cos(N*X) + 2.0*math.Sin(N*X)/N
}

// Roots1 returns the two positive roots of the first-kind (cubic) solution.
// ok is false when Q is below the bistability threshold and the cubic has no
// real roots besides Δ = 0.
func Roots1(Q float64) (r1, r2 float64, ok bool) {
	disc := 0.25 - 4.0/(3.0*Q*Q)
	if disc < 0 {
		return 0, 0, false
	}
	s := math.Sqrt(disc)
	return 1.5 - s, 1.5 + s, true
}

// Force1 returns the first-kind normalised force-displacement relation
//
//	F(Δ) = (3π⁴Q²/2) Δ (Δ-r1) (Δ-r2)
//
// with F = f·l³/(EIh) and Δ = d/h. NaN is returned below the bistability
// threshold.
func Force1(Δ, Q float64) float64 {
	r1, r2, ok := Roots1(Q)
	if !ok {
		return math.NaN()
	}
	coeff := 3.0 * math.Pow(math.Pi, 4) * Q * Q / 2.0
	return coeff * Δ * (Δ - r1) * (Δ - r2)
}

// Force3 returns the third-kind solution: the straight line followed while
// the second mode is constrained and the third mode carries the buckling
//
//	F(Δ) = 8π⁴ - 6π⁴Δ
func Force3(Δ float64) float64 {
	coeff := N1 * N1 * (N3*N3 - N1*N1) / 8.0
	offset := N3 * N3 / (N3*N3 - N1*N1)
	return coeff * (offset - Δ)
}

// Force2 returns the second-kind solution: the line followed when the
// antisymmetric second mode is free to develop (single unguided beam)
func Force2(Δ float64) (F float64, err error) {
	N2, err := EvenEigen(2)
	if err != nil {
		return
	}
	coeff := N1 * N1 * (N2*N2 - N1*N1) / 8.0
	offset := N2 * N2 / (N2*N2 - N1*N1)
	return coeff * (offset - Δ), nil
}
