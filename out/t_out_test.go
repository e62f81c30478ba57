// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// cubicSeries samples f(δ) = δ(δ-1)(δ-2), the shape of a bistable sweep
// with equilibria at 1 and 2
func cubicSeries(method string, n int) (o *FdSeries) {
	o = &FdSeries{Method: method}
	for _, dx := range utl.LinSpace(0, 2.5, n) {
		o.Append(dx, dx*(dx-1.0)*(dx-2.0), true)
	}
	return
}

func Test_out01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("out01. save/load round trip and critical values")

	s := cubicSeries("analytical", 101)
	s.F[7] = math.NaN()
	s.Ok[7] = false
	s.Save("/tmp/mcw-mems-photonic-switch", "ana")

	r, err := Load("/tmp/mcw-mems-photonic-switch/ana.res")
	if err != nil {
		tst.Errorf("Load failed:\n%v", err)
		return
	}
	if r.Method != "analytical" {
		tst.Errorf("method was not persisted: %q", r.Method)
		return
	}
	chk.IntAssert(len(r.Dx), len(s.Dx))
	for i := range s.Dx {
		if s.Ok[i] != r.Ok[i] {
			tst.Errorf("convergence marker lost at sample %d", i)
			return
		}
		if !s.Ok[i] {
			continue
		}
		chk.Float64(tst, io.Sf("F[%d]", i), 1e-9, r.F[i], s.F[i])
	}

	// critical values of the cubic: the push peak sits before the crossing
	// at δ=1 even though the curve ends higher than it started
	c, err := r.CriticalValues()
	if err != nil {
		tst.Errorf("CriticalValues failed:\n%v", err)
		return
	}
	io.Pforan("critical: %+v\n", c)
	fpk := 2.0 / (3.0 * math.Sqrt(3.0)) // cubic extremum
	chk.Float64(tst, "Fpush", 1e-3, c.Fpush, fpk)
	chk.Float64(tst, "Dpush", 0.03, c.Dpush, 1.0-1.0/math.Sqrt(3.0))
	chk.Float64(tst, "Fpop", 1e-3, c.Fpop, -fpk)
	chk.Float64(tst, "Dpop", 0.03, c.Dpop, 1.0+1.0/math.Sqrt(3.0))
	chk.Float64(tst, "ratio", 1e-9, c.Ratio, 1.0)
	chk.Float64(tst, "Dsnap", 1e-6, c.Dsnap, 1.0)

	// stable equilibria at the zero crossings around the force minimum
	d1, d2, ok := r.Equilibria()
	if !ok {
		tst.Errorf("equilibria not found")
		return
	}
	chk.Float64(tst, "d1", 1e-3, d1, 1.0)
	chk.Float64(tst, "d2", 1e-3, d2, 2.0)
}

func Test_out02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("out02. comparator aligns grids and excludes dead series")

	a := cubicSeries("analytical", 101)
	b := cubicSeries("fem", 73) // same curve on a different grid
	dead := &FdSeries{Method: "ccx"}
	for _, dx := range utl.LinSpace(0, 2.5, 11) {
		dead.Append(dx, math.NaN(), false)
	}

	r, err := Compare([]*FdSeries{a, b, dead}, 101)
	if err != nil {
		tst.Errorf("Compare failed:\n%v", err)
		return
	}
	chk.IntAssert(len(r.Methods), 2)
	chk.IntAssert(len(r.Excluded), 1)
	if r.Excluded[0] != "ccx" {
		tst.Errorf("dead series must be excluded: %v", r.Excluded)
		return
	}

	// identical curves on different grids stay close after alignment
	if r.MaxDiff[0][1] > 5e-3 {
		tst.Errorf("aligned difference too large: %g", r.MaxDiff[0][1])
		return
	}
	io.Pforan("%s\n", r.Table())

	// nothing usable at all is an error
	if _, err := Compare([]*FdSeries{dead}, 101); err == nil {
		tst.Errorf("all-failed comparison must be an error")
	}
}

func Test_out03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("out03. monotonic sweep has no snap")

	// a roller-supported beam never crosses zero: no push peak, no snap
	s := &FdSeries{Method: "fem"}
	for _, dx := range utl.LinSpace(0, 2, 21) {
		s.Append(dx, 0.8*dx, true)
	}
	c, err := s.CriticalValues()
	if err != nil {
		tst.Errorf("CriticalValues failed:\n%v", err)
		return
	}
	if c.Fpush != 0 {
		tst.Errorf("monotonic curve must report zero push force: %g", c.Fpush)
		return
	}
	if !math.IsNaN(c.Dsnap) || !math.IsNaN(c.Ratio) {
		tst.Errorf("monotonic curve must report NaN snap and ratio: %+v", c)
	}
}
