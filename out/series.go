// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out persists force-displacement series, extracts the critical
// values of bistable sweeps and compares series produced by the different
// solution methods
package out

import (
	"bytes"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// FdSeries is one force-displacement curve. The persisted table is the sole
// interchange format between methods: column 1 is the prescribed shuttle
// displacement [µm], column 2 the reaction force along the push direction
// [µN], column 3 a 0/1 convergence marker. A failed sample keeps its row so
// "not solved" never reads as "force = 0".
type FdSeries struct {
	Method string    // producing method; e.g. "analytical", "fem", "ccx"
	Dx     []float64 // prescribed displacements [µm]
	F      []float64 // reaction forces [µN]; NaN where !Ok
	Ok     []bool    // per-sample convergence
}

// Append adds one sample
func (o *FdSeries) Append(dx, f float64, ok bool) {
	o.Dx = append(o.Dx, dx)
	o.F = append(o.F, f)
	o.Ok = append(o.Ok, ok)
}

// AllFailed tells whether no sample converged at all
func (o *FdSeries) AllFailed() bool {
	for _, ok := range o.Ok {
		if ok {
			return false
		}
	}
	return true
}

// Save writes the series table to dirout/fnkey.res
func (o *FdSeries) Save(dirout, fnkey string) {
	var buf bytes.Buffer
	io.Ff(&buf, "# method %s\n", o.Method)
	io.Ff(&buf, "# dx[um] F[uN] ok\n")
	for i := range o.Dx {
		k := 0
		if o.Ok[i] {
			k = 1
		}
		io.Ff(&buf, "%.10g %.10g %d\n", o.Dx[i], o.F[i], k)
	}
	io.WriteFileVD(dirout, fnkey+".res", &buf)
}

// Load reads one series table back
func Load(fnamepath string) (o *FdSeries, err error) {
	b, err := os.ReadFile(fnamepath)
	if err != nil {
		return nil, chk.Err("out: cannot read series %q:\n%v", fnamepath, err)
	}
	o = new(FdSeries)
	for i, line := range strings.Split(string(b), "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "#" {
			if len(fields) > 2 && fields[1] == "method" {
				o.Method = fields[2]
			}
			continue
		}
		if len(fields) != 3 {
			return nil, chk.Err("out: %q line %d: need 3 columns, got %d", fnamepath, i+1, len(fields))
		}
		dx, e1 := strconv.ParseFloat(fields[0], 64)
		f, e2 := strconv.ParseFloat(fields[1], 64)
		k, e3 := strconv.Atoi(fields[2])
		if e1 != nil || e2 != nil || e3 != nil {
			return nil, chk.Err("out: %q line %d: malformed row %q", fnamepath, i+1, line)
		}
		o.Append(dx, f, k == 1)
	}
	if len(o.Dx) == 0 {
		return nil, chk.Err("out: %q holds no samples", fnamepath)
	}
	return
}

// Critical holds the characteristic values of one bistable sweep. The push
// force is the signed peak before the first zero crossing of the force; a
// curve that never crosses zero has no snap-through and reports Fpush = 0
// with NaN for Dsnap and Ratio.
type Critical struct {
	Fpush float64 // peak resisting force before the snap [µN]; 0 for a monotonic curve
	Dpush float64 // displacement at Fpush [µm]
	Fpop  float64 // most negative force of the sweep [µN]
	Dpop  float64 // displacement at Fpop [µm]
	Dsnap float64 // displacement at the first zero crossing [µm]; NaN when none
	Ratio float64 // |Fpop/Fpush|; NaN when there is no crossing
}

// CriticalValues extracts the push and pop peaks and the snap displacement
// from the converged samples
func (o *FdSeries) CriticalValues() (c Critical, err error) {
	if o.AllFailed() {
		return c, chk.Err("out: series %q is entirely failed", o.Method)
	}
	dx, f := o.packed()

	// pop peak over the whole sweep
	c.Fpop = math.Inf(1)
	for i := range f {
		if f[i] < c.Fpop {
			c.Fpop, c.Dpop = f[i], dx[i]
		}
	}

	// first crossing from resisting to assisting force
	c.Dsnap, c.Ratio = math.NaN(), math.NaN()
	icross := -1
	for i := 1; i < len(f); i++ {
		if f[i-1] > 0 && f[i] <= 0 {
			icross = i
			c.Dsnap = dx[i-1] + (dx[i]-dx[i-1])*f[i-1]/(f[i-1]-f[i])
			break
		}
	}
	if icross < 0 {
		return // monotonic curve: no snap and no push peak
	}

	// push peak over the samples before the crossing
	for i := 0; i < icross; i++ {
		if f[i] > c.Fpush {
			c.Fpush, c.Dpush = f[i], dx[i]
		}
	}
	c.Ratio = math.Abs(c.Fpop / c.Fpush)
	return
}

// Equilibria walks outward from the force minimum to the nearest zero
// crossings on each side; for a bistable curve these are the two stable
// equilibrium displacements. ok is false when no crossing exists.
func (o *FdSeries) Equilibria() (d1, d2 float64, ok bool) {
	dx, f := o.packed()
	n := len(f)
	if n < 3 {
		return
	}

	// interior force minimum, trimming the edge tenth on each side
	trim := n / 10
	if trim < 1 {
		trim = 1
	}
	ipeak := trim
	for i := trim; i < n-trim; i++ {
		if f[i] < f[ipeak] {
			ipeak = i
		}
	}

	var left, right bool
	for i := ipeak; i > 0; i-- {
		if f[i]*f[i-1] < 0 {
			frac := math.Abs(f[i-1]) / (math.Abs(f[i-1]) + math.Abs(f[i]))
			d1 = dx[i-1] + (dx[i]-dx[i-1])*frac
			left = true
			break
		}
	}
	for i := ipeak; i < n-1; i++ {
		if f[i]*f[i+1] < 0 {
			frac := math.Abs(f[i]) / (math.Abs(f[i]) + math.Abs(f[i+1]))
			d2 = dx[i] + (dx[i+1]-dx[i])*frac
			right = true
		}
	}
	return d1, d2, left && right
}

// packed returns the converged samples only
func (o *FdSeries) packed() (dx, f []float64) {
	for i := range o.Dx {
		if o.Ok[i] {
			dx = append(dx, o.Dx[i])
			f = append(f, o.F[i])
		}
	}
	return
}
