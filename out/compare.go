// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/plt"
	"github.com/cpmech/gosl/utl"
)

// Report is the outcome of a cross-method comparison: all usable series
// interpolated onto one shared displacement grid, the pairwise differences
// and the per-method critical values
type Report struct {
	Methods  []string    // usable methods, same order as the matrices below
	Excluded []string    // methods whose series were entirely failed
	Nfail    []int       // failed samples per usable method
	Crit     []Critical  // per-method critical values
	Grid     []float64   // shared displacement grid [µm]
	Aligned  [][]float64 // [method][grid] interpolated forces [µN]
	MaxDiff  [][]float64 // pairwise max |ΔF| [µN]
	Rms      [][]float64 // pairwise root-mean-square ΔF [µN]
}

// Compare aligns the series on the overlap of their displacement ranges.
// Entirely-failed series are excluded (and flagged), never averaged in;
// failed samples of usable series are bridged by interpolation between their
// converged neighbours.
func Compare(all []*FdSeries, ngrid int) (r *Report, err error) {
	if ngrid < 2 {
		return nil, chk.Err("out: comparison grid needs at least 2 points: ngrid=%d", ngrid)
	}
	r = new(Report)
	var usable []*FdSeries
	for _, s := range all {
		if s.AllFailed() {
			r.Excluded = append(r.Excluded, s.Method)
			continue
		}
		usable = append(usable, s)
		r.Methods = append(r.Methods, s.Method)
		nf := 0
		for _, ok := range s.Ok {
			if !ok {
				nf++
			}
		}
		r.Nfail = append(r.Nfail, nf)
		c, _ := s.CriticalValues()
		r.Crit = append(r.Crit, c)
	}
	if len(usable) == 0 {
		return nil, chk.Err("out: no usable series to compare")
	}

	// shared grid over the overlap of all converged ranges
	lo, hi := math.Inf(-1), math.Inf(1)
	for _, s := range usable {
		dx, _ := s.packed()
		lo = math.Max(lo, dx[0])
		hi = math.Min(hi, dx[len(dx)-1])
	}
	if !(hi > lo) {
		return nil, chk.Err("out: series displacement ranges do not overlap: [%g,%g]", lo, hi)
	}
	r.Grid = utl.LinSpace(lo, hi, ngrid)

	// align
	r.Aligned = make([][]float64, len(usable))
	for i, s := range usable {
		dx, f := s.packed()
		r.Aligned[i] = make([]float64, ngrid)
		for j, x := range r.Grid {
			r.Aligned[i][j] = interp(dx, f, x)
		}
	}

	// pairwise differences
	nm := len(usable)
	r.MaxDiff = make([][]float64, nm)
	r.Rms = make([][]float64, nm)
	for i := 0; i < nm; i++ {
		r.MaxDiff[i] = make([]float64, nm)
		r.Rms[i] = make([]float64, nm)
		for j := 0; j < nm; j++ {
			if i == j {
				continue
			}
			md, ss := 0.0, 0.0
			for k := range r.Grid {
				d := r.Aligned[i][k] - r.Aligned[j][k]
				md = math.Max(md, math.Abs(d))
				ss += d * d
			}
			r.MaxDiff[i][j] = md
			r.Rms[i][j] = math.Sqrt(ss / float64(ngrid))
		}
	}
	return
}

// Table renders a plain-text summary of the comparison
func (o *Report) Table() (l string) {
	l = io.Sf("%-12s %7s %10s %10s %10s %10s %10s\n", "method", "nfail", "Fpush", "Fpop", "ratio", "dpush", "dsnap")
	for i, m := range o.Methods {
		c := o.Crit[i]
		l += io.Sf("%-12s %7d %10.4f %10.4f %10.4f %10.4f %10.4f\n", m, o.Nfail[i], c.Fpush, c.Fpop, c.Ratio, c.Dpush, c.Dsnap)
	}
	for _, m := range o.Excluded {
		l += io.Sf("%-12s entirely failed: excluded\n", m)
	}
	for i := range o.Methods {
		for j := i + 1; j < len(o.Methods); j++ {
			l += io.Sf("%s vs %s: max|ΔF|=%.4g rms=%.4g\n", o.Methods[i], o.Methods[j], o.MaxDiff[i][j], o.Rms[i][j])
		}
	}
	return
}

// interp evaluates the piecewise-linear curve (dx,f) at x, clamping at the
// range ends
func interp(dx, f []float64, x float64) float64 {
	n := len(dx)
	if x <= dx[0] {
		return f[0]
	}
	if x >= dx[n-1] {
		return f[n-1]
	}
	for i := 1; i < n; i++ {
		if x <= dx[i] {
			s := (x - dx[i-1]) / (dx[i] - dx[i-1])
			return f[i-1] + s*(f[i]-f[i-1])
		}
	}
	return f[n-1]
}

// colors for the overlay plot, one per method
var pltColors = []string{"b", "r", "g", "m", "orange"}

// PlotOverlay draws all series on one force-displacement axes and saves the
// figure under dirout
func PlotOverlay(all []*FdSeries, dirout, fnkey string) (err error) {
	plt.Reset(false, nil)
	for i, s := range all {
		dx, f := s.packed()
		if len(dx) == 0 {
			continue
		}
		plt.Plot(dx, f, &plt.A{C: pltColors[i%len(pltColors)], Ls: "-", M: ".", L: s.Method})
	}
	plt.Gll("$\\delta$ [$\\mu$m]", "$F$ [$\\mu$N]", nil)
	plt.Save(dirout, fnkey)
	return nil
}
