// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data structures of the bistable-beam
// verification engine. All quantities are in a consistent µm / µN / MPa
// unit system.
package inp

import (
	"encoding/json"
	"math"
	"os"

	"github.com/cpmech/gosl/chk"
)

// QminBistable is the literature threshold of the bistability parameter
// Q = initialOffset/thickness below which a clamped-clamped beam with the
// second mode constrained cannot snap through [Qiu, Lang, Slocum 2004]
const QminBistable = 2.31

// BeamSpec holds the geometric definition of one CCS (centrally-clamped
// stepped) half-beam. The half-beam spans from the anchor at (0,0) to the
// shuttle attachment at (Span, InitialOffset), approaching both ends with
// horizontal tangent.
type BeamSpec struct {
	Span          float64 `json:"span"`          // half-beam span, anchor to shuttle [µm]
	FlexRatio     float64 `json:"flexRatio"`     // fraction of span occupied by the narrow flex segment
	FlexWidth     float64 `json:"flexWidth"`     // width of the flex segment [µm]
	RigidWidth    float64 `json:"rigidWidth"`    // width of the rigid segment [µm]
	InitialOffset float64 `json:"initialOffset"` // lateral offset h at the shuttle end [µm]
	Thickness     float64 `json:"thickness"`     // structural (out-of-plane) thickness [µm]
	TaperLength   float64 `json:"taperLength"`   // width blend length between segments [µm]
}

// MaterialSpec holds the isotropic elastic material data
type MaterialSpec struct {
	E       float64 `json:"E"`   // Young's modulus [MPa]
	Nu      float64 `json:"nu"`  // Poisson's ratio
	Rho     float64 `json:"rho"` // density [µg/µm³]
	Comment string  `json:"comment"`
}

// SweepData controls one displacement sweep
type SweepData struct {
	Dmax    float64 `json:"dmax"`    // final prescribed displacement magnitude; the sweep runs 0 → -Dmax [µm]
	Nsteps  int     `json:"nsteps"`  // number of displacement steps
	FbTol   float64 `json:"fbtol"`   // Newton convergence: residual reduction w.r.t. first iteration
	FbMin   float64 `json:"fbmin"`   // Newton convergence: smallest acceptable residual
	NmaxIt  int     `json:"nmaxit"`  // maximum number of Newton iterations per step
	Restart bool    `json:"restart"` // start each step from the zero/default guess instead of continuation
}

// Simulation gathers all input data for one verification run
type Simulation struct {
	Beam   BeamSpec     `json:"beam"`
	Mat    MaterialSpec `json:"material"`
	Sweep  SweepData    `json:"sweep"`
	Nmodes int          `json:"nmodes"` // analytical model: number of odd buckling modes
}

// Q returns the bistability parameter h/t
func (o *BeamSpec) Q() float64 { return o.InitialOffset / o.Thickness }

// Bistable tells whether snap-through is possible at all for this geometry
// (axially constrained case)
func (o *BeamSpec) Bistable() bool { return o.Q() > QminBistable }

// Validate checks the beam data, failing fast before any geometry is produced
func (o *BeamSpec) Validate() (err error) {
	if !(o.Span > 0) || !(o.FlexWidth > 0) || !(o.RigidWidth > 0) ||
		!(o.InitialOffset > 0) || !(o.Thickness > 0) || !(o.TaperLength > 0) {
		return chk.Err("beam: all lengths and widths must be strictly positive: %+v", *o)
	}
	if !(o.FlexRatio > 0 && o.FlexRatio < 0.5) {
		return chk.Err("beam: flexRatio must obey 0 < flexRatio < 0.5: flexRatio=%g", o.FlexRatio)
	}
	if o.TaperLength >= o.FlexRatio*o.Span {
		return chk.Err("beam: taperLength=%g does not fit within the flex segment (flexRatio*span=%g)", o.TaperLength, o.FlexRatio*o.Span)
	}
	for _, v := range []float64{o.Span, o.FlexWidth, o.RigidWidth, o.InitialOffset, o.Thickness, o.TaperLength} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return chk.Err("beam: non-finite entry in beam data: %+v", *o)
		}
	}
	return
}

// Validate checks the material data
func (o *MaterialSpec) Validate() (err error) {
	if !(o.E > 0) {
		return chk.Err("material: Young's modulus must be positive: E=%g", o.E)
	}
	if !(o.Nu > 0 && o.Nu < 0.5) {
		return chk.Err("material: Poisson's ratio must obey 0 < nu < 0.5: nu=%g", o.Nu)
	}
	if o.Rho < 0 {
		return chk.Err("material: density cannot be negative: rho=%g", o.Rho)
	}
	return
}

// Validate checks the sweep control data
func (o *SweepData) Validate() (err error) {
	if !(o.Dmax > 0) {
		return chk.Err("sweep: dmax must be positive: dmax=%g", o.Dmax)
	}
	if o.Nsteps < 2 {
		return chk.Err("sweep: at least 2 steps are required for the force derivative: nsteps=%d", o.Nsteps)
	}
	if !(o.FbTol > 0) || !(o.FbMin > 0) || o.NmaxIt < 1 {
		return chk.Err("sweep: invalid solver control: fbtol=%g fbmin=%g nmaxit=%d", o.FbTol, o.FbMin, o.NmaxIt)
	}
	return
}

// SetDefault sets default values corresponding to the poly-Si CCS half-beam
// used throughout the workbench
func (o *Simulation) SetDefault() {
	o.Beam = BeamSpec{
		Span:          20.0,
		FlexRatio:     0.3,
		FlexWidth:     0.5,
		RigidWidth:    0.9375,
		InitialOffset: 1.2,
		Thickness:     0.5,
		TaperLength:   2.0,
	}
	o.Mat = MaterialSpec{
		E:       160e3,
		Nu:      0.22,
		Rho:     2330e-18,
		Comment: "poly-Si in µm/µN/MPa",
	}
	o.Sweep = SweepData{
		Dmax:    2.0 * o.Beam.InitialOffset,
		Nsteps:  80,
		FbTol:   1e-8,
		FbMin:   1e-10,
		NmaxIt:  20,
		Restart: false,
	}
	o.Nmodes = 3
}

// Validate checks all input data
func (o *Simulation) Validate() (err error) {
	if err = o.Beam.Validate(); err != nil {
		return
	}
	if err = o.Mat.Validate(); err != nil {
		return
	}
	if err = o.Sweep.Validate(); err != nil {
		return
	}
	if o.Nmodes < 1 {
		return chk.Err("nmodes must be at least 1: nmodes=%d", o.Nmodes)
	}
	return
}

// ReadSim reads a simulation input (.sim) JSON file. Defaults are applied
// first, then overridden by the file contents, then the result is validated.
func ReadSim(fnamepath string) (o *Simulation, err error) {
	o = new(Simulation)
	o.SetDefault()
	b, err := os.ReadFile(fnamepath)
	if err != nil {
		return nil, chk.Err("cannot read simulation file %q:\n%v", fnamepath, err)
	}
	if err = json.Unmarshal(b, o); err != nil {
		return nil, chk.Err("cannot decode simulation file %q:\n%v", fnamepath, err)
	}
	if err = o.Validate(); err != nil {
		return nil, err
	}
	return
}
