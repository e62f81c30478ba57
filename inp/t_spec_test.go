// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_spec01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("spec01. defaults are valid")

	var sim Simulation
	sim.SetDefault()
	if err := sim.Validate(); err != nil {
		tst.Errorf("default simulation must validate:\n%v", err)
		return
	}

	// default beam is bistable
	chk.Float64(tst, "Q", 1e-15, sim.Beam.Q(), 2.4)
	if !sim.Beam.Bistable() {
		tst.Errorf("default beam (Q=%g) must be above the bistability threshold", sim.Beam.Q())
	}
}

func Test_spec02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("spec02. invalid data fails fast")

	var sim Simulation
	sim.SetDefault()

	sim.Beam.FlexRatio = 0.5
	if err := sim.Validate(); err == nil {
		tst.Errorf("flexRatio=0.5 must be rejected")
		return
	}
	sim.SetDefault()

	sim.Beam.FlexWidth = 0
	if err := sim.Validate(); err == nil {
		tst.Errorf("zero flexWidth must be rejected")
		return
	}
	sim.SetDefault()

	sim.Mat.Nu = 0.5
	if err := sim.Validate(); err == nil {
		tst.Errorf("nu=0.5 must be rejected")
		return
	}
	sim.SetDefault()

	sim.Sweep.Nsteps = 1
	if err := sim.Validate(); err == nil {
		tst.Errorf("single-step sweep must be rejected")
	}
}
