// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Verification workbench for bistable MEMS beams: runs the analytical
// energy-minimisation model, the in-process total Lagrangian solver and an
// external CalculiX-style solver over a displacement sweep, persists the
// force-displacement series and compares them across methods.
package main

import (
	"context"
	"sync"
	"time"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"

	"github.com/neekonsu/mcw-mems-photonic-switch/ana"
	"github.com/neekonsu/mcw-mems-photonic-switch/ccx"
	"github.com/neekonsu/mcw-mems-photonic-switch/fem"
	"github.com/neekonsu/mcw-mems-photonic-switch/geo"
	"github.com/neekonsu/mcw-mems-photonic-switch/inp"
	"github.com/neekonsu/mcw-mems-photonic-switch/msh"
	"github.com/neekonsu/mcw-mems-photonic-switch/out"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("\nERROR: %v\n", err)
			chk.Verbose = true
			for i := 5; i > 3; i-- {
				chk.CallerInfo(i)
			}
		}
	}()

	// read input parameters
	fnamepath, _ := io.ArgToFilename(0, "beam", ".sim", false)
	method := io.ArgToString(1, "all")
	dirout := io.ArgToString(2, "/tmp/mcw-mems-photonic-switch")
	lcFlex := io.ArgToFloat(3, 0.5)
	lcRigid := io.ArgToFloat(4, 1.0)
	ccxBin := io.ArgToString(5, "")
	verbose := io.ArgToBool(6, true)

	if verbose {
		io.Pf("\n%v\n", io.ArgsTable("INPUT ARGUMENTS",
			"simulation file", "fnamepath", fnamepath,
			"method: ana, fem, ccx, all or compare", "method", method,
			"output directory", "dirout", dirout,
			"element size in flex segments", "lcFlex", lcFlex,
			"element size in rigid segments", "lcRigid", lcRigid,
			"external solver binary (enables ccx)", "ccxBin", ccxBin,
			"show messages", "verbose", verbose,
		))
	}

	// comparing persisted series needs no solve
	if method == "compare" {
		compare(dirout)
		return
	}

	sim, err := inp.ReadSim(fnamepath)
	if err != nil {
		chk.Panic("cannot load simulation:\n%v", err)
	}

	// the methods share only immutable input data; each sweep runs on its
	// own accumulator so they can proceed concurrently
	var wg sync.WaitGroup
	runs := []struct {
		name string
		on   bool
		fcn  func(*inp.Simulation) (*out.FdSeries, error)
	}{
		{"analytical", method == "ana" || method == "all", runAna},
		{"fem", method == "fem" || method == "all", func(s *inp.Simulation) (*out.FdSeries, error) {
			return runFem(s, lcFlex, lcRigid)
		}},
		{"ccx", (method == "ccx" || method == "all") && ccxBin != "", func(s *inp.Simulation) (*out.FdSeries, error) {
			return runCcx(s, lcFlex, lcRigid, ccxBin, dirout)
		}},
	}
	ran := false
	for _, r := range runs {
		if !r.on {
			continue
		}
		ran = true
		wg.Add(1)
		go func(name string, fcn func(*inp.Simulation) (*out.FdSeries, error)) {
			defer wg.Done()
			s, err := fcn(sim)
			if err != nil {
				io.PfRed("%s failed:\n%v\n", name, err)
				return
			}
			s.Save(dirout, name)
			if c, cerr := s.CriticalValues(); cerr == nil && verbose {
				io.Pf("%-12s Fpush=%.4f Fpop=%.4f ratio=%.4f dsnap=%.4f\n", name, c.Fpush, c.Fpop, c.Ratio, c.Dsnap)
			}
		}(r.name, r.fcn)
	}
	wg.Wait()
	if !ran {
		chk.Panic("unknown method %q", method)
	}
}

// runAna sweeps the analytical energy model
func runAna(sim *inp.Simulation) (s *out.FdSeries, err error) {
	model, err := ana.NewModel(&sim.Beam, &sim.Mat, sim.Nmodes, 1601)
	if err != nil {
		return
	}
	model.Restart = sim.Sweep.Restart
	dxs := utl.LinSpace(0, sim.Sweep.Dmax, sim.Sweep.Nsteps+1)
	pts := model.Sweep(dxs)
	s = &out.FdSeries{Method: "analytical"}
	for _, p := range pts {
		s.Append(p.Dx, p.F, p.Ok)
	}
	return
}

// buildMesh discretises the half-beam outline with quadratic triangles
func buildMesh(sim *inp.Simulation, lcFlex, lcRigid float64) (q *msh.Mesh, sets *msh.Sets, err error) {
	p, err := geo.NewHalf(&sim.Beam, 801)
	if err != nil {
		return
	}
	m, err := msh.NewBeamMesh(p.Polygon(), lcFlex, lcRigid, 2)
	if err != nil {
		return
	}
	if q, err = m.Order2(); err != nil {
		return
	}
	sets, err = q.HalfBeamSets(1e-8)
	return
}

// runFem sweeps the in-process total Lagrangian solver
func runFem(sim *inp.Simulation, lcFlex, lcRigid float64) (s *out.FdSeries, err error) {
	q, sets, err := buildMesh(sim, lcFlex, lcRigid)
	if err != nil {
		return
	}
	dom, err := fem.NewDomain(q, &sim.Mat, sim.Beam.Thickness)
	if err != nil {
		return
	}
	solver, err := fem.NewSolver(dom, sets, &sim.Sweep)
	if err != nil {
		return
	}
	res, err := solver.Run()
	if err != nil {
		return
	}
	s = &out.FdSeries{Method: "fem"}
	for _, r := range res {
		s.Append(r.Dx, r.F, r.Ok)
	}
	return
}

// runCcx sweeps the external solver, one subprocess per step
func runCcx(sim *inp.Simulation, lcFlex, lcRigid float64, bin, dirout string) (s *out.FdSeries, err error) {
	q, sets, err := buildMesh(sim, lcFlex, lcRigid)
	if err != nil {
		return
	}
	adapter := &ccx.Adapter{
		Dir:     io.Sf("%s/ccx", dirout),
		Jobname: "beam",
		Runner:  ccx.ExecRunner{Bin: bin, Timeout: 5 * time.Minute},
	}
	s = &out.FdSeries{Method: "ccx"}
	ctx := context.Background()
	for _, dx := range utl.LinSpace(0, sim.Sweep.Dmax, sim.Sweep.Nsteps+1)[1:] {
		force, raw, serr := adapter.SolveStep(ctx, q, sets, &sim.Mat, sim.Beam.Thickness, dx)
		if serr != nil {
			io.Pf("ccx step dx=%g failed: %v\n", dx, serr)
			io.Pf("%s\n", raw)
			s.Append(dx, 0, false)
			continue
		}
		s.Append(dx, force, true)
	}
	return
}

// compare loads whatever persisted series exist and reports the
// cross-method differences
func compare(dirout string) {
	var all []*out.FdSeries
	for _, name := range []string{"analytical", "fem", "ccx"} {
		s, err := out.Load(io.Sf("%s/%s.res", dirout, name))
		if err != nil {
			io.Pf("skipping %s: %v\n", name, err)
			continue
		}
		all = append(all, s)
	}
	r, err := out.Compare(all, 101)
	if err != nil {
		chk.Panic("comparison failed:\n%v", err)
	}
	io.Pf("\n%s\n", r.Table())
	if err = out.PlotOverlay(all, dirout, "fd-overlay"); err != nil {
		io.Pf("overlay plot skipped: %v\n", err)
	}
}
