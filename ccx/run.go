// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ccx

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/neekonsu/mcw-mems-photonic-switch/inp"
	"github.com/neekonsu/mcw-mems-photonic-switch/msh"
)

// Runner invokes the external solver on a prepared job directory and
// returns whatever the process printed. Implementations other than the real
// binary (e.g. canned results in tests) plug in here.
type Runner interface {
	Run(ctx context.Context, dir, jobname string) (stdout string, err error)
}

// ExecRunner runs the solver binary as a subprocess. A positive Timeout
// bounds the wall-clock time of every invocation.
type ExecRunner struct {
	Bin     string // solver executable; e.g. "ccx"
	Timeout time.Duration
}

// Run executes the solver on dir/jobname.inp
func (o ExecRunner) Run(ctx context.Context, dir, jobname string) (stdout string, err error) {
	if o.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.Timeout)
		defer cancel()
	}
	cmd := exec.CommandContext(ctx, o.Bin, "-i", jobname)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return string(out), chk.Err("ccx: solver process failed:\n%v", err)
	}
	return string(out), nil
}

// Adapter drives the external solver one displacement step at a time. Each
// step is self-contained and idempotent: it writes a fresh deck, runs the
// solver and parses the reaction force; the adapter never retries on its
// own. On failure the raw solver output is preserved for diagnosis.
type Adapter struct {
	Dir     string // job directory
	Jobname string // basename of deck and results files
	Runner  Runner
}

// SolveStep solves one prescribed-displacement step and returns the shuttle
// reaction force along the push direction. raw holds the solver output and
// the results-file text (also on failure).
func (o *Adapter) SolveStep(ctx context.Context, m *msh.Mesh, sets *msh.Sets, mat *inp.MaterialSpec, thickness, dx float64) (force float64, raw string, err error) {
	deck, err := Deck(m, sets, mat, thickness, dx)
	if err != nil {
		return
	}
	var buf bytes.Buffer
	buf.WriteString(deck)
	io.WriteFileD(o.Dir, o.Jobname+".inp", &buf)
	raw, err = o.Runner.Run(ctx, o.Dir, o.Jobname)
	if err != nil {
		return
	}
	dat, err := os.ReadFile(filepath.Join(o.Dir, o.Jobname+".dat"))
	if err != nil {
		return 0, raw, chk.Err("ccx: results file is missing:\n%v", err)
	}
	raw += "\n" + string(dat)
	fy, err := ParseForce(string(dat))
	if err != nil {
		return 0, raw, err
	}

	// the solver reports the force exerted on the shuttle; the push force
	// has the opposite sign of the prescribed (downward) displacement
	return -fy, raw, nil
}
