// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ccx

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/neekonsu/mcw-mems-photonic-switch/inp"
	"github.com/neekonsu/mcw-mems-photonic-switch/msh"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// twoTriMesh builds a minimal two-triangle strip with anchor and shuttle
// columns
func twoTriMesh() (*msh.Mesh, *msh.Sets) {
	m := new(msh.Mesh)
	m.Ndim = 2
	for i, c := range [][]float64{{0, 0}, {0, 1}, {2, 0}, {2, 1}} {
		m.Verts = append(m.Verts, &msh.Vert{Id: i, C: c})
	}
	m.Cells = []*msh.Cell{
		{Id: 0, Type: "tri3", Verts: []int{0, 2, 3}},
		{Id: 1, Type: "tri3", Verts: []int{0, 3, 1}},
	}
	return m, &msh.Sets{Anchor: []int{0, 1}, Shuttle: []int{2, 3}}
}

func Test_ccx01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ccx01. deck rendering")

	m, sets := twoTriMesh()
	mat := &inp.MaterialSpec{E: 160e3, Nu: 0.22}
	deck, err := Deck(m, sets, mat, 0.5, 0.75)
	if err != nil {
		tst.Errorf("Deck failed:\n%v", err)
		return
	}
	io.Pforan("%s\n", deck)

	for _, want := range []string{
		"*NODE, NSET=NALL",
		"*ELEMENT, TYPE=CPE3, ELSET=EALL",
		"1, 1, 3, 4", // 1-based connectivity
		"*NSET, NSET=ANCHOR",
		"*NSET, NSET=SHUTTLE",
		"*ELASTIC\n160000, 0.22",
		"*STEP, NLGEOM",
		"ANCHOR, 1, 2, 0",
		"SHUTTLE, 2, 2, -0.75",
		"*NODE PRINT, NSET=SHUTTLE, TOTALS=ONLY",
	} {
		if !strings.Contains(deck, want) {
			tst.Errorf("deck lacks %q", want)
			return
		}
	}

	// quadratic and 3D codes
	q, err := m.Order2()
	if err != nil {
		tst.Fatalf("Order2 failed:\n%v", err)
	}
	deck, err = Deck(q, sets, mat, 0.5, 0.1)
	if err != nil {
		tst.Errorf("Deck failed:\n%v", err)
		return
	}
	if !strings.Contains(deck, "TYPE=CPE6") {
		tst.Errorf("quadratic deck must use CPE6")
	}
	t3d, err := m.Extrude(0.5, 1)
	if err != nil {
		tst.Fatalf("Extrude failed:\n%v", err)
	}
	sets3, err := t3d.HalfBeamSets(1e-8)
	if err != nil {
		tst.Fatalf("HalfBeamSets failed:\n%v", err)
	}
	deck, err = Deck(t3d, sets3, mat, 0, 0.1)
	if err != nil {
		tst.Errorf("Deck failed:\n%v", err)
		return
	}
	if !strings.Contains(deck, "TYPE=C3D4") || !strings.Contains(deck, "SHUTTLE, 3, 3, 0") {
		tst.Errorf("3D deck must use C3D4 and clamp the out-of-plane dof")
	}
}

func Test_ccx02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ccx02. results parser takes fy of the last increment")

	dat := `
 total force (fx,fy,fz) for set SHUTTLE and time  0.2500000E+00

        1.0413E-02 -2.7719E-01  0.0000E+00

 total force (fx,fy,fz) for set SHUTTLE and time  0.5000000E+00

        2.0000E-02 -4.4000E-01  0.0000E+00

 total force (fx,fy,fz) for set SHUTTLE and time  0.1000000E+01

        3.1415E-02 -6.2800E-01  0.0000E+00
`
	fy, err := ParseForce(dat)
	if err != nil {
		tst.Errorf("ParseForce failed:\n%v", err)
		return
	}
	chk.Float64(tst, "fy", 1e-15, fy, -0.628)

	// missing record and malformed data are errors, not zeros
	if _, err := ParseForce("no forces here\n"); err == nil {
		tst.Errorf("missing record must be an error")
		return
	}
	if _, err := ParseForce(" total force (fx,fy,fz) for set S and time 1\n\n 1.0 oops 0.0\n"); err == nil {
		tst.Errorf("malformed float must be an error")
		return
	}
	if _, err := ParseForce(" total force (fx,fy,fz) for set S and time 1\n"); err == nil {
		tst.Errorf("header without data line must be an error")
	}
}

// cannedRunner pretends to be the external solver: it drops a fixed results
// file into the job directory
type cannedRunner struct {
	dat  string
	fail bool
}

func (o cannedRunner) Run(ctx context.Context, dir, jobname string) (string, error) {
	if o.fail {
		return "solver exploded", chk.Err("exit status 1")
	}
	var buf bytes.Buffer
	buf.WriteString(o.dat)
	io.WriteFileD(dir, jobname+".dat", &buf)
	return "job finished", nil
}

func Test_ccx03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ccx03. adapter step with a canned runner")

	m, sets := twoTriMesh()
	mat := &inp.MaterialSpec{E: 160e3, Nu: 0.22}
	dat := " total force (fx,fy,fz) for set SHUTTLE and time  0.1000000E+01\n\n  0.0000E+00 -1.2500E+00  0.0000E+00\n"
	a := &Adapter{Dir: "/tmp/mcw-mems-photonic-switch/ccx-test", Jobname: "beam", Runner: cannedRunner{dat: dat}}

	force, raw, err := a.SolveStep(context.Background(), m, sets, mat, 0.5, 0.3)
	if err != nil {
		tst.Errorf("SolveStep failed:\n%v", err)
		return
	}
	chk.Float64(tst, "force", 1e-15, force, 1.25)
	if !strings.Contains(raw, "job finished") || !strings.Contains(raw, "total force") {
		tst.Errorf("raw output must carry solver output and results text")
		return
	}

	// a failing solver keeps its raw output for diagnosis
	a.Runner = cannedRunner{fail: true}
	_, raw, err = a.SolveStep(context.Background(), m, sets, mat, 0.5, 0.3)
	if err == nil {
		tst.Errorf("failing solver must surface an error")
		return
	}
	if !strings.Contains(raw, "solver exploded") {
		tst.Errorf("raw output must be preserved on failure")
	}
}
