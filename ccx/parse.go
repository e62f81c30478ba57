// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ccx

import (
	"strconv"
	"strings"

	"github.com/cpmech/gosl/chk"
)

// forceHeader labels the summed reaction forces of a node set in the
// results file; the values follow on a separate data line
const forceHeader = "total force (fx,fy,fz) for set"

// ParseForce extracts the transverse (second component) reaction force from
// the results-file text. The header line is followed by a data line with
// three floats; in a multi-increment file the LAST occurrence belongs to the
// converged increment and wins.
func ParseForce(dat string) (fy float64, err error) {
	lines := strings.Split(dat, "\n")
	found := false
	for i, line := range lines {
		if !strings.Contains(strings.ToLower(line), forceHeader) {
			continue
		}
		vals, derr := dataLine(lines[i+1:])
		if derr != nil {
			return 0, chk.Err("ccx: header at line %d has no data line:\n%v", i+1, derr)
		}
		fy = vals[1]
		found = true
	}
	if !found {
		return 0, chk.Err("ccx: results contain no %q record", forceHeader)
	}
	return
}

// dataLine returns the three floats of the first non-empty line
func dataLine(lines []string) (vals []float64, err error) {
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 3 {
			return nil, chk.Err("ccx: malformed force data line %q", line)
		}
		vals = make([]float64, 3)
		for j := 0; j < 3; j++ {
			// a malformed float must mark the step failed, not panic
			v, perr := strconv.ParseFloat(fields[j], 64)
			if perr != nil {
				return nil, chk.Err("ccx: malformed float %q in force data line", fields[j])
			}
			vals[j] = v
		}
		return vals, nil
	}
	return nil, chk.Err("ccx: no data line after force header")
}
