/*
 * summary.go, part of flint.
 *
 *
 * Copyright 2024 The Flint authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

package run

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// OriginalID is the summary ID of the docking of the original receptor and ligand.
const OriginalID = "original"

const header = "ID\tdelta_G\tKd\tmutations (AA)"

// Row is one entry of a run summary.
type Row struct {
	ID        string
	DeltaG    float64 //mean docking free energy, kcal/mol
	Kd        float64 //mean dissociation constant, M
	Mutations int     //number of mutated amino acids with respect to the original receptor
}

func (r *Row) String() string {
	return fmt.Sprintf("%s\t%s\t%s\t%d", r.ID, formatFloat(r.DeltaG), formatFloat(r.Kd), r.Mutations)
}

// Summary contains the docking results of a run. The first row is the original
// receptor, followed by the mutants in batch order.
type Summary struct {
	Rows []*Row
}

// NewSummary returns a summary with room for n mutants.
func NewSummary(n int) *Summary {
	return &Summary{Rows: make([]*Row, 0, n+1)}
}

// Add appends a row to the summary.
func (S *Summary) Add(id string, dg, kd float64, mutations int) {
	S.Rows = append(S.Rows, &Row{ID: id, DeltaG: dg, Kd: kd, Mutations: mutations})
}

// Original returns the row of the original receptor, or nil if absent.
func (S *Summary) Original() *Row {
	for _, r := range S.Rows {
		if r.ID == OriginalID {
			return r
		}
	}
	return nil
}

// Best returns the row with the lowest docking free energy, or nil for an empty summary.
func (S *Summary) Best() *Row {
	var best *Row
	for _, r := range S.Rows {
		if best == nil || r.DeltaG < best.DeltaG {
			best = r
		}
	}
	return best
}

// formatFloat writes floats the way the summaries have always been written:
// shortest representation, always with a decimal point or exponent.
func formatFloat(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	a := math.Abs(f)
	if a != 0 && (a < 1e-4 || a >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// WriteSummary writes S as tab-separated values, with a header line.
func WriteSummary(w io.Writer, S *Summary) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, header)
	for _, r := range S.Rows {
		fmt.Fprintln(bw, r.String())
	}
	return bw.Flush()
}

// ReadSummary parses a summary written by WriteSummary.
func ReadSummary(r io.Reader) (*Summary, error) {
	errid := "ReadSummary"
	sc := bufio.NewScanner(r)
	S := NewSummary(0)
	first := true
	for ln := 1; sc.Scan(); ln++ {
		line := strings.TrimRight(sc.Text(), "\r")
		if first {
			first = false
			if line != header {
				return nil, fmt.Errorf("%s: unexpected header %q", errid, line)
			}
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		f := strings.Split(line, "\t")
		if len(f) != 4 {
			return nil, fmt.Errorf("%s: line %d: expected 4 fields, got %d", errid, ln, len(f))
		}
		dg, err := strconv.ParseFloat(f[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%s: line %d: %w", errid, ln, err)
		}
		kd, err := strconv.ParseFloat(f[2], 64)
		if err != nil {
			return nil, fmt.Errorf("%s: line %d: %w", errid, ln, err)
		}
		m, err := strconv.Atoi(f[3])
		if err != nil {
			return nil, fmt.Errorf("%s: line %d: %w", errid, ln, err)
		}
		S.Add(f[0], dg, kd, m)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	if first {
		return nil, fmt.Errorf("%s: empty summary", errid)
	}
	return S, nil
}

// WriteSummary writes the summary file of the run. The file is written under a temporary
// name and then renamed, so a run is never seen as scored with an incomplete summary.
func (R *Run) WriteSummary(S *Summary) error {
	errid := "Run/WriteSummary"
	tmp := R.SummaryPath() + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("%s: %w", errid, err)
	}
	if err := WriteSummary(f, S); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("%s: %w", errid, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%s: %w", errid, err)
	}
	if err := os.Rename(tmp, R.SummaryPath()); err != nil {
		return fmt.Errorf("%s: %w", errid, err)
	}
	return nil
}

// Summary reads the summary file of the run.
func (R *Run) Summary() (*Summary, error) {
	f, err := os.Open(R.SummaryPath())
	if err != nil {
		return nil, fmt.Errorf("Run/Summary: %w", err)
	}
	defer f.Close()
	return ReadSummary(f)
}
