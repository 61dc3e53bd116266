/*
 * run.go, part of flint.
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
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/rmera/flint"
)

// File and directory names inside a run.
const (
	prefix         = "run_"
	mutantPrefix   = "mutant_"
	OriginalDir    = "original"
	OrigReceptor   = "orig_receptor.pdb"
	OrigLigand     = "orig_ligand.sdf"
	InputsFile     = "inputs.txt"
	SummaryFile    = "summary.tsv"
	PlotFile       = "summary.png"
	ManifestFile   = "run.yaml"
	ArchiveExt     = ".tar.zst"
	mutantReceptor = "_whole.pdb"
	mutantLigand   = ".sdf"
)

// Run is a numbered directory holding the results of one generation.
type Run struct {
	Dir string
	N   int
}

func (R *Run) String() string {
	return filepath.Base(R.Dir)
}

// Count returns the number of directories in outdir, creating outdir if needed.
func Count(outdir string) (int, error) {
	if err := os.MkdirAll(outdir, 0o755); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	entries, err := os.ReadDir(outdir)
	if err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	n := 0
	for _, e := range entries {
		if e.IsDir() {
			n++
		}
	}
	return n, nil
}

// Create makes a new run directory in outdir. The run is numbered after the
// number of directories already in outdir. If that name is taken, the next free number is used.
func Create(outdir string) (*Run, error) {
	errid := "Create"
	n, err := Count(outdir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	for ; ; n++ {
		dir := filepath.Join(outdir, prefix+strconv.Itoa(n))
		err := os.Mkdir(dir, 0o755)
		if err == nil {
			return &Run{Dir: dir, N: n}, nil
		}
		if !os.IsExist(err) {
			return nil, fmt.Errorf("%s: %w", errid, err)
		}
	}
}

// Open returns the run in the directory dir, which must be named run_<n>.
func Open(dir string) (*Run, error) {
	n, ok := number(filepath.Base(dir), prefix)
	if !ok {
		return nil, fmt.Errorf("Open: %s is not a run directory", dir)
	}
	fi, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("Open: %w", err)
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("Open: %s is not a directory", dir)
	}
	return &Run{Dir: dir, N: n}, nil
}

// List returns the runs in outdir, sorted by number.
// Other directories and files in outdir are ignored.
func List(outdir string) ([]*Run, error) {
	entries, err := os.ReadDir(outdir)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	runs := make([]*Run, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if n, ok := number(e.Name(), prefix); ok {
			runs = append(runs, &Run{Dir: filepath.Join(outdir, e.Name()), N: n})
		}
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].N < runs[j].N })
	return runs, nil
}

// number parses the integer after pref in name.
func number(name, pref string) (int, bool) {
	if !strings.HasPrefix(name, pref) {
		return 0, false
	}
	n, err := strconv.Atoi(name[len(pref):])
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// MutantDir returns the directory for the mutant from batch b of the run in rundir.
func MutantDir(rundir string, b int) string {
	return filepath.Join(rundir, mutantPrefix+strconv.Itoa(b))
}

// MutantFiles returns the receptor and ligand files for the mutant from batch b
// of the run in rundir.
func MutantFiles(rundir string, b int) (string, string) {
	d := MutantDir(rundir, b)
	s := strconv.Itoa(b)
	return filepath.Join(d, s+mutantReceptor), filepath.Join(d, s+mutantLigand)
}

// MutantName returns the summary ID of the mutant from batch b.
func MutantName(b int) string {
	return mutantPrefix + strconv.Itoa(b)
}

// MutantPaths returns the receptor and ligand files of the mutant from batch b.
func (R *Run) MutantPaths(b int) (string, string) {
	return MutantFiles(R.Dir, b)
}

// OriginalPaths returns the stored copies of the input receptor and ligand.
func (R *Run) OriginalPaths() (string, string) {
	d := filepath.Join(R.Dir, OriginalDir)
	return filepath.Join(d, OrigReceptor), filepath.Join(d, OrigLigand)
}

// NMutants returns the number of mutant directories in the run.
func (R *Run) NMutants() (int, error) {
	entries, err := os.ReadDir(R.Dir)
	if err != nil {
		return 0, fmt.Errorf("Run/NMutants: %w", err)
	}
	n := 0
	for _, e := range entries {
		if _, ok := number(e.Name(), mutantPrefix); ok && e.IsDir() {
			n++
		}
	}
	return n, nil
}

// Check returns an error if the original inputs or the files of any mutant are missing
// from the run, or if the run has no mutants.
func (R *Run) Check() error {
	errid := "Run/Check"
	rec, lig := R.OriginalPaths()
	if err := nonEmpty(rec, lig); err != nil {
		return fmt.Errorf("%s: original: %w", errid, err)
	}
	n, err := R.NMutants()
	if err != nil {
		return fmt.Errorf("%s: %w", errid, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %s has no mutants", errid, R)
	}
	for b := 0; b < n; b++ {
		rec, lig := R.MutantPaths(b)
		if err := nonEmpty(rec, lig); err != nil {
			return fmt.Errorf("%s: %s: %w", errid, MutantName(b), err)
		}
	}
	return nil
}

func nonEmpty(files ...string) error {
	for _, f := range files {
		fi, err := os.Stat(f)
		if err != nil {
			return err
		}
		if fi.Size() == 0 {
			return fmt.Errorf("%s is empty", f)
		}
	}
	return nil
}

// Remove deletes the run directory and everything in it.
func (R *Run) Remove() error {
	return os.RemoveAll(R.Dir)
}

// HasSummary returns true if the run has already been scored.
func (R *Run) HasSummary() bool {
	fi, err := os.Stat(R.SummaryPath())
	return err == nil && fi.Mode().IsRegular()
}

// SummaryPath returns the path of the summary file of the run.
func (R *Run) SummaryPath() string {
	return filepath.Join(R.Dir, SummaryFile)
}

// StoreOriginals copies the input receptor and ligand into the run. Compressed
// inputs are stored decompressed.
func (R *Run) StoreOriginals(receptor, ligand string) error {
	errid := "Run/StoreOriginals"
	rec, lig := R.OriginalPaths()
	if err := os.MkdirAll(filepath.Dir(rec), 0o755); err != nil {
		return fmt.Errorf("%s: %w", errid, err)
	}
	if err := copyFile(receptor, rec); err != nil {
		return fmt.Errorf("%s: %w", errid, err)
	}
	if err := copyFile(ligand, lig); err != nil {
		return fmt.Errorf("%s: %w", errid, err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := flint.OpenInput(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// WriteInputs records the input files, and the id of the run, in inputs.txt.
func (R *Run) WriteInputs(receptor, ligand, id string) error {
	s := fmt.Sprintf("RECEPTOR: %s\nLIGAND: %s", receptor, ligand)
	if id != "" {
		s += "\nRUN: " + id
	}
	if err := os.WriteFile(filepath.Join(R.Dir, InputsFile), []byte(s), 0o644); err != nil {
		return fmt.Errorf("Run/WriteInputs: %w", err)
	}
	return nil
}

// Inputs reads inputs.txt and returns its fields, keyed by name (RECEPTOR, LIGAND, RUN).
func (R *Run) Inputs() (map[string]string, error) {
	b, err := os.ReadFile(filepath.Join(R.Dir, InputsFile))
	if err != nil {
		return nil, fmt.Errorf("Run/Inputs: %w", err)
	}
	ret := make(map[string]string, 3)
	for _, l := range strings.Split(string(b), "\n") {
		k, v, ok := strings.Cut(l, ": ")
		if ok {
			ret[k] = v
		}
	}
	return ret, nil
}
