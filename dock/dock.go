/*
 * dock.go, part of flint.
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

package dock

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"

	"github.com/google/uuid"
	"github.com/rmera/flint"
	"gonum.org/v1/gonum/stat"
)

// Handle allows to run docking calculations using different programs.
type Handle interface {

	//Sets the name for the job, used for input
	//and output files.
	SetName(name string)

	//Sets the directory where input and output files are placed.
	SetWorkDir(dir string)

	//BuildInput builds an input for the docking program from already
	//prepared receptor and ligand files and the docking box.
	BuildInput(receptor, ligand string, box flint.Box) error

	//Run runs the docking program for a calculation previously set,
	//and waits for it to finish.
	Run(ctx context.Context) error

	//Energies returns the docking free energy, in kcal/mol, of each pose
	//obtained in the last calculation.
	Energies() ([]float64, error)
}

// Options contains the parameters for docking calculations.
// Note that the defaults are NOT considered part of the API, so they can always change.
type Options struct {
	Vina           string  //path and name of the Vina executable
	Obabel         string  //path and name of the Open Babel executable
	Exhaustiveness int     //Vina search exhaustiveness
	NumModes       int     //max number of poses
	EnergyRange    float64 //max energy difference, in kcal/mol, between the best and worst pose
	Padding        float64 //A added around the ligand to build the box
	CPU            int     //0 lets Vina decide
	Seed           int     //0 lets Vina choose a random seed
	WorkDir        string  //parent of the scratch directories, the system temp dir if empty
	Keep           bool    //keep scratch directories after the calculation
	Verbose        int
}

// DefaultOptions returns Options with their default values.
func DefaultOptions() *Options {
	O := new(Options)
	O.SetDefaults()
	return O
}

// SetDefaults sets the calculation parameters to their defaults.
func (O *Options) SetDefaults() {
	O.Vina = "vina"
	O.Obabel = "obabel"
	O.Exhaustiveness = 8
	O.NumModes = 9
	O.EnergyRange = 3
	O.Padding = flint.DefaultBoxPadding
	O.CPU = runtime.NumCPU() / 2
}

// scratch creates a new, unique, scratch directory for one docking calculation.
// Several calculations can run in parallel as each one has its own directory.
func (O *Options) scratch() (string, error) {
	base := O.WorkDir
	if base == "" {
		base = os.TempDir()
	}
	dir := filepath.Join(base, "flint-dock-"+uuid.NewString())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// Dock computes the docking box around ligand, prepares both receptor and ligand and docks them
// with Vina. It returns the free energy, in kcal/mol, of every pose found.
func Dock(ctx context.Context, receptor, ligand string, O *Options) ([]float64, error) {
	errid := "Dock"
	if O == nil {
		O = DefaultOptions()
	}
	box, err := flint.ComputeBoxFiles(receptor, ligand, O.Padding)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	wrk, err := O.scratch()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	if !O.Keep {
		defer os.RemoveAll(wrk)
	}
	rec, err := Prepare(ctx, receptor, "receptor", wrk, O)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	lig, err := Prepare(ctx, ligand, "ligand", wrk, O)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	vina := NewVinaHandle(O)
	vina.SetWorkDir(wrk)
	vina.SetName("dock")
	if err := vina.BuildInput(rec, lig, box); err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	if O.Verbose >= 2 {
		log.Printf("%s: docking %s and %s, %s", errid, filepath.Base(receptor), filepath.Base(ligand), box)
	}
	if err := vina.Run(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	e, err := vina.Energies()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	return e, nil
}

// Score docks receptor and ligand and returns the mean docking free energy (kcal/mol) and
// mean dissociation constant (M) over all poses. If the docking fails, the error is logged
// and a single 0 kcal/mol energy is used, giving dG=0 and Kd=1. The error is also returned
// so callers can tell a failed docking apart.
func Score(ctx context.Context, receptor, ligand string, O *Options) (float64, float64, error) {
	energies, err := Dock(ctx, receptor, ligand, O)
	if err != nil {
		if ctx.Err() != nil {
			return 0, 0, ctx.Err()
		}
		log.Printf("\t\terror simulating docking: %v", err)
		energies = []float64{0}
	}
	kds := make([]float64, len(energies))
	for i, e := range energies {
		kds[i] = flint.DeltaG2Kd(e)
	}
	return stat.Mean(energies, nil), stat.Mean(kds, nil), err
}
