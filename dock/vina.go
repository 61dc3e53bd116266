/*
 * vina.go, part of flint.
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
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rmera/flint"
)

// ErrNoEnergies is returned when no poses can be read from a Vina output.
var ErrNoEnergies = errors.New("no docking energies found")

// VinaHandle represents an AutoDock Vina calculation.
type VinaHandle struct {
	command        string
	inputname      string
	wrkdir         string
	exhaustiveness int
	nummodes       int
	energyrange    float64
	cpu            int
	seed           int
}

// NewVinaHandle initializes and returns a Vina handle
// with the values in O, or the defaults if O is nil.
func NewVinaHandle(O *Options) *VinaHandle {
	if O == nil {
		O = DefaultOptions()
	}
	return &VinaHandle{
		command:        O.Vina,
		inputname:      "flint",
		exhaustiveness: O.Exhaustiveness,
		nummodes:       O.NumModes,
		energyrange:    O.EnergyRange,
		cpu:            O.CPU,
		seed:           O.Seed,
	}
}

// Command returns the path and name for the Vina executable
func (O *VinaHandle) Command() string {
	return O.command
}

// SetCommand sets the path and name for the Vina executable
func (O *VinaHandle) SetCommand(name string) {
	O.command = name
}

// SetName sets the name for the calculations
// which defines the input and output file names
func (O *VinaHandle) SetName(name string) {
	O.inputname = name
}

// SetWorkDir sets the name of the working directory for the calculations
func (O *VinaHandle) SetWorkDir(d string) {
	O.wrkdir = d
}

func (O *VinaHandle) file(ext string) string {
	return filepath.Join(O.wrkdir, O.inputname+ext)
}

// BuildInput writes the Vina configuration file for docking the
// PDBQT ligand on the PDBQT receptor inside box.
func (O *VinaHandle) BuildInput(receptor, ligand string, box flint.Box) error {
	errid := "VinaHandle/BuildInput"
	if receptor == "" || ligand == "" {
		return fmt.Errorf("%s: no receptor or ligand given", errid)
	}
	for j := 0; j < 3; j++ {
		if box.Size[j] <= 0 {
			return fmt.Errorf("%s: invalid box %s", errid, box)
		}
	}
	var b strings.Builder
	fmt.Fprintf(&b, "receptor = %s\n", receptor)
	fmt.Fprintf(&b, "ligand = %s\n", ligand)
	axes := []string{"x", "y", "z"}
	for j, a := range axes {
		fmt.Fprintf(&b, "center_%s = %.3f\n", a, box.Center[j])
	}
	for j, a := range axes {
		fmt.Fprintf(&b, "size_%s = %.3f\n", a, box.Size[j])
	}
	if O.exhaustiveness > 0 {
		fmt.Fprintf(&b, "exhaustiveness = %d\n", O.exhaustiveness)
	}
	if O.nummodes > 0 {
		fmt.Fprintf(&b, "num_modes = %d\n", O.nummodes)
	}
	if O.energyrange > 0 {
		fmt.Fprintf(&b, "energy_range = %.2f\n", O.energyrange)
	}
	if O.cpu > 0 {
		fmt.Fprintf(&b, "cpu = %d\n", O.cpu)
	}
	if O.seed != 0 {
		fmt.Fprintf(&b, "seed = %d\n", O.seed)
	}
	fmt.Fprintf(&b, "out = %s\n", O.file("_out.pdbqt"))
	if err := os.WriteFile(O.file(".conf"), []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("%s: %w", errid, err)
	}
	return nil
}

// Run runs Vina with the configuration previously built, and waits for it to finish.
// The standard output of Vina goes to a .log file. A run that exits cleanly but leaves
// no table of poses in the log is not a normal termination, and gives an error wrapping ErrNoEnergies.
func (O *VinaHandle) Run(ctx context.Context) error {
	errid := "VinaHandle/Run"
	err := run(ctx, O.wrkdir, O.file(".log"), O.command, "--config", O.file(".conf"))
	if err != nil {
		return fmt.Errorf("%s: %w", errid, err)
	}
	if _, err := O.Energies(); err != nil {
		return fmt.Errorf("%s: Vina did not terminate normally: %w", errid, err)
	}
	return nil
}

// Energies returns the affinity, in kcal/mol, of each pose found by Vina,
// best pose first, parsed from the results table in the log.
func (O *VinaHandle) Energies() ([]float64, error) {
	errid := "VinaHandle/Energies"
	f, err := os.Open(O.file(".log"))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	defer f.Close()
	e, err := parseVinaLog(bufio.NewScanner(f))
	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w", errid, O.file(".log"), err)
	}
	return e, nil
}

// parseVinaLog reads the table of poses that follows the "-----+" line of a Vina output.
func parseVinaLog(sc *bufio.Scanner) ([]float64, error) {
	energies := make([]float64, 0, 9)
	var intable bool
	for sc.Scan() {
		line := sc.Text()
		if !intable {
			intable = strings.HasPrefix(strings.TrimSpace(line), "-----+")
			continue
		}
		f := strings.Fields(line)
		if len(f) < 2 {
			break
		}
		if _, err := strconv.Atoi(f[0]); err != nil {
			break
		}
		e, err := strconv.ParseFloat(f[1], 64)
		if err != nil {
			return nil, fmt.Errorf("couldn't parse energy %q: %w", f[1], err)
		}
		energies = append(energies, e)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(energies) == 0 {
		return nil, ErrNoEnergies
	}
	return energies, nil
}
