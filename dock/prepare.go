/*
 * prepare.go, part of flint.
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
	"os"
	"path/filepath"
	"strings"

	"github.com/rmera/flint"
)

// format returns the Open Babel format name for a structure file, and whether
// the structure is a ligand. Compression extensions are ignored.
func format(name string) (string, bool, error) {
	l := strings.ToLower(flint.TrimCompression(name))
	switch filepath.Ext(l) {
	case ".pdb", ".ent":
		return "pdb", false, nil
	case ".sdf", ".mol":
		return "sdf", true, nil
	case ".mol2":
		return "mol2", true, nil
	case ".pdbqt":
		return "pdbqt", false, nil
	}
	return "", false, fmt.Errorf("unknown format for %s", name)
}

// prepareArgs returns the Open Babel arguments to convert in to the PDBQT file out.
// Receptors are written as rigid molecules.
func prepareArgs(in, out string) ([]string, error) {
	f, ligand, err := format(in)
	if err != nil {
		return nil, err
	}
	args := []string{"-i" + f, in}
	if ligand {
		args = append(args, "-h")
	} else {
		args = append(args, "-xr")
	}
	args = append(args, "-opdbqt", "-O", out)
	return args, nil
}

// Prepare converts the receptor or ligand file name to PDBQT with Open Babel, placing the
// result in wrkdir as <role>.pdbqt. Returns the name of the PDBQT file. PDBQT inputs are
// returned unchanged.
func Prepare(ctx context.Context, name, role, wrkdir string, O *Options) (string, error) {
	errid := "Prepare"
	if O == nil {
		O = DefaultOptions()
	}
	f, _, err := format(name)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errid, err)
	}
	if f == "pdbqt" {
		return name, nil
	}
	abs, err := filepath.Abs(name)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errid, err)
	}
	if role == "" {
		return "", fmt.Errorf("%s: no role given for %s", errid, name)
	}
	out := filepath.Join(wrkdir, role+".pdbqt")
	args, err := prepareArgs(abs, out)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errid, err)
	}
	if err := run(ctx, wrkdir, "", O.Obabel, args...); err != nil {
		return "", fmt.Errorf("%s: %w", errid, err)
	}
	if fi, err := os.Stat(out); err != nil || fi.Size() == 0 {
		return "", fmt.Errorf("%s: Open Babel produced no PDBQT for %s", errid, name)
	}
	return out, nil
}
