/*
 * pocket.go, part of flint.
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

package flint

import (
	"fmt"

	v3 "github.com/rmera/flint/v3"
)

// DefaultPocketCutoff is the distance, in A, from the ligand within which
// receptor residues are considered part of the pocket.
const DefaultPocketCutoff = 3.5

// PocketResidues returns the residues of receptor with at least one atom closer than
// cutoff A to a heavy atom of ligand. If cutoff <= 0, DefaultPocketCutoff is used.
func PocketResidues(receptor, ligand *Molecule, cutoff float64) ([]*Residue, error) {
	errid := "PocketResidues"
	if cutoff <= 0 {
		cutoff = DefaultPocketCutoff
	}
	heavy := ligand.HeavyIndexes()
	if len(heavy) == 0 {
		return nil, fmt.Errorf("%s: ligand %s: %w", errid, ligand.Name, ErrEmptyMolecule)
	}
	lc := v3.Zeros(len(heavy))
	lc.SomeVecs(ligand.Coords, heavy)
	lmin, lmax := lc.Extents()
	//cheap bounding box test before computing distances.
	inbox := func(i int) bool {
		for j := 0; j < 3; j++ {
			c := receptor.Coords.At(i, j)
			if c < lmin[j]-cutoff || c > lmax[j]+cutoff {
				return false
			}
		}
		return true
	}
	res := Residues(receptor)
	if len(res) == 0 {
		return nil, fmt.Errorf("%s: receptor %s: %w", errid, receptor.Name, ErrNoResidues)
	}
	ret := make([]*Residue, 0, 20)
	for _, r := range res {
	atoms:
		for _, i := range r.Atoms {
			if !inbox(i) {
				continue
			}
			for k := 0; k < lc.NVecs(); k++ {
				if v3.Dist(receptor.Coords, i, lc, k) <= cutoff {
					ret = append(ret, r)
					break atoms
				}
			}
		}
	}
	return ret, nil
}
