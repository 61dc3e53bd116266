/*
 * clash.go, part of flint.
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

// Package clash finds atoms of two molecules that are too close to each other, such
// as a generated receptor overlapping its ligand.
package clash

import (
	"fmt"
	"sort"

	"github.com/rmera/flint"
	v3 "github.com/rmera/flint/v3"
)

// DefaultMinDist is the distance, in A, under which two heavy atoms are considered to clash.
const DefaultMinDist = 2.2

// Pair is a clash between atom Test of one molecule and atom Other of another.
type Pair struct {
	Test  int
	Other int
	Dist  float64
}

// LowestDist returns the shortest distance between a vector of test and one of other, and the
// indexes of those vectors.
func LowestDist(test, other *v3.Matrix) (dist float64, indexes [2]int) {
	dist = -1
	for i := 0; i < test.NVecs(); i++ {
		for j := 0; j < other.NVecs(); j++ {
			dt := v3.Dist(test, i, other, j)
			if dist < 0 || dt < dist {
				dist = dt
				indexes[0] = i
				indexes[1] = j
			}
		}
	}
	return
}

// Clashes returns the pairs of heavy atoms of test and other closer than mindist A,
// shortest first. If mindist <= 0, DefaultMinDist is used.
func Clashes(test, other *flint.Molecule, mindist float64) []Pair {
	if mindist <= 0 {
		mindist = DefaultMinDist
	}
	ot := other.HeavyIndexes()
	ret := make([]Pair, 0, 2)
	for _, i := range test.HeavyIndexes() {
		for _, j := range ot {
			if d := v3.Dist(test.Coords, i, other.Coords, j); d < mindist {
				ret = append(ret, Pair{Test: i, Other: j, Dist: d})
			}
		}
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].Dist < ret[j].Dist })
	return ret
}

// Files reads a receptor and a ligand and returns their clashes.
func Files(receptor, ligand string, mindist float64) ([]Pair, error) {
	rec, err := flint.StructureFileRead(receptor)
	if err != nil {
		return nil, fmt.Errorf("clash/Files: %w", err)
	}
	lig, err := flint.StructureFileRead(ligand)
	if err != nil {
		return nil, fmt.Errorf("clash/Files: %w", err)
	}
	return Clashes(rec, lig, mindist), nil
}
