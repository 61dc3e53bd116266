/*
 * clash_test.go, part of flint.
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

package clash

import (
	"testing"

	"github.com/rmera/flint"
	v3 "github.com/rmera/flint/v3"
)

func TestLowestDist(Te *testing.T) {
	a, _ := v3.NewMatrix([]float64{0, 0, 0, 5, 0, 0})
	b, _ := v3.NewMatrix([]float64{10, 0, 0, 6, 0, 0, 20, 0, 0})
	d, idx := LowestDist(a, b)
	if d != 1 || idx != [2]int{1, 1} {
		Te.Errorf("expected distance 1 between 1 and 1, got %f %v", d, idx)
	}
}

func TestClashes(Te *testing.T) {
	rec, err := flint.PDBFileRead("../testdata/receptor.pdb")
	if err != nil {
		Te.Fatal(err)
	}
	lig, err := flint.SDFFileRead("../testdata/ligand.sdf")
	if err != nil {
		Te.Fatal(err)
	}
	if c := Clashes(rec, lig, 0); len(c) != 0 {
		Te.Errorf("expected no clashes, got %v", c)
	}
	c := Clashes(rec, lig, 4)
	if len(c) == 0 {
		Te.Fatal("expected clashes with a 4 A threshold")
	}
	for i := 1; i < len(c); i++ {
		if c[i].Dist < c[i-1].Dist {
			Te.Errorf("clashes not sorted: %v", c)
		}
	}
	if rec.Atom(c[0].Test).MolName != "GLY" {
		Te.Errorf("the closest contact should be with GLY 2, got %s", rec.Atom(c[0].Test).MolName)
	}
}
