/*
 * box.go, part of flint.
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
	"math"
)

const (
	DefaultBoxPadding = 5.0  //A added on each side of the ligand
	MinBoxEdge        = 10.0 //A
)

// Box is a docking window: a center and the length of the edges
// along each axis, all in A.
type Box struct {
	Center [3]float64
	Size   [3]float64
}

func (B Box) String() string {
	return fmt.Sprintf("center: %.3f %.3f %.3f size: %.3f %.3f %.3f", B.Center[0], B.Center[1], B.Center[2], B.Size[0], B.Size[1], B.Size[2])
}

// ComputeBox returns the docking window around ligand. The box is centered on the
// geometric center of the ligand and each edge is the ligand extent plus padding on
// each side (never less than MinBoxEdge). Edges are then clipped so the box doesn't
// exceed the receptor extent plus padding. If padding <= 0, DefaultBoxPadding is used.
func ComputeBox(receptor, ligand *Molecule, padding float64) (Box, error) {
	var b Box
	if ligand == nil || ligand.Len() == 0 {
		return b, fmt.Errorf("ComputeBox: ligand: %w", ErrEmptyMolecule)
	}
	if receptor == nil || receptor.Len() == 0 {
		return b, fmt.Errorf("ComputeBox: receptor: %w", ErrEmptyMolecule)
	}
	if padding <= 0 {
		padding = DefaultBoxPadding
	}
	c := ligand.Coords.Centroid()
	lmin, lmax := ligand.Coords.Extents()
	rmin, rmax := receptor.Coords.Extents()
	for j := 0; j < 3; j++ {
		b.Center[j] = c.At(0, j)
		size := math.Max(lmax[j]-lmin[j]+2*padding, MinBoxEdge)
		rsize := rmax[j] - rmin[j] + 2*padding
		b.Size[j] = math.Min(size, math.Max(rsize, MinBoxEdge))
	}
	return b, nil
}

// ComputeBoxFiles reads the receptor and ligand files and returns the docking window around the ligand.
func ComputeBoxFiles(receptorname, ligandname string, padding float64) (Box, error) {
	rec, err := StructureFileRead(receptorname)
	if err != nil {
		return Box{}, fmt.Errorf("ComputeBoxFiles: %w", err)
	}
	lig, err := StructureFileRead(ligandname)
	if err != nil {
		return Box{}, fmt.Errorf("ComputeBoxFiles: %w", err)
	}
	return ComputeBox(rec, lig, padding)
}
