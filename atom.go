/*
 * atom.go, part of flint.
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

// Atom contains the information read for an atom from a PDB or SDF file.
type Atom struct {
	Name      string  //PDB name of the atom
	ID        int     //The PDB index of the atom
	Symbol    string  //Chemical element symbol
	MolName   string  //PDB name of the residue or molecule (3-letter code for residues)
	MolName1  byte    //the one letter name for residues
	MolID     int     //PDB index of the corresponding residue or molecule
	Chain     string  //One-character PDB name for a chain.
	Char16    byte    //Insertion code, column 27 of the PDB line
	Occupancy float64 //Occupancy, read but not used
	Charge    float64 //Formal charge
	Het       bool    //True if the atom is part of an HETATM
}

// Copy returns a copy of the Atom object.
func (N *Atom) Copy() *Atom {
	if N == nil {
		return nil
	}
	r := *N
	return &r
}

// Heavy returns true if the atom is not a hydrogen.
func (N *Atom) Heavy() bool {
	return N.Symbol != "H" && N.Symbol != "D"
}

// Molecule contains the atoms of a receptor or ligand and one set of
// coordinates for them.
type Molecule struct {
	Atoms  []*Atom
	Coords *v3.Matrix
	Bonds  []*Bond
	Name   string
}

// Bond is a bond read from a SDF file. At1 and At2 are 0-based atom indexes.
type Bond struct {
	At1   int
	At2   int
	Order int
}

// NewMolecule puts together a set of atoms and their coordinates. Returns an error if
// the numbers of atoms and coordinates don't match.
func NewMolecule(atoms []*Atom, coords *v3.Matrix) (*Molecule, error) {
	if len(atoms) == 0 || coords == nil {
		return nil, fmt.Errorf("NewMolecule: %w", ErrEmptyMolecule)
	}
	if coords.NVecs() != len(atoms) {
		return nil, fmt.Errorf("NewMolecule: %d atoms but %d coordinates", len(atoms), coords.NVecs())
	}
	return &Molecule{Atoms: atoms, Coords: coords}, nil
}

// Len returns the number of atoms in the molecule.
func (M *Molecule) Len() int {
	return len(M.Atoms)
}

// Atom returns the ith atom of the molecule.
func (M *Molecule) Atom(i int) *Atom {
	return M.Atoms[i]
}

// HeavyIndexes returns the indexes of the non-hydrogen atoms in the molecule.
func (M *Molecule) HeavyIndexes() []int {
	ret := make([]int, 0, len(M.Atoms))
	for i, v := range M.Atoms {
		if v.Heavy() {
			ret = append(ret, i)
		}
	}
	return ret
}
