/*
 * pdb.go, part of flint.
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
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	v3 "github.com/rmera/flint/v3"
)

// Parses a valid ATOM or HETATM line of a PDB file, returns an Atom
// object with the info except for the coordinates, which are returned
// separately as an array of 3 float64.
func readPDBLine(line string) (*Atom, [3]float64, error) {
	var coords [3]float64
	if len(line) < 54 {
		return nil, coords, fmt.Errorf("readPDBLine: line too short (%d characters)", len(line))
	}
	var err error
	atom := new(Atom)
	atom.Het = strings.HasPrefix(line, "HETATM")
	atom.ID, err = strconv.Atoi(strings.TrimSpace(line[6:11]))
	if err != nil {
		//some programs write atom numbers larger than 99999 in a broken way
		atom.ID = 0
	}
	atom.Name = strings.TrimSpace(line[12:16])
	atom.MolName = strings.TrimSpace(line[17:20])
	atom.MolName1 = OneLetter(atom.MolName)
	atom.Chain = string(line[21])
	if atom.MolID, err = strconv.Atoi(strings.TrimSpace(line[22:26])); err != nil {
		return nil, coords, fmt.Errorf("readPDBLine: residue number: %w", err)
	}
	atom.Char16 = line[26]
	for i := 0; i < 3; i++ {
		s := strings.TrimSpace(line[30+8*i : 38+8*i])
		if coords[i], err = strconv.ParseFloat(s, 64); err != nil {
			return nil, coords, fmt.Errorf("readPDBLine: coordinate %d: %w", i, err)
		}
	}
	//The rest of the fields are optional. If something is missing we just omit it.
	if len(line) >= 60 {
		atom.Occupancy, _ = strconv.ParseFloat(strings.TrimSpace(line[54:60]), 64)
	}
	if len(line) >= 78 {
		atom.Symbol = strings.TrimSpace(line[76:78])
		if len(atom.Symbol) == 2 {
			atom.Symbol = atom.Symbol[:1] + strings.ToLower(atom.Symbol[1:])
		}
	}
	if len(line) >= 80 {
		ch := strings.TrimSpace(line[78:80])
		if len(ch) == 2 {
			q, err := strconv.Atoi(ch[:1])
			if err == nil {
				if ch[1] == '-' {
					q = -q
				}
				atom.Charge = float64(q)
			}
		}
	}
	if atom.Symbol == "" {
		atom.Symbol, _ = symbolFromName(atom.Name)
		if atom.Het && atom.Name == "CA" && atom.MolName == "CA" {
			atom.Symbol = "Ca"
		}
	}
	return atom, coords, nil
}

// PDBRead reads the first model of a PDB file from an io.Reader and returns a Molecule.
// Only ATOM and HETATM records are read.
func PDBRead(pdb io.Reader) (*Molecule, error) {
	errid := "PDBRead"
	sc := bufio.NewScanner(pdb)
	sc.Buffer(make([]byte, 0, 1024), 1024*1024)
	atoms := make([]*Atom, 0, 1000)
	coords := make([]float64, 0, 3000)
	lineno := 0
	for sc.Scan() {
		lineno++
		line := sc.Text()
		if strings.HasPrefix(line, "ENDMDL") || strings.HasPrefix(line, "END ") || strings.TrimSpace(line) == "END" {
			break
		}
		if !strings.HasPrefix(line, "ATOM") && !strings.HasPrefix(line, "HETATM") {
			continue
		}
		at, c, err := readPDBLine(line)
		if err != nil {
			return nil, fmt.Errorf("%s: line %d: %w", errid, lineno, err)
		}
		atoms = append(atoms, at)
		coords = append(coords, c[:]...)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	if len(atoms) == 0 {
		return nil, fmt.Errorf("%s: %w", errid, ErrEmptyMolecule)
	}
	m, err := v3.NewMatrix(coords)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	return NewMolecule(atoms, m)
}

// PDBFileRead reads the first model of a PDB file, which can be gzip or zstd compressed.
func PDBFileRead(pdbname string) (*Molecule, error) {
	f, err := OpenInput(pdbname)
	if err != nil {
		return nil, fmt.Errorf("PDBFileRead: %w", err)
	}
	defer f.Close()
	mol, err := PDBRead(f)
	if err != nil {
		return nil, fmt.Errorf("PDBFileRead: %s: %w", pdbname, err)
	}
	mol.Name = pdbname
	return mol, nil
}

// StructureFileRead reads a receptor or ligand file, choosing the reader from
// the file extension (.pdb, .ent or .sdf/.mol, optionally compressed).
func StructureFileRead(name string) (*Molecule, error) {
	ext := strings.ToLower(filepath.Ext(TrimCompression(name)))
	switch ext {
	case ".pdb", ".ent":
		return PDBFileRead(name)
	case ".sdf", ".mol":
		return SDFFileRead(name)
	default:
		return nil, fmt.Errorf("StructureFileRead: unsupported format %q for %s", ext, name)
	}
}
