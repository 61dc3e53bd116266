/*
 * sdf.go, part of flint.
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
	"strconv"
	"strings"

	v3 "github.com/rmera/flint/v3"
)

// charge codes in the atom block of a V2000 molfile.
var sdfChargeCode = map[int]float64{
	1: 3,
	2: 2,
	3: 1,
	5: -1,
	6: -2,
	7: -3,
}

func sdfInt(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

// SDFRead reads the first record of a V2000 SDF (or molfile) from an io.Reader.
func SDFRead(sdf io.Reader) (*Molecule, error) {
	errid := "SDFRead"
	sc := bufio.NewScanner(sdf)
	next := func() (string, bool) {
		if !sc.Scan() {
			return "", false
		}
		return strings.TrimRight(sc.Text(), "\r"), true
	}
	title, ok := next()
	if !ok {
		return nil, fmt.Errorf("%s: %w: empty input", errid, ErrBadSDF)
	}
	//program and comment lines
	for i := 0; i < 2; i++ {
		if _, ok := next(); !ok {
			return nil, fmt.Errorf("%s: %w: unexpected EOF in header", errid, ErrBadSDF)
		}
	}
	counts, ok := next()
	if !ok {
		return nil, fmt.Errorf("%s: %w: missing counts line", errid, ErrBadSDF)
	}
	if strings.Contains(counts, "V3000") {
		return nil, fmt.Errorf("%s: %w", errid, ErrV3000)
	}
	if len(counts) < 6 {
		return nil, fmt.Errorf("%s: %w: short counts line %q", errid, ErrBadSDF, counts)
	}
	natoms, err := sdfInt(counts[0:3])
	if err != nil {
		return nil, fmt.Errorf("%s: %w: atom count: %v", errid, ErrBadSDF, err)
	}
	nbonds, err := sdfInt(counts[3:6])
	if err != nil {
		return nil, fmt.Errorf("%s: %w: bond count: %v", errid, ErrBadSDF, err)
	}
	if natoms == 0 {
		return nil, fmt.Errorf("%s: %w", errid, ErrEmptyMolecule)
	}
	atoms := make([]*Atom, 0, natoms)
	coords := make([]float64, 0, 3*natoms)
	for i := 0; i < natoms; i++ {
		line, ok := next()
		if !ok || len(line) < 34 {
			return nil, fmt.Errorf("%s: %w: atom %d", errid, ErrBadSDF, i+1)
		}
		for j := 0; j < 3; j++ {
			c, err := strconv.ParseFloat(strings.TrimSpace(line[10*j:10*j+10]), 64)
			if err != nil {
				return nil, fmt.Errorf("%s: %w: atom %d coordinate %d: %v", errid, ErrBadSDF, i+1, j, err)
			}
			coords = append(coords, c)
		}
		at := &Atom{
			ID:      i + 1,
			Symbol:  strings.TrimSpace(line[31:34]),
			MolName: "LIG",
			MolID:   1,
			Chain:   "L",
			Het:     true,
		}
		at.Name = fmt.Sprintf("%s%d", strings.ToUpper(at.Symbol), i+1)
		if len(line) >= 39 {
			if code, err := sdfInt(line[36:39]); err == nil {
				at.Charge = sdfChargeCode[code]
			}
		}
		atoms = append(atoms, at)
	}
	bonds := make([]*Bond, 0, nbonds)
	for i := 0; i < nbonds; i++ {
		line, ok := next()
		if !ok || len(line) < 9 {
			return nil, fmt.Errorf("%s: %w: bond %d", errid, ErrBadSDF, i+1)
		}
		a1, err1 := sdfInt(line[0:3])
		a2, err2 := sdfInt(line[3:6])
		o, err3 := sdfInt(line[6:9])
		if err1 != nil || err2 != nil || err3 != nil || a1 < 1 || a2 < 1 || a1 > natoms || a2 > natoms {
			return nil, fmt.Errorf("%s: %w: bond %d: %q", errid, ErrBadSDF, i+1, line)
		}
		bonds = append(bonds, &Bond{At1: a1 - 1, At2: a2 - 1, Order: o})
	}
	//properties block. Only charges are read, and they replace the atom block ones.
	for {
		line, ok := next()
		if !ok || strings.HasPrefix(line, "M  END") || strings.HasPrefix(line, "$$$$") {
			break
		}
		if !strings.HasPrefix(line, "M  CHG") {
			continue
		}
		f := strings.Fields(line)
		for k := 3; k+1 < len(f); k += 2 {
			idx, err1 := strconv.Atoi(f[k])
			q, err2 := strconv.Atoi(f[k+1])
			if err1 != nil || err2 != nil || idx < 1 || idx > natoms {
				continue
			}
			atoms[idx-1].Charge = float64(q)
		}
	}
	m, err := v3.NewMatrix(coords)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	mol, err := NewMolecule(atoms, m)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	mol.Bonds = bonds
	mol.Name = strings.TrimSpace(title)
	return mol, nil
}

// SDFFileRead reads the first record of a V2000 SDF file, which can be gzip or zstd compressed.
func SDFFileRead(sdfname string) (*Molecule, error) {
	f, err := OpenInput(sdfname)
	if err != nil {
		return nil, fmt.Errorf("SDFFileRead: %w", err)
	}
	defer f.Close()
	mol, err := SDFRead(f)
	if err != nil {
		return nil, fmt.Errorf("SDFFileRead: %s: %w", sdfname, err)
	}
	if mol.Name == "" {
		mol.Name = sdfname
	}
	return mol, nil
}
