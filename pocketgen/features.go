/*
 * features.go, part of flint.
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

package pocketgen

import (
	"fmt"
	"path/filepath"

	"github.com/rmera/flint"
)

// PocketResidue identifies a receptor residue lining the ligand.
type PocketResidue struct {
	Chain string `json:"chain"`
	ID    int    `json:"id"`
	ICode string `json:"icode,omitempty"`
	Name  string `json:"name"`
}

// Features are the receptor-ligand interaction features the model works on.
type Features struct {
	Receptor string          `json:"receptor"`
	Ligand   string          `json:"ligand"`
	Pocket   []PocketResidue `json:"pocket"`
	Sequence string          `json:"sequence"`
}

// Interaction reads the receptor and ligand files and determines the pocket, i.e. the
// receptor residues within cutoff A of the ligand.
func Interaction(receptor, ligand string, cutoff float64) (*Features, error) {
	errid := "Interaction"
	rec, err := flint.StructureFileRead(receptor)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	lig, err := flint.StructureFileRead(ligand)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	res, err := flint.PocketResidues(rec, lig, cutoff)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	if len(res) == 0 {
		return nil, fmt.Errorf("%s: no receptor residue within %.2f A of the ligand", errid, cutoff)
	}
	F := &Features{Pocket: make([]PocketResidue, 0, len(res))}
	if F.Receptor, err = filepath.Abs(receptor); err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	if F.Ligand, err = filepath.Abs(ligand); err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	for _, r := range res {
		p := PocketResidue{Chain: r.Chain, ID: r.ID, Name: r.Name}
		if r.ICode != 0 && r.ICode != ' ' {
			p.ICode = string(r.ICode)
		}
		F.Pocket = append(F.Pocket, p)
	}
	seqs, chains := flint.Sequence(rec)
	for _, c := range chains {
		F.Sequence += seqs[c]
	}
	return F, nil
}

// Batch is one input for the model. Each batch produces one mutant.
type Batch struct {
	Index    int
	Features *Features
}

// Loader returns n batches of size 1, all with the same features.
func Loader(F *Features, n int) []*Batch {
	ret := make([]*Batch, n)
	for i := range ret {
		ret[i] = &Batch{Index: i, Features: F}
	}
	return ret
}
