/*
 * sequence.go, part of flint.
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
	"log"
)

// Residue is an amino acid residue of a receptor.
type Residue struct {
	Chain string
	ID    int
	ICode byte
	Name  string //3-letter name
	Name1 byte   //1-letter name, 'X' if unknown
	Atoms []int  //indexes of the residue atoms in the molecule
}

// Key returns a string that identifies the residue within a structure.
func (R *Residue) Key() string {
	ic := R.ICode
	if ic == 0 {
		ic = ' '
	}
	return fmt.Sprintf("%s:%d%c", R.Chain, R.ID, ic)
}

func (R *Residue) String() string {
	return fmt.Sprintf("%s%s%d", R.Name, R.Chain, R.ID)
}

// Residues returns the residues of mol, in the order they first appear. ATOM
// records and HETATMs with amino acid names are considered residues.
func Residues(mol *Molecule) []*Residue {
	ret := make([]*Residue, 0, mol.Len()/8+1)
	var cur *Residue
	for i, at := range mol.Atoms {
		if at.Het && !IsAminoAcid(at.MolName) {
			cur = nil
			continue
		}
		if cur == nil || cur.Chain != at.Chain || cur.ID != at.MolID || cur.ICode != at.Char16 || cur.Name != at.MolName {
			cur = &Residue{Chain: at.Chain, ID: at.MolID, ICode: at.Char16, Name: at.MolName, Name1: OneLetter(at.MolName)}
			ret = append(ret, cur)
		}
		cur.Atoms = append(cur.Atoms, i)
	}
	return ret
}

// Sequence returns the one-letter sequence of each chain in mol, and the chain
// names in the order they appear.
func Sequence(mol *Molecule) (map[string]string, []string) {
	seqs := make(map[string][]byte)
	chains := make([]string, 0, 2)
	for _, r := range Residues(mol) {
		if _, ok := seqs[r.Chain]; !ok {
			chains = append(chains, r.Chain)
		}
		seqs[r.Chain] = append(seqs[r.Chain], r.Name1)
	}
	ret := make(map[string]string, len(seqs))
	for k, v := range seqs {
		ret[k] = string(v)
	}
	return ret, chains
}

func residueString(res []*Residue) []byte {
	s := make([]byte, len(res))
	for i, v := range res {
		s[i] = v.Name1
	}
	return s
}

// Mutations returns the number of amino acid level mutations between the receptor orig and
// its mutant. Residues are matched by chain, number and insertion code. If less than half of the
// original residues can be matched (i.e. the mutant was renumbered) the sequences are compared
// position by position instead, and the difference in length is added to the count.
func Mutations(orig, mutant *Molecule) (int, error) {
	ro := Residues(orig)
	rm := Residues(mutant)
	if len(ro) == 0 || len(rm) == 0 {
		return 0, fmt.Errorf("Mutations: %w", ErrNoResidues)
	}
	mmap := make(map[string]*Residue, len(rm))
	for _, r := range rm {
		mmap[r.Key()] = r
	}
	matched, diffs := 0, 0
	for _, r := range ro {
		m, ok := mmap[r.Key()]
		if !ok {
			continue
		}
		matched++
		if m.Name1 != r.Name1 {
			diffs++
		}
	}
	if 2*matched >= len(ro) {
		return diffs, nil
	}
	log.Printf("Mutations: only %d of %d residues could be matched by number, comparing sequences by position", matched, len(ro))
	so, sm := residueString(ro), residueString(rm)
	l := min(len(so), len(sm))
	diffs = max(len(so), len(sm)) - l
	for i := 0; i < l; i++ {
		if so[i] != sm[i] {
			diffs++
		}
	}
	return diffs, nil
}

// MutationsFiles reads the original and mutant receptor PDB files and
// returns the number of amino acid level mutations between them.
func MutationsFiles(origname, mutantname string) (int, error) {
	orig, err := PDBFileRead(origname)
	if err != nil {
		return 0, fmt.Errorf("MutationsFiles: %w", err)
	}
	mut, err := PDBFileRead(mutantname)
	if err != nil {
		return 0, fmt.Errorf("MutationsFiles: %w", err)
	}
	return Mutations(orig, mut)
}
