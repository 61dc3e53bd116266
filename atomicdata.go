/*
 * atomicdata.go, part of flint.
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
	"strings"
)

// A map between 3-letters name for aminoacidic residues to the corresponding 1-letter names.
// Protonation and modification variants written by common tools are mapped to their parent residue.
var three2OneLetter = map[string]byte{
	"SER": 'S',
	"THR": 'T',
	"ASN": 'N',
	"GLN": 'Q',
	"SEC": 'U', //Selenocysteine!
	"CYS": 'C',
	"CYX": 'C',
	"CYM": 'C',
	"GLY": 'G',
	"PRO": 'P',
	"ALA": 'A',
	"VAL": 'V',
	"ILE": 'I',
	"LEU": 'L',
	"MET": 'M',
	"MSE": 'M',
	"PHE": 'F',
	"TYR": 'Y',
	"TRP": 'W',
	"ARG": 'R',
	"HIS": 'H',
	"HID": 'H',
	"HIE": 'H',
	"HIP": 'H',
	"HSD": 'H',
	"HSE": 'H',
	"LYS": 'K',
	"ASP": 'D',
	"ASH": 'D',
	"GLU": 'E',
	"GLH": 'E',
	"PYL": 'O',
}

// OneLetter returns the one-letter code for the residue name res, or 'X'
// if res is not a known amino acid.
func OneLetter(res string) byte {
	if l, ok := three2OneLetter[strings.ToUpper(strings.TrimSpace(res))]; ok {
		return l
	}
	return 'X'
}

// IsAminoAcid returns true if res is a known amino acid residue name.
func IsAminoAcid(res string) bool {
	_, ok := three2OneLetter[strings.ToUpper(strings.TrimSpace(res))]
	return ok
}

// This tries to guess a chemical element symbol from a PDB atom name. Mostly based on AMBER names.
// It only deals with some common bio-elements.
func symbolFromName(name string) (string, error) {
	symbol := ""
	if len(name) == 0 {
		return "", fmt.Errorf("symbolFromName: empty atom name")
	}
	if len(name) == 4 || name[0] == 'H' { //Only Hs can have 4-char names in amber.
		symbol = "H"
	} else if name[0] == 'C' {
		switch name {
		case "CU":
			symbol = "Cu"
		case "CO":
			symbol = "Co"
		case "CL":
			symbol = "Cl"
		case "CA":
			//Calcium ions are HETATMs, PDBRead fixes this case.
			symbol = "C"
		default:
			symbol = "C"
		}
	} else if name[0] == 'N' {
		if name == "NA" {
			symbol = "Na"
		} else {
			symbol = "N"
		}
	} else if name[0] == 'O' {
		symbol = "O"
	} else if name[0] == 'P' {
		symbol = "P"
	} else if name[0] == 'S' {
		if name == "SE" {
			symbol = "Se"
		} else {
			symbol = "S"
		}
	} else if strings.HasPrefix(name, "ZN") {
		symbol = "Zn"
	} else if strings.HasPrefix(name, "MG") {
		symbol = "Mg"
	} else if strings.HasPrefix(name, "FE") {
		symbol = "Fe"
	}
	if symbol == "" {
		return symbol, fmt.Errorf("symbolFromName: couldn't guess symbol from PDB name %s", name)
	}
	return symbol, nil
}
