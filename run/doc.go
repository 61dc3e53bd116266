/*
 * doc.go, part of flint.
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

// Package run manages the run directories where generated mutants, the original inputs
// and the docking summaries are stored.
//
// A run is a directory named run_<n> inside the output folder. It contains one mutant_<b>
// directory per generated mutant, holding <b>_whole.pdb and <b>.sdf, an original directory
// with copies of the input receptor and ligand, an inputs.txt file and, once scored, a
// summary.tsv file.
package run
