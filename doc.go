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

/*Package flint is the main package of the Flint mutant design pipeline. It provides the atom and
molecule structures used to hand receptors and ligands between the pipeline stages, readers for
the files PocketGen and the docking engine exchange, and the small amount of chemistry Flint
does by itself.


	**Flint Capabilities**


    Reads PDB receptors and V2000 SDF ligands, plain, gzip or zstd compressed.

    Extracts the residue sequence of a receptor and counts the amino acid
	mutations between an original receptor and a generated mutant.

    Selects the pocket residues around a ligand, which are the interaction
	features given to the generative model.

    Computes the docking window around a ligand.

    Converts docking free energies into dissociation constants.

The pocket design itself (PocketGen, with ESM2 embeddings) and the docking (AutoDock Vina)
are external programs, driven by the pocketgen and dock packages. The pipeline package
puts everything together.*/
package flint
