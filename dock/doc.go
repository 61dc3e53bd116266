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

//In order to use this package you need AutoDock Vina and Open Babel, which must be obtained
//from their respective distributors. Please cite them if you use this package.

/*Package dock runs docking simulations with external programs. Receptors and ligands are
converted to PDBQT with Open Babel, then docked with AutoDock Vina inside a box computed around
the ligand. The per-pose affinities Vina reports are the docking free energies, in kcal/mol,
from which the pipeline obtains mean ΔG and Kd values.

Interfacing other docking programs only requires implementing the Handle interface.*/
package dock
