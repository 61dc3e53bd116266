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

// Package pocketgen drives the PocketGen protein pocket design model.
//
// The model itself runs in a Python worker process. Flint prepares the interaction
// features (the receptor residues lining the ligand), builds the batches and sends
// them to the worker as a JSON request on its standard input. The worker answers with
// one JSON object per line on its standard output, reporting each finished batch.
//
// In order to use this package you need a PocketGen installation and its checkpoint.
// Please cite the PocketGen and ESM2 references if you use it.
package pocketgen
