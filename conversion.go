/*
 * conversion.go, part of flint.
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

import "math"

//This provides useful conversion factors and other constants

//Conversions
const (
	H2Kcal  = 627.509 //Hartree 2 Kcal/mol
	Kcal2H  = 1 / 627.509
	KJ2Kcal = 1 / 4.184
	Kcal2KJ = 4.184
)

//Thermodynamics
const (
	R    = 1.98720425864083e-3 //Gas constant, kcal/(mol K)
	Temp = 298.15              //K, the temperature docking scores refer to
)

// DeltaG2Kd returns the dissociation constant, in M, corresponding to the binding free
// energy dg, in kcal/mol, at 298.15 K: Kd = exp(dG/RT).
func DeltaG2Kd(dg float64) float64 {
	return math.Exp(dg / (R * Temp))
}

// Kd2DeltaG is the inverse of DeltaG2Kd.
func Kd2DeltaG(kd float64) float64 {
	return R * Temp * math.Log(kd)
}
