/*
 * geometry.go, part of flint.
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

package v3

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Centroid returns the geometric center of the vectors in F,
// as a 1x3 Matrix.
func (F *Matrix) Centroid() *Matrix {
	n := F.NVecs()
	if n == 0 {
		panic(ErrEmpty)
	}
	ret := Zeros(1)
	col := make([]float64, n)
	for j := 0; j < 3; j++ {
		mat.Col(col, j, F)
		ret.Set(0, j, floats.Sum(col)/float64(n))
	}
	return ret
}

// Extents returns, for each axis, the minimum and maximum values
// among the vectors of F.
func (F *Matrix) Extents() (min, max [3]float64) {
	n := F.NVecs()
	if n == 0 {
		panic(ErrEmpty)
	}
	col := make([]float64, n)
	for j := 0; j < 3; j++ {
		mat.Col(col, j, F)
		min[j] = floats.Min(col)
		max[j] = floats.Max(col)
	}
	return min, max
}

// Dist returns the euclidean distance between the ith vector of A
// and the jth vector of B.
func Dist(A *Matrix, i int, B *Matrix, j int) float64 {
	var s float64
	for k := 0; k < 3; k++ {
		d := A.At(i, k) - B.At(j, k)
		s += d * d
	}
	return math.Sqrt(s)
}
