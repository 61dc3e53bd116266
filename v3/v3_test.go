/*
 * v3_test.go, part of flint.
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
	"testing"
)

func TestNewMatrix(Te *testing.T) {
	a := []float64{1.0, 2.0, 3, 4, 5, 6, 7, 8, 9}
	A, err := NewMatrix(a)
	if err != nil {
		Te.Fatal(err)
	}
	if A.NVecs() != 3 {
		Te.Errorf("expected 3 vectors, got %d", A.NVecs())
	}
	View := A.VecView(1)
	View.Set(0, 0, 100)
	if A.At(1, 0) != 100 {
		Te.Errorf("changes in a view should be reflected in the matrix:\n%s", A)
	}
	if _, err := NewMatrix([]float64{1, 2}); err == nil {
		Te.Error("a slice not divisible by 3 should give an error")
	}
}

func TestSomeVecs(Te *testing.T) {
	a := []float64{1.0, 2.0, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18}
	A, err := NewMatrix(a)
	if err != nil {
		Te.Fatal(err)
	}
	B := Zeros(2)
	B.SomeVecs(A, []int{5, 1})
	if B.At(0, 0) != 16 || B.At(1, 2) != 6 {
		Te.Errorf("wrong vectors selected:\n%s", B)
	}
	S := Stack(A, B)
	if S.NVecs() != 8 || S.At(7, 2) != 6 {
		Te.Errorf("wrong stacked matrix:\n%s", S)
	}
}

func TestCentroidExtents(Te *testing.T) {
	A, err := NewMatrix([]float64{0, 0, 0, 2, 4, -6, 1, -1, 3})
	if err != nil {
		Te.Fatal(err)
	}
	c := A.Centroid()
	want := []float64{1, 1, -1}
	for j, w := range want {
		if math.Abs(c.At(0, j)-w) > 1e-9 {
			Te.Errorf("centroid axis %d: got %f want %f", j, c.At(0, j), w)
		}
	}
	min, max := A.Extents()
	if min != [3]float64{0, -1, -6} || max != [3]float64{2, 4, 3} {
		Te.Errorf("wrong extents: %v %v", min, max)
	}
	if d := Dist(A, 0, A, 1); math.Abs(d-math.Sqrt(56)) > 1e-9 {
		Te.Errorf("wrong distance %f", d)
	}
}
