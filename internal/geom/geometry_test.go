/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package geom

import (
	"math"
	"testing"
)

func TestSnapToGrid(t *testing.T) {
	cases := []struct {
		v, grid, want float64
	}{
		{7, 10, 10},
		{4.9, 10, 0},
		{5, 10, 10}, // round half up
		{23, 10, 20},
		{-7, 10, -10},
		{13, 0, 13}, // disabled grid
		{13, -5, 13},
	}
	for _, c := range cases {
		if got := SnapToGrid(c.v, c.grid); got != c.want {
			t.Fatalf("SnapToGrid(%v, %v) = %v, want %v", c.v, c.grid, got, c.want)
		}
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(-5, 0, 100); got != 0 {
		t.Fatalf("below range: got %v", got)
	}
	if got := Clamp(150, 0, 100); got != 100 {
		t.Fatalf("above range: got %v", got)
	}
	if got := Clamp(42, 0, 100); got != 42 {
		t.Fatalf("inside range: got %v", got)
	}
	// Oversized element: hi < lo collapses to lo so the element pins at origin.
	if got := Clamp(30, 0, -20); got != 0 {
		t.Fatalf("inverted range: got %v", got)
	}
}

func TestFinite(t *testing.T) {
	if Finite(math.NaN()) || Finite(math.Inf(1)) || Finite(math.Inf(-1)) {
		t.Fatalf("NaN/Inf must not be finite")
	}
	if !Finite(0) || !Finite(-1e300) {
		t.Fatalf("ordinary values must be finite")
	}
}

func TestRectUnionAndCenters(t *testing.T) {
	u := R(0, 0, 10, 10).Union(R(20, 30, 10, 10))
	if u != R(0, 0, 30, 40) {
		t.Fatalf("union: got %+v", u)
	}
	r := R(10, 20, 30, 40)
	if r.CenterX() != 25 || r.CenterY() != 40 {
		t.Fatalf("centers: got %v, %v", r.CenterX(), r.CenterY())
	}
}
