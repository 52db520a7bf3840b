// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package fpx

import "math"

// round returns the value of f nearest to x, ties to even.
// Values below the smallest normal round onto the subnormal grid; values
// at or beyond the overflow threshold become infinity.
func round(x float64, f Format) float64 {
	if f == FP64 || x == 0 || math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	a := math.Abs(x)
	_, e := math.Frexp(a)
	unbiased := e - 1
	emin := 1 - f.bias()
	if unbiased < emin {
		unbiased = emin
	}

	// Scale so the unit in the last place is 1, round, scale back.
	// Both scalings are by powers of two and therefore exact.
	quantum := unbiased - int(f.FracBits)
	r := math.Ldexp(math.RoundToEven(math.Ldexp(a, -quantum)), quantum)

	if r > MaxFinite(f) {
		r = math.Inf(1)
	}
	return math.Copysign(r, x)
}

// MaxFinite returns the largest finite value of f.
func MaxFinite(f Format) float64 {
	if f == FP64 {
		return math.MaxFloat64
	}
	// (2 - 2^-frac) * 2^emax
	return math.Ldexp(2-math.Ldexp(1, -int(f.FracBits)), f.bias())
}

// SmallestSubnormal returns the smallest positive value of f.
func SmallestSubnormal(f Format) float64 {
	if f == FP64 {
		return math.SmallestNonzeroFloat64
	}
	return math.Ldexp(1, 1-f.bias()-int(f.FracBits))
}
