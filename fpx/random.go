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

import "math/rand/v2"

// RandomBits draws an integer uniformly from the signed range of an
// f.Width()-bit two's-complement integer, [-2^(w-1), 2^(w-1)-1], and
// returns it as a w-bit pattern. For w == 64 the draw covers all of int64.
func RandomBits(f Format, r *rand.Rand) uint64 {
	w := f.Width()
	var n int64
	if w >= 64 {
		n = int64(r.Uint64())
	} else {
		half := int64(1) << (w - 1)
		n = r.Int64N(2*half) - half
	}
	return uint64(n) & f.mask()
}

// Random returns a value of format f with uniformly random bits, together
// with the raw bits that were installed.
func Random(f Format, r *rand.Rand) (Value, uint64) {
	bits := RandomBits(f, r)
	return FromBits(f, bits), bits
}
