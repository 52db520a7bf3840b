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

package stim

import (
	"fmt"
	"math/rand/v2"

	"github.com/ajroetker/go-fpstim/fpx"
)

// ReferenceFormat is the precision golden results are evaluated in.
var ReferenceFormat = fpx.FP64

// Lane holds the five operand values of one SIMD lane.
type Lane struct {
	A, B, C, D, E fpx.Value
}

// RandomLane draws a, b, c, d, e in that order.
func RandomLane(r Roles, rng *rand.Rand) Lane {
	var l Lane
	l.A, _ = fpx.Random(r.A, rng)
	l.B, _ = fpx.Random(r.B, rng)
	l.C, _ = fpx.Random(r.C, rng)
	l.D, _ = fpx.Random(r.D, rng)
	l.E, _ = fpx.Random(r.E, rng)
	return l
}

// Evaluate computes the expected result of op on l, rounded into dst.
//
//	SDOTP:         e' = a*b + e;  result = c*d + e'
//	VSUM, EXVSUM:  e' = e + a;    result = e' + c
//	FMADD:         result = a*c + e
func Evaluate(op Operation, l Lane, dst fpx.Format) (fpx.Value, error) {
	ref := ReferenceFormat
	a, b, c, d, e := l.A.Cast(ref), l.B.Cast(ref), l.C.Cast(ref), l.D.Cast(ref), l.E.Cast(ref)

	var res fpx.Value
	switch op {
	case SDOTP:
		e = fpx.FMA(ref, a, b, e)
		res = fpx.FMA(ref, c, d, e)
	case VSUM, EXVSUM:
		e = fpx.Add(ref, e, a)
		res = fpx.Add(ref, e, c)
	case FMADD:
		res = fpx.FMA(ref, a, c, e)
	default:
		return fpx.Value{}, fmt.Errorf("%w: %v", ErrInvalidOperation, op)
	}
	return res.Cast(dst), nil
}
