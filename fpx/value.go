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

// Package fpx implements floating-point values with an arbitrary number of
// exponent and fraction bits.
//
// A Value carries its Format and its mathematical content as a float64.
// Every format up to FP64 is exactly representable in float64, so the
// float64 is always the exact value of the encoding; all rounding happens
// when a value enters a format (FromFloat64, Cast, Add, FMA).
//
// Basic usage:
//
//	a := fpx.FromBits(fpx.FP16, 0x3C00)     // 1.0
//	b := a.Cast(fpx.AL8)                    // round into a 4/3 minifloat
//	c := fpx.FMA(fpx.FP32, a, b, a)         // a*b + a, rounded once
//	fmt.Printf("%08x\n", c.Bits())
package fpx

import (
	"math"
)

const (
	float64FracBits = 52
	float64FracMask = 1<<float64FracBits - 1
	float64ExpMask  = 0x7FF
)

// Value is a floating-point number stored in a specific Format.
// The zero Value is +0 in the zero Format; use FromBits or FromFloat64.
type Value struct {
	format Format
	v      float64
}

// FromFloat64 rounds x into f.
func FromFloat64(f Format, x float64) Value {
	return Value{format: f, v: round(x, f)}
}

// FromBits decodes the low f.Width() bits of bits as an f-encoded number.
func FromBits(f Format, bits uint64) Value {
	return Value{format: f, v: decode(f, bits&f.mask())}
}

// Format returns the value's format.
func (x Value) Format() Format {
	return x.format
}

// Float64 returns the exact value.
func (x Value) Float64() float64 {
	return x.v
}

// Bits returns the raw encoding of x in its format.
func (x Value) Bits() uint64 {
	return encode(x.format, x.v)
}

// Cast rounds x into dst with round-to-nearest-even.
func (x Value) Cast(dst Format) Value {
	return Value{format: dst, v: round(x.v, dst)}
}

// Normalize re-enters x into its own format through float64.
// Bit extraction after Normalize always yields the canonical encoding.
func (x Value) Normalize() Value {
	return FromFloat64(x.format, x.Float64())
}

// IsNaN reports whether x is a NaN.
func (x Value) IsNaN() bool {
	return math.IsNaN(x.v)
}

// IsInf reports whether x is an infinity.
func (x Value) IsInf() bool {
	return math.IsInf(x.v, 0)
}

// Add returns a+b rounded into dst.
func Add(dst Format, a, b Value) Value {
	return FromFloat64(dst, a.v+b.v)
}

// FMA returns a*b+c computed with a single float64 rounding, then rounded
// into dst.
func FMA(dst Format, a, b, c Value) Value {
	return FromFloat64(dst, math.FMA(a.v, b.v, c.v))
}

// decode converts an f-encoded bit pattern into its float64 value.
func decode(f Format, bits uint64) float64 {
	if f == FP64 {
		return math.Float64frombits(bits)
	}
	fracBits := uint(f.FracBits)
	sign := bits >> (fracBits + uint(f.ExpBits)) & 1
	exp := bits >> fracBits & f.maxExp()
	frac := bits & (1<<fracBits - 1)

	var v float64
	switch exp {
	case f.maxExp():
		if frac == 0 {
			v = math.Inf(1)
		} else {
			// NaN payload keeps its position at the top of the fraction.
			v = math.Float64frombits(float64ExpMask<<float64FracBits | frac<<(float64FracBits-fracBits))
		}
	case 0:
		// Subnormal: frac * 2^(1-bias-fracBits).
		v = math.Ldexp(float64(frac), 1-f.bias()-int(fracBits))
	default:
		v = math.Ldexp(float64(frac|1<<fracBits), int(exp)-f.bias()-int(fracBits))
	}
	if sign == 1 {
		v = math.Copysign(v, -1)
	}
	return v
}

// encode converts a float64 that is exactly representable in f into its
// f-encoded bit pattern.
func encode(f Format, v float64) uint64 {
	if f == FP64 {
		return math.Float64bits(v)
	}
	fracBits := uint(f.FracBits)
	var sign uint64
	if math.Signbit(v) {
		sign = 1 << (fracBits + uint(f.ExpBits))
	}
	var exp, frac uint64
	switch {
	case math.IsNaN(v):
		exp = f.maxExp()
		frac = math.Float64bits(v) & float64FracMask >> (float64FracBits - fracBits)
		if frac == 0 {
			// Payload lived below our fraction; keep it a (quiet) NaN.
			frac = 1 << (fracBits - 1)
		}
	case math.IsInf(v, 0):
		exp = f.maxExp()
	case v == 0:
	default:
		a := math.Abs(v)
		_, e := math.Frexp(a)
		unbiased := e - 1
		emin := 1 - f.bias()
		if unbiased < emin {
			frac = uint64(math.Ldexp(a, int(fracBits)-emin))
		} else {
			exp = uint64(unbiased + f.bias())
			frac = uint64(math.Ldexp(a, int(fracBits)-unbiased)) &^ (1 << fracBits)
		}
	}
	return sign | exp<<fracBits | frac
}
