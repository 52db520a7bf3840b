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
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/go-fpstim/fpx"
)

func lane(f Roles, a, b, c, d, e float64) Lane {
	return Lane{
		A: fpx.FromFloat64(f.A, a),
		B: fpx.FromFloat64(f.B, b),
		C: fpx.FromFloat64(f.C, c),
		D: fpx.FromFloat64(f.D, d),
		E: fpx.FromFloat64(f.E, e),
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name   string
		op     Operation
		a      float64
		b      float64
		c      float64
		d      float64
		e      float64
		expect float64
	}{
		{"SDOTP", SDOTP, 1, 2, 3, 4, 0.5, 14.5},
		{"VSUM", VSUM, 2, 100, 4, 100, 1, 7},
		{"EXVSUM", EXVSUM, -2, 100, 0.25, 100, 1, -0.75},
		{"FMADD", FMADD, 3, 100, 0.5, 100, 1, 2.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig(tt.op)
			roles := tt.op.Roles(cfg.Formats)
			got, err := Evaluate(tt.op, lane(roles, tt.a, tt.b, tt.c, tt.d, tt.e), cfg.Formats.Dst)
			require.NoError(t, err)
			assert.Equal(t, tt.expect, got.Float64())
			assert.Equal(t, cfg.Formats.Dst, got.Format())
		})
	}

	t.Run("SDOTPBits", func(t *testing.T) {
		roles := SDOTP.Roles(SDOTP.DefaultFormats())
		got, err := Evaluate(SDOTP, lane(roles, 1, 2, 3, 4, 0.5), fpx.FP32)
		require.NoError(t, err)
		assert.Equal(t, uint64(0x41680000), got.Bits())
	})

	t.Run("InvalidOperation", func(t *testing.T) {
		_, err := Evaluate(Operation(9), Lane{}, fpx.FP32)
		assert.ErrorIs(t, err, ErrInvalidOperation)
	})
}

// TestEvaluateFMADDBoundaries checks FP32 FMADD against the exact identities
// a*0 + e == e and a*c + 0 == round(a*c).
func TestEvaluateFMADDBoundaries(t *testing.T) {
	roles := FMADD.Roles(FMADD.DefaultFormats())
	rng := rand.New(rand.NewPCG(21, 34))

	finite := func() fpx.Value {
		for {
			v, _ := fpx.Random(fpx.FP32, rng)
			if !v.IsNaN() && !v.IsInf() {
				return v
			}
		}
	}
	zero := fpx.FromFloat64(fpx.FP32, 0)

	for i := 0; i < 2000; i++ {
		a, c, e := finite(), finite(), finite()
		if e.Float64() == 0 {
			continue
		}

		got, err := Evaluate(FMADD, Lane{A: zero, C: c, E: e}, roles.E)
		require.NoError(t, err)
		require.Equal(t, e.Bits(), got.Bits(), "0*c + e")

		got, err = Evaluate(FMADD, Lane{A: a, C: zero, E: e}, roles.E)
		require.NoError(t, err)
		require.Equal(t, e.Bits(), got.Bits(), "a*0 + e")

		got, err = Evaluate(FMADD, Lane{A: a, C: c, E: zero}, roles.E)
		require.NoError(t, err)
		want := float32(a.Float64() * c.Float64())
		if got.Float64() != 0 || want != 0 {
			require.Equal(t, uint64(math.Float32bits(want)), got.Bits(), "a*c + 0 with a=%g c=%g", a.Float64(), c.Float64())
		}
	}
}

// TestEvaluateChainedSum documents that VSUM adds sequentially in FP64:
// 2^60 + 1 - 2^60 loses the 1.
func TestEvaluateChainedSum(t *testing.T) {
	f := Formats{Src: fpx.FP32, Src2: fpx.FP32, Dst: fpx.FP32}
	roles := VSUM.Roles(f)
	big := math.Ldexp(1, 60)

	got, err := Evaluate(VSUM, lane(roles, 1, 0, -big, 0, big), f.Dst)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got.Float64())
}

func TestRandomLane(t *testing.T) {
	roles := SDOTP.Roles(Formats{Src: fpx.FP8, Src2: fpx.AL8, Dst: fpx.FP16})
	l := RandomLane(roles, rand.New(rand.NewPCG(1, 1)))
	assert.Equal(t, fpx.FP8, l.A.Format())
	assert.Equal(t, fpx.AL8, l.B.Format())
	assert.Equal(t, fpx.FP8, l.C.Format())
	assert.Equal(t, fpx.AL8, l.D.Format())
	assert.Equal(t, fpx.FP16, l.E.Format())

	// Draw order is a, b, c, d, e.
	rng := rand.New(rand.NewPCG(1, 1))
	for _, v := range []fpx.Value{l.A, l.B, l.C, l.D, l.E} {
		assert.Equal(t, fpx.RandomBits(v.Format(), rng), v.Bits())
	}
}
