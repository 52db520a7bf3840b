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
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ajroetker/go-fpstim/fpx"
)

// ErrInvalidOperation is returned for operation names or values the
// generator does not support.
var ErrInvalidOperation = errors.New("operation not supported")

// Operation selects the instruction a stimuli file exercises.
type Operation int

const (
	// SDOTP is the expanding sum of dot products.
	SDOTP Operation = iota

	// VSUM is the vector inner sum.
	VSUM

	// EXVSUM is the expanding vector inner sum.
	EXVSUM

	// FMADD is the scalar fused multiply-add.
	FMADD
)

// Operations lists every supported operation.
var Operations = []Operation{SDOTP, VSUM, EXVSUM, FMADD}

// String returns the operation name as accepted by ParseOperation.
func (op Operation) String() string {
	switch op {
	case SDOTP:
		return "SDOTP"
	case VSUM:
		return "VSUM"
	case EXVSUM:
		return "EXVSUM"
	case FMADD:
		return "FMADD"
	default:
		return fmt.Sprintf("Operation(%d)", int(op))
	}
}

// Tag returns the fixed 5-character tag that starts each record.
func (op Operation) Tag() (string, error) {
	switch op {
	case SDOTP:
		return "SDOTP", nil
	case VSUM:
		return "VSUM_", nil
	case EXVSUM:
		return "EXVSU", nil
	case FMADD:
		return "FMADD", nil
	default:
		return "", fmt.Errorf("%w: %v", ErrInvalidOperation, op)
	}
}

var upper = cases.Upper(language.Und)

// ParseOperation parses an operation name, ignoring case.
func ParseOperation(name string) (Operation, error) {
	want := upper.String(strings.TrimSpace(name))
	for _, op := range Operations {
		if op.String() == want {
			return op, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidOperation, name)
}

// Formats holds the three user-facing formats of an operation.
type Formats struct {
	Src  fpx.Format
	Src2 fpx.Format
	Dst  fpx.Format
}

// DefaultFormats returns the formats used when none are given explicitly.
func (op Operation) DefaultFormats() Formats {
	switch op {
	case VSUM:
		return Formats{Src: fpx.FP16, Src2: fpx.FP16, Dst: fpx.FP16}
	case FMADD:
		return Formats{Src: fpx.FP32, Src2: fpx.FP32, Dst: fpx.FP32}
	default:
		return Formats{Src: fpx.FP16, Src2: fpx.FP16, Dst: fpx.FP32}
	}
}

// Roles holds the format of each lane operand role a..e.
type Roles struct {
	A, B, C, D, E fpx.Format
}

// Roles derives the per-role formats for op.
//
// FMADD multiplies a (src2) by c (src); VSUM sums a and c, both src;
// the dot-product roles pair d with b from src2. e is always the
// accumulator in the destination format.
func (op Operation) Roles(f Formats) Roles {
	r := Roles{A: f.Src, B: f.Src2, C: f.Src, D: f.Src2, E: f.Dst}
	if op == FMADD {
		r.A = f.Src2
	}
	if op == VSUM {
		r.D = f.Src
	}
	return r
}
