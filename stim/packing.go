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
	"strings"

	"github.com/ajroetker/go-fpstim/fpx"
)

// DatapathWidth is the width in bits of the FPU datapath the stimuli target.
const DatapathWidth = 32

// packing identifies how the lanes of one record are laid out. It is chosen
// once per generator from the operation and the destination width.
type packing int

const (
	packSDOTP packing = iota
	packVSUMFull
	packVSUMSplit
	packVSUMNarrow
	packEXVSUM
	packEXVSUMNarrow
	packFMADD
)

func (p packing) String() string {
	switch p {
	case packSDOTP:
		return "sdotp"
	case packVSUMFull:
		return "vsum-full"
	case packVSUMSplit:
		return "vsum-split"
	case packVSUMNarrow:
		return "vsum-narrow"
	case packEXVSUM:
		return "exvsum"
	case packEXVSUMNarrow:
		return "exvsum-narrow"
	case packFMADD:
		return "fmadd"
	default:
		return fmt.Sprintf("packing(%d)", int(p))
	}
}

// selectPacking maps (operation, destination width) to a layout.
func selectPacking(op Operation, dstWidth int) (packing, error) {
	switch op {
	case SDOTP:
		return packSDOTP, nil
	case VSUM:
		switch {
		case dstWidth == DatapathWidth:
			return packVSUMFull, nil
		case dstWidth == 8:
			return packVSUMNarrow, nil
		default:
			return packVSUMSplit, nil
		}
	case EXVSUM:
		if dstWidth == 8 {
			return packEXVSUMNarrow, nil
		}
		return packEXVSUM, nil
	case FMADD:
		return packFMADD, nil
	}
	return 0, fmt.Errorf("%w: %v", ErrInvalidOperation, op)
}

// laneCount returns how many lanes are populated per record.
// The 8-bit VSUM reducer only spans half of the datapath.
func (p packing) laneCount(dstWidth int) int {
	if p == packVSUMNarrow {
		return DatapathWidth / 16
	}
	return DatapathWidth / dstWidth
}

// srcWidth returns the slot width of the a..d operands.
func (p packing) srcWidth(dstWidth int) int {
	switch p {
	case packFMADD, packEXVSUMNarrow:
		return dstWidth
	default:
		return dstWidth / 2
	}
}

// fields accumulates the per-role hex strings of one record, lane by lane.
type fields struct {
	e, d, c, b, a strings.Builder
	db, ca, ca2   strings.Builder
	result        strings.Builder
}

// appendLane encodes one lane into f. k is the record index; VSUM routes the
// (c,a) pair of odd records into the second accumulator field.
func (p packing) appendLane(f *fields, k int, l Lane, res fpx.Value, dstWidth int) {
	src := p.srcWidth(dstWidth)

	if p == packVSUMNarrow {
		f.e.WriteString(Filler(2))
	}
	f.e.WriteString(EncodeHex(l.E, dstWidth))

	d, c, b, a := EncodeHex(l.D, src), EncodeHex(l.C, src), EncodeHex(l.B, src), EncodeHex(l.A, src)
	f.d.WriteString(d)
	f.c.WriteString(c)
	f.b.WriteString(b)
	f.a.WriteString(a)
	f.db.WriteString(d + b)

	if p != packVSUMSplit || k%2 == 0 {
		f.ca.WriteString(c + a)
	} else {
		f.ca2.WriteString(c + a)
	}

	f.result.WriteString(EncodeHex(res, dstWidth))
}

// assemble returns the packed operand field and the result field.
func (p packing) assemble(f *fields) (operands, result string) {
	e := f.e.String()
	result = f.result.String()

	switch p {
	case packSDOTP:
		operands = e + f.db.String() + f.ca.String()
	case packVSUMFull, packFMADD:
		operands = e + f.c.String() + f.a.String()
	case packVSUMSplit:
		operands = e + f.ca2.String() + f.ca.String()
	case packVSUMNarrow:
		operands = e + Filler(DatapathWidth/4) + f.ca.String()
		result = Filler(DatapathWidth/8) + result
	case packEXVSUM, packEXVSUMNarrow:
		operands = e + Filler(DatapathWidth/4) + f.ca.String()
	}
	return operands, result
}
