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

// FillerDigit marks don't-care nibbles in a stimuli field. It is never
// part of a value: value digits are always lowercase.
const FillerDigit = 'F'

// Filler returns n filler digits.
func Filler(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(string(FillerDigit), n)
}

// EncodeHex renders v in a laneBits-wide slot.
//
// The value's own width/4 digits are zero-padded lowercase hex. When the
// lane is wider than the format, (laneBits-width)/4 filler digits precede
// them. A format wider than its lane is written without filler.
func EncodeHex(v fpx.Value, laneBits int) string {
	v = v.Normalize()
	width := v.Format().Width()
	return Filler((laneBits-width)/4) + fmt.Sprintf("%0*x", width/4, v.Bits())
}
