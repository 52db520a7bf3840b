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

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrInvalidFormat is returned for format names or descriptors that do not
// match one of the canonical formats.
var ErrInvalidFormat = errors.New("invalid FP format")

// Format describes a binary floating-point encoding.
//
//	S | E...E (ExpBits) | F...F (FracBits)
//
// Exponent bias is 2^(ExpBits-1)-1. The all-ones exponent encodes infinity
// (zero fraction) and NaN (non-zero fraction), as in IEEE 754.
type Format struct {
	ExpBits  uint8
	FracBits uint8
}

// Canonical formats.
var (
	FP64 = Format{ExpBits: 11, FracBits: 52}
	FP32 = Format{ExpBits: 8, FracBits: 23}
	FP16 = Format{ExpBits: 5, FracBits: 10}
	FP8  = Format{ExpBits: 5, FracBits: 2}
	AL16 = Format{ExpBits: 8, FracBits: 7} // bfloat16
	AL8  = Format{ExpBits: 4, FracBits: 3}
)

type formatEntry struct {
	name string
	tag  string // fixed 4-character spelling used in stimuli records
}

var registry = map[Format]formatEntry{
	FP64: {"FP64", "FP64"},
	FP32: {"FP32", "FP32"},
	FP16: {"FP16", "FP16"},
	FP8:  {"FP8", "FP08"},
	AL16: {"AL16", "AL16"},
	AL8:  {"AL8", "AL08"},
}

var upper = cases.Upper(language.Und)

// ParseFormat returns the canonical format with the given name.
// Names are matched case-insensitively; the record tags FP08 and AL08 are
// accepted as aliases of FP8 and AL8.
func ParseFormat(name string) (Format, error) {
	want := upper.String(strings.TrimSpace(name))
	for f, e := range registry {
		if e.name == want || e.tag == want {
			return f, nil
		}
	}
	return Format{}, fmt.Errorf("%w: %q", ErrInvalidFormat, name)
}

// MustParseFormat is like ParseFormat but panics on unknown names.
func MustParseFormat(name string) Format {
	f, err := ParseFormat(name)
	if err != nil {
		panic(err)
	}
	return f
}

// FormatNames returns the canonical format names, sorted.
func FormatNames() []string {
	names := lo.Map(lo.Values(registry), func(e formatEntry, _ int) string {
		return e.name
	})
	sort.Strings(names)
	return names
}

// Name returns the canonical name of f.
func (f Format) Name() (string, error) {
	e, ok := registry[f]
	if !ok {
		return "", fmt.Errorf("%w: {exp=%d, frac=%d}", ErrInvalidFormat, f.ExpBits, f.FracBits)
	}
	return e.name, nil
}

// Tag returns the fixed-width record tag of f ("FP08" for FP8).
func (f Format) Tag() (string, error) {
	e, ok := registry[f]
	if !ok {
		return "", fmt.Errorf("%w: {exp=%d, frac=%d}", ErrInvalidFormat, f.ExpBits, f.FracBits)
	}
	return e.tag, nil
}

// Width returns the total number of bits, sign included.
func (f Format) Width() int {
	return int(f.ExpBits) + int(f.FracBits) + 1
}

// Validate reports whether f is usable by the engine: its width must be one
// of the hardware widths and its fields must fit a float64.
func (f Format) Validate() error {
	switch f.Width() {
	case 8, 16, 32, 64:
	default:
		return fmt.Errorf("%w: width %d not supported", ErrInvalidFormat, f.Width())
	}
	if f.ExpBits < 2 || f.ExpBits > FP64.ExpBits || f.FracBits < 1 || f.FracBits > FP64.FracBits {
		return fmt.Errorf("%w: {exp=%d, frac=%d}", ErrInvalidFormat, f.ExpBits, f.FracBits)
	}
	return nil
}

// String implements fmt.Stringer.
func (f Format) String() string {
	if name, err := f.Name(); err == nil {
		return name
	}
	return fmt.Sprintf("{exp=%d, frac=%d}", f.ExpBits, f.FracBits)
}

func (f Format) bias() int {
	return 1<<(f.ExpBits-1) - 1
}

func (f Format) maxExp() uint64 {
	return 1<<f.ExpBits - 1
}

func (f Format) mask() uint64 {
	if f.Width() >= 64 {
		return ^uint64(0)
	}
	return 1<<f.Width() - 1
}
