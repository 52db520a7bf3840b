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

// DefaultCount is the number of stimuli generated when none is requested.
const DefaultCount = 10

// Config describes one stimuli file.
type Config struct {
	Count     int
	Operation Operation
	Formats   Formats
}

// DefaultConfig returns the configuration for op with its default formats.
func DefaultConfig(op Operation) Config {
	return Config{
		Count:     DefaultCount,
		Operation: op,
		Formats:   op.DefaultFormats(),
	}
}

// Record is one line of a stimuli file.
type Record struct {
	Tag        string    // 5-character operation tag
	OpMod      bool      // operation modifier, currently always false
	FormatTags [3]string // src, src2, dst
	Operands   string    // packed operand fields
	Result     string    // packed expected result
}

// String renders the record as it appears in the stimuli file, without the
// line terminator.
func (r Record) String() string {
	mod := 0
	if r.OpMod {
		mod = 1
	}
	return fmt.Sprintf("%s %d %s %s %s %s %s",
		r.Tag, mod, r.FormatTags[0], r.FormatTags[1], r.FormatTags[2], r.Operands, r.Result)
}

// Generator produces the records of one stimuli file.
// A Generator is not safe for concurrent use.
type Generator struct {
	cfg      Config
	roles    Roles
	pack     packing
	dstWidth int
	lanes    int
	tag      string
	fmtTags  [3]string
	rng      *rand.Rand
	next     int
}

// NewGenerator validates cfg and returns a generator drawing its operand
// bits from src.
func NewGenerator(cfg Config, src rand.Source) (*Generator, error) {
	if cfg.Count < 0 {
		return nil, fmt.Errorf("stim: negative stimuli count %d", cfg.Count)
	}
	tag, err := cfg.Operation.Tag()
	if err != nil {
		return nil, err
	}

	var fmtTags [3]string
	for i, f := range []fpx.Format{cfg.Formats.Src, cfg.Formats.Src2, cfg.Formats.Dst} {
		if err := f.Validate(); err != nil {
			return nil, err
		}
		if f.Width() > DatapathWidth {
			return nil, fmt.Errorf("%w: %v is wider than the %d-bit datapath", fpx.ErrInvalidFormat, f, DatapathWidth)
		}
		if fmtTags[i], err = f.Tag(); err != nil {
			return nil, err
		}
	}

	dstWidth := cfg.Formats.Dst.Width()
	pack, err := selectPacking(cfg.Operation, dstWidth)
	if err != nil {
		return nil, err
	}

	return &Generator{
		cfg:      cfg,
		roles:    cfg.Operation.Roles(cfg.Formats),
		pack:     pack,
		dstWidth: dstWidth,
		lanes:    pack.laneCount(dstWidth),
		tag:      tag,
		fmtTags:  fmtTags,
		rng:      rand.New(src),
	}, nil
}

// Config returns the generator's configuration.
func (g *Generator) Config() Config {
	return g.cfg
}

// Lanes returns the number of lanes populated per record.
func (g *Generator) Lanes() int {
	return g.lanes
}

// SrcWidth returns the slot width of the a..d operands.
func (g *Generator) SrcWidth() int {
	return g.pack.srcWidth(g.dstWidth)
}

// Next draws and assembles the next record.
func (g *Generator) Next() (Record, error) {
	k := g.next
	g.next++

	var f fields
	for i := 0; i < g.lanes; i++ {
		lane := RandomLane(g.roles, g.rng)
		res, err := Evaluate(g.cfg.Operation, lane, g.cfg.Formats.Dst)
		if err != nil {
			return Record{}, err
		}
		g.pack.appendLane(&f, k, lane, res, g.dstWidth)
	}
	operands, result := g.pack.assemble(&f)

	return Record{
		Tag:        g.tag,
		FormatTags: g.fmtTags,
		Operands:   operands,
		Result:     result,
	}, nil
}
