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
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrIO wraps failures to create or write a stimuli file.
var ErrIO = errors.New("stimuli I/O failure")

// Header is the comment line that starts every stimuli file.
const Header = "//operation op_mod src_fmt src2_fmt dst_fmt operands exp_result"

// WriteTo writes the header and the remaining Config().Count records to w.
// It implements io.WriterTo.
func (g *Generator) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64

	written, err := fmt.Fprintln(bw, Header)
	n += int64(written)
	if err != nil {
		return n, fmt.Errorf("%w: %w", ErrIO, err)
	}

	for g.next < g.cfg.Count {
		rec, err := g.Next()
		if err != nil {
			return n, err
		}
		written, err := fmt.Fprintln(bw, rec.String())
		n += int64(written)
		if err != nil {
			return n, fmt.Errorf("%w: %w", ErrIO, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return n, fmt.Errorf("%w: %w", ErrIO, err)
	}
	return n, nil
}

// WriteFile creates (or truncates) path and writes all records of g to it.
// A partially written file is left in place on error.
func WriteFile(path string, g *Generator) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %w", ErrIO, cerr)
		}
	}()

	_, err = g.WriteTo(f)
	return err
}
