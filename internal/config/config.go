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

// Package config loads stimgen settings from the environment and from YAML
// batch plans.
//
// Environment variables:
//
//	STIMGEN_OUTPUT   default output file (default: ../stimuli.txt)
//	STIMGEN_SEED     default seed, 0 for an entropy-seeded run
//
// A batch plan lists several stimuli files to generate in one run:
//
//	output_dir: build/stimuli
//	seed: 1234
//	jobs:
//	  - operation: SDOTP
//	    count: 100
//	  - name: vsum-fp8
//	    operation: VSUM
//	    count: 20
//	    formats: [FP8, FP8, FP8]
//	    output: vsum_fp8.txt
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/ajroetker/go-fpstim/fpx"
	"github.com/ajroetker/go-fpstim/stim"
)

// DefaultOutput is the stimuli file written when no path is given. It is
// relative to the testbench's working directory.
const DefaultOutput = "../stimuli.txt"

// GetEnvStr returns the value of key, or def when unset or empty.
func GetEnvStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// GetEnvUint64 returns key parsed as an unsigned integer, or def when unset
// or unparsable.
func GetEnvUint64(key string, def uint64) uint64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.ParseUint(v, 0, 64)
	if err != nil {
		return def
	}
	return n
}

// Plan is a batch of stimuli files.
type Plan struct {
	OutputDir string `yaml:"output_dir"`
	Seed      uint64 `yaml:"seed"` // 0 seeds from system entropy
	Jobs      []Job  `yaml:"jobs"`
}

// Job describes one stimuli file of a plan.
type Job struct {
	Name      string   `yaml:"name"`
	Operation string   `yaml:"operation"`
	Count     *int     `yaml:"count"`   // nil means stim.DefaultCount
	Formats   []string `yaml:"formats"` // empty, or src, src2, dst
	Output    string   `yaml:"output"`  // defaults to <name>.txt
}

// LoadPlan reads and validates a YAML plan.
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading plan: %w", err)
	}
	return ParsePlan(data)
}

// ParsePlan decodes and validates a YAML plan.
func ParsePlan(data []byte) (*Plan, error) {
	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing plan: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks every job and that no two jobs write the same file.
func (p *Plan) Validate() error {
	if len(p.Jobs) == 0 {
		return errors.New("plan has no jobs")
	}
	seen := make(map[string]int, len(p.Jobs))
	for i := range p.Jobs {
		j := &p.Jobs[i]
		if _, err := j.StimConfig(); err != nil {
			return fmt.Errorf("job %d (%s): %w", i, j.DisplayName(), err)
		}
		out := p.OutputPath(j)
		if prev, ok := seen[out]; ok {
			return fmt.Errorf("jobs %d and %d both write %s", prev, i, out)
		}
		seen[out] = i
	}
	return nil
}

// DisplayName returns the job name, or the lower-cased operation when unnamed.
func (j *Job) DisplayName() string {
	if j.Name != "" {
		return j.Name
	}
	return strings.ToLower(j.Operation)
}

// StimConfig converts the job into a generator configuration.
func (j *Job) StimConfig() (stim.Config, error) {
	op, err := stim.ParseOperation(j.Operation)
	if err != nil {
		return stim.Config{}, err
	}
	cfg := stim.DefaultConfig(op)
	if j.Count != nil {
		if *j.Count < 0 {
			return stim.Config{}, fmt.Errorf("count must not be negative, got %d", *j.Count)
		}
		cfg.Count = *j.Count
	}

	switch len(j.Formats) {
	case 0:
	case 3:
		formats, err := ParseFormats(j.Formats)
		if err != nil {
			return stim.Config{}, err
		}
		cfg.Formats = formats
	default:
		return stim.Config{}, fmt.Errorf("formats needs src, src2 and dst, got %d entries", len(j.Formats))
	}
	return cfg, nil
}

// OutputPath returns where the job's stimuli file is written.
func (p *Plan) OutputPath(j *Job) string {
	out := j.Output
	if out == "" {
		out = j.DisplayName() + ".txt"
	}
	if filepath.IsAbs(out) || p.OutputDir == "" {
		return filepath.Clean(out)
	}
	return filepath.Join(p.OutputDir, out)
}

// ParseFormats parses the src, src2 and dst format names.
func ParseFormats(names []string) (stim.Formats, error) {
	if len(names) != 3 {
		return stim.Formats{}, fmt.Errorf("expected 3 formats, got %d", len(names))
	}
	var errs []error
	formats := lo.Map(names, func(name string, _ int) fpx.Format {
		f, err := fpx.ParseFormat(name)
		if err != nil {
			errs = append(errs, err)
		}
		return f
	})
	if err := errors.Join(errs...); err != nil {
		return stim.Formats{}, err
	}
	return stim.Formats{Src: formats[0], Src2: formats[1], Dst: formats[2]}, nil
}
