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

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/go-fpstim/fpx"
	"github.com/ajroetker/go-fpstim/stim"
)

// run executes stimgen with args and returns stdout and stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("STIMGEN_OUTPUT", "")
	t.Setenv("STIMGEN_SEED", "")

	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func recordLines(t *testing.T, text string) []string {
	t.Helper()
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	require.NotEmpty(t, lines)
	require.Equal(t, stim.Header, lines[0])
	return lines[1:]
}

func TestGenerateToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stimuli.txt")
	stdout, _, err := run(t, "5", "FMADD", "-o", path, "--seed", "3")
	require.NoError(t, err)
	assert.Equal(t, "Finished 32-bit stimuli file generation.\n", stdout)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := recordLines(t, string(data))
	require.Len(t, lines, 5)
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, "FMADD 0 FP32 FP32 FP32 "), line)
	}
}

func TestGenerateExplicitFormats(t *testing.T) {
	stdout, _, err := run(t, "4", "sdotp", "fp8", "FP8", "fp16", "--output=-", "--seed", "1")
	require.NoError(t, err)
	lines := recordLines(t, stdout)
	require.Len(t, lines, 4)
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, "SDOTP 0 FP08 FP08 FP16 "), line)
	}
}

func TestGenerateOperationDefaults(t *testing.T) {
	stdout, _, err := run(t, "2", "VSUM", "--output=-", "--seed", "1")
	require.NoError(t, err)
	for _, line := range recordLines(t, stdout) {
		assert.True(t, strings.HasPrefix(line, "VSUM_ 0 FP16 FP16 FP16 "), line)
	}
}

func TestGeneratePartialFormatsWarns(t *testing.T) {
	stdout, stderr, err := run(t, "2", "EXVSUM", "FP8", "--output=-", "--seed", "1")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Warning")
	for _, line := range recordLines(t, stdout) {
		assert.True(t, strings.HasPrefix(line, "EXVSU 0 FP16 FP16 FP32 "), line)
	}
}

func TestGenerateDefaultCount(t *testing.T) {
	stdout, _, err := run(t, "--output=-", "--seed", "8")
	require.NoError(t, err)
	lines := recordLines(t, stdout)
	require.Len(t, lines, stim.DefaultCount)
	assert.True(t, strings.HasPrefix(lines[0], "SDOTP 0 FP16 FP16 FP32 "), lines[0])
}

func TestGenerateSeedReproducible(t *testing.T) {
	a, _, err := run(t, "20", "SDOTP", "--output=-", "--seed", "42")
	require.NoError(t, err)
	b, _, err := run(t, "20", "SDOTP", "--output=-", "--seed", "42")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerateVerbose(t *testing.T) {
	_, stderr, err := run(t, "3", "FMADD", "--output=-", "--seed", "5", "-v")
	require.NoError(t, err)
	assert.Contains(t, stderr, "FMADD FP32 FP32 FP32: 3 stimuli, 1 lane(s), 32-bit operands, seed 5")
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"BadCount", []string{"ten"}, nil},
		{"NegativeCount", []string{"-3"}, nil},
		{"UnknownOperation", []string{"1", "FDIV"}, stim.ErrInvalidOperation},
		{"UnknownFormat", []string{"1", "SDOTP", "FP16", "FP16", "FP24"}, fpx.ErrInvalidFormat},
		{"FP64", []string{"1", "FMADD", "FP32", "FP32", "FP64"}, fpx.ErrInvalidFormat},
		{"TooManyArgs", []string{"1", "SDOTP", "FP16", "FP16", "FP32", "extra"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append(tt.args, "--output", filepath.Join(t.TempDir(), "out.txt"))
			_, _, err := run(t, args...)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestGenerateUnwritableOutput(t *testing.T) {
	_, _, err := run(t, "1", "-o", filepath.Join(t.TempDir(), "missing", "stimuli.txt"))
	assert.ErrorIs(t, err, stim.ErrIO)
}

func TestFormatsCommand(t *testing.T) {
	stdout, _, err := run(t, "formats")
	require.NoError(t, err)
	for _, want := range []string{"NAME", "FP32", "FP16", "AL16", "FP08", "AL08"} {
		assert.Contains(t, stdout, want)
	}
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "stimgen v"+version)
	assert.Contains(t, stdout, "fma=")
}

const testPlan = `
output_dir: %s
seed: 77
jobs:
  - operation: SDOTP
    count: 3
  - name: vsum-fp8
    operation: VSUM
    count: 2
    formats: [FP8, FP8, FP8]
`

func writePlan(t *testing.T, outDir string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.yaml")
	plan := strings.Replace(testPlan, "%s", outDir, 1)
	require.NoError(t, os.WriteFile(path, []byte(plan), 0o644))
	return path
}

func TestBatchCommand(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "stimuli")
	stdout, _, err := run(t, "batch", writePlan(t, outDir))
	require.NoError(t, err)
	assert.Contains(t, stdout, "(2 files)")

	data, err := os.ReadFile(filepath.Join(outDir, "sdotp.txt"))
	require.NoError(t, err)
	assert.Len(t, recordLines(t, string(data)), 3)

	data, err = os.ReadFile(filepath.Join(outDir, "vsum-fp8.txt"))
	require.NoError(t, err)
	lines := recordLines(t, string(data))
	require.Len(t, lines, 2)
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, "VSUM_ 0 FP08 FP08 FP08 "), line)
	}
}

func TestBatchSeedOverride(t *testing.T) {
	read := func(dir string) string {
		data, err := os.ReadFile(filepath.Join(dir, "sdotp.txt"))
		require.NoError(t, err)
		return string(data)
	}

	dirA := filepath.Join(t.TempDir(), "a")
	_, _, err := run(t, "batch", writePlan(t, dirA))
	require.NoError(t, err)

	dirB := filepath.Join(t.TempDir(), "b")
	_, _, err = run(t, "batch", writePlan(t, dirB), "--seed", "77")
	require.NoError(t, err)
	assert.Equal(t, read(dirA), read(dirB), "explicit seed equal to the plan's")

	dirC := filepath.Join(t.TempDir(), "c")
	_, _, err = run(t, "batch", writePlan(t, dirC), "--seed", "78")
	require.NoError(t, err)
	assert.NotEqual(t, read(dirA), read(dirC))
}

func TestBatchMissingPlan(t *testing.T) {
	_, _, err := run(t, "batch", filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseArgs(t *testing.T) {
	cfg, err := parseArgs(nil)
	require.NoError(t, err)
	assert.Equal(t, stim.DefaultConfig(stim.SDOTP), cfg)

	cfg, err = parseArgs([]string{"7", "exvsum", "AL8", "AL8", "FP8"})
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Count)
	assert.Equal(t, stim.EXVSUM, cfg.Operation)
	assert.Equal(t, stim.Formats{Src: fpx.AL8, Src2: fpx.AL8, Dst: fpx.FP8}, cfg.Formats)
}
