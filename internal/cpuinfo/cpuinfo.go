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

// Package cpuinfo reports the host features that matter for golden-result
// evaluation. math.FMA is exact on every platform; on hosts without a fused
// multiply-add instruction it runs in software and generation is slower.
package cpuinfo

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
)

// currentName is the instruction set used for float64 fused multiply-add.
// Set by init() in cpuinfo_*.go files.
var currentName string

// hasFMA reports a hardware fused multiply-add.
// Set by init() in cpuinfo_*.go files.
var hasFMA bool

// HasFMA reports whether math.FMA runs on a hardware instruction.
func HasFMA() bool {
	return hasFMA
}

// FMAName returns the instruction set providing FMA, or "software".
func FMAName() string {
	return currentName
}

// NoFMAEnv checks if STIMGEN_NO_FMA is set. It only affects the report;
// results are identical either way.
func NoFMAEnv() bool {
	val := os.Getenv("STIMGEN_NO_FMA")
	if val == "" {
		return false
	}
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}

// Describe returns a one-line summary, e.g. "linux/amd64 fma=fma3".
func Describe() string {
	return fmt.Sprintf("%s/%s fma=%s", runtime.GOOS, runtime.GOARCH, FMAName())
}

func setSoftware() {
	hasFMA = false
	currentName = "software"
}
