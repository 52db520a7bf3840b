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

// Package stim generates stimuli files for a mixed-precision FPU testbench.
//
// Each stimulus record packs random operands for every SIMD lane of a
// 32-bit datapath together with the expected result, all as hexadecimal
// fields. Expected results are computed in FP64 and rounded into the
// destination format.
//
// Supported operations:
//   - SDOTP:  result = c*d + (a*b + e)   expanding sum of dot products
//   - VSUM:   result = (e + a) + c       vector inner sum
//   - EXVSUM: result = (e + a) + c       expanding vector inner sum
//   - FMADD:  result = a*c + e           fused multiply-add
//
// Multi-term results are evaluated as chained two-operand FP64 operations,
// so they can differ from an infinitely precise sum when intermediate
// rounding matters.
//
// Usage:
//
//	cfg := stim.DefaultConfig(stim.SDOTP)
//	gen, err := stim.NewGenerator(cfg, stim.NewSource(42))
//	if err != nil {
//		return err
//	}
//	err = stim.WriteFile("stimuli.txt", gen)
package stim
