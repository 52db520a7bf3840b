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
	cryptorand "crypto/rand"
	"math/rand/v2"
)

// NewSource returns a reproducible bit source for seed.
func NewSource(seed uint64) rand.Source {
	return rand.NewPCG(seed, seed^0x9E3779B97F4A7C15)
}

// EntropySource returns a bit source seeded from the operating system.
// Runs using it are not reproducible.
func EntropySource() rand.Source {
	var seed [32]byte
	cryptorand.Read(seed[:])
	return rand.NewChaCha8(seed)
}
