// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package solver

import (
	"github.com/consensys/go-tumble/pkg/vm/instruction"
)

// Address is a convenient alias for instruction addresses.
type Address = instruction.Address

// Entrypoints returns every admissible pair of (blue, red) entry points for a
// program of n instructions, where each entry point is either an instruction
// address or one of the given external addresses.  On the physical board,
// instruction 0 is always reachable, but two entry points into the middle of a
// program cannot both be realised.  Hence, a pair is admissible only when there
// are no instructions at all, or at least one of its entry points is address 0.
// Pairs are returned with the blue entry point varying slowest.
func Entrypoints(n uint, external []Address) [][2]Address {
	var (
		candidates = JumpTargets(0, n, external)
		result     [][2]Address
	)
	// JumpTargets excludes address 0 itself
	if n > 0 {
		candidates = append([]Address{0}, candidates...)
	}
	//
	for _, b := range candidates {
		for _, r := range candidates {
			if n == 0 || b == 0 || r == 0 {
				result = append(result, [2]Address{b, r})
			}
		}
	}
	//
	return result
}

// JumpTargets returns the permitted jump targets for the instruction at a given
// address in a program of n instructions.  These are all instructions strictly
// after it (i.e. jumps are forwards only), followed by the given external
// addresses.
func JumpTargets(addr uint, n uint, external []Address) []Address {
	var targets []Address
	//
	for i := addr + 1; i < n; i++ {
		targets = append(targets, Address(i))
	}
	//
	return append(targets, external...)
}
