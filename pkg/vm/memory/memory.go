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
package memory

import (
	"fmt"
	"slices"
)

// Memory represents the bits of a machine, indexed by memory address.  Every
// cell holds a single boolean which instructions invert as balls pass them.
type Memory []bool

// New constructs a memory of n cells, all initially cleared.
func New(n uint) Memory {
	return make(Memory, n)
}

// Clone returns a copy of this memory which shares no storage with it.
func (p Memory) Clone() Memory {
	return slices.Clone(p)
}

// Invert the cell at a given address, returning its new value.
func (p Memory) Invert(addr uint) bool {
	p[addr] = !p[addr]
	//
	return p[addr]
}

// Register interprets the cells in the half-open range [start,end) as an
// unsigned binary number, where the cell at start is the least significant
// bit.  This is the reverse of how numbers are typically written, but matches
// the convention of registers on the board which have their LSB at the top.
// For example, cells [1,0,0] give 1 whilst [0,0,1] give 4.
func (p Memory) Register(start, end uint) uint64 {
	var value uint64
	//
	for i, bit := range p[start:end] {
		if bit {
			value |= 1 << i
		}
	}
	//
	return value
}

// SetRegister writes a given value into the cells of the half-open range
// [start,end), using the same bit ordering as Register.  Bits of the value
// which do not fit into the range are discarded.
func (p Memory) SetRegister(start, end uint, value uint64) {
	for i := uint(0); i < end-start; i++ {
		p[start+i] = (value & (1 << i)) != 0
	}
}

// Match checks this memory against a pattern of '0', '1' and '.' characters,
// where '.' matches either value.  The pattern may be shorter than the memory,
// in which case the remaining cells are unconstrained.
func (p Memory) Match(pattern string) bool {
	if len(pattern) > len(p) {
		return false
	}
	//
	for i := 0; i < len(pattern); i++ {
		switch pattern[i] {
		case '0':
			if p[i] {
				return false
			}
		case '1':
			if !p[i] {
				return false
			}
		}
	}
	//
	return true
}

// Apply overwrites those cells fixed by a given pattern of '0', '1' and '.'
// characters, leaving cells marked '.' unchanged.
func (p Memory) Apply(pattern string) error {
	if err := CheckPattern(pattern, uint(len(p))); err != nil {
		return err
	}
	//
	for i := 0; i < len(pattern); i++ {
		switch pattern[i] {
		case '0':
			p[i] = false
		case '1':
			p[i] = true
		}
	}
	//
	return nil
}

// CheckPattern checks that a given memory pattern is well-formed for a memory of
// n cells.
func CheckPattern(pattern string, n uint) error {
	if uint(len(pattern)) > n {
		return fmt.Errorf("memory pattern \"%s\" too long for %d cells", pattern, n)
	}
	//
	for i := 0; i < len(pattern); i++ {
		if c := pattern[i]; c != '0' && c != '1' && c != '.' {
			return fmt.Errorf("invalid character '%c' in memory pattern \"%s\"", c, pattern)
		}
	}
	//
	return nil
}

// Parse a memory from a string of '0' and '1' characters.
func Parse(str string) (Memory, error) {
	var mem = make(Memory, len(str))
	//
	for i := 0; i < len(str); i++ {
		switch str[i] {
		case '0':
			mem[i] = false
		case '1':
			mem[i] = true
		default:
			return nil, fmt.Errorf("invalid bit '%c' in memory \"%s\"", str[i], str)
		}
	}
	//
	return mem, nil
}

// String returns the memory as a string of '0' and '1' characters, starting
// from address 0.
func (p Memory) String() string {
	var bytes = make([]byte, len(p))
	//
	for i, bit := range p {
		if bit {
			bytes[i] = '1'
		} else {
			bytes[i] = '0'
		}
	}
	//
	return string(bytes)
}
