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
package machine

import (
	"fmt"
	"slices"

	"github.com/consensys/go-tumble/pkg/util"
	"github.com/consensys/go-tumble/pkg/vm/ball"
	"github.com/consensys/go-tumble/pkg/vm/instruction"
	"github.com/consensys/go-tumble/pkg/vm/memory"
)

// Address is a convenient alias for instruction addresses.
type Address = instruction.Address

// State captures a complete board: the supply of balls at the top, the program
// itself, and the balls collected at the bottom (and by any interceptors).  A
// State is a value: the builders and Run all operate on copies, so the state
// from which they were called is never modified.  Note, however, that a plain
// assignment shares the underlying memory and instructions; use Clone to
// obtain an independent state.
type State struct {
	// Number of blue and red balls remaining at the top of the board.
	Balls [2]uint8
	// Position of the start button, which determines the color of the first
	// ball released.
	Start ball.Color
	// Instruction entry points for the blue and red balls.
	Entry [2]Address
	// Memory cells of the machine.
	Mem memory.Memory
	// Program of the machine.
	Instr []instruction.Instruction
	// Colors recorded by each interceptor (if reached).
	Intercept [instruction.NUM_INTERCEPTORS]util.Option[ball.Color]
	// Sequence of balls output at the bottom of the board.
	Output ball.Sequence
}

// New constructs a state for a machine with a given number of bits.  Every
// instruction initially inverts cell 0 and then falls off the board, whilst all
// memory cells are cleared.  No balls are provided, and both entry points are
// instruction 0.
func New(bits uint) State {
	var instrs = make([]instruction.Instruction, bits)
	//
	for i := range instrs {
		instrs[i] = instruction.Ijmp(0, instruction.FALL, instruction.FALL)
	}
	//
	return State{
		Mem:   memory.New(bits),
		Instr: instrs,
	}
}

// Clone returns a copy of this state which shares no mutable storage with it.
func (p State) Clone() State {
	var state = p
	//
	state.Mem = p.Mem.Clone()
	state.Instr = slices.Clone(p.Instr)
	state.Output = slices.Clone(p.Output)
	//
	return state
}

// NumInstructions returns the number of instructions in this machine.
func (p State) NumInstructions() uint {
	return uint(len(p.Instr))
}

// Bit returns the value of the memory cell at a given address.
func (p State) Bit(addr Address) bool {
	return p.Mem[addr]
}

// Register interprets the memory cells in the range [start,end) as an unsigned
// number whose least significant bit is at start.
func (p State) Register(start, end uint) uint64 {
	return p.Mem.Register(start, end)
}

// OutputString returns the sequence of balls output at the bottom of the board
// as a string of 'b' and 'r' characters.  For example, "bbrbr".
func (p State) OutputString() string {
	return p.Output.String()
}

// MemoryString returns the memory cells as a string of '0' and '1' characters.
func (p State) MemoryString() string {
	return p.Mem.String()
}

// Released returns the number of balls released so far in this state's run.
// That is every ball which reached a lever, plus the one caught by an
// interceptor (if any).
func (p State) Released() uint {
	var n = uint(len(p.Output))
	//
	for _, c := range p.Intercept {
		if c.HasValue() {
			// At most one interceptor is reached per run.
			return n + 1
		}
	}
	//
	return n
}

// Validate checks that this state is well-formed for execution.  Specifically,
// that memory and instructions are the same length, that the program fits below
// the reserved addresses, and that every instruction inverts an existing cell.
// A valid state can still fault at runtime by jumping somewhere invalid.
func (p State) Validate() error {
	if len(p.Mem) != len(p.Instr) {
		return fmt.Errorf("memory has %d cells, but there are %d instructions", len(p.Mem), len(p.Instr))
	} else if uint(len(p.Instr)) > instruction.MAX_INSTRUCTIONS {
		return fmt.Errorf("too many instructions (%d)", len(p.Instr))
	}
	//
	for i, insn := range p.Instr {
		if uint(insn.Mem) >= uint(len(p.Mem)) {
			return fmt.Errorf("instruction %d (%s) inverts non-existent cell", i, insn)
		}
	}
	//
	return nil
}
