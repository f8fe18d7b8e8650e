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
	"slices"

	"github.com/consensys/go-tumble/pkg/vm/ball"
	"github.com/consensys/go-tumble/pkg/vm/instruction"
	"github.com/consensys/go-tumble/pkg/vm/memory"
)

// WithBalls returns a copy of this state updated with the given number of blue
// and red balls, but which is otherwise identical to before.
func (p State) WithBalls(blue, red uint8) State {
	var state = p.Clone()
	//
	state.Balls = [2]uint8{blue, red}
	//
	return state
}

// WithStart returns a copy of this state whose start button releases a ball of
// the given color first.
func (p State) WithStart(start ball.Color) State {
	var state = p.Clone()
	//
	state.Start = start
	//
	return state
}

// WithEntry returns a copy of this state updated with the given entry points
// for blue and red balls respectively.
func (p State) WithEntry(blue, red Address) State {
	var state = p.Clone()
	//
	state.Entry = [2]Address{blue, red}
	//
	return state
}

// WithMemory returns a copy of this state whose memory is replaced with (a copy
// of) the given memory.
func (p State) WithMemory(mem memory.Memory) State {
	var state = p.Clone()
	//
	state.Mem = mem.Clone()
	//
	return state
}

// WithBit returns a copy of this state where the memory cell at a given address
// holds the given value.
func (p State) WithBit(addr Address, value bool) State {
	var state = p.Clone()
	//
	state.Mem[addr] = value
	//
	return state
}

// WithRegister returns a copy of this state where the memory cells in the range
// [start,end) hold the given number, using the same bit order as Register.
func (p State) WithRegister(start, end uint, value uint64) State {
	var state = p.Clone()
	//
	state.Mem.SetRegister(start, end, value)
	//
	return state
}

// WithInstructions returns a copy of this state whose program is replaced with
// (a copy of) the given instructions.
func (p State) WithInstructions(instrs ...instruction.Instruction) State {
	var state = p.Clone()
	//
	state.Instr = slices.Clone(instrs)
	//
	return state
}
