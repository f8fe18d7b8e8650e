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
package instruction

import (
	"fmt"
	"strings"
)

// Instruction is the machine's only instruction: invert-and-branch.  Executing
// it inverts memory cell Mem and then jumps to Jmp0 or Jmp1, depending on the
// new value of that cell.
type Instruction struct {
	// Memory address to invert.  This equals the instruction's own address
	// for ordinary bits, but may refer to an earlier cell for gear bits.
	Mem Address
	// Instruction address to jump to if memory was flipped to 0.
	Jmp0 Address
	// Instruction address to jump to if memory was flipped to 1.
	Jmp1 Address
}

// Ijmp is a shorthand constructor for an invert-and-branch instruction.
func Ijmp(mem Address, jmp0 Address, jmp1 Address) Instruction {
	return Instruction{mem, jmp0, jmp1}
}

// Branch returns the jump target selected by the given (post-inversion) value
// of the memory cell.
func (p Instruction) Branch(bit bool) Address {
	if bit {
		return p.Jmp1
	}
	//
	return p.Jmp0
}

func (p Instruction) String() string {
	return fmt.Sprintf("ijmp %d %s %s", p.Mem, AddressString(p.Jmp0), AddressString(p.Jmp1))
}

// Parse an instruction from its textual form, such as "ijmp 0 B R".  The
// memory operand must be an ordinary address.
func Parse(str string) (Instruction, error) {
	var fields = strings.Fields(str)
	//
	if len(fields) != 4 || fields[0] != "ijmp" {
		return Instruction{}, fmt.Errorf("malformed instruction \"%s\"", str)
	}
	//
	addrs, err := ParseAddresses(fields[1:]...)
	//
	if err != nil {
		return Instruction{}, fmt.Errorf("malformed instruction \"%s\" (%w)", str, err)
	} else if !IsInstruction(addrs[0]) {
		return Instruction{}, fmt.Errorf("malformed instruction \"%s\" (invalid memory address)", str)
	}
	//
	return Ijmp(addrs[0], addrs[1], addrs[2]), nil
}
