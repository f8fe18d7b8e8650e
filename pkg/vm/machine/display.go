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
	"strings"

	"github.com/consensys/go-tumble/pkg/vm/instruction"
)

// String renders the program held in this state: the start button, entry
// points, memory and instructions.
func (p State) String() string {
	var builder strings.Builder
	//
	builder.WriteString(fmt.Sprintf("start: %c\n", p.Start.Char()))
	builder.WriteString(fmt.Sprintf("start_blue: %s\n", instruction.AddressString(p.Entry[0])))
	builder.WriteString(fmt.Sprintf("start_red: %s\n", instruction.AddressString(p.Entry[1])))
	builder.WriteString("mem:\n")
	//
	for i, bit := range p.Mem {
		if bit {
			builder.WriteString(fmt.Sprintf("\t%d: 1\n", i))
		} else {
			builder.WriteString(fmt.Sprintf("\t%d: 0\n", i))
		}
	}
	//
	builder.WriteString("instr:\n")
	//
	for i, insn := range p.Instr {
		builder.WriteString(fmt.Sprintf("\t%d: %s\n", i, insn))
	}
	//
	return builder.String()
}

// Summary renders the dynamic parts of this state on a single line: the
// remaining balls, the memory, the output and any intercepted balls.  For
// example, " 7, 8  =>  [01]  =>  [b] <I0: r>".
func (p State) Summary() string {
	var builder strings.Builder
	//
	builder.WriteString(fmt.Sprintf("%2d,%2d  =>  [%s]  =>  [%s]", p.Balls[0], p.Balls[1], p.Mem, p.Output))
	//
	for i, c := range p.Intercept {
		if c.HasValue() {
			builder.WriteString(fmt.Sprintf(" <I%d: %c>", i, c.Unwrap().Char()))
		}
	}
	//
	return builder.String()
}
