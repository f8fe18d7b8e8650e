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
	"context"

	"github.com/consensys/go-tumble/pkg/vm/instruction"
	"github.com/consensys/go-tumble/pkg/vm/machine"
)

// Visitor is called on every program generated during a search.  The program
// is a scratch state which is mutated in place as the search proceeds, hence it
// must be neither modified nor retained by the visitor (use Clone for that).
// Returning an error terminates the search.
type Visitor func(program *machine.State) error

// VisitJumps visits all variations of the jump targets of every instruction in
// a given program, where the instruction at address i always inverts memory
// cell i.  Jumps only go forwards, or to one of the given external addresses.
// The context is checked before each program is visited, and the search stops
// early if it is cancelled.  A program without instructions is visited exactly
// once.
func VisitJumps(ctx context.Context, program machine.State, external []Address, fn Visitor) error {
	var scratch = program.Clone()
	//
	if len(scratch.Instr) == 0 {
		return visit(ctx, &scratch, fn)
	}
	//
	return visitJumps(ctx, 0, &scratch, external, fn)
}

func visitJumps(ctx context.Context, addr uint, p *machine.State, external []Address, fn Visitor) error {
	var (
		n       = uint(len(p.Instr))
		targets = JumpTargets(addr, n, external)
		orig    = p.Instr[addr]
	)
	// Restore this slot on the way out
	defer func() { p.Instr[addr] = orig }()
	//
	for _, jmp0 := range targets {
		for _, jmp1 := range targets {
			var err error
			//
			p.Instr[addr] = instruction.Ijmp(Address(addr), jmp0, jmp1)
			//
			if addr+1 == n {
				err = visit(ctx, p, fn)
			} else {
				err = visitJumps(ctx, addr+1, p, external, fn)
			}
			//
			if err != nil {
				return err
			}
		}
	}
	//
	return nil
}

// VisitInstructions visits all variations of every instruction in a given
// program, including the memory cell each inverts.  Instruction 0 always
// inverts cell 0, whilst any later instruction i inverts either cell i or the
// same cell as instruction i-1 (i.e. it forms a gear bit with its predecessor).
// Otherwise, this behaves as for VisitJumps and, in particular, visits a strict
// superset of the programs visited by VisitJumps.
func VisitInstructions(ctx context.Context, program machine.State, external []Address, fn Visitor) error {
	var scratch = program.Clone()
	//
	if len(scratch.Instr) == 0 {
		return visit(ctx, &scratch, fn)
	}
	//
	return visitInstructions(ctx, 0, &scratch, external, fn)
}

func visitInstructions(ctx context.Context, addr uint, p *machine.State, external []Address, fn Visitor) error {
	var (
		n       = uint(len(p.Instr))
		targets = JumpTargets(addr, n, external)
		orig    = p.Instr[addr]
		mems    = []Address{Address(addr)}
	)
	// Restore this slot on the way out
	defer func() { p.Instr[addr] = orig }()
	// Gear bit with previous instruction
	if addr > 0 {
		mems = append(mems, p.Instr[addr-1].Mem)
	}
	//
	for _, mem := range mems {
		for _, jmp0 := range targets {
			for _, jmp1 := range targets {
				var err error
				//
				p.Instr[addr] = instruction.Ijmp(mem, jmp0, jmp1)
				//
				if addr+1 == n {
					err = visit(ctx, p, fn)
				} else {
					err = visitInstructions(ctx, addr+1, p, external, fn)
				}
				//
				if err != nil {
					return err
				}
			}
		}
	}
	//
	return nil
}

func visit(ctx context.Context, p *machine.State, fn Visitor) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	//
	return fn(p)
}
