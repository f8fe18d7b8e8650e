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
package puzzle

import (
	"fmt"

	"github.com/consensys/go-tumble/pkg/solver"
	"github.com/consensys/go-tumble/pkg/util"
	"github.com/consensys/go-tumble/pkg/vm/ball"
	"github.com/consensys/go-tumble/pkg/vm/instruction"
	"github.com/consensys/go-tumble/pkg/vm/machine"
	"github.com/consensys/go-tumble/pkg/vm/memory"
)

// Puzzle describes a challenge for the machine: a board of a given size, a
// supply of balls, and a set of cases which any solution must satisfy.  A
// puzzle may additionally provide a concrete program, which can be run and
// checked directly rather than searched for.
type Puzzle struct {
	// Name of this puzzle (defaults to the file name).
	Name string
	// Number of bits (hence instructions) on the board.
	Bits uint
	// Search mode used when solving.
	Mode solver.Mode
	// External addresses available to solutions.
	External []instruction.Address
	// Number of workers used when solving.
	Workers uint
	// Initial supply of blue and red balls.
	Balls [2]uint8
	// Color of the first ball released.
	Start ball.Color
	// Pattern fixing the initial memory of candidates.
	Memory string
	// Concrete program (if given).
	Program util.Option[machine.State]
	// Cases which every solution must satisfy.
	Cases []Case
}

// Initial returns the state from which a search for solutions begins.  This
// has the required number of bits and supply of balls, with its memory set by
// the puzzle's memory pattern.
func (p *Puzzle) Initial() machine.State {
	var state = machine.New(p.Bits).WithBalls(p.Balls[0], p.Balls[1]).WithStart(p.Start)
	// Pattern was checked on compilation
	if err := state.Mem.Apply(p.Memory); err != nil {
		panic(err.Error())
	}
	//
	return state
}

// Config returns the search configuration for this puzzle.
func (p *Puzzle) Config() solver.Config {
	return solver.Config{Mode: p.Mode, External: p.External, Workers: p.Workers}
}

// Validate this puzzle.  This is necessary after its fields have been modified
// directly (e.g. from the command line), and is done automatically when a
// puzzle is compiled.  The search configuration is only checked when external
// addresses are given, or there is no concrete program (i.e. when the puzzle
// can only be solved).
func (p *Puzzle) Validate() error {
	if p.Bits > instruction.MAX_INSTRUCTIONS {
		return fmt.Errorf("too many bits (%d)", p.Bits)
	} else if err := memory.CheckPattern(p.Memory, p.Bits); err != nil {
		return err
	}
	//
	if len(p.External) > 0 || p.Program.IsEmpty() {
		if err := p.Config().Validate(machine.New(p.Bits)); err != nil {
			return err
		}
	}
	//
	if p.Program.HasValue() {
		program := p.Program.Unwrap()
		//
		if program.NumInstructions() != p.Bits {
			return fmt.Errorf("program has %d instructions, but puzzle has %d bits", program.NumInstructions(), p.Bits)
		} else if err := program.Validate(); err != nil {
			return fmt.Errorf("invalid program: %w", err)
		}
	}
	//
	for _, c := range p.Cases {
		if err := c.validate(p.Bits); err != nil {
			return fmt.Errorf("%s: %w", c.Name, err)
		}
	}
	//
	return nil
}

// Test returns a predicate which accepts exactly those candidates satisfying
// every case of this puzzle.  A puzzle without cases accepts everything.
func (p *Puzzle) Test() solver.Test {
	return func(program machine.State, result machine.State) bool {
		for _, c := range p.Cases {
			if c.Accepts(program, result) != nil {
				return false
			}
		}
		//
		return true
	}
}

// Check runs every case of this puzzle against a concrete program, returning
// one error for each case which fails.
func (p *Puzzle) Check(program machine.State) []error {
	var (
		errs   []error
		result machine.State
		err    error
	)
	//
	if result, err = program.Run(); err != nil {
		return []error{err}
	}
	//
	for _, c := range p.Cases {
		if err := c.Accepts(program, result); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", c.Name, err))
		}
	}
	//
	return errs
}

// ============================================================================
// Compilation
// ============================================================================

func (p *puzzleFile) compile() (*Puzzle, error) {
	var (
		puzzle = Puzzle{Name: p.Name, Bits: p.Bits, Workers: p.Workers, Memory: p.Memory}
		err    error
	)
	//
	if p.Mode != "" {
		if puzzle.Mode, err = solver.ParseMode(p.Mode); err != nil {
			return nil, err
		}
	}
	//
	if puzzle.External, err = instruction.ParseAddresses(p.External...); err != nil {
		return nil, err
	} else if puzzle.Balls, err = compileBalls(p.Balls); err != nil {
		return nil, err
	} else if puzzle.Start, err = compileStart(p.Start, ball.BLUE); err != nil {
		return nil, err
	}
	//
	if p.Program != nil {
		init := machine.New(0).WithBalls(puzzle.Balls[0], puzzle.Balls[1]).WithStart(puzzle.Start)
		//
		program, err := p.Program.compile(init)
		if err != nil {
			return nil, fmt.Errorf("program: %w", err)
		}
		//
		puzzle.Program = util.Some(program)
	}
	//
	for i, c := range p.Cases {
		compiled, err := c.compile(i)
		if err != nil {
			return nil, fmt.Errorf("case %d: %w", i+1, err)
		}
		//
		puzzle.Cases = append(puzzle.Cases, compiled)
	}
	//
	if err := puzzle.Validate(); err != nil {
		return nil, err
	}
	//
	return &puzzle, nil
}

func (p *programFile) compile(init machine.State) (machine.State, error) {
	var instrs = make([]instruction.Instruction, len(p.Instructions))
	//
	entry, err := instruction.ParseAddresses(p.Entry...)
	if err != nil {
		return init, err
	} else if len(entry) != 2 {
		return init, fmt.Errorf("expected blue and red entry points (found %d)", len(entry))
	}
	//
	mem, err := memory.Parse(p.Memory)
	if err != nil {
		return init, err
	}
	//
	for i, str := range p.Instructions {
		if instrs[i], err = instruction.Parse(str); err != nil {
			return init, err
		}
	}
	//
	return init.WithEntry(entry[0], entry[1]).WithMemory(mem).WithInstructions(instrs...), nil
}

func compileBalls(balls []uint8) ([2]uint8, error) {
	if len(balls) != 2 {
		return [2]uint8{}, fmt.Errorf("expected blue and red ball counts (found %d)", len(balls))
	}
	//
	return [2]uint8{balls[0], balls[1]}, nil
}

func compileStart(start string, def ball.Color) (ball.Color, error) {
	if start == "" {
		return def, nil
	}
	//
	return ball.ParseColor(start)
}
