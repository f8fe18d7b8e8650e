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
	"errors"
	"fmt"

	"github.com/consensys/go-tumble/pkg/util"
	"github.com/consensys/go-tumble/pkg/vm/ball"
	"github.com/consensys/go-tumble/pkg/vm/instruction"
	"github.com/consensys/go-tumble/pkg/vm/machine"
	"github.com/consensys/go-tumble/pkg/vm/memory"
	log "github.com/sirupsen/logrus"
)

// ErrMismatch indicates that a program did not meet the expectations of a case.
var ErrMismatch = errors.New("mismatch")

// Case describes a single run of a program, along with the expected outcome.
// A case may vary the program before it is run (e.g. by changing the supply of
// balls, or the initial memory), allowing a program to be checked against a
// range of inputs.
type Case struct {
	// Name of this case (defaults to its position).
	Name string
	// Supply of balls (if different).
	Balls util.Option[[2]uint8]
	// Color of the first ball (if different).
	Start util.Option[ball.Color]
	// Pattern overwriting the program's memory.
	Memory string
	// Register to set before running (if any).
	Register util.Option[Register]
	// Expected outcome.
	Expect Expect
}

// Expect describes what should hold of the terminal state of a run.  Any
// expectation which is left unset holds for every state.
type Expect struct {
	// Exact sequence of balls output (if given).
	Output util.Option[ball.Sequence]
	// Pattern which memory must match.
	Memory string
	// Pattern for the interceptors, with one character per interceptor: 'b'
	// or 'r' for the color caught, '-' for nothing caught, or '.' for either.
	Intercept string
	// Register value (if given).
	Register util.Option[Register]
}

// Register identifies a value held in the memory cells [From,To).
type Register struct {
	From  uint
	To    uint
	Value uint64
}

func (r Register) String() string {
	return fmt.Sprintf("mem[%d:%d]=%d", r.From, r.To, r.Value)
}

// Variant returns the program which should be run for this case, given the
// program under test.  The given program is not modified.
func (c Case) Variant(program machine.State) machine.State {
	if c.Balls.HasValue() {
		balls := c.Balls.Unwrap()
		program = program.WithBalls(balls[0], balls[1])
	}
	//
	if c.Start.HasValue() {
		program = program.WithStart(c.Start.Unwrap())
	}
	//
	if c.Memory != "" {
		program = program.WithMemory(program.Mem)
		// Pattern was checked on compilation
		if err := program.Mem.Apply(c.Memory); err != nil {
			panic(err.Error())
		}
	}
	//
	if c.Register.HasValue() {
		r := c.Register.Unwrap()
		program = program.WithRegister(r.From, r.To, r.Value)
	}
	//
	return program
}

// Accepts checks whether a candidate program satisfies this case, where result
// is the outcome of running the candidate unmodified.  This avoids rerunning
// the program for cases which don't vary it.  An error describing the first
// mismatch is returned, or nil if the case is satisfied.
func (c Case) Accepts(program machine.State, result machine.State) error {
	var err error
	//
	if c.varies() {
		if result, err = c.Variant(program).Run(); err != nil {
			log.Debugf("%s: %s", c.Name, err)
			return err
		}
	}
	//
	return c.Expect.Check(result)
}

// Check this expectation against the terminal state of a run.
func (e Expect) Check(state machine.State) error {
	if e.Output.HasValue() && !e.Output.Unwrap().Equals(state.Output) {
		return fmt.Errorf("%w: output was \"%s\" (expected \"%s\")", ErrMismatch, state.Output, e.Output.Unwrap())
	} else if !state.Mem.Match(e.Memory) {
		return fmt.Errorf("%w: memory was %s (expected %s)", ErrMismatch, state.Mem, e.Memory)
	} else if !matchIntercepts(e.Intercept, state) {
		return fmt.Errorf("%w: interceptors were %s (expected %s)", ErrMismatch, interceptString(state), e.Intercept)
	}
	//
	if e.Register.HasValue() {
		r := e.Register.Unwrap()
		//
		if actual := state.Register(r.From, r.To); actual != r.Value {
			return fmt.Errorf("%w: mem[%d:%d] was %d (expected %d)", ErrMismatch, r.From, r.To, actual, r.Value)
		}
	}
	//
	return nil
}

func (c Case) varies() bool {
	return c.Balls.HasValue() || c.Start.HasValue() || c.Memory != "" || c.Register.HasValue()
}

func (c Case) validate(bits uint) error {
	if err := memory.CheckPattern(c.Memory, bits); err != nil {
		return err
	} else if err := memory.CheckPattern(c.Expect.Memory, bits); err != nil {
		return err
	} else if err := checkRegister(c.Register, bits); err != nil {
		return err
	} else if err := checkRegister(c.Expect.Register, bits); err != nil {
		return err
	} else if len(c.Expect.Intercept) > instruction.NUM_INTERCEPTORS {
		return fmt.Errorf("intercept pattern \"%s\" too long", c.Expect.Intercept)
	}
	//
	for _, ch := range c.Expect.Intercept {
		if ch != 'b' && ch != 'r' && ch != '-' && ch != '.' {
			return fmt.Errorf("invalid character '%c' in intercept pattern \"%s\"", ch, c.Expect.Intercept)
		}
	}
	//
	return nil
}

func checkRegister(reg util.Option[Register], bits uint) error {
	if reg.IsEmpty() {
		return nil
	}
	//
	r := reg.Unwrap()
	//
	if r.From > r.To || r.To > bits {
		return fmt.Errorf("register mem[%d:%d] out of bounds", r.From, r.To)
	} else if r.To-r.From > 64 {
		return fmt.Errorf("register mem[%d:%d] too wide", r.From, r.To)
	} else if r.To-r.From < 64 && r.Value >= 1<<(r.To-r.From) {
		return fmt.Errorf("register value %d does not fit in mem[%d:%d]", r.Value, r.From, r.To)
	}
	//
	return nil
}

func matchIntercepts(pattern string, state machine.State) bool {
	var actual = interceptString(state)
	//
	for i := 0; i < len(pattern); i++ {
		if pattern[i] != '.' && pattern[i] != actual[i] {
			return false
		}
	}
	//
	return true
}

// Render the interceptors of a state in the same form as an intercept pattern.
func interceptString(state machine.State) string {
	var chars [instruction.NUM_INTERCEPTORS]byte
	//
	for i, c := range state.Intercept {
		if c.HasValue() {
			chars[i] = c.Unwrap().Char()
		} else {
			chars[i] = '-'
		}
	}
	//
	return string(chars[:])
}

// ============================================================================
// Compilation
// ============================================================================

func (c *caseFile) compile(index int) (Case, error) {
	var (
		compiled = Case{Name: c.Name, Memory: c.Memory}
		err      error
	)
	//
	if compiled.Name == "" {
		compiled.Name = fmt.Sprintf("case %d", index+1)
	}
	//
	if c.Balls != nil {
		balls, err := compileBalls(c.Balls)
		if err != nil {
			return compiled, err
		}
		//
		compiled.Balls = util.Some(balls)
	}
	//
	if c.Start != "" {
		start, err := ball.ParseColor(c.Start)
		if err != nil {
			return compiled, err
		}
		//
		compiled.Start = util.Some(start)
	}
	//
	if c.Register != nil {
		compiled.Register = util.Some(Register(*c.Register))
	}
	//
	if compiled.Expect, err = c.Expect.compile(); err != nil {
		return compiled, fmt.Errorf("expect: %w", err)
	}
	//
	return compiled, nil
}

func (e *expectFile) compile() (Expect, error) {
	var expect = Expect{Memory: e.Memory, Intercept: e.Intercept}
	//
	if e.Output != nil {
		output, err := ball.ParseSequence(*e.Output)
		if err != nil {
			return expect, err
		}
		//
		expect.Output = util.Some(output)
	}
	//
	if e.Register != nil {
		expect.Register = util.Some(Register(*e.Register))
	}
	//
	return expect, nil
}
