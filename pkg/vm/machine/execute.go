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
	"errors"
	"fmt"

	"github.com/consensys/go-tumble/pkg/util"
	"github.com/consensys/go-tumble/pkg/vm/ball"
	"github.com/consensys/go-tumble/pkg/vm/instruction"
	log "github.com/sirupsen/logrus"
)

// ErrFell signals that a ball fell off the board.  This happens when a program
// jumps to FALL, or to any other address which is neither an instruction, a
// lever nor an interceptor.  It is never a normal way for a machine to halt.
var ErrFell = errors.New("the ball fell off the board")

// FaultError provides the details of a fault encountered during execution.
// It matches ErrFell under errors.Is.
type FaultError struct {
	// Address at which the fault occurred.
	PC Address
	// Description of what went wrong.
	Reason string
	// State of the machine when the fault occurred.
	State State
}

func (e *FaultError) Error() string {
	return fmt.Sprintf("%s (%s)", ErrFell, e.Reason)
}

// Unwrap returns ErrFell.
func (e *FaultError) Unwrap() error {
	return ErrFell
}

// Run this machine to completion, returning its terminal state.  The machine
// halts normally when a ball reaches an interceptor, or when a lever requests a
// ball of a color which has run out.  An error is returned only if a ball falls
// off the board, in which case the returned state is as it was at the point of
// failure.  The state on which Run is called is not modified.
func (p State) Run() (State, error) {
	return p.RunVerbosity(0)
}

// RunVerbosity runs this machine to completion, as for Run, whilst logging a
// human-readable trace.  At verbosity 1, the state is logged at the start and
// whenever a ball reaches the bottom of the board.  At verbosity 2, every
// instruction executed is logged as well.  Logging never affects execution.
func (p State) RunVerbosity(verbosity uint) (State, error) {
	var state = p.Clone()
	//
	err := state.execute(verbosity)
	//
	return state, err
}

// Execute this state in place until it halts, or a fault arises.
func (p *State) execute(verbosity uint) error {
	var (
		v1 = verbosity >= 1
		v2 = verbosity >= 2
	)
	//
	if v1 {
		log.Info(p.Summary())
	}
	// Current program counter and color of the falling ball
	pc, cbr, ok := p.release(p.Start)
	// No balls to start with, so immediately halt
	if !ok {
		return nil
	}
	//
	for {
		// Tumble down, executing invert-and-branch instructions until a
		// reserved address is reached.
		for instruction.IsInstruction(pc) {
			if uint(pc) >= uint(len(p.Instr)) {
				return p.fault(pc, fmt.Sprintf("no instruction at address %d", pc))
			}
			//
			insn := p.Instr[pc]
			//
			if uint(insn.Mem) >= uint(len(p.Mem)) {
				return p.fault(pc, fmt.Sprintf("instruction %d inverts non-existent cell %d", pc, insn.Mem))
			}
			// Invert and branch
			bit := p.Mem.Invert(uint(insn.Mem))
			next := insn.Branch(bit)
			//
			if v2 {
				log.WithField("pc", pc).Infof("%s:  mem[%d]: %t -> %t  jmp %s", insn, insn.Mem, !bit, bit,
					instruction.AddressString(next))
			}
			//
			pc = next
		}
		// Bottom out at a lever or an interceptor.
		switch {
		case instruction.IsLever(pc):
			// Falling ball goes to the output sequence
			p.Output = append(p.Output, cbr)
			//
			if v1 {
				log.Info(p.Summary())
			}
			// The lever (rather than the ball) determines the next color
			next := ball.BLUE
			//
			if pc == instruction.RED_LEVER {
				next = ball.RED
			}
			// Release next ball (if there is one)
			if pc, cbr, ok = p.release(next); !ok {
				// Out of balls
				return nil
			}
		case instruction.IsInterceptor(pc):
			// Record ball and halt
			p.Intercept[instruction.Interceptor(pc)] = util.Some(cbr)
			//
			if v1 {
				log.Info(p.Summary())
			}
			//
			return nil
		default:
			return p.fault(pc, fmt.Sprintf("jumped to invalid address %s", instruction.AddressString(pc)))
		}
	}
}

// Release a ball of a given color (if any remain), returning the entry point
// for that ball.
func (p *State) release(color ball.Color) (Address, ball.Color, bool) {
	if p.Balls[color] == 0 {
		return 0, color, false
	}
	//
	p.Balls[color]--
	//
	return p.Entry[color], color, true
}

func (p *State) fault(pc Address, reason string) error {
	return &FaultError{pc, reason, p.Clone()}
}
