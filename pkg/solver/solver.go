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
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/consensys/go-tumble/pkg/util"
	"github.com/consensys/go-tumble/pkg/vm/instruction"
	"github.com/consensys/go-tumble/pkg/vm/machine"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Mode determines which parts of a program are varied during a search.
type Mode uint8

// BITS varies only the jump targets of each instruction, whilst the instruction
// at address i always inverts memory cell i.
const BITS Mode = 0

// GEARS varies the jump targets of each instruction and, additionally, allows
// an instruction to share the memory cell of its predecessor.
const GEARS Mode = 1

func (m Mode) String() string {
	switch m {
	case BITS:
		return "bits"
	case GEARS:
		return "gears"
	default:
		return fmt.Sprintf("mode(%d)", m)
	}
}

// ParseMode parses a search mode from its string form.
func ParseMode(str string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "bits", "bit":
		return BITS, nil
	case "gears", "gear", "full":
		return GEARS, nil
	default:
		return BITS, fmt.Errorf("unknown search mode \"%s\"", str)
	}
}

// Config determines the space of programs explored by a search.
type Config struct {
	// Which parts of each instruction to vary.
	Mode Mode
	// Reserved addresses which may be used as jump targets and entry points.
	// For example, [BLUE_LEVER, INTERC0, INTERC1].
	External []Address
	// Number of entry point pairs to search concurrently.  Values below two
	// give a sequential search, where solutions are reported in enumeration
	// order.
	Workers uint
}

// Validate this configuration against the initial state of a search.  Since
// jumps are only ever generated forwards or to external addresses, a valid
// configuration guarantees that no generated program can fault.
func (p Config) Validate(init machine.State) error {
	if p.Mode != BITS && p.Mode != GEARS {
		return fmt.Errorf("unknown search mode %s", p.Mode)
	} else if len(p.External) == 0 {
		return fmt.Errorf("no external addresses given")
	}
	//
	for i, addr := range p.External {
		if !instruction.IsExternal(addr) {
			return fmt.Errorf("address %s cannot be an external jump target", instruction.AddressString(addr))
		} else if slices.Contains(p.External[:i], addr) {
			return fmt.Errorf("duplicate external address %s", instruction.AddressString(addr))
		}
	}
	//
	return init.Validate()
}

// Test determines whether a candidate program is a solution.  It is given the
// candidate itself (as yet unexecuted, so that variations of it can be run)
// and the result of running the candidate once.  The program shares storage
// with the search, hence it must be neither modified nor retained.
type Test func(program machine.State, result machine.State) bool

// Report is called for every solution found during a search.
type Report func(Solution)

// Solution describes a program which passed the test during a search.
type Solution struct {
	// Index of the candidate within the search (starting from 1).
	Index uint64
	// The program itself.
	Program machine.State
	// The result of running the program.
	Result machine.State
}

// Summary of a completed search.
type Summary struct {
	// Number of candidate programs visited.
	Candidates uint64
	// Number of solutions found.
	Solutions uint64
}

// CandidateError reports a candidate program which faulted during a search.
// This indicates that the search generated a program it should not have.
type CandidateError struct {
	// Index of the candidate within the search (starting from 1).
	Index uint64
	// The offending program.
	Program machine.State
	// The underlying fault.
	Err error
}

func (e *CandidateError) Error() string {
	return fmt.Sprintf("candidate %d failed: %s\n%s", e.Index, e.Err, e.Program)
}

// Unwrap returns the underlying fault.
func (e *CandidateError) Unwrap() error {
	return e.Err
}

// Solve searches exhaustively for programs which pass a given test.  The
// initial state determines the number of instructions, the initial memory and
// the supply of balls.  Every admissible pair of entry points is tried with
// every program generated according to the configuration.  Each candidate is
// run once and then tested, and every solution found is reported (which does
// not stop the search).  The search stops early only if the context is
// cancelled, or a candidate faults.  In either case, an error is returned along
// with a summary of the search up to that point.
func Solve(ctx context.Context, init machine.State, config Config, test Test, report Report) (Summary, error) {
	var (
		err   error
		stats = util.NewPerfStats()
		s     = &search{config: config, test: test, report: report}
	)
	//
	if err = config.Validate(init); err != nil {
		return Summary{}, err
	}
	//
	entries := Entrypoints(init.NumInstructions(), config.External)
	//
	if config.Workers < 2 {
		for _, entry := range entries {
			if err = s.solve(ctx, init.WithEntry(entry[0], entry[1])); err != nil {
				break
			}
		}
	} else {
		group, gctx := errgroup.WithContext(ctx)
		group.SetLimit(int(config.Workers))
		//
		for _, entry := range entries {
			program := init.WithEntry(entry[0], entry[1])
			//
			group.Go(func() error { return s.solve(gctx, program) })
		}
		//
		err = group.Wait()
	}
	//
	log.Debugf("%s candidates tried (%s solutions)", &s.candidates, &s.solutions)
	stats.Log(fmt.Sprintf("Searching %d entry points", len(entries)))
	//
	return Summary{s.candidates.Get(), s.solutions.Get()}, err
}

// search holds the state of an ongoing search, which may be shared between
// several workers.
type search struct {
	config     Config
	test       Test
	report     Report
	candidates Counter
	solutions  Counter
	// Serialises reporting
	mux sync.Mutex
}

// Search all programs for a given pair of entry points.
func (p *search) solve(ctx context.Context, program machine.State) error {
	log.Debugf("entry [%s, %s]", instruction.AddressString(program.Entry[0]),
		instruction.AddressString(program.Entry[1]))
	//
	if p.config.Mode == GEARS {
		return VisitInstructions(ctx, program, p.config.External, p.candidate)
	}
	//
	return VisitJumps(ctx, program, p.config.External, p.candidate)
}

// Run and test a single candidate.
func (p *search) candidate(program *machine.State) error {
	var index = p.candidates.Inc()
	//
	result, err := program.Run()
	//
	if err != nil {
		return &CandidateError{index, program.Clone(), err}
	}
	//
	if p.test(*program, result) {
		p.solutions.Inc()
		//
		if p.report != nil {
			p.mux.Lock()
			defer p.mux.Unlock()
			//
			p.report(Solution{index, program.Clone(), result})
		}
	}
	//
	return nil
}
