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
package test

import (
	"context"
	"fmt"
	"os"
	"slices"
	"testing"

	"github.com/consensys/go-tumble/pkg/puzzle"
	"github.com/consensys/go-tumble/pkg/solver"
	"github.com/consensys/go-tumble/pkg/vm/machine"
)

// TestDir determines the (relative) location of the test directory.  That is
// where the puzzle files (toml/yaml) are found.
const TestDir = "../../testdata"

// PUZZLE_EXTENSIONS lists the possible extensions of a puzzle file, in the
// order they are tried.
var PUZZLE_EXTENSIONS = []string{"toml", "yaml", "yml"}

// Check that the concrete program given in a puzzle file passes every case of
// the puzzle.
func Check(t *testing.T, test string) {
	var p = loadPuzzle(t, test)
	// Enable testing each puzzle in parallel
	t.Parallel()
	//
	if p.Program.IsEmpty() {
		t.Fatalf("puzzle %s has no program", test)
	}
	//
	for _, err := range p.Check(p.Program.Unwrap()) {
		t.Errorf("%s: %s", test, err)
	}
}

// CheckSolve searches exhaustively for solutions to the puzzle in a given file,
// checking the number of candidates visited and solutions found.  When found
// is set, the concrete program given in the puzzle file must be one of the
// solutions.
func CheckSolve(t *testing.T, test string, candidates, solutions uint64, found bool) {
	var (
		p       = loadPuzzle(t, test)
		matched = false
	)
	//
	t.Parallel()
	//
	summary, err := solver.Solve(context.Background(), p.Initial(), p.Config(), p.Test(), func(s solver.Solution) {
		if p.Program.HasValue() && sameProgram(s.Program, p.Program.Unwrap()) {
			matched = true
		}
	})
	//
	if err != nil {
		t.Fatalf("%s: %s", test, err)
	} else if summary.Candidates != candidates {
		t.Errorf("%s: expected %d candidates, got %d", test, candidates, summary.Candidates)
	} else if summary.Solutions != solutions {
		t.Errorf("%s: expected %d solutions, got %d", test, solutions, summary.Solutions)
	} else if found && !matched {
		t.Errorf("%s: program not found amongst solutions", test)
	}
}

func loadPuzzle(t *testing.T, test string) *puzzle.Puzzle {
	t.Helper()
	//
	for _, ext := range PUZZLE_EXTENSIONS {
		filename := fmt.Sprintf("%s/puzzles/%s.%s", TestDir, test, ext)
		//
		if _, err := os.Stat(filename); err != nil {
			continue
		}
		//
		p, err := puzzle.Load(filename)
		if err != nil {
			t.Fatalf("%s: %s", filename, err)
		}
		//
		return p
	}
	//
	t.Fatalf("missing puzzle file %s", test)
	//
	return nil
}

// Two programs are the same if they have the same entry points and
// instructions.
func sameProgram(lhs machine.State, rhs machine.State) bool {
	return lhs.Entry == rhs.Entry && slices.Equal(lhs.Instr, rhs.Instr)
}
