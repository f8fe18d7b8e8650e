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
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/consensys/go-tumble/pkg/puzzle"
	"github.com/consensys/go-tumble/pkg/vm/ball"
	"github.com/consensys/go-tumble/pkg/vm/machine"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] puzzle_file",
	Short: "run the program given in a puzzle file.",
	Long: `Run the concrete program given in a puzzle file to completion, printing its
terminal state.  If the puzzle has cases, the program is then checked against each.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		var (
			colour = configure(cmd)
			trace  = GetUint(cmd, "trace")
			p      = readPuzzleFile(args[0])
		)
		//
		if p.Program.IsEmpty() {
			log.Errorf("puzzle %s has no program", p.Name)
			os.Exit(2)
		}
		//
		program := p.Program.Unwrap()
		// Apply overrides
		if start := GetString(cmd, "start"); start != "" {
			color, err := ball.ParseColor(start)
			if err != nil {
				log.Error(err)
				os.Exit(2)
			}
			//
			program = program.WithStart(color)
		}
		//
		os.Exit(runProgram(p, program, trace, colour))
	},
}

// Run a program and check it against all cases in a puzzle, returning the
// appropriate exit code.
func runProgram(p *puzzle.Puzzle, program machine.State, trace uint, colour bool) int {
	var fault *machine.FaultError
	//
	fmt.Print(program)
	//
	result, err := program.RunVerbosity(trace)
	//
	if errors.As(err, &fault) {
		log.Errorf("%s at %s", err, fault.State.Summary())
		return 3
	} else if err != nil {
		log.Error(err)
		return 3
	}
	//
	printResult(result, colour)
	//
	if len(p.Cases) == 0 {
		return 0
	}
	//
	errs := p.Check(program)
	//
	for _, err := range errs {
		log.Error(err)
	}
	//
	fmt.Printf("%d of %d cases passed\n", len(p.Cases)-len(errs), len(p.Cases))
	//
	if len(errs) != 0 {
		return 4
	}
	//
	return 0
}

func printResult(result machine.State, colour bool) {
	fmt.Printf("output: %s\n", sequenceString(result.Output, colour))
	fmt.Printf("memory: %s\n", result.MemoryString())
	fmt.Printf("balls: %d blue, %d red\n", result.Balls[ball.BLUE], result.Balls[ball.RED])
	//
	for i, c := range result.Intercept {
		if c.HasValue() {
			fmt.Printf("interceptor %d: %s\n", i, sequenceString(ball.Sequence{c.Unwrap()}, colour))
		}
	}
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().Uint("trace", 0, "trace level (1 for every ball, 2 for every instruction)")
	runCmd.Flags().String("start", "", "override colour of first ball")
}
