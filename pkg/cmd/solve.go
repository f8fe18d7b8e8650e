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
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/consensys/go-tumble/pkg/puzzle"
	"github.com/consensys/go-tumble/pkg/solver"
	"github.com/consensys/go-tumble/pkg/util"
	"github.com/consensys/go-tumble/pkg/util/termio"
	"github.com/consensys/go-tumble/pkg/vm/instruction"
	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var errEnough = errors.New("maximum number of solutions reached")

var solveCmd = &cobra.Command{
	Use:   "solve [flags] puzzle_file(s)",
	Short: "search exhaustively for solutions to one or more puzzles.",
	Long: `Search every program of the size given in each puzzle file, reporting those
which satisfy all cases of the puzzle.  Settings given as flags override those in
the puzzle file.`,
	Run: func(cmd *cobra.Command, args []string) {
		var cfg solveConfig
		//
		if len(args) == 0 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		cfg.colour = configure(cmd)
		cfg.table = GetFlag(cmd, "table")
		cfg.max = GetUint(cmd, "max")
		cfg.limit = GetDuration(cmd, "limit")
		cfg.width = termio.Width()
		//
		puzzles := make([]*puzzle.Puzzle, len(args))
		// Read all puzzles up front, so malformed ones are reported early.
		for i, filename := range args {
			puzzles[i] = readPuzzleFile(filename)
			applyOverrides(cmd, puzzles[i])
		}
		// Stop cleanly on interrupt
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		//
		for _, p := range puzzles {
			pctx, cancel := withLimit(ctx, cfg.limit)
			ok := solvePuzzle(pctx, p, cfg)
			//
			cancel()
			//
			if !ok {
				stop()
				os.Exit(3)
			}
		}
	},
}

type solveConfig struct {
	colour bool
	table  bool
	max    uint
	limit  time.Duration
	width  uint
}

func withLimit(ctx context.Context, limit time.Duration) (context.Context, context.CancelFunc) {
	if limit == 0 {
		return context.WithCancel(ctx)
	}
	//
	return context.WithTimeout(ctx, limit)
}

// Apply any flags which override puzzle settings, exiting if the resulting
// puzzle is invalid.
func applyOverrides(cmd *cobra.Command, p *puzzle.Puzzle) {
	var err error
	//
	if cmd.Flags().Changed("mode") {
		if p.Mode, err = solver.ParseMode(GetString(cmd, "mode")); err != nil {
			log.Error(err)
			os.Exit(2)
		}
	}
	//
	if cmd.Flags().Changed("external") {
		p.External = parseAddresses(GetStringArray(cmd, "external"))
	}
	//
	if cmd.Flags().Changed("workers") {
		p.Workers = GetUint(cmd, "workers")
	}
	//
	if err = p.Validate(); err != nil {
		log.Errorf("%s: %s", p.Name, err)
		os.Exit(2)
	}
}

// Search for all solutions to a given puzzle, returning false if the search
// failed.  Reaching the time limit or maximum number of solutions is not a
// failure.
func solvePuzzle(ctx context.Context, p *puzzle.Puzzle, cfg solveConfig) bool {
	var (
		stats       = util.NewPerfStats()
		ctx2, abort = context.WithCancelCause(ctx)
		tbl         = termio.NewTablePrinter(5)
		count       uint
	)
	//
	defer abort(nil)
	//
	printBanner(p, cfg)
	//
	tbl.AnsiEscapes(cfg.colour)
	tbl.SetEscape(0, tbl.AddRow("#", "entry", "program", "output", "intercept"), termio.BoldAnsiEscape())
	//
	summary, err := solver.Solve(ctx2, p.Initial(), p.Config(), p.Test(), func(s solver.Solution) {
		if cfg.table {
			tbl.AddRow(humanize.Comma(int64(s.Index)), entryString(s), programString(s),
				s.Result.OutputString(), interceptString(s))
		} else {
			printSolution(s, cfg)
		}
		//
		if count++; cfg.max != 0 && count >= cfg.max {
			abort(errEnough)
		}
	})
	//
	if cfg.table {
		tbl.SetMaxWidth(2, max(cfg.width/2, 16))
		tbl.Print(os.Stdout)
	}
	//
	fmt.Printf("%s candidates, %s solutions (%.2fs)\n", humanize.Comma(int64(summary.Candidates)),
		humanize.Comma(int64(summary.Solutions)), stats.Elapsed().Seconds())
	stats.Log(fmt.Sprintf("Solving %s", p.Name))
	//
	switch {
	case err == nil:
		return true
	case errors.Is(context.Cause(ctx2), errEnough):
		log.Infof("stopped after %d solutions", count)
		return true
	case errors.Is(err, context.DeadlineExceeded):
		log.Warnf("search limit of %s reached", cfg.limit)
		return true
	case errors.Is(err, context.Canceled):
		log.Warn("search interrupted")
		return false
	default:
		log.Error(err)
		return false
	}
}

func printBanner(p *puzzle.Puzzle, cfg solveConfig) {
	var (
		title = fmt.Sprintf(" %s (%d bits, %s, %s) ", p.Name, p.Bits, p.Mode, addressesString(p.External))
		width = max(cfg.width, uint(len(title))+4)
		left  = (width - uint(len(title))) / 2
	)
	//
	fmt.Println(termio.Banner('=', left) + title + termio.Banner('=', width-left-uint(len(title))))
}

func printSolution(s solver.Solution, cfg solveConfig) {
	fmt.Println(termio.Banner('-', cfg.width))
	fmt.Printf("solution %s\n", humanize.Comma(int64(s.Index)))
	fmt.Print(s.Program)
	printResult(s.Result, cfg.colour)
}

func entryString(s solver.Solution) string {
	return fmt.Sprintf("%s %s", instruction.AddressString(s.Program.Entry[0]),
		instruction.AddressString(s.Program.Entry[1]))
}

func programString(s solver.Solution) string {
	var instrs = make([]string, len(s.Program.Instr))
	//
	for i, insn := range s.Program.Instr {
		instrs[i] = strings.TrimPrefix(insn.String(), "ijmp ")
	}
	//
	return strings.Join(instrs, "; ")
}

func interceptString(s solver.Solution) string {
	var strs []string
	//
	for i, c := range s.Result.Intercept {
		if c.HasValue() {
			strs = append(strs, fmt.Sprintf("I%d: %c", i, c.Unwrap().Char()))
		}
	}
	//
	return strings.Join(strs, ", ")
}

func addressesString(addrs []instruction.Address) string {
	var strs = make([]string, len(addrs))
	//
	for i, addr := range addrs {
		strs[i] = instruction.AddressString(addr)
	}
	//
	return strings.Join(strs, ",")
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(solveCmd)
	solveCmd.Flags().String("mode", "bits", "search mode (bits or gears)")
	solveCmd.Flags().StringSlice("external", nil, "external addresses available to solutions (e.g. B,R,I0)")
	solveCmd.Flags().Uint("workers", 0, "number of entry points to search concurrently")
	solveCmd.Flags().Duration("limit", 0, "time limit for each puzzle (0 for none)")
	solveCmd.Flags().Uint("max", 0, "stop after this many solutions (0 for all)")
	solveCmd.Flags().Bool("table", false, "print solutions as a table")
}
