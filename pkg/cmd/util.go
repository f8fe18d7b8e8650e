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
	"fmt"
	"os"
	"time"

	"github.com/consensys/go-tumble/pkg/puzzle"
	"github.com/consensys/go-tumble/pkg/util/termio"
	"github.com/consensys/go-tumble/pkg/vm/ball"
	"github.com/consensys/go-tumble/pkg/vm/instruction"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// GetFlag gets an expected flag, or exits if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetUint gets an expected unsigned integer flag, or exits if an error arises.
func GetUint(cmd *cobra.Command, flag string) uint {
	r, err := cmd.Flags().GetUint(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetString gets an expected string flag, or exits if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetStringArray gets an expected string array flag, or exits if an error
// arises.
func GetStringArray(cmd *cobra.Command, flag string) []string {
	r, err := cmd.Flags().GetStringSlice(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetDuration gets an expected duration flag, or exits if an error arises.
func GetDuration(cmd *cobra.Command, flag string) time.Duration {
	r, err := cmd.Flags().GetDuration(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Configure logging and colour, as common to all commands.
func configure(cmd *cobra.Command) bool {
	if GetFlag(cmd, "verbose") {
		log.SetLevel(log.DebugLevel)
	}
	//
	return termio.IsTerminal() && !GetFlag(cmd, "no-colour")
}

// Read a puzzle file, or exit if it cannot be read.
func readPuzzleFile(filename string) *puzzle.Puzzle {
	p, err := puzzle.Load(filename)
	//
	if err != nil {
		log.Error(err)
		os.Exit(2)
	}
	//
	return p
}

// Parse a list of external addresses, or exit if any is malformed.
func parseAddresses(strs []string) []instruction.Address {
	addrs, err := instruction.ParseAddresses(strs...)
	//
	if err != nil {
		log.Error(err)
		os.Exit(2)
	}
	//
	return addrs
}

// Render a sequence of balls, optionally highlighting each in its own colour.
func sequenceString(seq ball.Sequence, colour bool) string {
	if !colour {
		return seq.String()
	}
	//
	var (
		blue = termio.NewAnsiEscape().FgColour(termio.TERM_BLUE)
		red  = termio.NewAnsiEscape().FgColour(termio.TERM_RED)
		str  string
	)
	//
	for _, c := range seq {
		if c == ball.RED {
			str += red.Wrap("r")
		} else {
			str += blue.Wrap("b")
		}
	}
	//
	return str
}
