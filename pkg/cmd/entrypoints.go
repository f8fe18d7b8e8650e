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
	"strconv"

	"github.com/consensys/go-tumble/pkg/solver"
	"github.com/consensys/go-tumble/pkg/vm/instruction"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var entrypointsCmd = &cobra.Command{
	Use:   "entrypoints [flags] bits address(es)",
	Short: "list the admissible entry points for a program.",
	Long: `List every admissible pair of (blue, red) entry points for a program with a given
number of bits, where the given external addresses (e.g. B R INTERC0) may also be
used as entry points.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) < 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		configure(cmd)
		//
		bits, err := strconv.ParseUint(args[0], 10, 8)
		//
		if err != nil || bits > uint64(instruction.MAX_INSTRUCTIONS) {
			log.Errorf("invalid number of bits \"%s\"", args[0])
			os.Exit(2)
		}
		//
		var (
			external = parseAddresses(args[1:])
			entries  = solver.Entrypoints(uint(bits), external)
		)
		//
		for _, e := range entries {
			fmt.Printf("%s %s\n", instruction.AddressString(e[0]), instruction.AddressString(e[1]))
		}
		//
		fmt.Printf("%d entry points\n", len(entries))
	},
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(entrypointsCmd)
}
