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
package instruction

import (
	"fmt"
	"strconv"
	"strings"
)

// Address identifies either an instruction or a memory cell.  Instructions and
// memory occupy separate address spaces, though it is common for the
// instruction at address i to invert the memory cell at address i.  Addresses
// from BLUE_LEVER upwards are reserved for the board itself.
type Address = uint8

// BLUE_LEVER is the instruction address of the blue exit.  Jumping here returns
// control to the board, which may then release a blue ball.
const BLUE_LEVER Address = 128

// RED_LEVER is the instruction address of the red exit.  Jumping here returns
// control to the board, which may then release a red ball.
const RED_LEVER Address = 129

// INTERC0 is the instruction address of interceptor 0.  Jumping here halts the
// machine.
const INTERC0 Address = 130

// INTERC1 is the instruction address of interceptor 1.  Jumping here halts the
// machine.
const INTERC1 Address = INTERC0 + 1

// INTERC2 is the instruction address of interceptor 2.  Jumping here halts the
// machine.
const INTERC2 Address = INTERC0 + 2

// FALL is an invalid address used to mark unreachable paths.  Jumping here
// causes the machine to fail because the ball fell off the board.
const FALL Address = 133

// NUM_INTERCEPTORS gives the number of interceptors on the board.
const NUM_INTERCEPTORS = 3

// MAX_INSTRUCTIONS is the largest number of instructions a program can have,
// since every instruction address must be below the reserved range.
const MAX_INSTRUCTIONS = uint(BLUE_LEVER)

// IsInstruction determines whether a given address refers to an ordinary
// instruction (rather than a reserved address).
func IsInstruction(addr Address) bool {
	return addr < BLUE_LEVER
}

// IsLever determines whether a given address is one of the two release levers.
func IsLever(addr Address) bool {
	return addr == BLUE_LEVER || addr == RED_LEVER
}

// IsInterceptor determines whether a given address is one of the three
// interceptors.
func IsInterceptor(addr Address) bool {
	return addr >= INTERC0 && addr <= INTERC2
}

// Interceptor returns the slot index of a given interceptor address.  This
// panics if the address is not an interceptor.
func Interceptor(addr Address) uint {
	if !IsInterceptor(addr) {
		panic(fmt.Sprintf("address %d is not an interceptor", addr))
	}
	//
	return uint(addr - INTERC0)
}

// IsExternal determines whether a given address is a reserved address which a
// program may legitimately jump to.  That is, a lever or an interceptor.
// Notably FALL is not external.
func IsExternal(addr Address) bool {
	return IsLever(addr) || IsInterceptor(addr)
}

// AddressString returns a human-readable form of the given address.
func AddressString(addr Address) string {
	switch {
	case addr == BLUE_LEVER:
		return "B"
	case addr == RED_LEVER:
		return "R"
	case IsInterceptor(addr):
		return fmt.Sprintf("INTERC%d", addr-INTERC0)
	case addr == FALL:
		return "FALL"
	default:
		return strconv.Itoa(int(addr))
	}
}

// ParseAddress parses an address from its human-readable form, as produced by
// AddressString.  The short forms I0, I1 and I2 are also accepted for the
// interceptors.
func ParseAddress(str string) (Address, error) {
	switch strings.ToUpper(strings.TrimSpace(str)) {
	case "B":
		return BLUE_LEVER, nil
	case "R":
		return RED_LEVER, nil
	case "INTERC0", "I0":
		return INTERC0, nil
	case "INTERC1", "I1":
		return INTERC1, nil
	case "INTERC2", "I2":
		return INTERC2, nil
	case "FALL":
		return FALL, nil
	}
	//
	val, err := strconv.ParseUint(strings.TrimSpace(str), 10, 8)
	//
	if err != nil {
		return 0, fmt.Errorf("invalid address \"%s\"", str)
	}
	//
	return Address(val), nil
}

// ParseAddresses parses a sequence of addresses, stopping at the first which is
// invalid.
func ParseAddresses(strs ...string) ([]Address, error) {
	var addrs = make([]Address, len(strs))
	//
	for i, s := range strs {
		addr, err := ParseAddress(s)
		if err != nil {
			return nil, err
		}
		//
		addrs[i] = addr
	}
	//
	return addrs, nil
}
