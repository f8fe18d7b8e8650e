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
package ball

import (
	"fmt"
	"slices"
)

// Sequence of balls, such as those collected at the bottom of the board.
type Sequence []Color

// Equals determines whether two sequences hold the same colors in the same
// order.
func (p Sequence) Equals(other Sequence) bool {
	return slices.Equal(p, other)
}

// Count returns the number of balls of a given color in this sequence.
func (p Sequence) Count(color Color) uint {
	var n uint
	//
	for _, c := range p {
		if c == color {
			n++
		}
	}
	//
	return n
}

// String returns the sequence as a string of 'b' and 'r' characters, for
// example "bbrbr".
func (p Sequence) String() string {
	var bytes = make([]byte, len(p))
	//
	for i, c := range p {
		bytes[i] = c.Char()
	}
	//
	return string(bytes)
}

// ParseSequence parses a sequence written as a string of 'b' and 'r'
// characters.
func ParseSequence(str string) (Sequence, error) {
	var seq = make(Sequence, len(str))
	//
	for i := 0; i < len(str); i++ {
		switch str[i] {
		case 'b', 'B':
			seq[i] = BLUE
		case 'r', 'R':
			seq[i] = RED
		default:
			return nil, fmt.Errorf("invalid ball '%c' in sequence \"%s\"", str[i], str)
		}
	}
	//
	return seq, nil
}
