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
	"strings"
)

// Color of a ball.  The ordinal value of a color is used to index the ball
// supplies and entry points of a machine.
type Color uint8

// BLUE balls are released by the blue lever.  This is the default color.
const BLUE Color = 0

// RED balls are released by the red lever.
const RED Color = 1

// COLORS lists all colors in ordinal order.
var COLORS = [2]Color{BLUE, RED}

// Char returns the single character form of this color ('b' or 'r').
func (c Color) Char() byte {
	if c == BLUE {
		return 'b'
	}
	//
	return 'r'
}

func (c Color) String() string {
	if c == BLUE {
		return "blue"
	}
	//
	return "red"
}

// ParseColor parses a color from either its single character or its long form.
func ParseColor(str string) (Color, error) {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "b", "blue":
		return BLUE, nil
	case "r", "red":
		return RED, nil
	default:
		return BLUE, fmt.Errorf("unknown color \"%s\"", str)
	}
}
