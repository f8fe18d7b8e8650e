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
	"testing"
)

func Test_Color_01(t *testing.T) {
	var zero Color
	//
	if zero != BLUE || BLUE != 0 || RED != 1 {
		t.Errorf("incorrect color ordinals")
	}
	//
	if BLUE.Char() != 'b' || RED.Char() != 'r' {
		t.Errorf("incorrect color characters")
	}
}

func Test_Color_02(t *testing.T) {
	checkParseColor(t, "b", BLUE)
	checkParseColor(t, "Blue", BLUE)
	checkParseColor(t, "R", RED)
	checkParseColor(t, " red", RED)
	//
	if _, err := ParseColor("green"); err == nil {
		t.Errorf("expected error parsing \"green\"")
	}
}

func Test_Sequence_01(t *testing.T) {
	seq, err := ParseSequence("brrB")
	//
	if err != nil {
		t.Fatal(err)
	}
	//
	if !seq.Equals(Sequence{BLUE, RED, RED, BLUE}) {
		t.Errorf("unexpected sequence %s", seq)
	} else if seq.String() != "brrb" {
		t.Errorf("unexpected string \"%s\"", seq.String())
	} else if seq.Count(RED) != 2 || seq.Count(BLUE) != 2 {
		t.Errorf("incorrect counts for %s", seq)
	}
}

func Test_Sequence_02(t *testing.T) {
	var empty Sequence
	//
	if !empty.Equals(Sequence{}) || empty.String() != "" {
		t.Errorf("empty sequences should be equal")
	}
	//
	if (Sequence{BLUE}).Equals(Sequence{BLUE, BLUE}) {
		t.Errorf("sequences of different length should differ")
	}
	//
	if _, err := ParseSequence("bxr"); err == nil {
		t.Errorf("expected error parsing \"bxr\"")
	}
}

// ===================================================================
// Test Helpers
// ===================================================================

func checkParseColor(t *testing.T, str string, expected Color) {
	actual, err := ParseColor(str)
	//
	if err != nil {
		t.Errorf("unexpected error parsing \"%s\": %s", str, err)
	} else if actual != expected {
		t.Errorf("expected %s parsing \"%s\", got %s", expected, str, actual)
	}
}
