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
	"testing"
)

// ===================================================================
// Solving
// ===================================================================

func Test_Solve_Ch05Entropy(t *testing.T) {
	CheckSolve(t, "ch05_entropy", 4, 1, true)
}

func Test_Solve_Ch08Depolarization(t *testing.T) {
	CheckSolve(t, "ch08_depolarization", 20, 3, true)
}

func Test_Solve_Ch09Dimers(t *testing.T) {
	CheckSolve(t, "ch09_dimers", 20, 1, true)
}

func Test_Solve_Ch10DoubleBond(t *testing.T) {
	CheckSolve(t, "ch10_double_bond", 252, 2, true)
}

func Test_Solve_Ch14DualityPart3(t *testing.T) {
	CheckSolve(t, "ch14_duality_part3", 20, 2, true)
}

// The given programs for the following puzzles enter red balls at FALL, which
// is never an external address, hence are outside the search space.

func Test_Solve_Ch16Termination(t *testing.T) {
	CheckSolve(t, "ch16_termination", 252, 4, false)
}

func Test_Solve_Ch18Entanglement(t *testing.T) {
	CheckSolve(t, "ch18_entanglement", 252, 4, false)
}

func Test_Solve_Ch21QuantumNumber(t *testing.T) {
	CheckSolve(t, "ch21_quantum_number", 5184, 5, false)
}

func Test_Solve_Ch22Depletion(t *testing.T) {
	CheckSolve(t, "ch22_depletion", 5184, 5, false)
}

func Test_Solve_Ch23Tetrad(t *testing.T) {
	CheckSolve(t, "ch23_tetrad", 5184, 5, false)
}

func Test_Solve_Ch32SetReset(t *testing.T) {
	CheckSolve(t, "ch32_set_reset", 20736, 533, true)
}

func Test_Solve_Sequence2(t *testing.T) {
	CheckSolve(t, "sequence2", 158400, 1, true)
}

func Test_Solve_Sequence1(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping large search in short mode")
	}
	//
	CheckSolve(t, "sequence1", 1684800, 7, true)
}
