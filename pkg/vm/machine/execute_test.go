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
package machine

import (
	"errors"
	"testing"

	"github.com/consensys/go-tumble/pkg/vm/ball"
	"github.com/consensys/go-tumble/pkg/vm/instruction"
	"github.com/consensys/go-tumble/pkg/vm/memory"
	"github.com/sirupsen/logrus/hooks/test"
)

const (
	B      = instruction.BLUE_LEVER
	R      = instruction.RED_LEVER
	I0     = instruction.INTERC0
	I1     = instruction.INTERC1
	FALL   = instruction.FALL
	BLUE   = ball.BLUE
	RED    = ball.RED
	EIGHT  = uint8(8)
	ONE    = true
	NOBALL = ""
)

var ijmp = instruction.Ijmp

// ===================================================================
// Programs without instructions
// ===================================================================

func Test_Run_Empty_01(t *testing.T) {
	checkOutput(t, New(0).WithBalls(EIGHT, EIGHT).WithEntry(B, 0), "bbbbbbbb")
}

func Test_Run_Empty_02(t *testing.T) {
	checkOutput(t, New(0).WithBalls(EIGHT, EIGHT).WithEntry(R, R), "brrrrrrrr")
}

func Test_Run_Empty_03(t *testing.T) {
	checkOutput(t, New(0).WithBalls(EIGHT, EIGHT).WithEntry(B, B).WithStart(RED), "rbbbbbbbb")
}

func Test_Run_Empty_04(t *testing.T) {
	checkOutput(t, New(0).WithBalls(EIGHT, EIGHT).WithEntry(R, B), "brbrbrbrbrbrbrbr")
}

// No balls of the starting color means nothing happens at all.
func Test_Run_Empty_05(t *testing.T) {
	var (
		initial     = program("0", ijmp(0, B, R)).WithBalls(0, 5)
		result, err = initial.Run()
	)
	//
	if err != nil {
		t.Fatal(err)
	}
	//
	checkSameState(t, initial, result)
	//
	if result.Balls != [2]uint8{0, 5} || result.Released() != 0 {
		t.Errorf("unexpected balls %v", result.Balls)
	}
}

// ===================================================================
// Programs with instructions
// ===================================================================

func Test_Run_Bits_01(t *testing.T) {
	var p = program("0", ijmp(0, B, R)).WithBalls(EIGHT, EIGHT)
	//
	checkOutput(t, p, "brbrbrbrbrbrbrbr")
}

func Test_Run_Bits_02(t *testing.T) {
	var p = program("1", ijmp(0, B, R)).WithBalls(EIGHT, EIGHT).WithEntry(0, B)
	//
	checkOutput(t, p, "bbrbbrbbrbbr")
}

func Test_Run_Bits_03(t *testing.T) {
	var p = program("10", ijmp(0, B, R), ijmp(1, B, R)).WithBalls(EIGHT, EIGHT).WithEntry(0, 1)
	//
	checkOutput(t, p, "bbrrbbrrbbrrbbrr")
}

func Test_Run_Bits_04(t *testing.T) {
	var p = program("100000",
		ijmp(0, 2, 5),
		ijmp(1, B, B),
		ijmp(2, B, B),
		ijmp(3, B, B),
		ijmp(4, B, B),
		ijmp(5, B, B)).WithBalls(2, 0).WithEntry(0, FALL)
	//
	result := checkOutput(t, p, "bb")
	//
	if result.MemoryString()[1:] != "01001" {
		t.Errorf("expected memory .01001, got %s", result.MemoryString())
	}
}

func Test_Run_Bits_05(t *testing.T) {
	var p = program("0000", ijmp(0, B, 1), ijmp(1, B, R), ijmp(2, 3, R), ijmp(3, I0, R)).
		WithBalls(EIGHT, EIGHT).WithEntry(0, 2).WithBit(1, ONE)
	//
	checkOutput(t, p, "bbbrrr")
}

// ===================================================================
// Interceptors
// ===================================================================

func Test_Run_Intercept_01(t *testing.T) {
	var p = program("0", ijmp(0, FALL, I0)).WithBalls(EIGHT, EIGHT).WithEntry(0, FALL)
	//
	checkIntercept(t, p, "b", "", "")
}

func Test_Run_Intercept_02(t *testing.T) {
	var p = program("00", ijmp(0, 1, B), ijmp(1, I0, B)).WithBalls(EIGHT, EIGHT).WithEntry(0, FALL)
	//
	result := checkIntercept(t, p, "b", "", "")
	//
	if result.OutputString() != "bbb" {
		t.Errorf("expected output bbb, got %s", result.OutputString())
	}
}

// NAND gate
func Test_Run_Intercept_03(t *testing.T) {
	var p = program("00", ijmp(0, 1, I1), ijmp(1, I0, I1)).WithBalls(EIGHT, EIGHT).WithEntry(0, FALL)
	//
	checkIntercept(t, p.WithMemory(bits("00")), NOBALL, "b", NOBALL)
	checkIntercept(t, p.WithMemory(bits("01")), NOBALL, "b", NOBALL)
	checkIntercept(t, p.WithMemory(bits("10")), NOBALL, "b", NOBALL)
	checkIntercept(t, p.WithMemory(bits("11")), "b", NOBALL, NOBALL)
}

// AND gate
func Test_Run_Intercept_04(t *testing.T) {
	var p = program("00", ijmp(0, 1, R), ijmp(1, I0, R)).WithBalls(EIGHT, EIGHT).WithEntry(0, I0)
	//
	checkIntercept(t, p.WithMemory(bits("00")), "r", NOBALL, NOBALL)
	checkIntercept(t, p.WithMemory(bits("01")), "r", NOBALL, NOBALL)
	checkIntercept(t, p.WithMemory(bits("10")), "r", NOBALL, NOBALL)
	checkIntercept(t, p.WithMemory(bits("11")), "b", NOBALL, NOBALL)
}

// A later visit to an interceptor overwrites the color recorded by an earlier
// one.
func Test_Run_Intercept_05(t *testing.T) {
	var p = program("0", ijmp(0, I1, I1)).WithBalls(2, 2)
	//
	first := checkIntercept(t, p, NOBALL, "b", NOBALL)
	// Interceptors are terminal, so the remaining balls were never released.
	if first.Balls != [2]uint8{1, 2} {
		t.Errorf("unexpected balls %v", first.Balls)
	}
	// Rerun from the terminal state, but starting with red.
	second := checkIntercept(t, first.WithStart(RED), NOBALL, "r", NOBALL)
	//
	if second.Balls != [2]uint8{1, 1} {
		t.Errorf("unexpected balls %v", second.Balls)
	}
}

// ===================================================================
// Faults
// ===================================================================

func Test_Run_Fault_01(t *testing.T) {
	checkFault(t, program("0", ijmp(0, FALL, FALL)).WithBalls(1, 0), FALL)
}

func Test_Run_Fault_02(t *testing.T) {
	// No instruction at address 1
	checkFault(t, program("0", ijmp(0, 1, 1)).WithBalls(1, 0), 1)
}

func Test_Run_Fault_03(t *testing.T) {
	// Unrecognised reserved address
	checkFault(t, program("0", ijmp(0, 200, 200)).WithBalls(1, 0), 200)
}

func Test_Run_Fault_04(t *testing.T) {
	// Non-existent memory cell
	checkFault(t, program("0", ijmp(3, B, B)).WithBalls(1, 0), 0)
}

func Test_Run_Fault_05(t *testing.T) {
	// Fault only on the second ball
	var p = program("0", ijmp(0, FALL, B)).WithBalls(2, 0)
	//
	fault := checkFault(t, p, FALL)
	//
	if fault.State.OutputString() != "b" {
		t.Errorf("expected output b at fault, got %s", fault.State.OutputString())
	}
}

// ===================================================================
// Properties
// ===================================================================

func Test_Run_Deterministic(t *testing.T) {
	for _, p := range fixtures() {
		var (
			r1, err1 = p.Run()
			r2, err2 = p.Run()
		)
		//
		if err1 != nil || err2 != nil {
			t.Fatalf("unexpected errors %v, %v", err1, err2)
		}
		//
		checkSameState(t, r1, r2)
	}
}

func Test_Run_Immutable(t *testing.T) {
	for _, p := range fixtures() {
		var (
			mem    = p.MemoryString()
			balls  = p.Balls
			_, err = p.Run()
		)
		//
		if err != nil {
			t.Fatal(err)
		} else if p.MemoryString() != mem || p.Balls != balls || len(p.Output) != 0 {
			t.Errorf("running machine modified its initial state")
		}
	}
}

func Test_Run_Conservation(t *testing.T) {
	for _, p := range fixtures() {
		for blue := uint8(0); blue < 4; blue++ {
			for red := uint8(0); red < 4; red++ {
				var q = p.WithBalls(blue, red)
				//
				for _, start := range ball.COLORS {
					result, err := q.WithStart(start).Run()
					//
					if err != nil {
						t.Fatal(err)
					}
					//
					remaining := uint(result.Balls[0]) + uint(result.Balls[1])
					//
					if result.Released() > uint(blue)+uint(red) {
						t.Errorf("released %d balls from %d", result.Released(), blue+red)
					} else if result.Released()+remaining != uint(blue)+uint(red) {
						t.Errorf("balls not conserved (released %d, remaining %d)", result.Released(), remaining)
					}
				}
			}
		}
	}
}

func Test_Run_Verbosity(t *testing.T) {
	var (
		hook = test.NewGlobal()
		p    = program("0", ijmp(0, B, R)).WithBalls(EIGHT, EIGHT)
	)
	//
	for verbosity, expected := range []int{0, 17, 33} {
		hook.Reset()
		//
		result, err := p.RunVerbosity(uint(verbosity))
		//
		if err != nil {
			t.Fatal(err)
		} else if result.OutputString() != "brbrbrbrbrbrbrbr" {
			t.Errorf("verbosity %d changed output to %s", verbosity, result.OutputString())
		} else if n := len(hook.AllEntries()); n != expected {
			t.Errorf("expected %d trace lines at verbosity %d, got %d", expected, verbosity, n)
		}
	}
}

// ===================================================================
// Builders
// ===================================================================

func Test_Builder_01(t *testing.T) {
	var (
		p = New(4)
		q = p.WithRegister(0, 4, 6).WithBit(0, ONE).WithBalls(3, 4).WithEntry(2, B).WithStart(RED)
	)
	//
	if p.MemoryString() != "0000" || p.Balls != [2]uint8{} || p.Entry != [2]Address{} || p.Start != BLUE {
		t.Errorf("builders modified original state")
	}
	//
	if q.MemoryString() != "1110" || q.Register(0, 4) != 7 || !q.Bit(2) || q.Bit(3) {
		t.Errorf("unexpected memory %s", q.MemoryString())
	} else if q.Balls != [2]uint8{3, 4} || q.Entry != [2]Address{2, B} || q.Start != RED {
		t.Errorf("unexpected state %s", q.Summary())
	}
}

func Test_Builder_02(t *testing.T) {
	var (
		p = New(2)
		q = p.Clone()
	)
	//
	q.Instr[0] = ijmp(1, B, R)
	q.Mem[1] = true
	//
	if p.Instr[0] != ijmp(0, FALL, FALL) || p.Mem[1] {
		t.Errorf("clone shares storage with original")
	}
	//
	if err := p.Validate(); err != nil {
		t.Errorf("unexpected error %s", err)
	} else if err := p.WithMemory(bits("0")).Validate(); err == nil {
		t.Errorf("expected error for mismatched memory")
	} else if err := p.WithInstructions(ijmp(5, B, B), ijmp(1, B, B)).Validate(); err == nil {
		t.Errorf("expected error for invalid memory operand")
	}
}

func Test_Display_01(t *testing.T) {
	var (
		p        = program("01", ijmp(0, B, R), ijmp(1, I0, FALL)).WithEntry(0, B)
		expected = "start: b\nstart_blue: 0\nstart_red: B\nmem:\n\t0: 0\n\t1: 1\ninstr:\n" +
			"\t0: ijmp 0 B R\n\t1: ijmp 1 INTERC0 FALL\n"
	)
	//
	if p.String() != expected {
		t.Errorf("unexpected display:\n%s", p.String())
	}
	//
	result, _ := p.WithBalls(1, 0).Run()
	//
	if summary := result.Summary(); summary != " 0, 0  =>  [11]  =>  [b]" {
		t.Errorf("unexpected summary \"%s\"", summary)
	}
}

// ===================================================================
// Test Helpers
// ===================================================================

func program(mem string, instrs ...instruction.Instruction) State {
	return New(uint(len(instrs))).WithInstructions(instrs...).WithMemory(bits(mem))
}

func bits(str string) memory.Memory {
	mem, err := memory.Parse(str)
	if err != nil {
		panic(err)
	}
	//
	return mem
}

func fixtures() []State {
	return []State{
		New(0).WithBalls(EIGHT, EIGHT).WithEntry(R, B),
		program("0", ijmp(0, B, R)).WithBalls(EIGHT, EIGHT),
		program("10", ijmp(0, B, R), ijmp(1, B, R)).WithBalls(EIGHT, EIGHT).WithEntry(0, 1),
		program("00", ijmp(0, 1, B), ijmp(1, I0, B)).WithBalls(EIGHT, EIGHT).WithEntry(0, B),
		program("00", ijmp(0, 1, R), ijmp(1, I0, R)).WithBalls(EIGHT, EIGHT).WithEntry(0, I0),
	}
}

func checkOutput(t *testing.T, p State, expected string) State {
	result, err := p.Run()
	//
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	} else if result.OutputString() != expected {
		t.Errorf("expected output %s, got %s", expected, result.OutputString())
	}
	//
	return result
}

func checkIntercept(t *testing.T, p State, expected ...string) State {
	result, err := p.Run()
	//
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	//
	for i, e := range expected {
		var slot = result.Intercept[i]
		//
		if e == NOBALL && slot.HasValue() {
			t.Errorf("expected empty interceptor %d, got %s", i, slot.Unwrap())
		} else if e != NOBALL && (slot.IsEmpty() || slot.Unwrap().Char() != e[0]) {
			t.Errorf("expected %s at interceptor %d, got %s", e, i, slot)
		}
	}
	//
	return result
}

func checkFault(t *testing.T, p State, pc Address) *FaultError {
	var fault *FaultError
	//
	_, err := p.Run()
	//
	if err == nil {
		t.Fatalf("expected fault")
	} else if !errors.Is(err, ErrFell) {
		t.Fatalf("expected ErrFell, got %s", err)
	} else if !errors.As(err, &fault) {
		t.Fatalf("expected FaultError, got %s", err)
	} else if fault.PC != pc {
		t.Errorf("expected fault at %d, got %d", pc, fault.PC)
	}
	//
	return fault
}

func checkSameState(t *testing.T, lhs State, rhs State) {
	if !lhs.Output.Equals(rhs.Output) {
		t.Errorf("outputs differ: %s vs %s", lhs.Output, rhs.Output)
	} else if lhs.Intercept != rhs.Intercept {
		t.Errorf("intercepts differ: %v vs %v", lhs.Intercept, rhs.Intercept)
	} else if lhs.MemoryString() != rhs.MemoryString() {
		t.Errorf("memories differ: %s vs %s", lhs.MemoryString(), rhs.MemoryString())
	}
}
