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
package util

import "testing"

func Test_Option_01(t *testing.T) {
	var empty Option[uint]
	//
	if empty.HasValue() || !empty.IsEmpty() {
		t.Errorf("zero option should be empty")
	} else if empty != None[uint]() {
		t.Errorf("zero option should equal None")
	} else if empty.UnwrapOr(3) != 3 {
		t.Errorf("incorrect default")
	} else if empty.String() != "None" {
		t.Errorf("unexpected string \"%s\"", empty.String())
	}
}

func Test_Option_02(t *testing.T) {
	var some = Some[uint](0)
	//
	if !some.HasValue() || some.IsEmpty() {
		t.Errorf("option should hold value")
	} else if some.Unwrap() != 0 || some.UnwrapOr(3) != 0 {
		t.Errorf("incorrect value")
	} else if some == None[uint]() {
		t.Errorf("option holding zero should differ from None")
	} else if some.String() != "Some(0)" {
		t.Errorf("unexpected string \"%s\"", some.String())
	}
}

func Test_Option_03(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("unwrapping empty option should panic")
		}
	}()
	//
	None[string]().Unwrap()
}
