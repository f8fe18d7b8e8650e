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
package solver

import (
	"github.com/dustin/go-humanize"
	"go.uber.org/atomic"
)

// Counter tallies events (e.g. candidates visited) during a search.  Counters
// are safe for concurrent use, so that the tally remains exact when candidates
// are visited by several workers at once.
type Counter struct {
	value atomic.Uint64
}

// NewCounter constructs a counter starting from zero.
func NewCounter() *Counter {
	return &Counter{}
}

// Inc increments this counter, returning its new value.
func (p *Counter) Inc() uint64 {
	return p.value.Inc()
}

// Add a given amount to this counter, returning its new value.
func (p *Counter) Add(n uint64) uint64 {
	return p.value.Add(n)
}

// Get the current value of this counter.
func (p *Counter) Get() uint64 {
	return p.value.Load()
}

// Take the current value of this counter, resetting it to zero.
func (p *Counter) Take() uint64 {
	return p.value.Swap(0)
}

func (p *Counter) String() string {
	return humanize.Comma(int64(p.Get()))
}
