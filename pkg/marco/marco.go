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
package marco

// Label distinguishes the two kinds of set MARCO can report.
type Label uint8

// The two labels a reported set can carry.
const (
	MUS Label = iota
	MSS
)

// String renders a Label for diagnostics.
func (l Label) String() string {
	if l == MUS {
		return "MUS"
	}

	return "MSS"
}

// Result is one set reported by Enumerate: either a Minimal
// Unsatisfiable Subset or a Maximal Satisfiable Subset of the tag set
// the SubsetSolver was built over.
type Result struct {
	Label Label
	Tags  []string
}

// Enumerate drives the MARCO loop to completion: repeatedly pull a
// candidate seed from the map solver, test it against the real
// constraints, grow or shrink it to an MSS or MUS, report it via emit,
// and block the map solver from ever proposing a subset of a reported
// MSS or a superset of a reported MUS again. It returns once every
// subset of the tag set has been accounted for (spec.md §4.6).
//
// emit is called once per discovered set, in discovery order; a caller
// that only needs MUSes can filter on Label.
func Enumerate(sub *SubsetSolver, emit func(Result)) {
	mapSolver := NewMapSolver(sub.N())

	for {
		seed, ok := mapSolver.NextSeed()
		if !ok {
			return
		}

		if sub.CheckSubset(seed) {
			mss := sub.GrowToMSS(seed)
			emit(Result{Label: MSS, Tags: sub.TagsOf(mss)})
			mapSolver.BlockDown(mss)
		} else {
			mus := sub.ShrinkToMUS(seed)
			emit(Result{Label: MUS, Tags: sub.TagsOf(mus)})
			mapSolver.BlockUp(mus)
		}
	}
}

// AllMUSes is a convenience wrapper over Enumerate that collects only
// the MUSes, in discovery order.
func AllMUSes(sub *SubsetSolver) [][]string {
	var muses [][]string

	Enumerate(sub, func(r Result) {
		if r.Label == MUS {
			muses = append(muses, r.Tags)
		}
	})

	return muses
}
