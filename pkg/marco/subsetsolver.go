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

// Package marco implements MARCO (Mapping Regions for Completely
// Omniscient enumeration): pairing a SubsetSolver that checks and
// grows/shrinks seeds against the real hard constraints with a
// MapSolver that tracks which subsets of a tagged soft-assumption set
// remain interesting, to enumerate every Minimal Unsatisfiable Subset
// (MUS) and, incidentally, every Maximal Satisfiable Subset (MSS) of
// that set (spec.md §4.6).
package marco

import (
	"github.com/aclements/go-z3/z3"
	"github.com/bits-and-blooms/bitset"

	"github.com/trustsource/legalcheck/pkg/kernel"
)

// SubsetSolver checks seeds (tag subsets) against the Kernel's hard
// constraints and grows/shrinks them to an MSS/MUS. Grow and shrink
// iterate tags in ascending index order, so the result is deterministic
// for a given tag ordering (spec.md §4.6, §8 invariant 7).
type SubsetSolver struct {
	k    *kernel.Kernel
	tags []string
}

// NewSubsetSolver builds a SubsetSolver over the given (ordered) tag
// names, all of which must already be assumption variables known to k.
func NewSubsetSolver(k *kernel.Kernel, tags []string) *SubsetSolver {
	cp := make([]string, len(tags))
	copy(cp, tags)

	return &SubsetSolver{k, cp}
}

// N returns the number of soft tags.
func (s *SubsetSolver) N() int { return len(s.tags) }

// Tags returns the ordered tag names.
func (s *SubsetSolver) Tags() []string { return s.tags }

// CheckSubset determines whether the hard constraints are satisfiable
// together with exactly the tags set in seed.
func (s *SubsetSolver) CheckSubset(seed *bitset.BitSet) bool {
	return s.k.Check(s.assumptionsOf(seed)) == kernel.Sat
}

func (s *SubsetSolver) assumptionsOf(seed *bitset.BitSet) []z3.Bool {
	assumptions := make([]z3.Bool, 0, seed.Count())

	for i := 0; i < len(s.tags); i++ {
		if seed.Test(uint(i)) {
			assumptions = append(assumptions, s.k.Bool(s.tags[i]))
		}
	}

	return assumptions
}

// GrowToMSS extends a seed already known to be SAT into a Maximal
// Satisfiable Subset, by trying to add each currently-false tag in
// ascending index order and keeping it if the result is still SAT.
func (s *SubsetSolver) GrowToMSS(seed *bitset.BitSet) *bitset.BitSet {
	mss := seed.Clone()

	for i := 0; i < len(s.tags); i++ {
		if mss.Test(uint(i)) {
			continue
		}

		mss.Set(uint(i))

		if !s.CheckSubset(mss) {
			mss.Clear(uint(i))
		}
	}

	return mss
}

// ShrinkToMUS reduces a seed already known to be UNSAT into a Minimal
// Unsatisfiable Subset, by trying to remove each tag present in the
// seed in ascending index order and keeping the removal if the result
// is still UNSAT.
func (s *SubsetSolver) ShrinkToMUS(seed *bitset.BitSet) *bitset.BitSet {
	mus := seed.Clone()

	for i := 0; i < len(s.tags); i++ {
		if !mus.Test(uint(i)) {
			continue
		}

		mus.Clear(uint(i))

		if s.CheckSubset(mus) {
			mus.Set(uint(i))
		}
	}

	return mus
}

// TagsOf renders a bit-set seed back into the tag names it selects.
func (s *SubsetSolver) TagsOf(seed *bitset.BitSet) []string {
	out := make([]string, 0, seed.Count())

	for i := 0; i < len(s.tags); i++ {
		if seed.Test(uint(i)) {
			out = append(out, s.tags[i])
		}
	}

	return out
}
