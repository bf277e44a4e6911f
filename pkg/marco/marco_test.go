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
package marco_test

import (
	"testing"

	"github.com/aclements/go-z3/z3"

	"github.com/trustsource/legalcheck/pkg/kernel"
	"github.com/trustsource/legalcheck/pkg/marco"
)

func tagsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}

	seen := make(map[string]bool, len(a))
	for _, t := range a {
		seen[t] = true
	}

	for _, t := range b {
		if !seen[t] {
			return false
		}
	}

	return true
}

// Two tags, directly contradictory: tagA forces p, tagB forces !p. The
// only MUS is {tagA, tagB}; every strict subset is SAT.
func TestEnumerate_TwoTagConflict(t *testing.T) {
	k := kernel.New()
	ctx := k.Context()
	p := ctx.Const("p", ctx.BoolSort()).(z3.Bool)

	k.Assert(p, "tagA")
	k.Assert(p.Not(), "tagB")

	sub := marco.NewSubsetSolver(k, []string{"tagA", "tagB"})

	var muses, msses [][]string

	marco.Enumerate(sub, func(r marco.Result) {
		switch r.Label {
		case marco.MUS:
			muses = append(muses, r.Tags)
		case marco.MSS:
			msses = append(msses, r.Tags)
		}
	})

	if len(muses) != 1 || !tagsEqual(muses[0], []string{"tagA", "tagB"}) {
		t.Fatalf("muses = %v, want exactly [[tagA tagB]]", muses)
	}

	for _, mss := range msses {
		if len(mss) == 2 {
			t.Fatalf("mss %v should not include both conflicting tags", mss)
		}
	}
}

// Three independent single-tag contradictions: each tag alone
// contradicts an unconditional fact, so there are three singleton
// MUSes and no MUS is a superset of another (invariant, spec.md §8.7).
func TestEnumerate_ThreeIndependentConflicts(t *testing.T) {
	k := kernel.New()
	ctx := k.Context()

	for _, name := range []string{"tagA", "tagB", "tagC"} {
		v := ctx.Const(name+"_v", ctx.BoolSort()).(z3.Bool)
		k.Assert(v, "")
		k.Assert(v.Not(), name)
	}

	sub := marco.NewSubsetSolver(k, []string{"tagA", "tagB", "tagC"})

	var muses [][]string

	marco.Enumerate(sub, func(r marco.Result) {
		if r.Label == marco.MUS {
			muses = append(muses, r.Tags)
		}
	})

	if len(muses) != 3 {
		t.Fatalf("muses = %v, want 3 singleton MUSes", muses)
	}

	for _, mus := range muses {
		if len(mus) != 1 {
			t.Fatalf("mus %v is not a singleton", mus)
		}
	}

	for i, a := range muses {
		for j, b := range muses {
			if i == j {
				continue
			}

			if supersetOf(a, b) {
				t.Fatalf("mus %v is a superset of mus %v", a, b)
			}
		}
	}
}

func supersetOf(a, b []string) bool {
	if len(a) <= len(b) {
		return false
	}

	set := make(map[string]bool, len(a))
	for _, t := range a {
		set[t] = true
	}

	for _, t := range b {
		if !set[t] {
			return false
		}
	}

	return true
}

// No tags at all: the SubsetSolver's single seed is the empty set. With
// no hard constraints it is satisfiable, so it is reported as a single
// trivial MSS (with unsatisfiable hard constraints it would be an empty
// MUS instead).
func TestEnumerate_NoTags(t *testing.T) {
	k := kernel.New()
	sub := marco.NewSubsetSolver(k, nil)

	var results []marco.Result
	marco.Enumerate(sub, func(r marco.Result) { results = append(results, r) })

	if len(results) != 1 || results[0].Label != marco.MSS {
		t.Fatalf("results = %v, want a single trivial MSS", results)
	}
}
