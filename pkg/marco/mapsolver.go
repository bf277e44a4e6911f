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

import (
	"fmt"

	"github.com/aclements/go-z3/z3"
	"github.com/bits-and-blooms/bitset"
)

// MapSolver tracks which subsets of an n-element tag set are still
// "interesting" to explore. It is a pure boolean satisfiability problem
// over n map variables p_0..p_{n-1} and owns a Z3 context and solver
// entirely separate from the domain Kernel's: the map has no use for
// the Module/Component/License theory, only for boolean blocking
// clauses (spec.md §4.6).
type MapSolver struct {
	ctx    *z3.Context
	solver *z3.Solver
	vars   []z3.Bool
}

// NewMapSolver builds a MapSolver over n map variables, all initially
// unconstrained (every subset, including the empty and full sets, is a
// candidate seed).
func NewMapSolver(n int) *MapSolver {
	ctx := z3.NewContext(z3.NewConfig())
	solver := z3.NewSolver(ctx)

	vars := make([]z3.Bool, n)
	for i := 0; i < n; i++ {
		vars[i] = ctx.Const(fmt.Sprintf("p_%d", i), ctx.BoolSort()).(z3.Bool)
	}

	return &MapSolver{ctx: ctx, solver: solver, vars: vars}
}

// NextSeed finds a satisfying assignment of the map formula and returns
// it as a bit-set, or ok=false once the map is unsatisfiable (every
// subset has been ruled out, meaning enumeration is complete).
func (m *MapSolver) NextSeed() (seed *bitset.BitSet, ok bool) {
	sat, err := m.solver.Check()
	if err != nil || !sat {
		return nil, false
	}

	model := m.solver.Model()
	seed = bitset.New(uint(len(m.vars)))

	for i, v := range m.vars {
		if model.EvalBool(v, true) {
			seed.Set(uint(i))
		}
	}

	return seed, true
}

// BlockDown forbids every subset of mss from being proposed again as a
// seed: once mss is known satisfiable, none of its subsets can tell us
// anything new. The blocking clause is the disjunction of the map
// variables NOT in mss, so any future model must include at least one
// tag mss excludes.
func (m *MapSolver) BlockDown(mss *bitset.BitSet) {
	clause := m.ctx.BoolVal(false)

	for i, v := range m.vars {
		if !mss.Test(uint(i)) {
			clause = clause.Or(v)
		}
	}

	m.solver.Assert(clause)
}

// BlockUp forbids every superset of mus from being proposed again as a
// seed: once mus is known unsatisfiable, every set containing it is
// unsatisfiable too and brings nothing new. The blocking clause is the
// disjunction of the negated map variables IN mus, so any future model
// must exclude at least one tag mus requires.
func (m *MapSolver) BlockUp(mus *bitset.BitSet) {
	clause := m.ctx.BoolVal(false)

	for i, v := range m.vars {
		if mus.Test(uint(i)) {
			clause = clause.Or(v.Not())
		}
	}

	m.solver.Assert(clause)
}
