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
package constraintlang

import (
	"github.com/aclements/go-z3/z3"
)

// AtomBuilder turns a single dotted-key atom into a kernel term. Passed
// explicitly rather than always using Builder.MakeCnstr, because the
// obligations-without-variants loader path deliberately bypasses scope
// dispatch (spec.md §9 open question; see knowledge/obligations.go).
type AtomBuilder func(key string) z3.Bool

// CompileCNF interprets a list-of-lists [[a,b],[c]] as the CNF formula
// (a ∨ b) ∧ c, mapping every atom through build. An empty clause list
// yields the vacuous conjunction `true`.
func (b *Builder) CompileCNF(clauses [][]string, build AtomBuilder) z3.Bool {
	ctx := b.k.Context()
	conj := ctx.BoolVal(true)

	for _, clause := range clauses {
		disj := ctx.BoolVal(false)
		for _, atom := range clause {
			disj = disj.Or(build(atom))
		}

		conj = conj.And(disj)
	}

	return conj
}

// CompileDNF interprets a list-of-lists [[a,b],[c]] as the DNF formula
// (a ∧ b) ∨ c, mapping every atom through build. Used only for an
// obligation's `setting`. An empty clause list yields the vacuous
// disjunction `false`.
func (b *Builder) CompileDNF(clauses [][]string, build AtomBuilder) z3.Bool {
	ctx := b.k.Context()
	disj := ctx.BoolVal(false)

	for _, clause := range clauses {
		conj := ctx.BoolVal(true)
		for _, atom := range clause {
			conj = conj.And(build(atom))
		}

		disj = disj.Or(conj)
	}

	return disj
}

// Warning records a non-fatal definition error encountered while
// decoding a normal-form field: for malformed CNF/DNF input
// DecodeNormalForm returns a Warning together with nil (empty) clauses,
// and does not log it itself.
type Warning struct {
	Key     string
	Message string
}

func (w Warning) Error() string { return w.Key + ": " + w.Message }

// DecodeNormalForm validates that raw is a list-of-lists of strings
// (the CNF/DNF wire shape) and converts it, returning a Warning instead
// of failing the whole definition when it is not.
func DecodeNormalForm(key string, raw any) ([][]string, *Warning) {
	if raw == nil {
		return nil, nil
	}

	outer, ok := raw.([]any)
	if !ok {
		return nil, &Warning{key, "expected a list of lists, got a non-list value"}
	}

	clauses := make([][]string, 0, len(outer))

	for _, item := range outer {
		inner, ok := item.([]any)
		if !ok {
			return nil, &Warning{key, "expected a list of lists, but an element was not a list"}
		}

		clause := make([]string, 0, len(inner))

		for _, atom := range inner {
			s, ok := atom.(string)
			if !ok {
				return nil, &Warning{key, "expected clause atoms to be strings"}
			}

			clause = append(clause, s)
		}

		clauses = append(clauses, clause)
	}

	return clauses, nil
}
