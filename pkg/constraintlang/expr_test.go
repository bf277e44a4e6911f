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
package constraintlang_test

import (
	"testing"

	"github.com/trustsource/legalcheck/pkg/constraintlang"
	"github.com/trustsource/legalcheck/pkg/kernel"
)

type stubResolver struct {
	next int
	ids  map[string]int
}

func newStubResolver() *stubResolver {
	return &stubResolver{ids: make(map[string]int)}
}

func (s *stubResolver) Resolve(key string) (int, constraintlang.Scope) {
	atom := constraintlang.ParseAtom(key)

	if id, ok := s.ids[atom.Property]; ok {
		return id, atom.Scope
	}

	id := s.next
	s.next++
	s.ids[atom.Property] = id

	return id, atom.Scope
}

func (s *stubResolver) All() []constraintlang.ConstraintInfo { return nil }

func TestParseExpr_AndNot(t *testing.T) {
	k := kernel.New()
	res := newStubResolver()
	b := constraintlang.NewBuilder(k, res)

	c := k.Const("c", kernel.ComponentKind)
	dist, _ := res.Resolve("Component.dist_obj")
	disclosed, _ := res.Resolve("Component.src_disclosed")

	k.Assert(k.ComponentConstraint(c, k.MakeConstant(kernel.ConstraintKind, dist)), "")
	k.Assert(k.ComponentConstraint(c, k.MakeConstant(kernel.ConstraintKind, disclosed)).Not(), "")

	term, err := b.ParseExpr("(and Component.dist_obj (not Component.src_disclosed))", nil)
	if err != nil {
		t.Fatalf("ParseExpr: %v", err)
	}

	k.Assert(term.Implies(k.ComponentConstraint(c, k.MakeConstant(kernel.ConstraintKind, dist))), "")

	if k.Check(nil) != kernel.Sat {
		t.Fatalf("expected SAT")
	}
}

func TestParseExpr_Errors(t *testing.T) {
	k := kernel.New()
	b := constraintlang.NewBuilder(k, newStubResolver())

	cases := []string{
		"",
		"(",
		"(not)",
		"(implies a)",
		"(if-then-else a b)",
		"(frobnicate a b)",
	}

	for _, text := range cases {
		if _, err := b.ParseExpr(text, nil); err == nil {
			t.Errorf("ParseExpr(%q) succeeded, want error", text)
		}
	}
}

func TestParseExpr_TrueFalseLiterals(t *testing.T) {
	k := kernel.New()
	b := constraintlang.NewBuilder(k, newStubResolver())

	trueTerm, err := b.ParseExpr("true", nil)
	if err != nil {
		t.Fatalf("ParseExpr(true): %v", err)
	}

	falseTerm, err := b.ParseExpr("false", nil)
	if err != nil {
		t.Fatalf("ParseExpr(false): %v", err)
	}

	k.Assert(trueTerm, "")
	k.Assert(falseTerm.Not(), "")

	if k.Check(nil) != kernel.Sat {
		t.Fatalf("expected SAT")
	}
}
