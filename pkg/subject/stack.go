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
package subject

import (
	"strings"

	"github.com/aclements/go-z3/z3"

	"github.com/trustsource/legalcheck/pkg/constraintlang"
	"github.com/trustsource/legalcheck/pkg/kernel"
)

// Kind identifies which of the three LIFO stacks a push/pop targets.
type Kind uint8

// The three kinds of frame the stack holds.
const (
	ModuleFrame Kind = iota
	ComponentFrame
	LicenseFrame
)

// Stack maintains the three LIFO stacks of frame constants (Module,
// Component, License) described in spec.md §4.4. At most one Module,
// one Component under it, and one License under that component may be
// active at any time; push/pop are strictly LIFO and mirror the
// kernel's own solver push/pop exactly one-for-one.
type Stack struct {
	k   *kernel.Kernel
	b   *constraintlang.Builder
	res constraintlang.Resolver

	modules    []z3.Value
	components []z3.Value
	licenses   []z3.Value
}

// New constructs an empty Stack bound to the given Kernel, builder and
// constraint registry.
func New(k *kernel.Kernel, b *constraintlang.Builder, res constraintlang.Resolver) *Stack {
	return &Stack{k: k, b: b, res: res}
}

// CurrentModule returns the constant of the active module frame, or
// the zero Value and false if none is active.
func (s *Stack) CurrentModule() (z3.Value, bool) {
	return top(s.modules)
}

// CurrentComponent returns the constant of the active component frame.
func (s *Stack) CurrentComponent() (z3.Value, bool) {
	return top(s.components)
}

// CurrentLicense returns the constant of the active license frame.
func (s *Stack) CurrentLicense() (z3.Value, bool) {
	return top(s.licenses)
}

func top(stack []z3.Value) (z3.Value, bool) {
	if len(stack) == 0 {
		return z3.Value(nil), false
	}

	return stack[len(stack)-1], true
}

// PushModule performs an SMT push() and asserts ModuleConstraint(M, k)
// = properties[k] (default false) for every Module-scoped constraint
// known to the registry.
func (s *Stack) PushModule(m *Module) {
	s.k.Push()

	id := len(s.modules)
	mConst := s.k.MakeConstant(kernel.ModuleKind, id)

	for _, info := range s.res.All() {
		if info.Scope != constraintlang.ModuleScope {
			continue
		}

		val := m.Properties[info.Property]
		cnstr := s.b.MakeModuleCnstr(info.Key, mConst)
		s.k.Assert(cnstr.Eq(boolVal(s.k, val)), "")
	}

	s.modules = append(s.modules, mConst)
}

// PushComponent performs an SMT push() and asserts ComponentConstraint
// facts for every constraint written with an explicit `Component.`
// prefix, plus ModuleComponent(M, C) if a module frame is active. Bare
// keys (license, rights/terms and obligation keys) are not pinned here;
// their values follow from the loaded axioms.
func (s *Stack) PushComponent(c *Component) {
	s.k.Push()

	id := len(s.components)
	cConst := s.k.MakeConstant(kernel.ComponentKind, id)

	for _, info := range s.res.All() {
		if info.Scope != constraintlang.ComponentScope ||
			!strings.HasPrefix(strings.TrimPrefix(info.Key, "!"), "Component.") {
			continue
		}

		val := c.Properties[info.Property]
		cnstr := s.b.MakeComponentCnstr(info.Key, cConst)
		s.k.Assert(cnstr.Eq(boolVal(s.k, val)), "")
	}

	if mConst, ok := s.CurrentModule(); ok {
		s.k.Assert(s.k.ModuleComponent(mConst, cConst), "")
	}

	s.components = append(s.components, cConst)
}

// PushLicense performs an SMT push() and, if a component frame is
// active, asserts ComponentLicense(C, L).
func (s *Stack) PushLicense(lConst z3.Value) {
	s.k.Push()

	if cConst, ok := s.CurrentComponent(); ok {
		s.k.Assert(s.k.ComponentLicense(cConst, lConst), "")
	}

	s.licenses = append(s.licenses, lConst)
}

// Pop pops the stack of the given kind and issues one SMT pop().
// Callers must pop in reverse push order; a mismatched pop is
// undefined behaviour (spec.md §4.4, §7). Only a pop of an empty stack
// is caught, with a panic; a pop of the wrong kind while that kind's
// stack is non-empty is not detected.
func (s *Stack) Pop(kind Kind) {
	switch kind {
	case ModuleFrame:
		s.modules = popOrPanic(s.modules, "Module")
	case ComponentFrame:
		s.components = popOrPanic(s.components, "Component")
	case LicenseFrame:
		s.licenses = popOrPanic(s.licenses, "License")
	}

	s.k.Pop()
}

func popOrPanic(stack []z3.Value, kind string) []z3.Value {
	if len(stack) == 0 {
		panic("subject: pop of empty " + kind + " stack")
	}

	return stack[:len(stack)-1]
}

func boolVal(k *kernel.Kernel, v bool) z3.Bool {
	return k.Context().BoolVal(v)
}
