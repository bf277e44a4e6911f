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

// Package constraintlang compiles the declarative CNF/DNF forms and the
// textual boolean-expression grammar of the knowledge-base format into
// kernel terms. It is used by the Knowledge Loader (pkg/knowledge) and
// is otherwise stateless: every entry point takes the Resolver that
// owns the scope.property -> id assignment.
package constraintlang

import (
	"strings"

	"github.com/aclements/go-z3/z3"
	"github.com/trustsource/legalcheck/pkg/kernel"
)

// Scope is the first segment of a dotted constraint key.
type Scope uint8

// The two scopes a constraint atom can be declared against. License has
// no scope of its own at the subject level (spec.md §3); its
// constraints are expressed through LicenseConstraint directly by
// callers that already hold a License constant.
const (
	ModuleScope Scope = iota
	ComponentScope
)

// Resolver assigns a stable integer id to each scope.property key,
// allocating a fresh one on first sight. Implemented by
// pkg/knowledge.Registry; kept as an interface here so the builder has
// no dependency on the loader.
type Resolver interface {
	Resolve(key string) (id int, scope Scope)
	// All returns every dotted key seen so far with its scope and id,
	// used by the Subject Stack to assert frame facts for every
	// constraint that applies to a given scope (spec.md §4.4).
	All() []ConstraintInfo
}

// ConstraintInfo names a single scope.property entry and its id.
type ConstraintInfo struct {
	Key      string
	Property string
	Scope    Scope
	ID       int
}

// Atom is a single parsed dotted-key reference, e.g. "!Component.src_disclosed".
type Atom struct {
	Negated  bool
	Scope    Scope
	Property string
	raw      string
}

// ParseAtom splits a dotted key "Scope.Property" into its negation,
// scope and property. The scope is read from the key itself ("Module"
// or "Component"); a key with no recognised prefix is component-scoped.
// MakeCnstr below parses the key again and dispatches on that scope.
func ParseAtom(key string) Atom {
	negated := false
	body := key

	if strings.HasPrefix(body, "!") {
		negated = true
		body = body[1:]
	}

	scope := ComponentScope
	property := body

	if idx := strings.IndexByte(body, '.'); idx >= 0 {
		switch body[:idx] {
		case "Module":
			scope = ModuleScope
		case "Component":
			scope = ComponentScope
		}

		property = body[idx+1:]
	}

	return Atom{negated, scope, property, key}
}

// negate applies the atom's leading '!' to a freshly built term.
func (a Atom) negate(term z3.Bool) z3.Bool {
	if a.Negated {
		return term.Not()
	}

	return term
}

// Builder compiles dotted-key atoms, CNF, DNF and the boolean
// expression grammar into kernel terms on behalf of a single Resolver
// (normally the Knowledge Loader's constraint registry).
type Builder struct {
	k   *kernel.Kernel
	res Resolver
}

// NewBuilder constructs a Builder bound to a Kernel and the Resolver
// that owns constraint-id assignment.
func NewBuilder(k *kernel.Kernel, res Resolver) *Builder {
	return &Builder{k, res}
}

// constraintConst returns the kernel's make(id) constant for the given
// dotted key, resolving (and, if needed, allocating) its id first.
func (b *Builder) constraintConst(key string) z3.Value {
	id, _ := b.res.Resolve(key)
	return b.k.MakeConstant(kernel.ConstraintKind, id)
}

// MakeModuleCnstr builds ModuleConstraint(m, k) for the given dotted
// key, optionally negated. If m is nil a canonical bound variable named
// "m" is used, matching the source's default when no caller-supplied
// constant is given.
func (b *Builder) MakeModuleCnstr(key string, m z3.Value) z3.Bool {
	if m == nil {
		m = b.k.Const("m", kernel.ModuleKind)
	}

	atom := ParseAtom(key)
	term := b.k.ModuleConstraint(m, b.constraintConst(key))

	return atom.negate(term)
}

// MakeComponentCnstr builds ComponentConstraint(c, k) for the given
// dotted key, optionally negated.
func (b *Builder) MakeComponentCnstr(key string, c z3.Value) z3.Bool {
	if c == nil {
		c = b.k.Const("c", kernel.ComponentKind)
	}

	atom := ParseAtom(key)
	term := b.k.ComponentConstraint(c, b.constraintConst(key))

	return atom.negate(term)
}

// MakeLicenseCnstr builds LicenseConstraint(l, k) for the given dotted
// key, optionally negated.
func (b *Builder) MakeLicenseCnstr(key string, l z3.Value) z3.Bool {
	if l == nil {
		l = b.k.Const("l", kernel.LicenseKind)
	}

	atom := ParseAtom(key)
	term := b.k.LicenseConstraint(l, b.constraintConst(key))

	return atom.negate(term)
}

// MakeCnstr dispatches on the atom's declared scope: Module.X atoms
// become ModuleConstraint terms, everything else becomes a
// ComponentConstraint term. This is the "dispatching builder" the
// source's __makeCnstr uses for rule settings/requires and for the
// with-variants obligation branch (spec.md §9 open question: the
// without-variants branch instead always goes through
// MakeComponentCnstr, regardless of declared scope -- preserved as-is
// in knowledge's loadPlainObligation, which passes it to CompileDNF).
func (b *Builder) MakeCnstr(key string) z3.Bool {
	atom := ParseAtom(key)
	if atom.Scope == ModuleScope {
		return b.MakeModuleCnstr(key, nil)
	}

	return b.MakeComponentCnstr(key, nil)
}
