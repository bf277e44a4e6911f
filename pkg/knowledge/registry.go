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

// Package knowledge translates a definition dictionary (Licenses,
// Constraints, Obligations, Variants, Rules) into universally
// quantified axioms asserted into a Kernel (C3, spec.md §4.3).
package knowledge

import (
	"strings"

	"github.com/trustsource/legalcheck/pkg/constraintlang"
	"github.com/trustsource/legalcheck/pkg/kernel"
)

// Rule is a named compliance obligation as recorded by the loader:
// just enough to let the Checker translate a tag name in a MUS back
// into a rule key and type.
type Rule struct {
	Key  string
	Type string
}

// License is an entry in the license registry; its semantics are
// entirely axioms, so the registry only needs to remember that the key
// was accepted (spec.md §4.3 "Licenses").
type License struct {
	Key string
}

// Registry is the read-only knowledge a Kernel was loaded with: the
// rule map, license map, constraint id map and obligation list. It
// implements constraintlang.Resolver, and a forked Engine shares one
// Registry with its parent (spec.md §3 "a forked engine shares the
// read-only knowledge").
type Registry struct {
	k *kernel.Kernel

	rules       map[string]Rule
	licenses    map[string]License
	licenseIDs  map[string]int
	constraints map[string]constraintlang.ConstraintInfo
	obligations []string
}

// NewRegistry constructs an empty Registry bound to the given Kernel
// (used only for id allocation).
func NewRegistry(k *kernel.Kernel) *Registry {
	return &Registry{
		k:           k,
		rules:       make(map[string]Rule),
		licenses:    make(map[string]License),
		constraints: make(map[string]constraintlang.ConstraintInfo),
	}
}

// Resolve implements constraintlang.Resolver: it returns the id
// previously assigned to key, allocating and recording one (with its
// scope, read off the dotted key itself) the first time key is seen.
// The map is keyed by the full key with only its leading `!` stripped,
// not by Property alone -- Module.foo and Component.foo are distinct
// constraints and must not collapse onto one id just because they
// share a property name.
func (r *Registry) Resolve(key string) (int, constraintlang.Scope) {
	atom := constraintlang.ParseAtom(key)
	stripped := strings.TrimPrefix(key, "!")

	if info, ok := r.constraints[stripped]; ok {
		return info.ID, info.Scope
	}

	id := r.k.AllocConstraintID()
	r.constraints[stripped] = constraintlang.ConstraintInfo{
		Key:      stripped,
		Property: atom.Property,
		Scope:    atom.Scope,
		ID:       id,
	}

	return id, atom.Scope
}

// All implements constraintlang.Resolver.
func (r *Registry) All() []constraintlang.ConstraintInfo {
	out := make([]constraintlang.ConstraintInfo, 0, len(r.constraints))
	for _, info := range r.constraints {
		out = append(out, info)
	}

	return out
}

// Rules returns the loaded rule map (ruleKey -> Rule). The Checker uses
// this to translate a MUS's tags into rule keys and to build the full
// assumption vector (spec.md §4.5).
func (r *Registry) Rules() map[string]Rule { return r.rules }

// License looks up a license by key; ok is false for an unknown
// license (spec.md §4.5 "UNKNOWN" path).
func (r *Registry) License(key string) (License, bool) {
	l, ok := r.licenses[key]
	return l, ok
}

// LicenseConst returns the id of the kernel constant make(id) for a
// known license key.
func (r *Registry) LicenseConst(key string) (int, bool) {
	id, ok := r.licenseIDs[key]
	return id, ok
}

// Obligations returns every obligation key (including composite
// `key__variant` keys) in load order.
func (r *Registry) Obligations() []string { return r.obligations }
