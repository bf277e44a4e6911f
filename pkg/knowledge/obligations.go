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
package knowledge

import (
	"github.com/aclements/go-z3/z3"

	"github.com/trustsource/legalcheck/pkg/constraintlang"
	"github.com/trustsource/legalcheck/pkg/kernel"
)

// loadObligations asserts the equivalence
//
//	ComponentConstraint(c, key) = setting ∧ value
//
// for each obligation, per variant when the obligation (or the global
// Variants section) declares any, or directly otherwise (spec.md
// §4.3 "Obligations"). Every obligation key (composite `k__vk` when
// variants apply) is appended to the registry's obligation list, used
// later by the Checker to extract satisfied obligations from a model.
func loadObligations(k *kernel.Kernel, b *constraintlang.Builder, reg *Registry, defs Definitions) {
	l := k.Const("l", kernel.LicenseKind)
	c := k.Const("c", kernel.ComponentKind)

	globalVariantSetting := make(map[string]z3.Bool, len(defs.Variants))
	for vk, v := range defs.Variants {
		globalVariantSetting[vk] = b.CompileCNF(v.Setting, b.MakeCnstr)
	}

	for key, o := range defs.Obligations {
		variants := mergedVariants(o, defs.Variants)

		if len(variants) > 0 {
			loadVariantObligation(k, b, reg, l, c, key, o, variants, globalVariantSetting, defs.Variants)
		} else {
			loadPlainObligation(k, b, reg, l, c, key, o)
		}
	}
}

// mergedVariants extends an obligation's own per-variant overrides with
// every global variant key it does not already mention, so that every
// variant key is covered (spec.md §4.3).
func mergedVariants(o ObligationDef, globals map[string]VariantDef) map[string]ObligationVariant {
	if len(o.Variants) == 0 && len(globals) == 0 {
		return nil
	}

	merged := make(map[string]ObligationVariant, len(o.Variants)+len(globals))
	for vk, v := range o.Variants {
		merged[vk] = v
	}

	for vk := range globals {
		if _, ok := merged[vk]; !ok {
			merged[vk] = ObligationVariant{}
		}
	}

	return merged
}

func loadVariantObligation(
	k *kernel.Kernel,
	b *constraintlang.Builder,
	reg *Registry,
	l, c z3.Value,
	key string,
	o ObligationDef,
	variants map[string]ObligationVariant,
	globalSetting map[string]z3.Bool,
	globals map[string]VariantDef,
) {
	ctx := k.Context()

	for vk, variant := range variants {
		compositeKey := key + "__" + vk

		setting := []z3.Bool{b.CompileCNF(o.Setting, b.MakeCnstr)}

		var value []z3.Bool
		if len(o.Value) > 0 {
			value = append(value, b.CompileCNF(o.Value, b.MakeCnstr))
		}

		if _, isGlobal := globals[vk]; isGlobal {
			setting = append(setting, globalSetting[vk])
			setting = append(setting, b.CompileCNF(variant.Setting, b.MakeCnstr))

			if len(variant.Value) > 0 {
				value = append(value, b.CompileCNF(variant.Value, b.MakeCnstr))
			}
		}

		sCnstr := ctx.BoolVal(true)
		for _, s := range setting {
			sCnstr = sCnstr.And(s)
		}

		lCnstr := b.MakeLicenseCnstr(compositeKey, l)

		var vCnstr z3.Bool
		if len(value) > 0 {
			conj := ctx.BoolVal(true)
			for _, v := range value {
				conj = conj.And(v)
			}

			vCnstr = lCnstr.Or(conj)
		} else {
			vCnstr = lCnstr
		}

		cCnstr := b.MakeComponentCnstr(compositeKey, c)
		body := k.ComponentLicense(c, l).Implies(cCnstr.Eq(sCnstr.And(vCnstr)))
		k.Assert(k.ForAll([]z3.Value{l, c}, body), "")

		reg.obligations = append(reg.obligations, compositeKey)
	}
}

// loadPlainObligation handles an obligation with no variants at all.
// As the source does, the setting DNF here is built with
// MakeComponentCnstr directly rather than the scope-dispatching
// MakeCnstr used everywhere else in this file -- an asymmetry spec.md
// §9 flags as ambiguous in the source and instructs to preserve rather
// than "fix".
func loadPlainObligation(
	k *kernel.Kernel,
	b *constraintlang.Builder,
	reg *Registry,
	l, c z3.Value,
	key string,
	o ObligationDef,
) {
	cCnstr := b.MakeComponentCnstr(key, c)
	lCnstr := b.MakeLicenseCnstr(key, l)

	settingDNF := b.CompileDNF(o.Setting, func(atom string) z3.Bool { return b.MakeComponentCnstr(atom, c) })

	var body z3.Bool

	if len(o.Setting) == 0 {
		body = cCnstr.Eq(lCnstr)
	} else {
		body = cCnstr.Eq(lCnstr.And(settingDNF))
	}

	k.Assert(k.ForAll([]z3.Value{l, c}, k.ComponentLicense(c, l).Implies(body)), "")

	reg.obligations = append(reg.obligations, key)
}

