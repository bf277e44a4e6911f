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
	log "github.com/sirupsen/logrus"

	"github.com/trustsource/legalcheck/pkg/constraintlang"
	"github.com/trustsource/legalcheck/pkg/kernel"
)

// Load compiles a Definitions dictionary into axioms asserted into k,
// returning the Registry the Checker and Subject Stack will use
// afterwards. Load never fails outright: malformed entries are logged
// and skipped at the finest granularity (spec.md §7), so it returns only
// the Registry; diagnostics go to the log.
func Load(k *kernel.Kernel, defs Definitions) *Registry {
	reg := NewRegistry(k)
	b := constraintlang.NewBuilder(k, reg)

	loadLicenses(k, b, reg, defs)
	loadRightsAndTerms(k, b, defs)
	loadObligations(k, b, reg, defs)
	loadRules(k, b, reg, defs)

	log.Info("legalcheck knowledge base loaded")

	return reg
}

// loadLicenses asserts LicenseConstraint(L, k) = value for every
// well-formed entry of a license, and skips (logged at Info) the whole
// license if any one entry is malformed (spec.md §4.3 "Licenses").
func loadLicenses(k *kernel.Kernel, b *constraintlang.Builder, reg *Registry, defs Definitions) {
	for key, cnstrs := range defs.Constraints {
		lic := k.MakeConstant(kernel.LicenseKind, nextLicenseID(reg, key))

		facts := make([]z3.Bool, 0, len(cnstrs))
		ok := true

		for ck, raw := range cnstrs {
			val, valOK := licenseConstraintValue(raw)
			if !valOK {
				log.WithField("license", key).Info("invalid license: invalid set of constraints")
				ok = false

				break
			}

			cnstr := b.MakeLicenseCnstr(ck, lic)
			if val {
				facts = append(facts, cnstr)
			} else {
				facts = append(facts, cnstr.Not())
			}
		}

		if !ok {
			continue
		}

		reg.licenses[key] = License{Key: key}

		for _, f := range facts {
			k.Assert(f, "")
		}
	}
}

// licenseConstraintValue accepts either a bare bool or {"value": bool}.
func licenseConstraintValue(raw any) (bool, bool) {
	switch v := raw.(type) {
	case bool:
		return v, true
	case map[string]any:
		val, ok := v["value"]
		if !ok {
			return false, false
		}

		b, ok := val.(bool)

		return b, ok
	default:
		return false, false
	}
}

// nextLicenseID assigns a stable, per-registry counter to license
// constants; unlike constraints these are never looked up by id, only
// by key, so a simple monotonic counter keyed by insertion order
// suffices.
func nextLicenseID(reg *Registry, key string) int {
	if id, ok := reg.licenseIDs[key]; ok {
		return id
	}

	if reg.licenseIDs == nil {
		reg.licenseIDs = make(map[string]int)
	}

	id := len(reg.licenseIDs)
	reg.licenseIDs[key] = id

	return id
}

// loadRightsAndTerms propagates Rights and Terms constraints from
// license to component with no extra condition (spec.md §4.3).
func loadRightsAndTerms(k *kernel.Kernel, b *constraintlang.Builder, defs Definitions) {
	l := k.Const("l", kernel.LicenseKind)
	c := k.Const("c", kernel.ComponentKind)

	propagate := func(keys map[string]map[string]any) {
		for key := range keys {
			cCnstr := b.MakeComponentCnstr(key, c)
			lCnstr := b.MakeLicenseCnstr(key, l)
			body := k.ComponentLicense(c, l).Implies(cCnstr.Eq(lCnstr))
			k.Assert(k.ForAll([]z3.Value{l, c}, body), "")
		}
	}

	propagate(defs.Rights)
	propagate(defs.Terms)
}
