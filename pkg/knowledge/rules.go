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

// loadRules asserts, for each rule, the tagged implication
//
//	tag ⟹ ∀ m c. (ModuleComponent(m, c) ∧ setting) ⟹ require
//
// A rule with no `key` is asserted untagged: it becomes a hard
// constraint that can never be disabled or reported in a MUS (spec.md
// §4.3 "Rules"). A rule with no `require` is unconditionally violated
// whenever its setting fires, i.e. require compiles to `false`.
func loadRules(k *kernel.Kernel, b *constraintlang.Builder, reg *Registry, defs Definitions) {
	m := k.Const("m", kernel.ModuleKind)
	c := k.Const("c", kernel.ComponentKind)
	ctx := k.Context()

	for _, rule := range defs.Rules {
		if rule.Key != "" {
			reg.rules[rule.Key] = Rule{Key: rule.Key, Type: rule.Type}
		}

		setting := b.CompileCNF(rule.Setting, b.MakeCnstr)
		cond := k.ModuleComponent(m, c).And(setting)

		var require z3.Bool
		if rule.HasRequire() {
			require = b.CompileCNF(rule.Require, b.MakeCnstr)
		} else {
			require = ctx.BoolVal(false)
		}

		k.Assert(k.ForAll([]z3.Value{m, c}, cond.Implies(require)), rule.Key)
	}
}
