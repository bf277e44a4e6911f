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
package checker

import (
	"sort"

	"github.com/aclements/go-z3/z3"

	"github.com/trustsource/legalcheck/pkg/constraintlang"
	"github.com/trustsource/legalcheck/pkg/kernel"
	"github.com/trustsource/legalcheck/pkg/knowledge"
	"github.com/trustsource/legalcheck/pkg/marco"
	"github.com/trustsource/legalcheck/pkg/subject"
)

// Checker drives checkLicense/checkComponent/checkModule against a
// Kernel, its Registry of loaded knowledge and a Subject Stack that
// must already have the relevant Module/Component frames pushed
// (spec.md §4.5).
type Checker struct {
	k     *kernel.Kernel
	b     *constraintlang.Builder
	reg   *knowledge.Registry
	stack *subject.Stack

	ruleKeys []string
}

// New builds a Checker over an already-loaded Kernel/Registry and the
// Subject Stack the caller will push frames onto.
func New(k *kernel.Kernel, b *constraintlang.Builder, reg *knowledge.Registry, stack *subject.Stack) *Checker {
	keys := make([]string, 0, len(reg.Rules()))
	for key := range reg.Rules() {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return &Checker{k: k, b: b, reg: reg, stack: stack, ruleKeys: keys}
}

// CheckLicense implements spec.md §4.5 checkLicense: it pushes L onto
// the stack, checks it against every rule tag, and on UNSAT enumerates
// and retries with the violated rules disabled. The caller must already
// have a Module and Component frame active.
func (c *Checker) CheckLicense(lConst z3.Value) LicenseResult {
	c.stack.PushLicense(lConst)
	defer c.stack.Pop(subject.LicenseFrame)

	if c.k.Check(c.assumptions(nil)) == kernel.Sat {
		return LicenseResult{Status: StatusSAT, Obligations: c.extractObligations()}
	}

	violations := c.enumerateViolations()

	result := LicenseResult{Status: StatusUNSAT, Rules: violations}

	if c.k.Check(c.assumptions(violations)) == kernel.Sat {
		result.Obligations = c.extractObligations()
	}

	return result
}

// enumerateViolations runs the MUS enumerator over the rule-tag
// assumptions and unions every MUS's tags into the violated-rule set,
// sorted for deterministic output (spec.md §4.5 step 4, §8 invariant 7).
func (c *Checker) enumerateViolations() []string {
	sub := marco.NewSubsetSolver(c.k, c.ruleKeys)

	seen := make(map[string]struct{})

	for _, mus := range marco.AllMUSes(sub) {
		for _, tag := range mus {
			seen[tag] = struct{}{}
		}
	}

	violations := make([]string, 0, len(seen))
	for tag := range seen {
		violations = append(violations, tag)
	}

	sort.Strings(violations)

	return violations
}

// assumptions builds the boolean assumption vector for every rule tag
// not present in excluded.
func (c *Checker) assumptions(excluded []string) []z3.Bool {
	skip := make(map[string]struct{}, len(excluded))
	for _, e := range excluded {
		skip[e] = struct{}{}
	}

	out := make([]z3.Bool, 0, len(c.ruleKeys))

	for _, key := range c.ruleKeys {
		if _, ok := skip[key]; ok {
			continue
		}

		out = append(out, c.k.Bool(key))
	}

	return out
}

// extractObligations evaluates ComponentConstraint(C_top, key) for
// every obligation key under the last model, returning the ones that
// hold (spec.md §4.5 step 3). The result is always a non-nil slice
// (possibly empty), so that a SAT result's "obligations" field encodes
// as `[]` rather than being omitted -- only an UNSAT result whose retry
// is not SAT leaves the field absent.
func (c *Checker) extractObligations() []string {
	held := []string{}

	cConst, ok := c.stack.CurrentComponent()
	if !ok {
		return held
	}

	for _, key := range c.reg.Obligations() {
		term := c.b.MakeComponentCnstr(key, cConst)
		if c.k.Eval(term) {
			held = append(held, key)
		}
	}

	return held
}
