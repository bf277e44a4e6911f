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
	"github.com/trustsource/legalcheck/pkg/kernel"
	"github.com/trustsource/legalcheck/pkg/subject"
)

const unknownLicenseReason = "License could not be matched correctly"

// CheckComponent implements spec.md §4.5 checkComponent: it pushes C
// onto the stack, resolves each of the given license keys (or, if nil,
// C's own license list) against the registry, and delegates known ones
// to CheckLicense. The caller must already have a Module frame active.
func (c *Checker) CheckComponent(comp *subject.Component, licenses []string) ComponentResult {
	c.stack.PushComponent(comp)
	defer c.stack.Pop(subject.ComponentFrame)

	keys := licenses
	if keys == nil {
		keys = comp.Licenses
	}

	out := make(ComponentResult, len(keys))

	for _, key := range keys {
		out[key] = c.checkLicenseKey(key)
	}

	return out
}

// checkLicenseKey resolves a license key through the registry and
// either delegates to CheckLicense or reports UNKNOWN. Gating on
// reg.License (not LicenseConst) matters: a license id is allocated for
// every key seen, including ones the loader later rejected as
// malformed, so only the licenses map itself distinguishes a genuinely
// known license from a skipped one.
func (c *Checker) checkLicenseKey(key string) LicenseResult {
	if _, ok := c.reg.License(key); !ok {
		return LicenseResult{Status: StatusUnknown, Reason: unknownLicenseReason}
	}

	id, _ := c.reg.LicenseConst(key)
	lConst := c.k.MakeConstant(kernel.LicenseKind, id)

	return c.CheckLicense(lConst)
}

// CheckModule implements spec.md §4.5 checkModule: it pushes M onto the
// stack and checks every given component (or, if nil, every component
// the module owns), returning component_key -> license_key ->
// LicenseResult.
func (c *Checker) CheckModule(m *subject.Module, components []*subject.Component) ModuleResult {
	c.stack.PushModule(m)
	defer c.stack.Pop(subject.ModuleFrame)

	comps := components
	if comps == nil {
		comps = m.Components
	}

	out := make(ModuleResult, len(comps))

	for _, comp := range comps {
		out[comp.Key] = c.CheckComponent(comp, nil)
	}

	return out
}
