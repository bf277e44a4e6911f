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

// Definitions is the merged, include-free definition dictionary the
// Loader consumes (spec.md §6). Merging of `Includes` and glob
// expansion happens upstream, in internal/defsfile -- an external
// collaborator by spec.md §1, not part of this package.
//
// The top-level key literally named "Constraints" is, confusingly, the
// license table (spec.md §6: "Licenses (input name `Constraints`)");
// Rights/Terms/Obligations/Variants/Rules are themselves top-level
// keys, not nested under "Constraints". This mirrors
// original_source/.../engine/__init__.py's Engine.load dispatch
// verbatim.
type Definitions struct {
	Constraints map[string]map[string]any `json:"Constraints"`
	Rights      map[string]map[string]any `json:"Rights"`
	Terms       map[string]map[string]any `json:"Terms"`
	Obligations map[string]ObligationDef  `json:"Obligations"`
	Variants    map[string]VariantDef     `json:"Variants"`
	Rules       []RuleDef                 `json:"Rules"`
}

// VariantDef is a global per-variant setting (spec.md §6).
type VariantDef struct {
	Setting [][]string `json:"setting"`
}

// ObligationDef is one entry of the Obligations section.
type ObligationDef struct {
	Setting  [][]string                    `json:"setting"`
	Value    [][]string                    `json:"value,omitempty"`
	Variants map[string]ObligationVariant  `json:"variants,omitempty"`
}

// ObligationVariant is a per-variant override of an obligation's
// setting/value.
type ObligationVariant struct {
	Setting [][]string `json:"setting,omitempty"`
	Value   [][]string `json:"value,omitempty"`
}

// RuleDef is one entry of the Rules list.
type RuleDef struct {
	Key     string     `json:"key,omitempty"`
	Type    string     `json:"type,omitempty"`
	Setting [][]string `json:"setting"`
	Require [][]string `json:"require,omitempty"`
	// hasRequire distinguishes an absent `require` (rule is
	// unconditionally violated -- spec.md §3) from an explicit empty
	// one. Populated by UnmarshalJSON.
	hasRequire bool
}
