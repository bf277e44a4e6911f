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

import "github.com/segmentio/encoding/json"

// HasRequire reports whether the `require` field was present in the
// source JSON at all. A rule with no `require` is unconditionally
// violated whenever its `setting` fires (spec.md §3); a rule with an
// explicit but empty `require` compiles to the vacuous CNF `true` and
// so is never violated -- the opposite outcome, so the distinction is
// kept rather than collapsed.
func (r RuleDef) HasRequire() bool { return r.hasRequire }

// UnmarshalJSON records whether `require` was present before decoding
// into the plain struct shape.
func (r *RuleDef) UnmarshalJSON(data []byte) error {
	type plain RuleDef

	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	var probe struct {
		Require *json.RawMessage `json:"require"`
	}

	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}

	*r = RuleDef(p)
	r.hasRequire = probe.Require != nil

	return nil
}
