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
package constraintlang

import (
	"testing"

	"github.com/trustsource/legalcheck/internal/assert"
)

func TestParseAtom(t *testing.T) {
	cases := []struct {
		key      string
		negated  bool
		scope    Scope
		property string
	}{
		{"Module.distributed", false, ModuleScope, "distributed"},
		{"!Module.distributed", true, ModuleScope, "distributed"},
		{"Component.dist_obj", false, ComponentScope, "dist_obj"},
		{"!Component.src_disclosed", true, ComponentScope, "src_disclosed"},
		{"bare_property", false, ComponentScope, "bare_property"},
		{"!bare_property", true, ComponentScope, "bare_property"},
	}

	for _, c := range cases {
		got := ParseAtom(c.key)

		assert.Equal(t, c.negated, got.Negated, "ParseAtom(%q).Negated", c.key)
		assert.Equal(t, c.scope, got.Scope, "ParseAtom(%q).Scope", c.key)
		assert.Equal(t, c.property, got.Property, "ParseAtom(%q).Property", c.key)
	}
}
