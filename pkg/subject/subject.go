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

// Package subject holds the domain-level Module/Component/License
// objects the Checker is asked about, and the push/pop Stack (C4) that
// drives the kernel's frame discipline while checking them.
package subject

// Properties is a boolean property bag, keyed by property name. Both
// Module and Component carry one.
type Properties map[string]bool

// Module is a distribution unit: a key and a set of boolean properties
// (e.g. distribution-mode flags), owning zero or more Components.
type Module struct {
	Key        string
	Properties Properties
	Components []*Component
}

// FindComponent returns the component with the given key, or nil.
func (m *Module) FindComponent(key string) *Component {
	for _, c := range m.Components {
		if c.Key == key {
			return c
		}
	}

	return nil
}

// Component is a reusable piece inside a module: a key, boolean
// properties, and an ordered list of license keys it is offered under.
type Component struct {
	Key        string
	Properties Properties
	Licenses   []string
}

// License is a named body of permissions and obligations. It has no
// direct attributes at the subject level; its semantics live entirely
// in the axioms the Knowledge Loader asserts for its key.
type License struct {
	Key string
}
