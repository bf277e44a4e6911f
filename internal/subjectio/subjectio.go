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

// Package subjectio decodes the Module wire format into pkg/subject
// types, derives the dist_obj/dist_src distribution-mode properties,
// and validates the result -- a plain data transform external to the
// engine core (spec.md §1 Non-goals), grounded on
// original_source/.../engine/context.py's loadModule and
// resolveComponentsProperties.
package subjectio

import (
	"fmt"

	"github.com/segmentio/encoding/json"

	"github.com/trustsource/legalcheck/pkg/subject"
)

// ValidationError is raised when a subject's wire representation
// violates a construction-time invariant: a non-boolean property value,
// or a non-string license reference (spec.md §7 "Subject errors").
type ValidationError struct {
	Path string
	Msg  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("subjectio: %s: %s", e.Path, e.Msg)
}

// wireComponent and wireModule are the Module wire format as decoded
// here: properties are read from a nested "properties" object and
// components from a "components" list whose entries carry their own
// "key". Properties written as top-level keys of the module or
// component object, and components given as an object keyed by
// component key, are not read. properties is a bag of arbitrary JSON
// values so validate can reject non-booleans explicitly rather than
// letting encoding/json silently coerce or fail on them.
type wireComponent struct {
	Key        string         `json:"key"`
	Properties map[string]any `json:"properties"`
	Licenses   []any          `json:"licenses"`
}

type wireModule struct {
	Key        string          `json:"key"`
	Properties map[string]any  `json:"properties"`
	Components []wireComponent `json:"components"`
}

// DecodeModule parses a Module wire document, validates it, and derives
// dist_obj/dist_src on every component before returning the resulting
// subject.Module. The returned error is always a *ValidationError or a
// JSON decode error; either aborts before any frame has been pushed.
func DecodeModule(data []byte) (*subject.Module, error) {
	var w wireModule
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("subjectio: decode module: %w", err)
	}

	props, err := validateProperties(w.Key, w.Properties)
	if err != nil {
		return nil, err
	}

	m := &subject.Module{
		Key:        w.Key,
		Properties: props,
		Components: make([]*subject.Component, 0, len(w.Components)),
	}

	for _, wc := range w.Components {
		c, err := decodeComponent(wc)
		if err != nil {
			return nil, err
		}

		deriveDistributionMode(m.Properties, c.Properties)

		m.Components = append(m.Components, c)
	}

	return m, nil
}

func decodeComponent(wc wireComponent) (*subject.Component, error) {
	props, err := validateProperties(wc.Key, wc.Properties)
	if err != nil {
		return nil, err
	}

	licenses := make([]string, 0, len(wc.Licenses))

	for _, raw := range wc.Licenses {
		key, ok := raw.(string)
		if !ok {
			return nil, &ValidationError{wc.Key, fmt.Sprintf("license reference %v is not a string", raw)}
		}

		licenses = append(licenses, key)
	}

	return &subject.Component{
		Key:        wc.Key,
		Properties: props,
		Licenses:   licenses,
	}, nil
}

// validateProperties converts a raw JSON property bag into
// subject.Properties, rejecting any value that is not a JSON boolean
// (spec.md §7: "module/component property with non-boolean value ...
// raised as a value error aborting the check").
func validateProperties(owner string, raw map[string]any) (subject.Properties, error) {
	props := make(subject.Properties, len(raw))

	for key, val := range raw {
		b, ok := val.(bool)
		if !ok {
			return nil, &ValidationError{owner, fmt.Sprintf("property %q has non-boolean value %v", key, val)}
		}

		props[key] = b
	}

	return props, nil
}

// deriveDistributionMode computes dist_obj/dist_src from the module's
// distribution-mode flags and writes them onto the component, verbatim
// from resolveComponentsProperties:
//
//	dist_obj = D_op ∨ D_ipoa ∨ D_xa ∨ (D_sslib ∧ ¬OM_SaaS)
//	dist_src = D_cslib
func deriveDistributionMode(moduleProps, componentProps subject.Properties) {
	distObj := moduleProps["D_op"] || moduleProps["D_ipoa"] || moduleProps["D_xa"] ||
		(moduleProps["D_sslib"] && !moduleProps["OM_SaaS"])

	componentProps["dist_obj"] = distObj
	componentProps["dist_src"] = moduleProps["D_cslib"]
}
