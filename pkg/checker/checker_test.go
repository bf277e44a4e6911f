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
package checker_test

import (
	"sort"
	"testing"

	"github.com/segmentio/encoding/json"

	"github.com/trustsource/legalcheck/pkg/checker"
	"github.com/trustsource/legalcheck/pkg/constraintlang"
	"github.com/trustsource/legalcheck/pkg/kernel"
	"github.com/trustsource/legalcheck/pkg/knowledge"
	"github.com/trustsource/legalcheck/pkg/subject"
)

func loadDefs(t *testing.T, raw string) knowledge.Definitions {
	t.Helper()

	var defs knowledge.Definitions
	if err := json.Unmarshal([]byte(raw), &defs); err != nil {
		t.Fatalf("unmarshal definitions: %v", err)
	}

	return defs
}

func newEngine(t *testing.T, raw string) (*kernel.Kernel, *checker.Checker) {
	t.Helper()

	k := kernel.New()
	reg := knowledge.Load(k, loadDefs(t, raw))
	b := constraintlang.NewBuilder(k, reg)
	stack := subject.New(k, b, reg)

	return k, checker.New(k, b, reg, stack)
}

// S1 -- trivial SAT: no rules, a license asserting one unrelated
// constraint, a component with no properties.
func TestCheckModule_TrivialSAT(t *testing.T) {
	const defs = `{
		"Constraints": {"L1": {"T1": true}},
		"Rights": {}, "Terms": {}, "Obligations": {}, "Variants": {}, "Rules": []
	}`

	_, c := newEngine(t, defs)

	m := &subject.Module{
		Key:        "test",
		Properties: subject.Properties{},
		Components: []*subject.Component{
			{Key: "test", Properties: subject.Properties{}, Licenses: []string{"L1"}},
		},
	}

	result := c.CheckModule(m, nil)

	lr, ok := result["test"]["L1"]
	if !ok {
		t.Fatalf("missing result for test/L1: %#v", result)
	}

	if lr.Status != checker.StatusSAT {
		t.Fatalf("status = %v, want SAT", lr.Status)
	}

	if len(lr.Obligations) != 0 {
		t.Fatalf("obligations = %v, want empty", lr.Obligations)
	}
}

// S2 -- an obligation whose setting is satisfied by the component's own
// properties, and whose license grants it via an empty rights entry.
func TestCheckModule_ObligationFires(t *testing.T) {
	const defs = `{
		"Constraints": {"L1": {"O1": true}},
		"Rights": {"O1": {}}, "Terms": {},
		"Obligations": {"O1": {"setting": [["Component.dist_obj"]]}},
		"Variants": {}, "Rules": []
	}`

	_, c := newEngine(t, defs)

	m := &subject.Module{
		Key: "m",
		Components: []*subject.Component{
			{Key: "c1", Properties: subject.Properties{"dist_obj": true}, Licenses: []string{"L1"}},
		},
	}

	result := c.CheckModule(m, nil)
	lr := result["c1"]["L1"]

	if lr.Status != checker.StatusSAT {
		t.Fatalf("status = %v, want SAT", lr.Status)
	}

	if len(lr.Obligations) != 1 || lr.Obligations[0] != "O1" {
		t.Fatalf("obligations = %v, want [O1]", lr.Obligations)
	}
}

// S3 -- a single violation rule that fires.
func TestCheckModule_SingleViolation(t *testing.T) {
	const defs = `{
		"Constraints": {"L1": {}},
		"Rights": {}, "Terms": {}, "Obligations": {},
		"Variants": {},
		"Rules": [
			{
				"key": "R1", "type": "violation",
				"setting": [["Component.dist_obj"]],
				"require": [["Component.src_disclosed"]]
			}
		]
	}`

	_, c := newEngine(t, defs)

	m := &subject.Module{
		Key:        "m",
		Properties: subject.Properties{"D_op": true},
		Components: []*subject.Component{
			{
				Key:        "c1",
				Properties: subject.Properties{"dist_obj": true, "src_disclosed": false},
				Licenses:   []string{"L1"},
			},
		},
	}

	result := c.CheckModule(m, nil)
	lr := result["c1"]["L1"]

	if lr.Status != checker.StatusUNSAT {
		t.Fatalf("status = %v, want UNSAT", lr.Status)
	}

	if len(lr.Rules) != 1 || lr.Rules[0] != "R1" {
		t.Fatalf("rules = %v, want [R1]", lr.Rules)
	}

	if len(lr.Obligations) != 0 {
		t.Fatalf("obligations = %v, want empty", lr.Obligations)
	}
}

// S4 -- two independent violations with disjoint settings, both firing.
func TestCheckModule_TwoIndependentViolations(t *testing.T) {
	const defs = `{
		"Constraints": {"L1": {}},
		"Rights": {}, "Terms": {}, "Obligations": {},
		"Variants": {},
		"Rules": [
			{
				"key": "R1", "type": "violation",
				"setting": [["Component.dist_obj"]],
				"require": [["Component.src_disclosed"]]
			},
			{
				"key": "R2", "type": "violation",
				"setting": [["Component.linked"]],
				"require": [["Component.notice_given"]]
			}
		]
	}`

	_, c := newEngine(t, defs)

	m := &subject.Module{
		Key: "m",
		Components: []*subject.Component{
			{
				Key: "c1",
				Properties: subject.Properties{
					"dist_obj":      true,
					"src_disclosed": false,
					"linked":        true,
					"notice_given":  false,
				},
				Licenses: []string{"L1"},
			},
		},
	}

	result := c.CheckModule(m, nil)
	lr := result["c1"]["L1"]

	if lr.Status != checker.StatusUNSAT {
		t.Fatalf("status = %v, want UNSAT", lr.Status)
	}

	got := append([]string(nil), lr.Rules...)
	sort.Strings(got)

	if len(got) != 2 || got[0] != "R1" || got[1] != "R2" {
		t.Fatalf("rules = %v, want [R1 R2]", lr.Rules)
	}
}

// S5 -- a component referencing a license key the registry never saw.
func TestCheckComponent_UnknownLicense(t *testing.T) {
	const defs = `{
		"Constraints": {}, "Rights": {}, "Terms": {}, "Obligations": {},
		"Variants": {}, "Rules": []
	}`

	_, c := newEngine(t, defs)

	m := &subject.Module{Key: "m"}

	result := c.CheckModule(m, []*subject.Component{
		{Key: "c1", Licenses: []string{"NoSuchLicense"}},
	})

	lr := result["c1"]["NoSuchLicense"]

	if lr.Status != checker.StatusUnknown {
		t.Fatalf("status = %v, want UNKNOWN", lr.Status)
	}

	if lr.Reason == "" {
		t.Fatalf("reason is empty, want explanatory text")
	}
}

// S6 -- a variant obligation: only the variant whose setting is
// satisfied should fire.
func TestCheckModule_VariantObligation(t *testing.T) {
	const defs = `{
		"Constraints": {"L1": {"O1__source": true, "O1__binary": true}},
		"Rights": {"O1__binary": {}}, "Terms": {},
		"Obligations": {
			"O1": {
				"setting": [],
				"variants": {
					"source": {"setting": [["Component.dist_src"]]},
					"binary": {"setting": [["Component.dist_obj"]]}
				}
			}
		},
		"Variants": {"source": {"setting": []}, "binary": {"setting": []}},
		"Rules": []
	}`

	_, c := newEngine(t, defs)

	m := &subject.Module{
		Key:        "m",
		Properties: subject.Properties{"D_op": true},
		Components: []*subject.Component{
			{
				Key:        "c1",
				Properties: subject.Properties{"dist_obj": true, "dist_src": false},
				Licenses:   []string{"L1"},
			},
		},
	}

	result := c.CheckModule(m, nil)
	lr := result["c1"]["L1"]

	if lr.Status != checker.StatusSAT {
		t.Fatalf("status = %v, want SAT", lr.Status)
	}

	has := func(key string) bool {
		for _, o := range lr.Obligations {
			if o == key {
				return true
			}
		}

		return false
	}

	if !has("O1__binary") {
		t.Fatalf("obligations = %v, want O1__binary present", lr.Obligations)
	}

	if has("O1__source") {
		t.Fatalf("obligations = %v, want O1__source absent", lr.Obligations)
	}
}
