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
package subjectio_test

import (
	"errors"
	"testing"

	"github.com/trustsource/legalcheck/internal/subjectio"
)

func TestDecodeModule_DerivesDistObjFromOpDistribution(t *testing.T) {
	raw := `{
		"key": "m",
		"properties": {"D_op": true},
		"components": [
			{"key": "c1", "properties": {}, "licenses": ["L1"]}
		]
	}`

	m, err := subjectio.DecodeModule([]byte(raw))
	if err != nil {
		t.Fatalf("DecodeModule: %v", err)
	}

	c := m.FindComponent("c1")
	if c == nil {
		t.Fatalf("component c1 not found")
	}

	if !c.Properties["dist_obj"] {
		t.Fatalf("dist_obj = false, want true (D_op implies it)")
	}

	if c.Properties["dist_src"] {
		t.Fatalf("dist_src = true, want false (D_cslib unset)")
	}

	if c.Licenses[0] != "L1" {
		t.Fatalf("licenses = %v, want [L1]", c.Licenses)
	}
}

func TestDecodeModule_SslibRequiresNotSaaS(t *testing.T) {
	raw := `{
		"key": "m",
		"properties": {"D_sslib": true, "OM_SaaS": true},
		"components": [{"key": "c1", "properties": {}, "licenses": []}]
	}`

	m, err := subjectio.DecodeModule([]byte(raw))
	if err != nil {
		t.Fatalf("DecodeModule: %v", err)
	}

	if m.FindComponent("c1").Properties["dist_obj"] {
		t.Fatalf("dist_obj = true, want false (SaaS exception suppresses D_sslib)")
	}
}

func TestDecodeModule_NonBooleanPropertyIsValidationError(t *testing.T) {
	raw := `{"key": "m", "properties": {"D_op": "yes"}, "components": []}`

	_, err := subjectio.DecodeModule([]byte(raw))

	var verr *subjectio.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want a *ValidationError", err)
	}
}

func TestDecodeModule_NonStringLicenseIsValidationError(t *testing.T) {
	raw := `{
		"key": "m", "properties": {},
		"components": [{"key": "c1", "properties": {}, "licenses": [42]}]
	}`

	_, err := subjectio.DecodeModule([]byte(raw))

	var verr *subjectio.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want a *ValidationError", err)
	}
}
