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
package defsfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/trustsource/legalcheck/internal/defsfile"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()

	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoad_MergesIncludesAndGlobsWithRootPrecedence(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, dir, "base-licenses.json", `{
		"Constraints": {"L1": {"T1": true}},
		"Rights": {}, "Terms": {}, "Obligations": {}, "Variants": {}
	}`)

	writeFile(t, dir, "base-rules.json", `{
		"Rules": [{"key": "R1", "type": "violation", "setting": [["Component.x"]]}]
	}`)

	writeFile(t, dir, "root.json", `{
		"Includes": ["base-*.json"],
		"Constraints": {"L1": {"T1": false}},
		"Rights": {}, "Terms": {}, "Obligations": {}, "Variants": {}
	}`)

	defs, err := defsfile.Load(filepath.Join(dir, "root.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(defs.Rules) != 1 || defs.Rules[0].Key != "R1" {
		t.Fatalf("rules = %+v, want [R1] pulled in from the glob include", defs.Rules)
	}

	val, ok := defs.Constraints["L1"]["T1"].(bool)
	if !ok || val != false {
		t.Fatalf("Constraints[L1][T1] = %v, want false (root must win over its include)", defs.Constraints["L1"]["T1"])
	}
}

func TestLoad_CircularIncludeIsHarmless(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, dir, "a.json", `{"Includes": ["b.json"], "Rules": [{"key": "RA", "setting": [[]]}]}`)
	writeFile(t, dir, "b.json", `{"Includes": ["a.json"], "Rules": [{"key": "RB", "setting": [[]]}]}`)

	defs, err := defsfile.Load(filepath.Join(dir, "a.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(defs.Rules) != 2 {
		t.Fatalf("rules = %+v, want exactly 2 (each file visited once)", defs.Rules)
	}
}
