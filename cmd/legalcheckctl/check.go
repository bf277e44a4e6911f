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
package legalcheckctl

import (
	"fmt"
	"os"

	"github.com/segmentio/encoding/json"
	"github.com/spf13/cobra"

	"github.com/trustsource/legalcheck/internal/defsfile"
	"github.com/trustsource/legalcheck/internal/subjectio"
	"github.com/trustsource/legalcheck/pkg/checker"
	"github.com/trustsource/legalcheck/pkg/constraintlang"
	"github.com/trustsource/legalcheck/pkg/kernel"
	"github.com/trustsource/legalcheck/pkg/knowledge"
	"github.com/trustsource/legalcheck/pkg/subject"
)

var checkCmd = &cobra.Command{
	Use:   "check <knowledge-base.json> <module.json>",
	Short: "Check every component of a module against a knowledge base.",
	Args:  cobra.ExactArgs(2),
	Run:   runCheck,
}

func init() {
	checkCmd.Flags().Bool("pretty", true, "pretty-print the JSON result")
}

func runCheck(cmd *cobra.Command, args []string) {
	defs, err := defsfile.Load(args[0])
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	data, err := os.ReadFile(args[1])
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	m, err := subjectio.DecodeModule(data)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	k := kernel.New()
	reg := knowledge.Load(k, defs)
	b := constraintlang.NewBuilder(k, reg)
	stack := subject.New(k, b, reg)
	c := checker.New(k, b, reg, stack)

	result := c.CheckModule(m, nil)

	var (
		out []byte
		enc error
	)

	if GetFlag(cmd, "pretty") {
		out, enc = json.MarshalIndent(result, "", "  ")
	} else {
		out, enc = json.Marshal(result)
	}

	if enc != nil {
		fmt.Println(enc)
		os.Exit(3)
	}

	if isColorTerminal() {
		fmt.Println(string(out))
	} else {
		os.Stdout.Write(out)
		fmt.Println()
	}
}
