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

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/trustsource/legalcheck/internal/defsfile"
	"github.com/trustsource/legalcheck/pkg/kernel"
	"github.com/trustsource/legalcheck/pkg/knowledge"
)

var validateCmd = &cobra.Command{
	Use:   "validate <knowledge-base.json>",
	Short: "Load a knowledge base and report what got skipped.",
	Args:  cobra.ExactArgs(1),
	Run:   runValidate,
}

func runValidate(cmd *cobra.Command, args []string) {
	defs, err := defsfile.Load(args[0])
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	k := kernel.New()
	reg := knowledge.Load(k, defs)

	log.WithFields(log.Fields{
		"licenses":   len(defs.Constraints),
		"rules":      len(defs.Rules),
		"rights":     len(defs.Rights),
		"terms":      len(defs.Terms),
		"variants":   len(defs.Variants),
		"loadedKeys": len(reg.Rules()),
	}).Info("knowledge base validated")

	loadedLicenses := 0

	for key := range defs.Constraints {
		if _, ok := reg.License(key); ok {
			loadedLicenses++
		}
	}

	fmt.Printf("%d license(s), %d rule(s) loaded\n", loadedLicenses, len(reg.Rules()))
}
