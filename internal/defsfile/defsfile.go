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

// Package defsfile resolves a knowledge-base definition file's
// `Includes` list -- paths and globs, relative to the including file --
// into a single merged knowledge.Definitions, before any of it reaches
// the Knowledge Loader proper (spec.md §1 Non-goals keeps include
// resolution out of the engine core; spec.md §6 describes the wire
// format).
package defsfile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/segmentio/encoding/json"
	log "github.com/sirupsen/logrus"

	"github.com/trustsource/legalcheck/pkg/knowledge"
	"github.com/trustsource/legalcheck/pkg/util"
)

// rawDoc mirrors knowledge.Definitions but keeps Includes, which the
// loader proper never sees.
type rawDoc struct {
	Includes    []string                           `json:"Includes,omitempty"`
	Constraints map[string]map[string]any          `json:"Constraints"`
	Rights      map[string]map[string]any          `json:"Rights"`
	Terms       map[string]map[string]any          `json:"Terms"`
	Obligations map[string]knowledge.ObligationDef `json:"Obligations"`
	Variants    map[string]knowledge.VariantDef    `json:"Variants"`
	Rules       []knowledge.RuleDef                `json:"Rules"`
}

// Load reads the definition file at path, resolves every transitive
// Includes entry (deduplicated, globs expanded with `*`/`**`), and
// merges the results into one knowledge.Definitions. Files discovered
// earlier take precedence over files discovered later on key collisions,
// and the root file is applied last so it always wins -- matching a
// layered base-then-override knowledge base. An unreadable or malformed
// root file is an error; an unreadable or malformed included file is
// logged and skipped.
func Load(path string) (knowledge.Definitions, error) {
	visited := make(map[string]bool)
	queue := []string{path}

	var docs []rawDoc

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		abs, err := filepath.Abs(p)
		if err != nil {
			return knowledge.Definitions{}, fmt.Errorf("defsfile: resolve %q: %w", p, err)
		}

		if visited[abs] {
			continue
		}

		visited[abs] = true

		doc, err := readOne(abs)
		if err != nil {
			if len(docs) == 0 {
				return knowledge.Definitions{}, err
			}

			log.WithField("include", p).WithError(err).Warn("defsfile: skipping malformed include")

			continue
		}

		docs = append(docs, doc)

		for _, inc := range doc.Includes {
			matches, err := expandInclude(filepath.Dir(abs), inc)
			if err != nil {
				log.WithField("include", inc).WithError(err).Warn("defsfile: skipping unresolvable include")
				continue
			}

			queue = append(queue, matches...)
		}
	}

	return merge(docs), nil
}

func readOne(path string) (rawDoc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return rawDoc{}, fmt.Errorf("defsfile: read %q: %w", path, err)
	}

	var doc rawDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return rawDoc{}, fmt.Errorf("defsfile: parse %q: %w", path, err)
	}

	return doc, nil
}

// expandInclude resolves a single Includes entry relative to dir: a
// glob containing `*`, `?` or `[` is expanded with doublestar (so `**`
// works too),
// a plain path is returned as-is.
func expandInclude(dir, inc string) ([]string, error) {
	full := inc
	if !filepath.IsAbs(inc) {
		full = filepath.Join(dir, inc)
	}

	if !hasGlobMeta(inc) {
		return []string{full}, nil
	}

	matches, err := doublestar.FilepathGlob(full)
	if err != nil {
		return nil, err
	}

	return matches, nil
}

func hasGlobMeta(s string) bool {
	for _, c := range s {
		if c == '*' || c == '?' || c == '[' {
			return true
		}
	}

	return false
}

// merge flattens the discovered documents into one Definitions. docs[0]
// is always the root file (breadth-first discovery queues it first);
// merging in reverse-discovery order means the root is applied last and
// so wins any key collision against the files it includes.
func merge(docs []rawDoc) knowledge.Definitions {
	out := knowledge.Definitions{
		Constraints: map[string]map[string]any{},
		Rights:      map[string]map[string]any{},
		Terms:       map[string]map[string]any{},
		Obligations: map[string]knowledge.ObligationDef{},
		Variants:    map[string]knowledge.VariantDef{},
	}

	for i := len(docs) - 1; i >= 0; i-- {
		d := docs[i]

		// Each nested map is cloned so the merged Definitions never aliases
		// a rawDoc's own map -- a later in-place edit on one must not leak
		// into the other.
		for k, v := range d.Constraints {
			out.Constraints[k] = util.ShallowCloneMap(v)
		}

		for k, v := range d.Rights {
			out.Rights[k] = util.ShallowCloneMap(v)
		}

		for k, v := range d.Terms {
			out.Terms[k] = util.ShallowCloneMap(v)
		}

		for k, v := range d.Obligations {
			out.Obligations[k] = v
		}

		for k, v := range d.Variants {
			out.Variants[k] = v
		}

		out.Rules = append(out.Rules, d.Rules...)
	}

	return out
}
