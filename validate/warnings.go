/*
Copyright © 2026 The Fob Authors

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/
package validate

import (
	"fmt"

	"github.com/foxworth-uni/fob/graph"
)

// ValidationWarning is a non-fatal observation about a manifest that
// schema validation alone wouldn't catch.
type ValidationWarning struct {
	ID       string `json:"id"`
	Message  string `json:"message"`
	Category string `json:"category"`
}

// checkManifestWarnings looks for structural oddities a passing schema
// check still allows: entries pointing at chunk ids the manifest never
// defines, and chunks emitted with no modules attributed to them.
func checkManifestWarnings(m graph.Manifest) []ValidationWarning {
	known := make(map[string]bool, len(m.Chunks))
	for _, c := range m.Chunks {
		known[c.Id] = true
	}

	var warnings []ValidationWarning
	for _, e := range m.Entries {
		if !known[e.ChunkId] {
			warnings = append(warnings, ValidationWarning{
				ID:       "manifest-dangling-entry-chunk",
				Message:  fmt.Sprintf("entry %q references unknown chunk %q", e.EntryPoint, e.ChunkId),
				Category: "manifest",
			})
		}
	}
	for _, c := range m.Chunks {
		if len(c.Modules) == 0 {
			warnings = append(warnings, ValidationWarning{
				ID:       "manifest-empty-chunk",
				Message:  fmt.Sprintf("chunk %q (%s) has no attributed modules", c.Id, c.Filename),
				Category: "manifest",
			})
		}
	}
	return warnings
}

func filterDisabled(warnings []ValidationWarning, disabledRules []string) []ValidationWarning {
	if len(disabledRules) == 0 {
		return warnings
	}
	disabled := make(map[string]bool, len(disabledRules))
	for _, r := range disabledRules {
		disabled[r] = true
	}
	var kept []ValidationWarning
	for _, w := range warnings {
		if !disabled[w.ID] && !disabled[w.Category] {
			kept = append(kept, w)
		}
	}
	return kept
}
