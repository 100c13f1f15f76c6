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

package ferrors

import "github.com/agext/levenshtein"

// maxSuggestionDistance bounds how different a suggested export name may
// be from the requested one before it's not worth offering (a typo fix,
// not a random nearby name).
const maxSuggestionDistance = 3

// SuggestExport picks the closest name in available to requested by edit
// distance, for scenario S5's "did you mean" missing-export diagnostics.
// Returns "" if nothing is close enough to be a plausible typo fix.
func SuggestExport(requested string, available []string) string {
	best := ""
	bestDist := maxSuggestionDistance + 1
	for _, candidate := range available {
		d := levenshtein.Distance(requested, candidate, nil)
		if d < bestDist {
			best, bestDist = candidate, d
		}
	}
	if bestDist > maxSuggestionDistance {
		return ""
	}
	return best
}
