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

package resolver

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// matchesExternal reports whether specifier matches one of patterns, which
// may each be an exact specifier, a prefix ending in "/", or a doublestar
// glob (spec §4.2 step 3: "exact, prefix, or glob").
func matchesExternal(specifier string, patterns []string) bool {
	for _, pattern := range patterns {
		if pattern == specifier {
			return true
		}
		if strings.HasSuffix(pattern, "/") && strings.HasPrefix(specifier, pattern) {
			return true
		}
		if strings.ContainsAny(pattern, "*?[") {
			if ok, err := doublestar.Match(pattern, specifier); err == nil && ok {
				return true
			}
		}
	}
	return false
}
