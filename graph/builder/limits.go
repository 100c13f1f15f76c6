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

package builder

// Limits bounds a single build's resource consumption (spec §4.3 step 6,
// §5's back-pressure note). Breaching any of them is always fatal
// (ferrors.LimitExceeded).
type Limits struct {
	MaxDepth         int
	MaxModules       int
	MaxFileSizeBytes int64
}

// DefaultLimits returns spec §4.3's documented defaults.
func DefaultLimits() Limits {
	return Limits{
		MaxDepth:         100,
		MaxModules:       100_000,
		MaxFileSizeBytes: 10 * 1024 * 1024,
	}
}
