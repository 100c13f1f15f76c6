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

import "github.com/foxworth-uni/fob/graph"

// job is one unit of BFS work: either a path to read via Runtime, or
// inline content already in hand (an entry's inline source, or a unit a
// FrameworkRule extracted from a container).
type job struct {
	id          graph.ModuleId
	depth       int
	path        string // canonical path, empty for inline/virtual jobs
	inline      []byte // set when content is already known
	hasInline   bool
	loaderHint  graph.SourceType
	isEntry     bool
	importerDir string // directory to resolve this module's own imports against
}

// pathOrId returns whatever identifies this job in a diagnostic: the real
// path if it has one, the ModuleId string otherwise (virtual/inline jobs).
func (j job) pathOrId() string {
	if j.path != "" {
		return j.path
	}
	return string(j.id)
}
