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

package framework

import (
	"strconv"
	"strings"

	"github.com/foxworth-uni/fob/graph"
	"github.com/foxworth-uni/fob/tsquery"
)

// HTMLContainerRule is the built-in FrameworkRule for plain .html entry
// points: it pulls out every inline <script>/<style> region so the
// builder can traverse each one as its own module. <script src> elements
// yield no unit and are not followed. The builder still inserts a module
// for the container file itself, with a side-effect import edge to each
// extracted unit.
type HTMLContainerRule struct {
	qm *tsquery.QueryManager
}

// NewHTMLContainerRule builds a rule sharing qm, which must have been
// constructed with tsquery.ContainerQueries() (or a selector including
// it).
func NewHTMLContainerRule(qm *tsquery.QueryManager) *HTMLContainerRule {
	return &HTMLContainerRule{qm: qm}
}

// Matches reports whether path has an .html/.htm extension. content is
// unused; HTML containers are identified by extension alone, matching
// how the rest of the builder classifies SourceType.
func (r *HTMLContainerRule) Matches(path string, content []byte) bool {
	lower := strings.ToLower(path)
	return strings.HasSuffix(lower, ".html") || strings.HasSuffix(lower, ".htm")
}

// Extract runs the containers query and turns each inline script/style
// body into an ExtractedUnit: a standalone virtual module carrying its
// own content. Hits with a src attribute produce no unit.
func (r *HTMLContainerRule) Extract(containerID string, content []byte) ([]ExtractedUnit, error) {
	containers, err := tsquery.ExtractHTMLContainers(r.qm, content)
	if err != nil {
		return nil, err
	}

	var units []ExtractedUnit
	for i, c := range containers {
		switch {
		case c.Src != "":
			// External references produce no unit, and no import edge
			// is recorded for them.
			continue
		case c.Kind == "script":
			units = append(units, ExtractedUnit{
				SourceType:  graph.JavaScript,
				VirtualID:   "virtual:" + containerID + "#inline-script-" + strconv.Itoa(i),
				Content:     []byte(c.Inline),
				ContainerID: containerID,
			})
		case c.Kind == "style":
			units = append(units, ExtractedUnit{
				SourceType:  graph.Css,
				VirtualID:   "virtual:" + containerID + "#inline-style-" + strconv.Itoa(i),
				Content:     []byte(c.Inline),
				ContainerID: containerID,
			})
		}
	}
	return units, nil
}
