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

package tsquery

// HTMLContainer is one region the "containers" HTML query found: either a
// reference to an external file (Src set, Inline empty) or an inline
// <script>/<style> body (Inline set, Src empty).
type HTMLContainer struct {
	Kind   string // "script" or "style"
	Src    string
	Inline string
}

// ExtractHTMLContainers runs the html/containers query against source and
// returns every <script src>, <style>, inline <script>, and inline <style>
// it finds, in source order. This is what framework.HTMLContainerRule
// builds its ExtractedUnits from.
func ExtractHTMLContainers(qm *QueryManager, source []byte) ([]HTMLContainer, error) {
	tree, release, err := parse("html", source)
	defer release()
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	matcher, err := NewQueryMatcher(qm, "html", "containers")
	if err != nil {
		return nil, err
	}
	defer matcher.Close()

	var out []HTMLContainer
	for match := range matcher.AllQueryMatches(tree.RootNode(), source) {
		var c HTMLContainer
		var hit bool
		for _, cap := range match.Captures {
			switch matcher.GetCaptureNameByIndex(cap.Index) {
			case "container.script":
				c.Kind = "script"
			case "container.src":
				c.Src = cap.Node.Utf8Text(source)
			case "container.inlinescript":
				c.Kind, c.Inline, hit = "script", cap.Node.Utf8Text(source), true
			case "container.inlinestyle":
				c.Kind, c.Inline, hit = "style", cap.Node.Utf8Text(source), true
			}
		}
		if c.Kind == "script" && c.Src != "" {
			hit = true
		}
		if hit {
			out = append(out, c)
		}
	}
	return out, nil
}
