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

import (
	"iter"
	"slices"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// CaptureInfo is one captured node from a query match, flattened to the
// fields callers actually need (no live *ts.Node past the match's scope).
type CaptureInfo struct {
	NodeId    int
	Text      string
	StartByte uint
	EndByte   uint
}

// CaptureMap groups CaptureInfo by capture name, e.g. "import.specifier".
type CaptureMap = map[string][]CaptureInfo

// QueryMatcher runs one compiled query, owned by a QueryManager, against
// parsed source. Cursors are never pooled (see parsers.go); a matcher owns
// exactly one and must be Closed when the caller is done with it.
type QueryMatcher struct {
	query  *tsQuery
	cursor *ts.QueryCursor
}

// NewQueryMatcher builds a matcher for the named query in the given
// language ("typescript", "tsx", "css", or "html"), sharing the compiled
// *ts.Query owned by manager.
func NewQueryMatcher(manager *QueryManager, language, queryName string) (*QueryMatcher, error) {
	if manager == nil {
		return nil, ErrNoQueryManager
	}
	q, err := manager.getQuery(language, queryName)
	if err != nil {
		return nil, err
	}
	return &QueryMatcher{query: q, cursor: ts.NewQueryCursor()}, nil
}

// Close releases the matcher's cursor. It does not close the underlying
// query, which the owning QueryManager closes once for every matcher.
func (m *QueryMatcher) Close() {
	m.cursor.Close()
}

// GetCaptureNameByIndex maps a raw capture index to its `@name` in the
// query source.
func (m *QueryMatcher) GetCaptureNameByIndex(index uint32) string {
	return m.query.q.CaptureNames()[index]
}

// GetCaptureIndexForName is the inverse of GetCaptureNameByIndex.
func (m *QueryMatcher) GetCaptureIndexForName(name string) (uint, bool) {
	return m.query.q.CaptureIndexForName(name)
}

// CaptureCount reports how many distinct capture names the query defines.
func (m *QueryMatcher) CaptureCount() int {
	return len(m.query.q.CaptureNames())
}

// SetByteRange restricts matching to [start, end), e.g. to re-run a query
// against only the part of a file that changed.
func (m *QueryMatcher) SetByteRange(start, end uint) {
	m.cursor.SetByteRange(start, end)
}

// AllQueryMatches iterates every match of the query against node, in
// source order.
func (m *QueryMatcher) AllQueryMatches(node *ts.Node, source []byte) iter.Seq[*ts.QueryMatch] {
	matches := m.cursor.Matches(m.query.q, node, source)
	return func(yield func(*ts.QueryMatch) bool) {
		for {
			match := matches.Next()
			if match == nil {
				return
			}
			if !yield(match) {
				return
			}
		}
	}
}

// ParentCaptures groups every match's captures by the node captured under
// parentCaptureName, in source order of that parent node, yielding one
// CaptureMap per parent (e.g. per import_statement) instead of a flat
// list of captures. ExtractImports and ExtractExports do not use it; they
// walk AllQueryMatches directly.
func (m *QueryMatcher) ParentCaptures(root *ts.Node, source []byte, parentCaptureName string) iter.Seq[CaptureMap] {
	names := m.query.q.CaptureNames()

	type group struct {
		captures  CaptureMap
		startByte uint
	}
	groups := make(map[int]group)

	for match := range m.AllQueryMatches(root, source) {
		var parent *ts.Node
		for _, cap := range match.Captures {
			if names[cap.Index] == parentCaptureName {
				parent = &cap.Node
				break
			}
		}
		if parent == nil {
			continue
		}
		id := int(parent.Id())
		g, ok := groups[id]
		if !ok {
			g = group{captures: make(CaptureMap), startByte: parent.StartByte()}
		}
		for _, cap := range match.Captures {
			name := names[cap.Index]
			info := CaptureInfo{
				NodeId:    int(cap.Node.Id()),
				Text:      cap.Node.Utf8Text(source),
				StartByte: cap.Node.StartByte(),
				EndByte:   cap.Node.EndByte(),
			}
			if !slices.ContainsFunc(g.captures[name], func(c CaptureInfo) bool { return c.NodeId == info.NodeId }) {
				g.captures[name] = append(g.captures[name], info)
			}
		}
		groups[id] = g
	}

	ordered := make([]group, 0, len(groups))
	for _, g := range groups {
		ordered = append(ordered, g)
	}
	slices.SortStableFunc(ordered, func(a, b group) int { return int(a.startByte) - int(b.startByte) })

	return func(yield func(CaptureMap) bool) {
		for _, g := range ordered {
			if !yield(g.captures) {
				return
			}
		}
	}
}
