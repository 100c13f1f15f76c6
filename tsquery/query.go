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
	"fmt"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// tsQuery wraps a compiled *ts.Query; it exists only so manager.go's load
// table doesn't have to know the concrete tree-sitter type.
type tsQuery struct {
	q *ts.Query
}

func newTSQuery(lang any, source string) (*tsQuery, error) {
	tsLang, ok := lang.(*ts.Language)
	if !ok || tsLang == nil {
		return nil, fmt.Errorf("invalid language value")
	}
	q, err := ts.NewQuery(tsLang, source)
	if err != nil {
		return nil, err
	}
	return &tsQuery{q: q}, nil
}

func (t *tsQuery) close() {
	t.q.Close()
}
