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
	"errors"
	"fmt"
	"path"
)

// ErrNoQueryManager is returned by NewQueryMatcher when handed a nil manager.
var ErrNoQueryManager = errors.New("QueryManager is nil")

// QuerySelector names which compiled queries a QueryManager should load,
// per language. Loading only what a build actually needs keeps graph
// construction from compiling queries it will never run.
type QuerySelector struct {
	TypeScript []string
	TSX        []string
	CSS        []string
	HTML       []string
}

// ImportExportQueries selects the queries the graph builder runs against
// every source module: "imports" to discover edges, "exports" to populate
// the SymbolTable.
func ImportExportQueries() QuerySelector {
	return QuerySelector{
		TypeScript: []string{"imports", "exports"},
		TSX:        []string{"imports", "exports", "customelements"},
		CSS:        []string{"imports"},
	}
}

// ContainerQueries selects the HTML container-extraction query the
// framework package's HTMLContainerRule runs.
func ContainerQueries() QuerySelector {
	return QuerySelector{HTML: []string{"containers"}}
}

// AllQueries loads every compiled query across every supported language;
// useful for tests and for tools that inspect a module without knowing
// its kind ahead of time.
func AllQueries() QuerySelector {
	sel := ImportExportQueries()
	html := ContainerQueries()
	sel.HTML = append(sel.HTML, html.HTML...)
	return sel
}

// QueryManager owns a set of compiled tree-sitter queries keyed by
// language and name. Queries are comparatively expensive to compile, so a
// build compiles each one once up front and shares it across every module
// of that source kind.
type QueryManager struct {
	typescript map[string]*tsQuery
	tsx        map[string]*tsQuery
	css        map[string]*tsQuery
	html       map[string]*tsQuery
}

// NewQueryManager compiles every query named by selector and returns a
// manager ready for concurrent read-only use by QueryMatcher.
func NewQueryManager(selector QuerySelector) (*QueryManager, error) {
	qm := &QueryManager{
		typescript: make(map[string]*tsQuery),
		tsx:        make(map[string]*tsQuery),
		css:        make(map[string]*tsQuery),
		html:       make(map[string]*tsQuery),
	}

	for _, name := range selector.TypeScript {
		if err := qm.load("typescript", name); err != nil {
			qm.Close()
			return nil, fmt.Errorf("failed to load typescript query %s: %w", name, err)
		}
	}
	for _, name := range selector.TSX {
		if err := qm.load("tsx", name); err != nil {
			qm.Close()
			return nil, fmt.Errorf("failed to load tsx query %s: %w", name, err)
		}
	}
	for _, name := range selector.CSS {
		if err := qm.load("css", name); err != nil {
			qm.Close()
			return nil, fmt.Errorf("failed to load css query %s: %w", name, err)
		}
	}
	for _, name := range selector.HTML {
		if err := qm.load("html", name); err != nil {
			qm.Close()
			return nil, fmt.Errorf("failed to load html query %s: %w", name, err)
		}
	}

	return qm, nil
}

func (qm *QueryManager) load(language, name string) error {
	queryPath := path.Join("queries", language, name+".scm")
	data, err := queries.ReadFile(queryPath)
	if err != nil {
		return fmt.Errorf("failed to read query file %s: %w", queryPath, err)
	}

	var lang = func() any {
		switch language {
		case "typescript":
			return languages.typescript
		case "tsx":
			return languages.tsx
		case "css":
			return languages.css
		case "html":
			return languages.html
		default:
			return nil
		}
	}()
	if lang == nil {
		return fmt.Errorf("unknown language %s", language)
	}

	compiled, err := newTSQuery(lang, string(data))
	if err != nil {
		return fmt.Errorf("failed to parse query %s: %w", name, err)
	}

	switch language {
	case "typescript":
		qm.typescript[name] = compiled
	case "tsx":
		qm.tsx[name] = compiled
	case "css":
		qm.css[name] = compiled
	case "html":
		qm.html[name] = compiled
	}
	return nil
}

func (qm *QueryManager) getQuery(language, name string) (*tsQuery, error) {
	var (
		q  *tsQuery
		ok bool
	)
	switch language {
	case "typescript":
		q, ok = qm.typescript[name]
	case "tsx":
		q, ok = qm.tsx[name]
	case "css":
		q, ok = qm.css[name]
	case "html":
		q, ok = qm.html[name]
	}
	if !ok {
		return nil, fmt.Errorf("unknown query %s/%s", language, name)
	}
	return q, nil
}

// Close releases every compiled query's native resources. Call once,
// after the last QueryMatcher built from this manager is done.
func (qm *QueryManager) Close() {
	for _, q := range qm.typescript {
		q.close()
	}
	for _, q := range qm.tsx {
		q.close()
	}
	for _, q := range qm.css {
		q.close()
	}
	for _, q := range qm.html {
		q.close()
	}
}
