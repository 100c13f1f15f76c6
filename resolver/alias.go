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
	"bytes"
	"strings"
	"text/template"

	"github.com/dunglas/go-urlpattern"
)

// urlPatternBaseURL is a fixed, valid absolute URL required by the
// URLPattern constructor to resolve an otherwise-relative pattern string;
// it is never dereferenced.
const urlPatternBaseURL = "https://fob.invalid"

// rewriteAlias applies the longest matching alias prefix to specifier.
// Literal prefixes (no wildcard) are matched directly; prefixes containing
// URLPattern wildcard syntax (":name", "*") are compiled and matched via
// go-urlpattern, with named groups available to the replacement as Go
// template variables (e.g. "@/*" -> "./src/{{.0}}").
func rewriteAlias(specifier string, aliases map[string]string) (string, bool) {
	var bestFrom, bestTo string
	bestLen := -1
	for from, to := range aliases {
		if len(from) > bestLen && strings.HasPrefix(specifier, stripWildcard(from)) {
			bestFrom, bestTo, bestLen = from, to, len(from)
		}
	}
	if bestLen < 0 {
		return specifier, false
	}

	if !strings.ContainsAny(bestFrom, "*:") {
		return bestTo + strings.TrimPrefix(specifier, bestFrom), true
	}

	rewritten, ok := rewriteViaPattern(specifier, bestFrom, bestTo)
	if !ok {
		return specifier, false
	}
	return rewritten, true
}

// MatchesAlias reports whether specifier matches any configured alias
// prefix, without performing the rewrite. The graph builder uses this to
// exempt alias-originated paths from the path-traversal guard (spec §4.3
// step 7: "...unless that path came from an explicit alias").
func MatchesAlias(specifier string, aliases map[string]string) bool {
	for from := range aliases {
		if strings.HasPrefix(specifier, stripWildcard(from)) {
			return true
		}
	}
	return false
}

func stripWildcard(pattern string) string {
	if i := strings.IndexAny(pattern, "*:"); i >= 0 {
		return pattern[:i]
	}
	return pattern
}

func rewriteViaPattern(specifier, from, to string) (string, bool) {
	pattern, err := urlpattern.New(from, urlPatternBaseURL, nil)
	if err != nil {
		return "", false
	}
	result := pattern.Exec(urlPatternBaseURL+"/"+strings.TrimPrefix(specifier, "/"), "")
	if result == nil {
		return "", false
	}

	tmpl, err := template.New("alias").Parse(to)
	if err != nil {
		return "", false
	}
	data := make(map[string]any, len(result.Pathname.Groups))
	for k, v := range result.Pathname.Groups {
		data[k] = v
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", false
	}
	return buf.String(), true
}
