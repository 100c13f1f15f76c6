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
	whatwgurl "github.com/nlnwa/whatwg-url/url"
)

var urlParser = whatwgurl.NewParser()

// parseAbsoluteURL reports whether specifier is a fully-qualified URL (as
// opposed to a relative or bare module specifier), per the WHATWG URL
// living standard. fob only ever sees these when a build targets a
// FetchRuntime-backed workspace resolving imports straight off a CDN
// (e.g. "https://esm.sh/lit@3"); a relative or bare specifier always
// fails to parse as absolute.
func parseAbsoluteURL(specifier string) (string, bool) {
	u, err := urlParser.Parse(specifier)
	if err != nil {
		return "", false
	}
	if u.Scheme() != "https" && u.Scheme() != "http" {
		return "", false
	}
	return u.Href(false), true
}
