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

package runtime

import (
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// GitignoreFilter reports whether a path is matched by a .gitignore's
// rules. graph/builder does not consult it.
type GitignoreFilter struct {
	matcher *ignore.GitIgnore
}

// NewGitignoreFilter compiles the lines of a .gitignore file's contents.
// A nil filter (zero value, no matcher) matches nothing.
func NewGitignoreFilter(contents string) *GitignoreFilter {
	if strings.TrimSpace(contents) == "" {
		return &GitignoreFilter{}
	}
	return &GitignoreFilter{matcher: ignore.CompileIgnoreLines(strings.Split(contents, "\n")...)}
}

// Ignored reports whether path should be skipped.
func (f *GitignoreFilter) Ignored(path string) bool {
	if f == nil || f.matcher == nil {
		return false
	}
	return f.matcher.MatchesPath(path)
}
