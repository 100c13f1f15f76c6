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

package config

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/jsonc"

	"github.com/foxworth-uni/fob/runtime"
)

// TsconfigCompilerOptions is the slice of tsconfig.json's compilerOptions
// fob's resolver and esbuildengine care about; everything else (strict
// type-checking flags, etc.) is out of scope, per the Non-goal that fob
// performs no type-checking of its own.
type TsconfigCompilerOptions struct {
	BaseUrl string              `json:"baseUrl"`
	Paths   map[string][]string `json:"paths"`
	Jsx     string              `json:"jsx"`
	Target  string              `json:"target"`
}

type tsconfigFile struct {
	CompilerOptions TsconfigCompilerOptions `json:"compilerOptions"`
}

// ReadTsconfig reads and parses a tsconfig.json (or jsconfig.json) through
// the active Runtime, tolerating the comments and trailing commas real
// tsconfig files contain — standard encoding/json rejects both.
func ReadTsconfig(rt runtime.Runtime, path string) (*TsconfigCompilerOptions, error) {
	raw, err := rt.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	var tc tsconfigFile
	if err := json.Unmarshal(jsonc.ToJSON(raw), &tc); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return &tc.CompilerOptions, nil
}

// Aliases converts tsconfig "paths" into fob's alias-prefix map: each
// paths key's "*" wildcard is stripped to a literal prefix, and only its
// first pattern is kept, mirroring the resolver's single-replacement
// alias model (spec §4.2 names no tie-breaking rule for multiple path
// targets, so "first wins" is the simplest faithful choice).
func (c *TsconfigCompilerOptions) Aliases() map[string]string {
	if c == nil || len(c.Paths) == 0 {
		return nil
	}
	out := make(map[string]string, len(c.Paths))
	for key, targets := range c.Paths {
		if len(targets) == 0 {
			continue
		}
		prefix := trimWildcard(key)
		replacement := trimWildcard(targets[0])
		if c.BaseUrl != "" {
			replacement = c.BaseUrl + "/" + replacement
		}
		out[prefix] = replacement
	}
	return out
}

func trimWildcard(s string) string {
	if len(s) > 0 && s[len(s)-1] == '*' {
		return s[:len(s)-1]
	}
	return s
}
