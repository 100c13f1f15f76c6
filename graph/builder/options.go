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

// Package builder implements the BFS module-graph traversal of spec §4.3:
// it reads source via a runtime.Runtime, classifies and parses it via
// tsquery, resolves imports via a resolver.Resolver, applies
// framework.FrameworkRule pre-extraction, and enforces the DoS limits and
// path-traversal guard, producing a graph.ModuleGraph.
package builder

import (
	"github.com/foxworth-uni/fob/framework"
	"github.com/foxworth-uni/fob/graph"
	"github.com/foxworth-uni/fob/resolver"
	"github.com/foxworth-uni/fob/runtime"
	"github.com/foxworth-uni/fob/target"
	"github.com/foxworth-uni/fob/tsquery"
)

// Entry is one traversal starting point: either a file path resolved
// against ProjectRoot, or inline content carrying its own synthetic name
// and loader hint (graph.EntryPoint's two shapes, per spec §6).
type Entry struct {
	Path       string
	Inline     string
	OutputName string
	LoaderHint graph.SourceType
}

// Options carries everything a Build needs beyond the entry set itself.
type Options struct {
	Runtime        runtime.Runtime
	Resolver       *resolver.Resolver
	ResolverOpts   resolver.Options
	Queries        *tsquery.QueryManager
	FrameworkRules []framework.FrameworkRule
	Limits         Limits
	ProjectRoot    string
	Concurrency    target.ConcurrencyHints
}
