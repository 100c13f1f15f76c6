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

package analyzer

import (
	"github.com/foxworth-uni/fob/graph"
)

// Analysis is the immutable result of Analyze: the built ModuleGraph plus
// the derived queries spec §4.4 names. Derived results are computed
// lazily and cached, since most callers only need one or two of the four.
type Analysis struct {
	graph        *graph.ModuleGraph
	computeUsage bool

	unused  []graph.Export
	cycles  [][]graph.ModuleId
	stats   *Statistics
	haveU   bool
	haveC   bool
	haveS   bool
}

func newAnalysis(g *graph.ModuleGraph, computeUsage bool) *Analysis {
	return &Analysis{graph: g, computeUsage: computeUsage}
}

// Graph returns the underlying ModuleGraph for callers that need direct
// access (e.g. the bundler's topological-order traversal).
func (a *Analysis) Graph() *graph.ModuleGraph {
	return a.graph
}

// UnusedExports returns every Export with ReadCount == 0 across every
// module currently in the graph. Neither the graph build nor Analyze
// increments export read counts, with or without Config.ComputeUsage, so
// every export collected from the graph is reported unused.
func (a *Analysis) UnusedExports() []graph.Export {
	if a.haveU {
		return a.unused
	}
	var out []graph.Export
	for _, id := range a.graph.AllIds() {
		m, ok := a.graph.Get(id)
		if !ok {
			continue
		}
		for _, e := range m.Exports {
			if e.ReadCount() == 0 {
				out = append(out, e)
			}
		}
	}
	a.unused = out
	a.haveU = true
	return out
}

// FindCircularDependencies returns every strongly-connected component of
// size >= 2 in the import graph, plus every module that imports itself,
// each reported as the chain of ids with first == last.
func (a *Analysis) FindCircularDependencies() [][]graph.ModuleId {
	if a.haveC {
		return a.cycles
	}
	a.cycles = tarjanCycles(a.graph)
	a.haveC = true
	return a.cycles
}

// Statistics summarizes the build: module/edge counts by kind, total
// size, and the max depth actually reached from any entry.
type Statistics struct {
	ModuleCount     int
	EntryCount      int
	ResolvedEdges   int
	ExternalEdges   int
	UnresolvedEdges int
	TotalSizeBytes  int64
	MaxDepthReached int
}

// Statistics computes the summary counts described above.
func (a *Analysis) Statistics() Statistics {
	if a.haveS {
		return *a.stats
	}
	var s Statistics
	s.ModuleCount = a.graph.Len()
	s.EntryCount = len(a.graph.Entries())

	for _, id := range a.graph.AllIds() {
		m, ok := a.graph.Get(id)
		if !ok {
			continue
		}
		if m.Size != nil {
			s.TotalSizeBytes += *m.Size
		}
		for _, edge := range m.Imports {
			switch {
			case edge.Resolution.IsResolved():
				s.ResolvedEdges++
			case edge.Resolution.IsExternal():
				s.ExternalEdges++
			default:
				s.UnresolvedEdges++
			}
		}
	}

	s.MaxDepthReached = maxDepthFromEntries(a.graph)
	a.stats = &s
	a.haveS = true
	return s
}

func maxDepthFromEntries(g *graph.ModuleGraph) int {
	depth := make(map[graph.ModuleId]int)
	var frontier []graph.ModuleId
	for _, id := range g.Entries() {
		depth[id] = 0
		frontier = append(frontier, id)
	}
	max := 0
	for len(frontier) > 0 {
		var next []graph.ModuleId
		for _, id := range frontier {
			d := depth[id]
			if d > max {
				max = d
			}
			for _, dep := range g.Dependencies(id) {
				if _, seen := depth[dep]; !seen {
					depth[dep] = d + 1
					next = append(next, dep)
				}
			}
		}
		frontier = next
	}
	return max
}

// DependencyChainsTo returns every simple path from any entry module to
// id, expressed as ordered id slices starting at an entry and ending at
// id. A module reachable from an entry only through a cycle still yields
// the acyclic prefix of that path; the cycle itself is reported instead by
// FindCircularDependencies.
func (a *Analysis) DependencyChainsTo(id graph.ModuleId) [][]graph.ModuleId {
	var chains [][]graph.ModuleId
	for _, entry := range a.graph.Entries() {
		var path []graph.ModuleId
		visited := make(map[graph.ModuleId]bool)
		collectChains(a.graph, entry, id, path, visited, &chains)
	}
	return chains
}

func collectChains(g *graph.ModuleGraph, current, target graph.ModuleId, path []graph.ModuleId, visited map[graph.ModuleId]bool, out *[][]graph.ModuleId) {
	if visited[current] {
		return
	}
	visited[current] = true
	path = append(path, current)
	defer func() { visited[current] = false }()

	if current == target {
		found := make([]graph.ModuleId, len(path))
		copy(found, path)
		*out = append(*out, found)
		return
	}

	for _, dep := range g.Dependencies(current) {
		collectChains(g, dep, target, path, visited, out)
	}
}
