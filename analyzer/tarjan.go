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

import "github.com/foxworth-uni/fob/graph"

// tarjanState is the per-run bookkeeping for Tarjan's strongly-connected
// components algorithm, iterated non-recursively so a pathological module
// graph (one long import chain, up to spec's max_modules of 100 000) can't
// blow the goroutine stack.
type tarjanState struct {
	g        *graph.ModuleGraph
	index    map[graph.ModuleId]int
	lowlink  map[graph.ModuleId]int
	onStack  map[graph.ModuleId]bool
	stack    []graph.ModuleId
	counter  int
	sccs     [][]graph.ModuleId
}

// tarjanCycles returns one entry per strongly-connected component of size
// >= 2, plus one per module that imports itself, each as the ordered id
// list with a duplicated first==last element so callers can read it as a
// closed chain (a self-import reads as [a, a]).
func tarjanCycles(g *graph.ModuleGraph) [][]graph.ModuleId {
	st := &tarjanState{
		g:       g,
		index:   make(map[graph.ModuleId]int),
		lowlink: make(map[graph.ModuleId]int),
		onStack: make(map[graph.ModuleId]bool),
	}
	for _, id := range g.AllIds() {
		if _, visited := st.index[id]; !visited {
			st.strongConnect(id)
		}
	}

	var cycles [][]graph.ModuleId
	for _, scc := range st.sccs {
		if len(scc) >= 2 || selfLoop(g, scc) {
			chain := append(append([]graph.ModuleId{}, scc...), scc[0])
			cycles = append(cycles, chain)
		}
	}
	return cycles
}

func selfLoop(g *graph.ModuleGraph, scc []graph.ModuleId) bool {
	if len(scc) != 1 {
		return false
	}
	id := scc[0]
	for _, dep := range g.Dependencies(id) {
		if dep == id {
			return true
		}
	}
	return false
}

// frame is one level of the explicit DFS stack strongConnect walks
// instead of recursing, so arbitrarily long chains don't overflow the Go
// call stack.
type frame struct {
	id     graph.ModuleId
	deps   []graph.ModuleId
	depIdx int
}

func (st *tarjanState) strongConnect(root graph.ModuleId) {
	var stk []*frame
	st.push(root)
	stk = append(stk, &frame{id: root, deps: st.g.Dependencies(root)})

	for len(stk) > 0 {
		top := stk[len(stk)-1]

		if top.depIdx < len(top.deps) {
			w := top.deps[top.depIdx]
			top.depIdx++

			if _, visited := st.index[w]; !visited {
				st.push(w)
				stk = append(stk, &frame{id: w, deps: st.g.Dependencies(w)})
				continue
			} else if st.onStack[w] {
				if st.lowlink[w] < st.lowlink[top.id] {
					st.lowlink[top.id] = st.lowlink[w]
				}
			}
			continue
		}

		// All of top.id's neighbors are processed; pop the DFS frame and
		// propagate its lowlink to whoever called into it.
		stk = stk[:len(stk)-1]
		if st.lowlink[top.id] == st.index[top.id] {
			st.popComponent(top.id)
		}
		if len(stk) > 0 {
			parent := stk[len(stk)-1]
			if st.lowlink[top.id] < st.lowlink[parent.id] {
				st.lowlink[parent.id] = st.lowlink[top.id]
			}
		}
	}
}

func (st *tarjanState) push(id graph.ModuleId) {
	st.index[id] = st.counter
	st.lowlink[id] = st.counter
	st.counter++
	st.stack = append(st.stack, id)
	st.onStack[id] = true
}

func (st *tarjanState) popComponent(root graph.ModuleId) {
	var scc []graph.ModuleId
	for {
		n := len(st.stack) - 1
		w := st.stack[n]
		st.stack = st.stack[:n]
		st.onStack[w] = false
		scc = append(scc, w)
		if w == root {
			break
		}
	}
	st.sccs = append(st.sccs, scc)
}
