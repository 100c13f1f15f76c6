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

package graph

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entryEdge(target ModuleId) ImportEdge {
	return ImportEdge{Kind: StaticImport, Specifier: string(target), Resolution: Resolved(target)}
}

func TestModuleGraph_InsertAndQuery(t *testing.T) {
	g := NewModuleGraph()

	a := &Module{Id: "a.ts", SourceType: TypeScript, IsEntry: true, Imports: []ImportEdge{entryEdge("b.ts")}}
	b := &Module{Id: "b.ts", SourceType: TypeScript}

	require.NoError(t, g.Insert(a))
	require.NoError(t, g.Insert(b))

	assert.True(t, g.Has("a.ts"))
	assert.True(t, g.Has("b.ts"))
	assert.Equal(t, 2, g.Len())
	assert.Equal(t, []ModuleId{"a.ts"}, g.Entries())
	assert.Equal(t, []ModuleId{"b.ts"}, g.Dependencies("a.ts"))
	assert.Equal(t, []ModuleId{"a.ts"}, g.Dependents("b.ts"))
	assert.Empty(t, g.CheckInvariants())
}

func TestModuleGraph_G1_UnresolvedAndExternalEdgesAreNotDangling(t *testing.T) {
	g := NewModuleGraph()
	m := &Module{
		Id: "a.ts",
		Imports: []ImportEdge{
			{Kind: StaticImport, Specifier: "left-pad", Resolution: External("left-pad")},
			{Kind: StaticImport, Specifier: "./missing", Resolution: Unresolved("not found")},
		},
	}
	require.NoError(t, g.Insert(m))
	assert.Empty(t, g.CheckInvariants())
	assert.Empty(t, g.Dependencies("a.ts"), "external/unresolved edges never count as in-graph dependencies")
}

func TestModuleGraph_G2_DependentsIsExactInverseOfDependencies(t *testing.T) {
	g := NewModuleGraph()
	require.NoError(t, g.Insert(&Module{Id: "a.ts", Imports: []ImportEdge{entryEdge("c.ts")}}))
	require.NoError(t, g.Insert(&Module{Id: "b.ts", Imports: []ImportEdge{entryEdge("c.ts")}}))
	require.NoError(t, g.Insert(&Module{Id: "c.ts"}))

	assert.ElementsMatch(t, []ModuleId{"a.ts", "b.ts"}, g.Dependents("c.ts"))
	for _, dep := range g.Dependents("c.ts") {
		assert.Contains(t, g.Dependencies(dep), ModuleId("c.ts"))
	}
	assert.Empty(t, g.CheckInvariants())
}

func TestModuleGraph_G3_EntryReachableInZeroHops(t *testing.T) {
	g := NewModuleGraph()
	require.NoError(t, g.Insert(&Module{Id: "entry.ts", IsEntry: true}))
	entries := g.Entries()
	require.Len(t, entries, 1)
	m, ok := g.Get(entries[0])
	require.True(t, ok)
	assert.True(t, m.IsEntry)
}

func TestModuleGraph_G4_InsertIsIdempotent(t *testing.T) {
	g := NewModuleGraph()
	m := &Module{Id: "a.ts", SourceType: TypeScript, Imports: []ImportEdge{entryEdge("b.ts")}}

	require.NoError(t, g.Insert(m))
	before := g.Len()
	require.NoError(t, g.Insert(m))
	require.NoError(t, g.Insert(&Module{Id: "a.ts", SourceType: TypeScript, Imports: []ImportEdge{entryEdge("b.ts")}}))

	assert.Equal(t, before, g.Len(), "re-inserting the same id must not duplicate the node")
	assert.Equal(t, []ModuleId{"b.ts"}, g.Dependencies("a.ts"), "re-inserting must not duplicate edges")
}

func TestModuleGraph_G4_InsertMergesDisjointEdgeSets(t *testing.T) {
	g := NewModuleGraph()
	require.NoError(t, g.Insert(&Module{Id: "a.ts", Imports: []ImportEdge{entryEdge("b.ts")}}))
	require.NoError(t, g.Insert(&Module{Id: "a.ts", Imports: []ImportEdge{entryEdge("c.ts")}}))

	assert.ElementsMatch(t, []ModuleId{"b.ts", "c.ts"}, g.Dependencies("a.ts"))
}

func TestModuleGraph_G5_ImportsAgreeWithIndexedEdges(t *testing.T) {
	g := NewModuleGraph()
	require.NoError(t, g.Insert(&Module{Id: "a.ts", Imports: []ImportEdge{entryEdge("b.ts")}}))
	require.NoError(t, g.Insert(&Module{Id: "b.ts"}))

	m, ok := g.Get("a.ts")
	require.True(t, ok)
	assert.Len(t, m.Imports, 1)
	assert.Equal(t, []ModuleId{"a.ts"}, g.Dependents("b.ts"))
	assert.Empty(t, g.CheckInvariants())
}

func TestModuleGraph_FreezeRejectsFurtherInserts(t *testing.T) {
	g := NewModuleGraph()
	require.NoError(t, g.Insert(&Module{Id: "a.ts"}))
	g.Freeze()
	assert.True(t, g.Frozen())
	err := g.Insert(&Module{Id: "b.ts"})
	assert.ErrorIs(t, err, ErrFrozen)
}

func TestModuleGraph_ConcurrentInsertIsSafe(t *testing.T) {
	g := NewModuleGraph()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := ModuleId("mod-" + string(rune('a'+n%26)))
			_ = g.Insert(&Module{Id: id})
		}(i)
	}
	wg.Wait()
	assert.Empty(t, g.CheckInvariants())
}

func TestModule_Clone_IsIndependentOfSource(t *testing.T) {
	syms := NewSymbolTable()
	syms.Declare("x", VarSymbol, 0)
	m := &Module{Id: "a.ts", Imports: []ImportEdge{entryEdge("b.ts")}, Symbols: syms}

	clone := m.Clone()
	clone.Imports[0].Specifier = "mutated"
	clone.Symbols.MarkRead("x")

	assert.Equal(t, "b.ts", m.Imports[0].Specifier)
	rec, ok := m.Symbols.Get("x")
	require.True(t, ok)
	assert.Equal(t, 0, rec.ReadCount, "cloning must deep-copy the symbol table")
}

func TestExport_UsageCounterIsAtomic(t *testing.T) {
	e := &Export{Name: "default", Kind: DefaultExport}
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e.IncrementUsage()
		}()
	}
	wg.Wait()
	assert.EqualValues(t, 100, e.ReadCount())
}

func TestSymbolTable_DeclareIsIdempotentAndPreservesOrder(t *testing.T) {
	st := NewSymbolTable()
	st.Declare("a", VarSymbol, 0)
	st.Declare("b", FuncSymbol, 0)
	st.Declare("a", ClassSymbol, 1) // re-declare: must not overwrite kind or reorder

	all := st.All()
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].Name)
	assert.Equal(t, VarSymbol, all[0].Kind)
	assert.Equal(t, "b", all[1].Name)
}

func TestSymbolRecord_Unused(t *testing.T) {
	st := NewSymbolTable()
	st.Declare("dead", VarSymbol, 0)
	st.Declare("alive", VarSymbol, 0)
	st.MarkRead("alive")

	dead, _ := st.Get("dead")
	alive, _ := st.Get("alive")
	assert.True(t, dead.Unused())
	assert.False(t, alive.Unused())
}

func TestSourceTypeFromExt(t *testing.T) {
	cases := map[string]SourceType{
		"a.ts":     TypeScript,
		"a.tsx":    Tsx,
		"a.jsx":    Jsx,
		"a.js":     JavaScript,
		"a.mjs":    JavaScript,
		"a.mdx":    Mdx,
		"a.css":    Css,
		"a.json":   Json,
		"a":        Unknown,
		"dir.a/b":  Unknown,
	}
	for path, want := range cases {
		assert.Equal(t, want, SourceTypeFromExt(path), path)
	}
}

func TestModuleId_Virtual(t *testing.T) {
	id := NewVirtualModuleId("runtime")
	assert.True(t, id.IsVirtual())
	assert.Equal(t, ModuleId("virtual:runtime"), id)

	already := NewVirtualModuleId("virtual:runtime")
	assert.Equal(t, id, already)
}
