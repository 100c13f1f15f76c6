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

package analyzer_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foxworth-uni/fob/analyzer"
	"github.com/foxworth-uni/fob/graph"
	"github.com/foxworth-uni/fob/graph/builder"
	"github.com/foxworth-uni/fob/runtime"
	"github.com/foxworth-uni/fob/target"
	"github.com/foxworth-uni/fob/tsquery"
)

func newAnalyzer(t *testing.T, files map[string]string) *analyzer.Unconfigured {
	t.Helper()
	rt := runtime.NewMemRuntime(files)
	qm, err := tsquery.NewQueryManager(tsquery.ImportExportQueries())
	require.NoError(t, err)
	t.Cleanup(qm.Close)
	return analyzer.New(rt, qm, target.Browser, "")
}

func TestAnalyze_SimpleGraphStatistics(t *testing.T) {
	a := newAnalyzer(t, map[string]string{
		"src/index.ts": `import { helper } from "./helper"; export const main = helper();`,
		"src/helper.ts": `export function helper() { return 1; }`,
	})

	analysis, buildErr := a.WithEntry(builder.Entry{Path: "src/index.ts"}).Analyze(context.Background())
	require.Nil(t, buildErr)

	stats := analysis.Statistics()
	assert.Equal(t, 2, stats.ModuleCount)
	assert.Equal(t, 1, stats.EntryCount)
	assert.Equal(t, 1, stats.ResolvedEdges)
	assert.Equal(t, 1, stats.MaxDepthReached)
}

func TestAnalyze_UnusedExportsWithoutUsageTrackingReportsAll(t *testing.T) {
	a := newAnalyzer(t, map[string]string{
		"src/index.ts": `export const a = 1; export const b = 2;`,
	})

	analysis, buildErr := a.WithEntry(builder.Entry{Path: "src/index.ts"}).Analyze(context.Background())
	require.Nil(t, buildErr)

	unused := analysis.UnusedExports()
	assert.Len(t, unused, 2)
}

func TestAnalyze_FindCircularDependencies(t *testing.T) {
	a := newAnalyzer(t, map[string]string{
		"src/a.ts": `import { b } from "./b"; export const a = 1;`,
		"src/b.ts": `import { a } from "./a"; export const b = 2;`,
	})

	analysis, buildErr := a.WithEntry(builder.Entry{Path: "src/a.ts"}).Analyze(context.Background())
	require.Nil(t, buildErr)

	cycles := analysis.FindCircularDependencies()
	require.Len(t, cycles, 1)
	assert.Equal(t, cycles[0][0], cycles[0][len(cycles[0])-1])
	assert.GreaterOrEqual(t, len(cycles[0]), 3) // a, b, a closing the loop
}

func TestAnalyze_NoCyclesInAcyclicGraph(t *testing.T) {
	a := newAnalyzer(t, map[string]string{
		"src/index.ts": `import { helper } from "./helper"; export const main = helper();`,
		"src/helper.ts": `export function helper() { return 1; }`,
	})

	analysis, buildErr := a.WithEntry(builder.Entry{Path: "src/index.ts"}).Analyze(context.Background())
	require.Nil(t, buildErr)
	assert.Empty(t, analysis.FindCircularDependencies())
}

func TestAnalyze_DependencyChainsTo(t *testing.T) {
	a := newAnalyzer(t, map[string]string{
		"src/index.ts":  `import "./mid"; export const main = 1;`,
		"src/mid.ts":    `import "./leaf"; export const mid = 1;`,
		"src/leaf.ts":   `export const leaf = 1;`,
	})

	analysis, buildErr := a.WithEntry(builder.Entry{Path: "src/index.ts"}).Analyze(context.Background())
	require.Nil(t, buildErr)

	chains := analysis.DependencyChainsTo(graph.NewPathModuleId("src/leaf.ts"))
	require.Len(t, chains, 1)
	assert.Equal(t, graph.NewPathModuleId("src/index.ts"), chains[0][0])
	assert.Equal(t, graph.NewPathModuleId("src/leaf.ts"), chains[0][len(chains[0])-1])
}

func TestDefaultMetricsCollector_TracksAnalyzeCalls(t *testing.T) {
	rt := runtime.NewMemRuntime(map[string]string{
		"src/index.ts": `export const a = 1;`,
	})
	qm, err := tsquery.NewQueryManager(tsquery.ImportExportQueries())
	require.NoError(t, err)
	t.Cleanup(qm.Close)

	metrics := analyzer.NewDefaultMetricsCollector()
	a := analyzer.New(rt, qm, target.Browser, "").
		WithEntry(builder.Entry{Path: "src/index.ts"}).
		WithConfig(analyzer.Config{Metrics: metrics})

	_, buildErr := a.Analyze(context.Background())
	require.Nil(t, buildErr)
	assert.Equal(t, int64(1), metrics.CounterValue("analyze_calls"))
	assert.Equal(t, int64(1), metrics.GaugeValue("modules_scanned"))
}
