package esbuildengine_test

import (
	"context"
	"testing"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foxworth-uni/fob/bundler"
	"github.com/foxworth-uni/fob/bundler/esbuildengine"
	"github.com/foxworth-uni/fob/graph"
	"github.com/foxworth-uni/fob/graph/builder"
	"github.com/foxworth-uni/fob/plugin"
	"github.com/foxworth-uni/fob/plugin/tsx"
	"github.com/foxworth-uni/fob/resolver"
	"github.com/foxworth-uni/fob/runtime"
	"github.com/foxworth-uni/fob/target"
	"github.com/foxworth-uni/fob/tsquery"
)

func buildGraph(t *testing.T, rt runtime.Runtime, rslv *resolver.Resolver, rslvOpts resolver.Options, entries []builder.Entry) *graph.ModuleGraph {
	t.Helper()
	qm, err := tsquery.NewQueryManager(tsquery.ImportExportQueries())
	require.NoError(t, err)
	t.Cleanup(qm.Close)

	bld := builder.New(builder.Options{
		Runtime:      rt,
		Resolver:     rslv,
		ResolverOpts: rslvOpts,
		Queries:      qm,
		Limits:       builder.DefaultLimits(),
		Concurrency:  target.ResolveConcurrencyHints(),
	})
	g, buildErrs := bld.Build(context.Background(), entries)
	require.True(t, buildErrs == nil || !buildErrs.Primary.Type.Fatal())
	return g
}

func TestBuild_BundlesATwoModuleGraphIntoOneEntryChunk(t *testing.T) {
	rt := runtime.NewMemRuntime(map[string]string{
		"src/index.ts": `import { helper } from "./helper";
export const main = helper();`,
		"src/helper.ts": `export function helper() { return 1; }`,
	})
	rslvOpts := resolver.Options{NodeBuiltins: resolver.BuiltinsUnresolved}
	rslv := resolver.New(rt, rslvOpts)
	g := buildGraph(t, rt, rslv, rslvOpts, []builder.Entry{{Path: "src/index.ts"}})

	registry := plugin.NewRegistry()
	registry.Register(tsx.New(api.ES2020))

	engine := esbuildengine.New(api.ES2020)
	result, err := engine.Build(context.Background(), bundler.EngineRequest{
		Graph:   g,
		Config:  graph.BuildConfig{Entries: []graph.EntryPoint{{Path: "src/index.ts"}}, Bundle: true, Format: graph.Esm},
		Target:  target.Target{Name: "browser"},
		Runtime: rt,
		Plugins: registry,
	})
	require.NoError(t, err)
	require.Len(t, result.Chunks, 1)
	chunk := result.Chunks[0]
	assert.Equal(t, graph.EntryChunk, chunk.Kind)
	assert.Contains(t, chunk.Code, "helper")
	assert.Len(t, chunk.Modules, 2)
}

func TestBuild_ExternalSpecifierIsNotBundledIntoTheChunk(t *testing.T) {
	rt := runtime.NewMemRuntime(map[string]string{
		"src/index.ts": `import { z } from "zod";
export const schema = z.string();`,
	})
	rslvOpts := resolver.Options{NodeBuiltins: resolver.BuiltinsUnresolved, Externals: []string{"zod"}}
	rslv := resolver.New(rt, rslvOpts)
	g := buildGraph(t, rt, rslv, rslvOpts, []builder.Entry{{Path: "src/index.ts"}})

	registry := plugin.NewRegistry()
	registry.Register(tsx.New(api.ES2020))

	engine := esbuildengine.New(api.ES2020)
	result, err := engine.Build(context.Background(), bundler.EngineRequest{
		Graph:   g,
		Config:  graph.BuildConfig{Entries: []graph.EntryPoint{{Path: "src/index.ts"}}, Bundle: true, Format: graph.Esm},
		Target:  target.Target{Name: "browser"},
		Runtime: rt,
		Plugins: registry,
	})
	require.NoError(t, err)
	require.Len(t, result.Chunks, 1)
	assert.Contains(t, result.Chunks[0].Code, "zod")
	assert.NotContains(t, result.Chunks[0].Code, "export const schema = z.string")
}

func TestBuild_ReturnsErrorWhenEntryIsMissingFromTheGraph(t *testing.T) {
	rt := runtime.NewMemRuntime(map[string]string{"src/index.ts": "export const x = 1;"})
	rslvOpts := resolver.Options{NodeBuiltins: resolver.BuiltinsUnresolved}
	rslv := resolver.New(rt, rslvOpts)
	g := buildGraph(t, rt, rslv, rslvOpts, []builder.Entry{{Path: "src/index.ts"}})

	engine := esbuildengine.New(api.ES2020)
	_, err := engine.Build(context.Background(), bundler.EngineRequest{
		Graph:   g,
		Config:  graph.BuildConfig{Entries: []graph.EntryPoint{{Path: "src/missing.ts"}}, Bundle: true},
		Target:  target.Target{Name: "browser"},
		Runtime: rt,
		Plugins: plugin.NewRegistry(),
	})
	assert.Error(t, err)
}
