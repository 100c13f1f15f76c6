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

// Package esbuildengine is the reference bundler.Engine: it hands the
// already-built module graph to esbuild's api.Build for final codegen and
// chunking, re-exposing fob's own Resolve/Virtual/Transform/Assets plugin
// hooks as esbuild OnResolve/OnLoad callbacks (spec §4.6, §4.7) so esbuild
// never touches a real path directly — every module it sees arrives
// through our own Runtime and plugin.Registry, grounded on the teacher's
// transform/engine.go TransformTypeScript wrapper and on
// becomeliminal-js-rules' OnResolve/OnLoad plugin patterns.
package esbuildengine

import (
	"context"
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/foxworth-uni/fob/bundler"
	"github.com/foxworth-uni/fob/graph"
	"github.com/foxworth-uni/fob/plugin"
)

// moduleNamespace is the esbuild namespace every module fob resolves
// lives in, so esbuild's own filesystem resolver never runs: every path
// handed to api.Build is already one of our graph.ModuleId strings.
const moduleNamespace = "fob-module"

// chunkNamePrefix names esbuild's auto-split shared chunks; any output
// file whose basename matches this prefix is classified SharedChunk.
const chunkNamePrefix = "chunk-"

// Engine implements bundler.Engine atop esbuild.
type Engine struct {
	// Target is the esbuild language target applied to every build
	// (e.g. api.ES2020); unrelated to target.Target, which is fob's
	// deployment-target concept.
	Target api.Target
}

// New creates an esbuild-backed Engine targeting the given ECMAScript
// version.
func New(esTarget api.Target) *Engine {
	return &Engine{Target: esTarget}
}

var _ bundler.Engine = (*Engine)(nil)

// Build implements bundler.Engine.
func (e *Engine) Build(ctx context.Context, req bundler.EngineRequest) (graph.BuildResult, error) {
	if err := ctx.Err(); err != nil {
		return graph.BuildResult{}, err
	}

	br := &bridge{req: req, target: e.Target}

	entryPoints, err := br.entryPoints()
	if err != nil {
		return graph.BuildResult{}, err
	}

	opts := api.BuildOptions{
		EntryPointsAdvanced: entryPoints,
		Bundle:              req.Config.Bundle,
		Write:               false,
		Format:              formatOf(req.Config.Format),
		Platform:            platformOf(req.Target.Name),
		Target:              e.Target,
		Sourcemap:           sourceMapOf(req.Config.Optimization.SourceMap),
		MinifyWhitespace:    req.Config.Optimization.Minify,
		MinifyIdentifiers:   req.Config.Optimization.Minify,
		MinifySyntax:        req.Config.Optimization.Minify,
		Splitting:           req.Config.Bundle && req.Config.EntryMode == graph.SharedEntryMode && req.Config.Optimization.Splitting,
		ChunkNames:          chunkNamePrefix + "[hash]",
		LogLevel:            api.LogLevelSilent,
		Plugins: []api.Plugin{{
			Name:  "fob-graph",
			Setup: br.setup,
		}},
	}

	result := api.Build(opts)
	if len(result.Errors) > 0 {
		return graph.BuildResult{}, fmt.Errorf("esbuildengine: %s", joinMessages(result.Errors))
	}

	chunks := make([]graph.Chunk, 0, len(result.OutputFiles))
	for _, f := range result.OutputFiles {
		if strings.HasSuffix(f.Path, ".map") {
			continue
		}
		chunks = append(chunks, br.toChunk(f, result.OutputFiles))
	}

	if len(chunks) == 1 {
		// With no splitting there is exactly one output, so every module
		// the plugin loaded necessarily landed in it. Splitting produces
		// more than one chunk and api.Build's plain OutputFiles result
		// doesn't say which input landed in which output (that needs its
		// metafile), so Modules is left empty on each in that case.
		br.mu.Lock()
		chunks[0].Modules = append([]graph.ModuleId(nil), br.loaded...)
		br.mu.Unlock()
	}

	if req.Config.Optimization.SourceMap == graph.SourceMapHidden {
		// esbuild has no dedicated "hidden" mode: we ask it for an
		// external map (so the bytes exist on disk) and strip the
		// linking comment it would otherwise append to the chunk.
		for i := range chunks {
			chunks[i].Code = stripSourceMappingComment(chunks[i].Code)
		}
	}

	diags := make([]graph.Diagnostic, 0, len(result.Warnings))
	for _, w := range result.Warnings {
		diags = append(diags, graph.Diagnostic{Severity: graph.SeverityWarning, Type: "esbuild", Message: w.Text})
	}

	br.mu.Lock()
	assets := append([]graph.EmittedAsset(nil), br.assets...)
	br.mu.Unlock()

	return graph.BuildResult{Chunks: chunks, Assets: assets, Diagnostics: diags}, nil
}

func joinMessages(msgs []api.Message) string {
	parts := make([]string, len(msgs))
	for i, m := range msgs {
		parts[i] = m.Text
	}
	return strings.Join(parts, "; ")
}

// bridge holds the state one Build call's esbuild plugin needs: the
// EngineRequest it's re-exposing, and the assets the Assets phase
// accumulates across (possibly concurrent) OnLoad callbacks.
type bridge struct {
	req    bundler.EngineRequest
	target api.Target

	mu     sync.Mutex
	assets []graph.EmittedAsset
	loaded []graph.ModuleId
}

func (b *bridge) entryPoints() ([]api.EntryPoint, error) {
	ids := b.req.Graph.Entries()
	out := make([]api.EntryPoint, 0, len(ids))
	for i, e := range b.req.Config.Entries {
		var id graph.ModuleId
		if e.Inline != "" {
			id = graph.NewVirtualModuleId(e.OutputName)
		} else {
			canonical, err := b.req.Runtime.Resolve(e.Path)
			if err != nil {
				return nil, fmt.Errorf("esbuildengine: resolving entry %q: %w", e.Path, err)
			}
			id = graph.NewPathModuleId(canonical)
		}
		if !b.req.Graph.Has(id) {
			return nil, fmt.Errorf("esbuildengine: entry %q not present in the built graph", e.Path)
		}
		outName := e.OutputName
		if outName == "" {
			outName = basenameNoExt(e.Path)
			if outName == "" {
				outName = fmt.Sprintf("entry%d", i)
			}
		}
		out = append(out, api.EntryPoint{InputPath: string(id), OutputPath: outName})
	}
	return out, nil
}

func (b *bridge) setup(build api.PluginBuild) {
	build.OnResolve(api.OnResolveOptions{Filter: ".*"}, b.onResolve)
	build.OnLoad(api.OnLoadOptions{Filter: ".*", Namespace: moduleNamespace}, b.onLoad)
}

// onResolve maps an esbuild resolve request back onto the already-built
// module graph: entry points and any path we've already handed out as a
// resolved Path are recognized immediately; everything else is looked up
// on the importer's precomputed ImportEdge, with a chance for a
// registered Resolve-phase plugin to override first.
func (b *bridge) onResolve(args api.OnResolveArgs) (api.OnResolveResult, error) {
	id := graph.ModuleId(args.Path)
	if b.req.Graph.Has(id) {
		return api.OnResolveResult{Path: args.Path, Namespace: moduleNamespace}, nil
	}

	if args.Importer == "" {
		return api.OnResolveResult{}, fmt.Errorf("esbuildengine: unresolvable entry point %q", args.Path)
	}

	if b.req.Plugins != nil {
		importerDir := path.Dir(args.Importer)
		for _, p := range b.req.Plugins.InPhase(plugin.ResolvePhase) {
			rp, ok := p.(plugin.Resolver)
			if !ok {
				continue
			}
			if res, ok := rp.OnResolve(args.Path, importerDir); ok {
				return resolutionResult(res)
			}
		}
	}

	importerId := graph.ModuleId(args.Importer)
	m, ok := b.req.Graph.Get(importerId)
	if !ok {
		return api.OnResolveResult{}, fmt.Errorf("esbuildengine: unknown importer %q", args.Importer)
	}
	for _, edge := range m.Imports {
		if edge.Specifier != args.Path {
			continue
		}
		return resolutionResult(edge.Resolution)
	}
	return api.OnResolveResult{}, fmt.Errorf("esbuildengine: %q has no recorded edge for specifier %q", args.Importer, args.Path)
}

func resolutionResult(res graph.Resolution) (api.OnResolveResult, error) {
	switch {
	case res.IsResolved():
		return api.OnResolveResult{Path: string(res.Target), Namespace: moduleNamespace}, nil
	case res.IsExternal():
		return api.OnResolveResult{Path: res.ExternalName, External: true}, nil
	default:
		return api.OnResolveResult{}, fmt.Errorf("esbuildengine: unresolved import (%s)", res.UnresolvedReason)
	}
}

// onLoad reads a module's source, runs it through the Transform and
// Assets phases in registration order, and hands the result to esbuild
// with the loader its original SourceType implies.
func (b *bridge) onLoad(args api.OnLoadArgs) (api.OnLoadResult, error) {
	id := graph.ModuleId(args.Path)
	m, ok := b.req.Graph.Get(id)
	if !ok {
		return api.OnLoadResult{}, fmt.Errorf("esbuildengine: %q not present in the built graph", args.Path)
	}

	content, err := b.loadSource(id)
	if err != nil {
		return api.OnLoadResult{}, err
	}

	b.mu.Lock()
	b.loaded = append(b.loaded, id)
	b.mu.Unlock()

	if b.req.Plugins != nil {
		for _, p := range b.req.Plugins.InPhase(plugin.TransformPhase) {
			tp, ok := p.(plugin.Transformer)
			if !ok {
				continue
			}
			transformed, ok := tp.OnTransform(id, content)
			if !ok {
				if er, ok := p.(plugin.ErrorReporter); ok {
					if lastErr := er.LastError(); lastErr != nil {
						return api.OnLoadResult{}, lastErr
					}
				}
				continue
			}
			content = transformed
		}

		for _, p := range b.req.Plugins.InPhase(plugin.AssetsPhase) {
			ap, ok := p.(plugin.AssetEmitter)
			if !ok {
				continue
			}
			if asset, ok := ap.OnEmitAsset(id, content); ok && asset != nil {
				b.mu.Lock()
				b.assets = append(b.assets, *asset)
				b.mu.Unlock()
			}
		}
	}

	contents := string(content)
	return api.OnLoadResult{Contents: &contents, Loader: loaderOf(m.SourceType)}, nil
}

func (b *bridge) loadSource(id graph.ModuleId) ([]byte, error) {
	if id.IsVirtual() {
		if content, ok := b.req.Config.VirtualFiles[string(id)]; ok {
			return []byte(content), nil
		}
		if b.req.Plugins != nil {
			for _, p := range b.req.Plugins.InPhase(plugin.VirtualPhase) {
				lp, ok := p.(plugin.Loader)
				if !ok {
					continue
				}
				if content, ok := lp.OnLoad(id); ok {
					return content, nil
				}
			}
		}
		return nil, fmt.Errorf("esbuildengine: no Virtual-phase plugin served %q", id)
	}
	return b.req.Runtime.ReadFile(string(id))
}

// toChunk classifies one esbuild OutputFile as an EntryChunk or
// SharedChunk and carries its recorded sourcemap sibling, if esbuild
// wrote one alongside it. esbuild's metafile would let us also tell
// dynamic-import-only (Async) chunks apart from statically-shared ones,
// but api.Build's plain OutputFiles result doesn't carry that
// distinction on its own, so AsyncChunk is never produced here; every
// non-entry output is SharedChunk.
func (b *bridge) toChunk(f api.OutputFile, all []api.OutputFile) graph.Chunk {
	kind := graph.SharedChunk
	base := path.Base(f.Path)
	if !strings.HasPrefix(base, chunkNamePrefix) {
		kind = graph.EntryChunk
	}

	var sourceMap string
	for _, other := range all {
		if other.Path == f.Path+".map" {
			sourceMap = string(other.Contents)
			break
		}
	}

	return graph.Chunk{
		Id:        base,
		Kind:      kind,
		Filename:  base,
		Code:      string(f.Contents),
		SourceMap: sourceMap,
		SizeBytes: int64(len(f.Contents)),
	}
}

func stripSourceMappingComment(code string) string {
	i := strings.LastIndex(code, "//# sourceMappingURL=")
	if i < 0 {
		return code
	}
	end := strings.IndexByte(code[i:], '\n')
	if end < 0 {
		return strings.TrimRight(code[:i], "\n")
	}
	return code[:i] + code[i+end+1:]
}

func basenameNoExt(p string) string {
	base := path.Base(p)
	if i := strings.LastIndexByte(base, '.'); i > 0 {
		base = base[:i]
	}
	return base
}

func formatOf(f graph.OutputFormat) api.Format {
	switch f {
	case graph.Cjs:
		return api.FormatCommonJS
	case graph.Iife:
		return api.FormatIIFE
	default:
		return api.FormatESModule
	}
}

func platformOf(targetName string) api.Platform {
	if targetName == "vercel-node" {
		return api.PlatformNode
	}
	return api.PlatformBrowser
}

func sourceMapOf(m graph.SourceMapMode) api.SourceMap {
	switch m {
	case graph.SourceMapInline:
		return api.SourceMapInline
	case graph.SourceMapExternal, graph.SourceMapHidden:
		return api.SourceMapExternal
	default:
		return api.SourceMapNone
	}
}

func loaderOf(t graph.SourceType) api.Loader {
	switch t {
	case graph.Css:
		return api.LoaderCSS
	case graph.Json:
		return api.LoaderJSON
	default:
		return api.LoaderJS
	}
}
