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

// Package bundler implements fob's orchestrator (spec §4.6): the seven
// steps validate -> derive -> register plugins -> build graph -> hand off
// to the bundling engine -> post-process -> assemble, grounded on
// generate/session_core.go and generate/generate.go's phased-session
// structure (preprocess -> process -> postprocess, each checked against
// context cancellation between phases).
package bundler

import (
	"context"

	"github.com/foxworth-uni/fob/ferrors"
	"github.com/foxworth-uni/fob/framework"
	"github.com/foxworth-uni/fob/graph"
	"github.com/foxworth-uni/fob/graph/builder"
	"github.com/foxworth-uni/fob/plugin"
	"github.com/foxworth-uni/fob/resolver"
	"github.com/foxworth-uni/fob/runtime"
	"github.com/foxworth-uni/fob/target"
	"github.com/foxworth-uni/fob/tsquery"
)

// Options carries everything a Bundler needs beyond the BuildConfig a
// particular Build call supplies.
type Options struct {
	Runtime        runtime.Runtime
	Queries        *tsquery.QueryManager
	FrameworkRules []framework.FrameworkRule
	Limits         builder.Limits
	ProjectRoot    string
	Concurrency    target.ConcurrencyHints
	Plugins        *plugin.Registry
	Engine         Engine
}

// Bundler runs one orchestration per Build call; like graph/builder's
// Builder, it holds no mutable state between calls.
type Bundler struct {
	opts Options
}

// New creates a Bundler bound to opts.
func New(opts Options) *Bundler {
	return &Bundler{opts: opts}
}

// Build runs all seven steps of spec §4.6 for one BuildConfig. A non-nil
// *ferrors.MultiError whose Primary is fatal means the build produced no
// usable BuildResult; a non-nil result returned alongside a non-nil error
// means the error carries only non-fatal per-module diagnostics folded
// into result.Diagnostics as well, for callers that only look at one of
// the two return values. The exception is a failed step-7 disk write: the
// result is then returned with an error that holds the builder
// diagnostics plus a runtime error for the write, and that runtime error
// is not added to result.Diagnostics.
func (b *Bundler) Build(ctx context.Context, cfg graph.BuildConfig) (graph.BuildResult, *ferrors.MultiError) {
	// Step 1: validate.
	if verrs := Validate(cfg); verrs != nil {
		return graph.BuildResult{}, verrs
	}

	// Step 2: derive.
	tgt, err := deriveTarget(cfg)
	if err != nil {
		return graph.BuildResult{}, ferrors.NewMultiError([]*ferrors.Error{
			ferrors.NewValidationKind("platform_target_conflict", err.Error()),
		})
	}
	resolverOpts := deriveResolverOptions(cfg, tgt)
	rslv := resolver.New(b.opts.Runtime, resolverOpts)

	// Step 3: plugins are registered by the embedder ahead of Build;
	// plugin.Registry already sorts by phase and preserves registration
	// order within a phase (All/InPhase), so there is nothing further to
	// do here beyond handing the Registry to the engine in step 5.

	// Step 4: build graph.
	entries := make([]builder.Entry, len(cfg.Entries))
	for i, e := range cfg.Entries {
		entries[i] = builder.Entry{
			Path:       e.Path,
			Inline:     e.Inline,
			OutputName: e.OutputName,
			LoaderHint: e.LoaderHint,
		}
	}
	bld := builder.New(builder.Options{
		Runtime:        b.opts.Runtime,
		Resolver:       rslv,
		ResolverOpts:   resolverOpts,
		Queries:        b.opts.Queries,
		FrameworkRules: b.opts.FrameworkRules,
		Limits:         b.opts.Limits,
		ProjectRoot:    b.opts.ProjectRoot,
		Concurrency:    b.opts.Concurrency,
	})
	g, buildErrs := bld.Build(ctx, entries)
	if buildErrs != nil && buildErrs.Primary != nil && buildErrs.Primary.Type.Fatal() {
		return graph.BuildResult{}, buildErrs
	}

	// Step 5: hand off to the bundling engine.
	result, err := b.opts.Engine.Build(ctx, EngineRequest{
		Graph:    g,
		Config:   cfg,
		Target:   tgt,
		Resolver: rslv,
		Runtime:  b.opts.Runtime,
		Plugins:  b.opts.Plugins,
	})
	if err != nil {
		engineErr := ferrors.NewRuntime(err.Error())
		all := []*ferrors.Error{engineErr}
		if buildErrs != nil {
			all = append(all, buildErrs.All()...)
		}
		return graph.BuildResult{}, ferrors.NewMultiError(all)
	}

	if buildErrs != nil {
		for _, e := range buildErrs.All() {
			result.Diagnostics = append(result.Diagnostics, graph.Diagnostic{
				Severity: graph.SeverityWarning,
				Type:     string(e.Type),
				Message:  e.Message,
			})
		}
	}

	// Step 6: post-process.
	if b.opts.Plugins != nil {
		for _, p := range b.opts.Plugins.InPhase(plugin.PostProcessPhase) {
			if f, ok := p.(plugin.Finalizer); ok {
				result = f.OnFinalize(&result)
			}
		}
	}

	// Step 7: assemble + write. Manifest/Stats assembly happens inside
	// step 6's PostProcess pass (plugin/collect, registered by the
	// embedder like any other plugin) so a custom PostProcess Finalizer
	// can see and adjust the same Chunks/Assets before Manifest/Stats are
	// derived from them; this step only covers the final disk write.
	if cfg.Outfile != "" || cfg.OutDir != "" {
		if err := writeChunks(cfg, result.Chunks); err != nil {
			writeErr := ferrors.NewRuntime(err.Error())
			var all []*ferrors.Error
			if buildErrs != nil {
				all = buildErrs.All()
			}
			all = append(all, writeErr)
			return result, ferrors.NewMultiError(all)
		}
		if err := writeManifest(cfg, result.Manifest); err != nil {
			writeErr := ferrors.NewRuntime(err.Error())
			var all []*ferrors.Error
			if buildErrs != nil {
				all = buildErrs.All()
			}
			all = append(all, writeErr)
			return result, ferrors.NewMultiError(all)
		}
	}

	if buildErrs == nil {
		return result, nil
	}
	return result, buildErrs
}
