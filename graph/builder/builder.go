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

package builder

import (
	"context"
	"path"
	"strings"
	"sync"

	"github.com/sourcegraph/conc/pool"
	"golang.org/x/sync/errgroup"

	"github.com/foxworth-uni/fob/ferrors"
	"github.com/foxworth-uni/fob/framework"
	"github.com/foxworth-uni/fob/graph"
	"github.com/foxworth-uni/fob/resolver"
	"github.com/foxworth-uni/fob/tsquery"
)

// Builder runs one breadth-first traversal per Build call; it holds no
// mutable state between calls, so one Builder can be reused across builds.
type Builder struct {
	opts Options
}

// New creates a Builder bound to opts.
func New(opts Options) *Builder {
	return &Builder{opts: opts}
}

// processResult is what processing a single job yields: the Module to
// insert (for a container, a module whose side-effect edges point at its
// extracted units), and the next-level jobs discovered from its resolved
// imports.
type processResult struct {
	module *graph.Module
	next   []job
}

// Build runs the BFS traversal from entries to a finished ModuleGraph.
// The returned *ferrors.MultiError is nil on a clean build; a non-nil
// result may still carry a usable (partial) graph alongside per-module
// errors, unless its Primary is fatal, in which case the graph reflects
// whatever was inserted before the abort.
func (b *Builder) Build(ctx context.Context, entries []Entry) (*graph.ModuleGraph, *ferrors.MultiError) {
	g := graph.NewModuleGraph()

	eg, egctx := errgroup.WithContext(ctx)

	var (
		mu          sync.Mutex
		seen        = make(map[graph.ModuleId]struct{})
		fatalErr    *ferrors.Error
		secondary   []*ferrors.Error
		moduleCount int
	)

	abort := func(e *ferrors.Error) {
		mu.Lock()
		if fatalErr == nil {
			fatalErr = e
		}
		mu.Unlock()
		eg.Go(func() error { return e })
	}

	recordSecondary := func(e *ferrors.Error) {
		mu.Lock()
		secondary = append(secondary, e)
		mu.Unlock()
	}

	stillGoing := func() bool {
		mu.Lock()
		defer mu.Unlock()
		return fatalErr == nil
	}

	frontier := make([]job, 0, len(entries))
	for _, e := range entries {
		j, id, ok := b.entryJob(e)
		if !ok {
			recordSecondary(ferrors.NewInvalidEntry(e.Path))
			continue
		}
		if _, dup := seen[id]; !dup {
			seen[id] = struct{}{}
			frontier = append(frontier, j)
		}
	}

	if len(frontier) == 0 && fatalErr == nil && len(secondary) == 0 {
		fatalErr = ferrors.NewNoEntries()
	}

	depth := 0
	for len(frontier) > 0 && stillGoing() {
		if depth > b.opts.Limits.MaxDepth {
			abort(ferrors.NewLimitExceeded("max_depth", int64(b.opts.Limits.MaxDepth), int64(depth)))
			break
		}

		mu.Lock()
		moduleCount += len(frontier)
		overflow := moduleCount > b.opts.Limits.MaxModules
		mu.Unlock()
		if overflow {
			abort(ferrors.NewLimitExceeded("max_modules", int64(b.opts.Limits.MaxModules), int64(moduleCount)))
			break
		}

		maxWorkers := b.opts.Concurrency.MaxWorkers
		if maxWorkers < 1 {
			maxWorkers = 1
		}
		p := pool.New().WithMaxGoroutines(maxWorkers).WithErrors().WithContext(egctx).WithCancelOnError()

		var nextMu sync.Mutex
		var next []job

		for _, j := range frontier {
			j := j
			p.Go(func(pctx context.Context) error {
				select {
				case <-pctx.Done():
					return pctx.Err()
				default:
				}

				result, procErr := b.process(j)
				if procErr != nil {
					if procErr.Type.Fatal() {
						return procErr
					}
					recordSecondary(procErr)
					return nil
				}

				if result.module != nil {
					if err := g.Insert(result.module); err != nil {
						recordSecondary(ferrors.NewRuntime(err.Error()))
					}
				}

				if len(result.next) == 0 {
					return nil
				}

				mu.Lock()
				fresh := make([]job, 0, len(result.next))
				for _, nj := range result.next {
					if _, dup := seen[nj.id]; !dup {
						seen[nj.id] = struct{}{}
						fresh = append(fresh, nj)
					}
				}
				mu.Unlock()

				if len(fresh) > 0 {
					nextMu.Lock()
					next = append(next, fresh...)
					nextMu.Unlock()
				}
				return nil
			})
		}

		if err := p.Wait(); err != nil {
			if fe, ok := ferrors.As(err); ok {
				abort(fe)
			} else {
				abort(ferrors.NewRuntime(err.Error()))
			}
			break
		}

		frontier = next
		depth++
	}

	_ = eg.Wait()

	if fatalErr == nil && len(secondary) == 0 {
		return g, nil
	}

	all := secondary
	if fatalErr != nil {
		all = append([]*ferrors.Error{fatalErr}, all...)
	}
	return g, ferrors.NewMultiError(all)
}

func (b *Builder) entryJob(e Entry) (job, graph.ModuleId, bool) {
	if e.Inline != "" {
		id := graph.NewVirtualModuleId(e.OutputName)
		return job{
			id:          id,
			depth:       0,
			inline:      []byte(e.Inline),
			hasInline:   true,
			loaderHint:  e.LoaderHint,
			isEntry:     true,
			importerDir: b.opts.ProjectRoot,
		}, id, true
	}

	canonical, err := b.opts.Runtime.Resolve(e.Path)
	if err != nil {
		return job{}, "", false
	}
	id := graph.NewPathModuleId(canonical)
	return job{
		id:          id,
		depth:       0,
		path:        canonical,
		isEntry:     true,
		importerDir: path.Dir(canonical),
	}, id, true
}

func (b *Builder) process(j job) (*processResult, *ferrors.Error) {
	var content []byte

	if j.hasInline {
		content = j.inline
	} else {
		if !j.id.IsVirtual() {
			allowed := strings.HasPrefix(j.path, b.opts.ProjectRoot) ||
				resolver.MatchesAlias(j.path, b.opts.ResolverOpts.Aliases)
			if !allowed {
				return nil, ferrors.NewRuntime("path escapes project root: " + j.path)
			}
		}

		info, err := b.opts.Runtime.Metadata(j.path)
		if err != nil {
			return nil, ferrors.NewInvalidEntry(j.path)
		}
		if info.Size() > b.opts.Limits.MaxFileSizeBytes {
			return nil, ferrors.NewLimitExceeded("max_file_size", b.opts.Limits.MaxFileSizeBytes, info.Size())
		}

		content, err = b.opts.Runtime.ReadFile(j.path)
		if err != nil {
			return nil, ferrors.NewInvalidEntry(j.path)
		}
	}

	kind := j.loaderHint
	if kind == graph.Unknown {
		kind = graph.SourceTypeFromExt(j.pathOrId())
	}

	for _, rule := range b.opts.FrameworkRules {
		if rule.Matches(j.pathOrId(), content) {
			return b.processContainer(j, rule, content, kind)
		}
	}

	return b.processSource(j, kind, content)
}

func (b *Builder) processContainer(j job, rule framework.FrameworkRule, content []byte, kind graph.SourceType) (*processResult, *ferrors.Error) {
	units, err := rule.Extract(j.pathOrId(), content)
	if err != nil {
		return nil, ferrors.NewRuntime(err.Error())
	}

	size := int64(len(content))
	mod := &graph.Module{Id: j.id, SourceType: kind, IsEntry: j.isEntry, Size: &size}

	var edges []graph.ImportEdge
	var next []job
	for _, u := range units {
		target := graph.NewVirtualModuleId(u.VirtualID)
		edges = append(edges, graph.ImportEdge{
			Kind:       graph.SideEffectImport,
			Specifier:  u.VirtualID,
			Resolution: graph.Resolved(target),
		})
		next = append(next, job{
			id:          target,
			depth:       j.depth + 1,
			inline:      u.Content,
			hasInline:   true,
			loaderHint:  u.SourceType,
			importerDir: j.importerDir,
		})
	}
	mod.Imports = edges

	return &processResult{module: mod, next: next}, nil
}

func (b *Builder) processSource(j job, kind graph.SourceType, content []byte) (*processResult, *ferrors.Error) {
	imports, err := tsquery.ExtractImports(b.opts.Queries, kind, content)
	if err != nil {
		return nil, ferrors.NewTransform(j.pathOrId(), []ferrors.TransformDiagnostic{
			{Message: err.Error(), Severity: "error"},
		})
	}
	exports, err := tsquery.ExtractExports(b.opts.Queries, kind, content)
	if err != nil {
		return nil, ferrors.NewTransform(j.pathOrId(), []ferrors.TransformDiagnostic{
			{Message: err.Error(), Severity: "error"},
		})
	}

	symbols := graph.NewSymbolTable()
	var graphExports []graph.Export
	for _, e := range exports {
		exportKind := graph.NamedExport
		if e.IsDefault {
			exportKind = graph.DefaultExport
		}
		graphExports = append(graphExports, graph.Export{Name: e.Name, Kind: exportKind, LocalBinding: e.Name})
		symbols.Declare(e.Name, graph.VarSymbol, 0)
	}

	importerDir := j.importerDir
	if importerDir == "" {
		importerDir = path.Dir(j.path)
	}

	var edges []graph.ImportEdge
	var next []job
	for _, ref := range imports {
		res := b.opts.Resolver.Resolve(ref.Specifier, importerDir)
		edgeKind := graph.StaticImport
		if ref.Kind == tsquery.DynamicImportRef {
			edgeKind = graph.DynamicImport
		}
		edges = append(edges, graph.ImportEdge{Kind: edgeKind, Specifier: ref.Specifier, Resolution: res})

		if !res.IsResolved() {
			continue
		}
		targetID, _ := res.Target()
		nj := job{id: targetID, depth: j.depth + 1}
		if targetID.IsVirtual() {
			if vcontent, ok := b.opts.ResolverOpts.VirtualFiles[string(targetID)]; ok {
				nj.inline = []byte(vcontent)
				nj.hasInline = true
			}
			nj.importerDir = importerDir
		} else {
			nj.path = string(targetID)
			nj.importerDir = path.Dir(string(targetID))
		}
		next = append(next, nj)
	}

	size := int64(len(content))
	mod := &graph.Module{
		Id:         j.id,
		SourceType: kind,
		IsEntry:    j.isEntry,
		Size:       &size,
		Imports:    edges,
		Exports:    graphExports,
		Symbols:    symbols,
	}

	return &processResult{module: mod, next: next}, nil
}
