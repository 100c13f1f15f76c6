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

// Package analyzer implements the read-only query layer over a built
// ModuleGraph (spec §4.4): a typestate façade that only exposes Analyze
// once at least one entry is configured, plus the derived queries
// (UnusedExports, FindCircularDependencies, Statistics,
// DependencyChainsTo) computed against the resulting Analysis.
package analyzer

import (
	"context"
	"time"

	"github.com/foxworth-uni/fob/ferrors"
	"github.com/foxworth-uni/fob/graph/builder"
	"github.com/foxworth-uni/fob/resolver"
	"github.com/foxworth-uni/fob/runtime"
	"github.com/foxworth-uni/fob/target"
	"github.com/foxworth-uni/fob/tsquery"
)

// Unconfigured is an Analyzer with no entry yet; it has no Analyze method,
// so "entry is required" is a compile-time property rather than a runtime
// check (spec §4.4, redesign flag on the typestate builder).
type Unconfigured struct {
	rt      runtime.Runtime
	queries *tsquery.QueryManager
	target  target.DeploymentTarget
	hints   target.ConcurrencyHints
	root    string
}

// New starts an Unconfigured analyzer bound to the given runtime, compiled
// queries, deployment target, and project root.
func New(rt runtime.Runtime, qm *tsquery.QueryManager, dt target.DeploymentTarget, projectRoot string) *Unconfigured {
	return &Unconfigured{
		rt:      rt,
		queries: qm,
		target:  dt,
		hints:   target.ResolveConcurrencyHints(),
		root:    projectRoot,
	}
}

// WithConcurrency overrides the default concurrency hints (normally
// derived from the deployment environment).
func (u *Unconfigured) WithConcurrency(hints target.ConcurrencyHints) *Unconfigured {
	u.hints = hints
	return u
}

// WithEntry adds one or more entries, deduplicated by Path/OutputName, and
// returns the Configured analyzer that exposes Analyze. Once Configured,
// further WithEntry calls keep returning Configured (entries only grow).
func (u *Unconfigured) WithEntry(entries ...builder.Entry) *Configured {
	c := &Configured{Unconfigured: *u, entries: make(map[string]builder.Entry)}
	return c.WithEntry(entries...)
}

// Configured is an Analyzer with at least one entry; only this state
// exposes Analyze.
type Configured struct {
	Unconfigured
	entries map[string]builder.Entry // keyed by Path, or OutputName for inline entries
	cfg     Config
}

// WithEntry adds more entries, deduplicated by key (set-based per spec).
func (c *Configured) WithEntry(entries ...builder.Entry) *Configured {
	for _, e := range entries {
		key := e.Path
		if key == "" {
			key = e.OutputName
		}
		c.entries[key] = e
	}
	return c
}

// WithConfig attaches externals/aliases/limits/framework-rules/usage-flag.
func (c *Configured) WithConfig(cfg Config) *Configured {
	c.cfg = cfg
	return c
}

// Analyze builds the module graph from the configured entries and wraps it
// in an immutable Analysis. Fatal build errors (LimitExceeded, Validation,
// Cancelled) are returned as-is; a partial graph accompanied only by
// secondary errors is still wrapped and returned alongside those errors.
func (c *Configured) Analyze(ctx context.Context) (*Analysis, *ferrors.MultiError) {
	metrics := c.cfg.metricsOrDefault()
	start := time.Now()
	metrics.IncrementCounter("analyze_calls")
	defer func() { metrics.RecordDuration("analyze_duration", time.Since(start)) }()

	resolved := c.target.Resolve()
	ropts := resolver.Options{
		Aliases:      c.cfg.Aliases,
		Externals:    c.cfg.Externals,
		Conditions:   resolved.ExportConditions,
		MainFields:   resolved.MainFields,
		NodeBuiltins: resolved.NodeBuiltins,
	}
	res := resolver.New(c.rt, ropts)

	limits := c.cfg.Limits
	if limits == (builder.Limits{}) {
		limits = builder.DefaultLimits()
	}

	b := builder.New(builder.Options{
		Runtime:        c.rt,
		Resolver:       res,
		ResolverOpts:   ropts,
		Queries:        c.queries,
		FrameworkRules: c.cfg.FrameworkRules,
		Limits:         limits,
		ProjectRoot:    c.root,
		Concurrency:    c.hints,
	})

	entries := make([]builder.Entry, 0, len(c.entries))
	for _, e := range c.entries {
		entries = append(entries, e)
	}

	g, buildErr := b.Build(ctx, entries)
	metrics.SetGauge("modules_scanned", int64(g.Len()))

	return newAnalysis(g, c.cfg.ComputeUsage), buildErr
}
