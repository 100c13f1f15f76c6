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

// Package resolver implements fob's specifier resolution algorithm (spec
// §4.2): virtual files, path aliases, externals, relative imports with
// extension probing, bare-specifier node_modules/package.json lookup, and
// the node-builtins-per-target rule. Resolution never touches a
// filesystem directly; every read goes through a runtime.Runtime.
package resolver

import (
	"path"
	"strings"

	"github.com/foxworth-uni/fob/graph"
	"github.com/foxworth-uni/fob/runtime"
)

// permittedExtensions is the fixed probe order for extension-less relative
// imports (spec §4.2 step 4). Earlier entries win ties.
var permittedExtensions = []string{".ts", ".tsx", ".jsx", ".js", ".mjs", ".cjs", ".mdx", ".css", ".json"}

// Options carries the per-build inputs the algorithm needs beyond the
// specifier and importer (spec §4.2's "active ExportConditions + aliases +
// externals").
type Options struct {
	Aliases        map[string]string // prefix -> replacement, e.g. "@/" -> "./src/"
	Externals      []string          // exact, prefix (ending '/'), or glob patterns
	VirtualFiles   map[string]string // virtual:<name> -> content, registered ahead of build
	Conditions     []string          // fixed order, e.g. ["browser", "import", "default"]
	MainFields     []string          // fallback order, e.g. ["module", "main"]
	NodeBuiltins   NodeBuiltinsPolicy
}

// NodeBuiltinsPolicy decides how `node:`-prefixed and bare Node builtin
// specifiers resolve for the active deployment target (spec §4.2 step 6).
type NodeBuiltinsPolicy int

const (
	// BuiltinsExternal treats every Node builtin as an External (Node,
	// SSR, serverless targets).
	BuiltinsExternal NodeBuiltinsPolicy = iota
	// BuiltinsUnresolved rejects Node builtins outright (Browser/Worker
	// targets with no explicit polyfill registered).
	BuiltinsUnresolved
	// BuiltinsPolyfill redirects a builtin to a registered virtual
	// polyfill module ("virtual:polyfill:<name>"), falling back to
	// BuiltinsUnresolved if none was registered.
	BuiltinsPolyfill
)

// Resolver resolves import specifiers against a runtime.Runtime.
type Resolver struct {
	rt   runtime.Runtime
	opts Options
}

// New creates a Resolver bound to rt with the given Options.
func New(rt runtime.Runtime, opts Options) *Resolver {
	return &Resolver{rt: rt, opts: opts}
}

// Resolve implements the six-step algorithm of spec §4.2. importerDir is
// the directory (not file) the importer lives in, already canonicalized.
func (r *Resolver) Resolve(specifier, importerDir string) graph.Resolution {
	spec := specifier

	// Absolute URL specifiers (fetch-backed workspaces resolving straight
	// off a CDN) bypass the alias/external/relative machinery entirely:
	// the URL itself is the canonical module identity.
	if href, ok := parseAbsoluteURL(spec); ok {
		return graph.Resolved(graph.NewPathModuleId(href))
	}

	// Step 1: virtual files.
	if strings.HasPrefix(spec, "virtual:") {
		if _, ok := r.opts.VirtualFiles[spec]; ok {
			return graph.Resolved(graph.NewVirtualModuleId(spec))
		}
		return graph.Unresolved("virtual specifier not registered: " + spec)
	}

	// Step 2: path aliases (longest-prefix wins), then restart from step 3
	// against the rewritten specifier.
	if rewritten, matched := rewriteAlias(spec, r.opts.Aliases); matched {
		spec = rewritten
	}

	// Step 3: externals.
	if matchesExternal(spec, r.opts.Externals) {
		return graph.External(spec)
	}

	// Step 6 (checked before step 5's node_modules walk, since builtins
	// never live in node_modules): Node builtins.
	if isNodeBuiltin(spec) {
		switch r.opts.NodeBuiltins {
		case BuiltinsExternal:
			return graph.External(spec)
		case BuiltinsPolyfill:
			polyfillID := "virtual:polyfill:" + strings.TrimPrefix(spec, "node:")
			if _, ok := r.opts.VirtualFiles[polyfillID]; ok {
				return graph.Resolved(graph.NewVirtualModuleId(polyfillID))
			}
			return graph.Unresolved("no polyfill registered for: " + spec)
		default:
			return graph.Unresolved("not available in browser: " + spec)
		}
	}

	// Step 4: relative imports.
	if strings.HasPrefix(spec, "./") || strings.HasPrefix(spec, "../") {
		target, ok := r.resolveRelative(importerDir, spec)
		if !ok {
			return graph.Unresolved("no matching file for relative import: " + spec)
		}
		return graph.Resolved(graph.NewPathModuleId(target))
	}

	// Step 5: bare specifier, node_modules walk.
	target, ok := r.resolveBare(importerDir, spec)
	if !ok {
		return graph.Unresolved("could not resolve bare specifier: " + spec)
	}
	return graph.Resolved(graph.NewPathModuleId(target))
}

func (r *Resolver) resolveRelative(importerDir, spec string) (string, bool) {
	base := path.Join(importerDir, spec)

	// Use the specifier as-is when it already carries a permitted extension
	// and exists; otherwise try each permitted extension appended.
	if hasPermittedExt(base) && r.rt.Exists(base) {
		return base, true
	}
	for _, ext := range permittedExtensions {
		candidate := base + ext
		if r.rt.Exists(candidate) {
			return candidate, true
		}
	}
	for _, ext := range permittedExtensions {
		candidate := path.Join(base, "index"+ext)
		if r.rt.Exists(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func hasPermittedExt(p string) bool {
	for _, ext := range permittedExtensions {
		if strings.HasSuffix(p, ext) {
			return true
		}
	}
	return false
}
