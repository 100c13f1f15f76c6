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

package bundler

import (
	"context"

	"github.com/foxworth-uni/fob/graph"
	"github.com/foxworth-uni/fob/plugin"
	"github.com/foxworth-uni/fob/resolver"
	"github.com/foxworth-uni/fob/runtime"
	"github.com/foxworth-uni/fob/target"
)

// EngineRequest carries everything step 5 of spec §4.6 hands to the
// underlying bundling engine: the already-built module graph, the
// original build config (entry modes, optimization settings), the
// resolved deployment target, a Resolver for any specifier the engine's
// own resolution needs to re-derive, the Runtime to read module bytes
// from, and the plugin Registry so the engine can dispatch
// Resolve/Virtual/Transform/Assets hooks while it walks the graph in
// topological order.
type EngineRequest struct {
	Graph    *graph.ModuleGraph
	Config   graph.BuildConfig
	Target   target.Target
	Resolver *resolver.Resolver
	Runtime  runtime.Runtime
	Plugins  *plugin.Registry
}

// Engine is the bundling engine's contract (spec §4.6 step 5): for each
// module in topological order, request a possibly-transformed source via
// the Transform phase, detect assets via the Assets phase, and emit
// chunks according to the entry mode. Fob owns graph/resolve/transform/
// assets; the engine owns only final codegen and chunking, reached
// exclusively through this interface — the "underlying bundling engine"
// spec.md §1 leaves out of scope beyond its plugin contract.
type Engine interface {
	Build(ctx context.Context, req EngineRequest) (graph.BuildResult, error)
}
