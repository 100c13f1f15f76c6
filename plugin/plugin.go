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

// Package plugin implements fob's plugin pipeline (spec §4.7): five
// phases (Virtual, Resolve, Transform, Assets, PostProcess) run in that
// fixed order; within a phase, registration order is preserved. A plugin
// implements whichever hook interfaces it needs — Resolver, Loader,
// Transformer, AssetEmitter, Finalizer — nothing requires implementing
// all five.
package plugin

import "github.com/foxworth-uni/fob/graph"

// Phase is one of the five fixed pipeline stages, in run order.
type Phase int

const (
	VirtualPhase Phase = iota
	ResolvePhase
	TransformPhase
	AssetsPhase
	PostProcessPhase
)

func (p Phase) String() string {
	switch p {
	case VirtualPhase:
		return "virtual"
	case ResolvePhase:
		return "resolve"
	case TransformPhase:
		return "transform"
	case AssetsPhase:
		return "assets"
	case PostProcessPhase:
		return "postprocess"
	default:
		return "unknown"
	}
}

// Plugin is the minimal contract every plugin satisfies: a stable name
// for diagnostics and registry lookups, and the single phase it belongs
// to. A plugin additionally implements whichever hook interface below
// matches what it does; the pipeline type-asserts for each at dispatch
// time (spec §4.7: "a plugin exposes any subset of these hooks").
type Plugin interface {
	Name() string
	Phase() Phase
}

// Resolver plugins may short-circuit the ordinary specifier resolution
// (phase Resolve). Returning ok == false means "not my specifier";
// the ordinary resolver.Resolver handles it instead.
type Resolver interface {
	OnResolve(spec, importerDir string) (res graph.Resolution, ok bool)
}

// Loader plugins may synthesize file contents for a ModuleId that has no
// backing file (phase Virtual).
type Loader interface {
	OnLoad(id graph.ModuleId) (source []byte, ok bool)
}

// Transformer plugins may rewrite a module's source (phase Transform). A
// plugin that does not recognize the module MUST return ok == false
// ("unchanged"), not an error — per spec §4.7's ordering contract, every
// Transform plugin sees the previous plugin's output in registration
// order.
type Transformer interface {
	OnTransform(id graph.ModuleId, source []byte) (transformed []byte, ok bool)
}

// AssetEmitter plugins may register a non-code asset discovered in a
// module's (already-transformed) output (phase Assets).
type AssetEmitter interface {
	OnEmitAsset(id graph.ModuleId, data []byte) (asset *graph.EmittedAsset, ok bool)
}

// Finalizer plugins may patch the final BuildResult after the engine has
// produced chunks (phase PostProcess).
type Finalizer interface {
	OnFinalize(result *graph.BuildResult) graph.BuildResult
}

// ErrorReporter is an optional extra a Transformer may implement: spec
// §4.7's on_transform is Option<Source>-only, with no error channel, so a
// plugin that wants to surface a structured diagnostic on a failed
// transform (MDXSyntax, Transform) records it here for the bundler to
// read immediately after an OnTransform call returns ok == false.
type ErrorReporter interface {
	LastError() error
}
