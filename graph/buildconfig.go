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

// OutputFormat selects the module format the engine emits.
type OutputFormat int

const (
	Esm OutputFormat = iota
	Cjs
	Iife
)

func (f OutputFormat) String() string {
	switch f {
	case Cjs:
		return "cjs"
	case Iife:
		return "iife"
	default:
		return "esm"
	}
}

// SourceMapMode controls how (or whether) source maps are emitted.
type SourceMapMode int

const (
	SourceMapNone SourceMapMode = iota
	SourceMapInline
	SourceMapExternal
	SourceMapHidden
)

func (m SourceMapMode) String() string {
	switch m {
	case SourceMapInline:
		return "inline"
	case SourceMapExternal:
		return "external"
	case SourceMapHidden:
		return "hidden"
	default:
		return "none"
	}
}

// EntryMode controls whether chunks are shared across entries or isolated
// per entry (spec §4.6).
type EntryMode int

const (
	SharedEntryMode EntryMode = iota
	IsolatedEntryMode
)

func (m EntryMode) String() string {
	if m == IsolatedEntryMode {
		return "isolated"
	}
	return "shared"
}

// EntryPoint is either a path on the active Runtime, or inline content that
// must carry an OutputName (validated by bundler.Validate, never here —
// graph stays a pure data model).
type EntryPoint struct {
	Path        string
	Inline      string
	OutputName  string
	LoaderHint  SourceType
}

// ResolutionSettings carries everything the Resolver needs beyond the
// Runtime itself (spec §3, §4.2).
type ResolutionSettings struct {
	Aliases    map[string]string
	Externals  []string
	Conditions []string
	MainFields []string
}

// OptimizationSettings controls output shaping (spec §3).
type OptimizationSettings struct {
	Minify        bool
	SourceMap     SourceMapMode
	Splitting     bool
	TreeShaking   bool
	MinImports    int // shared-chunk threshold, default 2
	MinSizeBytes  int // shared-chunk threshold, default 20000
}

// DefaultOptimizationSettings mirrors spec §4.6's stated defaults.
func DefaultOptimizationSettings() OptimizationSettings {
	return OptimizationSettings{
		TreeShaking:  true,
		MinImports:   2,
		MinSizeBytes: 20000,
	}
}

// BuildConfig is the immutable record describing one build request (spec
// §3). It is produced by the config package and consumed by bundler.
type BuildConfig struct {
	Entries      []EntryPoint
	Outfile      string
	OutDir       string
	Format       OutputFormat
	Bundle       bool
	Platform     string // legacy bridge; see target package for the conflict rule
	Target       string // deployment target name, authoritative over Platform
	Resolution   ResolutionSettings
	Optimization OptimizationSettings
	VirtualFiles map[string]string
	Plugins      []string // plugin names, resolved against a PluginRegistry by bundler
	EntryMode    EntryMode
}
