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

// Package collect implements the built-in PostProcess-phase plugin that
// aggregates the engine's emitted Chunks and Assets into the build's final
// Manifest and Stats, the same result-aggregation step the teacher performs
// when it folds parallel per-file processing results into one Package
// (generate/session_core.go's postprocessWithContext).
package collect

import (
	"github.com/foxworth-uni/fob/graph"
	"github.com/foxworth-uni/fob/plugin"
)

// manifestVersion is bumped whenever Manifest's own shape changes,
// independent of the bundled code it describes.
const manifestVersion = 1

// Plugin fills in result.Manifest and result.Stats from result.Chunks and
// result.Assets; it never touches Diagnostics, which upstream phases own.
type Plugin struct{}

// New creates the manifest/stats collector plugin.
func New() *Plugin { return &Plugin{} }

func (p *Plugin) Name() string        { return "fob:collect" }
func (p *Plugin) Phase() plugin.Phase { return plugin.PostProcessPhase }

// OnFinalize implements plugin.Finalizer.
func (p *Plugin) OnFinalize(result *graph.BuildResult) graph.BuildResult {
	out := *result
	out.Manifest = buildManifest(result.Chunks)
	out.Stats = buildStats(result, out.Stats)
	return out
}

func buildManifest(chunks []graph.Chunk) graph.Manifest {
	m := graph.Manifest{Version: manifestVersion}
	for _, c := range chunks {
		m.Chunks = append(m.Chunks, graph.ChunkMetadata{
			Id:        c.Id,
			Filename:  c.Filename,
			Kind:      c.Kind,
			SizeBytes: c.SizeBytes,
			Modules:   c.Modules,
		})
		if c.Kind == graph.EntryChunk && len(c.Modules) > 0 {
			m.Entries = append(m.Entries, graph.ManifestEntry{
				EntryPoint: string(c.Modules[0]),
				ChunkId:    c.Id,
			})
		}
	}
	return m
}

func buildStats(result *graph.BuildResult, prior graph.Stats) graph.Stats {
	seen := make(map[graph.ModuleId]bool)
	var totalBytes int64
	for _, c := range result.Chunks {
		totalBytes += c.SizeBytes
		for _, id := range c.Modules {
			seen[id] = true
		}
	}
	for _, a := range result.Assets {
		totalBytes += a.SizeBytes
	}
	return graph.Stats{
		ModuleCount:  len(seen),
		ChunkCount:   len(result.Chunks),
		TotalBytes:   totalBytes,
		Duration:     prior.Duration,
		CacheHitRate: prior.CacheHitRate,
	}
}

var _ plugin.Finalizer = (*Plugin)(nil)
var _ plugin.Plugin = (*Plugin)(nil)
