package collect_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/foxworth-uni/fob/graph"
	"github.com/foxworth-uni/fob/plugin/collect"
)

func TestOnFinalize_BuildsManifestAndStats(t *testing.T) {
	p := collect.New()

	result := &graph.BuildResult{
		Chunks: []graph.Chunk{
			{
				Id:        "chunk-entry",
				Kind:      graph.EntryChunk,
				Filename:  "index.js",
				SizeBytes: 100,
				Modules:   []graph.ModuleId{graph.NewPathModuleId("src/index.ts")},
			},
			{
				Id:        "chunk-shared",
				Kind:      graph.SharedChunk,
				Filename:  "shared.js",
				SizeBytes: 50,
				Modules:   []graph.ModuleId{graph.NewPathModuleId("src/shared.ts")},
			},
		},
		Assets: []graph.EmittedAsset{
			{PublicPath: "assets/logo.svg", SizeBytes: 20},
		},
		Stats: graph.Stats{Duration: 5 * time.Millisecond, CacheHitRate: 0.5},
	}

	out := p.OnFinalize(result)

	assert.Equal(t, 1, out.Manifest.Version)
	assert.Len(t, out.Manifest.Entries, 1)
	assert.Equal(t, "chunk-entry", out.Manifest.Entries[0].ChunkId)
	assert.Len(t, out.Manifest.Chunks, 2)

	assert.Equal(t, 2, out.Stats.ModuleCount)
	assert.Equal(t, 2, out.Stats.ChunkCount)
	assert.Equal(t, int64(170), out.Stats.TotalBytes)
	assert.Equal(t, 5*time.Millisecond, out.Stats.Duration)
	assert.Equal(t, 0.5, out.Stats.CacheHitRate)
}
