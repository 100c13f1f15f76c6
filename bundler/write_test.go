package bundler

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/foxworth-uni/fob/graph"
)

func TestWriteManifest_RoundTripsThroughDisk(t *testing.T) {
	dir := t.TempDir()
	cfg := graph.BuildConfig{OutDir: dir}
	want := graph.Manifest{
		Version: 1,
		Entries: []graph.ManifestEntry{{EntryPoint: "src/index.ts", ChunkId: "chunk-a"}},
		Chunks: []graph.ChunkMetadata{
			{Id: "chunk-a", Filename: "chunk-a.js", Kind: graph.EntryChunk, SizeBytes: 42, Modules: []graph.ModuleId{"src/index.ts"}},
		},
	}

	require.NoError(t, writeManifest(cfg, want))

	raw, err := os.ReadFile(filepath.Join(dir, "manifest.json"))
	require.NoError(t, err)

	var got graph.Manifest
	require.NoError(t, json.Unmarshal(raw, &got))

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("manifest round-trip mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteManifest_SkipsWhenNoOutDir(t *testing.T) {
	require.NoError(t, writeManifest(graph.BuildConfig{}, graph.Manifest{Version: 1}))
}
