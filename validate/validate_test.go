package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foxworth-uni/fob/graph"
	"github.com/foxworth-uni/fob/validate"
)

func TestValidate_ValidManifestPasses(t *testing.T) {
	m := graph.Manifest{
		Version: 1,
		Entries: []graph.ManifestEntry{{EntryPoint: "src/index.ts", ChunkId: "chunk-a"}},
		Chunks: []graph.ChunkMetadata{
			{Id: "chunk-a", Filename: "chunk-a.js", Kind: graph.EntryChunk, SizeBytes: 128, Modules: []graph.ModuleId{"src/index.ts"}},
		},
	}
	result, err := validate.Validate(m, validate.ValidationOptions{})
	require.NoError(t, err)
	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
}

func TestValidate_MissingChunkFilenameFailsSchema(t *testing.T) {
	m := graph.Manifest{
		Version: 1,
		Entries: []graph.ManifestEntry{{EntryPoint: "src/index.ts", ChunkId: "chunk-a"}},
		Chunks:  []graph.ChunkMetadata{{Id: "chunk-a", Kind: graph.EntryChunk, SizeBytes: 128}},
	}
	result, err := validate.Validate(m, validate.ValidationOptions{})
	require.NoError(t, err)
	assert.False(t, result.IsValid)
	require.NotEmpty(t, result.Errors)
	assert.Equal(t, "schema-required-property", result.Errors[0].ID)
}

func TestValidate_WarnsOnDanglingEntryChunkReference(t *testing.T) {
	m := graph.Manifest{
		Version: 1,
		Entries: []graph.ManifestEntry{{EntryPoint: "src/index.ts", ChunkId: "chunk-missing"}},
		Chunks: []graph.ChunkMetadata{
			{Id: "chunk-a", Filename: "chunk-a.js", Kind: graph.EntryChunk, SizeBytes: 128, Modules: []graph.ModuleId{"src/index.ts"}},
		},
	}
	result, err := validate.Validate(m, validate.ValidationOptions{IncludeWarnings: true})
	require.NoError(t, err)
	require.NotEmpty(t, result.Warnings)
	assert.Equal(t, "manifest-dangling-entry-chunk", result.Warnings[0].ID)
}

func TestValidate_DisabledRuleIsFiltered(t *testing.T) {
	m := graph.Manifest{
		Version: 1,
		Entries: []graph.ManifestEntry{{EntryPoint: "src/index.ts", ChunkId: "chunk-a"}},
		Chunks:  []graph.ChunkMetadata{{Id: "chunk-a", Filename: "chunk-a.js", Kind: graph.EntryChunk, SizeBytes: 128}},
	}
	result, err := validate.Validate(m, validate.ValidationOptions{
		IncludeWarnings: true,
		DisabledRules:   []string{"manifest-empty-chunk"},
	})
	require.NoError(t, err)
	assert.Empty(t, result.Warnings)
}
