package bundler_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foxworth-uni/fob/bundler"
	"github.com/foxworth-uni/fob/ferrors"
	"github.com/foxworth-uni/fob/graph"
	"github.com/foxworth-uni/fob/graph/builder"
	"github.com/foxworth-uni/fob/plugin"
	"github.com/foxworth-uni/fob/plugin/collect"
	"github.com/foxworth-uni/fob/runtime"
	"github.com/foxworth-uni/fob/target"
	"github.com/foxworth-uni/fob/tsquery"
)

// stubEngine is a fake bundler.Engine that skips real codegen: it turns
// every module the graph builder discovered into a single entry chunk, so
// tests can exercise the orchestrator's seven steps without depending on
// esbuildengine or a real esbuild invocation.
type stubEngine struct {
	buildErr error
}

func (s *stubEngine) Build(ctx context.Context, req bundler.EngineRequest) (graph.BuildResult, error) {
	if s.buildErr != nil {
		return graph.BuildResult{}, s.buildErr
	}
	ids := req.Graph.AllIds()
	chunk := graph.Chunk{
		Id:       "entry",
		Kind:     graph.EntryChunk,
		Filename: "entry.js",
		Code:     "/* stub */",
		Modules:  ids,
	}
	for _, id := range ids {
		m, _ := req.Graph.Get(id)
		if m.Size != nil {
			chunk.SizeBytes += *m.Size
		}
	}
	return graph.BuildResult{Chunks: []graph.Chunk{chunk}}, nil
}

func newTestBundler(t *testing.T, files map[string]string, engine bundler.Engine) (*bundler.Bundler, runtime.Runtime) {
	t.Helper()
	rt := runtime.NewMemRuntime(files)
	qm, err := tsquery.NewQueryManager(tsquery.ImportExportQueries())
	require.NoError(t, err)
	t.Cleanup(qm.Close)

	registry := plugin.NewRegistry()
	registry.Register(collect.New())

	b := bundler.New(bundler.Options{
		Runtime:     rt,
		Queries:     qm,
		Limits:      builder.DefaultLimits(),
		ProjectRoot: "",
		Concurrency: target.ResolveConcurrencyHints(),
		Plugins:     registry,
		Engine:      engine,
	})
	return b, rt
}

func TestBuild_EndToEndHappyPathAssemblesManifestAndStats(t *testing.T) {
	b, _ := newTestBundler(t, map[string]string{
		"src/index.ts": `import { helper } from "./helper";
export const main = helper();`,
		"src/helper.ts": `export function helper() { return 1; }`,
	}, &stubEngine{})

	cfg := graph.BuildConfig{
		Entries: []graph.EntryPoint{{Path: "src/index.ts"}},
		Target:  "browser",
	}

	result, buildErr := b.Build(context.Background(), cfg)
	require.Nil(t, buildErr)
	assert.Equal(t, 1, result.Manifest.Version)
	require.Len(t, result.Chunks, 1)
	assert.Equal(t, 2, result.Stats.ModuleCount)
	assert.Equal(t, 1, result.Stats.ChunkCount)
}

func TestBuild_StopsAtValidationWithoutTouchingTheGraph(t *testing.T) {
	b, _ := newTestBundler(t, map[string]string{"src/index.ts": "export const x = 1;"}, &stubEngine{})

	result, buildErr := b.Build(context.Background(), graph.BuildConfig{})
	require.NotNil(t, buildErr)
	assert.True(t, buildErr.Primary.Type.Fatal())
	assert.Empty(t, result.Chunks)
}

func TestBuild_EngineErrorIsWrappedAsRuntimeError(t *testing.T) {
	b, _ := newTestBundler(t, map[string]string{"src/index.ts": "export const x = 1;"},
		&stubEngine{buildErr: assert.AnError})

	cfg := graph.BuildConfig{
		Entries: []graph.EntryPoint{{Path: "src/index.ts"}},
		Target:  "browser",
	}
	_, buildErr := b.Build(context.Background(), cfg)
	require.NotNil(t, buildErr)
	assert.Equal(t, ferrors.Runtime, buildErr.Primary.Type)
}
