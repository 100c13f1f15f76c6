package tsx_test

import (
	"strings"
	"testing"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foxworth-uni/fob/graph"
	"github.com/foxworth-uni/fob/plugin/tsx"
)

func TestOnTransform_StripsTypeAnnotations(t *testing.T) {
	p := tsx.New(api.ES2020)
	out, ok := p.OnTransform(graph.NewPathModuleId("src/math.ts"), []byte("export function add(a: number, b: number): number { return a + b; }"))
	require.True(t, ok)
	assert.False(t, strings.Contains(string(out), ": number"))
	assert.True(t, strings.Contains(string(out), "function add"))
}

func TestOnTransform_RejectsPlainJS(t *testing.T) {
	p := tsx.New(api.ES2020)
	_, ok := p.OnTransform(graph.NewPathModuleId("src/index.js"), []byte("export const x = 1;"))
	assert.False(t, ok)
}

func TestOnTransform_SyntaxErrorRecordsLastError(t *testing.T) {
	p := tsx.New(api.ES2020)
	_, ok := p.OnTransform(graph.NewPathModuleId("src/broken.ts"), []byte("export function ( { "))
	assert.False(t, ok)
	assert.Error(t, p.LastError())
}
