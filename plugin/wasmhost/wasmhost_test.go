package wasmhost_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foxworth-uni/fob/graph"
	"github.com/foxworth-uni/fob/plugin"
	"github.com/foxworth-uni/fob/plugin/wasmhost"
)

func TestOnTransform_NoRegisteredGuestIsUnchanged(t *testing.T) {
	p := wasmhost.New(context.Background())
	defer p.Close()

	_, ok := p.OnTransform(graph.NewPathModuleId("src/index.ts"), []byte("const x = 1;"))
	assert.False(t, ok)
}

func TestRegister_RejectsInvalidWasmBytes(t *testing.T) {
	p := wasmhost.New(context.Background())
	defer p.Close()

	err := p.Register(wasmhost.Module{
		Name:       "bogus",
		Extensions: []string{".bogus"},
		Code:       []byte("not a wasm module"),
	})
	require.Error(t, err)
}

func TestNameAndPhase(t *testing.T) {
	p := wasmhost.New(context.Background())
	defer p.Close()

	assert.Equal(t, "fob:wasmhost", p.Name())
	assert.Equal(t, plugin.TransformPhase, p.Phase())
}
