package virtualfs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foxworth-uni/fob/graph"
	"github.com/foxworth-uni/fob/plugin/virtualfs"
)

func TestOnLoad_ServesRegisteredFile(t *testing.T) {
	p := virtualfs.New(map[string]string{
		"virtual:env": "export default {};",
	})

	out, ok := p.OnLoad(graph.NewVirtualModuleId("virtual:env"))
	require.True(t, ok)
	assert.Equal(t, "export default {};", string(out))
}

func TestOnLoad_UnknownIdIsNotFound(t *testing.T) {
	p := virtualfs.New(nil)
	_, ok := p.OnLoad(graph.NewVirtualModuleId("virtual:missing"))
	assert.False(t, ok)
}

func TestPut_RegistersFileAfterConstruction(t *testing.T) {
	p := virtualfs.New(nil)
	p.Put("virtual:late", "export const late = true;")

	out, ok := p.OnLoad(graph.NewVirtualModuleId("virtual:late"))
	require.True(t, ok)
	assert.Equal(t, "export const late = true;", string(out))
}
