package assets_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foxworth-uni/fob/graph"
	"github.com/foxworth-uni/fob/plugin/assets"
)

func TestOnEmitAsset_OwnExtension(t *testing.T) {
	p := assets.New()
	asset, ok := p.OnEmitAsset(graph.NewPathModuleId("src/logo.svg"), []byte("<svg></svg>"))
	require.True(t, ok)
	assert.Equal(t, "svg", asset.Format)
	assert.Equal(t, "src/logo.svg", asset.RelativePath)
	assert.True(t, len(asset.PublicPath) > len("assets/.svg"))
}

func TestOnEmitAsset_ScannedReferenceInTransformedJS(t *testing.T) {
	p := assets.New()
	js := []byte(`export default "./logo.png";`)
	asset, ok := p.OnEmitAsset(graph.NewPathModuleId("src/component.js"), js)
	require.True(t, ok)
	assert.Equal(t, "png", asset.Format)
	assert.Equal(t, "./logo.png", asset.RelativePath)
}

func TestOnEmitAsset_RejectsOrdinaryJS(t *testing.T) {
	p := assets.New()
	_, ok := p.OnEmitAsset(graph.NewPathModuleId("src/index.js"), []byte("export const x = 1;"))
	assert.False(t, ok)
}
