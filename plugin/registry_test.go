package plugin_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/foxworth-uni/fob/plugin"
)

type stubPlugin struct {
	name  string
	phase plugin.Phase
}

func (s stubPlugin) Name() string        { return s.name }
func (s stubPlugin) Phase() plugin.Phase { return s.phase }

func TestRegistry_AllOrdersByFixedPhaseThenRegistration(t *testing.T) {
	r := plugin.NewRegistry()
	r.Register(stubPlugin{"transform-1", plugin.TransformPhase})
	r.Register(stubPlugin{"virtual-1", plugin.VirtualPhase})
	r.Register(stubPlugin{"transform-2", plugin.TransformPhase})
	r.Register(stubPlugin{"postprocess-1", plugin.PostProcessPhase})

	var names []string
	for _, p := range r.All() {
		names = append(names, p.Name())
	}

	assert.Equal(t, []string{"virtual-1", "transform-1", "transform-2", "postprocess-1"}, names)
	assert.Equal(t, 4, r.Len())
}

func TestRegistry_InPhaseReturnsOnlyThatPhase(t *testing.T) {
	r := plugin.NewRegistry()
	r.Register(stubPlugin{"a", plugin.AssetsPhase})
	r.Register(stubPlugin{"b", plugin.ResolvePhase})

	assets := r.InPhase(plugin.AssetsPhase)
	assert.Len(t, assets, 1)
	assert.Equal(t, "a", assets[0].Name())

	assert.Empty(t, r.InPhase(plugin.TransformPhase))
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "virtual", plugin.VirtualPhase.String())
	assert.Equal(t, "resolve", plugin.ResolvePhase.String())
	assert.Equal(t, "transform", plugin.TransformPhase.String())
	assert.Equal(t, "assets", plugin.AssetsPhase.String())
	assert.Equal(t, "postprocess", plugin.PostProcessPhase.String())
}
