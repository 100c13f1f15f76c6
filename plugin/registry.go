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

package plugin

// Registry holds registered plugins sorted into their fixed phase order,
// preserving registration order within each phase (spec §4.7). It does
// not run anything itself — bundler drives dispatch through InPhase.
type Registry struct {
	byPhase map[Phase][]Plugin
	order   int
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byPhase: make(map[Phase][]Plugin)}
}

// Register adds p to its declared phase, at the end of that phase's
// current order.
func (r *Registry) Register(p Plugin) {
	r.byPhase[p.Phase()] = append(r.byPhase[p.Phase()], p)
	r.order++
}

// InPhase returns every plugin registered for phase, in registration
// order.
func (r *Registry) InPhase(phase Phase) []Plugin {
	return r.byPhase[phase]
}

// All returns every registered plugin ordered Virtual -> Resolve ->
// Transform -> Assets -> PostProcess, with registration order preserved
// inside each phase.
func (r *Registry) All() []Plugin {
	phases := []Phase{VirtualPhase, ResolvePhase, TransformPhase, AssetsPhase, PostProcessPhase}
	out := make([]Plugin, 0, r.order)
	for _, phase := range phases {
		out = append(out, r.byPhase[phase]...)
	}
	return out
}

// Len returns the total number of registered plugins.
func (r *Registry) Len() int {
	return r.order
}
