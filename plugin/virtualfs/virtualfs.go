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

// Package virtualfs implements the built-in Virtual-phase Loader plugin:
// it serves BuildConfig.VirtualFiles and any "virtual:"-prefixed module id
// registered ahead of the build, grounded on the teacher's in-memory
// FileSystem abstraction (internal/platform.MapFS).
package virtualfs

import (
	"sync"

	"github.com/foxworth-uni/fob/graph"
	"github.com/foxworth-uni/fob/plugin"
)

// Plugin serves a fixed map of virtual module contents, registered once
// at construction, plus any entries added later via Put (an embedder may
// register a polyfill module mid-build in response to a NodeBuiltins
// Polyfill resolution).
type Plugin struct {
	mu    sync.RWMutex
	files map[string]string
}

// New creates a virtualfs plugin pre-populated with files (virtual name
// -> content, typically BuildConfig.VirtualFiles verbatim).
func New(files map[string]string) *Plugin {
	p := &Plugin{files: make(map[string]string, len(files))}
	for k, v := range files {
		p.files[k] = v
	}
	return p
}

// Put registers (or overwrites) one virtual file's content.
func (p *Plugin) Put(name, content string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.files[name] = content
}

func (p *Plugin) Name() string        { return "fob:virtualfs" }
func (p *Plugin) Phase() plugin.Phase { return plugin.VirtualPhase }

// OnLoad implements plugin.Loader.
func (p *Plugin) OnLoad(id graph.ModuleId) ([]byte, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	content, ok := p.files[string(id)]
	if !ok {
		return nil, false
	}
	return []byte(content), true
}

var _ plugin.Loader = (*Plugin)(nil)
var _ plugin.Plugin = (*Plugin)(nil)
