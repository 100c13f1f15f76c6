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

// Package wasmhost implements the sandboxed Transform plugin host: an
// embedder registers a transform compiled to WebAssembly, run via
// github.com/tetratelabs/wazero (a pure-Go runtime, itself embeddable in the
// same native/edge targets Fob targets). This lets a plugin author ship a
// single .wasm transform that runs identically under a native build and
// inside a JS host exposing only fetch.
//
// Guest ABI: the module exports "memory", an "alloc(size uint32) uint32"
// function the host uses to place the source bytes, and a
// "transform(ptr uint32, len uint32) uint64" function that returns the
// output's (pointer<<32 | length) packed into one result, reading its input
// and writing its output through the same linear memory.
package wasmhost

import (
	"context"
	"fmt"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"

	"github.com/foxworth-uni/fob/ferrors"
	"github.com/foxworth-uni/fob/graph"
	"github.com/foxworth-uni/fob/plugin"
)

// Module binds one compiled wasm guest to the set of extensions it handles
// (e.g. ".wasm.js", a custom source kind an embedder wants to pre-process).
type Module struct {
	Name       string
	Extensions []string
	Code       []byte
}

// Plugin runs registered wasm Modules as Transform-phase plugins. One
// wazero.Runtime is shared across every call; guest modules are compiled
// once at registration and instantiated fresh per OnTransform call, so
// guest global state never leaks between unrelated modules.
type Plugin struct {
	rt  wazero.Runtime
	ctx context.Context

	mu      sync.Mutex
	byExt   map[string]*compiledGuest
	lastErr error
}

type compiledGuest struct {
	name     string
	compiled wazero.CompiledModule
}

// New creates a wasmhost plugin. ctx governs every guest instantiation and
// call; pass context.Background() for a host with no deadline of its own.
func New(ctx context.Context) *Plugin {
	rt := wazero.NewRuntime(ctx)
	wasi_snapshot_preview1.MustInstantiate(ctx, rt)
	return &Plugin{
		rt:    rt,
		ctx:   ctx,
		byExt: make(map[string]*compiledGuest),
	}
}

// Register compiles mod.Code and binds it to every extension in
// mod.Extensions, replacing any prior registration for that extension.
func (p *Plugin) Register(mod Module) error {
	compiled, err := p.rt.CompileModule(p.ctx, mod.Code)
	if err != nil {
		return fmt.Errorf("wasmhost: compile %s: %w", mod.Name, err)
	}
	guest := &compiledGuest{name: mod.Name, compiled: compiled}

	p.mu.Lock()
	defer p.mu.Unlock()
	for _, ext := range mod.Extensions {
		p.byExt[ext] = guest
	}
	return nil
}

// Close releases every compiled guest module and the wazero runtime.
func (p *Plugin) Close() error {
	return p.rt.Close(p.ctx)
}

func (p *Plugin) Name() string        { return "fob:wasmhost" }
func (p *Plugin) Phase() plugin.Phase { return plugin.TransformPhase }

// LastError implements plugin.ErrorReporter.
func (p *Plugin) LastError() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

// OnTransform implements plugin.Transformer, dispatching by the module id's
// extension to whichever guest Register bound to it.
func (p *Plugin) OnTransform(id graph.ModuleId, source []byte) ([]byte, bool) {
	guest, ok := p.guestFor(string(id))
	if !ok {
		return nil, false
	}

	out, err := p.runGuest(guest, source)
	if err != nil {
		p.mu.Lock()
		p.lastErr = ferrors.NewTransform(string(id), []ferrors.TransformDiagnostic{
			{Message: err.Error(), Severity: "error"},
		})
		p.mu.Unlock()
		return nil, false
	}
	return out, true
}

func (p *Plugin) guestFor(id string) (*compiledGuest, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for ext, guest := range p.byExt {
		if len(id) >= len(ext) && id[len(id)-len(ext):] == ext {
			return guest, true
		}
	}
	return nil, false
}

func (p *Plugin) runGuest(guest *compiledGuest, source []byte) ([]byte, error) {
	instance, err := p.rt.InstantiateModule(p.ctx, guest.compiled, wazero.NewModuleConfig().WithName(""))
	if err != nil {
		return nil, fmt.Errorf("instantiate %s: %w", guest.name, err)
	}
	defer instance.Close(p.ctx)

	alloc := instance.ExportedFunction("alloc")
	transform := instance.ExportedFunction("transform")
	if alloc == nil || transform == nil {
		return nil, fmt.Errorf("guest %s missing required exports alloc/transform", guest.name)
	}

	allocRes, err := alloc.Call(p.ctx, uint64(len(source)))
	if err != nil {
		return nil, fmt.Errorf("alloc in %s: %w", guest.name, err)
	}
	srcPtr := uint32(allocRes[0])

	mem := instance.Memory()
	if !mem.Write(srcPtr, source) {
		return nil, fmt.Errorf("guest %s: write out of memory bounds", guest.name)
	}

	result, err := transform.Call(p.ctx, uint64(srcPtr), uint64(len(source)))
	if err != nil {
		return nil, fmt.Errorf("transform in %s: %w", guest.name, err)
	}

	packed := result[0]
	outPtr := uint32(packed >> 32)
	outLen := uint32(packed)

	out, ok := mem.Read(outPtr, outLen)
	if !ok {
		return nil, fmt.Errorf("guest %s: result out of memory bounds", guest.name)
	}

	// copy out of guest memory before the deferred Close reclaims it.
	copied := make([]byte, len(out))
	copy(copied, out)
	return copied, nil
}

var _ plugin.Transformer = (*Plugin)(nil)
var _ plugin.Plugin = (*Plugin)(nil)
var _ plugin.ErrorReporter = (*Plugin)(nil)
