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

// Package tsx implements the built-in Transform plugin that strips
// TypeScript/JSX/TSX types down to plain JavaScript via esbuild's
// single-file api.Transform. It performs no type-checking (the Non-goal
// spec.md names explicitly) — only syntax stripping and JSX lowering,
// grounded on the teacher's TransformTypeScript.
package tsx

import (
	"sync"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/foxworth-uni/fob/ferrors"
	"github.com/foxworth-uni/fob/graph"
	"github.com/foxworth-uni/fob/plugin"
)

// Plugin strips types from .ts/.tsx/.jsx modules, leaving .js/.mjs/.css
// untouched (reports ok == false, per the ordering contract's
// "unchanged" rule for plugins that don't recognise a module).
type Plugin struct {
	target api.Target

	mu      sync.Mutex
	lastErr error
}

// New creates a tsx transform plugin targeting the given esbuild language
// target (e.g. api.ES2020).
func New(target api.Target) *Plugin {
	return &Plugin{target: target}
}

func (p *Plugin) Name() string        { return "fob:tsx" }
func (p *Plugin) Phase() plugin.Phase { return plugin.TransformPhase }

// LastError implements plugin.ErrorReporter.
func (p *Plugin) LastError() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

// OnTransform implements plugin.Transformer.
func (p *Plugin) OnTransform(id graph.ModuleId, source []byte) ([]byte, bool) {
	loader, ok := loaderFor(string(id))
	if !ok {
		return nil, false
	}

	result := api.Transform(string(source), api.TransformOptions{
		Loader:      loader,
		Target:      p.target,
		Format:      api.FormatESModule,
		Sourcemap:   api.SourceMapNone,
		Sourcefile:  string(id),
		TsconfigRaw: `{"compilerOptions":{"importHelpers":false}}`,
	})
	if len(result.Errors) > 0 {
		diags := make([]ferrors.TransformDiagnostic, 0, len(result.Errors))
		for _, e := range result.Errors {
			diags = append(diags, ferrors.TransformDiagnostic{Message: e.Text, Severity: "error"})
		}
		p.mu.Lock()
		p.lastErr = ferrors.NewTransform(string(id), diags)
		p.mu.Unlock()
		return nil, false
	}
	return result.Code, true
}

func loaderFor(id string) (api.Loader, bool) {
	switch graph.SourceTypeFromExt(id) {
	case graph.TypeScript:
		return api.LoaderTS, true
	case graph.Tsx:
		return api.LoaderTSX, true
	case graph.Jsx:
		return api.LoaderJSX, true
	default:
		return 0, false
	}
}

var _ plugin.Transformer = (*Plugin)(nil)
var _ plugin.Plugin = (*Plugin)(nil)
var _ plugin.ErrorReporter = (*Plugin)(nil)
