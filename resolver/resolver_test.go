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

package resolver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/foxworth-uni/fob/graph"
	"github.com/foxworth-uni/fob/resolver"
	"github.com/foxworth-uni/fob/runtime"
)

func newTestResolver(files map[string]string, opts resolver.Options) *resolver.Resolver {
	rt := runtime.NewMemRuntime(files)
	return resolver.New(rt, opts)
}

func TestResolve_VirtualFile(t *testing.T) {
	r := newTestResolver(nil, resolver.Options{
		VirtualFiles: map[string]string{"virtual:runtime": "export {}"},
	})
	res := r.Resolve("virtual:runtime", "/src")
	assert.True(t, res.IsResolved())
	assert.Equal(t, graph.ModuleId("virtual:runtime"), res.Target)
}

func TestResolve_VirtualFileNotRegistered(t *testing.T) {
	r := newTestResolver(nil, resolver.Options{})
	res := r.Resolve("virtual:missing", "/src")
	assert.True(t, res.IsUnresolved())
}

func TestResolve_LiteralAlias(t *testing.T) {
	r := newTestResolver(map[string]string{"src/button.ts": "export {}"}, resolver.Options{
		Aliases: map[string]string{"@/": "./src/"},
	})
	res := r.Resolve("@/button", "/")
	assert.True(t, res.IsResolved())
	assert.Equal(t, graph.ModuleId("/src/button.ts"), res.Target)
}

func TestResolve_External_ExactAndGlob(t *testing.T) {
	r := newTestResolver(nil, resolver.Options{
		Externals: []string{"react", "@aws-sdk/**"},
	})
	assert.True(t, r.Resolve("react", "/").IsExternal())
	assert.True(t, r.Resolve("@aws-sdk/client-s3", "/").IsExternal())
}

func TestResolve_RelativeExtensionProbeOrder(t *testing.T) {
	r := newTestResolver(map[string]string{
		"src/a.js": "js",
		"src/a.ts": "ts",
	}, resolver.Options{})
	res := r.Resolve("./a", "src")
	assert.True(t, res.IsResolved())
	assert.Equal(t, graph.ModuleId("src/a.ts"), res.Target, "ts must win over js per the fixed extension order")
}

func TestResolve_RelativeIndexFallback(t *testing.T) {
	r := newTestResolver(map[string]string{
		"src/util/index.ts": "export {}",
	}, resolver.Options{})
	res := r.Resolve("./util", "src")
	assert.True(t, res.IsResolved())
	assert.Equal(t, graph.ModuleId("src/util/index.ts"), res.Target)
}

func TestResolve_RelativeUnresolved(t *testing.T) {
	r := newTestResolver(nil, resolver.Options{})
	res := r.Resolve("./missing", "src")
	assert.True(t, res.IsUnresolved())
}

func TestResolve_BareSpecifierPackageJSONExportsConditions(t *testing.T) {
	files := map[string]string{
		"node_modules/leftish/package.json": `{"exports": {".": {"browser": "./browser.js", "default": "./index.js"}}}`,
		"node_modules/leftish/browser.js":   "browser build",
		"node_modules/leftish/index.js":     "node build",
	}
	r := newTestResolver(files, resolver.Options{Conditions: []string{"browser"}})
	res := r.Resolve("leftish", "src")
	assert.True(t, res.IsResolved())
	assert.Equal(t, graph.ModuleId("node_modules/leftish/browser.js"), res.Target)
}

func TestResolve_BareSpecifierMainFieldsFallback(t *testing.T) {
	files := map[string]string{
		"node_modules/oldpkg/package.json": `{"module": "./esm.js", "main": "./cjs.js"}`,
		"node_modules/oldpkg/esm.js":       "esm",
	}
	r := newTestResolver(files, resolver.Options{MainFields: []string{"module", "main"}})
	res := r.Resolve("oldpkg", "src")
	assert.True(t, res.IsResolved())
	assert.Equal(t, graph.ModuleId("node_modules/oldpkg/esm.js"), res.Target)
}

func TestResolve_BareSpecifierWalksOutward(t *testing.T) {
	files := map[string]string{
		"node_modules/pkg/package.json": `{"main": "./index.js"}`,
		"node_modules/pkg/index.js":     "x",
	}
	r := newTestResolver(files, resolver.Options{MainFields: []string{"main"}})
	res := r.Resolve("pkg", "src/components/deep")
	assert.True(t, res.IsResolved())
	assert.Equal(t, graph.ModuleId("node_modules/pkg/index.js"), res.Target)
}

func TestResolve_NodeBuiltin_ExternalForNode(t *testing.T) {
	r := newTestResolver(nil, resolver.Options{NodeBuiltins: resolver.BuiltinsExternal})
	res := r.Resolve("node:fs", "/")
	assert.True(t, res.IsExternal())

	res = r.Resolve("path", "/")
	assert.True(t, res.IsExternal())
}

func TestResolve_NodeBuiltin_UnresolvedForBrowser(t *testing.T) {
	r := newTestResolver(nil, resolver.Options{NodeBuiltins: resolver.BuiltinsUnresolved})
	res := r.Resolve("fs", "/")
	assert.True(t, res.IsUnresolved())
}

func TestResolve_AbsoluteURLSpecifier(t *testing.T) {
	r := newTestResolver(nil, resolver.Options{})
	res := r.Resolve("https://esm.sh/lit@3", "/")
	assert.True(t, res.IsResolved())
}

func TestResolveRegistryTag_CaretRange(t *testing.T) {
	tag, ok := resolver.ResolveRegistryTag("^3.0.0", []string{"2.9.0", "3.0.0", "3.1.2", "4.0.0"})
	assert := assert.New(t)
	assert.True(ok)
	assert.Equal("3.1.2", tag)
}

func TestResolveRegistryTag_Latest(t *testing.T) {
	tag, ok := resolver.ResolveRegistryTag("", []string{"1.0.0", "2.0.0"})
	assert := assert.New(t)
	assert.True(ok)
	assert.Equal("2.0.0", tag)
}
