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

// Package assets implements the built-in Assets-phase plugin that detects
// non-JS asset references (images, fonts) independent of source type: a
// module whose own extension is a recognized binary-asset extension is
// emitted verbatim, and already-transformed JS/TS output is scanned for
// quoted string specifiers pointing at an asset path (the
// bundler-for-asset-imports pattern, e.g. `import logo from "./logo.png"`
// surviving transform as a plain string literal). plugin/css covers the
// CSS-specific url(...) case; this plugin is the general fallback spec
// §4.7 describes as "detects non-JS asset references... during Transform
// output scanning".
package assets

import (
	"crypto/sha256"
	"encoding/hex"
	"path"
	"regexp"
	"strings"

	"github.com/foxworth-uni/fob/graph"
	"github.com/foxworth-uni/fob/plugin"
)

// extensions maps a recognized asset extension to the descriptor format
// name recorded on graph.EmittedAsset.
var extensions = map[string]string{
	".png": "png", ".jpg": "jpg", ".jpeg": "jpg", ".gif": "gif", ".svg": "svg",
	".webp": "webp", ".woff": "woff", ".woff2": "woff2", ".ttf": "ttf", ".eot": "eot",
	".ico": "ico", ".avif": "avif",
}

var quotedAssetRef = regexp.MustCompile(`["']([^"']+\.(?:png|jpe?g|gif|svg|webp|woff2?|ttf|eot|ico|avif))["']`)

// Plugin registers an EmittedAsset either for a module that is itself a
// binary asset, or for any asset-shaped specifier found as a quoted string
// literal in already-transformed JS/TS source.
type Plugin struct{}

// New creates the general asset-detection plugin.
func New() *Plugin { return &Plugin{} }

func (p *Plugin) Name() string        { return "fob:assets" }
func (p *Plugin) Phase() plugin.Phase { return plugin.AssetsPhase }

// OnEmitAsset implements plugin.AssetEmitter.
func (p *Plugin) OnEmitAsset(id graph.ModuleId, data []byte) (*graph.EmittedAsset, bool) {
	if asset, ok := assetFromOwnExtension(id, data); ok {
		return asset, true
	}
	if asset, ok := assetFromScannedReference(data); ok {
		return asset, true
	}
	return nil, false
}

// assetFromOwnExtension handles a module that is itself an asset file
// (e.g. an image imported directly as an entry or import target that the
// resolver left as a raw file rather than a parsed source type).
func assetFromOwnExtension(id graph.ModuleId, data []byte) (*graph.EmittedAsset, bool) {
	if graph.SourceTypeFromExt(string(id)) != graph.Unknown {
		return nil, false
	}
	ext := strings.ToLower(path.Ext(string(id)))
	format, ok := extensions[ext]
	if !ok {
		return nil, false
	}
	return &graph.EmittedAsset{
		PublicPath:   "assets/" + contentHash(data) + ext,
		RelativePath: string(id),
		SizeBytes:    int64(len(data)),
		Format:       format,
	}, true
}

// assetFromScannedReference handles asset specifiers surviving as string
// literals in already-transformed JS/TS output.
func assetFromScannedReference(data []byte) (*graph.EmittedAsset, bool) {
	m := quotedAssetRef.FindSubmatch(data)
	if m == nil {
		return nil, false
	}
	ref := string(m[1])
	ext := strings.ToLower(path.Ext(ref))
	format, ok := extensions[ext]
	if !ok {
		return nil, false
	}
	return &graph.EmittedAsset{
		PublicPath:   "assets/" + contentHash([]byte(ref)) + ext,
		RelativePath: ref,
		Format:       format,
	}, true
}

func contentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:8])
}

var _ plugin.AssetEmitter = (*Plugin)(nil)
var _ plugin.Plugin = (*Plugin)(nil)
