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

// Package css implements the built-in Assets-phase plugin that finds
// non-import url(...) references in CSS source (fonts, images) and
// registers them as EmittedAssets. Dependency extraction for @import and
// url()-as-specifier already happens in graph/builder via tsquery's CSS
// query; this plugin only concerns itself with the subset of url()
// references that are assets, not module specifiers (a background image,
// not a stylesheet). Minification is left to the embedder (Non-goal: no
// minifier algorithm is prescribed).
package css

import (
	"crypto/sha256"
	"encoding/hex"
	"path"
	"strings"

	cssscanner "github.com/gorilla/css/scanner"

	"github.com/foxworth-uni/fob/graph"
	"github.com/foxworth-uni/fob/plugin"
)

// assetExtensions are the url() targets this plugin treats as emittable
// assets rather than code dependencies.
var assetExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".svg": true,
	".webp": true, ".woff": true, ".woff2": true, ".ttf": true, ".eot": true,
}

// Plugin scans a .css module's source for url(...) asset references with
// its own gorilla/css scanner, on every call; it does not consult the
// import edges graph/builder extracted with tree-sitter-css. Only the
// first reference with an asset extension is reported.
type Plugin struct{}

// New creates the CSS asset-detection plugin.
func New() *Plugin { return &Plugin{} }

func (p *Plugin) Name() string        { return "fob:css" }
func (p *Plugin) Phase() plugin.Phase { return plugin.AssetsPhase }

// OnEmitAsset implements plugin.AssetEmitter. id is expected to be a CSS
// module; data is its (possibly already-transformed) source.
func (p *Plugin) OnEmitAsset(id graph.ModuleId, data []byte) (*graph.EmittedAsset, bool) {
	if graph.SourceTypeFromExt(string(id)) != graph.Css {
		return nil, false
	}
	refs := scanURLs(data)
	for _, ref := range refs {
		ext := strings.ToLower(path.Ext(ref))
		if assetExtensions[ext] {
			hash := sha256.Sum256([]byte(ref))
			return &graph.EmittedAsset{
				PublicPath:   "assets/" + hex.EncodeToString(hash[:8]) + ext,
				RelativePath: ref,
				Format:       strings.TrimPrefix(ext, "."),
			}, true
		}
	}
	return nil, false
}

// scanURLs tokenizes src with gorilla/css's scanner and collects every
// url(...) argument.
func scanURLs(src []byte) []string {
	s := cssscanner.New(string(src))
	var urls []string
	for {
		tok := s.Next()
		if tok.Type == cssscanner.TokenEOF || tok.Type == cssscanner.TokenError {
			break
		}
		if tok.Type == cssscanner.TokenURI {
			urls = append(urls, unwrapURL(tok.Value))
		}
	}
	return urls
}

func unwrapURL(raw string) string {
	v := strings.TrimPrefix(raw, "url(")
	v = strings.TrimSuffix(v, ")")
	v = strings.TrimSpace(v)
	v = strings.Trim(v, `"'`)
	return v
}

var _ plugin.AssetEmitter = (*Plugin)(nil)
var _ plugin.Plugin = (*Plugin)(nil)
