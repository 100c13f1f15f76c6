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

package tsquery

import (
	"fmt"
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/foxworth-uni/fob/graph"
)

// ImportRefKind classifies which query pattern produced an ImportRef:
// only a dynamic import() is DynamicImportRef; static imports,
// re-exports, require() calls and CSS references are StaticImportRef.
type ImportRefKind int

const (
	StaticImportRef ImportRefKind = iota
	DynamicImportRef
)

// ImportRef is one import/require/re-export specifier found in a module,
// with its byte span for diagnostics.
type ImportRef struct {
	Specifier string
	Kind      ImportRefKind
	StartByte uint
	EndByte   uint
}

// ExportRef is one named or default export found in a module.
type ExportRef struct {
	Name      string
	IsDefault bool
	StartByte uint
	EndByte   uint
}

// grammarFor maps a graph.SourceType to the parser/query-language pair
// that parses it. JavaScript is parsed with the TypeScript grammar and Jsx
// with its TSX dialect, both supersets; CSS uses the CSS grammar. Every
// other kind (JSON, MDX, Unknown) has no grammar here, so ExtractImports
// and ExtractExports return nil for it.
func grammarFor(kind graph.SourceType) (language string, ok bool) {
	switch kind {
	case graph.TypeScript, graph.JavaScript:
		return "typescript", true
	case graph.Tsx, graph.Jsx:
		return "tsx", true
	case graph.Css:
		return "css", true
	default:
		return "", false
	}
}

func parse(language string, source []byte) (*ts.Tree, func(), error) {
	switch language {
	case "typescript":
		p := GetTypeScriptParser()
		tree := p.Parse(source, nil)
		return tree, func() { PutTypeScriptParser(p) }, treeErr(tree)
	case "tsx":
		p := GetTSXParser()
		tree := p.Parse(source, nil)
		return tree, func() { PutTSXParser(p) }, treeErr(tree)
	case "css":
		p := GetCSSParser()
		tree := p.Parse(source, nil)
		return tree, func() { PutCSSParser(p) }, treeErr(tree)
	case "html":
		p := GetHTMLParser()
		tree := p.Parse(source, nil)
		return tree, func() { PutHTMLParser(p) }, treeErr(tree)
	default:
		return nil, func() {}, fmt.Errorf("unsupported grammar %s", language)
	}
}

func treeErr(tree *ts.Tree) error {
	if tree == nil {
		return fmt.Errorf("parser returned no tree")
	}
	return nil
}

// ExtractImports parses source as kind and returns every import/require/
// dynamic-import/re-export/@import specifier it contains, in source order.
func ExtractImports(qm *QueryManager, kind graph.SourceType, source []byte) ([]ImportRef, error) {
	language, ok := grammarFor(kind)
	if !ok {
		return nil, nil
	}

	tree, release, err := parse(language, source)
	defer release()
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	matcher, err := NewQueryMatcher(qm, language, "imports")
	if err != nil {
		return nil, err
	}
	defer matcher.Close()

	var refs []ImportRef
	for match := range matcher.AllQueryMatches(tree.RootNode(), source) {
		kind := StaticImportRef
		for _, cap := range match.Captures {
			if matcher.GetCaptureNameByIndex(cap.Index) == "import.dynamic" {
				kind = DynamicImportRef
			}
		}
		for _, cap := range match.Captures {
			if matcher.GetCaptureNameByIndex(cap.Index) != "import.specifier" {
				continue
			}
			refs = append(refs, ImportRef{
				Specifier: strings.Trim(cap.Node.Utf8Text(source), `"'`),
				Kind:      kind,
				StartByte: cap.Node.StartByte(),
				EndByte:   cap.Node.EndByte(),
			})
		}
	}
	return refs, nil
}

// ExtractExports parses source as kind and returns every top-level export
// binding it declares. CSS has no exports and always returns nil.
func ExtractExports(qm *QueryManager, kind graph.SourceType, source []byte) ([]ExportRef, error) {
	language, ok := grammarFor(kind)
	if !ok || language == "css" {
		return nil, nil
	}

	tree, release, err := parse(language, source)
	defer release()
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	matcher, err := NewQueryMatcher(qm, language, "exports")
	if err != nil {
		return nil, err
	}
	defer matcher.Close()

	var refs []ExportRef
	for match := range matcher.AllQueryMatches(tree.RootNode(), source) {
		var isDefault bool
		for _, cap := range match.Captures {
			if matcher.GetCaptureNameByIndex(cap.Index) == "export.default" {
				isDefault = true
			}
		}
		for _, cap := range match.Captures {
			name := matcher.GetCaptureNameByIndex(cap.Index)
			if name != "export.name" && name != "export.alias" {
				continue
			}
			refs = append(refs, ExportRef{
				Name:      cap.Node.Utf8Text(source),
				IsDefault: false,
				StartByte: cap.Node.StartByte(),
				EndByte:   cap.Node.EndByte(),
			})
		}
		if isDefault && len(match.Captures) > 0 {
			node := match.Captures[0].Node
			refs = append(refs, ExportRef{
				Name:      "default",
				IsDefault: true,
				StartByte: node.StartByte(),
				EndByte:   node.EndByte(),
			})
		}
	}
	return refs, nil
}
