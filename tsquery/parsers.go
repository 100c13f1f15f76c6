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

// Package tsquery parses source files into tree-sitter ASTs and runs
// queries against them (spec §4.3's "parse via queries" step). It covers
// TypeScript, TSX, CSS, and HTML — the four grammars the module graph
// builder and the HTML container rule parse with — but not JSDoc, which
// fob has no manifest-generation use for.
package tsquery

import (
	"embed"
	"fmt"
	"sync"

	ts "github.com/tree-sitter/go-tree-sitter"
	tsCss "github.com/tree-sitter/tree-sitter-css/bindings/go"
	tsHtml "github.com/tree-sitter/tree-sitter-html/bindings/go"
	tsTypescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

//go:embed queries/*/*.scm
var queries embed.FS

var languages = struct {
	typescript *ts.Language
	css        *ts.Language
	html       *ts.Language
	tsx        *ts.Language
}{
	ts.NewLanguage(tsTypescript.LanguageTypescript()),
	ts.NewLanguage(tsCss.Language()),
	ts.NewLanguage(tsHtml.Language()),
	ts.NewLanguage(tsTypescript.LanguageTSX()),
}

var typescriptParserPool = sync.Pool{
	New: func() any {
		parser := ts.NewParser()
		if err := parser.SetLanguage(languages.typescript); err != nil {
			panic(fmt.Sprintf("failed to set TypeScript language: %v", err))
		}
		return parser
	},
}

var tsxParserPool = sync.Pool{
	New: func() any {
		parser := ts.NewParser()
		if err := parser.SetLanguage(languages.tsx); err != nil {
			panic(fmt.Sprintf("failed to set TSX language: %v", err))
		}
		return parser
	},
}

var cssParserPool = sync.Pool{
	New: func() any {
		parser := ts.NewParser()
		if err := parser.SetLanguage(languages.css); err != nil {
			panic(fmt.Sprintf("failed to set CSS language: %v", err))
		}
		return parser
	},
}

var htmlParserPool = sync.Pool{
	New: func() any {
		parser := ts.NewParser()
		if err := parser.SetLanguage(languages.html); err != nil {
			panic(fmt.Sprintf("failed to set HTML language: %v", err))
		}
		return parser
	},
}

// GetTypeScriptParser returns a pooled parser for .ts/.js/.mjs/.cjs source.
// Always call PutTypeScriptParser when done.
func GetTypeScriptParser() *ts.Parser { return typescriptParserPool.Get().(*ts.Parser) }

// PutTypeScriptParser returns a parser to the TypeScript pool.
func PutTypeScriptParser(parser *ts.Parser) {
	parser.Reset()
	typescriptParserPool.Put(parser)
}

// GetTSXParser returns a pooled parser for .tsx/.jsx source.
// Always call PutTSXParser when done.
func GetTSXParser() *ts.Parser { return tsxParserPool.Get().(*ts.Parser) }

// PutTSXParser returns a parser to the TSX pool.
func PutTSXParser(parser *ts.Parser) {
	parser.Reset()
	tsxParserPool.Put(parser)
}

// GetCSSParser returns a pooled parser for .css source.
// Always call PutCSSParser when done.
func GetCSSParser() *ts.Parser { return cssParserPool.Get().(*ts.Parser) }

// PutCSSParser returns a parser to the CSS pool.
func PutCSSParser(parser *ts.Parser) {
	parser.Reset()
	cssParserPool.Put(parser)
}

// GetHTMLParser returns a pooled parser for .html source.
// Always call PutHTMLParser when done.
func GetHTMLParser() *ts.Parser { return htmlParserPool.Get().(*ts.Parser) }

// PutHTMLParser returns a parser to the HTML pool.
func PutHTMLParser(parser *ts.Parser) {
	parser.Reset()
	htmlParserPool.Put(parser)
}

// Note: QueryCursor is never pooled. It carries state across a match
// iteration (byte range, active captures) that would leak between
// unrelated queries if reused, so every QueryMatcher creates its own.
