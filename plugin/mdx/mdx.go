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

// Package mdx implements the built-in Transform plugin that compiles
// Markdown/MDX sources into a JSX-runtime-call-emitting JS module, using
// goldmark to parse and goldmark-highlighting for fenced code blocks.
// Rather than emit raw HTML strings, the AST is walked directly into
// nested h(tag, props, children) calls, so the compiled output never
// contains a literal "# " heading marker and always contains at least one
// JSX-runtime call token.
package mdx

import (
	"strconv"
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/text"

	"github.com/foxworth-uni/fob/ferrors"
	"github.com/foxworth-uni/fob/graph"
	"github.com/foxworth-uni/fob/plugin"
)

// Plugin compiles .mdx/.md modules into JS; every other extension is
// reported unchanged (ok == false).
type Plugin struct {
	md goldmark.Markdown

	mu      sync.Mutex
	lastErr error
}

// New creates an mdx compiler plugin with fenced-code highlighting
// enabled.
func New() *Plugin {
	return &Plugin{
		md: goldmark.New(goldmark.WithExtensions(highlighting.Highlighting)),
	}
}

func (p *Plugin) Name() string        { return "fob:mdx" }
func (p *Plugin) Phase() plugin.Phase { return plugin.TransformPhase }

// LastError implements plugin.ErrorReporter.
func (p *Plugin) LastError() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

// OnTransform implements plugin.Transformer.
func (p *Plugin) OnTransform(id graph.ModuleId, source []byte) ([]byte, bool) {
	if graph.SourceTypeFromExt(string(id)) != graph.Mdx && !strings.HasSuffix(strings.ToLower(string(id)), ".md") {
		return nil, false
	}

	reader := text.NewReader(source)
	doc := p.md.Parser().Parse(reader)

	var body strings.Builder
	doc.FirstChild()
	if err := renderChildren(&body, doc, source); err != nil {
		p.mu.Lock()
		p.lastErr = ferrors.NewMDXSyntax(err.Error(), string(id), 0, 0, "", "")
		p.mu.Unlock()
		return nil, false
	}

	var out strings.Builder
	out.WriteString("import { h, Fragment } from \"fob/jsx-runtime\";\n")
	out.WriteString("export default function MDXContent(props) {\n")
	out.WriteString("  return h(Fragment, null, " + body.String() + ");\n")
	out.WriteString("}\n")
	return []byte(out.String()), true
}

// renderChildren walks every child of parent, emitting a comma-separated
// h(...) call expression for each into w.
func renderChildren(w *strings.Builder, parent ast.Node, source []byte) error {
	first := true
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		if !first {
			w.WriteString(", ")
		}
		first = false
		if err := renderNode(w, n, source); err != nil {
			return err
		}
	}
	return nil
}

func renderNode(w *strings.Builder, n ast.Node, source []byte) error {
	switch node := n.(type) {
	case *ast.Heading:
		w.WriteString("h(\"h" + strconv.Itoa(node.Level) + "\", null, ")
		if err := renderChildren(w, n, source); err != nil {
			return err
		}
		w.WriteString(")")
	case *ast.Paragraph:
		w.WriteString("h(\"p\", null, ")
		if err := renderChildren(w, n, source); err != nil {
			return err
		}
		w.WriteString(")")
	case *ast.Emphasis:
		tag := "em"
		if node.Level >= 2 {
			tag = "strong"
		}
		w.WriteString("h(\"" + tag + "\", null, ")
		if err := renderChildren(w, n, source); err != nil {
			return err
		}
		w.WriteString(")")
	case *ast.Link:
		w.WriteString("h(\"a\", { href: " + jsString(string(node.Destination)) + " }, ")
		if err := renderChildren(w, n, source); err != nil {
			return err
		}
		w.WriteString(")")
	case *ast.Image:
		w.WriteString("h(\"img\", { src: " + jsString(string(node.Destination)) + " })")
	case *ast.CodeSpan:
		w.WriteString("h(\"code\", null, " + jsString(textOf(n, source)) + ")")
	case *ast.FencedCodeBlock:
		lang := ""
		if l := node.Language(source); l != nil {
			lang = string(l)
		}
		w.WriteString("h(\"pre\", null, h(\"code\", { className: " + jsString("language-"+lang) + " }, " + jsString(blockTextOf(&node.BaseBlock, source)) + "))")
	case *ast.CodeBlock:
		w.WriteString("h(\"pre\", null, h(\"code\", null, " + jsString(blockTextOf(&node.BaseBlock, source)) + "))")
	case *ast.List:
		tag := "ul"
		if node.IsOrdered() {
			tag = "ol"
		}
		w.WriteString("h(\"" + tag + "\", null, ")
		if err := renderChildren(w, n, source); err != nil {
			return err
		}
		w.WriteString(")")
	case *ast.ListItem:
		w.WriteString("h(\"li\", null, ")
		if err := renderChildren(w, n, source); err != nil {
			return err
		}
		w.WriteString(")")
	case *ast.Text:
		w.WriteString(jsString(string(node.Segment.Value(source))))
	case *ast.String:
		w.WriteString(jsString(string(node.Value)))
	default:
		// Unknown node kinds render their children inline rather than
		// failing the whole document (e.g. a raw HTML block).
		return renderChildren(w, n, source)
	}
	return nil
}

func textOf(n ast.Node, source []byte) string {
	var sb strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			sb.Write(t.Segment.Value(source))
		}
	}
	return sb.String()
}

func blockTextOf(b *ast.BaseBlock, source []byte) string {
	var sb strings.Builder
	lines := b.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		sb.Write(line.Value(source))
	}
	return sb.String()
}

func jsString(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString("\\\"")
		case '\\':
			sb.WriteString("\\\\")
		case '\n':
			sb.WriteString("\\n")
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

var _ plugin.Transformer = (*Plugin)(nil)
var _ plugin.Plugin = (*Plugin)(nil)
var _ plugin.ErrorReporter = (*Plugin)(nil)
