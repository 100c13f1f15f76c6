package mdx_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foxworth-uni/fob/graph"
	"github.com/foxworth-uni/fob/plugin/mdx"
)

func TestOnTransform_RejectsNonMDX(t *testing.T) {
	p := mdx.New()
	_, ok := p.OnTransform(graph.NewPathModuleId("src/index.ts"), []byte("const x = 1;"))
	assert.False(t, ok)
}

func TestOnTransform_HeadingBecomesCall(t *testing.T) {
	p := mdx.New()
	out, ok := p.OnTransform(graph.NewPathModuleId("docs/guide.mdx"), []byte("# Hello\n\nSome *text*.\n"))
	require.True(t, ok)

	src := string(out)
	assert.False(t, strings.Contains(src, "# Hello"), "raw heading marker must not survive compilation")
	assert.True(t, strings.Contains(src, "h(\"h1\""), "expected an h(\"h1\", ...) JSX-runtime call")
	assert.True(t, strings.Contains(src, "h(\"em\""), "expected emphasis to compile to h(\"em\", ...)")
	assert.True(t, strings.Contains(src, "jsx-runtime"))
}

func TestOnTransform_FencedCodeBlockKeepsLanguage(t *testing.T) {
	p := mdx.New()
	out, ok := p.OnTransform(graph.NewPathModuleId("docs/guide.md"), []byte("```js\nconst x = 1;\n```\n"))
	require.True(t, ok)

	src := string(out)
	assert.True(t, strings.Contains(src, "language-js"))
	assert.True(t, strings.Contains(src, "const x = 1;"))
}

func TestOnTransform_LinkAndImage(t *testing.T) {
	p := mdx.New()
	out, ok := p.OnTransform(graph.NewPathModuleId("docs/guide.mdx"), []byte("[home](/index) ![alt](/a.png)\n"))
	require.True(t, ok)

	src := string(out)
	assert.True(t, strings.Contains(src, "h(\"a\", { href: \"/index\" }"))
	assert.True(t, strings.Contains(src, "h(\"img\", { src: \"/a.png\" })"))
}
