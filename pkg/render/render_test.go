package render_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/andybalholm/cascadia"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/yaklabco/md2html/pkg/mdast"
	"github.com/yaklabco/md2html/pkg/parser"
	"github.com/yaklabco/md2html/pkg/render"
	"github.com/yaklabco/md2html/pkg/tokenizer"
)

func parse(src string) *mdast.Tree {
	return parser.Parse(tokenizer.Tokenize([]byte(src)))
}

func renderString(src string, opts render.Options) string {
	return string(render.New(opts).Render(parse(src)))
}

// query parses out as an HTML fragment and returns the nodes matching selector.
func query(t *testing.T, out, selector string) []*html.Node {
	t.Helper()

	doc, err := html.Parse(strings.NewReader(out))
	require.NoError(t, err)

	return cascadia.MustCompile(selector).MatchAll(doc)
}

func textOf(node *html.Node) string {
	var buf strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(node)
	return buf.String()
}

func attr(node *html.Node, key string) string {
	for _, a := range node.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func TestRender_Templates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "empty",
			src:  "",
			want: "",
		},
		{
			name: "heading",
			src:  "# Title\n",
			want: "<h1>Title</h1>\n",
		},
		{
			name: "paragraph continuation",
			src:  "a\nb",
			want: "<p>a\nb</p>\n",
		},
		{
			name: "blockquote",
			src:  "> a\n> b\n",
			want: "<blockquote>\n" +
				"  <p>a</p>\n" +
				"  <p>b</p>\n" +
				"</blockquote>\n",
		},
		{
			name: "nested list inside item",
			src:  "+ a\n  + b\n",
			want: "<ul>\n" +
				"  <li>a\n" +
				"    <ul>\n" +
				"      <li>b</li>\n" +
				"    </ul>\n" +
				"  </li>\n" +
				"</ul>\n",
		},
		{
			name: "ordered list",
			src:  "1. one\n2. two\n",
			want: "<ol>\n" +
				"  <li>one</li>\n" +
				"  <li>two</li>\n" +
				"</ol>\n",
		},
		{
			name: "code fence escapes",
			src:  "``` \n<b> & </b>\n```",
			want: "<pre><code>&lt;b&gt; &amp; &lt;/b&gt;</code></pre>\n",
		},
		{
			name: "code lines are joined and not prefixed",
			src:  "> ```\n> a\n>   b\n> ```\n",
			want: "<blockquote>\n" +
				"  <pre><code>a\n  b</code></pre>\n" +
				"</blockquote>\n",
		},
		{
			name: "info string adds language class",
			src:  "```go\nx := 1\n```\n",
			want: "<pre><code class=\"language-go\">x := 1</code></pre>\n",
		},
		{
			name: "horizontal and empty line",
			src:  "a\n\n---\n",
			want: "<p>a</p>\n" +
				"<p><!-- empty --></p>\n" +
				"<hr />\n",
		},
		{
			name: "inline spans",
			src:  "*a* **b** `<c>`",
			want: "<p><em>a</em> <strong>b</strong> <code>&lt;c&gt;</code></p>\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, renderString(tt.src, render.DefaultOptions()))
		})
	}
}

func TestRender_Idempotent(t *testing.T) {
	t.Parallel()

	tree := parse("# T\n\n+ a\n  + b\n\n> q\n\n```go\nx\n```\n")
	renderer := render.New(render.Options{HeadingIDs: true, IndentWidth: 2})

	first := renderer.Render(tree)
	second := renderer.Render(tree)

	assert.Equal(t, first, second)
}

func TestRender_PackageLevelMatchesDefaults(t *testing.T) {
	t.Parallel()

	tree := parse("+ a\n  + b\n")
	assert.Equal(t, render.New(render.DefaultOptions()).Render(tree), render.Render(tree))
}

func TestRender_IndentWidth(t *testing.T) {
	t.Parallel()

	out := renderString("> a\n", render.Options{IndentWidth: 4})
	assert.Equal(t, "<blockquote>\n    <p>a</p>\n</blockquote>\n", out)

	out = renderString("> a\n", render.Options{IndentWidth: -1})
	assert.Equal(t, "<blockquote>\n<p>a</p>\n</blockquote>\n", out)
}

func TestRender_HeadingIDs(t *testing.T) {
	t.Parallel()

	out := renderString("# Hello World\n# Hello *World*\n## `code` & more!\n", render.Options{HeadingIDs: true})

	headings := query(t, out, "h1, h2")
	require.Len(t, headings, 3)
	assert.Equal(t, "hello-world", attr(headings[0], "id"))
	assert.Equal(t, "hello-world-1", attr(headings[1], "id"))
	assert.Equal(t, "code-more", attr(headings[2], "id"))
}

func TestRender_ParsesAsHTML(t *testing.T) {
	t.Parallel()

	out := renderString("# Title\n\n+ one\n+ two\n  + nested\n\n> quote\n", render.DefaultOptions())

	items := query(t, out, "body > ul > li")
	require.Len(t, items, 2)
	assert.Len(t, query(t, out, "ul > li > ul > li"), 1)
	assert.Equal(t, "quote", textOf(query(t, out, "blockquote > p")[0]))
	assert.Equal(t, "Title", textOf(query(t, out, "h1")[0]))
}

func TestRender_Highlight(t *testing.T) {
	t.Parallel()

	out := renderString("```go\npackage main\n```\n", render.Options{Highlight: true, Style: "monokai"})

	code := query(t, out, "pre.chroma > code.language-go")
	require.Len(t, code, 1)
	assert.NotEmpty(t, query(t, out, "pre.chroma > code span"))
	assert.Contains(t, textOf(code[0]), "package main")
}

func TestRender_HighlightUnknownLanguageFallsBack(t *testing.T) {
	t.Parallel()

	out := renderString("```no-such-language\n<x>\n```\n", render.Options{Highlight: true})

	assert.Equal(t, "<pre><code class=\"language-no-such-language\">&lt;x&gt;</code></pre>\n", out)
}

func TestRender_DetectLanguage(t *testing.T) {
	t.Parallel()

	out := renderString("```\npackage main\n```\n", render.Options{DetectLanguage: true})
	assert.Len(t, query(t, out, "code.language-go"), 1)

	out = renderString("```\njust words\n```\n", render.Options{DetectLanguage: true})
	assert.Empty(t, query(t, out, "code[class]"))
}

func TestRender_ConcurrentUse(t *testing.T) {
	t.Parallel()

	renderer := render.New(render.Options{HeadingIDs: true})
	tree := parse("# A\n# A\n")
	want := renderer.Render(tree)

	done := make(chan []byte)
	for range 8 {
		go func() { done <- renderer.Render(tree) }()
	}
	for range 8 {
		assert.True(t, bytes.Equal(want, <-done))
	}
}
