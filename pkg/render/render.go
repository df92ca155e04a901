// Package render turns an mdast.Tree into an HTML fragment.
//
// Rendering is a depth-first, pre-order walk with the indentation prefix
// passed down as an argument. It is pure and total: the same tree always
// renders to the same bytes.
package render

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/yaklabco/md2html/pkg/langdetect"
	"github.com/yaklabco/md2html/pkg/mdast"
)

// DefaultIndentWidth is the number of spaces per nesting depth.
const DefaultIndentWidth = 2

// DefaultStyle is the chroma style used for highlighting.
const DefaultStyle = "github"

// Options controls the HTML produced by a Renderer.
type Options struct {
	// HeadingIDs adds GitHub-style id attributes to headings.
	HeadingIDs bool

	// Highlight colours code blocks with a known language.
	Highlight bool

	// Style is the chroma style name used for highlighting.
	Style string

	// DetectLanguage guesses the language of code blocks without an info string.
	DetectLanguage bool

	// IndentWidth is the number of spaces per nesting depth.
	IndentWidth int
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{
		Style:       DefaultStyle,
		IndentWidth: DefaultIndentWidth,
	}
}

// Renderer renders trees to HTML.
// A Renderer holds no per-document state and is safe for concurrent use.
type Renderer struct {
	opts   Options
	indent string
}

// New creates a Renderer. A negative indent width is treated as zero.
func New(opts Options) *Renderer {
	if opts.Style == "" {
		opts.Style = DefaultStyle
	}
	return &Renderer{
		opts:   opts,
		indent: strings.Repeat(" ", max(opts.IndentWidth, 0)),
	}
}

// Options returns the renderer's options.
func (r *Renderer) Options() Options {
	return r.opts
}

// Render renders every top-level node of tree, one after another.
func (r *Renderer) Render(tree *mdast.Tree) []byte {
	state := &renderState{
		Renderer: r,
		tree:     tree,
		anchors:  newAnchorSet(),
	}

	for _, child := range tree.Children(tree.Root()) {
		state.node(child, "")
	}

	return state.buf.Bytes()
}

// Render renders tree with default options.
func Render(tree *mdast.Tree) []byte {
	return New(DefaultOptions()).Render(tree)
}

// renderState is the scratch space of one Render call.
type renderState struct {
	*Renderer

	tree    *mdast.Tree
	buf     bytes.Buffer
	anchors *anchorSet
}

// node renders one node and its children at prefix.
func (s *renderState) node(id mdast.NodeID, prefix string) {
	node := s.tree.Node(id)

	switch node.Kind {
	case mdast.NodeRoot:
		s.children(node, prefix)
	case mdast.NodeHeading:
		s.heading(node, prefix)
	case mdast.NodeParagraph:
		s.line(prefix, "<p>", node.Text, "</p>")
	case mdast.NodeBlockQuote:
		s.container(node, prefix, "blockquote")
	case mdast.NodeOrderedList:
		s.container(node, prefix, "ol")
	case mdast.NodeUnorderedList:
		s.container(node, prefix, "ul")
	case mdast.NodeOrderedListItem, mdast.NodeUnorderedListItem:
		s.item(node, prefix)
	case mdast.NodeHorizontal:
		s.line(prefix, "<hr />")
	case mdast.NodeCodeBlock:
		s.code(node, prefix)
	case mdast.NodeEmptyLine:
		s.line(prefix, "<p><!-- empty --></p>")
	}
}

func (s *renderState) children(node *mdast.Node, prefix string) {
	for _, child := range node.Children {
		s.node(child, prefix)
	}
}

// line writes prefix, the parts and a newline.
func (s *renderState) line(prefix string, parts ...string) {
	s.buf.WriteString(prefix)
	for _, part := range parts {
		s.buf.WriteString(part)
	}
	s.buf.WriteByte('\n')
}

func (s *renderState) heading(node *mdast.Node, prefix string) {
	level := strconv.Itoa(min(max(node.Level, 1), 6))

	open := "<h" + level + ">"
	if s.opts.HeadingIDs {
		if id := s.anchors.add(PlainText(node.Text)); id != "" {
			open = "<h" + level + ` id="` + mdast.EscapeHTML(id) + `">`
		}
	}

	s.line(prefix, open, node.Text, "</h"+level+">")
}

// container renders a wrapping tag around the node's children.
func (s *renderState) container(node *mdast.Node, prefix, tag string) {
	s.line(prefix, "<", tag, ">")
	s.children(node, prefix+s.indent)
	s.line(prefix, "</", tag, ">")
}

// item renders a list item. Nested lists are wrapped inside the <li>.
func (s *renderState) item(node *mdast.Node, prefix string) {
	if !node.HasChildren() {
		s.line(prefix, "<li>", node.Text, "</li>")
		return
	}

	s.line(prefix, "<li>", node.Text)
	s.children(node, prefix+s.indent)
	s.line(prefix, "</li>")
}

// code renders a code block. Code lines are never prefixed.
func (s *renderState) code(node *mdast.Node, prefix string) {
	lang := s.language(node)

	var body string
	highlighted := false
	if s.opts.Highlight && lang != "" {
		body, highlighted = highlight(lang, s.opts.Style, strings.Join(node.Lines, "\n"))
	}
	if !highlighted {
		escaped := make([]string, len(node.Lines))
		for i, line := range node.Lines {
			escaped[i] = mdast.EscapeHTML(line)
		}
		body = strings.Join(escaped, "\n")
	}

	pre := "<pre>"
	if highlighted {
		pre = `<pre class="chroma">`
	}

	codeOpen := "<code>"
	if lang != "" {
		codeOpen = `<code class="language-` + mdast.EscapeHTML(lang) + `">`
	}

	s.line(prefix, pre, codeOpen, body, "</code></pre>")
}

// language picks the language tag of a code block, if any.
func (s *renderState) language(node *mdast.Node) string {
	if lang := langdetect.FromInfo(node.Info); lang != "" {
		return lang
	}
	if s.opts.DetectLanguage && len(node.Lines) > 0 {
		if lang, ok := langdetect.DetectLines(node.Lines); ok {
			return lang
		}
	}
	return ""
}
