// Package parser builds an mdast.Tree from a token stream.
//
// Parsing is a single pass with an explicit cursor. At every token an ordered
// list of grammar rules is tried; the first rule that matches consumes tokens
// and mutates the tree, a rule that does not match leaves the cursor where it
// was. The last rule always matches, so every input produces a tree.
package parser

import (
	"strings"

	"github.com/yaklabco/md2html/pkg/mdast"
	"github.com/yaklabco/md2html/pkg/tokenizer"
)

// rule tries to match at the cursor. It reports whether it consumed tokens.
type rule func(p *parser) bool

// rules in precedence order, highest first.
//
//nolint:gochecknoglobals // Fixed grammar table.
var rules = []rule{
	(*parser).heading,
	(*parser).horizontal,
	(*parser).blockQuote,
	(*parser).list,
	(*parser).fencedCode,
	(*parser).indentedCode,
	(*parser).inlineCode,
	(*parser).emphasis,
	(*parser).newline,
	(*parser).paragraph,
}

type parser struct {
	tokens []mdast.Token
	pos    int
	ctx    *ParsingContext

	// eolFrom..eol is a token range known to hold no newline before eol.
	eolFrom int
	eol     int

	// misses records, per delimiter run, the first opener on the line at
	// eol from which no closer exists.
	misses map[delimiter]int
}

// delimiter identifies an emphasis run by character and length.
type delimiter struct {
	value string
	run   int
}

// Parse builds the document tree for a token stream.
// Parse never fails: unrecognised structure degrades into paragraphs.
func Parse(tokens []mdast.Token) *mdast.Tree {
	p := &parser{
		tokens: tokens,
		ctx:    NewParsingContext(),
		eol:    -1,
		misses: make(map[delimiter]int),
	}

	for p.pos < len(p.tokens) {
		p.step()
	}
	p.closeInline()
	p.ctx.flushText()

	return p.ctx.tree
}

// ParseSource tokenizes and parses source into a Document.
func ParseSource(path string, source []byte) *mdast.Document {
	doc := mdast.NewDocument(path, source)
	doc.Tokens = tokenizer.Tokenize(source)
	doc.Tree = Parse(doc.Tokens)
	return doc
}

// step applies the first matching rule at the cursor.
func (p *parser) step() {
	for _, try := range rules {
		mark := p.pos
		if try(p) {
			return
		}
		p.pos = mark
	}
}

// lineStart returns the index of the first token on the line holding index i.
func (p *parser) lineStart(i int) int {
	for i > 0 && p.tokens[i-1].Kind != mdast.TokNewline {
		i--
	}
	return i
}

// lineEnd returns the index of the newline token ending the line that
// holds index i, or len(tokens) on the last line.
func (p *parser) lineEnd(i int) int {
	if i >= p.eolFrom && i <= p.eol {
		return p.eol
	}

	end := i
	for end < len(p.tokens) && p.tokens[end].Kind != mdast.TokNewline {
		end++
	}
	if end != p.eol {
		clear(p.misses)
	}
	p.eolFrom, p.eol = i, end

	return end
}

// atBlockStart reports whether only indentation and blockquote markers
// precede index i on its line.
func (p *parser) atBlockStart(i int) bool {
	for j := i - 1; j >= 0 && p.tokens[j].Kind != mdast.TokNewline; j-- {
		if p.tokens[j].Kind != mdast.TokIndent && !isQuoteMarker(p.tokens[j]) {
			return false
		}
	}
	return true
}

// lineBlank reports whether only indentation precedes index i on its line.
func (p *parser) lineBlank(i int) bool {
	for j := i - 1; j >= 0 && p.tokens[j].Kind != mdast.TokNewline; j-- {
		if p.tokens[j].Kind != mdast.TokIndent {
			return false
		}
	}
	return true
}

// runLength counts consecutive tokens of kind starting at i.
// For emphasis tokens the run is further restricted to the same character.
func (p *parser) runLength(i int, kind mdast.TokenKind, value string) int {
	n := 0
	for i+n < len(p.tokens) && p.tokens[i+n].Kind == kind && p.tokens[i+n].Value == value {
		n++
	}
	return n
}

// inlineTarget returns the node receiving inline content on this line,
// continuing the previous line's paragraph or opening a new one if needed.
func (p *parser) inlineTarget(at mdast.Token) mdast.NodeID {
	ctx := p.ctx
	if ctx.inline.Valid() {
		return ctx.inline
	}

	prev := ctx.prev
	if prev.kind == mdast.NodeParagraph && prev.parent == ctx.parent &&
		prev.indent == ctx.column && len(ctx.quotes) == 0 {
		ctx.appendText(prev.node, "\n")
		ctx.inline = prev.node
		ctx.cur = prev
		return prev.node
	}

	id := ctx.Append(mdast.Node{
		Kind:   mdast.NodeParagraph,
		Indent: ctx.column,
		Offset: at.Offset,
	})
	ctx.inline = id
	ctx.open(mdast.NodeParagraph, id, ctx.column)

	return id
}

// appendInline splices rendered inline HTML into a node's text.
// Leading whitespace is dropped at the start of a line of text.
func (p *parser) appendInline(id mdast.NodeID, html string) {
	text := p.ctx.textOf(id)
	if len(text) == 0 || text[len(text)-1] == '\n' {
		html = strings.TrimLeft(html, " \t")
	}
	p.ctx.appendText(id, html)
}

// closeInline trims trailing whitespace from the line's inline target.
func (p *parser) closeInline() {
	if p.ctx.inline.Valid() {
		p.ctx.trimText(p.ctx.inline)
	}
}

func isQuoteMarker(tok mdast.Token) bool {
	return tok.Kind == mdast.TokPrefix && tok.Value[0] == '>'
}

func isHeadingMarker(tok mdast.Token) bool {
	return tok.Kind == mdast.TokPrefix && tok.Value[0] == '#'
}

// listKind returns the list kind opened by a marker, or NodeRoot if tok is
// not a list marker.
func listKind(tok mdast.Token) mdast.NodeKind {
	if tok.Kind != mdast.TokPrefix {
		return mdast.NodeRoot
	}
	switch ch := tok.Value[0]; {
	case ch == '+' || ch == '-' || ch == '*':
		return mdast.NodeUnorderedList
	case ch >= '0' && ch <= '9':
		return mdast.NodeOrderedList
	default:
		return mdast.NodeRoot
	}
}

func isBlank(tokens []mdast.Token) bool {
	for _, tok := range tokens {
		if strings.TrimSpace(tok.Value) != "" {
			return false
		}
	}
	return true
}

func startsWithSpace(tok mdast.Token) bool {
	return tok.Kind == mdast.TokNewline || tok.Value[0] == ' ' || tok.Value[0] == '\t'
}

func endsWithSpace(tok mdast.Token) bool {
	last := tok.Value[len(tok.Value)-1]
	return tok.Kind == mdast.TokNewline || last == ' ' || last == '\t'
}

func isWordByte(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch >= '0' && ch <= '9' || ch >= 0x80
}
