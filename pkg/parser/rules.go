package parser

import (
	"strings"

	"github.com/yaklabco/md2html/pkg/mdast"
)

const (
	// fenceLength is the number of back-ticks in a code fence.
	fenceLength = 3

	// codeIndent is the indentation that opens an indented code block.
	codeIndent = 4

	// maxEmphasisRun is the longest delimiter run that forms a span.
	maxEmphasisRun = 2
)

// heading matches a heading marker followed by content on the same line.
func (p *parser) heading() bool {
	tok := p.tokens[p.pos]
	if !isHeadingMarker(tok) {
		return false
	}

	end := p.lineEnd(p.pos + 1)
	if isBlank(p.tokens[p.pos+1 : end]) {
		return false
	}

	ctx := p.ctx
	id := ctx.Append(mdast.Node{
		Kind:   mdast.NodeHeading,
		Level:  strings.Count(tok.Value, "#"),
		Offset: tok.Offset,
	})
	ctx.inline = id
	ctx.open(mdast.NodeHeading, id, ctx.column)
	ctx.AdvanceColumn(len(tok.Value))
	p.pos++

	return true
}

// horizontal matches a horizontal rule line.
func (p *parser) horizontal() bool {
	tok := p.tokens[p.pos]
	if tok.Kind != mdast.TokHorizontal {
		return false
	}

	ctx := p.ctx
	id := ctx.Append(mdast.Node{Kind: mdast.NodeHorizontal, Offset: tok.Offset})
	ctx.open(mdast.NodeHorizontal, id, ctx.column)
	ctx.AdvanceColumn(len(tok.Value))
	p.pos++

	return true
}

// blockQuote matches a quote marker. The quote opened at the same nesting
// depth on the previous line is re-entered, otherwise a new one is opened.
func (p *parser) blockQuote() bool {
	tok := p.tokens[p.pos]
	if !isQuoteMarker(tok) {
		return false
	}

	ctx := p.ctx
	depth := len(ctx.quotes)

	var quote mdast.NodeID
	if depth < len(ctx.prevQuotes) && ctx.tree.Parent(ctx.prevQuotes[depth]) == ctx.parent {
		quote = ctx.prevQuotes[depth]
	} else {
		quote = ctx.Append(mdast.Node{Kind: mdast.NodeBlockQuote, Offset: tok.Offset})
	}

	ctx.quotes = append(ctx.quotes, quote)
	ctx.SetParent(quote)
	ctx.open(mdast.NodeBlockQuote, quote, ctx.column)
	ctx.inline = mdast.NoNode
	ctx.AdvanceColumn(len(tok.Value))
	p.pos++

	return true
}

// list matches an optional indent followed by a list marker.
//
// The indent selects the list: lists deeper than it are closed, a list of the
// same kind at the same indent is reused, a deeper indent nests a new list
// under the last item, and a kind change at the same indent replaces the list.
func (p *parser) list() bool {
	idx := p.pos
	indent := 0
	if p.tokens[idx].Kind == mdast.TokIndent {
		indent = indentWidth(p.tokens[idx].Value)
		idx++
	}
	if idx >= len(p.tokens) {
		return false
	}

	marker := p.tokens[idx]
	kind := listKind(marker)
	if kind == mdast.NodeRoot {
		return false
	}

	ctx := p.ctx
	stack := ctx.activeLists()
	for len(stack) > 0 && stack[len(stack)-1].indent > indent {
		stack = stack[:len(stack)-1]
	}
	if len(stack) == 0 && indent >= codeIndent {
		return false
	}

	if len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.indent == indent && top.kind != kind {
			stack = stack[:len(stack)-1]
		}
	}

	switch {
	case len(stack) == 0:
		list := ctx.Append(mdast.Node{Kind: kind, Indent: indent, Offset: marker.Offset})
		stack = append(stack, listFrame{kind: kind, list: list, indent: indent})
	case stack[len(stack)-1].indent < indent:
		list := ctx.tree.Append(stack[len(stack)-1].lastItem, mdast.Node{
			Kind:   kind,
			Indent: indent,
			Line:   ctx.line,
			Offset: marker.Offset,
		})
		stack = append(stack, listFrame{kind: kind, list: list, indent: indent})
	}

	top := &stack[len(stack)-1]
	item := ctx.tree.Append(top.list, mdast.Node{
		Kind:   kind.ItemKind(),
		Indent: indent,
		Line:   ctx.line,
		Offset: marker.Offset,
	})
	top.lastItem = item
	ctx.lists = stack

	ctx.inline = item
	ctx.open(kind.ItemKind(), item, indent)
	ctx.AdvanceColumn(indent + len(marker.Value))
	p.pos = idx + 1

	return true
}

// fencedCode matches a back-tick fence at the start of a block and captures
// every line up to the closing fence, or to the end of input.
// Lines inside a quote have the quote's markers stripped.
func (p *parser) fencedCode() bool {
	idx := p.pos
	if p.tokens[idx].Kind == mdast.TokIndent {
		idx++
	}

	run := p.runLength(idx, mdast.TokBackQuote, "`")
	if run < fenceLength || !p.atBlockStart(p.pos) {
		return false
	}

	ctx := p.ctx
	startLine := ctx.line
	depth := len(ctx.quotes)

	infoEnd := p.lineEnd(idx + run)
	info := strings.TrimSpace(mdast.Concat(p.tokens[idx+run : infoEnd]))

	var lines []string
	cursor := p.skipNewline(infoEnd)
	for cursor < len(p.tokens) {
		cursor = p.skipQuotes(cursor, depth)
		if end, ok := p.closingFence(cursor); ok {
			cursor = end
			break
		}

		end := p.lineEnd(cursor)
		lines = append(lines, mdast.Concat(p.tokens[cursor:end]))
		cursor = p.skipNewline(end)
	}

	id := ctx.Append(mdast.Node{
		Kind:   mdast.NodeCodeBlock,
		Lines:  lines,
		Info:   info,
		Fenced: true,
		Line:   startLine,
		Offset: p.tokens[p.pos].Offset,
	})
	ctx.open(mdast.NodeCodeBlock, id, ctx.column)
	p.pos = cursor

	return true
}

// closingFence reports whether the line at i is a closing fence, returning
// the index of its newline.
func (p *parser) closingFence(i int) (int, bool) {
	if i < len(p.tokens) && p.tokens[i].Kind == mdast.TokIndent {
		i++
	}

	run := p.runLength(i, mdast.TokBackQuote, "`")
	if run < fenceLength {
		return 0, false
	}

	end := p.lineEnd(i + run)
	if !isBlank(p.tokens[i+run : end]) {
		return 0, false
	}

	return end, true
}

// skipNewline steps over the newline at i, counting the line.
func (p *parser) skipNewline(i int) int {
	if i < len(p.tokens) && p.tokens[i].Kind == mdast.TokNewline {
		p.ctx.line++
		return i + 1
	}
	return i
}

// skipQuotes steps over up to depth quote markers.
func (p *parser) skipQuotes(i, depth int) int {
	for n := 0; n < depth && i < len(p.tokens) && isQuoteMarker(p.tokens[i]); n++ {
		i++
	}
	return i
}

// indentedCode matches an indent of at least four columns followed by
// content. It extends the code block opened by the previous line.
func (p *parser) indentedCode() bool {
	tok := p.tokens[p.pos]
	if tok.Kind != mdast.TokIndent || indentWidth(tok.Value) < codeIndent {
		return false
	}

	end := p.lineEnd(p.pos + 1)
	if end == p.pos+1 || !p.atBlockStart(p.pos) {
		return false
	}

	ctx := p.ctx
	text := stripColumns(tok.Value, codeIndent) + mdast.Concat(p.tokens[p.pos+1:end])

	id := mdast.NoNode
	if prev := ctx.prev; prev.kind == mdast.NodeCodeBlock && prev.parent == ctx.parent {
		if node := ctx.tree.Node(prev.node); !node.Fenced {
			node.Lines = append(node.Lines, text)
			id = prev.node
		}
	}
	if !id.Valid() {
		id = ctx.Append(mdast.Node{
			Kind:   mdast.NodeCodeBlock,
			Lines:  []string{text},
			Offset: tok.Offset,
		})
	}

	ctx.open(mdast.NodeCodeBlock, id, 0)
	p.pos = end

	return true
}

// inlineCode matches a back-tick pair on one line and splices a code span
// into the line's inline target.
func (p *parser) inlineCode() bool {
	tok := p.tokens[p.pos]
	if tok.Kind != mdast.TokBackQuote {
		return false
	}

	end := p.lineEnd(p.pos + 1)
	closing := -1
	for j := p.pos + 1; j < end; j++ {
		if p.tokens[j].Kind == mdast.TokBackQuote {
			closing = j
			break
		}
	}
	if closing <= p.pos+1 {
		return false
	}

	code := mdast.Concat(p.tokens[p.pos+1 : closing])
	p.appendInline(p.inlineTarget(tok), "<code>"+mdast.EscapeHTML(code)+"</code>")
	p.pos = closing + 1

	return true
}

// emphasis matches a pair of single or double delimiters on one line and
// splices an <em> or <strong> span into the line's inline target.
// An opening delimiter must be followed by non-space, a closing one must be
// preceded by non-space, and underscores inside a word are literal.
func (p *parser) emphasis() bool {
	tok := p.tokens[p.pos]
	if tok.Kind != mdast.TokEmphasis {
		return false
	}

	run := p.runLength(p.pos, mdast.TokEmphasis, tok.Value)
	if run > maxEmphasisRun {
		return false
	}

	open := p.pos + run
	end := p.lineEnd(open)
	if open >= end || startsWithSpace(p.tokens[open]) || p.tokens[open].Kind == mdast.TokEmphasis {
		return false
	}

	underscore := tok.Value == "_"
	if underscore && p.pos > 0 && p.wordBefore(p.pos) {
		return false
	}

	// A closer is valid regardless of its opener, so once a search from
	// some opener fails, every later opener of the same run fails too.
	key := delimiter{value: tok.Value, run: run}
	if from, ok := p.misses[key]; ok && open >= from {
		return false
	}

	for j := open + 1; j < end; j++ {
		if p.tokens[j].Kind != mdast.TokEmphasis || p.tokens[j].Value != tok.Value {
			continue
		}

		closeRun := p.runLength(j, mdast.TokEmphasis, tok.Value)
		after := j + closeRun
		if closeRun != run || endsWithSpace(p.tokens[j-1]) ||
			(underscore && after < end && p.wordAfter(after)) {
			j = after - 1
			continue
		}

		tag := "em"
		if run == maxEmphasisRun {
			tag = "strong"
		}

		inner := mdast.EscapeHTML(mdast.Concat(p.tokens[open:j]))
		p.appendInline(p.inlineTarget(tok), "<"+tag+">"+inner+"</"+tag+">")
		p.pos = after

		return true
	}

	p.misses[key] = open

	return false
}

// wordBefore reports whether the token before i ends in a word character.
func (p *parser) wordBefore(i int) bool {
	prev := p.tokens[i-1]
	return prev.Kind == mdast.TokText && isWordByte(prev.Value[len(prev.Value)-1])
}

// wordAfter reports whether the token at i starts with a word character.
func (p *parser) wordAfter(i int) bool {
	next := p.tokens[i]
	return next.Kind == mdast.TokText && isWordByte(next.Value[0])
}

// newline ends the line. A blank line adds one EmptyLine to the root unless
// the root already ends with one. At the start of the document the first
// blank line is dropped and a second one adds the EmptyLine.
func (p *parser) newline() bool {
	tok := p.tokens[p.pos]
	if tok.Kind != mdast.TokNewline {
		return false
	}

	ctx := p.ctx
	p.closeInline()

	if p.lineBlank(p.pos) {
		tree := ctx.tree
		last := tree.LastChild(mdast.RootID)
		afterContent := last.Valid() && tree.Kind(last) != mdast.NodeEmptyLine
		afterBlank := !last.Valid() && ctx.prev.kind == mdast.NodeEmptyLine
		if afterContent || afterBlank {
			tree.Append(mdast.RootID, mdast.Node{
				Kind:   mdast.NodeEmptyLine,
				Line:   ctx.line,
				Offset: p.tokens[p.lineStart(p.pos)].Offset,
			})
		}
		ctx.cur = lineState{kind: mdast.NodeEmptyLine, node: mdast.NoNode, parent: mdast.RootID}
	}

	ctx.ResetLine()
	p.pos++

	return true
}

// paragraph absorbs any remaining token as paragraph text.
// Indentation only advances the column.
func (p *parser) paragraph() bool {
	tok := p.tokens[p.pos]
	p.pos++

	if tok.Kind == mdast.TokIndent {
		p.ctx.AdvanceColumn(indentWidth(tok.Value))
		return true
	}

	p.appendInline(p.inlineTarget(tok), mdast.EscapeHTML(tok.Value))

	return true
}
