// Package tokenizer splits Markdown source into a flat, lossless token stream.
package tokenizer

import (
	"github.com/yaklabco/md2html/pkg/mdast"
)

// maxHeadingLevel is the deepest ATX heading level.
const maxHeadingLevel = 6

// minHorizontalMarkers is the number of marker characters a rule needs.
const minHorizontalMarkers = 3

// tokenizer performs a single-pass tokenization of Markdown content.
// It produces a contiguous, non-overlapping token stream covering [0, len(content)).
type tokenizer struct {
	content []byte
	tokens  []mdast.Token
	pos     int
}

// Tokenize performs a single-pass tokenization of the given content.
// Returns a slice of tokens that are contiguous, non-overlapping, and cover [0, len(content)).
// Tokenize never fails: bytes that match no construct become Text.
func Tokenize(content []byte) []mdast.Token {
	if len(content) == 0 {
		return nil
	}

	const initialCapacityDivisor = 4 // reasonable initial capacity estimate
	tok := &tokenizer{
		content: content,
		tokens:  make([]mdast.Token, 0, len(content)/initialCapacityDivisor+1),
	}

	for tok.pos < len(tok.content) {
		tok.tokenizeLine()
	}

	return tok.tokens
}

// tokenizeLine tokenizes a single line, handling line-start constructs first.
func (t *tokenizer) tokenizeLine() {
	t.scanLineStart()
	t.tokenizeInlineContent()
}

// scanLineStart emits the block markers that may open a line.
// It re-enters itself after a blockquote marker so quoted lines can carry
// their own indentation, lists, headings and nested quotes.
func (t *tokenizer) scanLineStart() {
	t.consumeIndentation()

	if t.atLineEnd() {
		return
	}

	switch ch := t.content[t.pos]; ch {
	case '#':
		t.tryHeadingMarker()
	case '-', '*', '_':
		if t.isHorizontal(ch) {
			t.consumeHorizontal()
			return
		}
		if ch != '_' {
			t.tryBulletMarker()
		}
	case '+':
		t.tryBulletMarker()
	case '>':
		if t.tryBlockquoteMarker() {
			t.scanLineStart()
		}
	default:
		if isDigit(ch) {
			t.tryOrderedMarker()
		}
	}
}

// consumeIndentation consumes leading whitespace and emits it as TokIndent.
func (t *tokenizer) consumeIndentation() {
	start := t.pos
	for t.pos < len(t.content) && isSpace(t.content[t.pos]) {
		t.pos++
	}
	if t.pos > start {
		t.emit(mdast.TokIndent, start, t.pos)
	}
}

// tryHeadingMarker attempts to parse an ATX heading marker (# through ######).
// The marker absorbs one separating space.
func (t *tokenizer) tryHeadingMarker() bool {
	start := t.pos
	pos := t.pos
	for pos < len(t.content) && t.content[pos] == '#' {
		pos++
	}

	count := pos - start
	if count > maxHeadingLevel {
		return false
	}

	switch {
	case t.isLineEnd(pos):
	case isSpace(t.content[pos]):
		pos++
	default:
		return false
	}

	t.pos = pos
	t.emit(mdast.TokPrefix, start, t.pos)
	return true
}

// isHorizontal checks if the rest of the line is a horizontal rule made of marker.
func (t *tokenizer) isHorizontal(marker byte) bool {
	count := 0
	for pos := t.pos; !t.isLineEnd(pos); pos++ {
		switch ch := t.content[pos]; {
		case ch == marker:
			count++
		case isSpace(ch):
		default:
			return false
		}
	}

	return count >= minHorizontalMarkers
}

// consumeHorizontal consumes a horizontal rule up to the newline.
func (t *tokenizer) consumeHorizontal() {
	start := t.pos
	for !t.atLineEnd() {
		t.pos++
	}
	t.emit(mdast.TokHorizontal, start, t.pos)
}

// tryBlockquoteMarker attempts to parse "> " or a bare ">" at end of line.
func (t *tokenizer) tryBlockquoteMarker() bool {
	start := t.pos
	pos := t.pos + 1

	switch {
	case t.isLineEnd(pos):
	case t.content[pos] == ' ':
		pos++
	default:
		return false
	}

	t.pos = pos
	t.emit(mdast.TokPrefix, start, t.pos)
	return true
}

// tryBulletMarker attempts to parse an unordered list marker ("+ ", "- ", "* ").
// A bare marker at end of line opens an empty item.
func (t *tokenizer) tryBulletMarker() bool {
	return t.markerEnd(t.pos + 1)
}

// tryOrderedMarker attempts to parse an ordered list marker ("1. " or a bare "1.").
func (t *tokenizer) tryOrderedMarker() bool {
	pos := t.pos
	for pos < len(t.content) && isDigit(t.content[pos]) {
		pos++
	}

	if pos >= len(t.content) || t.content[pos] != '.' {
		return false
	}
	return t.markerEnd(pos + 1)
}

// markerEnd emits a list marker ending just before pos if pos is a line end
// or a space, absorbing the space.
func (t *tokenizer) markerEnd(pos int) bool {
	switch {
	case t.isLineEnd(pos):
	case isSpace(t.content[pos]):
		pos++
	default:
		return false
	}

	start := t.pos
	t.pos = pos
	t.emit(mdast.TokPrefix, start, t.pos)
	return true
}

// tokenizeInlineContent tokenizes inline content until end of line,
// including the terminating newline.
func (t *tokenizer) tokenizeInlineContent() {
	for t.pos < len(t.content) {
		switch t.content[t.pos] {
		case '\n', '\r':
			t.consumeNewline()
			return
		case '`':
			t.emitSingle(mdast.TokBackQuote)
		case '*', '_':
			t.emitSingle(mdast.TokEmphasis)
		default:
			t.consumeText()
		}
	}
}

// consumeText consumes a run of text up to the next delimiter or newline.
func (t *tokenizer) consumeText() {
	start := t.pos
	for t.pos < len(t.content) && !isInlineDelimiter(t.content[t.pos]) {
		t.pos++
	}
	t.emit(mdast.TokText, start, t.pos)
}

// consumeNewline consumes "\n", "\r\n" or a lone "\r".
func (t *tokenizer) consumeNewline() {
	if t.pos >= len(t.content) {
		return
	}

	start := t.pos
	if t.content[t.pos] == '\r' {
		t.pos++
		if t.pos < len(t.content) && t.content[t.pos] == '\n' {
			t.pos++
		}
	} else if t.content[t.pos] == '\n' {
		t.pos++
	}

	if t.pos > start {
		t.emit(mdast.TokNewline, start, t.pos)
	}
}

// emitSingle emits a single-byte token.
func (t *tokenizer) emitSingle(kind mdast.TokenKind) {
	start := t.pos
	t.pos++
	t.emit(kind, start, t.pos)
}

// emit appends a token for content[start:end].
func (t *tokenizer) emit(kind mdast.TokenKind, start, end int) {
	t.tokens = append(t.tokens, mdast.Token{
		Kind:   kind,
		Value:  string(t.content[start:end]),
		Offset: start,
	})
}

// atLineEnd reports whether the cursor is at a newline or end of input.
func (t *tokenizer) atLineEnd() bool {
	return t.isLineEnd(t.pos)
}

// isLineEnd reports whether pos is at a newline or end of input.
func (t *tokenizer) isLineEnd(pos int) bool {
	return pos >= len(t.content) || t.content[pos] == '\n' || t.content[pos] == '\r'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t'
}

func isInlineDelimiter(ch byte) bool {
	switch ch {
	case '\n', '\r', '`', '*', '_':
		return true
	default:
		return false
	}
}
