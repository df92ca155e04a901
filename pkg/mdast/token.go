package mdast

import (
	"strconv"
	"strings"
)

// TokenKind classifies one lexical unit of the Markdown source.
type TokenKind uint8

// Token kinds cover every byte in the source.
const (
	TokText       TokenKind = iota
	TokPrefix               // '# ', '> ', '+ ', '1. '
	TokIndent               // leading whitespace
	TokEmphasis             // '*' or '_'
	TokHorizontal           // '---', '* * *', '___'
	TokNewline              // '\n', '\r\n', '\r'
	TokBackQuote            // '`'
)

//nolint:gochecknoglobals // Read-only lookup table.
var tokenKindNames = [...]string{
	TokText:       "Text",
	TokPrefix:     "Prefix",
	TokIndent:     "Indent",
	TokEmphasis:   "Emphasis",
	TokHorizontal: "Horizontal",
	TokNewline:    "NewLine",
	TokBackQuote:  "BackQuote",
}

// String returns the kind name.
func (k TokenKind) String() string {
	if int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}
	return "TokenKind(" + strconv.Itoa(int(k)) + ")"
}

// Token is an immutable classified span of the source.
// Tokens are contiguous and non-overlapping: concatenating the Value of every
// token in order reproduces the source exactly.
type Token struct {
	// Kind classifies what this token represents.
	Kind TokenKind

	// Value is the exact matched substring.
	Value string

	// Offset is the byte index where this token begins.
	Offset int
}

// End returns the byte index just past the token.
func (t Token) End() int {
	return t.Offset + len(t.Value)
}

// Len returns the length of this token in bytes.
func (t Token) Len() int {
	return len(t.Value)
}

// IsEmpty returns true if this token has zero length.
func (t Token) IsEmpty() bool {
	return t.Value == ""
}

// Concat joins the values of tokens in order.
func Concat(tokens []Token) string {
	size := 0
	for _, tok := range tokens {
		size += len(tok.Value)
	}

	var builder strings.Builder
	builder.Grow(size)
	for _, tok := range tokens {
		builder.WriteString(tok.Value)
	}
	return builder.String()
}

// ValidateTokens checks that a token slice is valid for content:
// - Tokens are non-empty, contiguous and non-overlapping.
// - Token values match the bytes they claim to cover.
// - Tokens cover the full content range [0, len(content)).
func ValidateTokens(tokens []Token, content []byte) bool {
	if len(tokens) == 0 {
		return len(content) == 0
	}

	offset := 0
	for _, tok := range tokens {
		if tok.IsEmpty() || tok.Offset != offset || tok.End() > len(content) {
			return false
		}
		if string(content[tok.Offset:tok.End()]) != tok.Value {
			return false
		}
		offset = tok.End()
	}

	return offset == len(content)
}
