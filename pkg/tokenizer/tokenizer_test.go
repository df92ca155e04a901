package tokenizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/md2html/pkg/mdast"
	"github.com/yaklabco/md2html/pkg/tokenizer"
)

type tok struct {
	kind  mdast.TokenKind
	value string
}

func simplify(tokens []mdast.Token) []tok {
	out := make([]tok, 0, len(tokens))
	for _, token := range tokens {
		out = append(out, tok{kind: token.Kind, value: token.Value})
	}
	return out
}

func TestTokenize_Empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, tokenizer.Tokenize(nil))
	assert.Empty(t, tokenizer.Tokenize([]byte{}))
}

func TestTokenize_Lossless(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{"plain text", "Hello, world!"},
		{"heading", "# Hello"},
		{"heading with text", "# Hello\nWorld"},
		{"list", "+ item 1\n+ item 2"},
		{"ordered list", "1. first\n2. second"},
		{"nested list", "+ a\n  + b\n"},
		{"blockquote", "> quoted text"},
		{"nested blockquote", "> > deep\n"},
		{"code fence", "```go\ncode\n```"},
		{"indented code", "    x := 1\n"},
		{"inline code", "Use `code` here"},
		{"emphasis", "*emphasis* and __strong__"},
		{"horizontal", "---\n* * *\n___"},
		{"crlf", "a\r\nb\rc\n"},
		{"mixed content", "# Title\n\nParagraph with *emphasis* and `code`.\n\n+ list item\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			content := []byte(tt.content)
			tokens := tokenizer.Tokenize(content)

			require.True(t, mdast.ValidateTokens(tokens, content), "tokens: %v", simplify(tokens))
			assert.Equal(t, tt.content, mdast.Concat(tokens))
		})
	}
}

func TestTokenize_LineStart(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    []tok
	}{
		{
			name:    "heading",
			content: "## Title\n",
			want: []tok{
				{mdast.TokPrefix, "## "},
				{mdast.TokText, "Title"},
				{mdast.TokNewline, "\n"},
			},
		},
		{
			name:    "bare heading marker",
			content: "#",
			want:    []tok{{mdast.TokPrefix, "#"}},
		},
		{
			name:    "hash without space is text",
			content: "#tag",
			want:    []tok{{mdast.TokText, "#tag"}},
		},
		{
			name:    "seven hashes is text",
			content: "####### x",
			want:    []tok{{mdast.TokText, "####### x"}},
		},
		{
			name:    "horizontal dashes",
			content: "---\n",
			want: []tok{
				{mdast.TokHorizontal, "---"},
				{mdast.TokNewline, "\n"},
			},
		},
		{
			name:    "horizontal spaced stars beat bullet",
			content: "* * *",
			want:    []tok{{mdast.TokHorizontal, "* * *"}},
		},
		{
			name:    "two dashes is not horizontal",
			content: "--",
			want:    []tok{{mdast.TokText, "--"}},
		},
		{
			name:    "blockquote",
			content: "> a",
			want: []tok{
				{mdast.TokPrefix, "> "},
				{mdast.TokText, "a"},
			},
		},
		{
			name:    "bare blockquote",
			content: ">\n",
			want: []tok{
				{mdast.TokPrefix, ">"},
				{mdast.TokNewline, "\n"},
			},
		},
		{
			name:    "blockquote re-enters line start",
			content: "> + a",
			want: []tok{
				{mdast.TokPrefix, "> "},
				{mdast.TokPrefix, "+ "},
				{mdast.TokText, "a"},
			},
		},
		{
			name:    "nested blockquote",
			content: "> > a",
			want: []tok{
				{mdast.TokPrefix, "> "},
				{mdast.TokPrefix, "> "},
				{mdast.TokText, "a"},
			},
		},
		{
			name:    "indented bullet",
			content: "  + b",
			want: []tok{
				{mdast.TokIndent, "  "},
				{mdast.TokPrefix, "+ "},
				{mdast.TokText, "b"},
			},
		},
		{
			name:    "dash bullet",
			content: "- b",
			want: []tok{
				{mdast.TokPrefix, "- "},
				{mdast.TokText, "b"},
			},
		},
		{
			name:    "ordered",
			content: "12. twelve",
			want: []tok{
				{mdast.TokPrefix, "12. "},
				{mdast.TokText, "twelve"},
			},
		},
		{
			name:    "bare ordered marker",
			content: "1.\n",
			want: []tok{
				{mdast.TokPrefix, "1."},
				{mdast.TokNewline, "\n"},
			},
		},
		{
			name:    "bare bullet at end of input",
			content: "-",
			want:    []tok{{mdast.TokPrefix, "-"}},
		},
		{
			name:    "number without space is text",
			content: "1.5",
			want:    []tok{{mdast.TokText, "1.5"}},
		},
		{
			name:    "indent only",
			content: "   \n",
			want: []tok{
				{mdast.TokIndent, "   "},
				{mdast.TokNewline, "\n"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, simplify(tokenizer.Tokenize([]byte(tt.content))))
		})
	}
}

func TestTokenize_Inline(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    []tok
	}{
		{
			name:    "emphasis",
			content: "a *b* c",
			want: []tok{
				{mdast.TokText, "a "},
				{mdast.TokEmphasis, "*"},
				{mdast.TokText, "b"},
				{mdast.TokEmphasis, "*"},
				{mdast.TokText, " c"},
			},
		},
		{
			name:    "double underscore is two tokens",
			content: "__x",
			want: []tok{
				{mdast.TokEmphasis, "_"},
				{mdast.TokEmphasis, "_"},
				{mdast.TokText, "x"},
			},
		},
		{
			name:    "backquote runs are single tokens",
			content: "```go",
			want: []tok{
				{mdast.TokBackQuote, "`"},
				{mdast.TokBackQuote, "`"},
				{mdast.TokBackQuote, "`"},
				{mdast.TokText, "go"},
			},
		},
		{
			name:    "newline kinds",
			content: "a\r\nb\rc\n",
			want: []tok{
				{mdast.TokText, "a"},
				{mdast.TokNewline, "\r\n"},
				{mdast.TokText, "b"},
				{mdast.TokNewline, "\r"},
				{mdast.TokText, "c"},
				{mdast.TokNewline, "\n"},
			},
		},
		{
			name:    "blank lines",
			content: "\n\n",
			want: []tok{
				{mdast.TokNewline, "\n"},
				{mdast.TokNewline, "\n"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, simplify(tokenizer.Tokenize([]byte(tt.content))))
		})
	}
}

func TestTokenize_Offsets(t *testing.T) {
	t.Parallel()

	tokens := tokenizer.Tokenize([]byte("# a\nb"))
	require.Len(t, tokens, 4)

	offsets := make([]int, 0, len(tokens))
	for _, token := range tokens {
		offsets = append(offsets, token.Offset)
	}
	assert.Equal(t, []int{0, 2, 3, 4}, offsets)
}
