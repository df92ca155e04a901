package mdast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/md2html/pkg/mdast"
)

func TestTokenKind_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind mdast.TokenKind
		want string
	}{
		{mdast.TokText, "Text"},
		{mdast.TokPrefix, "Prefix"},
		{mdast.TokIndent, "Indent"},
		{mdast.TokEmphasis, "Emphasis"},
		{mdast.TokHorizontal, "Horizontal"},
		{mdast.TokNewline, "NewLine"},
		{mdast.TokBackQuote, "BackQuote"},
		{mdast.TokenKind(200), "TokenKind(200)"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.String())
	}
}

func TestToken_Span(t *testing.T) {
	t.Parallel()

	tok := mdast.Token{Kind: mdast.TokText, Value: "hello", Offset: 3}
	assert.Equal(t, 8, tok.End())
	assert.Equal(t, 5, tok.Len())
	assert.False(t, tok.IsEmpty())
	assert.True(t, mdast.Token{}.IsEmpty())
}

func TestValidateTokens(t *testing.T) {
	t.Parallel()

	content := []byte("# hi\n")
	valid := []mdast.Token{
		{Kind: mdast.TokPrefix, Value: "# ", Offset: 0},
		{Kind: mdast.TokText, Value: "hi", Offset: 2},
		{Kind: mdast.TokNewline, Value: "\n", Offset: 4},
	}

	tests := []struct {
		name    string
		tokens  []mdast.Token
		content []byte
		want    bool
	}{
		{name: "valid", tokens: valid, content: content, want: true},
		{name: "empty both", tokens: nil, content: nil, want: true},
		{name: "no tokens for content", tokens: nil, content: content, want: false},
		{name: "gap", tokens: []mdast.Token{valid[0], valid[2]}, content: content, want: false},
		{name: "short coverage", tokens: valid[:2], content: content, want: false},
		{
			name: "value mismatch",
			tokens: []mdast.Token{
				valid[0],
				{Kind: mdast.TokText, Value: "ho", Offset: 2},
				valid[2],
			},
			content: content,
			want:    false,
		},
		{
			name:    "empty token",
			tokens:  []mdast.Token{{Kind: mdast.TokText, Offset: 0}, valid[0], valid[1], valid[2]},
			content: content,
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, mdast.ValidateTokens(tt.tokens, tt.content))
		})
	}

	assert.Equal(t, "# hi\n", mdast.Concat(valid))
}
