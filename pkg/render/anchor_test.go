package render_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/md2html/pkg/render"
)

func TestSlug(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want string
	}{
		{"Hello World", "hello-world"},
		{"  Leading and trailing  ", "leading-and-trailing"},
		{"What's new?", "whats-new"},
		{"snake_case stays", "snake_case-stays"},
		{"a - b", "a-b"},
		{"Ünïcödé 123", "ünïcödé-123"},
		{"!!!", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, render.Slug(tt.text), "slug of %q", tt.text)
	}
}

func TestPlainText(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a <b> & c", render.PlainText("<em>a</em> <code>&lt;b&gt;</code> &amp; c"))
}

func TestTitle(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Main title", render.Title(parse("intro\n\n# Main *title*\n## Sub\n")))
	assert.Empty(t, render.Title(parse("no headings")))
}
