// Package reference renders Markdown with goldmark so md2html output can be
// compared against a CommonMark implementation.
package reference

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Flavors understood by New.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// Renderer renders Markdown through goldmark.
type Renderer struct {
	flavor string
	md     goldmark.Markdown
}

// New creates a reference renderer for the given flavor.
// Unknown flavors default to "commonmark".
func New(flavor string) *Renderer {
	if flavor != FlavorGFM {
		flavor = FlavorCommonMark
	}

	opts := []goldmark.Option{
		goldmark.WithRendererOptions(html.WithXHTML()),
	}
	if flavor == FlavorGFM {
		opts = append(opts, goldmark.WithExtensions(extension.GFM))
	}

	return &Renderer{
		flavor: flavor,
		md:     goldmark.New(opts...),
	}
}

// Flavor returns the configured Markdown flavor.
func (r *Renderer) Flavor() string {
	return r.flavor
}

// Render converts source to HTML.
func (r *Renderer) Render(ctx context.Context, source []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("reference render cancelled: %w", err)
	}

	var buf bytes.Buffer
	if err := r.md.Convert(source, &buf); err != nil {
		return nil, fmt.Errorf("reference render: %w", err)
	}

	return buf.Bytes(), nil
}

// emptyPlaceholder is the line md2html emits for blank lines.
const emptyPlaceholder = "<p><!-- empty --></p>"

// Normalize makes md2html and goldmark output comparable line by line.
// It strips indentation outside <pre> blocks, drops blank-line placeholders
// and blank lines.
func Normalize(out []byte) []byte {
	var buf bytes.Buffer
	inPre := false

	for _, line := range strings.Split(string(out), "\n") {
		if !inPre {
			line = strings.TrimLeft(line, " \t")
		}

		if strings.Contains(line, "<pre") {
			inPre = true
		}
		if strings.Contains(line, "</pre>") {
			inPre = false
		}

		if line == "" || line == emptyPlaceholder {
			continue
		}

		buf.WriteString(line)
		buf.WriteByte('\n')
	}

	return buf.Bytes()
}
