package render

import (
	"fmt"
	"slices"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// highlight colours code with the lexer for lang. It reports false when no
// lexer exists or tokenising fails, in which case the caller escapes the code
// itself.
func highlight(lang, style, code string) (string, bool) {
	lexer := lexers.Get(lang)
	if lexer == nil {
		return "", false
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", false
	}

	var buf strings.Builder
	if err := formatter().Format(&buf, styles.Get(style), iterator); err != nil {
		return "", false
	}

	return strings.TrimRight(buf.String(), "\n"), true
}

func formatter() *chromahtml.Formatter {
	return chromahtml.New(
		chromahtml.WithClasses(true),
		chromahtml.PreventSurroundingPre(true),
	)
}

// StyleCSS returns the stylesheet for highlighted code in the named style.
func StyleCSS(style string) (string, error) {
	if !HasStyle(style) {
		return "", fmt.Errorf("unknown style %q", style)
	}

	var buf strings.Builder
	if err := formatter().WriteCSS(&buf, styles.Get(style)); err != nil {
		return "", fmt.Errorf("writing css for style %q: %w", style, err)
	}
	return buf.String(), nil
}

// HasStyle reports whether a chroma style is registered under name.
func HasStyle(name string) bool {
	return slices.Contains(styles.Names(), name)
}

// StyleNames lists the available chroma styles.
func StyleNames() []string {
	return styles.Names()
}
