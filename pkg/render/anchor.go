package render

import (
	"html"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/yaklabco/md2html/pkg/mdast"
)

//nolint:gochecknoglobals // Compiled once.
var tagPattern = regexp.MustCompile(`<[^>]*>`)

// PlainText strips tags and entities from rendered inline text.
func PlainText(inline string) string {
	return html.UnescapeString(tagPattern.ReplaceAllString(inline, ""))
}

// Title returns the plain text of the first heading in tree, or "".
func Title(tree *mdast.Tree) string {
	id := mdast.FindFirst(tree, func(n *mdast.Node) bool {
		return n.Kind == mdast.NodeHeading
	})
	if !id.Valid() {
		return ""
	}
	return strings.TrimSpace(PlainText(tree.Node(id).Text))
}

// anchorSet hands out unique heading anchors within one document.
type anchorSet struct {
	// seenCounts tracks how many times each base anchor has been seen,
	// used for generating duplicate suffixes.
	seenCounts map[string]int
}

func newAnchorSet() *anchorSet {
	return &anchorSet{seenCounts: make(map[string]int)}
}

// add returns the anchor for heading text, suffixed -1, -2, ... on repeats.
func (a *anchorSet) add(text string) string {
	base := Slug(text)
	if base == "" {
		return ""
	}

	count := a.seenCounts[base]
	a.seenCounts[base] = count + 1

	if count == 0 {
		return base
	}
	return base + "-" + strconv.Itoa(count)
}

// Slug converts heading text to a GitHub-compatible anchor:
//  1. Convert to lowercase
//  2. Drop punctuation other than hyphens and underscores
//  3. Replace spaces with hyphens
//  4. Collapse repeated hyphens and trim them from both ends
func Slug(text string) string {
	var buf strings.Builder
	buf.Grow(len(text))

	prevHyphen := false
	for _, ch := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(ch) || unicode.IsNumber(ch):
			buf.WriteRune(ch)
			prevHyphen = false
		case ch == '-' || ch == '_':
			buf.WriteRune(ch)
			prevHyphen = ch == '-'
		case ch == ' ':
			if !prevHyphen && buf.Len() > 0 {
				buf.WriteByte('-')
				prevHyphen = true
			}
		}
	}

	result := strings.Trim(buf.String(), "-")
	for strings.Contains(result, "--") {
		result = strings.ReplaceAll(result, "--", "-")
	}

	return result
}
