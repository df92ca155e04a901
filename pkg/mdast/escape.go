package mdast

import "strings"

//nolint:gochecknoglobals // Replacer is safe for concurrent use.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// EscapeHTML escapes the characters that are significant in HTML text and
// attribute values. Apostrophes are left alone.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}
