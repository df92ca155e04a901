package render

import (
	"strings"

	"github.com/yaklabco/md2html/pkg/mdast"
)

// Standalone wraps an HTML fragment in a complete HTML5 document.
// css is inlined in a <style> element when non-empty.
func Standalone(body []byte, title, css string) []byte {
	var buf strings.Builder
	buf.Grow(len(body) + len(css) + 256)

	buf.WriteString("<!DOCTYPE html>\n")
	buf.WriteString("<html lang=\"en\">\n")
	buf.WriteString("<head>\n")
	buf.WriteString("  <meta charset=\"utf-8\">\n")
	buf.WriteString("  <meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
	buf.WriteString("  <title>" + mdast.EscapeHTML(title) + "</title>\n")
	if css != "" {
		buf.WriteString("  <style>\n")
		buf.WriteString(strings.TrimRight(css, "\n"))
		buf.WriteString("\n  </style>\n")
	}
	buf.WriteString("</head>\n")
	buf.WriteString("<body>\n")
	buf.Write(body)
	buf.WriteString("</body>\n")
	buf.WriteString("</html>\n")

	return []byte(buf.String())
}
