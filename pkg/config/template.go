package config

import (
	"bytes"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full writes every key with its default value instead of a commented
	// minimal file.
	Full bool

	// Styles lists the highlighting styles to document in a full template.
	// The config package does not depend on the renderer, so callers pass them in.
	Styles []string

	// EnvVars lists environment overrides as name/description pairs, appended
	// to a full template as comments.
	EnvVars [][2]string
}

// DefaultTemplateHeader returns the comment block at the top of generated files.
func DefaultTemplateHeader() string {
	return "# md2html configuration\n# See: https://github.com/yaklabco/md2html\n"
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) []byte {
	if opts.Full {
		return generateFullTemplate(opts)
	}
	return generateMinimalTemplate()
}

func generateMinimalTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`
render:
  # Add GitHub-style id attributes to headings
  # heading_ids: false

  # Colour fenced code blocks that name a language
  # highlight: false
  # style: github

  # Guess the language of code blocks without an info string
  # detect_language: false

  # Spaces per nesting level in the generated HTML
  # indent_width: 2

  # Wrap output in a complete HTML document
  # standalone: false

# output:
#   dir: site
#   extension: .html

# File patterns to skip (glob patterns)
# ignore:
#   - "vendor/**"
#   - "node_modules/**"
`)

	return buf.Bytes()
}

func generateFullTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`#
# Every key is listed with its default value.

render:
  heading_ids: false
  highlight: false
`)
	if len(opts.Styles) > 0 {
		buf.WriteString(wrapComment("Available styles: "+strings.Join(opts.Styles, ", "), commentWrapWidth, "  "))
	}
	buf.WriteString(`  style: github
  detect_language: false
  indent_width: 2
  standalone: false

output:
  # Empty writes each file next to its source
  dir: ""
  extension: .html

compare:
  # Reference dialect: commonmark or gfm
  flavor: commonmark

extensions:
  - .md
  - .markdown

ignore:
  - "vendor/**"
  - "node_modules/**"
`)

	if len(opts.EnvVars) > 0 {
		buf.WriteString("\n# Environment overrides:\n")
		for _, ev := range opts.EnvVars {
			buf.WriteString("#   " + ev[0] + "  " + ev[1] + "\n")
		}
	}

	return buf.Bytes()
}

// wrapComment word-wraps text into comment lines of at most maxWidth columns.
func wrapComment(text string, maxWidth int, indent string) string {
	var buf strings.Builder
	line := indent + "#"

	for _, word := range strings.Fields(text) {
		if len(line)+1+len(word) > maxWidth && len(line) > len(indent)+1 {
			buf.WriteString(line + "\n")
			line = indent + "#"
		}
		line += " " + word
	}
	buf.WriteString(line + "\n")

	return buf.String()
}
