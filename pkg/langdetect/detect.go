// Package langdetect names the language of code block content.
// It uses go-enry to resolve fence info strings and to classify code that
// carries no info string, so rendered blocks can be tagged and highlighted.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Text is returned when no language can be determined.
const Text = "text"

// Language tags returned by the pattern pass.
const (
	langGo         = "go"
	langPython     = "python"
	langJavaScript = "javascript"
	langJSON       = "json"
	langYAML       = "yaml"
	langHTML       = "html"
	langSQL        = "sql"
	langRust       = "rust"
	langDockerfile = "dockerfile"
	langBash       = "bash"
)

// minYAMLKeys is the number of key/value lines that marks content as YAML.
const minYAMLKeys = 2

// classifierCandidates limits the classifier to languages common in docs.
//
//nolint:gochecknoglobals // Read-only candidate list.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Markdown", "Dockerfile",
}

// sample is code content in the forms the pattern checks need.
type sample struct {
	raw     []byte
	trimmed []byte
	text    string
}

// patterns are tried in order of specificity.
//
//nolint:gochecknoglobals // Read-only detector table.
var patterns = []func(s sample) string{
	detectGo,
	detectPython,
	detectHTML,
	detectJSON,
	detectDockerfile,
	detectSQL,
	detectRust,
	detectJavaScript,
	detectYAML,
}

// Detect returns the detected language for code content.
// Returns Text if detection fails or confidence is low.
func Detect(content []byte) string {
	if len(content) == 0 {
		return Text
	}

	// Shebangs are the most reliable signal.
	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	smp := sample{
		raw:     content,
		trimmed: bytes.TrimSpace(content),
		text:    string(content),
	}
	for _, detect := range patterns {
		if lang := detect(smp); lang != "" {
			return lang
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return normalize(lang)
	}

	return Text
}

// DetectLines detects the language of a code block given as lines.
// It reports false when the result would be Text.
func DetectLines(lines []string) (string, bool) {
	lang := Detect([]byte(strings.Join(lines, "\n")))
	return lang, lang != Text
}

// FromInfo resolves the language named by a fence info string.
// Only the first word counts; known aliases ("golang", "sh", "yml") are
// mapped to their canonical tag, anything else is lowercased as-is.
func FromInfo(info string) string {
	fields := strings.Fields(info)
	if len(fields) == 0 {
		return ""
	}

	word := fields[0]
	if lang, ok := enry.GetLanguageByAlias(word); ok {
		return normalize(lang)
	}
	return strings.ToLower(word)
}

func detectGo(s sample) string {
	if bytes.HasPrefix(s.trimmed, []byte("package ")) {
		return langGo
	}
	return ""
}

func detectPython(s sample) string {
	switch {
	case strings.Contains(s.text, "def ") && strings.Contains(s.text, "):"):
		return langPython
	case strings.Contains(s.text, "__name__") || strings.Contains(s.text, "__main__"):
		return langPython
	case strings.Contains(s.text, "import ") && !strings.Contains(s.text, "import ("):
		// Go imports use "import (".
		if strings.Contains(s.text, "from ") || strings.HasPrefix(strings.TrimSpace(s.text), "import ") {
			return langPython
		}
	}
	return ""
}

func detectHTML(s sample) string {
	lower := bytes.ToLower(s.trimmed)
	for _, marker := range []string{"<!doctype html", "<html", "<head>", "<body>"} {
		if bytes.Contains(lower, []byte(marker)) {
			return langHTML
		}
	}
	return ""
}

func detectJSON(s sample) string {
	if (bytes.HasPrefix(s.trimmed, []byte("{")) || bytes.HasPrefix(s.trimmed, []byte("["))) &&
		bytes.Contains(s.trimmed, []byte(`"`)) {
		return langJSON
	}
	return ""
}

func detectDockerfile(s sample) string {
	if bytes.HasPrefix(s.trimmed, []byte("FROM ")) ||
		(bytes.Contains(s.raw, []byte("\nFROM ")) && bytes.Contains(s.raw, []byte("\nRUN "))) ||
		(bytes.Contains(s.raw, []byte("WORKDIR ")) && bytes.Contains(s.raw, []byte("COPY "))) {
		return langDockerfile
	}
	return ""
}

func detectSQL(s sample) string {
	upper := strings.TrimSpace(strings.ToUpper(s.text))
	for _, verb := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
		if strings.HasPrefix(upper, verb) {
			return langSQL
		}
	}
	return ""
}

func detectRust(s sample) string {
	for _, marker := range []string{"fn main()", "println!", "let mut "} {
		if strings.Contains(s.text, marker) {
			return langRust
		}
	}
	return ""
}

func detectJavaScript(s sample) string {
	for _, marker := range []string{"=>", "const ", "let ", "console.log"} {
		if strings.Contains(s.text, marker) {
			return langJavaScript
		}
	}
	return ""
}

// detectYAML counts "key: value" lines and root-level list items.
func detectYAML(s sample) string {
	keys := 0
	for _, line := range bytes.Split(s.raw, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || bytes.HasPrefix(line, []byte("#")) {
			continue
		}
		// Lines with parentheses or braces look like code.
		if bytes.Contains(line, []byte(": ")) &&
			!bytes.Contains(line, []byte("(")) &&
			!bytes.Contains(line, []byte("{")) &&
			!bytes.HasPrefix(line, []byte(`"`)) {
			keys++
		}
		if bytes.HasPrefix(line, []byte("- ")) {
			keys++
		}
	}

	if keys >= minYAMLKeys {
		return langYAML
	}
	return ""
}

// normalize converts go-enry language names to fence tags.
func normalize(lang string) string {
	if lang == "Shell" {
		return langBash
	}
	return strings.ToLower(lang)
}
