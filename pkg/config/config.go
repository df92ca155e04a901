// Package config defines configuration types for md2html.
// These types are plain data; discovery and merging live in internal/configloader.
package config

// Flavor selects the reference renderer used by compare.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// Defaults applied by NewConfig.
const (
	DefaultStyle           = "github"
	DefaultIndentWidth     = 2
	DefaultOutputExtension = ".html"
	MaxIndentWidth         = 8
)

// RenderConfig controls the HTML produced for each document.
// Pointer fields distinguish "unset" from an explicit false or zero so that
// a later source can switch a feature off.
type RenderConfig struct {
	// HeadingIDs adds GitHub-style id attributes to headings.
	HeadingIDs *bool `yaml:"heading_ids,omitempty"`

	// Highlight colours code blocks with a known language.
	Highlight *bool `yaml:"highlight,omitempty"`

	// Style is the chroma style used for highlighting.
	Style string `yaml:"style,omitempty"`

	// DetectLanguage guesses the language of code blocks without an info string.
	DetectLanguage *bool `yaml:"detect_language,omitempty"`

	// IndentWidth is the number of spaces per nesting depth.
	IndentWidth *int `yaml:"indent_width,omitempty"`

	// Standalone wraps output in a complete HTML document.
	Standalone *bool `yaml:"standalone,omitempty"`
}

// OutputConfig controls where rendered files go.
type OutputConfig struct {
	// Dir receives rendered files. Empty writes next to each source.
	Dir string `yaml:"dir,omitempty"`

	// Extension replaces the source extension.
	Extension string `yaml:"extension,omitempty"`
}

// CompareConfig controls the compare command.
type CompareConfig struct {
	// Flavor is the reference dialect: commonmark or gfm.
	Flavor Flavor `yaml:"flavor,omitempty"`
}

// Config is the root configuration structure.
type Config struct {
	Render  RenderConfig  `yaml:"render"`
	Output  OutputConfig  `yaml:"output"`
	Compare CompareConfig `yaml:"compare"`

	// Extensions are the file extensions treated as Markdown by build.
	Extensions []string `yaml:"extensions,omitempty"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `yaml:"ignore,omitempty"`

	// CLI-level options (not persisted to config files).

	// Jobs is the number of parallel workers (0 = auto).
	Jobs int `yaml:"-"`

	// DryRun converts without writing output.
	DryRun bool `yaml:"-"`
}

// NewConfig returns a Config with every default filled in.
func NewConfig() *Config {
	return &Config{
		Render: RenderConfig{
			HeadingIDs:     Bool(false),
			Highlight:      Bool(false),
			Style:          DefaultStyle,
			DetectLanguage: Bool(false),
			IndentWidth:    Int(DefaultIndentWidth),
			Standalone:     Bool(false),
		},
		Output: OutputConfig{
			Extension: DefaultOutputExtension,
		},
		Compare: CompareConfig{
			Flavor: FlavorCommonMark,
		},
		Extensions: []string{".md", ".markdown"},
	}
}

// Bool returns a pointer to v.
func Bool(v bool) *bool {
	return &v
}

// Int returns a pointer to v.
func Int(v int) *int {
	return &v
}

// BoolValue dereferences p, treating nil as false.
func BoolValue(p *bool) bool {
	return p != nil && *p
}

// IntValue dereferences p, treating nil as def.
func IntValue(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}
