package configloader

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/md2html/pkg/config"
)

// envVarPrefix is the prefix for all md2html environment variables.
const envVarPrefix = "MD2HTML_"

// envVar binds one environment variable to a config field.
type envVar struct {
	suffix string
	help   string
	apply  func(cfg *config.Config, value string) error
}

// envVars lists the supported variables in documentation order.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envVars = []envVar{
	{"HEADING_IDS", "Add id attributes to headings: true or false", boolField(func(c *config.Config) **bool { return &c.Render.HeadingIDs })},
	{"HIGHLIGHT", "Highlight code blocks: true or false", boolField(func(c *config.Config) **bool { return &c.Render.Highlight })},
	{"STYLE", "Highlighting style name", func(c *config.Config, v string) error { c.Render.Style = v; return nil }},
	{"DETECT_LANGUAGE", "Detect code block languages: true or false", boolField(func(c *config.Config) **bool { return &c.Render.DetectLanguage })},
	{"INDENT_WIDTH", "Spaces per nesting level (0-8)", intField(func(c *config.Config) **int { return &c.Render.IndentWidth })},
	{"STANDALONE", "Write complete HTML documents: true or false", boolField(func(c *config.Config) **bool { return &c.Render.Standalone })},
	{"OUTPUT_DIR", "Directory receiving rendered files", func(c *config.Config, v string) error { c.Output.Dir = v; return nil }},
	{"OUTPUT_EXTENSION", "Extension of rendered files", func(c *config.Config, v string) error { c.Output.Extension = v; return nil }},
	{"FLAVOR", "Reference flavor for compare: commonmark or gfm", func(c *config.Config, v string) error { c.Compare.Flavor = config.Flavor(v); return nil }},
	{"EXTENSIONS", "Comma-separated Markdown file extensions", sliceField(func(c *config.Config) *[]string { return &c.Extensions })},
	{"IGNORE", "Comma-separated list of ignore patterns", sliceField(func(c *config.Config) *[]string { return &c.Ignore })},
	{"JOBS", "Number of parallel workers (0 = auto)", func(c *config.Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid integer %q", v)
		}
		c.Jobs = n
		return nil
	}},
}

// LoadFromEnv applies MD2HTML_* environment variables to cfg.
func LoadFromEnv(cfg *config.Config) error {
	return loadFromEnv(cfg, os.LookupEnv)
}

func loadFromEnv(cfg *config.Config, lookup func(string) (string, bool)) error {
	if cfg == nil {
		return nil
	}

	for _, ev := range envVars {
		name := envVarPrefix + ev.suffix
		value, ok := lookup(name)
		if !ok || value == "" {
			continue
		}
		if err := ev.apply(cfg, value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	return nil
}

func boolField(field func(*config.Config) **bool) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", value)
		}
		*field(cfg) = config.Bool(b)
		return nil
	}
}

func intField(field func(*config.Config) **int) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer %q", value)
		}
		*field(cfg) = config.Int(n)
		return nil
	}
}

func sliceField(field func(*config.Config) *[]string) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		*field(cfg) = parseSliceValue(value)
		return nil
	}
}

// parseSliceValue splits a comma-separated value, trimming each element.
func parseSliceValue(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// ListEnvVars returns every supported variable name with its description,
// sorted by name.
func ListEnvVars() [][2]string {
	out := make([][2]string, 0, len(envVars))
	for _, ev := range envVars {
		out = append(out, [2]string{envVarPrefix + ev.suffix, ev.help})
	}
	slices.SortFunc(out, func(a, b [2]string) int { return strings.Compare(a[0], b[0]) })
	return out
}
