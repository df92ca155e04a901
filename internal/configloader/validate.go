package configloader

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/yaklabco/md2html/pkg/config"
	"github.com/yaklabco/md2html/pkg/render"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "render.indent_width").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Err joins the errors into one, or returns nil if the result is valid.
// Each joined error is a *ValidationError.
func (r *ValidationResult) Err() error {
	if r.Valid() {
		return nil
	}
	errs := make([]error, 0, len(r.Errors))
	for i := range r.Errors {
		errs = append(errs, &r.Errors[i])
	}
	return errors.Join(errs...)
}

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warn(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if width := cfg.Render.IndentWidth; width != nil && (*width < 0 || *width > config.MaxIndentWidth) {
		result.fail("render.indent_width", *width, "indent width must be between 0 and %d", config.MaxIndentWidth)
	}

	if style := cfg.Render.Style; style != "" && !render.HasStyle(style) {
		if config.BoolValue(cfg.Render.Highlight) {
			result.fail("render.style", style, "unknown style %q", style)
		} else {
			result.warn("render.style", style, "unknown style %q; it is only used with highlight", style)
		}
	}

	if ext := cfg.Output.Extension; ext != "" && !strings.HasPrefix(ext, ".") {
		result.fail("output.extension", ext, "extension %q must start with '.'", ext)
	}

	for i, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") {
			result.fail(fmt.Sprintf("extensions[%d]", i), ext, "extension %q must start with '.'", ext)
		}
	}

	switch cfg.Compare.Flavor {
	case "", config.FlavorCommonMark, config.FlavorGFM:
	default:
		result.fail("compare.flavor", cfg.Compare.Flavor,
			"invalid flavor %q; must be one of: commonmark, gfm", cfg.Compare.Flavor)
	}

	if cfg.Jobs < 0 {
		result.fail("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	for i, pattern := range cfg.Ignore {
		// path.Match only errors on malformed patterns.
		if _, err := path.Match(pattern, ""); err != nil {
			result.fail(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern: %v", err)
		}
	}

	return result
}

// ValidateWithFile validates cfg and attributes every finding to filePath.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)
	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}
	return result
}
