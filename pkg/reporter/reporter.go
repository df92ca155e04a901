// Package reporter writes the outcome of a build run in a chosen format.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/md2html/pkg/runner"
)

// Reporter formats and writes build results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of failed files and any write error.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}
	if !format.IsValid() {
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
	opts.Format = format

	if format == FormatJSON {
		return NewJSONReporter(opts), nil
	}
	return NewTextReporter(opts), nil
}

func failures(result *runner.Result) int {
	if result == nil {
		return 0
	}
	return result.Stats.FilesErrored
}
