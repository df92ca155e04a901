package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/md2html/internal/ui/pretty"
	"github.com/yaklabco/md2html/pkg/runner"
)

// TextReporter writes styled terminal output: a one-line summary, optionally
// preceded by a per-file table, or a summary block.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("report cancelled: %w", err)
	}
	if result == nil {
		result = &runner.Result{}
	}

	switch r.opts.Format {
	case FormatSummary:
		_, err = r.bw.WriteString(r.styles.FormatSummary(result.Stats, result.Duration))
	case FormatTable:
		table := pretty.NewTableFormatter(r.styles, r.opts.TermWidth, r.opts.WorkingDir).FormatTable(result)
		_, err = r.bw.WriteString(table + r.styles.FormatSummaryOneLine(result.Stats, r.opts.DryRun))
	default:
		_, err = r.bw.WriteString(r.styles.FormatSummaryOneLine(result.Stats, r.opts.DryRun))
	}
	if err != nil {
		return 0, fmt.Errorf("write report: %w", err)
	}

	return failures(result), nil
}
