package pretty

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/yaklabco/md2html/pkg/runner"
)

const (
	summaryDividerWidth = 40
	summaryLabelWidth   = 18
)

// plural formats a count with its noun, e.g. "1 file" or "3 files".
func plural(count int, noun string) string {
	if count == 1 {
		return "1 " + noun
	}
	return humanize.Comma(int64(count)) + " " + noun + "s"
}

// FormatSummaryOneLine formats build statistics as a single line.
// Example: "12 files converted (9 written, 3 unchanged), 1 failed".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats, dryRun bool) string {
	if stats.FilesDiscovered == 0 {
		return s.paint(s.Warning, "No Markdown files found") + "\n"
	}

	var detail []string
	if dryRun {
		detail = append(detail, humanize.Comma(int64(stats.FilesConverted))+" would be written")
	} else {
		if stats.FilesWritten > 0 {
			detail = append(detail, humanize.Comma(int64(stats.FilesWritten))+" written")
		}
		if stats.FilesUnchanged > 0 {
			detail = append(detail, humanize.Comma(int64(stats.FilesUnchanged))+" unchanged")
		}
		if stats.FilesSkipped > 0 {
			detail = append(detail, s.paint(s.Warning, humanize.Comma(int64(stats.FilesSkipped))+" skipped"))
		}
	}

	line := plural(stats.FilesConverted, "file") + " converted"
	if len(detail) > 0 {
		line += " (" + strings.Join(detail, ", ") + ")"
	}
	if stats.FilesErrored == 0 {
		line = s.paint(s.Success, line)
	} else {
		line += ", " + s.paint(s.Failure, humanize.Comma(int64(stats.FilesErrored))+" failed")
	}

	return line + "\n"
}

// FormatSummary formats build statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats, elapsed time.Duration) string {
	var builder strings.Builder

	row := func(label, value string) {
		builder.WriteString("  " + padRight(label+":", summaryLabelWidth) + value + "\n")
	}

	builder.WriteString("\n")
	builder.WriteString(s.paint(s.SummaryTitle, "Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	row("Files found", s.paint(s.SummaryValue, humanize.Comma(int64(stats.FilesDiscovered))))
	row("Files converted", s.paint(s.SummaryValue, humanize.Comma(int64(stats.FilesConverted))))
	if stats.FilesWritten > 0 {
		row("Files written", s.paint(s.Success, humanize.Comma(int64(stats.FilesWritten))))
	}
	if stats.FilesUnchanged > 0 {
		row("Files unchanged", s.paint(s.Dim, humanize.Comma(int64(stats.FilesUnchanged))))
	}
	if stats.FilesSkipped > 0 {
		row("Files skipped", s.paint(s.Warning, humanize.Comma(int64(stats.FilesSkipped))))
	}
	if stats.FilesErrored > 0 {
		row("Files failed", s.paint(s.Failure, humanize.Comma(int64(stats.FilesErrored))))
	}

	builder.WriteString("\n")
	row("Markdown read", s.paint(s.SummaryValue, humanize.Bytes(uint64(max(stats.BytesRead, 0)))))
	row("HTML rendered", s.paint(s.SummaryValue, humanize.Bytes(uint64(max(stats.BytesRendered, 0)))))
	if elapsed > 0 {
		row("Elapsed", s.paint(s.Dim, elapsed.Round(time.Millisecond).String()))
	}

	builder.WriteString("\n")
	if stats.FilesErrored > 0 {
		builder.WriteString(s.paint(s.Failure, fmt.Sprintf("Build failed for %s", plural(stats.FilesErrored, "file"))))
	} else {
		builder.WriteString(s.paint(s.Success, "Build succeeded"))
	}
	builder.WriteString("\n")

	return builder.String()
}
