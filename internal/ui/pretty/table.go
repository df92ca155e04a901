package pretty

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/yaklabco/md2html/pkg/runner"
)

// Table formatting constants.
const (
	tablePadding     = 2
	tableColumnCount = 4 // FILE, OUTPUT, SIZE, STATUS
	minFileWidth     = 20
	minOutputWidth   = 20
	minSizeWidth     = 8
	minStatusWidth   = 10
	heavySeparator   = "="
	defaultTermWidth = 100
)

// TableRow represents a single row in the outcome table.
type TableRow struct {
	File   string
	Output string
	Size   string
	Status string
	Failed bool
}

// TableFormatter formats build outcomes as a styled table.
type TableFormatter struct {
	styles    *Styles
	termWidth int
	workDir   string
}

// NewTableFormatter creates a new table formatter. Paths under workDir are
// shown relative to it.
func NewTableFormatter(styles *Styles, termWidth int, workDir string) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:    styles,
		termWidth: termWidth,
		workDir:   workDir,
	}
}

// FormatTable formats runner results as a table, one row per file.
func (t *TableFormatter) FormatTable(result *runner.Result) string {
	if result == nil || len(result.Files) == 0 {
		return ""
	}

	rows := make([]TableRow, 0, len(result.Files))
	for _, outcome := range result.Files {
		rows = append(rows, t.OutcomeRow(outcome))
	}

	widths := t.calculateColumnWidths(rows)

	var builder strings.Builder
	builder.WriteString(t.formatHeader(widths))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(widths))
	builder.WriteString("\n")
	for _, row := range rows {
		builder.WriteString(t.formatRow(row, widths))
		builder.WriteString("\n")
	}
	builder.WriteString(t.formatSeparator(widths))
	builder.WriteString("\n")

	return builder.String()
}

// OutcomeRow converts one file outcome to a table row.
func (t *TableFormatter) OutcomeRow(outcome runner.FileOutcome) TableRow {
	row := TableRow{
		File:   t.relative(outcome.Path),
		Output: t.relative(outcome.OutputPath),
	}

	switch {
	case outcome.Error != nil:
		row.Status = "failed"
		row.Failed = true
	case outcome.Result != nil:
		row.Size = humanize.Bytes(uint64(len(outcome.Result.HTML)))
		row.Status = outcome.Result.Summary()
	default:
		row.Status = "pending"
	}

	return row
}

func (t *TableFormatter) relative(path string) string {
	if path == "" || t.workDir == "" {
		return path
	}
	rel, err := filepath.Rel(t.workDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

type columnWidths struct {
	file   int
	output int
	size   int
	status int
}

func (w columnWidths) total() int {
	return w.file + w.output + w.size + w.status + tablePadding*tableColumnCount
}

// calculateColumnWidths determines column widths from content, shrinking the
// path columns to fit the terminal.
func (t *TableFormatter) calculateColumnWidths(rows []TableRow) columnWidths {
	widths := columnWidths{
		file:   minFileWidth,
		output: minOutputWidth,
		size:   minSizeWidth,
		status: minStatusWidth,
	}

	for _, row := range rows {
		widths.file = max(widths.file, len(row.File))
		widths.output = max(widths.output, len(row.Output))
		widths.size = max(widths.size, len(row.Size))
		widths.status = max(widths.status, len(row.Status))
	}

	if excess := widths.total() - t.termWidth; excess > 0 {
		widths.output = max(minOutputWidth, widths.output-excess)
		if excess = widths.total() - t.termWidth; excess > 0 {
			widths.file = max(minFileWidth, widths.file-excess)
		}
	}

	return widths
}

func (t *TableFormatter) formatHeader(widths columnWidths) string {
	header := fmt.Sprintf(" %-*s  %-*s  %*s  %-*s",
		widths.file, "FILE",
		widths.output, "OUTPUT",
		widths.size, "SIZE",
		widths.status, "STATUS",
	)
	return t.styles.paint(t.styles.TableHeader, header)
}

func (t *TableFormatter) formatSeparator(widths columnWidths) string {
	return t.styles.paint(t.styles.TableSeparator, strings.Repeat(heavySeparator, widths.total()))
}

func (t *TableFormatter) formatRow(row TableRow, widths columnWidths) string {
	status := padRight(truncateString(row.Status, widths.status), widths.status)
	switch {
	case row.Failed:
		status = t.styles.paint(t.styles.Failure, status)
	case strings.HasPrefix(row.Status, "skipped"):
		status = t.styles.paint(t.styles.Warning, status)
	case row.Status == "unchanged":
		status = t.styles.paint(t.styles.Dim, status)
	default:
		status = t.styles.paint(t.styles.Success, status)
	}

	return fmt.Sprintf(" %-*s  %-*s  %*s  %s",
		widths.file, truncateFilePath(row.File, widths.file),
		widths.output, truncateFilePath(row.Output, widths.output),
		widths.size, row.Size,
		status,
	)
}

// padRight pads str with spaces to width.
func padRight(str string, width int) string {
	if len(str) >= width {
		return str
	}
	return str + strings.Repeat(" ", width-len(str))
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return str[:maxLen]
	}
	return str[:maxLen-3] + "..."
}

// truncateFilePath truncates a file path, preserving the end (filename) rather than beginning.
func truncateFilePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= 3 {
		return path[len(path)-maxLen:]
	}
	return "..." + path[len(path)-maxLen+3:]
}
