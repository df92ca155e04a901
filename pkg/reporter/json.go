package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/md2html/pkg/runner"
)

// jsonSchemaVersion identifies the layout of JSONOutput.
const jsonSchemaVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	DryRun  bool             `json:"dryRun"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's outcome.
type JSONFileResult struct {
	Path   string `json:"path"`
	Output string `json:"output,omitempty"`
	Title  string `json:"title,omitempty"`
	Bytes  int    `json:"bytes"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesDiscovered int   `json:"filesDiscovered"`
	FilesConverted  int   `json:"filesConverted"`
	FilesWritten    int   `json:"filesWritten"`
	FilesUnchanged  int   `json:"filesUnchanged"`
	FilesSkipped    int   `json:"filesSkipped"`
	FilesErrored    int   `json:"filesErrored"`
	BytesRead       int64 `json:"bytesRead"`
	BytesRendered   int64 `json:"bytesRendered"`
	DurationMillis  int64 `json:"durationMs"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("report cancelled: %w", err)
	}

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(r.buildOutput(result)); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return failures(result), nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: jsonSchemaVersion,
		DryRun:  r.opts.DryRun,
		Files:   make([]JSONFileResult, 0),
	}

	if result == nil {
		return output
	}

	output.Files = make([]JSONFileResult, 0, len(result.Files))
	for _, file := range result.Files {
		entry := JSONFileResult{
			Path:   r.relative(file.Path),
			Output: r.relative(file.OutputPath),
		}

		switch {
		case file.Error != nil:
			entry.Status = "failed"
			entry.Error = file.Error.Error()
		case file.Result != nil:
			entry.Title = file.Result.Title
			entry.Bytes = len(file.Result.HTML)
			entry.Status = file.Result.Summary()
		}

		output.Files = append(output.Files, entry)
	}

	stats := result.Stats
	output.Summary = JSONSummary{
		FilesDiscovered: stats.FilesDiscovered,
		FilesConverted:  stats.FilesConverted,
		FilesWritten:    stats.FilesWritten,
		FilesUnchanged:  stats.FilesUnchanged,
		FilesSkipped:    stats.FilesSkipped,
		FilesErrored:    stats.FilesErrored,
		BytesRead:       stats.BytesRead,
		BytesRendered:   stats.BytesRendered,
		DurationMillis:  result.Duration.Milliseconds(),
	}

	return output
}

// relative makes path relative to the working directory when it lies below it.
func (r *JSONReporter) relative(path string) string {
	if path == "" || r.opts.WorkingDir == "" {
		return path
	}
	rel, err := filepath.Rel(r.opts.WorkingDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}
