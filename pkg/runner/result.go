package runner

import (
	"time"

	"github.com/yaklabco/md2html/pkg/convert"
)

// FileOutcome is the conversion outcome of one discovered file.
type FileOutcome struct {
	// Path is the absolute source path.
	Path string

	// OutputPath is where the HTML goes.
	OutputPath string

	// Result is nil if the file could not be converted.
	Result *convert.Result

	// Error is set if the file could not be converted.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesConverted is the number of files rendered successfully.
	FilesConverted int

	// FilesWritten is the number of output files written.
	FilesWritten int

	// FilesUnchanged is the number of outputs that already had the same content.
	FilesUnchanged int

	// FilesSkipped is the number of outputs skipped because the source changed.
	FilesSkipped int

	// FilesErrored is the number of files that failed.
	FilesErrored int

	// BytesRead is the total size of the converted sources.
	BytesRead int64

	// BytesRendered is the total size of the rendered HTML.
	BytesRendered int64
}

// Result is the overall runner result.
type Result struct {
	// Files holds one outcome per discovered file, ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats

	// Duration is the wall time from discovery to the last outcome.
	Duration time.Duration
}

// HasFailures reports whether any file failed to convert.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

// Errors returns the per-file errors in path order.
func (r *Result) Errors() []error {
	if r == nil {
		return nil
	}
	var errs []error
	for _, outcome := range r.Files {
		if outcome.Error != nil {
			errs = append(errs, outcome.Error)
		}
	}
	return errs
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	if outcome.Result == nil {
		return
	}

	res := outcome.Result
	r.Stats.FilesConverted++
	r.Stats.BytesRead += int64(len(res.Document.Source))
	r.Stats.BytesRendered += int64(len(res.HTML))

	switch {
	case res.Skipped:
		r.Stats.FilesSkipped++
	case res.Written:
		r.Stats.FilesWritten++
	case res.Unchanged:
		r.Stats.FilesUnchanged++
	}
}
