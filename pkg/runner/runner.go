package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/yaklabco/md2html/pkg/convert"
)

// Runner converts discovered files with a shared Converter.
type Runner struct {
	// Converter renders each file. It is shared by all workers.
	Converter *convert.Converter
}

// New creates a new Runner with the given converter.
func New(converter *convert.Converter) *Runner {
	return &Runner{Converter: converter}
}

// Run discovers files under opts.Paths and converts them on a bounded
// worker pool. Outcomes are returned in path order regardless of the order
// in which workers finish. A failing file does not stop the run; its error
// is recorded in its FileOutcome.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)
	defer func() { result.Duration = time.Since(start) }()

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	workCh := make(chan FileOutcome)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			job := FileOutcome{Path: path, OutputPath: opts.OutputPath(workDir, path)}
			select {
			case <-ctx.Done():
				return
			case workCh <- job:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	// Workers finish out of order.
	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}

	return result, nil
}

func (r *Runner) worker(ctx context.Context, workCh <-chan FileOutcome, outCh chan<- FileOutcome) {
	for outcome := range workCh {
		if ctx.Err() != nil {
			return
		}

		res, err := r.Converter.ConvertFile(ctx, outcome.Path, outcome.OutputPath)
		if err != nil {
			outcome.Error = fmt.Errorf("%s: %w", outcome.Path, err)
		} else {
			outcome.Result = res
		}

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}
