// Package convert runs the Markdown to HTML pipeline for one document:
// tokenize, parse, render, and optionally write the result to disk.
package convert

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/md2html/pkg/fsutil"
	"github.com/yaklabco/md2html/pkg/mdast"
	"github.com/yaklabco/md2html/pkg/parser"
	"github.com/yaklabco/md2html/pkg/render"
)

// Pipeline error types for categorization.
var (
	// ErrReadFailure indicates the source could not be read.
	ErrReadFailure = errors.New("read failure")

	// ErrWriteFailure indicates the output could not be written.
	ErrWriteFailure = errors.New("write failure")
)

// Options controls a Converter.
type Options struct {
	// Render configures the HTML renderer.
	Render render.Options

	// Standalone wraps each fragment in a complete HTML document.
	Standalone bool

	// DryRun converts without writing output files.
	DryRun bool

	// StrictRaceDetection re-hashes the source before writing output to
	// detect edits made during conversion. When false only mod time and size
	// are compared.
	StrictRaceDetection bool
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{
		Render:              render.DefaultOptions(),
		StrictRaceDetection: true,
	}
}

// Result is the outcome of converting one document.
type Result struct {
	// Path is the source path (may be empty for in-memory content).
	Path string

	// Document holds the source, tokens and tree.
	Document *mdast.Document

	// HTML is the rendered output, wrapped when Standalone is set.
	HTML []byte

	// Title is the text of the first heading, or the file name.
	Title string

	// OutputPath is where HTML was (or would have been) written.
	OutputPath string

	// SourceInfo is the source state when it was read.
	SourceInfo *fsutil.FileInfo

	// Written is true if the output file was written.
	Written bool

	// Unchanged is true if the output file already held identical content.
	Unchanged bool

	// Skipped is true if the output was not written because of SkipReason.
	Skipped bool

	// SkipReason explains why the output was skipped.
	SkipReason string
}

// Summary returns a short human-readable description of the result.
func (r *Result) Summary() string {
	switch {
	case r.Skipped:
		return "skipped: " + r.SkipReason
	case r.Written:
		return "written"
	case r.Unchanged:
		return "unchanged"
	case r.OutputPath != "":
		return "would write"
	default:
		return "converted"
	}
}

// Converter converts documents with a fixed set of options.
// It is safe for concurrent use.
type Converter struct {
	opts     Options
	renderer *render.Renderer
	css      string
}

// New creates a Converter. It fails if highlighting is enabled with an
// unknown style.
func New(opts Options) (*Converter, error) {
	renderer := render.New(opts.Render)
	opts.Render = renderer.Options()

	conv := &Converter{opts: opts, renderer: renderer}

	if opts.Render.Highlight {
		css, err := render.StyleCSS(opts.Render.Style)
		if err != nil {
			return nil, fmt.Errorf("highlight: %w", err)
		}
		if opts.Standalone {
			conv.css = css
		}
	}

	return conv, nil
}

// Options returns the converter's options.
func (c *Converter) Options() Options {
	return c.opts
}

// Convert renders source held in memory. path is used for the document
// title only.
func (c *Converter) Convert(ctx context.Context, path string, source []byte) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("convert cancelled: %w", err)
	}

	doc := parser.ParseSource(path, source)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("convert cancelled: %w", err)
	}

	result := &Result{
		Path:     path,
		Document: doc,
		HTML:     c.renderer.Render(doc.Tree),
		Title:    title(doc.Tree, path),
	}

	if c.opts.Standalone {
		result.HTML = render.Standalone(result.HTML, result.Title, c.css)
	}

	return result, nil
}

// ConvertFile reads path, converts it and writes the HTML to outPath.
// An empty outPath converts without writing. In dry-run mode OutputPath is
// recorded but nothing is written.
func (c *Converter) ConvertFile(ctx context.Context, path, outPath string) (*Result, error) {
	source, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadFailure, err)
	}

	result, err := c.Convert(ctx, path, source)
	if err != nil {
		return nil, err
	}
	result.SourceInfo = info
	result.OutputPath = outPath

	if outPath == "" || c.opts.DryRun {
		return result, nil
	}

	modified, err := fsutil.CheckModified(ctx, info, c.opts.StrictRaceDetection)
	if err != nil {
		return nil, fmt.Errorf("check modified: %w", err)
	}
	if modified {
		result.Skipped = true
		result.SkipReason = "source modified during conversion"
		return result, nil
	}

	written, err := fsutil.WriteAtomicIfChanged(ctx, outPath, result.HTML, fsutil.DefaultFileMode)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.Written = written
	result.Unchanged = !written

	return result, nil
}

func title(tree *mdast.Tree, path string) string {
	if t := render.Title(tree); t != "" {
		return t
	}
	if path == "" {
		return ""
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
