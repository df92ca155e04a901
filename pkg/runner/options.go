// Package runner converts many Markdown files concurrently.
package runner

import (
	"path/filepath"
	"strings"
)

// DefaultOutputExtension is the extension given to rendered files.
const DefaultOutputExtension = ".html"

// Options controls a batch conversion.
type Options struct {
	// Paths are the user-specified paths (files or directories) to convert.
	// If empty, defaults to the working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths and
	// to compute output paths under OutDir.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, with leading dot)
	// considered Markdown. Defaults to DefaultExtensions().
	Extensions []string

	// IncludeGlobs restrict discovery to matching paths, relative to WorkingDir.
	IncludeGlobs []string

	// ExcludeGlobs skip matching files or directories.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs is the maximum number of concurrent workers.
	// 0 or negative means runtime.NumCPU().
	Jobs int

	// OutDir receives the rendered files, mirroring the source layout
	// relative to WorkingDir. Empty writes each file next to its source.
	OutDir string

	// OutputExtension replaces the source extension. Defaults to ".html".
	OutputExtension string
}

// DefaultExtensions returns the default set of Markdown file extensions.
func DefaultExtensions() []string {
	return []string{".md", ".markdown"}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

// OutputPath maps an absolute source path to its output path.
// Sources outside workDir land directly in OutDir.
func (o Options) OutputPath(workDir, source string) string {
	ext := o.OutputExtension
	if ext == "" {
		ext = DefaultOutputExtension
	}
	target := strings.TrimSuffix(source, filepath.Ext(source)) + ext

	if o.OutDir == "" {
		return target
	}

	outDir := o.OutDir
	if !filepath.IsAbs(outDir) {
		outDir = filepath.Join(workDir, outDir)
	}

	rel, err := filepath.Rel(workDir, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		rel = filepath.Base(target)
	}
	return filepath.Join(outDir, rel)
}
