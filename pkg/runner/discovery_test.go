package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/md2html/pkg/runner"
)

func TestDiscover(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"readme.md":           "# Readme\n",
		"docs/guide.md":       "guide\n",
		"docs/api.markdown":   "api\n",
		"docs/draft/wip.md":   "wip\n",
		"vendor/lib/notes.md": "vendored\n",
		"src/main.go":         "package main\n",
		"notes.txt":           "text\n",
		".hidden.md":          "hidden\n",
		".git/info.md":        "vcs\n",
		"site/readme.html":    "<p>old</p>\n",
		"CHANGELOG.MD":        "upper\n",
	}

	tests := []struct {
		name string
		opts runner.Options
		want []string
	}{
		{
			name: "defaults",
			opts: runner.Options{},
			want: []string{
				"CHANGELOG.MD",
				"docs/api.markdown",
				"docs/draft/wip.md",
				"docs/guide.md",
				"readme.md",
				"vendor/lib/notes.md",
			},
		},
		{
			name: "exclude directory glob",
			opts: runner.Options{ExcludeGlobs: []string{"vendor/**", "**/draft"}},
			want: []string{"CHANGELOG.MD", "docs/api.markdown", "docs/guide.md", "readme.md"},
		},
		{
			name: "exclude base name",
			opts: runner.Options{ExcludeGlobs: []string{"*.markdown"}},
			want: []string{"CHANGELOG.MD", "docs/draft/wip.md", "docs/guide.md", "readme.md", "vendor/lib/notes.md"},
		},
		{
			name: "include glob",
			opts: runner.Options{IncludeGlobs: []string{"docs/**"}},
			want: []string{"docs/api.markdown", "docs/draft/wip.md", "docs/guide.md"},
		},
		{
			name: "custom extensions",
			opts: runner.Options{Extensions: []string{".txt"}},
			want: []string{"notes.txt"},
		},
		{
			name: "single file and overlapping directory deduplicate",
			opts: runner.Options{Paths: []string{"docs/guide.md", "docs", "docs/guide.md"}},
			want: []string{"docs/api.markdown", "docs/draft/wip.md", "docs/guide.md"},
		},
		{
			name: "output directory skipped",
			opts: runner.Options{Extensions: []string{".html", ".md"}, OutDir: "site"},
			want: []string{"CHANGELOG.MD", "docs/draft/wip.md", "docs/guide.md", "readme.md", "vendor/lib/notes.md"},
		},
	}

	dir := t.TempDir()
	writeTree(t, dir, files)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := tt.opts
			opts.WorkingDir = dir

			got, err := runner.Discover(context.Background(), opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, relAll(t, dir, got))
		})
	}
}

func TestDiscover_Deterministic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"z.md": "", "a.md": "", "m/b.md": "", "m/a.md": "", "c.markdown": "",
	})

	opts := runner.Options{WorkingDir: dir}
	first, err := runner.Discover(context.Background(), opts)
	require.NoError(t, err)

	for range 5 {
		again, err := runner.Discover(context.Background(), opts)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
	assert.IsIncreasing(t, first)
}

func TestDiscover_NonExistentPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"missing"},
		WorkingDir: t.TempDir(),
	})
	require.Error(t, err)
}

func TestDiscover_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Discover(ctx, runner.Options{WorkingDir: t.TempDir()})
	require.ErrorIs(t, err, context.Canceled)
}

func TestDiscover_Symlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"real/doc.md": "doc\n"})

	external := t.TempDir()
	writeTree(t, external, map[string]string{"external.md": "external\n"})

	if err := os.Symlink(external, filepath.Join(dir, "linked")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	require.NoError(t, os.Symlink(filepath.Join(dir, "real", "doc.md"), filepath.Join(dir, "alias.md")))
	require.NoError(t, os.Symlink(filepath.Join(dir, "gone.md"), filepath.Join(dir, "broken.md")))

	opts := runner.Options{WorkingDir: dir}
	got, err := runner.Discover(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"alias.md", "real/doc.md"}, relAll(t, dir, got))

	opts.FollowSymlinks = true
	got, err = runner.Discover(context.Background(), opts)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Contains(t, got, filepath.Join(external, "external.md"))
}

func TestDefaultExtensions(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{".md", ".markdown"}, runner.DefaultExtensions())
}

func TestOptions_OutputPath(t *testing.T) {
	t.Parallel()

	work := filepath.FromSlash("/work")

	tests := []struct {
		name   string
		opts   runner.Options
		source string
		want   string
	}{
		{
			name:   "next to source",
			source: "/work/docs/guide.md",
			want:   "/work/docs/guide.html",
		},
		{
			name:   "custom extension",
			opts:   runner.Options{OutputExtension: ".htm"},
			source: "/work/readme.markdown",
			want:   "/work/readme.htm",
		},
		{
			name:   "relative out dir mirrors layout",
			opts:   runner.Options{OutDir: "site"},
			source: "/work/docs/guide.md",
			want:   "/work/site/docs/guide.html",
		},
		{
			name:   "absolute out dir",
			opts:   runner.Options{OutDir: "/out"},
			source: "/work/readme.md",
			want:   "/out/readme.html",
		},
		{
			name:   "source outside working dir",
			opts:   runner.Options{OutDir: "site"},
			source: "/elsewhere/notes.md",
			want:   "/work/site/notes.html",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := tt.opts.OutputPath(work, filepath.FromSlash(tt.source))
			assert.Equal(t, filepath.FromSlash(tt.want), got)
		})
	}
}
