package convert_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/md2html/pkg/convert"
	"github.com/yaklabco/md2html/pkg/fsutil"
	"github.com/yaklabco/md2html/pkg/mdast"
	"github.com/yaklabco/md2html/pkg/render"
)

const sample = "# Title\nHello *world*\n"

const sampleHTML = "<h1>Title</h1>\n<p>Hello <em>world</em></p>\n"

func newConverter(t *testing.T, opts convert.Options) *convert.Converter {
	t.Helper()

	conv, err := convert.New(opts)
	require.NoError(t, err)
	return conv
}

func TestConvert(t *testing.T) {
	t.Parallel()

	conv := newConverter(t, convert.DefaultOptions())

	result, err := conv.Convert(context.Background(), "notes.md", []byte(sample))
	require.NoError(t, err)

	assert.Equal(t, sampleHTML, string(result.HTML))
	assert.Equal(t, "Title", result.Title)
	assert.Equal(t, "converted", result.Summary())

	require.NotNil(t, result.Document)
	assert.Equal(t, sample, mdast.Concat(result.Document.Tokens))
	assert.Equal(t, 2, result.Document.Tree.ChildCount(mdast.RootID))
}

func TestConvert_TitleFallsBackToFileName(t *testing.T) {
	t.Parallel()

	conv := newConverter(t, convert.DefaultOptions())

	result, err := conv.Convert(context.Background(), "docs/getting-started.md", []byte("no heading\n"))
	require.NoError(t, err)
	assert.Equal(t, "getting-started", result.Title)
}

func TestConvert_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newConverter(t, convert.DefaultOptions()).Convert(ctx, "", []byte(sample))
	require.ErrorIs(t, err, context.Canceled)
}

func TestConvert_Standalone(t *testing.T) {
	t.Parallel()

	opts := convert.DefaultOptions()
	opts.Standalone = true
	opts.Render.Highlight = true

	result, err := newConverter(t, opts).Convert(context.Background(), "", []byte(sample))
	require.NoError(t, err)

	out := string(result.HTML)
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>\n"))
	assert.Contains(t, out, "<title>Title</title>")
	assert.Contains(t, out, "<style>")
	assert.Contains(t, out, sampleHTML)
}

func TestNew_UnknownStyle(t *testing.T) {
	t.Parallel()

	opts := convert.DefaultOptions()
	opts.Render.Highlight = true
	opts.Render.Style = "no-such-style"

	_, err := convert.New(opts)
	require.Error(t, err)

	opts.Render.Highlight = false
	_, err = convert.New(opts)
	require.NoError(t, err)
}

func TestNew_DefaultsFilledIn(t *testing.T) {
	t.Parallel()

	conv := newConverter(t, convert.Options{})
	assert.Equal(t, render.DefaultStyle, conv.Options().Render.Style)
}

func TestConvertFile(t *testing.T) {
	t.Parallel()

	t.Run("writes output", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		src := filepath.Join(dir, "doc.md")
		out := filepath.Join(dir, "out", "doc.html")
		require.NoError(t, os.WriteFile(src, []byte(sample), 0o644))

		conv := newConverter(t, convert.DefaultOptions())

		result, err := conv.ConvertFile(context.Background(), src, out)
		require.NoError(t, err)
		assert.True(t, result.Written)
		assert.Equal(t, "written", result.Summary())
		require.NotNil(t, result.SourceInfo)

		got, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t, sampleHTML, string(got))

		result, err = conv.ConvertFile(context.Background(), src, out)
		require.NoError(t, err)
		assert.False(t, result.Written)
		assert.True(t, result.Unchanged)
		assert.Equal(t, "unchanged", result.Summary())
	})

	t.Run("dry run", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		src := filepath.Join(dir, "doc.md")
		out := filepath.Join(dir, "doc.html")
		require.NoError(t, os.WriteFile(src, []byte(sample), 0o644))

		opts := convert.DefaultOptions()
		opts.DryRun = true

		result, err := newConverter(t, opts).ConvertFile(context.Background(), src, out)
		require.NoError(t, err)
		assert.Equal(t, "would write", result.Summary())
		assert.Equal(t, out, result.OutputPath)
		assert.False(t, fsutil.Exists(out))
	})

	t.Run("missing source", func(t *testing.T) {
		t.Parallel()

		conv := newConverter(t, convert.DefaultOptions())

		_, err := conv.ConvertFile(context.Background(), filepath.Join(t.TempDir(), "none.md"), "")
		require.ErrorIs(t, err, convert.ErrReadFailure)
		require.ErrorIs(t, err, fsutil.ErrNotFound)
	})
}
