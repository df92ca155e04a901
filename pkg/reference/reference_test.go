package reference_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/md2html/pkg/reference"
)

func TestRenderer_Render(t *testing.T) {
	t.Parallel()

	renderer := reference.New("")
	assert.Equal(t, reference.FlavorCommonMark, renderer.Flavor())

	out, err := renderer.Render(context.Background(), []byte("# Title\n\n---\n"))
	require.NoError(t, err)
	assert.Equal(t, "<h1>Title</h1>\n<hr />\n", string(out))
}

func TestRenderer_GFM(t *testing.T) {
	t.Parallel()

	renderer := reference.New(reference.FlavorGFM)
	assert.Equal(t, reference.FlavorGFM, renderer.Flavor())

	out, err := renderer.Render(context.Background(), []byte("~~gone~~\n"))
	require.NoError(t, err)
	assert.Contains(t, string(out), "<del>gone</del>")
}

func TestRenderer_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := reference.New(reference.FlavorCommonMark).Render(ctx, []byte("x"))
	require.ErrorIs(t, err, context.Canceled)
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	in := "<ul>\n  <li>a</li>\n</ul>\n<p><!-- empty --></p>\n<pre><code>  kept\n  indent</code></pre>\n\n"
	want := "<ul>\n<li>a</li>\n</ul>\n<pre><code>  kept\n  indent</code></pre>\n"

	assert.Equal(t, want, string(reference.Normalize([]byte(in))))
}
