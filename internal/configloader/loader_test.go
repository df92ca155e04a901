package configloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/md2html/pkg/config"
)

// project creates a temp directory marked as a VCS root so that the upward
// config search never leaves it.
func project(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func env(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func isolated(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:       dir,
		IgnoreUserConfig: true,
		LookupEnv:        env(nil),
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolated(project(t)))
	require.NoError(t, err)

	assert.Equal(t, config.NewConfig(), result.Config)
	assert.Empty(t, result.LoadedFrom)
}

func TestLoad_ProjectConfigFoundUpward(t *testing.T) {
	t.Parallel()

	dir := project(t)
	writeFile(t, filepath.Join(dir, ".md2html.yml"), "render:\n  heading_ids: true\n  style: monokai\n")

	sub := filepath.Join(dir, "docs", "guide")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	result, err := Load(context.Background(), isolated(sub))
	require.NoError(t, err)

	assert.True(t, *result.Config.Render.HeadingIDs)
	assert.Equal(t, "monokai", result.Config.Render.Style)
	assert.Equal(t, []string{filepath.Join(dir, ".md2html.yml")}, result.LoadedFrom)
}

func TestLoad_SearchStopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	outer := t.TempDir()
	writeFile(t, filepath.Join(outer, ".md2html.yml"), "render:\n  heading_ids: true\n")

	inner := filepath.Join(outer, "repo")
	require.NoError(t, os.MkdirAll(filepath.Join(inner, ".git"), 0o755))

	path, err := FindProjectConfig(context.Background(), inner)
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestLoad_Precedence(t *testing.T) {
	t.Parallel()

	dir := project(t)
	writeFile(t, filepath.Join(dir, ".md2html.yml"), `
render:
  heading_ids: true
  highlight: true
  indent_width: 4
output:
  dir: from-project
`)
	explicit := filepath.Join(dir, "ci.yml")
	writeFile(t, explicit, "render:\n  indent_width: 3\noutput:\n  dir: from-explicit\n")

	opts := isolated(dir)
	opts.ExplicitPath = explicit
	opts.LookupEnv = env(map[string]string{
		"MD2HTML_OUTPUT_DIR": "from-env",
		"MD2HTML_HIGHLIGHT":  "false",
		"MD2HTML_JOBS":       "3",
	})
	opts.CLIConfig = &config.Config{
		Render: config.RenderConfig{HeadingIDs: config.Bool(false)},
		Jobs:   5,
	}

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	cfg := result.Config
	assert.False(t, *cfg.Render.HeadingIDs, "cli switches off a project setting")
	assert.False(t, *cfg.Render.Highlight, "env switches off a project setting")
	assert.Equal(t, 3, *cfg.Render.IndentWidth, "explicit file beats project file")
	assert.Equal(t, "from-env", cfg.Output.Dir)
	assert.Equal(t, 5, cfg.Jobs)
	assert.Len(t, result.LoadedFrom, 2)
}

func TestLoad_UserConfig(t *testing.T) {
	t.Parallel()

	dir := project(t)
	userDir := t.TempDir()
	user := filepath.Join(userDir, "config.yaml")
	writeFile(t, user, "ignore:\n  - \"drafts/**\"\n")
	writeFile(t, filepath.Join(dir, ".md2html.yml"), "render:\n  standalone: true\n")

	paths, err := DiscoverPaths(context.Background(), dir)
	require.NoError(t, err)
	paths.User = user

	// Exercise the merge order directly, since the user directory comes from
	// the process environment.
	cfg := MergeAll(config.NewConfig(), mustLoad(t, paths.User), mustLoad(t, paths.Project))
	assert.Equal(t, []string{"drafts/**"}, cfg.Ignore)
	assert.True(t, *cfg.Render.Standalone)
}

func mustLoad(t *testing.T, path string) *config.Config {
	t.Helper()

	cfg, err := loadConfigFile(path)
	require.NoError(t, err)
	return cfg
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	dir := project(t)
	writeFile(t, filepath.Join(dir, ".md2html.yml"), "render:\n  indent_width: 20\n")

	_, err := Load(context.Background(), isolated(dir))
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "render.indent_width", verr.Field)
	assert.Equal(t, filepath.Join(dir, ".md2html.yml"), verr.FilePath)
}

func TestLoad_MalformedYAML(t *testing.T) {
	t.Parallel()

	dir := project(t)
	writeFile(t, filepath.Join(dir, ".md2html.yml"), "render: [\n")

	_, err := Load(context.Background(), isolated(dir))
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".md2html.yml")
}

func TestLoad_InvalidEnv(t *testing.T) {
	t.Parallel()

	opts := isolated(project(t))
	opts.LookupEnv = env(map[string]string{"MD2HTML_HEADING_IDS": "maybe"})

	_, err := Load(context.Background(), opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MD2HTML_HEADING_IDS")
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, isolated(project(t)))
	require.ErrorIs(t, err, context.Canceled)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*config.Config)
		field  string
	}{
		{"negative indent", func(c *config.Config) { c.Render.IndentWidth = config.Int(-1) }, "render.indent_width"},
		{"unknown style with highlight", func(c *config.Config) {
			c.Render.Highlight = config.Bool(true)
			c.Render.Style = "no-such-style"
		}, "render.style"},
		{"output extension without dot", func(c *config.Config) { c.Output.Extension = "html" }, "output.extension"},
		{"source extension without dot", func(c *config.Config) { c.Extensions = []string{".md", "txt"} }, "extensions[1]"},
		{"flavor", func(c *config.Config) { c.Compare.Flavor = "markdown-it" }, "compare.flavor"},
		{"jobs", func(c *config.Config) { c.Jobs = -2 }, "jobs"},
		{"ignore glob", func(c *config.Config) { c.Ignore = []string{"["} }, "ignore[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.NewConfig()
			tt.mutate(cfg)

			result := Validate(cfg)
			require.False(t, result.Valid())
			require.Len(t, result.Errors, 1)
			assert.Equal(t, tt.field, result.Errors[0].Field)

			var verr *ValidationError
			require.True(t, errors.As(result.Err(), &verr))
		})
	}

	t.Run("defaults are valid", func(t *testing.T) {
		t.Parallel()

		result := Validate(config.NewConfig())
		assert.True(t, result.Valid())
		assert.NoError(t, result.Err())
	})

	t.Run("unknown style without highlight warns", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		cfg.Render.Style = "no-such-style"

		result := Validate(cfg)
		assert.True(t, result.Valid())
		require.Len(t, result.Warnings, 1)
	})
}

func TestLoadFromEnv(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	err := loadFromEnv(cfg, env(map[string]string{
		"MD2HTML_IGNORE":       " vendor/** , ,drafts/** ",
		"MD2HTML_INDENT_WIDTH": "0",
		"MD2HTML_STYLE":        "dracula",
		"MD2HTML_FLAVOR":       "gfm",
		"MD2HTML_STANDALONE":   "1",
		"MD2HTML_EXTENSIONS":   ".md",
	}))
	require.NoError(t, err)

	assert.Equal(t, []string{"vendor/**", "drafts/**"}, cfg.Ignore)
	assert.Equal(t, 0, *cfg.Render.IndentWidth)
	assert.Equal(t, "dracula", cfg.Render.Style)
	assert.Equal(t, config.FlavorGFM, cfg.Compare.Flavor)
	assert.True(t, *cfg.Render.Standalone)
	assert.Equal(t, []string{".md"}, cfg.Extensions)

	require.Error(t, loadFromEnv(config.NewConfig(), env(map[string]string{"MD2HTML_JOBS": "many"})))
}

func TestListEnvVars(t *testing.T) {
	t.Parallel()

	vars := ListEnvVars()
	require.Len(t, vars, len(envVars))
	for i := 1; i < len(vars); i++ {
		assert.Less(t, vars[i-1][0], vars[i][0])
	}
	assert.Equal(t, "MD2HTML_DETECT_LANGUAGE", vars[0][0])
}

func TestWriteConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ProjectConfigName)

	require.NoError(t, WriteConfig(path, []byte("a: 1\n"), false))
	require.ErrorIs(t, WriteConfig(path, []byte("b: 2\n"), false), os.ErrExist)
	require.NoError(t, WriteConfig(path, []byte("b: 2\n"), true))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "b: 2\n", string(got))
}
