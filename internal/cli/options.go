package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/md2html/internal/configloader"
	"github.com/yaklabco/md2html/internal/logging"
	"github.com/yaklabco/md2html/internal/ui/pretty"
	"github.com/yaklabco/md2html/pkg/config"
	"github.com/yaklabco/md2html/pkg/convert"
	"github.com/yaklabco/md2html/pkg/render"
)

// renderFlags holds the rendering flags shared by the converting commands.
// Only flags the user actually set override the loaded configuration.
type renderFlags struct {
	headingIDs  bool
	highlight   bool
	style       string
	detectLang  bool
	indentWidth int
	standalone  bool
}

func (f *renderFlags) register(cmd *cobra.Command, withStandalone bool) {
	cmd.Flags().BoolVar(&f.headingIDs, "heading-ids", false, "add GitHub-style id attributes to headings")
	cmd.Flags().BoolVar(&f.highlight, "highlight", false, "syntax-highlight fenced code blocks")
	cmd.Flags().StringVar(&f.style, "style", config.DefaultStyle, "highlighting style")
	cmd.Flags().BoolVar(&f.detectLang, "detect-lang", false, "detect the language of code blocks without an info string")
	cmd.Flags().IntVar(&f.indentWidth, "indent-width", config.DefaultIndentWidth, "spaces per nesting level in the output")
	if withStandalone {
		cmd.Flags().BoolVar(&f.standalone, "standalone", false, "wrap output in a complete HTML document")
	}
}

func (f *renderFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	changed := cmd.Flags().Changed

	if changed("heading-ids") {
		cfg.Render.HeadingIDs = config.Bool(f.headingIDs)
	}
	if changed("highlight") {
		cfg.Render.Highlight = config.Bool(f.highlight)
	}
	if changed("style") {
		cfg.Render.Style = f.style
	}
	if changed("detect-lang") {
		cfg.Render.DetectLanguage = config.Bool(f.detectLang)
	}
	if changed("indent-width") {
		cfg.Render.IndentWidth = config.Int(f.indentWidth)
	}
	if changed("standalone") {
		cfg.Render.Standalone = config.Bool(f.standalone)
	}
}

// commandContext returns the command's context, or Background if unset.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// loadConfig resolves the effective configuration with cliCfg on top.
func loadConfig(cmd *cobra.Command, cliCfg *config.Config) (*config.Config, error) {
	logger := logging.Default()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(commandContext(cmd), configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldPaths, loadResult.LoadedFrom)
	}

	return loadResult.Config, nil
}

// convertOptions translates a resolved configuration into converter options.
func convertOptions(cfg *config.Config) convert.Options {
	opts := convert.DefaultOptions()
	opts.Render = render.Options{
		HeadingIDs:     config.BoolValue(cfg.Render.HeadingIDs),
		Highlight:      config.BoolValue(cfg.Render.Highlight),
		Style:          cfg.Render.Style,
		DetectLanguage: config.BoolValue(cfg.Render.DetectLanguage),
		IndentWidth:    config.IntValue(cfg.Render.IndentWidth, config.DefaultIndentWidth),
	}
	opts.Standalone = config.BoolValue(cfg.Render.Standalone)
	opts.DryRun = cfg.DryRun
	return opts
}

// newConverter builds a converter from a resolved configuration.
func newConverter(cfg *config.Config) (*convert.Converter, error) {
	conv, err := convert.New(convertOptions(cfg))
	if err != nil {
		return nil, fmt.Errorf("create converter: %w", err)
	}

	logging.Default().Debug("converter ready",
		logging.FieldStyle, cfg.Render.Style,
		logging.FieldDryRun, cfg.DryRun,
	)
	return conv, nil
}

// outputStyles returns pretty styles honouring the --color flag for w.
func outputStyles(cmd *cobra.Command, w io.Writer) *pretty.Styles {
	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}
	return pretty.NewStyles(pretty.IsColorEnabled(colorMode, w))
}

// terminalWidth returns the width of w if it is a terminal, or 0.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}
