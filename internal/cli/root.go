// Package cli provides the Cobra command structure for md2html.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/md2html/internal/logging"
	"github.com/yaklabco/md2html/pkg/config"
	"github.com/yaklabco/md2html/pkg/convert"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

type convertFlags struct {
	render renderFlags
	output string
}

// NewRootCommand creates the root md2html command with all subcommands.
// Invoked with a single file argument, the root command converts it.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string
	flags := &convertFlags{}

	rootCmd := &cobra.Command{
		Use:   "md2html FILE",
		Short: "Convert Markdown to HTML",
		Long: `md2html converts a restricted Markdown dialect to HTML.

It understands ATX headings, paragraphs, blockquotes, nested ordered and
unordered lists, horizontal rules, fenced and indented code blocks, inline
code and emphasis. The HTML fragment is written to standard output unless
--output is given.`,
		Example: `  md2html README.md                     # Print HTML for README.md
  md2html README.md -o README.html      # Write to a file
  md2html README.md --standalone        # Complete HTML document
  md2html build docs/ --out-dir site    # Convert a whole tree`,
		Args: exactlyOneFile,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args[0], flags)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	flags.render.register(rootCmd, true)
	rootCmd.Flags().StringVarP(&flags.output, "output", "o", "", "write HTML to this file instead of stdout")

	// Add subcommands.
	rootCmd.AddCommand(newBuildCommand())
	rootCmd.AddCommand(newTokensCommand())
	rootCmd.AddCommand(newTreeCommand())
	rootCmd.AddCommand(newCompareCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}

// exactlyOneFile prints usage and fails unless exactly one argument is given.
func exactlyOneFile(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		return nil
	}
	fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
	return fmt.Errorf("%w: expected 1 argument, got %d", ErrUsage, len(args))
}

func runConvert(cmd *cobra.Command, path string, flags *convertFlags) error {
	logger := logging.Default()

	cliCfg := &config.Config{}
	flags.render.apply(cmd, cliCfg)

	cfg, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	conv, err := newConverter(cfg)
	if err != nil {
		return err
	}

	result, err := conv.ConvertFile(commandContext(cmd), path, flags.output)
	if errors.Is(err, convert.ErrReadFailure) {
		fmt.Fprintf(cmd.ErrOrStderr(), "failed to open: '%s'\n", path)
		logger.Debug("read failed", logging.FieldPath, path, logging.FieldError, err)
		return fmt.Errorf("%w: %s", ErrOpenFailed, path)
	}
	if err != nil {
		return err
	}

	logger.Debug("converted",
		logging.FieldPath, path,
		logging.FieldTokens, len(result.Document.Tokens),
		logging.FieldNodes, result.Document.Tree.Len(),
		logging.FieldBytes, len(result.HTML),
	)

	if flags.output == "" {
		if _, err := cmd.OutOrStdout().Write(result.HTML); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		return nil
	}

	if result.Skipped {
		logger.Warn("output not written", logging.FieldPath, path, "reason", result.SkipReason)
		return nil
	}
	logger.Debug(result.Summary(), logging.FieldOutput, result.OutputPath)

	return nil
}
