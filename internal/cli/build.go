package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/md2html/internal/logging"
	"github.com/yaklabco/md2html/pkg/config"
	"github.com/yaklabco/md2html/pkg/reporter"
	"github.com/yaklabco/md2html/pkg/runner"
)

type buildFlags struct {
	render         renderFlags
	outDir         string
	extension      string
	jobs           int
	dryRun         bool
	include        []string
	ignore         []string
	followSymlinks bool
	format         string
}

func newBuildCommand() *cobra.Command {
	flags := &buildFlags{}

	cmd := &cobra.Command{
		Use:   "build [paths...]",
		Short: "Convert every Markdown file under the given paths",
		Long: `Discover Markdown files and convert them concurrently.

By default, converts all .md and .markdown files in the current directory and
its subdirectories, writing each .html file next to its source. Hidden files
and directories are skipped. Outputs whose content is unchanged are not
rewritten.`,
		Example: `  md2html build                            # Convert the current directory
  md2html build docs/ --out-dir site       # Mirror docs/ into site/
  md2html build --dry-run --format table   # Show what would be written
  md2html build --ignore "drafts/**"       # Skip a directory
  md2html build --format json > build.json # Machine-readable report`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, args, flags)
		},
	}

	flags.render.register(cmd, true)
	cmd.Flags().StringVar(&flags.outDir, "out-dir", "", "write outputs under this directory, mirroring the source tree")
	cmd.Flags().StringVar(&flags.extension, "ext", config.DefaultOutputExtension, "extension of the generated files")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "convert without writing any file")
	cmd.Flags().StringSliceVar(&flags.include, "include", nil, "only convert files matching these glob patterns")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "follow symbolic links")
	cmd.Flags().StringVar(&flags.format, "format", "text", "report format: text, table, summary, json")

	return cmd
}

func (f *buildFlags) config(cmd *cobra.Command) *config.Config {
	cfg := &config.Config{}
	f.render.apply(cmd, cfg)

	changed := cmd.Flags().Changed
	if changed("out-dir") {
		cfg.Output.Dir = f.outDir
	}
	if changed("ext") {
		cfg.Output.Extension = f.extension
	}
	if changed("ignore") {
		cfg.Ignore = f.ignore
	}
	cfg.Jobs = f.jobs
	cfg.DryRun = f.dryRun

	return cfg
}

func runBuild(cmd *cobra.Command, args []string, flags *buildFlags) error {
	logger := logging.Default()
	ctx := commandContext(cmd)

	format, err := reporter.ParseFormat(flags.format)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd, flags.config(cmd))
	if err != nil {
		return err
	}

	conv, err := newConverter(cfg)
	if err != nil {
		return err
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	opts := runner.Options{
		Paths:           args,
		WorkingDir:      workDir,
		Extensions:      cfg.Extensions,
		IncludeGlobs:    flags.include,
		ExcludeGlobs:    cfg.Ignore,
		FollowSymlinks:  flags.followSymlinks,
		Jobs:            cfg.Jobs,
		OutDir:          cfg.Output.Dir,
		OutputExtension: cfg.Output.Extension,
	}

	logger.Debug("starting build",
		logging.FieldPaths, opts.Paths,
		logging.FieldWorkingDir, opts.WorkingDir,
		logging.FieldJobs, opts.Jobs,
		logging.FieldDryRun, cfg.DryRun,
	)

	result, err := runner.New(conv).Run(ctx, opts)
	if err != nil {
		return fmt.Errorf("build: %w", err)
	}

	logger.Debug("build finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesConverted, result.Stats.FilesConverted,
		logging.FieldFilesWritten, result.Stats.FilesWritten,
		logging.FieldFilesErrored, result.Stats.FilesErrored,
		logging.FieldDuration, result.Duration,
	)

	for _, outcome := range result.Files {
		switch {
		case outcome.Error != nil:
			logger.Error("conversion failed", logging.FieldError, outcome.Error)
		case outcome.Result != nil && outcome.Result.Skipped:
			logger.Warn("output not written", logging.FieldPath, outcome.Path, "reason", outcome.Result.SkipReason)
		}
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	out := cmd.OutOrStdout()
	rep, err := reporter.New(reporter.Options{
		Writer:     out,
		Format:     format,
		Color:      colorMode,
		TermWidth:  terminalWidth(out),
		DryRun:     cfg.DryRun,
		WorkingDir: workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	failed, err := rep.Report(ctx, result)
	if err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d files", ErrBuildFailed, failed, result.Stats.FilesDiscovered)
	}
	return nil
}
