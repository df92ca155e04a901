package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/md2html/internal/logging"
	"github.com/yaklabco/md2html/pkg/config"
	"github.com/yaklabco/md2html/pkg/diff"
	"github.com/yaklabco/md2html/pkg/reference"
)

type compareFlags struct {
	render renderFlags
	flavor string
	stat   bool
}

func newCompareCommand() *cobra.Command {
	flags := &compareFlags{}

	cmd := &cobra.Command{
		Use:   "compare FILE",
		Short: "Diff md2html output against a CommonMark renderer",
		Long: `Render FILE with md2html and with goldmark, then print a unified diff of
the two. Indentation and blank-line placeholders are normalised away before
comparing. Exits with status 1 when the outputs differ.`,
		Example: `  md2html compare README.md
  md2html compare README.md --flavor gfm
  md2html compare README.md --stat`,
		Args: exactlyOneFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, args[0], flags)
		},
	}

	flags.render.register(cmd, false)
	cmd.Flags().StringVar(&flags.flavor, "flavor", string(config.FlavorCommonMark),
		"reference Markdown flavor: commonmark, gfm")
	cmd.Flags().BoolVar(&flags.stat, "stat", false, "only print the number of differing lines")

	return cmd
}

func runCompare(cmd *cobra.Command, path string, flags *compareFlags) error {
	logger := logging.Default()
	ctx := commandContext(cmd)

	cliCfg := &config.Config{}
	flags.render.apply(cmd, cliCfg)
	if cmd.Flags().Changed("flavor") {
		cliCfg.Compare.Flavor = config.Flavor(flags.flavor)
	}

	cfg, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}
	cfg.Render.Standalone = config.Bool(false)

	doc, err := parseFile(cmd, path)
	if err != nil {
		return err
	}

	conv, err := newConverter(cfg)
	if err != nil {
		return err
	}
	ours, err := conv.Convert(ctx, path, doc.Source)
	if err != nil {
		return err
	}

	ref := reference.New(string(cfg.Compare.Flavor))
	theirs, err := ref.Render(ctx, doc.Source)
	if err != nil {
		return err
	}

	logger.Debug("comparing",
		logging.FieldPath, path,
		logging.FieldFlavor, ref.Flavor(),
	)

	result := diff.Compare("md2html", "goldmark ("+ref.Flavor()+")",
		reference.Normalize(ours.HTML), reference.Normalize(theirs))

	out := cmd.OutOrStdout()
	styles := outputStyles(cmd, out)

	report := styles.FormatDiffStat(result)
	if !flags.stat {
		report = styles.FormatDiff(result) + report
	}
	if _, err := io.WriteString(out, report); err != nil {
		return fmt.Errorf("write diff: %w", err)
	}

	if result.HasChanges() {
		return fmt.Errorf("%w: %s", ErrOutputsDiffer, path)
	}
	return nil
}
