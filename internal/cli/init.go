package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/md2html/internal/configloader"
	"github.com/yaklabco/md2html/internal/logging"
	"github.com/yaklabco/md2html/pkg/config"
	"github.com/yaklabco/md2html/pkg/render"
)

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new md2html configuration file",
		Long: `Create a new .md2html.yml configuration file in the current directory.
The minimal template lists every option commented out; the full template
sets each option to its default and lists the available highlighting styles.`,
		Example: `  md2html init                        Create a minimal .md2html.yml
  md2html init --full                 Write every option with its default
  md2html init --output custom.yml    Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "generate the full template with every option")
	cmd.Flags().StringVarP(&flags.output, "output", "o", configloader.ProjectConfigName, "output file path")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewInteractive()

	absPath, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	overwrite := flags.force
	if _, err := os.Stat(absPath); err == nil && !overwrite {
		if !isInteractive(cmd.InOrStdin()) {
			return fmt.Errorf("file %q already exists; use --force to overwrite", flags.output)
		}
		ok, err := confirm(cmd.InOrStdin(), cmd.ErrOrStderr(),
			fmt.Sprintf("%s already exists. Overwrite? [y/N] ", flags.output))
		if err != nil {
			return err
		}
		if !ok {
			logger.Info("left existing file untouched", logging.FieldPath, flags.output)
			return nil
		}
		overwrite = true
	}

	content := config.GenerateTemplate(config.TemplateOptions{
		Full:    flags.full,
		Styles:  render.StyleNames(),
		EnvVars: configloader.ListEnvVars(),
	})

	if err := configloader.WriteConfig(absPath, content, overwrite); err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("file %q already exists; use --force to overwrite", flags.output)
		}
		return err
	}

	logger.Info("created configuration file", logging.FieldPath, flags.output)
	logger.Info("customize your configuration by editing the file")

	return nil
}

// isInteractive reports whether r is a terminal.
func isInteractive(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// confirm asks a yes/no question and reads one line of answer.
func confirm(in io.Reader, out io.Writer, prompt string) (bool, error) {
	fmt.Fprint(out, prompt)

	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read answer: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
