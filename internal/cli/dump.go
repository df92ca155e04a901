package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/md2html/internal/logging"
	"github.com/yaklabco/md2html/pkg/fsutil"
	"github.com/yaklabco/md2html/pkg/mdast"
	"github.com/yaklabco/md2html/pkg/parser"
)

func newTokensCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens FILE",
		Short: "Print the token stream of a Markdown file",
		Long: `Print every token the tokenizer produces for FILE, one per line, as
"line:col kind value". Concatenating the values reproduces the file exactly.`,
		Args: exactlyOneFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := parseFile(cmd, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			styles := outputStyles(cmd, out)
			_, err = io.WriteString(out, styles.FormatTokens(doc, terminalWidth(out)))
			return err
		},
	}
}

func newTreeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tree FILE",
		Short: "Print the parsed block tree of a Markdown file",
		Long: `Print the AST built for FILE as an indented outline. Inline content is
shown as the HTML it renders to.`,
		Args: exactlyOneFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := parseFile(cmd, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, err = io.WriteString(out, outputStyles(cmd, out).FormatTree(doc.Tree))
			return err
		},
	}
}

// parseFile reads and parses path, reporting unreadable files the same way
// the root command does.
func parseFile(cmd *cobra.Command, path string) (*mdast.Document, error) {
	source, _, err := fsutil.ReadFile(commandContext(cmd), path)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "failed to open: '%s'\n", path)
		logging.Default().Debug("read failed", logging.FieldPath, path, logging.FieldError, err)
		return nil, fmt.Errorf("%w: %s", ErrOpenFailed, path)
	}

	doc := parser.ParseSource(path, source)
	logging.Default().Debug("parsed",
		logging.FieldPath, path,
		logging.FieldTokens, len(doc.Tokens),
		logging.FieldNodes, doc.Tree.Len(),
	)
	return doc, nil
}
