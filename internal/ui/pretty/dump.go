package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/md2html/pkg/diff"
	"github.com/yaklabco/md2html/pkg/mdast"
)

// minValueWidth is the narrowest the value column of a token dump gets
// before values are no longer truncated.
const minValueWidth = 16

// FormatTokens renders a document's token stream one token per line as
// "line:col kind value", with values quoted. width is the terminal width; a
// positive width truncates long values to fit.
func (s *Styles) FormatTokens(doc *mdast.Document, width int) string {
	if len(doc.Tokens) == 0 {
		return ""
	}

	type row struct {
		loc  string
		kind mdast.TokenKind
		val  string
	}

	rows := make([]row, 0, len(doc.Tokens))
	locWidth, kindWidth := 0, 0
	for _, tok := range doc.Tokens {
		line, col := doc.LineAt(tok.Offset)
		r := row{
			loc:  fmt.Sprintf("%d:%d", line, col),
			kind: tok.Kind,
			val:  strconv.Quote(tok.Value),
		}
		locWidth = max(locWidth, len(r.loc))
		kindWidth = max(kindWidth, len(tok.Kind.String()))
		rows = append(rows, r)
	}

	valueWidth := 0
	if width > 0 {
		valueWidth = max(minValueWidth, width-locWidth-kindWidth-2*tablePadding)
	}

	var builder strings.Builder
	for _, r := range rows {
		val := r.val
		if valueWidth > 0 {
			val = truncateString(val, valueWidth)
		}
		builder.WriteString(s.paint(s.Location, padRight(r.loc, locWidth)))
		builder.WriteString(strings.Repeat(" ", tablePadding))
		builder.WriteString(s.paint(s.Token(r.kind), padRight(r.kind.String(), kindWidth)))
		builder.WriteString(strings.Repeat(" ", tablePadding))
		builder.WriteString(val)
		builder.WriteByte('\n')
	}

	return builder.String()
}

// FormatTree renders the tree as an indented outline, one node per line.
// Uncoloured output matches mdast.Outline exactly.
func (s *Styles) FormatTree(tree *mdast.Tree) string {
	var builder strings.Builder

	//nolint:errcheck,revive // callback never fails
	mdast.Walk(tree, tree.Root(), func(id mdast.NodeID, node *mdast.Node) error {
		builder.WriteString(strings.Repeat("  ", tree.Depth(id)))
		builder.WriteString(s.paint(s.NodeKind, node.Kind.String()))

		attrs, text := mdast.DescribeParts(node)
		if attrs != "" {
			builder.WriteString(" " + s.paint(s.NodeAttrs, attrs))
		}
		if text != "" {
			builder.WriteString(" " + s.paint(s.NodeText, text))
		}
		builder.WriteByte('\n')
		return nil
	})

	return builder.String()
}

// FormatDiff renders a unified diff with coloured markers.
// Uncoloured output matches d.String() exactly.
func (s *Styles) FormatDiff(d *diff.Diff) string {
	if !d.HasChanges() {
		return ""
	}

	var builder strings.Builder
	builder.WriteString(s.paint(s.DiffHeader, "--- "+d.OldName) + "\n")
	builder.WriteString(s.paint(s.DiffHeader, "+++ "+d.NewName) + "\n")

	for _, hunk := range d.Hunks {
		header := fmt.Sprintf("@@ -%d,%d +%d,%d @@", hunk.OldStart, hunk.OldCount, hunk.NewStart, hunk.NewCount)
		builder.WriteString(s.paint(s.DiffHunk, header) + "\n")

		for _, line := range hunk.Lines {
			text := line.Op.Prefix() + line.Content
			switch line.Op {
			case diff.OpInsert:
				text = s.paint(s.DiffAdd, text)
			case diff.OpDelete:
				text = s.paint(s.DiffRemove, text)
			case diff.OpEqual:
				text = s.paint(s.DiffContext, text)
			}
			builder.WriteString(text + "\n")
		}
	}

	return builder.String()
}

// FormatDiffStat renders "N insertions(+), M deletions(-)".
func (s *Styles) FormatDiffStat(d *diff.Diff) string {
	if !d.HasChanges() {
		return s.paint(s.Success, "outputs are identical") + "\n"
	}
	return fmt.Sprintf("%s, %s\n",
		s.paint(s.DiffAdd, plural(d.Insertions, "insertion")+"(+)"),
		s.paint(s.DiffRemove, plural(d.Deletions, "deletion")+"(-)"),
	)
}
