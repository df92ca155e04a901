package mdast

import (
	"strconv"
	"strings"
)

// Outline renders the tree as an indented list of node kinds and attributes,
// one node per line.
func Outline(tree *Tree) string {
	var builder strings.Builder

	//nolint:errcheck,revive // callback never fails
	Walk(tree, tree.Root(), func(id NodeID, node *Node) error {
		builder.WriteString(strings.Repeat("  ", tree.Depth(id)))
		builder.WriteString(Describe(node))
		builder.WriteByte('\n')
		return nil
	})

	return builder.String()
}

// Describe returns a one-line summary of a node.
func Describe(node *Node) string {
	attrs, text := DescribeParts(node)

	var builder strings.Builder
	builder.WriteString(node.Kind.String())
	if attrs != "" {
		builder.WriteString(" " + attrs)
	}
	if text != "" {
		builder.WriteString(" " + text)
	}
	return builder.String()
}

// DescribeParts returns the attribute list and the quoted inline text of a
// node, either of which may be empty.
func DescribeParts(node *Node) (attrs, text string) {
	var parts []string

	switch node.Kind {
	case NodeHeading:
		parts = append(parts, "level="+strconv.Itoa(node.Level))
	case NodeParagraph, NodeOrderedList, NodeUnorderedList:
		if node.Indent > 0 {
			parts = append(parts, "indent="+strconv.Itoa(node.Indent))
		}
	case NodeCodeBlock:
		if node.Fenced {
			parts = append(parts, "fenced")
		}
		if node.Info != "" {
			parts = append(parts, "info="+strconv.Quote(node.Info))
		}
		parts = append(parts, "lines="+strconv.Itoa(len(node.Lines)))
	default:
	}

	if node.Kind.HasInline() {
		text = strconv.Quote(node.Text)
	}

	return strings.Join(parts, " "), text
}
