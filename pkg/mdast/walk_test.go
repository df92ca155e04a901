package mdast_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/md2html/pkg/mdast"
)

func buildTestTree() *mdast.Tree {
	// Root
	//   Heading
	//   BlockQuote
	//     Paragraph
	//   UnorderedList
	//     UnorderedListItem
	tree := mdast.NewTree()
	tree.Append(tree.Root(), mdast.Node{Kind: mdast.NodeHeading, Level: 1})
	quote := tree.Append(tree.Root(), mdast.Node{Kind: mdast.NodeBlockQuote})
	tree.Append(quote, mdast.Node{Kind: mdast.NodeParagraph})
	list := tree.Append(tree.Root(), mdast.Node{Kind: mdast.NodeUnorderedList})
	tree.Append(list, mdast.Node{Kind: mdast.NodeUnorderedListItem})

	return tree
}

func TestWalk(t *testing.T) {
	t.Parallel()

	tree := buildTestTree()

	var visited []mdast.NodeKind
	err := mdast.Walk(tree, tree.Root(), func(_ mdast.NodeID, n *mdast.Node) error {
		visited = append(visited, n.Kind)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []mdast.NodeKind{
		mdast.NodeRoot,
		mdast.NodeHeading,
		mdast.NodeBlockQuote,
		mdast.NodeParagraph,
		mdast.NodeUnorderedList,
		mdast.NodeUnorderedListItem,
	}, visited)
}

func TestWalk_StopsOnError(t *testing.T) {
	t.Parallel()

	tree := buildTestTree()
	errStop := errors.New("stop")

	count := 0
	err := mdast.Walk(tree, tree.Root(), func(_ mdast.NodeID, n *mdast.Node) error {
		count++
		if n.Kind == mdast.NodeBlockQuote {
			return errStop
		}
		return nil
	})

	require.ErrorIs(t, err, errStop)
	assert.Equal(t, 3, count)
}

func TestWalkWithContext(t *testing.T) {
	t.Parallel()

	tree := buildTestTree()

	var events []string
	err := mdast.WalkWithContext(tree, tree.Root(),
		func(_ mdast.NodeID, n *mdast.Node) error {
			events = append(events, "enter:"+n.Kind.String())
			return nil
		},
		func(_ mdast.NodeID, n *mdast.Node) error {
			events = append(events, "leave:"+n.Kind.String())
			return nil
		},
	)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"enter:Root",
		"enter:Heading",
		"leave:Heading",
		"enter:BlockQuote",
		"enter:Paragraph",
		"leave:Paragraph",
		"leave:BlockQuote",
		"enter:UnorderedList",
		"enter:UnorderedListItem",
		"leave:UnorderedListItem",
		"leave:UnorderedList",
		"leave:Root",
	}, events)
}

func TestFind(t *testing.T) {
	t.Parallel()

	tree := buildTestTree()

	assert.Len(t, mdast.FindByKind(tree, mdast.NodeParagraph), 1)
	assert.Empty(t, mdast.FindByKind(tree, mdast.NodeCodeBlock))

	first := mdast.FindFirst(tree, func(n *mdast.Node) bool { return n.Kind.IsList() })
	require.True(t, first.Valid())
	assert.Equal(t, mdast.NodeUnorderedList, tree.Kind(first))

	assert.Equal(t, mdast.NoNode, mdast.FindFirst(tree, func(n *mdast.Node) bool {
		return n.Kind == mdast.NodeEmptyLine
	}))
}
