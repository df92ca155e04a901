package parser

import (
	"bytes"
	"strings"

	"github.com/yaklabco/md2html/pkg/mdast"
)

// tabStop is the column multiple a tab advances to.
const tabStop = 4

// lineState records the block a line left open.
// The newline rule commits it so the next line can decide whether to
// continue that block.
type lineState struct {
	kind   mdast.NodeKind
	node   mdast.NodeID
	parent mdast.NodeID
	indent int
}

// noLine is the state of a line that opened nothing.
//
//nolint:gochecknoglobals // Immutable zero state.
var noLine = lineState{kind: mdast.NodeRoot, node: mdast.NoNode, parent: mdast.NoNode}

// listFrame is one open list in the list stack.
type listFrame struct {
	kind     mdast.NodeKind
	list     mdast.NodeID
	indent   int
	lastItem mdast.NodeID
}

// ParsingContext is the mutable cursor threaded through every grammar rule.
// It is scoped to one Parse call.
type ParsingContext struct {
	tree   *mdast.Tree
	parent mdast.NodeID
	column int
	line   int

	// inline receives inline content for the rest of the current line.
	inline mdast.NodeID

	cur  lineState
	prev lineState

	// quotes is the blockquote chain opened on the current line, outermost first.
	quotes     []mdast.NodeID
	prevQuotes []mdast.NodeID

	lists []listFrame

	// text collects the inline HTML of one node until it is flushed into
	// Node.Text. Only one node receives inline content at a time.
	text     []byte
	textNode mdast.NodeID
}

// NewParsingContext creates a context positioned at the start of an empty tree.
func NewParsingContext() *ParsingContext {
	return &ParsingContext{
		tree:     mdast.NewTree(),
		parent:   mdast.RootID,
		line:     1,
		inline:   mdast.NoNode,
		cur:      noLine,
		prev:     noLine,
		textNode: mdast.NoNode,
	}
}

// Tree returns the tree under construction.
func (c *ParsingContext) Tree() *mdast.Tree {
	return c.tree
}

// CurrentParent returns the insertion point.
func (c *ParsingContext) CurrentParent() mdast.NodeID {
	return c.parent
}

// SetParent moves the insertion point.
func (c *ParsingContext) SetParent(id mdast.NodeID) {
	c.parent = id
}

// LastChild returns the last child of the insertion point, or NoNode.
func (c *ParsingContext) LastChild() mdast.NodeID {
	return c.tree.LastChild(c.parent)
}

// PreviousSibling returns the sibling appended just before id, or NoNode.
func (c *ParsingContext) PreviousSibling(id mdast.NodeID) mdast.NodeID {
	return c.tree.PrevSibling(id)
}

// Append inserts node as the last child of the insertion point.
func (c *ParsingContext) Append(node mdast.Node) mdast.NodeID {
	if node.Line == 0 {
		node.Line = c.line
	}
	return c.tree.Append(c.parent, node)
}

// AppendAndEnter appends node and makes it the insertion point.
func (c *ParsingContext) AppendAndEnter(node mdast.Node) mdast.NodeID {
	id := c.Append(node)
	c.parent = id
	return id
}

// AdvanceColumn moves the column past n columns of consumed input.
func (c *ParsingContext) AdvanceColumn(n int) {
	c.column += n
}

// Column returns the column offset consumed on the current line.
func (c *ParsingContext) Column() int {
	return c.column
}

// Line returns the 1-based line being parsed.
func (c *ParsingContext) Line() int {
	return c.line
}

// ResetLine commits the current line's state and rewinds to the root for
// the next line.
func (c *ParsingContext) ResetLine() {
	c.prev = c.cur
	c.prevQuotes = c.quotes
	c.quotes = nil
	c.cur = noLine
	c.parent = mdast.RootID
	c.column = 0
	c.inline = mdast.NoNode
	c.line++
}

// open records that the current line opened or continued a block.
func (c *ParsingContext) open(kind mdast.NodeKind, node mdast.NodeID, indent int) {
	c.cur = lineState{kind: kind, node: node, parent: c.parent, indent: indent}
}

// activeLists returns the list stack if it may continue on this line.
// Only a list line directly following another list line in the same
// container keeps it.
func (c *ParsingContext) activeLists() []listFrame {
	if len(c.lists) == 0 || !c.prev.kind.IsListItem() {
		return nil
	}
	if c.tree.Parent(c.lists[0].list) != c.parent {
		return nil
	}
	return c.lists
}

// textOf returns the pending inline text of id, loading it from the tree
// and flushing the previous node's text if id is not the pending node.
func (c *ParsingContext) textOf(id mdast.NodeID) []byte {
	if c.textNode != id {
		c.flushText()
		c.textNode = id
		c.text = append(c.text[:0], c.tree.Node(id).Text...)
	}
	return c.text
}

// appendText adds inline HTML to the pending text of id.
func (c *ParsingContext) appendText(id mdast.NodeID, html string) {
	c.text = append(c.textOf(id), html...)
}

// trimText drops trailing spaces and tabs from the pending text of id.
func (c *ParsingContext) trimText(id mdast.NodeID) {
	if c.textNode == id {
		c.text = bytes.TrimRight(c.text, " \t")
	}
}

// flushText writes the pending text into its node.
func (c *ParsingContext) flushText() {
	if c.textNode.Valid() {
		c.tree.Node(c.textNode).Text = string(c.text)
	}
	c.textNode = mdast.NoNode
	c.text = c.text[:0]
}

// indentWidth returns the number of columns a whitespace run occupies.
func indentWidth(indent string) int {
	width := 0
	for i := range len(indent) {
		if indent[i] == '\t' {
			width += tabStop - width%tabStop
		} else {
			width++
		}
	}
	return width
}

// stripColumns removes n leading columns of whitespace, splitting tabs into spaces.
func stripColumns(indent string, n int) string {
	width := 0
	for i := range len(indent) {
		if width >= n {
			return indent[i:]
		}
		if indent[i] == '\t' {
			width += tabStop - width%tabStop
		} else {
			width++
		}
	}
	if width > n {
		return strings.Repeat(" ", width-n)
	}
	return ""
}
