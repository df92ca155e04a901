package mdast

import "strconv"

// NodeKind classifies the type of an AST node.
// The set is closed: the renderer switches over it exhaustively.
type NodeKind uint8

// Node kinds of the dialect.
const (
	NodeRoot NodeKind = iota
	NodeHeading
	NodeParagraph
	NodeBlockQuote
	NodeOrderedList
	NodeOrderedListItem
	NodeUnorderedList
	NodeUnorderedListItem
	NodeHorizontal
	NodeCodeBlock
	NodeEmptyLine
)

//nolint:gochecknoglobals // Read-only lookup table.
var nodeKindNames = [...]string{
	NodeRoot:              "Root",
	NodeHeading:           "Heading",
	NodeParagraph:         "Paragraph",
	NodeBlockQuote:        "BlockQuote",
	NodeOrderedList:       "OrderedList",
	NodeOrderedListItem:   "OrderedListItem",
	NodeUnorderedList:     "UnorderedList",
	NodeUnorderedListItem: "UnorderedListItem",
	NodeHorizontal:        "Horizontal",
	NodeCodeBlock:         "CodeBlock",
	NodeEmptyLine:         "EmptyLine",
}

// String returns the kind name.
func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return "NodeKind(" + strconv.Itoa(int(k)) + ")"
}

// IsList returns true for ordered and unordered list containers.
func (k NodeKind) IsList() bool {
	return k == NodeOrderedList || k == NodeUnorderedList
}

// IsListItem returns true for ordered and unordered list items.
func (k NodeKind) IsListItem() bool {
	return k == NodeOrderedListItem || k == NodeUnorderedListItem
}

// ItemKind returns the item kind belonging to a list kind.
func (k NodeKind) ItemKind() NodeKind {
	if k == NodeOrderedList {
		return NodeOrderedListItem
	}
	return NodeUnorderedListItem
}

// HasInline returns true if nodes of this kind carry inline text.
func (k NodeKind) HasInline() bool {
	switch k {
	case NodeHeading, NodeParagraph, NodeOrderedListItem, NodeUnorderedListItem:
		return true
	default:
		return false
	}
}

// NodeID addresses a node inside its Tree.
// IDs are stable for the lifetime of the tree.
type NodeID int32

const (
	// NoNode is the null node reference.
	NoNode NodeID = -1

	// RootID is the ID of the root node of every tree.
	RootID NodeID = 0
)

// Valid returns true if id refers to a node.
func (id NodeID) Valid() bool {
	return id >= 0
}

// Node represents a single node in the Markdown AST.
// Children are owned by their parent; Parent is a back-reference only.
type Node struct {
	// Kind identifies what type of node this is.
	Kind NodeKind

	// Parent is the containing node (NoNode for the root).
	Parent NodeID

	// Prev is the sibling appended just before this node, or NoNode.
	Prev NodeID

	// Children lists child nodes in document order.
	Children []NodeID

	// Level is the heading level (1-6) for NodeHeading.
	Level int

	// Indent is the column at creation for paragraphs and lists.
	Indent int

	// Text is the rendered inline content of headings, paragraphs and list items.
	// Plain text is already HTML-escaped; inline spans are spliced in as markup.
	Text string

	// Lines holds the raw (unescaped) lines of a NodeCodeBlock.
	Lines []string

	// Info is the info string following an opening code fence.
	Info string

	// Fenced is true for code blocks delimited by back-tick fences.
	Fenced bool

	// Line is the 1-based source line where the node was opened.
	Line int

	// Offset is the byte offset where the node was opened.
	Offset int
}

// HasChildren returns true if this node has any children.
func (n *Node) HasChildren() bool {
	return len(n.Children) > 0
}

// LastChild returns the last child, or NoNode.
func (n *Node) LastChild() NodeID {
	if len(n.Children) == 0 {
		return NoNode
	}
	return n.Children[len(n.Children)-1]
}
