package mdast

// Tree is an arena of nodes addressed by NodeID.
// The root always has ID RootID. Pointers returned by Node are invalidated by
// the next Append; hold IDs across appends, not pointers.
type Tree struct {
	nodes []Node
}

// NewTree creates a tree holding only the root node.
func NewTree() *Tree {
	return &Tree{
		nodes: []Node{{Kind: NodeRoot, Parent: NoNode, Prev: NoNode}},
	}
}

// Root returns the root node ID.
func (t *Tree) Root() NodeID {
	return RootID
}

// Len returns the number of nodes, including the root.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Node returns the node with the given ID, or nil if out of range.
func (t *Tree) Node(id NodeID) *Node {
	if id < 0 || int(id) >= len(t.nodes) {
		return nil
	}
	return &t.nodes[id]
}

// Kind returns the kind of the node, or NodeRoot for invalid IDs.
func (t *Tree) Kind(id NodeID) NodeKind {
	if n := t.Node(id); n != nil {
		return n.Kind
	}
	return NodeRoot
}

// Append adds node as the last child of parent and returns its ID.
// The node's Parent, Prev and Children fields are overwritten.
func (t *Tree) Append(parent NodeID, node Node) NodeID {
	if t.Node(parent) == nil {
		parent = RootID
	}

	id := NodeID(len(t.nodes))
	node.Parent = parent
	node.Prev = t.nodes[parent].LastChild()
	node.Children = nil
	t.nodes = append(t.nodes, node)
	t.nodes[parent].Children = append(t.nodes[parent].Children, id)

	return id
}

// Children returns the child IDs of a node in document order.
func (t *Tree) Children(id NodeID) []NodeID {
	if n := t.Node(id); n != nil {
		return n.Children
	}
	return nil
}

// LastChild returns the last child of a node, or NoNode. O(1).
func (t *Tree) LastChild(id NodeID) NodeID {
	if n := t.Node(id); n != nil {
		return n.LastChild()
	}
	return NoNode
}

// PrevSibling returns the sibling appended just before id, or NoNode. O(1).
func (t *Tree) PrevSibling(id NodeID) NodeID {
	if n := t.Node(id); n != nil {
		return n.Prev
	}
	return NoNode
}

// Parent returns the parent of a node, or NoNode.
func (t *Tree) Parent(id NodeID) NodeID {
	if n := t.Node(id); n != nil {
		return n.Parent
	}
	return NoNode
}

// Depth returns the number of ancestors between a node and the root.
func (t *Tree) Depth(id NodeID) int {
	depth := 0
	for parent := t.Parent(id); parent.Valid(); parent = t.Parent(parent) {
		depth++
	}
	return depth
}

// ChildCount returns the number of direct children.
func (t *Tree) ChildCount(id NodeID) int {
	return len(t.Children(id))
}
