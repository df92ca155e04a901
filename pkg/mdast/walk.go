package mdast

// WalkFunc is the function signature for Walk callbacks.
// Return a non-nil error to stop the walk.
type WalkFunc func(id NodeID, n *Node) error

// Walk performs a pre-order traversal of the tree starting at id.
// If walkFunc returns a non-nil error, the walk stops immediately and returns
// that error.
func Walk(tree *Tree, id NodeID, walkFunc WalkFunc) error {
	node := tree.Node(id)
	if node == nil {
		return nil
	}

	if err := walkFunc(id, node); err != nil {
		return err
	}

	for _, child := range node.Children {
		if err := Walk(tree, child, walkFunc); err != nil {
			return err
		}
	}

	return nil
}

// WalkWithContext performs a traversal with enter and leave callbacks.
// Enter is called before visiting children, leave is called after.
// Either callback may be nil.
func WalkWithContext(tree *Tree, id NodeID, enter, leave WalkFunc) error {
	node := tree.Node(id)
	if node == nil {
		return nil
	}

	if enter != nil {
		if err := enter(id, node); err != nil {
			return err
		}
	}

	for _, child := range node.Children {
		if err := WalkWithContext(tree, child, enter, leave); err != nil {
			return err
		}
	}

	if leave != nil {
		if err := leave(id, node); err != nil {
			return err
		}
	}

	return nil
}

// FindAll returns all nodes matching the predicate, in pre-order.
func FindAll(tree *Tree, predicate func(n *Node) bool) []NodeID {
	var result []NodeID

	//nolint:errcheck,revive // Walk only returns nil errors in this usage
	Walk(tree, tree.Root(), func(id NodeID, node *Node) error {
		if predicate(node) {
			result = append(result, id)
		}
		return nil
	})

	return result
}

// FindFirst returns the first node matching the predicate, or NoNode.
func FindFirst(tree *Tree, predicate func(n *Node) bool) NodeID {
	found := NoNode

	//nolint:errcheck,revive // errStopWalk is expected and intentionally ignored
	Walk(tree, tree.Root(), func(id NodeID, node *Node) error {
		if predicate(node) {
			found = id
			return errStopWalk
		}
		return nil
	})

	return found
}

// FindByKind returns all nodes of the specified kind.
func FindByKind(tree *Tree, kind NodeKind) []NodeID {
	return FindAll(tree, func(n *Node) bool {
		return n.Kind == kind
	})
}

// errStopWalk is a sentinel error used to stop walking early.
var errStopWalk = &stopWalkError{}

type stopWalkError struct{}

func (e *stopWalkError) Error() string {
	return "stop walk"
}
