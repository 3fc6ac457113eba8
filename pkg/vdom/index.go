package vdom

// Size returns the number of nodes in the subtree rooted at n, including n.
// It is the amount the depth-first index advances when n is skipped.
func Size(n Node) int {
	el, ok := n.(*ElementNode)
	if !ok {
		if isNil(n) {
			return 0
		}
		return 1
	}
	if el == nil {
		return 0
	}
	size := 1
	for _, child := range el.Children {
		size += Size(child)
	}
	return size
}

// WalkFunc is called for every node in pre-order with its depth-first index.
// Returning false stops the walk.
type WalkFunc func(index int, n Node) bool

// Walk visits the tree rooted at root in pre-order, assigning the root
// index 0.
func Walk(root Node, fn WalkFunc) {
	idx := 0
	walk(root, &idx, fn)
}

func walk(n Node, idx *int, fn WalkFunc) bool {
	if isNil(n) {
		return true
	}
	if !fn(*idx, n) {
		return false
	}
	*idx++
	if el, ok := n.(*ElementNode); ok {
		for _, child := range el.Children {
			if !walk(child, idx, fn) {
				return false
			}
		}
	}
	return true
}

// NodeAt returns the node with the given depth-first index.
func NodeAt(root Node, index int) (Node, bool) {
	var found Node
	if index < 0 {
		return nil, false
	}
	Walk(root, func(i int, n Node) bool {
		if i == index {
			found = n
			return false
		}
		return true
	})
	return found, found != nil
}

// Indices returns the depth-first index of every node, keyed by node
// pointer. Shared subtrees map to their first occurrence.
func Indices(root Node) map[Node]int {
	out := make(map[Node]int)
	Walk(root, func(i int, n Node) bool {
		if _, ok := out[n]; !ok {
			out[n] = i
		}
		return true
	})
	return out
}
