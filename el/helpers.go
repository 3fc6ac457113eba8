package el

import "github.com/vango-dev/patchwork/pkg/vdom"

// Text is vdom.Text.
func Text(content string) *vdom.TextNode { return vdom.Text(content) }

// Textf is vdom.Textf.
func Textf(format string, args ...any) *vdom.TextNode { return vdom.Textf(format, args...) }

// If returns node when cond holds and nil otherwise.
func If(cond bool, node vdom.Node) vdom.Node {
	if cond {
		return node
	}
	return nil
}

// IfElse returns ifTrue or ifFalse.
func IfElse(cond bool, ifTrue, ifFalse vdom.Node) vdom.Node {
	if cond {
		return ifTrue
	}
	return ifFalse
}

// When calls fn only when cond holds.
func When(cond bool, fn func() vdom.Node) vdom.Node {
	if cond {
		return fn()
	}
	return nil
}

// Range maps items to nodes. Nil results are dropped.
func Range[T any](items []T, fn func(item T, index int) vdom.Node) []vdom.Node {
	nodes := make([]vdom.Node, 0, len(items))
	for i, it := range items {
		if n := fn(it, i); n != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// Repeat calls fn n times.
func Repeat(n int, fn func(i int) vdom.Node) []vdom.Node {
	nodes := make([]vdom.Node, 0, n)
	for i := 0; i < n; i++ {
		if node := fn(i); node != nil {
			nodes = append(nodes, node)
		}
	}
	return nodes
}
