// Package el builds virtual trees with one function per HTML element.
//
// Element functions take a mixed argument list. Attributes and listeners
// go to the element, nodes and strings become children, nil is skipped:
//
//	el.Ul(el.Class("todo"),
//	    el.Range(items, func(it Item, i int) vdom.Node {
//	        return el.Li(el.OnClick(toggle(i)), it.Title)
//	    }),
//	    el.If(len(items) == 0, el.Li("nothing to do")),
//	)
//
// The result is an ordinary *vdom.ElementNode.
package el
