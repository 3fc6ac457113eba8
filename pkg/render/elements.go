package render

import "github.com/vango-dev/patchwork/pkg/vdom"

// voidElements have no closing tag and no children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

func isVoidElement(tag, namespace string) bool {
	return namespace == "" && voidElements[tag]
}

// inlineElements stay on one line in pretty output.
var inlineElements = map[string]bool{
	"a":      true,
	"abbr":   true,
	"b":      true,
	"cite":   true,
	"code":   true,
	"em":     true,
	"i":      true,
	"kbd":    true,
	"label":  true,
	"mark":   true,
	"q":      true,
	"s":      true,
	"small":  true,
	"span":   true,
	"strong": true,
	"sub":    true,
	"sup":    true,
	"time":   true,
	"u":      true,
}

// hasBlockChildren reports whether pretty output should break lines inside el.
func hasBlockChildren(el *vdom.ElementNode) bool {
	if len(el.Children) == 0 || inlineElements[el.Tag] {
		return false
	}
	for _, c := range el.Children {
		if c.Kind() == vdom.KindElement {
			return true
		}
	}
	return false
}
