package el

import (
	"strings"

	"github.com/vango-dev/patchwork/pkg/vdom"
)

// Attr is vdom.Attr.
func Attr(name string, value any) vdom.Attribute { return vdom.Attr(name, value) }

func ID(id string) vdom.Attribute { return vdom.Attr("id", id) }

// Class joins non-empty class names with spaces.
func Class(classes ...string) vdom.Attribute {
	names := make([]string, 0, len(classes))
	for _, c := range classes {
		if c != "" {
			names = append(names, c)
		}
	}
	return vdom.Attr("class", strings.Join(names, " "))
}

// ClassIf returns class when cond holds and an attribute that New skips
// otherwise.
func ClassIf(cond bool, class string) vdom.Attribute {
	if !cond {
		return vdom.Attribute{}
	}
	return Class(class)
}

func Style(style string) vdom.Attribute      { return vdom.Attr("style", style) }
func Href(href string) vdom.Attribute        { return vdom.Attr("href", href) }
func Src(src string) vdom.Attribute          { return vdom.Attr("src", src) }
func Alt(alt string) vdom.Attribute          { return vdom.Attr("alt", alt) }
func Type(t string) vdom.Attribute           { return vdom.Attr("type", t) }
func Name(name string) vdom.Attribute        { return vdom.Attr("name", name) }
func Value(v any) vdom.Attribute             { return vdom.Attr("value", v) }
func Placeholder(text string) vdom.Attribute { return vdom.Attr("placeholder", text) }
func For(id string) vdom.Attribute           { return vdom.Attr("for", id) }
func Checked(checked bool) vdom.Attribute    { return vdom.Attr("checked", checked) }
func Disabled(disabled bool) vdom.Attribute  { return vdom.Attr("disabled", disabled) }
func Selected(selected bool) vdom.Attribute  { return vdom.Attr("selected", selected) }
func ReadOnly(readOnly bool) vdom.Attribute  { return vdom.Attr("readonly", readOnly) }
func Required(required bool) vdom.Attribute  { return vdom.Attr("required", required) }
func TabIndex(index int) vdom.Attribute      { return vdom.Attr("tabindex", index) }
func Role(role string) vdom.Attribute        { return vdom.Attr("role", role) }
func ViewBox(box string) vdom.Attribute      { return vdom.Attr("viewBox", box) }
func D(path string) vdom.Attribute           { return vdom.Attr("d", path) }
func Fill(color string) vdom.Attribute       { return vdom.Attr("fill", color) }

// Data sets data-key.
func Data(key string, value any) vdom.Attribute { return vdom.Attr("data-"+key, value) }

// Aria sets aria-key.
func Aria(key string, value any) vdom.Attribute { return vdom.Attr("aria-"+key, value) }
