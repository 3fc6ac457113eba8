package el

import "github.com/vango-dev/patchwork/pkg/vdom"

// Sectioning

func Header(args ...any) *vdom.ElementNode  { return build("", "header", args) }
func Footer(args ...any) *vdom.ElementNode  { return build("", "footer", args) }
func Main(args ...any) *vdom.ElementNode    { return build("", "main", args) }
func Nav(args ...any) *vdom.ElementNode     { return build("", "nav", args) }
func Section(args ...any) *vdom.ElementNode { return build("", "section", args) }
func Article(args ...any) *vdom.ElementNode { return build("", "article", args) }
func Aside(args ...any) *vdom.ElementNode   { return build("", "aside", args) }
func H1(args ...any) *vdom.ElementNode      { return build("", "h1", args) }
func H2(args ...any) *vdom.ElementNode      { return build("", "h2", args) }
func H3(args ...any) *vdom.ElementNode      { return build("", "h3", args) }
func H4(args ...any) *vdom.ElementNode      { return build("", "h4", args) }

// Text content

func Div(args ...any) *vdom.ElementNode        { return build("", "div", args) }
func P(args ...any) *vdom.ElementNode          { return build("", "p", args) }
func Pre(args ...any) *vdom.ElementNode        { return build("", "pre", args) }
func Blockquote(args ...any) *vdom.ElementNode { return build("", "blockquote", args) }
func Ul(args ...any) *vdom.ElementNode         { return build("", "ul", args) }
func Ol(args ...any) *vdom.ElementNode         { return build("", "ol", args) }
func Li(args ...any) *vdom.ElementNode         { return build("", "li", args) }
func Hr(args ...any) *vdom.ElementNode         { return build("", "hr", args) }

// Inline text

func A(args ...any) *vdom.ElementNode      { return build("", "a", args) }
func Span(args ...any) *vdom.ElementNode   { return build("", "span", args) }
func Strong(args ...any) *vdom.ElementNode { return build("", "strong", args) }
func Em(args ...any) *vdom.ElementNode     { return build("", "em", args) }
func B(args ...any) *vdom.ElementNode      { return build("", "b", args) }
func I(args ...any) *vdom.ElementNode      { return build("", "i", args) }
func Code(args ...any) *vdom.ElementNode   { return build("", "code", args) }
func Small(args ...any) *vdom.ElementNode  { return build("", "small", args) }
func Br(args ...any) *vdom.ElementNode     { return build("", "br", args) }

// Forms

func Form(args ...any) *vdom.ElementNode     { return build("", "form", args) }
func Label(args ...any) *vdom.ElementNode    { return build("", "label", args) }
func Input(args ...any) *vdom.ElementNode    { return build("", "input", args) }
func Button(args ...any) *vdom.ElementNode   { return build("", "button", args) }
func Select(args ...any) *vdom.ElementNode   { return build("", "select", args) }
func Option(args ...any) *vdom.ElementNode   { return build("", "option", args) }
func Textarea(args ...any) *vdom.ElementNode { return build("", "textarea", args) }

// Tables

func Table(args ...any) *vdom.ElementNode { return build("", "table", args) }
func Thead(args ...any) *vdom.ElementNode { return build("", "thead", args) }
func Tbody(args ...any) *vdom.ElementNode { return build("", "tbody", args) }
func Tr(args ...any) *vdom.ElementNode    { return build("", "tr", args) }
func Th(args ...any) *vdom.ElementNode    { return build("", "th", args) }
func Td(args ...any) *vdom.ElementNode    { return build("", "td", args) }

// Media

func Img(args ...any) *vdom.ElementNode { return build("", "img", args) }

// SVG elements are created in the SVG namespace.

func Svg(args ...any) *vdom.ElementNode    { return build(vdom.SVGNamespace, "svg", args) }
func G(args ...any) *vdom.ElementNode      { return build(vdom.SVGNamespace, "g", args) }
func Path(args ...any) *vdom.ElementNode   { return build(vdom.SVGNamespace, "path", args) }
func Circle(args ...any) *vdom.ElementNode { return build(vdom.SVGNamespace, "circle", args) }
func Rect(args ...any) *vdom.ElementNode   { return build(vdom.SVGNamespace, "rect", args) }
