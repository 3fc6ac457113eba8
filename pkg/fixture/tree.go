package fixture

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/patchwork/pkg/vdom"
)

// ErrInvalidNode is returned for a node that is neither text nor element.
var ErrInvalidNode = errors.New("fixture: node needs either tag or text")

// Tree is the serialized form of a node.
type Tree struct {
	Tag       string      `json:"tag,omitempty" yaml:"tag,omitempty"`
	Namespace string      `json:"ns,omitempty" yaml:"ns,omitempty"`
	Text      *string     `json:"text,omitempty" yaml:"text,omitempty"`
	Attrs     []AttrEntry `json:"attrs,omitempty" yaml:"attrs,omitempty"`
	On        []string    `json:"on,omitempty" yaml:"on,omitempty"`
	Children  []Tree      `json:"children,omitempty" yaml:"children,omitempty"`
}

// AttrEntry is a plain attribute.
type AttrEntry struct {
	Name  string `json:"name" yaml:"name"`
	Value any    `json:"value" yaml:"value"`
}

// TextTree returns the serialized form of a text node.
func TextTree(text string) Tree {
	return Tree{Text: &text}
}

// UnmarshalJSON accepts a bare JSON string as a text node. Unknown object
// fields are rejected.
func (s *Tree) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*s = TextTree(text)
		return nil
	}
	type alias Tree
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode((*alias)(s))
}

// UnmarshalYAML accepts a bare YAML scalar as a text node.
func (s *Tree) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*s = TextTree(node.Value)
		return nil
	}
	type alias Tree
	return node.Decode((*alias)(s))
}

// MarshalJSON writes text nodes as bare strings.
func (s Tree) MarshalJSON() ([]byte, error) {
	if s.Text != nil && s.Tag == "" {
		return json.Marshal(*s.Text)
	}
	type alias Tree
	return json.Marshal(alias(s))
}

// MarshalYAML writes text nodes as bare scalars.
func (s Tree) MarshalYAML() (any, error) {
	if s.Text != nil && s.Tag == "" {
		return *s.Text, nil
	}
	type alias Tree
	return alias(s), nil
}

// Listener builds the callback for a listener named in a fixture. The
// default callback returns the event it receives.
type Listener func(event string) vdom.Callback

func defaultListener(string) vdom.Callback {
	return func(ev vdom.Event) any { return ev }
}

// Node converts s into a virtual tree. A nil listener uses the default.
func (s Tree) Node(listen Listener) (vdom.Node, error) {
	if listen == nil {
		listen = defaultListener
	}
	return s.node(listen, "")
}

func (s Tree) node(listen Listener, path string) (vdom.Node, error) {
	switch {
	case s.Tag == "" && s.Text != nil:
		return vdom.Text(*s.Text), nil
	case s.Tag == "":
		return nil, fmt.Errorf("%w at %s", ErrInvalidNode, pathOrRoot(path))
	}

	attrs := make([]vdom.Attribute, 0, len(s.Attrs)+len(s.On))
	for _, a := range s.Attrs {
		attrs = append(attrs, vdom.Attr(a.Name, a.Value))
	}
	for _, event := range s.On {
		attrs = append(attrs, vdom.On(event, listen(event)))
	}
	children := make([]vdom.Node, 0, len(s.Children))
	for i, c := range s.Children {
		n, err := c.node(listen, fmt.Sprintf("%s/%d", path, i))
		if err != nil {
			return nil, err
		}
		children = append(children, n)
	}
	return vdom.ElementNS(s.Namespace, s.Tag, attrs, children...), nil
}

func pathOrRoot(path string) string {
	if path == "" {
		return "root"
	}
	return path
}

// FromNode converts a virtual tree into its serialized form. Listener callbacks are
// dropped; only event names are kept.
func FromNode(n vdom.Node) Tree {
	switch v := n.(type) {
	case *vdom.TextNode:
		return TextTree(v.Text)
	case *vdom.ElementNode:
		s := Tree{Tag: v.Tag, Namespace: v.Namespace}
		for _, a := range vdom.Merge(v.Attrs) {
			if a.IsListener() {
				s.On = append(s.On, a.Name)
				continue
			}
			s.Attrs = append(s.Attrs, AttrEntry{Name: a.Name, Value: a.Value})
		}
		for _, c := range v.Children {
			s.Children = append(s.Children, FromNode(c))
		}
		return s
	}
	return Tree{}
}
