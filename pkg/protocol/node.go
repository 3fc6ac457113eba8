package protocol

import (
	"errors"
	"fmt"

	"github.com/vango-dev/patchwork/pkg/vdom"
)

// Node tags.
const (
	tagElement byte = 0x01
	tagText    byte = 0x02
	tagNil     byte = 0xFF
)

// Attribute value tags. Values of other types travel as their string form.
const (
	valueNil    byte = 0x00
	valueString byte = 0x01
	valueBool   byte = 0x02
	valueInt    byte = 0x03
	valueInt64  byte = 0x04
	valueFloat  byte = 0x05
	valueBytes  byte = 0x06
)

// ErrInvalidTag is returned for an unknown node, attribute or value tag.
var ErrInvalidTag = errors.New("protocol: invalid tag")

// CallbackResolver supplies the callback attached to a decoded listener.
// A nil resolver, or a nil result, attaches a callback that does nothing.
type CallbackResolver func(event string) vdom.Callback

func (r CallbackResolver) resolve(event string) vdom.Callback {
	if r != nil {
		if cb := r(event); cb != nil {
			return cb
		}
	}
	return func(vdom.Event) any { return nil }
}

// EncodeNode appends a tree to e.
func EncodeNode(e *Encoder, n vdom.Node) {
	switch v := n.(type) {
	case *vdom.ElementNode:
		if v == nil {
			e.WriteByte(tagNil)
			return
		}
		e.WriteByte(tagElement)
		e.WriteString(v.Tag)
		e.WriteString(v.Namespace)
		encodeAttributes(e, vdom.Merge(v.Attrs))
		e.WriteInt(len(v.Children))
		for _, c := range v.Children {
			EncodeNode(e, c)
		}
	case *vdom.TextNode:
		if v == nil {
			e.WriteByte(tagNil)
			return
		}
		e.WriteByte(tagText)
		e.WriteString(v.Text)
	default:
		e.WriteByte(tagNil)
	}
}

// DecodeNode reads a tree written by EncodeNode.
func DecodeNode(d *Decoder, resolve CallbackResolver) (vdom.Node, error) {
	return decodeNode(d, resolve, 0)
}

func decodeNode(d *Decoder, resolve CallbackResolver, depth int) (vdom.Node, error) {
	if err := checkDepth(depth, MaxNodeDepth); err != nil {
		return nil, err
	}
	tag, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	switch tag {
	case tagNil:
		return nil, nil
	case tagText:
		text, err := d.ReadString()
		if err != nil {
			return nil, err
		}
		return vdom.Text(text), nil
	case tagElement:
		name, err := d.ReadString()
		if err != nil {
			return nil, err
		}
		ns, err := d.ReadString()
		if err != nil {
			return nil, err
		}
		attrs, err := decodeAttributes(d, resolve)
		if err != nil {
			return nil, err
		}
		count, err := d.ReadCollectionCount()
		if err != nil {
			return nil, err
		}
		children := make([]vdom.Node, 0, count)
		for i := 0; i < count; i++ {
			c, err := decodeNode(d, resolve, depth+1)
			if err != nil {
				return nil, err
			}
			children = append(children, c)
		}
		return &vdom.ElementNode{Tag: name, Namespace: ns, Attrs: attrs, Children: children}, nil
	default:
		return nil, fmt.Errorf("%w: node 0x%02x", ErrInvalidTag, tag)
	}
}

// encodeNodes writes a counted node list.
func encodeNodes(e *Encoder, nodes []vdom.Node) {
	e.WriteInt(len(nodes))
	for _, n := range nodes {
		EncodeNode(e, n)
	}
}

func decodeNodes(d *Decoder, resolve CallbackResolver) ([]vdom.Node, error) {
	count, err := d.ReadCollectionCount()
	if err != nil {
		return nil, err
	}
	nodes := make([]vdom.Node, 0, count)
	for i := 0; i < count; i++ {
		n, err := DecodeNode(d, resolve)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func encodeAttributes(e *Encoder, attrs []vdom.Attribute) {
	e.WriteInt(len(attrs))
	for _, a := range attrs {
		e.WriteByte(byte(a.Kind))
		e.WriteString(a.Name)
		if !a.IsListener() {
			encodeValue(e, a.Name, a.Value)
		}
	}
}

func decodeAttributes(d *Decoder, resolve CallbackResolver) ([]vdom.Attribute, error) {
	count, err := d.ReadCollectionCount()
	if err != nil {
		return nil, err
	}
	attrs := make([]vdom.Attribute, 0, count)
	for i := 0; i < count; i++ {
		kind, err := d.ReadByte()
		if err != nil {
			return nil, err
		}
		name, err := d.ReadString()
		if err != nil {
			return nil, err
		}
		switch vdom.AttrKind(kind) {
		case vdom.AttrListener:
			attrs = append(attrs, vdom.On(name, resolve.resolve(name)))
		case vdom.AttrPlain:
			v, err := decodeValue(d)
			if err != nil {
				return nil, err
			}
			attrs = append(attrs, vdom.Attr(name, v))
		default:
			return nil, fmt.Errorf("%w: attribute kind 0x%02x", ErrInvalidTag, kind)
		}
	}
	return attrs, nil
}

func encodeValue(e *Encoder, name string, v any) {
	switch val := v.(type) {
	case nil:
		e.WriteByte(valueNil)
	case string:
		e.WriteByte(valueString)
		e.WriteString(val)
	case bool:
		e.WriteByte(valueBool)
		e.WriteBool(val)
	case int:
		e.WriteByte(valueInt)
		e.WriteSvarint(int64(val))
	case int64:
		e.WriteByte(valueInt64)
		e.WriteSvarint(val)
	case float64:
		e.WriteByte(valueFloat)
		e.WriteFloat64(val)
	case []byte:
		e.WriteByte(valueBytes)
		e.WriteLenBytes(val)
	default:
		s, _ := vdom.FormatValue(name, v)
		e.WriteByte(valueString)
		e.WriteString(s)
	}
}

func decodeValue(d *Decoder) (any, error) {
	tag, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	switch tag {
	case valueNil:
		return nil, nil
	case valueString:
		return d.ReadString()
	case valueBool:
		return d.ReadBool()
	case valueInt:
		v, err := d.ReadSvarint()
		return int(v), err
	case valueInt64:
		return d.ReadSvarint()
	case valueFloat:
		return d.ReadFloat64()
	case valueBytes:
		return d.ReadLenBytes()
	default:
		return nil, fmt.Errorf("%w: value 0x%02x", ErrInvalidTag, tag)
	}
}
