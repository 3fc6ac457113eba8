package vdom

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// AttrKind distinguishes plain attributes from event listeners.
type AttrKind uint8

const (
	AttrPlain    AttrKind = iota // name="value"
	AttrListener                 // event listener with callbacks
)

// String returns the string representation of the AttrKind.
func (k AttrKind) String() string {
	switch k {
	case AttrPlain:
		return "Plain"
	case AttrListener:
		return "Listener"
	default:
		return "Unknown"
	}
}

// Attribute is a named value attached to an element. A plain attribute
// carries Value; a listener carries Callbacks and is keyed by the event name
// (e.g., "click", "input").
type Attribute struct {
	Name      string
	Kind      AttrKind
	Value     any
	Callbacks []Callback
}

// Attr creates a plain attribute.
func Attr(name string, value any) Attribute {
	return Attribute{Name: name, Kind: AttrPlain, Value: value}
}

// On creates an event listener attribute for the named event.
func On(event string, callbacks ...Callback) Attribute {
	return Attribute{Name: event, Kind: AttrListener, Callbacks: callbacks}
}

// IsListener returns true if the attribute is an event listener.
func (a Attribute) IsListener() bool {
	return a.Kind == AttrListener
}

// String renders the attribute for debugging output.
func (a Attribute) String() string {
	if a.IsListener() {
		return fmt.Sprintf("on:%s(%d)", a.Name, len(a.Callbacks))
	}
	return fmt.Sprintf("%s=%q", a.Name, propToString(a.Value))
}

// Merge normalizes a raw attribute list so every name appears once.
//
// For plain values the later occurrence wins. For listeners the callbacks of
// every occurrence are concatenated in order. If one name is used with both
// kinds, the later kind replaces the earlier one. Names keep the position of
// their first appearance, which keeps patch output deterministic.
func Merge(attrs []Attribute) []Attribute {
	if len(attrs) == 0 {
		return nil
	}
	out := make([]Attribute, 0, len(attrs))
	pos := make(map[string]int, len(attrs))
	for _, a := range attrs {
		if a.Name == "" {
			continue
		}
		i, seen := pos[a.Name]
		if !seen {
			pos[a.Name] = len(out)
			if a.IsListener() {
				a.Callbacks = append([]Callback(nil), a.Callbacks...)
			}
			out = append(out, a)
			continue
		}
		prev := out[i]
		if a.IsListener() && prev.IsListener() {
			prev.Callbacks = append(prev.Callbacks, a.Callbacks...)
			out[i] = prev
			continue
		}
		if a.IsListener() {
			a.Callbacks = append([]Callback(nil), a.Callbacks...)
		}
		out[i] = a
	}
	return out
}

// Lookup returns the merged attribute with the given name.
func Lookup(attrs []Attribute, name string) (Attribute, bool) {
	for _, a := range Merge(attrs) {
		if a.Name == name {
			return a, true
		}
	}
	return Attribute{}, false
}

var booleanAttrs = map[string]bool{
	"allowfullscreen": true,
	"async":           true,
	"autofocus":       true,
	"autoplay":        true,
	"checked":         true,
	"controls":        true,
	"default":         true,
	"defer":           true,
	"disabled":        true,
	"formnovalidate":  true,
	"hidden":          true,
	"inert":           true,
	"ismap":           true,
	"loop":            true,
	"multiple":        true,
	"muted":           true,
	"novalidate":      true,
	"open":            true,
	"playsinline":     true,
	"readonly":        true,
	"required":        true,
	"reversed":        true,
	"selected":        true,
}

// IsBooleanAttr returns true for HTML boolean attributes such as "checked".
func IsBooleanAttr(name string) bool {
	return booleanAttrs[strings.ToLower(name)]
}

// FormatValue converts a plain attribute value to the string a renderer
// writes. The boolean result is false when the attribute should be omitted
// entirely (a false HTML boolean attribute or a nil value).
func FormatValue(name string, value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case bool:
		if IsBooleanAttr(name) {
			return "", v
		}
	}
	return propToString(value), true
}

// valuesEqual compares two plain attribute values for equality.
func valuesEqual(a, b any) bool {
	// Fast path for common types
	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return av == bv
		}
		return false
	case int:
		if bv, ok := b.(int); ok {
			return av == bv
		}
		return false
	case int64:
		if bv, ok := b.(int64); ok {
			return av == bv
		}
		return false
	case float64:
		if bv, ok := b.(float64); ok {
			return av == bv
		}
		return false
	case bool:
		if bv, ok := b.(bool); ok {
			return av == bv
		}
		return false
	case nil:
		return b == nil
	}
	// Fallback to reflect for complex types
	return reflect.DeepEqual(a, b)
}

// propToString converts a plain value to its attribute string form.
func propToString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case []byte:
		return string(val)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
