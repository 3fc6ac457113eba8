package vdom

// Event is the payload handed to listener callbacks when the rendering
// surface reports an event on a live node.
type Event struct {
	Type   string            // Event name, e.g. "click"
	Target int               // Depth-first index of the node the event fired on
	Value  string            // Current value for input-like targets
	Data   map[string]string // Surface-specific extras (key, button, ...)
}

// Callback handles an event and returns the message the update loop should
// consume. A nil message means nothing to dispatch.
type Callback func(Event) any

// Dispatch invokes every callback in order and collects the non-nil messages.
func Dispatch(callbacks []Callback, ev Event) []any {
	var msgs []any
	for _, cb := range callbacks {
		if cb == nil {
			continue
		}
		if msg := cb(ev); msg != nil {
			msgs = append(msgs, msg)
		}
	}
	return msgs
}
