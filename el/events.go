package el

import "github.com/vango-dev/patchwork/pkg/vdom"

// On is vdom.On.
func On(event string, callbacks ...vdom.Callback) vdom.Attribute {
	return vdom.On(event, callbacks...)
}

func OnClick(callbacks ...vdom.Callback) vdom.Attribute    { return vdom.On("click", callbacks...) }
func OnDblClick(callbacks ...vdom.Callback) vdom.Attribute { return vdom.On("dblclick", callbacks...) }
func OnInput(callbacks ...vdom.Callback) vdom.Attribute    { return vdom.On("input", callbacks...) }
func OnChange(callbacks ...vdom.Callback) vdom.Attribute   { return vdom.On("change", callbacks...) }
func OnSubmit(callbacks ...vdom.Callback) vdom.Attribute   { return vdom.On("submit", callbacks...) }
func OnKeyDown(callbacks ...vdom.Callback) vdom.Attribute  { return vdom.On("keydown", callbacks...) }
func OnKeyUp(callbacks ...vdom.Callback) vdom.Attribute    { return vdom.On("keyup", callbacks...) }
func OnFocus(callbacks ...vdom.Callback) vdom.Attribute    { return vdom.On("focus", callbacks...) }
func OnBlur(callbacks ...vdom.Callback) vdom.Attribute     { return vdom.On("blur", callbacks...) }

// Msg returns a callback that ignores the event and yields msg.
func Msg(msg any) vdom.Callback {
	return func(vdom.Event) any { return msg }
}
