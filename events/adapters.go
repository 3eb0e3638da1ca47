package events

import "github.com/forgelogic/vtree/logging"

// AdaptClickEvent wraps a typed click handler into a vnode.ListenerCallback.
// The host-tree binding that dispatches through this registry is
// responsible for constructing the *ClickEventArgs it passes as raw; the
// adapter's job is purely to recover that type safely for application code.
func AdaptClickEvent(handler func(*ClickEventArgs)) func(string, any) {
	return func(event string, raw any) {
		args, ok := raw.(*ClickEventArgs)
		if !ok {
			logging.Warn("events: onclick listener received unexpected event payload %T", raw)
			return
		}
		handler(args)
	}
}

// AdaptChangeEvent wraps a typed change handler.
func AdaptChangeEvent(handler func(*ChangeEventArgs)) func(string, any) {
	return func(event string, raw any) {
		args, ok := raw.(*ChangeEventArgs)
		if !ok {
			logging.Warn("events: onchange listener received unexpected event payload %T", raw)
			return
		}
		handler(args)
	}
}

// AdaptKeyboardEvent wraps a typed keyboard handler.
func AdaptKeyboardEvent(handler func(*KeyboardEventArgs)) func(string, any) {
	return func(event string, raw any) {
		args, ok := raw.(*KeyboardEventArgs)
		if !ok {
			logging.Warn("events: keyboard listener received unexpected event payload %T", raw)
			return
		}
		handler(args)
	}
}

// AdaptMouseEvent wraps a typed mouse handler.
func AdaptMouseEvent(handler func(*MouseEventArgs)) func(string, any) {
	return func(event string, raw any) {
		args, ok := raw.(*MouseEventArgs)
		if !ok {
			logging.Warn("events: mouse listener received unexpected event payload %T", raw)
			return
		}
		handler(args)
	}
}

// AdaptFocusEvent wraps a typed focus/blur handler.
func AdaptFocusEvent(handler func(*FocusEventArgs)) func(string, any) {
	return func(event string, raw any) {
		args, ok := raw.(*FocusEventArgs)
		if !ok {
			logging.Warn("events: focus listener received unexpected event payload %T", raw)
			return
		}
		handler(args)
	}
}

// AdaptFormEvent wraps a typed submit handler.
func AdaptFormEvent(handler func(*FormEventArgs)) func(string, any) {
	return func(event string, raw any) {
		args, ok := raw.(*FormEventArgs)
		if !ok {
			logging.Warn("events: form listener received unexpected event payload %T", raw)
			return
		}
		handler(args)
	}
}

// AdaptNoArgEvent wraps a handler that doesn't need any event data at all.
func AdaptNoArgEvent(handler func()) func(string, any) {
	return func(string, any) { handler() }
}
