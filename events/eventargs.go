package events

// Preventer is the subset of a host event that EventBase needs:
// preventDefault/stopPropagation are host-tree operations, so EventBase
// delegates to whatever the binding supplies rather than depending on a
// particular host (e.g. syscall/js) directly. This keeps the events package
// free of any js/wasm build tag.
type Preventer interface {
	PreventDefault()
	StopPropagation()
}

// EventBase provides the common preventDefault/stopPropagation bookkeeping
// every typed event-argument struct embeds.
type EventBase struct {
	raw                    Preventer
	preventDefaultCalled   bool
	stopPropagationCalled  bool
}

// NewEventBase wraps a host event. Adapter functions in a host-tree binding
// call this when translating a raw dispatched event into a typed
// *EventArgs struct.
func NewEventBase(raw Preventer) EventBase {
	return EventBase{raw: raw}
}

// PreventDefault prevents the host's default action for this event, e.g.
// form submission or link navigation. Idempotent.
func (e *EventBase) PreventDefault() {
	if !e.preventDefaultCalled {
		if e.raw != nil {
			e.raw.PreventDefault()
		}
		e.preventDefaultCalled = true
	}
}

// StopPropagation stops the event from bubbling further. Idempotent.
func (e *EventBase) StopPropagation() {
	if !e.stopPropagationCalled {
		if e.raw != nil {
			e.raw.StopPropagation()
		}
		e.stopPropagationCalled = true
	}
}

// IsDefaultPrevented reports whether PreventDefault was called.
func (e *EventBase) IsDefaultPrevented() bool { return e.preventDefaultCalled }

// IsPropagationStopped reports whether StopPropagation was called.
func (e *EventBase) IsPropagationStopped() bool { return e.stopPropagationCalled }

// ClickEventArgs is passed to onclick listeners.
type ClickEventArgs struct {
	EventBase
	ClientX, ClientY int
	Button           int
	AltKey           bool
	CtrlKey          bool
	ShiftKey         bool
	MetaKey          bool
}

// ChangeEventArgs is passed to input/select/textarea onchange listeners.
// Value is the element's current value: the text content for text inputs,
// the selected option's value for selects, "true"/"false" for checkboxes.
type ChangeEventArgs struct {
	EventBase
	Value string
}

// KeyboardEventArgs is passed to onkeydown/onkeyup/onkeypress listeners.
type KeyboardEventArgs struct {
	EventBase
	Key      string
	Code     string
	AltKey   bool
	CtrlKey  bool
	ShiftKey bool
	MetaKey  bool
}

// MouseEventArgs is passed to onmousedown/onmouseup/onmousemove listeners.
type MouseEventArgs struct {
	EventBase
	ClientX, ClientY int
	Button           int
	AltKey           bool
	CtrlKey          bool
	ShiftKey         bool
	MetaKey          bool
}

// FocusEventArgs is passed to onfocus/onblur listeners.
type FocusEventArgs struct {
	EventBase
}

// FormEventArgs is passed to onsubmit listeners.
type FormEventArgs struct {
	EventBase
}
