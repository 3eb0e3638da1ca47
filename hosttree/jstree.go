//go:build js || wasm
// +build js wasm

package hosttree

import (
	"strconv"
	"syscall/js"

	"github.com/forgelogic/vtree/events"
)

// JSTree binds Tree to a real browser DOM via syscall/js, in the same
// createElement/setAttribute/addEventListener idiom as the teacher's
// vdom/render.go, generalized from that file's fixed per-tag switch to a
// single tag-agnostic document.createElement call (the differ, not this
// binding, is what already knows which tag a node should be).
type JSTree struct {
	document   js.Value
	trampoline events.Trampoline
	callbacks  map[string]js.Func // one shared closure per event name
}

// NewJSTree returns a JSTree bound to the current document. The element
// that owns the tree's root (Tree's "container") is looked up separately,
// via Mount.
func NewJSTree(trampoline events.Trampoline) *JSTree {
	return &JSTree{
		document:   js.Global().Get("document"),
		trampoline: trampoline,
		callbacks:  make(map[string]js.Func),
	}
}

// Mount wraps a querySelector result as the Tree container.
func (t *JSTree) Mount(selector string) (Node, bool) {
	el := t.document.Call("querySelector", selector)
	if !el.Truthy() {
		return js.Undefined(), false
	}
	return el, true
}

func asJS(n Node) js.Value { return n.(js.Value) }

func (t *JSTree) CreateTextNode(text string) Node {
	return t.document.Call("createTextNode", text)
}

func (t *JSTree) CreateElement(tagName string) Node {
	return t.document.Call("createElement", tagName)
}

func (t *JSTree) CreateElementNS(tagName, namespace string) Node {
	return t.document.Call("createElementNS", namespace, tagName)
}

func (t *JSTree) AppendChild(parent, child Node) {
	asJS(parent).Call("appendChild", asJS(child))
}

func (t *JSTree) InsertBefore(parent, newNode, reference Node) {
	asJS(parent).Call("insertBefore", asJS(newNode), asJS(reference))
}

func (t *JSTree) Remove(node Node) {
	n := asJS(node)
	if n.Get("remove").Truthy() {
		n.Call("remove")
	}
}

func (t *JSTree) SetTextContent(node Node, text string) {
	asJS(node).Set("textContent", text)
}

func (t *JSTree) SetAttribute(node Node, name, value string) {
	asJS(node).Call("setAttribute", name, value)
}

func (t *JSTree) RemoveAttribute(node Node, name string) {
	asJS(node).Call("removeAttribute", name)
}

func (t *JSTree) SetClassName(node Node, class string) {
	asJS(node).Set("className", class)
}

// sharedCallback returns the one js.Func installed for eventName across the
// whole tree, creating it (and reading back the dodrio-a-/dodrio-b-
// attributes off the actual event target) the first time eventName is
// seen, matching the original interpreter's single-shared-closure-per-
// event-type design.
func (t *JSTree) sharedCallback(eventName string) js.Func {
	if cb, ok := t.callbacks[eventName]; ok {
		return cb
	}
	cb := js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) == 0 {
			return nil
		}
		event := args[0]
		target := event.Get("target")
		a := parseAttrUint(target, "dodrio-a-"+eventName)
		b := parseAttrUint(target, "dodrio-b-"+eventName)
		t.trampoline(events.JoinID(a, b), eventName, event)
		return nil
	})
	t.callbacks[eventName] = cb
	return cb
}

func parseAttrUint(el js.Value, name string) uint32 {
	v := el.Call("getAttribute", name)
	if !v.Truthy() {
		return 0
	}
	n, err := strconv.ParseUint(v.String(), 10, 32)
	if err != nil {
		return 0
	}
	return uint32(n)
}

func (t *JSTree) AddEventListener(node Node, eventName string, a, b uint32) {
	n := asJS(node)
	n.Call("addEventListener", eventName, t.sharedCallback(eventName))
	n.Call("setAttribute", "dodrio-a-"+eventName, strconv.FormatUint(uint64(a), 10))
	n.Call("setAttribute", "dodrio-b-"+eventName, strconv.FormatUint(uint64(b), 10))
}

func (t *JSTree) RemoveEventListener(node Node, eventName string) {
	n := asJS(node)
	n.Call("removeEventListener", eventName, t.sharedCallback(eventName))
	n.Call("removeAttribute", "dodrio-a-"+eventName)
	n.Call("removeAttribute", "dodrio-b-"+eventName)
}

func (t *JSTree) CloneNodeDeep(node Node) Node {
	return asJS(node).Call("cloneNode", true)
}

func (t *JSTree) ChildNodes(node Node) []Node {
	children := asJS(node).Get("childNodes")
	length := children.Get("length").Int()
	out := make([]Node, length)
	for i := 0; i < length; i++ {
		out[i] = children.Call("item", i)
	}
	return out
}

func (t *JSTree) ParentNode(node Node) (Node, bool) {
	p := asJS(node).Get("parentNode")
	if !p.Truthy() {
		return nil, false
	}
	return p, true
}

func (t *JSTree) FirstChild(container Node) (Node, bool) {
	c := asJS(container).Get("firstChild")
	if !c.Truthy() {
		return nil, false
	}
	return c, true
}

// jsScheduler implements Scheduler against the browser window, matching
// §5's animation-frame/microtask split exactly: requestAnimationFrame for
// the former, queueMicrotask for the latter.
type jsScheduler struct {
	window js.Value
}

// NewJSScheduler returns a Scheduler bound to the global window.
func NewJSScheduler() Scheduler {
	return &jsScheduler{window: js.Global()}
}

func (s *jsScheduler) AnimationFrame(fn func()) {
	var cb js.Func
	cb = js.FuncOf(func(this js.Value, args []js.Value) any {
		defer cb.Release()
		fn()
		return nil
	})
	s.window.Call("requestAnimationFrame", cb)
}

func (s *jsScheduler) Microtask(fn func()) {
	var cb js.Func
	cb = js.FuncOf(func(this js.Value, args []js.Value) any {
		defer cb.Release()
		fn()
		return nil
	})
	s.window.Call("queueMicrotask", cb)
}
