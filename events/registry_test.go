package events

import (
	"testing"

	"github.com/forgelogic/vtree/vnode"
)

func TestAddAssignsIDAndDispatchInvokesCallback(t *testing.T) {
	reg, trampoline := NewRegistry()
	var gotEvent string
	var gotRaw any

	l := &vnode.Listener{
		Event: "click",
		Callback: func(event string, raw any) {
			gotEvent = event
			gotRaw = raw
		},
	}
	id := reg.Add(l)
	if l.ListenerID != uint64(id) {
		t.Fatalf("Add should stamp listener.ListenerID, got %d want %d", l.ListenerID, id)
	}

	trampoline(id, "click", "payload")
	if gotEvent != "click" || gotRaw != "payload" {
		t.Fatalf("trampoline did not invoke callback correctly: event=%q raw=%v", gotEvent, gotRaw)
	}
}

func TestDispatchUnknownIDIsIgnored(t *testing.T) {
	_, trampoline := NewRegistry()
	trampoline(ID(999), "click", nil) // must not panic
}

func TestRemoveDropsListener(t *testing.T) {
	reg, trampoline := NewRegistry()
	called := false
	l := &vnode.Listener{Event: "click", Callback: func(string, any) { called = true }}
	id := reg.Add(l)
	reg.Remove(*l)

	trampoline(id, "click", nil)
	if called {
		t.Fatalf("callback should not be invoked after Remove")
	}
}

func TestRemoveSubtreeRecurses(t *testing.T) {
	reg, trampoline := NewRegistry()
	called := false
	leafListener := vnode.Listener{Event: "click", Callback: func(string, any) { called = true }}
	reg.Add(&leafListener)

	tree := vnode.Element(vnode.None, "div", nil, nil, []vnode.Node{
		vnode.Element(vnode.None, "button", []vnode.Listener{leafListener}, nil, nil, ""),
	}, "")

	reg.RemoveSubtree(tree)
	trampoline(ID(leafListener.ListenerID), "click", nil)
	if called {
		t.Fatalf("RemoveSubtree should have removed the nested listener")
	}
}

func TestClearActiveListeners(t *testing.T) {
	reg, trampoline := NewRegistry()
	called := false
	l := &vnode.Listener{Event: "click", Callback: func(string, any) { called = true }}
	id := reg.Add(l)
	reg.ClearActiveListeners()

	trampoline(id, "click", nil)
	if called {
		t.Fatalf("callback should not fire after ClearActiveListeners")
	}
}
