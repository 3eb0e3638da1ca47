package hosttree

import (
	"strings"
	"testing"

	"github.com/forgelogic/vtree/changelist"
	"github.com/forgelogic/vtree/events"
	"github.com/forgelogic/vtree/vnode"
)

func newFixture(t *testing.T) (*DumpTree, *Interpreter, *changelist.PersistentState) {
	t.Helper()
	_, trampoline := events.NewRegistry()
	dt := NewDumpTree(trampoline)
	interp := NewInterpreter(dt, dt.Container())
	state := changelist.NewPersistentState()
	interp.Start()
	return dt, interp, state
}

func TestInterpreterSetTextUpdatesTopOfStack(t *testing.T) {
	dt, interp, state := newFixture(t)
	b := state.Builder()
	b.SetText("hello")

	interp.Apply(state)

	if !strings.Contains(dt.String(), `"hello"`) {
		t.Fatalf("got dump %q, want it to contain the new text", dt.String())
	}
}

func TestInterpreterCreateElementAndAppendChild(t *testing.T) {
	dt, interp, state := newFixture(t)
	b := state.Builder()
	b.CreateElement("span")
	b.SetAttribute("id", "x", false)
	b.AppendChild()

	interp.Apply(state)

	dump := dt.String()
	if !strings.Contains(dump, "<span") {
		t.Fatalf("got dump %q, want an appended <span>", dump)
	}
	if !strings.Contains(dump, `id="x"`) {
		t.Fatalf("got dump %q, want id=\"x\" on the span", dump)
	}
}

func TestInterpreterSetClassRoutesToClassName(t *testing.T) {
	dt, interp, state := newFixture(t)
	b := state.Builder()
	b.SetAttribute("class", "card", false)

	interp.Apply(state)

	root := dt.root.children[0]
	if root.class != "card" {
		t.Fatalf("got class %q, want %q", root.class, "card")
	}
	if _, ok := root.attributes["class"]; ok {
		t.Fatalf("class should not also appear as a literal attribute")
	}
}

func TestInterpreterNavigatesIntoChildBeforeMutating(t *testing.T) {
	dt, interp, state := newFixture(t)
	b := state.Builder()
	b.CreateElement("span")
	b.AppendChild()
	interp.Apply(state)
	state.Emitter().Reset()

	b = state.Builder()
	b.GoDownToChild(0)
	b.SetText("nested")

	interp.Apply(state)

	span := dt.root.children[0].children[0]
	if span.text != "nested" {
		t.Fatalf("got span text %q, want %q", span.text, "nested")
	}
}

func TestInterpreterReplaceWithSwapsNode(t *testing.T) {
	dt, interp, state := newFixture(t)
	b := state.Builder()
	b.CreateElement("section")
	b.ReplaceWith()

	interp.Apply(state)

	if got := dt.root.children[0].tag; got != "section" {
		t.Fatalf("got root tag %q, want %q", got, "section")
	}
}

func TestInterpreterEventListenerRoundTripsThroughFire(t *testing.T) {
	registry, trampoline := events.NewRegistry()
	dt := NewDumpTree(trampoline)
	interp := NewInterpreter(dt, dt.Container())
	interp.Start()
	state := changelist.NewPersistentState()
	b := state.Builder()

	var fired bool
	var seenRaw any
	listener := &vnode.Listener{Event: "click", Callback: func(_ string, raw any) { fired = true; seenRaw = raw }}
	id := registry.Add(listener)
	a, bHalf := id.Split()
	b.NewEventListener(listener.Event, a, bHalf)

	interp.Apply(state)

	root := dt.root.children[0]
	dt.Fire(root, "click", "payload")

	if !fired {
		t.Fatalf("Fire should dispatch through the registry to the registered callback")
	}
	if seenRaw != "payload" {
		t.Fatalf("got raw %v, want %q", seenRaw, "payload")
	}
}

func TestDumpTreeCloneNodeDeepCopiesSubtree(t *testing.T) {
	dt := NewDumpTree(nil)
	parent := asDumpNode(dt.CreateElement("ul"))
	child := asDumpNode(dt.CreateElement("li"))
	dt.AppendChild(parent, child)
	dt.SetAttribute(child, "data-k", "1")

	clone := asDumpNode(dt.CloneNodeDeep(parent))

	if len(clone.children) != 1 || clone.children[0] == child {
		t.Fatalf("clone should have an independent copy of the child, not share it")
	}
	if clone.children[0].attributes["data-k"] != "1" {
		t.Fatalf("clone should carry over the child's attributes")
	}
}
