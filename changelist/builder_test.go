package changelist

import "testing"

func TestBuilderCommitsTraversalBeforeMutation(t *testing.T) {
	state := NewPersistentState()
	b := state.Builder()

	b.GoDownToChild(2)
	if b.TraversalIsCommitted() {
		t.Fatalf("traversal should not be committed before CommitTraversal")
	}
	b.CommitTraversal()
	if !b.TraversalIsCommitted() {
		t.Fatalf("traversal should be committed after CommitTraversal")
	}

	var ops []Opcode
	state.Emitter().EachInstructionSequence(func(words []uint32) {
		for i := 0; i < len(words); {
			op := Opcode(words[i])
			ops = append(ops, op)
			i += 1 + Arity(op)
		}
	})
	if len(ops) != 1 || ops[0] != OpPushChild {
		t.Fatalf("expected a single push_child opcode from go_down_to_child, got %v", ops)
	}
}

func TestSetAttributeRoutesClassToSetClass(t *testing.T) {
	state := NewPersistentState()
	b := state.Builder()
	b.SetAttribute("class", "btn", false)
	b.SetAttribute("class", "ns-btn", true)
	b.SetAttribute("id", "x", false)

	var ops []Opcode
	state.Emitter().EachInstructionSequence(func(words []uint32) {
		for i := 0; i < len(words); {
			op := Opcode(words[i])
			ops = append(ops, op)
			i += 1 + Arity(op)
		}
	})
	// Each string's first use is preceded by its add_cached_string.
	want := []Opcode{
		OpAddCachedString, OpSetClass,
		OpAddCachedString, OpAddCachedString, OpSetAttribute,
		OpAddCachedString, OpAddCachedString, OpSetAttribute,
	}
	if len(ops) != len(want) {
		t.Fatalf("got %v, want %v", ops, want)
	}
	for i := range want {
		if ops[i] != want[i] {
			t.Fatalf("got %v, want %v", ops, want)
		}
	}
}

func TestForceNewListenersOverridesUpdate(t *testing.T) {
	state := NewPersistentState()
	b := state.Builder()

	prev := b.PushForceNewListeners()
	b.UpdateEventListener("click", 1, 2)
	b.PopForceNewListeners(prev)

	var ops []Opcode
	state.Emitter().EachInstructionSequence(func(words []uint32) {
		for i := 0; i < len(words); {
			op := Opcode(words[i])
			ops = append(ops, op)
			i += 1 + Arity(op)
		}
	})
	if len(ops) != 2 || ops[0] != OpAddCachedString || ops[1] != OpNewEventListener {
		t.Fatalf("expected forced update to emit add_cached_string then new_event_listener, got %v", ops)
	}
}

func TestTemplateRoundTrip(t *testing.T) {
	state := NewPersistentState()
	b := state.Builder()
	if b.HasTemplate(5) {
		t.Fatalf("fresh state should not have template 5")
	}
	b.SaveTemplate(5)
	if !b.HasTemplate(5) {
		t.Fatalf("SaveTemplate(5) should register the template")
	}
}
