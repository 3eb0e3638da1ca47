// Package changelist is the bytecode layer: it defines the opcode table
// emitted by Emitter, the Traversal optimiser that minimizes cursor moves
// between mutations, the StringCache that deduplicates strings crossing the
// host boundary, and Builder, which wires the three together behind an API
// that guarantees every mutation opcode is preceded by a fully committed
// traversal.
package changelist

import "github.com/forgelogic/vtree/logging"

// PersistentState is the part of a change list that survives across
// renders: the traversal optimiser and the emitter's arena. A fresh
// Builder is taken out against it once per render.
type PersistentState struct {
	traversal *Traversal
	emitter   *Emitter
	strings   *StringCache
	templates map[uint32]bool
}

// NewPersistentState returns a fresh, empty PersistentState.
func NewPersistentState() *PersistentState {
	return &PersistentState{
		traversal: NewTraversal(),
		emitter:   NewEmitter(),
		strings:   NewStringCache(),
		templates: make(map[uint32]bool),
	}
}

// Builder starts a new change list against the state.
func (s *PersistentState) Builder() *Builder {
	return &Builder{state: s}
}

// Emitter exposes the underlying emitter, for callers (the host-tree
// interpreter, cmd/vtreectl's opcode dump) that need to read back the
// instruction stream after a Builder has finished with it.
func (s *PersistentState) Emitter() *Emitter { return s.emitter }

// Strings exposes the underlying string cache, so the host-tree interpreter
// can resolve the key immediates it reads off the opcode stream back into
// the strings they name.
func (s *PersistentState) Strings() *StringCache { return s.strings }

// DropUnusedStrings sweeps the string cache, giving every string one frame
// of grace past its last use before emitting a DropCachedString for it.
func (s *PersistentState) DropUnusedStrings() { s.strings.DropUnusedStrings(s.emitter) }

// Builder accumulates one render's worth of change-list instructions. Every
// mutation method commits any pending traversal first (see assertCommitted),
// in every build; an uncommitted traversal is logged at debug level, not
// treated as an assertion failure, since an opcode that mutates the host tree must always operate on a cursor
// the interpreter has actually navigated to.
type Builder struct {
	state               *PersistentState
	nextTemporary       uint32
	forcingNewListeners bool
}

// Finish discards any uncommitted traversal moves before the next render.
// It resets neither the emitter (callers reset it via Emitter().Reset once
// its instructions have been applied) nor the string cache, which is swept
// separately via DropUnusedStrings so strings get their frame of grace.
func (s *PersistentState) Finish() {
	s.traversal.Reset()
}

// Traversal methods.

func (b *Builder) GoDown() { b.state.traversal.Down() }

func (b *Builder) GoDownToChild(index uint32) {
	b.state.traversal.Down()
	b.state.traversal.Sibling(index)
}

func (b *Builder) GoDownToReverseChild(index uint32) {
	b.state.traversal.Down()
	b.state.traversal.ReverseSibling(index)
}

func (b *Builder) GoUp() { b.state.traversal.Up() }

func (b *Builder) GoToSibling(index uint32) { b.state.traversal.Sibling(index) }

func (b *Builder) GoToTempSibling(temp uint32) {
	b.state.traversal.Up()
	b.state.traversal.DownToTemp(temp)
}

func (b *Builder) GoDownToTempChild(temp uint32) { b.state.traversal.DownToTemp(temp) }

// CommitTraversal translates the traversal's accumulated moves into
// concrete interpreter opcodes.
func (b *Builder) CommitTraversal() {
	if b.state.traversal.IsCommitted() {
		return
	}
	for _, mv := range b.state.traversal.Commit() {
		switch mv.Kind {
		case MoveParent:
			b.state.emitter.Pop()
		case MoveChild:
			b.state.emitter.PushChild(mv.Index)
		case MoveReverseChild:
			b.state.emitter.PushReverseChild(mv.Index)
		case MoveSibling:
			b.state.emitter.PopPushChild(mv.Index)
		case MoveReverseSibling:
			b.state.emitter.PopPushReverseChild(mv.Index)
		case MoveTempChild:
			b.state.emitter.PushTemporary(mv.Index)
		}
	}
}

func (b *Builder) TraversalIsCommitted() bool { return b.state.traversal.IsCommitted() }

// assertCommitted guarantees every mutation opcode is preceded by a fully
// committed traversal: rather than trust every call site to remember to
// call CommitTraversal itself, a mutation method calls this first and it
// commits on the caller's behalf, logging at debug level since an
// uncommitted traversal at this point is merely worth noting, never fatal.
func (b *Builder) assertCommitted(op string) {
	if !b.state.traversal.IsCommitted() {
		logging.Debug("changelist: committing traversal before %s", op)
		b.CommitTraversal()
	}
}

// Mutation methods.

func (b *Builder) NextTemporary() uint32 { return b.nextTemporary }

func (b *Builder) SetNextTemporary(next uint32) { b.nextTemporary = next }

// SaveChildrenToTemporaries saves host children [start, end) into fresh
// consecutive temporary slots and returns the base slot index.
func (b *Builder) SaveChildrenToTemporaries(start, end uint32) uint32 {
	b.assertCommitted("save_children_to_temporaries")
	tempBase := b.nextTemporary
	b.nextTemporary = tempBase + (end - start)
	b.state.emitter.SaveChildrenToTemporaries(tempBase, start, end)
	return tempBase
}

func (b *Builder) PushTemporary(temp uint32) {
	b.assertCommitted("push_temporary")
	b.state.emitter.PushTemporary(temp)
}

func (b *Builder) RemoveChild(child uint32) {
	b.assertCommitted("remove_child")
	b.state.emitter.RemoveChild(child)
}

func (b *Builder) InsertBefore() {
	b.assertCommitted("insert_before")
	b.state.emitter.InsertBefore()
}

func (b *Builder) SetText(text string) {
	b.assertCommitted("set_text")
	key := b.state.strings.EnsureString(text, b.state.emitter)
	b.state.emitter.SetText(uint32(key), uint32(len(text)))
}

func (b *Builder) RemoveSelfAndNextSiblings() {
	b.assertCommitted("remove_self_and_next_siblings")
	b.state.emitter.RemoveSelfAndNextSiblings()
}

func (b *Builder) ReplaceWith() {
	b.assertCommitted("replace_with")
	b.state.emitter.ReplaceWith()
}

// SetAttribute routes the "class" attribute on non-namespaced elements to
// the SetClass fast path, matching the upstream emitter's convention.
func (b *Builder) SetAttribute(name, value string, isNamespaced bool) {
	b.assertCommitted("set_attribute")
	if name == "class" && !isNamespaced {
		key := b.state.strings.EnsureString(value, b.state.emitter)
		b.state.emitter.SetClass(uint32(key))
		return
	}
	nameKey := b.state.strings.EnsureString(name, b.state.emitter)
	valueKey := b.state.strings.EnsureString(value, b.state.emitter)
	b.state.emitter.SetAttribute(uint32(nameKey), uint32(valueKey))
}

func (b *Builder) RemoveAttribute(name string) {
	b.assertCommitted("remove_attribute")
	key := b.state.strings.EnsureString(name, b.state.emitter)
	b.state.emitter.RemoveAttribute(uint32(key))
}

func (b *Builder) AppendChild() {
	b.assertCommitted("append_child")
	b.state.emitter.AppendChild()
}

func (b *Builder) CreateTextNode(text string) {
	b.assertCommitted("create_text_node")
	key := b.state.strings.EnsureString(text, b.state.emitter)
	b.state.emitter.CreateTextNode(uint32(key), uint32(len(text)))
}

func (b *Builder) CreateElement(tagName string) {
	b.assertCommitted("create_element")
	key := b.state.strings.EnsureString(tagName, b.state.emitter)
	b.state.emitter.CreateElement(uint32(key))
}

func (b *Builder) CreateElementNS(tagName, namespace string) {
	b.assertCommitted("create_element_ns")
	tagKey := b.state.strings.EnsureString(tagName, b.state.emitter)
	nsKey := b.state.strings.EnsureString(namespace, b.state.emitter)
	b.state.emitter.CreateElementNS(uint32(tagKey), uint32(nsKey))
}

// PushForceNewListeners forces every subsequent UpdateEventListener call to
// behave like NewEventListener until popped, returning the previous value so
// the caller can restore it.
func (b *Builder) PushForceNewListeners() bool {
	old := b.forcingNewListeners
	b.forcingNewListeners = true
	return old
}

func (b *Builder) PopForceNewListeners(previous bool) {
	b.forcingNewListeners = previous
}

func (b *Builder) NewEventListener(event string, a, b2 uint32) {
	b.assertCommitted("new_event_listener")
	key := b.state.strings.EnsureString(event, b.state.emitter)
	b.state.emitter.NewEventListener(uint32(key), a, b2)
}

func (b *Builder) UpdateEventListener(event string, a, b2 uint32) {
	b.assertCommitted("update_event_listener")
	if b.forcingNewListeners {
		b.NewEventListener(event, a, b2)
		return
	}
	key := b.state.strings.EnsureString(event, b.state.emitter)
	b.state.emitter.UpdateEventListener(uint32(key), a, b2)
}

func (b *Builder) RemoveEventListener(event string) {
	b.assertCommitted("remove_event_listener")
	key := b.state.strings.EnsureString(event, b.state.emitter)
	b.state.emitter.RemoveEventListener(uint32(key))
}

func (b *Builder) HasTemplate(id uint32) bool {
	return b.state.templates[id]
}

func (b *Builder) SaveTemplate(id uint32) {
	b.assertCommitted("save_template")
	b.state.templates[id] = true
	b.state.emitter.SaveTemplate(id)
}

func (b *Builder) PushTemplate(id uint32) {
	b.assertCommitted("push_template")
	b.state.emitter.PushTemplate(id)
}
