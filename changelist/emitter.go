package changelist

import "github.com/forgelogic/vtree/arena"

// Emitter encodes change-list instructions into a dedicated bump arena as
// fixed-arity words: a discriminant followed by exactly Arity(discriminant)
// uint32 immediates, with no padding between instructions. Nothing else is
// ever allocated into this arena, since the host-tree interpreter scans its
// chunks directly as raw opcode words.
//
// Emitter only guarantees *syntactic* correctness (every opcode carries the
// right number of immediates); Builder wraps an Emitter and additionally
// guarantees *semantic* correctness (no opcode references a string key
// before StringCache has emitted the add_cached_string for it, etc).
type Emitter struct {
	arena *arena.Arena
}

// NewEmitter returns an Emitter with its own bump arena.
func NewEmitter() *Emitter {
	return &Emitter{arena: arena.New()}
}

// EachInstructionSequence invokes fn with each allocated chunk of
// instruction words, in emission order.
func (e *Emitter) EachInstructionSequence(fn func([]uint32)) {
	e.arena.EachChunk(fn)
}

// Reset discards all emitted instructions.
func (e *Emitter) Reset() {
	e.arena.Reset()
}

func (e *Emitter) emit(op Opcode, immediates ...uint32) {
	words := make([]uint32, 0, 1+len(immediates))
	words = append(words, uint32(op))
	words = append(words, immediates...)
	e.arena.Alloc(words...)
}

// SetText: [...TextNode] -> [...TextNode]. stack.top().textContent = string(pointer,length).
func (e *Emitter) SetText(pointer, length uint32) { e.emit(OpSetText, pointer, length) }

// RemoveSelfAndNextSiblings: [...Node] -> [...]. Removes the popped node and
// every one of its following siblings.
func (e *Emitter) RemoveSelfAndNextSiblings() { e.emit(OpRemoveSelfAndNextSiblings) }

// ReplaceWith: [...Node Node] -> [...Node]. new = pop(); old = pop();
// old.replaceWith(new); push(new).
func (e *Emitter) ReplaceWith() { e.emit(OpReplaceWith) }

// SetAttribute: [...Node] -> [...Node]. stack.top().setAttribute(name, value).
func (e *Emitter) SetAttribute(attributeKey, valueKey uint32) {
	e.emit(OpSetAttribute, attributeKey, valueKey)
}

// RemoveAttribute: [...Node] -> [...Node].
func (e *Emitter) RemoveAttribute(attributeKey uint32) { e.emit(OpRemoveAttribute, attributeKey) }

// PushReverseChild: [...Node] -> [...Node Node]. Pushes the n-th-from-last
// child of the node on top of the stack.
func (e *Emitter) PushReverseChild(n uint32) { e.emit(OpPushReverseChild, n) }

// PopPushChild: [...Node Node] -> [...Node Node]. Pops, then pushes the n-th
// child of the new top-of-stack node.
func (e *Emitter) PopPushChild(n uint32) { e.emit(OpPopPushChild, n) }

// Pop: [...T] -> [...].
func (e *Emitter) Pop() { e.emit(OpPop) }

// AppendChild: [...Node Node] -> [...Node]. child = pop(); top().appendChild(child).
func (e *Emitter) AppendChild() { e.emit(OpAppendChild) }

// CreateTextNode: [...] -> [...Node].
func (e *Emitter) CreateTextNode(pointer, length uint32) { e.emit(OpCreateTextNode, pointer, length) }

// CreateElement: [...] -> [...Node].
func (e *Emitter) CreateElement(tagNameKey uint32) { e.emit(OpCreateElement, tagNameKey) }

// NewEventListener: [...Node] -> [...Node]. Attaches a new listener whose
// identity is the (a, b) pair.
func (e *Emitter) NewEventListener(eventKey, a, b uint32) {
	e.emit(OpNewEventListener, eventKey, a, b)
}

// UpdateEventListener: [...Node] -> [...Node]. Rebinds an existing listener
// for the same event to a new (a, b) identity.
func (e *Emitter) UpdateEventListener(eventKey, a, b uint32) {
	e.emit(OpUpdateEventListener, eventKey, a, b)
}

// RemoveEventListener: [...Node] -> [...Node].
func (e *Emitter) RemoveEventListener(eventKey uint32) { e.emit(OpRemoveEventListener, eventKey) }

// AddCachedString: [...] -> [...]. Registers a string under key for later
// reference by pointer-free opcodes such as SetAttribute.
func (e *Emitter) AddCachedString(pointer, length, key uint32) {
	e.emit(OpAddCachedString, pointer, length, key)
}

// DropCachedString: [...] -> [...]. Releases a previously cached string.
func (e *Emitter) DropCachedString(key uint32) { e.emit(OpDropCachedString, key) }

// CreateElementNS: [...] -> [...Node].
func (e *Emitter) CreateElementNS(tagNameKey, namespaceKey uint32) {
	e.emit(OpCreateElementNS, tagNameKey, namespaceKey)
}

// SaveChildrenToTemporaries: [...] -> [...]. Copies top().childNodes[start:end)
// into consecutive temporary slots starting at tempBase.
func (e *Emitter) SaveChildrenToTemporaries(tempBase, start, end uint32) {
	e.emit(OpSaveChildrenToTemporaries, tempBase, start, end)
}

// PushChild: [...Node] -> [...Node Node]. Pushes the n-th child of the
// current top-of-stack node.
func (e *Emitter) PushChild(n uint32) { e.emit(OpPushChild, n) }

// PushTemporary: [...] -> [...Node]. Pushes a previously saved temporary.
func (e *Emitter) PushTemporary(temp uint32) { e.emit(OpPushTemporary, temp) }

// InsertBefore: [...Node Node] -> [...Node]. before = pop(); after = pop();
// after.insertBefore(before); push(before).
func (e *Emitter) InsertBefore() { e.emit(OpInsertBefore) }

// PopPushReverseChild: [...Node Node] -> [...Node Node].
func (e *Emitter) PopPushReverseChild(n uint32) { e.emit(OpPopPushReverseChild, n) }

// RemoveChild: [...Node] -> [...Node]. Removes the n-th child of
// top-of-stack from the host tree (top-of-stack is unchanged).
func (e *Emitter) RemoveChild(n uint32) { e.emit(OpRemoveChild, n) }

// SetClass: [...Node] -> [...Node]. Fast path for the common case of
// setting the "class" attribute on a non-namespaced element.
func (e *Emitter) SetClass(classKey uint32) { e.emit(OpSetClass, classKey) }

// SaveTemplate: [...Node] -> [...Node]. Registers top-of-stack as the
// template for id, to be cloned by PushTemplate.
func (e *Emitter) SaveTemplate(id uint32) { e.emit(OpSaveTemplate, id) }

// PushTemplate: [...] -> [...Node]. Pushes a deep clone of the template
// registered under id.
func (e *Emitter) PushTemplate(id uint32) { e.emit(OpPushTemplate, id) }
