// Package events implements the vdom's event-listener bookkeeping: a
// registry mapping opaque listener identities to callbacks, and a single
// trampoline function the host-tree binding calls into on every DOM event.
//
// The original implementation identifies a listener by reinterpreting the
// bits of its closure's fat pointer; vtree does not carry an unsafe
// reinterpret-the-bits trick over into Go. Instead, Registry.Add assigns
// each listener a fresh monotonic id when it is registered and writes that
// id back onto the vnode.Listener (the NewEventListener/UpdateEventListener
// opcodes reference it as their (a, b) immediates), so Remove can later look
// the same callback up by the id its own listener value was stamped with at
// add-time.
package events

import (
	"sync"

	"github.com/forgelogic/vtree/logging"
	"github.com/forgelogic/vtree/vnode"
)

// ID is an opaque listener identity, handed out by Registry.Add and
// referenced by the change-list opcodes as a (high, low) uint32 pair.
type ID uint64

// Split returns id's high and low 32-bit halves, matching the (a, b)
// immediate pair the change-list opcode table carries.
func (id ID) Split() (a, b uint32) {
	return uint32(id >> 32), uint32(id)
}

// JoinID reassembles an ID from the (a, b) halves an opcode carried.
func JoinID(a, b uint32) ID {
	return ID(uint64(a)<<32 | uint64(b))
}

// Registry owns every currently-live listener callback for one Vdom
// instance. It persists across renders and double buffering.
type Registry struct {
	mu     sync.Mutex
	active map[ID]vnode.ListenerCallback
	nextID uint64
}

// NewRegistry returns an empty Registry and the Trampoline the host-tree
// binding should invoke whenever a registered DOM event fires.
func NewRegistry() (*Registry, Trampoline) {
	r := &Registry{active: make(map[ID]vnode.ListenerCallback)}
	return r, r.dispatch
}

// Trampoline is the single function the host tree calls into for every
// event dispatched to a listener this registry owns.
type Trampoline func(id ID, eventName string, raw any)

func (r *Registry) dispatch(id ID, eventName string, raw any) {
	r.mu.Lock()
	callback, ok := r.active[id]
	r.mu.Unlock()
	if !ok {
		a, b := id.Split()
		logging.Warn("events: trampoline invoked with unknown listener id (0x%x, 0x%x)", a, b)
		return
	}
	callback(eventName, raw)
}

// Add registers listener's callback under a fresh id, stamps
// listener.ListenerID with it, and returns it.
func (r *Registry) Add(listener *vnode.Listener) ID {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	id := ID(r.nextID)
	r.active[id] = listener.Callback
	listener.ListenerID = uint64(id)
	return id
}

// Remove unregisters listener, looked up by the id it was stamped with when
// it was added.
func (r *Registry) Remove(listener vnode.Listener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.active, ID(listener.ListenerID))
}

// RemoveSubtree recursively removes every listener under node. Cached nodes
// are skipped: a cached subtree's listener lifetime is owned by whatever
// inserted it into the CachedSet, matching cachedset.Set.GC's own removal
// path rather than this tree's.
func (r *Registry) RemoveSubtree(node vnode.Node) {
	if node.Kind != vnode.KindElement {
		return
	}
	for _, l := range node.Element.Listeners {
		r.Remove(l)
	}
	for _, child := range node.Element.Children {
		r.RemoveSubtree(child)
	}
}

// ClearActiveListeners drops every registered listener, used when the vdom
// is unmounted.
func (r *Registry) ClearActiveListeners() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.active = make(map[ID]vnode.ListenerCallback)
}
