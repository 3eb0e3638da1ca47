// Package diff compares two virtual DOM trees and emits the change-list
// instructions, via a changelist.Builder, that would turn a host node
// rendered from the old tree into one rendered from the new tree.
//
// Every function here assumes the physical node the comparison concerns is
// already on top of the builder's cursor when it is entered, and leaves the
// cursor on that same node when it returns; the handful of exceptions are
// documented on the functions themselves.
package diff

import (
	"github.com/forgelogic/vtree/cachedset"
	"github.com/forgelogic/vtree/changelist"
	"github.com/forgelogic/vtree/events"
	"github.com/forgelogic/vtree/vnode"
)

// CacheRoots collects every cache id a diff pass actually reached. Pass the
// same CacheRoots to cachedset.Set.GC after the pass completes so entries
// that no longer appear in the tree can be reclaimed.
type CacheRoots map[cachedset.CacheID]bool

func (r CacheRoots) add(id cachedset.CacheID) { r[id] = true }

// Diff walks old and new and emits the instructions that reconcile them.
func Diff(cached *cachedset.Set, b *changelist.Builder, registry *events.Registry, old, new vnode.Node, roots CacheRoots) {
	switch {
	case new.Kind == vnode.KindText && old.Kind == vnode.KindText:
		if new.Text != old.Text {
			b.SetText(new.Text)
		}

	case new.Kind == vnode.KindText && old.Kind == vnode.KindElement:
		create(cached, b, registry, new, roots)
		registry.RemoveSubtree(old)
		b.ReplaceWith()

	case new.Kind == vnode.KindElement && old.Kind == vnode.KindText:
		// Text nodes never carry listeners, so there is nothing to remove
		// from the registry here.
		create(cached, b, registry, new, roots)
		b.ReplaceWith()

	case new.Kind == vnode.KindElement && old.Kind == vnode.KindElement:
		if new.Element.TagName != old.Element.TagName || new.Element.Namespace != old.Element.Namespace {
			create(cached, b, registry, new, roots)
			registry.RemoveSubtree(old)
			b.ReplaceWith()
			return
		}
		diffListeners(b, registry, old.Element.Listeners, new.Element.Listeners)
		diffAttributes(b, old.Element.Attributes, new.Element.Attributes, new.Element.Namespace != "")
		diffChildren(cached, b, registry, old.Element.Children, new.Element.Children, roots)

	case new.Kind == vnode.KindCached && old.Kind == vnode.KindCached:
		newID := cachedset.CacheID(new.Cached.ID)
		oldID := cachedset.CacheID(old.Cached.ID)
		roots.add(newID)
		if newID == oldID {
			return
		}
		Diff(cached, b, registry, cached.Get(oldID), cached.Get(newID), roots)

	case new.Kind == vnode.KindCached:
		// Assume a freshly-cached new node is different enough from an old
		// uncached one that diffing the subtrees isn't worthwhile; just
		// create the new one afresh.
		id := cachedset.CacheID(new.Cached.ID)
		roots.add(id)
		create(cached, b, registry, cached.Get(id), roots)
		registry.RemoveSubtree(old)
		b.ReplaceWith()

	case old.Kind == vnode.KindCached:
		create(cached, b, registry, new, roots)
		registry.RemoveSubtree(old)
		b.ReplaceWith()
	}
}

// diffListeners reconciles old and new listener lists. Every new listener is
// registered (and stamped with its id) regardless of whether it turns out
// to be brand new or a replacement for a same-event old listener; every old
// listener is unregistered regardless of whether its event is still present
// in new, since old's own registration must not outlive this diff pass.
func diffListeners(b *changelist.Builder, registry *events.Registry, old, new []vnode.Listener) {
	for i := range new {
		newL := &new[i]
		id := registry.Add(newL)
		a, c := id.Split()

		replaced := false
		for _, oldL := range old {
			if newL.Event == oldL.Event {
				b.UpdateEventListener(newL.Event, a, c)
				replaced = true
				break
			}
		}
		if !replaced {
			b.NewEventListener(newL.Event, a, c)
		}
	}

	for _, oldL := range old {
		registry.Remove(oldL)

		stillPresent := false
		for _, newL := range new {
			if newL.Event == oldL.Event {
				stillPresent = true
				break
			}
		}
		if !stillPresent {
			b.RemoveEventListener(oldL.Event)
		}
	}
}

// diffAttributes reconciles old and new attribute lists. A volatile
// attribute (one a user can change outside of any render, like an input's
// value) is always re-set even when old and new agree, since the host
// node's live value may have drifted from what was last rendered.
func diffAttributes(b *changelist.Builder, old, new []vnode.Attribute, namespaced bool) {
	for _, newAttr := range new {
		if newAttr.IsVolatile() {
			b.SetAttribute(newAttr.Name, newAttr.Value, namespaced)
			continue
		}

		matched := false
		for _, oldAttr := range old {
			if oldAttr.Name == newAttr.Name {
				if oldAttr.Value != newAttr.Value {
					b.SetAttribute(newAttr.Name, newAttr.Value, namespaced)
				}
				matched = true
				break
			}
		}
		if !matched {
			b.SetAttribute(newAttr.Name, newAttr.Value, namespaced)
		}
	}

	for _, oldAttr := range old {
		stillPresent := false
		for _, newAttr := range new {
			if oldAttr.Name == newAttr.Name {
				stillPresent = true
				break
			}
		}
		if !stillPresent {
			b.RemoveAttribute(oldAttr.Name)
		}
	}
}

// create emits the instructions to build node from scratch, leaving it on
// top of the builder's cursor. It does not append node anywhere; callers
// that need it attached to a parent call b.AppendChild (or InsertBefore)
// themselves afterward.
func create(cached *cachedset.Set, b *changelist.Builder, registry *events.Registry, node vnode.Node, roots CacheRoots) {
	switch node.Kind {
	case vnode.KindText:
		b.CreateTextNode(node.Text)

	case vnode.KindElement:
		el := node.Element
		if el.Namespace != "" {
			b.CreateElementNS(el.TagName, el.Namespace)
		} else {
			b.CreateElement(el.TagName)
		}
		for i := range el.Listeners {
			l := &el.Listeners[i]
			id := registry.Add(l)
			a, c := id.Split()
			b.NewEventListener(l.Event, a, c)
		}
		for _, attr := range el.Attributes {
			b.SetAttribute(attr.Name, attr.Value, el.Namespace != "")
		}
		for _, child := range el.Children {
			create(cached, b, registry, child, roots)
			b.AppendChild()
		}

	case vnode.KindCached:
		id := cachedset.CacheID(node.Cached.ID)
		roots.add(id)
		create(cached, b, registry, cached.Get(id), roots)
	}
}

// createAndAppendChildren creates every node in new and appends each one to
// the parent currently on top of the builder's cursor.
func createAndAppendChildren(cached *cachedset.Set, b *changelist.Builder, registry *events.Registry, new []vnode.Node, roots CacheRoots) {
	for _, child := range new {
		create(cached, b, registry, child, roots)
		b.AppendChild()
	}
}

// removeAllChildren drops every listener under old and clears the parent's
// children in a single instruction, by setting its text content to empty.
func removeAllChildren(b *changelist.Builder, registry *events.Registry, old []vnode.Node) {
	for _, child := range old {
		registry.RemoveSubtree(child)
	}
	b.SetText("")
}

// removeSelfAndNextSiblings drops every listener under old, then removes
// the node currently on top of the builder's cursor along with every
// sibling that follows it. old must be exactly that node plus its following
// siblings, in order.
func removeSelfAndNextSiblings(b *changelist.Builder, registry *events.Registry, old []vnode.Node) {
	for _, child := range old {
		registry.RemoveSubtree(child)
	}
	b.RemoveSelfAndNextSiblings()
}
