package diff

import (
	"github.com/forgelogic/vtree/cachedset"
	"github.com/forgelogic/vtree/changelist"
	"github.com/forgelogic/vtree/events"
	"github.com/forgelogic/vtree/vnode"
)

// diffChildren reconciles a parent's old and new children, currently on top
// of the builder's cursor, and dispatches to the keyed or non-keyed
// strategy depending on whether the children carry keys.
func diffChildren(cached *cachedset.Set, b *changelist.Builder, registry *events.Registry, old, new []vnode.Node, roots CacheRoots) {
	if len(new) == 0 {
		if len(old) > 0 {
			removeAllChildren(b, registry, old)
		}
		return
	}

	if len(old) == 0 {
		createAndAppendChildren(cached, b, registry, new, roots)
		return
	}

	// If any sibling is keyed, every sibling on that side must be keyed;
	// mixing keyed and unkeyed children among siblings is a caller error
	// the differ does not try to make sense of.
	if new[0].Key().IsSome() && old[0].Key().IsSome() {
		saved := b.NextTemporary()
		diffKeyedChildren(cached, b, registry, old, new, roots)
		b.SetNextTemporary(saved)
	} else {
		diffNonKeyedChildren(cached, b, registry, old, new, roots)
	}
}

// diffNonKeyedChildren walks old and new in lockstep, diffing children
// pairwise by position, then removes any excess old children or creates any
// excess new ones.
func diffNonKeyedChildren(cached *cachedset.Set, b *changelist.Builder, registry *events.Registry, old, new []vnode.Node, roots CacheRoots) {
	shared := len(old)
	if len(new) < shared {
		shared = len(new)
	}

	for i := 0; i < shared; i++ {
		if i == 0 {
			b.GoDownToChild(0)
		} else {
			b.GoToSibling(uint32(i))
		}
		Diff(cached, b, registry, old[i], new[i], roots)
	}

	switch {
	case len(old) > len(new):
		b.GoToSibling(uint32(len(new)))
		removeSelfAndNextSiblings(b, registry, old[len(new):])
	case len(old) < len(new):
		b.GoUp()
		createAndAppendChildren(cached, b, registry, new[len(old):], roots)
	default:
		b.GoUp()
	}
}
