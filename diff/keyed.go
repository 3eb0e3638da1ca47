package diff

import (
	"github.com/forgelogic/vtree/cachedset"
	"github.com/forgelogic/vtree/changelist"
	"github.com/forgelogic/vtree/events"
	"github.com/forgelogic/vtree/vnode"
)

// noOldIndex marks a new child whose key has no match among old's children.
const noOldIndex = -1

// diffKeyedChildren reconciles keyed siblings, loosely following Inferno's
// keyed patching strategy: a shared prefix and suffix of same-keyed
// children are diffed in place (the prefix first, the suffix last, so the
// common case for appends, prepends, and in-place edits costs nothing
// extra), and whatever remains in the middle is reconciled by the more
// expensive longest-increasing-subsequence strategy that minimizes how many
// nodes actually move.
func diffKeyedChildren(cached *cachedset.Set, b *changelist.Builder, registry *events.Registry, old, new []vnode.Node, roots CacheRoots) {
	sharedPrefixCount, finished := diffKeyedPrefix(cached, b, registry, old, new, roots)
	if finished {
		return
	}

	suffixCount := 0
	for suffixCount < len(old)-sharedPrefixCount && suffixCount < len(new)-sharedPrefixCount {
		oldChild := old[len(old)-1-suffixCount]
		newChild := new[len(new)-1-suffixCount]
		if oldChild.Key() != newChild.Key() {
			break
		}
		suffixCount++
	}

	oldSuffixStart := len(old) - suffixCount
	newSuffixStart := len(new) - suffixCount

	diffKeyedMiddle(
		cached, b, registry,
		old[sharedPrefixCount:oldSuffixStart],
		new[sharedPrefixCount:newSuffixStart],
		roots, sharedPrefixCount, suffixCount, oldSuffixStart,
	)

	oldSuffix := old[oldSuffixStart:]
	newSuffix := new[newSuffixStart:]
	if len(oldSuffix) > 0 {
		diffKeyedSuffix(cached, b, registry, oldSuffix, newSuffix, roots, newSuffixStart)
	}
}

// diffKeyedPrefix diffs however many children at the start of old and new
// share the same key in the same order. It reports how many it handled and
// whether that alone finished the whole reconciliation (because one side
// ran out of children entirely).
func diffKeyedPrefix(cached *cachedset.Set, b *changelist.Builder, registry *events.Registry, old, new []vnode.Node, roots CacheRoots) (sharedPrefixCount int, finished bool) {
	pushed := false
	i := 0
	for i < len(old) && i < len(new) {
		if old[i].Key() != new[i].Key() {
			break
		}
		if pushed {
			b.GoToSibling(uint32(i))
		} else {
			b.GoDownToChild(0)
			pushed = true
		}
		Diff(cached, b, registry, old[i], new[i], roots)
		i++
	}
	sharedPrefixCount = i

	if sharedPrefixCount == len(old) {
		b.GoUp()
		createAndAppendChildren(cached, b, registry, new[sharedPrefixCount:], roots)
		return sharedPrefixCount, true
	}

	if sharedPrefixCount == len(new) {
		b.GoToSibling(uint32(sharedPrefixCount))
		removeSelfAndNextSiblings(b, registry, old[sharedPrefixCount:])
		return sharedPrefixCount, true
	}

	if pushed {
		b.GoUp()
	}
	return sharedPrefixCount, false
}

// diffKeyedMiddle is the expensive path: old and new here are already
// trimmed of their shared prefix and suffix, so every key that appears in
// both was genuinely reordered (or a like-keyed replacement), and every key
// appearing in only one side was truly added or removed.
//
// sharedPrefixCount and oldSharedSuffixStart locate this slice's elements
// back in the full, untrimmed child lists, since every instruction this
// function emits addresses children by their absolute index among the
// parent's host children.
func diffKeyedMiddle(cached *cachedset.Set, b *changelist.Builder, registry *events.Registry, old, new []vnode.Node, roots CacheRoots, sharedPrefixCount, sharedSuffixCount, oldSharedSuffixStart int) {
	oldKeyToOldIndex := make(map[vnode.NodeKey]int, len(old))
	for i, o := range old {
		oldKeyToOldIndex[o.Key()] = i
	}

	sharedKeys := make(map[vnode.NodeKey]bool)
	newIndexToOldIndex := make([]int, len(new))
	for i, n := range new {
		key := n.Key()
		if oi, ok := oldKeyToOldIndex[key]; ok {
			sharedKeys[key] = true
			newIndexToOldIndex[i] = oi
		} else {
			newIndexToOldIndex[i] = noOldIndex
		}
	}

	// None of old's keys survive into new: drop the whole middle and
	// create new's middle afresh.
	if sharedSuffixCount == 0 && len(sharedKeys) == 0 {
		if sharedPrefixCount == 0 {
			removeAllChildren(b, registry, old)
		} else {
			b.GoDownToChild(uint32(sharedPrefixCount))
			removeSelfAndNextSiblings(b, registry, old)
		}
		createAndAppendChildren(cached, b, registry, new, roots)
		return
	}

	// The longest run of old children already in the right relative order
	// in new; these stay put; everything else moves or gets created.
	lis := longestIncreasingSubsequence(newIndexToOldIndex, noOldIndex)

	// Save every old child whose key survives into new to a temporary
	// slot, so it can be referenced again later regardless of how many
	// other children are removed or reordered around it in the meantime.
	oldIndexToTemp := make([]int, len(old))
	for i := range oldIndexToTemp {
		oldIndexToTemp[i] = noOldIndex
	}
	start := 0
	for {
		end := start
		for end < len(old) && sharedKeys[old[end].Key()] {
			end++
		}
		if end > start {
			temp := b.SaveChildrenToTemporaries(uint32(sharedPrefixCount+start), uint32(sharedPrefixCount+end))
			for i := start; i < end; i++ {
				oldIndexToTemp[i] = int(temp)
				temp++
			}
		}
		if end == len(old) {
			break
		}
		start = end + 1
	}

	// Remove old children whose keys didn't survive, from the end first so
	// removing one doesn't shift the absolute index of the ones before it.
	removedCount := 0
	for i := len(old) - 1; i >= 0; i-- {
		if !sharedKeys[old[i].Key()] {
			b.RemoveChild(uint32(i + sharedPrefixCount))
			removedCount++
		}
	}

	pushed := false
	firstPushIndex := oldSharedSuffixStart - removedCount
	if sharedSuffixCount > 0 {
		b.GoDownToChild(uint32(firstPushIndex))
		pushed = true
	}

	// Walk new from the end back to the start, one LIS member at a time:
	// everything between the current and previous LIS member either moves
	// (its key survives) or is created fresh, then the LIS member itself
	// is diffed in place. Iterating in reverse lets every move land via a
	// single insertBefore relative to the child already positioned after
	// it.
	segmentEnd := len(new)
	for k := len(lis) - 1; k >= 0; k-- {
		lisIndex := lis[k]
		oldIndex := newIndexToOldIndex[lisIndex]

		diffAndMoveOrCreateSegment(cached, b, registry, old, new, roots, lisIndex+1, segmentEnd, newIndexToOldIndex, oldIndexToTemp, firstPushIndex, &pushed)

		temp := oldIndexToTemp[oldIndex]
		if pushed {
			b.GoUp()
		}
		b.PushTemporary(uint32(temp))
		pushed = true
		Diff(cached, b, registry, old[oldIndex], new[lisIndex], roots)

		segmentEnd = lisIndex
	}

	diffAndMoveOrCreateSegment(cached, b, registry, old, new, roots, 0, segmentEnd, newIndexToOldIndex, oldIndexToTemp, firstPushIndex, &pushed)

	if pushed {
		b.GoUp()
	}
}

// diffAndMoveOrCreateSegment handles new[start:end], none of which are LIS
// members: each one either moves an old child (that survives by key) into
// place and diffs it, or creates a brand new child, then attaches it via
// InsertBefore once some later child is already positioned, or AppendChild
// plus a one-time jump to the newly appended child's absolute index the
// first time anything in this whole middle-reconciliation pass is placed.
func diffAndMoveOrCreateSegment(cached *cachedset.Set, b *changelist.Builder, registry *events.Registry, old, new []vnode.Node, roots CacheRoots, start, end int, newIndexToOldIndex, oldIndexToTemp []int, firstPushIndex int, pushed *bool) {
	for newIndex := end - 1; newIndex >= start; newIndex-- {
		newChild := new[newIndex]
		oldIndex := newIndexToOldIndex[newIndex]

		if oldIndex == noOldIndex {
			create(cached, b, registry, newChild, roots)
		} else {
			temp := oldIndexToTemp[oldIndex]
			b.PushTemporary(uint32(temp))
			Diff(cached, b, registry, old[oldIndex], newChild, roots)
		}

		if *pushed {
			b.InsertBefore()
		} else {
			b.AppendChild()
			b.GoDownToChild(uint32(firstPushIndex))
			*pushed = true
		}
	}
}

// diffKeyedSuffix diffs the shared suffix of keyed children that diffKeyedChildren
// deferred until the middle was reconciled, so every instruction the middle
// emitted already reflects old's pre-suffix layout.
func diffKeyedSuffix(cached *cachedset.Set, b *changelist.Builder, registry *events.Registry, old, new []vnode.Node, roots CacheRoots, newSuffixStart int) {
	b.GoDownToChild(uint32(newSuffixStart))
	for i := range old {
		Diff(cached, b, registry, old[i], new[i], roots)
		if i < len(old)-1 {
			b.GoToSibling(uint32(newSuffixStart + i + 1))
		}
	}
	b.GoUp()
}
