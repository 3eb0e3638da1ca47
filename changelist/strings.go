package changelist

import "github.com/cespare/xxhash/v2"

// StringKey identifies a string previously registered with a StringCache.
type StringKey uint32

type stringsCacheEntry struct {
	key  StringKey
	used bool
}

// StringCache deduplicates strings emitted into the change list (attribute
// names, tag names, event names, text contents referenced by key) so that
// the same string crossing the host boundary repeatedly only has to be
// copied across once. Entries get a single frame of grace: an entry used
// during a frame survives that frame's DropUnusedStrings sweep and is
// dropped by the sweep of the first later frame that does not use it, so a
// string used in consecutive frames is added only once.
type StringCache struct {
	entries       map[uint64]stringsCacheEntry
	strings       map[uint64]string
	byKey         map[StringKey]uint64
	nextStringKey uint32
}

// NewStringCache returns an empty StringCache.
func NewStringCache() *StringCache {
	return &StringCache{
		entries: make(map[uint64]stringsCacheEntry),
		strings: make(map[uint64]string),
		byKey:   make(map[StringKey]uint64),
	}
}

func hashString(s string) uint64 {
	return xxhash.Sum64String(s)
}

// EnsureString ensures s is cached, marks it used for this frame, and
// returns its key, emitting an AddCachedString opcode the first time s is
// seen. That opcode's pointer immediate carries the string's key (the same
// value as its key immediate), not a host-memory address: vtree's
// interpreter always resolves strings back through StringCache rather than
// across a real linear-memory boundary, and the opcode keeps the original's
// three-word shape.
func (c *StringCache) EnsureString(s string, e *Emitter) StringKey {
	h := hashString(s)
	if entry, ok := c.entries[h]; ok {
		entry.used = true
		c.entries[h] = entry
		return entry.key
	}

	key := StringKey(c.nextStringKey)
	c.nextStringKey++

	c.entries[h] = stringsCacheEntry{key: key, used: true}
	c.strings[h] = s
	c.byKey[key] = h
	e.AddCachedString(uint32(key), uint32(len(s)), uint32(key))
	return key
}

// DropUnusedStrings removes every entry that was not used since the last
// call, emitting a DropCachedString opcode for each, and resets the used
// flag to false on every entry that survives so next frame's non-use is
// detected in turn.
func (c *StringCache) DropUnusedStrings(e *Emitter) {
	for h, entry := range c.entries {
		if entry.used {
			entry.used = false
			c.entries[h] = entry
			continue
		}
		e.DropCachedString(uint32(entry.key))
		delete(c.entries, h)
		delete(c.strings, h)
		delete(c.byKey, entry.key)
	}
}

// LookupKey returns the string previously registered under key, for the
// host-tree interpreter's string-resolution step.
func (c *StringCache) LookupKey(key StringKey) (string, bool) {
	h, ok := c.byKey[key]
	if !ok {
		return "", false
	}
	s, ok := c.strings[h]
	return s, ok
}
