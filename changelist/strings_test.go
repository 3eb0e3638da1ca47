package changelist

import "testing"

func countOps(e *Emitter) int {
	n := 0
	e.EachInstructionSequence(func(words []uint32) {
		for i := 0; i < len(words); {
			n++
			i += 1 + Arity(Opcode(words[i]))
		}
	})
	return n
}

func TestEnsureStringCachesOnce(t *testing.T) {
	e := NewEmitter()
	c := NewStringCache()

	k1 := c.EnsureString("div", e)
	k2 := c.EnsureString("div", e)
	if k1 != k2 {
		t.Fatalf("same string produced different keys: %v != %v", k1, k2)
	}
	if got := countOps(e); got != 1 {
		t.Fatalf("expected exactly one add_cached_string opcode, got %d", got)
	}
}

func TestDropUnusedStringsGivesOneFrameGrace(t *testing.T) {
	e := NewEmitter()
	c := NewStringCache()
	c.EnsureString("div", e)
	e.Reset()

	// Frame 1: "div" not touched, but DropUnusedStrings should only clear its
	// used flag, not drop it yet.
	c.DropUnusedStrings(e)
	if got := countOps(e); got != 0 {
		t.Fatalf("expected no drop opcode on first unused frame, got %d ops", got)
	}

	// Frame 2: still untouched, now it should be dropped.
	c.DropUnusedStrings(e)
	if got := countOps(e); got != 1 {
		t.Fatalf("expected exactly one drop_cached_string opcode, got %d", got)
	}
}

func TestReusedStringSurvivesAcrossFrames(t *testing.T) {
	e := NewEmitter()
	c := NewStringCache()
	key := c.EnsureString("div", e)
	e.Reset()

	for i := 0; i < 5; i++ {
		k := c.EnsureString("div", e)
		if k != key {
			t.Fatalf("frame %d: key changed from %v to %v", i, key, k)
		}
		c.DropUnusedStrings(e)
		if got := countOps(e); got != 0 {
			t.Fatalf("frame %d: reused string should never be dropped, got %d ops", i, got)
		}
		e.Reset()
	}
}

func TestLookupKeyRoundTrips(t *testing.T) {
	e := NewEmitter()
	c := NewStringCache()
	key := c.EnsureString("hello", e)

	got, ok := c.LookupKey(key)
	if !ok || got != "hello" {
		t.Fatalf("LookupKey(%v) = (%q, %v), want (\"hello\", true)", key, got, ok)
	}
}
