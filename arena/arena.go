// Package arena implements a bump allocator: fixed-width words are appended
// to growable chunks with no per-allocation bookkeeping, and the whole arena
// resets to empty in O(1) by truncating chunk lengths back to zero.
//
// The change-list opcode stream is built on top of an Arena: allocation is
// cheap and uniform, and the opcode interpreter scans the arena's chunks
// directly as raw words without needing a separate index. vnode trees are
// ordinary Go values and are not allocated here.
package arena

const defaultChunkWords = 4096

// Arena is a single bump-allocated buffer of uint32 words, organized as a
// list of chunks. It is not safe for concurrent use; callers serialize
// access to one arena per render generation.
type Arena struct {
	chunks [][]uint32
	cur    int // index into chunks of the chunk currently being filled
}

// New returns an empty Arena.
func New() *Arena {
	a := &Arena{}
	a.chunks = append(a.chunks, make([]uint32, 0, defaultChunkWords))
	return a
}

// Alloc appends words to the arena, starting a new chunk when the current
// one lacks room. It returns nothing: no caller patches words back in later,
// since every opcode is fully known at emission time.
func (a *Arena) Alloc(words ...uint32) {
	c := &a.chunks[a.cur]
	if cap(*c)-len(*c) < len(words) && len(*c) > 0 {
		a.chunks = append(a.chunks, make([]uint32, 0, max(defaultChunkWords, len(words))))
		a.cur = len(a.chunks) - 1
		c = &a.chunks[a.cur]
	}
	*c = append(*c, words...)
}

// Reset truncates every chunk back to empty and resumes filling the first
// one, keeping the underlying storage allocated for reuse next frame.
func (a *Arena) Reset() {
	for i := range a.chunks {
		a.chunks[i] = a.chunks[i][:0]
	}
	a.cur = 0
}

// EachChunk calls fn with each non-empty chunk of words in allocation order.
// The opcode interpreter uses this instead of a flattened slice so that a
// frame's opcode stream never needs a single contiguous copy.
func (a *Arena) EachChunk(fn func([]uint32)) {
	for _, c := range a.chunks {
		if len(c) > 0 {
			fn(c)
		}
	}
}

// Len returns the total number of words allocated across all chunks.
func (a *Arena) Len() int {
	n := 0
	for _, c := range a.chunks {
		n += len(c)
	}
	return n
}
