package arena

import "testing"

func TestAllocAndChunks(t *testing.T) {
	a := New()
	a.Alloc(1, 2, 3)
	a.Alloc(4, 5)

	var got []uint32
	a.EachChunk(func(words []uint32) {
		got = append(got, words...)
	})

	want := []uint32{1, 2, 3, 4, 5}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
	if a.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", a.Len())
	}
}

func TestResetIsEmpty(t *testing.T) {
	a := New()
	a.Alloc(1, 2, 3)
	a.Reset()
	if a.Len() != 0 {
		t.Fatalf("Len() after Reset = %d, want 0", a.Len())
	}
	seen := false
	a.EachChunk(func([]uint32) { seen = true })
	if seen {
		t.Fatalf("EachChunk visited a chunk after Reset")
	}
}

func TestAllocAcrossChunkBoundary(t *testing.T) {
	a := New()
	big := make([]uint32, defaultChunkWords)
	for i := range big {
		big[i] = uint32(i)
	}
	a.Alloc(big...)
	a.Alloc(999)

	var got []uint32
	a.EachChunk(func(words []uint32) { got = append(got, words...) })
	if len(got) != len(big)+1 {
		t.Fatalf("got %d words, want %d", len(got), len(big)+1)
	}
	if got[len(got)-1] != 999 {
		t.Fatalf("last word = %d, want 999", got[len(got)-1])
	}
}
