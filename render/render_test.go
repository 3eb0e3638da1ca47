package render

import (
	"testing"

	"github.com/forgelogic/vtree/vnode"
)

type counter struct{ n int }

func (c *counter) Render(cx *RenderContext) vnode.Node {
	return vnode.Text("counter")
}

func TestRootRenderSatisfiedByAnyRender(t *testing.T) {
	var _ RootRender = (*counter)(nil)
}

func TestCacheInsertsIntoCachedSet(t *testing.T) {
	cx := Empty()
	id := cx.Cache(func() vnode.Node { return vnode.Text("cached") })
	got := cx.CachedSet.Get(id)
	if got.Text != "cached" {
		t.Fatalf("Get(%v).Text = %q, want %q", id, got.Text, "cached")
	}
}

func TestTemplateMemoizesAcrossCalls(t *testing.T) {
	cx := Empty()
	calls := 0
	render := func(c *counter) vnode.Node {
		calls++
		return vnode.Text("template")
	}

	id1, ok1 := Template(cx, render)
	id2, ok2 := Template(cx, render)
	if !ok1 || !ok2 {
		t.Fatalf("expected both Template calls to succeed")
	}
	if id1 != id2 {
		t.Fatalf("Template should reuse the same cache id, got %v and %v", id1, id2)
	}
	if calls != 1 {
		t.Fatalf("Template should only render once, got %d calls", calls)
	}
	if !cx.CachedSet.HasTemplate(id1) {
		t.Fatalf("Template should mark the entry as a template")
	}
}
