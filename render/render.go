// Package render defines the two interfaces vtree components implement and
// the RenderContext every render call receives.
package render

import (
	"reflect"

	"github.com/forgelogic/vtree/cachedset"
	"github.com/forgelogic/vtree/vnode"
)

// Render is anything that can render itself to a virtual DOM tree. Render
// implementations may be mounted as a subtree anywhere inside another
// component's own rendering.
type Render interface {
	Render(cx *RenderContext) vnode.Node
}

// RootRender is a Render that can additionally be mounted as the root
// component of a Vdom. Any Render value satisfies RootRender: the
// distinction exists so that vtreevdom.New's signature documents which
// components are meant to own the top of a tree (and, in a future version,
// is the natural seam for adding root-only capabilities without breaking
// every other Render implementation).
//
// # Example
//
//	type Counter struct{ count int }
//
//	func (c *Counter) Render(cx *render.RenderContext) vnode.Node {
//		return vnode.Text(fmt.Sprintf("%d", c.count))
//	}
//
//	var _ render.RootRender = (*Counter)(nil)
type RootRender interface {
	Render
}

// RenderContext is the context every Render call receives: it carries the
// vdom's CachedSet so a component can memoize expensive subtrees via Cache
// or Template, without needing a reference to the owning Vdom itself.
type RenderContext struct {
	CachedSet  *cachedset.Set
	templates  map[templateKey]cachedset.CacheID
	inProgress map[templateKey]bool
}

type templateKey struct {
	pkgPath string
	name    string
}

// New returns a RenderContext backed by set.
func New(set *cachedset.Set) *RenderContext {
	return &RenderContext{
		CachedSet:  set,
		templates:  make(map[templateKey]cachedset.CacheID),
		inProgress: make(map[templateKey]bool),
	}
}

// Empty returns a RenderContext with a fresh, throwaway CachedSet, for
// one-off renders that don't need caching across frames, such as tests.
func Empty() *RenderContext {
	return New(cachedset.New())
}

// Cache inserts the tree f renders into the context's CachedSet and returns
// its id.
func (cx *RenderContext) Cache(f func() vnode.Node) cachedset.CacheID {
	return cx.CachedSet.Insert(f)
}

// Template returns the cached template entry for R, rendering R's zero
// value once via render and reusing the same cache id on every subsequent
// call for the same R. Re-entrant calls for the same R while its own
// template is still being constructed return false, so a Render
// implementation that calls Template on itself doesn't infinite loop; it
// simply falls back to rendering normally for that one call.
func Template[R any](cx *RenderContext, render func(*R) vnode.Node) (cachedset.CacheID, bool) {
	var zero R
	key := templateKey{pkgPath: reflect.TypeOf(zero).PkgPath(), name: reflect.TypeOf(zero).Name()}

	if id, ok := cx.templates[key]; ok {
		return id, true
	}
	if cx.inProgress[key] {
		// Re-entrant call made while this template is still being
		// constructed; fall back to rendering normally for this one call.
		return 0, false
	}

	cx.inProgress[key] = true
	id := cx.Cache(func() vnode.Node { return render(&zero) })
	delete(cx.inProgress, key)

	cx.CachedSet.MarkTemplate(id)
	cx.templates[key] = id
	return id, true
}
