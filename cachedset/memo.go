package cachedset

import "github.com/forgelogic/vtree/vnode"

// Memo wraps a value whose rendering is expensive but produces the same
// tree across many frames, memoizing the rendered Node until explicitly
// invalidated. It is the manual-Insert/Get API's automatic counterpart: a
// component can embed a Memo instead of hand-rolling its own
// Set.Insert/Set.Get bookkeeping.
//
// Memo takes its render function rather than requiring R to implement a
// render.Render-shaped interface, since cachedset is a lower-level package
// than render and must not import it.
type Memo[R any] struct {
	Inner  R
	render func(*R) vnode.Node
	cached *vnode.Node
}

// NewMemo wraps inner, rendering it lazily via render on first use.
func NewMemo[R any](inner R, render func(*R) vnode.Node) *Memo[R] {
	return &Memo[R]{Inner: inner, render: render}
}

// Render returns the memoized rendering, computing and caching it on the
// first call after construction or after Invalidate.
func (m *Memo[R]) Render() vnode.Node {
	if m.cached != nil {
		return *m.cached
	}
	node := m.render(&m.Inner)
	m.cached = &node
	return node
}

// Invalidate discards the memoized rendering. Call this whenever Inner
// changes in a way that would produce a different tree; the next Render
// call will re-render from scratch.
func (m *Memo[R]) Invalidate() {
	m.cached = nil
}
