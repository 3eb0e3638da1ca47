// Package vtreevdom ties the renderer, differ, change-list and host-tree
// packages together into a mounted, re-renderable virtual DOM, the same
// role vdom.rs plays in the original implementation: a Vdom owns the one
// root component and the previous frame's tree that the next render pass
// diffs against (a single tree, with no double-buffered arenas), and a
// VdomWeak lets code that mutated a component's state from an event handler
// schedule a re-render without holding a strong reference to the Vdom
// itself.
package vtreevdom

import (
	"errors"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/forgelogic/vtree/cachedset"
	"github.com/forgelogic/vtree/changelist"
	"github.com/forgelogic/vtree/diff"
	"github.com/forgelogic/vtree/events"
	"github.com/forgelogic/vtree/hosttree"
	"github.com/forgelogic/vtree/logging"
	"github.com/forgelogic/vtree/render"
	"github.com/forgelogic/vtree/vnode"
)

// ErrDropped is returned by a VdomWeak operation made after its Vdom has
// been unmounted. The original implementation represents this the same
// way, with a Weak<VdomInner> that fails to upgrade once the strong Rc it
// refers to is dropped; Go has no weak-reference-counting equivalent, so
// this package tracks mounted-ness with an explicit atomic flag instead and
// returns this sentinel wherever the Rust original's upgrade would fail.
var ErrDropped = errors.New("vtreevdom: vdom has been unmounted")

// Recorder is an optional hook a Vdom reports render activity to: frames
// rendered and cache entries reclaimed per pass. Wiring one in is entirely
// opt-in; a nil Recorder is always safe to call through.
type Recorder interface {
	ObserveRender()
	ObserveCacheReclaimed(n int)
}

// Vdom is a strong handle to a mounted virtual DOM. Unmount must be called
// once the caller is done with it, to release its event listeners and stop
// its scheduler; there is no finalizer-driven equivalent of the original's
// drop-on-scope-exit behavior.
type Vdom struct {
	s *shared
}

// shared is the state both Vdom and every VdomWeak derived from it operate
// on, mirroring the split between VdomInnerShared (the render-scheduling
// promise) and VdomInnerExclusive (everything else) in vdom.rs, collapsed
// into one mutex-guarded struct in the teacher's own renderer_impl.go
// idiom rather than the original's RefCell-per-field split.
type shared struct {
	mu sync.Mutex

	dropped atomic.Bool

	interp    *hosttree.Interpreter
	scheduler hosttree.Scheduler
	registry  *events.Registry
	cached    *cachedset.Set
	state     *changelist.PersistentState
	recorder  Recorder

	component   render.RootRender
	currentRoot vnode.Node

	renderGroup singleflight.Group

	// stopped is closed exactly once, by Unmount. A VdomWeak operation
	// waiting on a scheduler callback that was silently dropped because
	// the scheduler had already stopped selects on this too, so it can
	// never hang forever racing Unmount.
	stopped chan struct{}
}

// Option configures a Vdom at construction time.
type Option func(*shared)

// WithRecorder wires r to receive render/gc activity. Passing a nil r is
// equivalent to omitting the option.
func WithRecorder(r Recorder) Option {
	return func(s *shared) { s.recorder = r }
}

// New mounts component as the root of a virtual DOM backed by tree, rooted
// at container, using scheduler to coalesce render passes and registry to
// own the component's event listeners. It performs the initial render
// immediately, diffing component's first output against a dummy <div/>,
// the same seed vdom.rs's Vdom::with_boxed_root_render diffs its first
// render against.
func New(tree hosttree.Tree, container hosttree.Node, scheduler hosttree.Scheduler, registry *events.Registry, component render.RootRender, opts ...Option) *Vdom {
	s := &shared{
		interp:      hosttree.NewInterpreter(tree, container),
		scheduler:   scheduler,
		registry:    registry,
		cached:      cachedset.New(),
		state:       changelist.NewPersistentState(),
		component:   component,
		currentRoot: vnode.Element(vnode.None, "div", nil, nil, nil, ""),
		stopped:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.interp.Start()

	s.mu.Lock()
	s.renderLocked()
	s.mu.Unlock()

	return &Vdom{s: s}
}

// renderLocked re-renders s.component, diffs it against the previous
// frame, applies the resulting change list to the host tree, sweeps the
// string cache, and reclaims cache entries the new frame no longer
// references. Callers must hold s.mu.
func (s *shared) renderLocked() {
	cx := render.New(s.cached)
	newRoot := s.component.Render(cx)

	roots := make(diff.CacheRoots)
	b := s.state.Builder()
	diff.Diff(s.cached, b, s.registry, s.currentRoot, newRoot, roots)

	s.state.DropUnusedStrings()
	s.interp.Apply(s.state)
	s.state.Finish()
	s.state.Emitter().Reset()

	rootIDs := make([]cachedset.CacheID, 0, len(roots))
	for id := range roots {
		rootIDs = append(rootIDs, id)
	}
	reclaimed := s.cached.GC(s.registry, rootIDs)

	s.currentRoot = newRoot

	if s.recorder != nil {
		s.recorder.ObserveRender()
		if reclaimed > 0 {
			s.recorder.ObserveCacheReclaimed(reclaimed)
		}
	}
}

// Forget is the no-op counterpart of vdom.rs's Vdom::forget: that method
// exists to suppress a must-use drop warning Go has no analogue for, so
// here it exists only for API parity with callers porting code over from
// the original.
func (v *Vdom) Forget() {}

// Weak returns a handle to this Vdom that can schedule renders and mutate
// the root component without requiring a strong reference, the same
// capability VdomWeak::schedule_render/with_component give the original's
// event handlers.
func (v *Vdom) Weak() *VdomWeak {
	return &VdomWeak{s: v.s}
}

// Unmount tears the virtual DOM down: it stops accepting further renders,
// clears every listener this vdom's registry owns, stops the scheduler if
// it supports being stopped, and hands back the root component, the same
// contract as vdom.rs's Vdom::unmount.
func (v *Vdom) Unmount() render.RootRender {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dropped.Swap(true) {
		return nil
	}

	s.interp.Unmount()
	s.registry.ClearActiveListeners()
	if stopper, ok := s.scheduler.(interface{ Stop() }); ok {
		stopper.Stop()
	}
	close(s.stopped)

	logging.Debug("vtreevdom: unmounted")
	return s.component
}
