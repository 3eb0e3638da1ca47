package vtreevdom

import "github.com/forgelogic/vtree/render"

// VdomWeak is a handle to a mounted virtual DOM that does not keep it
// mounted: only the originating Vdom does that. It is what an event
// listener callback closes over to schedule a re-render or inspect/replace
// the root component after some state it owns has changed, mirroring
// vdom.rs's VdomWeak.
type VdomWeak struct {
	s *shared
}

// ScheduleRender requests a render on the next animation frame and returns
// immediately without waiting for it to complete, the fire-and-forget
// counterpart of Render. Any error the render itself produces (most
// notably ErrDropped, if the vdom is unmounted before the frame fires) is
// discarded, matching VdomWeak::schedule_render's own spawn_local-and-
// ignore behavior.
func (w *VdomWeak) ScheduleRender() {
	go func() { _ = w.Render() }()
}

// Render requests a render on the next animation frame and blocks until it
// completes. Concurrent calls made while a render is already scheduled but
// not yet run join that same pending frame instead of each scheduling
// their own, the same coalescing the original gets for free from caching
// the pending js_sys::Promise on VdomInnerShared; here a singleflight.Group
// keyed on a fixed name plays that role, since Go has no equivalent of a
// cached, awaitable promise value to stash on shared state directly.
func (w *VdomWeak) Render() error {
	s := w.s
	if s.dropped.Load() {
		return ErrDropped
	}

	_, err, _ := s.renderGroup.Do("render", func() (any, error) {
		done := make(chan struct{})
		s.scheduler.AnimationFrame(func() {
			defer close(done)
			s.mu.Lock()
			defer s.mu.Unlock()
			if s.dropped.Load() {
				return
			}
			s.renderLocked()
		})
		select {
		case <-done:
		case <-s.stopped:
		}
		return nil, nil
	})

	if s.dropped.Load() {
		return ErrDropped
	}
	return err
}

// WithComponent invokes f with exclusive access to the root component, on
// the next microtask tick, and waits for it to run. The tick matches
// vdom.rs's VdomWeak::with_component, which awaits a resolved promise
// before touching the component to guarantee it isn't called back into
// while a render elsewhere on the same tick is already in progress.
func (w *VdomWeak) WithComponent(f func(render.RootRender)) error {
	s := w.s
	if s.dropped.Load() {
		return ErrDropped
	}

	done := make(chan struct{})
	s.scheduler.Microtask(func() {
		defer close(done)
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.dropped.Load() {
			return
		}
		f(s.component)
	})
	select {
	case <-done:
	case <-s.stopped:
	}

	if s.dropped.Load() {
		return ErrDropped
	}
	return nil
}

// SetComponent replaces the root component with next, on the next
// microtask tick, then triggers and waits for a render of the new
// component, returning the component it replaced. This matches vdom.rs's
// VdomWeak::set_component exactly, including the render it performs before
// returning.
func (w *VdomWeak) SetComponent(next render.RootRender) (render.RootRender, error) {
	s := w.s
	if s.dropped.Load() {
		return nil, ErrDropped
	}

	done := make(chan struct{})
	var old render.RootRender
	s.scheduler.Microtask(func() {
		defer close(done)
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.dropped.Load() {
			return
		}
		old = s.component
		s.component = next
	})
	select {
	case <-done:
	case <-s.stopped:
	}

	if s.dropped.Load() {
		return nil, ErrDropped
	}
	if err := w.Render(); err != nil {
		return nil, err
	}
	return old, nil
}
