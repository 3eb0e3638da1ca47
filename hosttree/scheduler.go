package hosttree

// Scheduler models the two timing primitives a host window gives the vdom:
// an animation-frame callback (the render pass a weak-handle Render or
// ScheduleRender requests runs in one) and a microtask (a weak handle's
// WithComponent and SetComponent run their work on the root component in
// one, without waiting for an animation frame).
type Scheduler interface {
	// AnimationFrame arranges for fn to run on the next animation frame.
	AnimationFrame(fn func())
	// Microtask arranges for fn to run on the next microtask checkpoint.
	Microtask(fn func())
}

// GoScheduler is a Scheduler for non-browser hosts: the CLI and tests. It
// has no actual display to synchronize with, so "animation frame" and
// "microtask" both reduce to handing fn to a dedicated goroutine that runs
// callbacks one at a time, each kind in the order it was scheduled and any
// queued microtask ahead of a queued animation frame, which is enough
// to preserve the single-threaded-per-Vdom ownership model §5 depends on
// without requiring every caller to run on the same OS thread.
type GoScheduler struct {
	frames    chan func()
	microtask chan func()
	done      chan struct{}
}

// NewGoScheduler starts a GoScheduler's background worker goroutine. Call
// Stop when the scheduler is no longer needed to let it exit.
func NewGoScheduler() *GoScheduler {
	s := &GoScheduler{
		frames:    make(chan func(), 16),
		microtask: make(chan func(), 16),
		done:      make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *GoScheduler) run() {
	for {
		select {
		case fn := <-s.microtask:
			fn()
		default:
			select {
			case fn := <-s.frames:
				fn()
			case fn := <-s.microtask:
				fn()
			case <-s.done:
				return
			}
		}
	}
}

func (s *GoScheduler) AnimationFrame(fn func()) {
	select {
	case <-s.done:
		return
	default:
	}
	select {
	case s.frames <- fn:
	case <-s.done:
	}
}

func (s *GoScheduler) Microtask(fn func()) {
	select {
	case <-s.done:
		return
	default:
	}
	select {
	case s.microtask <- fn:
	case <-s.done:
	}
}

// Stop shuts the scheduler's worker goroutine down. Callbacks scheduled
// after Stop never run; a callback already queued when Stop is called may
// still run or be dropped.
func (s *GoScheduler) Stop() {
	close(s.done)
}
