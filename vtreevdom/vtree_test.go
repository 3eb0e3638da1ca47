package vtreevdom_test

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fortytw2/leaktest"

	"github.com/forgelogic/vtree/events"
	"github.com/forgelogic/vtree/hosttree"
	"github.com/forgelogic/vtree/render"
	"github.com/forgelogic/vtree/vnode"
	"github.com/forgelogic/vtree/vtreevdom"
)

// counter is a minimal render.RootRender whose output reflects a
// mutable field, so tests can observe a render actually picking up a
// state change.
type counter struct {
	mu    sync.Mutex
	value int
}

func (c *counter) Render(cx *render.RenderContext) vnode.Node {
	c.mu.Lock()
	defer c.mu.Unlock()
	return vnode.Text(fmt.Sprintf("%d", c.value))
}

func (c *counter) set(v int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = v
}

type recordingRecorder struct {
	mu        sync.Mutex
	renders   int
	reclaimed int
}

func (r *recordingRecorder) ObserveRender() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.renders++
}

func (r *recordingRecorder) ObserveCacheReclaimed(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reclaimed += n
}

func (r *recordingRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.renders
}

func newFixture(t *testing.T, component render.RootRender, opts ...vtreevdom.Option) (*vtreevdom.Vdom, *hosttree.DumpTree) {
	t.Helper()
	registry, trampoline := events.NewRegistry()
	dt := hosttree.NewDumpTree(trampoline)
	scheduler := hosttree.NewGoScheduler()
	v := vtreevdom.New(dt, dt.Container(), scheduler, registry, component, opts...)
	return v, dt
}

func TestNewPerformsInitialRender(t *testing.T) {
	c := &counter{value: 7}
	v, dt := newFixture(t, c)
	defer v.Unmount()

	if got := dt.String(); got == "" || !strings.Contains(got, `"7"`) {
		t.Fatalf("got dump %q, want it to contain the initial render output", got)
	}
}

func TestWeakRenderPicksUpStateChange(t *testing.T) {
	c := &counter{value: 1}
	v, dt := newFixture(t, c)
	defer v.Unmount()

	c.set(2)
	if err := v.Weak().Render(); err != nil {
		t.Fatalf("Render returned an error: %v", err)
	}

	if got := dt.String(); !strings.Contains(got, `"2"`) {
		t.Fatalf("got dump %q, want it to reflect the updated value", got)
	}
}

func TestWeakRenderCoalescesConcurrentCalls(t *testing.T) {
	recorder := &recordingRecorder{}
	c := &counter{value: 0}
	v, _ := newFixture(t, c, vtreevdom.WithRecorder(recorder))
	defer v.Unmount()

	// The initial render in New already counted once.
	baseline := recorder.count()

	weak := v.Weak()
	var wg sync.WaitGroup
	wg.Add(10)
	for i := 0; i < 10; i++ {
		go func() {
			defer wg.Done()
			_ = weak.Render()
		}()
	}
	wg.Wait()

	if got := recorder.count(); got != baseline+1 {
		t.Fatalf("got %d renders, want exactly %d (one coalesced render for all concurrent callers)", got, baseline+1)
	}
}

func TestWeakSetComponentReplacesRootAndRenders(t *testing.T) {
	first := &counter{value: 1}
	second := &counter{value: 99}
	v, dt := newFixture(t, first)
	defer v.Unmount()

	old, err := v.Weak().SetComponent(second)
	if err != nil {
		t.Fatalf("SetComponent returned an error: %v", err)
	}
	if old != render.RootRender(first) {
		t.Fatalf("SetComponent should return the previous root component")
	}
	if got := dt.String(); !strings.Contains(got, `"99"`) {
		t.Fatalf("got dump %q, want the new component's output", got)
	}
}

func TestWeakWithComponentRunsUnderExclusion(t *testing.T) {
	c := &counter{value: 3}
	v, _ := newFixture(t, c)
	defer v.Unmount()

	var seen int
	if err := v.Weak().WithComponent(func(r render.RootRender) {
		seen = r.(*counter).value
	}); err != nil {
		t.Fatalf("WithComponent returned an error: %v", err)
	}
	if seen != 3 {
		t.Fatalf("got %d, want 3", seen)
	}
}

func TestUnmountStopsSchedulerAndReturnsComponent(t *testing.T) {
	defer leaktest.Check(t)()

	c := &counter{value: 5}
	v, _ := newFixture(t, c)

	got := v.Unmount()
	if got != render.RootRender(c) {
		t.Fatalf("Unmount should return the root component")
	}

	// A render requested after unmounting must fail, not hang or panic.
	done := make(chan error, 1)
	go func() { done <- v.Weak().Render() }()
	select {
	case err := <-done:
		if err != vtreevdom.ErrDropped {
			t.Fatalf("got err %v, want ErrDropped", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Render after Unmount never returned")
	}
}

