package hosttree

import (
	"sync"
	"testing"
	"time"
)

func TestGoSchedulerRunsAnimationFrameCallback(t *testing.T) {
	s := NewGoScheduler()
	defer s.Stop()

	done := make(chan struct{})
	s.AnimationFrame(func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("animation frame callback never ran")
	}
}

func TestGoSchedulerRunsMicrotaskCallback(t *testing.T) {
	s := NewGoScheduler()
	defer s.Stop()

	done := make(chan struct{})
	s.Microtask(func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("microtask callback never ran")
	}
}

func TestGoSchedulerRunsManyCallbacksWithoutDeadlock(t *testing.T) {
	s := NewGoScheduler()
	defer s.Stop()

	var wg sync.WaitGroup
	wg.Add(20)
	for i := 0; i < 10; i++ {
		s.AnimationFrame(func() { wg.Done() })
		s.Microtask(func() { wg.Done() })
	}

	waitDone := make(chan struct{})
	go func() {
		wg.Wait()
		close(waitDone)
	}()

	select {
	case <-waitDone:
	case <-time.After(2 * time.Second):
		t.Fatal("not all scheduled callbacks ran")
	}
}

func TestGoSchedulerStopDropsLaterCallbacks(t *testing.T) {
	s := NewGoScheduler()
	s.Stop()

	ran := false
	s.AnimationFrame(func() { ran = true })
	time.Sleep(10 * time.Millisecond)

	if ran {
		t.Fatalf("callback scheduled after Stop should never run")
	}
}
