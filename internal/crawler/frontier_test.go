package crawler

import (
	"sync"
	"testing"
	"time"
)

// TestFrontierPushPop tests basic queue behavior.
func TestFrontierPushPop(t *testing.T) {
	t.Parallel()

	f := NewFrontier(2)

	if !f.Push(Task{URL: "https://example.com/", Depth: 0}) {
		t.Fatal("expected push at depth 0 to be accepted")
	}
	if !f.Push(Task{URL: "https://example.com/a", Depth: 2}) {
		t.Fatal("expected push at max depth to be accepted")
	}

	if got := f.Len(); got != 2 {
		t.Errorf("expected 2 queued tasks, got %d", got)
	}

	task, ok := f.Pop()
	if !ok {
		t.Fatal("expected pop to return a task")
	}
	if task.URL != "https://example.com/" {
		t.Errorf("expected FIFO order, got %q first", task.URL)
	}
}

// TestFrontierDropsBeyondDepth tests that over-deep tasks are silently dropped.
func TestFrontierDropsBeyondDepth(t *testing.T) {
	t.Parallel()

	f := NewFrontier(1)

	if f.Push(Task{URL: "https://example.com/deep", Depth: 2}) {
		t.Error("expected push beyond max depth to be refused")
	}
	if got := f.Len(); got != 0 {
		t.Errorf("expected empty frontier, got %d tasks", got)
	}
}

// TestFrontierClose tests close semantics.
func TestFrontierClose(t *testing.T) {
	t.Parallel()

	t.Run("pop unblocks on close", func(t *testing.T) {
		t.Parallel()

		f := NewFrontier(1)
		done := make(chan bool)

		go func() {
			_, ok := f.Pop()
			done <- ok
		}()

		// Give the popper time to block.
		time.Sleep(10 * time.Millisecond)
		f.Close()

		select {
		case ok := <-done:
			if ok {
				t.Error("expected closed-signal from Pop, got a task")
			}
		case <-time.After(time.Second):
			t.Fatal("Pop did not unblock after Close")
		}
	})

	t.Run("push after close is refused", func(t *testing.T) {
		t.Parallel()

		f := NewFrontier(1)
		f.Close()
		if f.Push(Task{URL: "https://example.com/", Depth: 0}) {
			t.Error("expected push after close to be refused")
		}
	})

	t.Run("close is idempotent", func(t *testing.T) {
		t.Parallel()

		f := NewFrontier(1)
		f.Close()
		f.Close() // must not panic
	})
}

// TestFrontierConcurrent tests that concurrent producers and consumers
// neither lose nor duplicate tasks.
func TestFrontierConcurrent(t *testing.T) {
	t.Parallel()

	const producers = 4
	const perProducer = 100

	f := NewFrontier(0)

	var wg sync.WaitGroup
	for i := 0; i < producers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perProducer; j++ {
				f.Push(Task{URL: "https://example.com/", Depth: 0})
			}
		}()
	}

	var mu sync.Mutex
	popped := 0
	var consumers sync.WaitGroup
	for i := 0; i < 4; i++ {
		consumers.Add(1)
		go func() {
			defer consumers.Done()
			for {
				if _, ok := f.Pop(); !ok {
					return
				}
				mu.Lock()
				popped++
				mu.Unlock()
			}
		}()
	}

	wg.Wait()
	// Drain completes once all tasks are popped; give consumers time
	// then close.
	for f.Len() > 0 {
		time.Sleep(time.Millisecond)
	}
	f.Close()
	consumers.Wait()

	if popped != producers*perProducer {
		t.Errorf("expected %d pops, got %d", producers*perProducer, popped)
	}
}
