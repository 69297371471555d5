package crawler

import "sync"

// Frontier is the queue of tasks awaiting processing. Pushing never
// blocks; popping blocks until a task arrives or the frontier is closed.
//
// Workers are both producers and consumers of the frontier, so a blocking
// push could deadlock the pool. The queue is therefore unbounded; memory
// growth is bounded in practice by the visited set, which admits each URL
// at most once.
type Frontier struct {
	mu       sync.Mutex
	cond     *sync.Cond
	tasks    []Task
	closed   bool
	maxDepth int
}

// NewFrontier creates a Frontier that silently drops tasks deeper than
// maxDepth.
func NewFrontier(maxDepth int) *Frontier {
	f := &Frontier{maxDepth: maxDepth}
	f.cond = sync.NewCond(&f.mu)
	return f
}

// Push adds a task to the frontier. It reports whether the task was
// accepted: tasks beyond the depth limit are dropped (exceeding depth is
// not an error), and pushes after Close are refused.
func (f *Frontier) Push(t Task) bool {
	if t.Depth > f.maxDepth {
		return false
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return false
	}
	f.tasks = append(f.tasks, t)
	f.cond.Signal()
	return true
}

// Pop removes and returns the next task, blocking while the frontier is
// empty. The second return value is false once the frontier has been
// closed; remaining queued tasks are discarded at that point, since Close
// means the run is either quiescent (queue already empty) or cancelled
// (in-flight work is abandoned).
func (f *Frontier) Pop() (Task, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for len(f.tasks) == 0 && !f.closed {
		f.cond.Wait()
	}
	if f.closed {
		return Task{}, false
	}

	t := f.tasks[0]
	f.tasks = f.tasks[1:]
	return t, true
}

// Close irrevocably signals that no more tasks will be produced and wakes
// all blocked workers. Safe to call multiple times.
func (f *Frontier) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.closed = true
	f.cond.Broadcast()
}

// Len returns the number of queued tasks.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tasks)
}
