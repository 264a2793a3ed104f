package extract

import (
	"sync"

	"github.com/carvetools/appcarve/imgfs"
)

// Task is one unit of work handed from the scanner to the archive workers:
// either a matched directory to absorb, or a shutdown sentinel.
type Task struct {
	Path     imgfs.Path
	sentinel bool
}

// Sentinel reports whether the task tells its worker to exit.
func (t Task) Sentinel() bool {
	return t.sentinel
}

// Queue is an unbounded FIFO of Tasks, safe for concurrent use. Push never
// blocks, so the scanner can keep discovering while every worker is busy;
// Pop blocks until a task is available.
type Queue struct {
	mu    sync.Mutex
	ready *sync.Cond
	tasks []Task
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	q := &Queue{}
	q.ready = sync.NewCond(&q.mu)
	return q
}

// Push appends a directory task.
func (q *Queue) Push(p imgfs.Path) {
	q.push(Task{Path: p})
}

// PushSentinel appends one shutdown sentinel. The pipeline pushes exactly one
// per worker so every worker observes exactly one.
func (q *Queue) PushSentinel() {
	q.push(Task{sentinel: true})
}

func (q *Queue) push(t Task) {
	q.mu.Lock()
	q.tasks = append(q.tasks, t)
	q.mu.Unlock()
	q.ready.Signal()
}

// Pop removes and returns the oldest task, blocking while the queue is empty.
func (q *Queue) Pop() Task {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.tasks) == 0 {
		q.ready.Wait()
	}
	t := q.tasks[0]
	q.tasks = q.tasks[1:]
	return t
}

// Len returns the number of queued tasks.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}
