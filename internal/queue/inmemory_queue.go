package queue

import "context"

// InMemoryQueue is a Queue backed by a buffered channel. It is safe for
// concurrent use. It does not honor Job.NotBefore — like the teacher's
// own in-memory queue, scheduling a job for the future only matters for
// the durable (SQLite) backend.
type InMemoryQueue struct {
	ch chan Job
}

// NewInMemoryQueue creates a queue with the given capacity (1024 if
// capacity <= 0).
func NewInMemoryQueue(capacity int) *InMemoryQueue {
	if capacity <= 0 {
		capacity = 1024
	}
	return &InMemoryQueue{ch: make(chan Job, capacity)}
}

var _ Queue = (*InMemoryQueue)(nil)

// Enqueue implements Queue.
func (q *InMemoryQueue) Enqueue(ctx context.Context, j Job) error {
	select {
	case q.ch <- j:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Dequeue implements Queue.
func (q *InMemoryQueue) Dequeue(ctx context.Context) (*Job, error) {
	select {
	case j := <-q.ch:
		return &j, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Len implements Queue.
func (q *InMemoryQueue) Len() int {
	return len(q.ch)
}
