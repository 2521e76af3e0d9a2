// Package queue defines the job queue contract consumed by pkg/batch's
// Runner, plus an in-memory and a SQLite-backed implementation.
package queue

import (
	"context"
	"time"
)

// Job is a unit of work for a pkg/batch Runner: run the named axiom
// against a decoded context payload.
type Job struct {
	ID         string
	AxiomName  string
	Payload    any
	EnqueuedAt time.Time

	// NotBefore is the earliest time this job is eligible for dequeue.
	// The zero value means "immediately".
	NotBefore time.Time
}

// Queue is a simple async job queue.
type Queue interface {
	// Enqueue adds j to the queue. It respects ctx for cancellation.
	Enqueue(ctx context.Context, j Job) error

	// Dequeue removes and returns the next eligible job, blocking until
	// one is available or ctx is cancelled.
	Dequeue(ctx context.Context) (*Job, error)

	// Len returns the approximate number of jobs queued.
	Len() int
}
