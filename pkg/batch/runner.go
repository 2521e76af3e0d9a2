// Package batch drives many independent axiom runs from a job queue,
// recording each outcome to a store.Store. Concurrency is strictly
// between jobs: every dequeued Job gets its own context instance T, so
// running several Runner.ProcessOne calls concurrently never shares a
// single context across goroutines, preserving spec.md §5's
// single-threaded-per-run discipline while still letting many runs
// proceed in parallel.
package batch

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/flowexpr-go/flowexpr/internal/queue"
	"github.com/flowexpr-go/flowexpr/internal/store"
	"github.com/flowexpr-go/flowexpr/pkg/core"
)

// Runner dequeues Jobs from a queue.Queue, decodes each one's payload as
// a T, runs the named axiom against it, and saves the outcome to a
// store.Store. It is the batch analogue of the teacher's pkg/worker.Worker.
type Runner[T any] struct {
	queue   queue.Queue
	store   store.Store
	axioms  *AxiomRegistry[T]
	newID   func() string
	nowFunc func() time.Time
}

// New creates a Runner over q, s and axioms.
func New[T any](q queue.Queue, s store.Store, axioms *AxiomRegistry[T]) *Runner[T] {
	return &Runner[T]{
		queue:   q,
		store:   s,
		axioms:  axioms,
		newID:   func() string { return uuid.New().String() },
		nowFunc: time.Now,
	}
}

// Enqueue enqueues a job naming axiomName with the given context value
// as its payload.
func (r *Runner[T]) Enqueue(ctx context.Context, axiomName string, payload T) error {
	return r.queue.Enqueue(ctx, queue.Job{
		AxiomName:  axiomName,
		Payload:    payload,
		EnqueuedAt: r.nowFunc(),
	})
}

// ProcessOne dequeues a single job and runs it.
//
// Returns (processed, error):
//   - processed == false, err != nil: Dequeue returned an error (for
//     example because ctx was cancelled) and no job was run.
//   - processed == true: a job was dequeued and run; err reports any
//     failure to look up the axiom, assert its payload type, or save the
//     resulting RunRecord — never the axiom's own run/check_run outcome,
//     which is recorded as RunRecord.Passed instead.
func (r *Runner[T]) ProcessOne(ctx context.Context) (bool, error) {
	job, err := r.queue.Dequeue(ctx)
	if err != nil {
		return false, err
	}

	axiom, ok := r.axioms.Lookup(job.AxiomName)
	if !ok {
		return true, fmt.Errorf("flowexpr: no axiom registered for %q", job.AxiomName)
	}

	axiomCtx, ok := job.Payload.(T)
	if !ok {
		return true, fmt.Errorf("flowexpr: job payload for %q is not the expected context type", job.AxiomName)
	}

	started := r.nowFunc()
	passed := core.Run(axiom, axiomCtx)
	finished := r.nowFunc()

	rec := store.RunRecord{
		ID:         r.newID(),
		AxiomName:  job.AxiomName,
		Passed:     passed,
		StartedAt:  started,
		FinishedAt: finished,
		Input:      job.Payload,
	}
	if err := r.store.SaveRun(ctx, rec); err != nil {
		return true, fmt.Errorf("flowexpr: saving run record: %w", err)
	}

	return true, nil
}
