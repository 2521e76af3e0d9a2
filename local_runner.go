package flowexpr

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/flowexpr-go/flowexpr/internal/queue"
	"github.com/flowexpr-go/flowexpr/internal/store"
	"github.com/flowexpr-go/flowexpr/internal/store/memstore"
	"github.com/flowexpr-go/flowexpr/pkg/batch"
)

// LocalRunner bundles an in-memory Store, an in-memory job queue, and a
// batch.Runner, for local development and debugging.
//
// Typical usage:
//
//	runner := flowexpr.NewLocalRunner[*myCtx]()
//	runner.Axioms.MustRegister("my-axiom", myAxiom)
//	_ = runner.StartWorkers(ctx, 2)
//	_ = runner.Runner.Enqueue(ctx, "my-axiom", myCtxValue)
//	...
//	runner.Stop()
type LocalRunner[T any] struct {
	// Store is the in-memory store.Store backing this runner.
	Store store.Store

	// Queue is the in-memory job queue feeding Runner.
	Queue queue.Queue

	// Axioms is the name -> axiom registry Runner looks up against.
	Axioms *batch.AxiomRegistry[T]

	// Runner processes jobs from Queue using Axioms, saving outcomes to
	// Store.
	Runner *batch.Runner[T]

	mu      sync.Mutex
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running bool
}

// NewLocalRunner constructs a LocalRunner backed by an in-memory store,
// in-memory queue, and an empty axiom registry. This is intended for
// local development, tests, and simple single-process deployments.
func NewLocalRunner[T any]() *LocalRunner[T] {
	s := memstore.New()
	q := queue.NewInMemoryQueue(1024)
	axioms := batch.NewAxiomRegistry[T]()
	r := batch.New[T](q, s, axioms)

	return &LocalRunner[T]{
		Store:  s,
		Queue:  q,
		Axioms: axioms,
		Runner: r,
	}
}

// StartWorkers starts concurrency goroutines, each continuously calling
// Runner.ProcessOne until ctx is cancelled or Stop is called.
//
// Calling StartWorkers twice without an intervening Stop returns an
// error.
func (r *LocalRunner[T]) StartWorkers(ctx context.Context, concurrency int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		return errors.New("flowexpr: LocalRunner already started")
	}
	if concurrency <= 0 {
		concurrency = 1
	}

	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.running = true

	r.wg.Add(concurrency)
	for i := 0; i < concurrency; i++ {
		go func() {
			defer r.wg.Done()
			for {
				_, err := r.Runner.ProcessOne(ctx)
				if err != nil {
					if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
						return
					}
					log.Printf("flowexpr: local runner worker error: %v", err)
				}
			}
		}()
	}

	return nil
}

// Stop cancels all worker goroutines started by StartWorkers and waits
// for them to exit.
func (r *LocalRunner[T]) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	cancel := r.cancel
	r.running = false
	r.cancel = nil
	r.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	r.wg.Wait()
}
