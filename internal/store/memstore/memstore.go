// Package memstore is an in-memory store.Store, used by the local
// runner and by tests that don't need a durable backend.
package memstore

import (
	"context"
	"sync"

	"github.com/flowexpr-go/flowexpr/internal/store"
)

// Store is an in-memory store.Store backed by a mutex-protected slice.
type Store struct {
	mu   sync.Mutex
	runs []store.RunRecord
}

// New returns an empty Store.
func New() *Store {
	return &Store{}
}

var _ store.Store = (*Store)(nil)

// SaveRun appends rec. ctx cancellation is ignored, matching the
// teacher's own in-memory stores (there is no I/O to cancel).
func (s *Store) SaveRun(_ context.Context, rec store.RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs = append(s.runs, rec)
	return nil
}

// ListRuns returns every saved record for axiomName, in save order.
func (s *Store) ListRuns(_ context.Context, axiomName string) ([]store.RunRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []store.RunRecord
	for _, r := range s.runs {
		if r.AxiomName == axiomName {
			out = append(out, r)
		}
	}
	return out, nil
}
