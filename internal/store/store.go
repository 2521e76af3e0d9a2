// Package store defines the run-recorder contract shared by every
// persistence backend (memstore, sqlitestore, and the out-of-module
// backends in the postgres, redis and mongo submodules).
package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by backends that support point lookups when
// no matching record exists.
var ErrNotFound = errors.New("store: not found")

// RunRecord captures the outcome of a single axiom run, suitable for
// replay/audit. TraceEvents holds whatever a core.Tracer observed during
// the run, already flattened to strings so a RunRecord never needs to
// know about pkg/core's types.
type RunRecord struct {
	ID          string
	AxiomName   string
	Passed      bool
	StartedAt   time.Time
	FinishedAt  time.Time
	Input       any
	TraceEvents []string
	Err         string
}

// Store persists RunRecords. Every backend (in-memory, SQLite,
// PostgreSQL, Redis, MongoDB) implements this same narrow interface.
type Store interface {
	SaveRun(ctx context.Context, rec RunRecord) error
	ListRuns(ctx context.Context, axiomName string) ([]RunRecord, error)
}
