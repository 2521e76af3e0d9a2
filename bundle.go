package flowexpr

import (
	"database/sql"

	"github.com/flowexpr-go/flowexpr/internal/queue"
	"github.com/flowexpr-go/flowexpr/internal/store"
	"github.com/flowexpr-go/flowexpr/internal/store/sqlitestore"
	"github.com/flowexpr-go/flowexpr/pkg/batch"
)

// SQLiteBundle wires together a sqlitestore.Store, a SQLite-backed job
// queue, and a batch.Runner that consumes jobs from that queue, all
// sharing one *sql.DB.
type SQLiteBundle[T any] struct {
	Store  store.Store
	Axioms *batch.AxiomRegistry[T]
	Runner *batch.Runner[T]

	queue queue.Queue
}

// NewSQLiteBundle constructs a durable Store + Queue + Runner combo
// sharing the given *sql.DB. Callers are responsible for importing a
// SQLite driver, e.g.:
//
//	import _ "modernc.org/sqlite"
//	db, _ := sql.Open("sqlite", "file:flowexpr.db?_journal=WAL")
//	bundle, err := flowexpr.NewSQLiteBundle[*myCtx](db)
func NewSQLiteBundle[T any](db *sql.DB) (*SQLiteBundle[T], error) {
	s, err := sqlitestore.New(db)
	if err != nil {
		return nil, err
	}
	q, err := queue.NewSQLiteQueue(db)
	if err != nil {
		return nil, err
	}
	axioms := batch.NewAxiomRegistry[T]()
	r := batch.New[T](q, s, axioms)

	return &SQLiteBundle[T]{
		Store:  s,
		Axioms: axioms,
		Runner: r,
		queue:  q,
	}, nil
}
