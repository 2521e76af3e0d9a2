// Package sqlitestore is a store.Store backed by SQLite, via
// modernc.org/sqlite (a pure-Go driver, so it needs no cgo toolchain).
package sqlitestore

import (
	"context"
	"database/sql"
	"time"

	"github.com/flowexpr-go/flowexpr/internal/store"
)

// Store is a store.Store backed by an *sql.DB using the SQLite driver.
//
// Callers are responsible for importing the driver, e.g.:
//
//	import _ "modernc.org/sqlite"
type Store struct {
	db *sql.DB
}

var _ store.Store = (*Store)(nil)

// New initializes the runs table in db and returns a new Store.
func New(db *sql.DB) (*Store, error) {
	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) initSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			axiom_name TEXT NOT NULL,
			passed INTEGER NOT NULL,
			started_at INTEGER NOT NULL,
			finished_at INTEGER NOT NULL,
			input BLOB,
			trace_events BLOB,
			error TEXT
		);
	`)
	return err
}

// SaveRun inserts rec.
func (s *Store) SaveRun(ctx context.Context, rec store.RunRecord) error {
	input, err := store.EncodeValue(rec.Input)
	if err != nil {
		return err
	}
	traceEvents, err := store.EncodeValue(rec.TraceEvents)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (id, axiom_name, passed, started_at, finished_at, input, trace_events, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.AxiomName,
		boolToInt(rec.Passed),
		rec.StartedAt.UnixNano(),
		rec.FinishedAt.UnixNano(),
		input,
		traceEvents,
		rec.Err,
	)
	return err
}

// ListRuns returns every record saved for axiomName, oldest first.
func (s *Store) ListRuns(ctx context.Context, axiomName string) ([]store.RunRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, axiom_name, passed, started_at, finished_at, input, trace_events, error
		FROM runs
		WHERE axiom_name = ?
		ORDER BY started_at, id`, axiomName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.RunRecord
	for rows.Next() {
		var (
			rec                   store.RunRecord
			passed                int
			startedAt, finishedAt int64
			input, traceEvents    []byte
			errStr                sql.NullString
		)
		if err := rows.Scan(&rec.ID, &rec.AxiomName, &passed, &startedAt, &finishedAt, &input, &traceEvents, &errStr); err != nil {
			return nil, err
		}
		rec.Passed = passed != 0
		rec.StartedAt = time.Unix(0, startedAt)
		rec.FinishedAt = time.Unix(0, finishedAt)

		inVal, err := store.DecodeValue[any](input)
		if err != nil {
			return nil, err
		}
		rec.Input = inVal

		events, err := store.DecodeValue[[]string](traceEvents)
		if err != nil {
			return nil, err
		}
		rec.TraceEvents = events

		if errStr.Valid {
			rec.Err = errStr.String
		}

		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
