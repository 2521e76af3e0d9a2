// Package store adapts internal/store.Store to PostgreSQL, grounded on
// the teacher's PostgresInstanceStore schema-on-init and $N placeholder
// style.
package store

import (
	"context"
	"database/sql"
	"time"

	corestore "github.com/flowexpr-go/flowexpr/internal/store"
)

// Store is a Store backed by PostgreSQL.
//
// It expects an *sql.DB using a PostgreSQL driver (for example
// "github.com/jackc/pgx/v5/stdlib"); the caller is responsible for
// importing the driver for its side effects and providing a DSN.
type Store struct {
	db *sql.DB
}

var _ corestore.Store = (*Store)(nil)

// New initializes the required schema in db and returns a Store.
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
			id           TEXT PRIMARY KEY,
			axiom_name   TEXT NOT NULL,
			passed       BOOLEAN NOT NULL,
			started_at   BIGINT NOT NULL,
			finished_at  BIGINT NOT NULL,
			input        BYTEA,
			trace_events BYTEA,
			err          TEXT
		);
	`)
	return err
}

func (s *Store) SaveRun(ctx context.Context, rec corestore.RunRecord) error {
	input, err := corestore.EncodeValue(rec.Input)
	if err != nil {
		return err
	}
	traces, err := corestore.EncodeValue(rec.TraceEvents)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (id, axiom_name, passed, started_at, finished_at, input, trace_events, err)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		rec.ID,
		rec.AxiomName,
		rec.Passed,
		rec.StartedAt.UnixNano(),
		rec.FinishedAt.UnixNano(),
		input,
		traces,
		rec.Err,
	)
	return err
}

func (s *Store) ListRuns(ctx context.Context, axiomName string) ([]corestore.RunRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, axiom_name, passed, started_at, finished_at, input, trace_events, err
		FROM runs
		WHERE axiom_name = $1
		ORDER BY started_at
	`, axiomName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []corestore.RunRecord
	for rows.Next() {
		var rec corestore.RunRecord
		var startedAt, finishedAt int64
		var input, traces []byte

		if err := rows.Scan(&rec.ID, &rec.AxiomName, &rec.Passed, &startedAt, &finishedAt, &input, &traces, &rec.Err); err != nil {
			return nil, err
		}
		rec.StartedAt = time.Unix(0, startedAt)
		rec.FinishedAt = time.Unix(0, finishedAt)

		if rec.Input, err = corestore.DecodeValue[any](input); err != nil {
			return nil, err
		}
		if len(traces) > 0 {
			if rec.TraceEvents, err = corestore.DecodeValue[[]string](traces); err != nil {
				return nil, err
			}
		}
		runs = append(runs, rec)
	}
	return runs, rows.Err()
}
