// Package store adapts internal/store.Store to Redis, grounded on the
// teacher's RedisInstanceStore key layout and encoding discipline.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	corestore "github.com/flowexpr-go/flowexpr/internal/store"
)

// Store is a Store backed by Redis. Runs are kept as gob-encoded
// payloads under <prefix>run:<id>, indexed by a per-axiom SET of IDs so
// ListRuns can fetch exactly the records for one axiom name.
//
//	<prefix>run:<id>          => gob-encoded redisRunRecord
//	<prefix>idx:axiom:<name>  => SET of run IDs for that axiom
type Store struct {
	client *redis.Client
	prefix string
}

var _ corestore.Store = (*Store)(nil)

// New returns a Store using client, namespacing all keys under prefix.
// If prefix is empty it defaults to "flowexpr:".
func New(client *redis.Client, prefix string) *Store {
	if prefix == "" {
		prefix = "flowexpr:"
	}
	return &Store{client: client, prefix: prefix}
}

func (s *Store) keyRun(id string) string          { return s.prefix + "run:" + id }
func (s *Store) keyAxiomIndex(name string) string { return s.prefix + "idx:axiom:" + name }

type redisRunRecord struct {
	ID          string
	AxiomName   string
	Passed      bool
	StartedAt   int64
	FinishedAt  int64
	Input       []byte
	TraceEvents []byte
	Err         string
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

	payload := redisRunRecord{
		ID:          rec.ID,
		AxiomName:   rec.AxiomName,
		Passed:      rec.Passed,
		StartedAt:   rec.StartedAt.UnixNano(),
		FinishedAt:  rec.FinishedAt.UnixNano(),
		Input:       input,
		TraceEvents: traces,
		Err:         rec.Err,
	}
	data, err := corestore.EncodeValue(payload)
	if err != nil {
		return err
	}

	if err := s.client.Set(ctx, s.keyRun(rec.ID), data, 0).Err(); err != nil {
		return err
	}
	return s.client.SAdd(ctx, s.keyAxiomIndex(rec.AxiomName), rec.ID).Err()
}

func (s *Store) ListRuns(ctx context.Context, axiomName string) ([]corestore.RunRecord, error) {
	ids, err := s.client.SMembers(ctx, s.keyAxiomIndex(axiomName)).Result()
	if err != nil {
		return nil, err
	}

	runs := make([]corestore.RunRecord, 0, len(ids))
	for _, id := range ids {
		data, err := s.client.Get(ctx, s.keyRun(id)).Bytes()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return nil, err
		}

		payload, err := corestore.DecodeValue[redisRunRecord](data)
		if err != nil {
			return nil, err
		}

		input, err := corestore.DecodeValue[any](payload.Input)
		if err != nil {
			return nil, err
		}
		var traceEvents []string
		if len(payload.TraceEvents) > 0 {
			traceEvents, err = corestore.DecodeValue[[]string](payload.TraceEvents)
			if err != nil {
				return nil, err
			}
		}

		runs = append(runs, corestore.RunRecord{
			ID:          payload.ID,
			AxiomName:   payload.AxiomName,
			Passed:      payload.Passed,
			StartedAt:   time.Unix(0, payload.StartedAt),
			FinishedAt:  time.Unix(0, payload.FinishedAt),
			Input:       input,
			TraceEvents: traceEvents,
			Err:         payload.Err,
		})
	}
	return runs, nil
}
