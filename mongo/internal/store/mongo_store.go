// Package store adapts internal/store.Store to MongoDB, grounded on
// the teacher's MongoInstanceStore bson document layout.
package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	corestore "github.com/flowexpr-go/flowexpr/internal/store"
)

// Store is a Store backed by MongoDB.
type Store struct {
	coll *mongo.Collection
}

var _ corestore.Store = (*Store)(nil)

// New returns a Store writing into dbName.collName. dbName defaults to
// "flowexpr", collName defaults to "runs".
func New(client *mongo.Client, dbName, collName string) *Store {
	if dbName == "" {
		dbName = "flowexpr"
	}
	if collName == "" {
		collName = "runs"
	}
	return &Store{coll: client.Database(dbName).Collection(collName)}
}

type runDoc struct {
	ID          string `bson:"_id"`
	AxiomName   string `bson:"axiom_name"`
	Passed      bool   `bson:"passed"`
	StartedAt   int64  `bson:"started_at"`
	FinishedAt  int64  `bson:"finished_at"`
	Input       []byte `bson:"input,omitempty"`
	TraceEvents []byte `bson:"trace_events,omitempty"`
	Err         string `bson:"err,omitempty"`
}

func (s *Store) SaveRun(ctx context.Context, rec corestore.RunRecord) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	input, err := corestore.EncodeValue(rec.Input)
	if err != nil {
		return err
	}
	traces, err := corestore.EncodeValue(rec.TraceEvents)
	if err != nil {
		return err
	}

	doc := runDoc{
		ID:          rec.ID,
		AxiomName:   rec.AxiomName,
		Passed:      rec.Passed,
		StartedAt:   rec.StartedAt.UnixNano(),
		FinishedAt:  rec.FinishedAt.UnixNano(),
		Input:       input,
		TraceEvents: traces,
		Err:         rec.Err,
	}

	_, err = s.coll.InsertOne(ctx, doc)
	return err
}

func (s *Store) ListRuns(ctx context.Context, axiomName string) ([]corestore.RunRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cur, err := s.coll.Find(ctx, bson.M{"axiom_name": axiomName})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var runs []corestore.RunRecord
	for cur.Next(ctx) {
		var doc runDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}

		rec := corestore.RunRecord{
			ID:         doc.ID,
			AxiomName:  doc.AxiomName,
			Passed:     doc.Passed,
			StartedAt:  time.Unix(0, doc.StartedAt),
			FinishedAt: time.Unix(0, doc.FinishedAt),
			Err:        doc.Err,
		}
		if rec.Input, err = corestore.DecodeValue[any](doc.Input); err != nil {
			return nil, err
		}
		if len(doc.TraceEvents) > 0 {
			if rec.TraceEvents, err = corestore.DecodeValue[[]string](doc.TraceEvents); err != nil {
				return nil, err
			}
		}
		runs = append(runs, rec)
	}
	return runs, cur.Err()
}
