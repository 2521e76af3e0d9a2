package memstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flowexpr-go/flowexpr/internal/store"
)

func TestStore_SaveAndListRunsFiltersByAxiomName(t *testing.T) {
	t.Parallel()
	s := New()
	ctx := context.Background()

	require.NoError(t, s.SaveRun(ctx, store.RunRecord{ID: "1", AxiomName: "telephone", Passed: true}))
	require.NoError(t, s.SaveRun(ctx, store.RunRecord{ID: "2", AxiomName: "arithmetic", Passed: false}))
	require.NoError(t, s.SaveRun(ctx, store.RunRecord{ID: "3", AxiomName: "telephone", Passed: false}))

	runs, err := s.ListRuns(ctx, "telephone")
	require.NoError(t, err)
	require.Len(t, runs, 2)
	require.Equal(t, "1", runs[0].ID)
	require.Equal(t, "3", runs[1].ID)
}

func TestStore_ListRunsEmptyWhenNoneMatch(t *testing.T) {
	t.Parallel()
	s := New()
	runs, err := s.ListRuns(context.Background(), "missing")
	require.NoError(t, err)
	require.Empty(t, runs)
}
