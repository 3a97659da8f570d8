package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halcyon-labs/docindexer/internal/core/domain"
	"github.com/halcyon-labs/docindexer/internal/core/ports/driven"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveRunAndListRuns(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rec := driven.RunRecord{
		FolderID:  "folder-abc",
		StartedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		Stats: domain.RunStats{
			TotalDocuments: 10,
			Processed:      8,
			Failed:         2,
			TotalChunks:    42,
			TotalTime:      90 * time.Second,
			Errors:         []string{"report.docx: extract: corrupt archive", "deck.pptx: fetch: timeout"},
		},
	}

	id, err := store.SaveRun(ctx, rec)
	require.NoError(t, err)
	assert.Positive(t, id)

	runs, err := store.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	got := runs[0]
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "folder-abc", got.FolderID)
	assert.Equal(t, 10, got.Stats.TotalDocuments)
	assert.Equal(t, 8, got.Stats.Processed)
	assert.Equal(t, 2, got.Stats.Failed)
	assert.Equal(t, 42, got.Stats.TotalChunks)
	assert.Equal(t, 90*time.Second, got.Stats.TotalTime)
	assert.Equal(t, rec.Stats.Errors, got.Stats.Errors)
}

func TestListRuns_NewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, folder := range []string{"first", "second", "third"} {
		_, err := store.SaveRun(ctx, driven.RunRecord{
			FolderID:  folder,
			StartedAt: time.Now().UTC(),
		})
		require.NoError(t, err)
	}

	runs, err := store.ListRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "third", runs[0].FolderID)
	assert.Equal(t, "second", runs[1].FolderID)
}

func TestListRuns_Empty(t *testing.T) {
	store := newTestStore(t)

	runs, err := store.ListRuns(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestNewStore_Reopen(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	_, err = store.SaveRun(context.Background(), driven.RunRecord{FolderID: "f", StartedAt: time.Now()})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Migrations must be idempotent across reopens.
	store, err = NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	runs, err := store.ListRuns(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}
