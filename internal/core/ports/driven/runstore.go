package driven

import (
	"context"
	"time"

	"github.com/halcyon-labs/docindexer/internal/core/domain"
)

// RunRecord is one persisted indexing run.
type RunRecord struct {
	// ID is the store-assigned run identifier.
	ID int64

	// FolderID is the source folder the run indexed.
	FolderID string

	// StartedAt is when the run began.
	StartedAt time.Time

	// Stats holds the run's aggregate statistics.
	Stats domain.RunStats
}

// RunStore persists run statistics and per-document failures.
// This is an optional service - when nil, runs are only logged.
type RunStore interface {
	// SaveRun records a completed run and its errors, returning the
	// assigned run ID.
	SaveRun(ctx context.Context, rec RunRecord) (int64, error)

	// ListRuns returns the most recent runs, newest first.
	ListRuns(ctx context.Context, limit int) ([]RunRecord, error)

	// Close closes the underlying database.
	Close() error
}
