package driving

import (
	"context"

	"github.com/halcyon-labs/docindexer/internal/core/domain"
)

// Indexer drives the corpus-to-index transformation.
type Indexer interface {
	// Run discovers every indexable document under folderID, processes
	// each one through extraction, chunking, enrichment, embedding and
	// upsert, and returns aggregate statistics. One document's failure
	// never aborts the run; partial success is normal.
	Run(ctx context.Context, folderID string) (*domain.RunStats, error)

	// RecreateCollection drops and recreates the target collection.
	// Required when the embedding dimensionality changes, and the only
	// way to clear entries orphaned by content changes.
	RecreateCollection(ctx context.Context) error
}
