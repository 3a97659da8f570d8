package driven

import (
	"context"

	"github.com/halcyon-labs/docindexer/internal/core/domain"
)

// DocumentSource provides access to the cloud file store the pipeline
// indexes from.
//
// Both operations must be safe for concurrent use: the orchestrator
// issues Fetch calls from many document pipelines at once, bounded by
// its worker cap.
type DocumentSource interface {
	// List returns descriptors for every indexable document under the
	// given folder. When recursive is true, sub-folders are walked too;
	// implementations must guard against folder cycles with a visited set.
	List(ctx context.Context, folderID string, recursive bool) ([]domain.DocumentInfo, error)

	// Fetch downloads the raw bytes of a document.
	Fetch(ctx context.Context, documentID string) ([]byte, error)
}
