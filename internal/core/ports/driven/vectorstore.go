package driven

import "context"

// Point is one indexed chunk entry bound for the vector store.
type Point struct {
	// ID is the deterministic point identifier (UUID form). Re-running
	// the pipeline on unchanged content produces the same ID, making
	// upserts idempotent.
	ID string

	// ChunkID is the full content-addressed chunk identifier
	// ({document_id}_chunk_{index}_{hash}), stored in the payload.
	ChunkID string

	// Vector is the embedding of the chunk's contextualised text.
	Vector []float32

	// Text is the chunk's verbatim display text. Never the
	// contextualised embedding input.
	Text string

	// Payload holds the chunk metadata (document id/name/path, section,
	// chunk index, type, summary, tags, confidence, ...).
	Payload map[string]any
}

// VectorStore persists indexed chunk entries.
//
// A collection carries its embedding dimensionality as fixed metadata
// set at creation. Changing dimensionality requires explicit collection
// recreation; nothing is migrated implicitly. Upsert must be safe for
// concurrent callers.
type VectorStore interface {
	// EnsureCollection creates the collection if it does not exist,
	// configured for the given vector dimensionality.
	EnsureCollection(ctx context.Context, collection string, dims int) error

	// Upsert writes points, overwriting entries with identical IDs.
	Upsert(ctx context.Context, collection string, points []Point) error

	// DeleteCollection drops a collection and all its entries.
	DeleteCollection(ctx context.Context, collection string) error

	// Count returns the number of points in a collection.
	Count(ctx context.Context, collection string) (uint64, error)

	// Close releases the client connection.
	Close() error
}
