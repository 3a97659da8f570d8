package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates a document format no extractor handles.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrExtractionFailed indicates the document bytes could not be parsed.
	// The orchestrator recovers by indexing the document with zero chunks.
	ErrExtractionFailed = errors.New("extraction failed")

	// ErrSummaryUnavailable indicates the summarisation call failed.
	// A missing summary degrades enrichment but never fails the document.
	ErrSummaryUnavailable = errors.New("summary unavailable")

	// ErrEmbeddingFailed indicates the embedding call failed for a chunk.
	// This fails the whole document.
	ErrEmbeddingFailed = errors.New("embedding failed")

	// ErrUpsertFailed indicates the vector store rejected a write.
	// This fails the whole document.
	ErrUpsertFailed = errors.New("upsert failed")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")
)
