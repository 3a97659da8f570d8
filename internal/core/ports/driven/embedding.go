package driven

import "context"

// EmbeddingService generates vector embeddings from text.
//
// The pipeline embeds the contextualised variant of each chunk, never
// the stored display text. Implementations must be safe to call from
// many document pipelines concurrently.
//
// Implementations may include:
//   - Ollama (nomic-embed-text, mxbai-embed-large)
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the embedding vector size (e.g., 768, 1024, 1536).
	// This is determined by the model and must match the vector store
	// collection's configuration.
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight
	// test request. Used at startup before committing to a run.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
