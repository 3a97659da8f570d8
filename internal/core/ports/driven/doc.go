// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the indexing pipeline to function:
//
//   - DocumentSource: Lists and fetches documents from the cloud file store
//   - Extractor: Turns raw document bytes into text plus a structure tree
//   - ExtractorRegistry: Selects the extractor for a document's format
//   - EmbeddingService: Generates vector embeddings for contextualised chunks
//   - VectorStore: Persists indexed chunk entries (Qdrant)
//
// # Optional Interfaces
//
// These can be nil - the pipeline degrades gracefully:
//
//   - LLMService: Generates document summaries. Without it, chunks are
//     indexed without summary context.
//   - RunStore: Persists run statistics. Without it, runs are only logged.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or extractor package
package driven
