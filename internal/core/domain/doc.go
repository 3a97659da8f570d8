// Package domain defines the core business entities for the indexing pipeline.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - DocumentInfo: A document descriptor from the source store
//   - Structure: The section tree produced by a format extractor
//   - Chunk: A bounded span of document text treated as one retrievable unit
//   - RunStats: Aggregate statistics for one indexing run
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
