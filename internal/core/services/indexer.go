package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/halcyon-labs/docindexer/internal/core/domain"
	"github.com/halcyon-labs/docindexer/internal/core/ports/driven"
	"github.com/halcyon-labs/docindexer/internal/core/ports/driving"
	"github.com/halcyon-labs/docindexer/internal/logger"
)

// Ensure Indexer implements the interface.
var _ driving.Indexer = (*Indexer)(nil)

// DefaultWorkers is the default concurrency cap for document pipelines.
const DefaultWorkers = 8

// Indexer coordinates the corpus-to-index transformation: discovery,
// hierarchy construction, and a bounded-concurrency fan-out that drives
// each document through extraction, chunking, enrichment, embedding
// and upsert.
type Indexer struct {
	source     driven.DocumentSource
	extractors driven.ExtractorRegistry
	embedder   driven.EmbeddingService
	store      driven.VectorStore
	summariser *Summariser
	chunker    *Chunker
	runStore   driven.RunStore

	collection string
	workers    int
	recursive  bool
}

// IndexerConfig holds construction parameters for the Indexer.
type IndexerConfig struct {
	// Collection is the vector store collection written to.
	Collection string

	// Workers caps the number of concurrent document pipelines
	// (default: DefaultWorkers).
	Workers int

	// FlatListing disables recursion into sub-folders during discovery.
	FlatListing bool
}

// NewIndexer creates an indexing orchestrator. The LLM service and run
// store are optional; passing nil disables summarisation and run
// persistence respectively.
func NewIndexer(
	source driven.DocumentSource,
	extractors driven.ExtractorRegistry,
	embedder driven.EmbeddingService,
	llm driven.LLMService,
	store driven.VectorStore,
	runStore driven.RunStore,
	chunker *Chunker,
	cfg IndexerConfig,
) *Indexer {
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	if chunker == nil {
		chunker = NewChunker()
	}

	return &Indexer{
		source:     source,
		extractors: extractors,
		embedder:   embedder,
		store:      store,
		summariser: NewSummariser(llm),
		chunker:    chunker,
		runStore:   runStore,
		collection: cfg.Collection,
		workers:    cfg.Workers,
		recursive:  !cfg.FlatListing,
	}
}

// outcome is one document pipeline's completion event, sent to the
// stats collector.
type outcome struct {
	name   string
	chunks int
	err    error
}

// Run indexes every indexable document under folderID.
//
//nolint:gocognit // Orchestration function coordinating discovery, fan-out and collection
func (ix *Indexer) Run(ctx context.Context, folderID string) (*domain.RunStats, error) {
	started := time.Now()

	// 1. DISCOVER all indexable documents
	docs, err := ix.source.List(ctx, folderID, ix.recursive)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	logger.Info("Found %d indexable documents in %s", len(docs), folderID)

	// 2. BUILD the corpus hierarchy once; read-only from here on
	hierarchy := BuildHierarchy(docs)

	// 3. ENSURE the target collection exists with matching dimensionality
	if err := ix.store.EnsureCollection(ctx, ix.collection, ix.embedder.Dimensions()); err != nil {
		return nil, fmt.Errorf("ensure collection: %w", err)
	}

	// 4. FAN OUT one pipeline per document under the worker cap.
	// Completion events flow to a single collector goroutine, which
	// owns the statistics - no shared mutable state, no locks.
	outcomes := make(chan outcome)
	statsDone := make(chan domain.RunStats)
	go collectStats(len(docs), outcomes, statsDone)

	sem := semaphore.NewWeighted(int64(ix.workers))
	var wg sync.WaitGroup

	for i, doc := range docs {
		if err := sem.Acquire(ctx, 1); err != nil {
			// Context cancelled: report the remaining documents as failed
			for _, rest := range docs[i:] {
				outcomes <- outcome{name: rest.Name, err: err}
			}
			break
		}

		wg.Add(1)
		go func(i int, doc domain.DocumentInfo) {
			defer wg.Done()
			defer sem.Release(1)

			logger.Info("[%d/%d] Processing: %s", i+1, len(docs), doc.Name)
			chunks, err := ix.processDocument(ctx, doc, hierarchy)
			if err != nil {
				logger.Warn("[%d/%d] Failed %s: %v", i+1, len(docs), doc.Name, err)
			}
			outcomes <- outcome{name: doc.Name, chunks: chunks, err: err}
		}(i, doc)
	}

	wg.Wait()
	close(outcomes)

	stats := <-statsDone
	stats.TotalTime = time.Since(started)

	ix.report(&stats)

	// 5. PERSIST the run record (optional)
	if ix.runStore != nil {
		rec := driven.RunRecord{FolderID: folderID, StartedAt: started, Stats: stats}
		if _, err := ix.runStore.SaveRun(ctx, rec); err != nil {
			logger.Warn("Failed to save run record: %v", err)
		}
	}

	return &stats, nil
}

// collectStats owns the run statistics. It consumes completion events
// until the channel closes, then hands the accumulated stats out.
func collectStats(total int, outcomes <-chan outcome, done chan<- domain.RunStats) {
	stats := domain.RunStats{TotalDocuments: total}
	for o := range outcomes {
		if o.err != nil {
			stats.Failed++
			stats.Errors = append(stats.Errors, fmt.Sprintf("%s: %v", o.name, o.err))
			continue
		}
		stats.Processed++
		stats.TotalChunks += o.chunks
	}
	done <- stats
}

// processDocument drives one document through the full pipeline:
// fetch, extract, summarise, chunk, then per chunk enrich, embed and
// upsert. Any step's error fails the document as a whole; a chunk-level
// embedding or upsert failure deliberately fails the document rather
// than dropping the chunk.
func (ix *Indexer) processDocument(ctx context.Context, doc domain.DocumentInfo, hierarchy Hierarchy) (int, error) {
	// FETCH
	content, err := ix.source.Fetch(ctx, doc.ID)
	if err != nil {
		return 0, fmt.Errorf("fetch: %w", err)
	}

	// EXTRACT
	extractor, err := ix.extractors.ForDocument(doc)
	if err != nil {
		return 0, fmt.Errorf("select extractor: %w", err)
	}
	text, structure, err := extractor.Extract(ctx, content)
	if err != nil {
		return 0, fmt.Errorf("extract: %w", err)
	}

	// Empty text is not an error: scanned PDFs and blank documents
	// contribute zero chunks and still count as processed.
	if strings.TrimSpace(text) == "" {
		logger.Debug("No text extracted from %s", doc.Name)
		return 0, nil
	}

	// SUMMARISE (degrades to empty on failure, never fails the document)
	summary := ix.summariser.Summarise(ctx, text, doc.Name)

	// CHUNK
	chunks := ix.chunker.Chunk(text, structure, doc, summary)

	// ENRICH + EMBED + UPSERT, in chunk-index order
	for i, chunk := range chunks {
		contextual := Contextualise(chunk, doc, summary, hierarchy)

		vector, err := ix.embedder.Embed(ctx, contextual)
		if err != nil {
			return 0, fmt.Errorf("embed chunk %d: %w: %w", i, domain.ErrEmbeddingFailed, err)
		}

		chunkID := ChunkID(doc.ID, i, chunk.Text)
		point := driven.Point{
			ID:      PointID(chunkID),
			ChunkID: chunkID,
			Vector:  vector,
			// Display text is the verbatim chunk, never the contextual variant
			Text:    chunk.Text,
			Payload: chunkPayload(doc, chunk, i, len(chunks), summary),
		}

		if err := ix.store.Upsert(ctx, ix.collection, []driven.Point{point}); err != nil {
			return 0, fmt.Errorf("upsert chunk %d: %w: %w", i, domain.ErrUpsertFailed, err)
		}
	}

	return len(chunks), nil
}

// chunkPayload builds the metadata stored alongside a chunk's vector.
func chunkPayload(doc domain.DocumentInfo, chunk domain.Chunk, index, total int, summary string) map[string]any {
	return map[string]any{
		"document_id":   doc.ID,
		"document_name": doc.Name,
		"path":          doc.Path,
		"parent_folder": doc.Folder(),
		"chunk_index":   index,
		"total_chunks":  total,
		"section":       chunk.Section,
		"subsection":    chunk.Subsection,
		"chunk_type":    chunk.Type,
		"chunk_size":    len(chunk.Text),
		"mime_type":     doc.MIMEType,
		"modified_time": doc.ModifiedTime.Format(time.RFC3339),
		"doc_summary":   truncate(summary, summaryPreambleLimit),
		"chunk_summary": chunk.Summary,
		"tags":          strings.Join(chunk.Tags, ","),
		"confidence":    chunk.Confidence,
	}
}

// RecreateCollection drops and recreates the target collection. This is
// the explicit escape hatch for dimensionality changes and for clearing
// entries orphaned by content changes.
func (ix *Indexer) RecreateCollection(ctx context.Context) error {
	if err := ix.store.DeleteCollection(ctx, ix.collection); err != nil {
		return fmt.Errorf("delete collection: %w", err)
	}
	if err := ix.store.EnsureCollection(ctx, ix.collection, ix.embedder.Dimensions()); err != nil {
		return fmt.Errorf("recreate collection: %w", err)
	}
	logger.Info("Recreated collection %s", ix.collection)
	return nil
}

// report logs the run summary.
func (ix *Indexer) report(stats *domain.RunStats) {
	logger.Section("Indexing complete")
	logger.Info("Documents processed: %d/%d", stats.Processed, stats.TotalDocuments)
	logger.Info("Failed: %d", stats.Failed)
	logger.Info("Total chunks: %d", stats.TotalChunks)
	logger.Info("Total time: %.1fs", stats.TotalTime.Seconds())
	if stats.Processed > 0 {
		logger.Info("Average per document: %.1fs", stats.AveragePerDocument().Seconds())
		logger.Info("Throughput: %.1f chunks/second", stats.Throughput())
	}
	for i, msg := range stats.Errors {
		if i == 3 {
			logger.Info("... and %d more errors", len(stats.Errors)-3)
			break
		}
		logger.Info("Error: %s", msg)
	}
}
