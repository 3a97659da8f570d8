package cli

import (
	"context"
	"fmt"

	"github.com/halcyon-labs/docindexer/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/halcyon-labs/docindexer/internal/adapters/driven/embedding/openai"
	"github.com/halcyon-labs/docindexer/internal/adapters/driven/llm/anthropic"
	ollamallm "github.com/halcyon-labs/docindexer/internal/adapters/driven/llm/ollama"
	openaillm "github.com/halcyon-labs/docindexer/internal/adapters/driven/llm/openai"
	"github.com/halcyon-labs/docindexer/internal/adapters/driven/storage/sqlite"
	"github.com/halcyon-labs/docindexer/internal/adapters/driven/vectorstore/qdrant"
	"github.com/halcyon-labs/docindexer/internal/connectors/google/drive"
	"github.com/halcyon-labs/docindexer/internal/core/ports/driven"
	"github.com/halcyon-labs/docindexer/internal/core/services"
	"github.com/halcyon-labs/docindexer/internal/extractors"
	"github.com/halcyon-labs/docindexer/internal/logger"
)

// pipeline bundles the wired services behind the indexer, so commands
// can close what they opened.
type pipeline struct {
	indexer  *services.Indexer
	embedder driven.EmbeddingService
	llm      driven.LLMService
	store    driven.VectorStore
	runStore driven.RunStore
}

// Close releases the pipeline's connections.
func (p *pipeline) Close() {
	if p.llm != nil {
		_ = p.llm.Close()
	}
	if p.embedder != nil {
		_ = p.embedder.Close()
	}
	if p.store != nil {
		_ = p.store.Close()
	}
	if p.runStore != nil {
		_ = p.runStore.Close()
	}
}

// buildPipeline wires the full indexing stack from configuration and
// verifies the embedding service is reachable before committing to a
// run. The LLM is optional: if it is unconfigured or unreachable, the
// run proceeds without summaries.
func buildPipeline(ctx context.Context) (*pipeline, error) {
	source, err := drive.NewSource(ctx, drive.Config{
		CredentialsFile: cfg.Drive.CredentialsFile,
	})
	if err != nil {
		return nil, fmt.Errorf("configure drive source: %w", err)
	}

	embedder, err := buildEmbedder()
	if err != nil {
		return nil, err
	}
	if err := embedder.Ping(ctx); err != nil {
		_ = embedder.Close()
		return nil, fmt.Errorf("embedding service unavailable: %w", err)
	}

	llm := buildLLM(ctx)

	store, err := qdrant.NewStore(ctx, qdrant.Config{
		Host:   cfg.Qdrant.Host,
		Port:   cfg.Qdrant.Port,
		APIKey: cfg.Qdrant.APIKey,
		UseTLS: cfg.Qdrant.UseTLS,
	})
	if err != nil {
		_ = embedder.Close()
		return nil, fmt.Errorf("connect to qdrant: %w", err)
	}

	runStore, err := sqlite.NewStore(cfg.Storage.DataDir)
	if err != nil {
		logger.Warn("Run ledger unavailable, continuing without it: %v", err)
		runStore = nil
	}

	var chunkerOpts []services.ChunkerOption
	if cfg.Indexer.ChunkSize > 0 {
		chunkerOpts = append(chunkerOpts, services.WithChunkSize(cfg.Indexer.ChunkSize))
	}
	if cfg.Indexer.ChunkOverlap > 0 {
		chunkerOpts = append(chunkerOpts, services.WithOverlap(cfg.Indexer.ChunkOverlap))
	}

	indexer := services.NewIndexer(
		source,
		extractors.NewDefaultRegistry(),
		embedder,
		llm,
		store,
		runStoreOrNil(runStore),
		services.NewChunker(chunkerOpts...),
		services.IndexerConfig{
			Collection:  cfg.Indexer.Collection,
			Workers:     cfg.Indexer.Workers,
			FlatListing: !cfg.Drive.Recursive,
		},
	)

	return &pipeline{
		indexer:  indexer,
		embedder: embedder,
		llm:      llm,
		store:    store,
		runStore: runStoreOrNil(runStore),
	}, nil
}

// runStoreOrNil avoids handing the indexer a typed nil.
func runStoreOrNil(store *sqlite.Store) driven.RunStore {
	if store == nil {
		return nil
	}
	return store
}

func buildEmbedder() (driven.EmbeddingService, error) {
	switch cfg.Embedding.Provider {
	case "", "ollama":
		return ollama.NewEmbeddingService(ollama.Config{
			BaseURL:    cfg.Embedding.BaseURL,
			Model:      cfg.Embedding.Model,
			Dimensions: cfg.Embedding.Dimensions,
		}), nil
	case "openai":
		return openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:     cfg.Embedding.APIKey,
			BaseURL:    cfg.Embedding.BaseURL,
			Model:      cfg.Embedding.Model,
			Dimensions: cfg.Embedding.Dimensions,
		})
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Embedding.Provider)
	}
}

// buildLLM constructs the summarisation service, or returns nil when
// none is configured or the configured one is unreachable.
func buildLLM(ctx context.Context) driven.LLMService {
	var (
		llm driven.LLMService
		err error
	)

	switch cfg.LLM.Provider {
	case "":
		return nil
	case "ollama":
		llm = ollamallm.NewLLMService(ollamallm.LLMConfig{
			BaseURL: cfg.LLM.BaseURL,
			Model:   cfg.LLM.Model,
		})
	case "openai":
		llm, err = openaillm.NewLLMService(openaillm.LLMConfig{
			APIKey:  cfg.LLM.APIKey,
			BaseURL: cfg.LLM.BaseURL,
			Model:   cfg.LLM.Model,
		})
	case "anthropic":
		llm, err = anthropic.NewLLMService(anthropic.Config{
			APIKey:  cfg.LLM.APIKey,
			BaseURL: cfg.LLM.BaseURL,
			Model:   cfg.LLM.Model,
		})
	default:
		logger.Warn("Unknown LLM provider %q, indexing without summaries", cfg.LLM.Provider)
		return nil
	}
	if err != nil {
		logger.Warn("LLM misconfigured, indexing without summaries: %v", err)
		return nil
	}

	if err := llm.Ping(ctx); err != nil {
		logger.Warn("LLM unavailable, indexing without summaries: %v", err)
		_ = llm.Close()
		return nil
	}
	return llm
}
