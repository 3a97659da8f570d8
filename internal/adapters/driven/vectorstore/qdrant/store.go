// Package qdrant provides a vector store adapter using Qdrant over gRPC.
package qdrant

import (
	"context"
	"fmt"
	"time"

	"github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	"github.com/halcyon-labs/docindexer/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// Default configuration values.
const (
	DefaultHost           = "localhost"
	DefaultPort           = 6334
	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxMessageSize = 32 * 1024 * 1024
)

// Config holds configuration for the Qdrant vector store.
type Config struct {
	// Host is the Qdrant server host (default: localhost).
	Host string

	// Port is the Qdrant gRPC port (default: 6334).
	Port int

	// APIKey authenticates against managed Qdrant deployments.
	APIKey string

	// UseTLS enables TLS on the gRPC connection.
	UseTLS bool

	// RequestTimeout bounds each store operation (default: 30s).
	RequestTimeout time.Duration
}

// Store persists indexed chunk entries in Qdrant.
type Store struct {
	client  *qdrant.Client
	timeout time.Duration
}

// NewStore creates a Qdrant-backed vector store and verifies
// connectivity with a health check.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}

	qdrantConfig := &qdrant.Config{
		Host:   cfg.Host,
		Port:   cfg.Port,
		UseTLS: cfg.UseTLS,
		APIKey: cfg.APIKey,
		GrpcOptions: []grpc.DialOption{
			grpc.WithDefaultCallOptions(
				grpc.MaxCallRecvMsgSize(DefaultMaxMessageSize),
				grpc.MaxCallSendMsgSize(DefaultMaxMessageSize),
			),
		},
	}

	// For non-TLS connections, explicitly set insecure credentials
	if !cfg.UseTLS {
		qdrantConfig.GrpcOptions = append(qdrantConfig.GrpcOptions,
			grpc.WithTransportCredentials(insecure.NewCredentials()),
		)
	}

	client, err := qdrant.NewClient(qdrantConfig)
	if err != nil {
		return nil, fmt.Errorf("create qdrant client: %w", err)
	}

	store := &Store{client: client, timeout: cfg.RequestTimeout}

	healthCtx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout)
	defer cancel()
	if _, err := client.HealthCheck(healthCtx); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("qdrant health check: %w", err)
	}

	return store, nil
}

// EnsureCollection creates the collection if it does not exist,
// configured for cosine similarity at the given dimensionality. An
// existing collection with a different dimensionality is an error;
// nothing is migrated implicitly.
func (s *Store) EnsureCollection(ctx context.Context, collection string, dims int) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	info, err := s.collectionInfo(ctx, collection)
	if err != nil {
		return fmt.Errorf("check collection %q: %w", collection, err)
	}
	if info != nil {
		size := info.GetConfig().GetParams().GetVectorsConfig().GetParams().GetSize()
		if size != 0 && size != uint64(dims) {
			return fmt.Errorf("collection %q holds %d-dimensional vectors, embedding model produces %d: recreate the collection",
				collection, size, dims)
		}
		return nil
	}

	err = s.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: collection,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     uint64(dims),
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("create collection %q: %w", collection, err)
	}
	return nil
}

// Upsert writes points, overwriting entries with identical IDs. Safe
// for concurrent callers.
func (s *Store) Upsert(ctx context.Context, collection string, points []driven.Point) error {
	if len(points) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	qdrantPoints := make([]*qdrant.PointStruct, len(points))
	for i, point := range points {
		qdrantPoints[i] = &qdrant.PointStruct{
			Id:      qdrant.NewIDUUID(point.ID),
			Vectors: qdrant.NewVectors(point.Vector...),
			Payload: convertPayload(point),
		}
	}

	_, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: collection,
		Points:         qdrantPoints,
	})
	if err != nil {
		return fmt.Errorf("upsert %d points into %q: %w", len(points), collection, err)
	}
	return nil
}

// DeleteCollection drops a collection and all its entries.
func (s *Store) DeleteCollection(ctx context.Context, collection string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.client.DeleteCollection(ctx, collection); err != nil {
		return fmt.Errorf("delete collection %q: %w", collection, err)
	}
	return nil
}

// Count returns the number of points in a collection.
func (s *Store) Count(ctx context.Context, collection string) (uint64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	exact := true
	count, err := s.client.Count(ctx, &qdrant.CountPoints{
		CollectionName: collection,
		Exact:          &exact,
	})
	if err != nil {
		return 0, fmt.Errorf("count collection %q: %w", collection, err)
	}
	return count, nil
}

// Close releases the client connection.
func (s *Store) Close() error {
	return s.client.Close()
}

// collectionInfo returns the collection's metadata, or nil when the
// collection does not exist.
func (s *Store) collectionInfo(ctx context.Context, collection string) (*qdrant.CollectionInfo, error) {
	info, err := s.client.GetCollectionInfo(ctx, collection)
	if err != nil {
		if st, ok := status.FromError(err); ok && st.Code() == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}
	return info, nil
}

// convertPayload maps the point's metadata into Qdrant payload values.
// The verbatim chunk text and the content-addressed chunk id always
// ride along so search results are self-describing.
func convertPayload(point driven.Point) map[string]*qdrant.Value {
	payload := make(map[string]*qdrant.Value, len(point.Payload)+2)
	payload["text"] = &qdrant.Value{Kind: &qdrant.Value_StringValue{StringValue: point.Text}}
	payload["chunk_id"] = &qdrant.Value{Kind: &qdrant.Value_StringValue{StringValue: point.ChunkID}}

	for key, value := range point.Payload {
		payload[key] = convertValue(value)
	}
	return payload
}

func convertValue(value any) *qdrant.Value {
	switch v := value.(type) {
	case string:
		return &qdrant.Value{Kind: &qdrant.Value_StringValue{StringValue: v}}
	case int:
		return &qdrant.Value{Kind: &qdrant.Value_IntegerValue{IntegerValue: int64(v)}}
	case int64:
		return &qdrant.Value{Kind: &qdrant.Value_IntegerValue{IntegerValue: v}}
	case float64:
		return &qdrant.Value{Kind: &qdrant.Value_DoubleValue{DoubleValue: v}}
	case float32:
		return &qdrant.Value{Kind: &qdrant.Value_DoubleValue{DoubleValue: float64(v)}}
	case bool:
		return &qdrant.Value{Kind: &qdrant.Value_BoolValue{BoolValue: v}}
	default:
		return &qdrant.Value{Kind: &qdrant.Value_StringValue{StringValue: fmt.Sprintf("%v", v)}}
	}
}
