package services

import (
	"context"
	"strings"
	"sync"

	"github.com/halcyon-labs/docindexer/internal/core/domain"
	"github.com/halcyon-labs/docindexer/internal/core/ports/driven"
)

// Test doubles for the driven ports. Hand-rolled rather than generated:
// the interfaces are small and the tests care about call recording.

type mockSource struct {
	docs     []domain.DocumentInfo
	listErr  error
	content  map[string][]byte
	fetchErr map[string]error

	mu            sync.Mutex
	lastRecursive bool
}

func (m *mockSource) List(_ context.Context, _ string, recursive bool) ([]domain.DocumentInfo, error) {
	m.mu.Lock()
	m.lastRecursive = recursive
	m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.docs, nil
}

func (m *mockSource) Fetch(_ context.Context, documentID string) ([]byte, error) {
	if err := m.fetchErr[documentID]; err != nil {
		return nil, err
	}
	return m.content[documentID], nil
}

type mockExtractor struct {
	text      string
	structure *domain.Structure
	err       error
}

func (m *mockExtractor) Kind() domain.Kind { return domain.KindWord }
func (m *mockExtractor) SupportedMIMETypes() []string { return []string{domain.MIMEWord} }
func (m *mockExtractor) Extract(_ context.Context, content []byte) (string, *domain.Structure, error) {
	if m.err != nil {
		return "", nil, m.err
	}
	if m.text != "" {
		return m.text, m.structure, nil
	}
	return string(content), m.structure, nil
}

// mockRegistry returns one extractor per document ID, falling back to
// a default extractor echoing the fetched bytes.
type mockRegistry struct {
	byID     map[string]driven.Extractor
	fallback driven.Extractor
	err      error
}

func (m *mockRegistry) ForDocument(doc domain.DocumentInfo) (driven.Extractor, error) {
	if m.err != nil {
		return nil, m.err
	}
	if ex, ok := m.byID[doc.ID]; ok {
		return ex, nil
	}
	if m.fallback != nil {
		return m.fallback, nil
	}
	return &mockExtractor{}, nil
}

type mockEmbedder struct {
	dims  int
	err   error
	errOn string // fail when the embedded text contains this substring

	mu     sync.Mutex
	inputs []string
}

func (m *mockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	m.mu.Lock()
	m.inputs = append(m.inputs, text)
	m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if m.errOn != "" && strings.Contains(text, m.errOn) {
		return nil, domain.ErrEmbeddingFailed
	}
	return make([]float32, m.Dimensions()), nil
}

func (m *mockEmbedder) Dimensions() int {
	if m.dims == 0 {
		return 4
	}
	return m.dims
}

func (m *mockEmbedder) ModelName() string { return "mock-embed" }
func (m *mockEmbedder) Ping(_ context.Context) error { return nil }
func (m *mockEmbedder) Close() error { return nil }

type mockLLM struct {
	response string
	err      error

	mu         sync.Mutex
	prompts    []string
	summarised []string
	maxLengths []int
}

func (m *mockLLM) Generate(_ context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func (m *mockLLM) Summarise(_ context.Context, content string, maxLength int) (string, error) {
	m.mu.Lock()
	m.summarised = append(m.summarised, content)
	m.maxLengths = append(m.maxLengths, maxLength)
	m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func (m *mockLLM) ModelName() string            { return "mock-llm" }
func (m *mockLLM) Ping(_ context.Context) error { return nil }
func (m *mockLLM) Close() error                 { return nil }

type mockStore struct {
	ensureErr error
	upsertErr error
	deleteErr error

	mu          sync.Mutex
	ensured     []string
	ensuredDims []int
	deleted     []string
	points      []driven.Point
}

func (m *mockStore) EnsureCollection(_ context.Context, collection string, dims int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ensureErr != nil {
		return m.ensureErr
	}
	m.ensured = append(m.ensured, collection)
	m.ensuredDims = append(m.ensuredDims, dims)
	return nil
}

func (m *mockStore) Upsert(_ context.Context, _ string, points []driven.Point) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.points = append(m.points, points...)
	return nil
}

func (m *mockStore) DeleteCollection(_ context.Context, collection string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = append(m.deleted, collection)
	return nil
}

func (m *mockStore) Count(_ context.Context, _ string) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return uint64(len(m.points)), nil
}

func (m *mockStore) Close() error { return nil }

func (m *mockStore) pointCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.points)
}

type mockRunStore struct {
	mu    sync.Mutex
	saved []driven.RunRecord
}

func (m *mockRunStore) SaveRun(_ context.Context, rec driven.RunRecord) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = append(m.saved, rec)
	return int64(len(m.saved)), nil
}

func (m *mockRunStore) ListRuns(_ context.Context, _ int) ([]driven.RunRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saved, nil
}

func (m *mockRunStore) Close() error { return nil }
