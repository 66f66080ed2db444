package orchestrator

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/brandpulse/creatorsearch/internal/domain"
	"github.com/brandpulse/creatorsearch/internal/domain/creator"
	"github.com/brandpulse/creatorsearch/internal/domain/search/filter"
	"github.com/brandpulse/creatorsearch/internal/domain/search/query"
	"github.com/brandpulse/creatorsearch/internal/domain/search/result"
	"github.com/brandpulse/creatorsearch/internal/usecase/vectorsearch"
)

type mockAnalyzer struct {
	analysis query.Analysis
	calls    int
}

func (m *mockAnalyzer) Analyze(_ context.Context, _ string) query.Analysis {
	m.calls++
	return m.analysis
}

type mockVector struct {
	mu sync.Mutex

	semantic      vectorsearch.Result
	semanticErr   error
	semanticCalls int

	similar       vectorsearch.Result
	similarErr    error
	similarCalls  int
	lastSimilarID string

	aspect      vectorsearch.Result
	aspectErr   error
	aspectCalls int
	lastAspect  string
}

func (m *mockVector) Semantic(_ context.Context, _ string, _ vectorsearch.Options) (vectorsearch.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.semanticCalls++
	return m.semantic, m.semanticErr
}

func (m *mockVector) FindSimilar(_ context.Context, creatorID string, _ vectorsearch.SimilarOptions) (vectorsearch.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.similarCalls++
	m.lastSimilarID = creatorID
	return m.similar, m.similarErr
}

func (m *mockVector) ByAudience(_ context.Context, aspect string, _ vectorsearch.Options) (vectorsearch.Result, error) {
	return m.aspectCall(aspect)
}

func (m *mockVector) ByContentStyle(_ context.Context, aspect string, _ vectorsearch.Options) (vectorsearch.Result, error) {
	return m.aspectCall(aspect)
}

func (m *mockVector) ByBrandHistory(_ context.Context, aspect string, _ vectorsearch.Options) (vectorsearch.Result, error) {
	return m.aspectCall(aspect)
}

func (m *mockVector) aspectCall(aspect string) (vectorsearch.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.aspectCalls++
	m.lastAspect = aspect
	return m.aspect, m.aspectErr
}

type mockStore struct {
	mu sync.Mutex

	creators  map[string]creator.Creator
	getCalls  int
	byName    creator.Creator
	byNameErr error

	textMatches []result.Match
	textErr     error
	textCalls   int
}

func (m *mockStore) GetByID(_ context.Context, id string) (creator.Creator, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getCalls++
	c, ok := m.creators[id]
	if !ok {
		return creator.Creator{}, errNotFound(id)
	}
	return c, nil
}

func (m *mockStore) SearchByName(_ context.Context, _ string) (creator.Creator, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.byName, m.byNameErr
}

func (m *mockStore) SearchByText(_ context.Context, _ string, _ filter.Set, _ int) ([]result.Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.textCalls++
	return m.textMatches, m.textErr
}

func (m *mockStore) backendCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getCalls + m.textCalls
}

func errNotFound(id string) error {
	return fmt.Errorf("creator %s: %w", id, domain.ErrCreatorNotFound)
}

func testCreator(id string) creator.Creator {
	return creator.Reconstruct(
		id, "Creator "+id, "tech_gaming", "macro", "youtube", "us", "bio",
		250_000, 4.2, 800, 4.5, 12,
	)
}

func storeWith(ids ...string) *mockStore {
	creators := make(map[string]creator.Creator, len(ids))
	for _, id := range ids {
		creators[id] = testCreator(id)
	}
	return &mockStore{creators: creators}
}

func newTestService(t *testing.T, analyzer *mockAnalyzer, vector *mockVector, store *mockStore) *Service {
	t.Helper()
	return New(analyzer, vector, store, Config{}, zap.NewNop())
}
