package vectorsearch

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/brandpulse/creatorsearch/internal/domain"
	"github.com/brandpulse/creatorsearch/internal/domain/search/filter"
	"github.com/brandpulse/creatorsearch/internal/domain/search/result"
)

type mockIndex struct {
	matches   []result.Match
	total     int
	queryErr  error
	vector    []float32
	vectorErr error

	lastVector []float32
	lastTopK   int
}

func (m *mockIndex) Query(
	_ context.Context, vector []float32, _ filter.Set, topK int,
) ([]result.Match, int, error) {
	m.lastVector = vector
	m.lastTopK = topK
	if m.queryErr != nil {
		return nil, 0, m.queryErr
	}
	return m.matches, m.total, nil
}

func (m *mockIndex) FetchVector(_ context.Context, _ string) ([]float32, error) {
	return m.vector, m.vectorErr
}

type mockEmbedder struct {
	result   domain.EmbeddingResult
	err      error
	lastText string
}

func (m *mockEmbedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	m.lastText = text
	return m.result, m.err
}

func TestSemantic_AppliesMinScoreCutoff(t *testing.T) {
	idx := &mockIndex{
		matches: []result.Match{
			result.NewMatch("creator_1", 0.9, nil),
			result.NewMatch("creator_2", 0.21, nil),
			result.NewMatch("creator_3", 0.1, nil),
		},
		total: 3,
	}
	emb := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{0.1, 0.2}}}
	svc := New(idx, emb)

	res, err := svc.Semantic(context.Background(), "gaming creators", Options{TopK: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Matches) != 2 {
		t.Fatalf("expected 2 matches above default cutoff, got %d", len(res.Matches))
	}
	for _, m := range res.Matches {
		if m.Score() < DefaultMinScore {
			t.Errorf("match %s below cutoff: %v", m.CreatorID(), m.Score())
		}
	}
	if res.Total != 3 {
		t.Errorf("expected raw total 3, got %d", res.Total)
	}
}

func TestSemantic_NegativeMinScoreDisablesCutoff(t *testing.T) {
	idx := &mockIndex{
		matches: []result.Match{result.NewMatch("creator_1", 0.05, nil)},
		total:   1,
	}
	emb := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{0.1}}}
	svc := New(idx, emb)

	res, err := svc.Semantic(context.Background(), "anyone", Options{MinScore: -1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Matches) != 1 {
		t.Fatalf("expected cutoff disabled, got %d matches", len(res.Matches))
	}
}

func TestSemantic_EmbedErrorPropagates(t *testing.T) {
	svc := New(&mockIndex{}, &mockEmbedder{err: errors.New("provider down")})

	_, err := svc.Semantic(context.Background(), "gaming creators", Options{})
	if err == nil {
		t.Fatal("expected error from embedder")
	}
}

func TestFindSimilar_ExcludesReferenceCreator(t *testing.T) {
	idx := &mockIndex{
		vector: []float32{0.1, 0.2},
		matches: []result.Match{
			result.NewMatch("creator_42", 1.0, nil),
			result.NewMatch("creator_7", 0.8, nil),
			result.NewMatch("creator_9", 0.7, nil),
		},
		total: 3,
	}
	svc := New(idx, &mockEmbedder{})

	res, err := svc.FindSimilar(context.Background(), "creator_42", SimilarOptions{
		Options: Options{TopK: 2},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, m := range res.Matches {
		if m.CreatorID() == "creator_42" {
			t.Fatal("reference creator must not appear in its own results")
		}
	}
	if len(res.Matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(res.Matches))
	}
	if idx.lastTopK != 3 {
		t.Errorf("expected over-fetch of topK+1=3, got %d", idx.lastTopK)
	}
}

func TestFindSimilar_IncludeOriginal(t *testing.T) {
	idx := &mockIndex{
		vector: []float32{0.1},
		matches: []result.Match{
			result.NewMatch("creator_42", 1.0, nil),
			result.NewMatch("creator_7", 0.8, nil),
		},
		total: 2,
	}
	svc := New(idx, &mockEmbedder{})

	res, err := svc.FindSimilar(context.Background(), "creator_42", SimilarOptions{
		Options:         Options{TopK: 5},
		IncludeOriginal: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Matches) != 2 || res.Matches[0].CreatorID() != "creator_42" {
		t.Fatalf("expected reference creator kept, got %v", res.Matches)
	}
}

func TestFindSimilar_NotIndexed(t *testing.T) {
	idx := &mockIndex{vectorErr: domain.ErrCreatorNotIndexed}
	svc := New(idx, &mockEmbedder{})

	_, err := svc.FindSimilar(context.Background(), "creator_404", SimilarOptions{})
	if !errors.Is(err, domain.ErrCreatorNotIndexed) {
		t.Fatalf("expected ErrCreatorNotIndexed, got %v", err)
	}
}

func TestAspectVariants_BuildSyntheticQueries(t *testing.T) {
	idx := &mockIndex{}
	emb := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{0.1}}}
	svc := New(idx, emb)
	ctx := context.Background()

	if _, err := svc.ByAudience(ctx, "young athletes", Options{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(emb.lastText, "audience is young athletes") {
		t.Errorf("unexpected audience query: %q", emb.lastText)
	}

	if _, err := svc.ByContentStyle(ctx, "short-form comedy", Options{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(emb.lastText, "short-form comedy content") {
		t.Errorf("unexpected content style query: %q", emb.lastText)
	}

	if _, err := svc.ByBrandHistory(ctx, "sportswear", Options{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(emb.lastText, "brand collaboration experience in sportswear") {
		t.Errorf("unexpected brand history query: %q", emb.lastText)
	}
}
