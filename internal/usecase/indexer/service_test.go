package indexer

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/brandpulse/creatorsearch/internal/domain"
	"github.com/brandpulse/creatorsearch/internal/domain/creator"
)

type mockIndex struct {
	upsertErr  error
	deleteErr  error
	lastVector []float32
	lastID     string
}

func (m *mockIndex) EnsureIndex(_ context.Context) error { return nil }

func (m *mockIndex) Upsert(_ context.Context, c *creator.Creator, vector []float32) error {
	m.lastID = c.ID()
	m.lastVector = vector
	return m.upsertErr
}

func (m *mockIndex) Delete(_ context.Context, creatorID string) error {
	m.lastID = creatorID
	return m.deleteErr
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

func testCreator() creator.Creator {
	return creator.Reconstruct(
		"creator_1", "PixelPete", "tech_gaming", "macro", "youtube", "us",
		"Let's-play and hardware reviews",
		250_000, 4.2, 800, 4.5, 12,
	)
}

func TestUpsert_EmbedsProfileText(t *testing.T) {
	idx := &mockIndex{}
	emb := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{0.1, 0.2}}}
	svc := New(idx, emb, zap.NewNop())

	c := testCreator()
	if err := svc.Upsert(context.Background(), &c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if emb.lastText != c.ProfileText() {
		t.Errorf("expected profile text embedded, got %q", emb.lastText)
	}
	if idx.lastID != "creator_1" || len(idx.lastVector) != 2 {
		t.Errorf("unexpected upsert: id=%q vector=%v", idx.lastID, idx.lastVector)
	}
}

func TestUpsert_EmbedErrorPropagates(t *testing.T) {
	svc := New(&mockIndex{}, &mockEmbedder{err: errors.New("provider down")}, zap.NewNop())

	c := testCreator()
	if err := svc.Upsert(context.Background(), &c); err == nil {
		t.Fatal("expected error from embedder")
	}
}

func TestUpsert_IndexErrorPropagates(t *testing.T) {
	idx := &mockIndex{upsertErr: errors.New("index down")}
	emb := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{0.1}}}
	svc := New(idx, emb, zap.NewNop())

	c := testCreator()
	if err := svc.Upsert(context.Background(), &c); err == nil {
		t.Fatal("expected error from index")
	}
}

func TestDelete(t *testing.T) {
	idx := &mockIndex{}
	svc := New(idx, &mockEmbedder{}, zap.NewNop())

	if err := svc.Delete(context.Background(), "creator_1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx.lastID != "creator_1" {
		t.Errorf("expected delete of creator_1, got %q", idx.lastID)
	}
}
