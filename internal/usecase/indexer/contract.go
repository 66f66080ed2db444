package indexer

import (
	"context"

	"github.com/brandpulse/creatorsearch/internal/domain"
	"github.com/brandpulse/creatorsearch/internal/domain/creator"
)

// Index is the write side of the creator vector index.
type Index interface {
	EnsureIndex(ctx context.Context) error
	Upsert(ctx context.Context, c *creator.Creator, vector []float32) error
	Delete(ctx context.Context, creatorID string) error
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
