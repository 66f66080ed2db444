package vectorsearch

import (
	"context"

	"github.com/brandpulse/creatorsearch/internal/domain"
	"github.com/brandpulse/creatorsearch/internal/domain/search/filter"
	"github.com/brandpulse/creatorsearch/internal/domain/search/result"
)

// Index is the storage contract for creator similarity queries.
type Index interface {
	Query(
		ctx context.Context, vector []float32, filters filter.Set, topK int,
	) ([]result.Match, int, error)

	FetchVector(ctx context.Context, creatorID string) ([]float32, error)
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
