package orchestrator

import (
	"context"

	"github.com/brandpulse/creatorsearch/internal/domain/creator"
	"github.com/brandpulse/creatorsearch/internal/domain/search/filter"
	"github.com/brandpulse/creatorsearch/internal/domain/search/query"
	"github.com/brandpulse/creatorsearch/internal/domain/search/result"
	"github.com/brandpulse/creatorsearch/internal/usecase/vectorsearch"
)

// QueryAnalyzer derives intent and filters from the raw query text.
type QueryAnalyzer interface {
	Analyze(ctx context.Context, rawQuery string) query.Analysis
}

// VectorSearcher runs embedding-based creator queries.
type VectorSearcher interface {
	Semantic(ctx context.Context, queryText string, opts vectorsearch.Options) (vectorsearch.Result, error)
	FindSimilar(ctx context.Context, creatorID string, opts vectorsearch.SimilarOptions) (vectorsearch.Result, error)
	ByAudience(ctx context.Context, audience string, opts vectorsearch.Options) (vectorsearch.Result, error)
	ByContentStyle(ctx context.Context, style string, opts vectorsearch.Options) (vectorsearch.Result, error)
	ByBrandHistory(ctx context.Context, history string, opts vectorsearch.Options) (vectorsearch.Result, error)
}

// CreatorStore is the relational side of hybrid search and enrichment.
type CreatorStore interface {
	GetByID(ctx context.Context, id string) (creator.Creator, error)
	SearchByName(ctx context.Context, name string) (creator.Creator, error)
	SearchByText(ctx context.Context, term string, filters filter.Set, limit int) ([]result.Match, error)
}
