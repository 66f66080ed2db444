package vectorsearch

import (
	"context"
	"fmt"

	"github.com/brandpulse/creatorsearch/internal/domain/search/filter"
	"github.com/brandpulse/creatorsearch/internal/domain/search/result"
)

const (
	// DefaultMinScore is the client-side similarity cutoff. The index's
	// own top-K acts as an over-fetch bound, so fewer than topK results
	// can come back.
	DefaultMinScore = 0.2

	// DefaultTopK bounds a query when the caller did not ask for a count.
	DefaultTopK = 20
)

// Options tunes a single similarity query. Zero values pick defaults;
// a negative MinScore disables the cutoff entirely.
type Options struct {
	Filters  filter.Set
	TopK     int
	MinScore float64
}

func (o Options) topK() int {
	if o.TopK <= 0 {
		return DefaultTopK
	}
	return o.TopK
}

func (o Options) minScore() float64 {
	if o.MinScore < 0 {
		return 0
	}
	if o.MinScore == 0 {
		return DefaultMinScore
	}
	return o.MinScore
}

// SimilarOptions tunes a similarity-to-creator query.
type SimilarOptions struct {
	Options

	// IncludeOriginal keeps the reference creator in its own result set.
	IncludeOriginal bool
}

// Result is the output of one similarity query before fusion.
type Result struct {
	Matches []result.Match
	Total   int
}

// Service wraps the vector index with embedding-driven creator queries.
type Service struct {
	index Index
	embed Embedder
}

// New creates a vector search service.
func New(index Index, embed Embedder) *Service {
	return &Service{index: index, embed: embed}
}

// Semantic embeds the query text and runs a filtered top-K search.
func (s *Service) Semantic(ctx context.Context, queryText string, opts Options) (Result, error) {
	embResult, err := s.embed.Embed(ctx, queryText)
	if err != nil {
		return Result{}, fmt.Errorf("vectorize query: %w", err)
	}
	return s.query(ctx, embResult.Embedding, opts)
}

// FindSimilar searches for creators close to a reference creator's
// stored vector. The reference itself is excluded unless opts requests
// otherwise. A reference missing from the index is a not-found error,
// distinct from zero results.
func (s *Service) FindSimilar(
	ctx context.Context, creatorID string, opts SimilarOptions,
) (Result, error) {
	vector, err := s.index.FetchVector(ctx, creatorID)
	if err != nil {
		return Result{}, fmt.Errorf("fetch reference vector: %w", err)
	}

	// Over-fetch by one: the reference creator is its own nearest
	// neighbor and usually occupies a slot.
	queryOpts := opts.Options
	queryOpts.TopK = opts.topK() + 1

	res, err := s.query(ctx, vector, queryOpts)
	if err != nil {
		return Result{}, err
	}

	if !opts.IncludeOriginal {
		kept := res.Matches[:0]
		for _, m := range res.Matches {
			if m.CreatorID() != creatorID {
				kept = append(kept, m)
			}
		}
		res.Matches = kept
	}
	if len(res.Matches) > opts.topK() {
		res.Matches = res.Matches[:opts.topK()]
	}
	return res, nil
}

// ByAudience searches with a synthetic sentence describing the wanted
// audience rather than the creator.
func (s *Service) ByAudience(ctx context.Context, audience string, opts Options) (Result, error) {
	text := fmt.Sprintf("creator whose audience is %s", audience)
	return s.Semantic(ctx, text, opts)
}

// ByContentStyle searches by a description of the creator's content style.
func (s *Service) ByContentStyle(ctx context.Context, style string, opts Options) (Result, error) {
	text := fmt.Sprintf("creator who makes %s content", style)
	return s.Semantic(ctx, text, opts)
}

// ByBrandHistory searches by past brand collaboration experience.
func (s *Service) ByBrandHistory(ctx context.Context, history string, opts Options) (Result, error) {
	text := fmt.Sprintf("creator with brand collaboration experience in %s", history)
	return s.Semantic(ctx, text, opts)
}

func (s *Service) query(ctx context.Context, vector []float32, opts Options) (Result, error) {
	matches, total, err := s.index.Query(ctx, vector, opts.Filters, opts.topK())
	if err != nil {
		return Result{}, fmt.Errorf("query index: %w", err)
	}

	minScore := opts.minScore()
	if minScore > 0 {
		kept := matches[:0]
		for _, m := range matches {
			if m.Score() >= minScore {
				kept = append(kept, m)
			}
		}
		matches = kept
	}

	return Result{Matches: matches, Total: total}, nil
}
